// Package chathub is the server side of the realtime channel: it tracks which
// users are online and relays chat messages between them.
package chathub

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net"
	"net/http"
	"slices"
	"strings"
	"sync"
	"time"

	"golang.org/x/net/websocket"

	"github.com/Debmalya06/Mess-Milega-sub000/domain"
	"github.com/Debmalya06/Mess-Milega-sub000/internal/http/middleware"
)

const (
	maxDecodeErrorsPerConn = 5
	maxMessageLength       = 2000
)

type userIDContextKey struct{}

// Hub relays messages between joined users. A user may hold several
// connections; each receives every frame addressed to that user.
type Hub struct {
	tokens domain.TokenService
	clock  domain.Clock

	mu    sync.Mutex
	peers map[uint]map[*peer]struct{}
}

// Option configures a Hub
type Option func(*Hub)

// WithClock stamps messages that arrive without a timestamp
func WithClock(clock domain.Clock) Option {
	return func(h *Hub) { h.clock = clock }
}

// NewHub creates a hub that authenticates connections with tokens
func NewHub(tokens domain.TokenService, opts ...Option) *Hub {
	h := &Hub{
		tokens: tokens,
		clock:  time.Now,
		peers:  make(map[uint]map[*peer]struct{}),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

type peer struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

func (p *peer) send(f domain.Frame) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return websocket.JSON.Send(p.conn, f)
}

// accessToken reads the bearer header, or the token query parameter for
// clients that cannot set headers on the upgrade request
func accessToken(r *http.Request) string {
	if token, ok := middleware.BearerToken(r.Header.Get("Authorization")); ok {
		return token
	}
	return strings.TrimSpace(r.URL.Query().Get("token"))
}

// Handler authenticates the upgrade request and serves the socket
func (h *Hub) Handler() http.Handler {
	ws := websocket.Handler(h.serve)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.Header().Set("Allow", http.MethodGet)
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		token := accessToken(r)
		if token == "" {
			http.Error(w, "authentication required", http.StatusUnauthorized)
			return
		}
		claims, err := h.tokens.ValidateAccessToken(token)
		if err != nil {
			log.Printf("CHAT_UNAUTHORIZED: remote=%s error=%v", r.RemoteAddr, err)
			http.Error(w, "authentication required", http.StatusUnauthorized)
			return
		}
		r = r.WithContext(context.WithValue(r.Context(), userIDContextKey{}, claims.UserID))
		ws.ServeHTTP(w, r)
	})
}

func (h *Hub) serve(conn *websocket.Conn) {
	defer func() { _ = conn.Close() }()

	userID, _ := conn.Request().Context().Value(userIDContextKey{}).(uint)
	p := &peer{conn: conn}
	joined := false
	defer func() {
		if joined {
			h.leave(userID, p)
		}
	}()

	decodeErrors := 0
	for {
		var f domain.Frame
		if err := websocket.JSON.Receive(conn, &f); err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, net.ErrClosed) || !isDecodeError(err) {
				return
			}
			decodeErrors++
			if decodeErrors >= maxDecodeErrorsPerConn {
				log.Printf("CHAT_DROPPED: user_id=%d reason=decode_errors", userID)
				return
			}
			continue
		}
		decodeErrors = 0

		switch f.Event {
		case domain.EventJoin:
			var id uint
			if err := f.Decode(&id); err != nil || id != userID {
				log.Printf("CHAT_JOIN_REJECTED: user_id=%d claimed=%d", userID, id)
				continue
			}
			if !joined {
				joined = true
				h.join(userID, p)
			}
		case domain.EventSendMessage:
			if !joined {
				log.Printf("CHAT_SEND_BEFORE_JOIN: user_id=%d", userID)
				continue
			}
			h.relay(userID, f)
		default:
			log.Printf("CHAT_FRAME_IGNORED: user_id=%d event=%q", userID, f.Event)
		}
	}
}

func (h *Hub) join(userID uint, p *peer) {
	h.mu.Lock()
	set, ok := h.peers[userID]
	if !ok {
		set = make(map[*peer]struct{})
		h.peers[userID] = set
	}
	set[p] = struct{}{}
	h.mu.Unlock()

	log.Printf("CHAT_JOINED: user_id=%d", userID)
	h.broadcastOnline()
}

func (h *Hub) leave(userID uint, p *peer) {
	h.mu.Lock()
	if set, ok := h.peers[userID]; ok {
		delete(set, p)
		if len(set) == 0 {
			delete(h.peers, userID)
		}
	}
	h.mu.Unlock()

	log.Printf("CHAT_LEFT: user_id=%d", userID)
	h.broadcastOnline()
}

// relay delivers a message to the receiver and echoes it to the sender. The
// sender id always comes from the token, never from the payload.
func (h *Hub) relay(senderID uint, f domain.Frame) {
	var m domain.ChatMessage
	if err := f.Decode(&m); err != nil {
		log.Printf("CHAT_FRAME_IGNORED: user_id=%d error=%v", senderID, err)
		return
	}
	m.Message = strings.TrimSpace(m.Message)
	if m.ReceiverID == 0 || m.Message == "" || len(m.Message) > maxMessageLength {
		log.Printf("CHAT_MESSAGE_REJECTED: user_id=%d receiver_id=%d", senderID, m.ReceiverID)
		return
	}
	m.SenderID = senderID
	if m.Timestamp.IsZero() {
		m.Timestamp = h.clock().UTC()
	}

	out, err := domain.NewFrame(domain.EventMessage, m)
	if err != nil {
		return
	}
	h.deliver(m.ReceiverID, out)
	if m.ReceiverID != senderID {
		h.deliver(senderID, out)
	}
}

func (h *Hub) deliver(userID uint, f domain.Frame) {
	for _, p := range h.peersOf(userID) {
		if err := p.send(f); err != nil {
			log.Printf("CHAT_DELIVERY_FAILED: user_id=%d error=%v", userID, err)
		}
	}
}

func (h *Hub) peersOf(userID uint) []*peer {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]*peer, 0, len(h.peers[userID]))
	for p := range h.peers[userID] {
		out = append(out, p)
	}
	return out
}

// Online returns the ids of joined users in ascending order
func (h *Hub) Online() []uint {
	h.mu.Lock()
	defer h.mu.Unlock()
	ids := make([]uint, 0, len(h.peers))
	for id := range h.peers {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

func (h *Hub) broadcastOnline() {
	f, err := domain.NewFrame(domain.EventOnlineUsers, h.Online())
	if err != nil {
		return
	}
	h.mu.Lock()
	var all []*peer
	for _, set := range h.peers {
		for p := range set {
			all = append(all, p)
		}
	}
	h.mu.Unlock()

	for _, p := range all {
		_ = p.send(f)
	}
}

func isDecodeError(err error) bool {
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	return errors.As(err, &syntaxErr) || errors.As(err, &typeErr)
}
