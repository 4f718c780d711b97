package realtime

import (
	"context"
	"errors"
	"fmt"
	"log"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v5"

	"github.com/Debmalya06/Mess-Milega-sub000/domain"
)

// State of the channel
type State int

const (
	StateClosed State = iota
	StateOpen
)

func (s State) String() string {
	if s == StateOpen {
		return "open"
	}
	return "closed"
}

const defaultDialTimeout = 10 * time.Second

// ErrClosedWhileOpening is returned by Open when Close ran during the dial
var ErrClosedWhileOpening = errors.New("realtime: closed while connecting")

// ReconnectPolicy bounds redials after the connection drops unexpectedly
type ReconnectPolicy struct {
	MaxTries        uint
	InitialInterval time.Duration
	MaxInterval     time.Duration
}

// Option configures a Channel
type Option func(*Channel)

// WithClock sets the clock used to stamp outgoing messages
func WithClock(clock domain.Clock) Option {
	return func(c *Channel) { c.clock = clock }
}

// WithDialTimeout bounds each dial when the caller's context has no deadline
func WithDialTimeout(d time.Duration) Option {
	return func(c *Channel) { c.dialTimeout = d }
}

// WithReconnect redials a dropped connection with exponential backoff.
// Off unless set.
func WithReconnect(p ReconnectPolicy) Option {
	return func(c *Channel) {
		if p.MaxTries > 0 {
			c.reconnect = &p
		}
	}
}

// WithMessageHandler is called from the reader for every inbound message,
// after it has been appended to the log
func WithMessageHandler(fn func(domain.ChatMessage)) Option {
	return func(c *Channel) { c.onMessage = fn }
}

// WithPresenceHandler is called from the reader with every roster update
func WithPresenceHandler(fn func([]uint)) Option {
	return func(c *Channel) { c.onPresence = fn }
}

// run is one Open..Close lifetime
type run struct {
	userID uint
	token  string
	conn   domain.RealtimeConn
	ctx    context.Context
	cancel context.CancelFunc
	done   chan struct{}
}

// Channel owns at most one live realtime connection, bound to a session.
// It keeps an append-only log of inbound messages and the latest online
// roster pushed by the server.
type Channel struct {
	dialer      domain.RealtimeDialer
	url         string
	clock       domain.Clock
	dialTimeout time.Duration
	reconnect   *ReconnectPolicy
	onMessage   func(domain.ChatMessage)
	onPresence  func([]uint)

	mu  sync.Mutex
	cur *run
	// gen counts Close calls; an Open whose dial spans one is abandoned
	gen uint64

	logMu    sync.RWMutex
	logOwner uint
	messages []domain.ChatMessage
	online   []uint
}

// NewChannel creates a closed channel that dials url when opened
func NewChannel(dialer domain.RealtimeDialer, url string, opts ...Option) *Channel {
	c := &Channel{
		dialer:      dialer,
		url:         url,
		clock:       time.Now,
		dialTimeout: defaultDialTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// State reports whether a connection is live
func (c *Channel) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cur == nil {
		return StateClosed
	}
	return StateOpen
}

// Open connects for the session's user and announces it with a join frame.
// Opening for the user that is already connected is a no-op; a different
// user replaces the existing connection.
func (c *Channel) Open(ctx context.Context, s *domain.Session) error {
	if s == nil || s.User == nil || s.User.ID == 0 {
		return domain.ErrNotAuthenticated
	}

	c.mu.Lock()
	if c.cur != nil && c.cur.userID == s.User.ID && c.cur.token == s.Token {
		c.mu.Unlock()
		return nil
	}
	c.mu.Unlock()
	c.Close()

	c.mu.Lock()
	gen := c.gen
	c.mu.Unlock()

	conn, err := c.connect(ctx, s.User.ID, s.Token)
	if err != nil {
		log.Printf("REALTIME_OPEN_FAILED: user_id=%d error=%v", s.User.ID, err)
		return err
	}

	runCtx, cancel := context.WithCancel(context.Background())
	r := &run{
		userID: s.User.ID,
		token:  s.Token,
		conn:   conn,
		ctx:    runCtx,
		cancel: cancel,
		done:   make(chan struct{}),
	}

	c.mu.Lock()
	if c.gen != gen {
		c.mu.Unlock()
		cancel()
		_ = conn.Close()
		log.Printf("REALTIME_OPEN_ABANDONED: user_id=%d", s.User.ID)
		return ErrClosedWhileOpening
	}
	if c.cur != nil {
		// lost a race with a concurrent Open
		c.mu.Unlock()
		cancel()
		_ = conn.Close()
		return nil
	}
	c.cur = r
	c.mu.Unlock()

	c.resetLogFor(s.User.ID)
	go c.read(r)

	log.Printf("REALTIME_OPENED: user_id=%d url=%s", s.User.ID, c.url)
	return nil
}

// Close actively closes the connection and waits for the reader to exit.
// A dial still in flight is abandoned. Safe to call when already closed.
func (c *Channel) Close() {
	c.mu.Lock()
	c.gen++
	r := c.cur
	c.cur = nil
	var conn domain.RealtimeConn
	if r != nil {
		conn = r.conn
	}
	c.mu.Unlock()

	if r == nil {
		return
	}
	r.cancel()
	if err := conn.Close(); err != nil {
		log.Printf("REALTIME_CLOSE_FAILED: user_id=%d error=%v", r.userID, err)
	}
	<-r.done

	c.logMu.Lock()
	c.online = nil
	c.logMu.Unlock()
	log.Printf("REALTIME_CLOSED: user_id=%d", r.userID)
}

// Send emits a message from the connected user to receiverID. With no open
// connection it does nothing and returns nil. Nothing is appended locally;
// the server echoes delivered messages back.
func (c *Channel) Send(ctx context.Context, receiverID uint, body string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	c.mu.Lock()
	r := c.cur
	var conn domain.RealtimeConn
	if r != nil {
		conn = r.conn
	}
	c.mu.Unlock()
	if r == nil {
		return nil
	}
	if receiverID == 0 {
		return fmt.Errorf("%w: receiver is required", domain.ErrInvalidInput)
	}
	if strings.TrimSpace(body) == "" {
		return fmt.Errorf("%w: message is empty", domain.ErrInvalidInput)
	}

	frame, err := domain.NewFrame(domain.EventSendMessage, domain.ChatMessage{
		SenderID:   r.userID,
		ReceiverID: receiverID,
		Message:    body,
		Timestamp:  c.clock().UTC(),
	})
	if err != nil {
		return err
	}
	if err := conn.Send(frame); err != nil {
		if c.closedSince(r) {
			return nil
		}
		return fmt.Errorf("send message: %w", err)
	}
	return nil
}

// closedSince reports whether r is no longer the live run
func (c *Channel) closedSince(r *run) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cur != r
}

// Follow binds the channel to a session source: it opens whenever a session
// appears and closes, before the change notification returns, when the
// session ends. stop unbinds and closes.
func (c *Channel) Follow(src domain.SessionSource) (stop func()) {
	apply := func(s *domain.Session) {
		if s == nil {
			c.Close()
			return
		}
		if err := c.Open(context.Background(), s); err != nil {
			if !errors.Is(err, ErrClosedWhileOpening) {
				log.Printf("REALTIME_FOLLOW_FAILED: error=%v", err)
			}
			return
		}
		// the session may have ended before the dial was registered
		if src.Current() == nil {
			c.Close()
		}
	}

	unsubscribe := src.Subscribe(apply)
	if s := src.Current(); s != nil {
		apply(s)
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			unsubscribe()
			c.Close()
		})
	}
}

// Messages returns a copy of the message log, oldest first
func (c *Channel) Messages() []domain.ChatMessage {
	c.logMu.RLock()
	defer c.logMu.RUnlock()
	return slices.Clone(c.messages)
}

// Conversation returns the messages exchanged with peer, oldest first
func (c *Channel) Conversation(peer uint) []domain.ChatMessage {
	c.logMu.RLock()
	defer c.logMu.RUnlock()
	var out []domain.ChatMessage
	for _, m := range c.messages {
		if m.SenderID == peer || m.ReceiverID == peer {
			out = append(out, m)
		}
	}
	return out
}

// OnlineUsers returns the latest roster pushed by the server
func (c *Channel) OnlineUsers() []uint {
	c.logMu.RLock()
	defer c.logMu.RUnlock()
	return slices.Clone(c.online)
}

// IsOnline reports whether id is in the latest roster
func (c *Channel) IsOnline(id uint) bool {
	c.logMu.RLock()
	defer c.logMu.RUnlock()
	return slices.Contains(c.online, id)
}

// connect dials and sends the join announcement
func (c *Channel) connect(ctx context.Context, userID uint, token string) (domain.RealtimeConn, error) {
	if _, ok := ctx.Deadline(); !ok && c.dialTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.dialTimeout)
		defer cancel()
	}

	conn, err := c.dialer.Dial(ctx, c.url, token)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", c.url, err)
	}
	join, err := domain.NewFrame(domain.EventJoin, userID)
	if err != nil {
		_ = conn.Close()
		return nil, err
	}
	if err := conn.Send(join); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("send join: %w", err)
	}
	return conn, nil
}

func (c *Channel) read(r *run) {
	defer close(r.done)

	conn := r.conn
	for {
		frame, err := conn.Receive()
		if err == nil {
			c.dispatch(frame)
			continue
		}
		if r.ctx.Err() != nil {
			return
		}

		log.Printf("REALTIME_LOST: user_id=%d error=%v", r.userID, err)
		conn = c.redial(r)
		if conn == nil {
			c.detach(r)
			return
		}
	}
}

// redial replaces a dropped connection. Returns nil when reconnection is
// off, exhausted or the run was closed meanwhile.
func (c *Channel) redial(r *run) domain.RealtimeConn {
	if c.reconnect == nil {
		return nil
	}

	b := backoff.NewExponentialBackOff()
	if c.reconnect.InitialInterval > 0 {
		b.InitialInterval = c.reconnect.InitialInterval
	}
	if c.reconnect.MaxInterval > 0 {
		b.MaxInterval = c.reconnect.MaxInterval
	}

	conn, err := backoff.Retry(r.ctx, func() (domain.RealtimeConn, error) {
		return c.connect(r.ctx, r.userID, r.token)
	},
		backoff.WithBackOff(b),
		backoff.WithMaxTries(c.reconnect.MaxTries),
		backoff.WithNotify(func(err error, next time.Duration) {
			log.Printf("REALTIME_RECONNECT_RETRY: user_id=%d next=%s error=%v", r.userID, next, err)
		}),
	)
	if err != nil {
		if !errors.Is(err, context.Canceled) {
			log.Printf("REALTIME_RECONNECT_FAILED: user_id=%d error=%v", r.userID, err)
		}
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cur != r || r.ctx.Err() != nil {
		_ = conn.Close()
		return nil
	}
	r.conn = conn
	log.Printf("REALTIME_RECONNECTED: user_id=%d", r.userID)
	return conn
}

// detach moves to Closed after the connection was lost for good
func (c *Channel) detach(r *run) {
	c.mu.Lock()
	owned := c.cur == r
	if owned {
		c.cur = nil
	}
	conn := r.conn
	c.mu.Unlock()
	if !owned {
		return
	}
	r.cancel()
	_ = conn.Close()

	c.logMu.Lock()
	c.online = nil
	c.logMu.Unlock()
	log.Printf("REALTIME_CLOSED: user_id=%d reason=lost", r.userID)
}

func (c *Channel) dispatch(f domain.Frame) {
	switch f.Event {
	case domain.EventMessage:
		var m domain.ChatMessage
		if err := f.Decode(&m); err != nil {
			log.Printf("REALTIME_FRAME_IGNORED: event=%s error=%v", f.Event, err)
			return
		}
		c.logMu.Lock()
		c.messages = append(c.messages, m)
		c.logMu.Unlock()
		if c.onMessage != nil {
			c.onMessage(m)
		}

	case domain.EventOnlineUsers:
		var ids []uint
		if err := f.Decode(&ids); err != nil {
			log.Printf("REALTIME_FRAME_IGNORED: event=%s error=%v", f.Event, err)
			return
		}
		c.logMu.Lock()
		c.online = ids
		c.logMu.Unlock()
		if c.onPresence != nil {
			c.onPresence(slices.Clone(ids))
		}

	default:
		log.Printf("REALTIME_FRAME_IGNORED: event=%s error=%v", f.Event, domain.ErrUnknownEvent)
	}
}

// resetLogFor starts a fresh log when a different user connects
func (c *Channel) resetLogFor(userID uint) {
	c.logMu.Lock()
	defer c.logMu.Unlock()
	if c.logOwner != userID {
		c.messages = nil
		c.logOwner = userID
	}
	c.online = nil
}
