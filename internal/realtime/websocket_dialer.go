package realtime

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"golang.org/x/net/websocket"

	"github.com/Debmalya06/Mess-Milega-sub000/domain"
)

// WebSocketDialer opens realtime connections over WebSocket with JSON frames
type WebSocketDialer struct {
	// Origin sent in the handshake; derived from the socket URL when empty
	Origin string
}

// NewWebSocketDialer creates a dialer with a derived origin
func NewWebSocketDialer() *WebSocketDialer {
	return &WebSocketDialer{}
}

// Dial connects to rawURL, presenting token as a bearer credential
func (d *WebSocketDialer) Dial(ctx context.Context, rawURL, token string) (domain.RealtimeConn, error) {
	origin := d.Origin
	if origin == "" {
		o, err := originFor(rawURL)
		if err != nil {
			return nil, err
		}
		origin = o
	}

	cfg, err := websocket.NewConfig(rawURL, origin)
	if err != nil {
		return nil, fmt.Errorf("invalid socket URL %q: %w", rawURL, err)
	}
	cfg.Header = make(http.Header)
	if token != "" {
		cfg.Header.Set("Authorization", "Bearer "+token)
	}

	ws, err := cfg.DialContext(ctx)
	if err != nil {
		return nil, err
	}
	return &wsConn{ws: ws}, nil
}

func originFor(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("invalid socket URL %q: %w", rawURL, err)
	}
	switch u.Scheme {
	case "ws":
		return "http://" + u.Host, nil
	case "wss":
		return "https://" + u.Host, nil
	}
	return "", fmt.Errorf("invalid socket URL %q: scheme must be ws or wss", rawURL)
}

type wsConn struct {
	ws *websocket.Conn
}

func (c *wsConn) Send(frame domain.Frame) error {
	return websocket.JSON.Send(c.ws, frame)
}

func (c *wsConn) Receive() (domain.Frame, error) {
	var f domain.Frame
	err := websocket.JSON.Receive(c.ws, &f)
	return f, err
}

func (c *wsConn) Close() error {
	return c.ws.Close()
}
