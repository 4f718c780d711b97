package mocks

import (
	"context"
	"io"
	"sync"

	"github.com/Debmalya06/Mess-Milega-sub000/domain"
)

// MockRealtimeConn is an in-memory realtime connection. Frames pushed with
// Push are returned by Receive in order; Receive returns io.EOF once closed.
type MockRealtimeConn struct {
	SendFunc func(frame domain.Frame) error

	inbound chan domain.Frame
	closed  chan struct{}
	once    sync.Once

	mu   sync.Mutex
	sent []domain.Frame
}

// NewMockRealtimeConn creates an open connection
func NewMockRealtimeConn() *MockRealtimeConn {
	return &MockRealtimeConn{
		inbound: make(chan domain.Frame, 64),
		closed:  make(chan struct{}),
	}
}

func (c *MockRealtimeConn) Send(frame domain.Frame) error {
	select {
	case <-c.closed:
		return io.ErrClosedPipe
	default:
	}
	if c.SendFunc != nil {
		if err := c.SendFunc(frame); err != nil {
			return err
		}
	}
	c.mu.Lock()
	c.sent = append(c.sent, frame)
	c.mu.Unlock()
	return nil
}

func (c *MockRealtimeConn) Receive() (domain.Frame, error) {
	select {
	case f := <-c.inbound:
		return f, nil
	case <-c.closed:
		return domain.Frame{}, io.EOF
	}
}

func (c *MockRealtimeConn) Close() error {
	c.once.Do(func() { close(c.closed) })
	return nil
}

// Push queues a server frame for Receive
func (c *MockRealtimeConn) Push(frame domain.Frame) {
	c.inbound <- frame
}

// Drop simulates the server going away
func (c *MockRealtimeConn) Drop() {
	_ = c.Close()
}

// Closed reports whether Close was called
func (c *MockRealtimeConn) Closed() bool {
	select {
	case <-c.closed:
		return true
	default:
		return false
	}
}

// Sent returns the frames written so far
func (c *MockRealtimeConn) Sent() []domain.Frame {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]domain.Frame(nil), c.sent...)
}

// DialCall records one Dial invocation
type DialCall struct {
	URL   string
	Token string
	Conn  *MockRealtimeConn
}

// MockRealtimeDialer hands out a fresh MockRealtimeConn per Dial
type MockRealtimeDialer struct {
	DialFunc func(ctx context.Context, url, token string) (domain.RealtimeConn, error)

	mu    sync.Mutex
	calls []DialCall
}

func (d *MockRealtimeDialer) Dial(ctx context.Context, url, token string) (domain.RealtimeConn, error) {
	if d.DialFunc != nil {
		return d.DialFunc(ctx, url, token)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	conn := NewMockRealtimeConn()
	d.mu.Lock()
	d.calls = append(d.calls, DialCall{URL: url, Token: token, Conn: conn})
	d.mu.Unlock()
	return conn, nil
}

// Calls returns the recorded dials in order
func (d *MockRealtimeDialer) Calls() []DialCall {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]DialCall(nil), d.calls...)
}

// Last returns the most recently dialed connection, or nil
func (d *MockRealtimeDialer) Last() *MockRealtimeConn {
	d.mu.Lock()
	defer d.mu.Unlock()
	if len(d.calls) == 0 {
		return nil
	}
	return d.calls[len(d.calls)-1].Conn
}

// Compile-time interface compliance verification
var (
	_ domain.RealtimeConn   = (*MockRealtimeConn)(nil)
	_ domain.RealtimeDialer = (*MockRealtimeDialer)(nil)
)
