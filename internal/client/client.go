package client

import (
	"time"

	"github.com/Debmalya06/Mess-Milega-sub000/domain"
	"github.com/Debmalya06/Mess-Milega-sub000/internal/transport"
)

// API groups the listing, booking, inquiry and dashboard calls. It goes
// through the shared transport, so the bearer token and the 401 policy
// apply to every call.
type API struct {
	http  *transport.Client
	clock domain.Clock
}

// Option configures an API
type Option func(*API)

// WithClock sets the clock used for date validation
func WithClock(clock domain.Clock) Option {
	return func(a *API) { a.clock = clock }
}

// New creates an API over the shared transport
func New(tc *transport.Client, opts ...Option) *API {
	a := &API{http: tc, clock: time.Now}
	for _, opt := range opts {
		opt(a)
	}
	return a
}
