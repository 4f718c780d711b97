package transport

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v5"

	"github.com/Debmalya06/Mess-Milega-sub000/domain"
)

// RetryPolicy bounds retries of idempotent requests
type RetryPolicy struct {
	MaxTries        uint
	InitialInterval time.Duration
	MaxInterval     time.Duration
}

// DefaultRetryPolicy retries a GET up to three times over roughly a second
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{MaxTries: 3, InitialInterval: 200 * time.Millisecond, MaxInterval: 2 * time.Second}
}

// NoRetry disables retries
func NoRetry() RetryPolicy {
	return RetryPolicy{MaxTries: 1}
}

func (p RetryPolicy) enabled() bool {
	return p.MaxTries > 1
}

func (p RetryPolicy) run(ctx context.Context, attempt func() (*http.Request, error)) (*http.Request, error) {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = p.InitialInterval
	b.MaxInterval = p.MaxInterval

	var last *http.Request
	_, err := backoff.Retry(ctx, func() (struct{}, error) {
		req, err := attempt()
		if req != nil {
			last = req
		}
		if err != nil && !retryable(err) {
			return struct{}{}, backoff.Permanent(err)
		}
		return struct{}{}, err
	},
		backoff.WithBackOff(b),
		backoff.WithMaxTries(p.MaxTries),
		backoff.WithNotify(func(err error, wait time.Duration) {
			log.Printf("HTTP_RETRY: error=%q wait=%s", err, wait)
		}),
	)
	return last, err
}

// retryable reports whether a failed GET may succeed on another try:
// transport errors and gateway-class statuses only.
func retryable(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var apiErr *domain.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.Status {
		case http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
			return true
		}
		return false
	}
	return true
}
