package transport

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Debmalya06/Mess-Milega-sub000/domain"
)

func fastRetry() RetryPolicy {
	return RetryPolicy{MaxTries: 3, InitialInterval: time.Millisecond, MaxInterval: 5 * time.Millisecond}
}

func newTestClient(t *testing.T, handler http.HandlerFunc, opts ...Option) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c, err := New(srv.URL, append([]Option{WithRetry(fastRetry())}, opts...)...)
	require.NoError(t, err)
	return c
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func TestNew_RejectsBadBaseURL(t *testing.T) {
	_, err := New("ftp://example.com")
	assert.Error(t, err)

	_, err = New("://nope")
	assert.Error(t, err)
}

func TestClient_AttachesBearerToken(t *testing.T) {
	var seen []string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		seen = append(seen, r.Header.Get("Authorization"))
		writeJSON(w, http.StatusOK, map[string]string{"ok": "yes"})
	})

	require.NoError(t, c.Get(context.Background(), "/api/properties/1", nil, nil))
	c.SetToken("T1")
	require.NoError(t, c.Get(context.Background(), "/api/properties/1", nil, nil))
	c.ClearToken()
	require.NoError(t, c.Get(context.Background(), "/api/properties/1", nil, nil))

	assert.Equal(t, []string{"", "Bearer T1", ""}, seen)
}

func TestClient_DecodesBodyAndQuery(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, domain.PathSearch, r.URL.Path)
		assert.Equal(t, "Pune", r.URL.Query().Get("city"))
		assert.False(t, r.URL.Query().Has("roomType"), "empty filters must be dropped")
		writeJSON(w, http.StatusOK, []domain.Property{{ID: 7, Name: "Sunrise PG"}})
	})

	var got []domain.Property
	err := c.Get(context.Background(), domain.PathSearch, url.Values{"city": {"Pune"}, "roomType": {""}}, &got)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Sunrise PG", got[0].Name)
}

func TestClient_PostSendsJSON(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		var body domain.LoginRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "a@b.com", body.Email)
		writeJSON(w, http.StatusOK, domain.LoginResponse{AccessToken: "T1", ID: 1})
	})

	var resp domain.LoginResponse
	require.NoError(t, c.Post(context.Background(), domain.PathLogin, domain.LoginRequest{Email: "a@b.com", Password: "secret"}, &resp))
	assert.Equal(t, "T1", resp.AccessToken)
}

func TestClient_ErrorMessageExtraction(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     any
		expected string
	}{
		{name: "message field", status: http.StatusConflict, body: map[string]string{"message": "Email already registered"}, expected: "Email already registered"},
		{name: "error field fallback", status: http.StatusBadRequest, body: map[string]string{"error": "bad input"}, expected: "bad input"},
		{name: "no json body", status: http.StatusInternalServerError, body: nil, expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				if tt.body == nil {
					w.WriteHeader(tt.status)
					return
				}
				writeJSON(w, tt.status, tt.body)
			}, WithRetry(NoRetry()))

			err := c.Post(context.Background(), domain.PathRegister, map[string]string{}, nil)
			var apiErr *domain.APIError
			require.True(t, errors.As(err, &apiErr))
			assert.Equal(t, tt.status, apiErr.Status)
			assert.Equal(t, tt.expected, apiErr.Message)
		})
	}
}

func TestClient_AuthFailurePolicy(t *testing.T) {
	tests := []struct {
		name         string
		method       string
		path         string
		expectReject bool
	}{
		{name: "identity probe is exempt", method: http.MethodGet, path: domain.PathMe, expectReject: false},
		{name: "protected GET rejects", method: http.MethodGet, path: domain.PathMyBookings, expectReject: true},
		{name: "protected POST rejects", method: http.MethodPost, path: domain.PathBookRequest, expectReject: true},
		{name: "login rejects", method: http.MethodPost, path: domain.PathLogin, expectReject: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "Token expired"})
			})
			var rejected int32
			c.Use(&AuthFailurePolicy{
				Exempt: ExemptRequests(IdentityProbe),
				Reject: func(ctx context.Context) { atomic.AddInt32(&rejected, 1) },
			})

			err := c.Do(context.Background(), tt.method, tt.path, nil, nil, nil)
			require.Error(t, err)
			assert.Equal(t, http.StatusUnauthorized, domain.StatusOf(err))

			if tt.expectReject {
				assert.Equal(t, int32(1), atomic.LoadInt32(&rejected))
			} else {
				assert.Zero(t, atomic.LoadInt32(&rejected))
			}
		})
	}
}

func TestClient_NonAuthErrorsDoNotReject(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusForbidden, map[string]string{"message": "Access denied"})
	})
	rejected := false
	c.Use(&AuthFailurePolicy{Reject: func(ctx context.Context) { rejected = true }})

	err := c.Get(context.Background(), domain.PathDashboard, nil, nil)
	assert.Equal(t, http.StatusForbidden, domain.StatusOf(err))
	assert.False(t, rejected)
}

func TestClient_RetriesIdempotentGets(t *testing.T) {
	var calls int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"message": "warming up"})
			return
		}
		writeJSON(w, http.StatusOK, domain.Property{ID: 3})
	})

	var got domain.Property
	require.NoError(t, c.Get(context.Background(), "/api/properties/3", nil, &got))
	assert.Equal(t, uint(3), got.ID)
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestClient_DoesNotRetry(t *testing.T) {
	tests := []struct {
		name   string
		method string
		path   string
		status int
	}{
		{name: "client errors", method: http.MethodGet, path: "/api/properties/9", status: http.StatusNotFound},
		{name: "non-idempotent requests", method: http.MethodPost, path: domain.PathBookRequest, status: http.StatusServiceUnavailable},
		{name: "identity probe", method: http.MethodGet, path: domain.PathMe, status: http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var calls int32
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				atomic.AddInt32(&calls, 1)
				writeJSON(w, tt.status, map[string]string{"message": "nope"})
			})
			c.Use(&AuthFailurePolicy{Exempt: ExemptRequests(IdentityProbe)})

			err := c.Do(context.Background(), tt.method, tt.path, nil, nil, nil)
			assert.Equal(t, tt.status, domain.StatusOf(err))
			assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
		})
	}
}

func TestClient_GivesUpAfterMaxTries(t *testing.T) {
	var calls int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		writeJSON(w, http.StatusBadGateway, map[string]string{"message": "upstream down"})
	})

	err := c.Get(context.Background(), domain.PathSearch, nil, nil)
	assert.Equal(t, http.StatusBadGateway, domain.StatusOf(err))
	assert.Equal(t, "upstream down", domain.MessageOf(err, "fallback"))
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestClient_Timeout(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-time.After(time.Second):
		case <-r.Context().Done():
		}
	}, WithTimeout(20*time.Millisecond), WithRetry(NoRetry()))

	err := c.Post(context.Background(), domain.PathBookRequest, map[string]int{"propertyId": 1}, nil)
	require.Error(t, err)
	assert.Zero(t, domain.StatusOf(err))
	assert.Equal(t, "Booking failed", domain.MessageOf(err, "Booking failed"))
}

func TestExemptRequests(t *testing.T) {
	exempt := ExemptRequests(IdentityProbe)

	assert.True(t, exempt(http.MethodGet, "/api/auth/me"))
	assert.True(t, exempt("get", "api/auth/me/"))
	assert.True(t, exempt(http.MethodGet, "/api/auth/me?fresh=1"))
	assert.False(t, exempt(http.MethodPost, "/api/auth/me"))
	assert.False(t, exempt(http.MethodGet, "/api/auth/login"))
}

func TestAuthFailurePolicy_NilSafe(t *testing.T) {
	var p *AuthFailurePolicy
	assert.NotPanics(t, func() { p.Handle(context.Background(), http.MethodGet, "/x") })
}
