package domain

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestMessageOf(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		fallback string
		expected string
	}{
		{
			name:     "nil error",
			err:      nil,
			fallback: "Login failed",
			expected: "",
		},
		{
			name:     "server supplied message",
			err:      &APIError{Status: http.StatusUnauthorized, Message: "Invalid credentials"},
			fallback: "Login failed",
			expected: "Invalid credentials",
		},
		{
			name:     "wrapped server message",
			err:      fmt.Errorf("login: %w", &APIError{Status: http.StatusConflict, Message: "Email already registered"}),
			fallback: "Registration failed",
			expected: "Email already registered",
		},
		{
			name:     "server error without message",
			err:      &APIError{Status: http.StatusInternalServerError},
			fallback: "Registration failed",
			expected: "Registration failed",
		},
		{
			name:     "network failure",
			err:      errors.New("dial tcp: connection refused"),
			fallback: "Login failed",
			expected: "Login failed",
		},
		{
			name:     "validation error",
			err:      fmt.Errorf("%w: pincode must be 6 digits", ErrInvalidInput),
			fallback: "Could not save property",
			expected: "pincode must be 6 digits",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MessageOf(tt.err, tt.fallback); got != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestAPIError(t *testing.T) {
	err := &APIError{Status: http.StatusUnauthorized, Method: http.MethodGet, Path: PathMe}

	if !err.Unauthorized() {
		t.Error("expected 401 to be reported as unauthorized")
	}
	if got := err.Error(); got != "GET /api/auth/me: 401 Unauthorized" {
		t.Errorf("unexpected error text %q", got)
	}
	if got := StatusOf(fmt.Errorf("probe: %w", err)); got != http.StatusUnauthorized {
		t.Errorf("expected status 401, got %d", got)
	}
	if got := StatusOf(errors.New("boom")); got != 0 {
		t.Errorf("expected status 0, got %d", got)
	}
}

func TestSentinelErrors(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		expectedMsg string
	}{
		{name: "ErrInvalidCredentials", err: ErrInvalidCredentials, expectedMsg: "invalid credentials"},
		{name: "ErrEmailNotVerified", err: ErrEmailNotVerified, expectedMsg: "email not verified"},
		{name: "ErrOTPInvalid", err: ErrOTPInvalid, expectedMsg: "invalid otp code"},
		{name: "ErrTokenNotFound", err: ErrTokenNotFound, expectedMsg: "no stored token"},
		{name: "ErrChannelClosed", err: ErrChannelClosed, expectedMsg: "realtime channel is closed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Error() != tt.expectedMsg {
				t.Errorf("expected %q, got %q", tt.expectedMsg, tt.err.Error())
			}
			wrapped := fmt.Errorf("context: %w", tt.err)
			if !errors.Is(wrapped, tt.err) {
				t.Error("expected wrapped error to match sentinel")
			}
		})
	}
}
