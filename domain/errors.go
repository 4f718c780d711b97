package domain

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Authentication errors
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserAlreadyExists  = errors.New("user already exists")
	ErrEmailNotVerified   = errors.New("email not verified")
	ErrNotAuthenticated   = errors.New("not authenticated")
)

// OTP errors
var (
	ErrOTPExpired     = errors.New("otp has expired")
	ErrOTPInvalid     = errors.New("invalid otp code")
	ErrOTPMaxAttempts = errors.New("maximum otp attempts exceeded")
	ErrOTPNotFound    = errors.New("otp not found")
	ErrOTPResendLimit = errors.New("otp resend limit exceeded")
)

// Token errors
var (
	ErrTokenInvalid   = errors.New("invalid token")
	ErrTokenExpired   = errors.New("token has expired")
	ErrTokenMalformed = errors.New("malformed token")
	ErrTokenNotFound  = errors.New("no stored token")
)

// Authorization errors
var (
	ErrUnauthorized     = errors.New("unauthorized access")
	ErrInsufficientRole = errors.New("insufficient role permissions")
	ErrResourceNotFound = errors.New("resource not found")
)

// Listing and booking errors
var (
	ErrInvalidInput      = errors.New("invalid input")
	ErrPropertyNotFound  = errors.New("property not found")
	ErrBookingNotFound   = errors.New("booking not found")
	ErrNoRoomsAvailable  = errors.New("no rooms available")
	ErrBookingNotPending = errors.New("booking is not pending")
	ErrInvalidTransition = errors.New("invalid booking status transition")
	ErrNotPropertyOwner  = errors.New("property belongs to another owner")
	ErrDuplicateBooking  = errors.New("booking already requested for this property")
)

// Realtime errors
var (
	ErrChannelClosed = errors.New("realtime channel is closed")
	ErrUnknownEvent  = errors.New("unknown realtime event")
)

// APIError is a non-2xx response from the REST API
type APIError struct {
	Status  int
	Message string
	Method  string
	Path    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s %s: %d %s", e.Method, e.Path, e.Status, e.Message)
	}
	return fmt.Sprintf("%s %s: %d %s", e.Method, e.Path, e.Status, http.StatusText(e.Status))
}

// Unauthorized reports whether the server rejected the credentials
func (e *APIError) Unauthorized() bool {
	return e.Status == http.StatusUnauthorized
}

// MessageOf returns the server-supplied message carried by err, or fallback
// when err carries none (network failures, decode errors, empty bodies).
func MessageOf(err error, fallback string) string {
	if err == nil {
		return ""
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) && strings.TrimSpace(apiErr.Message) != "" {
		return apiErr.Message
	}
	if errors.Is(err, ErrInvalidInput) {
		return strings.TrimPrefix(err.Error(), ErrInvalidInput.Error()+": ")
	}
	return fallback
}

// StatusOf returns the HTTP status carried by err, or 0
func StatusOf(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	return 0
}
