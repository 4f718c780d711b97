package domain

import (
	"encoding/json"
	"fmt"
)

// Realtime event names
const (
	EventJoin        = "join"
	EventSendMessage = "sendMessage"
	EventMessage     = "message"
	EventOnlineUsers = "onlineUsers"
)

// Client routes and API paths the session contract depends on
const (
	LoginRoute       = "/login"
	PathMe           = "/api/auth/me"
	PathLogin        = "/api/auth/login"
	PathRegister     = "/api/auth/register"
	PathVerifyOTP    = "/api/auth/verify-otp"
	PathResendOTP    = "/api/auth/resend-otp"
	PathSearch       = "/api/properties/public/search"
	PathProperties   = "/api/properties"
	PathMyProperties = "/api/properties/owner"
	PathBookings     = "/api/bookings"
	PathBookRequest  = "/api/bookings/request"
	PathMyBookings   = "/api/bookings/my"
	PathOwnerBooking = "/api/bookings/owner"
	PathDashboard    = "/api/owner/dashboard"
	PathInquiries    = "/api/inquiries"
	PathOwnerInquiry = "/api/inquiries/owner"
)

// Frame is the envelope of every realtime event
type Frame struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// NewFrame encodes data under the given event name
func NewFrame(event string, data any) (Frame, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return Frame{}, fmt.Errorf("encode %s frame: %w", event, err)
	}
	return Frame{Event: event, Data: raw}, nil
}

// Decode unmarshals the frame payload into v
func (f Frame) Decode(v any) error {
	if len(f.Data) == 0 {
		return fmt.Errorf("decode %s frame: empty payload", f.Event)
	}
	if err := json.Unmarshal(f.Data, v); err != nil {
		return fmt.Errorf("decode %s frame: %w", f.Event, err)
	}
	return nil
}
