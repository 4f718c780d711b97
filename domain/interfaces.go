package domain

import (
	"context"
	"time"
)

// TokenStore persists the single bearer token between runs.
// Load returns ErrTokenNotFound when nothing is stored.
type TokenStore interface {
	Load(ctx context.Context) (string, error)
	Save(ctx context.Context, token string) error
	Clear(ctx context.Context) error
}

// Navigator moves the user to another entry point of the client
type Navigator interface {
	Navigate(route string)
}

// SessionSource is the read side of the session manager that other
// components follow
type SessionSource interface {
	Current() *Session
	Subscribe(fn func(*Session)) (unsubscribe func())
}

// RealtimeConn is one live bidirectional connection
type RealtimeConn interface {
	Send(frame Frame) error
	Receive() (Frame, error)
	Close() error
}

// RealtimeDialer opens realtime connections
type RealtimeDialer interface {
	Dial(ctx context.Context, url, token string) (RealtimeConn, error)
}

// Clock is injected where records are timestamped
type Clock func() time.Time

// AccountRepository defines backend account data access
type AccountRepository interface {
	Create(ctx context.Context, account *Account) error
	FindByEmail(ctx context.Context, email string) (*Account, error)
	FindByID(ctx context.Context, id uint) (*Account, error)
	MarkEmailVerified(ctx context.Context, id uint) error
}

// PropertyRepository defines backend listing data access
type PropertyRepository interface {
	Create(ctx context.Context, ownerID uint, draft PropertyDraft) (*Property, error)
	FindByID(ctx context.Context, id uint) (*Property, error)
	Search(ctx context.Context, filter PropertySearch) ([]Property, error)
	ListByOwner(ctx context.Context, ownerID uint) ([]Property, error)
	AdjustAvailability(ctx context.Context, id uint, delta int) error
}

// BookingRepository defines backend booking data access
type BookingRepository interface {
	Create(ctx context.Context, booking *Booking) error
	FindByID(ctx context.Context, id uint) (*Booking, error)
	ListByTenant(ctx context.Context, tenantID uint) ([]Booking, error)
	ListByOwner(ctx context.Context, ownerID uint) ([]Booking, error)
	UpdateStatus(ctx context.Context, id uint, status BookingStatus) error
	HasOpenBooking(ctx context.Context, tenantID, propertyID uint) (bool, error)
}

// InquiryRepository defines backend inquiry data access
type InquiryRepository interface {
	Create(ctx context.Context, inquiry *Inquiry) error
	ListByOwner(ctx context.Context, ownerID uint) ([]Inquiry, error)
}

// AuthService defines backend authentication logic
type AuthService interface {
	Register(ctx context.Context, req RegisterRequest) (*Account, error)
	VerifySignup(ctx context.Context, email, code string) error
	ResendSignupCode(ctx context.Context, email string) error
	Login(ctx context.Context, email, password string) (*LoginResponse, error)
	Profile(ctx context.Context, userID uint) (*User, error)
}

// OTPService defines signup code operations
type OTPService interface {
	Generate(ctx context.Context, email string) (*OTPRequest, error)
	Verify(ctx context.Context, email, code string) (bool, error)
	CanResend(ctx context.Context, email string) (bool, int64, error)
}

// BookingService defines backend booking workflow
type BookingService interface {
	Request(ctx context.Context, tenantID uint, req BookingRequest) (*Booking, error)
	Decide(ctx context.Context, ownerID, bookingID uint, status BookingStatus) (*Booking, error)
	Dashboard(ctx context.Context, ownerID uint) (*DashboardSummary, error)
}

// ListingService defines backend property and inquiry operations
type ListingService interface {
	CreateProperty(ctx context.Context, ownerID uint, draft PropertyDraft) (*Property, error)
	Property(ctx context.Context, id uint) (*Property, error)
	Search(ctx context.Context, filter PropertySearch) ([]Property, error)
	OwnerProperties(ctx context.Context, ownerID uint) ([]Property, error)
	SendInquiry(ctx context.Context, senderID uint, req InquiryRequest) (*Inquiry, error)
	OwnerInquiries(ctx context.Context, ownerID uint) ([]Inquiry, error)
}

// BookingLists serves the tenant and owner booking tables
type BookingLists interface {
	TenantBookings(ctx context.Context, tenantID uint) ([]Booking, error)
	OwnerBookings(ctx context.Context, ownerID uint) ([]Booking, error)
}

// PasswordService defines password operations
type PasswordService interface {
	Hash(password string) (string, error)
	Verify(hashedPassword, password string) bool
}

// TokenService defines access token operations
type TokenService interface {
	GenerateAccessToken(userID uint, role Role) (string, error)
	ValidateAccessToken(token string) (*TokenClaims, error)
}

// NotificationService delivers signup codes
type NotificationService interface {
	SendSMS(to, message string) error
	SendEmail(to, subject, body string) error
}

// PolicyService defines role authorization checks
type PolicyService interface {
	AddPolicy(role, resource, action string) error
	RemovePolicy(role, resource, action string) error
	CheckPermission(role, resource, action string) (bool, error)
	GetPolicies() [][]string
}

// CasbinEnforcer is the subset of the casbin enforcer the policy service uses
type CasbinEnforcer interface {
	AddPolicy(params ...interface{}) (bool, error)
	RemovePolicy(params ...interface{}) (bool, error)
	Enforce(rvals ...interface{}) (bool, error)
	GetPolicy() ([][]string, error)
	SavePolicy() error
}

// TokenClaims represents access token claims
type TokenClaims struct {
	UserID    uint  `json:"user_id"`
	Role      Role  `json:"role"`
	IssuedAt  int64 `json:"iat"`
	ExpiresAt int64 `json:"exp"`
}
