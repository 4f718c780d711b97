package domain

import (
	"fmt"
	"net/mail"
	"regexp"
	"strings"
	"time"
)

// Role is the backend's role vocabulary
type Role string

const (
	RolePGOwner    Role = "PG_OWNER"
	RoleRoomFinder Role = "ROOM_FINDER"
)

// Account types offered on the signup form
const (
	AccountTypeOwner  = "owner"
	AccountTypeSeeker = "seeker"
)

// RoleForAccountType maps the signup form's account type to a backend role.
// Only "owner" maps to PG_OWNER; every other value is a room finder.
func RoleForAccountType(accountType string) Role {
	if strings.EqualFold(strings.TrimSpace(accountType), AccountTypeOwner) {
		return RolePGOwner
	}
	return RoleRoomFinder
}

// Valid reports whether r is one of the known roles
func (r Role) Valid() bool {
	return r == RolePGOwner || r == RoleRoomFinder
}

// User is the identity resolved for a bearer token
type User struct {
	ID       uint   `json:"id"`
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Role     Role   `json:"role"`
}

// Session pairs a bearer token with the identity it resolves to.
// Both fields are set or the session does not exist.
type Session struct {
	Token string
	User  *User
}

// Account is the backend's stored user record
type Account struct {
	ID            uint
	FullName      string
	Email         string
	PhoneNumber   string
	PasswordHash  string
	Role          Role
	EmailVerified bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Profile returns the public identity of the account
func (a *Account) Profile() *User {
	return &User{ID: a.ID, FullName: a.FullName, Email: a.Email, Role: a.Role}
}

// LoginRequest is the credential exchange payload
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse carries the issued token and the flattened identity
type LoginResponse struct {
	AccessToken string `json:"accessToken"`
	ID          uint   `json:"id"`
	FullName    string `json:"fullName"`
	Email       string `json:"email"`
	Role        Role   `json:"role"`
}

// User returns the identity part of the response
func (r *LoginResponse) User() *User {
	return &User{ID: r.ID, FullName: r.FullName, Email: r.Email, Role: r.Role}
}

// RegisterForm holds the signup form fields as the user typed them
type RegisterForm struct {
	Name     string
	Email    string
	Phone    string
	Password string
	Role     string
}

// MinPasswordLength is the shortest password the signup form and the
// backend accept
const MinPasswordLength = 6

// Validate checks the fields a signup request cannot be sent without
func (f RegisterForm) Validate() error {
	switch {
	case strings.TrimSpace(f.Name) == "":
		return fmt.Errorf("%w: full name is required", ErrInvalidInput)
	case strings.TrimSpace(f.Email) == "":
		return fmt.Errorf("%w: email is required", ErrInvalidInput)
	case !validEmail(f.Email):
		return fmt.Errorf("%w: email address is not valid", ErrInvalidInput)
	case strings.TrimSpace(f.Phone) == "":
		return fmt.Errorf("%w: phone number is required", ErrInvalidInput)
	case f.Password == "":
		return fmt.Errorf("%w: password is required", ErrInvalidInput)
	}
	return nil
}

// ValidatePassword enforces the password length policy
func (f RegisterForm) ValidatePassword() error {
	if len(f.Password) < MinPasswordLength {
		return fmt.Errorf("%w: password must be at least %d characters", ErrInvalidInput, MinPasswordLength)
	}
	return nil
}

// Request converts the form into the backend signup payload
func (f RegisterForm) Request() RegisterRequest {
	return RegisterRequest{
		FullName:    strings.TrimSpace(f.Name),
		Email:       strings.TrimSpace(f.Email),
		PhoneNumber: strings.TrimSpace(f.Phone),
		Password:    f.Password,
		Role:        RoleForAccountType(f.Role),
	}
}

// RegisterRequest is the signup payload
type RegisterRequest struct {
	FullName    string `json:"fullName"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phoneNumber"`
	Password    string `json:"password"`
	Role        Role   `json:"role"`
}

// VerifyOTPRequest confirms a signup with the emailed code
type VerifyOTPRequest struct {
	Email string `json:"email"`
	OTP   string `json:"otp"`
}

// ResendOTPRequest asks for a fresh signup code
type ResendOTPRequest struct {
	Email string `json:"email"`
}

// MessageResponse is the generic acknowledgement body
type MessageResponse struct {
	Message string `json:"message"`
}

// Result is what session operations hand back to calling views.
// Failures are values, never errors.
type Result struct {
	Success              bool   `json:"success"`
	Error                string `json:"error,omitempty"`
	Message              string `json:"message,omitempty"`
	RequiresVerification bool   `json:"requiresVerification,omitempty"`
	Email                string `json:"email,omitempty"`
}

// Failure builds a failed result
func Failure(msg string) Result {
	return Result{Success: false, Error: msg}
}

// OTPRequest is a pending signup verification code
type OTPRequest struct {
	Email     string
	Code      string
	ExpiresAt time.Time
	Attempts  int
}

// Property listing attributes
const (
	PropertyTypePG         = "PG"
	PropertyTypeHostel     = "HOSTEL"
	PropertyTypeFlat       = "FLAT"
	RoomTypeSingle         = "SINGLE"
	RoomTypeDouble         = "DOUBLE"
	RoomTypeTriple         = "TRIPLE"
	GenderPreferenceMale   = "MALE"
	GenderPreferenceFemale = "FEMALE"
	GenderPreferenceAny    = "ANY"
)

// Property is a listed accommodation
type Property struct {
	ID               uint     `json:"id"`
	Name             string   `json:"name"`
	Description      string   `json:"description,omitempty"`
	Address          string   `json:"address"`
	City             string   `json:"city"`
	Pincode          string   `json:"pincode"`
	PropertyType     string   `json:"propertyType"`
	RoomType         string   `json:"roomType"`
	GenderPreference string   `json:"genderPreference"`
	MonthlyRent      float64  `json:"monthlyRent"`
	SecurityDeposit  float64  `json:"securityDeposit,omitempty"`
	TotalRooms       int      `json:"totalRooms"`
	AvailableRooms   int      `json:"availableRooms"`
	Amenities        []string `json:"amenities,omitempty"`
	OwnerID          uint     `json:"ownerId"`
	OwnerName        string   `json:"ownerName,omitempty"`
	Verified         bool     `json:"verified"`
}

// OccupiedRooms is the number of rooms not available
func (p Property) OccupiedRooms() int {
	if p.AvailableRooms >= p.TotalRooms {
		return 0
	}
	if p.AvailableRooms < 0 {
		return p.TotalRooms
	}
	return p.TotalRooms - p.AvailableRooms
}

// PropertySearch holds the public search filters. Zero values are omitted.
type PropertySearch struct {
	City             string
	PropertyType     string
	RoomType         string
	GenderPreference string
	MinPrice         float64
	MaxPrice         float64
}

// Validate checks the price range
func (s PropertySearch) Validate() error {
	if s.MinPrice < 0 || s.MaxPrice < 0 {
		return fmt.Errorf("%w: prices cannot be negative", ErrInvalidInput)
	}
	if s.MaxPrice > 0 && s.MinPrice > s.MaxPrice {
		return fmt.Errorf("%w: minimum price is above maximum price", ErrInvalidInput)
	}
	return nil
}

var pincodePattern = regexp.MustCompile(`^[1-9][0-9]{5}$`)

// PropertyDraft is the owner's add-property form
type PropertyDraft struct {
	Name             string   `json:"name"`
	Description      string   `json:"description,omitempty"`
	Address          string   `json:"address"`
	City             string   `json:"city"`
	Pincode          string   `json:"pincode"`
	PropertyType     string   `json:"propertyType"`
	RoomType         string   `json:"roomType"`
	GenderPreference string   `json:"genderPreference"`
	MonthlyRent      float64  `json:"monthlyRent"`
	SecurityDeposit  float64  `json:"securityDeposit,omitempty"`
	TotalRooms       int      `json:"totalRooms"`
	AvailableRooms   int      `json:"availableRooms"`
	Amenities        []string `json:"amenities,omitempty"`
}

// Validate runs the add-property form checks in step order
func (d PropertyDraft) Validate() error {
	switch {
	case len(strings.TrimSpace(d.Name)) < 3:
		return fmt.Errorf("%w: property name must be at least 3 characters", ErrInvalidInput)
	case strings.TrimSpace(d.Address) == "":
		return fmt.Errorf("%w: address is required", ErrInvalidInput)
	case strings.TrimSpace(d.City) == "":
		return fmt.Errorf("%w: city is required", ErrInvalidInput)
	case !pincodePattern.MatchString(d.Pincode):
		return fmt.Errorf("%w: pincode must be 6 digits", ErrInvalidInput)
	case d.PropertyType == "":
		return fmt.Errorf("%w: property type is required", ErrInvalidInput)
	case d.RoomType == "":
		return fmt.Errorf("%w: room type is required", ErrInvalidInput)
	case d.MonthlyRent <= 0:
		return fmt.Errorf("%w: monthly rent must be positive", ErrInvalidInput)
	case d.SecurityDeposit < 0:
		return fmt.Errorf("%w: security deposit cannot be negative", ErrInvalidInput)
	case d.TotalRooms <= 0:
		return fmt.Errorf("%w: total rooms must be positive", ErrInvalidInput)
	case d.AvailableRooms < 0 || d.AvailableRooms > d.TotalRooms:
		return fmt.Errorf("%w: available rooms must be between 0 and total rooms", ErrInvalidInput)
	}
	return nil
}

// BookingStatus is the server-side state of a booking
type BookingStatus string

const (
	BookingPending   BookingStatus = "PENDING"
	BookingApproved  BookingStatus = "APPROVED"
	BookingRejected  BookingStatus = "REJECTED"
	BookingCancelled BookingStatus = "CANCELLED"
)

// CheckInDateLayout is the wire format of booking dates
const CheckInDateLayout = "2006-01-02"

// MaxBookingMonths bounds a single booking request
const MaxBookingMonths = 24

// BookingRequest asks an owner for a room
type BookingRequest struct {
	PropertyID     uint   `json:"propertyId"`
	CheckInDate    string `json:"checkInDate"`
	NumberOfMonths int    `json:"numberOfMonths"`
}

// Validate checks the booking form. today is the caller's current date.
func (r BookingRequest) Validate(today time.Time) error {
	if r.PropertyID == 0 {
		return fmt.Errorf("%w: property is required", ErrInvalidInput)
	}
	checkIn, err := time.Parse(CheckInDateLayout, r.CheckInDate)
	if err != nil {
		return fmt.Errorf("%w: check-in date must be YYYY-MM-DD", ErrInvalidInput)
	}
	y, m, d := today.Date()
	if checkIn.Before(time.Date(y, m, d, 0, 0, 0, 0, time.UTC)) {
		return fmt.Errorf("%w: check-in date cannot be in the past", ErrInvalidInput)
	}
	if r.NumberOfMonths < 1 || r.NumberOfMonths > MaxBookingMonths {
		return fmt.Errorf("%w: number of months must be between 1 and %d", ErrInvalidInput, MaxBookingMonths)
	}
	return nil
}

// Booking is a tenant's request against a property
type Booking struct {
	ID             uint          `json:"id"`
	Reference      string        `json:"reference,omitempty"`
	PropertyID     uint          `json:"propertyId"`
	PropertyName   string        `json:"propertyName,omitempty"`
	TenantID       uint          `json:"tenantId"`
	TenantName     string        `json:"tenantName,omitempty"`
	CheckInDate    string        `json:"checkInDate"`
	NumberOfMonths int           `json:"numberOfMonths"`
	MonthlyRent    float64       `json:"monthlyRent"`
	TotalAmount    float64       `json:"totalAmount"`
	Status         BookingStatus `json:"status"`
	CreatedAt      time.Time     `json:"createdAt"`
}

// BookingDecision is an owner's answer to a pending booking
type BookingDecision struct {
	Status BookingStatus `json:"status"`
}

// Inquiry is a seeker's question about a property
type Inquiry struct {
	ID         uint      `json:"id"`
	PropertyID uint      `json:"propertyId"`
	SenderID   uint      `json:"senderId"`
	SenderName string    `json:"senderName,omitempty"`
	Message    string    `json:"message"`
	CreatedAt  time.Time `json:"createdAt"`
}

// InquiryRequest is the inquiry form payload
type InquiryRequest struct {
	PropertyID uint   `json:"propertyId"`
	Message    string `json:"message"`
}

// DashboardSummary is the owner dashboard aggregate served by the backend
type DashboardSummary struct {
	TotalProperties int     `json:"totalProperties"`
	TotalBookings   int     `json:"totalBookings"`
	PendingBookings int     `json:"pendingBookings"`
	TotalRevenue    float64 `json:"totalRevenue"`
}

// OwnerDashboard is the summary merged with the lists and stats derived from them
type OwnerDashboard struct {
	Summary          DashboardSummary
	Properties       []Property
	Bookings         []Booking
	TotalRooms       int
	OccupiedRooms    int
	OccupancyPercent float64
	PendingBookings  int
	Revenue          string
}

// ChatMessage is one record of the realtime message log
type ChatMessage struct {
	SenderID   uint      `json:"senderId"`
	ReceiverID uint      `json:"receiverId"`
	Message    string    `json:"message"`
	Timestamp  time.Time `json:"timestamp"`
}

func validEmail(s string) bool {
	addr, err := mail.ParseAddress(s)
	return err == nil && addr.Address == strings.TrimSpace(s)
}
