package mocks

import (
	"context"
	"time"

	"github.com/Debmalya06/Mess-Milega-sub000/domain"
)

// MockAuthService implements domain.AuthService interface for testing
type MockAuthService struct {
	RegisterFunc         func(ctx context.Context, req domain.RegisterRequest) (*domain.Account, error)
	VerifySignupFunc     func(ctx context.Context, email, code string) error
	ResendSignupCodeFunc func(ctx context.Context, email string) error
	LoginFunc            func(ctx context.Context, email, password string) (*domain.LoginResponse, error)
	ProfileFunc          func(ctx context.Context, userID uint) (*domain.User, error)
}

// NewMockAuthService creates a new MockAuthService with default behaviors
func NewMockAuthService() *MockAuthService {
	return &MockAuthService{}
}

// Register returns an unverified account built from the request
func (m *MockAuthService) Register(ctx context.Context, req domain.RegisterRequest) (*domain.Account, error) {
	if m.RegisterFunc != nil {
		return m.RegisterFunc(ctx, req)
	}
	now := time.Now()
	return &domain.Account{
		ID:           1,
		FullName:     req.FullName,
		Email:        req.Email,
		PhoneNumber:  req.PhoneNumber,
		PasswordHash: "hashed_" + req.Password,
		Role:         req.Role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

// VerifySignup accepts MockOTPCode
func (m *MockAuthService) VerifySignup(ctx context.Context, email, code string) error {
	if m.VerifySignupFunc != nil {
		return m.VerifySignupFunc(ctx, email, code)
	}
	if code != MockOTPCode {
		return domain.ErrOTPInvalid
	}
	return nil
}

// ResendSignupCode succeeds by default
func (m *MockAuthService) ResendSignupCode(ctx context.Context, email string) error {
	if m.ResendSignupCodeFunc != nil {
		return m.ResendSignupCodeFunc(ctx, email)
	}
	return nil
}

// Login issues a fixed token for any credentials
func (m *MockAuthService) Login(ctx context.Context, email, password string) (*domain.LoginResponse, error) {
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx, email, password)
	}
	return &domain.LoginResponse{
		AccessToken: "mock_access_token",
		ID:          1,
		FullName:    "Mock User",
		Email:       email,
		Role:        domain.RoleRoomFinder,
	}, nil
}

// Profile returns a room finder with the given id
func (m *MockAuthService) Profile(ctx context.Context, userID uint) (*domain.User, error) {
	if m.ProfileFunc != nil {
		return m.ProfileFunc(ctx, userID)
	}
	return &domain.User{ID: userID, FullName: "Mock User", Email: "mock@example.com", Role: domain.RoleRoomFinder}, nil
}

// Compile-time interface compliance verification
var _ domain.AuthService = (*MockAuthService)(nil)
