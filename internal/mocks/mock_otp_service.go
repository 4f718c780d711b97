package mocks

import (
	"context"
	"time"

	"github.com/Debmalya06/Mess-Milega-sub000/domain"
)

// MockOTPCode is the code the default MockOTPService issues and accepts
const MockOTPCode = "123456"

// MockOTPService implements domain.OTPService interface for testing
type MockOTPService struct {
	GenerateFunc  func(ctx context.Context, email string) (*domain.OTPRequest, error)
	VerifyFunc    func(ctx context.Context, email, code string) (bool, error)
	CanResendFunc func(ctx context.Context, email string) (bool, int64, error)
}

// NewMockOTPService creates a new MockOTPService with default behaviors
func NewMockOTPService() *MockOTPService {
	return &MockOTPService{}
}

// Generate issues MockOTPCode for the email
func (m *MockOTPService) Generate(ctx context.Context, email string) (*domain.OTPRequest, error) {
	if m.GenerateFunc != nil {
		return m.GenerateFunc(ctx, email)
	}
	return &domain.OTPRequest{
		Email:     email,
		Code:      MockOTPCode,
		ExpiresAt: time.Now().Add(10 * time.Minute),
	}, nil
}

// Verify accepts MockOTPCode
func (m *MockOTPService) Verify(ctx context.Context, email, code string) (bool, error) {
	if m.VerifyFunc != nil {
		return m.VerifyFunc(ctx, email, code)
	}
	return code == MockOTPCode, nil
}

// CanResend always allows a resend
func (m *MockOTPService) CanResend(ctx context.Context, email string) (bool, int64, error) {
	if m.CanResendFunc != nil {
		return m.CanResendFunc(ctx, email)
	}
	return true, 0, nil
}

// Compile-time interface compliance verification
var _ domain.OTPService = (*MockOTPService)(nil)
