package mocks

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Debmalya06/Mess-Milega-sub000/domain"
)

// MockTokenService implements domain.TokenService with readable tokens of
// the form "access_<id>_<role>"
type MockTokenService struct {
	GenerateAccessTokenFunc func(userID uint, role domain.Role) (string, error)
	ValidateAccessTokenFunc func(token string) (*domain.TokenClaims, error)
}

// NewMockTokenService creates a new MockTokenService with default behaviors
func NewMockTokenService() *MockTokenService {
	return &MockTokenService{}
}

// GenerateAccessToken encodes the user id and role into the token text
func (m *MockTokenService) GenerateAccessToken(userID uint, role domain.Role) (string, error) {
	if m.GenerateAccessTokenFunc != nil {
		return m.GenerateAccessTokenFunc(userID, role)
	}
	return fmt.Sprintf("access_%d_%s", userID, role), nil
}

// ValidateAccessToken parses tokens produced by GenerateAccessToken
func (m *MockTokenService) ValidateAccessToken(token string) (*domain.TokenClaims, error) {
	if m.ValidateAccessTokenFunc != nil {
		return m.ValidateAccessTokenFunc(token)
	}
	parts := strings.SplitN(token, "_", 3)
	if len(parts) != 3 || parts[0] != "access" {
		return nil, domain.ErrTokenInvalid
	}
	id, err := strconv.ParseUint(parts[1], 10, 64)
	if err != nil {
		return nil, domain.ErrTokenMalformed
	}
	now := time.Now().Unix()
	return &domain.TokenClaims{
		UserID:    uint(id),
		Role:      domain.Role(parts[2]),
		IssuedAt:  now,
		ExpiresAt: now + 900,
	}, nil
}

// Compile-time interface compliance verification
var _ domain.TokenService = (*MockTokenService)(nil)
