package auth

import (
	"golang.org/x/crypto/bcrypt"

	"github.com/Debmalya06/Mess-Milega-sub000/domain"
)

// PasswordServiceImpl implements domain.PasswordService with bcrypt
type PasswordServiceImpl struct {
	cost int
}

// NewPasswordService creates a password service at bcrypt's default cost
func NewPasswordService() *PasswordServiceImpl {
	return NewPasswordServiceWithCost(bcrypt.DefaultCost)
}

// NewPasswordServiceWithCost is NewPasswordService with an explicit cost;
// tests use bcrypt.MinCost
func NewPasswordServiceWithCost(cost int) *PasswordServiceImpl {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &PasswordServiceImpl{cost: cost}
}

// Hash implements domain.PasswordService
func (p *PasswordServiceImpl) Hash(password string) (string, error) {
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(password), p.cost)
	if err != nil {
		return "", err
	}
	return string(hashedBytes), nil
}

// Verify implements domain.PasswordService
func (p *PasswordServiceImpl) Verify(hashedPassword, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password)) == nil
}

var _ domain.PasswordService = (*PasswordServiceImpl)(nil)
