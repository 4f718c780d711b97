package mocks

import (
	"context"
	"sync"

	"github.com/Debmalya06/Mess-Milega-sub000/domain"
)

// MockAccountRepository implements domain.AccountRepository. Without
// overrides it behaves as an in-memory table.
type MockAccountRepository struct {
	CreateFunc            func(ctx context.Context, account *domain.Account) error
	FindByEmailFunc       func(ctx context.Context, email string) (*domain.Account, error)
	FindByIDFunc          func(ctx context.Context, id uint) (*domain.Account, error)
	MarkEmailVerifiedFunc func(ctx context.Context, id uint) error

	mu       sync.Mutex
	accounts map[uint]*domain.Account
	nextID   uint
}

// NewMockAccountRepository creates an empty MockAccountRepository
func NewMockAccountRepository() *MockAccountRepository {
	return &MockAccountRepository{accounts: make(map[uint]*domain.Account)}
}

// Create stores the account and assigns an id
func (m *MockAccountRepository) Create(ctx context.Context, account *domain.Account) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, account)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range m.accounts {
		if a.Email == account.Email {
			return domain.ErrUserAlreadyExists
		}
	}
	m.nextID++
	account.ID = m.nextID
	stored := *account
	m.accounts[account.ID] = &stored
	return nil
}

// FindByEmail looks an account up by email
func (m *MockAccountRepository) FindByEmail(ctx context.Context, email string) (*domain.Account, error) {
	if m.FindByEmailFunc != nil {
		return m.FindByEmailFunc(ctx, email)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range m.accounts {
		if a.Email == email {
			out := *a
			return &out, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

// FindByID looks an account up by id
func (m *MockAccountRepository) FindByID(ctx context.Context, id uint) (*domain.Account, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.accounts[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	out := *a
	return &out, nil
}

// MarkEmailVerified flags the account as verified
func (m *MockAccountRepository) MarkEmailVerified(ctx context.Context, id uint) error {
	if m.MarkEmailVerifiedFunc != nil {
		return m.MarkEmailVerifiedFunc(ctx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.accounts[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	a.EmailVerified = true
	return nil
}

// Compile-time interface compliance verification
var _ domain.AccountRepository = (*MockAccountRepository)(nil)
