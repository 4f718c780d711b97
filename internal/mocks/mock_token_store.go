package mocks

import (
	"context"
	"sync"

	"github.com/Debmalya06/Mess-Milega-sub000/domain"
)

// MockTokenStore implements domain.TokenStore and counts calls
type MockTokenStore struct {
	LoadFunc  func(ctx context.Context) (string, error)
	SaveFunc  func(ctx context.Context, token string) error
	ClearFunc func(ctx context.Context) error

	mu         sync.Mutex
	token      string
	SaveCalls  int
	ClearCalls int
}

// NewMockTokenStore creates a MockTokenStore holding token ("" for empty)
func NewMockTokenStore(token string) *MockTokenStore {
	return &MockTokenStore{token: token}
}

func (m *MockTokenStore) Load(ctx context.Context) (string, error) {
	if m.LoadFunc != nil {
		return m.LoadFunc(ctx)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.token == "" {
		return "", domain.ErrTokenNotFound
	}
	return m.token, nil
}

func (m *MockTokenStore) Save(ctx context.Context, token string) error {
	m.mu.Lock()
	m.SaveCalls++
	m.mu.Unlock()
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, token)
	}
	m.mu.Lock()
	m.token = token
	m.mu.Unlock()
	return nil
}

func (m *MockTokenStore) Clear(ctx context.Context) error {
	m.mu.Lock()
	m.ClearCalls++
	m.mu.Unlock()
	if m.ClearFunc != nil {
		return m.ClearFunc(ctx)
	}
	m.mu.Lock()
	m.token = ""
	m.mu.Unlock()
	return nil
}

// MockNavigator records every route it is sent to
type MockNavigator struct {
	mu     sync.Mutex
	routes []string
}

func (n *MockNavigator) Navigate(route string) {
	n.mu.Lock()
	n.routes = append(n.routes, route)
	n.mu.Unlock()
}

// Routes returns the recorded routes in order
func (n *MockNavigator) Routes() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.routes...)
}

// Compile-time interface compliance verification
var (
	_ domain.TokenStore = (*MockTokenStore)(nil)
	_ domain.Navigator  = (*MockNavigator)(nil)
)
