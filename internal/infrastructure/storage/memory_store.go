package storage

import (
	"context"
	"sync"

	"github.com/Debmalya06/Mess-Milega-sub000/domain"
)

// MemoryTokenStore keeps the token for the life of the process
type MemoryTokenStore struct {
	mu    sync.Mutex
	token string
}

// NewMemoryTokenStore creates an empty in-process store
func NewMemoryTokenStore() *MemoryTokenStore {
	return &MemoryTokenStore{}
}

// Load implements domain.TokenStore
func (s *MemoryTokenStore) Load(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.token == "" {
		return "", domain.ErrTokenNotFound
	}
	return s.token, nil
}

// Save implements domain.TokenStore
func (s *MemoryTokenStore) Save(ctx context.Context, token string) error {
	s.mu.Lock()
	s.token = token
	s.mu.Unlock()
	return nil
}

// Clear implements domain.TokenStore
func (s *MemoryTokenStore) Clear(ctx context.Context) error {
	return s.Save(ctx, "")
}
