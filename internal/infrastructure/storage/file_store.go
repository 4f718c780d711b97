package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/Debmalya06/Mess-Milega-sub000/domain"
)

// FileTokenStore keeps the bearer token in a single user-private file
type FileTokenStore struct {
	path string
}

// NewFileTokenStore creates a token store at path
func NewFileTokenStore(path string) domain.TokenStore {
	return &FileTokenStore{path: path}
}

// Load implements domain.TokenStore
func (s *FileTokenStore) Load(ctx context.Context) (string, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", domain.ErrTokenNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to read token file: %w", err)
	}
	token := strings.TrimSpace(string(data))
	if token == "" {
		return "", domain.ErrTokenNotFound
	}
	return token, nil
}

// Save implements domain.TokenStore. The file is replaced atomically.
func (s *FileTokenStore) Save(ctx context.Context, token string) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("failed to create token directory: %w", err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".token-*")
	if err != nil {
		return fmt.Errorf("failed to create token file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.WriteString(token); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write token file: %w", err)
	}
	if err := tmp.Chmod(0o600); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to protect token file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write token file: %w", err)
	}
	return os.Rename(tmp.Name(), s.path)
}

// Clear implements domain.TokenStore. Clearing an empty store is a no-op.
func (s *FileTokenStore) Clear(ctx context.Context) error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to remove token file: %w", err)
	}
	return nil
}
