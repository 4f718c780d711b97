package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Debmalya06/Mess-Milega-sub000/domain"
)

// setupTestRedis creates an in-memory Redis instance for testing
func setupTestRedis(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	return redis.NewClient(&redis.Options{Addr: mr.Addr()}), mr
}

func TestTokenStores(t *testing.T) {
	stores := map[string]func(t *testing.T) domain.TokenStore{
		"file": func(t *testing.T) domain.TokenStore {
			return NewFileTokenStore(filepath.Join(t.TempDir(), "nested", "token"))
		},
		"redis": func(t *testing.T) domain.TokenStore {
			client, _ := setupTestRedis(t)
			return NewRedisTokenStore(client, "messmilega:", 0)
		},
		"memory": func(t *testing.T) domain.TokenStore {
			return NewMemoryTokenStore()
		},
	}

	for name, build := range stores {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			store := build(t)

			_, err := store.Load(ctx)
			assert.ErrorIs(t, err, domain.ErrTokenNotFound)

			require.NoError(t, store.Save(ctx, "T1"))
			token, err := store.Load(ctx)
			require.NoError(t, err)
			assert.Equal(t, "T1", token)

			require.NoError(t, store.Save(ctx, "T2"))
			token, err = store.Load(ctx)
			require.NoError(t, err)
			assert.Equal(t, "T2", token)

			require.NoError(t, store.Clear(ctx))
			_, err = store.Load(ctx)
			assert.ErrorIs(t, err, domain.ErrTokenNotFound)

			// clearing twice is a no-op
			require.NoError(t, store.Clear(ctx))
		})
	}
}

func TestFileTokenStore_Permissions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token")
	store := NewFileTokenStore(path)

	require.NoError(t, store.Save(context.Background(), "T1"))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestFileTokenStore_BlankFileIsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token")
	require.NoError(t, os.WriteFile(path, []byte("  \n"), 0o600))

	_, err := NewFileTokenStore(path).Load(context.Background())
	assert.ErrorIs(t, err, domain.ErrTokenNotFound)
}

func TestRedisTokenStore_TTL(t *testing.T) {
	client, mr := setupTestRedis(t)
	store := NewRedisTokenStore(client, "messmilega:", time.Hour)

	require.NoError(t, store.Save(context.Background(), "T1"))
	assert.Equal(t, time.Hour, mr.TTL("messmilega:token"))

	mr.FastForward(2 * time.Hour)
	_, err := store.Load(context.Background())
	assert.ErrorIs(t, err, domain.ErrTokenNotFound)
}
