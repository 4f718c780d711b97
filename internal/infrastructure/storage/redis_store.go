package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Debmalya06/Mess-Milega-sub000/domain"
)

// RedisTokenStore keeps the bearer token under one Redis key, for clients
// that share a profile across machines
type RedisTokenStore struct {
	client *redis.Client
	key    string
	ttl    time.Duration
}

// NewRedisTokenStore creates a token store under prefix+"token". A zero ttl
// keeps the token until it is cleared.
func NewRedisTokenStore(client *redis.Client, prefix string, ttl time.Duration) domain.TokenStore {
	return &RedisTokenStore{
		client: client,
		key:    prefix + "token",
		ttl:    ttl,
	}
}

// Load implements domain.TokenStore
func (s *RedisTokenStore) Load(ctx context.Context) (string, error) {
	token, err := s.client.Get(ctx, s.key).Result()
	if errors.Is(err, redis.Nil) || (err == nil && token == "") {
		return "", domain.ErrTokenNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to load token from Redis: %w", err)
	}
	return token, nil
}

// Save implements domain.TokenStore
func (s *RedisTokenStore) Save(ctx context.Context, token string) error {
	if err := s.client.Set(ctx, s.key, token, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to store token in Redis: %w", err)
	}
	return nil
}

// Clear implements domain.TokenStore
func (s *RedisTokenStore) Clear(ctx context.Context) error {
	return s.client.Del(ctx, s.key).Err()
}
