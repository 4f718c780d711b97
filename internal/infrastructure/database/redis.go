package database

import (
	"context"
	"fmt"
	"log"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

type RedisClient struct {
	*redis.Client
	embedded *miniredis.Miniredis
}

func NewRedis(addr, pass string, db int) *RedisClient {
	return &RedisClient{Client: redis.NewClient(&redis.Options{Addr: addr, Password: pass, DB: db})}
}

// OpenRedis connects to addr. An empty addr starts an in-process miniredis
// so the dev server runs without external services.
func OpenRedis(ctx context.Context, addr, pass string, db int) (*RedisClient, error) {
	if addr == "" {
		mr, err := miniredis.Run()
		if err != nil {
			return nil, fmt.Errorf("failed to start embedded redis: %w", err)
		}
		log.Printf("REDIS_EMBEDDED: addr=%s", mr.Addr())
		c := NewRedis(mr.Addr(), "", 0)
		c.embedded = mr
		return c, nil
	}

	c := NewRedis(addr, pass, db)
	if err := c.Ping(ctx); err != nil {
		_ = c.Client.Close()
		return nil, fmt.Errorf("failed to reach redis at %s: %w", addr, err)
	}
	return c, nil
}

func (c *RedisClient) Ping(ctx context.Context) error { return c.Client.Ping(ctx).Err() }

// Embedded reports whether the client talks to an in-process server
func (c *RedisClient) Embedded() bool { return c.embedded != nil }

func (c *RedisClient) Close() error {
	err := c.Client.Close()
	if c.embedded != nil {
		c.embedded.Close()
	}
	return err
}
