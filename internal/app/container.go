package app

import (
	"context"
	"fmt"
	"time"

	"github.com/Debmalya06/Mess-Milega-sub000/domain"
	"github.com/Debmalya06/Mess-Milega-sub000/internal/client"
	"github.com/Debmalya06/Mess-Milega-sub000/internal/config"
	"github.com/Debmalya06/Mess-Milega-sub000/internal/infrastructure/database"
	"github.com/Debmalya06/Mess-Milega-sub000/internal/infrastructure/storage"
	"github.com/Debmalya06/Mess-Milega-sub000/internal/realtime"
	"github.com/Debmalya06/Mess-Milega-sub000/internal/session"
	"github.com/Debmalya06/Mess-Milega-sub000/internal/transport"
)

// Token store kinds accepted in configuration
const (
	TokenStoreFile   = "file"
	TokenStoreRedis  = "redis"
	TokenStoreMemory = "memory"
)

const redisTokenPrefix = "messmilega:client:"

// Container holds the client-side dependencies: one transport, one session
// manager that owns its credential, and one realtime channel bound to it.
type Container struct {
	Config *config.Config

	Transport *transport.Client
	Store     domain.TokenStore
	Session   *session.Manager
	Channel   *realtime.Channel
	API       *client.API

	redis      *database.RedisClient
	stopFollow func()
}

// NewContainer wires the client. nav receives the login route when a request
// is rejected with 401.
func NewContainer(cfg *config.Config, nav domain.Navigator, opts ...realtime.Option) (*Container, error) {
	c := &Container{Config: cfg}

	retry := transport.DefaultRetryPolicy()
	if cfg.RetryMax > 0 {
		retry.MaxTries = uint(cfg.RetryMax)
	}
	tc, err := transport.New(cfg.APIURL, transport.WithTimeout(cfg.Timeout), transport.WithRetry(retry))
	if err != nil {
		return nil, err
	}
	c.Transport = tc

	if err := c.initStore(); err != nil {
		return nil, err
	}

	c.Session = session.NewManager(tc, c.Store)
	tc.Use(c.Session.AuthFailurePolicy(nav))

	if cfg.Reconnect {
		opts = append(opts, realtime.WithReconnect(realtime.ReconnectPolicy{
			MaxTries:        uint(cfg.ReconnectTries),
			InitialInterval: 500 * time.Millisecond,
			MaxInterval:     10 * time.Second,
		}))
	}
	c.Channel = realtime.NewChannel(realtime.NewWebSocketDialer(), cfg.SocketURL, opts...)
	c.API = client.New(tc)
	return c, nil
}

func (c *Container) initStore() error {
	switch c.Config.TokenStore {
	case "", TokenStoreFile:
		c.Store = storage.NewFileTokenStore(c.Config.TokenPath)
	case TokenStoreMemory:
		c.Store = storage.NewMemoryTokenStore()
	case TokenStoreRedis:
		rdb := database.NewRedis(c.Config.RedisAddr, c.Config.RedisPassword, c.Config.RedisDB)
		c.redis = rdb
		c.Store = storage.NewRedisTokenStore(rdb.Client, redisTokenPrefix, c.Config.AccessTTL)
	default:
		return fmt.Errorf("%w: unknown token store %q", domain.ErrInvalidInput, c.Config.TokenStore)
	}
	return nil
}

// Restore rehydrates the persisted session and reports the user, if any
func (c *Container) Restore(ctx context.Context) *domain.User {
	return c.Session.Restore(ctx)
}

// Connect binds the realtime channel to the session: it opens now if a
// session exists and follows every later login and logout
func (c *Container) Connect() {
	if c.stopFollow == nil {
		c.stopFollow = c.Channel.Follow(c.Session)
	}
}

// Close stops the realtime binding and releases the token store
func (c *Container) Close() error {
	if c.stopFollow != nil {
		c.stopFollow()
		c.stopFollow = nil
	} else {
		c.Channel.Close()
	}
	if c.redis != nil {
		return c.redis.Close()
	}
	return nil
}
