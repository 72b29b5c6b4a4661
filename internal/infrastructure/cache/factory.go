package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/institute/backend/internal/application/certification"
	"github.com/institute/backend/internal/domain/shared"
	"github.com/institute/backend/internal/infrastructure/config"
)

// Factory builds the Redis backed stores from configuration
type Factory struct {
	cfg                   config.RedisConfig
	logger                *zap.Logger
	allowInMemoryFallback bool
	pingTimeout           time.Duration
}

// FactoryOption configures a Factory
type FactoryOption func(*Factory)

// WithLogger sets the logger for the factory
func WithLogger(logger *zap.Logger) FactoryOption {
	return func(f *Factory) { f.logger = logger }
}

// WithInMemoryFallback controls whether an unreachable Redis falls back to
// the in-memory cache. Default is true.
func WithInMemoryFallback(allow bool) FactoryOption {
	return func(f *Factory) { f.allowInMemoryFallback = allow }
}

// WithPingTimeout bounds the startup connectivity check
func WithPingTimeout(d time.Duration) FactoryOption {
	return func(f *Factory) { f.pingTimeout = d }
}

// NewFactory creates a new Factory
func NewFactory(cfg config.RedisConfig, opts ...FactoryOption) *Factory {
	f := &Factory{
		cfg:                   cfg,
		logger:                zap.NewNop(),
		allowInMemoryFallback: true,
		pingTimeout:           5 * time.Second,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// NewRedisClient opens and pings a Redis client
func (f *Factory) NewRedisClient(ctx context.Context) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     f.cfg.Addr(),
		Password: f.cfg.Password,
		DB:       f.cfg.DB,
	})
	ctx, cancel := context.WithTimeout(ctx, f.pingTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis at %s: %w", f.cfg.Addr(), err)
	}
	return client, nil
}

// CreateVerificationCache returns the Redis cache when enabled and reachable,
// otherwise the in-memory cache. The returned close func releases the client.
func (f *Factory) CreateVerificationCache(ctx context.Context) (certification.VerificationCache, func() error, error) {
	noop := func() error { return nil }
	if !f.cfg.Enabled {
		f.logger.Info("Redis disabled, using in-memory verification cache")
		return NewInMemoryVerificationCache(f.cfg.CacheTTL), noop, nil
	}

	client, err := f.NewRedisClient(ctx)
	if err == nil {
		f.logger.Info("Using Redis verification cache", zap.String("addr", f.cfg.Addr()))
		return NewRedisVerificationCache(client, "", f.cfg.CacheTTL), client.Close, nil
	}
	if !f.allowInMemoryFallback {
		return nil, nil, err
	}

	f.logger.Warn("Redis unavailable, falling back to in-memory verification cache", zap.Error(err))
	return NewInMemoryVerificationCache(f.cfg.CacheTTL), noop, nil
}

// CreateIdempotencyStore returns the Redis store when enabled and reachable,
// otherwise the in-memory store. Close releases either.
func (f *Factory) CreateIdempotencyStore(ctx context.Context) (shared.IdempotencyStore, error) {
	if !f.cfg.Enabled {
		f.logger.Info("Redis disabled, using in-memory idempotency store")
		return NewInMemoryIdempotencyStore(0), nil
	}

	client, err := f.NewRedisClient(ctx)
	if err == nil {
		f.logger.Info("Using Redis idempotency store", zap.String("addr", f.cfg.Addr()))
		return NewRedisIdempotencyStore(client, ""), nil
	}
	if !f.allowInMemoryFallback {
		return nil, err
	}

	f.logger.Warn("Redis unavailable, falling back to in-memory idempotency store", zap.Error(err))
	return NewInMemoryIdempotencyStore(0), nil
}

var (
	_ certification.VerificationCache = (*RedisVerificationCache)(nil)
	_ certification.VerificationCache = (*InMemoryVerificationCache)(nil)
)
