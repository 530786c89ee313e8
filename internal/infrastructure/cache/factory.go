package cache

import (
	"context"
	"time"

	"github.com/finops/backend/internal/infrastructure/config"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Factory picks a Store implementation from configuration
type Factory struct {
	redisConfig           config.RedisConfig
	logger                *zap.Logger
	allowInMemoryFallback bool
	sweepInterval         time.Duration
}

// FactoryOption is a functional option for configuring the factory
type FactoryOption func(*Factory)

// WithLogger sets the logger for the factory
func WithLogger(logger *zap.Logger) FactoryOption {
	return func(f *Factory) {
		f.logger = logger
	}
}

// WithInMemoryFallback controls whether an unreachable Redis falls back to
// a process-local store. Default is true.
func WithInMemoryFallback(allow bool) FactoryOption {
	return func(f *Factory) {
		f.allowInMemoryFallback = allow
	}
}

// NewFactory creates a new factory
func NewFactory(cfg config.RedisConfig, opts ...FactoryOption) *Factory {
	f := &Factory{
		redisConfig:           cfg,
		logger:                zap.NewNop(),
		allowInMemoryFallback: true,
		sweepInterval:         time.Minute,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Backend is the result of Factory.Create. Client is nil unless Redis is in use.
type Backend struct {
	Store  Store
	Client *redis.Client
}

// Close releases the Redis client or stops the memory sweeper
func (b *Backend) Close() error {
	if b.Client != nil {
		return b.Client.Close()
	}
	if m, ok := b.Store.(*MemoryStore); ok {
		return m.Close()
	}
	return nil
}

// Create connects to Redis when enabled. Otherwise, or when Redis is
// unreachable and fallback is allowed, a MemoryStore is returned.
func (f *Factory) Create(ctx context.Context) (*Backend, error) {
	if !f.redisConfig.Enabled {
		f.logger.Info("Redis disabled, using in-memory cache")
		return &Backend{Store: NewMemoryStore(f.sweepInterval)}, nil
	}

	client, err := NewRedisClient(ctx, f.redisConfig)
	if err == nil {
		f.logger.Info("Using Redis cache", zap.String("addr", f.redisConfig.Addr()))
		return &Backend{Store: NewRedisStore(client, ""), Client: client}, nil
	}
	if !f.allowInMemoryFallback {
		return nil, err
	}

	f.logger.Warn("Redis unavailable, falling back to in-memory cache. "+
		"Revoked tokens and cached summaries will not be shared between instances.",
		zap.Error(err),
	)
	return &Backend{Store: NewMemoryStore(f.sweepInterval)}, nil
}
