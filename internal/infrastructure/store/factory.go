package store

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/ordertrack/backend/internal/domain/order"
	"github.com/ordertrack/backend/internal/infrastructure/config"
)

// Factory creates order stores based on configuration
type Factory struct {
	storeConfig         config.StoreConfig
	redisConfig         config.RedisConfig
	logger              *zap.Logger
	allowMemoryFallback bool
}

// FactoryOption is a functional option for configuring the factory
type FactoryOption func(*Factory)

// WithLogger sets the logger for the factory
func WithLogger(logger *zap.Logger) FactoryOption {
	return func(f *Factory) {
		f.logger = logger
	}
}

// WithMemoryFallback controls whether to fall back to the in-memory store
// when Redis is unavailable. Default is true (allow fallback).
func WithMemoryFallback(allow bool) FactoryOption {
	return func(f *Factory) {
		f.allowMemoryFallback = allow
	}
}

// NewFactory creates a new store factory
func NewFactory(storeCfg config.StoreConfig, redisCfg config.RedisConfig, opts ...FactoryOption) *Factory {
	f := &Factory{
		storeConfig:         storeCfg,
		redisConfig:         redisCfg,
		logger:              zap.NewNop(),
		allowMemoryFallback: true,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Create builds the order store selected by configuration. When the redis
// backend is selected but unreachable, it falls back to the in-memory store
// unless fallback is disabled. Orders in the in-memory store do not survive
// process restarts.
func (f *Factory) Create() (order.Repository, error) {
	switch f.storeConfig.Backend {
	case "redis":
		s, err := NewRedisStore(RedisConfig{
			Host:     f.redisConfig.Host,
			Port:     f.redisConfig.Port,
			Password: f.redisConfig.Password,
			DB:       f.redisConfig.DB,
		})
		if err == nil {
			f.logger.Info("using Redis order store",
				zap.String("host", f.redisConfig.Host),
				zap.Int("port", f.redisConfig.Port),
			)
			return s, nil
		}
		if !f.allowMemoryFallback {
			return nil, fmt.Errorf("redis order store required but unavailable: %w", err)
		}
		f.logger.Warn("Redis unavailable, falling back to in-memory order store. "+
			"Orders will not survive process restarts.",
			zap.Error(err),
		)
		return NewMemoryStore(), nil
	case "memory", "":
		f.logger.Info("using in-memory order store")
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown store backend %q", f.storeConfig.Backend)
	}
}
