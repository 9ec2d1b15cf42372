package cache

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/shopadmin/backend/internal/domain/shared"
	"github.com/shopadmin/backend/internal/infrastructure/config"
)

// NewIdempotencyStore returns a Redis store when Redis is enabled and an
// in-memory store otherwise. An enabled but unreachable Redis falls back to
// memory when allowFallback is set and is an error when it is not.
func NewIdempotencyStore(ctx context.Context, cfg config.RedisConfig, allowFallback bool, logger *zap.Logger) (shared.IdempotencyStore, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	if !cfg.Enabled {
		logger.Info("using in-memory idempotency store")
		return NewInMemoryIdempotencyStore(DefaultSweepInterval), nil
	}

	store, err := NewRedisIdempotencyStore(ctx, cfg)
	if err == nil {
		logger.Info("using Redis idempotency store", zap.String("addr", cfg.Addr()))
		return store, nil
	}
	if !allowFallback {
		return nil, fmt.Errorf("redis idempotency store unavailable: %w", err)
	}

	logger.Warn("Redis unavailable, falling back to in-memory idempotency store; "+
		"repeated submissions are only detected per instance",
		zap.Error(err),
	)
	return NewInMemoryIdempotencyStore(DefaultSweepInterval), nil
}
