package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/erp/sellerops/internal/domain/integration"
	"github.com/erp/sellerops/internal/infrastructure/config"
)

// SyncLockFactory creates the sync lock selected by configuration
type SyncLockFactory struct {
	syncConfig  config.SyncConfig
	redisConfig config.RedisConfig
	logger      *zap.Logger
	pingTimeout time.Duration
}

// SyncLockFactoryOption is a functional option for configuring the factory
type SyncLockFactoryOption func(*SyncLockFactory)

// WithLogger sets the logger for the factory
func WithLogger(logger *zap.Logger) SyncLockFactoryOption {
	return func(f *SyncLockFactory) {
		f.logger = logger
	}
}

// WithPingTimeout bounds the redis availability check
func WithPingTimeout(d time.Duration) SyncLockFactoryOption {
	return func(f *SyncLockFactory) {
		f.pingTimeout = d
	}
}

// NewSyncLockFactory creates a new factory
func NewSyncLockFactory(syncCfg config.SyncConfig, redisCfg config.RedisConfig, opts ...SyncLockFactoryOption) *SyncLockFactory {
	f := &SyncLockFactory{
		syncConfig:  syncCfg,
		redisConfig: redisCfg,
		logger:      zap.NewNop(),
		pingTimeout: 5 * time.Second,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// CreateRedisLock connects to redis and returns a lease lock
func (f *SyncLockFactory) CreateRedisLock(ctx context.Context) (*RedisSyncLock, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     f.redisConfig.Addr(),
		Password: f.redisConfig.Password,
		DB:       f.redisConfig.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, f.pingTimeout)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return NewRedisSyncLock(client, DefaultSyncLockKey, f.syncConfig.LockTTL), nil
}

// CreateLock returns the configured lock. With the redis backend an
// unreachable server falls back to the in-process lock when allowed.
func (f *SyncLockFactory) CreateLock(ctx context.Context) (integration.SyncLock, error) {
	if f.syncConfig.LockBackend != "redis" {
		f.logger.Info("using in-process sync lock")
		return NewLocalSyncLock(), nil
	}

	lock, err := f.CreateRedisLock(ctx)
	if err == nil {
		f.logger.Info("using Redis sync lock", zap.String("addr", f.redisConfig.Addr()))
		return lock, nil
	}
	if !f.syncConfig.LockFallback {
		return nil, fmt.Errorf("Redis required for sync lock but unavailable: %w", err)
	}

	f.logger.Warn("Redis unavailable, falling back to in-process sync lock. "+
		"Sync runs are not coordinated across instances.",
		zap.Error(err),
	)
	return NewLocalSyncLock(), nil
}
