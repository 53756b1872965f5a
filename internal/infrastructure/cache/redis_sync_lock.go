package cache

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/erp/sellerops/internal/domain/integration"
)

const (
	// DefaultSyncLockKey is the redis key shared by all instances
	DefaultSyncLockKey = "sellerops:sync:lock"
	// DefaultSyncLockTTL bounds how long a crashed holder can block others
	DefaultSyncLockTTL = 30 * time.Minute
)

// releaseScript deletes the key only while it still carries our token
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// renewScript pushes the expiry out only while the key still carries our token
var renewScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("PEXPIRE", KEYS[1], ARGV[2])
end
return 0
`)

// RedisSyncLock is a lease-based sync lock shared by every instance using
// the same redis key. While held, the lease is renewed every third of its
// TTL, so the TTL only bounds how long a crashed holder blocks others. A
// holder whose lease was taken over by another instance stops renewing and
// cannot release the new lease.
type RedisSyncLock struct {
	client *redis.Client
	key    string
	ttl    time.Duration

	mu        sync.Mutex
	token     string
	stopRenew context.CancelFunc
	renewDone chan struct{}
}

// NewRedisSyncLock creates a redis-backed lock on the given key
func NewRedisSyncLock(client *redis.Client, key string, ttl time.Duration) *RedisSyncLock {
	if key == "" {
		key = DefaultSyncLockKey
	}
	if ttl <= 0 {
		ttl = DefaultSyncLockTTL
	}
	return &RedisSyncLock{
		client: client,
		key:    key,
		ttl:    ttl,
	}
}

// Lock takes the lease with SET NX PX
func (l *RedisSyncLock) Lock(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	token := uuid.NewString()
	ok, err := l.client.SetNX(ctx, l.key, token, l.ttl).Result()
	if err != nil {
		return fmt.Errorf("failed to acquire sync lock: %w", err)
	}
	if !ok {
		return integration.ErrSyncInProgress
	}
	l.token = token

	l.stopRenewal()
	renewCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	l.stopRenew = cancel
	l.renewDone = make(chan struct{})
	go l.renew(renewCtx, token, l.renewDone)
	return nil
}

func (l *RedisSyncLock) renew(ctx context.Context, token string, done chan<- struct{}) {
	defer close(done)

	ticker := time.NewTicker(max(l.ttl/3, time.Millisecond))
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := renewScript.Run(ctx, l.client, []string{l.key}, token, l.ttl.Milliseconds()).Int()
			if err != nil {
				// retried on the next tick while the lease is still alive
				continue
			}
			if n == 0 {
				return
			}
		}
	}
}

// stopRenewal ends the renewal loop and waits for it. Callers hold l.mu.
func (l *RedisSyncLock) stopRenewal() {
	if l.stopRenew == nil {
		return
	}
	l.stopRenew()
	<-l.renewDone
	l.stopRenew, l.renewDone = nil, nil
}

// Unlock releases the lease if this instance still owns it
func (l *RedisSyncLock) Unlock(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.stopRenewal()
	if l.token == "" {
		return nil
	}
	token := l.token
	l.token = ""
	if err := releaseScript.Run(ctx, l.client, []string{l.key}, token).Err(); err != nil && !errors.Is(err, redis.Nil) {
		return fmt.Errorf("failed to release sync lock: %w", err)
	}
	return nil
}

// IsLocked reports whether any instance holds the lease
func (l *RedisSyncLock) IsLocked(ctx context.Context) (bool, error) {
	n, err := l.client.Exists(ctx, l.key).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check sync lock: %w", err)
	}
	return n > 0, nil
}

// Ping checks the redis connection
func (l *RedisSyncLock) Ping(ctx context.Context) error {
	return l.client.Ping(ctx).Err()
}

// Close stops lease renewal and closes the underlying redis client
func (l *RedisSyncLock) Close() error {
	l.mu.Lock()
	l.stopRenewal()
	l.mu.Unlock()
	return l.client.Close()
}

var _ integration.SyncLock = (*RedisSyncLock)(nil)
