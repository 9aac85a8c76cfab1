package cron

import (
	"context"
	"fmt"
	"time"
)

// Lock guards a job so only one worker instance runs it at a time.
type Lock interface {
	Acquire(ctx context.Context, name string) (bool, error)
	Release(ctx context.Context, name string) error
}

type lockStore interface {
	SetNX(ctx context.Context, key string, value any, ttl time.Duration) (bool, error)
	Del(ctx context.Context, keys ...string) error
	LockKey(name string) string
}

// RedisLock implements Lock with a SETNX key per job. The TTL bounds how
// long a crashed worker can hold the lock.
type RedisLock struct {
	store lockStore
	ttl   time.Duration
}

// NewRedisLock constructs a lock backed by the shared redis client.
func NewRedisLock(store lockStore, ttl time.Duration) (*RedisLock, error) {
	if store == nil {
		return nil, fmt.Errorf("lock store is required")
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("lock ttl must be positive")
	}
	return &RedisLock{store: store, ttl: ttl}, nil
}

// Acquire claims the named lock. It reports false when another worker
// already holds it.
func (l *RedisLock) Acquire(ctx context.Context, name string) (bool, error) {
	return l.store.SetNX(ctx, l.store.LockKey(name), time.Now().UTC().Format(time.RFC3339), l.ttl)
}

// Release drops the named lock.
func (l *RedisLock) Release(ctx context.Context, name string) error {
	return l.store.Del(ctx, l.store.LockKey(name))
}
