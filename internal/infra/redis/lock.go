// File: internal/infra/redis/lock.go
package redis

import (
	"context"
	"fmt"
	"time"

	"lawvriksh-onboarding/internal/domain"
	"lawvriksh-onboarding/internal/domain/ports/repository"

	"github.com/google/uuid"
)

var _ repository.Locker = (*RedisLocker)(nil)

type RedisLocker struct {
	client  RedisClient
	retries int
	backoff time.Duration
}

func NewLocker(c RedisClient) *RedisLocker {
	return &RedisLocker{client: c, retries: 5, backoff: 50 * time.Millisecond}
}

// TryLock takes key with a random token, retrying briefly. It gives up with
// domain.ErrSessionBusy when the key was held, or with domain.ErrStoreUnavailable
// when every attempt failed to reach Redis.
func (l *RedisLocker) TryLock(ctx context.Context, key string, ttl time.Duration) (string, error) {
	token := uuid.NewString()
	var lastErr error
	held := false
	for i := 0; i < l.retries; i++ {
		ok, err := l.client.SetNX(ctx, key, token, ttl)
		switch {
		case err != nil:
			lastErr = err
		case ok:
			return token, nil
		default:
			held = true
		}
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(l.backoff):
		}
	}
	if !held && lastErr != nil {
		return "", fmt.Errorf("acquire %s: %w: %w", key, domain.ErrStoreUnavailable, lastErr)
	}
	return "", domain.ErrSessionBusy
}

// Unlock releases key only if it is still held with token.
func (l *RedisLocker) Unlock(ctx context.Context, key, token string) error {
	return l.client.DelIfEquals(ctx, key, token)
}
