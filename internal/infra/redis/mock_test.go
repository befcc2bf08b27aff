//go:build !integration

package redis

import (
	"context"
	"fmt"
	"sync"
	"time"

	"lawvriksh-onboarding/internal/domain"
)

// memClient is an in-memory RedisClient. Expirations are recorded but not enforced.
type memClient struct {
	mu        sync.Mutex
	values    map[string]string
	ttls      map[string]time.Duration
	published map[string][]string

	SetNXFunc func(ctx context.Context, key string, value interface{}, ttl time.Duration) (bool, error)
}

func newMemClient() *memClient {
	return &memClient{
		values:    map[string]string{},
		ttls:      map[string]time.Duration{},
		published: map[string][]string{},
	}
}

func str(v interface{}) string {
	if b, ok := v.([]byte); ok {
		return string(b)
	}
	return fmt.Sprint(v)
}

func (m *memClient) Ping(ctx context.Context) error { return nil }

func (m *memClient) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = str(value)
	m.ttls[key] = ttl
	return nil
}

func (m *memClient) SetNX(ctx context.Context, key string, value interface{}, ttl time.Duration) (bool, error) {
	if m.SetNXFunc != nil {
		return m.SetNXFunc(ctx, key, value, ttl)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.values[key]; ok {
		return false, nil
	}
	m.values[key] = str(value)
	m.ttls[key] = ttl
	return true, nil
}

func (m *memClient) Get(ctx context.Context, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.values[key]
	if !ok {
		return "", domain.ErrNotFound
	}
	return v, nil
}

func (m *memClient) Incr(ctx context.Context, key string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	fmt.Sscan(m.values[key], &n)
	n++
	m.values[key] = fmt.Sprint(n)
	return n, nil
}

func (m *memClient) Expire(ctx context.Context, key string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ttls[key] = ttl
	return nil
}

func (m *memClient) Del(ctx context.Context, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, k := range keys {
		delete(m.values, k)
		delete(m.ttls, k)
	}
	return nil
}

func (m *memClient) DelIfEquals(ctx context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.values[key] == value {
		delete(m.values, key)
	}
	return nil
}

func (m *memClient) Publish(ctx context.Context, channel string, message interface{}) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.published[channel] = append(m.published[channel], str(message))
	return nil
}

func (m *memClient) Close() error { return nil }
