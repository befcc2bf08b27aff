package memory

import (
	"context"
	"sync"
	"time"

	"lawvriksh-onboarding/internal/domain"
	"lawvriksh-onboarding/internal/domain/ports/repository"

	"github.com/google/uuid"
)

var (
	_ repository.Locker      = (*Locker)(nil)
	_ repository.RateLimiter = (*RateLimiter)(nil)
)

type held struct {
	token     string
	expiresAt time.Time
}

// Locker never waits: a held key fails fast with domain.ErrSessionBusy.
type Locker struct {
	mu   sync.Mutex
	m    map[string]held
	nowF func() time.Time
}

func NewLocker() *Locker {
	return &Locker{m: make(map[string]held), nowF: time.Now}
}

func (l *Locker) TryLock(ctx context.Context, key string, ttl time.Duration) (string, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	now := l.nowF()
	if h, ok := l.m[key]; ok && h.expiresAt.After(now) {
		return "", domain.ErrSessionBusy
	}
	token := uuid.NewString()
	l.m[key] = held{token: token, expiresAt: now.Add(ttl)}
	return token, nil
}

func (l *Locker) Unlock(ctx context.Context, key, token string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if h, ok := l.m[key]; ok && h.token == token {
		delete(l.m, key)
	}
	return nil
}

type window struct {
	count   int
	resetAt time.Time
}

// RateLimiter is a fixed-window counter per key.
type RateLimiter struct {
	mu   sync.Mutex
	m    map[string]window
	nowF func() time.Time
}

func NewRateLimiter() *RateLimiter {
	return &RateLimiter{m: make(map[string]window), nowF: time.Now}
}

func (r *RateLimiter) Allow(ctx context.Context, key string, limit int, d time.Duration) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := r.nowF()
	w := r.m[key]
	if !w.resetAt.After(now) {
		w = window{resetAt: now.Add(d)}
	}
	w.count++
	r.m[key] = w
	return w.count <= limit, nil
}
