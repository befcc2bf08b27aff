package repository

import (
	"context"
	"time"

	"lawvriksh-onboarding/internal/domain/model"
)

// WizardStateRepository keeps wizard sessions for their lifetime only. GetState returns
// domain.ErrNotFound for unknown or expired sessions.
type WizardStateRepository interface {
	SaveState(ctx context.Context, state *model.WizardState) error
	GetState(ctx context.Context, id string) (*model.WizardState, error)
	ClearState(ctx context.Context, id string) error
}

// Locker serializes work on one key across processes. TryLock returns
// domain.ErrSessionBusy when the key stays held.
type Locker interface {
	TryLock(ctx context.Context, key string, ttl time.Duration) (token string, err error)
	Unlock(ctx context.Context, key, token string) error
}

// RateLimiter counts hits per key in a fixed window.
type RateLimiter interface {
	Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error)
}

// Keys shared by every Locker and RateLimiter implementation.
func SessionLockKey(sessionID string) string   { return "wizard_lock:" + sessionID }
func SessionActionKey(sessionID string) string { return "rate_limit:" + sessionID + ":actions" }
