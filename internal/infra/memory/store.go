// Package memory holds single-process stand-ins for the Redis session store, lock and
// rate limiter. Used when redis.url is empty.
package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"lawvriksh-onboarding/internal/domain"
	"lawvriksh-onboarding/internal/domain/model"
	"lawvriksh-onboarding/internal/domain/ports/repository"
)

var _ repository.WizardStateRepository = (*StateStore)(nil)

type entry struct {
	data      []byte
	expiresAt time.Time
}

// StateStore keeps encoded sessions until their TTL passes. Values are stored encoded
// so callers never share a *model.WizardState.
type StateStore struct {
	mu   sync.RWMutex
	m    map[string]entry
	ttl  time.Duration
	nowF func() time.Time
}

func NewStateStore(ttl time.Duration) *StateStore {
	return &StateStore{
		m:    make(map[string]entry),
		ttl:  ttl,
		nowF: time.Now,
	}
}

func (s *StateStore) SaveState(ctx context.Context, state *model.WizardState) error {
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("encode wizard state: %w", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.m[state.ID] = entry{data: data, expiresAt: s.nowF().Add(s.ttl)}
	return nil
}

func (s *StateStore) GetState(ctx context.Context, id string) (*model.WizardState, error) {
	s.mu.RLock()
	e, ok := s.m[id]
	s.mu.RUnlock()
	if !ok || !e.expiresAt.After(s.nowF()) {
		return nil, domain.ErrNotFound
	}
	var state model.WizardState
	if err := json.Unmarshal(e.data, &state); err != nil {
		return nil, fmt.Errorf("decode wizard state %s: %w", id, err)
	}
	return &state, nil
}

func (s *StateStore) ClearState(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.m, id)
	return nil
}

// Sweep drops expired sessions and reports how many were removed.
func (s *StateStore) Sweep(ctx context.Context) (int, error) {
	now := s.nowF()
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for id, e := range s.m {
		if !e.expiresAt.After(now) {
			delete(s.m, id)
			n++
		}
	}
	return n, nil
}

// Len is the number of stored sessions, expired or not.
func (s *StateStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.m)
}
