package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"lawvriksh-onboarding/internal/domain/model"
	"lawvriksh-onboarding/internal/domain/ports/repository"
)

var _ repository.WizardStateRepository = (*WizardStateRepo)(nil)

// WizardStateRepo stores each wizard session as one JSON value whose TTL is refreshed
// on every save.
type WizardStateRepo struct {
	client RedisClient
	ttl    time.Duration
}

func NewWizardStateRepo(client RedisClient, ttl time.Duration) *WizardStateRepo {
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	return &WizardStateRepo{client: client, ttl: ttl}
}

func (s *WizardStateRepo) stateKey(id string) string {
	return fmt.Sprintf("wizard_state:%s", id)
}

func (s *WizardStateRepo) SaveState(ctx context.Context, state *model.WizardState) error {
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("encode wizard state: %w", err)
	}
	return s.client.Set(ctx, s.stateKey(state.ID), data, s.ttl)
}

func (s *WizardStateRepo) GetState(ctx context.Context, id string) (*model.WizardState, error) {
	data, err := s.client.Get(ctx, s.stateKey(id))
	if err != nil {
		return nil, err
	}
	var state model.WizardState
	if err := json.Unmarshal([]byte(data), &state); err != nil {
		return nil, fmt.Errorf("decode wizard state %s: %w", id, err)
	}
	return &state, nil
}

func (s *WizardStateRepo) ClearState(ctx context.Context, id string) error {
	return s.client.Del(ctx, s.stateKey(id))
}
