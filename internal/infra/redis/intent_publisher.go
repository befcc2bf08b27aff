package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"lawvriksh-onboarding/internal/domain/model"
	"lawvriksh-onboarding/internal/domain/ports/adapter"
)

var _ adapter.IntentPublisher = (*IntentPublisher)(nil)

// IntentPublisher fans intents out on a Pub/Sub channel for whichever services handle
// OTP delivery, social login and session bookkeeping.
type IntentPublisher struct {
	client  RedisClient
	channel string
}

func NewIntentPublisher(client RedisClient, channel string) *IntentPublisher {
	return &IntentPublisher{client: client, channel: channel}
}

func (p *IntentPublisher) Publish(ctx context.Context, in model.Intent) error {
	data, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("encode intent: %w", err)
	}
	if err := p.client.Publish(ctx, p.channel, data); err != nil {
		return fmt.Errorf("publish %s: %w", in.Kind, err)
	}
	return nil
}
