package adapter

import (
	"context"

	"lawvriksh-onboarding/internal/domain/model"
)

// IntentPublisher signals external services (OTP sender, social login, session store).
// The wizard never waits on the outcome.
type IntentPublisher interface {
	Publish(ctx context.Context, in model.Intent) error
}
