package intent

import (
	"context"

	"lawvriksh-onboarding/internal/domain/model"
	"lawvriksh-onboarding/internal/domain/ports/adapter"
	"lawvriksh-onboarding/internal/infra/logging"

	"github.com/rs/zerolog"
)

var _ adapter.IntentPublisher = (*LogPublisher)(nil)

// LogPublisher writes intents to the log. Used when no Redis is configured.
type LogPublisher struct {
	log *zerolog.Logger
	dev bool
}

func NewLogPublisher(logger *zerolog.Logger, dev bool) *LogPublisher {
	l := logger.With().Str("component", "IntentLog").Logger()
	return &LogPublisher{log: &l, dev: dev}
}

func (p *LogPublisher) Publish(ctx context.Context, in model.Intent) error {
	ev := p.log.Info().
		Str("intent_id", in.ID).
		Str("kind", string(in.Kind)).
		Str("session_id", in.SessionID)
	if in.Email != "" {
		ev = ev.Str("email", logging.Redact(in.Email, p.dev))
	}
	if in.Provider != "" {
		ev = ev.Str("provider", string(in.Provider))
	}
	if in.Result != nil {
		ev = ev.Str("via", in.Result.Via)
	}
	ev.Msg("intent")
	return nil
}
