package sched

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// Sweeper drops expired wizard sessions from a store that cannot expire them itself.
type Sweeper interface {
	Sweep(ctx context.Context) (int, error)
}

// SessionSweeper periodically sweeps the in-memory session store.
type SessionSweeper struct {
	interval time.Duration
	store    Sweeper
	log      *zerolog.Logger
}

func NewSessionSweeper(interval time.Duration, store Sweeper, logger *zerolog.Logger) *SessionSweeper {
	if interval <= 0 {
		interval = time.Minute
	}
	l := logger.With().Str("component", "SessionSweeper").Logger()
	return &SessionSweeper{interval: interval, store: store, log: &l}
}

func (w *SessionSweeper) Run(ctx context.Context) error {
	w.log.Info().Dur("interval", w.interval).Msg("Starting session sweeper")
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.log.Info().Msg("Stopping session sweeper")
			return ctx.Err()
		case <-ticker.C:
			w.sweepOnce(ctx)
		}
	}
}

func (w *SessionSweeper) sweepOnce(ctx context.Context) {
	n, err := w.store.Sweep(ctx)
	if err != nil {
		w.log.Error().Err(err).Msg("session sweep failed")
		return
	}
	if n > 0 {
		w.log.Debug().Int("count", n).Msg("expired sessions dropped")
	}
}
