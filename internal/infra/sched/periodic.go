package sched

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// Periodic runs fn every interval until ctx ends. Used for gauges that have to be
// polled, such as database pool stats.
type Periodic struct {
	name     string
	interval time.Duration
	fn       func(ctx context.Context) error
	log      *zerolog.Logger
}

func NewPeriodic(name string, interval time.Duration, fn func(ctx context.Context) error, logger *zerolog.Logger) *Periodic {
	l := logger.With().Str("component", name).Logger()
	return &Periodic{name: name, interval: interval, fn: fn, log: &l}
}

func (p *Periodic) Run(ctx context.Context) error {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := p.fn(ctx); err != nil {
				p.log.Warn().Err(err).Msg("periodic job failed")
			}
		}
	}
}
