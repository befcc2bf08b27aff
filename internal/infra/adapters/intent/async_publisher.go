package intent

import (
	"context"
	"time"

	"lawvriksh-onboarding/internal/domain/model"
	"lawvriksh-onboarding/internal/domain/ports/adapter"
	"lawvriksh-onboarding/internal/infra/worker"
)

var _ adapter.IntentPublisher = (*AsyncPublisher)(nil)

// AsyncPublisher hands intents to a worker pool so the wizard never waits on delivery.
// Publish fails with worker.ErrQueueFull instead of blocking.
type AsyncPublisher struct {
	next    adapter.IntentPublisher
	pool    *worker.Pool
	timeout time.Duration
}

func NewAsyncPublisher(next adapter.IntentPublisher, pool *worker.Pool, timeout time.Duration) *AsyncPublisher {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &AsyncPublisher{next: next, pool: pool, timeout: timeout}
}

func (p *AsyncPublisher) Publish(_ context.Context, in model.Intent) error {
	if in.Result != nil {
		r := *in.Result
		r.Interests = append([]string(nil), in.Result.Interests...)
		in.Result = &r
	}
	return p.pool.Submit(func(ctx context.Context) error {
		ctx, cancel := context.WithTimeout(ctx, p.timeout)
		defer cancel()
		return p.next.Publish(ctx, in)
	})
}
