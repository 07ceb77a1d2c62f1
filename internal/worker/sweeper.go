package worker

import (
	"context"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron/v2"
)

// DueEnqueuer re-queues webhook logs whose next attempt is due.
type DueEnqueuer interface {
	EnqueueDue(ctx context.Context, limit int) (int, error)
}

// Sweeper periodically re-queues due webhook logs: scheduled retries, expired
// leases and ids the dispatcher dropped.
type Sweeper struct {
	scheduler gocron.Scheduler
	logger    *slog.Logger
}

func NewSweeper(enqueuer DueEnqueuer, interval time.Duration, batch int, logger *slog.Logger) (*Sweeper, error) {
	s, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}
	sw := &Sweeper{scheduler: s, logger: logger}

	_, err = s.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(func() {
			sw.sweep(enqueuer, batch)
		}),
		gocron.WithName("webhook-sweeper"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		_ = s.Shutdown()
		return nil, err
	}
	return sw, nil
}

func (sw *Sweeper) sweep(enqueuer DueEnqueuer, batch int) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	n, err := enqueuer.EnqueueDue(ctx, batch)
	if err != nil {
		sw.logger.Error("webhook sweep failed", "error", err)
		return
	}
	if n > 0 {
		sw.logger.Info("webhook sweep queued deliveries", "count", n)
	}
}

func (sw *Sweeper) Start() {
	sw.scheduler.Start()
}

func (sw *Sweeper) Stop() error {
	return sw.scheduler.Shutdown()
}
