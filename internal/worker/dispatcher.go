package worker

import (
	"context"
	"log/slog"
	"sync"

	"visa-booking/internal/domain/webhook"
	"visa-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

// Deliverer is the part of the webhook use case the workers drive.
type Deliverer interface {
	Deliver(ctx context.Context, logID uuid.UUID) (*webhook.Log, error)
}

// Dispatcher is an in-process webhook queue drained by a fixed pool of workers.
// Ids dropped on a full queue are picked up again by the sweeper.
type Dispatcher struct {
	queue  chan uuid.UUID
	logger *slog.Logger

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

var _ shared.WebhookQueue = (*Dispatcher)(nil)

func NewDispatcher(size int, logger *slog.Logger) *Dispatcher {
	if size <= 0 {
		size = 1
	}
	return &Dispatcher{
		queue:  make(chan uuid.UUID, size),
		logger: logger,
	}
}

func (d *Dispatcher) Enqueue(logIDs ...uuid.UUID) {
	for _, id := range logIDs {
		select {
		case d.queue <- id:
		default:
			d.logger.Warn("webhook queue full, leaving delivery to the sweeper", "log_id", id)
		}
	}
}

// Start launches the workers. Stop must be called to release them.
func (d *Dispatcher) Start(deliverer Deliverer, workers int) {
	if workers <= 0 {
		workers = 1
	}
	ctx, cancel := context.WithCancel(context.Background())
	d.cancel = cancel

	for i := 0; i < workers; i++ {
		d.wg.Add(1)
		go func(n int) {
			defer d.wg.Done()
			d.run(ctx, deliverer, n)
		}(i)
	}
}

func (d *Dispatcher) run(ctx context.Context, deliverer Deliverer, n int) {
	for {
		select {
		case <-ctx.Done():
			return
		case id := <-d.queue:
			l, err := deliverer.Deliver(ctx, id)
			if err != nil {
				d.logger.Error("webhook delivery failed", "worker", n, "log_id", id, "error", err)
				continue
			}
			d.logger.Debug("webhook processed", "worker", n, "log_id", id, "status", l.Status, "attempts", l.Attempts)
		}
	}
}

func (d *Dispatcher) Stop() {
	if d.cancel != nil {
		d.cancel()
	}
	d.wg.Wait()
}
