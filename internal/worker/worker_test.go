//go:build unit

package worker_test

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"visa-booking/internal/domain/webhook"
	"visa-booking/internal/worker"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

type fakeDeliverer struct {
	mu   sync.Mutex
	seen []uuid.UUID
	done chan struct{}
}

func (f *fakeDeliverer) Deliver(_ context.Context, id uuid.UUID) (*webhook.Log, error) {
	f.mu.Lock()
	f.seen = append(f.seen, id)
	f.mu.Unlock()
	f.done <- struct{}{}
	return &webhook.Log{ID: id, Status: webhook.StatusSent, Attempts: 1}, nil
}

func TestDispatcher_DeliversEnqueuedIDs(t *testing.T) {
	d := worker.NewDispatcher(10, discard)
	f := &fakeDeliverer{done: make(chan struct{}, 10)}
	d.Start(f, 3)
	defer d.Stop()

	ids := []uuid.UUID{uuid.New(), uuid.New(), uuid.New()}
	d.Enqueue(ids...)

	for range ids {
		select {
		case <-f.done:
		case <-time.After(2 * time.Second):
			t.Fatal("delivery did not happen")
		}
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	assert.ElementsMatch(t, ids, f.seen)
}

func TestDispatcher_FullQueueDoesNotBlock(t *testing.T) {
	d := worker.NewDispatcher(1, discard)

	finished := make(chan struct{})
	go func() {
		d.Enqueue(uuid.New(), uuid.New(), uuid.New())
		close(finished)
	}()

	select {
	case <-finished:
	case <-time.After(time.Second):
		t.Fatal("Enqueue blocked on a full queue")
	}
}

func TestDispatcher_StopWithoutStart(t *testing.T) {
	d := worker.NewDispatcher(1, discard)
	d.Stop()
}

type countingEnqueuer struct {
	calls atomic.Int32
	batch atomic.Int32
}

func (c *countingEnqueuer) EnqueueDue(_ context.Context, limit int) (int, error) {
	c.calls.Add(1)
	c.batch.Store(int32(limit))
	return 0, nil
}

func TestSweeper_RunsPeriodically(t *testing.T) {
	e := &countingEnqueuer{}
	sw, err := worker.NewSweeper(e, 20*time.Millisecond, 25, discard)
	require.NoError(t, err)

	sw.Start()
	assert.Eventually(t, func() bool { return e.calls.Load() >= 2 }, 2*time.Second, 10*time.Millisecond)
	require.NoError(t, sw.Stop())

	assert.Equal(t, int32(25), e.batch.Load())
}
