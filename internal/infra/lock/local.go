package lock

import (
	"context"
	"sort"
	"sync"

	"visa-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

// LocalLocker is a keyed mutex for single-process deployments.
type LocalLocker struct {
	mu    sync.Mutex
	locks map[uuid.UUID]*entry
}

type entry struct {
	ch      chan struct{}
	waiters int
}

func NewLocalLocker() *LocalLocker {
	return &LocalLocker{locks: map[uuid.UUID]*entry{}}
}

var _ shared.AppointmentLocker = (*LocalLocker)(nil)

func (l *LocalLocker) Lock(ctx context.Context, ids ...uuid.UUID) (func(), error) {
	keys := sortedUnique(ids)
	held := make([]uuid.UUID, 0, len(keys))
	for _, id := range keys {
		if err := l.acquire(ctx, id); err != nil {
			l.release(held)
			return nil, err
		}
		held = append(held, id)
	}
	var once sync.Once
	return func() { once.Do(func() { l.release(held) }) }, nil
}

func (l *LocalLocker) acquire(ctx context.Context, id uuid.UUID) error {
	l.mu.Lock()
	e, ok := l.locks[id]
	if !ok {
		e = &entry{ch: make(chan struct{}, 1)}
		l.locks[id] = e
	}
	e.waiters++
	l.mu.Unlock()

	select {
	case e.ch <- struct{}{}:
		return nil
	case <-ctx.Done():
		l.mu.Lock()
		e.waiters--
		if e.waiters == 0 {
			delete(l.locks, id)
		}
		l.mu.Unlock()
		return ctx.Err()
	}
}

func (l *LocalLocker) release(ids []uuid.UUID) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for i := len(ids) - 1; i >= 0; i-- {
		e := l.locks[ids[i]]
		<-e.ch
		e.waiters--
		if e.waiters == 0 {
			delete(l.locks, ids[i])
		}
	}
}

// sortedUnique orders ids so every caller acquires overlapping sets in the same order.
func sortedUnique(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].String() < out[j].String() })
	return out
}
