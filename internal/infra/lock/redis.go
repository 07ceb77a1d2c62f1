package lock

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"visa-booking/internal/pkg/errs"
	"visa-booking/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "visa-booking:lock:appointment:"

// releaseScript deletes the key only while it still carries our token, so an expired
// lock that another process re-acquired is left alone.
var releaseScript = redis.NewScript(`
	if redis.call('GET', KEYS[1]) == ARGV[1] then
		return redis.call('DEL', KEYS[1])
	end
	return 0
`)

// RedisLocker serializes appointments across processes with SET NX PX leases.
type RedisLocker struct {
	client     *redis.Client
	ttl        time.Duration
	retryDelay time.Duration
}

func NewRedisLocker(client *redis.Client, ttl, retryDelay time.Duration) *RedisLocker {
	return &RedisLocker{client: client, ttl: ttl, retryDelay: retryDelay}
}

var _ shared.AppointmentLocker = (*RedisLocker)(nil)

func (l *RedisLocker) Lock(ctx context.Context, ids ...uuid.UUID) (func(), error) {
	token := uuid.NewString()
	keys := sortedUnique(ids)
	held := make([]string, 0, len(keys))
	for _, id := range keys {
		key := keyPrefix + id.String()
		if err := l.acquire(ctx, key, token); err != nil {
			l.release(held, token)
			return nil, err
		}
		held = append(held, key)
	}
	var once sync.Once
	return func() { once.Do(func() { l.release(held, token) }) }, nil
}

func (l *RedisLocker) acquire(ctx context.Context, key, token string) error {
	for {
		ok, err := l.client.SetNX(ctx, key, token, l.ttl).Result()
		if err != nil {
			return errs.Wrapf(err, "failed to acquire lock %s", key)
		}
		if ok {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(l.retryDelay):
		}
	}
}

func (l *RedisLocker) release(keys []string, token string) {
	// released even when the request context is already cancelled
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	for i := len(keys) - 1; i >= 0; i-- {
		if err := releaseScript.Run(ctx, l.client, []string{keys[i]}, token).Err(); err != nil {
			slog.Warn("failed to release appointment lock", "key", keys[i], "error", err.Error())
		}
	}
}
