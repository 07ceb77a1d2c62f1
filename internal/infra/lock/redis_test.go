//go:build e2e

package lock_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"visa-booking/internal/infra/lock"

	"github.com/docker/go-connections/nat"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func startRedis(t *testing.T) *redis.Client {
	t.Helper()
	ctx := context.Background()
	port := nat.Port("6379/tcp")

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{string(port)},
			WaitingFor:   wait.ForListeningPort(port).WithStartupTimeout(30 * time.Second),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	host, err := container.Host(ctx)
	require.NoError(t, err)
	mapped, err := container.MappedPort(ctx, port)
	require.NoError(t, err)

	client := redis.NewClient(&redis.Options{Addr: fmt.Sprintf("%s:%s", host, mapped.Port())})
	t.Cleanup(func() { _ = client.Close() })
	require.NoError(t, client.Ping(ctx).Err())
	return client
}

func TestRedisLocker(t *testing.T) {
	client := startRedis(t)
	id := uuid.New()

	t.Run("two lockers on one key exclude each other", func(t *testing.T) {
		l1 := lock.NewRedisLocker(client, 5*time.Second, 5*time.Millisecond)
		l2 := lock.NewRedisLocker(client, 5*time.Second, 5*time.Millisecond)

		var (
			mu      sync.Mutex
			inside  int
			maxSeen int
			wg      sync.WaitGroup
		)
		for i := 0; i < 10; i++ {
			l := l1
			if i%2 == 1 {
				l = l2
			}
			wg.Add(1)
			go func() {
				defer wg.Done()
				unlock, err := l.Lock(context.Background(), id)
				if !assert.NoError(t, err) {
					return
				}
				mu.Lock()
				inside++
				if inside > maxSeen {
					maxSeen = inside
				}
				mu.Unlock()
				time.Sleep(2 * time.Millisecond)
				mu.Lock()
				inside--
				mu.Unlock()
				unlock()
			}()
		}
		wg.Wait()
		assert.Equal(t, 1, maxSeen)
	})

	t.Run("waiting respects context", func(t *testing.T) {
		l := lock.NewRedisLocker(client, 5*time.Second, 5*time.Millisecond)
		unlock, err := l.Lock(context.Background(), id)
		require.NoError(t, err)
		defer unlock()

		ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		defer cancel()
		_, err = l.Lock(ctx, id)
		assert.Error(t, err)
	})

	t.Run("expired lease can be taken over", func(t *testing.T) {
		other := uuid.New()
		short := lock.NewRedisLocker(client, 50*time.Millisecond, 5*time.Millisecond)
		_, err := short.Lock(context.Background(), other)
		require.NoError(t, err)

		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		unlock, err := short.Lock(ctx, other)
		require.NoError(t, err)
		unlock()
	})
}
