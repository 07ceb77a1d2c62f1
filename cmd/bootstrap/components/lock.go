package components

import (
	"context"
	"log/slog"

	"visa-booking/internal/infra/lock"
	"visa-booking/internal/pkg/config"
	"visa-booking/internal/usecase/shared"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

var LockModule = fx.Module("lock",
	fx.Provide(
		NewAppointmentLocker,
	),
)

// NewAppointmentLocker picks a process-local lock or a Redis lock shared by every instance.
func NewAppointmentLocker(lc fx.Lifecycle, cfg config.Config, logger *slog.Logger) (shared.AppointmentLocker, error) {
	if cfg.Lock.Backend != config.LockBackendRedis {
		return lock.NewLocalLocker(), nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err := client.Ping(context.Background()).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}
	logger.Info("redis appointment lock connected", "addr", cfg.Redis.Addr)

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return client.Close()
		},
	})

	return lock.NewRedisLocker(client, cfg.Lock.TTL, cfg.Lock.RetryDelay), nil
}
