package components

import (
	"context"
	"log/slog"

	"visa-booking/internal/infra/db"
	"visa-booking/internal/infra/memstore"
	"visa-booking/internal/infra/uow"
	"visa-booking/internal/pkg/config"
	"visa-booking/internal/usecase/shared"

	"go.uber.org/fx"
)

var PersistenceModule = fx.Module("persistence",
	fx.Provide(
		NewUnitOfWork,
	),
)

// NewUnitOfWork selects the store backend. The in-memory store keeps nothing across restarts.
func NewUnitOfWork(lc fx.Lifecycle, cfg config.Config, logger *slog.Logger) (shared.UnitOfWork, error) {
	if cfg.Store.Backend == config.StoreBackendMemory {
		logger.Warn("in-memory store selected; data is lost on restart")
		return memstore.NewUoW(memstore.New()), nil
	}

	ctx := context.Background()
	pool, cleanup, err := db.Connect(ctx, cfg.DB)
	if err != nil {
		return nil, err
	}
	if cfg.DB.Migrate {
		if err := db.Migrate(ctx, pool); err != nil {
			cleanup()
			return nil, err
		}
		logger.Info("database schema applied")
	}

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			cleanup()
			return nil
		},
	})

	return uow.NewPostgresUoW(pool), nil
}
