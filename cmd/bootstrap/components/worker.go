package components

import (
	"context"
	"log/slog"

	"visa-booking/internal/pkg/config"
	"visa-booking/internal/usecase/commands"
	"visa-booking/internal/worker"

	"go.uber.org/fx"
)

var WorkerModule = fx.Module("worker",
	fx.Provide(
		NewSweeper,
	),
	fx.Invoke(startWorkers),
)

func NewSweeper(cfg config.Config, webhooks commands.WebhookCommands, logger *slog.Logger) (*worker.Sweeper, error) {
	return worker.NewSweeper(webhooks, cfg.Webhook.SweepInterval, cfg.Webhook.SweepBatch, logger)
}

func startWorkers(lc fx.Lifecycle, cfg config.Config, d *worker.Dispatcher, s *worker.Sweeper, webhooks commands.WebhookCommands, logger *slog.Logger) {
	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			d.Start(webhooks, cfg.Webhook.Workers)
			s.Start()
			logger.Info("webhook workers started", "workers", cfg.Webhook.Workers, "sweep_interval", cfg.Webhook.SweepInterval)
			return nil
		},
		OnStop: func(_ context.Context) error {
			err := s.Stop()
			d.Stop()
			logger.Info("webhook workers stopped")
			return err
		},
	})
}
