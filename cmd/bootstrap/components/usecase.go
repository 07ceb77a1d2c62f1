package components

import (
	"log/slog"

	"visa-booking/internal/infra/webhook"
	"visa-booking/internal/pkg/clock"
	"visa-booking/internal/pkg/config"
	"visa-booking/internal/usecase"
	"visa-booking/internal/usecase/commands"
	"visa-booking/internal/usecase/queries"
	"visa-booking/internal/usecase/shared"
	"visa-booking/internal/worker"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseQueriesModule,
	usecaseValidatorsModule,
	usecaseCommandsModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
	NewWebhookSettings,
	fx.Annotate(
		NewWebhookSender,
		fx.As(new(shared.WebhookSender)),
	),
	NewDispatcher,
	func(d *worker.Dispatcher) shared.WebhookQueue {
		return d
	},
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewBookingUseCase,
		commands.NewCapacityUseCase,
		commands.NewAmendmentUseCase,
		commands.NewCatalogUseCase,
		commands.NewWebhookUseCase,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewPricingQueries,
		queries.NewBookingQueries,
	),
)

var usecaseValidatorsModule = fx.Module("usecase/validators",
	fx.Provide(
		usecase.NewTokenValidator,
	),
)

func NewWebhookSettings(cfg config.Config) commands.WebhookSettings {
	return commands.WebhookSettings{
		URL:         cfg.Webhook.URL,
		Secret:      cfg.Webhook.Secret,
		MaxAttempts: cfg.Webhook.MaxAttempts,
		RetryBase:   cfg.Webhook.RetryBase,
		// an attempt still in flight after twice the timeout is presumed lost
		Lease: 2 * cfg.Webhook.Timeout,
	}
}

func NewWebhookSender(cfg config.Config) *webhook.Client {
	return webhook.NewClient(cfg.Webhook.Timeout)
}

func NewDispatcher(cfg config.Config, logger *slog.Logger) *worker.Dispatcher {
	return worker.NewDispatcher(cfg.Webhook.QueueSize, logger)
}
