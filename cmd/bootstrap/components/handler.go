package components

import (
	"visa-booking/internal/handler"
	"visa-booking/internal/handler/api"
	"visa-booking/internal/handler/middleware"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewCaseHandler,
		api.NewAmendmentHandler,
		api.NewCatalogHandler,
		api.NewWebhookHandler,
		middleware.NewAuthMiddleware,
		func(cases *api.CaseHandler, amendments *api.AmendmentHandler, catalog *api.CatalogHandler, webhooks *api.WebhookHandler) handler.Handlers {
			return handler.Handlers{
				Cases:      cases,
				Amendments: amendments,
				Catalog:    catalog,
				Webhooks:   webhooks,
			}
		},
	),
	fx.Invoke(handler.NewRouter),
)
