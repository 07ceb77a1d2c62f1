package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"visa-booking/internal/handler/api"
	"visa-booking/internal/handler/dto/request"
	"visa-booking/internal/handler/middleware"
	"visa-booking/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

type Handlers struct {
	Cases      *api.CaseHandler
	Amendments *api.AmendmentHandler
	Catalog    *api.CatalogHandler
	Webhooks   *api.WebhookHandler
}

func NewRouter(engine *gin.Engine, cfg config.Config, logger *middleware.Logger, h Handlers, authMiddleware *middleware.AuthMiddleware) {
	request.RegisterValidators()
	setupMiddleware(engine, cfg, logger)
	setupRoutes(engine, h, authMiddleware)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config, logger *middleware.Logger) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(logger.LoggingMiddleware())
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(engine *gin.Engine, h Handlers, authMiddleware *middleware.AuthMiddleware) {
	engine.GET("/health", healthCheck)

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	apiGroup := engine.Group("/api")
	apiGroup.Use(authMiddleware.RequireAuth())
	{
		addRoutes(apiGroup.Group("/cases"), []route{
			{Method: http.MethodPost, Path: "", Handler: h.Cases.Create},
			{Method: http.MethodGet, Path: "/:id", Handler: h.Cases.Get},
			{Method: http.MethodPost, Path: "/:id/applicants", Handler: h.Cases.AddApplicant},
			{Method: http.MethodDelete, Path: "/:id/applicants/:applicantId", Handler: h.Cases.RemoveApplicant},
			{Method: http.MethodPost, Path: "/:id/recompute", Handler: h.Cases.Recompute},
			{Method: http.MethodPost, Path: "/:id/submit", Handler: h.Cases.Submit},
			{Method: http.MethodPost, Path: "/:id/promote", Handler: h.Cases.Promote},
			{Method: http.MethodPost, Path: "/:id/reschedule", Handler: h.Cases.Reschedule},
			{Method: http.MethodPut, Path: "/:id/status", Handler: h.Cases.UpdateStatus},
			{Method: http.MethodPost, Path: "/:id/amendments", Handler: h.Amendments.File},
			{Method: http.MethodGet, Path: "/:id/amendments", Handler: h.Amendments.List},
		})

		addRoutes(apiGroup.Group("/amendments"), []route{
			{Method: http.MethodPost, Path: "/:id/resolve", Handler: h.Amendments.Resolve},
		})

		addRoutes(apiGroup.Group("/appointments"), []route{
			{Method: http.MethodPost, Path: "", Handler: h.Catalog.CreateAppointment},
			{Method: http.MethodGet, Path: "/:id/prices", Handler: h.Catalog.ResolvePrices},
			{Method: http.MethodPut, Path: "/:id/status", Handler: h.Catalog.ChangeAppointmentStatus},
		})

		addRoutes(apiGroup.Group("/price-books"), []route{
			{Method: http.MethodPost, Path: "", Handler: h.Catalog.CreatePriceBook},
			{Method: http.MethodPut, Path: "/:id", Handler: h.Catalog.UpdatePriceBook},
			{Method: http.MethodDelete, Path: "/:id", Handler: h.Catalog.DeactivatePriceBook},
		})

		addRoutes(apiGroup.Group("/price-overrides"), []route{
			{Method: http.MethodPost, Path: "", Handler: h.Catalog.CreatePriceOverride},
			{Method: http.MethodDelete, Path: "/:id", Handler: h.Catalog.DeactivatePriceOverride},
		})

		addRoutes(apiGroup.Group("/webhooks"), []route{
			{Method: http.MethodGet, Path: "/:id", Handler: h.Webhooks.Get},
			{Method: http.MethodPost, Path: "/:id/resend", Handler: h.Webhooks.Resend},
		})
	}
}

// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		h := r.Handler
		if len(r.Mw) > 0 {
			h = chainHandlers(append(r.Mw, r.Handler)...)
		}
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		case http.MethodPut:
			g.PUT(r.Path, h)
		case http.MethodPatch:
			g.PATCH(r.Path, h)
		case http.MethodDelete:
			g.DELETE(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}

func chainHandlers(hs ...gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, h := range hs {
			h(c)
			if c.IsAborted() {
				return
			}
		}
	}
}
