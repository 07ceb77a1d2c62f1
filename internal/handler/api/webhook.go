package api

import (
	"net/http"

	resdto "visa-booking/internal/handler/dto/response"
	"visa-booking/internal/handler/httperr"
	"visa-booking/internal/usecase/commands"
	"visa-booking/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type WebhookHandler struct {
	commands commands.WebhookCommands
	queries  queries.BookingQueries
}

func NewWebhookHandler(cmd commands.WebhookCommands, q queries.BookingQueries) *WebhookHandler {
	return &WebhookHandler{
		commands: cmd,
		queries:  q,
	}
}

// @Summary Get webhook log
// @Tags webhooks
// @Produce json
// @Security BearerAuth
// @Param id path string true "Webhook log ID"
// @Success 200 {object} resdto.WebhookLogResponse
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /webhooks/{id} [get]
func (h *WebhookHandler) Get(c *gin.Context) {
	actor, ok := actorOf(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	l, err := h.queries.GetWebhookLog(c.Request.Context(), actor, id)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	res, err := resdto.FromWebhookLog(l)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// @Summary Resend webhook
// @Description Create a retry log from an existing one and deliver it (admin only)
// @Tags webhooks
// @Produce json
// @Security BearerAuth
// @Param id path string true "Webhook log ID"
// @Success 201 {object} resdto.WebhookLogResponse
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /webhooks/{id}/resend [post]
func (h *WebhookHandler) Resend(c *gin.Context) {
	actor, ok := actorOf(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	l, err := h.commands.ResendWebhook(c.Request.Context(), actor, id)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	res, err := resdto.FromWebhookLog(l)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusCreated, res)
}
