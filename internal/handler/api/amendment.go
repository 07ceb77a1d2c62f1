package api

import (
	"net/http"

	reqdto "visa-booking/internal/handler/dto/request"
	resdto "visa-booking/internal/handler/dto/response"
	"visa-booking/internal/handler/httperr"
	"visa-booking/internal/usecase/commands"
	"visa-booking/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type AmendmentHandler struct {
	commands commands.AmendmentCommands
	queries  queries.BookingQueries
}

func NewAmendmentHandler(cmd commands.AmendmentCommands, q queries.BookingQueries) *AmendmentHandler {
	return &AmendmentHandler{
		commands: cmd,
		queries:  q,
	}
}

// @Summary File amendment request
// @Description File an EDIT, CANCEL or RESCHEDULE request against a submitted case
// @Tags amendments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Case ID"
// @Param request body reqdto.FileAmendmentRequest true "Amendment"
// @Success 201 {object} resdto.AmendmentResponse
// @Failure 400 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /cases/{id}/amendments [post]
func (h *AmendmentHandler) File(c *gin.Context) {
	actor, ok := actorOf(c)
	if !ok {
		return
	}
	caseID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req reqdto.FileAmendmentRequest
	if !bindJSON(c, &req) {
		return
	}
	cmd, err := req.ToCommand()
	if err != nil {
		httperr.Abort(c, err)
		return
	}

	filed, err := h.commands.FileAmendment(c.Request.Context(), actor, caseID, cmd)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	res, err := resdto.FromAmendment(filed)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusCreated, res)
}

// @Summary List amendment requests of a case
// @Tags amendments
// @Produce json
// @Security BearerAuth
// @Param id path string true "Case ID"
// @Success 200 {array} resdto.AmendmentResponse
// @Router /cases/{id}/amendments [get]
func (h *AmendmentHandler) List(c *gin.Context) {
	actor, ok := actorOf(c)
	if !ok {
		return
	}
	caseID, ok := pathID(c, "id")
	if !ok {
		return
	}

	found, err := h.queries.ListAmendments(c.Request.Context(), actor, caseID)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	res, err := resdto.FromAmendments(found)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// @Summary Resolve amendment request
// @Description Approve or reject a pending request (admin only)
// @Tags amendments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Request ID"
// @Param request body reqdto.ResolveAmendmentRequest true "Decision"
// @Success 200 {object} resdto.ResolveAmendmentResponse
// @Failure 403 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /amendments/{id}/resolve [post]
func (h *AmendmentHandler) Resolve(c *gin.Context) {
	actor, ok := actorOf(c)
	if !ok {
		return
	}
	requestID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req reqdto.ResolveAmendmentRequest
	if !bindJSON(c, &req) {
		return
	}
	cmd, err := req.ToCommand()
	if err != nil {
		httperr.Abort(c, err)
		return
	}

	resolved, err := h.commands.ResolveAmendment(c.Request.Context(), actor, requestID, cmd)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	res, err := resdto.FromResolveResult(resolved)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}
