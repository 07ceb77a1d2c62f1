package api

import (
	"net/http"

	"visa-booking/internal/domain/pricing"
	reqdto "visa-booking/internal/handler/dto/request"
	resdto "visa-booking/internal/handler/dto/response"
	"visa-booking/internal/handler/httperr"
	"visa-booking/internal/usecase/commands"
	"visa-booking/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type CatalogHandler struct {
	commands commands.CatalogCommands
	pricing  queries.PricingQueries
}

func NewCatalogHandler(cmd commands.CatalogCommands, pq queries.PricingQueries) *CatalogHandler {
	return &CatalogHandler{
		commands: cmd,
		pricing:  pq,
	}
}

// @Summary Resolve appointment prices
// @Description Effective price grid for an appointment after overrides
// @Tags appointments
// @Produce json
// @Security BearerAuth
// @Param id path string true "Appointment ID"
// @Success 200 {object} resdto.ResolutionResponse
// @Failure 404 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Router /appointments/{id}/prices [get]
func (h *CatalogHandler) ResolvePrices(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	res, err := h.pricing.ResolvePrices(c.Request.Context(), id)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromResolution(res))
}

// @Summary Create appointment
// @Tags appointments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateAppointmentRequest true "Appointment"
// @Success 201 {object} resdto.AppointmentResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Router /appointments [post]
func (h *CatalogHandler) CreateAppointment(c *gin.Context) {
	actor, ok := actorOf(c)
	if !ok {
		return
	}
	var req reqdto.CreateAppointmentRequest
	if !bindJSON(c, &req) {
		return
	}
	in, err := req.ToInput()
	if err != nil {
		httperr.Abort(c, err)
		return
	}

	created, err := h.commands.CreateAppointment(c.Request.Context(), actor, in)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusCreated, resdto.FromAppointment(created))
}

// @Summary Change appointment status
// @Tags appointments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Appointment ID"
// @Param request body reqdto.AppointmentStatusRequest true "Status"
// @Success 200 {object} resdto.AppointmentResponse
// @Failure 403 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /appointments/{id}/status [put]
func (h *CatalogHandler) ChangeAppointmentStatus(c *gin.Context) {
	actor, ok := actorOf(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req reqdto.AppointmentStatusRequest
	if !bindJSON(c, &req) {
		return
	}
	status, err := req.ToStatus()
	if err != nil {
		httperr.Abort(c, err)
		return
	}

	updated, err := h.commands.ChangeAppointmentStatus(c.Request.Context(), actor, id, status)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromAppointment(updated))
}

// @Summary Create price book
// @Tags price-books
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.PriceBookRequest true "Price book"
// @Success 201 {object} resdto.PriceBookResponse
// @Failure 400 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /price-books [post]
func (h *CatalogHandler) CreatePriceBook(c *gin.Context) {
	actor, ok := actorOf(c)
	if !ok {
		return
	}
	var req reqdto.PriceBookRequest
	if !bindJSON(c, &req) {
		return
	}

	created, err := h.commands.CreatePriceBook(c.Request.Context(), actor, req.ToInput())
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	h.writePriceBook(c, http.StatusCreated, created)
}

// @Summary Update price book
// @Tags price-books
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Price book ID"
// @Param request body reqdto.PriceBookRequest true "Price book"
// @Success 200 {object} resdto.PriceBookResponse
// @Router /price-books/{id} [put]
func (h *CatalogHandler) UpdatePriceBook(c *gin.Context) {
	actor, ok := actorOf(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req reqdto.PriceBookRequest
	if !bindJSON(c, &req) {
		return
	}

	updated, err := h.commands.UpdatePriceBook(c.Request.Context(), actor, id, req.ToInput())
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	h.writePriceBook(c, http.StatusOK, updated)
}

// @Summary Deactivate price book
// @Tags price-books
// @Produce json
// @Security BearerAuth
// @Param id path string true "Price book ID"
// @Success 200 {object} resdto.PriceBookResponse
// @Router /price-books/{id} [delete]
func (h *CatalogHandler) DeactivatePriceBook(c *gin.Context) {
	actor, ok := actorOf(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	updated, err := h.commands.DeactivatePriceBook(c.Request.Context(), actor, id)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	h.writePriceBook(c, http.StatusOK, updated)
}

// @Summary Create price override
// @Tags price-overrides
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.PriceOverrideRequest true "Override"
// @Success 201 {object} resdto.PriceOverrideResponse
// @Failure 400 {object} httperr.Response
// @Router /price-overrides [post]
func (h *CatalogHandler) CreatePriceOverride(c *gin.Context) {
	actor, ok := actorOf(c)
	if !ok {
		return
	}
	var req reqdto.PriceOverrideRequest
	if !bindJSON(c, &req) {
		return
	}
	in, err := req.ToInput()
	if err != nil {
		httperr.Abort(c, err)
		return
	}

	created, err := h.commands.CreatePriceOverride(c.Request.Context(), actor, in)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	res, err := resdto.FromPriceOverride(created)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusCreated, res)
}

// @Summary Deactivate price override
// @Tags price-overrides
// @Produce json
// @Security BearerAuth
// @Param id path string true "Override ID"
// @Success 200 {object} resdto.PriceOverrideResponse
// @Router /price-overrides/{id} [delete]
func (h *CatalogHandler) DeactivatePriceOverride(c *gin.Context) {
	actor, ok := actorOf(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	updated, err := h.commands.DeactivatePriceOverride(c.Request.Context(), actor, id)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	res, err := resdto.FromPriceOverride(updated)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *CatalogHandler) writePriceBook(c *gin.Context, status int, b *pricing.PriceBook) {
	res, err := resdto.FromPriceBook(b)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(status, res)
}
