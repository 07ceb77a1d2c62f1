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

type CaseHandler struct {
	bookings commands.BookingCommands
	capacity commands.CapacityCommands
	queries  queries.BookingQueries
}

func NewCaseHandler(bookings commands.BookingCommands, capacity commands.CapacityCommands, q queries.BookingQueries) *CaseHandler {
	return &CaseHandler{
		bookings: bookings,
		capacity: capacity,
		queries:  q,
	}
}

// @Summary Create booking case
// @Description Create a DRAFT case on an appointment with a pricing snapshot
// @Tags cases
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateBookingRequest true "Booking request"
// @Success 201 {object} resdto.CaseResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Router /cases [post]
func (h *CaseHandler) Create(c *gin.Context) {
	actor, ok := actorOf(c)
	if !ok {
		return
	}
	var req reqdto.CreateBookingRequest
	if !bindJSON(c, &req) {
		return
	}
	cmd, err := req.ToCommand()
	if err != nil {
		httperr.Abort(c, err)
		return
	}

	created, err := h.bookings.CreateBooking(c.Request.Context(), actor, cmd)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusCreated, resdto.FromCase(created))
}

// @Summary Get booking case
// @Tags cases
// @Produce json
// @Security BearerAuth
// @Param id path string true "Case ID"
// @Success 200 {object} resdto.CaseResponse
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /cases/{id} [get]
func (h *CaseHandler) Get(c *gin.Context) {
	actor, ok := actorOf(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	found, err := h.queries.GetBooking(c.Request.Context(), actor, id)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromCase(found))
}

// @Summary Add applicant
// @Description Add an applicant to an editable case and recompute its totals
// @Tags cases
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Case ID"
// @Param request body reqdto.AddApplicantRequest true "Applicant"
// @Success 200 {object} resdto.CaseResponse
// @Failure 400 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /cases/{id}/applicants [post]
func (h *CaseHandler) AddApplicant(c *gin.Context) {
	actor, ok := actorOf(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req reqdto.AddApplicantRequest
	if !bindJSON(c, &req) {
		return
	}
	cmd, err := req.ToCommand()
	if err != nil {
		httperr.Abort(c, err)
		return
	}

	updated, err := h.bookings.AddApplicant(c.Request.Context(), actor, id, cmd)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromCase(updated))
}

// @Summary Remove applicant
// @Tags cases
// @Produce json
// @Security BearerAuth
// @Param id path string true "Case ID"
// @Param applicantId path string true "Applicant ID"
// @Success 200 {object} resdto.CaseResponse
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /cases/{id}/applicants/{applicantId} [delete]
func (h *CaseHandler) RemoveApplicant(c *gin.Context) {
	actor, ok := actorOf(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	applicantID, ok := pathID(c, "applicantId")
	if !ok {
		return
	}

	updated, err := h.bookings.RemoveApplicant(c.Request.Context(), actor, id, applicantID)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromCase(updated))
}

// @Summary Recompute totals
// @Tags cases
// @Produce json
// @Security BearerAuth
// @Param id path string true "Case ID"
// @Success 200 {object} resdto.CaseResponse
// @Router /cases/{id}/recompute [post]
func (h *CaseHandler) Recompute(c *gin.Context) {
	actor, ok := actorOf(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	updated, err := h.bookings.RecomputeBooking(c.Request.Context(), actor, id)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromCase(updated))
}

// @Summary Submit case
// @Description Submit a case; confirmed when a seat is free, waitlisted otherwise
// @Tags cases
// @Produce json
// @Security BearerAuth
// @Param id path string true "Case ID"
// @Success 200 {object} resdto.CapacityResponse
// @Failure 409 {object} httperr.Response
// @Router /cases/{id}/submit [post]
func (h *CaseHandler) Submit(c *gin.Context) {
	actor, ok := actorOf(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	res, err := h.capacity.SubmitBooking(c.Request.Context(), actor, id)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromCapacityResult(res))
}

// @Summary Promote waitlisted case
// @Tags cases
// @Produce json
// @Security BearerAuth
// @Param id path string true "Case ID"
// @Success 200 {object} resdto.CapacityResponse
// @Failure 403 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /cases/{id}/promote [post]
func (h *CaseHandler) Promote(c *gin.Context) {
	actor, ok := actorOf(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	res, err := h.capacity.PromoteWaitlisted(c.Request.Context(), actor, id)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromCapacityResult(res))
}

// @Summary Reschedule case
// @Tags cases
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Case ID"
// @Param request body reqdto.RescheduleRequest true "Target appointment"
// @Success 200 {object} resdto.RescheduleResponse
// @Failure 409 {object} httperr.Response
// @Router /cases/{id}/reschedule [post]
func (h *CaseHandler) Reschedule(c *gin.Context) {
	actor, ok := actorOf(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req reqdto.RescheduleRequest
	if !bindJSON(c, &req) {
		return
	}

	res, err := h.capacity.RescheduleBooking(c.Request.Context(), actor, id, req.AppointmentID)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromRescheduleResult(res))
}

// @Summary Update case status label
// @Tags cases
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Case ID"
// @Param request body reqdto.UpdateCaseStatusRequest true "Status"
// @Success 200 {object} resdto.CaseResponse
// @Failure 403 {object} httperr.Response
// @Router /cases/{id}/status [put]
func (h *CaseHandler) UpdateStatus(c *gin.Context) {
	actor, ok := actorOf(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req reqdto.UpdateCaseStatusRequest
	if !bindJSON(c, &req) {
		return
	}
	status, err := req.ToStatus()
	if err != nil {
		httperr.Abort(c, err)
		return
	}

	updated, err := h.bookings.UpdateCaseStatus(c.Request.Context(), actor, id, status)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromCase(updated))
}
