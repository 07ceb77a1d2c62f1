//go:build unit

package api_test

import (
	"net/http"
	"testing"

	"visa-booking/internal/domain/booking"
	"visa-booking/internal/domain/pricing"
	"visa-booking/internal/domain/user"
	"visa-booking/internal/handler/api"
	reqdto "visa-booking/internal/handler/dto/request"
	resdto "visa-booking/internal/handler/dto/response"
	"visa-booking/internal/pkg/errs"
	"visa-booking/internal/usecase/commands"
	"visa-booking/tests/common/builder"
	"visa-booking/tests/common/httptest"
	"visa-booking/tests/common/testutil"
	commandsmock "visa-booking/tests/mock/commands"
	queriesmock "visa-booking/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type CaseHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockBookings *commandsmock.MockBookingCommands
	mockCapacity *commandsmock.MockCapacityCommands
	mockQueries  *queriesmock.MockBookingQueries
	handler      *api.CaseHandler
	actor        user.Actor
}

func (s *CaseHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	reqdto.RegisterValidators()
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockBookings = commandsmock.NewMockBookingCommands(s.mockCtrl)
	s.mockCapacity = commandsmock.NewMockCapacityCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockBookingQueries(s.mockCtrl)
	s.handler = api.NewCaseHandler(s.mockBookings, s.mockCapacity, s.mockQueries)
	s.actor = builder.Agent(uuid.New())

	// Mock authentication middleware for testing
	authMiddleware := func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": gin.H{"code": "UNAUTHORIZED", "message": "Unauthorized"}})
			return
		}
		c.Set("actor", s.actor)
		c.Next()
	}

	cases := s.router.Group("/cases", authMiddleware)
	cases.POST("", s.handler.Create)
	cases.GET("/:id", s.handler.Get)
	cases.POST("/:id/applicants", s.handler.AddApplicant)
	cases.DELETE("/:id/applicants/:applicantId", s.handler.RemoveApplicant)
	cases.POST("/:id/recompute", s.handler.Recompute)
	cases.POST("/:id/submit", s.handler.Submit)
	cases.POST("/:id/promote", s.handler.Promote)
	cases.POST("/:id/reschedule", s.handler.Reschedule)
	cases.PUT("/:id/status", s.handler.UpdateStatus)
}

func (s *CaseHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestCaseHandlerSuite(t *testing.T) {
	suite.Run(t, new(CaseHandlerTestSuite))
}

type testCaseCase struct {
	name       string
	mutate     func(m map[string]any)
	expectCode int
}

// ================================================================================
// TestCreate
// ================================================================================

func (s *CaseHandlerTestSuite) TestCreate() {
	url := "/cases"
	appointmentID := uuid.New()
	reqBody := reqdto.CreateBookingRequest{AppointmentID: appointmentID, SeatType: "normal"}
	created := builder.NewCaseBuilder().With(func(b *builder.CaseBuilder) {
		b.AppointmentID = appointmentID
	}).BuildDomain()

	validation := []testCaseCase{
		{name: "missing field: appointment_id", mutate: testutil.Field("appointment_id", nil), expectCode: http.StatusBadRequest},
		{name: "missing field: seat_type", mutate: testutil.Field("seat_type", nil), expectCode: http.StatusBadRequest},
		{name: "invalid appointment_id", mutate: testutil.Field("appointment_id", "not-a-uuid"), expectCode: http.StatusBadRequest},
		{name: "unknown seat type", mutate: testutil.Field("seat_type", "FIRST"), expectCode: http.StatusBadRequest},
	}

	s.Run("success: returns 201 with the pricing snapshot", func() {
		s.mockBookings.EXPECT().
			CreateBooking(gomock.Any(), s.actor, commands.CreateBookingRequest{AppointmentID: appointmentID, SeatType: pricing.SeatNormal}).
			Return(created, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "token")

		var resp resdto.CaseResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &resp)
		s.Equal(created.ID(), resp.ID)
		s.Equal(booking.LockDraft, resp.LockStatus)
		s.Equal(int64(450), resp.Pricing.Prices.Normal.Adult)
	})

	for _, tc := range validation {
		s.Run(tc.name, func() {
			body := testutil.DtoMap(s.T(), reqBody, tc.mutate)
			rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, body, "token")
			httptest.AssertErrorCode(s.T(), rec, tc.expectCode, "VALIDATION_ERROR")
		})
	}

	s.Run("error: wildcard seat type rejected by the use case", func() {
		s.mockBookings.EXPECT().
			CreateBooking(gomock.Any(), s.actor, commands.CreateBookingRequest{AppointmentID: appointmentID, SeatType: pricing.SeatTypeAll}).
			Return(nil, errs.Newm(errs.ErrValidation, "seat type must be NORMAL or VIP")).Times(1)

		body := testutil.DtoMap(s.T(), reqBody, testutil.Field("seat_type", "ALL"))
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, body, "token")

		httptest.AssertErrorCode(s.T(), rec, http.StatusBadRequest, "VALIDATION_ERROR")
	})

	s.Run("error: no default price book maps to 422", func() {
		s.mockBookings.EXPECT().CreateBooking(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, errs.Newm(errs.ErrNoDefaultPriceBook, "no active price book for country FR")).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "token")

		httptest.AssertErrorCode(s.T(), rec, http.StatusUnprocessableEntity, "NO_DEFAULT_PRICEBOOK")
	})

	s.Run("error: missing token", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
		httptest.AssertErrorCode(s.T(), rec, http.StatusUnauthorized, "UNAUTHORIZED")
	})
}

// ================================================================================
// TestGet
// ================================================================================

func (s *CaseHandlerTestSuite) TestGet() {
	c := builder.NewCaseBuilder().BuildDomain()

	s.Run("success", func() {
		s.mockQueries.EXPECT().GetBooking(gomock.Any(), s.actor, c.ID()).Return(c, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/cases/"+c.ID().String(), nil, "token")

		var resp resdto.CaseResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &resp)
		s.Equal(c.AgencyID(), resp.AgencyID)
	})

	s.Run("error: invalid id", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/cases/abc", nil, "token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid id format")
	})

	s.Run("error: other agency maps to 403", func() {
		s.mockQueries.EXPECT().GetBooking(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, errs.Newm(errs.ErrUnauthorized, "case belongs to another agency")).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/cases/"+c.ID().String(), nil, "token")

		httptest.AssertErrorCode(s.T(), rec, http.StatusForbidden, "UNAUTHORIZED")
	})

	s.Run("error: not found", func() {
		s.mockQueries.EXPECT().GetBooking(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, booking.ErrCaseNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/cases/"+uuid.NewString(), nil, "token")

		httptest.AssertErrorCode(s.T(), rec, http.StatusNotFound, "NOT_FOUND")
	})
}

// ================================================================================
// TestAddApplicant
// ================================================================================

func (s *CaseHandlerTestSuite) TestAddApplicant() {
	c := builder.NewCaseBuilder().BuildDomain()
	url := "/cases/" + c.ID().String() + "/applicants"
	ab := builder.NewApplicantBuilder()
	reqBody := ab.BuildRequestDTO()

	validation := []testCaseCase{
		{name: "missing field: full_name", mutate: testutil.Field("full_name", nil), expectCode: http.StatusBadRequest},
		{name: "missing field: birth_date", mutate: testutil.Field("birth_date", nil), expectCode: http.StatusBadRequest},
		{name: "birth_date not a date", mutate: testutil.Field("birth_date", "02/03/1996"), expectCode: http.StatusBadRequest},
	}

	s.Run("success: birth date parsed as a calendar date", func() {
		s.mockBookings.EXPECT().AddApplicant(gomock.Any(), s.actor, c.ID(), ab.BuildCommand()).Return(c, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "token")

		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
	})

	for _, tc := range validation {
		s.Run(tc.name, func() {
			body := testutil.DtoMap(s.T(), reqBody, tc.mutate)
			rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, body, "token")
			httptest.AssertErrorCode(s.T(), rec, tc.expectCode, "VALIDATION_ERROR")
		})
	}

	s.Run("error: submitted case maps to 409", func() {
		s.mockBookings.EXPECT().AddApplicant(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, errs.Newm(errs.ErrInvalidStateTransition, "case is SUBMITTED and cannot be edited")).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "token")

		httptest.AssertErrorCode(s.T(), rec, http.StatusConflict, "INVALID_STATE_TRANSITION")
	})
}

func (s *CaseHandlerTestSuite) TestRemoveApplicant() {
	c := builder.NewCaseBuilder().BuildDomain()
	applicantID := uuid.New()

	s.mockBookings.EXPECT().RemoveApplicant(gomock.Any(), s.actor, c.ID(), applicantID).Return(c, nil).Times(1)

	rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete,
		"/cases/"+c.ID().String()+"/applicants/"+applicantID.String(), nil, "token")

	httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
}

func (s *CaseHandlerTestSuite) TestRecompute() {
	c := builder.NewCaseBuilder().BuildDomain()

	s.mockBookings.EXPECT().RecomputeBooking(gomock.Any(), s.actor, c.ID()).Return(c, nil).Times(1)

	rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/cases/"+c.ID().String()+"/recompute", nil, "token")

	var resp resdto.CaseResponse
	httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &resp)
	s.Equal("EUR", resp.Pricing.Currency)
}

// ================================================================================
// Capacity endpoints
// ================================================================================

func (s *CaseHandlerTestSuite) TestSubmit() {
	c := builder.NewCaseBuilder().BuildDomain()
	s.Require().NoError(c.Submit(true, builder.BaseDate))
	appt := builder.NewAppointmentBuilder().WithCapacity(1).BuildDomain(builder.BaseDate)
	appt.SyncFullness(1, builder.BaseDate)
	url := "/cases/" + c.ID().String() + "/submit"

	s.Run("success: returns decision and appointment status", func() {
		s.mockCapacity.EXPECT().SubmitBooking(gomock.Any(), s.actor, c.ID()).
			Return(&commands.CapacityResult{Case: c, Appointment: appt, ConfirmedCount: 1}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "token")

		var resp resdto.CapacityResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &resp)
		s.Equal(1, resp.ConfirmedCount)
		s.True(resp.Case.Confirmed)
		s.Equal("FULL", string(resp.Appointment.Status))
	})

	s.Run("error: already submitted maps to 409", func() {
		s.mockCapacity.EXPECT().SubmitBooking(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, errs.Newm(errs.ErrAlreadySubmitted, "case is already submitted")).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "token")

		httptest.AssertErrorCode(s.T(), rec, http.StatusConflict, "ALREADY_SUBMITTED")
	})
}

func (s *CaseHandlerTestSuite) TestPromote_CapacityExceeded() {
	id := uuid.New()
	s.mockCapacity.EXPECT().PromoteWaitlisted(gomock.Any(), s.actor, id).
		Return(nil, errs.Newm(errs.ErrCapacityExceeded, "appointment has 1/1 seats confirmed")).Times(1)

	rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/cases/"+id.String()+"/promote", nil, "token")

	httptest.AssertErrorCode(s.T(), rec, http.StatusConflict, "CAPACITY_EXCEEDED")
}

func (s *CaseHandlerTestSuite) TestReschedule() {
	c := builder.NewCaseBuilder().BuildDomain()
	source := builder.NewAppointmentBuilder().BuildDomain(builder.BaseDate)
	target := builder.NewAppointmentBuilder().BuildDomain(builder.BaseDate)
	url := "/cases/" + c.ID().String() + "/reschedule"

	s.Run("success", func() {
		s.mockCapacity.EXPECT().RescheduleBooking(gomock.Any(), s.actor, c.ID(), target.ID).
			Return(&commands.RescheduleResult{
				CapacityResult: commands.CapacityResult{Case: c, Appointment: target},
				Source:         source,
				SourceReopened: true,
			}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqdto.RescheduleRequest{AppointmentID: target.ID}, "token")

		var resp resdto.RescheduleResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &resp)
		s.True(resp.SourceReopened)
		s.Equal(source.ID, resp.Source.ID)
		s.Equal(target.ID, resp.Appointment.ID)
	})

	s.Run("error: missing appointment_id", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, map[string]any{}, "token")
		httptest.AssertErrorCode(s.T(), rec, http.StatusBadRequest, "VALIDATION_ERROR")
	})

	s.Run("error: closed target maps to 409", func() {
		s.mockCapacity.EXPECT().RescheduleBooking(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, errs.Newm(errs.ErrAppointmentNotOpen, "appointment is CANCELLED")).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqdto.RescheduleRequest{AppointmentID: target.ID}, "token")

		httptest.AssertErrorCode(s.T(), rec, http.StatusConflict, "APPOINTMENT_NOT_OPEN")
	})
}

func (s *CaseHandlerTestSuite) TestUpdateStatus() {
	c := builder.NewCaseBuilder().BuildDomain()
	url := "/cases/" + c.ID().String() + "/status"

	s.Run("success: status is case-insensitive", func() {
		s.mockBookings.EXPECT().UpdateCaseStatus(gomock.Any(), s.actor, c.ID(), booking.StatusInReview).Return(c, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, url, reqdto.UpdateCaseStatusRequest{Status: "IN_REVIEW"}, "token")

		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
	})

	s.Run("error: unknown status", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, url, reqdto.UpdateCaseStatusRequest{Status: "archived"}, "token")
		httptest.AssertErrorCode(s.T(), rec, http.StatusBadRequest, "VALIDATION_ERROR")
	})
}
