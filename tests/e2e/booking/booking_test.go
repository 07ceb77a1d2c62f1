//go:build e2e

package booking_test

import (
	"fmt"
	"net/http"
	"sync"
	"testing"
	"time"

	"visa-booking/internal/domain/booking"
	"visa-booking/internal/domain/pricing"
	reqdto "visa-booking/internal/handler/dto/request"
	resdto "visa-booking/internal/handler/dto/response"
	"visa-booking/tests/common/builder"
	"visa-booking/tests/common/dbtest"
	"visa-booking/tests/common/httptest"
	"visa-booking/tests/e2e"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/tidwall/gjson"
)

const (
	casesURL        = "/api/cases"
	caseURL         = "/api/cases/%s"
	applicantsURL   = "/api/cases/%s/applicants"
	submitURL       = "/api/cases/%s/submit"
	promoteURL      = "/api/cases/%s/promote"
	amendmentsURL   = "/api/cases/%s/amendments"
	resolveURL      = "/api/amendments/%s/resolve"
	appointmentsURL = "/api/appointments"
	pricesURL       = "/api/appointments/%s/prices"
	priceBooksURL   = "/api/price-books"
	overridesURL    = "/api/price-overrides"
)

type BookingSuite struct {
	e2e.SharedSuite
}

func (s *BookingSuite) SetupSubTest() {
	s.SharedSuite.SetupSubTest()
}

func TestBookingSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(BookingSuite))
}

func slotDate() time.Time {
	return time.Now().UTC().Truncate(24*time.Hour).AddDate(0, 1, 0)
}

// createCase opens a case with one adult applicant and returns its id.
func (s *BookingSuite) createCase(t *testing.T, token string, appointmentID uuid.UUID) uuid.UUID {
	t.Helper()

	w := httptest.PerformRequest(t, s.Router, http.MethodPost, casesURL,
		reqdto.CreateBookingRequest{AppointmentID: appointmentID, SeatType: "NORMAL"}, token)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var created resdto.CaseResponse
	require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &created))

	applicant := builder.NewApplicantBuilder().AgedAt(slotDate(), 30).BuildRequestDTO()
	w = httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(applicantsURL, created.ID), applicant, token)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	return created.ID
}

func (s *BookingSuite) submit(t *testing.T, token string, caseID uuid.UUID) resdto.CapacityResponse {
	t.Helper()

	w := httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(submitURL, caseID), nil, token)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var res resdto.CapacityResponse
	require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &res))
	return res
}

// =============================================================================
// Catalog and pricing
// =============================================================================

func (s *BookingSuite) TestCatalogAndPricing() {
	s.Run("Normal case: admin builds the catalog and overrides apply in order", func() {
		t := s.T()
		admin := s.JWT.AdminToken(t)

		bookReq := builder.NewPriceBookBuilder().BuildRequestDTO()
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, priceBooksURL, bookReq, admin)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		var book resdto.PriceBookResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &book))

		apptReq := builder.NewAppointmentBuilder().With(func(b *builder.AppointmentBuilder) {
			b.Date = slotDate()
		}).BuildRequestDTO()
		w = httptest.PerformRequest(t, s.Router, http.MethodPost, appointmentsURL, apptReq, admin)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		var appt resdto.AppointmentResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &appt))

		city := reqdto.PriceOverrideRequest{
			Scope: "CITY", Country: "FR", Center: "Paris",
			ModifierType: "DISCOUNT_PERCENT", Value: 10, SeatType: "NORMAL", PassengerType: "ADULT",
		}
		w = httptest.PerformRequest(t, s.Router, http.MethodPost, overridesURL, city, admin)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		apptID := appt.ID
		fixed := reqdto.PriceOverrideRequest{
			Scope: "APPOINTMENT", AppointmentID: &apptID,
			ModifierType: "FIXED_PRICE", Value: 400, SeatType: "NORMAL", PassengerType: "ADULT",
		}
		w = httptest.PerformRequest(t, s.Router, http.MethodPost, overridesURL, fixed, admin)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		w = httptest.PerformRequest(t, s.Router, http.MethodGet, fmt.Sprintf(pricesURL, appt.ID), nil, admin)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		var resolved resdto.ResolutionResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &resolved))

		expected := &resdto.ResolutionResponse{
			Currency:    "EUR",
			PriceBookID: book.ID,
			Prices: pricing.Grid{
				Normal: pricing.Rates{Adult: 400, Child: 300, Infant: 100},
				VIP:    pricing.Rates{Adult: 900, Child: 600, Infant: 200},
			},
		}
		opts := []cmp.Option{
			cmpopts.IgnoreFields(resdto.ResolutionResponse{}, "AppliedOverrideIDs"),
		}
		if diff := cmp.Diff(expected, &resolved, opts...); diff != "" {
			t.Errorf("Resolution mismatch (-want +got):\n%s", diff)
		}
		require.Len(t, resolved.AppliedOverrideIDs, 2)
	})

	s.Run("Error case: agent cannot create price books", func() {
		t := s.T()
		token := s.JWT.AgentToken(t, uuid.New())

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, priceBooksURL, builder.NewPriceBookBuilder().BuildRequestDTO(), token)

		httptest.AssertErrorCode(t, w, http.StatusForbidden, "UNAUTHORIZED")
	})

	s.Run("Error case: no price book for the country", func() {
		t := s.T()
		apptID := dbtest.CreateTestAppointment(t, s.DB, "DE", "Berlin", slotDate(), 3)

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, casesURL,
			reqdto.CreateBookingRequest{AppointmentID: apptID, SeatType: "NORMAL"}, s.JWT.AgentToken(t, uuid.New()))

		httptest.AssertErrorCode(t, w, http.StatusUnprocessableEntity, "NO_DEFAULT_PRICEBOOK")
	})

	s.Run("Error case: missing token", func() {
		t := s.T()
		w := httptest.PerformRequest(t, s.Router, http.MethodGet, fmt.Sprintf(pricesURL, uuid.New()), nil, "")
		httptest.AssertErrorCode(t, w, http.StatusUnauthorized, "UNAUTHORIZED")
	})
}

// =============================================================================
// Capacity workflow
// =============================================================================

func (s *BookingSuite) TestCapacityWorkflow() {
	s.Run("Normal case: first case confirmed, second waitlisted, promotion refused at capacity", func() {
		t := s.T()
		dbtest.CreateTestPriceBook(t, s.DB, "FR", true)
		apptID := dbtest.CreateTestAppointment(t, s.DB, "FR", "Paris", slotDate(), 1)
		agent := s.JWT.AgentToken(t, uuid.New())
		admin := s.JWT.AdminToken(t)

		first := s.createCase(t, agent, apptID)
		res := s.submit(t, agent, first)
		require.True(t, res.Case.Confirmed)
		require.Equal(t, booking.StatusReady, res.Case.Status)
		require.Equal(t, "FULL", string(res.Appointment.Status))

		second := s.createCase(t, agent, apptID)
		res = s.submit(t, agent, second)
		require.False(t, res.Case.Confirmed)
		require.Equal(t, booking.LockSubmitted, res.Case.LockStatus)

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(promoteURL, second), nil, admin)
		httptest.AssertErrorCode(t, w, http.StatusConflict, "CAPACITY_EXCEEDED")
		require.Equal(t, 1, dbtest.CountConfirmed(t, s.DB, apptID))

		w = httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(submitURL, first), nil, agent)
		httptest.AssertErrorCode(t, w, http.StatusConflict, "ALREADY_SUBMITTED")

		require.Eventually(t, func() bool {
			for _, body := range s.Webhooks.Bodies() {
				if gjson.GetBytes(body, "event_type").String() == "CASE_SUBMITTED" &&
					gjson.GetBytes(body, "case_id").String() == first.String() {
					return true
				}
			}
			return false
		}, 5*time.Second, 50*time.Millisecond, "CASE_SUBMITTED webhook should be delivered")
	})

	s.Run("Normal case: concurrent submissions never overbook", func() {
		t := s.T()
		dbtest.CreateTestPriceBook(t, s.DB, "FR", true)
		apptID := dbtest.CreateTestAppointment(t, s.DB, "FR", "Paris", slotDate(), 2)

		const n = 6
		type submission struct {
			token string
			id    uuid.UUID
		}
		subs := make([]submission, n)
		for i := range subs {
			token := s.JWT.AgentToken(t, uuid.New())
			subs[i] = submission{token: token, id: s.createCase(t, token, apptID)}
		}

		var wg sync.WaitGroup
		codes := make([]int, n)
		for i, sub := range subs {
			i, sub := i, sub
			wg.Add(1)
			go func() {
				defer wg.Done()
				w := httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(submitURL, sub.id), nil, sub.token)
				codes[i] = w.Code
			}()
		}
		wg.Wait()

		for _, code := range codes {
			require.Equal(t, http.StatusOK, code)
		}
		require.Equal(t, 2, dbtest.CountConfirmed(t, s.DB, apptID))
	})

	s.Run("Error case: other agency cannot read the case", func() {
		t := s.T()
		dbtest.CreateTestPriceBook(t, s.DB, "FR", true)
		apptID := dbtest.CreateTestAppointment(t, s.DB, "FR", "Paris", slotDate(), 1)
		caseID := s.createCase(t, s.JWT.AgentToken(t, uuid.New()), apptID)

		w := httptest.PerformRequest(t, s.Router, http.MethodGet, fmt.Sprintf(caseURL, caseID), nil, s.JWT.AgentToken(t, uuid.New()))

		httptest.AssertErrorCode(t, w, http.StatusForbidden, "UNAUTHORIZED")
	})
}

// =============================================================================
// Amendments
// =============================================================================

func (s *BookingSuite) TestAmendmentReleasesSeat() {
	s.Run("Normal case: approved cancellation frees the seat for the waitlist", func() {
		t := s.T()
		dbtest.CreateTestPriceBook(t, s.DB, "FR", true)
		apptID := dbtest.CreateTestAppointment(t, s.DB, "FR", "Paris", slotDate(), 1)
		agent := s.JWT.AgentToken(t, uuid.New())
		admin := s.JWT.AdminToken(t)

		confirmed := s.createCase(t, agent, apptID)
		s.submit(t, agent, confirmed)
		waitlisted := s.createCase(t, agent, apptID)
		s.submit(t, agent, waitlisted)

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(amendmentsURL, confirmed),
			reqdto.FileAmendmentRequest{Type: "CANCEL", Details: "travel postponed"}, agent)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		var filed resdto.AmendmentResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &filed))

		w = httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(amendmentsURL, confirmed),
			reqdto.FileAmendmentRequest{Type: "EDIT"}, agent)
		httptest.AssertErrorCode(t, w, http.StatusConflict, "INVALID_STATE_TRANSITION")

		w = httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(resolveURL, filed.ID),
			reqdto.ResolveAmendmentRequest{Decision: "APPROVE"}, admin)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		var resolved resdto.ResolveAmendmentResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &resolved))
		require.True(t, resolved.SeatReleased)
		require.True(t, resolved.AppointmentReopened)
		require.Equal(t, booking.StatusCancelled, resolved.Case.Status)

		w = httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(promoteURL, waitlisted), nil, admin)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		require.Equal(t, 1, dbtest.CountConfirmed(t, s.DB, apptID))
	})
}
