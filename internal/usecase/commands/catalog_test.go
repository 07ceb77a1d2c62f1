//go:build unit

package commands_test

import (
	"testing"

	"visa-booking/internal/domain/amendment"
	"visa-booking/internal/domain/appointment"
	"visa-booking/internal/domain/booking"
	"visa-booking/internal/domain/pricing"
	"visa-booking/internal/pkg/errs"
	"visa-booking/internal/usecase/commands"
	"visa-booking/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

type CatalogTestSuite struct {
	useCaseSuite
}

func TestCatalogSuite(t *testing.T) {
	suite.Run(t, new(CatalogTestSuite))
}

func (s *CatalogTestSuite) TestCreatePriceBook_DemotesPreviousDefault() {
	first := s.seedPriceBook(builder.NewPriceBookBuilder())
	second := s.seedPriceBook(builder.NewPriceBookBuilder().With(func(b *builder.PriceBookBuilder) {
		b.Name = "Summer"
	}))

	s.True(second.IsDefaultForCountry)
	appt := s.seedAppointment(builder.NewAppointmentBuilder())
	c, err := s.bookings.CreateBooking(s.ctx, s.agent, builder.CreateBookingCommand(appt.ID))
	s.Require().NoError(err)
	s.Equal(second.ID, c.Snapshot().PriceBookID)
	s.NotEqual(first.ID, c.Snapshot().PriceBookID)
}

func (s *CatalogTestSuite) TestCreatePriceBook_RequiresAdmin() {
	_, err := s.catalog.CreatePriceBook(s.ctx, s.agent, builder.NewPriceBookBuilder().BuildInput())
	s.ErrorIs(err, errs.ErrUnauthorized)
}

func (s *CatalogTestSuite) TestCreatePriceBook_Invalid() {
	_, err := s.catalog.CreatePriceBook(s.ctx, s.admin, builder.NewPriceBookBuilder().With(func(b *builder.PriceBookBuilder) {
		b.Currency = ""
	}).BuildInput())
	s.ErrorIs(err, errs.ErrValidation)
}

func (s *CatalogTestSuite) TestUpdatePriceBook_DoesNotTouchExistingSnapshots() {
	pb := s.seedPriceBook(builder.NewPriceBookBuilder())
	appt := s.seedAppointment(builder.NewAppointmentBuilder())
	c := s.seedCase(appt.ID)
	s.Require().Equal(int64(450), c.Snapshot().Total)

	in := builder.NewPriceBookBuilder().With(func(b *builder.PriceBookBuilder) {
		b.Prices.Normal.Adult = 999
	}).BuildInput()
	updated, err := s.catalog.UpdatePriceBook(s.ctx, s.admin, pb.ID, in)
	s.Require().NoError(err)
	s.Equal(int64(999), updated.Prices.Normal.Adult)

	recomputed, err := s.bookings.RecomputeBooking(s.ctx, s.agent, c.ID())
	s.Require().NoError(err)
	s.Equal(int64(450), recomputed.Snapshot().Total, "locked snapshot keeps the old rate")

	fresh := s.seedCase(appt.ID)
	s.Equal(int64(999), fresh.Snapshot().Total)
}

func (s *CatalogTestSuite) TestDeactivatePriceBook_NoBookLeft() {
	pb := s.seedPriceBook(builder.NewPriceBookBuilder())
	appt := s.seedAppointment(builder.NewAppointmentBuilder())

	deactivated, err := s.catalog.DeactivatePriceBook(s.ctx, s.admin, pb.ID)
	s.Require().NoError(err)
	s.False(deactivated.IsActive)

	_, err = s.bookings.CreateBooking(s.ctx, s.agent, builder.CreateBookingCommand(appt.ID))
	s.ErrorIs(err, errs.ErrNoDefaultPriceBook)
}

func (s *CatalogTestSuite) TestCreatePriceOverride_AppliesToNewCases() {
	s.seedPriceBook(builder.NewPriceBookBuilder())
	appt := s.seedAppointment(builder.NewAppointmentBuilder())

	o, err := s.catalog.CreatePriceOverride(s.ctx, s.admin, builder.NewCityOverrideBuilder().
		Modifier(pricing.ModifierDiscountPercent, 10).
		Cells(pricing.SeatTypeAll, pricing.PassengerAdult).
		BuildInput())
	s.Require().NoError(err)

	c := s.seedCase(appt.ID)
	s.Equal(int64(405), c.Snapshot().Total)
	s.Equal([]uuid.UUID{o.ID}, c.Snapshot().AppliedOverrideIDs)

	_, err = s.catalog.DeactivatePriceOverride(s.ctx, s.admin, o.ID)
	s.Require().NoError(err)
	s.Equal(int64(450), s.seedCase(appt.ID).Snapshot().Total)
	s.Equal(int64(405), s.getCase(c.ID()).Snapshot().Total)
}

func (s *CatalogTestSuite) TestCreatePriceOverride_UnknownAppointment() {
	_, err := s.catalog.CreatePriceOverride(s.ctx, s.admin, builder.NewAppointmentOverrideBuilder(uuid.New()).BuildInput())
	s.ErrorIs(err, errs.ErrNotFound)
}

func (s *CatalogTestSuite) TestCreateAppointment_UnknownPriceBook() {
	id := uuid.New()
	_, err := s.catalog.CreateAppointment(s.ctx, s.admin, builder.NewAppointmentBuilder().With(func(b *builder.AppointmentBuilder) {
		b.PriceBookID = &id
	}).BuildInput())
	s.ErrorIs(err, errs.ErrNotFound)
}

func (s *CatalogTestSuite) TestChangeAppointmentStatus_ReopenRecomputesFullness() {
	s.seedPriceBook(builder.NewPriceBookBuilder())
	appt := s.seedAppointment(builder.NewAppointmentBuilder().WithCapacity(1))
	c := s.seedCase(appt.ID)
	_, err := s.capacity.SubmitBooking(s.ctx, s.agent, c.ID())
	s.Require().NoError(err)

	// OPEN on a FULL slot that is still at capacity lands back on FULL
	got, err := s.catalog.ChangeAppointmentStatus(s.ctx, s.admin, appt.ID, appointment.StatusOpen)
	s.Require().NoError(err)
	s.Equal(appointment.StatusFull, got.Status)

	got, err = s.catalog.ChangeAppointmentStatus(s.ctx, s.admin, appt.ID, appointment.StatusCompleted)
	s.Require().NoError(err)
	s.Equal(appointment.StatusCompleted, got.Status)

	_, err = s.catalog.ChangeAppointmentStatus(s.ctx, s.admin, appt.ID, appointment.StatusOpen)
	s.ErrorIs(err, errs.ErrInvalidStateTransition)
}

// ================================================================================
// Booking commands
// ================================================================================

func (s *CatalogTestSuite) TestCreateBooking_AdminNeedsAgency() {
	s.seedPriceBook(builder.NewPriceBookBuilder())
	appt := s.seedAppointment(builder.NewAppointmentBuilder())

	_, err := s.bookings.CreateBooking(s.ctx, s.admin, builder.CreateBookingCommand(appt.ID))
	s.ErrorIs(err, errs.ErrValidation)

	req := builder.CreateBookingCommand(appt.ID)
	req.AgencyID = &s.agencyID
	c, err := s.bookings.CreateBooking(s.ctx, s.admin, req)
	s.Require().NoError(err)
	s.Equal(s.agencyID, c.AgencyID())
}

func (s *CatalogTestSuite) TestCreateBooking_AgentIgnoresRequestedAgency() {
	s.seedPriceBook(builder.NewPriceBookBuilder())
	appt := s.seedAppointment(builder.NewAppointmentBuilder())
	other := uuid.New()

	req := builder.CreateBookingCommand(appt.ID)
	req.AgencyID = &other
	c, err := s.bookings.CreateBooking(s.ctx, s.agent, req)

	s.Require().NoError(err)
	s.Equal(s.agencyID, c.AgencyID())
}

func (s *CatalogTestSuite) TestCreateBooking_ExplicitBookWins() {
	s.seedPriceBook(builder.NewPriceBookBuilder())
	promo := s.seedPriceBook(builder.NewPriceBookBuilder().With(func(b *builder.PriceBookBuilder) {
		b.Name = "Promo"
		b.IsDefaultForCountry = false
		b.Prices.VIP.Adult = 700
	}))
	appt := s.seedAppointment(builder.NewAppointmentBuilder().With(func(b *builder.AppointmentBuilder) {
		b.PriceBookID = &promo.ID
	}))

	c, err := s.bookings.CreateBooking(s.ctx, s.agent, commands.CreateBookingRequest{
		AppointmentID: appt.ID,
		SeatType:      pricing.SeatVIP,
	})
	s.Require().NoError(err)
	c, err = s.bookings.AddApplicant(s.ctx, s.agent, c.ID(), builder.NewApplicantBuilder().BuildCommand())
	s.Require().NoError(err)

	s.Equal(promo.ID, c.Snapshot().PriceBookID)
	s.Equal(int64(700), c.Snapshot().Total)
}

func (s *CatalogTestSuite) TestRemoveApplicant() {
	s.seedPriceBook(builder.NewPriceBookBuilder())
	appt := s.seedAppointment(builder.NewAppointmentBuilder())
	c := s.seedCase(appt.ID)
	applicant := c.Applicants()[0]

	_, err := s.bookings.RemoveApplicant(s.ctx, builder.Agent(uuid.New()), c.ID(), applicant.ID)
	s.ErrorIs(err, errs.ErrUnauthorized)

	got, err := s.bookings.RemoveApplicant(s.ctx, s.agent, c.ID(), applicant.ID)
	s.Require().NoError(err)
	s.Empty(got.Applicants())
	s.Equal(int64(0), got.Snapshot().Total)
}

func (s *CatalogTestSuite) TestUpdateCaseStatus() {
	s.seedPriceBook(builder.NewPriceBookBuilder())
	appt := s.seedAppointment(builder.NewAppointmentBuilder())
	c := s.seedCase(appt.ID)

	_, err := s.bookings.UpdateCaseStatus(s.ctx, s.agent, c.ID(), booking.StatusInReview)
	s.ErrorIs(err, errs.ErrUnauthorized)

	_, err = s.bookings.UpdateCaseStatus(s.ctx, s.admin, c.ID(), booking.StatusReady)
	s.ErrorIs(err, errs.ErrInvalidStateTransition, "seats are only granted by submit and promote")

	got, err := s.bookings.UpdateCaseStatus(s.ctx, s.admin, c.ID(), booking.StatusDocumentsPending)
	s.Require().NoError(err)
	s.Equal(booking.StatusDocumentsPending, got.Status())
}

func (s *CatalogTestSuite) TestRosterWrites_HoldAppointmentLock() {
	s.seedPriceBook(builder.NewPriceBookBuilder())
	appt := s.seedAppointment(builder.NewAppointmentBuilder())
	c := s.seedCase(appt.ID)
	s.locker.Reset()

	added, err := s.bookings.AddApplicant(s.ctx, s.agent, c.ID(), builder.NewApplicantBuilder().BuildCommand())
	s.Require().NoError(err)
	_, err = s.bookings.RemoveApplicant(s.ctx, s.agent, c.ID(), added.Applicants()[1].ID)
	s.Require().NoError(err)
	_, err = s.bookings.RecomputeBooking(s.ctx, s.agent, c.ID())
	s.Require().NoError(err)
	_, err = s.bookings.UpdateCaseStatus(s.ctx, s.admin, c.ID(), booking.StatusDocumentsPending)
	s.Require().NoError(err)

	locked := s.locker.Locked()
	s.Require().Len(locked, 4)
	for _, ids := range locked {
		s.Equal([]uuid.UUID{appt.ID}, ids)
	}
}

func (s *CatalogTestSuite) TestRecompute_KeepsReleasedSeatReleased() {
	s.seedPriceBook(builder.NewPriceBookBuilder())
	appt := s.seedAppointment(builder.NewAppointmentBuilder().WithCapacity(1))
	a := s.seedCase(appt.ID)
	b := s.seedCase(appt.ID)
	_, err := s.capacity.SubmitBooking(s.ctx, s.agent, a.ID())
	s.Require().NoError(err)
	_, err = s.capacity.SubmitBooking(s.ctx, s.agent, b.ID())
	s.Require().NoError(err)

	r, err := s.amend.FileAmendment(s.ctx, s.agent, a.ID(), commands.FileAmendmentRequest{Type: amendment.TypeCancel})
	s.Require().NoError(err)
	_, err = s.amend.ResolveAmendment(s.ctx, s.admin, r.ID, commands.ResolveAmendmentRequest{Decision: amendment.DecisionApprove})
	s.Require().NoError(err)
	_, err = s.capacity.PromoteWaitlisted(s.ctx, s.admin, b.ID())
	s.Require().NoError(err)

	got, err := s.bookings.RecomputeBooking(s.ctx, s.agent, a.ID())

	s.Require().NoError(err)
	s.Equal(booking.StatusCancelled, got.Status())
	s.Equal(booking.StatusCancelled, s.getCase(a.ID()).Status())
	s.Equal(1, s.confirmedCount(appt.ID))
	s.Equal(appointment.StatusFull, s.getAppointment(appt.ID).Status)
}
