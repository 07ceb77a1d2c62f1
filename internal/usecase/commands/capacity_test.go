//go:build unit

package commands_test

import (
	"sync"
	"testing"

	"visa-booking/internal/domain/amendment"
	"visa-booking/internal/domain/appointment"
	"visa-booking/internal/domain/booking"
	"visa-booking/internal/domain/webhook"
	"visa-booking/internal/pkg/errs"
	"visa-booking/internal/usecase/commands"
	"visa-booking/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"github.com/tidwall/gjson"
)

type CapacityTestSuite struct {
	useCaseSuite
	appt *appointment.Appointment
}

func (s *CapacityTestSuite) SetupTest() {
	s.useCaseSuite.SetupTest()
	s.seedPriceBook(builder.NewPriceBookBuilder())
	s.appt = s.seedAppointment(builder.NewAppointmentBuilder().WithCapacity(1))
}

func TestCapacitySuite(t *testing.T) {
	suite.Run(t, new(CapacityTestSuite))
}

// ================================================================================
// SubmitBooking
// ================================================================================

func (s *CapacityTestSuite) TestSubmit_FirstConfirmedSecondWaitlisted() {
	a := s.seedCase(s.appt.ID)
	b := s.seedCase(s.appt.ID)

	resA, err := s.capacity.SubmitBooking(s.ctx, s.agent, a.ID())
	s.Require().NoError(err)
	s.Equal(booking.StatusReady, resA.Case.Status())
	s.Equal(booking.LockSubmitted, resA.Case.LockStatus())
	s.Equal(1, resA.ConfirmedCount)
	s.Equal(appointment.StatusFull, resA.Appointment.Status)

	resB, err := s.capacity.SubmitBooking(s.ctx, s.agent, b.ID())
	s.Require().NoError(err, "a full appointment waitlists instead of failing")
	s.Equal(booking.StatusNew, resB.Case.Status())
	s.Equal(booking.LockSubmitted, resB.Case.LockStatus())
	s.Equal(1, resB.ConfirmedCount)

	s.Equal(1, s.confirmedCount(s.appt.ID))
	s.Equal(appointment.StatusFull, s.getAppointment(s.appt.ID).Status)
}

func (s *CapacityTestSuite) TestSubmit_Twice() {
	c := s.seedCase(s.appt.ID)
	_, err := s.capacity.SubmitBooking(s.ctx, s.agent, c.ID())
	s.Require().NoError(err)

	_, err = s.capacity.SubmitBooking(s.ctx, s.agent, c.ID())

	s.ErrorIs(err, errs.ErrAlreadySubmitted)
	s.Len(s.queue.IDs(), 1, "failed submit writes no webhook")
}

func (s *CapacityTestSuite) TestSubmit_OtherAgency() {
	c := s.seedCase(s.appt.ID)

	_, err := s.capacity.SubmitBooking(s.ctx, builder.Agent(uuid.New()), c.ID())

	s.ErrorIs(err, errs.ErrUnauthorized)
	s.Equal(booking.LockDraft, s.getCase(c.ID()).LockStatus())
}

func (s *CapacityTestSuite) TestSubmit_ClosedAppointment() {
	c := s.seedCase(s.appt.ID)
	_, err := s.catalog.ChangeAppointmentStatus(s.ctx, s.admin, s.appt.ID, appointment.StatusCancelled)
	s.Require().NoError(err)

	_, err = s.capacity.SubmitBooking(s.ctx, s.agent, c.ID())

	s.ErrorIs(err, errs.ErrAppointmentNotOpen)
	s.Equal(booking.LockDraft, s.getCase(c.ID()).LockStatus())
}

func (s *CapacityTestSuite) TestSubmit_WritesCaseSubmittedWebhook() {
	c := s.seedCase(s.appt.ID)

	_, err := s.capacity.SubmitBooking(s.ctx, s.agent, c.ID())
	s.Require().NoError(err)

	ids := s.queue.IDs()
	s.Require().Len(ids, 1)
	l := s.getLog(ids[0])
	s.Equal(webhook.EventCaseSubmitted, l.EventType)
	s.Equal(webhook.StatusPending, l.Status)
	s.Equal(c.ID().String(), gjson.GetBytes(l.Payload, "case_id").String())
	s.True(gjson.GetBytes(l.Payload, "confirmed").Bool())
	s.Equal("FULL", gjson.GetBytes(l.Payload, "appointment_status").String())
	s.Equal(int64(450), gjson.GetBytes(l.Payload, "total").Int())
}

func (s *CapacityTestSuite) TestSubmit_ConcurrentNeverExceedsCapacity() {
	appt := s.seedAppointment(builder.NewAppointmentBuilder().WithCapacity(3))
	const n = 12
	ids := make([]uuid.UUID, n)
	for i := range ids {
		ids[i] = s.seedCase(appt.ID).ID()
	}

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		confirmed int
	)
	for _, id := range ids {
		wg.Add(1)
		go func(id uuid.UUID) {
			defer wg.Done()
			res, err := s.capacity.SubmitBooking(s.ctx, s.agent, id)
			if err != nil {
				s.T().Errorf("submit %s: %v", id, err)
				return
			}
			if res.Case.IsConfirmed() {
				mu.Lock()
				confirmed++
				mu.Unlock()
			}
		}(id)
	}
	wg.Wait()

	s.Equal(3, confirmed)
	s.Equal(3, s.confirmedCount(appt.ID))
	s.Equal(appointment.StatusFull, s.getAppointment(appt.ID).Status)
}

// ================================================================================
// PromoteWaitlisted
// ================================================================================

func (s *CapacityTestSuite) TestPromote_AtCapacity() {
	a := s.seedCase(s.appt.ID)
	b := s.seedCase(s.appt.ID)
	_, err := s.capacity.SubmitBooking(s.ctx, s.agent, a.ID())
	s.Require().NoError(err)
	_, err = s.capacity.SubmitBooking(s.ctx, s.agent, b.ID())
	s.Require().NoError(err)
	queued := len(s.queue.IDs())

	_, err = s.capacity.PromoteWaitlisted(s.ctx, s.admin, b.ID())

	s.ErrorIs(err, errs.ErrCapacityExceeded)
	s.Equal(errs.CodeCapacityExceeded, errs.CodeOf(err))
	s.Equal(booking.StatusNew, s.getCase(b.ID()).Status(), "state unchanged")
	s.Equal(1, s.confirmedCount(s.appt.ID))
	s.Len(s.queue.IDs(), queued)
}

func (s *CapacityTestSuite) TestPromote_ZeroCapacity() {
	appt := s.seedAppointment(builder.NewAppointmentBuilder().WithCapacity(0))
	s.Equal(appointment.StatusFull, appt.Status, "zero capacity starts full")
	c := s.seedCase(appt.ID)
	res, err := s.capacity.SubmitBooking(s.ctx, s.agent, c.ID())
	s.Require().NoError(err)
	s.False(res.Case.IsConfirmed())

	_, err = s.capacity.PromoteWaitlisted(s.ctx, s.admin, c.ID())

	s.ErrorIs(err, errs.ErrCapacityExceeded)
	s.Equal(0, s.confirmedCount(appt.ID))
}

func (s *CapacityTestSuite) TestPromote_FreeSeat() {
	a := s.seedCase(s.appt.ID)
	b := s.seedCase(s.appt.ID)
	_, err := s.capacity.SubmitBooking(s.ctx, s.agent, a.ID())
	s.Require().NoError(err)
	_, err = s.capacity.SubmitBooking(s.ctx, s.agent, b.ID())
	s.Require().NoError(err)

	r, err := s.amend.FileAmendment(s.ctx, s.agent, a.ID(), commands.FileAmendmentRequest{Type: amendment.TypeCancel})
	s.Require().NoError(err)
	_, err = s.amend.ResolveAmendment(s.ctx, s.admin, r.ID, commands.ResolveAmendmentRequest{Decision: amendment.DecisionApprove})
	s.Require().NoError(err)
	s.Require().Equal(appointment.StatusOpen, s.getAppointment(s.appt.ID).Status)
	queued := len(s.queue.IDs())

	res, err := s.capacity.PromoteWaitlisted(s.ctx, s.admin, b.ID())

	s.Require().NoError(err)
	s.Equal(booking.StatusReady, res.Case.Status())
	s.Equal(1, res.ConfirmedCount)
	s.Equal(appointment.StatusFull, res.Appointment.Status)

	ids := s.queue.IDs()
	s.Require().Len(ids, queued+1)
	s.Equal(webhook.EventWaitlistPromoted, s.getLog(ids[queued]).EventType)
}

func (s *CapacityTestSuite) TestPromote_NeverSubmitted() {
	appt := s.seedAppointment(builder.NewAppointmentBuilder().WithCapacity(1))
	draft := s.seedCase(appt.ID)

	_, err := s.capacity.PromoteWaitlisted(s.ctx, s.admin, draft.ID())

	s.ErrorIs(err, errs.ErrInvalidStateTransition)
	got := s.getCase(draft.ID())
	s.Equal(booking.LockDraft, got.LockStatus())
	s.Equal(booking.StatusNew, got.Status())
	s.Equal(0, s.confirmedCount(appt.ID))
	s.Equal(appointment.StatusOpen, s.getAppointment(appt.ID).Status)

	// the seat is still there for a real submission
	c := s.seedCase(appt.ID)
	res, err := s.capacity.SubmitBooking(s.ctx, s.agent, c.ID())
	s.Require().NoError(err)
	s.True(res.Case.IsConfirmed())
}

func (s *CapacityTestSuite) TestPromote_RequiresAdmin() {
	c := s.seedCase(s.appt.ID)
	_, err := s.capacity.PromoteWaitlisted(s.ctx, s.agent, c.ID())
	s.ErrorIs(err, errs.ErrUnauthorized)
}

// ================================================================================
// RescheduleBooking
// ================================================================================

func (s *CapacityTestSuite) TestReschedule_ReleasesSourceSeat() {
	target := s.seedAppointment(builder.NewAppointmentBuilder().WithCapacity(1).With(func(b *builder.AppointmentBuilder) {
		b.Date = builder.BaseDate.AddDate(0, 0, 7)
	}))
	c := s.seedCase(s.appt.ID)
	_, err := s.capacity.SubmitBooking(s.ctx, s.agent, c.ID())
	s.Require().NoError(err)
	s.Require().Equal(appointment.StatusFull, s.getAppointment(s.appt.ID).Status)

	res, err := s.capacity.RescheduleBooking(s.ctx, s.agent, c.ID(), target.ID)

	s.Require().NoError(err)
	s.Equal(target.ID, res.Case.AppointmentID())
	s.True(res.Case.IsConfirmed())
	s.True(res.SourceReopened)
	s.Equal(appointment.StatusOpen, res.Source.Status)
	s.Equal(appointment.StatusFull, res.Appointment.Status)
	s.Equal(0, s.confirmedCount(s.appt.ID))
	s.Equal(1, s.confirmedCount(target.ID))
}

func (s *CapacityTestSuite) TestReschedule_IntoFullAppointmentWaitlists() {
	target := s.seedAppointment(builder.NewAppointmentBuilder().WithCapacity(1))
	holder := s.seedCase(target.ID)
	_, err := s.capacity.SubmitBooking(s.ctx, s.agent, holder.ID())
	s.Require().NoError(err)

	c := s.seedCase(s.appt.ID)
	_, err = s.capacity.SubmitBooking(s.ctx, s.agent, c.ID())
	s.Require().NoError(err)

	_, err = s.capacity.RescheduleBooking(s.ctx, s.agent, c.ID(), target.ID)

	s.ErrorIs(err, errs.ErrAppointmentNotOpen, "FULL target refuses rescheduling")
	s.Equal(s.appt.ID, s.getCase(c.ID()).AppointmentID())
}

func (s *CapacityTestSuite) TestReschedule_RecomputesAgeBuckets() {
	// turns 12 between the two appointment dates
	target := s.seedAppointment(builder.NewAppointmentBuilder().With(func(b *builder.AppointmentBuilder) {
		b.Date = builder.BaseDate.AddDate(0, 2, 0)
	}))
	c, err := s.bookings.CreateBooking(s.ctx, s.agent, builder.CreateBookingCommand(s.appt.ID))
	s.Require().NoError(err)
	_, err = s.bookings.AddApplicant(s.ctx, s.agent, c.ID(), builder.NewApplicantBuilder().With(func(b *builder.ApplicantBuilder) {
		b.BirthDate = builder.BaseDate.AddDate(-12, 1, 0)
	}).BuildCommand())
	s.Require().NoError(err)
	s.Equal(int64(300), s.getCase(c.ID()).Snapshot().Total)

	res, err := s.capacity.RescheduleBooking(s.ctx, s.agent, c.ID(), target.ID)

	s.Require().NoError(err)
	s.Equal(int64(450), res.Case.Snapshot().Total)
	s.False(res.Case.IsConfirmed(), "an unsubmitted case takes no seat")
}

func (s *CapacityTestSuite) TestReschedule_SameAppointment() {
	c := s.seedCase(s.appt.ID)
	_, err := s.capacity.RescheduleBooking(s.ctx, s.agent, c.ID(), s.appt.ID)
	s.ErrorIs(err, errs.ErrInvalidStateTransition)
}

func (s *CapacityTestSuite) TestConfirmedCount_UnknownAppointment() {
	_, err := s.capacity.ConfirmedCount(s.ctx, uuid.New())
	s.ErrorIs(err, errs.ErrNotFound)
}
