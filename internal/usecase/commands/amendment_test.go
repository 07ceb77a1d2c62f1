//go:build unit

package commands_test

import (
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

type AmendmentTestSuite struct {
	useCaseSuite
	appt *appointment.Appointment
	kase *booking.Case
}

func (s *AmendmentTestSuite) SetupTest() {
	s.useCaseSuite.SetupTest()
	s.seedPriceBook(builder.NewPriceBookBuilder())
	s.appt = s.seedAppointment(builder.NewAppointmentBuilder().WithCapacity(1))
	s.kase = s.seedCase(s.appt.ID)
	_, err := s.capacity.SubmitBooking(s.ctx, s.agent, s.kase.ID())
	s.Require().NoError(err)
}

func TestAmendmentSuite(t *testing.T) {
	suite.Run(t, new(AmendmentTestSuite))
}

func (s *AmendmentTestSuite) file(t amendment.Type) *amendment.Request {
	r, err := s.amend.FileAmendment(s.ctx, s.agent, s.kase.ID(), commands.FileAmendmentRequest{Type: t, Details: "please"})
	s.Require().NoError(err)
	return r
}

func (s *AmendmentTestSuite) TestFile_WritesWebhook() {
	before := len(s.queue.IDs())

	r := s.file(amendment.TypeEdit)

	s.Equal(amendment.StatusPending, r.Status)
	s.Equal(s.agent.UserID, r.RequestedBy)
	ids := s.queue.IDs()
	s.Require().Len(ids, before+1)
	l := s.getLog(ids[len(ids)-1])
	s.Equal(webhook.EventAmendmentRequestCreated, l.EventType)
	s.Equal(r.ID.String(), gjson.GetBytes(l.Payload, "request_id").String())
}

func (s *AmendmentTestSuite) TestFile_OnePendingPerCase() {
	s.file(amendment.TypeEdit)

	_, err := s.amend.FileAmendment(s.ctx, s.agent, s.kase.ID(), commands.FileAmendmentRequest{Type: amendment.TypeCancel})

	s.ErrorIs(err, errs.ErrInvalidStateTransition)
}

func (s *AmendmentTestSuite) TestFile_RequiresSubmittedCase() {
	draft := s.seedCase(s.appt.ID)

	_, err := s.amend.FileAmendment(s.ctx, s.agent, draft.ID(), commands.FileAmendmentRequest{Type: amendment.TypeEdit})

	s.ErrorIs(err, errs.ErrInvalidStateTransition)
}

func (s *AmendmentTestSuite) TestFile_OtherAgency() {
	_, err := s.amend.FileAmendment(s.ctx, builder.Agent(uuid.New()), s.kase.ID(), commands.FileAmendmentRequest{Type: amendment.TypeEdit})
	s.ErrorIs(err, errs.ErrUnauthorized)
}

func (s *AmendmentTestSuite) TestResolve_ApprovedCancelReleasesSeat() {
	s.Require().Equal(1, s.confirmedCount(s.appt.ID))
	s.Require().Equal(appointment.StatusFull, s.getAppointment(s.appt.ID).Status)
	r := s.file(amendment.TypeCancel)

	res, err := s.amend.ResolveAmendment(s.ctx, s.admin, r.ID, commands.ResolveAmendmentRequest{Decision: amendment.DecisionApprove})

	s.Require().NoError(err)
	s.Equal(amendment.StatusApproved, res.Request.Status)
	s.Equal(booking.StatusCancelled, res.Case.Status())
	s.True(res.Effect.SeatReleased)
	s.True(res.AppointmentReopened)
	s.Equal(0, s.confirmedCount(s.appt.ID))
	s.Equal(appointment.StatusOpen, s.getAppointment(s.appt.ID).Status)

	ids := s.queue.IDs()
	l := s.getLog(ids[len(ids)-1])
	s.Equal(webhook.EventAmendmentDecision, l.EventType)
	s.Equal("APPROVE", gjson.GetBytes(l.Payload, "decision").String())
	s.Equal("cancelled", gjson.GetBytes(l.Payload, "effects.status").String())
	s.True(gjson.GetBytes(l.Payload, "effects.appointment_reopened").Bool())

	audit := s.store.AuditEntries()
	s.Require().Len(audit, 1)
	s.Equal("amendment.APPROVED", audit[0].Action)
	s.Equal(r.ID, audit[0].EntityID)
	s.Equal(s.admin.UserID, audit[0].ActorID)
}

func (s *AmendmentTestSuite) TestResolve_Twice() {
	r := s.file(amendment.TypeCancel)
	_, err := s.amend.ResolveAmendment(s.ctx, s.admin, r.ID, commands.ResolveAmendmentRequest{Decision: amendment.DecisionApprove})
	s.Require().NoError(err)

	_, err = s.amend.ResolveAmendment(s.ctx, s.admin, r.ID, commands.ResolveAmendmentRequest{Decision: amendment.DecisionReject})

	s.ErrorIs(err, errs.ErrInvalidStateTransition)
	s.Equal(errs.CodeInvalidStateTransition, errs.CodeOf(err))
	s.Equal(booking.StatusCancelled, s.getCase(s.kase.ID()).Status())
}

func (s *AmendmentTestSuite) TestResolve_ApprovedEditReopensRoster() {
	r := s.file(amendment.TypeEdit)

	_, err := s.amend.ResolveAmendment(s.ctx, s.admin, r.ID, commands.ResolveAmendmentRequest{Decision: amendment.DecisionApprove})
	s.Require().NoError(err)

	c, err := s.bookings.AddApplicant(s.ctx, s.agent, s.kase.ID(), builder.NewApplicantBuilder().AgedAt(builder.BaseDate, 5).BuildCommand())
	s.Require().NoError(err)
	s.Equal(int64(450+300), c.Snapshot().Total)

	res, err := s.capacity.SubmitBooking(s.ctx, s.agent, s.kase.ID())
	s.Require().NoError(err)
	s.True(res.Case.IsConfirmed(), "resubmission keeps the seat")
	s.Equal(1, res.ConfirmedCount)
}

func (s *AmendmentTestSuite) TestResolve_Rejected() {
	r := s.file(amendment.TypeCancel)
	reason := "outside the cancellation window"

	res, err := s.amend.ResolveAmendment(s.ctx, s.admin, r.ID, commands.ResolveAmendmentRequest{
		Decision: amendment.DecisionReject,
		Reason:   &reason,
	})

	s.Require().NoError(err)
	s.Equal(amendment.StatusRejected, res.Request.Status)
	s.Equal(booking.StatusReady, s.getCase(s.kase.ID()).Status())
	s.Equal(1, s.confirmedCount(s.appt.ID))

	// a rejected request no longer blocks a new one
	s.file(amendment.TypeEdit)
}

func (s *AmendmentTestSuite) TestResolve_RequiresAdmin() {
	r := s.file(amendment.TypeCancel)
	_, err := s.amend.ResolveAmendment(s.ctx, s.agent, r.ID, commands.ResolveAmendmentRequest{Decision: amendment.DecisionApprove})
	s.ErrorIs(err, errs.ErrUnauthorized)
}

func (s *AmendmentTestSuite) TestResolve_UnknownRequest() {
	_, err := s.amend.ResolveAmendment(s.ctx, s.admin, uuid.New(), commands.ResolveAmendmentRequest{Decision: amendment.DecisionApprove})
	s.ErrorIs(err, errs.ErrNotFound)
}
