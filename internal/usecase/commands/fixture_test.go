//go:build unit

package commands_test

import (
	"context"
	"sync"

	"visa-booking/internal/domain/appointment"
	"visa-booking/internal/domain/booking"
	"visa-booking/internal/domain/pricing"
	"visa-booking/internal/domain/user"
	"visa-booking/internal/domain/webhook"
	"visa-booking/internal/infra/lock"
	"visa-booking/internal/infra/memstore"
	"visa-booking/internal/pkg/clock"
	"visa-booking/internal/usecase/commands"
	"visa-booking/internal/usecase/shared"
	"visa-booking/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

// recordingQueue stands in for the dispatcher and remembers every enqueued id.
type recordingQueue struct {
	mu  sync.Mutex
	ids []uuid.UUID
}

func (q *recordingQueue) Enqueue(ids ...uuid.UUID) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.ids = append(q.ids, ids...)
}

func (q *recordingQueue) IDs() []uuid.UUID {
	q.mu.Lock()
	defer q.mu.Unlock()
	return append([]uuid.UUID(nil), q.ids...)
}

// recordingLocker remembers every id set it was asked to lock.
type recordingLocker struct {
	inner  shared.AppointmentLocker
	mu     sync.Mutex
	locked [][]uuid.UUID
}

func (l *recordingLocker) Lock(ctx context.Context, ids ...uuid.UUID) (func(), error) {
	l.mu.Lock()
	l.locked = append(l.locked, append([]uuid.UUID(nil), ids...))
	l.mu.Unlock()
	return l.inner.Lock(ctx, ids...)
}

func (l *recordingLocker) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.locked = nil
}

func (l *recordingLocker) Locked() [][]uuid.UUID {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([][]uuid.UUID(nil), l.locked...)
}

// useCaseSuite wires every command use case to one in-memory store.
type useCaseSuite struct {
	suite.Suite
	ctx      context.Context
	store    *memstore.Store
	uow      shared.UnitOfWork
	clock    *clock.MockClock
	queue    *recordingQueue
	locker   *recordingLocker
	bookings commands.BookingCommands
	capacity commands.CapacityCommands
	amend    commands.AmendmentCommands
	catalog  commands.CatalogCommands

	admin    user.Actor
	agencyID uuid.UUID
	agent    user.Actor
}

func (s *useCaseSuite) SetupTest() {
	s.ctx = context.Background()
	s.store = memstore.New()
	s.uow = memstore.NewUoW(s.store)
	// a week before the default appointment date
	s.clock = clock.NewMockClock(builder.BaseDate.AddDate(0, 0, -7))
	s.queue = &recordingQueue{}
	s.locker = &recordingLocker{inner: lock.NewLocalLocker()}
	locker := s.locker

	s.bookings = commands.NewBookingUseCase(s.uow, s.locker, s.clock)
	s.capacity = commands.NewCapacityUseCase(s.uow, locker, s.queue, s.clock)
	s.amend = commands.NewAmendmentUseCase(s.uow, locker, s.queue, s.clock)
	s.catalog = commands.NewCatalogUseCase(s.uow, locker, s.clock)

	s.admin = builder.Admin()
	s.agencyID = uuid.New()
	s.agent = builder.Agent(s.agencyID)
}

func (s *useCaseSuite) seedPriceBook(b *builder.PriceBookBuilder) *pricing.PriceBook {
	pb, err := s.catalog.CreatePriceBook(s.ctx, s.admin, b.BuildInput())
	s.Require().NoError(err)
	return pb
}

func (s *useCaseSuite) seedAppointment(b *builder.AppointmentBuilder) *appointment.Appointment {
	a, err := s.catalog.CreateAppointment(s.ctx, s.admin, b.BuildInput())
	s.Require().NoError(err)
	return a
}

// seedCase creates a case with one adult applicant on appointmentID.
func (s *useCaseSuite) seedCase(appointmentID uuid.UUID) *booking.Case {
	c, err := s.bookings.CreateBooking(s.ctx, s.agent, commands.CreateBookingRequest{
		AppointmentID: appointmentID,
		SeatType:      pricing.SeatNormal,
	})
	s.Require().NoError(err)
	c, err = s.bookings.AddApplicant(s.ctx, s.agent, c.ID(), builder.NewApplicantBuilder().BuildCommand())
	s.Require().NoError(err)
	return c
}

func (s *useCaseSuite) confirmedCount(appointmentID uuid.UUID) int {
	n, err := s.capacity.ConfirmedCount(s.ctx, appointmentID)
	s.Require().NoError(err)
	return n
}

func (s *useCaseSuite) getAppointment(id uuid.UUID) *appointment.Appointment {
	var out *appointment.Appointment
	err := s.uow.WithinReadOnly(s.ctx, func(ctx context.Context, tx shared.Tx) error {
		var err error
		out, err = tx.Appointments().Get(ctx, id)
		return err
	})
	s.Require().NoError(err)
	return out
}

func (s *useCaseSuite) getCase(id uuid.UUID) *booking.Case {
	var out *booking.Case
	err := s.uow.WithinReadOnly(s.ctx, func(ctx context.Context, tx shared.Tx) error {
		var err error
		out, err = tx.Cases().Get(ctx, id)
		return err
	})
	s.Require().NoError(err)
	return out
}

func (s *useCaseSuite) getLog(id uuid.UUID) *webhook.Log {
	var out *webhook.Log
	err := s.uow.WithinReadOnly(s.ctx, func(ctx context.Context, tx shared.Tx) error {
		var err error
		out, err = tx.WebhookLogs().Get(ctx, id)
		return err
	})
	require.NoError(s.T(), err)
	return out
}
