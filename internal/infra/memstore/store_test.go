//go:build unit

package memstore_test

import (
	"context"
	"errors"
	"testing"

	"visa-booking/internal/infra"
	"visa-booking/internal/infra/memstore"
	"visa-booking/internal/pkg/errs"
	"visa-booking/internal/usecase/shared"
	"visa-booking/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_WithinRollsBackOnError(t *testing.T) {
	ctx := context.Background()
	uow := memstore.NewUoW(memstore.New())
	appt := builder.NewAppointmentBuilder().BuildDomain(builder.BaseDate)
	boom := errors.New("boom")

	err := uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		require.NoError(t, tx.Appointments().Create(ctx, appt))
		return boom
	})
	require.ErrorIs(t, err, boom)

	err = uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		_, err := tx.Appointments().Get(ctx, appt.ID)
		return err
	})
	assert.ErrorIs(t, err, errs.ErrNotFound)
	assert.True(t, infra.IsKind(err, infra.KindNotFound))
}

func TestStore_ReadOnlyRejectsWrites(t *testing.T) {
	ctx := context.Background()
	uow := memstore.NewUoW(memstore.New())

	err := uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Appointments().Create(ctx, builder.NewAppointmentBuilder().BuildDomain(builder.BaseDate))
	})
	assert.Error(t, err)
}

func TestStore_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	uow := memstore.NewUoW(memstore.New())
	appt := builder.NewAppointmentBuilder().BuildDomain(builder.BaseDate)
	c := builder.NewCaseBuilder().With(func(b *builder.CaseBuilder) { b.AppointmentID = appt.ID }).BuildDomain()

	require.NoError(t, uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if err := tx.Appointments().Create(ctx, appt); err != nil {
			return err
		}
		return tx.Cases().Create(ctx, c)
	}))

	// mutating the caller's value after Create leaves the stored case alone
	require.NoError(t, c.Submit(true, builder.BaseDate))

	require.NoError(t, uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		stored, err := tx.Cases().Get(ctx, c.ID())
		require.NoError(t, err)
		assert.False(t, stored.IsConfirmed())
		n, err := tx.Cases().ConfirmedCountForAppointment(ctx, appt.ID)
		require.NoError(t, err)
		assert.Zero(t, n)
		return nil
	}))
}

func TestStore_ForeignKeyAndDuplicate(t *testing.T) {
	ctx := context.Background()
	uow := memstore.NewUoW(memstore.New())

	err := uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		c := builder.NewCaseBuilder().With(func(b *builder.CaseBuilder) { b.AppointmentID = uuid.New() }).BuildDomain()
		return tx.Cases().Create(ctx, c)
	})
	assert.True(t, infra.IsKind(err, infra.KindForeignKeyViolated))

	book := builder.NewPriceBookBuilder().BuildDomain(builder.BaseDate)
	clash := builder.NewPriceBookBuilder().BuildDomain(builder.BaseDate)
	err = uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if err := tx.PriceBooks().Create(ctx, book); err != nil {
			return err
		}
		return tx.PriceBooks().Create(ctx, clash)
	})
	assert.True(t, infra.IsKind(err, infra.KindDuplicateKey), "same code")
}
