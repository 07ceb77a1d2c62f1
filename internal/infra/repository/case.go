package repository

import (
	"context"
	"encoding/json"
	"time"

	"visa-booking/internal/domain/booking"
	"visa-booking/internal/infra"
	"visa-booking/internal/pkg/errs"
	"visa-booking/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

const caseColumns = `id, agency_id, appointment_id, lock_status, status, applicants, snapshot, submitted_at, created_at, updated_at`

// CaseRepository stores the roster and the pricing snapshot as JSONB documents on the case row.
type CaseRepository struct {
	db DBTX
}

func NewCaseRepository(db DBTX) *CaseRepository {
	return &CaseRepository{db: db}
}

func (r *CaseRepository) Create(ctx context.Context, c *booking.Case) error {
	applicants, snapshot, err := encodeCase(c)
	if err != nil {
		return err
	}
	_, err = r.db.Exec(ctx, `
		INSERT INTO cases (`+caseColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		c.ID(), c.AgencyID(), c.AppointmentID(), string(c.LockStatus()), string(c.Status()),
		applicants, snapshot, pgconv.TimePtrToPgtype(c.SubmittedAt()), c.CreatedAt(), c.UpdatedAt())
	if err != nil {
		return infra.FromDBError("failed to create case", err, booking.ErrCaseNotFound)
	}
	return nil
}

func (r *CaseRepository) Get(ctx context.Context, id uuid.UUID) (*booking.Case, error) {
	return r.get(ctx, `SELECT `+caseColumns+` FROM cases WHERE id = $1`, id)
}

func (r *CaseRepository) GetForUpdate(ctx context.Context, id uuid.UUID) (*booking.Case, error) {
	return r.get(ctx, `SELECT `+caseColumns+` FROM cases WHERE id = $1 FOR UPDATE`, id)
}

func (r *CaseRepository) get(ctx context.Context, query string, id uuid.UUID) (*booking.Case, error) {
	var (
		caseID, agencyID, appointmentID uuid.UUID
		lockStatus, status              string
		applicantsRaw, snapshotRaw      []byte
		submittedAt                     pgtype.Timestamptz
		createdAt, updatedAt            time.Time
	)
	err := r.db.QueryRow(ctx, query, id).Scan(
		&caseID, &agencyID, &appointmentID, &lockStatus, &status,
		&applicantsRaw, &snapshotRaw, &submittedAt, &createdAt, &updatedAt)
	if err != nil {
		return nil, infra.FromDBError("failed to get case", err, booking.ErrCaseNotFound)
	}

	var applicants []booking.Applicant
	if err = json.Unmarshal(applicantsRaw, &applicants); err != nil {
		return nil, errs.Wrap(err, "failed to decode case applicants")
	}
	var snapshot booking.PricingSnapshot
	if err = json.Unmarshal(snapshotRaw, &snapshot); err != nil {
		return nil, errs.Wrap(err, "failed to decode case snapshot")
	}

	return booking.ReconstructCase(
		caseID, agencyID, appointmentID,
		booking.LockStatus(lockStatus), booking.Status(status),
		applicants, snapshot,
		pgconv.TimePtrFromPgtype(submittedAt),
		createdAt, updatedAt,
	), nil
}

func (r *CaseRepository) Update(ctx context.Context, c *booking.Case) error {
	applicants, snapshot, err := encodeCase(c)
	if err != nil {
		return err
	}
	tag, err := r.db.Exec(ctx, `
		UPDATE cases
		SET appointment_id = $2, lock_status = $3, status = $4, applicants = $5,
		    snapshot = $6, submitted_at = $7, updated_at = $8
		WHERE id = $1`,
		c.ID(), c.AppointmentID(), string(c.LockStatus()), string(c.Status()),
		applicants, snapshot, pgconv.TimePtrToPgtype(c.SubmittedAt()), c.UpdatedAt())
	if err != nil {
		return infra.FromDBError("failed to update case", err, booking.ErrCaseNotFound)
	}
	return rowCount(tag, booking.ErrCaseNotFound)
}

func (r *CaseRepository) ConfirmedCountForAppointment(ctx context.Context, appointmentID uuid.UUID) (int, error) {
	var n int
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM cases WHERE appointment_id = $1 AND status = $2`,
		appointmentID, string(booking.StatusReady)).Scan(&n)
	if err != nil {
		return 0, infra.FromDBError("failed to count confirmed cases", err, booking.ErrCaseNotFound)
	}
	return n, nil
}

func encodeCase(c *booking.Case) (applicants, snapshot []byte, err error) {
	applicants, err = json.Marshal(c.Applicants())
	if err != nil {
		return nil, nil, errs.Wrap(err, "failed to encode case applicants")
	}
	snapshot, err = json.Marshal(c.Snapshot())
	if err != nil {
		return nil, nil, errs.Wrap(err, "failed to encode case snapshot")
	}
	return applicants, snapshot, nil
}
