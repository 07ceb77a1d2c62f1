package repository

import (
	"context"

	"visa-booking/internal/domain/amendment"
	"visa-booking/internal/infra"
	"visa-booking/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const amendmentColumns = `id, case_id, type, status, details, requested_by, reviewed_by, reason, created_at, resolved_at`

type AmendmentRepository struct {
	db DBTX
}

func NewAmendmentRepository(db DBTX) *AmendmentRepository {
	return &AmendmentRepository{db: db}
}

func (r *AmendmentRepository) Create(ctx context.Context, a *amendment.Request) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO amendment_requests (`+amendmentColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		a.ID, a.CaseID, string(a.Type), string(a.Status), a.Details, a.RequestedBy,
		pgconv.UUIDPtrToPgtype(a.ReviewedBy), pgconv.StringPtrToPgtype(a.Reason),
		a.CreatedAt, pgconv.TimePtrToPgtype(a.ResolvedAt))
	if err != nil {
		return infra.FromDBError("failed to create amendment request", err, amendment.ErrRequestNotFound)
	}
	return nil
}

func (r *AmendmentRepository) Get(ctx context.Context, id uuid.UUID) (*amendment.Request, error) {
	a, err := scanAmendment(r.db.QueryRow(ctx, `SELECT `+amendmentColumns+` FROM amendment_requests WHERE id = $1`, id))
	if err != nil {
		return nil, infra.FromDBError("failed to get amendment request", err, amendment.ErrRequestNotFound)
	}
	return a, nil
}

func (r *AmendmentRepository) Update(ctx context.Context, a *amendment.Request) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE amendment_requests
		SET status = $2, reviewed_by = $3, reason = $4, resolved_at = $5
		WHERE id = $1`,
		a.ID, string(a.Status), pgconv.UUIDPtrToPgtype(a.ReviewedBy),
		pgconv.StringPtrToPgtype(a.Reason), pgconv.TimePtrToPgtype(a.ResolvedAt))
	if err != nil {
		return infra.FromDBError("failed to update amendment request", err, amendment.ErrRequestNotFound)
	}
	return rowCount(tag, amendment.ErrRequestNotFound)
}

func (r *AmendmentRepository) ListByCase(ctx context.Context, caseID uuid.UUID) ([]amendment.Request, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+amendmentColumns+`
		FROM amendment_requests
		WHERE case_id = $1
		ORDER BY created_at, id`, caseID)
	if err != nil {
		return nil, infra.FromDBError("failed to list amendment requests", err, amendment.ErrRequestNotFound)
	}
	defer rows.Close()

	out := []amendment.Request{}
	for rows.Next() {
		a, err := scanAmendment(rows)
		if err != nil {
			return nil, infra.FromDBError("failed to scan amendment request", err, amendment.ErrRequestNotFound)
		}
		out = append(out, *a)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.FromDBError("failed to list amendment requests", err, amendment.ErrRequestNotFound)
	}
	return out, nil
}

func (r *AmendmentRepository) HasPending(ctx context.Context, caseID uuid.UUID) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM amendment_requests WHERE case_id = $1 AND status = $2)`,
		caseID, string(amendment.StatusPending)).Scan(&exists)
	if err != nil {
		return false, infra.FromDBError("failed to check pending amendment requests", err, amendment.ErrRequestNotFound)
	}
	return exists, nil
}

func scanAmendment(row pgx.Row) (*amendment.Request, error) {
	var (
		a           amendment.Request
		typ, status string
		reviewedBy  pgtype.UUID
		reason      pgtype.Text
		resolvedAt  pgtype.Timestamptz
	)
	err := row.Scan(&a.ID, &a.CaseID, &typ, &status, &a.Details, &a.RequestedBy,
		&reviewedBy, &reason, &a.CreatedAt, &resolvedAt)
	if err != nil {
		return nil, err
	}
	a.Type = amendment.Type(typ)
	a.Status = amendment.Status(status)
	a.ReviewedBy = pgconv.UUIDPtrFromPgtype(reviewedBy)
	a.Reason = pgconv.StringPtrFromPgtype(reason)
	a.ResolvedAt = pgconv.TimePtrFromPgtype(resolvedAt)
	return &a, nil
}
