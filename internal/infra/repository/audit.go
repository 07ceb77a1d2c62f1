package repository

import (
	"context"

	"visa-booking/internal/infra"
	"visa-booking/internal/usecase/shared"
)

type AuditRepository struct {
	db DBTX
}

func NewAuditRepository(db DBTX) *AuditRepository {
	return &AuditRepository{db: db}
}

func (r *AuditRepository) Record(ctx context.Context, e shared.AuditEntry) error {
	details := []byte(e.Details)
	if len(details) == 0 {
		details = []byte(`{}`)
	}
	_, err := r.db.Exec(ctx, `
		INSERT INTO audit_entries (id, actor_id, action, entity_type, entity_id, details, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		e.ID, e.ActorID, e.Action, e.EntityType, e.EntityID, details, e.CreatedAt)
	if err != nil {
		return infra.WrapRepoErr(infra.KindDBFailure, "failed to record audit entry", err)
	}
	return nil
}
