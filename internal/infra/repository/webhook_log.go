package repository

import (
	"context"
	"encoding/json"
	"time"

	"visa-booking/internal/domain/webhook"
	"visa-booking/internal/infra"
	"visa-booking/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const webhookLogColumns = `id, event_id, event_type, payload, status, request_body, signature,
	response_status, response_body, error, error_kind, attempts, next_attempt_at, retry_of,
	created_at, updated_at`

type WebhookLogRepository struct {
	db DBTX
}

func NewWebhookLogRepository(db DBTX) *WebhookLogRepository {
	return &WebhookLogRepository{db: db}
}

func (r *WebhookLogRepository) Create(ctx context.Context, l *webhook.Log) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO webhook_logs (`+webhookLogColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`,
		l.ID, l.EventID, string(l.EventType), []byte(l.Payload), string(l.Status), l.RequestBody,
		pgconv.StringPtrToPgtype(l.Signature), pgconv.IntPtrToPgtype(l.ResponseStatus),
		nullableJSON(l.ResponseBody), pgconv.StringPtrToPgtype(l.Error), errorKindText(l.ErrorKind),
		l.Attempts, pgconv.TimePtrToPgtype(l.NextAttemptAt), pgconv.UUIDPtrToPgtype(l.RetryOf),
		l.CreatedAt, l.UpdatedAt)
	if err != nil {
		return infra.FromDBError("failed to create webhook log", err, webhook.ErrLogNotFound)
	}
	return nil
}

func (r *WebhookLogRepository) Get(ctx context.Context, id uuid.UUID) (*webhook.Log, error) {
	return r.get(ctx, `SELECT `+webhookLogColumns+` FROM webhook_logs WHERE id = $1`, id)
}

func (r *WebhookLogRepository) GetForUpdate(ctx context.Context, id uuid.UUID) (*webhook.Log, error) {
	return r.get(ctx, `SELECT `+webhookLogColumns+` FROM webhook_logs WHERE id = $1 FOR UPDATE`, id)
}

func (r *WebhookLogRepository) get(ctx context.Context, query string, id uuid.UUID) (*webhook.Log, error) {
	l, err := scanWebhookLog(r.db.QueryRow(ctx, query, id))
	if err != nil {
		return nil, infra.FromDBError("failed to get webhook log", err, webhook.ErrLogNotFound)
	}
	return l, nil
}

// Update persists delivery state. Identity and payload are write-once.
func (r *WebhookLogRepository) Update(ctx context.Context, l *webhook.Log) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE webhook_logs
		SET status = $2, request_body = $3, signature = $4, response_status = $5,
		    response_body = $6, error = $7, error_kind = $8, attempts = $9,
		    next_attempt_at = $10, updated_at = $11
		WHERE id = $1`,
		l.ID, string(l.Status), l.RequestBody, pgconv.StringPtrToPgtype(l.Signature),
		pgconv.IntPtrToPgtype(l.ResponseStatus), nullableJSON(l.ResponseBody),
		pgconv.StringPtrToPgtype(l.Error), errorKindText(l.ErrorKind), l.Attempts,
		pgconv.TimePtrToPgtype(l.NextAttemptAt), l.UpdatedAt)
	if err != nil {
		return infra.FromDBError("failed to update webhook log", err, webhook.ErrLogNotFound)
	}
	return rowCount(tag, webhook.ErrLogNotFound)
}

func (r *WebhookLogRepository) ListDue(ctx context.Context, now time.Time, limit int) ([]webhook.Log, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+webhookLogColumns+`
		FROM webhook_logs
		WHERE status <> 'SENT'
		  AND next_attempt_at IS NOT NULL
		  AND next_attempt_at <= $1
		  AND (error_kind IS NULL OR error_kind <> 'CONFIG')
		ORDER BY next_attempt_at, created_at
		LIMIT $2`, now, limit)
	if err != nil {
		return nil, infra.FromDBError("failed to list due webhook logs", err, webhook.ErrLogNotFound)
	}
	defer rows.Close()

	var out []webhook.Log
	for rows.Next() {
		l, err := scanWebhookLog(rows)
		if err != nil {
			return nil, infra.FromDBError("failed to scan webhook log", err, webhook.ErrLogNotFound)
		}
		out = append(out, *l)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.FromDBError("failed to list due webhook logs", err, webhook.ErrLogNotFound)
	}
	return out, nil
}

func scanWebhookLog(row pgx.Row) (*webhook.Log, error) {
	var (
		l                        webhook.Log
		eventType, status        string
		payload, responseBody    []byte
		signature, errText, kind pgtype.Text
		responseStatus           pgtype.Int4
		nextAttemptAt            pgtype.Timestamptz
		retryOf                  pgtype.UUID
	)
	err := row.Scan(&l.ID, &l.EventID, &eventType, &payload, &status, &l.RequestBody, &signature,
		&responseStatus, &responseBody, &errText, &kind, &l.Attempts, &nextAttemptAt, &retryOf,
		&l.CreatedAt, &l.UpdatedAt)
	if err != nil {
		return nil, err
	}
	l.EventType = webhook.EventType(eventType)
	l.Status = webhook.Status(status)
	l.Payload = json.RawMessage(payload)
	if len(responseBody) > 0 {
		l.ResponseBody = json.RawMessage(responseBody)
	}
	l.Signature = pgconv.StringPtrFromPgtype(signature)
	l.ResponseStatus = pgconv.Int32PtrToIntPtr(responseStatus)
	l.Error = pgconv.StringPtrFromPgtype(errText)
	if kind.Valid {
		k := webhook.ErrorKind(kind.String)
		l.ErrorKind = &k
	}
	l.NextAttemptAt = pgconv.TimePtrFromPgtype(nextAttemptAt)
	l.RetryOf = pgconv.UUIDPtrFromPgtype(retryOf)
	return &l, nil
}

func nullableJSON(raw json.RawMessage) any {
	if len(raw) == 0 {
		return nil
	}
	return []byte(raw)
}

func errorKindText(k *webhook.ErrorKind) pgtype.Text {
	if k == nil {
		return pgtype.Text{Valid: false}
	}
	return pgtype.Text{String: string(*k), Valid: true}
}
