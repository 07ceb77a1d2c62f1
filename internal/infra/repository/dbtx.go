package repository

import (
	"context"

	"visa-booking/internal/infra"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DBTX is satisfied by *pgxpool.Pool, *pgx.Conn and pgx.Tx.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// rowCount checks that an UPDATE touched a row; zero rows means the record is gone.
func rowCount(tag pgconn.CommandTag, notFound error) error {
	if tag.RowsAffected() == 0 {
		return infra.NotFound(notFound)
	}
	return nil
}
