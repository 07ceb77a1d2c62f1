//go:build unit || e2e

package dbtest

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

// CreateTestPriceBook inserts an active price book with the standard grid used across tests.
func CreateTestPriceBook(t *testing.T, db DBLike, country string, isDefault bool) uuid.UUID {
	t.Helper()

	id := uuid.New()
	now := time.Now().UTC()
	_, err := db.Exec(context.Background(), `
		INSERT INTO price_books (id, name, code, country, normal_adult, normal_child, normal_infant,
		                         vip_adult, vip_child, vip_infant, currency, is_active, is_default_for_country,
		                         created_at, updated_at)
		VALUES ($1, $2, $3, $4, 450, 300, 100, 900, 600, 200, 'EUR', true, $5, $6, $6)`,
		id, "Standard "+country, "std-"+strings.ToLower(country)+"-"+id.String()[:8], country, isDefault, now)
	require.NoError(t, err)

	return id
}

// CreateTestAppointment inserts an OPEN appointment on date with the given capacity.
func CreateTestAppointment(t *testing.T, db DBLike, country, center string, date time.Time, capacity int) uuid.UUID {
	t.Helper()

	id := uuid.New()
	now := time.Now().UTC()
	_, err := db.Exec(context.Background(), `
		INSERT INTO appointments (id, country, center, date, capacity, capacity_vip, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, 0, 'OPEN', $6, $6)`,
		id, country, center, date, capacity, now)
	require.NoError(t, err)

	return id
}

// CountConfirmed returns the number of ready cases on an appointment.
func CountConfirmed(t *testing.T, db DBLike, appointmentID uuid.UUID) int {
	t.Helper()

	var n int
	err := db.QueryRow(context.Background(),
		"SELECT count(*) FROM cases WHERE appointment_id = $1 AND status = 'ready'",
		appointmentID).Scan(&n)
	require.NoError(t, err)

	return n
}

var (
	buildTruncateOnce sync.Once
	truncateSQL       atomic.Value // string
)

// truncates all tables
func ResetDB(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	buildTruncateOnce.Do(func() {
		rows, err := pool.Query(ctx, `
		  SELECT 'public.' || quote_ident(tablename)
		  FROM pg_tables
		  WHERE schemaname = 'public'
		    AND tablename NOT IN ('schema_migrations')`)
		if err != nil {
			truncateSQL.Store("")
			return
		}
		defer rows.Close()
		var tables []string
		for rows.Next() {
			var t string
			if err := rows.Scan(&t); err != nil {
				truncateSQL.Store("")
				return
			}
			tables = append(tables, t)
		}
		if rows.Err() != nil {
			truncateSQL.Store("")
			return
		}
		if len(tables) == 0 {
			truncateSQL.Store("SELECT 1")
			return
		}
		truncateSQL.Store("TRUNCATE " + strings.Join(tables, ", ") + " RESTART IDENTITY CASCADE;")
	})
	sqlAny := truncateSQL.Load()
	if sqlAny == nil || sqlAny.(string) == "" {
		return fmt.Errorf("failed to build TRUNCATE SQL")
	}
	if _, err := pool.Exec(ctx, sqlAny.(string)); err != nil {
		return err
	}

	return nil
}
