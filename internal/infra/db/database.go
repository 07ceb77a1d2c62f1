package db

import (
	"context"
	"embed"
	"io/fs"
	"log/slog"
	"sort"
	"time"

	"visa-booking/internal/pkg/config"
	"visa-booking/internal/pkg/errs"

	"github.com/jackc/pgx/v5/pgxpool"
)

//go:embed migrations/*.sql
var migrations embed.FS

func Connect(ctx context.Context, cfg config.DBConfig) (*pgxpool.Pool, func(), error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.BuildDSN())
	if err != nil {
		return nil, nil, errs.Wrap(err, "failed to parse database config")
	}
	poolCfg.MaxConns = cfg.MaxConns
	poolCfg.MaxConnLifetime = time.Hour

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, nil, errs.Wrap(err, "failed to open database")
	}

	// Test the connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, nil, errs.Wrap(err, "failed to ping database")
	}

	cleanup := func() {
		pool.Close()
	}

	return pool, cleanup, nil
}

// Migrate applies the embedded schema files in name order. Every file is idempotent.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	names, err := fs.Glob(migrations, "migrations/*.sql")
	if err != nil {
		return errs.Wrap(err, "failed to list migrations")
	}
	sort.Strings(names)

	for _, name := range names {
		sqlText, err := migrations.ReadFile(name)
		if err != nil {
			return errs.Wrapf(err, "failed to read migration %s", name)
		}
		if _, err := pool.Exec(ctx, string(sqlText)); err != nil {
			return errs.Wrapf(err, "failed to apply migration %s", name)
		}
		slog.Info("migration applied", "file", name)
	}
	return nil
}
