package repository

import (
	"context"

	"visa-booking/internal/domain/pricing"
	"visa-booking/internal/infra"
	"visa-booking/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const priceBookColumns = `id, name, code, country, center,
	normal_adult, normal_child, normal_infant, vip_adult, vip_child, vip_infant,
	currency, is_active, is_default_for_country, created_at, updated_at`

type PriceBookRepository struct {
	db DBTX
}

func NewPriceBookRepository(db DBTX) *PriceBookRepository {
	return &PriceBookRepository{db: db}
}

func (r *PriceBookRepository) Create(ctx context.Context, b *pricing.PriceBook) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO price_books (`+priceBookColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`,
		b.ID, b.Name, b.Code, b.Country, pgconv.StringPtrToPgtype(b.Center),
		b.Prices.Normal.Adult, b.Prices.Normal.Child, b.Prices.Normal.Infant,
		b.Prices.VIP.Adult, b.Prices.VIP.Child, b.Prices.VIP.Infant,
		b.Currency, b.IsActive, b.IsDefaultForCountry, b.CreatedAt, b.UpdatedAt)
	if err != nil {
		return infra.FromDBError("failed to create price book", err, pricing.ErrPriceBookNotFound)
	}
	return nil
}

func (r *PriceBookRepository) Get(ctx context.Context, id uuid.UUID) (*pricing.PriceBook, error) {
	b, err := scanPriceBook(r.db.QueryRow(ctx, `SELECT `+priceBookColumns+` FROM price_books WHERE id = $1`, id))
	if err != nil {
		return nil, infra.FromDBError("failed to get price book", err, pricing.ErrPriceBookNotFound)
	}
	return b, nil
}

func (r *PriceBookRepository) Update(ctx context.Context, b *pricing.PriceBook) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE price_books
		SET name = $2, code = $3, country = $4, center = $5,
		    normal_adult = $6, normal_child = $7, normal_infant = $8,
		    vip_adult = $9, vip_child = $10, vip_infant = $11,
		    currency = $12, is_active = $13, is_default_for_country = $14, updated_at = $15
		WHERE id = $1`,
		b.ID, b.Name, b.Code, b.Country, pgconv.StringPtrToPgtype(b.Center),
		b.Prices.Normal.Adult, b.Prices.Normal.Child, b.Prices.Normal.Infant,
		b.Prices.VIP.Adult, b.Prices.VIP.Child, b.Prices.VIP.Infant,
		b.Currency, b.IsActive, b.IsDefaultForCountry, b.UpdatedAt)
	if err != nil {
		return infra.FromDBError("failed to update price book", err, pricing.ErrPriceBookNotFound)
	}
	return rowCount(tag, pricing.ErrPriceBookNotFound)
}

func (r *PriceBookRepository) ListActiveByCountry(ctx context.Context, country string) ([]pricing.PriceBook, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+priceBookColumns+`
		FROM price_books
		WHERE is_active AND upper(country) = upper($1)
		ORDER BY created_at, id`, country)
	if err != nil {
		return nil, infra.FromDBError("failed to list price books", err, pricing.ErrPriceBookNotFound)
	}
	defer rows.Close()

	var out []pricing.PriceBook
	for rows.Next() {
		b, err := scanPriceBook(rows)
		if err != nil {
			return nil, infra.FromDBError("failed to scan price book", err, pricing.ErrPriceBookNotFound)
		}
		out = append(out, *b)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.FromDBError("failed to list price books", err, pricing.ErrPriceBookNotFound)
	}
	return out, nil
}

func scanPriceBook(row pgx.Row) (*pricing.PriceBook, error) {
	var (
		b      pricing.PriceBook
		center pgtype.Text
	)
	err := row.Scan(&b.ID, &b.Name, &b.Code, &b.Country, &center,
		&b.Prices.Normal.Adult, &b.Prices.Normal.Child, &b.Prices.Normal.Infant,
		&b.Prices.VIP.Adult, &b.Prices.VIP.Child, &b.Prices.VIP.Infant,
		&b.Currency, &b.IsActive, &b.IsDefaultForCountry, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return nil, err
	}
	b.Center = pgconv.StringPtrFromPgtype(center)
	return &b, nil
}
