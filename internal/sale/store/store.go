package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/keystone-apparel/keystone/internal/catalog"
	"github.com/keystone-apparel/keystone/internal/sale"
)

type Store struct {
	db  *sql.DB
	now func() time.Time
}

func New(db *sql.DB) *Store {
	return &Store{db: db, now: time.Now}
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

const selectSaleColumns = `
	id, product_type, color, design, size, price, cogs,
	payment_method, seller, notes, date, created_at
`

// scanSale reads a row selected with selectSaleColumns.
func scanSale(s scanner) (*sale.Sale, error) {
	var sl sale.Sale

	var productType, design, paymentMethod string

	var color, size, seller, notes sql.NullString

	if err := s.Scan(
		&sl.ID, &productType, &color, &design, &size, &sl.Item.Price, &sl.Item.Cogs,
		&paymentMethod, &seller, &notes, &sl.Date, &sl.CreatedAt,
	); err != nil {
		return nil, err
	}

	sl.Item.ProductType = catalog.ProductType(productType)
	sl.Item.Color = catalog.Color(color.String)
	sl.Item.Design = catalog.Design(design)
	sl.Item.Size = catalog.Size(size.String)
	sl.Item.PaymentMethod = catalog.PaymentMethod(paymentMethod)
	sl.Item.Seller = seller.String
	sl.Item.Notes = notes.String

	return &sl, nil
}

func (s *Store) InsertSales(ctx context.Context, sales []*sale.Sale) error {
	if len(sales) == 0 {
		return nil
	}

	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer dbTx.Rollback()

	query := `
		INSERT INTO sales (id, product_type, color, design, size, price, cogs, payment_method, seller, notes, date, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	createdAt := s.now().UTC()

	for _, sl := range sales {
		id := sl.ID
		if id == uuid.Nil {
			id = uuid.New()
		}

		_, err := dbTx.ExecContext(ctx, query,
			id,
			sl.Item.ProductType,
			nullString(string(sl.Item.Color)),
			sl.Item.Design,
			nullString(string(sl.Item.Size)),
			sl.Item.Price,
			sl.Item.Cogs,
			sl.Item.PaymentMethod,
			nullString(sl.Item.Seller),
			nullString(sl.Item.Notes),
			sl.Date.UTC(),
			createdAt,
		)
		if err != nil {
			return fmt.Errorf("inserting sale: %w", err)
		}

		sl.ID = id
		sl.CreatedAt = createdAt
	}

	if err := dbTx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}

	return nil
}

func (s *Store) ListSales(ctx context.Context, filter sale.ListFilter) ([]*sale.Sale, error) {
	query := `SELECT ` + selectSaleColumns + ` FROM sales WHERE 1 = 1`

	var args []any

	if filter.From != nil {
		args = append(args, filter.From.UTC())
		query += fmt.Sprintf(" AND date >= $%d", len(args))
	}

	if filter.To != nil {
		args = append(args, filter.To.UTC())
		query += fmt.Sprintf(" AND date < $%d", len(args))
	}

	query += " ORDER BY date ASC, created_at ASC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing sales: %w", err)
	}
	defer rows.Close()

	var sales []*sale.Sale

	for rows.Next() {
		sl, err := scanSale(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning sale: %w", err)
		}

		sales = append(sales, sl)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating sale rows: %w", err)
	}

	return sales, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
