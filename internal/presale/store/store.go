package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/keystone-apparel/keystone/internal/catalog"
	"github.com/keystone-apparel/keystone/internal/presale"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

const selectPresaleColumns = `
	id, product_type, color, design, size, price, cogs,
	payment_method, seller, notes, created_at, sold, fulfilled_date
`

func scanPresale(s scanner) (*presale.Presale, error) {
	var p presale.Presale

	var productType, design, paymentMethod string

	var color, size, seller, notes sql.NullString

	var fulfilled sql.NullTime

	if err := s.Scan(
		&p.ID, &productType, &color, &design, &size, &p.Item.Price, &p.Item.Cogs,
		&paymentMethod, &seller, &notes, &p.CreatedAt, &p.Sold, &fulfilled,
	); err != nil {
		return nil, err
	}

	p.Item.ProductType = catalog.ProductType(productType)
	p.Item.Color = catalog.Color(color.String)
	p.Item.Design = catalog.Design(design)
	p.Item.Size = catalog.Size(size.String)
	p.Item.PaymentMethod = catalog.PaymentMethod(paymentMethod)
	p.Item.Seller = seller.String
	p.Item.Notes = notes.String

	if fulfilled.Valid {
		p.FulfilledDate = &fulfilled.Time
	}

	return &p, nil
}

func (s *Store) InsertPresales(ctx context.Context, presales []*presale.Presale) error {
	if len(presales) == 0 {
		return nil
	}

	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer dbTx.Rollback()

	query := `
		INSERT INTO presales (id, product_type, color, design, size, price, cogs, payment_method, seller, notes, created_at, sold)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, FALSE)
	`

	for _, p := range presales {
		id := p.ID
		if id == uuid.Nil {
			id = uuid.New()
		}

		_, err := dbTx.ExecContext(ctx, query,
			id,
			p.Item.ProductType,
			nullString(string(p.Item.Color)),
			p.Item.Design,
			nullString(string(p.Item.Size)),
			p.Item.Price,
			p.Item.Cogs,
			p.Item.PaymentMethod,
			nullString(p.Item.Seller),
			nullString(p.Item.Notes),
			p.CreatedAt.UTC(),
		)
		if err != nil {
			return fmt.Errorf("inserting presale: %w", err)
		}

		p.ID = id
	}

	if err := dbTx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}

	return nil
}

func (s *Store) ListPresales(ctx context.Context) ([]*presale.Presale, error) {
	query := `SELECT ` + selectPresaleColumns + ` FROM presales ORDER BY created_at DESC`

	return s.query(ctx, query)
}

func (s *Store) GetPresales(ctx context.Context, ids []uuid.UUID) ([]*presale.Presale, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	placeholders, args := inClause(ids, 1)
	query := `SELECT ` + selectPresaleColumns + ` FROM presales WHERE id IN (` + placeholders + `)`

	return s.query(ctx, query, args...)
}

// MarkSold only touches pending rows, so a fulfillment date is written once.
// It fails with presale.ErrNotPending when any id was not pending.
func (s *Store) MarkSold(ctx context.Context, ids []uuid.UUID, at time.Time) error {
	if len(ids) == 0 {
		return nil
	}

	placeholders, args := inClause(ids, 2)
	query := `UPDATE presales SET sold = TRUE, fulfilled_date = $1 WHERE sold = FALSE AND id IN (` + placeholders + `)`

	res, err := s.db.ExecContext(ctx, query, append([]any{at.UTC()}, args...)...)
	if err != nil {
		return fmt.Errorf("marking presales sold: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("marking presales sold: %w", err)
	}

	if int(n) != len(ids) {
		return fmt.Errorf("marked %d of %d presales: %w", n, len(ids), presale.ErrNotPending)
	}

	return nil
}

func (s *Store) query(ctx context.Context, query string, args ...any) ([]*presale.Presale, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing presales: %w", err)
	}
	defer rows.Close()

	var presales []*presale.Presale

	for rows.Next() {
		p, err := scanPresale(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning presale: %w", err)
		}

		presales = append(presales, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating presale rows: %w", err)
	}

	return presales, nil
}

// inClause renders $start, $start+1, ... for ids.
func inClause(ids []uuid.UUID, start int) (string, []any) {
	marks := make([]string, len(ids))
	args := make([]any, len(ids))

	for i, id := range ids {
		marks[i] = fmt.Sprintf("$%d", start+i)
		args[i] = id
	}

	return strings.Join(marks, ", "), args
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
