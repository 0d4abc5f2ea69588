package presale

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/keystone-apparel/keystone/internal/obs"
	"github.com/keystone-apparel/keystone/internal/sale"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=presale
type Repository interface {
	InsertPresales(ctx context.Context, presales []*Presale) error
	// ListPresales returns every presale, newest first.
	ListPresales(ctx context.Context) ([]*Presale, error)
	// GetPresales returns the presales with the given ids; unknown ids are skipped.
	GetPresales(ctx context.Context, ids []uuid.UUID) ([]*Presale, error)
	// MarkSold flips pending presales to sold with the given fulfillment date.
	MarkSold(ctx context.Context, ids []uuid.UUID, at time.Time) error
}

type Service struct {
	repo    Repository
	sales   sale.Repository
	metrics *obs.Metrics
	now     func() time.Time
}

type Option func(*Service)

func WithMetrics(m *obs.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func NewService(repo Repository, sales sale.Repository, opts ...Option) *Service {
	s := &Service{repo: repo, sales: sales, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Create records the one or two presale items of a submission.
func (s *Service) Create(ctx context.Context, sub sale.Submission) ([]*Presale, error) {
	items, err := sub.Items()
	if err != nil {
		return nil, err
	}

	sale.WarnUnknownVariants(ctx, items)

	now := s.now()

	presales := make([]*Presale, len(items))
	for i, it := range items {
		presales[i] = &Presale{Item: it, CreatedAt: now}
	}

	if err := s.repo.InsertPresales(ctx, presales); err != nil {
		return nil, fmt.Errorf("insert presales: %w", err)
	}

	for _, p := range presales {
		s.metrics.PresaleCreated(string(p.Item.ProductType))
	}

	return presales, nil
}

// List returns presales newest first, optionally narrowed to one status.
func (s *Service) List(ctx context.Context, status Status) ([]*Presale, error) {
	presales, err := s.repo.ListPresales(ctx)
	if err != nil {
		return nil, err
	}

	if status == StatusAll {
		return presales, nil
	}

	pending, sold := Split(presales)
	if status == StatusPending {
		return pending, nil
	}

	return sold, nil
}

func (s *Service) Financials(ctx context.Context) (Financials, error) {
	presales, err := s.repo.ListPresales(ctx)
	if err != nil {
		return Financials{}, err
	}

	return ComputeFinancials(presales), nil
}

// Fulfillment is the outcome of promoting a batch of presales.
type Fulfillment struct {
	Sales       []*sale.Sale
	FulfilledAt time.Time
}

// Fulfill promotes pending presales to sales. Every presale in the batch gets
// the same timestamp, both as the sale date and as its fulfillment date.
//
// Sales are inserted first and the presales marked sold second, in two
// separate storage calls. If marking fails the sales stay recorded and the
// error wraps ErrPartialFulfillment.
func (s *Service) Fulfill(ctx context.Context, ids []uuid.UUID) (*Fulfillment, error) {
	ids = unique(ids)
	if len(ids) == 0 {
		return nil, ErrNoneChosen
	}

	presales, err := s.repo.GetPresales(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("load presales: %w", err)
	}

	byID := make(map[uuid.UUID]*Presale, len(presales))
	for _, p := range presales {
		byID[p.ID] = p
	}

	ordered := make([]*Presale, 0, len(ids))

	for _, id := range ids {
		p, ok := byID[id]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
		}

		if p.Sold {
			return nil, fmt.Errorf("%w: %s", ErrNotPending, id)
		}

		ordered = append(ordered, p)
	}

	now := s.now()

	sales := make([]*sale.Sale, len(ordered))
	for i, p := range ordered {
		sales[i] = &sale.Sale{Item: p.Item, Date: now}
	}

	if err := s.sales.InsertSales(ctx, sales); err != nil {
		s.metrics.FulfillmentFailed("insert_sales")
		return nil, fmt.Errorf("insert sales: %w", err)
	}

	if err := s.repo.MarkSold(ctx, ids, now); err != nil {
		s.metrics.FulfillmentFailed("mark_sold")
		slog.ErrorContext(ctx, "presales fulfilled but not marked sold", "count", len(ids), "error", err)

		return nil, fmt.Errorf("%w: %w", ErrPartialFulfillment, err)
	}

	for _, p := range ordered {
		p.Sold = true
		p.FulfilledDate = &now
	}

	s.metrics.Fulfilled(len(ordered))

	for _, sl := range sales {
		price, _ := sl.Item.Price.Float64()
		s.metrics.SaleRecorded(string(sl.Item.ProductType), string(sl.Item.PaymentMethod), "presale", price)
	}

	return &Fulfillment{Sales: sales, FulfilledAt: now}, nil
}

func unique(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := make([]uuid.UUID, 0, len(ids))

	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}

		seen[id] = struct{}{}

		out = append(out, id)
	}

	return out
}
