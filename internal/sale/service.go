package sale

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/keystone-apparel/keystone/internal/catalog"
	"github.com/keystone-apparel/keystone/internal/obs"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=sale
type Repository interface {
	// InsertSales writes all sales in one storage transaction and fills in their IDs.
	InsertSales(ctx context.Context, sales []*Sale) error
	// ListSales returns sales ordered by date ascending.
	ListSales(ctx context.Context, filter ListFilter) ([]*Sale, error)
}

// ListFilter selects sales in the half-open range [From, To). Nil bounds are open.
type ListFilter struct {
	From *time.Time
	To   *time.Time
}

// DayFilter selects the calendar day containing day in loc.
func DayFilter(day time.Time, loc *time.Location) ListFilter {
	start := StartOfDay(day, loc)
	end := start.AddDate(0, 0, 1)

	return ListFilter{From: &start, To: &end}
}

// StartOfDay returns local midnight of the day containing t.
func StartOfDay(t time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}

	t = t.In(loc)

	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}

type Service struct {
	repo    Repository
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

func NewService(repo Repository, opts ...Option) *Service {
	s := &Service{repo: repo, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Register validates a submission and records its one or two sales with a single timestamp.
func (s *Service) Register(ctx context.Context, sub Submission) ([]*Sale, error) {
	items, err := sub.Items()
	if err != nil {
		return nil, err
	}

	WarnUnknownVariants(ctx, items)

	sales := NewSales(items, s.now())
	if err := s.repo.InsertSales(ctx, sales); err != nil {
		return nil, fmt.Errorf("insert sales: %w", err)
	}

	s.record(sales, "register")

	return sales, nil
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Sale, error) {
	return s.repo.ListSales(ctx, filter)
}

type ImportResult struct {
	Imported   []*Sale
	Duplicates []*Sale
}

// ImportBatch inserts historical sales, skipping rows that already exist.
// Two sales are the same when they share timestamp (to the second), variant,
// price, payment method and seller.
func (s *Service) ImportBatch(ctx context.Context, sales []*Sale) (*ImportResult, error) {
	if len(sales) == 0 {
		return &ImportResult{}, nil
	}

	minDate, maxDate := dateRange(sales)
	from := minDate.Truncate(time.Second)
	to := maxDate.Truncate(time.Second).Add(time.Second)

	existing, err := s.repo.ListSales(ctx, ListFilter{From: &from, To: &to})
	if err != nil {
		return nil, fmt.Errorf("find duplicates: %w", err)
	}

	seen := make(map[dupKey]struct{}, len(existing))
	for _, e := range existing {
		seen[keyOf(e)] = struct{}{}
	}

	result := &ImportResult{}

	for _, sl := range sales {
		k := keyOf(sl)
		if _, found := seen[k]; found {
			result.Duplicates = append(result.Duplicates, sl)
			continue
		}

		result.Imported = append(result.Imported, sl)
	}

	if len(result.Imported) == 0 {
		return result, nil
	}

	if err := s.repo.InsertSales(ctx, result.Imported); err != nil {
		return nil, fmt.Errorf("insert sales: %w", err)
	}

	s.record(result.Imported, "import")

	return result, nil
}

func (s *Service) record(sales []*Sale, source string) {
	for _, sl := range sales {
		price, _ := sl.Item.Price.Float64()
		s.metrics.SaleRecorded(string(sl.Item.ProductType), string(sl.Item.PaymentMethod), source, price)
	}
}

// WarnUnknownVariants logs items whose variant has no COGS on file. Such items
// still record with zero COGS.
func WarnUnknownVariants(ctx context.Context, items []Item) {
	for _, it := range items {
		if _, ok := catalog.LookupCogs(it.ProductType, it.Design, it.Size); ok {
			continue
		}

		slog.WarnContext(ctx, "no cogs on file for variant",
			"product_type", it.ProductType,
			"design", it.Design,
			"size", it.Size,
		)
	}
}

type dupKey struct {
	Date          int64
	ProductType   catalog.ProductType
	Design        catalog.Design
	Color         catalog.Color
	Size          catalog.Size
	Price         string
	PaymentMethod catalog.PaymentMethod
	Seller        string
}

func keyOf(s *Sale) dupKey {
	return dupKey{
		Date:          s.Date.Unix(),
		ProductType:   s.Item.ProductType,
		Design:        s.Item.Design,
		Color:         s.Item.Color,
		Size:          s.Item.Size,
		Price:         s.Item.Price.StringFixed(2),
		PaymentMethod: s.Item.PaymentMethod,
		Seller:        s.Item.Seller,
	}
}

func dateRange(sales []*Sale) (time.Time, time.Time) {
	minDate := sales[0].Date
	maxDate := sales[0].Date

	for _, s := range sales[1:] {
		if s.Date.Before(minDate) {
			minDate = s.Date
		}

		if s.Date.After(maxDate) {
			maxDate = s.Date
		}
	}

	return minDate, maxDate
}
