package report

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/keystone-apparel/keystone/internal/obs"
	"github.com/keystone-apparel/keystone/internal/sale"
)

// SaleLister is the read side of the sale repository.
type SaleLister interface {
	ListSales(ctx context.Context, filter sale.ListFilter) ([]*sale.Sale, error)
}

// Service builds reports from stored sales, with an optional redis
// read-through cache. Cached reports live for TTL or until Invalidate.
type Service struct {
	Sales    SaleLister
	R        *redis.Client
	TTL      time.Duration
	Epoch    time.Time
	Period   time.Duration
	Location *time.Location
	Metrics  *obs.Metrics
	Now      func() time.Time
}

const genKey = "keystone:report:gen"

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}

	return time.Now()
}

func (s *Service) location() *time.Location {
	if s.Location != nil {
		return s.Location
	}

	return time.UTC
}

func (s *Service) period() (time.Time, time.Duration) {
	epoch, period := s.Epoch, s.Period
	if epoch.IsZero() {
		epoch = DefaultEpoch
	}

	if period <= 0 {
		period = DefaultPeriod
	}

	return epoch, period
}

// Weeks returns the financial weeks with their member sales. It is not cached.
func (s *Service) Weeks(ctx context.Context) ([]FinancialWeek, error) {
	epoch, period := s.period()

	sales, err := s.Sales.ListSales(ctx, sale.ListFilter{From: &epoch})
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}

	return BucketByFinancialWeek(sales, epoch, period), nil
}

func (s *Service) Weekly(ctx context.Context) ([]WeekSummary, error) {
	var out []WeekSummary

	epoch, period := s.period()

	err := s.cached(ctx, "weekly", &out, func() error {
		weeks, err := s.Weeks(ctx)
		if err != nil {
			return err
		}

		out = make([]WeekSummary, len(weeks))
		for i, w := range weeks {
			out[i] = w.Summary()
		}

		return nil
	}, epoch.Unix(), int64(period.Seconds()))

	return out, err
}

// Daily totals the day containing day in the configured location.
func (s *Service) Daily(ctx context.Context, day time.Time) (DailyTotals, error) {
	var out DailyTotals

	loc := s.location()
	filter := sale.DayFilter(day, loc)

	err := s.cached(ctx, "daily", &out, func() error {
		sales, err := s.Sales.ListSales(ctx, filter)
		if err != nil {
			return fmt.Errorf("list sales: %w", err)
		}

		out = Daily(sales, day, loc)

		return nil
	}, filter.From.Format(time.DateOnly), loc.String())

	return out, err
}

// Today is Daily for the current day.
func (s *Service) Today(ctx context.Context) (DailyTotals, error) {
	return s.Daily(ctx, s.now())
}

func (s *Service) Sellers(ctx context.Context) ([]SellerStat, error) {
	var out []SellerStat

	err := s.cached(ctx, "sellers", &out, func() error {
		sales, err := s.Sales.ListSales(ctx, sale.ListFilter{})
		if err != nil {
			return fmt.Errorf("list sales: %w", err)
		}

		out = SellerStats(sales)

		return nil
	})

	return out, err
}

func (s *Service) Designs(ctx context.Context) ([]DesignStat, error) {
	var out []DesignStat

	err := s.cached(ctx, "designs", &out, func() error {
		sales, err := s.Sales.ListSales(ctx, sale.ListFilter{})
		if err != nil {
			return fmt.Errorf("list sales: %w", err)
		}

		out = DesignStats(sales)

		return nil
	})

	return out, err
}

// Invalidate drops every cached report by moving to a new cache generation.
func (s *Service) Invalidate(ctx context.Context) {
	if s.R == nil || s.TTL <= 0 {
		return
	}

	if err := s.R.Incr(ctx, genKey).Err(); err != nil {
		slog.WarnContext(ctx, "failed to invalidate report cache", "error", err)
	}
}

// cached fills out from the cache or, on a miss, by calling build and
// storing the result. Cache errors fall back to build.
func (s *Service) cached(ctx context.Context, report string, out any, build func() error, parts ...any) error {
	if s.R == nil || s.TTL <= 0 {
		return build()
	}

	key := s.cacheKey(ctx, report, parts...)

	if data, err := s.R.Get(ctx, key).Bytes(); err == nil {
		if err := json.Unmarshal(data, out); err == nil {
			s.Metrics.CacheLookup(report, true)
			return nil
		}
	}

	s.Metrics.CacheLookup(report, false)

	if err := build(); err != nil {
		return err
	}

	data, err := json.Marshal(out)
	if err != nil {
		return nil
	}

	if err := s.R.Set(ctx, key, data, s.TTL).Err(); err != nil {
		slog.WarnContext(ctx, "failed to cache report", "report", report, "error", err)
	}

	return nil
}

func (s *Service) cacheKey(ctx context.Context, report string, parts ...any) string {
	gen, err := s.R.Get(ctx, genKey).Result()
	if err != nil {
		gen = "0"
	}

	formatted := make([]string, 0, len(parts)+3)
	formatted = append(formatted, "keystone", "report", gen, report)

	for _, part := range parts {
		formatted = append(formatted, fmt.Sprint(part))
	}

	return strings.Join(formatted, ":")
}
