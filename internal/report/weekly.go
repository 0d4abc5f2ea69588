// Package report aggregates sales into financial weeks, daily totals and
// per-seller and per-design counts.
package report

import (
	"cmp"
	"slices"
	"time"

	"github.com/shopspring/decimal"

	"github.com/keystone-apparel/keystone/internal/catalog"
	"github.com/keystone-apparel/keystone/internal/sale"
)

// DefaultEpoch is the start of financial week 0.
var DefaultEpoch = time.Date(2025, 10, 10, 0, 0, 0, 0, time.UTC)

const DefaultPeriod = 7 * 24 * time.Hour

// FinancialWeek is one period of sales. It is derived on demand and never stored.
type FinancialWeek struct {
	PeriodIndex int
	Start       time.Time
	End         time.Time
	Sales       []*sale.Sale
	Tshirts     int
	Hoodies     int
	Revenue     decimal.Decimal
}

// Label renders the week as "Oct 10 - Oct 16".
func (w FinancialWeek) Label() string {
	return w.Start.Format("Jan 2") + " - " + w.End.Format("Jan 2")
}

// BucketByFinancialWeek partitions sales into consecutive periods of length
// period starting at epoch. Sales before epoch are dropped. Only periods with
// at least one sale are returned, ordered by index. The result does not depend
// on the input order.
func BucketByFinancialWeek(sales []*sale.Sale, epoch time.Time, period time.Duration) []FinancialWeek {
	if period <= 0 {
		return nil
	}

	buckets := make(map[int]*FinancialWeek)

	for _, s := range sales {
		// Integer division truncates toward zero, so pre-epoch sales must be
		// rejected before dividing or they would land in week 0.
		if s.Date.Before(epoch) {
			continue
		}

		idx := int(s.Date.Sub(epoch) / period)

		w, ok := buckets[idx]
		if !ok {
			start := epoch.Add(time.Duration(idx) * period)
			w = &FinancialWeek{
				PeriodIndex: idx,
				Start:       start,
				End:         start.Add(period - time.Millisecond),
				Revenue:     decimal.Zero,
			}
			buckets[idx] = w
		}

		w.Sales = append(w.Sales, s)
		w.Revenue = w.Revenue.Add(s.Item.Price)

		switch s.Item.ProductType {
		case catalog.ProductTShirt:
			w.Tshirts++
		case catalog.ProductHoodie:
			w.Hoodies++
		}
	}

	weeks := make([]FinancialWeek, 0, len(buckets))
	for _, w := range buckets {
		slices.SortStableFunc(w.Sales, bySaleDate)
		weeks = append(weeks, *w)
	}

	slices.SortFunc(weeks, func(a, b FinancialWeek) int {
		return cmp.Compare(a.PeriodIndex, b.PeriodIndex)
	})

	return weeks
}

func bySaleDate(a, b *sale.Sale) int {
	if c := a.Date.Compare(b.Date); c != 0 {
		return c
	}

	return cmp.Compare(a.ID.String(), b.ID.String())
}

// WeekSummary is a FinancialWeek without its member sales.
type WeekSummary struct {
	PeriodIndex int             `json:"period_index"`
	Label       string          `json:"label"`
	Start       time.Time       `json:"start"`
	End         time.Time       `json:"end"`
	Sales       int             `json:"sales"`
	Tshirts     int             `json:"tshirts"`
	Hoodies     int             `json:"hoodies"`
	Revenue     decimal.Decimal `json:"revenue"`
}

func (w FinancialWeek) Summary() WeekSummary {
	return WeekSummary{
		PeriodIndex: w.PeriodIndex,
		Label:       w.Label(),
		Start:       w.Start,
		End:         w.End,
		Sales:       len(w.Sales),
		Tshirts:     w.Tshirts,
		Hoodies:     w.Hoodies,
		Revenue:     w.Revenue.Round(2),
	}
}
