package report_test

import (
	"math/rand"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keystone-apparel/keystone/internal/catalog"
	"github.com/keystone-apparel/keystone/internal/report"
	"github.com/keystone-apparel/keystone/internal/sale"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func sold(pt catalog.ProductType, price string, at time.Time) *sale.Sale {
	return &sale.Sale{
		ID:   uuid.New(),
		Item: sale.Item{ProductType: pt, Design: "doubt-not", Price: dec(price), PaymentMethod: catalog.PaymentCard},
		Date: at,
	}
}

func TestBucketByFinancialWeek(t *testing.T) {
	epoch := time.Date(2024, 10, 10, 0, 0, 0, 0, time.UTC)

	sales := []*sale.Sale{
		sold(catalog.ProductTShirt, "9.99", time.Date(2024, 10, 10, 12, 0, 0, 0, time.UTC)),
		sold(catalog.ProductHoodie, "49.99", time.Date(2024, 10, 16, 23, 0, 0, 0, time.UTC)),
		sold(catalog.ProductTShirt, "9.99", time.Date(2024, 10, 17, 1, 0, 0, 0, time.UTC)),
	}

	weeks := report.BucketByFinancialWeek(sales, epoch, report.DefaultPeriod)
	require.Len(t, weeks, 2)

	assert.Equal(t, 0, weeks[0].PeriodIndex)
	assert.Len(t, weeks[0].Sales, 2)
	assert.Equal(t, 1, weeks[0].Tshirts)
	assert.Equal(t, 1, weeks[0].Hoodies)
	assert.Equal(t, "59.98", weeks[0].Revenue.StringFixed(2))
	assert.Equal(t, epoch, weeks[0].Start)
	assert.Equal(t, epoch.Add(report.DefaultPeriod-time.Millisecond), weeks[0].End)
	assert.Equal(t, "Oct 10 - Oct 16", weeks[0].Label())

	assert.Equal(t, 1, weeks[1].PeriodIndex)
	assert.Len(t, weeks[1].Sales, 1)
	assert.Equal(t, "9.99", weeks[1].Revenue.StringFixed(2))
	assert.Equal(t, "Oct 17 - Oct 23", weeks[1].Label())
}

func TestBucketByFinancialWeek_Boundaries(t *testing.T) {
	epoch := report.DefaultEpoch

	sales := []*sale.Sale{
		sold(catalog.ProductTShirt, "9.99", epoch.Add(-time.Millisecond)),
		sold(catalog.ProductTShirt, "9.99", epoch),
		sold(catalog.ProductTShirt, "9.99", epoch.Add(report.DefaultPeriod-time.Millisecond)),
		sold(catalog.ProductSticker, "2.36", epoch.Add(report.DefaultPeriod)),
		sold(catalog.ProductHoodie, "49.99", epoch.Add(5*report.DefaultPeriod)),
	}

	weeks := report.BucketByFinancialWeek(sales, epoch, report.DefaultPeriod)
	require.Len(t, weeks, 3)

	assert.Equal(t, []int{0, 1, 5}, []int{weeks[0].PeriodIndex, weeks[1].PeriodIndex, weeks[2].PeriodIndex})
	assert.Len(t, weeks[0].Sales, 2)
	assert.Equal(t, 0, weeks[1].Tshirts)
	assert.Equal(t, 0, weeks[1].Hoodies)
	assert.Equal(t, "2.36", weeks[1].Revenue.StringFixed(2))
}

func TestBucketByFinancialWeek_Empty(t *testing.T) {
	assert.Empty(t, report.BucketByFinancialWeek(nil, report.DefaultEpoch, report.DefaultPeriod))
	assert.Empty(t, report.BucketByFinancialWeek([]*sale.Sale{
		sold(catalog.ProductTShirt, "9.99", report.DefaultEpoch.AddDate(-1, 0, 0)),
	}, report.DefaultEpoch, report.DefaultPeriod))
}

func fingerprint(weeks []report.FinancialWeek) []report.WeekSummary {
	out := make([]report.WeekSummary, len(weeks))
	for i, w := range weeks {
		out[i] = w.Summary()
	}

	return out
}

func TestBucketByFinancialWeek_OrderIndependent(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	properties := gopter.NewProperties(parameters)

	epoch := report.DefaultEpoch
	products := []catalog.ProductType{catalog.ProductTShirt, catalog.ProductHoodie, catalog.ProductSticker}
	prices := []string{"9.99", "49.99", "2.36", "14.99", "0"}

	genSale := gopter.CombineGens(
		gen.Int64Range(-3*24*3600, 60*24*3600),
		gen.IntRange(0, len(products)-1),
		gen.IntRange(0, len(prices)-1),
	).Map(func(v []any) *sale.Sale {
		at := epoch.Add(time.Duration(v[0].(int64)) * time.Second)
		return sold(products[v[1].(int)], prices[v[2].(int)], at)
	})

	properties.Property("shuffling input yields the same weeks", prop.ForAll(
		func(sales []*sale.Sale, seed int64) bool {
			want := fingerprint(report.BucketByFinancialWeek(sales, epoch, report.DefaultPeriod))

			shuffled := append([]*sale.Sale(nil), sales...)
			rand.New(rand.NewSource(seed)).Shuffle(len(shuffled), func(i, j int) {
				shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
			})

			got := fingerprint(report.BucketByFinancialWeek(shuffled, epoch, report.DefaultPeriod))
			if len(got) != len(want) {
				return false
			}

			for i := range got {
				if got[i].PeriodIndex != want[i].PeriodIndex ||
					got[i].Sales != want[i].Sales ||
					got[i].Tshirts != want[i].Tshirts ||
					got[i].Hoodies != want[i].Hoodies ||
					!got[i].Revenue.Equal(want[i].Revenue) {
					return false
				}
			}

			return true
		},
		gen.SliceOf(genSale),
		gen.Int64(),
	))

	properties.Property("no sale before the epoch is counted", prop.ForAll(
		func(sales []*sale.Sale) bool {
			counted := 0
			for _, w := range report.BucketByFinancialWeek(sales, epoch, report.DefaultPeriod) {
				counted += len(w.Sales)

				for _, s := range w.Sales {
					if s.Date.Before(epoch) || s.Date.Before(w.Start) || s.Date.After(w.End) {
						return false
					}
				}
			}

			expected := 0
			for _, s := range sales {
				if !s.Date.Before(epoch) {
					expected++
				}
			}

			return counted == expected
		},
		gen.SliceOf(genSale),
	))

	properties.TestingRun(t)
}
