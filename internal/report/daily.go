package report

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/keystone-apparel/keystone/internal/catalog"
	"github.com/keystone-apparel/keystone/internal/sale"
)

// DailyTotals summarises one calendar day of sales.
type DailyTotals struct {
	Day      string          `json:"day"`
	Sales    int             `json:"sales"`
	Tshirts  int             `json:"tshirts"`
	Hoodies  int             `json:"hoodies"`
	Stickers int             `json:"stickers"`
	Card     int             `json:"card"`
	Cash     int             `json:"cash"`
	Cogs     decimal.Decimal `json:"cogs"`
	Revenue  decimal.Decimal `json:"revenue"`
	Profit   decimal.Decimal `json:"profit"`
}

// Daily totals the sales in [startOfDay, startOfDay+1 day) in loc. Sales
// outside the day are ignored, so callers may pass a wider set.
func Daily(sales []*sale.Sale, day time.Time, loc *time.Location) DailyTotals {
	start := sale.StartOfDay(day, loc)
	end := start.AddDate(0, 0, 1)

	t := DailyTotals{
		Day:     start.Format(time.DateOnly),
		Cogs:    decimal.Zero,
		Revenue: decimal.Zero,
	}

	for _, s := range sales {
		if s.Date.Before(start) || !s.Date.Before(end) {
			continue
		}

		t.Sales++

		switch s.Item.ProductType {
		case catalog.ProductTShirt:
			t.Tshirts++
		case catalog.ProductHoodie:
			t.Hoodies++
		case catalog.ProductSticker:
			t.Stickers++
		}

		switch s.Item.PaymentMethod {
		case catalog.PaymentCard:
			t.Card++
		case catalog.PaymentCash:
			t.Cash++
		}

		t.Cogs = t.Cogs.Add(s.Item.Cogs)
		t.Revenue = t.Revenue.Add(s.Item.Price)
	}

	t.Profit = t.Revenue.Sub(t.Cogs)

	return t
}
