package dto

import (
	"time"

	"github.com/keystone-apparel/keystone/internal/report"
)

// Money fields in reports are strings with two decimals, as on items.

type Week struct {
	PeriodIndex int       `json:"period_index"`
	Label       string    `json:"label"`
	Start       time.Time `json:"start"`
	End         time.Time `json:"end"`
	Sales       int       `json:"sales"`
	Tshirts     int       `json:"tshirts"`
	Hoodies     int       `json:"hoodies"`
	Revenue     string    `json:"revenue"`
}

type Daily struct {
	Day      string `json:"day"`
	Sales    int    `json:"sales"`
	Tshirts  int    `json:"tshirts"`
	Hoodies  int    `json:"hoodies"`
	Stickers int    `json:"stickers"`
	Card     int    `json:"card"`
	Cash     int    `json:"cash"`
	Cogs     string `json:"cogs"`
	Revenue  string `json:"revenue"`
	Profit   string `json:"profit"`
}

type Seller struct {
	Seller  string `json:"seller"`
	Sales   int    `json:"sales"`
	Revenue string `json:"revenue"`
}

func NewWeeks(weeks []report.WeekSummary) []Week {
	out := make([]Week, len(weeks))
	for i, w := range weeks {
		out[i] = Week{
			PeriodIndex: w.PeriodIndex,
			Label:       w.Label,
			Start:       w.Start,
			End:         w.End,
			Sales:       w.Sales,
			Tshirts:     w.Tshirts,
			Hoodies:     w.Hoodies,
			Revenue:     w.Revenue.StringFixed(2),
		}
	}

	return out
}

func NewDaily(t report.DailyTotals) Daily {
	return Daily{
		Day:      t.Day,
		Sales:    t.Sales,
		Tshirts:  t.Tshirts,
		Hoodies:  t.Hoodies,
		Stickers: t.Stickers,
		Card:     t.Card,
		Cash:     t.Cash,
		Cogs:     t.Cogs.StringFixed(2),
		Revenue:  t.Revenue.StringFixed(2),
		Profit:   t.Profit.StringFixed(2),
	}
}

func NewSellers(stats []report.SellerStat) []Seller {
	out := make([]Seller, len(stats))
	for i, s := range stats {
		out[i] = Seller{Seller: s.Seller, Sales: s.Sales, Revenue: s.Revenue.StringFixed(2)}
	}

	return out
}
