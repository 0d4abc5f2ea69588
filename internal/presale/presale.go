package presale

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/keystone-apparel/keystone/internal/sale"
)

var (
	ErrNotFound   = errors.New("presale not found")
	ErrNotPending = errors.New("presale already fulfilled")
	ErrNoneChosen = errors.New("no presales selected")

	// ErrPartialFulfillment means the sales were recorded but the presales
	// could not be marked sold. Nothing is rolled back.
	ErrPartialFulfillment = errors.New("sales recorded but presales not marked sold")
)

// Status is the presale lifecycle state. Sold is terminal.
type Status string

const (
	StatusAll     Status = ""
	StatusPending Status = "pending"
	StatusSold    Status = "sold"
)

func (s Status) Valid() bool {
	return s == StatusAll || s == StatusPending || s == StatusSold
}

// Presale is an order taken before stock is on hand.
type Presale struct {
	ID            uuid.UUID
	Item          sale.Item
	CreatedAt     time.Time
	Sold          bool
	FulfilledDate *time.Time
}

func (p *Presale) Status() Status {
	if p.Sold {
		return StatusSold
	}

	return StatusPending
}

// Financials summarises the presales still waiting for stock.
type Financials struct {
	Pending         int
	UnusedCogs      decimal.Decimal
	UnearnedRevenue decimal.Decimal
}

// ComputeFinancials totals COGS and price over pending presales.
func ComputeFinancials(presales []*Presale) Financials {
	f := Financials{UnusedCogs: decimal.Zero, UnearnedRevenue: decimal.Zero}

	for _, p := range presales {
		if p.Sold {
			continue
		}

		f.Pending++
		f.UnusedCogs = f.UnusedCogs.Add(p.Item.Cogs)
		f.UnearnedRevenue = f.UnearnedRevenue.Add(p.Item.Price)
	}

	return f
}

// Split partitions presales into pending and sold, keeping their order.
func Split(presales []*Presale) (pending, sold []*Presale) {
	for _, p := range presales {
		if p.Sold {
			sold = append(sold, p)
			continue
		}

		pending = append(pending, p)
	}

	return pending, sold
}
