// Package dto holds the JSON shapes shared by several handlers.
package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/keystone-apparel/keystone/internal/presale"
	"github.com/keystone-apparel/keystone/internal/sale"
)

// Item is the JSON form of sale.Item. Money is a string with two decimals;
// color and size are null for stickers.
type Item struct {
	ProductType   string  `json:"product_type"`
	Color         *string `json:"color"`
	Design        string  `json:"design"`
	DesignLabel   string  `json:"design_label"`
	Size          *string `json:"size"`
	Price         string  `json:"price"`
	Cogs          string  `json:"cogs"`
	PaymentMethod string  `json:"payment_method"`
	Seller        *string `json:"seller"`
	Notes         *string `json:"notes"`
}

type Sale struct {
	ID uuid.UUID `json:"id"`
	Item
	Date      time.Time `json:"date"`
	CreatedAt time.Time `json:"created_at"`
}

type Presale struct {
	ID uuid.UUID `json:"id"`
	Item
	Status        presale.Status `json:"status"`
	CreatedAt     time.Time      `json:"created_at"`
	FulfilledDate *time.Time     `json:"fulfilled_date"`
}

func NewItem(it sale.Item) Item {
	return Item{
		ProductType:   string(it.ProductType),
		Color:         nullable(string(it.Color)),
		Design:        string(it.Design),
		DesignLabel:   it.Design.Label(),
		Size:          nullable(string(it.Size)),
		Price:         it.Price.StringFixed(2),
		Cogs:          it.Cogs.StringFixed(2),
		PaymentMethod: string(it.PaymentMethod),
		Seller:        nullable(it.Seller),
		Notes:         nullable(it.Notes),
	}
}

func NewSale(s *sale.Sale) Sale {
	return Sale{
		ID:        s.ID,
		Item:      NewItem(s.Item),
		Date:      s.Date,
		CreatedAt: s.CreatedAt,
	}
}

func NewSales(sales []*sale.Sale) []Sale {
	out := make([]Sale, 0, len(sales))
	for _, s := range sales {
		out = append(out, NewSale(s))
	}

	return out
}

func NewPresale(p *presale.Presale) Presale {
	return Presale{
		ID:            p.ID,
		Item:          NewItem(p.Item),
		Status:        p.Status(),
		CreatedAt:     p.CreatedAt,
		FulfilledDate: p.FulfilledDate,
	}
}

func NewPresales(presales []*presale.Presale) []Presale {
	out := make([]Presale, 0, len(presales))
	for _, p := range presales {
		out = append(out, NewPresale(p))
	}

	return out
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}

	return &s
}
