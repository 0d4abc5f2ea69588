// Package legacy reads the sales table the register kept in browser storage
// before it had a server: {"data": [...], "nextId": n}.
package legacy

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/keystone-apparel/keystone/internal/catalog"
	"github.com/keystone-apparel/keystone/internal/sale"
)

var ErrEmpty = errors.New("legacy dump has no sales")

type table struct {
	Data   []record `json:"data"`
	NextID int      `json:"nextId"`
}

// record mirrors one stored row. Money was written as a JSON number.
type record struct {
	ID            string          `json:"id"`
	ProductType   string          `json:"product_type"`
	Color         *string         `json:"color"`
	Design        string          `json:"design"`
	Size          *string         `json:"size"`
	Price         decimal.Decimal `json:"price"`
	Cogs          decimal.Decimal `json:"cogs"`
	PaymentMethod string          `json:"payment_method"`
	Seller        *string         `json:"seller"`
	Notes         *string         `json:"notes"`
	Date          time.Time       `json:"date"`
}

type Importer struct{}

func New() *Importer {
	return &Importer{}
}

func (i *Importer) Parse(r io.Reader) ([]*sale.Sale, error) {
	var t table
	if err := json.NewDecoder(r).Decode(&t); err != nil {
		return nil, fmt.Errorf("decode legacy dump: %w", err)
	}

	if len(t.Data) == 0 {
		return nil, ErrEmpty
	}

	sales := make([]*sale.Sale, 0, len(t.Data))

	for n, rec := range t.Data {
		s, err := rec.toSale()
		if err != nil {
			return nil, fmt.Errorf("record %d (id %q): %w", n+1, rec.ID, err)
		}

		sales = append(sales, s)
	}

	return sales, nil
}

func (rec record) toSale() (*sale.Sale, error) {
	pt := catalog.ProductType(rec.ProductType)
	if !pt.Valid() {
		return nil, fmt.Errorf("unknown product type %q", rec.ProductType)
	}

	pm := catalog.PaymentMethod(rec.PaymentMethod)
	if !pm.Valid() {
		return nil, fmt.Errorf("unknown payment method %q", rec.PaymentMethod)
	}

	if rec.Date.IsZero() {
		return nil, errors.New("missing date")
	}

	item := sale.Item{
		ProductType:   pt,
		Design:        catalog.Design(rec.Design),
		Price:         rec.Price,
		Cogs:          rec.Cogs,
		PaymentMethod: pm,
		Seller:        deref(rec.Seller),
		Notes:         strings.TrimSpace(deref(rec.Notes)),
	}

	if pt != catalog.ProductSticker {
		item.Color = catalog.Color(deref(rec.Color))
		item.Size = catalog.Size(deref(rec.Size))
	}

	return &sale.Sale{Item: item, Date: rec.Date}, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}

	return *s
}
