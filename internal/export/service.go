package export

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/keystone-apparel/keystone/internal/report"
	"github.com/keystone-apparel/keystone/internal/sale"
)

// Columns is the header of the exported CSV. The importer reads it back.
var Columns = []string{
	"date", "product_type", "color", "design", "size",
	"price", "cogs", "payment_method", "seller", "notes",
}

// Service handles the export of sales for spreadsheet hand-off.
type Service struct {
	sales *sale.Service
	loc   *time.Location
}

// NewService creates a new export Service. loc decides day boundaries in the summary.
func NewService(sales *sale.Service, loc *time.Location) *Service {
	if loc == nil {
		loc = time.UTC
	}

	return &Service{sales: sales, loc: loc}
}

// Export returns the sales in the filter range, oldest first.
func (s *Service) Export(ctx context.Context, filter sale.ListFilter) ([]*sale.Sale, error) {
	sales, err := s.sales.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("listing sales: %w", err)
	}

	return sales, nil
}

// WriteCSV writes sales with the Columns header. Money has two decimals and
// dates are RFC 3339 in UTC.
func (s *Service) WriteCSV(w io.Writer, sales []*sale.Sale) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(Columns); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for _, sl := range sales {
		it := sl.Item

		record := []string{
			sl.Date.UTC().Format(time.RFC3339),
			string(it.ProductType),
			string(it.Color),
			string(it.Design),
			string(it.Size),
			it.Price.StringFixed(2),
			it.Cogs.StringFixed(2),
			string(it.PaymentMethod),
			it.Seller,
			it.Notes,
		}

		if err := cw.Write(record); err != nil {
			return fmt.Errorf("writing sale %s: %w", sl.ID, err)
		}
	}

	cw.Flush()

	return cw.Error()
}

// GenerateSummary creates one line per day that has sales, in date order.
func (s *Service) GenerateSummary(sales []*sale.Sale) string {
	var (
		sb   strings.Builder
		days []time.Time
		seen = make(map[time.Time]bool)
	)

	for _, sl := range sales {
		day := sale.StartOfDay(sl.Date, s.loc)
		if !seen[day] {
			seen[day] = true
			days = append(days, day)
		}
	}

	for _, day := range days {
		t := report.Daily(sales, day, s.loc)

		sb.WriteString(fmt.Sprintf("* %s | %d sales (%d tee, %d hoodie, %d sticker) | card %d, cash %d | revenue $%s | profit $%s\n",
			t.Day, t.Sales, t.Tshirts, t.Hoodies, t.Stickers, t.Card, t.Cash,
			t.Revenue.StringFixed(2), t.Profit.StringFixed(2)))
	}

	return sb.String()
}
