package keystone

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/keystone-apparel/keystone/internal/catalog"
	enc "github.com/keystone-apparel/keystone/internal/encoding"
	"github.com/keystone-apparel/keystone/internal/sale"
)

// Parser reads sales CSV files: the register's own export, or a spreadsheet
// with human labels ("T-Shirt", "King of Kings", "2XL"). Comma and semicolon
// separated files are both accepted.
type Parser struct {
	// Location applies to timestamps without a zone offset. Nil means UTC.
	Location *time.Location
}

func NewParser(loc *time.Location) *Parser {
	return &Parser{Location: loc}
}

const sniffLines = 20

var ErrNoProfile = errors.New("no matching sales format found: expected date, product, design, price and payment columns")

func (p *Parser) Parse(r io.Reader) ([]*sale.Sale, error) {
	utf8r, _, err := enc.NewUTF8Reader(r)
	if err != nil {
		return nil, fmt.Errorf("detect encoding: %w", err)
	}

	raw, err := io.ReadAll(utf8r)
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}

	reader := csv.NewReader(strings.NewReader(string(raw)))
	reader.Comma = sniffComma(raw)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}

	profile, cols, headerIdx := detectProfile(rows)
	if profile == nil {
		return nil, ErrNoProfile
	}

	loc := p.Location
	if loc == nil {
		loc = time.UTC
	}

	return parseRows(profile, cols, rows[headerIdx+1:], headerIdx+1, loc)
}

// sniffComma picks ';' when the leading lines hold more semicolons than
// commas. Spreadsheets saved with a European locale use semicolons.
func sniffComma(raw []byte) rune {
	lines := strings.SplitN(string(raw), "\n", sniffLines+1)
	if len(lines) > sniffLines {
		lines = lines[:sniffLines]
	}

	var commas, semicolons int
	for _, line := range lines {
		commas += strings.Count(line, ",")
		semicolons += strings.Count(line, ";")
	}

	if semicolons > commas {
		return ';'
	}

	return ','
}

type colIndex map[string]int

func (c colIndex) get(row []string, name string) string {
	if name == "" {
		return ""
	}

	idx, ok := c[name]
	if !ok || idx >= len(row) {
		return ""
	}

	return strings.TrimSpace(row[idx])
}

func detectProfile(rows [][]string) (*Profile, colIndex, int) {
	for rowIdx, row := range rows {
		cols := make(colIndex)

		for i, cell := range row {
			name := strings.ToLower(strings.TrimSpace(cell))
			if name != "" {
				cols[name] = i
			}
		}

		for i := range profiles {
			if matchesProfile(&profiles[i], cols) {
				return &profiles[i], cols, rowIdx
			}
		}
	}

	return nil, nil, 0
}

func matchesProfile(p *Profile, cols colIndex) bool {
	for _, name := range p.requiredCols() {
		if _, ok := cols[name]; !ok {
			return false
		}
	}

	return true
}

func parseRows(p *Profile, cols colIndex, rows [][]string, headerRowNum int, loc *time.Location) ([]*sale.Sale, error) {
	var sales []*sale.Sale

	for i, row := range rows {
		rowNum := headerRowNum + i + 1

		if blank(row) {
			continue
		}

		s, err := parseRow(p, cols, row, loc)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", rowNum, err)
		}

		sales = append(sales, s)
	}

	return sales, nil
}

func parseRow(p *Profile, cols colIndex, row []string, loc *time.Location) (*sale.Sale, error) {
	date, err := parseDate(cols.get(row, p.DateCol), loc)
	if err != nil {
		return nil, err
	}

	productType, ok := resolve(catalog.ProductTypes, cols.get(row, p.ProductCol))
	if !ok {
		return nil, fmt.Errorf("unknown product type %q", cols.get(row, p.ProductCol))
	}

	payment, ok := resolve(catalog.PaymentMethods, cols.get(row, p.PaymentCol))
	if !ok {
		return nil, fmt.Errorf("unknown payment method %q", cols.get(row, p.PaymentCol))
	}

	design, _ := resolve(catalog.Designs, cols.get(row, p.DesignCol))
	if design == "" {
		return nil, errors.New("missing design")
	}

	price, err := parseMoney(cols.get(row, p.PriceCol))
	if err != nil {
		return nil, fmt.Errorf("price: %w", err)
	}

	item := sale.Item{
		ProductType:   productType,
		Design:        design,
		Price:         price,
		PaymentMethod: payment,
		Seller:        cols.get(row, p.SellerCol),
		Notes:         cols.get(row, p.NotesCol),
	}

	if productType != catalog.ProductSticker {
		item.Color, _ = resolve(catalog.Colors, cols.get(row, p.ColorCol))
		item.Size, _ = resolve(catalog.Sizes, cols.get(row, p.SizeCol))
	}

	if raw := cols.get(row, p.CogsCol); raw != "" {
		item.Cogs, err = parseMoney(raw)
		if err != nil {
			return nil, fmt.Errorf("cogs: %w", err)
		}
	} else {
		item.Cogs = catalog.Cogs(item.ProductType, item.Design, item.Size)
	}

	return &sale.Sale{Item: item, Date: date}, nil
}

// resolve maps a stored value or a display label onto the catalog value.
// Unknown input is returned as-is with ok false.
func resolve[T ~string](opts []catalog.Option[T], raw string) (T, bool) {
	for _, o := range opts {
		if strings.EqualFold(string(o.Value), raw) || strings.EqualFold(o.Label, raw) {
			return o.Value, true
		}
	}

	return T(raw), false
}

var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"1/2/2006 15:04:05",
	"1/2/2006 15:04",
	"1/2/2006 3:04:05 PM",
	"1/2/2006 3:04 PM",
	time.DateOnly,
	"1/2/2006",
}

func parseDate(s string, loc *time.Location) (time.Time, error) {
	if s == "" {
		return time.Time{}, errors.New("missing date")
	}

	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("unrecognised date %q", s)
}

func parseMoney(s string) (decimal.Decimal, error) {
	clean := strings.NewReplacer("$", "", ",", "", " ", "").Replace(s)
	if clean == "" {
		return decimal.Zero, errors.New("missing amount")
	}

	return decimal.NewFromString(clean)
}

func blank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}

	return true
}
