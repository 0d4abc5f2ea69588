package keystone_test

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"

	"github.com/keystone-apparel/keystone/internal/catalog"
	"github.com/keystone-apparel/keystone/internal/importer/keystone"
)

func money(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestParser_Export(t *testing.T) {
	csv := `date,product_type,color,design,size,price,cogs,payment_method,seller,notes
2025-10-10T18:30:00Z,tshirt,black,doubt-not,small,9.99,9.43,card,Juan,
2025-10-10T18:31:00Z,sticker,,endure-to-the-end,,2.36,0.29,cash,,first sticker
`

	p := keystone.NewParser(time.UTC)
	sales, err := p.Parse(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, sales, 2)

	assert.Equal(t, time.Date(2025, 10, 10, 18, 30, 0, 0, time.UTC), sales[0].Date)
	assert.Equal(t, catalog.ProductTShirt, sales[0].Item.ProductType)
	assert.Equal(t, catalog.Color("black"), sales[0].Item.Color)
	assert.Equal(t, catalog.Size("small"), sales[0].Item.Size)
	assert.True(t, money("9.99").Equal(sales[0].Item.Price))
	assert.True(t, money("9.43").Equal(sales[0].Item.Cogs))
	assert.Equal(t, "Juan", sales[0].Item.Seller)

	assert.Equal(t, catalog.ProductSticker, sales[1].Item.ProductType)
	assert.Empty(t, sales[1].Item.Color)
	assert.Empty(t, sales[1].Item.Size)
	assert.Equal(t, catalog.PaymentCash, sales[1].Item.PaymentMethod)
	assert.Equal(t, "first sticker", sales[1].Item.Notes)
}

func TestParser_ReportLabels(t *testing.T) {
	csv := `Keystone sales
Exported by hand

Date;Product;Color;Design;Size;Price;Payment;Seller
10/11/2025 2:15 PM;T-Shirt;Green;King of Kings;2XL;$9.99;Card;Lydia
10/11/2025;Hoodie;Grey;Walk With Me;XL;"$49.99";Cash;
`

	loc, err := time.LoadLocation("America/Denver")
	require.NoError(t, err)

	p := keystone.NewParser(loc)
	sales, err := p.Parse(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, sales, 2)

	assert.Equal(t, time.Date(2025, 10, 11, 14, 15, 0, 0, loc), sales[0].Date)
	assert.Equal(t, catalog.Design("king-of-kings"), sales[0].Item.Design)
	assert.Equal(t, catalog.Size("xxl"), sales[0].Item.Size)
	assert.Equal(t, catalog.Color("green"), sales[0].Item.Color)
	// No COGS column: looked up from the catalog.
	assert.True(t, money("8.23").Equal(sales[0].Item.Cogs), sales[0].Item.Cogs.String())

	assert.Equal(t, catalog.ProductHoodie, sales[1].Item.ProductType)
	assert.True(t, money("49.99").Equal(sales[1].Item.Price))
	assert.True(t, money("26.56").Equal(sales[1].Item.Cogs))
	assert.Empty(t, sales[1].Item.Seller)
}

func TestParser_Windows1252(t *testing.T) {
	csv := "date,product_type,color,design,size,price,cogs,payment_method,seller,notes\n" +
		"2025-10-12 09:00:00,tshirt,pink,look-to-god,medium,9.99,,card,Katie,Café order\n"

	encoded, err := charmap.Windows1252.NewEncoder().Bytes([]byte(csv))
	require.NoError(t, err)

	p := keystone.NewParser(nil)
	sales, err := p.Parse(bytes.NewReader(encoded))
	require.NoError(t, err)
	require.Len(t, sales, 1)

	assert.Equal(t, "Café order", sales[0].Item.Notes)
	assert.Equal(t, time.UTC, sales[0].Date.Location())
	assert.True(t, money("8.23").Equal(sales[0].Item.Cogs))
}

func TestParser_UnknownDesignKept(t *testing.T) {
	csv := `date,product_type,color,design,size,price,cogs,payment_method,seller,notes
2025-10-12,tshirt,black,retired-design,large,9.99,,cash,,
`

	sales, err := keystone.NewParser(time.UTC).Parse(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, sales, 1)

	assert.Equal(t, catalog.Design("retired-design"), sales[0].Item.Design)
	assert.True(t, sales[0].Item.Cogs.IsZero())
}

func TestParser_Errors(t *testing.T) {
	tests := []struct {
		name    string
		csv     string
		wantErr string
	}{
		{
			name:    "NoHeader",
			csv:     "a,b,c\n1,2,3\n",
			wantErr: "no matching sales format",
		},
		{
			name: "BadDate",
			csv: "date,product_type,design,price,payment_method\n" +
				"yesterday,tshirt,doubt-not,9.99,card\n",
			wantErr: "row 2: unrecognised date",
		},
		{
			name: "UnknownProduct",
			csv: "date,product_type,design,price,payment_method\n" +
				"2025-10-12,mug,doubt-not,9.99,card\n",
			wantErr: "row 2: unknown product type",
		},
		{
			name: "UnknownPayment",
			csv: "date,product_type,design,price,payment_method\n" +
				"2025-10-12,tshirt,doubt-not,9.99,venmo\n",
			wantErr: "row 2: unknown payment method",
		},
		{
			name: "BadPrice",
			csv: "date,product_type,design,price,payment_method\n" +
				"2025-10-12,tshirt,doubt-not,\n" +
				"2025-10-12,tshirt,doubt-not,free,card\n",
			wantErr: "row 2:",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := keystone.NewParser(time.UTC).Parse(strings.NewReader(tt.csv))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestParser_SkipsBlankRows(t *testing.T) {
	csv := "date,product_type,design,price,payment_method\n" +
		"\n" +
		",,,,\n" +
		"2025-10-12,sticker,doubt-not,2.36,cash\n"

	sales, err := keystone.NewParser(time.UTC).Parse(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, sales, 1)
	assert.True(t, money("0.29").Equal(sales[0].Item.Cogs))
}
