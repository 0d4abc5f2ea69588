package report_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keystone-apparel/keystone/internal/catalog"
	"github.com/keystone-apparel/keystone/internal/report"
	"github.com/keystone-apparel/keystone/internal/sale"
)

func TestSellerStats(t *testing.T) {
	at := report.DefaultEpoch

	bySeller := func(name, price string) *sale.Sale {
		s := sold(catalog.ProductTShirt, price, at)
		s.Item.Seller = name
		return s
	}

	stats := report.SellerStats([]*sale.Sale{
		bySeller("Katie", "9.99"),
		bySeller("Katie", "14.99"),
		bySeller("Juan", "49.99"),
		bySeller("", "9.99"),
		bySeller("Stranger", "9.99"),
	})

	require.Len(t, stats, len(catalog.Sellers))
	assert.Equal(t, "Juan", stats[0].Seller)
	assert.Equal(t, 1, stats[0].Sales)

	for _, st := range stats {
		switch st.Seller {
		case "Katie":
			assert.Equal(t, 2, st.Sales)
			assert.Equal(t, "24.98", st.Revenue.StringFixed(2))
		case "Juan":
		default:
			assert.Zero(t, st.Sales, st.Seller)
			assert.True(t, st.Revenue.IsZero())
		}
	}
}

func TestDesignStats(t *testing.T) {
	at := report.DefaultEpoch

	withDesign := func(pt catalog.ProductType, d catalog.Design) *sale.Sale {
		s := sold(pt, "9.99", at)
		s.Item.Design = d
		return s
	}

	stats := report.DesignStats([]*sale.Sale{
		withDesign(catalog.ProductTShirt, "king-of-kings"),
		withDesign(catalog.ProductHoodie, "king-of-kings"),
		withDesign(catalog.ProductSticker, "doubt-not"),
		withDesign(catalog.ProductTShirt, "retired-design"),
	})

	require.Len(t, stats, 3)
	assert.Equal(t, report.DesignStat{Design: "king-of-kings", Label: "King of Kings", Tshirts: 1, Hoodies: 1, Total: 2}, stats[0])
	assert.Equal(t, "Doubt Not", stats[1].Label)
	assert.Equal(t, 0, stats[1].Tshirts)
	assert.Equal(t, "retired-design", stats[2].Label)
}

func TestRevenueAndCogs(t *testing.T) {
	at := report.DefaultEpoch
	sales := []*sale.Sale{
		sold(catalog.ProductTShirt, "9.99", at),
		sold(catalog.ProductHoodie, "-7.01", at),
	}

	assert.Equal(t, "2.98", report.Revenue(sales).StringFixed(2))
	assert.True(t, report.Revenue(nil).IsZero())
	assert.True(t, report.Cogs(nil).IsZero())
	assert.True(t, report.Cogs(sales).Equal(sales[0].Item.Cogs.Add(sales[1].Item.Cogs)))
}
