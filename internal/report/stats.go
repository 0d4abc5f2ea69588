package report

import (
	"cmp"
	"slices"

	"github.com/shopspring/decimal"

	"github.com/keystone-apparel/keystone/internal/catalog"
	"github.com/keystone-apparel/keystone/internal/sale"
)

type SellerStat struct {
	Seller  string          `json:"seller"`
	Sales   int             `json:"sales"`
	Revenue decimal.Decimal `json:"revenue"`
}

// SellerStats counts sales for every seller on the roster, in roster order.
// Sales without a seller, or with one not on the roster, are not counted.
func SellerStats(sales []*sale.Sale) []SellerStat {
	stats := make([]SellerStat, len(catalog.Sellers))
	index := make(map[string]int, len(catalog.Sellers))

	for i, name := range catalog.Sellers {
		stats[i] = SellerStat{Seller: name, Revenue: decimal.Zero}
		index[name] = i
	}

	for _, s := range sales {
		i, ok := index[s.Item.Seller]
		if !ok {
			continue
		}

		stats[i].Sales++
		stats[i].Revenue = stats[i].Revenue.Add(s.Item.Price)
	}

	return stats
}

type DesignStat struct {
	Design  catalog.Design `json:"design"`
	Label   string         `json:"label"`
	Tshirts int            `json:"tshirts"`
	Hoodies int            `json:"hoodies"`
	Total   int            `json:"total"`
}

// DesignStats counts sales per design, most sold first. Designs missing from
// the catalog are reported under their raw key.
func DesignStats(sales []*sale.Sale) []DesignStat {
	byDesign := make(map[catalog.Design]*DesignStat)

	for _, s := range sales {
		d := s.Item.Design

		st, ok := byDesign[d]
		if !ok {
			st = &DesignStat{Design: d, Label: d.Label()}
			byDesign[d] = st
		}

		st.Total++

		switch s.Item.ProductType {
		case catalog.ProductTShirt:
			st.Tshirts++
		case catalog.ProductHoodie:
			st.Hoodies++
		}
	}

	stats := make([]DesignStat, 0, len(byDesign))
	for _, st := range byDesign {
		stats = append(stats, *st)
	}

	slices.SortFunc(stats, func(a, b DesignStat) int {
		if c := cmp.Compare(b.Total, a.Total); c != 0 {
			return c
		}

		return cmp.Compare(a.Label, b.Label)
	})

	return stats
}

// Revenue sums the price of sales.
func Revenue(sales []*sale.Sale) decimal.Decimal {
	total := decimal.Zero
	for _, s := range sales {
		total = total.Add(s.Item.Price)
	}

	return total
}

// Cogs sums the unit cost of sales.
func Cogs(sales []*sale.Sale) decimal.Decimal {
	total := decimal.Zero
	for _, s := range sales {
		total = total.Add(s.Item.Cogs)
	}

	return total
}
