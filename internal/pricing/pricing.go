// Package pricing computes the unit price of a single register submission
// from the product, the payment method and the active promotions.
package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/keystone-apparel/keystone/internal/catalog"
)

// Bundle is the multi-item promotion attached to a submission. At most one can
// be active, so it is modelled as a single value rather than separate toggles.
type Bundle string

const (
	BundleNone Bundle = ""
	// BundleTwoTshirts is two t-shirts for 34.99.
	BundleTwoTshirts Bundle = "two-tshirts"
	// BundleTwoTshirtsSale is two t-shirts for 24.99.
	BundleTwoTshirtsSale Bundle = "two-tshirts-sale"
	// BundleBogoHoodie is a hoodie with a free t-shirt.
	BundleBogoHoodie Bundle = "bogo-hoodie"
)

var Bundles = []catalog.Option[Bundle]{
	{Label: "2 T-Shirts for $34.99", Value: BundleTwoTshirts},
	{Label: "2 T-Shirts for $24.99", Value: BundleTwoTshirtsSale},
	{Label: "BOGO Hoodie + T-Shirt", Value: BundleBogoHoodie},
}

func (b Bundle) Valid() bool {
	if b == BundleNone {
		return true
	}

	for _, o := range Bundles {
		if o.Value == b {
			return true
		}
	}

	return false
}

// Active reports whether the bundle adds a free second item.
func (b Bundle) Active() bool { return b != BundleNone }

// Discounts holds the promotion toggles for one submission.
type Discounts struct {
	FlatTenOffTshirt      bool `json:"flat_ten_off_tshirt"`
	ThirtyPercentOff      bool `json:"thirty_percent_off"`
	FiftyPercentOffHoodie bool `json:"fifty_percent_off_hoodie"`
	Small                 bool `json:"small"`
	Large                 bool `json:"large"`
}

// Quote is everything the price depends on.
type Quote struct {
	ProductType   catalog.ProductType
	PaymentMethod catalog.PaymentMethod
	Discounts     Discounts
	Bundle        Bundle
}

var (
	stickerPrice       = decimal.RequireFromString("2.36")
	flatTenTshirtPrice = decimal.RequireFromString("14.99")
	thirtyTshirtPrice  = decimal.RequireFromString("17.50")
	thirtyHoodiePrice  = decimal.RequireFromString("34.99")
	fiftyHoodiePrice   = decimal.RequireFromString("24.99")
	twoTshirtsPrice    = decimal.RequireFromString("34.99")
	twoTshirtsSale     = decimal.RequireFromString("24.99")
	tshirtPrice        = decimal.RequireFromString("9.99")
	hoodiePrice        = decimal.RequireFromString("49.99")
	smallDiscount      = decimal.RequireFromString("2.00")
	largeDiscount      = decimal.RequireFromString("15.00")
)

// Compute returns the unit price for the quote. The first matching rule wins;
// the flat $2/$15 discounts only apply to the base and bundle prices.
// The result is not clamped: stacking both discounts on a 9.99 t-shirt is negative.
func Compute(q Quote) decimal.Decimal {
	paid := q.PaymentMethod != ""
	pt := q.ProductType
	d := q.Discounts

	switch {
	case pt == catalog.ProductSticker && paid:
		return stickerPrice
	case d.FlatTenOffTshirt && pt == catalog.ProductTShirt && paid:
		return flatTenTshirtPrice
	case d.ThirtyPercentOff && pt == catalog.ProductTShirt && paid:
		return thirtyTshirtPrice
	case d.ThirtyPercentOff && pt == catalog.ProductHoodie && paid:
		return thirtyHoodiePrice
	case d.FiftyPercentOffHoodie && pt == catalog.ProductHoodie && paid:
		return fiftyHoodiePrice
	}

	total := decimal.Zero
	if d.Small {
		total = total.Add(smallDiscount)
	}

	if d.Large {
		total = total.Add(largeDiscount)
	}

	switch {
	case q.Bundle == BundleTwoTshirts:
		return twoTshirtsPrice.Sub(total)
	case q.Bundle == BundleTwoTshirtsSale:
		return twoTshirtsSale.Sub(total)
	case q.Bundle == BundleBogoHoodie && pt == catalog.ProductHoodie:
		return hoodiePrice.Sub(total)
	case pt == catalog.ProductTShirt && paid:
		return tshirtPrice.Sub(total)
	case pt == catalog.ProductHoodie && paid:
		return hoodiePrice.Sub(total)
	}

	return decimal.Zero
}
