package view

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keystone-apparel/keystone/internal/catalog"
	"github.com/keystone-apparel/keystone/internal/pricing"
)

func TestRegisterDraft_Submission(t *testing.T) {
	d := &registerDraft{
		productType:  "hoodie",
		color:        "grey",
		design:       "walk-with-me",
		size:         "xl",
		payment:      "card",
		discounts:    []string{discountSmall},
		bundle:       pricing.BundleBogoHoodie,
		secondColor:  "black",
		secondDesign: "doubt-not",
		secondSize:   "small",
	}

	sub := d.submission()
	assert.Equal(t, catalog.ProductHoodie, sub.ProductType)
	assert.True(t, sub.Discounts.Small)
	assert.False(t, sub.Discounts.Large)
	require.NotNil(t, sub.SecondItem)
	assert.Equal(t, catalog.Design("doubt-not"), sub.SecondItem.Design)
	assert.Equal(t, "47.99", pricing.Compute(sub.Quote()).StringFixed(2))

	items, err := sub.Items()
	require.NoError(t, err)
	assert.Len(t, items, 2)
}

func TestRegisterDraft_NoBundleHasNoSecondItem(t *testing.T) {
	d := &registerDraft{productType: "sticker", design: "doubt-not", payment: "cash"}

	sub := d.submission()
	assert.Nil(t, sub.SecondItem)
	assert.Equal(t, "2.36", pricing.Compute(sub.Quote()).StringFixed(2))
}

func TestBundleOptions(t *testing.T) {
	opts := bundleOptions()
	require.Len(t, opts, len(pricing.Bundles)+1)
	assert.Equal(t, pricing.BundleNone, opts[0].Value)

	for i, b := range pricing.Bundles {
		assert.Equal(t, b.Value, opts[i+1].Value)
	}
}
