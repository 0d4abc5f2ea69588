package importer_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keystone-apparel/keystone/internal/catalog"
	"github.com/keystone-apparel/keystone/internal/importer"
)

func TestService_Import(t *testing.T) {
	svc := importer.NewService(time.UTC)

	csv := "date,product_type,design,price,payment_method\n2025-10-12,sticker,doubt-not,2.36,cash\n"
	sales, err := svc.Import(importer.SourceCSV, strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, sales, 1)
	assert.Equal(t, catalog.ProductSticker, sales[0].Item.ProductType)

	sales, err = svc.Import("", strings.NewReader(csv))
	require.NoError(t, err)
	assert.Len(t, sales, 1)

	dump := `{"data":[{"product_type":"hoodie","design":"walk-with-me","price":49.99,"cogs":26.56,"payment_method":"card","date":"2025-10-12T10:00:00Z"}],"nextId":2}`
	sales, err = svc.Import(importer.SourceLegacy, strings.NewReader(dump))
	require.NoError(t, err)
	require.Len(t, sales, 1)
	assert.Equal(t, catalog.ProductHoodie, sales[0].Item.ProductType)

	_, err = svc.Import("xlsx", strings.NewReader(""))
	assert.ErrorContains(t, err, "unknown source")
}
