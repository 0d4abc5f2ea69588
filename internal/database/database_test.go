package database_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keystone-apparel/keystone/internal/catalog"
	"github.com/keystone-apparel/keystone/internal/database"
	"github.com/keystone-apparel/keystone/internal/presale"
	presaleStore "github.com/keystone-apparel/keystone/internal/presale/store"
	"github.com/keystone-apparel/keystone/internal/sale"
	saleStore "github.com/keystone-apparel/keystone/internal/sale/store"
)

func TestNew_UnsupportedDriver(t *testing.T) {
	_, err := database.New("mysql", "")
	assert.Error(t, err)
}

func TestSQLiteRoundTrip(t *testing.T) {
	ctx := context.Background()

	db, err := database.New("sqlite", "file::memory:")
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, database.Migrate(ctx, db, "sqlite"))
	require.NoError(t, database.Migrate(ctx, db, "sqlite"), "schema bootstrap is repeatable")

	sales := saleStore.New(db)
	presales := presaleStore.New(db)

	day := time.Date(2025, 10, 14, 0, 0, 0, 0, time.UTC)

	err = sales.InsertSales(ctx, []*sale.Sale{
		{
			Item: sale.Item{
				ProductType: catalog.ProductTShirt, Color: "black", Design: "doubt-not", Size: "small",
				Price: decimal.RequireFromString("9.99"), Cogs: decimal.RequireFromString("9.43"),
				PaymentMethod: catalog.PaymentCard, Seller: "Carter",
			},
			Date: day.Add(10 * time.Hour),
		},
		{
			Item: sale.Item{
				ProductType: catalog.ProductSticker, Design: "doubt-not",
				Price: decimal.RequireFromString("2.36"), Cogs: decimal.RequireFromString("0.29"),
				PaymentMethod: catalog.PaymentCash,
			},
			Date: day.Add(26 * time.Hour),
		},
	})
	require.NoError(t, err)

	next := day.AddDate(0, 0, 1)

	got, err := sales.ListSales(ctx, sale.ListFilter{From: &day, To: &next})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Carter", got[0].Item.Seller)
	assert.True(t, decimal.RequireFromString("9.99").Equal(got[0].Item.Price))
	assert.True(t, day.Add(10*time.Hour).Equal(got[0].Date))

	all, err := sales.ListSales(ctx, sale.ListFilter{})
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Empty(t, all[1].Item.Color)
	assert.Empty(t, all[1].Item.Size)

	p := &presale.Presale{
		Item: sale.Item{
			ProductType: catalog.ProductHoodie, Color: "green", Design: "look-to-god", Size: "medium",
			Price: decimal.RequireFromString("49.99"), Cogs: decimal.RequireFromString("16.06"),
			PaymentMethod: catalog.PaymentCard,
		},
		CreatedAt: day,
	}
	require.NoError(t, presales.InsertPresales(ctx, []*presale.Presale{p}))

	at := day.Add(48 * time.Hour)
	require.NoError(t, presales.MarkSold(ctx, []uuid.UUID{p.ID}, at))
	assert.ErrorIs(t, presales.MarkSold(ctx, []uuid.UUID{p.ID}, at.Add(time.Hour)), presale.ErrNotPending)

	loaded, err := presales.GetPresales(ctx, []uuid.UUID{p.ID, uuid.New()})
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.True(t, loaded[0].Sold)
	require.NotNil(t, loaded[0].FulfilledDate)
	assert.True(t, at.Equal(*loaded[0].FulfilledDate))
}
