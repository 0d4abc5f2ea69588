package presale_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/keystone-apparel/keystone/internal/catalog"
	"github.com/keystone-apparel/keystone/internal/pricing"
	"github.com/keystone-apparel/keystone/internal/presale"
	"github.com/keystone-apparel/keystone/internal/sale"
)

var fixedNow = time.Date(2025, 11, 2, 18, 45, 0, 0, time.UTC)

func clock() time.Time { return fixedNow }

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func pending(pt catalog.ProductType, price, cogs string) *presale.Presale {
	return &presale.Presale{
		ID: uuid.New(),
		Item: sale.Item{
			ProductType:   pt,
			Design:        "doubt-not",
			Price:         dec(price),
			Cogs:          dec(cogs),
			PaymentMethod: catalog.PaymentCard,
			Seller:        "Ally",
		},
		CreatedAt: fixedNow.AddDate(0, 0, -7),
	}
}

type mocks struct {
	presales *presale.MockRepository
	sales    *sale.MockRepository
}

func newService(t *testing.T) (*presale.Service, mocks) {
	t.Helper()

	ctrl := gomock.NewController(t)
	m := mocks{
		presales: presale.NewMockRepository(ctrl),
		sales:    sale.NewMockRepository(ctrl),
	}

	return presale.NewService(m.presales, m.sales, presale.WithClock(clock)), m
}

func TestService_Fulfill(t *testing.T) {
	t.Run("PromotesBatchWithOneTimestamp", func(t *testing.T) {
		svc, m := newService(t)

		batch := []*presale.Presale{
			pending(catalog.ProductTShirt, "9.99", "9.43"),
			pending(catalog.ProductHoodie, "49.99", "14.07"),
			pending(catalog.ProductSticker, "2.36", "0.29"),
		}
		ids := []uuid.UUID{batch[0].ID, batch[1].ID, batch[2].ID}

		var inserted []*sale.Sale

		gomock.InOrder(
			m.presales.EXPECT().GetPresales(gomock.Any(), ids).Return(batch, nil),
			m.sales.EXPECT().
				InsertSales(gomock.Any(), gomock.Len(3)).
				DoAndReturn(func(_ context.Context, sales []*sale.Sale) error {
					inserted = sales
					return nil
				}),
			m.presales.EXPECT().MarkSold(gomock.Any(), ids, fixedNow).Return(nil),
		)

		got, err := svc.Fulfill(context.Background(), ids)
		require.NoError(t, err)

		assert.Equal(t, fixedNow, got.FulfilledAt)
		require.Len(t, inserted, 3)

		for i, sl := range inserted {
			assert.Equal(t, fixedNow, sl.Date)
			assert.Equal(t, batch[i].Item, sl.Item)

			assert.True(t, batch[i].Sold)
			require.NotNil(t, batch[i].FulfilledDate)
			assert.Equal(t, fixedNow, *batch[i].FulfilledDate)
		}
	})

	t.Run("DuplicateIDsCollapse", func(t *testing.T) {
		svc, m := newService(t)

		p := pending(catalog.ProductTShirt, "9.99", "9.43")

		m.presales.EXPECT().GetPresales(gomock.Any(), []uuid.UUID{p.ID}).Return([]*presale.Presale{p}, nil)
		m.sales.EXPECT().InsertSales(gomock.Any(), gomock.Len(1)).Return(nil)
		m.presales.EXPECT().MarkSold(gomock.Any(), []uuid.UUID{p.ID}, fixedNow).Return(nil)

		got, err := svc.Fulfill(context.Background(), []uuid.UUID{p.ID, p.ID})
		require.NoError(t, err)
		assert.Len(t, got.Sales, 1)
	})

	t.Run("Empty", func(t *testing.T) {
		svc, _ := newService(t)

		_, err := svc.Fulfill(context.Background(), nil)
		assert.ErrorIs(t, err, presale.ErrNoneChosen)
	})

	t.Run("UnknownID", func(t *testing.T) {
		svc, m := newService(t)

		p := pending(catalog.ProductTShirt, "9.99", "9.43")
		missing := uuid.New()

		m.presales.EXPECT().GetPresales(gomock.Any(), gomock.Any()).Return([]*presale.Presale{p}, nil)

		_, err := svc.Fulfill(context.Background(), []uuid.UUID{p.ID, missing})
		assert.ErrorIs(t, err, presale.ErrNotFound)
	})

	t.Run("AlreadySold", func(t *testing.T) {
		svc, m := newService(t)

		p := pending(catalog.ProductTShirt, "9.99", "9.43")
		p.Sold = true

		m.presales.EXPECT().GetPresales(gomock.Any(), gomock.Any()).Return([]*presale.Presale{p}, nil)

		_, err := svc.Fulfill(context.Background(), []uuid.UUID{p.ID})
		assert.ErrorIs(t, err, presale.ErrNotPending)
	})

	t.Run("InsertFailsLeavesPresalesPending", func(t *testing.T) {
		svc, m := newService(t)

		p := pending(catalog.ProductTShirt, "9.99", "9.43")

		m.presales.EXPECT().GetPresales(gomock.Any(), gomock.Any()).Return([]*presale.Presale{p}, nil)
		m.sales.EXPECT().InsertSales(gomock.Any(), gomock.Any()).Return(errors.New("db down"))

		_, err := svc.Fulfill(context.Background(), []uuid.UUID{p.ID})
		require.Error(t, err)
		assert.NotErrorIs(t, err, presale.ErrPartialFulfillment)
		assert.False(t, p.Sold)
	})

	t.Run("MarkFailsIsPartial", func(t *testing.T) {
		svc, m := newService(t)

		p := pending(catalog.ProductTShirt, "9.99", "9.43")
		cause := errors.New("lock timeout")

		m.presales.EXPECT().GetPresales(gomock.Any(), gomock.Any()).Return([]*presale.Presale{p}, nil)
		m.sales.EXPECT().InsertSales(gomock.Any(), gomock.Any()).Return(nil)
		m.presales.EXPECT().MarkSold(gomock.Any(), gomock.Any(), gomock.Any()).Return(cause)

		_, err := svc.Fulfill(context.Background(), []uuid.UUID{p.ID})
		assert.ErrorIs(t, err, presale.ErrPartialFulfillment)
		assert.ErrorIs(t, err, cause)
	})
}

func TestService_Create(t *testing.T) {
	svc, m := newService(t)

	sub := sale.Submission{
		ProductType:   catalog.ProductHoodie,
		Color:         "black",
		Design:        "king-of-kings",
		Size:          "xxl",
		PaymentMethod: catalog.PaymentCash,
		Bundle:        pricing.BundleBogoHoodie,
		SecondItem:    &sale.SecondItem{Color: "grey", Design: "look-to-god", Size: "small"},
	}

	m.presales.EXPECT().InsertPresales(gomock.Any(), gomock.Len(2)).Return(nil)

	got, err := svc.Create(context.Background(), sub)
	require.NoError(t, err)
	require.Len(t, got, 2)

	for _, p := range got {
		assert.Equal(t, fixedNow, p.CreatedAt)
		assert.False(t, p.Sold)
		assert.Nil(t, p.FulfilledDate)
	}

	assert.True(t, dec("49.99").Equal(got[0].Item.Price))
	assert.True(t, got[1].Item.Price.IsZero())
}

func TestService_List(t *testing.T) {
	open := pending(catalog.ProductTShirt, "9.99", "9.43")
	done := pending(catalog.ProductHoodie, "49.99", "14.07")
	done.Sold = true

	tests := []struct {
		name   string
		status presale.Status
		want   []*presale.Presale
	}{
		{name: "All", status: presale.StatusAll, want: []*presale.Presale{done, open}},
		{name: "Pending", status: presale.StatusPending, want: []*presale.Presale{open}},
		{name: "Sold", status: presale.StatusSold, want: []*presale.Presale{done}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, m := newService(t)
			m.presales.EXPECT().ListPresales(gomock.Any()).Return([]*presale.Presale{done, open}, nil)

			got, err := svc.List(context.Background(), tt.status)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestService_Financials(t *testing.T) {
	svc, m := newService(t)

	sold := pending(catalog.ProductHoodie, "49.99", "14.07")
	sold.Sold = true

	m.presales.EXPECT().ListPresales(gomock.Any()).Return([]*presale.Presale{
		pending(catalog.ProductTShirt, "9.99", "9.43"),
		pending(catalog.ProductHoodie, "34.99", "16.08"),
		sold,
	}, nil)

	got, err := svc.Financials(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, got.Pending)
	assert.True(t, dec("25.51").Equal(got.UnusedCogs), got.UnusedCogs.String())
	assert.True(t, dec("44.98").Equal(got.UnearnedRevenue), got.UnearnedRevenue.String())
}
