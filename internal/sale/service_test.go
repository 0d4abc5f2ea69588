package sale_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/keystone-apparel/keystone/internal/catalog"
	"github.com/keystone-apparel/keystone/internal/pricing"
	"github.com/keystone-apparel/keystone/internal/sale"
)

var fixedNow = time.Date(2025, 10, 14, 15, 30, 0, 0, time.UTC)

func clock() time.Time { return fixedNow }

func TestService_Register(t *testing.T) {
	type testCase struct {
		name      string
		sub       sale.Submission
		setupMock func(m *sale.MockRepository)
		wantLen   int
		wantErr   error
	}

	bundle := tshirt()
	bundle.Bundle = pricing.BundleTwoTshirts
	bundle.SecondItem = &sale.SecondItem{Color: "pink", Design: "doubt-not", Size: "small"}

	tests := []testCase{
		{
			name: "Single",
			sub:  tshirt(),
			setupMock: func(m *sale.MockRepository) {
				m.EXPECT().
					InsertSales(gomock.Any(), gomock.Len(1)).
					DoAndReturn(func(_ context.Context, sales []*sale.Sale) error {
						for _, s := range sales {
							s.ID = uuid.New()
						}
						return nil
					})
			},
			wantLen: 1,
		},
		{
			name: "BundleSharesTimestamp",
			sub:  bundle,
			setupMock: func(m *sale.MockRepository) {
				m.EXPECT().
					InsertSales(gomock.Any(), gomock.Len(2)).
					DoAndReturn(func(_ context.Context, sales []*sale.Sale) error {
						for _, s := range sales {
							assert.Equal(t, fixedNow, s.Date)
						}
						return nil
					})
			},
			wantLen: 2,
		},
		{
			name:    "ValidationSkipsStorage",
			sub:     sale.Submission{ProductType: catalog.ProductTShirt},
			wantErr: sale.ErrValidation,
		},
		{
			name: "RepoError",
			sub:  tshirt(),
			setupMock: func(m *sale.MockRepository) {
				m.EXPECT().InsertSales(gomock.Any(), gomock.Any()).Return(errors.New("db error"))
			},
			wantErr: errors.New("db error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := sale.NewMockRepository(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			svc := sale.NewService(repo, sale.WithClock(clock))
			got, err := svc.Register(context.Background(), tt.sub)

			if tt.wantErr != nil {
				assert.Error(t, err)
				assert.Nil(t, got)

				if errors.Is(tt.wantErr, sale.ErrValidation) {
					assert.ErrorIs(t, err, sale.ErrValidation)
				}

				return
			}

			require.NoError(t, err)
			assert.Len(t, got, tt.wantLen)
		})
	}
}

func TestService_ImportBatch(t *testing.T) {
	at := time.Date(2025, 10, 11, 12, 0, 0, 0, time.UTC)

	mk := func(pt catalog.ProductType, price string, date time.Time) *sale.Sale {
		return &sale.Sale{
			Item: sale.Item{ProductType: pt, Design: "doubt-not", Price: dec(price), PaymentMethod: catalog.PaymentCash},
			Date: date,
		}
	}

	t.Run("Empty", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc := sale.NewService(sale.NewMockRepository(ctrl))

		res, err := svc.ImportBatch(context.Background(), nil)
		require.NoError(t, err)
		assert.Empty(t, res.Imported)
	})

	t.Run("SkipsExisting", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := sale.NewMockRepository(ctrl)

		dup := mk(catalog.ProductTShirt, "9.99", at)
		fresh := mk(catalog.ProductHoodie, "49.99", at.Add(time.Hour))

		repo.EXPECT().
			ListSales(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, f sale.ListFilter) ([]*sale.Sale, error) {
				assert.Equal(t, at, *f.From)
				assert.Equal(t, at.Add(time.Hour+time.Second), *f.To)

				stored := mk(catalog.ProductTShirt, "9.990", at.Add(300*time.Millisecond))
				stored.ID = uuid.New()

				return []*sale.Sale{stored}, nil
			})
		repo.EXPECT().InsertSales(gomock.Any(), []*sale.Sale{fresh}).Return(nil)

		svc := sale.NewService(repo)
		res, err := svc.ImportBatch(context.Background(), []*sale.Sale{dup, fresh})
		require.NoError(t, err)

		assert.Equal(t, []*sale.Sale{fresh}, res.Imported)
		assert.Equal(t, []*sale.Sale{dup}, res.Duplicates)
	})

	t.Run("AllDuplicatesSkipsInsert", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := sale.NewMockRepository(ctrl)

		dup := mk(catalog.ProductTShirt, "9.99", at)
		repo.EXPECT().ListSales(gomock.Any(), gomock.Any()).Return([]*sale.Sale{mk(catalog.ProductTShirt, "9.99", at)}, nil)

		svc := sale.NewService(repo)
		res, err := svc.ImportBatch(context.Background(), []*sale.Sale{dup})
		require.NoError(t, err)
		assert.Empty(t, res.Imported)
		assert.Len(t, res.Duplicates, 1)
	})

	t.Run("ListError", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := sale.NewMockRepository(ctrl)
		repo.EXPECT().ListSales(gomock.Any(), gomock.Any()).Return(nil, errors.New("boom"))

		svc := sale.NewService(repo)
		_, err := svc.ImportBatch(context.Background(), []*sale.Sale{mk(catalog.ProductTShirt, "9.99", at)})
		assert.Error(t, err)
	})
}

func TestDayFilter(t *testing.T) {
	loc := time.FixedZone("MDT", -6*60*60)
	f := sale.DayFilter(time.Date(2025, 10, 15, 3, 0, 0, 0, time.UTC), loc)

	assert.Equal(t, time.Date(2025, 10, 14, 0, 0, 0, 0, loc), *f.From)
	assert.Equal(t, time.Date(2025, 10, 15, 0, 0, 0, 0, loc), *f.To)
}
