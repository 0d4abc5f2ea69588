package sale

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/keystone-apparel/keystone/internal/catalog"
)

var (
	ErrValidation       = errors.New("validation failed")
	ErrIncompleteBundle = errors.New("please fill in all fields for the second item")
)

// Item holds the line fields shared by sales and presales.
// Color and Size are empty for stickers and stored as NULL.
type Item struct {
	ProductType   catalog.ProductType
	Color         catalog.Color
	Design        catalog.Design
	Size          catalog.Size
	Price         decimal.Decimal
	Cogs          decimal.Decimal
	PaymentMethod catalog.PaymentMethod
	Seller        string
	Notes         string
}

// Sale is a completed transaction. Sales are never updated after insert.
type Sale struct {
	ID        uuid.UUID
	Item      Item
	Date      time.Time
	CreatedAt time.Time
}
