package sale

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/keystone-apparel/keystone/internal/catalog"
	"github.com/keystone-apparel/keystone/internal/pricing"
)

// Submission is one register entry: a product, its promotions and, for bundles,
// the free second t-shirt. It expands into one or two items.
type Submission struct {
	ProductType   catalog.ProductType   `json:"product_type" validate:"required,product"`
	Color         catalog.Color         `json:"color" validate:"required_unless=ProductType sticker,omitempty,color"`
	Design        catalog.Design        `json:"design" validate:"required,design"`
	Size          catalog.Size          `json:"size" validate:"required_unless=ProductType sticker,omitempty,size"`
	PaymentMethod catalog.PaymentMethod `json:"payment_method" validate:"required,payment"`
	Seller        string                `json:"seller" validate:"omitempty,seller"`
	Notes         string                `json:"notes" validate:"max=1000"`
	Discounts     pricing.Discounts     `json:"discounts"`
	Bundle        pricing.Bundle        `json:"bundle" validate:"omitempty,bundle"`
	SecondItem    *SecondItem           `json:"second_item"`
}

// SecondItem is the free t-shirt of a bundle.
type SecondItem struct {
	Color  catalog.Color  `json:"color" validate:"omitempty,color"`
	Design catalog.Design `json:"design" validate:"omitempty,design"`
	Size   catalog.Size   `json:"size" validate:"omitempty,size"`
}

func (s *SecondItem) complete() bool {
	return s != nil && s.Color != "" && s.Design != "" && s.Size != ""
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	tags := map[string]func(string) bool{
		"product": func(s string) bool { return catalog.ProductType(s).Valid() },
		"color":   func(s string) bool { return catalog.Color(s).Valid() },
		"design":  func(s string) bool { return catalog.Design(s).Valid() },
		"size":    func(s string) bool { return catalog.Size(s).Valid() },
		"payment": func(s string) bool { return catalog.PaymentMethod(s).Valid() },
		"seller":  catalog.IsSeller,
		"bundle":  func(s string) bool { return pricing.Bundle(s).Valid() },
	}

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}

		return name
	})

	for tag, check := range tags {
		check := check
		if err := v.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
			return check(fl.Field().String())
		}); err != nil {
			panic(fmt.Sprintf("registering %s validation: %v", tag, err))
		}
	}

	return v
}

// Validate checks the submission before any record is built.
func (s Submission) Validate() error {
	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("%w: %s", ErrValidation, describe(err))
	}

	if !catalog.DesignAvailable(s.ProductType, s.Design) {
		return fmt.Errorf("%w: design %s is not available as a %s", ErrValidation, s.Design, s.ProductType)
	}

	switch s.Bundle {
	case pricing.BundleNone:
		return nil
	case pricing.BundleTwoTshirts, pricing.BundleTwoTshirtsSale:
		if s.ProductType != catalog.ProductTShirt {
			return fmt.Errorf("%w: bundle %s needs a t-shirt", ErrValidation, s.Bundle)
		}
	case pricing.BundleBogoHoodie:
		if s.ProductType != catalog.ProductHoodie {
			return fmt.Errorf("%w: bundle %s needs a hoodie", ErrValidation, s.Bundle)
		}
	}

	if !s.SecondItem.complete() {
		return ErrIncompleteBundle
	}

	return nil
}

func describe(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		if fe.Tag() == "required" || fe.Tag() == "required_unless" {
			msgs = append(msgs, fe.Field()+" is required")
			continue
		}

		msgs = append(msgs, fmt.Sprintf("%s %q is not valid", fe.Field(), fe.Value()))
	}

	return strings.Join(msgs, ", ")
}

// Quote returns the pricing input of the submission.
func (s Submission) Quote() pricing.Quote {
	return pricing.Quote{
		ProductType:   s.ProductType,
		PaymentMethod: s.PaymentMethod,
		Discounts:     s.Discounts,
		Bundle:        s.Bundle,
	}
}

// Items validates the submission and expands it into priced line items.
// Stickers drop color and size. A bundle adds a free t-shirt that shares
// payment, seller and notes with the first item.
func (s Submission) Items() ([]Item, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}

	first := Item{
		ProductType:   s.ProductType,
		Color:         s.Color,
		Design:        s.Design,
		Size:          s.Size,
		Price:         pricing.Compute(s.Quote()),
		PaymentMethod: s.PaymentMethod,
		Seller:        s.Seller,
		Notes:         strings.TrimSpace(s.Notes),
	}

	if first.ProductType == catalog.ProductSticker {
		first.Color = ""
		first.Size = ""
	}

	first.Cogs = catalog.Cogs(first.ProductType, first.Design, first.Size)

	if !s.Bundle.Active() {
		return []Item{first}, nil
	}

	second := first
	second.ProductType = catalog.ProductTShirt
	second.Color = s.SecondItem.Color
	second.Design = s.SecondItem.Design
	second.Size = s.SecondItem.Size
	second.Price = decimal.Zero
	second.Cogs = catalog.Cogs(catalog.ProductTShirt, second.Design, second.Size)

	return []Item{first, second}, nil
}

// NewSales stamps items with a shared transaction date.
func NewSales(items []Item, at time.Time) []*Sale {
	sales := make([]*Sale, len(items))
	for i, it := range items {
		sales[i] = &Sale{Item: it, Date: at}
	}

	return sales
}
