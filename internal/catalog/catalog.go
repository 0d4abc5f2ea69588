package catalog

import "slices"

// ProductType is the kind of garment or item sold.
type ProductType string

const (
	ProductTShirt  ProductType = "tshirt"
	ProductHoodie  ProductType = "hoodie"
	ProductSticker ProductType = "sticker"
)

type (
	Color         string
	Design        string
	Size          string
	PaymentMethod string
)

// SizeOneSize is the only size a sticker comes in.
const SizeOneSize Size = "one-size"

const (
	PaymentCard PaymentMethod = "card"
	PaymentCash PaymentMethod = "cash"
)

// Option pairs a stored value with the label shown to operators.
type Option[T ~string] struct {
	Label string `json:"label"`
	Value T      `json:"value"`
}

var ProductTypes = []Option[ProductType]{
	{Label: "T-Shirt", Value: ProductTShirt},
	{Label: "Hoodie", Value: ProductHoodie},
	{Label: "Sticker", Value: ProductSticker},
}

var Colors = []Option[Color]{
	{Label: "Black", Value: "black"},
	{Label: "Grey", Value: "grey"},
	{Label: "Green", Value: "green"},
	{Label: "Brown", Value: "brown"},
	{Label: "Blue", Value: "blue"},
	{Label: "Pink", Value: "pink"},
}

var Designs = []Option[Design]{
	{Label: "Child of God", Value: "child-of-god"},
	{Label: "Doubt Not", Value: "doubt-not"},
	{Label: "Line Upon Line", Value: "line-upon-line"},
	{Label: "Death has No Sting", Value: "death-has-no-sting"},
	{Label: "Endure to the End", Value: "endure-to-the-end"},
	{Label: "Look to God", Value: "look-to-god"},
	{Label: "Hands of God", Value: "hands-of-god"},
	{Label: "King of Kings", Value: "king-of-kings"},
	{Label: "Walk With Me", Value: "walk-with-me"},
	{Label: "Feared Man More than God", Value: "feared-man-more-than-god"},
	{Label: "Love Like He Did", Value: "love-like-he-did"},
}

var Sizes = []Option[Size]{
	{Label: "Small", Value: "small"},
	{Label: "Medium", Value: "medium"},
	{Label: "Large", Value: "large"},
	{Label: "XL", Value: "xl"},
	{Label: "2XL", Value: "xxl"},
	{Label: "3XL", Value: "xxxl"},
}

var PaymentMethods = []Option[PaymentMethod]{
	{Label: "Card", Value: PaymentCard},
	{Label: "Cash", Value: PaymentCash},
}

// Sellers is the fixed roster of people allowed to ring up a sale.
var Sellers = []string{
	"Juan", "Lydia", "Corbyn", "Hailee", "Joseph", "Jason", "Anabella",
	"Cortland", "Diego", "Ally", "Kayla", "Makall", "Michael", "Price",
	"Katie", "Carter", "Jessica",
}

var stickerDesigns = []Design{"endure-to-the-end", "doubt-not"}

// DesignsFor returns the designs that can be printed on the given product type.
func DesignsFor(p ProductType) []Option[Design] {
	if p != ProductSticker {
		return Designs
	}

	out := make([]Option[Design], 0, len(stickerDesigns))
	for _, d := range Designs {
		if slices.Contains(stickerDesigns, d.Value) {
			out = append(out, d)
		}
	}

	return out
}

// DesignAvailable reports whether the design can be sold on the product type.
func DesignAvailable(p ProductType, d Design) bool {
	if p == ProductSticker {
		return slices.Contains(stickerDesigns, d)
	}

	return has(Designs, d)
}

func (p ProductType) Valid() bool { return has(ProductTypes, p) }
func (c Color) Valid() bool { return has(Colors, c) }
func (d Design) Valid() bool { return has(Designs, d) }
func (s Size) Valid() bool { return has(Sizes, s) }
func (m PaymentMethod) Valid() bool { return has(PaymentMethods, m) }
func IsSeller(name string) bool { return slices.Contains(Sellers, name) }
func (p ProductType) Label() string { return label(ProductTypes, p) }
func (d Design) Label() string { return label(Designs, d) }
func (m PaymentMethod) Label() string { return label(PaymentMethods, m) }

// Label returns the short size label; one-size stickers read "One Size".
func (s Size) Label() string {
	if s == SizeOneSize {
		return "One Size"
	}

	return label(Sizes, s)
}

func has[T ~string](opts []Option[T], v T) bool {
	for _, o := range opts {
		if o.Value == v {
			return true
		}
	}

	return false
}

// label echoes the raw key back when it is not part of the catalog.
func label[T ~string](opts []Option[T], v T) string {
	for _, o := range opts {
		if o.Value == v {
			return o.Label
		}
	}

	return string(v)
}
