package catalog

import "github.com/shopspring/decimal"

// Variant is the COGS lookup key.
type Variant struct {
	ProductType ProductType
	Design      Design
	Size        Size
}

// garmentSizes is the column order of the rows in garmentCogs.
var garmentSizes = [6]Size{"small", "medium", "large", "xl", "xxl", "xxxl"}

var garmentCogs = []struct {
	design Design
	tshirt [6]string
	hoodie [6]string
}{
	{"doubt-not", [6]string{"9.43", "8.25", "8.08", "8.34", "8.32", "7.76"}, [6]string{"14.07", "16.08", "14.79", "17.82", "14.08", "0"}},
	{"child-of-god", [6]string{"8.90", "7.72", "7.55", "7.81", "7.79", "7.23"}, [6]string{"13.54", "15.55", "14.26", "17.29", "13.55", "0"}},
	{"line-upon-line", [6]string{"9.57", "8.39", "8.22", "8.48", "8.46", "7.90"}, [6]string{"14.21", "16.22", "14.93", "17.96", "14.22", "0"}},
	{"hands-of-god", [6]string{"9.43", "8.25", "8.08", "8.34", "8.32", "7.76"}, [6]string{"14.07", "16.08", "14.79", "17.82", "14.08", "0"}},
	{"endure-to-the-end", [6]string{"9.29", "8.11", "7.94", "8.20", "8.18", "7.62"}, [6]string{"13.93", "15.94", "14.65", "17.68", "13.94", "0"}},
	{"look-to-god", [6]string{"9.41", "8.23", "8.06", "8.32", "8.30", "7.74"}, [6]string{"14.05", "16.06", "14.77", "17.80", "14.06", "0"}},
	{"death-has-no-sting", [6]string{"9.57", "8.39", "8.22", "8.48", "8.46", "7.90"}, [6]string{"14.21", "16.22", "14.93", "17.96", "14.22", "0"}},
	{"king-of-kings", [6]string{"9.34", "8.16", "7.99", "8.25", "8.23", "7.67"}, [6]string{"13.98", "15.99", "14.70", "17.73", "13.99", "0"}},
	{"walk-with-me", [6]string{"9.32", "8.14", "7.97", "8.23", "8.21", "7.65"}, [6]string{"13.96", "15.50", "14.21", "26.56", "21.64", "0"}},
	{"feared-man-more-than-god", [6]string{"9.41", "8.23", "8.06", "8.32", "8.30", "7.74"}, [6]string{"14.05", "16.06", "14.77", "17.80", "14.06", "0"}},
	{"love-like-he-did", [6]string{"9.38", "8.20", "8.03", "8.29", "8.27", "7.71"}, [6]string{"14.02", "16.03", "14.74", "17.77", "14.03", "0"}},
}

var stickerCogs = map[Design]string{
	"endure-to-the-end": "0.29",
	"doubt-not":         "0.29",
}

// cogsTable is built once at init and never written afterwards.
var cogsTable = buildCogsTable()

func buildCogsTable() map[Variant]decimal.Decimal {
	table := make(map[Variant]decimal.Decimal, len(garmentCogs)*12+len(stickerCogs))

	for _, row := range garmentCogs {
		for i, size := range garmentSizes {
			table[Variant{ProductTShirt, row.design, size}] = decimal.RequireFromString(row.tshirt[i])
			table[Variant{ProductHoodie, row.design, size}] = decimal.RequireFromString(row.hoodie[i])
		}
	}

	for design, cost := range stickerCogs {
		table[Variant{ProductSticker, design, SizeOneSize}] = decimal.RequireFromString(cost)
	}

	return table
}

// NewVariant builds a lookup key, forcing the sticker size sentinel.
func NewVariant(p ProductType, d Design, s Size) Variant {
	if p == ProductSticker {
		s = SizeOneSize
	}

	return Variant{ProductType: p, Design: d, Size: s}
}

// LookupCogs returns the unit cost of the variant and whether the table knows it.
// A known variant may legitimately cost zero (3XL hoodies have no cost on file).
func LookupCogs(p ProductType, d Design, s Size) (decimal.Decimal, bool) {
	cost, ok := cogsTable[NewVariant(p, d, s)]
	if !ok {
		return decimal.Zero, false
	}

	return cost, true
}

// Cogs returns the unit cost of the variant, or zero when it is not on file.
func Cogs(p ProductType, d Design, s Size) decimal.Decimal {
	cost, _ := LookupCogs(p, d, s)
	return cost
}
