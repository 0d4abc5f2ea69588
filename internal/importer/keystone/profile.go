package keystone

// Profile describes the column layout of a sales CSV. Header names are
// matched case-insensitively.
type Profile struct {
	Name       string
	DateCol    string
	ProductCol string
	ColorCol   string
	DesignCol  string
	SizeCol    string
	PriceCol   string
	CogsCol    string
	PaymentCol string
	SellerCol  string
	NotesCol   string
}

// requiredCols are the columns a header must contain to match the profile.
// Color, size, COGS, seller and notes may be absent.
func (p Profile) requiredCols() []string {
	return []string{p.DateCol, p.ProductCol, p.DesignCol, p.PriceCol, p.PaymentCol}
}

// profiles are tried in order; the first whose required columns are all
// present wins.
var profiles = []Profile{
	{
		Name:       "export",
		DateCol:    "date",
		ProductCol: "product_type",
		ColorCol:   "color",
		DesignCol:  "design",
		SizeCol:    "size",
		PriceCol:   "price",
		CogsCol:    "cogs",
		PaymentCol: "payment_method",
		SellerCol:  "seller",
		NotesCol:   "notes",
	},
	{
		Name:       "report",
		DateCol:    "date",
		ProductCol: "product",
		ColorCol:   "color",
		DesignCol:  "design",
		SizeCol:    "size",
		PriceCol:   "price",
		CogsCol:    "cogs",
		PaymentCol: "payment",
		SellerCol:  "seller",
		NotesCol:   "notes",
	},
}
