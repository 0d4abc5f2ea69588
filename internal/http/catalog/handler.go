package catalog

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/keystone-apparel/keystone/internal/catalog"
	"github.com/keystone-apparel/keystone/internal/pricing"
	"github.com/keystone-apparel/keystone/internal/sale"
)

// Handler serves the reference data and live price quotes for the register.
type Handler struct{}

func NewHandler() *Handler {
	return &Handler{}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/catalog", h.catalog)
	r.Post("/pricing/quote", h.quote)
}

type catalogResponse struct {
	ProductTypes   []catalog.Option[catalog.ProductType]   `json:"product_types"`
	Colors         []catalog.Option[catalog.Color]         `json:"colors"`
	Designs        []catalog.Option[catalog.Design]        `json:"designs"`
	StickerDesigns []catalog.Option[catalog.Design]        `json:"sticker_designs"`
	Sizes          []catalog.Option[catalog.Size]          `json:"sizes"`
	PaymentMethods []catalog.Option[catalog.PaymentMethod] `json:"payment_methods"`
	Bundles        []catalog.Option[pricing.Bundle]        `json:"bundles"`
	Sellers        []string                                `json:"sellers"`
}

func (h *Handler) catalog(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(catalogResponse{
		ProductTypes:   catalog.ProductTypes,
		Colors:         catalog.Colors,
		Designs:        catalog.Designs,
		StickerDesigns: catalog.DesignsFor(catalog.ProductSticker),
		Sizes:          catalog.Sizes,
		PaymentMethods: catalog.PaymentMethods,
		Bundles:        pricing.Bundles,
		Sellers:        catalog.Sellers,
	}); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type quoteResponse struct {
	Price          string  `json:"price"`
	Cogs           string  `json:"cogs"`
	CogsOnFile     bool    `json:"cogs_on_file"`
	SecondItemCogs *string `json:"second_item_cogs,omitempty"`
}

// quote prices a draft submission. Drafts are not validated so the register
// can show the price while the form is being filled in.
func (h *Handler) quote(w http.ResponseWriter, r *http.Request) {
	var sub sale.Submission
	if err := json.NewDecoder(r.Body).Decode(&sub); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	size := sub.Size
	if sub.ProductType == catalog.ProductSticker {
		size = ""
	}

	cogs, found := catalog.LookupCogs(sub.ProductType, sub.Design, size)

	resp := quoteResponse{
		Price:      pricing.Compute(sub.Quote()).StringFixed(2),
		Cogs:       cogs.StringFixed(2),
		CogsOnFile: found,
	}

	if sub.Bundle.Active() && sub.SecondItem != nil {
		second := catalog.Cogs(catalog.ProductTShirt, sub.SecondItem.Design, sub.SecondItem.Size).StringFixed(2)
		resp.SecondItemCogs = &second
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
