package sale

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/keystone-apparel/keystone/internal/http/dto"
	"github.com/keystone-apparel/keystone/internal/sale"
)

// Invalidator drops cached reports after a write.
type Invalidator interface {
	Invalidate(ctx context.Context)
}

type Handler struct {
	svc     *sale.Service
	reports Invalidator
	loc     *time.Location
}

func NewHandler(svc *sale.Service, reports Invalidator, loc *time.Location) *Handler {
	if loc == nil {
		loc = time.UTC
	}

	return &Handler{svc: svc, reports: reports, loc: loc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
}

type salesResponse struct {
	Sales []dto.Sale `json:"sales"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var sub sale.Submission
	if err := json.NewDecoder(r.Body).Decode(&sub); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	sales, err := h.svc.Register(r.Context(), sub)
	if err != nil {
		if errors.Is(err, sale.ErrValidation) || errors.Is(err, sale.ErrIncompleteBundle) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		slog.ErrorContext(r.Context(), "failed to register sale", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)

		return
	}

	h.reports.Invalidate(r.Context())

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(salesResponse{Sales: dto.NewSales(sales)}); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	filter, err := dto.DayRange(r.URL.Query(), h.loc)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	sales, err := h.svc.List(r.Context(), filter)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(salesResponse{Sales: dto.NewSales(sales)}); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
