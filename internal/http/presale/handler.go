package presale

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/keystone-apparel/keystone/internal/http/dto"
	"github.com/keystone-apparel/keystone/internal/presale"
	"github.com/keystone-apparel/keystone/internal/sale"
)

// Invalidator drops cached reports after fulfillment records new sales.
type Invalidator interface {
	Invalidate(ctx context.Context)
}

type Handler struct {
	svc     *presale.Service
	reports Invalidator
}

func NewHandler(svc *presale.Service, reports Invalidator) *Handler {
	return &Handler{svc: svc, reports: reports}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Post("/fulfill", h.fulfill)
	r.Get("/financials", h.financials)
}

type presalesResponse struct {
	Presales []dto.Presale `json:"presales"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var sub sale.Submission
	if err := json.NewDecoder(r.Body).Decode(&sub); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	presales, err := h.svc.Create(r.Context(), sub)
	if err != nil {
		if errors.Is(err, sale.ErrValidation) || errors.Is(err, sale.ErrIncompleteBundle) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		http.Error(w, err.Error(), http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(presalesResponse{Presales: dto.NewPresales(presales)}); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	status := presale.Status(r.URL.Query().Get("status"))
	if !status.Valid() {
		http.Error(w, fmt.Sprintf("invalid status %q", status), http.StatusBadRequest)
		return
	}

	presales, err := h.svc.List(r.Context(), status)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(presalesResponse{Presales: dto.NewPresales(presales)}); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type fulfillRequest struct {
	IDs []uuid.UUID `json:"ids"`
}

type fulfillResponse struct {
	OK        bool   `json:"ok"`
	Fulfilled int    `json:"fulfilled"`
	Message   string `json:"message"`
}

func (h *Handler) fulfill(w http.ResponseWriter, r *http.Request) {
	var req fulfillRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	status := http.StatusOK
	resp := fulfillResponse{OK: true}

	result, err := h.svc.Fulfill(r.Context(), req.IDs)

	switch {
	case err == nil:
		resp.Fulfilled = len(result.Sales)
		resp.Message = fmt.Sprintf("Successfully fulfilled %d presale(s)", resp.Fulfilled)

		h.reports.Invalidate(r.Context())
	case errors.Is(err, presale.ErrNoneChosen),
		errors.Is(err, presale.ErrNotFound),
		errors.Is(err, presale.ErrNotPending):
		status = http.StatusBadRequest
		resp = fulfillResponse{Message: err.Error()}
	case errors.Is(err, presale.ErrPartialFulfillment):
		// The sales exist even though the presales still read as pending.
		h.reports.Invalidate(r.Context())

		status = http.StatusInternalServerError
		resp = fulfillResponse{Message: err.Error()}
	default:
		slog.ErrorContext(r.Context(), "failed to fulfill presales", "error", err)

		status = http.StatusInternalServerError
		resp = fulfillResponse{Message: "Failed to fulfill presales: " + err.Error()}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type financialsResponse struct {
	Pending         int    `json:"pending"`
	UnusedCogs      string `json:"unused_cogs"`
	UnearnedRevenue string `json:"unearned_revenue"`
}

func (h *Handler) financials(w http.ResponseWriter, r *http.Request) {
	f, err := h.svc.Financials(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(financialsResponse{
		Pending:         f.Pending,
		UnusedCogs:      f.UnusedCogs.StringFixed(2),
		UnearnedRevenue: f.UnearnedRevenue.StringFixed(2),
	}); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
