package report

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/keystone-apparel/keystone/internal/http/dto"
	"github.com/keystone-apparel/keystone/internal/report"
)

type Handler struct {
	svc *report.Service
	loc *time.Location
}

func NewHandler(svc *report.Service, loc *time.Location) *Handler {
	if loc == nil {
		loc = time.UTC
	}

	return &Handler{svc: svc, loc: loc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/daily", h.daily)
	r.Get("/weekly", h.weekly)
	r.Get("/sellers", h.sellers)
	r.Get("/designs", h.designs)
}

type weeklyResponse struct {
	Weeks []dto.Week `json:"weeks"`
}

type sellersResponse struct {
	Sellers []dto.Seller `json:"sellers"`
}

type designsResponse struct {
	Designs []report.DesignStat `json:"designs"`
}

// daily totals ?date=YYYY-MM-DD, or today when absent.
func (h *Handler) daily(w http.ResponseWriter, r *http.Request) {
	var (
		totals report.DailyTotals
		err    error
	)

	if s := r.URL.Query().Get("date"); s != "" {
		day, perr := time.ParseInLocation(time.DateOnly, s, h.loc)
		if perr != nil {
			http.Error(w, "invalid date: "+s, http.StatusBadRequest)
			return
		}

		totals, err = h.svc.Daily(r.Context(), day)
	} else {
		totals, err = h.svc.Today(r.Context())
	}

	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, dto.NewDaily(totals))
}

func (h *Handler) weekly(w http.ResponseWriter, r *http.Request) {
	weeks, err := h.svc.Weekly(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, weeklyResponse{Weeks: dto.NewWeeks(weeks)})
}

func (h *Handler) sellers(w http.ResponseWriter, r *http.Request) {
	stats, err := h.svc.Sellers(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, sellersResponse{Sellers: dto.NewSellers(stats)})
}

func (h *Handler) designs(w http.ResponseWriter, r *http.Request) {
	stats, err := h.svc.Designs(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if stats == nil {
		stats = []report.DesignStat{}
	}

	writeJSON(w, designsResponse{Designs: stats})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
