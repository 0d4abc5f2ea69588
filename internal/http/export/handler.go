package export

import (
	"archive/zip"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/keystone-apparel/keystone/internal/export"
	"github.com/keystone-apparel/keystone/internal/http/dto"
	"github.com/keystone-apparel/keystone/internal/sale"
)

type Handler struct {
	svc *export.Service
	now func() time.Time
}

func NewHandler(svc *export.Service) *Handler {
	return &Handler{svc: svc, now: time.Now}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.metadata)
	r.Post("/download", h.download)
}

// exportRequest bounds are half-open: [start_date, end_date).
type exportRequest struct {
	StartDate *time.Time `json:"start_date,omitempty"`
	EndDate   *time.Time `json:"end_date,omitempty"`
}

type exportMetadataResponse struct {
	Sales   []dto.Sale `json:"sales"`
	Summary string     `json:"summary"`
}

func decodeFilter(r *http.Request) (sale.ListFilter, error) {
	var req exportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return sale.ListFilter{}, err
	}

	return sale.ListFilter{From: req.StartDate, To: req.EndDate}, nil
}

func (h *Handler) metadata(w http.ResponseWriter, r *http.Request) {
	filter, err := decodeFilter(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	sales, err := h.svc.Export(r.Context(), filter)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(exportMetadataResponse{
		Sales:   dto.NewSales(sales),
		Summary: h.svc.GenerateSummary(sales),
	}); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// download streams a zip holding sales.csv and summary.txt.
func (h *Handler) download(w http.ResponseWriter, r *http.Request) {
	filter, err := decodeFilter(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	sales, err := h.svc.Export(r.Context(), filter)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=\"sales_%s.zip\"", h.now().Format("20060102")))

	zipWriter := zip.NewWriter(w)
	defer zipWriter.Close()

	csvFile, err := zipWriter.Create("sales.csv")
	if err == nil {
		err = h.svc.WriteCSV(csvFile, sales)
	}

	if err != nil {
		slog.Error("failed to create zip", "error", err)
		return
	}

	summaryFile, err := zipWriter.Create("summary.txt")
	if err == nil {
		_, err = summaryFile.Write([]byte(h.svc.GenerateSummary(sales)))
	}

	if err != nil {
		slog.Error("failed to create zip", "error", err)
	}
}
