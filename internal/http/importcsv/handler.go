package importcsv

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/keystone-apparel/keystone/internal/http/dto"
	"github.com/keystone-apparel/keystone/internal/importer"
	"github.com/keystone-apparel/keystone/internal/obs"
	"github.com/keystone-apparel/keystone/internal/sale"
)

// Invalidator drops cached reports once imported sales are stored.
type Invalidator interface {
	Invalidate(ctx context.Context)
}

type Handler struct {
	importSvc *importer.Service
	saleSvc   *sale.Service
	reports   Invalidator
	metrics   *obs.Metrics
}

func NewHandler(importSvc *importer.Service, saleSvc *sale.Service, reports Invalidator, metrics *obs.Metrics) *Handler {
	return &Handler{
		importSvc: importSvc,
		saleSvc:   saleSvc,
		reports:   reports,
		metrics:   metrics,
	}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.importFile)
}

type importResponse struct {
	Imported   int        `json:"imported"`
	Duplicates int        `json:"duplicates"`
	Sales      []dto.Sale `json:"sales"`
}

// importFile reads a multipart upload: "file" plus an optional "source"
// (csv or legacy, default csv). Rows already stored are reported as duplicates.
func (h *Handler) importFile(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		http.Error(w, "failed to parse form: "+err.Error(), http.StatusBadRequest)
		return
	}

	source := importer.Source(r.FormValue("source"))

	file, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "file field is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	sales, err := h.importSvc.Import(source, file)
	if err != nil {
		h.metrics.RowsImported("rejected", 1)
		http.Error(w, err.Error(), http.StatusBadRequest)

		return
	}

	result, err := h.saleSvc.ImportBatch(r.Context(), sales)
	if err != nil {
		slog.ErrorContext(r.Context(), "failed to import sales", "rows", len(sales), "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)

		return
	}

	h.metrics.RowsImported("imported", len(result.Imported))
	h.metrics.RowsImported("duplicate", len(result.Duplicates))

	if len(result.Imported) > 0 {
		h.reports.Invalidate(r.Context())
	}

	slog.InfoContext(r.Context(), "sales imported",
		"source", source,
		"imported", len(result.Imported),
		"duplicates", len(result.Duplicates),
	)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(importResponse{
		Imported:   len(result.Imported),
		Duplicates: len(result.Duplicates),
		Sales:      dto.NewSales(result.Imported),
	}); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
