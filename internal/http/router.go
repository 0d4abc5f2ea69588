package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/keystone-apparel/keystone/internal/http/catalog"
	"github.com/keystone-apparel/keystone/internal/http/export"
	"github.com/keystone-apparel/keystone/internal/http/importcsv"
	"github.com/keystone-apparel/keystone/internal/http/presale"
	"github.com/keystone-apparel/keystone/internal/http/report"
	"github.com/keystone-apparel/keystone/internal/http/sale"
	"github.com/keystone-apparel/keystone/internal/obs"
)

// Options carries the router's cross-cutting dependencies.
type Options struct {
	CORSOrigins []string
	Metrics     *obs.Metrics
	Gatherer    prometheus.Gatherer
}

func New(
	opts Options,
	catalogV1 *catalog.Handler,
	salesV1 *sale.Handler,
	presalesV1 *presale.Handler,
	reportsV1 *report.Handler,
	importV1 *importcsv.Handler,
	exportV1 *export.Handler,
) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: opts.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	if opts.Metrics != nil {
		router.Use(opts.Metrics.Middleware)
	}

	router.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	if opts.Gatherer != nil {
		router.Handle("/metrics", promhttp.HandlerFor(opts.Gatherer, promhttp.HandlerOpts{}))
	}

	router.Route("/api/v1", func(r chi.Router) {
		r.Group(catalogV1.Routes)

		r.Route("/sales", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			salesV1.Routes(r)
		})

		r.Route("/presales", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			presalesV1.Routes(r)
		})

		r.Route("/reports", reportsV1.Routes)

		r.Route("/import", importV1.Routes)

		r.Route("/export", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			exportV1.Routes(r)
		})
	})

	return router
}
