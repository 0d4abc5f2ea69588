package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/keystone-apparel/keystone/internal/config"
	"github.com/keystone-apparel/keystone/internal/database"
	"github.com/keystone-apparel/keystone/internal/export"
	keystoneHttp "github.com/keystone-apparel/keystone/internal/http"
	catalogHandler "github.com/keystone-apparel/keystone/internal/http/catalog"
	exportHandler "github.com/keystone-apparel/keystone/internal/http/export"
	importHandler "github.com/keystone-apparel/keystone/internal/http/importcsv"
	presaleHandler "github.com/keystone-apparel/keystone/internal/http/presale"
	reportHandler "github.com/keystone-apparel/keystone/internal/http/report"
	saleHandler "github.com/keystone-apparel/keystone/internal/http/sale"
	"github.com/keystone-apparel/keystone/internal/importer"
	"github.com/keystone-apparel/keystone/internal/obs"
	"github.com/keystone-apparel/keystone/internal/presale"
	presaleStore "github.com/keystone-apparel/keystone/internal/presale/store"
	"github.com/keystone-apparel/keystone/internal/report"
	"github.com/keystone-apparel/keystone/internal/sale"
	saleStore "github.com/keystone-apparel/keystone/internal/sale/store"
)

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("failed to load .env", "error", err)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.SlogLevel()})))

	loc, err := cfg.Location()
	if err != nil {
		slog.Error("failed to load report timezone", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.New(cfg.DB.Driver, cfg.ConnectionString())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := database.Migrate(ctx, db, cfg.DB.Driver); err != nil {
		slog.Error("failed to migrate database", "error", err)
		os.Exit(1)
	}

	rdb, err := database.NewRedis(ctx, cfg.Redis.URL)
	if err != nil {
		slog.Error("failed to connect to redis", "error", err)
		os.Exit(1)
	}

	if rdb != nil {
		defer rdb.Close()
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics := obs.New("keystone", reg)

	var (
		sales = saleStore.New(db)

		saleService    = sale.NewService(sales, sale.WithMetrics(metrics))
		presaleService = presale.NewService(presaleStore.New(db), sales, presale.WithMetrics(metrics))
		importService  = importer.NewService(loc)
		exportService  = export.NewService(saleService, loc)
		reportService  = &report.Service{
			Sales:    sales,
			R:        rdb,
			TTL:      cfg.Redis.TTL,
			Epoch:    cfg.Report.Epoch,
			Period:   cfg.Report.Period,
			Location: loc,
			Metrics:  metrics,
		}
	)

	var (
		catalogH = catalogHandler.NewHandler()
		saleH    = saleHandler.NewHandler(saleService, reportService, loc)
		presaleH = presaleHandler.NewHandler(presaleService, reportService)
		reportH  = reportHandler.NewHandler(reportService, loc)
		importH  = importHandler.NewHandler(importService, saleService, reportService, metrics)
		exportH  = exportHandler.NewHandler(exportService)
	)

	router := keystoneHttp.New(
		keystoneHttp.Options{CORSOrigins: cfg.Server.CORSOrigins, Metrics: metrics, Gatherer: reg},
		catalogH, saleH, presaleH, reportH, importH, exportH,
	)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("server shutdown failed", "error", err)
		}
	}()

	slog.Info("starting server", "app", cfg.App.Name, "port", srv.Addr, "db", cfg.DB.Driver, "cache", rdb != nil)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
