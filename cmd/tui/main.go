package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"

	"github.com/keystone-apparel/keystone/cmd/tui/internal/view"
	"github.com/keystone-apparel/keystone/internal/config"
	"github.com/keystone-apparel/keystone/internal/database"
	"github.com/keystone-apparel/keystone/internal/export"
	"github.com/keystone-apparel/keystone/internal/importer"
	"github.com/keystone-apparel/keystone/internal/presale"
	presaleStore "github.com/keystone-apparel/keystone/internal/presale/store"
	"github.com/keystone-apparel/keystone/internal/report"
	"github.com/keystone-apparel/keystone/internal/sale"
	saleStore "github.com/keystone-apparel/keystone/internal/sale/store"
)

type model struct {
	saleService    *sale.Service
	presaleService *presale.Service
	reportService  *report.Service
	importService  *importer.Service
	exportService  *export.Service
	loc            *time.Location

	currentView View

	registerView view.RegisterModel
	salesView    view.SalesModel
	presalesView view.PresalesModel
	reportsView  view.ReportsModel
	importView   view.ImportModel
	exportView   view.ExportModel
}

type View int

const (
	ViewMenu     View = 0
	ViewRegister View = 1
	ViewSales    View = 2
	ViewPresales View = 3
	ViewReports  View = 4
	ViewImport   View = 5
	ViewExport   View = 6
)

var (
	menuTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	menuHintStyle  = lipgloss.NewStyle().Faint(true)
)

func initialModel(cfg *config.Config) (model, func(), error) {
	loc, err := cfg.Location()
	if err != nil {
		return model{}, nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := database.New(cfg.DB.Driver, cfg.ConnectionString())
	if err != nil {
		return model{}, nil, err
	}

	if err := database.Migrate(ctx, db, cfg.DB.Driver); err != nil {
		db.Close()
		return model{}, nil, err
	}

	rdb, err := database.NewRedis(ctx, cfg.Redis.URL)
	if err != nil {
		db.Close()
		return model{}, nil, err
	}

	closeFn := func() {
		if rdb != nil {
			_ = rdb.Close()
		}
		_ = db.Close()
	}

	sales := saleStore.New(db)
	saleSvc := sale.NewService(sales)
	presaleSvc := presale.NewService(presaleStore.New(db), sales)
	reportSvc := &report.Service{
		Sales:    sales,
		R:        rdb,
		TTL:      cfg.Redis.TTL,
		Epoch:    cfg.Report.Epoch,
		Period:   cfg.Report.Period,
		Location: loc,
	}
	impSvc := importer.NewService(loc)
	expSvc := export.NewService(saleSvc, loc)

	return model{
		saleService:    saleSvc,
		presaleService: presaleSvc,
		reportService:  reportSvc,
		importService:  impSvc,
		exportService:  expSvc,
		loc:            loc,
		currentView:    ViewMenu,
	}, closeFn, nil
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.currentView == ViewMenu {
			switch msg.String() {
			case "ctrl+c", "q":
				return m, tea.Quit
			case "1":
				m.currentView = ViewRegister
				m.registerView = view.NewRegisterModel(m.saleService, m.presaleService, m.reportService)

				return m, m.registerView.Init()
			case "2":
				m.currentView = ViewSales
				m.salesView = view.NewSalesModel(m.saleService, m.loc)

				return m, m.salesView.Init()
			case "3":
				m.currentView = ViewPresales
				m.presalesView = view.NewPresalesModel(m.presaleService, m.reportService)

				return m, m.presalesView.Init()
			case "4":
				m.currentView = ViewReports
				m.reportsView = view.NewReportsModel(m.reportService)

				return m, m.reportsView.Init()
			case "5":
				m.currentView = ViewImport
				m.importView = view.NewImportModel(m.saleService, m.importService, m.reportService)

				return m, m.importView.Init()
			case "6":
				m.currentView = ViewExport
				m.exportView = view.NewExportModel(m.exportService, m.loc)

				return m, m.exportView.Init()
			}
		}
	case view.BackMsg:
		m.currentView = ViewMenu
		return m, nil
	}

	switch m.currentView {
	case ViewRegister:
		var newModel tea.Model
		newModel, cmd = m.registerView.Update(msg)
		m.registerView = newModel.(view.RegisterModel)
	case ViewSales:
		var newModel tea.Model
		newModel, cmd = m.salesView.Update(msg)
		m.salesView = newModel.(view.SalesModel)
	case ViewPresales:
		var newModel tea.Model
		newModel, cmd = m.presalesView.Update(msg)
		m.presalesView = newModel.(view.PresalesModel)
	case ViewReports:
		var newModel tea.Model
		newModel, cmd = m.reportsView.Update(msg)
		m.reportsView = newModel.(view.ReportsModel)
	case ViewImport:
		var newModel tea.Model
		newModel, cmd = m.importView.Update(msg)
		m.importView = newModel.(view.ImportModel)
	case ViewExport:
		var newModel tea.Model
		newModel, cmd = m.exportView.Update(msg)
		m.exportView = newModel.(view.ExportModel)
	}

	return m, cmd
}

func (m model) View() string {
	switch m.currentView {
	case ViewMenu:
		return lipgloss.NewStyle().Padding(2).Render(
			menuTitleStyle.Render("Keystone") + "\n\n" +
				"1. Register Sale\n" +
				"2. Sales\n" +
				"3. Presales\n" +
				"4. Reports\n" +
				"5. Import Sales\n" +
				"6. Export Sales\n\n" +
				menuHintStyle.Render("q. Quit"),
		)
	case ViewRegister:
		return m.registerView.View()
	case ViewSales:
		return m.salesView.View()
	case ViewPresales:
		return m.presalesView.View()
	case ViewReports:
		return m.reportsView.View()
	case ViewImport:
		return m.importView.View()
	case ViewExport:
		return m.exportView.View()
	}

	return "Unknown View"
}

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("failed to load .env", "error", err)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// The terminal belongs to bubbletea, so logs go to a file.
	logFile, err := os.OpenFile("keystone-tui.log", os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		slog.Error("failed to open log file", "error", err)
		os.Exit(1)
	}
	defer logFile.Close()

	slog.SetDefault(slog.New(slog.NewJSONHandler(logFile, &slog.HandlerOptions{Level: cfg.SlogLevel()})))

	m, closeFn, err := initialModel(cfg)
	if err != nil {
		slog.Error("failed to start", "error", err)
		os.Exit(1)
	}
	defer closeFn()

	p := tea.NewProgram(m)
	if _, err := p.Run(); err != nil {
		slog.Error("failed to run TUI", "error", err)
		os.Exit(1)
	}
}
