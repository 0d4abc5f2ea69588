package view

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/keystone-apparel/keystone/internal/report"
)

type reportTab int

const (
	reportTabWeekly reportTab = iota
	reportTabSellers
	reportTabDesigns
	reportTabCount
)

func (t reportTab) String() string {
	switch t {
	case reportTabWeekly:
		return "Financial Weeks"
	case reportTabSellers:
		return "Sellers"
	case reportTabDesigns:
		return "Designs"
	}

	return "Unknown"
}

// ReportsModel shows today's totals above one of the aggregate reports.
type ReportsModel struct {
	CommonModel
	reportService *report.Service

	tab   reportTab
	table table.Model
	today report.DailyTotals

	weeks   []report.WeekSummary
	sellers []report.SellerStat
	designs []report.DesignStat

	loading bool
	err     error
}

func NewReportsModel(svc *report.Service) ReportsModel {
	t := table.New(table.WithFocused(true), table.WithHeight(15))

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(false)
	t.SetStyles(s)

	return ReportsModel{
		reportService: svc,
		table:         t,
		loading:       true,
	}
}

func (m ReportsModel) Title() string { return "Reports" }

func (m ReportsModel) ShortHelp() string {
	return "Tab: next report | r: refresh | Esc: back"
}

func (m ReportsModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m ReportsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadReportsMsg:
		m.loading = false
		m.err = msg.err
		m.today = msg.today
		m.weeks = msg.weeks
		m.sellers = msg.sellers
		m.designs = msg.designs
		m.refreshTable()

		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadCmd()
		case "tab":
			m.tab = (m.tab + 1) % reportTabCount
			m.refreshTable()

			return m, nil
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m *ReportsModel) refreshTable() {
	// Rows must be cleared before the column count changes.
	m.table.SetRows(nil)

	var rows []table.Row

	switch m.tab {
	case reportTabWeekly:
		m.table.SetColumns([]table.Column{
			{Title: "Week", Width: 5},
			{Title: "Dates", Width: 18},
			{Title: "Sales", Width: 7},
			{Title: "Tees", Width: 6},
			{Title: "Hoodies", Width: 8},
			{Title: "Revenue", Width: 12},
		})

		for _, w := range m.weeks {
			rows = append(rows, table.Row{
				strconv.Itoa(w.PeriodIndex + 1),
				w.Label,
				strconv.Itoa(w.Sales),
				strconv.Itoa(w.Tshirts),
				strconv.Itoa(w.Hoodies),
				FormatMoney(w.Revenue),
			})
		}
	case reportTabSellers:
		m.table.SetColumns([]table.Column{
			{Title: "Seller", Width: 12},
			{Title: "Sales", Width: 7},
			{Title: "Revenue", Width: 12},
		})

		for _, s := range m.sellers {
			rows = append(rows, table.Row{s.Seller, strconv.Itoa(s.Sales), FormatMoney(s.Revenue)})
		}
	case reportTabDesigns:
		m.table.SetColumns([]table.Column{
			{Title: "Design", Width: 26},
			{Title: "Tees", Width: 6},
			{Title: "Hoodies", Width: 8},
			{Title: "Total", Width: 7},
		})

		for _, d := range m.designs {
			rows = append(rows, table.Row{
				d.Label, strconv.Itoa(d.Tshirts), strconv.Itoa(d.Hoodies), strconv.Itoa(d.Total),
			})
		}
	}

	m.table.SetRows(rows)
}

func (m ReportsModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading reports...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
	}

	t := m.today
	today := fmt.Sprintf(
		"Today %s: %d sales (%d tees, %d hoodies, %d stickers) | card %d, cash %d | revenue %s | cogs %s | profit %s",
		t.Day, t.Sales, t.Tshirts, t.Hoodies, t.Stickers, t.Card, t.Cash,
		FormatMoney(t.Revenue), FormatMoney(t.Cogs), FormatMoney(t.Profit),
	)

	tabs := ""
	for i := reportTab(0); i < reportTabCount; i++ {
		label := i.String()
		if i == m.tab {
			label = activeStyle(label)
		}

		tabs += "[" + label + "] "
	}

	tableView := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	return lipgloss.NewStyle().Padding(1).Render(lipgloss.JoinVertical(lipgloss.Left,
		today,
		"",
		tabs,
		tableView,
	))
}

type loadReportsMsg struct {
	today   report.DailyTotals
	weeks   []report.WeekSummary
	sellers []report.SellerStat
	designs []report.DesignStat
	err     error
}

func (m ReportsModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		var (
			msg loadReportsMsg
			err error
		)

		if msg.today, err = m.reportService.Today(ctx); err != nil {
			return loadReportsMsg{err: err}
		}

		if msg.weeks, err = m.reportService.Weekly(ctx); err != nil {
			return loadReportsMsg{err: err}
		}

		if msg.sellers, err = m.reportService.Sellers(ctx); err != nil {
			return loadReportsMsg{err: err}
		}

		if msg.designs, err = m.reportService.Designs(ctx); err != nil {
			return loadReportsMsg{err: err}
		}

		return msg
	}
}
