package view

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/keystone-apparel/keystone/internal/report"
	"github.com/keystone-apparel/keystone/internal/sale"
)

var salesRanges = []Timeframe{TimeframeToday, TimeframeThisWeek, TimeframeThisMonth, TimeframeAll}

// SalesModel lists recorded sales with a running total for the selected range.
type SalesModel struct {
	CommonModel
	saleService *sale.Service
	loc         *time.Location

	table    table.Model
	sales    []*sale.Sale
	rangeIdx int

	loading bool
	err     error
}

func NewSalesModel(saleSvc *sale.Service, loc *time.Location) SalesModel {
	columns := []table.Column{
		{Title: "Date", Width: 17},
		{Title: "Product", Width: 8},
		{Title: "Design", Width: 24},
		{Title: "Color", Width: 6},
		{Title: "Size", Width: 6},
		{Title: "Price", Width: 9},
		{Title: "Pay", Width: 5},
		{Title: "Seller", Width: 10},
		{Title: "Notes", Width: 24},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(15),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(false)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	if loc == nil {
		loc = time.Local
	}

	return SalesModel{
		saleService: saleSvc,
		loc:         loc,
		table:       t,
		loading:     true,
	}
}

func (m SalesModel) Title() string { return "Sales" }

func (m SalesModel) ShortHelp() string {
	return "Esc: back | d: date range | r: refresh"
}

func (m SalesModel) Init() tea.Cmd {
	return m.loadSalesCmd()
}

func (m SalesModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadSalesMsg:
		m.loading = false
		m.err = msg.err
		m.sales = msg.sales
		m.refreshTable()

		return m, nil

	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 12)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadSalesCmd()
		case "d":
			m.rangeIdx = (m.rangeIdx + 1) % len(salesRanges)
			m.loading = true

			return m, m.loadSalesCmd()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m SalesModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading sales...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
	}

	header := fmt.Sprintf("Range: [d] %s", activeStyle(salesRanges[m.rangeIdx].String()))

	tableView := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	return lipgloss.NewStyle().Padding(1).Render(lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().PaddingBottom(1).Render(header),
		tableView,
		faintStyle.Render(m.footer()),
	))
}

func (m SalesModel) footer() string {
	revenue := report.Revenue(m.sales)
	cogs := report.Cogs(m.sales)

	return fmt.Sprintf("%d sales | revenue %s | cogs %s | profit %s",
		len(m.sales), FormatMoney(revenue), FormatMoney(cogs), FormatMoney(revenue.Sub(cogs)))
}

func (m *SalesModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.sales))

	// Newest first on screen.
	for i := len(m.sales) - 1; i >= 0; i-- {
		s := m.sales[i]
		rows = append(rows, table.Row{
			FormatDateTime(s.Date),
			s.Item.ProductType.Label(),
			s.Item.Design.Label(),
			orDash(string(s.Item.Color)),
			orDash(s.Item.Size.Label()),
			FormatMoney(s.Item.Price),
			string(s.Item.PaymentMethod),
			orDash(s.Item.Seller),
			s.Item.Notes,
		})
	}

	m.table.SetRows(rows)
}

type loadSalesMsg struct {
	sales []*sale.Sale
	err   error
}

func (m SalesModel) loadSalesCmd() tea.Cmd {
	tf := salesRanges[m.rangeIdx]
	loc := m.loc

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		filter := sale.ListFilter{}
		if tf != TimeframeAll {
			start, end := timeframeRange(tf, time.Now(), loc)
			filter = sale.ListFilter{From: &start, To: &end}
		}

		sales, err := m.saleService.List(ctx, filter)

		return loadSalesMsg{sales: sales, err: err}
	}
}
