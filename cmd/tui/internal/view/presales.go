package view

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/keystone-apparel/keystone/internal/presale"
)

// PresalesModel lists presales and fulfills the selected pending ones in one batch.
type PresalesModel struct {
	CommonModel
	presaleService *presale.Service
	reports        Invalidator

	table      table.Model
	presales   []*presale.Presale
	financials presale.Financials
	showSold   bool
	selected   map[uuid.UUID]bool

	loading bool
	err     error
	status  string
}

func NewPresalesModel(svc *presale.Service, reports Invalidator) PresalesModel {
	columns := []table.Column{
		{Title: " ", Width: 3},
		{Title: "Ordered", Width: 17},
		{Title: "Product", Width: 8},
		{Title: "Design", Width: 24},
		{Title: "Color", Width: 6},
		{Title: "Size", Width: 6},
		{Title: "Price", Width: 9},
		{Title: "Seller", Width: 10},
		{Title: "Fulfilled", Width: 17},
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

	return PresalesModel{
		presaleService: svc,
		reports:        reports,
		table:          t,
		selected:       make(map[uuid.UUID]bool),
		loading:        true,
	}
}

func (m PresalesModel) Title() string { return "Presales" }

func (m PresalesModel) ShortHelp() string {
	if m.showSold {
		return "Esc: back | t: show pending | r: refresh"
	}

	return "Space: toggle | a: all | n: none | Enter: fulfill | t: show sold | Esc: back"
}

func (m PresalesModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m PresalesModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadPresalesMsg:
		m.loading = false
		m.err = msg.err
		m.presales = msg.presales
		m.financials = msg.financials
		m.refreshTable()

		return m, nil

	case fulfillResultMsg:
		if msg.err != nil {
			m.status = errorStyle.Render(fmt.Sprintf("Failed to fulfill presales: %v", msg.err))
		} else {
			m.status = successStyle.Render(fmt.Sprintf("Successfully fulfilled %d presale(s)", msg.count))
			m.selected = make(map[uuid.UUID]bool)
		}

		m.loading = true

		return m, m.loadCmd()

	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 12)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadCmd()
		case "t":
			m.showSold = !m.showSold
			m.selected = make(map[uuid.UUID]bool)
			m.loading = true

			return m, m.loadCmd()
		}

		if !m.showSold {
			switch msg.String() {
			case " ":
				if p := m.current(); p != nil {
					m.selected[p.ID] = !m.selected[p.ID]
					m.refreshTable()
				}

				return m, nil
			case "a":
				for _, p := range m.presales {
					m.selected[p.ID] = true
				}

				m.refreshTable()

				return m, nil
			case "n":
				m.selected = make(map[uuid.UUID]bool)
				m.refreshTable()

				return m, nil
			case "enter":
				ids := m.selectedIDs()
				if len(ids) == 0 {
					m.status = errorStyle.Render("No presales selected")
					return m, nil
				}

				return m, m.fulfillCmd(ids)
			}
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m PresalesModel) current() *presale.Presale {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.presales) {
		return nil
	}

	return m.presales[idx]
}

// selectedIDs keeps list order so the batch reads the same as the screen.
func (m PresalesModel) selectedIDs() []uuid.UUID {
	var ids []uuid.UUID
	for _, p := range m.presales {
		if m.selected[p.ID] {
			ids = append(ids, p.ID)
		}
	}

	return ids
}

func (m PresalesModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading presales...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
	}

	showing := "Pending"
	if m.showSold {
		showing = "Completed"
	}

	header := fmt.Sprintf("Showing: [t] %s | %d pending | unused COGS %s | unearned revenue %s",
		activeStyle(showing),
		m.financials.Pending,
		FormatMoney(m.financials.UnusedCogs),
		FormatMoney(m.financials.UnearnedRevenue),
	)

	tableView := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	content := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().PaddingBottom(1).Render(header),
		tableView,
	)

	if m.status != "" {
		content = m.status + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func (m *PresalesModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.presales))
	for _, p := range m.presales {
		mark := "[ ]"
		if m.showSold {
			mark = ""
		} else if m.selected[p.ID] {
			mark = "[x]"
		}

		fulfilled := "-"
		if p.FulfilledDate != nil {
			fulfilled = FormatDateTime(*p.FulfilledDate)
		}

		rows = append(rows, table.Row{
			mark,
			FormatDateTime(p.CreatedAt),
			p.Item.ProductType.Label(),
			p.Item.Design.Label(),
			orDash(string(p.Item.Color)),
			orDash(p.Item.Size.Label()),
			FormatMoney(p.Item.Price),
			orDash(p.Item.Seller),
			fulfilled,
		})
	}

	m.table.SetRows(rows)
}

type loadPresalesMsg struct {
	presales   []*presale.Presale
	financials presale.Financials
	err        error
}

func (m PresalesModel) loadCmd() tea.Cmd {
	status := presale.StatusPending
	if m.showSold {
		status = presale.StatusSold
	}

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		presales, err := m.presaleService.List(ctx, status)
		if err != nil {
			return loadPresalesMsg{err: err}
		}

		financials, err := m.presaleService.Financials(ctx)

		return loadPresalesMsg{presales: presales, financials: financials, err: err}
	}
}

type fulfillResultMsg struct {
	count int
	err   error
}

func (m PresalesModel) fulfillCmd(ids []uuid.UUID) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		result, err := m.presaleService.Fulfill(ctx, ids)
		if err != nil {
			if errors.Is(err, presale.ErrPartialFulfillment) {
				m.reports.Invalidate(ctx)
			}

			return fulfillResultMsg{err: err}
		}

		m.reports.Invalidate(ctx)

		return fulfillResultMsg{count: len(result.Sales)}
	}
}
