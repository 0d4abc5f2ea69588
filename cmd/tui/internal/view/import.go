package view

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/keystone-apparel/keystone/internal/importer"
	"github.com/keystone-apparel/keystone/internal/sale"
)

const importTimeout = 2 * time.Minute

type importState int

const (
	importStateSourceSelect importState = iota
	importStateFilePick
	importStateImporting
	importStateResult
)

func buildSourceForm(source *importer.Source) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[importer.Source]().
				Title("File format").
				Options(
					huh.NewOption("CSV (spreadsheet or Keystone export)", importer.SourceCSV),
					huh.NewOption("Legacy JSON (old register browser data)", importer.SourceLegacy),
				).
				Value(source),
		),
	).WithWidth(60).WithShowHelp(false)
}

// ImportModel loads historical sales from a file. Rows already stored are
// skipped and listed afterwards.
type ImportModel struct {
	CommonModel
	saleService   *sale.Service
	importService *importer.Service
	reports       Invalidator

	state      importState
	source     *importer.Source
	sourceForm *huh.Form
	filePicker filepicker.Model

	duplicates list.Model
	imported   int

	status string
	err    error
}

func NewImportModel(saleSvc *sale.Service, impSvc *importer.Service, reports Invalidator) ImportModel {
	fp := filepicker.New()
	fp.CurrentDirectory, _ = os.Getwd()
	fp.AllowedTypes = []string{".csv", ".json", ".txt"}
	fp.ShowHidden = false
	fp.DirAllowed = false
	fp.FileAllowed = true
	fp.Height = 15

	source := new(importer.Source)
	*source = importer.SourceCSV

	return ImportModel{
		saleService:   saleSvc,
		importService: impSvc,
		reports:       reports,
		source:        source,
		sourceForm:    buildSourceForm(source),
		filePicker:    fp,
	}
}

func (m ImportModel) Title() string { return "Import Sales" }

func (m ImportModel) ShortHelp() string {
	return "Esc: back | Enter: select"
}

func (m ImportModel) Init() tea.Cmd {
	return m.sourceForm.Init()
}

func (m ImportModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyEsc {
			return m.handleEsc()
		}

		if m.state == importStateResult && m.err == nil {
			var cmd tea.Cmd
			m.duplicates, cmd = m.duplicates.Update(msg)

			return m, cmd
		}

	case importResultMsg:
		m.state = importStateResult

		if msg.err != nil {
			m.err = msg.err
			m.status = fmt.Sprintf("Error: %v", msg.err)

			return m, nil
		}

		m.imported = len(msg.result.Imported)
		m.status = fmt.Sprintf("Imported %d sales, skipped %d already recorded.",
			len(msg.result.Imported), len(msg.result.Duplicates))

		items := make([]list.Item, len(msg.result.Duplicates))
		for i, d := range msg.result.Duplicates {
			items[i] = duplicateItem{sale: d}
		}

		m.duplicates = list.New(items, duplicateDelegate{}, 80, 15)
		m.duplicates.Title = "Skipped duplicates"
		m.duplicates.SetShowStatusBar(false)
		m.duplicates.SetFilteringEnabled(false)
		m.duplicates.SetShowHelp(false)

		return m, nil
	}

	if m.state == importStateSourceSelect {
		return m.updateSourceSelect(msg)
	}

	if m.state != importStateFilePick {
		return m, nil
	}

	var cmd tea.Cmd
	m.filePicker, cmd = m.filePicker.Update(msg)

	if didSelect, path := m.filePicker.DidSelectFile(msg); didSelect {
		m.state = importStateImporting
		m.status = fmt.Sprintf("Importing from %s...", path)

		return m, m.importCmd(path)
	}

	return m, cmd
}

func (m ImportModel) handleEsc() (tea.Model, tea.Cmd) {
	switch m.state {
	case importStateFilePick:
		m.state = importStateSourceSelect
		m.sourceForm = buildSourceForm(m.source)

		return m, m.sourceForm.Init()
	case importStateResult:
		m.state = importStateSourceSelect
		m.err = nil
		m.status = ""
		m.sourceForm = buildSourceForm(m.source)

		return m, m.sourceForm.Init()
	}

	return m, Back
}

func (m ImportModel) updateSourceSelect(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := m.sourceForm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.sourceForm = f
	}

	if m.sourceForm.State != huh.StateCompleted {
		return m, cmd
	}

	m.state = importStateFilePick

	return m, m.filePicker.Init()
}

func (m ImportModel) View() string {
	switch m.state {
	case importStateSourceSelect:
		return lipgloss.NewStyle().Padding(1).Render(m.sourceForm.View())
	case importStateFilePick:
		return lipgloss.NewStyle().Padding(1).Render(
			fmt.Sprintf("Select file to import (%s):\n\n%s", *m.source, m.filePicker.View()),
		)
	case importStateImporting:
		return lipgloss.NewStyle().Padding(2).Render(m.status)
	case importStateResult:
		return m.viewResult()
	}

	return ""
}

func (m ImportModel) viewResult() string {
	style := lipgloss.NewStyle().Padding(2)
	if m.err != nil {
		return style.Render(errorStyle.Render(m.status) + "\n\n(Esc to go back)")
	}

	content := successStyle.Render(m.status)
	if len(m.duplicates.Items()) > 0 {
		content += "\n\n" + m.duplicates.View()
	}

	return style.Render(content + "\n\n(Esc to go back)")
}

type importResultMsg struct {
	result *sale.ImportResult
	err    error
}

func (m ImportModel) importCmd(path string) tea.Cmd {
	source := *m.source

	return func() tea.Msg {
		f, err := os.Open(path)
		if err != nil {
			return importResultMsg{err: err}
		}
		defer f.Close()

		sales, err := m.importService.Import(source, f)
		if err != nil {
			return importResultMsg{err: err}
		}

		ctx, cancel := context.WithTimeout(context.Background(), importTimeout)
		defer cancel()

		result, err := m.saleService.ImportBatch(ctx, sales)
		if err != nil {
			return importResultMsg{err: err}
		}

		if len(result.Imported) > 0 {
			m.reports.Invalidate(ctx)
		}

		return importResultMsg{result: result}
	}
}

type duplicateItem struct {
	sale *sale.Sale
}

func (i duplicateItem) Title() string       { return "" }
func (i duplicateItem) Description() string { return "" }
func (i duplicateItem) FilterValue() string { return "" }

type duplicateDelegate struct{}

func (d duplicateDelegate) Height() int                             { return 1 }
func (d duplicateDelegate) Spacing() int                            { return 0 }
func (d duplicateDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

func (d duplicateDelegate) Render(w io.Writer, m list.Model, index int, listItem list.Item) {
	item, ok := listItem.(duplicateItem)
	if !ok {
		return
	}

	cursor := "  "
	if index == m.Index() {
		cursor = "> "
	}

	s := item.sale
	fmt.Fprintf(w, "%s%s  %s  %s  %s  %s",
		cursor,
		FormatDateTime(s.Date),
		s.Item.ProductType.Label(),
		s.Item.Design.Label(),
		FormatMoney(s.Item.Price),
		orDash(s.Item.Seller),
	)
}
