package view

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/keystone-apparel/keystone/internal/export"
)

const (
	exportTimeout    = 2 * time.Minute
	defaultExportDir = "./exports"
)

type exportPhase int

const (
	exportPhaseAsk exportPhase = iota
	exportPhaseWriting
	exportPhaseDone
)

// exportAnswers is bound to the export form by pointer so copies of the
// model keep writing to the same place.
type exportAnswers struct {
	timeframe *timeframeFields
	dir       string
	summary   bool
}

type ExportModel struct {
	CommonModel
	svc *export.Service

	phase   exportPhase
	answers *exportAnswers
	form    *huh.Form
	spinner spinner.Model

	result exportDoneMsg
}

func NewExportModel(svc *export.Service, loc *time.Location) ExportModel {
	answers := &exportAnswers{
		timeframe: newTimeframeFields(TimeframeToday, loc),
		dir:       defaultExportDir,
		summary:   true,
	}

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	return ExportModel{
		svc:     svc,
		answers: answers,
		form:    buildExportForm(answers),
		spinner: s,
	}
}

func buildExportForm(a *exportAnswers) *huh.Form {
	groups := a.timeframe.groups()
	groups = append(groups, huh.NewGroup(
		huh.NewInput().
			Title("Output directory").
			Description("sales.csv is written here and created if missing").
			Placeholder(defaultExportDir).
			Value(&a.dir),
		huh.NewConfirm().
			Title("Also write summary.txt?").
			Value(&a.summary),
	))

	return huh.NewForm(groups...).WithWidth(60).WithShowHelp(false)
}

func (m ExportModel) Title() string { return "Export Sales" }

func (m ExportModel) ShortHelp() string {
	switch m.phase {
	case exportPhaseWriting:
		return "Exporting..."
	case exportPhaseDone:
		return "Esc: back to menu"
	}

	return "Esc: back | Enter: next"
}

func (m ExportModel) Init() tea.Cmd {
	return m.form.Init()
}

func (m ExportModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && key.Type == tea.KeyEsc && m.phase != exportPhaseWriting {
		return m, Back
	}

	switch m.phase {
	case exportPhaseAsk:
		return m.updateForm(msg)
	case exportPhaseWriting:
		if done, ok := msg.(exportDoneMsg); ok {
			m.phase = exportPhaseDone
			m.result = done
			return m, nil
		}

		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m ExportModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	dr, err := m.answers.timeframe.resolve(time.Now())
	if err != nil {
		m.phase = exportPhaseDone
		m.result = exportDoneMsg{err: err}
		return m, nil
	}

	dir := m.answers.dir
	if dir == "" {
		dir = defaultExportDir
	}

	m.phase = exportPhaseWriting
	return m, tea.Batch(m.spinner.Tick, writeExportCmd(m.svc, dr, dir, m.answers.summary))
}

type exportDoneMsg struct {
	files   []string
	count   int
	summary string
	err     error
}

func writeExportCmd(svc *export.Service, dr DateRange, dir string, withSummary bool) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), exportTimeout)
		defer cancel()

		sales, err := svc.Export(ctx, dr.Filter())
		if err != nil {
			return exportDoneMsg{err: err}
		}

		if err := os.MkdirAll(dir, 0o755); err != nil {
			return exportDoneMsg{err: fmt.Errorf("creating %s: %w", dir, err)}
		}

		var csvBuf bytes.Buffer
		if err := svc.WriteCSV(&csvBuf, sales); err != nil {
			return exportDoneMsg{err: err}
		}

		files := map[string][]byte{"sales.csv": csvBuf.Bytes()}
		names := []string{"sales.csv"}

		summary := svc.GenerateSummary(sales)
		if withSummary {
			files["summary.txt"] = []byte(summary)
			names = append(names, "summary.txt")
		}

		written := make([]string, 0, len(names))
		for _, name := range names {
			path := filepath.Join(dir, name)
			if err := os.WriteFile(path, files[name], 0o644); err != nil {
				return exportDoneMsg{files: written, err: fmt.Errorf("writing %s: %w", name, err)}
			}

			written = append(written, path)
		}

		return exportDoneMsg{files: written, count: len(sales), summary: summary}
	}
}

func (m ExportModel) View() string {
	pad := lipgloss.NewStyle().Padding(1)

	switch m.phase {
	case exportPhaseAsk:
		return pad.Render(m.form.View())
	case exportPhaseWriting:
		return pad.Render(m.spinner.View() + " Exporting sales...")
	}

	r := m.result
	if r.err != nil {
		return pad.Render(errorStyle.Render(fmt.Sprintf("Error: %v", r.err)))
	}

	lines := []string{
		successStyle.Render(fmt.Sprintf("Exported %d sale(s)", r.count)),
	}

	for _, f := range r.files {
		lines = append(lines, faintStyle.Render("  "+f))
	}

	if r.summary != "" {
		lines = append(lines, "", r.summary)
	}

	return pad.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}
