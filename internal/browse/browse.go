// Package browse is the interactive full-screen view: a navigable record
// list with a detail pane, the live pattern analysis, and an add form.
// Every data decision goes through the service, and the data file is
// re-read whenever it changes on disk.
package browse

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/smais007/mistake-pattern-analyzer/internal/analyzer"
	"github.com/smais007/mistake-pattern-analyzer/internal/category"
	"github.com/smais007/mistake-pattern-analyzer/internal/mistake"
	"github.com/smais007/mistake-pattern-analyzer/internal/service"
	"github.com/smais007/mistake-pattern-analyzer/internal/store"
)

type viewMode int

const (
	modeList viewMode = iota
	modeDetail
	modeAnalysis
	modeForm
	modeConfirmDelete
)

// Model is the root Bubble Tea model for the browse view.
type Model struct {
	svc *service.Service
	st  *store.Store

	records []mistake.Mistake
	cursor  int
	mode    viewMode
	form    formModel

	width  int
	height int
	status string

	watch *watcher
}

// New creates the browse model over a loaded service.
func New(svc *service.Service, st *store.Store) Model {
	m := Model{
		svc:     svc,
		st:      st,
		records: svc.All(),
		mode:    modeList,
		status:  fmt.Sprintf("%d mistakes", svc.Count()),
	}
	if w, err := newWatcher(st); err == nil {
		m.watch = w
	}
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	if m.watch == nil {
		return nil
	}
	return m.watch.wait()
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case fileChangedMsg:
		var cmds []tea.Cmd
		if m.mode != modeForm {
			cmds = append(cmds, m.reload())
		}
		if m.watch != nil {
			cmds = append(cmds, m.watch.wait())
		}
		return m, tea.Batch(cmds...)

	case reloadedMsg:
		m.records = m.svc.All()
		if m.cursor >= len(m.records) && m.cursor > 0 {
			m.cursor = len(m.records) - 1
		}
		m.status = fmt.Sprintf("%d mistakes", len(m.records))
		if msg.skipped > 0 {
			m.status += fmt.Sprintf(" (%d corrupted lines skipped)", msg.skipped)
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	if m.mode == modeForm {
		var cmd tea.Cmd
		m.form, cmd = m.form.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.mode == modeForm {
		return m.handleFormKey(msg)
	}

	if m.mode == modeConfirmDelete {
		switch msg.String() {
		case "y", "Y", "enter":
			return m.deleteSelected()
		default:
			m.mode = modeList
			m.status = "delete cancelled"
			return m, nil
		}
	}

	switch {
	case key.Matches(msg, keys.Quit):
		if m.watch != nil {
			m.watch.close()
		}
		return m, tea.Quit

	case key.Matches(msg, keys.Back):
		m.mode = modeList
		return m, nil

	case key.Matches(msg, keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case key.Matches(msg, keys.Down):
		if m.cursor < len(m.records)-1 {
			m.cursor++
		}
		return m, nil

	case key.Matches(msg, keys.Enter):
		if len(m.records) > 0 {
			m.mode = modeDetail
		}
		return m, nil

	case key.Matches(msg, keys.Analysis):
		m.mode = modeAnalysis
		return m, nil

	case key.Matches(msg, keys.Add):
		m.form = newForm()
		m.mode = modeForm
		return m, m.form.Focus()

	case key.Matches(msg, keys.Delete):
		if len(m.records) > 0 {
			m.mode = modeConfirmDelete
		}
		return m, nil

	case key.Matches(msg, keys.Refresh):
		return m, m.reload()
	}

	return m, nil
}

func (m Model) handleFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = modeList
		m.status = "add cancelled"
		return m, nil
	case "ctrl+c":
		if m.watch != nil {
			m.watch.close()
		}
		return m, tea.Quit
	}

	if submitted, input := m.form.submitted(msg); submitted {
		rec, err := m.svc.Add(input.description, input.severity, input.date, input.resolution)
		if err != nil {
			m.form.errMsg = err.Error()
			return m, nil
		}
		m.records = m.svc.All()
		m.cursor = len(m.records) - 1
		m.mode = modeList
		m.status = fmt.Sprintf("added %s as %s", rec.ID, rec.Category.Display())
		return m, nil
	}

	var cmd tea.Cmd
	m.form, cmd = m.form.Update(msg)
	return m, cmd
}

func (m Model) deleteSelected() (tea.Model, tea.Cmd) {
	rec := m.records[m.cursor]
	if err := m.svc.Delete(rec.ID); err != nil {
		m.status = err.Error()
	} else {
		m.status = fmt.Sprintf("deleted %s", rec.ID)
	}
	m.records = m.svc.All()
	if m.cursor >= len(m.records) && m.cursor > 0 {
		m.cursor = len(m.records) - 1
	}
	m.mode = modeList
	return m, nil
}

type reloadedMsg struct{ skipped int }

func (m Model) reload() tea.Cmd {
	svc := m.svc
	return func() tea.Msg {
		issues, err := svc.Reload()
		if err != nil {
			return reloadedMsg{}
		}
		return reloadedMsg{skipped: len(issues)}
	}
}

// View implements tea.Model.
func (m Model) View() string {
	var body string
	switch m.mode {
	case modeDetail:
		body = m.detailView()
	case modeAnalysis:
		body = m.analysisView()
	case modeForm:
		body = m.form.View()
	case modeConfirmDelete:
		body = m.confirmView()
	default:
		body = m.listView()
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render("MISTAKE PATTERN ANALYZER"),
		body,
		statusStyle.Render(m.status),
		helpStyle.Render(m.helpLine()),
	)
}

func (m Model) helpLine() string {
	switch m.mode {
	case modeForm:
		return "tab next field • enter submit • esc cancel"
	case modeConfirmDelete:
		return "y confirm • any other key cancel"
	case modeList:
		return "↑/↓ navigate • enter detail • p patterns • n new • d delete • r reload • q quit"
	default:
		return "esc back • q quit"
	}
}

func (m Model) listView() string {
	if len(m.records) == 0 {
		return emptyStyle.Render("\n  No mistakes recorded yet. Press n to add one.\n")
	}

	var b strings.Builder
	for i, rec := range m.records {
		cursor := "  "
		line := fmt.Sprintf("%-14s %-10s %-15s %-8s %s",
			rec.ID, rec.FormattedDate(), rec.Category.Display(), rec.Severity, truncate(rec.Description, 48))
		if i == m.cursor {
			cursor = cursorStyle.Render("▸ ")
			line = selectedStyle.Render(line)
		}
		b.WriteString(cursor + line + "\n")
	}
	return b.String()
}

func (m Model) detailView() string {
	rec := m.records[m.cursor]
	var b strings.Builder
	fmt.Fprintf(&b, "\n  %s\n\n", headingStyle.Render(rec.ID))
	fmt.Fprintf(&b, "  %s %s\n", labelStyle.Render("Date:"), rec.FormattedDate())
	fmt.Fprintf(&b, "  %s %s\n", labelStyle.Render("Category:"), rec.Category.Display())
	fmt.Fprintf(&b, "  %s %s\n", labelStyle.Render("Severity:"), rec.Severity.Display())
	fmt.Fprintf(&b, "  %s %s\n", labelStyle.Render("Description:"), rec.Description)
	if rec.Resolution != "" {
		fmt.Fprintf(&b, "  %s %s\n", labelStyle.Render("Resolution:"), rec.Resolution)
	}
	fmt.Fprintf(&b, "\n  %s %s\n", labelStyle.Render("Suggestion:"), suggestionStyle.Render(analyzer.Suggestion(rec.Category)))
	return b.String()
}

func (m Model) analysisView() string {
	cats := m.svc.Categories()
	var b strings.Builder
	b.WriteString("\n" + headingStyle.Render("  Pattern Analysis") + "\n\n")

	freq := analyzer.Frequencies(cats)
	for _, c := range category.All() {
		if freq[c] > 0 {
			fmt.Fprintf(&b, "  %-16s %d\n", c.Display(), freq[c])
		}
	}
	if len(freq) > 0 {
		b.WriteString("\n")
	}
	if most, ok := analyzer.MostFrequent(cats); ok {
		fmt.Fprintf(&b, "  %s %s\n\n", labelStyle.Render("Most frequent:"), most.Display())
		fmt.Fprintf(&b, "  %s %s\n\n", labelStyle.Render("Suggestion:"), suggestionStyle.Render(analyzer.Suggestion(most)))
	}

	report := analyzer.Report(cats)
	for _, line := range strings.Split(report, "\n") {
		b.WriteString("  " + line + "\n")
	}
	return b.String()
}

func (m Model) confirmView() string {
	rec := m.records[m.cursor]
	return fmt.Sprintf("\n  %s\n\n  %s\n",
		warnStyle.Render(fmt.Sprintf("Delete %s?", rec.ID)),
		truncate(rec.Description, 60))
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-1]) + "…"
}
