package browse

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/smais007/mistake-pattern-analyzer/internal/mistake"
)

const (
	fieldDescription = iota
	fieldDate
	fieldResolution
	fieldSeverity
	fieldCount
)

// formModel is the add-mistake form: three text inputs plus a severity
// selector cycled with left/right.
type formModel struct {
	inputs   []textinput.Model
	severity int // index into mistake.Severities()
	focus    int
	errMsg   string
}

// formInput is the collected form state on submit.
type formInput struct {
	description string
	date        string
	resolution  string
	severity    mistake.Severity
}

func newForm() formModel {
	description := textinput.New()
	description.Placeholder = "What went wrong?"
	description.CharLimit = 500
	description.Width = 60

	date := textinput.New()
	date.Placeholder = mistake.DateFormat
	date.SetValue(time.Now().Format(mistake.DateFormat))
	date.CharLimit = 10
	date.Width = 12

	resolution := textinput.New()
	resolution.Placeholder = "Lesson learned (optional)"
	resolution.CharLimit = 500
	resolution.Width = 60

	return formModel{
		inputs:   []textinput.Model{description, date, resolution},
		severity: 1, // default medium
	}
}

// Focus focuses the first field.
func (f *formModel) Focus() tea.Cmd {
	f.focus = fieldDescription
	return f.inputs[fieldDescription].Focus()
}

// submitted reports whether the key event completes the form, returning
// the collected input.
func (f *formModel) submitted(msg tea.KeyMsg) (bool, formInput) {
	if msg.String() != "enter" {
		return false, formInput{}
	}
	// Enter on the severity row (the last field) submits; on text fields
	// it moves focus forward instead.
	if f.focus != fieldSeverity {
		return false, formInput{}
	}
	return true, formInput{
		description: f.inputs[fieldDescription].Value(),
		date:        f.inputs[fieldDate].Value(),
		resolution:  f.inputs[fieldResolution].Value(),
		severity:    mistake.Severities()[f.severity],
	}
}

func (f formModel) Update(msg tea.Msg) (formModel, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "tab", "down", "enter":
			if keyMsg.String() == "enter" && f.focus == fieldSeverity {
				break // handled by submitted
			}
			f.setFocus((f.focus + 1) % fieldCount)
			return f, nil
		case "shift+tab", "up":
			f.setFocus((f.focus + fieldCount - 1) % fieldCount)
			return f, nil
		case "left", "right":
			if f.focus == fieldSeverity {
				n := len(mistake.Severities())
				if keyMsg.String() == "left" {
					f.severity = (f.severity + n - 1) % n
				} else {
					f.severity = (f.severity + 1) % n
				}
				return f, nil
			}
		}
	}

	var cmds []tea.Cmd
	for i := range f.inputs {
		var cmd tea.Cmd
		f.inputs[i], cmd = f.inputs[i].Update(msg)
		cmds = append(cmds, cmd)
	}
	return f, tea.Batch(cmds...)
}

func (f *formModel) setFocus(idx int) {
	f.focus = idx
	for i := range f.inputs {
		if i == idx {
			f.inputs[i].Focus()
		} else {
			f.inputs[i].Blur()
		}
	}
}

func (f formModel) View() string {
	var b strings.Builder
	b.WriteString("\n" + headingStyle.Render("  New Mistake") + "\n\n")
	fmt.Fprintf(&b, "  %s\n  %s\n\n", labelStyle.Render("Description"), f.inputs[fieldDescription].View())
	fmt.Fprintf(&b, "  %s\n  %s\n\n", labelStyle.Render("Date"), f.inputs[fieldDate].View())
	fmt.Fprintf(&b, "  %s\n  %s\n\n", labelStyle.Render("Resolution"), f.inputs[fieldResolution].View())

	sev := make([]string, 0, len(mistake.Severities()))
	for i, s := range mistake.Severities() {
		label := fmt.Sprintf("  %s  ", s)
		if i == f.severity {
			if f.focus == fieldSeverity {
				label = cursorStyle.Render(fmt.Sprintf("▸ %s ◂", s))
			} else {
				label = selectedStyle.Render(fmt.Sprintf("[%s]", s))
			}
		}
		sev = append(sev, label)
	}
	fmt.Fprintf(&b, "  %s\n  %s\n", labelStyle.Render("Severity"), strings.Join(sev, " "))

	if f.errMsg != "" {
		fmt.Fprintf(&b, "\n  %s\n", errStyle.Render(f.errMsg))
	}
	return b.String()
}
