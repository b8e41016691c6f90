package browse

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
)

type keyMap struct {
	Up       key.Binding
	Down     key.Binding
	Enter    key.Binding
	Analysis key.Binding
	Add      key.Binding
	Delete   key.Binding
	Refresh  key.Binding
	Back     key.Binding
	Quit     key.Binding
}

var keys = keyMap{
	Up:       key.NewBinding(key.WithKeys("up", "k")),
	Down:     key.NewBinding(key.WithKeys("down", "j")),
	Enter:    key.NewBinding(key.WithKeys("enter")),
	Analysis: key.NewBinding(key.WithKeys("p")),
	Add:      key.NewBinding(key.WithKeys("n")),
	Delete:   key.NewBinding(key.WithKeys("d")),
	Refresh:  key.NewBinding(key.WithKeys("r")),
	Back:     key.NewBinding(key.WithKeys("esc")),
	Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c")),
}

var (
	titleStyle      = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")).Padding(0, 1)
	statusStyle     = lipgloss.NewStyle().Faint(true).Padding(0, 1)
	helpStyle       = lipgloss.NewStyle().Faint(true).Padding(0, 1)
	cursorStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14"))
	selectedStyle   = lipgloss.NewStyle().Bold(true)
	emptyStyle      = lipgloss.NewStyle().Faint(true)
	headingStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("13"))
	labelStyle      = lipgloss.NewStyle().Faint(true)
	suggestionStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	warnStyle       = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
	errStyle        = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
)
