package ui

import (
	"github.com/charmbracelet/glamour"
)

// RenderMarkdown renders a markdown document for the terminal. If the
// renderer cannot be set up the raw markdown is returned unchanged.
func RenderMarkdown(md string) string {
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		return md
	}

	out, err := renderer.Render(md)
	if err != nil {
		return md
	}
	return out
}
