// Package ui renders the per-action console report and asks the operator for
// confirmation.
package ui

import (
	"io"

	"github.com/charmbracelet/lipgloss"
)

var (
	colorGreen  = lipgloss.Color("42")
	colorRed    = lipgloss.Color("196")
	colorYellow = lipgloss.Color("214")
	colorCyan   = lipgloss.Color("51")
	colorDim    = lipgloss.Color("240")
)

// styles is bound to one renderer so color detection follows the writer the
// report goes to rather than the process stdout.
type styles struct {
	live    lipgloss.Style
	would   lipgloss.Style
	err     lipgloss.Style
	header  lipgloss.Style
	dim     lipgloss.Style
	added   lipgloss.Style
	removed lipgloss.Style
}

func newStyles(w io.Writer) styles {
	r := lipgloss.NewRenderer(w)
	return styles{
		live:    r.NewStyle().Foreground(colorGreen),
		would:   r.NewStyle().Foreground(colorYellow),
		err:     r.NewStyle().Bold(true).Foreground(colorRed),
		header:  r.NewStyle().Bold(true).Foreground(colorCyan),
		dim:     r.NewStyle().Foreground(colorDim),
		added:   r.NewStyle().Foreground(colorGreen),
		removed: r.NewStyle().Foreground(colorRed),
	}
}
