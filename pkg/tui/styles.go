package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/vango-dev/loadboard/pkg/workload"
)

var (
	ColorText   = lipgloss.Color("#1f2937")
	ColorMuted  = lipgloss.Color("#6b7280")
	ColorAccent = lipgloss.Color("#2563eb")
	ColorBorder = lipgloss.Color("#d1d5db")
	ColorStripe = lipgloss.Color("#f3f4f6")
	ColorError  = lipgloss.Color("#dc2626")
)

// Styles holds the lipgloss styles of the model.
type Styles struct {
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Header   lipgloss.Style
	Box      lipgloss.Style
	Row      lipgloss.Style
	RowAlt   lipgloss.Style
	Selected lipgloss.Style
	Footer   lipgloss.Style
	Error    lipgloss.Style
}

// DefaultStyles returns the default styles.
func DefaultStyles() Styles {
	return Styles{
		Title:    lipgloss.NewStyle().Bold(true).Foreground(ColorText),
		Subtitle: lipgloss.NewStyle().Foreground(ColorMuted).MarginBottom(1),
		Header:   lipgloss.NewStyle().Bold(true).Foreground(ColorMuted),
		Box: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(0, 1).
			MarginRight(1),
		Row:      lipgloss.NewStyle().Foreground(ColorText),
		RowAlt:   lipgloss.NewStyle().Foreground(ColorText).Background(ColorStripe),
		Selected: lipgloss.NewStyle().Bold(true).Foreground(ColorAccent),
		Footer:   lipgloss.NewStyle().Foreground(ColorMuted).MarginTop(1),
		Error:    lipgloss.NewStyle().Foreground(ColorError),
	}
}

// Category colors a category name the way the charts do.
func (s Styles) Category(c workload.Category) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(c.Color()))
}
