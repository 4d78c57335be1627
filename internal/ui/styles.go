// Package ui holds the lipgloss styles shared by the report and the dashboard.
package ui

import "github.com/charmbracelet/lipgloss"

// Colors used throughout the tool.
var (
	ColorCyan    = lipgloss.Color("#00FFFF")
	ColorGreen   = lipgloss.Color("#00FF00")
	ColorYellow  = lipgloss.Color("#FFFF00")
	ColorMagenta = lipgloss.Color("#FF00FF")
	ColorRed     = lipgloss.Color("#FF0000")
	ColorBlue    = lipgloss.Color("#5F87FF")
	ColorOrange  = lipgloss.Color("#FFAF00")
	ColorGray    = lipgloss.Color("#666666")
	ColorWhite   = lipgloss.Color("#FFFFFF")
)

// Styles used by the dashboard chrome.
var (
	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorCyan)

	DimStyle = lipgloss.NewStyle().
			Foreground(ColorGray)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorRed).
			Bold(true)

	RowLabelStyle = lipgloss.NewStyle().
			Foreground(ColorGray)
)

// Palette maps category ids to render styles for report cells.
type Palette struct {
	styles []lipgloss.Style
}

// DefaultPalette returns the built-in category colors. Ids beyond the palette
// wrap around.
func DefaultPalette() Palette {
	colors := []lipgloss.Color{
		ColorCyan, ColorGreen, ColorYellow,
		ColorMagenta, ColorBlue, ColorOrange, ColorRed,
	}
	styles := make([]lipgloss.Style, len(colors))
	for i, c := range colors {
		styles[i] = lipgloss.NewStyle().Foreground(c)
	}
	return Palette{styles: styles}
}

// Style returns the style for a category id.
func (p Palette) Style(category int) lipgloss.Style {
	if len(p.styles) == 0 {
		return lipgloss.NewStyle()
	}
	if category < 0 {
		category = -category
	}
	return p.styles[category%len(p.styles)]
}
