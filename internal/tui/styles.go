// Package tui renders the hoax checker in the terminal: a full-screen
// interactive view and a line-oriented console used by one-shot commands.
package tui

import (
	"github.com/charmbracelet/lipgloss"

	"hoax-detector/client/internal/present"
	"hoax-detector/client/internal/ui"
)

// Palette is the colour set for one theme.
type Palette struct {
	Foreground lipgloss.Color
	Muted      lipgloss.Color
	Border     lipgloss.Color
	Accent     lipgloss.Color
	Card       lipgloss.Color
}

var (
	lightPalette = Palette{
		Foreground: lipgloss.Color("#101F38"),
		Muted:      lipgloss.Color("#5b6472"),
		Border:     lipgloss.Color("#dce0e5"),
		Accent:     lipgloss.Color("#2563eb"),
		Card:       lipgloss.Color("#ffffff"),
	}
	darkPalette = Palette{
		Foreground: lipgloss.Color("#f2f2f2"),
		Muted:      lipgloss.Color("#9aa4b2"),
		Border:     lipgloss.Color("#2a3850"),
		Accent:     lipgloss.Color("#8BC34A"),
		Card:       lipgloss.Color("#1a2536"),
	}

	colorDanger  = lipgloss.Color("#e53935")
	colorWarning = lipgloss.Color("#FFC107")
	colorSuccess = lipgloss.Color("#43a047")
	colorInfo    = lipgloss.Color("#2196F3")
)

// Styles holds the rendered styles for the active theme.
type Styles struct {
	Theme   ui.Theme
	Title   lipgloss.Style
	Card    lipgloss.Style
	Label   lipgloss.Style
	Muted   lipgloss.Style
	Help    lipgloss.Style
	palette Palette
}

// StylesFor builds the style set for theme.
func StylesFor(theme ui.Theme) Styles {
	p := lightPalette
	if theme == ui.ThemeDark {
		p = darkPalette
	}
	return Styles{
		Theme:   theme,
		Title:   lipgloss.NewStyle().Bold(true).Foreground(p.Accent),
		Card:    lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(p.Border).Padding(0, 1),
		Label:   lipgloss.NewStyle().Bold(true).Foreground(p.Foreground),
		Muted:   lipgloss.NewStyle().Foreground(p.Muted),
		Help:    lipgloss.NewStyle().Foreground(p.Muted).Italic(true),
		palette: p,
	}
}

// Badge styles a risk badge by its class.
func (s Styles) Badge(b present.Badge) string {
	style := lipgloss.NewStyle().Bold(true).Padding(0, 1)
	switch b.Class {
	case present.BadgeHigh:
		style = style.Foreground(lipgloss.Color("#ffffff")).Background(colorDanger)
	case present.BadgeMedium:
		style = style.Foreground(lipgloss.Color("#101F38")).Background(colorWarning)
	case present.BadgeLow:
		style = style.Foreground(lipgloss.Color("#ffffff")).Background(colorSuccess)
	default:
		style = style.Foreground(s.palette.Foreground).Background(s.palette.Border)
	}
	return style.Render(b.Text)
}

// Status styles a status line by level.
func (s Styles) Status(message string, level ui.StatusLevel) string {
	style := lipgloss.NewStyle()
	switch level {
	case ui.StatusError:
		style = style.Foreground(colorDanger)
	case ui.StatusSuccess:
		style = style.Foreground(colorSuccess)
	default:
		style = style.Foreground(colorInfo)
	}
	return style.Render(message)
}
