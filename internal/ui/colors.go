package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/kmacinski/slidewin/internal/config"
)

// Colors defines the color palette for the application
type Colors struct {
	Window          lipgloss.Color
	Best            lipgloss.Color
	Match           lipgloss.Color
	NoMatch         lipgloss.Color
	Header          lipgloss.Color
	BorderFocused   lipgloss.Color
	BorderUnfocused lipgloss.Color
	StatusBar       lipgloss.Color
	StatusBarText   lipgloss.Color
	Muted           lipgloss.Color
	Text            lipgloss.Color
}

// ColorsFrom converts configured hex colors into a palette
func ColorsFrom(c config.ColorConfig) Colors {
	return Colors{
		Window:          lipgloss.Color(c.Window),
		Best:            lipgloss.Color(c.Best),
		Match:           lipgloss.Color(c.Match),
		NoMatch:         lipgloss.Color(c.NoMatch),
		Header:          lipgloss.Color(c.Header),
		BorderFocused:   lipgloss.Color(c.BorderFocused),
		BorderUnfocused: lipgloss.Color(c.BorderUnfocused),
		StatusBar:       lipgloss.Color(c.StatusBar),
		StatusBarText:   lipgloss.Color(c.Text),
		Muted:           lipgloss.Color(c.Muted),
		Text:            lipgloss.Color(c.Text),
	}
}

// DefaultColors returns the default color palette
var DefaultColors = ColorsFrom(config.Default.Colors)
