package window

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/kmacinski/slidewin/internal/ui"
)

// Base provides common functionality for windows
type Base struct {
	name    string
	focused bool
	styles  ui.Styles
}

// NewBase creates a new base window
func NewBase(name string, styles ui.Styles) Base {
	return Base{
		name:   name,
		styles: styles,
	}
}

// Name returns the window name
func (b *Base) Name() string {
	return b.name
}

// Focused returns whether the window is focused
func (b *Base) Focused() bool {
	return b.focused
}

// SetFocus sets the focus state
func (b *Base) SetFocus(focused bool) {
	b.focused = focused
}

// Styles returns the window styles
func (b *Base) Styles() ui.Styles {
	return b.styles
}

// frame draws a bordered box of exactly width x height around a title and
// body lines, padding or cutting the body to fit.
func (b *Base) frame(width, height int, title string, body []string) string {
	style := b.styles.WindowUnfocused
	if b.focused {
		style = b.styles.WindowFocused
	}

	inner := height - 2
	if width < 3 || inner < 1 {
		return ""
	}

	lines := append([]string{b.styles.WindowTitle.Render(title)}, body...)
	for len(lines) < inner {
		lines = append(lines, "")
	}
	lines = lines[:inner]

	return style.
		Width(width - 2).
		Height(inner).
		Render(strings.Join(lines, "\n"))
}

// truncate cuts s to at most width cells.
func truncate(s string, width int) string {
	if width < 1 {
		return ""
	}
	if lipgloss.Width(s) <= width {
		return s
	}
	r := []rune(s)
	for len(r) > 0 && lipgloss.Width(string(r))+1 > width {
		r = r[:len(r)-1]
	}
	return string(r) + "…"
}
