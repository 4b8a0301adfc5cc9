package window

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/kmacinski/slidewin/internal/keys"
	"github.com/kmacinski/slidewin/internal/ui"
)

// CodeView shows the generated implementation for the current run
type CodeView struct {
	Base
	title  string
	note   string
	lines  []string
	cursor int // current line (for scrolling)
	height int
}

// NewCodeView creates a new code window
func NewCodeView(styles ui.Styles) *CodeView {
	return &CodeView{
		Base: NewBase("code", styles),
	}
}

// SetContent replaces the code. The cursor returns to the top.
func (c *CodeView) SetContent(code, title string) {
	c.title = title
	c.note = ""
	c.cursor = 0
	if code == "" {
		c.lines = nil
	} else {
		c.lines = strings.Split(strings.TrimRight(code, "\n"), "\n")
	}
}

// SetUnavailable clears the code and shows note instead.
func (c *CodeView) SetUnavailable(title, note string) {
	c.SetContent("", title)
	c.note = note
}

// Code returns the displayed source.
func (c *CodeView) Code() string {
	return strings.Join(c.lines, "\n")
}

// Cursor returns the current line, 0-indexed.
func (c *CodeView) Cursor() int {
	return c.cursor
}

// Update handles scrolling
func (c *CodeView) Update(msg tea.Msg) (Window, tea.Cmd) {
	if !c.focused {
		return c, nil
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		visibleLines := max(c.height-3, 1) // borders + title
		last := max(0, len(c.lines)-1)

		switch {
		case key.Matches(msg, keys.DefaultKeyMap.Down):
			c.cursor = min(c.cursor+1, last)
		case key.Matches(msg, keys.DefaultKeyMap.Up):
			c.cursor = max(c.cursor-1, 0)
		case key.Matches(msg, keys.DefaultKeyMap.HalfPgDn):
			c.cursor = min(c.cursor+visibleLines/2, last)
		case key.Matches(msg, keys.DefaultKeyMap.HalfPgUp):
			c.cursor = max(c.cursor-visibleLines/2, 0)
		case key.Matches(msg, keys.DefaultKeyMap.GotoTop):
			c.cursor = 0
		case key.Matches(msg, keys.DefaultKeyMap.GotoBot):
			c.cursor = last
		}
	}

	return c, nil
}

// View renders the code with line numbers
func (c *CodeView) View(width, height int) string {
	c.height = height

	contentWidth := width - 2
	visible := height - 3
	if contentWidth < 1 || visible < 1 {
		return c.frame(width, height, c.title, nil)
	}

	var body []string
	switch {
	case c.note != "":
		body = append(body, c.styles.Muted.Render(c.note))
	case len(c.lines) == 0:
		body = append(body, c.styles.Muted.Render("No code"))
	default:
		// Keep cursor in view
		start := c.cursor - visible/2
		start = min(start, len(c.lines)-visible)
		start = max(start, 0)
		end := min(start+visible, len(c.lines))

		numWidth := max(len(fmt.Sprintf("%d", len(c.lines))), 3)
		for i := start; i < end; i++ {
			body = append(body, c.renderLine(i, numWidth, contentWidth))
		}
	}

	return c.frame(width, height, c.renderTitle(visible), body)
}

func (c *CodeView) renderTitle(visible int) string {
	name := c.title
	if name == "" {
		name = "Code"
	}

	var pos string
	switch {
	case len(c.lines) <= visible:
	case c.cursor == 0:
		pos = " [top]"
	case c.cursor >= len(c.lines)-1:
		pos = " [bot]"
	default:
		pos = fmt.Sprintf(" [%d%%]", c.cursor*100/len(c.lines))
	}
	return name + pos
}

func (c *CodeView) renderLine(n, numWidth, maxWidth int) string {
	line := strings.ReplaceAll(c.lines[n], "\t", "    ")

	marker := "  "
	style := c.styles.ListItem
	if n == c.cursor && c.focused {
		marker = "> "
		style = c.styles.ListItemSelected
	}

	num := c.styles.Muted.Render(fmt.Sprintf("%*d │ ", numWidth, n+1))
	avail := maxWidth - len(marker) - numWidth - 3
	return marker + num + style.Render(truncate(line, avail))
}
