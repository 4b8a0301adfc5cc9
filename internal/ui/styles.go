package ui

import "github.com/charmbracelet/lipgloss"

// Styles holds all the lipgloss styles for the application
type Styles struct {
	// Window styles
	WindowFocused   lipgloss.Style
	WindowUnfocused lipgloss.Style
	WindowTitle     lipgloss.Style

	// Sequence cells
	Element       lipgloss.Style
	ElementWindow lipgloss.Style
	ElementBest   lipgloss.Style
	ElementBoth   lipgloss.Style
	ElementMatch  lipgloss.Style
	ElementMiss   lipgloss.Style
	Index         lipgloss.Style

	// Step results
	Value   lipgloss.Style
	Match   lipgloss.Style
	NoMatch lipgloss.Style

	// List styles
	ListItem         lipgloss.Style
	ListItemSelected lipgloss.Style
	ListItemMuted    lipgloss.Style

	// Status bar
	StatusBar     lipgloss.Style
	StatusBarItem lipgloss.Style
	StatusError   lipgloss.Style

	// Modal
	Modal      lipgloss.Style
	ModalTitle lipgloss.Style

	// General
	Muted lipgloss.Style
	Bold  lipgloss.Style
}

// NewStyles creates a new Styles instance with the given colors
func NewStyles(c Colors) Styles {
	cell := lipgloss.NewStyle().Padding(0, 1)

	return Styles{
		// Window styles
		WindowFocused: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(c.BorderFocused),
		WindowUnfocused: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(c.BorderUnfocused),
		WindowTitle: lipgloss.NewStyle().
			Bold(true).
			Foreground(c.Header).
			Padding(0, 1),

		// Sequence cells
		Element: cell.
			Foreground(c.Text),
		ElementWindow: cell.
			Background(c.Window).
			Foreground(c.StatusBar).
			Bold(true),
		ElementBest: cell.
			Foreground(c.Best).
			Underline(true),
		ElementBoth: cell.
			Background(c.Best).
			Foreground(c.StatusBar).
			Bold(true),
		ElementMatch: cell.
			Background(c.Match).
			Foreground(c.StatusBar).
			Bold(true),
		ElementMiss: cell.
			Background(c.NoMatch).
			Foreground(c.StatusBar),
		Index: cell.
			Foreground(c.Muted),

		// Step results
		Value: lipgloss.NewStyle().
			Foreground(c.Window).
			Bold(true),
		Match: lipgloss.NewStyle().
			Foreground(c.Match).
			Bold(true),
		NoMatch: lipgloss.NewStyle().
			Foreground(c.NoMatch).
			Bold(true),

		// List styles
		ListItem: lipgloss.NewStyle().
			Foreground(c.Text),
		ListItemSelected: lipgloss.NewStyle().
			Foreground(c.Header).
			Bold(true),
		ListItemMuted: lipgloss.NewStyle().
			Foreground(c.Muted),

		// Status bar
		StatusBar: lipgloss.NewStyle().
			Background(c.StatusBar).
			Foreground(c.StatusBarText).
			Padding(0, 1),
		StatusBarItem: lipgloss.NewStyle().
			Foreground(c.StatusBarText).
			Padding(0, 1),
		StatusError: lipgloss.NewStyle().
			Foreground(c.NoMatch).
			Bold(true),

		// Modal
		Modal: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(c.BorderFocused).
			Padding(1, 2),
		ModalTitle: lipgloss.NewStyle().
			Bold(true).
			Foreground(c.Header).
			MarginBottom(1),

		// General
		Muted: lipgloss.NewStyle().
			Foreground(c.Muted),
		Bold: lipgloss.NewStyle().
			Bold(true),
	}
}

// DefaultStyles returns styles with the default color palette
var DefaultStyles = NewStyles(DefaultColors)
