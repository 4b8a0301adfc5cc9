package window

import tea "github.com/charmbracelet/bubbletea"

// Window is one pane of the visualizer
type Window interface {
	// Update handles input when focused
	Update(msg tea.Msg) (Window, tea.Cmd)

	// View renders the window into width x height cells
	View(width, height int) string

	// Focus state
	Focused() bool
	SetFocus(bool)

	// Identity
	Name() string
}
