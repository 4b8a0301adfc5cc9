package layout

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/kmacinski/slidewin/internal/window"
)

// Direction represents the split direction
type Direction int

const (
	Horizontal Direction = iota
	Vertical
)

// Slot is a named area in the layout. Leaf slots render the window of the
// same name.
type Slot struct {
	Name      string
	Direction Direction
	Children  []Slot
	Ratios    []int
}

// Layout defines the structure of slots
type Layout struct {
	Name      string
	Direction Direction
	Slots     []Slot
	Ratios    []int
}

// Window names shared by every layout
const (
	SlotSequence = "sequence"
	SlotStep     = "step"
	SlotCode     = "code"
)

// Columns puts sequence over step on the left and code on the right. ratio
// splits the left column top:bottom.
func Columns(ratio [2]int) Layout {
	return Layout{
		Name:      "columns",
		Direction: Horizontal,
		Ratios:    []int{55, 45},
		Slots: []Slot{
			{
				Name:      "left",
				Direction: Vertical,
				Ratios:    ratio[:],
				Children: []Slot{
					{Name: SlotSequence},
					{Name: SlotStep},
				},
			},
			{Name: SlotCode},
		},
	}
}

// Stacked puts all three windows in one column.
func Stacked(ratio [2]int) Layout {
	return Layout{
		Name:      "stacked",
		Direction: Vertical,
		Ratios:    []int{ratio[0], ratio[1] / 2, ratio[1] - ratio[1]/2},
		Slots: []Slot{
			{Name: SlotSequence},
			{Name: SlotStep},
			{Name: SlotCode},
		},
	}
}

// Breakpoint defines when to switch layouts
type Breakpoint struct {
	MinWidth int
	Layout   Layout
}

// ResponsiveConfig defines breakpoints for responsive layouts
type ResponsiveConfig struct {
	Breakpoints []Breakpoint
}

// Responsive returns the breakpoints for a configured top:bottom ratio.
func Responsive(ratio [2]int) ResponsiveConfig {
	if ratio[0] <= 0 || ratio[1] <= 0 {
		ratio = [2]int{40, 60}
	}
	return ResponsiveConfig{
		Breakpoints: []Breakpoint{
			{MinWidth: 110, Layout: Columns(ratio)},
			{MinWidth: 0, Layout: Stacked(ratio)},
		},
	}
}

// DefaultResponsive is the default responsive configuration
var DefaultResponsive = Responsive([2]int{40, 60})

// GetLayout returns the appropriate layout for the given width
func (r *ResponsiveConfig) GetLayout(width int) Layout {
	for _, bp := range r.Breakpoints {
		if width >= bp.MinWidth {
			return bp.Layout
		}
	}
	return r.Breakpoints[len(r.Breakpoints)-1].Layout
}

// Manager handles layout rendering
type Manager struct {
	responsive ResponsiveConfig
	current    Layout
	width      int
	height     int
}

// NewManager creates a new layout manager
func NewManager(responsive ResponsiveConfig) *Manager {
	return &Manager{
		responsive: responsive,
		current:    responsive.GetLayout(0),
	}
}

// Resize updates the layout dimensions
func (m *Manager) Resize(width, height int) {
	m.width = width
	m.height = height
	m.current = m.responsive.GetLayout(width)
}

// CurrentLayout returns the current layout
func (m *Manager) CurrentLayout() Layout {
	return m.current
}

// Render renders all windows according to the layout
func (m *Manager) Render(windows map[string]window.Window, statusBar string) string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	// Reserve space for status bar
	contentHeight := m.height - 1

	content := m.renderSlots(m.current.Slots, m.current.Ratios, m.current.Direction, m.width, contentHeight, windows)
	return lipgloss.JoinVertical(lipgloss.Left, content, statusBar)
}

func (m *Manager) renderSlots(slots []Slot, ratios []int, dir Direction, width, height int, windows map[string]window.Window) string {
	if len(slots) == 0 {
		return ""
	}

	sizes := calculateSizes(ratios, width, height, dir)

	var rendered []string
	for i, slot := range slots {
		slotWidth, slotHeight := width, height
		if dir == Horizontal {
			slotWidth = sizes[i]
		} else {
			slotHeight = sizes[i]
		}

		var content string
		if len(slot.Children) > 0 {
			content = m.renderSlots(slot.Children, slot.Ratios, slot.Direction, slotWidth, slotHeight, windows)
		} else if w, ok := windows[slot.Name]; ok {
			content = w.View(slotWidth, slotHeight)
		} else {
			content = strings.Repeat(" ", slotWidth)
		}

		rendered = append(rendered, content)
	}

	if dir == Horizontal {
		return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
	}
	return lipgloss.JoinVertical(lipgloss.Left, rendered...)
}

func calculateSizes(ratios []int, width, height int, dir Direction) []int {
	total := 0
	for _, r := range ratios {
		total += r
	}

	dimension := height
	if dir == Horizontal {
		dimension = width
	}

	sizes := make([]int, len(ratios))
	remaining := dimension
	for i, r := range ratios {
		if i == len(ratios)-1 {
			// Last slot gets remaining space to avoid rounding issues
			sizes[i] = remaining
		} else {
			size := (dimension * r) / total
			sizes[i] = size
			remaining -= size
		}
	}

	return sizes
}

// GetSlotNames returns the leaf slot names in focus order
func (m *Manager) GetSlotNames() []string {
	return getSlotNamesRecursive(m.current.Slots)
}

func getSlotNamesRecursive(slots []Slot) []string {
	var names []string
	for _, slot := range slots {
		if len(slot.Children) > 0 {
			names = append(names, getSlotNamesRecursive(slot.Children)...)
		} else {
			names = append(names, slot.Name)
		}
	}
	return names
}
