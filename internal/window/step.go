package window

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/kmacinski/slidewin/internal/engine"
	"github.com/kmacinski/slidewin/internal/keys"
	"github.com/kmacinski/slidewin/internal/ui"
)

// StepView shows the selected step's result and the steps emitted so far.
type StepView struct {
	Base
	history  []engine.StepResult
	selected int
	total    int
	offset   int
	onSelect func(index int) tea.Cmd
}

// NewStepView creates a new step window
func NewStepView(styles ui.Styles) *StepView {
	return &StepView{
		Base:     NewBase("step", styles),
		selected: -1,
	}
}

// SetOnSelect sets the callback for when the user picks a history entry
func (s *StepView) SetOnSelect(fn func(index int) tea.Cmd) {
	s.onSelect = fn
}

// SetHistory replaces the emitted steps. selected is -1 before the first
// step; total is the number of steps the run will emit.
func (s *StepView) SetHistory(history []engine.StepResult, selected, total int) {
	s.history = history
	s.selected = selected
	s.total = total
}

// Update moves the selection through the history
func (s *StepView) Update(msg tea.Msg) (Window, tea.Cmd) {
	if !s.focused || len(s.history) == 0 {
		return s, nil
	}

	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}

	prev := s.selected
	last := len(s.history) - 1
	switch {
	case key.Matches(km, keys.DefaultKeyMap.Down):
		s.selected = min(s.selected+1, last)
	case key.Matches(km, keys.DefaultKeyMap.Up):
		s.selected = max(s.selected-1, 0)
	case key.Matches(km, keys.DefaultKeyMap.GotoTop):
		s.selected = 0
	case key.Matches(km, keys.DefaultKeyMap.GotoBot):
		s.selected = last
	}

	if s.selected != prev && s.onSelect != nil {
		return s, s.onSelect(s.selected)
	}
	return s, nil
}

// View renders the current result followed by the history list
func (s *StepView) View(width, height int) string {
	contentWidth := width - 2
	if contentWidth < 1 {
		return ""
	}

	title := fmt.Sprintf("Step %d/%d", s.selected+1, s.total)
	var body []string

	switch {
	case s.total == 0:
		body = append(body, s.styles.Muted.Render("Nothing to step through: the window does not fit"))
		return s.frame(width, height, "Step", body)
	case s.selected < 0:
		body = append(body, s.styles.Muted.Render("Press n or space to start"))
		return s.frame(width, height, title, body)
	}

	cur := s.history[s.selected]
	body = append(body,
		s.styles.Muted.Render("result  ")+s.renderValue(cur.Value),
		truncate(cur.Description, contentWidth),
	)
	if cur.Best != nil {
		body = append(body, s.styles.Muted.Render(fmt.Sprintf("best    [%d..%d] length %d", cur.Best.Start, cur.Best.End, cur.Best.Len())))
	}
	body = append(body, "", s.styles.Bold.Render("History"))

	// Visible history rows, keeping the selection in view
	rows := max(height-2-1-len(body), 1)
	if s.selected < s.offset {
		s.offset = s.selected
	}
	if s.selected >= s.offset+rows {
		s.offset = s.selected - rows + 1
	}
	end := min(s.offset+rows, len(s.history))
	for i := s.offset; i < end; i++ {
		body = append(body, s.renderEntry(i, contentWidth))
	}

	return s.frame(width, height, title, body)
}

func (s *StepView) renderValue(v engine.Value) string {
	if !v.IsBool() {
		return s.styles.Value.Render(v.Display(2))
	}
	if v.Truth() {
		return s.styles.Match.Render("match")
	}
	return s.styles.NoMatch.Render("no match")
}

func (s *StepView) renderEntry(i, width int) string {
	r := s.history[i]
	line := fmt.Sprintf("%3d  [%d..%d]  %s", i+1, r.WindowStart, r.WindowEnd, r.Value.Display(2))
	if i == s.selected {
		return s.styles.ListItemSelected.Render(truncate("> "+line, width))
	}
	return s.styles.ListItem.Render(truncate("  "+line, width))
}
