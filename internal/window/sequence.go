package window

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/kmacinski/slidewin/internal/engine"
	"github.com/kmacinski/slidewin/internal/ui"
)

// SequenceView draws the input with the current and best windows
// highlighted and an index ruler under each row of cells.
type SequenceView struct {
	Base
	seq  engine.Sequence
	spec engine.WindowSpec
	step *engine.StepResult
}

// NewSequenceView creates a new sequence window
func NewSequenceView(styles ui.Styles) *SequenceView {
	return &SequenceView{
		Base: NewBase("sequence", styles),
	}
}

// SetRun shows a new sequence and clears the highlighted step.
func (s *SequenceView) SetRun(seq engine.Sequence, spec engine.WindowSpec) {
	s.seq = seq
	s.spec = spec
	s.step = nil
}

// SetStep highlights step; nil clears the highlight.
func (s *SequenceView) SetStep(step *engine.StepResult) {
	s.step = step
}

// Update does nothing; the sequence is driven by the app.
func (s *SequenceView) Update(msg tea.Msg) (Window, tea.Cmd) {
	return s, nil
}

// View renders the cells
func (s *SequenceView) View(width, height int) string {
	contentWidth := width - 2
	if contentWidth < 1 {
		return ""
	}

	var body []string
	if s.seq.Len() == 0 {
		body = append(body, s.styles.Muted.Render("No input"))
		return s.frame(width, height, s.title(), body)
	}

	cellWidth := 1
	for _, e := range s.seq.Elements() {
		cellWidth = max(cellWidth, lipgloss.Width(e))
	}
	for i := 0; i < s.seq.Len(); i++ {
		cellWidth = max(cellWidth, len(fmt.Sprint(i)))
	}
	perRow := max(contentWidth/(cellWidth+2), 1)

	for start := 0; start < s.seq.Len(); start += perRow {
		end := min(start+perRow, s.seq.Len())
		var cells, ruler []string
		for i := start; i < end; i++ {
			cells = append(cells, s.cellStyle(i).Render(fmt.Sprintf("%*s", cellWidth, s.seq.Format(i))))
			ruler = append(ruler, s.styles.Index.Render(fmt.Sprintf("%*d", cellWidth, i)))
		}
		body = append(body, strings.Join(cells, ""), strings.Join(ruler, ""), "")
	}

	body = append(body, s.legend()...)
	return s.frame(width, height, s.title(), body)
}

func (s *SequenceView) title() string {
	if s.spec.Algorithm == "" {
		return "Sequence"
	}
	size := "variable window"
	if s.spec.WindowType == engine.Fixed {
		size = fmt.Sprintf("window %d", s.spec.WindowSize)
	}
	return fmt.Sprintf("Sequence · %s · %s", s.spec.Algorithm.Label(), size)
}

func (s *SequenceView) legend() []string {
	var lines []string
	if s.spec.Algorithm == engine.PermutationMatch {
		lines = append(lines, s.styles.Muted.Render("pattern ")+s.styles.Bold.Render(s.spec.Pattern.String()))
	}
	if s.step == nil {
		return lines
	}
	lines = append(lines, s.styles.Muted.Render("window  ")+
		s.styles.ElementWindow.Render(fmt.Sprintf("[%d..%d]", s.step.WindowStart, s.step.WindowEnd)))
	if s.step.Best != nil {
		lines = append(lines, s.styles.Muted.Render("best    ")+
			s.styles.ElementBest.Render(fmt.Sprintf("[%d..%d] length %d", s.step.Best.Start, s.step.Best.End, s.step.Best.Len())))
	}
	return lines
}

func (s *SequenceView) cellStyle(i int) lipgloss.Style {
	inWindow := s.step != nil && i >= s.step.WindowStart && i <= s.step.WindowEnd
	inBest := s.step != nil && s.step.Best != nil && i >= s.step.Best.Start && i <= s.step.Best.End

	switch {
	case inWindow && s.step.Value.IsBool():
		if s.step.Value.Truth() {
			return s.styles.ElementMatch
		}
		return s.styles.ElementMiss
	case inWindow && inBest:
		return s.styles.ElementBoth
	case inWindow:
		return s.styles.ElementWindow
	case inBest:
		return s.styles.ElementBest
	}
	return s.styles.Element
}
