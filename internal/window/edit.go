package window

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/kmacinski/slidewin/internal/engine"
	"github.com/kmacinski/slidewin/internal/keys"
	"github.com/kmacinski/slidewin/internal/ui"
)

// EditSubmittedMsg carries the edited input and pattern
type EditSubmittedMsg struct {
	Input   string
	Pattern string
}

// EditCancelledMsg is sent when the form is closed without applying
type EditCancelledMsg struct{}

// EditForm is the modal for typing a new input and pattern
type EditForm struct {
	Base
	mode   engine.Mode
	fields []textinput.Model
	active int
}

// NewEditForm creates a new edit form
func NewEditForm(styles ui.Styles) *EditForm {
	newField := func(prompt string) textinput.Model {
		ti := textinput.New()
		ti.Prompt = prompt
		ti.CharLimit = 4096
		return ti
	}
	return &EditForm{
		Base:   NewBase("edit", styles),
		fields: []textinput.Model{newField("input   › "), newField("pattern › ")},
	}
}

// Open fills the form and focuses the input field
func (f *EditForm) Open(input, pattern string, mode engine.Mode) tea.Cmd {
	f.mode = mode
	f.fields[0].SetValue(input)
	f.fields[1].SetValue(pattern)
	f.fields[0].CursorEnd()
	f.fields[1].CursorEnd()
	f.active = 0
	f.fields[1].Blur()
	return f.fields[0].Focus()
}

// Values returns the current field contents
func (f *EditForm) Values() (input, pattern string) {
	return f.fields[0].Value(), f.fields[1].Value()
}

// Update edits the active field
func (f *EditForm) Update(msg tea.Msg) (Window, tea.Cmd) {
	if km, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(km, keys.DefaultKeyMap.Escape):
			return f, func() tea.Msg { return EditCancelledMsg{} }
		case key.Matches(km, keys.DefaultKeyMap.Enter):
			input, pattern := f.Values()
			return f, func() tea.Msg { return EditSubmittedMsg{Input: input, Pattern: pattern} }
		case key.Matches(km, keys.DefaultKeyMap.Tab), key.Matches(km, keys.DefaultKeyMap.ShiftTab):
			f.fields[f.active].Blur()
			f.active = (f.active + 1) % len(f.fields)
			return f, f.fields[f.active].Focus()
		}
	}

	var cmd tea.Cmd
	f.fields[f.active], cmd = f.fields[f.active].Update(msg)
	return f, cmd
}

// View renders the form
func (f *EditForm) View(width, height int) string {
	contentWidth := width - 6 // padding and border
	if contentWidth < 1 || height < 6 {
		return ""
	}

	hint := "comma-separated integers"
	if f.mode == engine.ModeString {
		hint = "one element per character"
	}

	lines := []string{
		f.styles.ModalTitle.Render("Edit " + f.mode.String() + " input"),
		f.styles.Muted.Render(hint),
		"",
	}
	for i := range f.fields {
		f.fields[i].Width = contentWidth - lenPrompt(f.fields[i].Prompt) - 1
		lines = append(lines, f.fields[i].View())
	}
	lines = append(lines, "", f.styles.Muted.Render("enter apply · tab switch field · esc cancel"))

	return f.styles.Modal.
		Width(contentWidth).
		Render(strings.Join(lines, "\n"))
}

func lenPrompt(p string) int {
	return len([]rune(p))
}
