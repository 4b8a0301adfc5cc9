package app

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/kmacinski/slidewin/internal/codegen"
	"github.com/kmacinski/slidewin/internal/config"
	"github.com/kmacinski/slidewin/internal/keys"
	"github.com/kmacinski/slidewin/internal/layout"
	"github.com/kmacinski/slidewin/internal/ui"
	"github.com/kmacinski/slidewin/internal/watcher"
	"github.com/kmacinski/slidewin/internal/window"
)

// App is the main application model
type App struct {
	state  *State
	cfg    config.Config
	gen    *codegen.Generator
	layout *layout.Manager
	styles ui.Styles
	logger *slog.Logger

	// Windows
	sequenceView *window.SequenceView
	stepView     *window.StepView
	codeView     *window.CodeView
	help         *window.Help
	edit         *window.EditForm

	// Window registry, keyed by layout slot
	windows map[string]window.Window

	// Dimensions
	width  int
	height int

	// Status message
	statusMessage string

	// Scenario file watcher
	scenarioPath string
	watcher      *watcher.FileWatcher
	program      *tea.Program

	copy func(string) error
}

// New creates the application showing sc. A nil logger discards.
func New(cfg config.Config, gen *codegen.Generator, sc config.Scenario, logger *slog.Logger) (*App, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	state, err := NewState(sc)
	if err != nil {
		return nil, err
	}
	if state.Error != "" {
		logger.Warn("Scenario rejected, using defaults", "error", state.Error)
	}

	styles := ui.NewStyles(ui.ColorsFrom(cfg.Colors))

	sequenceView := window.NewSequenceView(styles)
	stepView := window.NewStepView(styles)
	codeView := window.NewCodeView(styles)

	sequenceView.SetFocus(true)

	a := &App{
		state:        state,
		cfg:          cfg,
		gen:          gen,
		layout:       layout.NewManager(layout.Responsive(cfg.Layout.DefaultRatio)),
		styles:       styles,
		logger:       logger,
		sequenceView: sequenceView,
		stepView:     stepView,
		codeView:     codeView,
		help:         window.NewHelp(styles),
		edit:         window.NewEditForm(styles),
		windows: map[string]window.Window{
			layout.SlotSequence: sequenceView,
			layout.SlotStep:     stepView,
			layout.SlotCode:     codeView,
		},
		copy: clipboard.WriteAll,
	}

	stepView.SetOnSelect(func(index int) tea.Cmd {
		return func() tea.Msg { return StepSelectedMsg{Index: index} }
	})

	a.refresh()
	return a, nil
}

// State exposes the application state
func (a *App) State() *State {
	return a.state
}

// SetScenarioFile makes the app reload path whenever it changes on disk.
// It takes effect in SetProgram.
func (a *App) SetScenarioFile(path string) {
	a.scenarioPath = path
}

// SetProgram sets the tea.Program reference for sending messages from watcher
func (a *App) SetProgram(p *tea.Program) {
	a.program = p
	if a.scenarioPath == "" {
		return
	}

	w, err := watcher.New(300*time.Millisecond, a.scenarioPath, func() {
		if a.program != nil {
			a.program.Send(ScenarioChangedMsg{})
		}
	})
	if err != nil {
		a.logger.Warn("Scenario watcher unavailable", "path", a.scenarioPath, "error", err)
		return
	}
	a.watcher = w
	a.watcher.Start()
	a.logger.Info("Watching scenario", "path", a.scenarioPath)
}

// Cleanup stops the watcher
func (a *App) Cleanup() {
	if a.watcher != nil {
		a.watcher.Stop()
	}
}

// Init initializes the application
func (a *App) Init() tea.Cmd {
	return tea.SetWindowTitle("slidewin")
}

// Update handles messages
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.layout.Resize(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		a.statusMessage = ""

		// Handle modal first
		switch a.state.ActiveModal {
		case "edit":
			var cmd tea.Cmd
			_, cmd = a.edit.Update(msg)
			return a, cmd
		case "help":
			return a.handleModalKey(msg)
		}

		return a.handleKey(msg)

	case TickMsg:
		return a.handleTick(msg)

	case StepSelectedMsg:
		a.state.Select(msg.Index)
		a.sync()
		return a, nil

	case window.EditSubmittedMsg:
		if err := a.state.SetInput(msg.Input, msg.Pattern); err != nil {
			a.logger.Debug("Edit rejected", "error", err)
			return a, nil
		}
		a.state.CloseModal()
		a.refresh()
		return a, nil

	case window.EditCancelledMsg:
		a.state.CloseModal()
		return a, nil

	case ScenarioChangedMsg:
		return a, a.loadScenario()

	case ScenarioLoadedMsg:
		if msg.Err != nil {
			a.state.fail(msg.Err)
			a.logger.Warn("Scenario reload failed", "path", a.scenarioPath, "error", msg.Err)
			return a, nil
		}
		if err := a.state.ApplyScenario(msg.Scenario); err != nil {
			a.logger.Warn("Scenario rejected", "path", a.scenarioPath, "error", err)
			return a, nil
		}
		a.statusMessage = "Reloaded " + a.scenarioPath
		a.logger.Info("Scenario reloaded", "path", a.scenarioPath, "algorithm", a.state.Algorithm)
		a.refresh()
		return a, nil

	case ErrorMsg:
		a.state.fail(msg.Err)
		return a, nil
	}

	return a, nil
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	km := keys.DefaultKeyMap

	switch {
	case key.Matches(msg, km.Quit):
		return a, tea.Quit

	case key.Matches(msg, km.Help):
		a.state.ToggleModal("help")
		return a, nil

	case key.Matches(msg, km.PlayPause):
		playing := a.state.TogglePlay()
		a.sync()
		if playing {
			return a, a.tick()
		}
		return a, nil

	case key.Matches(msg, km.Next):
		if moved, _ := a.state.Next(); !moved && a.state.Total() > 0 && a.state.Error == "" {
			a.statusMessage = "Last step"
		}
		a.sync()
		return a, nil

	case key.Matches(msg, km.Prev):
		a.state.Prev()
		a.sync()
		return a, nil

	case key.Matches(msg, km.Reset):
		a.state.Reset()
		a.sync()
		return a, nil

	case key.Matches(msg, km.NextAlgorithm), key.Matches(msg, km.PrevAlgorithm):
		a.reconfigure(a.state.CycleAlgorithm(key.Matches(msg, km.PrevAlgorithm)))
		return a, nil

	case key.Matches(msg, km.Grow):
		a.reconfigure(a.state.ResizeWindow(1))
		return a, nil

	case key.Matches(msg, km.Shrink):
		a.reconfigure(a.state.ResizeWindow(-1))
		return a, nil

	case key.Matches(msg, km.ToggleMode):
		a.reconfigure(a.state.ToggleMode())
		return a, nil

	case key.Matches(msg, km.Language):
		a.state.CycleLanguage()
		a.renderCode()
		return a, nil

	case key.Matches(msg, km.Edit):
		a.state.ActiveModal = "edit"
		return a, a.edit.Open(a.state.Inputs[a.state.Mode], a.state.Patterns[a.state.Mode], a.state.Mode)

	case key.Matches(msg, km.Yank):
		a.yank()
		return a, nil

	case key.Matches(msg, km.Tab):
		a.cycleFocus(false)
		return a, nil

	case key.Matches(msg, km.ShiftTab):
		a.cycleFocus(true)
		return a, nil
	}

	// Delegate to focused window
	return a.delegateToFocused(msg)
}

func (a *App) handleModalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Always allow quit
	if key.Matches(msg, keys.DefaultKeyMap.Quit) {
		return a, tea.Quit
	}

	// Close modal on ? or Escape
	if key.Matches(msg, keys.DefaultKeyMap.Help) || key.Matches(msg, keys.DefaultKeyMap.Escape) {
		a.state.CloseModal()
	}
	return a, nil
}

func (a *App) handleTick(msg TickMsg) (tea.Model, tea.Cmd) {
	if msg.Generation != a.state.Generation || !a.state.Playing {
		return a, nil
	}

	moved, err := a.state.Next()
	if err != nil {
		a.state.Playing = false
		a.sync()
		return a, nil
	}
	if !moved {
		if !a.cfg.Player.Loop {
			a.state.Playing = false
			a.statusMessage = "Finished"
			a.sync()
			return a, nil
		}
		a.state.Reset()
		a.state.Playing = true
		if _, err := a.state.Next(); err != nil {
			a.state.Playing = false
		}
	}

	a.sync()
	if !a.state.Playing {
		return a, nil
	}
	return a, a.tick()
}

// tick schedules the next playback step for the current generation
func (a *App) tick() tea.Cmd {
	gen := a.state.Generation
	return tea.Tick(a.cfg.Player.Interval, func(time.Time) tea.Msg {
		return TickMsg{Generation: gen}
	})
}

func (a *App) reconfigure(err error) {
	if err != nil {
		a.logger.Debug("Configuration rejected", "error", err)
		return
	}
	a.logger.Debug("Run rebuilt",
		"algorithm", a.state.Algorithm,
		"mode", a.state.Mode,
		"window_size", a.state.WindowSize,
		"steps", a.state.Total())
	a.refresh()
}

func (a *App) yank() {
	code := a.codeView.Code()
	if code == "" {
		a.statusMessage = "No code to copy"
		return
	}
	if err := a.copy(code); err != nil {
		a.state.fail(fmt.Errorf("clipboard: %w", err))
		return
	}
	a.statusMessage = fmt.Sprintf("Copied %d lines of %s", strings.Count(code, "\n")+1, a.state.Language.Label())
}

func (a *App) loadScenario() tea.Cmd {
	path := a.scenarioPath
	return func() tea.Msg {
		sc, err := config.LoadScenario(path)
		return ScenarioLoadedMsg{Scenario: sc, Err: err}
	}
}

// refresh pushes a rebuilt run into every window
func (a *App) refresh() {
	if a.state.Run != nil {
		a.sequenceView.SetRun(a.state.Run.Sequence(), a.state.Run.Spec())
	}
	a.renderCode()
	a.sync()
}

// sync pushes the step selection into the windows
func (a *App) sync() {
	a.sequenceView.SetStep(a.state.Current())
	a.stepView.SetHistory(a.state.History, a.state.Cursor, a.state.Total())
}

func (a *App) renderCode() {
	if a.state.Run == nil {
		return
	}
	spec := a.state.Run.Spec()
	title := fmt.Sprintf("%s · %s %s", a.state.Language.Label(), spec.WindowType, spec.Algorithm.Label())

	code, err := a.gen.Generate(codegen.Request{
		Algorithm:  spec.Algorithm,
		WindowType: spec.WindowType,
		Language:   a.state.Language,
		WindowSize: spec.WindowSize,
	})
	if err != nil {
		a.codeView.SetUnavailable(title, codegen.ErrNotAvailable.Error())
		return
	}
	a.codeView.SetContent(code, title)
}

func (a *App) delegateToFocused(msg tea.Msg) (tea.Model, tea.Cmd) {
	w, ok := a.windows[a.state.FocusedWindow]
	if !ok {
		return a, nil
	}
	_, cmd := w.Update(msg)
	return a, cmd
}

func (a *App) cycleFocus(reverse bool) {
	a.state.CycleWindow(a.layout.GetSlotNames(), reverse)
	for name, w := range a.windows {
		w.SetFocus(name == a.state.FocusedWindow)
	}
}

// View renders the application
func (a *App) View() string {
	if a.width == 0 || a.height == 0 {
		return "Loading..."
	}

	statusBar := a.renderStatusBar()

	switch a.state.ActiveModal {
	case "help":
		return a.renderWithModal(a.help, statusBar)
	case "edit":
		return a.renderWithModal(a.edit, statusBar)
	}
	return a.layout.Render(a.windows, statusBar)
}

func (a *App) renderStatusBar() string {
	s := a.state

	step := fmt.Sprintf("step %d/%d", s.Cursor+1, s.Total())
	if s.Total() == 0 {
		step = "no steps"
	}
	play := "paused"
	if s.Playing {
		play = "playing"
	}

	left := fmt.Sprintf(" %s  %s  %s  %s  [%s]", s.Mode, s.Algorithm.Label(), s.Language.Label(), step, play)
	switch {
	case s.Error != "":
		left += a.styles.StatusError.Render(" │ " + s.Error)
	case a.statusMessage != "":
		left += a.styles.Muted.Render(" │ " + a.statusMessage)
	}

	// Pad to full width
	padding := max(a.width-lipgloss.Width(left)-2, 0)
	return a.styles.StatusBar.
		Width(a.width).
		MaxHeight(1).
		Render(left + strings.Repeat(" ", padding))
}

func (a *App) renderWithModal(modal window.Window, statusBar string) string {
	modalWidth := min(64, a.width-4)
	modalHeight := min(28, a.height-5)

	content := lipgloss.Place(
		a.width,
		a.height-1,
		lipgloss.Center,
		lipgloss.Center,
		modal.View(modalWidth, modalHeight),
	)
	return lipgloss.JoinVertical(lipgloss.Left, content, statusBar)
}
