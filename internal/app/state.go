package app

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/kmacinski/slidewin/internal/codegen"
	"github.com/kmacinski/slidewin/internal/config"
	"github.com/kmacinski/slidewin/internal/engine"
	"github.com/kmacinski/slidewin/internal/input"
)

// Settings is what the user configures. The run is rebuilt from it on every
// change. Inputs and patterns are kept per mode so toggling modes does not
// lose what was typed.
type Settings struct {
	Mode       engine.Mode
	Inputs     [2]string
	Patterns   [2]string
	Algorithm  engine.Algorithm
	WindowType engine.WindowType // empty means the algorithm's default
	WindowSize int
	Language   codegen.Language
}

// DefaultSettings is the run shown before any scenario is applied
var DefaultSettings = Settings{
	Mode:       engine.ModeArray,
	Inputs:     [2]string{"1, 3, -1, -3, 5, 3, 6, 7", "abcabcbb"},
	Patterns:   [2]string{"3, 5", "ab"},
	Algorithm:  engine.Sum,
	WindowSize: 3,
	Language:   codegen.Python,
}

var errNoWindowSize = errors.New("window size is fixed by this algorithm")

// State holds the shared application state
type State struct {
	Settings

	// Run
	Run     *engine.Run
	History []engine.StepResult
	Cursor  int // index into History, -1 before the first step

	// Playback
	Playing    bool
	Generation int // bumped whenever a pending tick must be ignored

	// UI
	FocusedWindow string
	ActiveModal   string // empty if no modal

	// Errors
	Error string
}

// NewState builds the initial run from sc. An invalid scenario falls back to
// the defaults and leaves its error in State.Error.
func NewState(sc config.Scenario) (*State, error) {
	s := &State{
		Settings:      DefaultSettings,
		Cursor:        -1,
		FocusedWindow: "sequence",
	}
	if err := s.ApplyScenario(sc); err != nil {
		msg := s.Error
		if err := s.Configure(func(*Settings) {}); err != nil {
			return nil, err
		}
		s.Error = msg
	}
	return s, nil
}

func buildRun(set Settings) (*engine.Run, error) {
	seq, err := input.ParseMode(set.Inputs[set.Mode], set.Mode)
	if err != nil {
		return nil, err
	}
	spec := engine.WindowSpec{
		Algorithm:  set.Algorithm,
		WindowType: set.WindowType,
		WindowSize: set.WindowSize,
	}
	if set.Algorithm == engine.PermutationMatch {
		if spec.Pattern, err = input.ParsePattern(set.Patterns[set.Mode], set.Mode); err != nil {
			return nil, err
		}
	}
	return engine.NewRun(seq, spec)
}

// Configure applies change and rebuilds the run with fresh scan state. If
// the new settings are rejected nothing changes and the error is recorded.
func (s *State) Configure(change func(*Settings)) error {
	next := s.Settings
	change(&next)

	run, err := buildRun(next)
	if err != nil {
		return s.fail(err)
	}
	s.Settings = next
	s.install(run)
	return nil
}

func (s *State) install(run *engine.Run) {
	s.Run = run
	s.History = nil
	s.Cursor = -1
	s.Playing = false
	s.Generation++
	s.Error = ""
}

func (s *State) fail(err error) error {
	s.Error = describe(err)
	return err
}

// describe turns an error into status bar text
func describe(err error) string {
	var verr *input.ValidationError
	if errors.As(err, &verr) {
		return verr.Error()
	}
	msg := err.Error()
	for _, prefix := range []string{"engine: ", "codegen: "} {
		msg = strings.TrimPrefix(msg, prefix)
	}
	return msg
}

// ApplyScenario replaces the settings with those of sc
func (s *State) ApplyScenario(sc config.Scenario) error {
	mode, err := engine.ParseMode(sc.Type)
	if err != nil {
		return s.fail(err)
	}
	alg, err := engine.ParseAlgorithm(sc.Algorithm)
	if err != nil {
		return s.fail(err)
	}
	var wt engine.WindowType
	if sc.WindowType != "" {
		if wt, err = engine.ParseWindowType(sc.WindowType); err != nil {
			return s.fail(err)
		}
	}
	lang := s.Language
	if sc.Language != "" {
		if lang, err = codegen.ParseLanguage(sc.Language); err != nil {
			return s.fail(err)
		}
	}

	return s.Configure(func(set *Settings) {
		set.Mode = mode
		set.Inputs[mode] = sc.Input
		if sc.Pattern != "" {
			set.Patterns[mode] = sc.Pattern
		}
		set.Algorithm = alg
		set.WindowType = wt
		if sc.WindowSize > 0 {
			set.WindowSize = sc.WindowSize
		}
		set.Language = lang
	})
}

// SetInput replaces the current mode's input and pattern
func (s *State) SetInput(raw, pattern string) error {
	return s.Configure(func(set *Settings) {
		set.Inputs[set.Mode] = raw
		set.Patterns[set.Mode] = pattern
	})
}

// algorithmsFor lists the algorithms that accept input of the mode
func algorithmsFor(mode engine.Mode) []engine.Algorithm {
	if mode == engine.ModeString {
		return []engine.Algorithm{engine.LongestUnique, engine.PermutationMatch}
	}
	return engine.Algorithms
}

// CycleAlgorithm moves to the next (or previous) algorithm that fits the mode
func (s *State) CycleAlgorithm(reverse bool) error {
	algs := algorithmsFor(s.Mode)
	idx := slices.Index(algs, s.Algorithm)
	if reverse {
		idx = (idx - 1 + len(algs)) % len(algs)
	} else {
		idx = (idx + 1) % len(algs)
	}
	return s.Configure(func(set *Settings) {
		set.Algorithm = algs[idx]
		set.WindowType = ""
		if set.WindowSize < 1 {
			set.WindowSize = DefaultSettings.WindowSize
		}
	})
}

// ResizeWindow changes the fixed window size by delta
func (s *State) ResizeWindow(delta int) error {
	if s.Run == nil {
		return nil
	}
	spec := s.Run.Spec()
	if spec.Algorithm == engine.PermutationMatch || spec.WindowType == engine.Variable {
		return s.fail(fmt.Errorf("%w: %s", errNoWindowSize, spec.Algorithm.Label()))
	}
	return s.Configure(func(set *Settings) {
		set.WindowSize += delta
	})
}

// ToggleMode switches between array and string input. Numeric algorithms
// have no string form, so they give way to the longest unique scan.
func (s *State) ToggleMode() error {
	return s.Configure(func(set *Settings) {
		if set.Mode == engine.ModeArray {
			set.Mode = engine.ModeString
		} else {
			set.Mode = engine.ModeArray
		}
		if !slices.Contains(algorithmsFor(set.Mode), set.Algorithm) {
			set.Algorithm = engine.LongestUnique
			set.WindowType = ""
		}
	})
}

// CycleLanguage moves to the next code generation language
func (s *State) CycleLanguage() {
	idx := slices.Index(codegen.Languages, s.Language)
	s.Language = codegen.Languages[(idx+1)%len(codegen.Languages)]
}

// Total returns the number of steps of the current run
func (s *State) Total() int {
	if s.Run == nil {
		return 0
	}
	return s.Run.Total()
}

// Current returns the selected step, or nil before the first one
func (s *State) Current() *engine.StepResult {
	if s.Cursor < 0 || s.Cursor >= len(s.History) {
		return nil
	}
	return &s.History[s.Cursor]
}

// Done reports whether the last step is selected
func (s *State) Done() bool {
	return s.Run == nil || (s.Run.Done() && s.Cursor == len(s.History)-1)
}

// Next selects the following step, computing it if it has not been emitted
// yet. It reports whether the selection moved.
func (s *State) Next() (bool, error) {
	if s.Total() == 0 {
		return false, nil
	}
	if s.Cursor < len(s.History)-1 {
		s.Cursor++
		return true, nil
	}

	res, err := s.Run.Next()
	if errors.Is(err, engine.ErrScanComplete) {
		return false, nil
	}
	if err != nil {
		return false, s.fail(err)
	}
	s.History = append(s.History, res)
	s.Cursor = len(s.History) - 1
	return true, nil
}

// Prev selects the previous step
func (s *State) Prev() bool {
	if s.Cursor <= 0 {
		return false
	}
	s.Cursor--
	return true
}

// Select moves the selection to an emitted step
func (s *State) Select(index int) {
	if index >= 0 && index < len(s.History) {
		s.Cursor = index
	}
}

// Reset rewinds the run with fresh scan state and stops playback
func (s *State) Reset() {
	if s.Run == nil {
		return
	}
	s.Run.Reset()
	s.History = nil
	s.Cursor = -1
	s.Playing = false
	s.Generation++
}

// TogglePlay starts or stops playback. Starting at the end replays from
// the beginning. Runs without steps never play.
func (s *State) TogglePlay() bool {
	if s.Total() == 0 {
		s.Playing = false
		return false
	}
	if !s.Playing && s.Done() && len(s.History) > 0 {
		s.Reset()
	}
	s.Playing = !s.Playing
	s.Generation++
	return s.Playing
}

// ToggleModal toggles a modal on/off
func (s *State) ToggleModal(name string) {
	if s.ActiveModal == name {
		s.ActiveModal = ""
	} else {
		s.ActiveModal = name
	}
}

// CloseModal closes any open modal
func (s *State) CloseModal() {
	s.ActiveModal = ""
}

// CycleWindow cycles focus to the next window
func (s *State) CycleWindow(windows []string, reverse bool) {
	if len(windows) == 0 {
		return
	}
	currentIdx := slices.Index(windows, s.FocusedWindow)
	if currentIdx < 0 {
		currentIdx = 0
	}
	if reverse {
		currentIdx = (currentIdx - 1 + len(windows)) % len(windows)
	} else {
		currentIdx = (currentIdx + 1) % len(windows)
	}
	s.FocusedWindow = windows[currentIdx]
}
