package app

import "github.com/kmacinski/slidewin/internal/config"

// TickMsg advances playback. Ticks from an older generation are dropped.
type TickMsg struct {
	Generation int
}

// ScenarioChangedMsg is sent when the watched scenario file is written
type ScenarioChangedMsg struct{}

// ScenarioLoadedMsg carries a freshly read scenario
type ScenarioLoadedMsg struct {
	Scenario config.Scenario
	Err      error
}

// StepSelectedMsg is sent when a history entry is picked in the step window
type StepSelectedMsg struct {
	Index int
}

// ErrorMsg is sent when an error occurs
type ErrorMsg struct {
	Err error
}
