package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/kmacinski/slidewin/internal/engine"
	"github.com/kmacinski/slidewin/internal/input"
)

// Scenario is a saved run: the raw input plus its window configuration.
//
//	input: "abcabcbb"
//	type: string
//	algorithm: longest-unique-substring
type Scenario struct {
	Input      string `yaml:"input"`
	Type       string `yaml:"type"`
	Algorithm  string `yaml:"algorithm"`
	WindowType string `yaml:"window_type"`
	WindowSize int    `yaml:"window_size"`
	Pattern    string `yaml:"pattern"`
	Language   string `yaml:"language"`
}

// DefaultScenario is the run described by the defaults section.
func (c Config) DefaultScenario() Scenario {
	return Scenario{
		Input:      c.Defaults.Input,
		Type:       c.Defaults.InputType,
		Algorithm:  c.Defaults.Algorithm,
		WindowSize: c.Defaults.WindowSize,
		Pattern:    c.Defaults.Pattern,
		Language:   c.Defaults.Language,
	}
}

// LoadScenario reads a scenario file.
func LoadScenario(path string) (Scenario, error) {
	var s Scenario
	data, err := os.ReadFile(path)
	if err != nil {
		return s, fmt.Errorf("read scenario %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &s); err != nil {
		return s, fmt.Errorf("parse scenario %s: %w", path, err)
	}
	return s, nil
}

// Build validates the scenario into a sequence and window spec.
func (s Scenario) Build() (engine.Sequence, engine.WindowSpec, error) {
	seq, err := input.Parse(s.Input, s.Type)
	if err != nil {
		return engine.Sequence{}, engine.WindowSpec{}, err
	}
	spec, err := input.ParseSpec(seq, s.Algorithm, s.WindowType, s.WindowSize, s.Pattern)
	if err != nil {
		return engine.Sequence{}, engine.WindowSpec{}, err
	}
	return seq, spec, nil
}
