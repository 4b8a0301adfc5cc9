package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Config holds all application configuration
type Config struct {
	Defaults DefaultsConfig `yaml:"defaults"`
	Player   PlayerConfig   `yaml:"player"`
	Server   ServerConfig   `yaml:"server"`
	Layout   LayoutConfig   `yaml:"layout"`
	Colors   ColorConfig    `yaml:"colors"`
	LogLevel string         `yaml:"log_level" validate:"oneof=debug info warn error"`
}

// DefaultsConfig is the run shown when the visualizer starts
type DefaultsConfig struct {
	Input      string `yaml:"input" validate:"required"`
	InputType  string `yaml:"input_type" validate:"oneof=array string"`
	Algorithm  string `yaml:"algorithm" validate:"required"`
	WindowSize int    `yaml:"window_size" validate:"min=1"`
	Pattern    string `yaml:"pattern"`
	Language   string `yaml:"language" validate:"required"`
}

// PlayerConfig holds animation settings
type PlayerConfig struct {
	Interval time.Duration `yaml:"interval" validate:"min=50ms"`
	Loop     bool          `yaml:"loop"`
}

// ServerConfig holds HTTP API settings
type ServerConfig struct {
	Addr          string        `yaml:"addr" validate:"required"`
	SessionTTL    time.Duration `yaml:"session_ttl" validate:"min=1s"`
	SweepInterval time.Duration `yaml:"sweep_interval" validate:"min=1s"`
	MaxSessions   int           `yaml:"max_sessions" validate:"min=1"`
	MaxElements   int           `yaml:"max_elements" validate:"min=1"`
}

// LayoutConfig holds layout-related settings
type LayoutConfig struct {
	DefaultRatio [2]int `yaml:"default_ratio"` // top:bottom ratio, e.g. {40, 60}
}

// ColorConfig holds color definitions
type ColorConfig struct {
	Window          string `yaml:"window" validate:"hexcolor"`
	Best            string `yaml:"best" validate:"hexcolor"`
	Match           string `yaml:"match" validate:"hexcolor"`
	NoMatch         string `yaml:"no_match" validate:"hexcolor"`
	Header          string `yaml:"header" validate:"hexcolor"`
	BorderFocused   string `yaml:"border_focused" validate:"hexcolor"`
	BorderUnfocused string `yaml:"border_unfocused" validate:"hexcolor"`
	StatusBar       string `yaml:"status_bar" validate:"hexcolor"`
	Muted           string `yaml:"muted" validate:"hexcolor"`
	Text            string `yaml:"text" validate:"hexcolor"`
}

// Default returns the default configuration
var Default = Config{
	Defaults: DefaultsConfig{
		Input:      "1, 3, -1, -3, 5, 3, 6, 7",
		InputType:  "array",
		Algorithm:  "sum",
		WindowSize: 3,
		Language:   "python",
	},
	Player: PlayerConfig{
		Interval: 800 * time.Millisecond,
	},
	Server: ServerConfig{
		Addr:          ":5000",
		SessionTTL:    30 * time.Minute,
		SweepInterval: time.Minute,
		MaxSessions:   1000,
		MaxElements:   10000,
	},
	Layout: LayoutConfig{
		DefaultRatio: [2]int{40, 60},
	},
	Colors: ColorConfig{
		Window:          "#89b4fa",
		Best:            "#f9e2af",
		Match:           "#a6e3a1",
		NoMatch:         "#f38ba8",
		Header:          "#89b4fa",
		BorderFocused:   "#89b4fa",
		BorderUnfocused: "#45475a",
		StatusBar:       "#313244",
		Muted:           "#6c7086",
		Text:            "#cdd6f4",
	},
	LogLevel: "info",
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Load reads a YAML file over the defaults. An empty path returns the
// defaults unchanged.
func Load(path string) (Config, error) {
	cfg := Default
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks field constraints.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return fmt.Errorf("invalid %s: failed %q", verrs[0].Namespace(), verrs[0].Tag())
		}
		return err
	}
	return nil
}
