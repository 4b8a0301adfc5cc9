package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kmacinski/slidewin/internal/config"
)

var (
	version = "dev"
)

// options are the flags shared by every command
type options struct {
	configPath   string
	logLevel     string
	scenarioPath string

	input      string
	inputType  string
	algorithm  string
	windowType string
	size       int
	pattern    string
	language   string
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   "slidewin",
		Short: "Step through sliding window algorithms",
		Long: `slidewin animates fixed and variable sliding windows over arrays and
strings: window sum, max, min and average, the longest substring without
repeating characters, and permutation matching.

Run without a command to open the terminal visualizer.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd, opts, "")
		},
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&opts.configPath, "config", "c", "", "YAML config file")
	pf.StringVar(&opts.logLevel, "log-level", "", "Log level: debug, info, warn, error")
	pf.StringVarP(&opts.scenarioPath, "scenario", "s", "", "YAML scenario file (reloaded on change in the visualizer)")
	pf.StringVarP(&opts.input, "input", "i", "", "Comma-separated integers, or a string with --type string")
	pf.StringVarP(&opts.inputType, "type", "t", "", "Input type: array, string")
	pf.StringVarP(&opts.algorithm, "algorithm", "a", "", "sum, max, min, average, longest-unique-substring, permutation-match")
	pf.StringVarP(&opts.windowType, "window-type", "w", "", "Window type: fixed, variable")
	pf.IntVarP(&opts.size, "size", "k", 0, "Fixed window size")
	pf.StringVarP(&opts.pattern, "pattern", "p", "", "Pattern for permutation matching")
	pf.StringVarP(&opts.language, "lang", "l", "", "Code language: python, javascript, go, java, cpp")

	root.AddCommand(
		newTUICmd(opts),
		newServeCmd(opts),
		newRunCmd(opts),
		newCodeCmd(opts),
		&cobra.Command{
			Use:   "version",
			Short: "Show version",
			Run: func(cmd *cobra.Command, args []string) {
				fmt.Fprintf(cmd.OutOrStdout(), "slidewin %s\n", version)
			},
		},
	)
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// load reads the config file and applies the log level flag
func (o *options) load() (config.Config, error) {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return cfg, err
	}
	if o.logLevel != "" {
		cfg.LogLevel = o.logLevel
		if err := cfg.Validate(); err != nil {
			return cfg, err
		}
	}
	return cfg, nil
}

// scenario starts from the scenario file, or the configured defaults, and
// applies any flags that were set
func (o *options) scenario(cmd *cobra.Command, cfg config.Config) (config.Scenario, error) {
	sc := cfg.DefaultScenario()
	if o.scenarioPath != "" {
		var err error
		if sc, err = config.LoadScenario(o.scenarioPath); err != nil {
			return sc, err
		}
	}

	flags := cmd.Flags()
	if flags.Changed("input") {
		sc.Input = o.input
	}
	if flags.Changed("type") {
		sc.Type = o.inputType
	}
	if flags.Changed("algorithm") {
		sc.Algorithm = o.algorithm
	}
	if flags.Changed("window-type") {
		sc.WindowType = o.windowType
	}
	if flags.Changed("size") {
		sc.WindowSize = o.size
	}
	if flags.Changed("pattern") {
		sc.Pattern = o.pattern
	}
	if flags.Changed("lang") {
		sc.Language = o.language
	}
	return sc, nil
}

// newLogger builds a slog logger at the configured level
func newLogger(w io.Writer, level string, json bool) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.ToUpper(level))); err != nil {
		lvl = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: lvl}
	if json {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
