package main

import (
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/kmacinski/slidewin/internal/app"
	"github.com/kmacinski/slidewin/internal/codegen"
)

func newTUICmd(opts *options) *cobra.Command {
	var logFile string
	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Open the terminal visualizer",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd, opts, logFile)
		},
	}
	cmd.Flags().StringVar(&logFile, "log-file", "", "Write logs to this file (the visualizer owns the terminal)")
	return cmd
}

func runTUI(cmd *cobra.Command, opts *options, logFile string) error {
	cfg, err := opts.load()
	if err != nil {
		return err
	}
	sc, err := opts.scenario(cmd, cfg)
	if err != nil {
		return err
	}

	logger := slog.New(slog.DiscardHandler)
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer f.Close()
		logger = newLogger(f, cfg.LogLevel, false)
	}

	gen, err := codegen.New()
	if err != nil {
		return err
	}

	application, err := app.New(cfg, gen, sc, logger)
	if err != nil {
		return err
	}
	application.SetScenarioFile(opts.scenarioPath)

	p := tea.NewProgram(
		application,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	application.SetProgram(p)
	defer application.Cleanup()

	logger.Info("Visualizer started", "version", version, "algorithm", application.State().Algorithm)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("visualizer: %w", err)
	}
	return nil
}
