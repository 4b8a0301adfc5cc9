package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/kmacinski/slidewin/internal/engine"
)

var (
	windowColor = color.New(color.FgBlack, color.BgCyan)
	bestColor   = color.New(color.FgBlack, color.BgYellow)
	matchColor  = color.New(color.FgGreen, color.Bold)
	missColor   = color.New(color.FgRed)
	headerColor = color.New(color.Bold)
)

func newRunCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Print every step of a run without the visualizer",
		Example: `  slidewin run -i "1, 3, -1, -3, 5, 3, 6, 7" -a max -k 3
  slidewin run -t string -i abcabcbb -a longest-unique-substring
  slidewin run -t string -i cbaebabacd -a permutation-match -p abc`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.load()
			if err != nil {
				return err
			}
			sc, err := opts.scenario(cmd, cfg)
			if err != nil {
				return err
			}
			seq, spec, err := sc.Build()
			if err != nil {
				return err
			}
			steps, err := engine.All(seq, spec)
			if err != nil {
				return err
			}
			return writeSteps(cmd.OutOrStdout(), seq, spec, steps)
		},
	}
}

// writeSteps prints one line per step with the window highlighted
func writeSteps(w io.Writer, seq engine.Sequence, spec engine.WindowSpec, steps []engine.StepResult) error {
	header := fmt.Sprintf("%s on %s", spec.Algorithm.Label(), seq)
	switch {
	case spec.Algorithm == engine.PermutationMatch:
		header += fmt.Sprintf(" (pattern %s)", spec.Pattern)
	case spec.WindowType == engine.Fixed:
		header += fmt.Sprintf(" (window %d)", spec.WindowSize)
	default:
		header += " (variable window)"
	}
	if _, err := headerColor.Fprintln(w, header); err != nil {
		return err
	}

	if len(steps) == 0 {
		_, err := fmt.Fprintln(w, "Nothing to step through: the window does not fit")
		return err
	}

	width := len(fmt.Sprint(len(steps)))
	for _, step := range steps {
		line := fmt.Sprintf("%*d/%d  %s  %s", width, step.Index+1, len(steps), cells(seq, spec, step), outcome(spec, step))
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}

	last := steps[len(steps)-1]
	if last.Best != nil {
		_, err := fmt.Fprintf(w, "best %s [%d..%d]\n", seq.Slice(last.Best.Start, last.Best.End+1), last.Best.Start, last.Best.End)
		return err
	}
	return nil
}

func cells(seq engine.Sequence, spec engine.WindowSpec, step engine.StepResult) string {
	parts := make([]string, seq.Len())
	for i := range parts {
		text := seq.Format(i)
		inWindow := i >= step.WindowStart && i <= step.WindowEnd
		inBest := step.Best != nil && i >= step.Best.Start && i <= step.Best.End
		switch {
		case inWindow && spec.Algorithm == engine.PermutationMatch && step.Value.Truth():
			parts[i] = matchColor.Sprint("[" + text + "]")
		case inWindow:
			parts[i] = windowColor.Sprint("[" + text + "]")
		case inBest:
			parts[i] = bestColor.Sprint(" " + text + " ")
		default:
			parts[i] = " " + text + " "
		}
	}
	return strings.Join(parts, "")
}

func outcome(spec engine.WindowSpec, step engine.StepResult) string {
	if spec.Algorithm == engine.PermutationMatch {
		if step.Value.Truth() {
			return matchColor.Sprint("match")
		}
		return missColor.Sprint("no match")
	}
	return fmt.Sprintf("= %s  %s", step.Value.Display(2), step.Description)
}
