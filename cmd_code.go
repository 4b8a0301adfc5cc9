package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kmacinski/slidewin/internal/codegen"
	"github.com/kmacinski/slidewin/internal/engine"
)

func newCodeCmd(opts *options) *cobra.Command {
	var list bool
	cmd := &cobra.Command{
		Use:   "code",
		Short: "Print the implementation of an algorithm",
		Example: `  slidewin code -a max -k 4 -l go
  slidewin code --list`,
		RunE: func(cmd *cobra.Command, args []string) error {
			gen, err := codegen.New()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			if list {
				for _, c := range gen.Available() {
					fmt.Fprintf(out, "%-11s %-9s %s\n", c.Language, c.WindowType, c.Algorithm)
				}
				return nil
			}

			cfg, err := opts.load()
			if err != nil {
				return err
			}
			sc, err := opts.scenario(cmd, cfg)
			if err != nil {
				return err
			}

			alg, err := engine.ParseAlgorithm(sc.Algorithm)
			if err != nil {
				return err
			}
			req := codegen.Request{Algorithm: alg, WindowSize: sc.WindowSize}
			if sc.WindowType != "" {
				if req.WindowType, err = engine.ParseWindowType(sc.WindowType); err != nil {
					return err
				}
			}
			if req.Language, err = codegen.ParseLanguage(sc.Language); err != nil {
				return err
			}

			code, err := gen.Generate(req)
			if err != nil {
				return err
			}
			fmt.Fprint(out, code)
			return nil
		},
	}
	cmd.Flags().BoolVar(&list, "list", false, "List every available language, window type and algorithm")
	return cmd
}
