package main

import (
	"errors"
	"fmt"

	"github.com/aretw0/cssmachine/internal/presentation/graph"
	"github.com/aretw0/cssmachine/internal/presentation/tui"
	"github.com/aretw0/cssmachine/pkg/adapters/file"
	"github.com/aretw0/cssmachine/pkg/schema"
	"github.com/spf13/cobra"
)

var errInvalid = errors.New("validation failed")

var validateCmd = &cobra.Command{
	Use:   "validate <machine-file>...",
	Short: "Check machine files for errors",
	Long: `Reports every structural error of each machine (empty or duplicate names, the reserved
name HALT, symbols other than 0/1, moves other than L/R) and warns about states that
can never be entered from the first state.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		failed := 0

		for _, path := range args {
			cfg, err := file.Load(path)
			if err == nil {
				cfg.Normalize()
				err = cfg.Validate()
			}
			if err != nil {
				failed++
				fmt.Fprintln(out, tui.Status(false, path))
				if details := schema.ValidationErrors(err); len(details) > 0 {
					for _, d := range details {
						fmt.Fprintf(out, "    %v\n", d)
					}
				} else {
					fmt.Fprintf(out, "    %v\n", err)
				}
				continue
			}

			fmt.Fprintln(out, tui.Status(true, path))
			for i, ok := range graph.Reachable(cfg) {
				if !ok && i < len(cfg.States) {
					fmt.Fprintf(out, "    warning: state %q is unreachable\n", cfg.States[i].Name)
				}
			}
		}

		if failed > 0 {
			return fmt.Errorf("%w: %d of %d machines", errInvalid, failed, len(args))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
