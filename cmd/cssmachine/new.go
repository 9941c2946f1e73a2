package main

import (
	"fmt"

	"github.com/aretw0/cssmachine/pkg/adapters/file"
	"github.com/aretw0/cssmachine/pkg/domain"
	"github.com/spf13/cobra"
)

var newCmd = &cobra.Command{
	Use:   "new [machine-file]",
	Short: "Write a starter machine file",
	Long: `Writes the default machine (state A flips 0 to 1 and halts, or writes 0 and moves right)
plus any extra states requested, named B, C, ... Z, AA, ... like the editor does.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		states, _ := cmd.Flags().GetInt("states")
		tape, _ := cmd.Flags().GetString("tape")

		cfg := domain.DefaultMachine()
		cfg.Name, _ = cmd.Flags().GetString("name")
		cfg.TapeLength = domain.ParseTapeLength(tape)
		for len(cfg.States) < states {
			cfg.AddState()
		}

		path := "-"
		if len(args) > 0 {
			path = args[0]
		}
		format := file.FormatOf(path)
		if f, _ := cmd.Flags().GetString("format"); f != "" {
			format = file.Format(f)
		}
		if format != file.FormatYAML && format != file.FormatJSON {
			return fmt.Errorf("unknown format %q: use yaml or json", format)
		}

		data, err := file.Encode(cfg, format)
		if err != nil {
			return err
		}
		return writeOutput(cmd, path, data)
	},
}

func init() {
	rootCmd.AddCommand(newCmd)
	newCmd.Flags().String("name", "", "Machine name")
	newCmd.Flags().Int("states", 1, "Number of states")
	newCmd.Flags().String("tape", fmt.Sprint(domain.DefaultTapeLength), "Tape length (anything but a positive integer becomes 1)")
	newCmd.Flags().String("format", "", "Output format: yaml or json (default: from the file extension)")
}
