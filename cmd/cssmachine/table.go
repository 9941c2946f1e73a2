package main

import (
	"os"

	"github.com/aretw0/cssmachine/internal/presentation/table"
	"github.com/aretw0/cssmachine/internal/presentation/tui"
	"github.com/spf13/cobra"
)

var tableCmd = &cobra.Command{
	Use:   "table [machine-file]",
	Short: "Print the transition table of a machine",
	Long:  `Prints the state table as Markdown, styled for the terminal when stdout is one.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadMachine(cmd.Context(), cmd, args)
		if err != nil {
			return err
		}

		raw, _ := cmd.Flags().GetBool("raw")
		styled := !raw && cmd.OutOrStdout() == os.Stdout && tui.IsTerminal(os.Stdout)
		return tui.WriteMarkdown(cmd.OutOrStdout(), table.Markdown(cfg), styled)
	},
}

func init() {
	rootCmd.AddCommand(tableCmd)
	addMachineFlags(tableCmd)
	tableCmd.Flags().Bool("raw", false, "Print plain Markdown even on a terminal")
}
