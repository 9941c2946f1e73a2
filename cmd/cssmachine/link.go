package main

import (
	"fmt"

	"github.com/aretw0/cssmachine"
	"github.com/aretw0/cssmachine/pkg/export"
	"github.com/spf13/cobra"
)

var linkCmd = &cobra.Command{
	Use:   "link [machine-file]",
	Short: "Print a shareable data: URL of the compiled page",
	Long:  `Compiles the machine and prints it as a data URL that opens the page directly in a browser.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadMachine(cmd.Context(), cmd, args)
		if err != nil {
			return err
		}
		html, err := cssmachine.New(cssmachine.WithLogger(logger)).Compile(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), export.DataURL(html))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(linkCmd)
	addMachineFlags(linkCmd)
}
