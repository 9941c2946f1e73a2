package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/cssmachine"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of cssmachine",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "cssmachine version %s\n", strings.TrimSpace(cssmachine.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
