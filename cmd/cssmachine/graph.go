package main

import (
	"fmt"

	"github.com/aretw0/cssmachine/internal/presentation/graph"
	"github.com/spf13/cobra"
)

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph [machine-file]",
	Short: "Export the state diagram",
	Long:  `Outputs a Mermaid diagram (graph LR) of the machine's states and transitions.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadMachine(cmd.Context(), cmd, args)
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), graph.GenerateMermaid(cfg))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)
	addMachineFlags(graphCmd)
}
