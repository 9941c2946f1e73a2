package main

import (
	"github.com/aretw0/cssmachine"
	"github.com/spf13/cobra"
)

var compileCmd = &cobra.Command{
	Use:   "compile [machine-file]",
	Short: "Compile a machine into a standalone HTML page",
	Long: `Reads a machine (YAML or JSON, "-" or nothing for stdin, or --id for a library entry)
and writes the compiled HTML document. The output is deterministic: the same machine
always yields the same bytes.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadMachine(cmd.Context(), cmd, args)
		if err != nil {
			return err
		}

		opts := []cssmachine.Option{cssmachine.WithLogger(logger)}
		if bare, _ := cmd.Flags().GetBool("bare"); bare {
			opts = append(opts, cssmachine.WithShell(cssmachine.BareShell()))
		}
		if noRef, _ := cmd.Flags().GetBool("no-reference"); noRef {
			opts = append(opts, cssmachine.WithoutReference())
		}

		html, err := cssmachine.New(opts...).Compile(cmd.Context(), cfg)
		if err != nil {
			return err
		}

		out, _ := cmd.Flags().GetString("output")
		return writeOutput(cmd, out, []byte(html))
	},
}

func init() {
	rootCmd.AddCommand(compileCmd)
	addMachineFlags(compileCmd)
	compileCmd.Flags().StringP("output", "o", "", "Write the document to this file instead of stdout")
	compileCmd.Flags().Bool("bare", false, "Emit only the style element and the machine, for embedding")
	compileCmd.Flags().Bool("no-reference", false, "Leave the state table out of the page")
}
