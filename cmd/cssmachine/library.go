package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/aretw0/cssmachine/internal/presentation/table"
	"github.com/aretw0/cssmachine/internal/presentation/tui"
	"github.com/aretw0/cssmachine/pkg/adapters/file"
	"github.com/aretw0/cssmachine/pkg/adapters/loam"
	"github.com/spf13/cobra"
)

var libraryCmd = &cobra.Command{
	Use:   "library",
	Short: "List the machines of the library directory",
	Long: `Lists every machine document under --dir. A document is Markdown with the machine in
its frontmatter (the body describes it), or a plain JSON/YAML machine file.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, _ := cmd.Flags().GetString("dir")
		lib, err := loam.Open(dir)
		if err != nil {
			return err
		}
		list, err := lib.List(cmd.Context())
		if err != nil {
			return err
		}
		if len(list) == 0 {
			fmt.Fprintf(cmd.ErrOrStderr(), "No machines found in %s\n", dir)
			return nil
		}

		var sb strings.Builder
		sb.WriteString("| ID | Name | States | Tape | Description |\n|---|---|---:|---:|---|\n")
		for _, m := range list {
			fmt.Fprintf(&sb, "| %s | %s | %d | %d | %s |\n",
				table.Escape(m.ID), table.Escape(m.Name), m.States, m.TapeLength, table.Escape(m.Description))
		}

		raw, _ := cmd.Flags().GetBool("raw")
		styled := !raw && cmd.OutOrStdout() == os.Stdout && tui.IsTerminal(os.Stdout)
		return tui.WriteMarkdown(cmd.OutOrStdout(), sb.String(), styled)
	},
}

var libraryShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Print a library machine as YAML",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, _ := cmd.Flags().GetString("dir")
		lib, err := loam.Open(dir)
		if err != nil {
			return err
		}
		cfg, err := lib.Get(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		format, _ := cmd.Flags().GetString("format")
		data, err := file.Encode(cfg, file.Format(format))
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	},
}

func init() {
	rootCmd.AddCommand(libraryCmd)
	libraryCmd.AddCommand(libraryShowCmd)
	libraryCmd.Flags().Bool("raw", false, "Print plain Markdown even on a terminal")
	libraryShowCmd.Flags().String("format", string(file.FormatYAML), "Output format: yaml or json")
}
