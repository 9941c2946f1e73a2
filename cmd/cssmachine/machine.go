package main

import (
	"context"
	"fmt"

	"github.com/aretw0/cssmachine/pkg/adapters/file"
	"github.com/aretw0/cssmachine/pkg/adapters/loam"
	"github.com/aretw0/cssmachine/pkg/domain"
	"github.com/spf13/cobra"
)

// addMachineFlags registers --id for commands that take a machine argument.
func addMachineFlags(cmd *cobra.Command) {
	cmd.Flags().String("id", "", "Use the library machine with this ID instead of a file")
}

// loadMachine reads the machine named by --id from the library, or from the file argument.
// Without either, the machine is read from standard input.
func loadMachine(ctx context.Context, cmd *cobra.Command, args []string) (domain.MachineConfig, error) {
	if id, _ := cmd.Flags().GetString("id"); id != "" {
		dir, _ := cmd.Flags().GetString("dir")
		lib, err := loam.Open(dir)
		if err != nil {
			return domain.MachineConfig{}, err
		}
		return lib.Get(ctx, id)
	}

	path := "-"
	if len(args) > 0 {
		path = args[0]
	}
	cfg, err := file.Load(path)
	if err != nil {
		return domain.MachineConfig{}, err
	}
	logger.Debug("machine loaded", "path", path, "states", len(cfg.States), "tape_length", cfg.TapeLength)
	return cfg, nil
}

func writeOutput(cmd *cobra.Command, path string, data []byte) error {
	if path == "" || path == "-" {
		_, err := cmd.OutOrStdout().Write(data)
		return err
	}
	if err := file.WriteAtomic(path, data); err != nil {
		return err
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %s (%d bytes)\n", path, len(data))
	return nil
}
