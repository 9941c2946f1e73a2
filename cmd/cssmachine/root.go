package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/aretw0/cssmachine/internal/logging"
	"github.com/spf13/cobra"
)

var (
	logger  = logging.NewNop()
	logFile io.Closer
)

var rootCmd = &cobra.Command{
	Use:   "cssmachine",
	Short: "cssmachine compiles Turing machines into script-free HTML pages",
	Long: `cssmachine turns a Turing machine description (YAML, JSON, or a Markdown library entry)
into a single HTML document whose style rules alone step the machine, one click at a time.`,
	SilenceUsage:       true,
	PersistentPreRunE:  setupLogging,
	PersistentPostRunE: closeLogging,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("dir", ".", "Directory holding the machine library")
	rootCmd.PersistentFlags().String("log-level", "warn", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().String("log-file", "", "Also write JSON logs to this file")
}

func setupLogging(cmd *cobra.Command, args []string) error {
	levelName, _ := cmd.Flags().GetString("log-level")
	level, err := logging.ParseLevel(levelName)
	if err != nil {
		return err
	}

	opts := logging.Options{Level: level, Output: cmd.ErrOrStderr()}
	if path, _ := cmd.Flags().GetString("log-file"); path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		logFile = f
		opts.JSON = f
	}
	logger = logging.NewWithOptions(opts)
	slog.SetDefault(logger)
	return nil
}

func closeLogging(cmd *cobra.Command, args []string) error {
	if logFile == nil {
		return nil
	}
	err := logFile.Close()
	logFile = nil
	return err
}
