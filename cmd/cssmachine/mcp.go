package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/aretw0/cssmachine"
	"github.com/aretw0/cssmachine/pkg/adapters/loam"
	"github.com/aretw0/cssmachine/pkg/adapters/mcp"
	"github.com/aretw0/cssmachine/pkg/domain"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run the Model Context Protocol (MCP) server",
	Long: `Starts cssmachine as an MCP Server.
This allows AI agents to compile machines and inspect the library as tools.

Supported Transports:
- stdio (default): Uses Standard Input/Output. Ideal for local process integration.
- sse: Uses Server-Sent Events over HTTP. Ideal for remote agents or debuggers.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, _ := cmd.Flags().GetString("dir")
		transport, _ := cmd.Flags().GetString("transport")
		port, _ := cmd.Flags().GetInt("port")
		var limits domain.Limits
		limits.MaxStates, _ = cmd.Flags().GetInt("max-states")
		limits.MaxTapeLength, _ = cmd.Flags().GetInt("max-tape")

		lib, err := loam.Open(dir)
		if err != nil {
			return err
		}
		srv := mcp.NewServer(
			cssmachine.New(cssmachine.WithLogger(logger)),
			mcp.WithLibrary(lib),
			mcp.WithLimits(limits),
			mcp.WithLogger(logger),
		)

		switch transport {
		case "stdio":
			// Ensure logs don't corrupt JSON-RPC on Stdout
			log.SetOutput(os.Stderr)
			logger.Info("Starting cssmachine MCP Server (Stdio)")
			return srv.ServeStdio()
		case "sse":
			logger.Info("Starting cssmachine MCP Server (SSE)", "port", port)

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if err := srv.ServeSSE(ctx, port); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			logger.Info("MCP Server stopped gracefully")
			return nil
		default:
			return fmt.Errorf("unknown transport: %s. Supported: stdio, sse", transport)
		}
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)

	mcpCmd.Flags().String("transport", "stdio", "Transport protocol to use: 'stdio' or 'sse'")
	mcpCmd.Flags().Int("port", 8080, "Port to listen on (only for SSE)")
	mcpCmd.Flags().Int("max-states", domain.DefaultLimits().MaxStates, "Largest inline machine accepted, in states (0 for no limit)")
	mcpCmd.Flags().Int("max-tape", domain.DefaultLimits().MaxTapeLength, "Longest inline tape accepted (0 for no limit)")
}
