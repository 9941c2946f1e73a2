package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aretw0/cssmachine"
	"github.com/aretw0/cssmachine/internal/presentation/tui"
	httpAdapter "github.com/aretw0/cssmachine/pkg/adapters/http"
	"github.com/aretw0/cssmachine/pkg/adapters/loam"
	"github.com/aretw0/cssmachine/pkg/adapters/memory"
	"github.com/aretw0/cssmachine/pkg/adapters/redis"
	"github.com/aretw0/cssmachine/pkg/persistence/middleware"
	"github.com/aretw0/cssmachine/pkg/ports"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP compile service",
	Long: `Serves POST /compile and POST /share, shared documents under /m/{id}, the library under
/library, and Prometheus metrics under /metrics. Shared documents live in memory unless
--redis is given. --encryption-key seals them before they are stored.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		port, _ := cmd.Flags().GetString("port")
		dir, _ := cmd.Flags().GetString("dir")
		redisURL, _ := cmd.Flags().GetString("redis")
		ttl, _ := cmd.Flags().GetDuration("ttl")

		cfg := httpAdapter.DefaultConfig()
		cfg.MaxStates, _ = cmd.Flags().GetInt("max-states")
		cfg.MaxTapeLength, _ = cmd.Flags().GetInt("max-tape")
		cfg.DataURL, _ = cmd.Flags().GetBool("data-url")

		metrics := httpAdapter.NewMetrics()
		compiler := cssmachine.New(
			cssmachine.WithLogger(logger),
			cssmachine.WithLifecycleHooks(metrics.Hooks()),
		)
		opts := []httpAdapter.Option{
			httpAdapter.WithConfig(cfg),
			httpAdapter.WithMetrics(metrics),
			httpAdapter.WithLogger(logger),
		}

		lib, err := loam.Open(dir)
		if err != nil {
			return err
		}
		opts = append(opts, httpAdapter.WithLibrary(lib))

		var store ports.DocumentStore = memory.NewStore()
		if redisURL != "" {
			rs, err := redis.NewFromURL(redisURL, redis.WithTTL(ttl))
			if err != nil {
				return err
			}
			defer rs.Close()
			if err := rs.Ping(cmd.Context()); err != nil {
				return fmt.Errorf("redis unreachable: %w", err)
			}
			store = rs
		}
		if key, _ := cmd.Flags().GetString("encryption-key"); key != "" {
			active, err := middleware.ParseKey(key)
			if err != nil {
				return err
			}
			store = middleware.Chain(store, middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: active}))
		}
		opts = append(opts, httpAdapter.WithStore(store))

		handler, err := httpAdapter.NewHandler(compiler, opts...)
		if err != nil {
			return err
		}

		srv := &http.Server{
			Addr:              ":" + port,
			Handler:           handler,
			ReadHeaderTimeout: 10 * time.Second,
		}

		serverErrors := make(chan error, 1)
		go func() {
			tui.PrintBanner(cmd.ErrOrStderr())
			logger.Info("Starting cssmachine server", "address", srv.Addr, "library", dir, "redis", redisURL != "")
			serverErrors <- srv.ListenAndServe()
		}()

		shutdown := make(chan os.Signal, 1)
		signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)
		defer signal.Stop(shutdown)

		select {
		case err := <-serverErrors:
			if errors.Is(err, http.ErrServerClosed) {
				return nil
			}
			return fmt.Errorf("server error: %w", err)

		case sig := <-shutdown:
			logger.Info("Start shutdown", "signal", sig.String())

			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			if err := srv.Shutdown(ctx); err != nil {
				logger.Error("Graceful shutdown did not complete", "timeout", 5*time.Second, "err", err)
				return srv.Close()
			}
			logger.Info("cssmachine server stopped gracefully")
			return nil
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringP("port", "p", "8080", "Port to listen on")
	serveCmd.Flags().String("redis", "", "Redis URL for shared documents, e.g. redis://localhost:6379/0")
	serveCmd.Flags().Duration("ttl", 0, "Expiry of shared documents in Redis (0 keeps them)")
	serveCmd.Flags().Int("max-states", httpAdapter.DefaultConfig().MaxStates, "Largest machine accepted, in states")
	serveCmd.Flags().Int("max-tape", httpAdapter.DefaultConfig().MaxTapeLength, "Longest tape accepted")
	serveCmd.Flags().String("encryption-key", os.Getenv("CSSMACHINE_ENCRYPTION_KEY"), "Hex AES-256 key sealing shared documents at rest")
	serveCmd.Flags().Bool("data-url", false, "Include data: URLs in share responses")
}
