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

	"github.com/aretw0/substrate"
	httpAdapter "github.com/aretw0/substrate/pkg/adapters/http"
	"github.com/aretw0/substrate/pkg/adapters/memory"
	"github.com/aretw0/substrate/pkg/observability"
	"github.com/aretw0/substrate/pkg/session"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long:  `Serves in-memory editing sessions over a JSON API, with server-sent events per session.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		port := appConfig.Server.Port
		if cmd.Flags().Changed("port") {
			port, _ = cmd.Flags().GetInt("port")
		}

		metrics := observability.NewMetrics()
		manager := newManager(metrics)

		opts := []httpAdapter.Option{
			httpAdapter.WithAllowedOrigins(appConfig.Server.AllowedOrigins...),
			httpAdapter.WithLogger(logger),
		}
		if appConfig.Metrics.Enabled {
			opts = append(opts, httpAdapter.WithMetrics(appConfig.Metrics.Path, metrics.Handler()))
		}

		srv := &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           httpAdapter.NewHandler(manager, opts...),
			ReadHeaderTimeout: 10 * time.Second,
		}

		// Channel to listen for errors coming from the listener.
		serverErrors := make(chan error, 1)

		go func() {
			logger.Info("Starting Substrate Server", "addr", srv.Addr, "grid_size", appConfig.GridSize)
			serverErrors <- srv.ListenAndServe()
		}()

		// Channel to listen for interrupt or terminate signals.
		shutdown := make(chan os.Signal, 1)
		signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)
		defer signal.Stop(shutdown)

		// Blocking main and waiting for shutdown.
		select {
		case err := <-serverErrors:
			if errors.Is(err, http.ErrServerClosed) {
				return nil
			}
			return fmt.Errorf("server error: %w", err)

		case sig := <-shutdown:
			logger.Info("Start shutdown", "signal", sig.String())

			// Give outstanding requests a deadline for completion.
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			// Asking listener to shut down and shed load.
			if err := srv.Shutdown(ctx); err != nil {
				logger.Warn("Graceful shutdown did not complete", "timeout", 5*time.Second, "err", err)
				if err := srv.Close(); err != nil {
					return fmt.Errorf("error killing server: %w", err)
				}
			}
			logger.Info("Substrate Server stopped gracefully")
			return nil
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().IntP("port", "p", 8080, "Port to listen on; overrides the config file")
}

// newManager builds the session manager shared by the server commands.
func newManager(metrics *observability.Metrics) *session.Manager {
	hooks := observability.LoggingHooks(logger)
	sessionHooks := session.Hooks{}
	if metrics != nil {
		hooks = hooks.Merge(metrics.Hooks())
		sessionHooks = metrics.SessionHooks()
	}
	return session.NewManager(memory.NewStore(),
		session.WithLogger(logger),
		session.WithHooks(sessionHooks),
		session.WithDesignerOptions(
			substrate.WithGridSize(appConfig.GridSize),
			substrate.WithLogger(logger),
			substrate.WithLifecycleHooks(hooks),
		),
	)
}
