package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"catalogctl/internal/database"
	"catalogctl/internal/server"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const shutdownTimeout = 30 * time.Second

func newServeCmd(app *App) *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve users, categories and brands as a read-only JSON API",
		Args:  noArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := *app.Config
			if port != "" {
				cfg.Server.Port = port
			}

			ctx := cmd.Context()
			db, err := database.Open(ctx, cfg.Database.URL)
			if err != nil {
				return withCode(exitDB, err)
			}

			srv := server.NewServer(&cfg, app.Logger, db)
			done := make(chan struct{})
			go gracefulShutdown(ctx, srv, app.Logger, done)

			fmt.Fprintf(cmd.OutOrStdout(), "Serving catalog API on %s\n", srv.Addr)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				_ = srv.Close()
				return withCode(exitIO, fmt.Errorf("http server error: %w", err))
			}

			<-done
			return nil
		},
	}

	cmd.Flags().StringVar(&port, "port", "", "Port to listen on (defaults to SERVER_PORT)")
	return cmd
}

// gracefulShutdown waits for ctx to end, then drains in-flight requests
func gracefulShutdown(ctx context.Context, srv *server.Server, logger *zap.Logger, done chan<- struct{}) {
	defer close(done)
	<-ctx.Done()

	logger.Info("Shutting down gracefully")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}
	if err := srv.Close(); err != nil {
		logger.Error("Error closing server resources", zap.Error(err))
	}

	logger.Info("Server exiting")
}
