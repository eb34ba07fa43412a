package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/damacus/iron-navigator/internal/services"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd(app *appContainer) *cobra.Command {
	var address string

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the JSON API",
		Long: `Starts the HTTP API. Clients log in with an access-key pair, which is sealed
into the session cookie and used for every request of that session.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := app.Config.Server
			if address != "" {
				cfg.Address = address
			}

			authService, err := services.NewAuthService(cfg.SessionKey)
			if err != nil {
				return err
			}
			if cfg.SessionKey == "" {
				app.Logger.Warn("SERVER_SESSION_KEY not set, sessions will not survive a restart")
			}

			e := newServer(app.Navigator, authService, cfg, app.Logger)

			errCh := make(chan error, 1)
			go func() {
				app.Logger.Info("Starting server", zap.String("address", cfg.Address))
				errCh <- e.Start(cfg.Address)
			}()

			select {
			case err := <-errCh:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return err
			case <-cmd.Context().Done():
			}

			app.Logger.Info("Shutting down server...")
			ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			return e.Shutdown(ctx)
		},
	}
	serveCmd.Flags().StringVar(&address, "address", "", "Listen address, overrides SERVER_ADDRESS")

	return serveCmd
}
