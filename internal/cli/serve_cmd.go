package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/qkariin/queendom/internal/app"
	"github.com/qkariin/queendom/internal/bridge"
)

// newBridgeHandler builds the HTTP bridge on the CLI's services.
func newBridgeHandler(a *App) http.Handler {
	svc := app.Services{
		Members:     a.Members,
		Submissions: a.Submissions,
		Kneel:       a.Kneel,
		Promotion:   a.Promotion,
		Tasks:       a.Tasks,
	}
	return bridge.NewHandler(svc, bridge.Options{
		Logger:    a.logger(),
		RateLimit: a.Config.RateLimitRPS,
		Location:  a.Location,
		Now:       a.Now,
	}).Router()
}

func newServeCmd(a *App) *cobra.Command {
	var listen string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the JSON bridge for the host page",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			addr := listen
			if addr == "" {
				addr = a.Config.Listen
			}
			srv := &http.Server{
				Addr:         addr,
				Handler:      newBridgeHandler(a),
				ReadTimeout:  30 * time.Second,
				WriteTimeout: 30 * time.Second,
				IdleTimeout:  60 * time.Second,
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			errCh := make(chan error, 1)
			go func() {
				a.logger().Info("bridge listening", "addr", addr)
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					errCh <- err
				}
				close(errCh)
			}()

			select {
			case err := <-errCh:
				if err != nil {
					return fmt.Errorf("bridge: %w", err)
				}
				return nil
			case <-ctx.Done():
			}

			a.logger().Info("bridge shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	}

	cmd.Flags().StringVar(&listen, "listen", "", "Listen address (default from QUEENDOM_LISTEN)")
	return cmd
}
