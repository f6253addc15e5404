package cli

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/halfmesh/internal/api"
)

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long: `Serve runs the mesh service over HTTP against the configured store.

The API exposes snapshot CRUD under /meshes, per-mesh statistics,
refinement, and connectivity rendering. The server shuts down gracefully
when the process receives an interrupt.`,
		Example: `  halfmesh serve
  halfmesh serve --addr :9090`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := withLogger(cmd.Context(), c.Logger)
			logger := loggerFromContext(ctx)

			if addr == "" {
				addr = c.Config.Serve.Addr
			}

			s, err := c.newStore(cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			server := &http.Server{
				Addr:              addr,
				Handler:           api.NewServer(s, c.Config.Store.Backend, logger).Router(),
				ReadHeaderTimeout: 10 * time.Second,
			}

			errCh := make(chan error, 1)
			go func() {
				logger.Info("serving", "addr", addr, "backend", c.Config.Store.Backend)
				errCh <- server.ListenAndServe()
			}()

			select {
			case err := <-errCh:
				return err
			case <-ctx.Done():
			}

			logger.Info("shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := server.Shutdown(shutdownCtx); err != nil {
				return err
			}
			if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, :8080)")

	return cmd
}
