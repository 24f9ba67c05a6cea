package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/steviee/mcskin/internal/metrics"
	"github.com/steviee/mcskin/internal/mojang"
	"github.com/steviee/mcskin/internal/server"
	"github.com/steviee/mcskin/internal/state"
)

// NewServeCommand creates the serve command.
func NewServeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve skin resolutions over HTTP",
		Long: `Serve the skin API over HTTP.

Endpoints:
  GET /v1/skins/{username}             resolution as JSON
  GET /v1/skins/{username}/skin        redirect to the skin image
  GET /v1/skins/{username}/properties  signed profile properties
  GET /healthz                         liveness check
  GET /metrics                         Prometheus metrics

Requests are rate limited per client IP. Stop with Ctrl+C or SIGTERM.`,
		Example: `  # Listen on all interfaces
  mcskin serve --listen :8080

  # Allow a browser frontend
  mcskin serve --cors-origin https://example.com`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := GetSettings()

			rec := metrics.New(true)
			resolver, err := newResolver(cfg, rec)
			if err != nil {
				return err
			}

			srv := server.New(resolver, &server.Config{
				Listen:         cfg.Server.Listen,
				RateLimit:      cfg.Server.RateLimit,
				CORSOrigins:    cfg.Server.CORSOrigins,
				RequestTimeout: requestTimeout(cfg),
				Metrics:        rec,
				Logger:         GetLogger(),
			})

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if err := srv.ListenAndServe(ctx); err != nil {
				return fmt.Errorf("serve: %w", err)
			}
			return nil
		},
	}

	defaults := state.DefaultConfig()
	cmd.Flags().String("listen", defaults.Server.Listen, "address to listen on")
	cmd.Flags().Int("rate-limit", defaults.Server.RateLimit, "requests per minute per client IP (0 disables)")
	cmd.Flags().StringSlice("cors-origin", nil, "allowed CORS origin (repeatable)")
	addLookupFlags(cmd)

	return cmd
}

// requestTimeout bounds one HTTP request: two lookups plus headroom.
// A disabled lookup timeout disables the request timeout too.
func requestTimeout(cfg *state.Config) time.Duration {
	timeout := cfg.API.Timeout
	if timeout == 0 {
		timeout = mojang.DefaultTimeout
	}
	if timeout < 0 {
		return 0
	}
	return 2*timeout + time.Second
}
