package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/optio/internal/metrics"
	"github.com/matzehuels/optio/internal/server"
)

// serveCommand creates the serve command that runs the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr      string
		rateLimit int
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long: `Run the HTTP API.

Routes:
  POST /api/v1/encrypt   {"key","message"}    -> {"ciphertext"}
  POST /api/v1/decrypt   {"key","ciphertext"} -> {"message"}
  GET  /api/v1/healthz
  GET  /api/v1/version
  GET  /metrics

Flags override the [server] table of the config file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := c.config.Server
			if cmd.Flags().Changed("addr") {
				cfg.Addr = addr
			}
			if cmd.Flags().Changed("rate-limit") {
				cfg.RateLimit = rateLimit
			}
			return c.runServe(cmd, cfg)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", server.DefaultAddr, "listen address")
	cmd.Flags().IntVar(&rateLimit, "rate-limit", server.DefaultRateLimit, "requests per minute per IP (0 disables)")

	return cmd
}

func (c *CLI) runServe(cmd *cobra.Command, cfg ServerConfig) error {
	m := metrics.New()
	m.Install()

	srv := server.New(server.Config{
		Addr:      cfg.Addr,
		RateLimit: cfg.RateLimit,
		Logger:    loggerFromContext(cmd.Context()),
		Metrics:   m,
	})

	w := cmd.ErrOrStderr()
	printInfo(w, "Serving Optio API on %s", StyleLink.Render(srv.Addr()))
	if cfg.RateLimit > 0 {
		printDetail(w, "Rate limit: %d requests/minute per IP", cfg.RateLimit)
	} else {
		printDetail(w, "Rate limit: disabled")
	}
	printDetail(w, "Metrics: /metrics")

	return srv.ListenAndServe(cmd.Context())
}
