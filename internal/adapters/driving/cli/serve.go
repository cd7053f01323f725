package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/BASILR00T/kawnhub-sub000/internal/adapters/driving/web"
)

var (
	serveAddr      string
	serveRateLimit float64
	serveRateBurst int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	Long: `Serve the topic corpus over HTTP.

Routes:
  GET    /api/search?q=        Search topics
  GET    /api/topics           List topics
  POST   /api/topics           Create a topic
  GET    /api/topics/{id}      Read a topic
  PUT    /api/topics/{id}      Create or replace a topic
  DELETE /api/topics/{id}      Delete a topic
  GET    /api/corpus           Corpus cache state
  POST   /api/corpus/invalidate
  GET    /metrics              Prometheus metrics
  GET    /healthz              Liveness

Flags override server.addr, server.rate_limit and server.rate_burst.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVarP(&serveAddr, "addr", "a", "", "listen address (default from server.addr)")
	serveCmd.Flags().Float64Var(&serveRateLimit, "rate-limit", -1, "requests per second for /api, 0 disables (default from server.rate_limit)")
	serveCmd.Flags().IntVar(&serveRateBurst, "rate-burst", -1, "burst size for /api (default from server.rate_burst)")
	rootCmd.AddCommand(serveCmd)
}

// serveConfig merges command flags over the loaded settings.
func serveConfig() web.Config {
	cfg := web.Config{
		Search:     searchService,
		Topics:     topicService,
		Corpus:     corpusService,
		Gatherer:   gatherer,
		ListenAddr: appSettings.Server.Addr,
		RateLimit:  appSettings.Server.RateLimit,
		RateBurst:  appSettings.Server.RateBurst,
	}
	if serveAddr != "" {
		cfg.ListenAddr = serveAddr
	}
	if serveRateLimit >= 0 {
		cfg.RateLimit = serveRateLimit
	}
	if serveRateBurst >= 0 {
		cfg.RateBurst = serveRateBurst
	}
	return cfg
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg := serveConfig()
	server, err := web.NewServer(cfg)
	if err != nil {
		return fmt.Errorf("configuring web server: %w", err)
	}

	stop := startBackground(cmd.Context())
	defer stop()

	fmt.Fprintf(cmd.OutOrStdout(), "KawnHub API listening on %s\n", cfg.ListenAddr)
	return server.Run(cmd.Context())
}
