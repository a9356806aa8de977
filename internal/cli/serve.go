package cli

import (
	"resumescore/internal/server"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start HTTP server for resume scoring",
	Long: `Start an HTTP server that provides REST API endpoints for resume scoring.

Available endpoints:
- POST /api/v1/analyze: Score a resume, optionally against a job description
- GET /health: Health check endpoint
- GET /stats: Server statistics and rate limiting info`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringP("port", "p", "", "Port to listen on (default from config)")
	serveCmd.Flags().String("host", "", "Host to bind to (default from config)")

	// Bind flags to viper config keys
	bindFlag := func(key, flagName string) {
		if err := viper.BindPFlag(key, serveCmd.Flags().Lookup(flagName)); err != nil {
			panic(err)
		}
	}

	bindFlag("server.port", "port")
	bindFlag("server.host", "host")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := getConfigFromContext(cmd.Context())
	if err != nil {
		return err
	}
	logger, err := getLoggerFromContext(cmd.Context())
	if err != nil {
		return err
	}

	p, err := buildPipeline(cmd.Context(), cfg, logger)
	if err != nil {
		return err
	}
	// The server closes the store and AI service during graceful shutdown
	defer p.closeAuxiliary(logger)

	deps := server.Dependencies{
		Engine:    p.engine,
		Store:     p.store,
		AIService: p.aiSvc,
		Version:   Version,
	}
	return server.NewServer(cfg, deps, logger).Start()
}
