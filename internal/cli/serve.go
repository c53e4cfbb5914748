package cli

import (
	"os"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"sulphur/internal/config"
	"sulphur/internal/logger"
	"sulphur/internal/server"
)

func NewServeCmd() *cobra.Command {
	var (
		address     string
		graphLength int
		spanSeconds float64
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the metrics exporter",
		Long: `Sample the host and serve the history over HTTP.

Examples:
  # Ten glyph graph covering the last 30 seconds
  sulphur serve --graph-length 10 --span-seconds 30`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.LoadServer()
			if err != nil {
				return err
			}

			flags := cmd.Flags()
			if flags.Changed("address") {
				cfg.Address = address
			}
			if flags.Changed("graph-length") {
				cfg.GraphLength = graphLength
			}
			if flags.Changed("span-seconds") {
				cfg.SpanSeconds = spanSeconds
			}

			log, err := logger.New(cfg.LogLevel, cfg.LogFormat, os.Stderr)
			if err != nil {
				return err
			}

			gin.SetMode(gin.ReleaseMode)

			return server.Run(cmd.Context(), cfg, log)
		},
	}

	cmd.Flags().StringVarP(&address, "address", "a", "", "address to bind (default from SULPHUR_ADDRESS or 127.0.0.1:8899)")
	cmd.Flags().IntVarP(&graphLength, "graph-length", "l", 0, "sparkline length in glyphs (default from SULPHUR_GRAPH_LENGTH or 5)")
	cmd.Flags().Float64VarP(&spanSeconds, "span-seconds", "s", 0, "lookback span in seconds (default from SULPHUR_SPAN_SECONDS or 5)")

	return cmd
}
