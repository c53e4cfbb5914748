package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"sulphur/internal/client"
	"sulphur/internal/config"
	"sulphur/internal/graph"
	"sulphur/internal/logger"
	"sulphur/internal/models"
)

// clientFlags are shared by the commands that talk to a remote exporter.
type clientFlags struct {
	apiAddress      string
	measurementType string
	color           bool
}

func (f *clientFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.apiAddress, "api-address", "", "exporter address (default from SULPHUR_API_ADDRESS or 127.0.0.1:8899)")
	cmd.Flags().StringVarP(&f.measurementType, "type", "t", string(models.MeasurementCPU), "metric to render: cpu or net")
	cmd.Flags().BoolVar(&f.color, "color", false, "colour glyphs by load")
}

// setup resolves the client configuration and logger for cmd.
func (f *clientFlags) setup(cmd *cobra.Command) (*client.Client, models.MeasurementType, *slog.Logger, error) {
	measurementType, err := models.ParseMeasurementType(f.measurementType)
	if err != nil {
		return nil, "", nil, err
	}

	cfg, err := config.LoadClient()
	if err != nil {
		return nil, "", nil, err
	}
	if cmd.Flags().Changed("api-address") {
		cfg.APIAddress = f.apiAddress
	}
	if err := cfg.Validate(); err != nil {
		return nil, "", nil, err
	}

	log, err := logger.New(cfg.LogLevel, cfg.LogFormat, os.Stderr)
	if err != nil {
		return nil, "", nil, err
	}

	return client.New(cfg.APIAddress, cfg.Timeout), measurementType, log, nil
}

func NewGraphCmd() *cobra.Command {
	var flags clientFlags

	cmd := &cobra.Command{
		Use:   "graph",
		Short: "Print one sparkline from a remote exporter",
		Long: `Fetch the exporter's history once and print it as a sparkline.

Examples:
  sulphur graph --type net --color`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, measurementType, log, err := flags.setup(cmd)
			if err != nil {
				return err
			}

			metrics, err := c.Fetch(cmd.Context())
			if err != nil {
				return err
			}
			log.Debug("Fetched metrics", slog.Int("samples", len(metrics.CPUUsage)))

			if err := graph.Write(cmd.OutOrStdout(), metrics, measurementType, flags.color); err != nil {
				return fmt.Errorf("failed to write graph: %w", err)
			}
			return nil
		},
	}
	flags.register(cmd)

	return cmd
}
