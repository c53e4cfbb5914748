package cli

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"sulphur/internal/graph"
	"sulphur/internal/models"
)

func NewWatchCmd() *cobra.Command {
	var flags clientFlags

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Stream sparklines from a remote exporter",
		Long:  `Subscribe to the exporter and print a fresh sparkline for every snapshot it pushes.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, measurementType, log, err := flags.setup(cmd)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			out := cmd.OutOrStdout()
			log.Debug("Watching", slog.String("type", string(measurementType)))

			return c.Watch(ctx, func(metrics models.Metrics) error {
				if err := graph.Write(out, metrics, measurementType, flags.color); err != nil {
					return fmt.Errorf("failed to write graph: %w", err)
				}
				return nil
			})
		},
	}
	flags.register(cmd)

	return cmd
}
