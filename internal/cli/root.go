// Package cli wires the sulphur subcommands.
package cli

import (
	"github.com/spf13/cobra"
)

// NewRootCmd returns the sulphur command with every subcommand attached.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "sulphur",
		Short: "CPU and network sparklines",
		Long: `Sulphur samples CPU load and network throughput, keeps a short rolling
history and renders it as a braille sparkline, locally or from a remote exporter.`,
		SilenceUsage: true,
	}

	rootCmd.AddCommand(
		NewServeCmd(),
		NewGraphCmd(),
		NewWatchCmd(),
	)

	return rootCmd
}
