package main

import (
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "advisor",
		Short: "Query log analytics: slow patterns, index hints, anomaly flags",
		Long: `advisor groups executed queries into patterns and derives index
recommendations, execution time forecasts and regression flags.

Settings come from ADVISOR_* environment variables, optionally seeded
from a .env file in the working directory.`,
		SilenceUsage: true,
	}
	root.AddCommand(newServeCmd(), newAnalyzeCmd())
	return root
}
