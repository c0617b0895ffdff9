package cmd

import (
	"github.com/capsight/capsight/core"
	"github.com/capsight/capsight/internal/contract"
	"github.com/capsight/capsight/internal/outwriter"
	"github.com/capsight/capsight/schema"
	"github.com/spf13/cobra"
)

// utilizationCmd computes per-user daily utilization.
var utilizationCmd = &cobra.Command{
	Use:   "utilization",
	Short: "Show per-user daily utilization (demand over capacity).",
	Long: `Join the capacity calendar and the demand model into per-user daily
utilization records, flagging days where demand exceeds the threshold.

Capacity defaults to 8 hours on weekdays and 0 on weekends, adjusted by any
stored per-user per-day overrides. Demand comes from task schedules first and
project allocations as a fallback, without double-counting.

Utilization on a zero-capacity day with demand is reported as infinite and
always counts as overallocated.

Examples:
  # Utilization for the default two-week range
  capsight utilization --org acme --workspace eng --snapshot export.json

  # Focus on two users with a stricter threshold
  capsight utilization --users alice,bob --threshold 0.8

  # Weekly rollups exported as JSON
  capsight utilization --weekly --output json --output-file util.json

  # Columnar export for downstream analysis
  capsight utilization --output parquet --output-file util.parquet`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		result, err := core.GetUtilizationResults(rootCtx, cfg, sourceClient, overrideStore)
		if err != nil {
			contract.LogFatal("Cannot compute utilization", err)
		}
		if cfg.Output == schema.TextOut {
			outwriter.LogReportHeader(cfg, "utilization")
		}
		if err := writer.WriteUtilization(result, cfg); err != nil {
			contract.LogFatal("Cannot write utilization report", err)
		}
	},
}
