package cmd

import (
	"github.com/capsight/capsight/core"
	"github.com/capsight/capsight/internal/contract"
	"github.com/capsight/capsight/internal/outwriter"
	"github.com/capsight/capsight/schema"
	"github.com/spf13/cobra"
)

// demandCmd computes the raw daily demand model.
var demandCmd = &cobra.Command{
	Use:   "demand",
	Short: "Show the raw demand model: expected hours per user per day.",
	Long: `Compute expected work hours per user per day for the requested range,
with one entry per contributing task or allocation.

Task-derived demand uses remaining hours when tracked, then the estimate
adjusted by percent complete, then an even spread over the scheduled window.
Users with project allocations but no scheduled tasks fall back to their
allocation percentage. Tasks that cannot be modeled are tallied with a
reason instead of failing the report.

Examples:
  # Demand for the default two-week range
  capsight demand --org acme --workspace eng --snapshot export.json

  # Include tasks without an assignee under a pseudo-user
  capsight demand --include-unassigned

  # Columnar export for downstream analysis
  capsight demand --output parquet --output-file demand.parquet`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		result, err := core.GetDailyDemandResults(rootCtx, cfg, sourceClient)
		if err != nil {
			contract.LogFatal("Cannot compute demand", err)
		}
		if cfg.Output == schema.TextOut {
			outwriter.LogReportHeader(cfg, "demand")
		}
		if err := writer.WriteDemand(result, cfg); err != nil {
			contract.LogFatal("Cannot write demand report", err)
		}
	},
}
