package cmd

import (
	"github.com/capsight/capsight/core"
	"github.com/capsight/capsight/internal/contract"
	"github.com/capsight/capsight/internal/outwriter"
	"github.com/capsight/capsight/schema"
	"github.com/spf13/cobra"
)

// overallocCmd finds days where demand exceeds threshold-scaled capacity.
var overallocCmd = &cobra.Command{
	Use:   "overalloc",
	Short: "Show overallocated days with the contributing tasks.",
	Long: `Scan the requested range for days where a user's demand exceeds their
threshold-scaled capacity, keeping the full per-task breakdown for each hit.

Results are sorted most over-allocated first so the worst conflicts surface
at the top. Each entry names the tasks (or allocation fallback) that caused
the overload, so schedulers know what to move.

Examples:
  # Default threshold (1.0 = at capacity)
  capsight overalloc --org acme --workspace eng --snapshot export.json

  # Tolerate 20% over capacity before flagging
  capsight overalloc --threshold 1.2

  # Export conflicts for one project to CSV
  capsight overalloc --projects p1 --output csv --output-file conflicts.csv`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		result, err := core.GetOverallocationResults(rootCtx, cfg, sourceClient, overrideStore)
		if err != nil {
			contract.LogFatal("Cannot compute overallocations", err)
		}
		if cfg.Output == schema.TextOut {
			outwriter.LogReportHeader(cfg, "overalloc")
		}
		if err := writer.WriteOverallocations(result, cfg); err != nil {
			contract.LogFatal("Cannot write overallocation report", err)
		}
	},
}
