package cmd

import (
	"github.com/capsight/capsight/core"
	"github.com/capsight/capsight/internal/contract"
	"github.com/capsight/capsight/internal/outwriter"
	"github.com/capsight/capsight/schema"
	"github.com/spf13/cobra"
)

// sprintCmd groups the sprint analytics operations.
var sprintCmd = &cobra.Command{
	Use:   "sprint",
	Short: "Analyze sprint capacity, burndown, and velocity",
	Long: `Sprint-level analytics over the snapshot's sprints and tasks.

Completed sprints carry frozen committed/completed point totals stamped at
completion time; reports prefer those frozen numbers and fall back to live
task data for sprints still in flight.

Subcommands:
  capacity - Compare allocated hours against committed load for one sprint
  burndown - Daily remaining-points series with an ideal reference line
  velocity - Rolling average of completed points across recent sprints

Examples:
  # Capacity check before sprint start
  capsight sprint capacity --sprint s42

  # Burndown chart data as JSON
  capsight sprint burndown --sprint s42 --output json

  # Velocity over the last five completed sprints
  capsight sprint velocity --projects p1`,
}

// sprintCapacityCmd compares sprint capacity against committed load.
var sprintCapacityCmd = &cobra.Command{
	Use:   "capacity",
	Short: "Compare a sprint's allocated hours against its committed load",
	Long: `Compute how many working hours the sprint's allocations provide across
its workdays, convert the committed story points to hours, and report the
remaining headroom. Negative remaining hours signal over-commitment.

Examples:
  # Capacity check with default rates (8h/day, 2h/point)
  capsight sprint capacity --sprint s42 --snapshot export.json

  # A team that sizes one point at three hours
  capsight sprint capacity --sprint s42 --hours-per-point 3`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		sprint, result, err := core.GetSprintCapacityResults(rootCtx, cfg, sourceClient)
		if err != nil {
			contract.LogFatal("Cannot compute sprint capacity", err)
		}
		if cfg.Output == schema.TextOut {
			outwriter.LogReportHeader(cfg, "sprint capacity")
		}
		if err := writer.WriteSprintCapacity(sprint, result, cfg); err != nil {
			contract.LogFatal("Cannot write sprint capacity report", err)
		}
	},
}

// sprintBurndownCmd builds the daily burndown series.
var sprintBurndownCmd = &cobra.Command{
	Use:   "burndown",
	Short: "Show the daily burndown series for a sprint",
	Long: `Build one bucket per calendar day of the sprint (weekends included) with
remaining points, completed points, and a linear ideal reference line.

Completed sprints use their frozen committed total as scope; in-flight
sprints recompute scope from live task data on every run.

Examples:
  # Burndown for an active sprint
  capsight sprint burndown --sprint s42 --snapshot export.json

  # Feed a charting tool with CSV
  capsight sprint burndown --sprint s42 --output csv --output-file burndown.csv`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		sprint, result, err := core.GetBurndownResults(rootCtx, cfg, sourceClient)
		if err != nil {
			contract.LogFatal("Cannot compute burndown", err)
		}
		if cfg.Output == schema.TextOut {
			outwriter.LogReportHeader(cfg, "sprint burndown")
		}
		if err := writer.WriteBurndown(sprint, result, cfg); err != nil {
			contract.LogFatal("Cannot write burndown report", err)
		}
	},
}

// sprintVelocityCmd computes the rolling velocity of a project.
var sprintVelocityCmd = &cobra.Command{
	Use:   "velocity",
	Short: "Show the rolling velocity of a project's completed sprints",
	Long: `Average completed story points over the most recent completed sprints of
one project, newest first. Sprints completed before point freezing was
introduced are recomputed from task data and marked unfrozen.

Examples:
  # Velocity over the default window of five sprints
  capsight sprint velocity --projects p1 --snapshot export.json

  # Longer window for a noisy team
  capsight sprint velocity --projects p1 --window 10`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		projectID, result, err := core.GetVelocityResults(rootCtx, cfg, sourceClient)
		if err != nil {
			contract.LogFatal("Cannot compute velocity", err)
		}
		if cfg.Output == schema.TextOut {
			outwriter.LogReportHeader(cfg, "sprint velocity")
		}
		if err := writer.WriteVelocity(projectID, result, cfg); err != nil {
			contract.LogFatal("Cannot write velocity report", err)
		}
	},
}
