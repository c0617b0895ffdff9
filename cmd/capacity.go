package cmd

import (
	"fmt"
	"strconv"

	"github.com/capsight/capsight/core"
	"github.com/capsight/capsight/internal/contract"
	"github.com/capsight/capsight/schema"
	"github.com/spf13/cobra"
)

// capacityCmd groups the capacity calendar operations.
var capacityCmd = &cobra.Command{
	Use:   "capacity",
	Short: "Inspect and override per-user daily capacity",
	Long: `Work with the capacity calendar: the available hours per user per day.

Weekdays default to 8 hours and weekends to 0. Administrators can override
any single (user, day) cell to model part-time schedules, holidays, or leave.
Overrides persist in the configured store backend and apply to every report.

Subcommands:
  show - Print the capacity calendar for users over a date range
  set  - Override one user's available hours for one day

Examples:
  # Capacity calendar for two users
  capsight capacity show --users alice,bob --from 2024-01-01 --to 2024-01-14

  # Mark a holiday
  capsight capacity set alice 2024-01-01 0`,
}

// capacityShowCmd prints the derived capacity calendar.
var capacityShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the capacity calendar for users over a date range",
	Long: `Derive the capacity calendar for the requested users and range, merging
the weekday/weekend defaults with any stored overrides.

Examples:
  # Calendar for one user over the default range
  capsight capacity show --org acme --workspace eng --snapshot export.json --users alice

  # Export a month as CSV
  capsight capacity show --users alice,bob --from 2024-01-01 --to 2024-01-31 --output csv`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if len(cfg.UserIDs) == 0 {
			contract.LogFatal("Cannot show capacity", fmt.Errorf("at least one user is required (--users)"))
		}

		overrides, err := overrideStore.GetOverrides(rootCtx, cfg.Org, cfg.Workspace, cfg.UserIDs, cfg.From, cfg.To)
		if err != nil {
			contract.LogFatal("Cannot load capacity overrides", err)
		}

		capMap, err := core.BuildCapacityMap(cfg.UserIDs, cfg.From, cfg.To, overrides)
		if err != nil {
			contract.LogFatal("Cannot build capacity calendar", err)
		}
		if err := writer.WriteCapacity(capMap, cfg); err != nil {
			contract.LogFatal("Cannot write capacity calendar", err)
		}
	},
}

// capacitySetCmd upserts one capacity override.
var capacitySetCmd = &cobra.Command{
	Use:   "set <user> <date> <hours>",
	Short: "Override one user's available hours for one day",
	Long: `Store a capacity override for a single (user, day) cell.

The override is an upsert: repeating the command with new hours replaces the
previous value. Hours must be non-negative; zero models a day off.

Examples:
  # Half day on a Friday
  capsight capacity set alice 2024-01-05 4

  # Holiday for the whole day
  capsight capacity set bob 2024-01-01 0`,
	Args:    cobra.ExactArgs(3),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, args []string) {
		hours, err := strconv.ParseFloat(args[2], 64)
		if err != nil {
			contract.LogFatal("Cannot parse hours", err)
		}

		ov := schema.CapacityOverride{
			Org:       cfg.Org,
			Workspace: cfg.Workspace,
			UserID:    args[0],
			Date:      args[1],
			Hours:     hours,
		}
		if err := core.ValidateOverride(ov); err != nil {
			contract.LogFatal("Invalid capacity override", err)
		}
		if err := overrideStore.SetOverride(rootCtx, ov); err != nil {
			contract.LogFatal("Cannot store capacity override", err)
		}
		fmt.Printf("Set capacity for %s on %s to %.2f hours\n", ov.UserID, ov.Date, ov.Hours)
	},
}
