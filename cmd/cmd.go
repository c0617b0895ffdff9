// Package cmd defines the command-line interface for capsight.
package cmd

import (
	"github.com/capsight/capsight/internal/contract"
	"github.com/capsight/capsight/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(utilizationCmd)
	rootCmd.AddCommand(overallocCmd)
	rootCmd.AddCommand(demandCmd)
	rootCmd.AddCommand(capacityCmd)
	rootCmd.AddCommand(sprintCmd)
	rootCmd.AddCommand(storeCmd)
	rootCmd.AddCommand(versionCmd)

	// Add the capacity subcommands to the parent capacity command
	capacityCmd.AddCommand(capacityShowCmd)
	capacityCmd.AddCommand(capacitySetCmd)

	// Add the sprint subcommands to the parent sprint command
	sprintCmd.AddCommand(sprintCapacityCmd)
	sprintCmd.AddCommand(sprintBurndownCmd)
	sprintCmd.AddCommand(sprintVelocityCmd)

	// Add the store subcommands to the parent store command
	storeCmd.AddCommand(storeStatusCmd)
	storeCmd.AddCommand(storeClearCmd)
	storeCmd.AddCommand(storeMigrateCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().StringP("org", "o", "", "Organization identifier")
	rootCmd.PersistentFlags().StringP("workspace", "w", "", "Workspace identifier within the organization")
	rootCmd.PersistentFlags().String("from", "", "Inclusive range start (YYYY-MM-DD); defaults to today")
	rootCmd.PersistentFlags().String("to", "", "Inclusive range end (YYYY-MM-DD); defaults to two weeks out")
	rootCmd.PersistentFlags().StringP("users", "u", "", "Comma-separated list of user IDs to scope reports to")
	rootCmd.PersistentFlags().StringP("projects", "p", "", "Comma-separated list of project IDs to scope reports to")
	rootCmd.PersistentFlags().String("output", string(schema.TextOut), "Output format: text or csv or json or parquet")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to")
	rootCmd.PersistentFlags().Int("width", 0, "Terminal width override (0 = auto-detect)")
	rootCmd.PersistentFlags().StringP("snapshot", "s", "", "Path to the workspace snapshot export (JSON)")
	rootCmd.PersistentFlags().String("store-backend", string(schema.SQLiteBackend), "Override store backend: sqlite or mysql or postgresql or none")
	rootCmd.PersistentFlags().String("store-db-connect", "", "Database connection string for mysql/postgresql (e.g., user:pass@tcp(host:port)/dbname)")
	rootCmd.PersistentFlags().String("emoji", "yes", "Enable emojis in report headers (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored labels in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Bind all flags of utilizationCmd to Viper
	utilizationCmd.Flags().Float64("threshold", 0, "Overallocation threshold multiplier (clamped to 0.5-2.0; 0 = default)")
	utilizationCmd.Flags().Bool("include-disabled", false, "Model projects with capacity tracking disabled")
	utilizationCmd.Flags().Bool("include-unassigned", false, "Model assignee-less tasks under a pseudo-user")
	utilizationCmd.Flags().Bool("weekly", false, "Attach ISO-week rollups to the report")
	if err := viper.BindPFlags(utilizationCmd.Flags()); err != nil {
		contract.LogFatal("Error binding utilization flags", err)
	}

	// Bind all flags of overallocCmd to Viper
	overallocCmd.Flags().Float64("threshold", 0, "Overallocation threshold multiplier (clamped to 0.5-2.0; 0 = default)")
	overallocCmd.Flags().Bool("include-disabled", false, "Model projects with capacity tracking disabled")
	overallocCmd.Flags().Bool("include-unassigned", false, "Model assignee-less tasks under a pseudo-user")
	if err := viper.BindPFlags(overallocCmd.Flags()); err != nil {
		contract.LogFatal("Error binding overalloc flags", err)
	}

	// Bind all flags of demandCmd to Viper
	demandCmd.Flags().Bool("include-disabled", false, "Model projects with capacity tracking disabled")
	demandCmd.Flags().Bool("include-unassigned", false, "Model assignee-less tasks under a pseudo-user")
	if err := viper.BindPFlags(demandCmd.Flags()); err != nil {
		contract.LogFatal("Error binding demand flags", err)
	}

	// Bind all persistent flags of sprintCmd to Viper
	sprintCmd.PersistentFlags().String("sprint", "", "Sprint ID to analyze")
	sprintCmd.PersistentFlags().Float64("hours-per-day", 0, "Working hours per allocated day (0 = default)")
	sprintCmd.PersistentFlags().Float64("hours-per-point", 0, "Hours represented by one story point (0 = default)")
	sprintCmd.PersistentFlags().Int("window", schema.DefaultVelocityWindow, "Completed sprints to average over (clamped to 1-20)")
	if err := viper.BindPFlags(sprintCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding sprint flags", err)
	}

	// Bind all flags of storeMigrateCmd to Viper
	storeMigrateCmd.Flags().Int("target-version", -1, "Target migration version (-1 means latest, 0 means rollback to initial state)")
	if err := viper.BindPFlags(storeMigrateCmd.Flags()); err != nil {
		contract.LogFatal("Error binding store migrate flags", err)
	}
}
