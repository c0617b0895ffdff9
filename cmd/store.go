package cmd

import (
	"fmt"
	"strings"

	"github.com/capsight/capsight/internal/contract"
	"github.com/capsight/capsight/internal/store"
	"github.com/capsight/capsight/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// storeSetup loads minimal configuration needed for override store operations.
// This is used by commands that need store access without full shared setup.
func storeSetup() error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	// Get store-related config values
	backend := schema.DatabaseBackend(strings.ToLower(viper.GetString("store-backend")))
	connStr := viper.GetString("store-db-connect")

	// Basic validation for database backends
	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return err
	}

	cfg.StoreBackend = backend
	cfg.StoreDBConnect = connStr
	cfg.Output = schema.OutputMode(strings.ToLower(viper.GetString("output")))
	cfg.OutputFile = viper.GetString("output-file")

	// Migrations open their own connection; status/clear need a live store.
	var err error
	overrideStore, err = store.NewOverrideStore(backend, connStr)
	if err != nil {
		return fmt.Errorf("failed to initialize override store: %w", err)
	}

	return nil
}

// storeSetupWrapper wraps storeSetup to provide PreRunE for store commands.
func storeSetupWrapper(_ *cobra.Command, _ []string) error {
	return storeSetup()
}

// storeCmd focused on override store management.
//
// Note: Store subcommands use minimal initialization (storeSetup) instead of
// the full sharedSetup used by report commands. This avoids snapshot loading
// and range validation for simple maintenance operations.
var storeCmd = &cobra.Command{
	Use:   "store",
	Short: "Manage the capacity override store",
	Long: `Manage the database that persists per-user per-day capacity overrides.

Overrides are upserts keyed by (org, workspace, user, date), so repeated
administrative edits never produce duplicate rows.

Supported backends: SQLite (default), MySQL, PostgreSQL, or None (no-op)

Subcommands:
  status  - Show override row counts per workspace
  clear   - Remove all stored overrides
  migrate - Run schema migrations against the store

Examples:
  # Check store contents
  capsight store status

  # Wipe overrides after an org rename
  capsight store clear`,
}

// storeStatusCmd shows override row counts.
var storeStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display override row counts per workspace",
	Long: `Show how many capacity overrides each workspace has stored.

Use this to:
- Verify the store is connected and populated
- Spot workspaces carrying stale override data
- Debug backend connection issues

Examples:
  # Status of the default SQLite store
  capsight store status

  # Status of a MySQL store (set connection string via env variable)
  CAPSIGHT_STORE_BACKEND=mysql CAPSIGHT_STORE_DB_CONNECT="..." capsight store status`,
	PreRunE: storeSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		counts, err := overrideStore.Status(rootCtx)
		if err != nil {
			contract.LogFatal("Failed to get store status", err)
		}
		if err := writer.WriteStoreStatus(counts, cfg); err != nil {
			contract.LogFatal("Cannot write store status", err)
		}
	},
}

// storeClearCmd removes all stored overrides.
var storeClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all stored capacity overrides",
	Long: `Delete every capacity override from the configured backend.

Use this when:
- Workspaces were renamed or reorganized
- Override data is stale across the board
- Resetting a test environment

Examples:
  # Clear the default SQLite store
  capsight store clear

  # Clear a PostgreSQL store
  CAPSIGHT_STORE_BACKEND=postgresql CAPSIGHT_STORE_DB_CONNECT="..." capsight store clear`,
	PreRunE: storeSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := overrideStore.Clear(rootCtx); err != nil {
			contract.LogFatal("Failed to clear override store", err)
		}
		fmt.Println("Override store cleared successfully.")
	},
}

// storeMigrateCmd runs schema migrations.
var storeMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run schema migrations against the override store",
	Long: `Apply or roll back the override store's schema migrations.

The target version controls direction:
  -1  migrate up to the latest version (default)
   0  roll back to the initial, empty state
   N  migrate to exactly version N

Examples:
  # Migrate to the latest schema
  capsight store migrate

  # Roll everything back
  capsight store migrate --target-version 0`,
	PreRunE: func(_ *cobra.Command, _ []string) error {
		// Migrations manage their own connection; skip store construction.
		return loadConfigFile()
	},
	Run: func(_ *cobra.Command, _ []string) {
		backend := schema.DatabaseBackend(strings.ToLower(viper.GetString("store-backend")))
		connStr := viper.GetString("store-db-connect")
		if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
			contract.LogFatal("Invalid store configuration", err)
		}
		if err := store.MigrateOverrides(backend, connStr, viper.GetInt("target-version")); err != nil {
			contract.LogFatal("Migration failed", err)
		}
	},
}
