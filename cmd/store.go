package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/huangsam/trekrank/internal/contract"
	"github.com/huangsam/trekrank/internal/iostore"
	"github.com/huangsam/trekrank/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// storeSetup loads minimal configuration needed for store operations.
// This is used by commands that need store access without full shared setup.
func storeSetup() error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	// Get store-related config values
	backend := schema.DatabaseBackend(strings.ToLower(viper.GetString("backend")))
	connStr := viper.GetString("db-connect")

	// Basic validation for database backends
	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return err
	}

	// Initialize the store with the loaded config
	mgr, err := iostore.NewStoreManager(backend, connStr)
	if err != nil {
		return fmt.Errorf("failed to initialize persistence: %w", err)
	}
	storeManager = mgr

	cfg.Backend = backend
	cfg.DBConnect = connStr
	cfg.OutputFile = viper.GetString("output-file")
	cfg.CrewID = viper.GetInt64("crew")
	cfg.Year = viper.GetInt("year")
	if cfg.Year == 0 {
		cfg.Year = time.Now().Year()
	}

	return nil
}

// storeSetupWrapper wraps storeSetup to provide PreRunE for store commands.
func storeSetupWrapper(_ *cobra.Command, _ []string) error {
	return storeSetup()
}

// storeMigrateSetup loads minimal configuration needed for migrate operations.
// This is a specialized setup that does NOT initialize the store or create
// tables, allowing migrations to run on a fresh database.
func storeMigrateSetup() error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	backend := schema.DatabaseBackend(strings.ToLower(viper.GetString("backend")))
	connStr := viper.GetString("db-connect")

	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return err
	}

	// For SQLite backend with empty connection string, use default path
	if backend == schema.SQLiteBackend && connStr == "" {
		connStr = contract.GetDBFilePath()
	}

	cfg.Backend = backend
	cfg.DBConnect = connStr

	return nil
}

// storeMigrateSetupWrapper wraps storeMigrateSetup to provide PreRunE for migrate command.
func storeMigrateSetupWrapper(_ *cobra.Command, _ []string) error {
	return storeMigrateSetup()
}

// storeCmd focused on trek store management.
//
// Note: Store subcommands use minimal initialization (storeSetup) instead of
// the full sharedSetup used by scoring commands. This avoids crew validation
// and complex config processing for simple store operations.
var storeCmd = &cobra.Command{
	Use:   "store",
	Short: "Manage the trek catalog and results store",
	Long: `Manage the database that holds the trek catalog, crew data and results.

The store keeps:
- The itinerary/camp/program reference catalog
- Crew rosters, preferences and member program surveys
- Ranked results and the calculation audit history

Supported backends: SQLite (default), MySQL, PostgreSQL

Subcommands:
  status  - Show store statistics and connection details
  seed    - Load the sample catalog and crews
  clear   - Remove all stored data
  migrate - Run database schema migrations
  export  - Export results to Parquet for analytics

Examples:
  # Check store health
  trekrank store status

  # Start from a known sample dataset
  trekrank store seed`,
}

// storeStatusCmd shows store status.
var storeStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display store statistics and connection details",
	Long: `Show detailed information about the configured store.

Displays:
- Backend type and connection status
- Total number of calculation runs stored
- Last calculation run timestamp
- Database table sizes

Use this to:
- Verify the store is reachable and populated
- Monitor data accumulation over time
- Check database connection health

Examples:
  # Check store status
  trekrank store status`,
	PreRunE: storeSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		status, err := storeManager.GetStatus(rootCtx)
		if err != nil {
			contract.LogFatal("Failed to get store status", err)
		}
		iostore.PrintStoreStatus(status)
	},
}

// storeSeedCmd loads the sample dataset.
var storeSeedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load the sample catalog, crews and surveys",
	Long: `Replace all stored data with the built-in sample dataset.

The sample data includes a small itinerary catalog, two crews with
members and program surveys, and the default scoring factor table. It
gives every command something real to work against.

WARNING: This wipes any existing data first.

Examples:
  # Seed the current year
  trekrank store seed

  # Seed a specific season
  trekrank store seed --year 2027`,
	PreRunE: storeSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := storeManager.Seed(rootCtx, cfg.Year); err != nil {
			contract.LogFatal("Failed to seed store", err)
		}
		fmt.Printf("Seeded sample data for %d.\n", cfg.Year)
	},
}

// storeClearCmd clears the stored data.
var storeClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all stored catalog, crew and result data",
	Long: `Delete all stored trek data.

This removes:
- The itinerary/camp/program catalog
- Crew rosters, preferences and surveys
- All ranked results and the calculation audit history

WARNING: This action cannot be undone. Consider exporting data first.

Examples:
  # Export before clearing
  trekrank store export --output-file backup.parquet
  trekrank store clear`,
	PreRunE: storeSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		dbFilePath := cfg.DBConnect
		if dbFilePath == "" {
			dbFilePath = contract.GetDBFilePath()
		}
		if err := iostore.Clear(cfg.Backend, dbFilePath, cfg.DBConnect); err != nil {
			contract.LogFatal("Failed to clear store", err)
		}
		fmt.Println("Store data cleared successfully.")
	},
}

// storeMigrateCmd runs database migrations for the store.
var storeMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database schema migrations (upgrades/downgrades)",
	Long: `Manage database schema versions for the trek store.

Migrations allow:
- Upgrading to new schema versions when trekrank is updated
- Safely modifying database structure without data loss
- Rolling back schema changes if needed

By default, migrates to the latest version. Use --target-version for specific versions.

Examples:
  # Migrate to latest version (default)
  trekrank store migrate

  # Migrate to specific version
  trekrank store migrate --target-version 1

  # Rollback to initial state
  trekrank store migrate --target-version 0`,
	PreRunE: storeMigrateSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		targetVersion := viper.GetInt("target-version")
		if err := iostore.Migrate(cfg.Backend, cfg.DBConnect, targetVersion); err != nil {
			contract.LogFatal("Failed to run migrations", err)
		}
	},
}

// storeExportCmd exports result data to Parquet files.
var storeExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export a crew's results and logs to Parquet for analytics",
	Long: `Export one crew's stored data to Parquet format for analytics tools.

Exports two datasets:
- Crew results - the full ranked score breakdown per itinerary
- Calculation logs - the audit history of scoring runs

Parquet format enables:
- Fast querying with DuckDB, Apache Spark, pandas
- Efficient storage with columnar compression
- Direct import into BI tools

Requires: --output-file parameter

Examples:
  # Export crew 1's data
  trekrank store export --crew 1 --output-file crew1.parquet

  # Use with DuckDB for analysis
  trekrank store export --crew 1 --output-file data.parquet
  duckdb -c "SELECT * FROM read_parquet('data.parquet.crew_results.parquet') LIMIT 10"`,
	PreRunE: storeSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := iostore.ExecuteExport(rootCtx, storeManager, cfg.CrewID, cfg.Year, cfg.OutputFile); err != nil {
			contract.LogFatal("Failed to export store data", err)
		}
	},
}
