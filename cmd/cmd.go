// Package cmd defines the command-line interface for trekrank.
package cmd

import (
	"github.com/huangsam/trekrank/internal/contract"
	"github.com/huangsam/trekrank/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(calculateCmd)
	rootCmd.AddCommand(resultsCmd)
	rootCmd.AddCommand(crewsCmd)
	rootCmd.AddCommand(storeCmd)
	rootCmd.AddCommand(versionCmd)

	// Add the crews subcommands to the parent crews command
	crewsCmd.AddCommand(crewsMembersCmd)

	// Add the store subcommands to the parent store command
	storeCmd.AddCommand(storeStatusCmd)
	storeCmd.AddCommand(storeSeedCmd)
	storeCmd.AddCommand(storeClearCmd)
	storeCmd.AddCommand(storeMigrateCmd)
	storeCmd.AddCommand(storeExportCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().Int64P("crew", "c", contract.DefaultCrewID, "Crew id to score or inspect")
	rootCmd.PersistentFlags().IntP("year", "y", 0, "Trek year (0 = current calendar year)")
	rootCmd.PersistentFlags().StringP("method", "m", string(schema.TotalMethod), "Aggregation method: total or average or median or mode")
	rootCmd.PersistentFlags().Bool("all-methods", false, "Recompute with total, average and median in one pass")
	rootCmd.PersistentFlags().String("output", string(schema.TextOut), "Output format: text or csv or json or parquet")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to")
	rootCmd.PersistentFlags().Int("precision", contract.DefaultPrecision, "Decimal precision for numeric columns")
	rootCmd.PersistentFlags().Bool("detail", false, "Print per-factor score breakdown columns")
	rootCmd.PersistentFlags().Int("width", 0, "Terminal width override (0 = auto-detect)")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored labels in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("backend", string(schema.SQLiteBackend), "Store backend: sqlite or mysql or postgresql")
	rootCmd.PersistentFlags().String("db-connect", "", "Database connection string for mysql/postgresql (e.g., user:pass@tcp(host:port)/dbname)")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Bind all flags of resultsCmd to Viper
	resultsCmd.Flags().Bool("logs", false, "Show the calculation audit history instead of rankings")
	resultsCmd.Flags().String("itinerary", "", "Show the day-by-day camp detail for one itinerary code")
	if err := viper.BindPFlags(resultsCmd.Flags()); err != nil {
		contract.LogFatal("Error binding results flags", err)
	}

	// Bind all flags of storeMigrateCmd to Viper
	storeMigrateCmd.Flags().Int("target-version", -1, "Target migration version (-1 means latest, 0 means rollback to initial state)")
	if err := viper.BindPFlags(storeMigrateCmd.Flags()); err != nil {
		contract.LogFatal("Error binding store migrate flags", err)
	}
}
