package iostore

import (
	"context"
	"errors"
	"fmt"

	"github.com/huangsam/trekrank/internal/parquet"
)

// ExecuteExport performs the actual export of a crew's stored results and
// calculation logs to Parquet files.
func ExecuteExport(ctx context.Context, mgr *StoreManagerImpl, crewID int64, year int, outputFile string) error {
	// Validate that output file is specified
	if outputFile == "" {
		return errors.New("--output-file is required for export command")
	}

	// Check if there's any data to export
	status, err := mgr.GetStatus(ctx)
	if err != nil {
		return fmt.Errorf("failed to get store status: %w", err)
	}

	if status.TotalRuns == 0 {
		return errors.New("no calculation data found to export")
	}

	fmt.Printf("Exporting data from %s backend...\n", status.Backend)
	fmt.Printf("Total calculation runs: %d\n", status.TotalRuns)
	fmt.Printf("Total result rows: %d\n", status.TableSizes[crewResultsTable])

	// Retrieve the stored ranked set and audit history for the crew
	results, err := mgr.Results().GetResults(ctx, crewID, year)
	if err != nil {
		return fmt.Errorf("failed to retrieve crew results: %w", err)
	}

	logs, err := mgr.Results().GetCalculationLogs(ctx, crewID, year)
	if err != nil {
		return fmt.Errorf("failed to retrieve calculation logs: %w", err)
	}

	if len(results) == 0 && len(logs) == 0 {
		return fmt.Errorf("no stored data for crew %d in %d", crewID, year)
	}

	// Convert to Parquet format
	parquetResults := parquet.ConvertCrewResults(results)
	parquetLogs := parquet.ConvertCalculationLogs(logs)

	// Write crew results to Parquet
	resultsFile := outputFile + ".crew_results.parquet"
	if err := parquet.WriteCrewResultsParquet(parquetResults, resultsFile); err != nil {
		return fmt.Errorf("failed to write crew results: %w", err)
	}
	fmt.Printf("Exported %d result rows to: %s\n", len(parquetResults), resultsFile)

	// Write calculation logs to Parquet
	logsFile := outputFile + ".calculation_logs.parquet"
	if err := parquet.WriteCalculationLogsParquet(parquetLogs, logsFile); err != nil {
		return fmt.Errorf("failed to write calculation logs: %w", err)
	}
	fmt.Printf("Exported %d calculation logs to: %s\n", len(parquetLogs), logsFile)

	fmt.Println("\nExport complete! The Parquet files can be used with:")
	fmt.Println("  - Apache Spark")
	fmt.Println("  - Apache Arrow")
	fmt.Println("  - Pandas (via pyarrow)")
	fmt.Println("  - DuckDB")
	fmt.Println("  - Any other Parquet-compatible tool")

	return nil
}
