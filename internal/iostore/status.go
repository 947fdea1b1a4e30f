package iostore

import (
	"context"
	"fmt"

	"github.com/huangsam/trekrank/schema"
)

// GetStatus returns status information about the trek store.
func (mgr *StoreManagerImpl) GetStatus(ctx context.Context) (schema.StoreStatus, error) {
	status := schema.StoreStatus{
		Backend:    string(mgr.backend),
		Connected:  mgr.db != nil,
		TableSizes: make(map[string]int64),
	}
	if mgr.db == nil {
		return status, nil
	}

	// Row counts per table
	for _, table := range allTables {
		countQuery := fmt.Sprintf("SELECT COUNT(*) FROM %s", table)
		row := mgr.db.QueryRowContext(ctx, countQuery)
		var count int64
		if err := row.Scan(&count); err != nil {
			return status, fmt.Errorf("failed to get count for table %s: %w", table, err)
		}
		status.TableSizes[table] = count
	}

	// Total runs and last run across all crews
	runsQuery := fmt.Sprintf("SELECT COUNT(*) FROM %s", calculationLogsTable)
	row := mgr.db.QueryRowContext(ctx, runsQuery)
	if err := row.Scan(&status.TotalRuns); err != nil {
		return status, fmt.Errorf("failed to get total runs: %w", err)
	}

	if status.TotalRuns > 0 {
		// RFC3339Nano text does not collate chronologically once the
		// fractional digits vary, so take the max after parsing.
		timesQuery := fmt.Sprintf("SELECT created_at FROM %s", calculationLogsTable)
		rows, err := mgr.db.QueryContext(ctx, timesQuery)
		if err != nil {
			return status, fmt.Errorf("failed to query run times: %w", err)
		}
		defer func() { _ = rows.Close() }()
		for rows.Next() {
			var createdAtStr string
			if err := rows.Scan(&createdAtStr); err != nil {
				return status, fmt.Errorf("failed to scan run time: %w", err)
			}
			createdAt, err := parseTime(createdAtStr)
			if err != nil {
				return status, err
			}
			if createdAt.After(status.LastRunTime) {
				status.LastRunTime = createdAt
			}
		}
		if err := rows.Err(); err != nil {
			return status, fmt.Errorf("error iterating run times: %w", err)
		}
	}

	return status, nil
}

// PrintStoreStatus prints store status information.
func PrintStoreStatus(status schema.StoreStatus) {
	fmt.Printf("Store Backend: %s\n", status.Backend)
	fmt.Printf("Connected: %t\n", status.Connected)
	if !status.Connected {
		return
	}
	fmt.Printf("Total Runs: %d\n", status.TotalRuns)
	if status.TotalRuns > 0 {
		fmt.Printf("Last Run: %s\n", status.LastRunTime.Format("2006-01-02 15:04:05"))
	}
	fmt.Println("Table Sizes:")
	for _, table := range allTables {
		fmt.Printf("  %s: %d rows\n", table, status.TableSizes[table])
	}
}
