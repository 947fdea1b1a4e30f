package iostore

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/huangsam/trekrank/internal/contract"
	"github.com/huangsam/trekrank/schema"
)

// Replacement retry policy for a crew/year set that is locked by a
// competing run.
const (
	replaceAttempts = 3
	replaceBackoff  = 150 * time.Millisecond
)

// mysqlLockTimeoutSecs bounds how long GET_LOCK waits before reporting
// the competing run.
const mysqlLockTimeoutSecs = 2

// ResultStoreImpl implements the ResultStore interface.
type ResultStoreImpl struct {
	db      *sql.DB
	backend schema.DatabaseBackend
}

var _ contract.ResultStore = &ResultStoreImpl{} // Compile-time check

// ReplaceResults atomically swaps the stored result set for one crew and
// year and appends the audit entry. Runs for the same crew and year are
// serialized per backend: SQLite through its single connection, MySQL
// through GET_LOCK, PostgreSQL through a transaction-scoped advisory
// lock. A competing run that holds the lock past the bounded retries
// surfaces as a ConflictError.
func (rs *ResultStoreImpl) ReplaceResults(ctx context.Context, results []schema.CrewResult, logEntry schema.CalculationLog) error {
	var lastErr error
	for attempt := 0; attempt < replaceAttempts; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(replaceBackoff):
			}
		}

		lastErr = rs.replaceOnce(ctx, results, logEntry)
		if !contract.IsConflict(lastErr) {
			return lastErr
		}
	}
	return lastErr
}

// replaceOnce performs one locked replace attempt.
func (rs *ResultStoreImpl) replaceOnce(ctx context.Context, results []schema.CrewResult, logEntry schema.CalculationLog) error {
	switch rs.backend {
	case schema.MySQLBackend:
		return rs.replaceMySQL(ctx, results, logEntry)
	default: // SQLite and PostgreSQL
		tx, err := rs.db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("failed to begin transaction: %w", err)
		}
		defer func() { _ = tx.Rollback() }()

		if rs.backend == schema.PostgreSQLBackend {
			var locked bool
			row := tx.QueryRowContext(ctx, "SELECT pg_try_advisory_xact_lock($1)", resultLockKey(logEntry.CrewID, logEntry.Year))
			if err := row.Scan(&locked); err != nil {
				return fmt.Errorf("failed to acquire advisory lock: %w", err)
			}
			if !locked {
				return &contract.ConflictError{CrewID: logEntry.CrewID, Year: logEntry.Year}
			}
		}

		if err := rs.writeResults(ctx, tx, results, logEntry); err != nil {
			return err
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("failed to commit results: %w", err)
		}
		return nil
	}
}

// replaceMySQL pins one connection so GET_LOCK and RELEASE_LOCK pair up
// on the same session.
func (rs *ResultStoreImpl) replaceMySQL(ctx context.Context, results []schema.CrewResult, logEntry schema.CalculationLog) error {
	conn, err := rs.db.Conn(ctx)
	if err != nil {
		return fmt.Errorf("failed to acquire connection: %w", err)
	}
	defer func() { _ = conn.Close() }()

	lockName := fmt.Sprintf("trekrank_results_%d_%d", logEntry.CrewID, logEntry.Year)
	var locked sql.NullInt64
	row := conn.QueryRowContext(ctx, "SELECT GET_LOCK(?, ?)", lockName, mysqlLockTimeoutSecs)
	if err := row.Scan(&locked); err != nil {
		return fmt.Errorf("failed to acquire lock %s: %w", lockName, err)
	}
	if !locked.Valid || locked.Int64 != 1 {
		return &contract.ConflictError{CrewID: logEntry.CrewID, Year: logEntry.Year}
	}
	defer func() {
		if _, err := conn.ExecContext(ctx, "SELECT RELEASE_LOCK(?)", lockName); err != nil {
			contract.LogWarn(fmt.Sprintf("releasing lock %s", lockName), err)
		}
	}()

	tx, err := conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := rs.writeResults(ctx, tx, results, logEntry); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit results: %w", err)
	}
	return nil
}

// resultLockKey derives the PostgreSQL advisory lock key for a crew and
// year.
func resultLockKey(crewID int64, year int) int64 {
	return crewID<<16 | int64(year&0xffff)
}

// writeResults deletes the previous set, inserts the new rows and
// appends the audit entry, all on the given transaction.
func (rs *ResultStoreImpl) writeResults(ctx context.Context, tx *sql.Tx, results []schema.CrewResult, logEntry schema.CalculationLog) error {
	deleteQuery := fmt.Sprintf("DELETE FROM %s WHERE crew_id = ? AND trek_year = ?", crewResultsTable)
	if _, err := tx.ExecContext(ctx, rebind(deleteQuery, rs.backend), logEntry.CrewID, logEntry.Year); err != nil {
		return fmt.Errorf("failed to clear previous results: %w", err)
	}

	insertQuery := fmt.Sprintf(`INSERT INTO %s (crew_id, itinerary_id, code, trek_year,
		total_score, ranking, choice_number,
		program_score, difficulty_score, area_score, altitude_score, distance_score, peak_score,
		agg_method, computed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`, crewResultsTable)
	insertQuery = rebind(insertQuery, rs.backend)
	for _, r := range results {
		if _, err := tx.ExecContext(ctx, insertQuery,
			r.CrewID, r.ItineraryID, r.Code, r.Year,
			r.TotalScore, r.Ranking, r.ChoiceNumber,
			r.ProgramScore, r.DifficultyScore, r.AreaScore, r.AltitudeScore, r.DistanceScore, r.PeakScore,
			string(r.Method), formatTime(r.ComputedAt)); err != nil {
			return fmt.Errorf("failed to insert result for itinerary %s: %w", r.Code, err)
		}
	}

	// Log ids are scoped per crew and year; the lock makes max+1 safe.
	nextIDQuery := fmt.Sprintf("SELECT COALESCE(MAX(id), 0) + 1 FROM %s WHERE crew_id = ? AND trek_year = ?", calculationLogsTable)
	var nextID int64
	row := tx.QueryRowContext(ctx, rebind(nextIDQuery, rs.backend), logEntry.CrewID, logEntry.Year)
	if err := row.Scan(&nextID); err != nil {
		return fmt.Errorf("failed to allocate log id: %w", err)
	}

	logQuery := fmt.Sprintf(`INSERT INTO %s (id, crew_id, trek_year, agg_method, run_params, results_count, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`, calculationLogsTable)
	if _, err := tx.ExecContext(ctx, rebind(logQuery, rs.backend),
		nextID, logEntry.CrewID, logEntry.Year, string(logEntry.Method),
		logEntry.Params, logEntry.ResultsCount, formatTime(logEntry.CreatedAt)); err != nil {
		return fmt.Errorf("failed to insert calculation log: %w", err)
	}
	return nil
}

// GetResults returns the stored ranked set for a crew and year, ordered
// by ranking.
func (rs *ResultStoreImpl) GetResults(ctx context.Context, crewID int64, year int) ([]schema.CrewResult, error) {
	query := fmt.Sprintf(`SELECT crew_id, itinerary_id, code, trek_year,
		total_score, ranking, choice_number,
		program_score, difficulty_score, area_score, altitude_score, distance_score, peak_score,
		agg_method, computed_at
		FROM %s WHERE crew_id = ? AND trek_year = ? ORDER BY ranking`, crewResultsTable)
	rows, err := rs.db.QueryContext(ctx, rebind(query, rs.backend), crewID, year)
	if err != nil {
		return nil, fmt.Errorf("failed to query results: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []schema.CrewResult
	for rows.Next() {
		var r schema.CrewResult
		var computedAt string
		if err := rows.Scan(&r.CrewID, &r.ItineraryID, &r.Code, &r.Year,
			&r.TotalScore, &r.Ranking, &r.ChoiceNumber,
			&r.ProgramScore, &r.DifficultyScore, &r.AreaScore, &r.AltitudeScore, &r.DistanceScore, &r.PeakScore,
			&r.Method, &computedAt); err != nil {
			return nil, fmt.Errorf("failed to scan result: %w", err)
		}
		if r.ComputedAt, err = parseTime(computedAt); err != nil {
			return nil, err
		}
		results = append(results, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating results: %w", err)
	}
	return results, nil
}

// GetCalculationLogs returns audit entries for a crew and year, newest
// first.
func (rs *ResultStoreImpl) GetCalculationLogs(ctx context.Context, crewID int64, year int) ([]schema.CalculationLog, error) {
	query := fmt.Sprintf(`SELECT id, crew_id, trek_year, agg_method, run_params, results_count, created_at
		FROM %s WHERE crew_id = ? AND trek_year = ? ORDER BY id DESC`, calculationLogsTable)
	rows, err := rs.db.QueryContext(ctx, rebind(query, rs.backend), crewID, year)
	if err != nil {
		return nil, fmt.Errorf("failed to query calculation logs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var logs []schema.CalculationLog
	for rows.Next() {
		var entry schema.CalculationLog
		var params sql.NullString
		var createdAt string
		if err := rows.Scan(&entry.ID, &entry.CrewID, &entry.Year, &entry.Method,
			&params, &entry.ResultsCount, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan calculation log: %w", err)
		}
		entry.Params = params.String
		if entry.CreatedAt, err = parseTime(createdAt); err != nil {
			return nil, err
		}
		logs = append(logs, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating calculation logs: %w", err)
	}
	return logs, nil
}

// Close closes the underlying connection.
func (rs *ResultStoreImpl) Close() error {
	if rs.db != nil {
		return rs.db.Close()
	}
	return nil
}
