//go:build basic

// Package integration contains integration tests for trekrank.
// These tests are excluded from normal test runs due to build tags.
// To run these tests: go test -tags basic ./integration
package integration

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestTrekrankWithSQLite drives the full CLI workflow against a throwaway
// SQLite database file.
func TestTrekrankWithSQLite(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "trekrank-basic.db")

	_ = os.Setenv("TREKRANK_BACKEND", "sqlite")
	_ = os.Setenv("TREKRANK_DB_CONNECT", dbPath)
	defer func() { _ = os.Unsetenv("TREKRANK_BACKEND") }()
	defer func() { _ = os.Unsetenv("TREKRANK_DB_CONNECT") }()

	// Load the sample dataset
	out, err := runTrekrankCommand(t, "store", "seed")
	require.NoError(t, err)
	assert.Contains(t, out, "Seeded sample data")

	// Both sample crews should be listed
	out, err = runTrekrankCommand(t, "crews")
	require.NoError(t, err)
	assert.Contains(t, out, "Troop 1")
	assert.Contains(t, out, "Venture 42")
	assert.Contains(t, out, "2 crews registered")

	// Member roster with survey progress
	out, err = runTrekrankCommand(t, "crews", "members", "--crew", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "surveys submitted")

	// Score crew 1 with every recompute method in one pass
	out, err = runTrekrankCommand(t, "calculate", "--crew", "1", "--all-methods")
	require.NoError(t, err)
	assert.Contains(t, out, "total aggregation")
	assert.Contains(t, out, "average aggregation")
	assert.Contains(t, out, "median aggregation")

	// The last stored run wins, so results reflect the median pass
	out, err = runTrekrankCommand(t, "results", "--crew", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "median aggregation")

	// JSON output for downstream tooling
	out, err = runTrekrankCommand(t, "results", "--crew", "1", "--output", "json")
	require.NoError(t, err)
	assert.Contains(t, out, `"crew": "Troop 1"`)

	// Camp detail for one catalog itinerary
	out, err = runTrekrankCommand(t, "results", "--itinerary", "12-1")
	require.NoError(t, err)
	assert.Contains(t, out, "Itinerary 12-1")

	// Status reflects the three stored runs
	out, err = runTrekrankCommand(t, "store", "status")
	require.NoError(t, err)
	assert.Contains(t, out, "Total Runs: 3")

	// Export the stored data to Parquet files
	exportBase := filepath.Join(t.TempDir(), "crew1")
	out, err = runTrekrankCommand(t, "store", "export", "--crew", "1", "--output-file", exportBase)
	require.NoError(t, err)
	assert.Contains(t, out, "Export complete")

	_, err = os.Stat(exportBase + ".crew_results.parquet")
	assert.NoError(t, err)
	_, err = os.Stat(exportBase + ".calculation_logs.parquet")
	assert.NoError(t, err)
}
