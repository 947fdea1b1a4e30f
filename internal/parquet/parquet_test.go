package parquet

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/huangsam/trekrank/schema"
	"github.com/parquet-go/parquet-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCrewResultStructTags(t *testing.T) {
	// Verify struct tags are properly defined for parquet schema inference
	s := parquet.SchemaOf(new(CrewResult))
	require.NotNil(t, s)

	expectedColumns := []string{
		"crew_id",
		"itinerary_id",
		"code",
		"year",
		"total_score",
		"ranking",
		"choice_number",
		"program_score",
		"difficulty_score",
		"area_score",
		"altitude_score",
		"distance_score",
		"peak_score",
		"method",
		"computed_at",
	}

	for _, colName := range expectedColumns {
		col, ok := s.Lookup(colName)
		require.True(t, ok, "Column %s should exist in schema", colName)
		require.NotNil(t, col, "Column %s should not be nil", colName)
	}
}

func TestCalculationLogStructTags(t *testing.T) {
	s := parquet.SchemaOf(new(CalculationLog))
	require.NotNil(t, s)

	expectedColumns := []string{
		"id",
		"crew_id",
		"year",
		"method",
		"params",
		"results_count",
		"created_at",
	}

	for _, colName := range expectedColumns {
		_, ok := s.Lookup(colName)
		require.True(t, ok, "Column %s should exist in schema", colName)
	}
}

func sampleSchemaResults() []schema.CrewResult {
	computed := time.Date(2026, 6, 15, 9, 30, 0, 0, time.UTC)
	return []schema.CrewResult{
		{
			CrewID: 1, ItineraryID: 1, Code: "12-1", Year: 2026,
			TotalScore: 300, Ranking: 1, ChoiceNumber: 1,
			ProgramScore: 45, DifficultyScore: 100,
			Method: schema.TotalMethod, ComputedAt: computed,
		},
		{
			CrewID: 1, ItineraryID: 2, Code: "18-4", Year: 2026,
			TotalScore: 120, Ranking: 2, ChoiceNumber: 2,
			Method: schema.TotalMethod, ComputedAt: computed,
		},
	}
}

func TestWriteCrewResultsParquet(t *testing.T) {
	tmpDir := t.TempDir()
	outputPath := filepath.Join(tmpDir, "crew_results.parquet")

	data := ConvertCrewResults(sampleSchemaResults())
	require.Len(t, data, 2)

	err := WriteCrewResultsParquet(data, outputPath)
	require.NoError(t, err)

	info, err := os.Stat(outputPath)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))

	// Read the file back and verify the rows round trip
	file, err := os.Open(outputPath)
	require.NoError(t, err)
	defer func() { _ = file.Close() }()

	rows, err := parquet.Read[CrewResult](file, info.Size())
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "12-1", rows[0].Code)
	assert.Equal(t, int32(1), rows[0].Ranking)
	assert.InDelta(t, 300.0, rows[0].TotalScore, 0.001)
}

func TestWriteCalculationLogsParquet(t *testing.T) {
	tmpDir := t.TempDir()
	outputPath := filepath.Join(tmpDir, "calculation_logs.parquet")

	logs := ConvertCalculationLogs([]schema.CalculationLog{
		{
			ID: 1, CrewID: 1, Year: 2026, Method: schema.TotalMethod,
			Params: `{"method":"total"}`, ResultsCount: 2,
			CreatedAt: time.Date(2026, 6, 15, 9, 30, 0, 0, time.UTC),
		},
		{
			ID: 2, CrewID: 1, Year: 2026, Method: schema.AverageMethod,
			ResultsCount: 2,
			CreatedAt:    time.Date(2026, 6, 15, 10, 0, 0, 0, time.UTC),
		},
	})

	// Empty params convert to a null field
	require.NotNil(t, logs[0].Params)
	assert.Nil(t, logs[1].Params)

	err := WriteCalculationLogsParquet(logs, outputPath)
	require.NoError(t, err)

	info, err := os.Stat(outputPath)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}
