package outwriter

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/huangsam/trekrank/internal/contract"
	"github.com/huangsam/trekrank/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleResults() []schema.CrewResult {
	computed := time.Date(2026, 6, 15, 9, 30, 0, 0, time.UTC)
	return []schema.CrewResult{
		{
			CrewID: 1, ItineraryID: 1, Code: "12-1", Year: 2026,
			TotalScore: 300, Ranking: 1, ChoiceNumber: 1,
			ProgramScore: 45, DifficultyScore: 100, AreaScore: 100,
			AltitudeScore: 30, DistanceScore: 0, PeakScore: 25,
			Method: schema.TotalMethod, ComputedAt: computed,
		},
		{
			CrewID: 1, ItineraryID: 2, Code: "18-4", Year: 2026,
			TotalScore: 120, Ranking: 2, ChoiceNumber: 2,
			DifficultyScore: 100, PeakScore: 20,
			Method: schema.TotalMethod, ComputedAt: computed,
		},
	}
}

func TestWriteResultsJSON(t *testing.T) {
	crew := &schema.Crew{ID: 1, Name: "Troop 1", Size: 3}

	var buf bytes.Buffer
	err := writeResultsJSON(&buf, sampleResults(), crew)
	require.NoError(t, err)

	var output struct {
		Crew    string `json:"crew"`
		Year    int    `json:"year"`
		Results []map[string]any
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &output))
	assert.Equal(t, "Troop 1", output.Crew)
	assert.Equal(t, 2026, output.Year)
	require.Len(t, output.Results, 2)

	assert.Equal(t, float64(1), output.Results[0]["choice"])
	assert.Equal(t, "12-1", output.Results[0]["code"])
	assert.Equal(t, float64(300), output.Results[0]["total_score"])
	assert.Equal(t, contract.StrongValue, output.Results[0]["label"])
	assert.Equal(t, contract.FairValue, output.Results[1]["label"])
}

func TestWriteResultsCSV(t *testing.T) {
	fmtFloat := createFormatters(1)

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	require.NoError(t, writeResultsCSV(w, sampleResults(), fmtFloat))
	w.Flush()

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3) // header + 2 rows

	assert.Equal(t, "choice", records[0][0])
	assert.Equal(t, []string{"1", "12-1", "300.0"}, records[1][:3])
	assert.Equal(t, "total", records[1][10])
	assert.Equal(t, "18-4", records[2][1])
}

func TestWriteResultsTable(t *testing.T) {
	crew := &schema.Crew{ID: 1, Name: "Troop 1", Size: 3}
	cfg := &contract.Config{Output: schema.TextOut, Precision: 1}
	fmtFloat := createFormatters(cfg.Precision)

	var buf bytes.Buffer
	require.NoError(t, writeResultsTable(&buf, sampleResults(), crew, cfg, fmtFloat))

	out := buf.String()
	assert.Contains(t, out, "12-1")
	assert.Contains(t, out, "18-4")
	assert.Contains(t, out, "Ranked 2 itineraries for Troop 1 using total aggregation")

	// Top choice appears before the runner-up
	assert.Less(t, strings.Index(out, "12-1"), strings.Index(out, "18-4"))
}

func TestWriteResultsTableEmpty(t *testing.T) {
	crew := &schema.Crew{ID: 1, Name: "Troop 1", Size: 3}
	cfg := &contract.Config{Output: schema.TextOut}
	fmtFloat := createFormatters(0)

	var buf bytes.Buffer
	require.NoError(t, writeResultsTable(&buf, nil, crew, cfg, fmtFloat))
	assert.Contains(t, buf.String(), "No stored results for Troop 1")
}

func TestCreateFormatters(t *testing.T) {
	assert.Equal(t, "300.0", createFormatters(1)(300))
	assert.Equal(t, "12.35", createFormatters(2)(12.345))
	assert.Equal(t, "12", createFormatters(0)(12.4))
}

func TestBestScore(t *testing.T) {
	assert.Equal(t, 300.0, bestScore(sampleResults()))
	assert.Equal(t, 0.0, bestScore(nil))
}

func TestFitsDetailColumns(t *testing.T) {
	t.Run("disabled without detail flag", func(t *testing.T) {
		cfg := &contract.Config{Detail: false, Width: 200}
		assert.False(t, FitsDetailColumns(cfg))
	})

	t.Run("wide override fits", func(t *testing.T) {
		cfg := &contract.Config{Detail: true, Width: 150}
		assert.True(t, FitsDetailColumns(cfg))
	})

	t.Run("narrow override falls back to compact", func(t *testing.T) {
		cfg := &contract.Config{Detail: true, Width: 80}
		assert.False(t, FitsDetailColumns(cfg))
	})
}

func TestWriteLogsJSON(t *testing.T) {
	logs := []schema.CalculationLog{
		{
			ID: 2, CrewID: 1, Year: 2026, Method: schema.AverageMethod,
			Params: `{"method":"average"}`, ResultsCount: 4,
			CreatedAt: time.Date(2026, 6, 15, 10, 0, 0, 0, time.UTC),
		},
		{
			ID: 1, CrewID: 1, Year: 2026, Method: schema.TotalMethod,
			Params: "not-json", ResultsCount: 4,
			CreatedAt: time.Date(2026, 6, 15, 9, 0, 0, 0, time.UTC),
		},
	}

	var buf bytes.Buffer
	require.NoError(t, writeLogsJSON(&buf, logs))

	var output []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &output))
	require.Len(t, output, 2)

	params, ok := output[0]["params"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "average", params["method"])

	// Invalid stored params degrade to null instead of breaking the doc
	assert.Nil(t, output[1]["params"])
}
