// Package parquet provides data structures and functions for exporting
// trek ranking data to Parquet files using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"
	"time"

	"github.com/huangsam/trekrank/schema"
	"github.com/parquet-go/parquet-go"
)

// CrewResult represents one scored itinerary row for analytics export.
// This struct maps to the trek_crew_results database table.
type CrewResult struct {
	// CrewID identifies the crew the score belongs to
	CrewID int64 `parquet:"crew_id,snappy"`

	// ItineraryID references the catalog itinerary
	ItineraryID int64 `parquet:"itinerary_id,snappy"`

	// Code is the human-readable itinerary code
	Code string `parquet:"code,snappy"`

	// Year is the trek season the score was computed for
	Year int32 `parquet:"year,snappy"`

	// TotalScore is the composed total across all factors
	TotalScore float64 `parquet:"total_score,snappy"`

	// Ranking is the 1-based position in the crew's sorted result set
	Ranking int32 `parquet:"ranking,snappy"`

	// ChoiceNumber mirrors Ranking: this crew's Nth choice
	ChoiceNumber int32 `parquet:"choice_number,snappy"`

	// Per-factor breakdown, each already weighted
	ProgramScore    float64 `parquet:"program_score,snappy"`
	DifficultyScore float64 `parquet:"difficulty_score,snappy"`
	AreaScore       float64 `parquet:"area_score,snappy"`
	AltitudeScore   float64 `parquet:"altitude_score,snappy"`
	DistanceScore   float64 `parquet:"distance_score,snappy"`
	PeakScore       float64 `parquet:"peak_score,snappy"`

	// Method is the aggregation method the run used
	Method string `parquet:"method,snappy"`

	// ComputedAt is when the run produced this row
	ComputedAt time.Time `parquet:"computed_at,snappy"`
}

// CalculationLog represents one audit entry for analytics export.
// This struct maps to the trek_calculation_logs database table.
type CalculationLog struct {
	// ID is the run sequence number within the crew and year
	ID int64 `parquet:"id,snappy"`

	// CrewID identifies the crew the run belongs to
	CrewID int64 `parquet:"crew_id,snappy"`

	// Year is the trek season of the run
	Year int32 `parquet:"year,snappy"`

	// Method is the aggregation method the run used
	Method string `parquet:"method,snappy"`

	// Params contains the JSON-encoded parameter snapshot (nullable)
	Params *string `parquet:"params,optional,snappy"`

	// ResultsCount is how many itineraries the run scored
	ResultsCount int32 `parquet:"results_count,snappy"`

	// CreatedAt is when the run finished
	CreatedAt time.Time `parquet:"created_at,snappy"`
}

// WriteCrewResultsParquet writes a slice of CrewResult structs to a Parquet file.
func WriteCrewResultsParquet(data []CrewResult, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// The schema is automatically derived from the CrewResult struct tags
	writer := parquet.NewGenericWriter[CrewResult](file)
	defer func() { _ = writer.Close() }()

	if _, err := writer.Write(data); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}
	return nil
}

// WriteCalculationLogsParquet writes a slice of CalculationLog structs to a Parquet file.
func WriteCalculationLogsParquet(data []CalculationLog, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// The schema is automatically derived from the CalculationLog struct tags
	writer := parquet.NewGenericWriter[CalculationLog](file)
	defer func() { _ = writer.Close() }()

	if _, err := writer.Write(data); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}
	return nil
}

// ConvertCrewResults converts schema.CrewResult rows for Parquet export.
func ConvertCrewResults(rows []schema.CrewResult) []CrewResult {
	result := make([]CrewResult, len(rows))
	for i, row := range rows {
		result[i] = CrewResult{
			CrewID:          row.CrewID,
			ItineraryID:     row.ItineraryID,
			Code:            row.Code,
			Year:            int32(row.Year),
			TotalScore:      row.TotalScore,
			Ranking:         int32(row.Ranking),
			ChoiceNumber:    int32(row.ChoiceNumber),
			ProgramScore:    row.ProgramScore,
			DifficultyScore: row.DifficultyScore,
			AreaScore:       row.AreaScore,
			AltitudeScore:   row.AltitudeScore,
			DistanceScore:   row.DistanceScore,
			PeakScore:       row.PeakScore,
			Method:          string(row.Method),
			ComputedAt:      row.ComputedAt,
		}
	}
	return result
}

// ConvertCalculationLogs converts schema.CalculationLog rows for Parquet export.
func ConvertCalculationLogs(rows []schema.CalculationLog) []CalculationLog {
	result := make([]CalculationLog, len(rows))
	for i, row := range rows {
		var params *string
		if row.Params != "" {
			p := row.Params
			params = &p
		}
		result[i] = CalculationLog{
			ID:           row.ID,
			CrewID:       row.CrewID,
			Year:         int32(row.Year),
			Method:       string(row.Method),
			Params:       params,
			ResultsCount: int32(row.ResultsCount),
			CreatedAt:    row.CreatedAt,
		}
	}
	return result
}
