package outwriter

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/huangsam/trekrank/internal/contract"
	"github.com/huangsam/trekrank/internal/parquet"
	"github.com/huangsam/trekrank/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// PrintCrewResults outputs a crew's ranked itineraries, dispatching based
// on the output format configured.
func PrintCrewResults(results []schema.CrewResult, crew *schema.Crew, cfg *contract.Config) error {
	fmtFloat := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeResultsJSON(w, results, crew)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			csvWriter := csv.NewWriter(w)
			defer csvWriter.Flush()
			return writeResultsCSV(csvWriter, results, fmtFloat)
		}, "Wrote CSV")
	case schema.ParquetOut:
		if cfg.OutputFile == "" {
			return errors.New("--output-file is required for parquet output")
		}
		if err := parquet.WriteCrewResultsParquet(parquet.ConvertCrewResults(results), cfg.OutputFile); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Wrote Parquet to %s\n", cfg.OutputFile)
		return nil
	default:
		// Default to human-readable table
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeResultsTable(w, results, crew, cfg, fmtFloat)
		}, "Wrote table")
	}
}

// bestScore is the reference for fit labels: the top-ranked total.
func bestScore(results []schema.CrewResult) float64 {
	best := 0.0
	for _, r := range results {
		if r.TotalScore > best {
			best = r.TotalScore
		}
	}
	return best
}

// writeResultsTable generates and writes the human-readable table.
func writeResultsTable(w io.Writer, results []schema.CrewResult, crew *schema.Crew, cfg *contract.Config, fmtFloat func(float64) string) error {
	table := tablewriter.NewWriter(w)
	detail := FitsDetailColumns(cfg)

	headers := []string{"Choice", "Code", "Total", "Label"}
	if detail {
		headers = append(headers, "Program", "Difficulty", "Area", "Altitude", "Distance", "Peak")
	}
	table.Header(headers)

	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	best := bestScore(results)
	var data [][]string
	for _, r := range results {
		row := []string{
			strconv.Itoa(r.ChoiceNumber),
			r.Code,
			fmtFloat(r.TotalScore),
			labelFor(r.TotalScore, best, cfg.UseColors),
		}
		if detail {
			row = append(row,
				fmtFloat(r.ProgramScore),
				fmtFloat(r.DifficultyScore),
				fmtFloat(r.AreaScore),
				fmtFloat(r.AltitudeScore),
				fmtFloat(r.DistanceScore),
				fmtFloat(r.PeakScore),
			)
		}
		data = append(data, row)
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	if len(results) > 0 {
		method := results[0].Method
		computedAt := results[0].ComputedAt.Format("2006-01-02 15:04:05")
		if _, err := fmt.Fprintf(w, "Ranked %d itineraries for %s using %s aggregation (computed %s)\n",
			len(results), crew.Name, method, computedAt); err != nil {
			return err
		}
	} else {
		if _, err := fmt.Fprintf(w, "No stored results for %s. Run calculate first.\n", crew.Name); err != nil {
			return err
		}
	}
	return nil
}

// writeResultsCSV writes the ranked results in CSV format.
func writeResultsCSV(w *csv.Writer, results []schema.CrewResult, fmtFloat func(float64) string) error {
	header := []string{
		"choice",
		"code",
		"total_score",
		"label",
		"program_score",
		"difficulty_score",
		"area_score",
		"altitude_score",
		"distance_score",
		"peak_score",
		"method",
		"computed_at",
	}
	if err := w.Write(header); err != nil {
		return err
	}

	best := bestScore(results)
	for _, r := range results {
		rec := []string{
			strconv.Itoa(r.ChoiceNumber),
			r.Code,
			fmtFloat(r.TotalScore),
			contract.GetPlainLabel(r.TotalScore, best),
			fmtFloat(r.ProgramScore),
			fmtFloat(r.DifficultyScore),
			fmtFloat(r.AreaScore),
			fmtFloat(r.AltitudeScore),
			fmtFloat(r.DistanceScore),
			fmtFloat(r.PeakScore),
			string(r.Method),
			r.ComputedAt.Format(contract.DateTimeFormat),
		}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	return nil
}

// jsonCrewResult is the wire shape for JSON output, with the fit label
// precomputed.
type jsonCrewResult struct {
	Choice          int     `json:"choice"`
	Code            string  `json:"code"`
	ItineraryID     int64   `json:"itinerary_id"`
	TotalScore      float64 `json:"total_score"`
	Label           string  `json:"label"`
	ProgramScore    float64 `json:"program_score"`
	DifficultyScore float64 `json:"difficulty_score"`
	AreaScore       float64 `json:"area_score"`
	AltitudeScore   float64 `json:"altitude_score"`
	DistanceScore   float64 `json:"distance_score"`
	PeakScore       float64 `json:"peak_score"`
	Method          string  `json:"method"`
	ComputedAt      string  `json:"computed_at"`
}

// writeResultsJSON writes the ranked results in JSON format.
func writeResultsJSON(w io.Writer, results []schema.CrewResult, crew *schema.Crew) error {
	best := bestScore(results)
	output := struct {
		Crew    string           `json:"crew"`
		Year    int              `json:"year"`
		Results []jsonCrewResult `json:"results"`
	}{
		Crew:    crew.Name,
		Results: make([]jsonCrewResult, len(results)),
	}
	if len(results) > 0 {
		output.Year = results[0].Year
	}
	for i, r := range results {
		output.Results[i] = jsonCrewResult{
			Choice:          r.ChoiceNumber,
			Code:            r.Code,
			ItineraryID:     r.ItineraryID,
			TotalScore:      r.TotalScore,
			Label:           contract.GetPlainLabel(r.TotalScore, best),
			ProgramScore:    r.ProgramScore,
			DifficultyScore: r.DifficultyScore,
			AreaScore:       r.AreaScore,
			AltitudeScore:   r.AltitudeScore,
			DistanceScore:   r.DistanceScore,
			PeakScore:       r.PeakScore,
			Method:          string(r.Method),
			ComputedAt:      r.ComputedAt.Format(contract.DateTimeFormat),
		}
	}
	return writeJSON(w, output)
}
