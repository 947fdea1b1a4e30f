package outwriter

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/huangsam/trekrank/internal/contract"
	"github.com/huangsam/trekrank/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// PrintCrews writes the crew roster as a table.
func PrintCrews(crews []schema.Crew, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		table := tablewriter.NewWriter(w)
		table.Header([]string{"ID", "Name", "Size"})

		var data [][]string
		for _, crew := range crews {
			data = append(data, []string{
				strconv.FormatInt(crew.ID, 10),
				crew.Name,
				strconv.Itoa(crew.Size),
			})
		}
		if err := table.Bulk(data); err != nil {
			return err
		}
		if err := table.Render(); err != nil {
			return err
		}
		_, err := fmt.Fprintf(w, "%d crews registered\n", len(crews))
		return err
	}, "Wrote crews")
}

// PrintMembers writes one crew's members with survey completion status.
func PrintMembers(members []schema.CrewMember, crew *schema.Crew, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		table := tablewriter.NewWriter(w)
		table.Header([]string{"Member", "Name", "Skill", "Survey"})

		done := 0
		var data [][]string
		for _, m := range members {
			survey := "pending"
			if m.SurveyDone {
				survey = "done"
				done++
			}
			data = append(data, []string{
				strconv.Itoa(m.MemberNumber),
				m.Name,
				strconv.Itoa(m.SkillLevel),
				survey,
			})
		}
		if err := table.Bulk(data); err != nil {
			return err
		}
		if err := table.Render(); err != nil {
			return err
		}
		_, err := fmt.Fprintf(w, "%s: %d of %d surveys submitted\n", crew.Name, done, len(members))
		return err
	}, "Wrote members")
}

// PrintCampStops writes the day-by-day camp detail for one itinerary.
func PrintCampStops(stops []schema.CampStop, it *schema.Itinerary, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		if _, err := fmt.Fprintf(w, "Itinerary %s (%s, %.0f miles, max altitude %d ft)\n",
			it.Code, it.Difficulty, it.DistanceMiles, it.MaxAltitude); err != nil {
			return err
		}

		table := tablewriter.NewWriter(w)
		table.Header([]string{"Day", "Camp", "Elevation", "Region", "Type"})
		table.Configure(func(tcfg *tablewriter.Config) {
			tcfg.Row.Alignment.Global = tw.AlignRight
		})

		var data [][]string
		for _, stop := range stops {
			data = append(data, []string{
				strconv.Itoa(stop.DayNumber),
				stop.Camp.Name,
				strconv.Itoa(stop.Camp.Elevation),
				string(stop.Camp.Region),
				campType(stop.Camp),
			})
		}
		if err := table.Bulk(data); err != nil {
			return err
		}
		return table.Render()
	}, "Wrote camp stops")
}

// campType summarizes a camp's classification for display.
func campType(camp schema.Camp) string {
	switch {
	case camp.IsStaffed:
		return "staffed"
	case camp.IsDryCamp:
		return "dry trail"
	case camp.IsTrailCamp:
		return "trail"
	default:
		return "other"
	}
}

// PrintCalculationLogs writes the audit history for a crew and year,
// newest first. JSON output includes the full parameter snapshots.
func PrintCalculationLogs(logs []schema.CalculationLog, cfg *contract.Config) error {
	if cfg.Output == schema.JSONOut {
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeLogsJSON(w, logs)
		}, "Wrote JSON")
	}

	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		table := tablewriter.NewWriter(w)
		table.Header([]string{"Run", "Method", "Results", "Computed"})
		table.Configure(func(tcfg *tablewriter.Config) {
			tcfg.Row.Alignment.Global = tw.AlignRight
		})

		var data [][]string
		for _, entry := range logs {
			data = append(data, []string{
				strconv.FormatInt(entry.ID, 10),
				string(entry.Method),
				strconv.Itoa(entry.ResultsCount),
				entry.CreatedAt.Format("2006-01-02 15:04:05"),
			})
		}
		if err := table.Bulk(data); err != nil {
			return err
		}
		if err := table.Render(); err != nil {
			return err
		}
		_, err := fmt.Fprintf(w, "%d calculation runs recorded\n", len(logs))
		return err
	}, "Wrote logs")
}

// jsonCalculationLog exposes the parameter snapshot as raw JSON instead
// of an escaped string.
type jsonCalculationLog struct {
	ID           int64           `json:"id"`
	CrewID       int64           `json:"crew_id"`
	Year         int             `json:"year"`
	Method       string          `json:"method"`
	Params       json.RawMessage `json:"params"`
	ResultsCount int             `json:"results_count"`
	CreatedAt    string          `json:"created_at"`
}

func writeLogsJSON(w io.Writer, logs []schema.CalculationLog) error {
	output := make([]jsonCalculationLog, len(logs))
	for i, entry := range logs {
		params := json.RawMessage(entry.Params)
		if !json.Valid(params) {
			params = json.RawMessage("null")
		}
		output[i] = jsonCalculationLog{
			ID:           entry.ID,
			CrewID:       entry.CrewID,
			Year:         entry.Year,
			Method:       string(entry.Method),
			Params:       params,
			ResultsCount: entry.ResultsCount,
			CreatedAt:    entry.CreatedAt.Format(contract.DateTimeFormat),
		}
	}
	return writeJSON(w, output)
}
