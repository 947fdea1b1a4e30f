// Package outwriter has output and writer logic.
package outwriter

import (
	"os"

	"github.com/huangsam/trekrank/internal/contract"
	"github.com/huangsam/trekrank/schema"
	"golang.org/x/term"
)

// OutWriter provides a unified interface for all output operations.
// It encapsulates the various output formats and provides a clean API for the command layer.
type OutWriter struct{}

// NewOutWriter creates a new instance of the output writer.
func NewOutWriter() *OutWriter {
	return &OutWriter{}
}

// WriteResults prints a crew's ranked itinerary results using the configured output format.
func (ow *OutWriter) WriteResults(results []schema.CrewResult, crew *schema.Crew, cfg *contract.Config) error {
	return PrintCrewResults(results, crew, cfg)
}

// WriteCrews prints the crew roster using the configured output format.
func (ow *OutWriter) WriteCrews(crews []schema.Crew, cfg *contract.Config) error {
	return PrintCrews(crews, cfg)
}

// WriteMembers prints one crew's members with survey status.
func (ow *OutWriter) WriteMembers(members []schema.CrewMember, crew *schema.Crew, cfg *contract.Config) error {
	return PrintMembers(members, crew, cfg)
}

// WriteCampStops prints the day-by-day camp detail for one itinerary.
func (ow *OutWriter) WriteCampStops(stops []schema.CampStop, it *schema.Itinerary, cfg *contract.Config) error {
	return PrintCampStops(stops, it, cfg)
}

// WriteCalculationLogs prints the audit history for a crew and year.
func (ow *OutWriter) WriteCalculationLogs(logs []schema.CalculationLog, cfg *contract.Config) error {
	return PrintCalculationLogs(logs, cfg)
}

// detailMinWidth is the narrowest terminal that fits the six factor
// columns next to the fixed ones.
const detailMinWidth = 110

// FitsDetailColumns reports whether the breakdown columns fit the
// terminal. The --width flag overrides detection; narrow terminals fall
// back to the compact table.
func FitsDetailColumns(cfg *contract.Config) bool {
	if !cfg.Detail {
		return false
	}

	termWidth := cfg.Width
	if termWidth == 0 { // Not set by override
		detectedWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
		if err != nil || detectedWidth <= 0 {
			// Conservative default for narrow terminals and CI
			termWidth = 80
		} else {
			termWidth = detectedWidth
		}
	}
	return termWidth >= detailMinWidth
}
