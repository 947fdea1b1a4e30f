// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import (
	"context"

	"github.com/huangsam/trekrank/schema"
)

// CatalogStore reads the itinerary/camp/program reference catalog. The
// engine never writes through this interface.
type CatalogStore interface {
	// GetCatalog loads all itineraries for a year plus the precomputed
	// itinerary-to-programs availability index.
	GetCatalog(ctx context.Context, year int) (*schema.Catalog, error)

	// GetItineraryByCode looks up one itinerary by its unique code.
	GetItineraryByCode(ctx context.Context, code string, year int) (*schema.Itinerary, error)

	// GetCampStops returns the camps on an itinerary ordered by day number.
	GetCampStops(ctx context.Context, itineraryID int64, year int) ([]schema.CampStop, error)

	// Close closes the underlying connection
	Close() error
}

// PreferenceStore reads crew identity, preferences, member ratings and the
// global scoring factor table.
type PreferenceStore interface {
	// GetCrew looks up a crew by id. Missing crews are a NotFoundError.
	GetCrew(ctx context.Context, crewID int64) (*schema.Crew, error)

	// ListCrews returns all crews ordered by name.
	ListCrews(ctx context.Context) ([]schema.Crew, error)

	// ListMembers returns a crew's members ordered by member number, with
	// survey completion status for the year.
	ListMembers(ctx context.Context, crewID int64, year int) ([]schema.CrewMember, error)

	// GetPreferences returns the crew's active preference record for the
	// year, or nil when none exists (callers substitute defaults).
	GetPreferences(ctx context.Context, crewID int64, year int) (*schema.CrewPreferences, error)

	// GetRatings returns every member rating for the crew and year.
	GetRatings(ctx context.Context, crewID int64, year int) ([]schema.ProgramRating, error)

	// GetScoringFactors returns all stored scoring factor rows.
	GetScoringFactors(ctx context.Context) ([]schema.ScoringFactor, error)

	// Close closes the underlying connection
	Close() error
}

// ResultStore owns the CrewResult and CalculationLog tables.
type ResultStore interface {
	// ReplaceResults atomically upserts the full result set for one
	// (crew, year) run and appends the audit log entry. Concurrent runs
	// for the same crew and year are serialized; a competing run in
	// flight surfaces as a ConflictError. Either every row lands and the
	// log entry is appended, or nothing is written.
	ReplaceResults(ctx context.Context, results []schema.CrewResult, logEntry schema.CalculationLog) error

	// GetResults returns the stored ranked set for a crew and year,
	// ordered by ranking.
	GetResults(ctx context.Context, crewID int64, year int) ([]schema.CrewResult, error)

	// GetCalculationLogs returns audit entries for a crew and year,
	// newest first.
	GetCalculationLogs(ctx context.Context, crewID int64, year int) ([]schema.CalculationLog, error)

	// Close closes the underlying connection
	Close() error
}

// StoreManager bundles the three store facets so the CLI can initialize
// them once and hand them to the engine. All facets may share one
// database handle.
type StoreManager interface {
	Catalog() CatalogStore
	Preferences() PreferenceStore
	Results() ResultStore
	Close() error
}
