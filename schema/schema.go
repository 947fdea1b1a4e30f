// Package schema has configs, models and shared constants for all parts of trekrank.
package schema

import "time"

// Itinerary represents one trek route in the reference catalog, the unit
// being ranked. Region and peak flags are non-exclusive booleans; the
// difficulty level is one of the four catalog classifications.
type Itinerary struct {
	ID            int64      // Catalog identifier
	Code          string     // Unique itinerary code, e.g. "12-3"
	Difficulty    Difficulty // C, R, S or SS
	DistanceMiles float64    // Total trail distance in miles
	MinAltitude   int        // Lowest elevation on the route in feet
	MaxAltitude   int        // Highest elevation on the route in feet
	ElevationGain int        // Average daily elevation gain in feet

	CoversSouth      bool
	CoversCentral    bool
	CoversNorth      bool
	CoversValleVidal bool

	ClimbsBaldy       bool
	ClimbsPhillips    bool
	ClimbsTooth       bool
	ClimbsInspiration bool
	ClimbsTrailPeak   bool
	ClimbsOther       bool

	Year int // Season the itinerary is offered in
}

// PrimaryRegion resolves the itinerary's single primary region using the
// fixed priority order South > Central > North > Valle Vidal. The first
// true flag wins; an itinerary with no flag set is Mixed.
func (it *Itinerary) PrimaryRegion() Region {
	switch {
	case it.CoversSouth:
		return SouthRegion
	case it.CoversCentral:
		return CentralRegion
	case it.CoversNorth:
		return NorthRegion
	case it.CoversValleVidal:
		return ValleVidalRegion
	default:
		return MixedRegion
	}
}

// OffersPeak reports whether the itinerary provides a climb opportunity
// for the given peak.
func (it *Itinerary) OffersPeak(peak Peak) bool {
	switch peak {
	case BaldyMountain:
		return it.ClimbsBaldy
	case MountPhillips:
		return it.ClimbsPhillips
	case ToothOfTime:
		return it.ClimbsTooth
	case InspirationPoint:
		return it.ClimbsInspiration
	case TrailPeak:
		return it.ClimbsTrailPeak
	case OtherPeaks:
		return it.ClimbsOther
	default:
		return false
	}
}

// Camp represents one stop on a route.
type Camp struct {
	ID             int64
	Name           string // Unique camp name
	Elevation      int    // Camp elevation in feet
	Region         Region
	IsStaffed      bool
	IsTrailCamp    bool
	IsDryCamp      bool
	HasCommissary  bool
	HasTradingPost bool
}

// Program represents an activity offering, e.g. rock climbing or black
// powder rifle.
type Program struct {
	ID       int64
	Code     string // Unique when present; may be empty for legacy rows
	Category string
	Name     string
}

// ItineraryCamp links an itinerary to a camp for one night of the trek.
type ItineraryCamp struct {
	ItineraryID int64
	CampID      int64
	DayNumber   int
	Year        int
}

// ItineraryProgram marks a program as available on an itinerary for a year.
type ItineraryProgram struct {
	ItineraryID int64
	ProgramID   int64
	IsAvailable bool
	Year        int
}

// CampProgram marks a program as available at a camp for a year.
type CampProgram struct {
	CampID      int64
	ProgramID   int64
	IsAvailable bool
	Year        int
}

// Catalog is the read-only reference data for one scoring run: the
// itineraries under consideration plus a precomputed lookup from itinerary
// to the set of program ids available on it. The index is built once per
// run and shared by all scorers instead of re-querying per factor.
type Catalog struct {
	Itineraries []Itinerary
	Programs    map[int64]Program

	// ProgramsByItinerary maps itinerary id to available program ids,
	// already filtered by is_available and year.
	ProgramsByItinerary map[int64][]int64
}

// CampStop is a camp joined with its position on an itinerary, used by the
// detail view of a ranked result.
type CampStop struct {
	DayNumber int
	Camp      Camp
}

// CrewResult is one itinerary's score for one crew. Exactly one row exists
// per (crew, itinerary, year); a recompute overwrites it in place.
type CrewResult struct {
	CrewID      int64
	ItineraryID int64
	Code        string // Itinerary code, denormalized for output
	Year        int

	TotalScore   float64
	Ranking      int // 1-based position in the sorted result set
	ChoiceNumber int // Mirrors Ranking: this crew's Nth choice

	ProgramScore    float64
	DifficultyScore float64
	AreaScore       float64
	AltitudeScore   float64
	DistanceScore   float64
	PeakScore       float64

	Method     AggMethod
	ComputedAt time.Time
}

// CalculationLog is the append-only audit record of one scoring run.
type CalculationLog struct {
	ID           int64
	CrewID       int64
	Year         int
	Method       AggMethod
	Params       string // JSON snapshot of preferences and factors in effect
	ResultsCount int
	CreatedAt    time.Time
}

// StoreStatus summarizes the state of the configured database backend.
type StoreStatus struct {
	Backend     string
	Connected   bool
	LastRunTime time.Time
	TotalRuns   int64
	TableSizes  map[string]int64
}
