package schema

// Crew is the scoring unit: a group of Scouts choosing an itinerary.
type Crew struct {
	ID   int64
	Name string
	Size int
}

// CrewMember is one person in a crew. MemberNumber is unique per crew.
type CrewMember struct {
	ID           int64
	CrewID       int64
	MemberNumber int
	Name         string
	SkillLevel   int

	// SurveyDone is true when the member has submitted at least one
	// program rating for the year.
	SurveyDone bool
}

// ProgramRating is one member's rating of one program for a year, on the
// 0-20 scale. Unique per (member, program, year).
type ProgramRating struct {
	MemberID  int64
	ProgramID int64
	Year      int
	Score     int
}

// CrewPreferences holds one crew's configured weights and toggles for a
// year. At most one active record exists per (crew, year). Zero area ranks
// mean "unranked"; importance flags gate their factor entirely.
type CrewPreferences struct {
	CrewID int64
	Year   int

	AreaImportant      bool
	AreaRankSouth      int
	AreaRankCentral    int
	AreaRankNorth      int
	AreaRankValleVidal int

	MaxAltitudeImportant   bool
	MaxAltitudeThreshold   int
	ElevationGainImportant bool
	ElevationGainThreshold int

	DifficultyChallenging    bool
	DifficultyRugged         bool
	DifficultyStrenuous      bool
	DifficultySuperStrenuous bool

	ClimbBaldy       bool
	ClimbPhillips    bool
	ClimbTooth       bool
	ClimbInspiration bool
	ClimbTrailPeak   bool
	ClimbOther       bool

	ProgramsImportant bool
}

// Baseline thresholds used when a crew marks altitude checks important but
// leaves the threshold blank.
const (
	DefaultMaxAltitudeThreshold   = 10000 // feet
	DefaultElevationGainThreshold = 1500  // feet per day
)

// DefaultPreferences returns the documented baseline preference record for
// a crew with no stored preferences: accept all four difficulty levels,
// no area or altitude importance, no peak-climb desires. An absent
// preference row must never silently exclude an itinerary.
func DefaultPreferences(crewID int64, year int) CrewPreferences {
	return CrewPreferences{
		CrewID:                   crewID,
		Year:                     year,
		DifficultyChallenging:    true,
		DifficultyRugged:         true,
		DifficultyStrenuous:      true,
		DifficultySuperStrenuous: true,
		MaxAltitudeThreshold:     DefaultMaxAltitudeThreshold,
		ElevationGainThreshold:   DefaultElevationGainThreshold,
	}
}

// AcceptsDifficulty reports whether the crew accepts treks at the given
// difficulty level.
func (p *CrewPreferences) AcceptsDifficulty(d Difficulty) bool {
	switch d {
	case Challenging:
		return p.DifficultyChallenging
	case Rugged:
		return p.DifficultyRugged
	case Strenuous:
		return p.DifficultyStrenuous
	case SuperStrenuous:
		return p.DifficultySuperStrenuous
	default:
		return false
	}
}

// DesiresPeak reports whether the crew wants to climb the given peak.
func (p *CrewPreferences) DesiresPeak(peak Peak) bool {
	switch peak {
	case BaldyMountain:
		return p.ClimbBaldy
	case MountPhillips:
		return p.ClimbPhillips
	case ToothOfTime:
		return p.ClimbTooth
	case InspirationPoint:
		return p.ClimbInspiration
	case TrailPeak:
		return p.ClimbTrailPeak
	case OtherPeaks:
		return p.ClimbOther
	default:
		return false
	}
}

// AreaRank returns the crew's configured rank for a region, or 0 when the
// region is unranked or Mixed.
func (p *CrewPreferences) AreaRank(region Region) int {
	switch region {
	case SouthRegion:
		return p.AreaRankSouth
	case CentralRegion:
		return p.AreaRankCentral
	case NorthRegion:
		return p.AreaRankNorth
	case ValleVidalRegion:
		return p.AreaRankValleVidal
	default:
		return 0
	}
}
