package schema

// Custom string types for type safety.
type (
	// Difficulty represents an itinerary's catalog difficulty level.
	Difficulty string

	// Region represents a section of the trekking area.
	Region string

	// AggMethod represents how member program ratings are combined.
	AggMethod string

	// FactorCode identifies a tunable scoring factor.
	FactorCode string

	// Peak identifies a named peak-climb opportunity.
	Peak string

	// OutputMode represents the format of the output.
	OutputMode string

	// DatabaseBackend represents the database backend for the store.
	DatabaseBackend string
)

// All difficulty levels supported.
const (
	Challenging    Difficulty = "C"
	Rugged         Difficulty = "R"
	Strenuous      Difficulty = "S"
	SuperStrenuous Difficulty = "SS"
)

// All regions supported. MixedRegion is the fallback when an itinerary
// carries no region flag at all; it never scores area points.
const (
	SouthRegion      Region = "south"
	CentralRegion    Region = "central"
	NorthRegion      Region = "north"
	ValleVidalRegion Region = "valle_vidal"
	MixedRegion      Region = "mixed"
)

// All aggregation methods supported.
const (
	TotalMethod   AggMethod = "total" // default
	AverageMethod AggMethod = "average"
	MedianMethod  AggMethod = "median"
	ModeMethod    AggMethod = "mode"
)

// All scoring factor codes.
const (
	ProgramFactor    FactorCode = "PROGRAM"
	DifficultyFactor FactorCode = "DIFFICULTY"
	AreaFactor       FactorCode = "AREA"
	AltitudeFactor   FactorCode = "ALTITUDE"
	DistanceFactor   FactorCode = "DISTANCE"
	PeakFactor       FactorCode = "PEAK"
)

// All named peaks. OtherPeaks is the catch-all flag for summits without a
// dedicated column.
const (
	BaldyMountain    Peak = "baldy_mountain"
	MountPhillips    Peak = "mount_phillips"
	ToothOfTime      Peak = "tooth_of_time"
	InspirationPoint Peak = "inspiration_point"
	TrailPeak        Peak = "trail_peak"
	OtherPeaks       Peak = "others"
)

// All output modes supported.
const (
	TextOut    OutputMode = "text" // default
	CSVOut     OutputMode = "csv"
	JSONOut    OutputMode = "json"
	ParquetOut OutputMode = "parquet"
)

// All database backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite" // default
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
)

// Program rating bounds. A rating outside these bounds is rejected before
// aggregation.
const (
	MinProgramRating = 0
	MaxProgramRating = 20
)

// Area rank bounds: 1 is most preferred, 4 least.
const (
	MinAreaRank = 1
	MaxAreaRank = 4
)

// AllPeaks lists every peak flag in catalog column order.
var AllPeaks = []Peak{
	BaldyMountain,
	MountPhillips,
	ToothOfTime,
	InspirationPoint,
	TrailPeak,
	OtherPeaks,
}

// AllFactorCodes lists every tunable factor.
var AllFactorCodes = []FactorCode{
	ProgramFactor,
	DifficultyFactor,
	AreaFactor,
	AltitudeFactor,
	DistanceFactor,
	PeakFactor,
}

// ValidAggMethods lists all valid aggregation methods.
var ValidAggMethods = map[AggMethod]struct{}{
	TotalMethod:   {},
	AverageMethod: {},
	MedianMethod:  {},
	ModeMethod:    {},
}

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	TextOut:    {},
	CSVOut:     {},
	JSONOut:    {},
	ParquetOut: {},
}

// ValidDatabaseBackends lists all valid database backends.
var ValidDatabaseBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
}

// ValidDifficulties lists all valid difficulty levels.
var ValidDifficulties = map[Difficulty]struct{}{
	Challenging:    {},
	Rugged:         {},
	Strenuous:      {},
	SuperStrenuous: {},
}
