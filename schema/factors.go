package schema

// ScoringFactor is one global tunable weight row. BaseValue is the flat
// award a factor grants (difficulty gate, altitude sub-check, peak bonus,
// distance band); Multiplier scales the factor's computed value (program
// sum, area rank score). Inactive factors contribute 0 regardless of
// inputs.
type ScoringFactor struct {
	Code       FactorCode
	BaseValue  float64
	Multiplier float64
	IsActive   bool
}

// FactorSnapshot is an immutable view of the scoring_factors table taken
// once at the start of a run and passed explicitly through every scorer.
// Loading once avoids read-after-write races within a single computation.
type FactorSnapshot struct {
	factors map[FactorCode]ScoringFactor

	// AreaRankScores converts an area rank (1 = most preferred) to a raw
	// score before the AREA multiplier is applied. Exposed as a tunable
	// table rather than a hard-coded curve.
	AreaRankScores map[int]float64
}

// NewFactorSnapshot builds a snapshot from stored factor rows. Factors
// missing from the store fall back to compiled defaults, so a partially
// seeded table never zeroes out a scorer by accident.
func NewFactorSnapshot(rows []ScoringFactor) *FactorSnapshot {
	factors := GetDefaultFactors()
	for _, row := range rows {
		factors[row.Code] = row
	}
	return &FactorSnapshot{
		factors:        factors,
		AreaRankScores: GetDefaultAreaRankScores(),
	}
}

// Get returns the factor for a code, falling back to the compiled default
// when the snapshot has no entry for it.
func (s *FactorSnapshot) Get(code FactorCode) ScoringFactor {
	if f, ok := s.factors[code]; ok {
		return f
	}
	return GetDefaultFactors()[code]
}

// Factors returns a copy of the snapshot's factor map, used for the audit
// parameter snapshot.
func (s *FactorSnapshot) Factors() map[FactorCode]ScoringFactor {
	out := make(map[FactorCode]ScoringFactor, len(s.factors))
	for code, f := range s.factors {
		out[code] = f
	}
	return out
}

// GetDefaultFactors returns the default factor table. The PROGRAM
// multiplier of 1.5 and the DIFFICULTY baseline of 100 match the catalog
// planning worksheet the engine replaces.
func GetDefaultFactors() map[FactorCode]ScoringFactor {
	return map[FactorCode]ScoringFactor{
		ProgramFactor:    {Code: ProgramFactor, BaseValue: 0, Multiplier: 1.5, IsActive: true},
		DifficultyFactor: {Code: DifficultyFactor, BaseValue: 100, Multiplier: 1.0, IsActive: true},
		AreaFactor:       {Code: AreaFactor, BaseValue: 0, Multiplier: 1.0, IsActive: true},
		AltitudeFactor:   {Code: AltitudeFactor, BaseValue: 50, Multiplier: 1.0, IsActive: true},
		DistanceFactor:   {Code: DistanceFactor, BaseValue: 2500, Multiplier: 1.0, IsActive: true},
		PeakFactor:       {Code: PeakFactor, BaseValue: 25, Multiplier: 1.0, IsActive: true},
	}
}

// GetDefaultAreaRankScores returns the default inverse rank mapping:
// rank 1 scores highest, rank 4 lowest.
func GetDefaultAreaRankScores() map[int]float64 {
	return map[int]float64{
		1: 100,
		2: 75,
		3: 50,
		4: 25,
	}
}
