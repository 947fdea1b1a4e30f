package core

import (
	"github.com/huangsam/trekrank/internal/contract"
	"github.com/huangsam/trekrank/schema"
)

// runContext carries the immutable per-run inputs shared by every scorer:
// the crew's preferences, the factor snapshot, the aggregated program
// values and the availability index. It is built once per run and read
// concurrently without locks.
type runContext struct {
	prefs      schema.CrewPreferences
	factors    *schema.FactorSnapshot
	aggregated map[int64]float64 // program id -> aggregated member value
	programs   map[int64][]int64 // itinerary id -> available program ids

	altitudeCurve FalloffCurve
	gainCurve     FalloffCurve
	distanceCurve DistanceCurve
}

// computeResult scores one itinerary on all six factors and composes the
// total. Each sub-score already incorporates its factor's multiplier, base
// value and active flag, so the total is a plain sum and the breakdown is
// inspectable in the persisted row.
func computeResult(it *schema.Itinerary, rc *runContext) schema.CrewResult {
	result := schema.CrewResult{
		CrewID:      rc.prefs.CrewID,
		ItineraryID: it.ID,
		Code:        it.Code,
		Year:        it.Year,

		ProgramScore:    scoreProgram(it, rc),
		DifficultyScore: scoreDifficulty(it, rc),
		AreaScore:       scoreArea(it, rc),
		AltitudeScore:   scoreAltitude(it, rc),
		DistanceScore:   scoreDistance(it, rc),
		PeakScore:       scorePeaks(it, rc),
	}

	result.TotalScore = result.ProgramScore +
		result.DifficultyScore +
		result.AreaScore +
		result.AltitudeScore +
		result.DistanceScore +
		result.PeakScore
	return result
}

// scoreProgram sums the aggregated member values across the programs
// available on the itinerary and applies the PROGRAM multiplier. Zero
// matched programs scores 0, not an error.
func scoreProgram(it *schema.Itinerary, rc *runContext) float64 {
	factor := rc.factors.Get(schema.ProgramFactor)
	if !factor.IsActive {
		return 0
	}

	var sum float64
	for _, programID := range rc.programs[it.ID] {
		sum += rc.aggregated[programID]
	}
	return sum * factor.Multiplier
}

// scoreDifficulty is a binary gate: the DIFFICULTY base value when the
// crew accepts the itinerary's level, otherwise 0.
func scoreDifficulty(it *schema.Itinerary, rc *runContext) float64 {
	factor := rc.factors.Get(schema.DifficultyFactor)
	if !factor.IsActive {
		return 0
	}
	if !rc.prefs.AcceptsDifficulty(it.Difficulty) {
		return 0
	}
	return factor.BaseValue * factor.Multiplier
}

// scoreArea converts the crew's rank for the itinerary's primary region
// through the snapshot's rank table. Inactive unless the crew marked area
// important; a Mixed itinerary or an unranked region scores 0.
func scoreArea(it *schema.Itinerary, rc *runContext) float64 {
	factor := rc.factors.Get(schema.AreaFactor)
	if !factor.IsActive || !rc.prefs.AreaImportant {
		return 0
	}

	rank := rc.prefs.AreaRank(it.PrimaryRegion())
	if rank == 0 {
		return 0
	}
	return rc.factors.AreaRankScores[rank] * factor.Multiplier
}

// scoreAltitude runs the two independent altitude sub-checks, each gated
// by its own importance flag, and sums them. Each check awards the full
// ALTITUDE base value at or under the crew's threshold and decays through
// the configured falloff curve beyond it.
func scoreAltitude(it *schema.Itinerary, rc *runContext) float64 {
	factor := rc.factors.Get(schema.AltitudeFactor)
	if !factor.IsActive {
		return 0
	}

	var score float64
	if rc.prefs.MaxAltitudeImportant {
		score += rc.altitudeCurve(float64(it.MaxAltitude), float64(rc.prefs.MaxAltitudeThreshold), factor.BaseValue)
	}
	if rc.prefs.ElevationGainImportant {
		score += rc.gainCurve(float64(it.ElevationGain), float64(rc.prefs.ElevationGainThreshold), factor.BaseValue)
	}
	return score * factor.Multiplier
}

// scoreDistance applies the pluggable distance curve scaled by the
// DISTANCE base value.
func scoreDistance(it *schema.Itinerary, rc *runContext) float64 {
	factor := rc.factors.Get(schema.DistanceFactor)
	if !factor.IsActive {
		return 0
	}
	return rc.distanceCurve(it.DistanceMiles, factor.BaseValue) * factor.Multiplier
}

// scorePeaks awards the PEAK base value once per peak that is both offered
// by the itinerary and desired by the crew. Undesired peaks contribute
// nothing; desired peaks not offered contribute nothing.
func scorePeaks(it *schema.Itinerary, rc *runContext) float64 {
	factor := rc.factors.Get(schema.PeakFactor)
	if !factor.IsActive {
		return 0
	}

	var score float64
	for _, peak := range schema.AllPeaks {
		if it.OffersPeak(peak) && rc.prefs.DesiresPeak(peak) {
			score += factor.BaseValue
		}
	}
	return score * factor.Multiplier
}

// validatePreferences rejects area ranks outside [1,4]. A zero rank means
// unranked and is allowed; everything else out of band fails the run.
func validatePreferences(prefs *schema.CrewPreferences) error {
	ranks := map[string]int{
		"area_rank_south":       prefs.AreaRankSouth,
		"area_rank_central":     prefs.AreaRankCentral,
		"area_rank_north":       prefs.AreaRankNorth,
		"area_rank_valle_vidal": prefs.AreaRankValleVidal,
	}
	for field, rank := range ranks {
		if rank == 0 {
			continue
		}
		if rank < schema.MinAreaRank || rank > schema.MaxAreaRank {
			return &contract.ValidationError{
				Field:  field,
				Value:  rank,
				Reason: "area rank must be between 1 and 4",
			}
		}
	}
	return nil
}
