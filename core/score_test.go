package core

import (
	"testing"

	"github.com/huangsam/trekrank/internal/contract"
	"github.com/huangsam/trekrank/schema"
	"github.com/stretchr/testify/assert"
)

// newTestContext builds a runContext with default factors and curves for
// the given preferences.
func newTestContext(prefs schema.CrewPreferences) *runContext {
	return &runContext{
		prefs:         prefs,
		factors:       schema.NewFactorSnapshot(nil),
		aggregated:    map[int64]float64{},
		programs:      map[int64][]int64{},
		altitudeCurve: LinearFalloff(DefaultAltitudeSpan),
		gainCurve:     LinearFalloff(DefaultGainSpan),
		distanceCurve: TriangularDistance(DefaultTargetDistance, DefaultDistanceSpread),
	}
}

// TestScoreProgram tests availability matching and the PROGRAM multiplier.
func TestScoreProgram(t *testing.T) {
	rc := newTestContext(schema.DefaultPreferences(1, 2025))
	rc.aggregated = map[int64]float64{100: 30, 200: 10, 300: 99}
	rc.programs = map[int64][]int64{1: {100, 200}, 2: {}}

	t.Run("sums available programs times multiplier", func(t *testing.T) {
		itin := schema.Itinerary{ID: 1}
		assert.InDelta(t, 60.0, scoreProgram(&itin, rc), 0.001) // (30+10) * 1.5
	})

	t.Run("zero matched programs scores zero, not an error", func(t *testing.T) {
		itin := schema.Itinerary{ID: 2}
		assert.Equal(t, 0.0, scoreProgram(&itin, rc))
	})

	t.Run("unknown itinerary scores zero", func(t *testing.T) {
		itin := schema.Itinerary{ID: 42}
		assert.Equal(t, 0.0, scoreProgram(&itin, rc))
	})

	t.Run("inactive factor contributes nothing", func(t *testing.T) {
		inactive := newTestContext(schema.DefaultPreferences(1, 2025))
		inactive.aggregated = rc.aggregated
		inactive.programs = rc.programs
		inactive.factors = schema.NewFactorSnapshot([]schema.ScoringFactor{
			{Code: schema.ProgramFactor, Multiplier: 1.5, IsActive: false},
		})
		itin := schema.Itinerary{ID: 1}
		assert.Equal(t, 0.0, scoreProgram(&itin, inactive))
	})
}

// TestScoreDifficulty tests the binary gate and its defaults.
func TestScoreDifficulty(t *testing.T) {
	t.Run("default preferences accept every level", func(t *testing.T) {
		rc := newTestContext(schema.DefaultPreferences(1, 2025))
		for d := range schema.ValidDifficulties {
			itin := schema.Itinerary{Difficulty: d}
			assert.Equal(t, 100.0, scoreDifficulty(&itin, rc), string(d))
		}
	})

	t.Run("rejected level scores zero", func(t *testing.T) {
		prefs := schema.DefaultPreferences(1, 2025)
		prefs.DifficultySuperStrenuous = false
		rc := newTestContext(prefs)

		itin := schema.Itinerary{Difficulty: schema.SuperStrenuous}
		assert.Equal(t, 0.0, scoreDifficulty(&itin, rc))

		itin.Difficulty = schema.Strenuous
		assert.Equal(t, 100.0, scoreDifficulty(&itin, rc))
	})
}

// TestScoreArea tests the importance gate, primary-region resolution and
// the rank table.
func TestScoreArea(t *testing.T) {
	prefs := schema.DefaultPreferences(1, 2025)
	prefs.AreaImportant = true
	prefs.AreaRankSouth = 1
	prefs.AreaRankCentral = 3
	rc := newTestContext(prefs)

	t.Run("rank one scores highest", func(t *testing.T) {
		itin := schema.Itinerary{CoversSouth: true}
		assert.Equal(t, 100.0, scoreArea(&itin, rc))
	})

	t.Run("primary region wins over secondary flags", func(t *testing.T) {
		// South has priority, so the central rank is ignored.
		itin := schema.Itinerary{CoversSouth: true, CoversCentral: true}
		assert.Equal(t, 100.0, scoreArea(&itin, rc))
	})

	t.Run("unranked region scores zero", func(t *testing.T) {
		itin := schema.Itinerary{CoversNorth: true}
		assert.Equal(t, 0.0, scoreArea(&itin, rc))
	})

	t.Run("mixed itinerary scores zero", func(t *testing.T) {
		itin := schema.Itinerary{}
		assert.Equal(t, 0.0, scoreArea(&itin, rc))
	})

	t.Run("inactive without area importance", func(t *testing.T) {
		quiet := newTestContext(schema.DefaultPreferences(1, 2025))
		itin := schema.Itinerary{CoversSouth: true}
		assert.Equal(t, 0.0, scoreArea(&itin, quiet))
	})
}

// TestScoreAltitude tests both sub-checks and their summation.
func TestScoreAltitude(t *testing.T) {
	prefs := schema.DefaultPreferences(1, 2025)
	prefs.MaxAltitudeImportant = true
	prefs.MaxAltitudeThreshold = 10000
	prefs.ElevationGainImportant = true
	prefs.ElevationGainThreshold = 1000
	rc := newTestContext(prefs)

	t.Run("both thresholds met sums both bases", func(t *testing.T) {
		itin := schema.Itinerary{MaxAltitude: 9500, ElevationGain: 800}
		assert.Equal(t, 100.0, scoreAltitude(&itin, rc))
	})

	t.Run("far past both thresholds scores zero", func(t *testing.T) {
		itin := schema.Itinerary{MaxAltitude: 13000, ElevationGain: 2000}
		assert.Equal(t, 0.0, scoreAltitude(&itin, rc))
	})

	t.Run("partial overage decays without going negative", func(t *testing.T) {
		itin := schema.Itinerary{MaxAltitude: 11000, ElevationGain: 800}
		score := scoreAltitude(&itin, rc)
		assert.Greater(t, score, 50.0)
		assert.Less(t, score, 100.0)
	})

	t.Run("importance flags gate each check independently", func(t *testing.T) {
		only := prefs
		only.ElevationGainImportant = false
		single := newTestContext(only)
		itin := schema.Itinerary{MaxAltitude: 9500, ElevationGain: 99999}
		assert.Equal(t, 50.0, scoreAltitude(&itin, single))
	})
}

// TestScoreDistance checks the default band behavior.
func TestScoreDistance(t *testing.T) {
	rc := newTestContext(schema.DefaultPreferences(1, 2025))

	t.Run("target distance scores the full band", func(t *testing.T) {
		itin := schema.Itinerary{DistanceMiles: DefaultTargetDistance}
		assert.Equal(t, 2500.0, scoreDistance(&itin, rc))
	})

	t.Run("closer to target beats farther", func(t *testing.T) {
		near := schema.Itinerary{DistanceMiles: 55}
		far := schema.Itinerary{DistanceMiles: 80}
		assert.Greater(t, scoreDistance(&near, rc), scoreDistance(&far, rc))
	})
}

// TestScorePeaks tests the desired-and-offered intersection.
func TestScorePeaks(t *testing.T) {
	prefs := schema.DefaultPreferences(1, 2025)
	prefs.ClimbBaldy = true
	prefs.ClimbTooth = true
	rc := newTestContext(prefs)

	t.Run("each desired offered peak adds the bonus", func(t *testing.T) {
		itin := schema.Itinerary{ClimbsBaldy: true, ClimbsTooth: true}
		assert.Equal(t, 50.0, scorePeaks(&itin, rc))
	})

	t.Run("undesired offered peak contributes nothing", func(t *testing.T) {
		itin := schema.Itinerary{ClimbsBaldy: true, ClimbsPhillips: true}
		assert.Equal(t, 25.0, scorePeaks(&itin, rc))
	})

	t.Run("desired unoffered peak contributes nothing", func(t *testing.T) {
		itin := schema.Itinerary{ClimbsPhillips: true}
		assert.Equal(t, 0.0, scorePeaks(&itin, rc))
	})
}

// TestComputeResult verifies the total is the sum of the recorded
// breakdown, so the persisted row stays inspectable.
func TestComputeResult(t *testing.T) {
	prefs := schema.DefaultPreferences(1, 2025)
	prefs.AreaImportant = true
	prefs.AreaRankSouth = 2
	prefs.ClimbBaldy = true
	rc := newTestContext(prefs)
	rc.aggregated = map[int64]float64{100: 20}
	rc.programs = map[int64][]int64{7: {100}}

	itin := schema.Itinerary{
		ID:            7,
		Code:          "12-3",
		Difficulty:    schema.Strenuous,
		DistanceMiles: 50,
		CoversSouth:   true,
		ClimbsBaldy:   true,
	}

	result := computeResult(&itin, rc)

	assert.Equal(t, "12-3", result.Code)
	assert.InDelta(t, 30.0, result.ProgramScore, 0.001)
	assert.Equal(t, 100.0, result.DifficultyScore)
	assert.Equal(t, 75.0, result.AreaScore)
	assert.Equal(t, 0.0, result.AltitudeScore)
	assert.Equal(t, 2500.0, result.DistanceScore)
	assert.Equal(t, 25.0, result.PeakScore)

	sum := result.ProgramScore + result.DifficultyScore + result.AreaScore +
		result.AltitudeScore + result.DistanceScore + result.PeakScore
	assert.InDelta(t, sum, result.TotalScore, 0.001)
}

// TestValidatePreferences tests area rank bounds.
func TestValidatePreferences(t *testing.T) {
	t.Run("zero ranks are unranked, not invalid", func(t *testing.T) {
		prefs := schema.DefaultPreferences(1, 2025)
		assert.NoError(t, validatePreferences(&prefs))
	})

	t.Run("rank above four fails", func(t *testing.T) {
		prefs := schema.DefaultPreferences(1, 2025)
		prefs.AreaRankNorth = 5
		err := validatePreferences(&prefs)
		assert.True(t, contract.IsValidation(err))
	})

	t.Run("negative rank fails", func(t *testing.T) {
		prefs := schema.DefaultPreferences(1, 2025)
		prefs.AreaRankValleVidal = -1
		err := validatePreferences(&prefs)
		assert.True(t, contract.IsValidation(err))
	})
}
