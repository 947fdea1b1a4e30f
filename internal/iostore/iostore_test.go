package iostore

import (
	"context"
	"testing"
	"time"

	"github.com/huangsam/trekrank/internal/contract"
	"github.com/huangsam/trekrank/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testYear = 2026

// newSeededManager opens an in-memory SQLite store with the sample
// dataset loaded.
func newSeededManager(t *testing.T) *StoreManagerImpl {
	t.Helper()

	mgr, err := NewStoreManager(schema.SQLiteBackend, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = mgr.Close() })

	require.NoError(t, mgr.Seed(context.Background(), testYear))
	return mgr
}

func TestStoreManager_UnsupportedBackend(t *testing.T) {
	_, err := NewStoreManager(schema.DatabaseBackend("oracle"), "")
	assert.Error(t, err)
}

func TestCatalogStore_SQLite(t *testing.T) {
	mgr := newSeededManager(t)
	ctx := context.Background()

	catalog, err := mgr.Catalog().GetCatalog(ctx, testYear)
	require.NoError(t, err)
	require.Len(t, catalog.Itineraries, 4)
	assert.Len(t, catalog.Programs, 5)

	// Itineraries come back ordered by code
	assert.Equal(t, "12-1", catalog.Itineraries[0].Code)
	assert.Equal(t, schema.Challenging, catalog.Itineraries[0].Difficulty)
	assert.True(t, catalog.Itineraries[0].CoversSouth)
	assert.Equal(t, schema.SouthRegion, catalog.Itineraries[0].PrimaryRegion())

	// The availability index excludes unavailable links
	assert.ElementsMatch(t, []int64{1, 5}, catalog.ProgramsByItinerary[1])
	assert.ElementsMatch(t, []int64{3}, catalog.ProgramsByItinerary[4])

	t.Run("lookup by code", func(t *testing.T) {
		it, err := mgr.Catalog().GetItineraryByCode(ctx, "22-7", testYear)
		require.NoError(t, err)
		assert.Equal(t, schema.SuperStrenuous, it.Difficulty)
		assert.True(t, it.ClimbsBaldy)
	})

	t.Run("unknown code is not found", func(t *testing.T) {
		_, err := mgr.Catalog().GetItineraryByCode(ctx, "99-9", testYear)
		assert.True(t, contract.IsNotFound(err))
	})

	t.Run("wrong year is not found", func(t *testing.T) {
		_, err := mgr.Catalog().GetItineraryByCode(ctx, "12-1", testYear+1)
		assert.True(t, contract.IsNotFound(err))
	})

	t.Run("camp stops ordered by day", func(t *testing.T) {
		stops, err := mgr.Catalog().GetCampStops(ctx, 1, testYear)
		require.NoError(t, err)
		require.Len(t, stops, 2)
		assert.Equal(t, 2, stops[0].DayNumber)
		assert.Equal(t, "Crater Lake", stops[0].Camp.Name)
		assert.Equal(t, 4, stops[1].DayNumber)
		assert.True(t, stops[1].Camp.IsDryCamp)
	})
}

func TestPreferenceStore_SQLite(t *testing.T) {
	mgr := newSeededManager(t)
	ctx := context.Background()

	t.Run("get crew", func(t *testing.T) {
		crew, err := mgr.Preferences().GetCrew(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, "Troop 1", crew.Name)
		assert.Equal(t, 3, crew.Size)
	})

	t.Run("missing crew is not found", func(t *testing.T) {
		_, err := mgr.Preferences().GetCrew(ctx, 99)
		assert.True(t, contract.IsNotFound(err))
	})

	t.Run("list crews ordered by name", func(t *testing.T) {
		crews, err := mgr.Preferences().ListCrews(ctx)
		require.NoError(t, err)
		require.Len(t, crews, 2)
		assert.Equal(t, "Troop 1", crews[0].Name)
		assert.Equal(t, "Venture 42", crews[1].Name)
	})

	t.Run("list members with survey status", func(t *testing.T) {
		members, err := mgr.Preferences().ListMembers(ctx, 1, testYear)
		require.NoError(t, err)
		require.Len(t, members, 3)
		assert.True(t, members[0].SurveyDone)
		assert.True(t, members[1].SurveyDone)
		assert.False(t, members[2].SurveyDone) // Casey never rated anything
	})

	t.Run("stored preferences round trip", func(t *testing.T) {
		prefs, err := mgr.Preferences().GetPreferences(ctx, 1, testYear)
		require.NoError(t, err)
		require.NotNil(t, prefs)
		assert.True(t, prefs.AreaImportant)
		assert.Equal(t, 1, prefs.AreaRankSouth)
		assert.Equal(t, 2, prefs.AreaRankNorth)
		assert.True(t, prefs.ClimbBaldy)
		assert.False(t, prefs.DifficultySuperStrenuous)
		assert.Equal(t, schema.DefaultMaxAltitudeThreshold, prefs.MaxAltitudeThreshold)
	})

	t.Run("absent preferences are nil, not an error", func(t *testing.T) {
		prefs, err := mgr.Preferences().GetPreferences(ctx, 2, testYear)
		require.NoError(t, err)
		assert.Nil(t, prefs)
	})

	t.Run("ratings join through members", func(t *testing.T) {
		ratings, err := mgr.Preferences().GetRatings(ctx, 1, testYear)
		require.NoError(t, err)
		assert.Len(t, ratings, 4)
		for _, r := range ratings {
			assert.Contains(t, []int64{1, 2, 3}, r.MemberID)
		}
	})

	t.Run("scoring factors seeded with defaults", func(t *testing.T) {
		factors, err := mgr.Preferences().GetScoringFactors(ctx)
		require.NoError(t, err)
		require.Len(t, factors, len(schema.AllFactorCodes))

		snapshot := schema.NewFactorSnapshot(factors)
		program := snapshot.Get(schema.ProgramFactor)
		assert.InDelta(t, 1.5, program.Multiplier, 0.001)
		assert.True(t, program.IsActive)
	})
}

func TestResultStore_ReplaceRoundTrip(t *testing.T) {
	mgr := newSeededManager(t)
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Microsecond)

	makeSet := func(method schema.AggMethod, topCode string) ([]schema.CrewResult, schema.CalculationLog) {
		results := []schema.CrewResult{
			{
				CrewID: 1, ItineraryID: 1, Code: topCode, Year: testYear,
				TotalScore: 320.5, Ranking: 1, ChoiceNumber: 1,
				ProgramScore: 45, DifficultyScore: 100, AreaScore: 100,
				AltitudeScore: 50, DistanceScore: 500, PeakScore: 25.5,
				Method: method, ComputedAt: now,
			},
			{
				CrewID: 1, ItineraryID: 2, Code: "18-4", Year: testYear,
				TotalScore: 180, Ranking: 2, ChoiceNumber: 2,
				Method: method, ComputedAt: now,
			},
		}
		logEntry := schema.CalculationLog{
			CrewID: 1, Year: testYear, Method: method,
			Params: `{"method":"` + string(method) + `"}`, ResultsCount: len(results), CreatedAt: now,
		}
		return results, logEntry
	}

	results, logEntry := makeSet(schema.TotalMethod, "12-1")
	require.NoError(t, mgr.Results().ReplaceResults(ctx, results, logEntry))

	stored, err := mgr.Results().GetResults(ctx, 1, testYear)
	require.NoError(t, err)
	require.Len(t, stored, 2)
	assert.Equal(t, "12-1", stored[0].Code)
	assert.InDelta(t, 320.5, stored[0].TotalScore, 0.001)
	assert.Equal(t, schema.TotalMethod, stored[0].Method)
	assert.True(t, stored[0].ComputedAt.Equal(now))

	// A second run replaces the set instead of accumulating rows.
	results, logEntry = makeSet(schema.AverageMethod, "12-1")
	require.NoError(t, mgr.Results().ReplaceResults(ctx, results, logEntry))

	stored, err = mgr.Results().GetResults(ctx, 1, testYear)
	require.NoError(t, err)
	require.Len(t, stored, 2)
	assert.Equal(t, schema.AverageMethod, stored[0].Method)

	// Both runs appended audit entries, newest first.
	logs, err := mgr.Results().GetCalculationLogs(ctx, 1, testYear)
	require.NoError(t, err)
	require.Len(t, logs, 2)
	assert.Equal(t, int64(2), logs[0].ID)
	assert.Equal(t, schema.AverageMethod, logs[0].Method)
	assert.Equal(t, schema.TotalMethod, logs[1].Method)
	assert.Equal(t, 2, logs[0].ResultsCount)

	// Other crews are untouched.
	other, err := mgr.Results().GetResults(ctx, 2, testYear)
	require.NoError(t, err)
	assert.Empty(t, other)
}

func TestStoreStatus_SQLite(t *testing.T) {
	mgr := newSeededManager(t)
	ctx := context.Background()

	status, err := mgr.GetStatus(ctx)
	require.NoError(t, err)
	assert.Equal(t, string(schema.SQLiteBackend), status.Backend)
	assert.True(t, status.Connected)
	assert.Equal(t, int64(0), status.TotalRuns)
	assert.Equal(t, int64(4), status.TableSizes[itinerariesTable])
	assert.Equal(t, int64(2), status.TableSizes[crewsTable])

	now := time.Now().UTC()
	logEntry := schema.CalculationLog{CrewID: 1, Year: testYear, Method: schema.TotalMethod, CreatedAt: now}
	require.NoError(t, mgr.Results().ReplaceResults(ctx, nil, logEntry))

	status, err = mgr.GetStatus(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), status.TotalRuns)
	assert.True(t, status.LastRunTime.Equal(now))
}

func TestRebind(t *testing.T) {
	query := "SELECT a FROM t WHERE b = ? AND c = ?"

	assert.Equal(t, query, rebind(query, schema.SQLiteBackend))
	assert.Equal(t, query, rebind(query, schema.MySQLBackend))
	assert.Equal(t, "SELECT a FROM t WHERE b = $1 AND c = $2", rebind(query, schema.PostgreSQLBackend))
}
