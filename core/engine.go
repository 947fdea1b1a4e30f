package core

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/huangsam/trekrank/internal/contract"
	"github.com/huangsam/trekrank/schema"
)

// RecalcMethods are the methods recomputed by a multi-method pass.
var RecalcMethods = []schema.AggMethod{
	schema.TotalMethod,
	schema.AverageMethod,
	schema.MedianMethod,
}

// Engine runs one synchronous scoring computation per invocation: load
// inputs, aggregate ratings, score every itinerary, rank, persist. The
// computation is deterministic and pure over its inputs; persistence is
// delegated to the result store, which provides atomicity and per-crew
// serialization.
type Engine struct {
	catalog contract.CatalogStore
	prefs   contract.PreferenceStore
	results contract.ResultStore

	// Swappable scoring policies. NewEngine installs the documented
	// defaults; tests and future tuning may replace them.
	AltitudeCurve FalloffCurve
	GainCurve     FalloffCurve
	DistanceCurve DistanceCurve

	clock func() time.Time
}

// NewEngine creates an Engine over the given stores with the default
// curve policies.
func NewEngine(catalog contract.CatalogStore, prefs contract.PreferenceStore, results contract.ResultStore) *Engine {
	return &Engine{
		catalog:       catalog,
		prefs:         prefs,
		results:       results,
		AltitudeCurve: LinearFalloff(DefaultAltitudeSpan),
		GainCurve:     LinearFalloff(DefaultGainSpan),
		DistanceCurve: TriangularDistance(DefaultTargetDistance, DefaultDistanceSpread),
		clock:         time.Now,
	}
}

// runParams is the serialized parameter snapshot recorded in the audit
// log, so every run's inputs can be reconstructed later.
type runParams struct {
	Method         schema.AggMethod                           `json:"method"`
	Year           int                                        `json:"year"`
	CrewName       string                                     `json:"crew_name"`
	DefaultPrefs   bool                                       `json:"default_preferences"`
	Preferences    schema.CrewPreferences                     `json:"preferences"`
	Factors        map[schema.FactorCode]schema.ScoringFactor `json:"factors"`
	AreaRankScores map[int]float64                            `json:"area_rank_scores"`
}

// Run executes one full calculation for a crew, year and method: the
// ranked CrewResult set replaces the crew's previous set and one audit
// entry is appended, atomically. Unchanged inputs produce an identical
// result set on every run.
func (e *Engine) Run(ctx context.Context, crewID int64, year int, method schema.AggMethod) ([]schema.CrewResult, error) {
	if _, ok := schema.ValidAggMethods[method]; !ok {
		return nil, &contract.ValidationError{Field: "method", Value: string(method), Reason: "must be total, average, median or mode"}
	}

	crew, err := e.prefs.GetCrew(ctx, crewID)
	if err != nil {
		return nil, fmt.Errorf("load crew: %w", err)
	}

	stored, err := e.prefs.GetPreferences(ctx, crewID, year)
	if err != nil {
		return nil, fmt.Errorf("load preferences: %w", err)
	}
	usedDefaults := stored == nil
	prefs := schema.DefaultPreferences(crewID, year)
	if stored != nil {
		prefs = *stored
	}
	if err := validatePreferences(&prefs); err != nil {
		return nil, err
	}

	factorRows, err := e.prefs.GetScoringFactors(ctx)
	if err != nil {
		return nil, fmt.Errorf("load scoring factors: %w", err)
	}
	snapshot := schema.NewFactorSnapshot(factorRows)

	catalog, err := e.catalog.GetCatalog(ctx, year)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}

	ratings, err := e.prefs.GetRatings(ctx, crewID, year)
	if err != nil {
		return nil, fmt.Errorf("load ratings: %w", err)
	}
	aggregated, err := AggregateRatings(ratings, method)
	if err != nil {
		return nil, err
	}

	rc := &runContext{
		prefs:         prefs,
		factors:       snapshot,
		aggregated:    aggregated,
		programs:      catalog.ProgramsByItinerary,
		altitudeCurve: e.AltitudeCurve,
		gainCurve:     e.GainCurve,
		distanceCurve: e.DistanceCurve,
	}

	now := e.clock()
	results := make([]schema.CrewResult, 0, len(catalog.Itineraries))
	for i := range catalog.Itineraries {
		result := computeResult(&catalog.Itineraries[i], rc)
		result.Year = year
		result.Method = method
		result.ComputedAt = now
		results = append(results, result)
	}
	results = rankResults(results)

	params, err := json.Marshal(runParams{
		Method:         method,
		Year:           year,
		CrewName:       crew.Name,
		DefaultPrefs:   usedDefaults,
		Preferences:    prefs,
		Factors:        snapshot.Factors(),
		AreaRankScores: snapshot.AreaRankScores,
	})
	if err != nil {
		return nil, fmt.Errorf("snapshot run parameters: %w", err)
	}

	logEntry := schema.CalculationLog{
		CrewID:       crewID,
		Year:         year,
		Method:       method,
		Params:       string(params),
		ResultsCount: len(results),
		CreatedAt:    now,
	}
	if err := e.results.ReplaceResults(ctx, results, logEntry); err != nil {
		return nil, fmt.Errorf("persist results: %w", err)
	}
	return results, nil
}

// RunAll recomputes the crew's results once per method in RecalcMethods
// and returns the sets keyed by method. The stored result set ends up
// reflecting the last method in the list; every pass appends its own
// audit entry.
func (e *Engine) RunAll(ctx context.Context, crewID int64, year int) (map[schema.AggMethod][]schema.CrewResult, error) {
	out := make(map[schema.AggMethod][]schema.CrewResult, len(RecalcMethods))
	for _, method := range RecalcMethods {
		results, err := e.Run(ctx, crewID, year, method)
		if err != nil {
			return nil, fmt.Errorf("recalculate with %s: %w", method, err)
		}
		out[method] = results
	}
	return out, nil
}
