package iostore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/huangsam/trekrank/internal/contract"
	"github.com/huangsam/trekrank/schema"
)

// CatalogStoreImpl implements the CatalogStore interface.
type CatalogStoreImpl struct {
	db      *sql.DB
	backend schema.DatabaseBackend
}

var _ contract.CatalogStore = &CatalogStoreImpl{} // Compile-time check

const itineraryColumns = `id, code, difficulty, distance_miles, min_altitude, max_altitude, elevation_gain,
	covers_south, covers_central, covers_north, covers_valle_vidal,
	climbs_baldy, climbs_phillips, climbs_tooth, climbs_inspiration, climbs_trail_peak, climbs_other,
	trek_year`

// scanItinerary reads one itinerary row in itineraryColumns order.
func scanItinerary(row interface{ Scan(...any) error }) (schema.Itinerary, error) {
	var it schema.Itinerary
	err := row.Scan(
		&it.ID, &it.Code, &it.Difficulty, &it.DistanceMiles, &it.MinAltitude, &it.MaxAltitude, &it.ElevationGain,
		&it.CoversSouth, &it.CoversCentral, &it.CoversNorth, &it.CoversValleVidal,
		&it.ClimbsBaldy, &it.ClimbsPhillips, &it.ClimbsTooth, &it.ClimbsInspiration, &it.ClimbsTrailPeak, &it.ClimbsOther,
		&it.Year,
	)
	return it, err
}

// GetCatalog loads all itineraries for a year plus the availability index
// from itinerary to program ids, filtered by is_available.
func (cs *CatalogStoreImpl) GetCatalog(ctx context.Context, year int) (*schema.Catalog, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE trek_year = ? ORDER BY code", itineraryColumns, itinerariesTable)
	rows, err := cs.db.QueryContext(ctx, rebind(query, cs.backend), year)
	if err != nil {
		return nil, fmt.Errorf("failed to query itineraries: %w", err)
	}
	defer func() { _ = rows.Close() }()

	catalog := &schema.Catalog{
		Programs:            make(map[int64]schema.Program),
		ProgramsByItinerary: make(map[int64][]int64),
	}
	for rows.Next() {
		it, err := scanItinerary(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan itinerary: %w", err)
		}
		catalog.Itineraries = append(catalog.Itineraries, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating itineraries: %w", err)
	}

	if err := cs.loadPrograms(ctx, catalog); err != nil {
		return nil, err
	}
	if err := cs.loadAvailability(ctx, catalog, year); err != nil {
		return nil, err
	}
	return catalog, nil
}

// loadPrograms fills the program lookup table.
func (cs *CatalogStoreImpl) loadPrograms(ctx context.Context, catalog *schema.Catalog) error {
	query := fmt.Sprintf("SELECT id, code, category, program_name FROM %s", programsTable)
	rows, err := cs.db.QueryContext(ctx, query)
	if err != nil {
		return fmt.Errorf("failed to query programs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var p schema.Program
		var code, category sql.NullString
		if err := rows.Scan(&p.ID, &code, &category, &p.Name); err != nil {
			return fmt.Errorf("failed to scan program: %w", err)
		}
		p.Code = code.String
		p.Category = category.String
		catalog.Programs[p.ID] = p
	}
	return rows.Err()
}

// loadAvailability fills ProgramsByItinerary for the year.
func (cs *CatalogStoreImpl) loadAvailability(ctx context.Context, catalog *schema.Catalog, year int) error {
	query := fmt.Sprintf(
		"SELECT itinerary_id, program_id FROM %s WHERE trek_year = ? AND is_available = ? ORDER BY itinerary_id, program_id",
		itineraryProgramsTable)
	rows, err := cs.db.QueryContext(ctx, rebind(query, cs.backend), year, true)
	if err != nil {
		return fmt.Errorf("failed to query itinerary programs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var itineraryID, programID int64
		if err := rows.Scan(&itineraryID, &programID); err != nil {
			return fmt.Errorf("failed to scan itinerary program: %w", err)
		}
		catalog.ProgramsByItinerary[itineraryID] = append(catalog.ProgramsByItinerary[itineraryID], programID)
	}
	return rows.Err()
}

// GetItineraryByCode looks up one itinerary by its unique code and year.
func (cs *CatalogStoreImpl) GetItineraryByCode(ctx context.Context, code string, year int) (*schema.Itinerary, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE code = ? AND trek_year = ?", itineraryColumns, itinerariesTable)
	row := cs.db.QueryRowContext(ctx, rebind(query, cs.backend), code, year)

	it, err := scanItinerary(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &contract.NotFoundError{Kind: "itinerary", ID: code}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan itinerary: %w", err)
	}
	return &it, nil
}

// GetCampStops returns the camps on an itinerary ordered by day number.
func (cs *CatalogStoreImpl) GetCampStops(ctx context.Context, itineraryID int64, year int) ([]schema.CampStop, error) {
	query := fmt.Sprintf(`SELECT ic.day_number, c.id, c.camp_name, c.elevation, c.region,
		c.is_staffed, c.is_trail_camp, c.is_dry_camp, c.has_commissary, c.has_trading_post
		FROM %s ic JOIN %s c ON c.id = ic.camp_id
		WHERE ic.itinerary_id = ? AND ic.trek_year = ?
		ORDER BY ic.day_number`, itineraryCampsTable, campsTable)
	rows, err := cs.db.QueryContext(ctx, rebind(query, cs.backend), itineraryID, year)
	if err != nil {
		return nil, fmt.Errorf("failed to query camp stops: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var stops []schema.CampStop
	for rows.Next() {
		var stop schema.CampStop
		if err := rows.Scan(&stop.DayNumber, &stop.Camp.ID, &stop.Camp.Name, &stop.Camp.Elevation, &stop.Camp.Region,
			&stop.Camp.IsStaffed, &stop.Camp.IsTrailCamp, &stop.Camp.IsDryCamp,
			&stop.Camp.HasCommissary, &stop.Camp.HasTradingPost); err != nil {
			return nil, fmt.Errorf("failed to scan camp stop: %w", err)
		}
		stops = append(stops, stop)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating camp stops: %w", err)
	}
	return stops, nil
}

// Close closes the underlying connection.
func (cs *CatalogStoreImpl) Close() error {
	if cs.db != nil {
		return cs.db.Close()
	}
	return nil
}
