package iostore

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/huangsam/trekrank/schema"
)

// Seed wipes all tables and loads a small demonstration dataset for the
// given year: a four-itinerary catalog, two crews with rated surveys and
// the default scoring factor rows.
func (mgr *StoreManagerImpl) Seed(ctx context.Context, year int) error {
	tx, err := mgr.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin seed transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, table := range allTables {
		if _, err := tx.ExecContext(ctx, fmt.Sprintf("DELETE FROM %s", table)); err != nil {
			return fmt.Errorf("failed to clear table %s: %w", table, err)
		}
	}

	if err := mgr.seedCatalog(ctx, tx, year); err != nil {
		return err
	}
	if err := mgr.seedCrews(ctx, tx, year); err != nil {
		return err
	}
	if err := mgr.seedFactors(ctx, tx); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit seed data: %w", err)
	}
	return nil
}

func (mgr *StoreManagerImpl) seedCatalog(ctx context.Context, tx *sql.Tx, year int) error {
	itineraries := []schema.Itinerary{
		{
			ID: 1, Code: "12-1", Difficulty: schema.Challenging, DistanceMiles: 52,
			MinAltitude: 6700, MaxAltitude: 9800, ElevationGain: 900,
			CoversSouth: true, ClimbsTooth: true, ClimbsInspiration: true, Year: year,
		},
		{
			ID: 2, Code: "18-4", Difficulty: schema.Strenuous, DistanceMiles: 68,
			MinAltitude: 6500, MaxAltitude: 12441, ElevationGain: 1400,
			CoversNorth: true, ClimbsBaldy: true, Year: year,
		},
		{
			ID: 3, Code: "22-7", Difficulty: schema.SuperStrenuous, DistanceMiles: 84,
			MinAltitude: 6500, MaxAltitude: 12441, ElevationGain: 1800,
			CoversNorth: true, CoversValleVidal: true, ClimbsBaldy: true, ClimbsOther: true, Year: year,
		},
		{
			ID: 4, Code: "14-2", Difficulty: schema.Rugged, DistanceMiles: 57,
			MinAltitude: 6700, MaxAltitude: 11742, ElevationGain: 1100,
			CoversCentral: true, ClimbsPhillips: true, ClimbsTrailPeak: true, Year: year,
		},
	}
	itineraryQuery := rebind(fmt.Sprintf(`INSERT INTO %s (%s)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`, itinerariesTable, itineraryColumns), mgr.backend)
	for _, it := range itineraries {
		if _, err := tx.ExecContext(ctx, itineraryQuery,
			it.ID, it.Code, string(it.Difficulty), it.DistanceMiles, it.MinAltitude, it.MaxAltitude, it.ElevationGain,
			it.CoversSouth, it.CoversCentral, it.CoversNorth, it.CoversValleVidal,
			it.ClimbsBaldy, it.ClimbsPhillips, it.ClimbsTooth, it.ClimbsInspiration, it.ClimbsTrailPeak, it.ClimbsOther,
			it.Year); err != nil {
			return fmt.Errorf("failed to seed itinerary %s: %w", it.Code, err)
		}
	}

	camps := []schema.Camp{
		{ID: 1, Name: "Crater Lake", Elevation: 8400, Region: schema.SouthRegion, IsStaffed: true, HasCommissary: true},
		{ID: 2, Name: "Baldy Town", Elevation: 10050, Region: schema.NorthRegion, IsStaffed: true, HasCommissary: true, HasTradingPost: true},
		{ID: 3, Name: "Lower Bonito", Elevation: 7500, Region: schema.SouthRegion, IsTrailCamp: true, IsDryCamp: true},
		{ID: 4, Name: "Clear Creek", Elevation: 10400, Region: schema.CentralRegion, IsStaffed: true},
	}
	campQuery := rebind(fmt.Sprintf(`INSERT INTO %s (id, camp_name, elevation, region,
		is_staffed, is_trail_camp, is_dry_camp, has_commissary, has_trading_post)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`, campsTable), mgr.backend)
	for _, camp := range camps {
		if _, err := tx.ExecContext(ctx, campQuery,
			camp.ID, camp.Name, camp.Elevation, string(camp.Region),
			camp.IsStaffed, camp.IsTrailCamp, camp.IsDryCamp, camp.HasCommissary, camp.HasTradingPost); err != nil {
			return fmt.Errorf("failed to seed camp %s: %w", camp.Name, err)
		}
	}

	programs := []schema.Program{
		{ID: 1, Code: "CLIMB", Category: "outdoor", Name: "Rock Climbing"},
		{ID: 2, Code: "BLKPWDR", Category: "shooting", Name: "Black Powder Rifle"},
		{ID: 3, Code: "POLE", Category: "homestead", Name: "Spar Pole Climbing"},
		{ID: 4, Code: "GOLD", Category: "homestead", Name: "Gold Panning"},
		{ID: 5, Code: "COPE", Category: "challenge", Name: "Challenge Course"},
	}
	programQuery := rebind(fmt.Sprintf(`INSERT INTO %s (id, code, category, program_name)
		VALUES (?, ?, ?, ?)`, programsTable), mgr.backend)
	for _, program := range programs {
		if _, err := tx.ExecContext(ctx, programQuery,
			program.ID, program.Code, program.Category, program.Name); err != nil {
			return fmt.Errorf("failed to seed program %s: %w", program.Name, err)
		}
	}

	stops := []schema.ItineraryCamp{
		{ItineraryID: 1, CampID: 1, DayNumber: 2, Year: year},
		{ItineraryID: 1, CampID: 3, DayNumber: 4, Year: year},
		{ItineraryID: 2, CampID: 2, DayNumber: 5, Year: year},
		{ItineraryID: 3, CampID: 2, DayNumber: 7, Year: year},
		{ItineraryID: 4, CampID: 4, DayNumber: 3, Year: year},
	}
	stopQuery := rebind(fmt.Sprintf(`INSERT INTO %s (itinerary_id, camp_id, day_number, trek_year)
		VALUES (?, ?, ?, ?)`, itineraryCampsTable), mgr.backend)
	for _, stop := range stops {
		if _, err := tx.ExecContext(ctx, stopQuery, stop.ItineraryID, stop.CampID, stop.DayNumber, stop.Year); err != nil {
			return fmt.Errorf("failed to seed itinerary camp: %w", err)
		}
	}

	availability := []schema.ItineraryProgram{
		{ItineraryID: 1, ProgramID: 1, IsAvailable: true, Year: year},
		{ItineraryID: 1, ProgramID: 5, IsAvailable: true, Year: year},
		{ItineraryID: 2, ProgramID: 2, IsAvailable: true, Year: year},
		{ItineraryID: 2, ProgramID: 4, IsAvailable: true, Year: year},
		{ItineraryID: 3, ProgramID: 2, IsAvailable: true, Year: year},
		{ItineraryID: 4, ProgramID: 3, IsAvailable: true, Year: year},
		{ItineraryID: 4, ProgramID: 1, IsAvailable: false, Year: year},
	}
	availQuery := rebind(fmt.Sprintf(`INSERT INTO %s (itinerary_id, program_id, is_available, trek_year)
		VALUES (?, ?, ?, ?)`, itineraryProgramsTable), mgr.backend)
	for _, ip := range availability {
		if _, err := tx.ExecContext(ctx, availQuery, ip.ItineraryID, ip.ProgramID, ip.IsAvailable, ip.Year); err != nil {
			return fmt.Errorf("failed to seed itinerary program: %w", err)
		}
	}

	campPrograms := []schema.CampProgram{
		{CampID: 1, ProgramID: 1, IsAvailable: true, Year: year},
		{CampID: 2, ProgramID: 4, IsAvailable: true, Year: year},
		{CampID: 4, ProgramID: 5, IsAvailable: true, Year: year},
	}
	campProgramQuery := rebind(fmt.Sprintf(`INSERT INTO %s (camp_id, program_id, is_available, trek_year)
		VALUES (?, ?, ?, ?)`, campProgramsTable), mgr.backend)
	for _, cp := range campPrograms {
		if _, err := tx.ExecContext(ctx, campProgramQuery, cp.CampID, cp.ProgramID, cp.IsAvailable, cp.Year); err != nil {
			return fmt.Errorf("failed to seed camp program: %w", err)
		}
	}

	return nil
}

func (mgr *StoreManagerImpl) seedCrews(ctx context.Context, tx *sql.Tx, year int) error {
	crews := []schema.Crew{
		{ID: 1, Name: "Troop 1", Size: 3},
		{ID: 2, Name: "Venture 42", Size: 2},
	}
	crewQuery := rebind(fmt.Sprintf(`INSERT INTO %s (id, crew_name, crew_size) VALUES (?, ?, ?)`, crewsTable), mgr.backend)
	for _, crew := range crews {
		if _, err := tx.ExecContext(ctx, crewQuery, crew.ID, crew.Name, crew.Size); err != nil {
			return fmt.Errorf("failed to seed crew %s: %w", crew.Name, err)
		}
	}

	members := []schema.CrewMember{
		{ID: 1, CrewID: 1, MemberNumber: 1, Name: "Avery", SkillLevel: 2},
		{ID: 2, CrewID: 1, MemberNumber: 2, Name: "Blake", SkillLevel: 3},
		{ID: 3, CrewID: 1, MemberNumber: 3, Name: "Casey", SkillLevel: 1},
		{ID: 4, CrewID: 2, MemberNumber: 1, Name: "Drew", SkillLevel: 4},
		{ID: 5, CrewID: 2, MemberNumber: 2, Name: "Emery", SkillLevel: 3},
	}
	memberQuery := rebind(fmt.Sprintf(`INSERT INTO %s (id, crew_id, member_number, member_name, skill_level)
		VALUES (?, ?, ?, ?, ?)`, crewMembersTable), mgr.backend)
	for _, m := range members {
		if _, err := tx.ExecContext(ctx, memberQuery, m.ID, m.CrewID, m.MemberNumber, m.Name, m.SkillLevel); err != nil {
			return fmt.Errorf("failed to seed member %s: %w", m.Name, err)
		}
	}

	// Member 3 has not submitted a survey, so seeded listings show both
	// survey states.
	ratings := []schema.ProgramRating{
		{MemberID: 1, ProgramID: 1, Year: year, Score: 18},
		{MemberID: 1, ProgramID: 2, Year: year, Score: 9},
		{MemberID: 2, ProgramID: 1, Year: year, Score: 14},
		{MemberID: 2, ProgramID: 5, Year: year, Score: 11},
		{MemberID: 4, ProgramID: 2, Year: year, Score: 20},
		{MemberID: 5, ProgramID: 2, Year: year, Score: 16},
		{MemberID: 5, ProgramID: 4, Year: year, Score: 7},
	}
	ratingQuery := rebind(fmt.Sprintf(`INSERT INTO %s (member_id, program_id, trek_year, score)
		VALUES (?, ?, ?, ?)`, programRatingsTable), mgr.backend)
	for _, r := range ratings {
		if _, err := tx.ExecContext(ctx, ratingQuery, r.MemberID, r.ProgramID, r.Year, r.Score); err != nil {
			return fmt.Errorf("failed to seed rating: %w", err)
		}
	}

	// Crew 1 gets a stored preference record; crew 2 exercises the
	// default-preferences path.
	prefs := schema.DefaultPreferences(1, year)
	prefs.AreaImportant = true
	prefs.AreaRankSouth = 1
	prefs.AreaRankNorth = 2
	prefs.MaxAltitudeImportant = true
	prefs.ClimbBaldy = true
	prefs.ClimbTooth = true
	prefs.ProgramsImportant = true
	prefs.DifficultySuperStrenuous = false
	if err := insertPreferences(ctx, tx, mgr.backend, &prefs); err != nil {
		return err
	}

	return nil
}

// insertPreferences writes one active preference row.
func insertPreferences(ctx context.Context, tx *sql.Tx, backend schema.DatabaseBackend, p *schema.CrewPreferences) error {
	query := rebind(fmt.Sprintf(`INSERT INTO %s (crew_id, trek_year, is_active,
		area_important, area_rank_south, area_rank_central, area_rank_north, area_rank_valle_vidal,
		max_altitude_important, max_altitude_threshold, elevation_gain_important, elevation_gain_threshold,
		difficulty_challenging, difficulty_rugged, difficulty_strenuous, difficulty_super_strenuous,
		climb_baldy, climb_phillips, climb_tooth, climb_inspiration, climb_trail_peak, climb_other,
		programs_important)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`, preferencesTable), backend)
	if _, err := tx.ExecContext(ctx, query,
		p.CrewID, p.Year, true,
		p.AreaImportant, p.AreaRankSouth, p.AreaRankCentral, p.AreaRankNorth, p.AreaRankValleVidal,
		p.MaxAltitudeImportant, p.MaxAltitudeThreshold, p.ElevationGainImportant, p.ElevationGainThreshold,
		p.DifficultyChallenging, p.DifficultyRugged, p.DifficultyStrenuous, p.DifficultySuperStrenuous,
		p.ClimbBaldy, p.ClimbPhillips, p.ClimbTooth, p.ClimbInspiration, p.ClimbTrailPeak, p.ClimbOther,
		p.ProgramsImportant); err != nil {
		return fmt.Errorf("failed to seed preferences for crew %d: %w", p.CrewID, err)
	}
	return nil
}

func (mgr *StoreManagerImpl) seedFactors(ctx context.Context, tx *sql.Tx) error {
	query := rebind(fmt.Sprintf(`INSERT INTO %s (code, base_value, multiplier, is_active)
		VALUES (?, ?, ?, ?)`, scoringFactorsTable), mgr.backend)
	for _, code := range schema.AllFactorCodes {
		factor := schema.GetDefaultFactors()[code]
		if _, err := tx.ExecContext(ctx, query,
			string(factor.Code), factor.BaseValue, factor.Multiplier, factor.IsActive); err != nil {
			return fmt.Errorf("failed to seed scoring factor %s: %w", code, err)
		}
	}
	return nil
}
