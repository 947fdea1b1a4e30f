package iostore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/huangsam/trekrank/internal/contract"
	"github.com/huangsam/trekrank/schema"
)

// PreferenceStoreImpl implements the PreferenceStore interface.
type PreferenceStoreImpl struct {
	db      *sql.DB
	backend schema.DatabaseBackend
}

var _ contract.PreferenceStore = &PreferenceStoreImpl{} // Compile-time check

// GetCrew looks up a crew by id.
func (ps *PreferenceStoreImpl) GetCrew(ctx context.Context, crewID int64) (*schema.Crew, error) {
	query := fmt.Sprintf("SELECT id, crew_name, crew_size FROM %s WHERE id = ?", crewsTable)
	row := ps.db.QueryRowContext(ctx, rebind(query, ps.backend), crewID)

	var crew schema.Crew
	err := row.Scan(&crew.ID, &crew.Name, &crew.Size)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &contract.NotFoundError{Kind: "crew", ID: crewID}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan crew: %w", err)
	}
	return &crew, nil
}

// ListCrews returns all crews ordered by name.
func (ps *PreferenceStoreImpl) ListCrews(ctx context.Context) ([]schema.Crew, error) {
	query := fmt.Sprintf("SELECT id, crew_name, crew_size FROM %s ORDER BY crew_name", crewsTable)
	rows, err := ps.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query crews: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var crews []schema.Crew
	for rows.Next() {
		var crew schema.Crew
		if err := rows.Scan(&crew.ID, &crew.Name, &crew.Size); err != nil {
			return nil, fmt.Errorf("failed to scan crew: %w", err)
		}
		crews = append(crews, crew)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating crews: %w", err)
	}
	return crews, nil
}

// ListMembers returns a crew's members ordered by member number. The
// survey status reflects whether the member submitted any rating for the
// year.
func (ps *PreferenceStoreImpl) ListMembers(ctx context.Context, crewID int64, year int) ([]schema.CrewMember, error) {
	query := fmt.Sprintf(`SELECT m.id, m.crew_id, m.member_number, m.member_name, m.skill_level,
		EXISTS (SELECT 1 FROM %s r WHERE r.member_id = m.id AND r.trek_year = ?)
		FROM %s m WHERE m.crew_id = ? ORDER BY m.member_number`, programRatingsTable, crewMembersTable)
	rows, err := ps.db.QueryContext(ctx, rebind(query, ps.backend), year, crewID)
	if err != nil {
		return nil, fmt.Errorf("failed to query crew members: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var members []schema.CrewMember
	for rows.Next() {
		var m schema.CrewMember
		if err := rows.Scan(&m.ID, &m.CrewID, &m.MemberNumber, &m.Name, &m.SkillLevel, &m.SurveyDone); err != nil {
			return nil, fmt.Errorf("failed to scan crew member: %w", err)
		}
		members = append(members, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating crew members: %w", err)
	}
	return members, nil
}

// GetPreferences returns the crew's active preference record for the
// year, or nil when none exists.
func (ps *PreferenceStoreImpl) GetPreferences(ctx context.Context, crewID int64, year int) (*schema.CrewPreferences, error) {
	query := fmt.Sprintf(`SELECT crew_id, trek_year,
		area_important, area_rank_south, area_rank_central, area_rank_north, area_rank_valle_vidal,
		max_altitude_important, max_altitude_threshold, elevation_gain_important, elevation_gain_threshold,
		difficulty_challenging, difficulty_rugged, difficulty_strenuous, difficulty_super_strenuous,
		climb_baldy, climb_phillips, climb_tooth, climb_inspiration, climb_trail_peak, climb_other,
		programs_important
		FROM %s WHERE crew_id = ? AND trek_year = ? AND is_active = ?`, preferencesTable)
	row := ps.db.QueryRowContext(ctx, rebind(query, ps.backend), crewID, year, true)

	var p schema.CrewPreferences
	err := row.Scan(&p.CrewID, &p.Year,
		&p.AreaImportant, &p.AreaRankSouth, &p.AreaRankCentral, &p.AreaRankNorth, &p.AreaRankValleVidal,
		&p.MaxAltitudeImportant, &p.MaxAltitudeThreshold, &p.ElevationGainImportant, &p.ElevationGainThreshold,
		&p.DifficultyChallenging, &p.DifficultyRugged, &p.DifficultyStrenuous, &p.DifficultySuperStrenuous,
		&p.ClimbBaldy, &p.ClimbPhillips, &p.ClimbTooth, &p.ClimbInspiration, &p.ClimbTrailPeak, &p.ClimbOther,
		&p.ProgramsImportant)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan crew preferences: %w", err)
	}
	return &p, nil
}

// GetRatings returns every member rating for the crew and year.
func (ps *PreferenceStoreImpl) GetRatings(ctx context.Context, crewID int64, year int) ([]schema.ProgramRating, error) {
	query := fmt.Sprintf(`SELECT r.member_id, r.program_id, r.trek_year, r.score
		FROM %s r JOIN %s m ON m.id = r.member_id
		WHERE m.crew_id = ? AND r.trek_year = ?
		ORDER BY r.member_id, r.program_id`, programRatingsTable, crewMembersTable)
	rows, err := ps.db.QueryContext(ctx, rebind(query, ps.backend), crewID, year)
	if err != nil {
		return nil, fmt.Errorf("failed to query ratings: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var ratings []schema.ProgramRating
	for rows.Next() {
		var r schema.ProgramRating
		if err := rows.Scan(&r.MemberID, &r.ProgramID, &r.Year, &r.Score); err != nil {
			return nil, fmt.Errorf("failed to scan rating: %w", err)
		}
		ratings = append(ratings, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating ratings: %w", err)
	}
	return ratings, nil
}

// GetScoringFactors returns all stored scoring factor rows. An empty
// table is fine; the engine falls back to compiled defaults per factor.
func (ps *PreferenceStoreImpl) GetScoringFactors(ctx context.Context) ([]schema.ScoringFactor, error) {
	query := fmt.Sprintf("SELECT code, base_value, multiplier, is_active FROM %s ORDER BY code", scoringFactorsTable)
	rows, err := ps.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query scoring factors: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var factors []schema.ScoringFactor
	for rows.Next() {
		var f schema.ScoringFactor
		if err := rows.Scan(&f.Code, &f.BaseValue, &f.Multiplier, &f.IsActive); err != nil {
			return nil, fmt.Errorf("failed to scan scoring factor: %w", err)
		}
		factors = append(factors, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating scoring factors: %w", err)
	}
	return factors, nil
}

// Close closes the underlying connection.
func (ps *PreferenceStoreImpl) Close() error {
	if ps.db != nil {
		return ps.db.Close()
	}
	return nil
}
