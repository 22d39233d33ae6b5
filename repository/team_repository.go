package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"propbook/database"
	"propbook/domain/entities"
)

// TeamRepository implements team data access
type TeamRepository struct {
	q queryable
}

// NewTeamRepository creates a new team repository
func NewTeamRepository(db *database.DB) *TeamRepository {
	return &TeamRepository{q: db.Pool}
}

// newTeamRepositoryWithTx creates a new team repository with a transaction
func newTeamRepositoryWithTx(tx queryable) *TeamRepository {
	return &TeamRepository{q: tx}
}

// GetOrCreate finds a team by canonical name or creates it. An empty stored
// abbreviation is filled in when a later sighting carries one.
func (r *TeamRepository) GetOrCreate(ctx context.Context, name, abbreviation string) (*entities.Team, error) {
	query := `
		INSERT INTO teams (name, abbreviation)
		VALUES ($1, $2)
		ON CONFLICT (name) DO UPDATE SET
			abbreviation = COALESCE(NULLIF(teams.abbreviation, ''), EXCLUDED.abbreviation)
		RETURNING id, name, abbreviation, created_at
	`

	var team entities.Team
	err := r.q.QueryRow(ctx, query, name, abbreviation).Scan(
		&team.ID,
		&team.Name,
		&team.Abbreviation,
		&team.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get or create team %q: %w", name, err)
	}

	return &team, nil
}

// GetByID retrieves a team by its ID
func (r *TeamRepository) GetByID(ctx context.Context, id int64) (*entities.Team, error) {
	query := `
		SELECT id, name, abbreviation, created_at
		FROM teams
		WHERE id = $1
	`

	var team entities.Team
	err := r.q.QueryRow(ctx, query, id).Scan(
		&team.ID,
		&team.Name,
		&team.Abbreviation,
		&team.CreatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get team %d: %w", id, err)
	}

	return &team, nil
}

// GetByName retrieves a team by its canonical name
func (r *TeamRepository) GetByName(ctx context.Context, name string) (*entities.Team, error) {
	query := `
		SELECT id, name, abbreviation, created_at
		FROM teams
		WHERE name = $1
	`

	var team entities.Team
	err := r.q.QueryRow(ctx, query, name).Scan(
		&team.ID,
		&team.Name,
		&team.Abbreviation,
		&team.CreatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get team %q: %w", name, err)
	}

	return &team, nil
}
