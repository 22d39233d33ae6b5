package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"propbook/database"
	"propbook/domain/entities"
)

// PlayerRepository implements player data access
type PlayerRepository struct {
	q queryable
}

// NewPlayerRepository creates a new player repository
func NewPlayerRepository(db *database.DB) *PlayerRepository {
	return &PlayerRepository{q: db.Pool}
}

// newPlayerRepositoryWithTx creates a new player repository with a transaction
func newPlayerRepositoryWithTx(tx queryable) *PlayerRepository {
	return &PlayerRepository{q: tx}
}

// Upsert finds or creates a player by (name, teamID). Every sighting
// refreshes the position and re-activates the row.
func (r *PlayerRepository) Upsert(ctx context.Context, name, position string, teamID int64) (*entities.Player, error) {
	if position == "" {
		position = "UNKNOWN"
	}

	query := `
		INSERT INTO players (name, position, team_id, active)
		VALUES ($1, $2, $3, TRUE)
		ON CONFLICT (name, team_id) DO UPDATE SET
			position = EXCLUDED.position,
			active = TRUE
		RETURNING id, name, position, team_id, active, created_at
	`

	var player entities.Player
	err := r.q.QueryRow(ctx, query, name, position, teamID).Scan(
		&player.ID,
		&player.Name,
		&player.Position,
		&player.TeamID,
		&player.Active,
		&player.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert player %q on team %d: %w", name, teamID, err)
	}

	return &player, nil
}

// GetByID retrieves a player by its ID
func (r *PlayerRepository) GetByID(ctx context.Context, id int64) (*entities.Player, error) {
	query := `
		SELECT id, name, position, team_id, active, created_at
		FROM players
		WHERE id = $1
	`

	var player entities.Player
	err := r.q.QueryRow(ctx, query, id).Scan(
		&player.ID,
		&player.Name,
		&player.Position,
		&player.TeamID,
		&player.Active,
		&player.CreatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get player %d: %w", id, err)
	}

	return &player, nil
}

// DeactivateMissing clears the active flag on a team's players that are
// absent from the given name list
func (r *PlayerRepository) DeactivateMissing(ctx context.Context, teamID int64, activeNames []string) error {
	query := `
		UPDATE players
		SET active = FALSE
		WHERE team_id = $1
		  AND active
		  AND NOT (name = ANY($2))
	`

	_, err := r.q.Exec(ctx, query, teamID, activeNames)
	if err != nil {
		return fmt.Errorf("failed to deactivate missing players for team %d: %w", teamID, err)
	}

	return nil
}
