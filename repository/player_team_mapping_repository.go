package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"propbook/database"
	"propbook/domain/entities"
)

// PlayerTeamMappingRepository implements roster identity data access
type PlayerTeamMappingRepository struct {
	q queryable
}

// NewPlayerTeamMappingRepository creates a new player team mapping repository
func NewPlayerTeamMappingRepository(db *database.DB) *PlayerTeamMappingRepository {
	return &PlayerTeamMappingRepository{q: db.Pool}
}

// newPlayerTeamMappingRepositoryWithTx creates a new player team mapping repository with a transaction
func newPlayerTeamMappingRepositoryWithTx(tx queryable) *PlayerTeamMappingRepository {
	return &PlayerTeamMappingRepository{q: tx}
}

// GetActiveByName retrieves the active mapping for an exact player name.
// A player mid-trade can briefly hold two active rows; the freshest wins.
func (r *PlayerTeamMappingRepository) GetActiveByName(ctx context.Context, playerName string) (*entities.PlayerTeamMapping, error) {
	query := `
		SELECT id, player_name, team_name, position, jersey_number, active, last_updated
		FROM player_team_mappings
		WHERE player_name = $1 AND active
		ORDER BY last_updated DESC
		LIMIT 1
	`

	var mapping entities.PlayerTeamMapping
	err := r.q.QueryRow(ctx, query, playerName).Scan(
		&mapping.ID,
		&mapping.PlayerName,
		&mapping.TeamName,
		&mapping.Position,
		&mapping.JerseyNumber,
		&mapping.Active,
		&mapping.LastUpdated,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get mapping for %q: %w", playerName, err)
	}

	return &mapping, nil
}

// GetAllActive returns every active mapping
func (r *PlayerTeamMappingRepository) GetAllActive(ctx context.Context) ([]*entities.PlayerTeamMapping, error) {
	query := `
		SELECT id, player_name, team_name, position, jersey_number, active, last_updated
		FROM player_team_mappings
		WHERE active
		ORDER BY player_name
	`

	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get active mappings: %w", err)
	}
	defer rows.Close()

	var mappings []*entities.PlayerTeamMapping
	for rows.Next() {
		var mapping entities.PlayerTeamMapping
		err := rows.Scan(
			&mapping.ID,
			&mapping.PlayerName,
			&mapping.TeamName,
			&mapping.Position,
			&mapping.JerseyNumber,
			&mapping.Active,
			&mapping.LastUpdated,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan mapping: %w", err)
		}
		mappings = append(mappings, &mapping)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate mappings: %w", err)
	}

	return mappings, nil
}

// Upsert creates or refreshes a mapping keyed on (playerName, teamName)
func (r *PlayerTeamMappingRepository) Upsert(ctx context.Context, mapping *entities.PlayerTeamMapping) error {
	query := `
		INSERT INTO player_team_mappings (player_name, team_name, position, jersey_number, active)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (player_name, team_name) DO UPDATE SET
			position = EXCLUDED.position,
			jersey_number = EXCLUDED.jersey_number,
			active = EXCLUDED.active,
			last_updated = NOW()
		RETURNING id, last_updated
	`

	err := r.q.QueryRow(ctx, query,
		mapping.PlayerName,
		mapping.TeamName,
		mapping.Position,
		mapping.JerseyNumber,
		mapping.Active,
	).Scan(&mapping.ID, &mapping.LastUpdated)

	if err != nil {
		return fmt.Errorf("failed to upsert mapping for %q on %q: %w", mapping.PlayerName, mapping.TeamName, err)
	}

	return nil
}

// DeactivateTeam flips every mapping for a team inactive ahead of a roster refresh
func (r *PlayerTeamMappingRepository) DeactivateTeam(ctx context.Context, teamName string) error {
	query := `
		UPDATE player_team_mappings
		SET active = FALSE, last_updated = NOW()
		WHERE team_name = $1 AND active
	`

	_, err := r.q.Exec(ctx, query, teamName)
	if err != nil {
		return fmt.Errorf("failed to deactivate mappings for team %q: %w", teamName, err)
	}

	return nil
}
