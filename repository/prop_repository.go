package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"propbook/database"
	"propbook/domain/entities"
)

// PropRepository implements player prop and odds snapshot data access
type PropRepository struct {
	q queryable
}

// NewPropRepository creates a new prop repository
func NewPropRepository(db *database.DB) *PropRepository {
	return &PropRepository{q: db.Pool}
}

// newPropRepositoryWithTx creates a new prop repository with a transaction
func newPropRepositoryWithTx(tx queryable) *PropRepository {
	return &PropRepository{q: tx}
}

const propColumns = `id, game_id, player_id, prop_type, line, source, created_at`

// Upsert finds or creates a prop by its exact identity tuple. A line move
// produces a new row; existing rows are never edited, so wagers placed
// against the old line keep their terms.
func (r *PropRepository) Upsert(ctx context.Context, gameID, playerID int64, propType string, line *float64, source string) (*entities.PlayerProp, error) {
	insertQuery := `
		INSERT INTO player_props (game_id, player_id, prop_type, line, source)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (game_id, player_id, prop_type, line, source) DO NOTHING
		RETURNING ` + propColumns

	prop, err := scanProp(r.q.QueryRow(ctx, insertQuery, gameID, playerID, propType, line, source))
	if err == nil {
		return prop, nil
	}
	if err != pgx.ErrNoRows {
		return nil, fmt.Errorf("failed to upsert prop: %w", err)
	}

	// Conflict path: the tuple already exists, fetch it
	selectQuery := `
		SELECT ` + propColumns + `
		FROM player_props
		WHERE game_id = $1
		  AND player_id = $2
		  AND prop_type = $3
		  AND line IS NOT DISTINCT FROM $4
		  AND source = $5
	`

	prop, err = scanProp(r.q.QueryRow(ctx, selectQuery, gameID, playerID, propType, line, source))
	if err != nil {
		return nil, fmt.Errorf("failed to get existing prop: %w", err)
	}

	return prop, nil
}

// GetByID retrieves a prop by its ID
func (r *PropRepository) GetByID(ctx context.Context, id int64) (*entities.PlayerProp, error) {
	query := `SELECT ` + propColumns + ` FROM player_props WHERE id = $1`

	prop, err := scanProp(r.q.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get prop %d: %w", id, err)
	}

	return prop, nil
}

// GetByGame returns all props for a game
func (r *PropRepository) GetByGame(ctx context.Context, gameID int64) ([]*entities.PlayerProp, error) {
	query := `
		SELECT ` + propColumns + `
		FROM player_props
		WHERE game_id = $1
		ORDER BY player_id, prop_type
	`

	rows, err := r.q.Query(ctx, query, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to get props for game %d: %w", gameID, err)
	}
	defer rows.Close()

	var props []*entities.PlayerProp
	for rows.Next() {
		var prop entities.PlayerProp
		err := rows.Scan(
			&prop.ID,
			&prop.GameID,
			&prop.PlayerID,
			&prop.PropType,
			&prop.Line,
			&prop.Source,
			&prop.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan prop: %w", err)
		}
		props = append(props, &prop)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate props: %w", err)
	}

	return props, nil
}

// AppendOdds always inserts a new snapshot row, never updates
func (r *PropRepository) AppendOdds(ctx context.Context, odds *entities.PropOdds) error {
	query := `
		INSERT INTO prop_odds (prop_id, sportsbook_id, source, over_odds, under_odds, outcome_type, single_odds)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, fetched_at
	`

	err := r.q.QueryRow(ctx, query,
		odds.PropID,
		odds.SportsbookID,
		odds.Source,
		odds.OverOdds,
		odds.UnderOdds,
		odds.OutcomeType,
		odds.SingleOdds,
	).Scan(&odds.ID, &odds.FetchedAt)

	if err != nil {
		return fmt.Errorf("failed to append odds for prop %d: %w", odds.PropID, err)
	}

	return nil
}

// GetLatestOdds returns the most recent snapshot per sportsbook for a prop
func (r *PropRepository) GetLatestOdds(ctx context.Context, propID int64) ([]*entities.PropOdds, error) {
	query := `
		SELECT DISTINCT ON (sportsbook_id)
			id, prop_id, sportsbook_id, source, over_odds, under_odds, outcome_type, single_odds, fetched_at
		FROM prop_odds
		WHERE prop_id = $1
		ORDER BY sportsbook_id, fetched_at DESC
	`

	rows, err := r.q.Query(ctx, query, propID)
	if err != nil {
		return nil, fmt.Errorf("failed to get latest odds for prop %d: %w", propID, err)
	}
	defer rows.Close()

	var snapshots []*entities.PropOdds
	for rows.Next() {
		var odds entities.PropOdds
		err := rows.Scan(
			&odds.ID,
			&odds.PropID,
			&odds.SportsbookID,
			&odds.Source,
			&odds.OverOdds,
			&odds.UnderOdds,
			&odds.OutcomeType,
			&odds.SingleOdds,
			&odds.FetchedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan odds: %w", err)
		}
		snapshots = append(snapshots, &odds)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate odds: %w", err)
	}

	return snapshots, nil
}

// CountOdds returns the number of snapshot rows for a prop
func (r *PropRepository) CountOdds(ctx context.Context, propID int64) (int, error) {
	var count int
	err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM prop_odds WHERE prop_id = $1`, propID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count odds for prop %d: %w", propID, err)
	}
	return count, nil
}

func scanProp(row pgx.Row) (*entities.PlayerProp, error) {
	var prop entities.PlayerProp
	err := row.Scan(
		&prop.ID,
		&prop.GameID,
		&prop.PlayerID,
		&prop.PropType,
		&prop.Line,
		&prop.Source,
		&prop.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &prop, nil
}
