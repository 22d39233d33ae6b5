package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"propbook/database"
	"propbook/domain/entities"
)

// ParlayRepository implements parlay data access
type ParlayRepository struct {
	q queryable
}

// NewParlayRepository creates a new parlay repository
func NewParlayRepository(db *database.DB) *ParlayRepository {
	return &ParlayRepository{q: db.Pool}
}

// newParlayRepositoryWithTx creates a new parlay repository with a transaction
func newParlayRepositoryWithTx(tx queryable) *ParlayRepository {
	return &ParlayRepository{q: tx}
}

// CreateWithLegs creates a parlay and its legs. Callers run this inside a
// unit of work so the parlay never persists without its legs.
func (r *ParlayRepository) CreateWithLegs(ctx context.Context, parlay *entities.Parlay, legs []*entities.ParlayLeg) error {
	parlayQuery := `
		INSERT INTO parlays (user_id, total_amount, combined_odds)
		VALUES ($1, $2, $3)
		RETURNING id, status, placed_at
	`

	err := r.q.QueryRow(ctx, parlayQuery,
		parlay.UserID,
		parlay.TotalAmount,
		parlay.CombinedOdds,
	).Scan(&parlay.ID, &parlay.Status, &parlay.PlacedAt)
	if err != nil {
		return fmt.Errorf("failed to create parlay: %w", err)
	}

	legQuery := `
		INSERT INTO parlay_legs (parlay_id, prop_id, sportsbook_id, side, odds)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	for _, leg := range legs {
		leg.ParlayID = parlay.ID
		err := r.q.QueryRow(ctx, legQuery,
			leg.ParlayID,
			leg.PropID,
			leg.SportsbookID,
			leg.Side,
			leg.Odds,
		).Scan(&leg.ID)
		if err != nil {
			return fmt.Errorf("failed to create parlay leg: %w", err)
		}
	}

	return nil
}

// GetByID retrieves a parlay by its ID
func (r *ParlayRepository) GetByID(ctx context.Context, id int64) (*entities.Parlay, error) {
	query := `
		SELECT id, user_id, total_amount, combined_odds, status, placed_at
		FROM parlays
		WHERE id = $1
	`

	var parlay entities.Parlay
	err := r.q.QueryRow(ctx, query, id).Scan(
		&parlay.ID,
		&parlay.UserID,
		&parlay.TotalAmount,
		&parlay.CombinedOdds,
		&parlay.Status,
		&parlay.PlacedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get parlay %d: %w", id, err)
	}

	return &parlay, nil
}

// GetLegs returns a parlay's legs
func (r *ParlayRepository) GetLegs(ctx context.Context, parlayID int64) ([]*entities.ParlayLeg, error) {
	query := `
		SELECT id, parlay_id, prop_id, sportsbook_id, side, odds
		FROM parlay_legs
		WHERE parlay_id = $1
		ORDER BY id
	`

	rows, err := r.q.Query(ctx, query, parlayID)
	if err != nil {
		return nil, fmt.Errorf("failed to get legs for parlay %d: %w", parlayID, err)
	}
	defer rows.Close()

	var legs []*entities.ParlayLeg
	for rows.Next() {
		var leg entities.ParlayLeg
		err := rows.Scan(
			&leg.ID,
			&leg.ParlayID,
			&leg.PropID,
			&leg.SportsbookID,
			&leg.Side,
			&leg.Odds,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan parlay leg: %w", err)
		}
		legs = append(legs, &leg)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate parlay legs: %w", err)
	}

	return legs, nil
}

// GetByUser returns a user's parlays, newest first
func (r *ParlayRepository) GetByUser(ctx context.Context, userID int64, limit int) ([]*entities.Parlay, error) {
	query := `
		SELECT id, user_id, total_amount, combined_odds, status, placed_at
		FROM parlays
		WHERE user_id = $1
		ORDER BY placed_at DESC
		LIMIT $2
	`

	rows, err := r.q.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get parlays for user %d: %w", userID, err)
	}
	defer rows.Close()

	var parlays []*entities.Parlay
	for rows.Next() {
		var parlay entities.Parlay
		err := rows.Scan(
			&parlay.ID,
			&parlay.UserID,
			&parlay.TotalAmount,
			&parlay.CombinedOdds,
			&parlay.Status,
			&parlay.PlacedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan parlay: %w", err)
		}
		parlays = append(parlays, &parlay)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate parlays: %w", err)
	}

	return parlays, nil
}
