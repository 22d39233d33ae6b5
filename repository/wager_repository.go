package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"propbook/database"
	"propbook/domain/entities"
)

// WagerRepository implements wager data access
type WagerRepository struct {
	q queryable
}

// NewWagerRepository creates a new wager repository
func NewWagerRepository(db *database.DB) *WagerRepository {
	return &WagerRepository{q: db.Pool}
}

// newWagerRepositoryWithTx creates a new wager repository with a transaction
func newWagerRepositoryWithTx(tx queryable) *WagerRepository {
	return &WagerRepository{q: tx}
}

const wagerColumns = `id, user_id, prop_id, sportsbook_id, side, amount, odds,
	status, profit, payout, placed_at, settled_at`

// Create creates a new pending wager and fills in the generated fields
func (r *WagerRepository) Create(ctx context.Context, wager *entities.Wager) error {
	query := `
		INSERT INTO wagers (user_id, prop_id, sportsbook_id, side, amount, odds)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, status, placed_at
	`

	err := r.q.QueryRow(ctx, query,
		wager.UserID,
		wager.PropID,
		wager.SportsbookID,
		wager.Side,
		wager.Amount,
		wager.Odds,
	).Scan(&wager.ID, &wager.Status, &wager.PlacedAt)

	if err != nil {
		return fmt.Errorf("failed to create wager: %w", err)
	}

	return nil
}

// GetByID retrieves a wager by its ID
func (r *WagerRepository) GetByID(ctx context.Context, id int64) (*entities.Wager, error) {
	query := `SELECT ` + wagerColumns + ` FROM wagers WHERE id = $1`

	wager, err := scanWager(r.q.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get wager %d: %w", id, err)
	}

	return wager, nil
}

// GetPendingByGame returns still-pending wagers on a game's props, joined
// with the prop and the player name the prop was written against
func (r *WagerRepository) GetPendingByGame(ctx context.Context, gameID int64) ([]*entities.WagerDetail, error) {
	query := `
		SELECT w.id, w.user_id, w.prop_id, w.sportsbook_id, w.side, w.amount, w.odds,
			w.status, w.profit, w.payout, w.placed_at, w.settled_at,
			p.id, p.game_id, p.player_id, p.prop_type, p.line, p.source, p.created_at,
			pl.name
		FROM wagers w
		JOIN player_props p ON p.id = w.prop_id
		JOIN players pl ON pl.id = p.player_id
		WHERE p.game_id = $1
		  AND w.status = 'pending'
		ORDER BY w.id
	`

	rows, err := r.q.Query(ctx, query, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to get pending wagers for game %d: %w", gameID, err)
	}
	defer rows.Close()

	var details []*entities.WagerDetail
	for rows.Next() {
		var detail entities.WagerDetail
		var prop entities.PlayerProp
		err := rows.Scan(
			&detail.ID, &detail.UserID, &detail.PropID, &detail.SportsbookID,
			&detail.Side, &detail.Amount, &detail.Odds,
			&detail.Status, &detail.Profit, &detail.Payout,
			&detail.PlacedAt, &detail.SettledAt,
			&prop.ID, &prop.GameID, &prop.PlayerID, &prop.PropType,
			&prop.Line, &prop.Source, &prop.CreatedAt,
			&detail.PlayerName,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan pending wager: %w", err)
		}
		detail.Prop = &prop
		details = append(details, &detail)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate pending wagers: %w", err)
	}

	return details, nil
}

// Settle transitions a pending wager to a terminal status. The status guard
// leaves an already-settled wager untouched.
func (r *WagerRepository) Settle(ctx context.Context, wagerID int64, status entities.WagerStatus, profit, payout float64, settledAt time.Time) error {
	query := `
		UPDATE wagers
		SET status = $2, profit = $3, payout = $4, settled_at = $5
		WHERE id = $1 AND status = 'pending'
	`

	_, err := r.q.Exec(ctx, query, wagerID, status, profit, payout, settledAt)
	if err != nil {
		return fmt.Errorf("failed to settle wager %d: %w", wagerID, err)
	}

	return nil
}

// GetByUser returns a user's wagers, newest first
func (r *WagerRepository) GetByUser(ctx context.Context, userID int64, limit int) ([]*entities.Wager, error) {
	query := `
		SELECT ` + wagerColumns + `
		FROM wagers
		WHERE user_id = $1
		ORDER BY placed_at DESC
		LIMIT $2
	`

	rows, err := r.q.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get wagers for user %d: %w", userID, err)
	}
	defer rows.Close()

	var wagers []*entities.Wager
	for rows.Next() {
		var wager entities.Wager
		err := rows.Scan(
			&wager.ID, &wager.UserID, &wager.PropID, &wager.SportsbookID,
			&wager.Side, &wager.Amount, &wager.Odds,
			&wager.Status, &wager.Profit, &wager.Payout,
			&wager.PlacedAt, &wager.SettledAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan wager: %w", err)
		}
		wagers = append(wagers, &wager)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate wagers: %w", err)
	}

	return wagers, nil
}

// GetStats returns aggregate betting statistics for a user
func (r *WagerRepository) GetStats(ctx context.Context, userID int64) (*entities.BettingStats, error) {
	query := `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE status = 'won'),
			COUNT(*) FILTER (WHERE status = 'lost'),
			COUNT(*) FILTER (WHERE status = 'push'),
			COUNT(*) FILTER (WHERE status = 'pending'),
			COALESCE(SUM(profit) FILTER (WHERE status != 'pending'), 0)
		FROM wagers
		WHERE user_id = $1
	`

	var stats entities.BettingStats
	err := r.q.QueryRow(ctx, query, userID).Scan(
		&stats.TotalWagers,
		&stats.WonWagers,
		&stats.LostWagers,
		&stats.PushWagers,
		&stats.PendingWagers,
		&stats.TotalProfit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get stats for user %d: %w", userID, err)
	}

	return &stats, nil
}

func scanWager(row pgx.Row) (*entities.Wager, error) {
	var wager entities.Wager
	err := row.Scan(
		&wager.ID, &wager.UserID, &wager.PropID, &wager.SportsbookID,
		&wager.Side, &wager.Amount, &wager.Odds,
		&wager.Status, &wager.Profit, &wager.Payout,
		&wager.PlacedAt, &wager.SettledAt,
	)
	if err != nil {
		return nil, err
	}
	return &wager, nil
}
