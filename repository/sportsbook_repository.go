package repository

import (
	"context"
	"fmt"
	"strings"

	"propbook/database"
	"propbook/domain/entities"
)

// SportsbookRepository implements sportsbook data access
type SportsbookRepository struct {
	q queryable
}

// NewSportsbookRepository creates a new sportsbook repository
func NewSportsbookRepository(db *database.DB) *SportsbookRepository {
	return &SportsbookRepository{q: db.Pool}
}

// newSportsbookRepositoryWithTx creates a new sportsbook repository with a transaction
func newSportsbookRepositoryWithTx(tx queryable) *SportsbookRepository {
	return &SportsbookRepository{q: tx}
}

// GetOrCreate finds a sportsbook by name or creates it lazily. Re-sighting a
// book reactivates it.
func (r *SportsbookRepository) GetOrCreate(ctx context.Context, name string) (*entities.Sportsbook, error) {
	key := strings.ReplaceAll(strings.ToLower(name), " ", "_")

	query := `
		INSERT INTO sportsbooks (name, key, active)
		VALUES ($1, $2, TRUE)
		ON CONFLICT (name) DO UPDATE SET active = TRUE
		RETURNING id, name, key, active, created_at
	`

	var book entities.Sportsbook
	err := r.q.QueryRow(ctx, query, name, key).Scan(
		&book.ID,
		&book.Name,
		&book.Key,
		&book.Active,
		&book.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get or create sportsbook %q: %w", name, err)
	}

	return &book, nil
}

// GetAll returns all sportsbooks
func (r *SportsbookRepository) GetAll(ctx context.Context) ([]*entities.Sportsbook, error) {
	query := `
		SELECT id, name, key, active, created_at
		FROM sportsbooks
		ORDER BY name
	`

	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get sportsbooks: %w", err)
	}
	defer rows.Close()

	var books []*entities.Sportsbook
	for rows.Next() {
		var book entities.Sportsbook
		err := rows.Scan(
			&book.ID,
			&book.Name,
			&book.Key,
			&book.Active,
			&book.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan sportsbook: %w", err)
		}
		books = append(books, &book)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate sportsbooks: %w", err)
	}

	return books, nil
}
