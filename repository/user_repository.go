package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"propbook/database"
	"propbook/domain/entities"
)

// UserRepository implements user data access
type UserRepository struct {
	q queryable
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *database.DB) *UserRepository {
	return &UserRepository{q: db.Pool}
}

// newUserRepositoryWithTx creates a new user repository with a transaction
func newUserRepositoryWithTx(tx queryable) *UserRepository {
	return &UserRepository{q: tx}
}

const userColumns = `id, username, email, password_hash, balance, starting_balance, created_at`

// Create creates a new user funded with the starting balance
func (r *UserRepository) Create(ctx context.Context, username, email, passwordHash string, startingBalance float64) (*entities.User, error) {
	query := `
		INSERT INTO users (username, email, password_hash, balance, starting_balance)
		VALUES ($1, $2, $3, $4, $4)
		RETURNING ` + userColumns

	user, err := scanUser(r.q.QueryRow(ctx, query, username, email, passwordHash, startingBalance))
	if err != nil {
		return nil, fmt.Errorf("failed to create user %q: %w", username, err)
	}

	return user, nil
}

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*entities.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	user, err := scanUser(r.q.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user %d: %w", id, err)
	}

	return user, nil
}

// GetByUsername retrieves a user by username
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*entities.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE username = $1`

	user, err := scanUser(r.q.QueryRow(ctx, query, username))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user %q: %w", username, err)
	}

	return user, nil
}

// UpdateBalance sets a user's balance
func (r *UserRepository) UpdateBalance(ctx context.Context, userID int64, newBalance float64) error {
	query := `UPDATE users SET balance = $2 WHERE id = $1`

	result, err := r.q.Exec(ctx, query, userID, newBalance)
	if err != nil {
		return fmt.Errorf("failed to update balance for user %d: %w", userID, err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("user %d not found", userID)
	}

	return nil
}

// IncrementBalance atomically adds a delta to a user's balance. The delta is
// negative for stake debits, positive for settlement credits.
func (r *UserRepository) IncrementBalance(ctx context.Context, userID int64, delta float64) error {
	query := `UPDATE users SET balance = balance + $2 WHERE id = $1`

	result, err := r.q.Exec(ctx, query, userID, delta)
	if err != nil {
		return fmt.Errorf("failed to increment balance for user %d: %w", userID, err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("user %d not found", userID)
	}

	return nil
}

func scanUser(row pgx.Row) (*entities.User, error) {
	var user entities.User
	err := row.Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.PasswordHash,
		&user.Balance,
		&user.StartingBalance,
		&user.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &user, nil
}
