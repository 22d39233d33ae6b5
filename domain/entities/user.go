package entities

import (
	"errors"
	"time"
)

// User represents a bettor with a mutable balance ledger. The balance is only
// ever mutated inside a transaction that also mutates the wager it
// corresponds to.
type User struct {
	ID              int64     `db:"id"`
	Username        string    `db:"username"`
	Email           string    `db:"email"`
	PasswordHash    string    `db:"password_hash"`
	Balance         float64   `db:"balance"`
	StartingBalance float64   `db:"starting_balance"`
	CreatedAt       time.Time `db:"created_at"`
}

// CanAfford checks if the user has sufficient balance for an amount
func (u *User) CanAfford(amount float64) bool {
	return u.Balance >= amount
}

// ValidateStake checks if a stake is valid (positive and affordable)
func (u *User) ValidateStake(amount float64) error {
	if amount <= 0 {
		return errors.New("stake must be positive")
	}
	if !u.CanAfford(amount) {
		return errors.New("insufficient balance")
	}
	return nil
}

// NetProfit returns the user's lifetime profit relative to their starting balance
func (u *User) NetProfit() float64 {
	return u.Balance - u.StartingBalance
}
