package entities

import (
	"errors"
	"fmt"
)

// Sentinel errors for per-item failures. Batch drivers match on these to
// decide drop-and-continue versus defer-to-next-run.
var (
	// ErrPlayerNotInGame means the resolved mapping's team is neither the
	// home nor the away team; the prop must be dropped, not misattached.
	ErrPlayerNotInGame = errors.New("player is not on either team in this game")

	// ErrPlayerNotFound means no active roster mapping matched the name
	ErrPlayerNotFound = errors.New("player not found in roster database")

	// ErrStatsUnavailable means the box score is missing or the game is not
	// final; the whole game defers to the next settlement run.
	ErrStatsUnavailable = errors.New("game statistics unavailable")

	// ErrInsufficientBalance is a user-facing placement validation failure
	ErrInsufficientBalance = errors.New("insufficient balance")

	// ErrInvalidWagerInput is a user-facing placement validation failure
	ErrInvalidWagerInput = errors.New("invalid wager input")
)

// UpstreamError is a non-2xx response from an external provider. Never
// retried inline; the next scheduled run retries.
type UpstreamError struct {
	Provider   string
	StatusCode int
	Body       string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s API error: status %d: %s", e.Provider, e.StatusCode, e.Body)
}
