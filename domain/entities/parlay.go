package entities

import "time"

// Parlay aggregates two or more legs from distinct games. Combined odds are
// computed once at placement and stored; settlement never re-derives them.
type Parlay struct {
	ID           int64       `db:"id"`
	UserID       int64       `db:"user_id"`
	TotalAmount  float64     `db:"total_amount"`
	CombinedOdds int         `db:"combined_odds"`
	Status       WagerStatus `db:"status"`
	PlacedAt     time.Time   `db:"placed_at"`
}

// ParlayLeg references one prop at the odds quoted when the parlay was placed
type ParlayLeg struct {
	ID           int64     `db:"id"`
	ParlayID     int64     `db:"parlay_id"`
	PropID       int64     `db:"prop_id"`
	SportsbookID int64     `db:"sportsbook_id"`
	Side         WagerSide `db:"side"`
	Odds         int       `db:"odds"`
}

// ParlayLegInput is a leg as submitted at placement time. GameID is carried
// so the distinct-games rule can be checked before combination.
type ParlayLegInput struct {
	PropID       int64
	GameID       int64
	SportsbookID int64
	Side         WagerSide
	Odds         int
}
