package entities

import "time"

// Player represents a player attached to a specific team. The same name on two
// different teams is two distinct players (trades, roster churn).
type Player struct {
	ID        int64     `db:"id"`
	Name      string    `db:"name"`
	Position  string    `db:"position"`
	TeamID    int64     `db:"team_id"`
	Active    bool      `db:"active"`
	CreatedAt time.Time `db:"created_at"`
}

// PlayerTeamMapping is the standing identity row the resolver queries before
// any prop is attached to a game. At most one active mapping exists per
// (playerName, teamName) pair; a roster refresh flips previous rows inactive
// before marking current ones active.
type PlayerTeamMapping struct {
	ID           int64     `db:"id"`
	PlayerName   string    `db:"player_name"`
	TeamName     string    `db:"team_name"`
	Position     string    `db:"position"`
	JerseyNumber *string   `db:"jersey_number"`
	Active       bool      `db:"active"`
	LastUpdated  time.Time `db:"last_updated"`
}
