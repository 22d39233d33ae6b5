package entities

import "time"

// Game represents a single logical matchup. Two independent external
// identifier spaces exist: ExternalID from the odds aggregator,
// BookExternalID from the single-book feed. ResultsExternalID is resolved at
// settlement time.
type Game struct {
	ID                int64     `db:"id"`
	ExternalID        *string   `db:"external_id"`
	BookExternalID    *string   `db:"book_external_id"`
	ResultsExternalID *string   `db:"results_external_id"`
	HomeTeamID        int64     `db:"home_team_id"`
	AwayTeamID        int64     `db:"away_team_id"`
	CommenceTime      time.Time `db:"commence_time"`
	Completed         bool      `db:"completed"`
	HomeScore         *int      `db:"home_score"`
	AwayScore         *int      `db:"away_score"`
	CreatedAt         time.Time `db:"created_at"`
}

// HasStarted reports whether the game's kickoff is in the past
func (g *Game) HasStarted(now time.Time) bool {
	return g.CommenceTime.Before(now)
}

// GameDetail is a game joined with its team rows
type GameDetail struct {
	Game
	HomeTeam *Team
	AwayTeam *Team
}
