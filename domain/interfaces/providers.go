package interfaces

import (
	"context"
	"time"

	"propbook/domain/entities"
)

// AggregatorProvider fetches normalized props from a multi-book odds
// aggregator. One upstream event carries quotes from many sportsbooks.
type AggregatorProvider interface {
	// FetchAllUpcoming retrieves every upcoming event with the given prop
	// markets attached. A market that fails upstream is skipped; the error
	// returned alongside partial results is non-nil only when nothing at
	// all could be fetched.
	FetchAllUpcoming(ctx context.Context, markets []string) ([]*entities.NormalizedGame, error)

	// Source returns the provider's source tag for prop attribution
	Source() string
}

// BookProvider fetches normalized props from a single sportsbook's own API
type BookProvider interface {
	// FetchProps retrieves prop categories for the configured league. An
	// empty selector means every supported category; categories that fail
	// upstream are skipped.
	FetchProps(ctx context.Context, selector string) ([]*entities.NormalizedGame, error)

	// Source returns the provider's source tag for prop attribution
	Source() string
}

// ResultsProvider fetches rosters and final box scores from a results feed
type ResultsProvider interface {
	// FetchAllTeams returns every team in the league
	FetchAllTeams(ctx context.Context) ([]*entities.RosterTeam, error)

	// FetchTeamRoster returns the current roster for a team
	FetchTeamRoster(ctx context.Context, teamID string) ([]*entities.RosterAthlete, error)

	// FindGameID resolves a game to the results feed's own event id by
	// matching team names on the scoreboard around the commence time.
	// Returns entities.ErrStatsUnavailable when no scoreboard event matches.
	FindGameID(ctx context.Context, homeTeam, awayTeam string, commenceTime time.Time) (string, error)

	// FetchGameStats returns per-player accumulated stats and the final
	// score for a completed game. Returns entities.ErrStatsUnavailable when
	// the game is not yet final.
	FetchGameStats(ctx context.Context, eventID string) (*entities.GameResult, error)
}
