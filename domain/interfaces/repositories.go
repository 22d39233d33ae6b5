package interfaces

import (
	"context"
	"time"

	"propbook/domain/entities"
)

// TeamRepository defines the interface for team data access
type TeamRepository interface {
	// GetOrCreate finds a team by canonical name or creates it lazily
	GetOrCreate(ctx context.Context, name, abbreviation string) (*entities.Team, error)

	// GetByID retrieves a team by its ID
	GetByID(ctx context.Context, id int64) (*entities.Team, error)

	// GetByName retrieves a team by its canonical name
	GetByName(ctx context.Context, name string) (*entities.Team, error)
}

// PlayerRepository defines the interface for player data access
type PlayerRepository interface {
	// Upsert finds or creates a player by (name, teamID), marking it active
	// and refreshing the position on every sighting
	Upsert(ctx context.Context, name, position string, teamID int64) (*entities.Player, error)

	// GetByID retrieves a player by its ID
	GetByID(ctx context.Context, id int64) (*entities.Player, error)

	// DeactivateMissing clears the active flag on a team's players absent
	// from the given name list
	DeactivateMissing(ctx context.Context, teamID int64, activeNames []string) error
}

// PlayerTeamMappingRepository defines the interface for the standing roster
// identity table queried by the identity resolver
type PlayerTeamMappingRepository interface {
	// GetActiveByName retrieves the active mapping for an exact player name
	GetActiveByName(ctx context.Context, playerName string) (*entities.PlayerTeamMapping, error)

	// GetAllActive returns every active mapping, for normalized fallback matching
	GetAllActive(ctx context.Context) ([]*entities.PlayerTeamMapping, error)

	// Upsert creates or refreshes a mapping keyed on (playerName, teamName)
	Upsert(ctx context.Context, mapping *entities.PlayerTeamMapping) error

	// DeactivateTeam flips every mapping for a team inactive ahead of a
	// roster refresh, so departed players resolve only via their new team
	DeactivateTeam(ctx context.Context, teamName string) error
}

// UpsertGameParams carries the identity used for the fuzzy game upsert
type UpsertGameParams struct {
	HomeTeamID   int64
	AwayTeamID   int64
	CommenceTime time.Time
	ExternalID   string
	Source       string
}

// GameRepository defines the interface for game data access
type GameRepository interface {
	// Upsert looks up by the fuzzy (home, away, commenceTime±1h) key before
	// falling back to create, so two providers describing one matchup with
	// different external ids resolve to one row
	Upsert(ctx context.Context, params UpsertGameParams) (*entities.Game, error)

	// GetByID retrieves a game by its ID
	GetByID(ctx context.Context, id int64) (*entities.Game, error)

	// GetPendingOlderThan returns incomplete games that commenced before the cutoff
	GetPendingOlderThan(ctx context.Context, cutoff time.Time) ([]*entities.GameDetail, error)

	// ClaimCompleted conditionally marks a game completed with its final
	// score and resolved results id. Returns false when another settlement
	// run already claimed the game.
	ClaimCompleted(ctx context.Context, gameID int64, homeScore, awayScore int, resultsExternalID string) (bool, error)

	// FindDuplicates returns pairs of game rows describing the same matchup
	// within the fuzzy time window (maintenance operation)
	FindDuplicates(ctx context.Context) ([][2]*entities.Game, error)

	// Merge repoints the losing row's props at the kept row and deletes it
	Merge(ctx context.Context, keepID, removeID int64) error
}

// PropRepository defines the interface for player prop and odds data access
type PropRepository interface {
	// Upsert finds or creates a prop by the exact tuple including source;
	// never mutates an existing row's line
	Upsert(ctx context.Context, gameID, playerID int64, propType string, line *float64, source string) (*entities.PlayerProp, error)

	// GetByID retrieves a prop by its ID
	GetByID(ctx context.Context, id int64) (*entities.PlayerProp, error)

	// GetByGame returns all props for a game
	GetByGame(ctx context.Context, gameID int64) ([]*entities.PlayerProp, error)

	// AppendOdds always inserts a new snapshot row, never updates
	AppendOdds(ctx context.Context, odds *entities.PropOdds) error

	// GetLatestOdds returns the most recent snapshot per sportsbook for a prop
	GetLatestOdds(ctx context.Context, propID int64) ([]*entities.PropOdds, error)

	// CountOdds returns the number of snapshot rows for a prop
	CountOdds(ctx context.Context, propID int64) (int, error)
}

// SportsbookRepository defines the interface for sportsbook data access
type SportsbookRepository interface {
	// GetOrCreate finds a sportsbook by name or creates it lazily
	GetOrCreate(ctx context.Context, name string) (*entities.Sportsbook, error)

	// GetAll returns all sportsbooks
	GetAll(ctx context.Context) ([]*entities.Sportsbook, error)
}

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user with the starting balance
	Create(ctx context.Context, username, email, passwordHash string, startingBalance float64) (*entities.User, error)

	// GetByID retrieves a user by ID
	GetByID(ctx context.Context, id int64) (*entities.User, error)

	// GetByUsername retrieves a user by username
	GetByUsername(ctx context.Context, username string) (*entities.User, error)

	// UpdateBalance sets a user's balance
	UpdateBalance(ctx context.Context, userID int64, newBalance float64) error

	// IncrementBalance atomically adds a delta to a user's balance
	IncrementBalance(ctx context.Context, userID int64, delta float64) error
}

// WagerRepository defines the interface for wager data access
type WagerRepository interface {
	// Create creates a new pending wager
	Create(ctx context.Context, wager *entities.Wager) error

	// GetByID retrieves a wager by its ID
	GetByID(ctx context.Context, id int64) (*entities.Wager, error)

	// GetPendingByGame returns still-pending wagers on a game's props,
	// joined with the prop and bettor's player name
	GetPendingByGame(ctx context.Context, gameID int64) ([]*entities.WagerDetail, error)

	// Settle transitions a pending wager to a terminal status. A wager
	// already not-pending is left untouched.
	Settle(ctx context.Context, wagerID int64, status entities.WagerStatus, profit, payout float64, settledAt time.Time) error

	// GetByUser returns a user's wagers, newest first
	GetByUser(ctx context.Context, userID int64, limit int) ([]*entities.Wager, error)

	// GetStats returns aggregate betting statistics for a user
	GetStats(ctx context.Context, userID int64) (*entities.BettingStats, error)
}

// ParlayRepository defines the interface for parlay data access
type ParlayRepository interface {
	// CreateWithLegs creates a parlay and its legs
	CreateWithLegs(ctx context.Context, parlay *entities.Parlay, legs []*entities.ParlayLeg) error

	// GetByID retrieves a parlay by its ID
	GetByID(ctx context.Context, id int64) (*entities.Parlay, error)

	// GetLegs returns a parlay's legs
	GetLegs(ctx context.Context, parlayID int64) ([]*entities.ParlayLeg, error)

	// GetByUser returns a user's parlays, newest first
	GetByUser(ctx context.Context, userID int64, limit int) ([]*entities.Parlay, error)
}
