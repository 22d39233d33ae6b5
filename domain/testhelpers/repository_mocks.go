package testhelpers

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"propbook/domain/entities"
	"propbook/domain/interfaces"
)

// MockTeamRepository is a mock implementation of TeamRepository
type MockTeamRepository struct {
	mock.Mock
}

func (m *MockTeamRepository) GetOrCreate(ctx context.Context, name, abbreviation string) (*entities.Team, error) {
	args := m.Called(ctx, name, abbreviation)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Team), args.Error(1)
}

func (m *MockTeamRepository) GetByID(ctx context.Context, id int64) (*entities.Team, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Team), args.Error(1)
}

func (m *MockTeamRepository) GetByName(ctx context.Context, name string) (*entities.Team, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Team), args.Error(1)
}

// MockPlayerRepository is a mock implementation of PlayerRepository
type MockPlayerRepository struct {
	mock.Mock
}

func (m *MockPlayerRepository) Upsert(ctx context.Context, name, position string, teamID int64) (*entities.Player, error) {
	args := m.Called(ctx, name, position, teamID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Player), args.Error(1)
}

func (m *MockPlayerRepository) GetByID(ctx context.Context, id int64) (*entities.Player, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Player), args.Error(1)
}

func (m *MockPlayerRepository) DeactivateMissing(ctx context.Context, teamID int64, activeNames []string) error {
	args := m.Called(ctx, teamID, activeNames)
	return args.Error(0)
}

// MockPlayerTeamMappingRepository is a mock implementation of PlayerTeamMappingRepository
type MockPlayerTeamMappingRepository struct {
	mock.Mock
}

func (m *MockPlayerTeamMappingRepository) GetActiveByName(ctx context.Context, playerName string) (*entities.PlayerTeamMapping, error) {
	args := m.Called(ctx, playerName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.PlayerTeamMapping), args.Error(1)
}

func (m *MockPlayerTeamMappingRepository) GetAllActive(ctx context.Context) ([]*entities.PlayerTeamMapping, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.PlayerTeamMapping), args.Error(1)
}

func (m *MockPlayerTeamMappingRepository) Upsert(ctx context.Context, mapping *entities.PlayerTeamMapping) error {
	args := m.Called(ctx, mapping)
	return args.Error(0)
}

func (m *MockPlayerTeamMappingRepository) DeactivateTeam(ctx context.Context, teamName string) error {
	args := m.Called(ctx, teamName)
	return args.Error(0)
}

// MockGameRepository is a mock implementation of GameRepository
type MockGameRepository struct {
	mock.Mock
}

func (m *MockGameRepository) Upsert(ctx context.Context, params interfaces.UpsertGameParams) (*entities.Game, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Game), args.Error(1)
}

func (m *MockGameRepository) GetByID(ctx context.Context, id int64) (*entities.Game, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Game), args.Error(1)
}

func (m *MockGameRepository) GetPendingOlderThan(ctx context.Context, cutoff time.Time) ([]*entities.GameDetail, error) {
	args := m.Called(ctx, cutoff)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.GameDetail), args.Error(1)
}

func (m *MockGameRepository) ClaimCompleted(ctx context.Context, gameID int64, homeScore, awayScore int, resultsExternalID string) (bool, error) {
	args := m.Called(ctx, gameID, homeScore, awayScore, resultsExternalID)
	return args.Bool(0), args.Error(1)
}

func (m *MockGameRepository) FindDuplicates(ctx context.Context) ([][2]*entities.Game, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([][2]*entities.Game), args.Error(1)
}

func (m *MockGameRepository) Merge(ctx context.Context, keepID, removeID int64) error {
	args := m.Called(ctx, keepID, removeID)
	return args.Error(0)
}

// MockPropRepository is a mock implementation of PropRepository
type MockPropRepository struct {
	mock.Mock
}

func (m *MockPropRepository) Upsert(ctx context.Context, gameID, playerID int64, propType string, line *float64, source string) (*entities.PlayerProp, error) {
	args := m.Called(ctx, gameID, playerID, propType, line, source)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.PlayerProp), args.Error(1)
}

func (m *MockPropRepository) GetByID(ctx context.Context, id int64) (*entities.PlayerProp, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.PlayerProp), args.Error(1)
}

func (m *MockPropRepository) GetByGame(ctx context.Context, gameID int64) ([]*entities.PlayerProp, error) {
	args := m.Called(ctx, gameID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.PlayerProp), args.Error(1)
}

func (m *MockPropRepository) AppendOdds(ctx context.Context, odds *entities.PropOdds) error {
	args := m.Called(ctx, odds)
	return args.Error(0)
}

func (m *MockPropRepository) GetLatestOdds(ctx context.Context, propID int64) ([]*entities.PropOdds, error) {
	args := m.Called(ctx, propID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.PropOdds), args.Error(1)
}

func (m *MockPropRepository) CountOdds(ctx context.Context, propID int64) (int, error) {
	args := m.Called(ctx, propID)
	return args.Int(0), args.Error(1)
}

// MockSportsbookRepository is a mock implementation of SportsbookRepository
type MockSportsbookRepository struct {
	mock.Mock
}

func (m *MockSportsbookRepository) GetOrCreate(ctx context.Context, name string) (*entities.Sportsbook, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Sportsbook), args.Error(1)
}

func (m *MockSportsbookRepository) GetAll(ctx context.Context) ([]*entities.Sportsbook, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Sportsbook), args.Error(1)
}

// MockUserRepository is a mock implementation of UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, username, email, passwordHash string, startingBalance float64) (*entities.User, error) {
	args := m.Called(ctx, username, email, passwordHash, startingBalance)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id int64) (*entities.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *MockUserRepository) GetByUsername(ctx context.Context, username string) (*entities.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *MockUserRepository) UpdateBalance(ctx context.Context, userID int64, newBalance float64) error {
	args := m.Called(ctx, userID, newBalance)
	return args.Error(0)
}

func (m *MockUserRepository) IncrementBalance(ctx context.Context, userID int64, delta float64) error {
	args := m.Called(ctx, userID, delta)
	return args.Error(0)
}

// MockWagerRepository is a mock implementation of WagerRepository
type MockWagerRepository struct {
	mock.Mock
}

func (m *MockWagerRepository) Create(ctx context.Context, wager *entities.Wager) error {
	args := m.Called(ctx, wager)
	return args.Error(0)
}

func (m *MockWagerRepository) GetByID(ctx context.Context, id int64) (*entities.Wager, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Wager), args.Error(1)
}

func (m *MockWagerRepository) GetPendingByGame(ctx context.Context, gameID int64) ([]*entities.WagerDetail, error) {
	args := m.Called(ctx, gameID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.WagerDetail), args.Error(1)
}

func (m *MockWagerRepository) Settle(ctx context.Context, wagerID int64, status entities.WagerStatus, profit, payout float64, settledAt time.Time) error {
	args := m.Called(ctx, wagerID, status, profit, payout, settledAt)
	return args.Error(0)
}

func (m *MockWagerRepository) GetByUser(ctx context.Context, userID int64, limit int) ([]*entities.Wager, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Wager), args.Error(1)
}

func (m *MockWagerRepository) GetStats(ctx context.Context, userID int64) (*entities.BettingStats, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.BettingStats), args.Error(1)
}

// MockParlayRepository is a mock implementation of ParlayRepository
type MockParlayRepository struct {
	mock.Mock
}

func (m *MockParlayRepository) CreateWithLegs(ctx context.Context, parlay *entities.Parlay, legs []*entities.ParlayLeg) error {
	args := m.Called(ctx, parlay, legs)
	return args.Error(0)
}

func (m *MockParlayRepository) GetByID(ctx context.Context, id int64) (*entities.Parlay, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Parlay), args.Error(1)
}

func (m *MockParlayRepository) GetLegs(ctx context.Context, parlayID int64) ([]*entities.ParlayLeg, error) {
	args := m.Called(ctx, parlayID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.ParlayLeg), args.Error(1)
}

func (m *MockParlayRepository) GetByUser(ctx context.Context, userID int64, limit int) ([]*entities.Parlay, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Parlay), args.Error(1)
}
