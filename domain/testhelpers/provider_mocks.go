package testhelpers

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"propbook/domain/entities"
)

// MockResultsProvider is a mock implementation of ResultsProvider
type MockResultsProvider struct {
	mock.Mock
}

func (m *MockResultsProvider) FetchAllTeams(ctx context.Context) ([]*entities.RosterTeam, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.RosterTeam), args.Error(1)
}

func (m *MockResultsProvider) FetchTeamRoster(ctx context.Context, teamID string) ([]*entities.RosterAthlete, error) {
	args := m.Called(ctx, teamID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.RosterAthlete), args.Error(1)
}

func (m *MockResultsProvider) FindGameID(ctx context.Context, homeTeam, awayTeam string, commenceTime time.Time) (string, error) {
	args := m.Called(ctx, homeTeam, awayTeam, commenceTime)
	return args.String(0), args.Error(1)
}

func (m *MockResultsProvider) FetchGameStats(ctx context.Context, eventID string) (*entities.GameResult, error) {
	args := m.Called(ctx, eventID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.GameResult), args.Error(1)
}

// MockAggregatorProvider is a mock implementation of AggregatorProvider
type MockAggregatorProvider struct {
	mock.Mock
}

func (m *MockAggregatorProvider) FetchAllUpcoming(ctx context.Context, markets []string) ([]*entities.NormalizedGame, error) {
	args := m.Called(ctx, markets)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.NormalizedGame), args.Error(1)
}

func (m *MockAggregatorProvider) Source() string {
	args := m.Called()
	return args.String(0)
}

// MockBookProvider is a mock implementation of BookProvider
type MockBookProvider struct {
	mock.Mock
}

func (m *MockBookProvider) FetchProps(ctx context.Context, selector string) ([]*entities.NormalizedGame, error) {
	args := m.Called(ctx, selector)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.NormalizedGame), args.Error(1)
}

func (m *MockBookProvider) Source() string {
	args := m.Called()
	return args.String(0)
}
