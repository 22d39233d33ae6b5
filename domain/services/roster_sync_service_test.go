package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"propbook/domain/entities"
	"propbook/domain/testhelpers"
)

func TestRosterSyncService_SyncAllRosters(t *testing.T) {
	factory := testhelpers.NewMockUnitOfWorkFactory()
	results := &testhelpers.MockResultsProvider{}
	svc := NewRosterSyncService(factory, results)
	svc.sleep = func(ctx context.Context, d time.Duration) error { return nil }

	uow := factory.UnitOfWork

	results.On("FetchAllTeams", mock.Anything).Return([]*entities.RosterTeam{
		{ID: "15", DisplayName: "Miami Dolphins", Abbreviation: "MIA"},
	}, nil)
	results.On("FetchTeamRoster", mock.Anything, "15").Return([]*entities.RosterAthlete{
		{FullName: "Tyreek Hill", Position: "WR", Jersey: "10"},
		{FullName: "De'Von Achane", Position: "RB", Jersey: "28"},
	}, nil)

	uow.TeamRepo.On("GetOrCreate", mock.Anything, "Miami Dolphins", "MIA").
		Return(&entities.Team{ID: 1, Name: "Miami Dolphins"}, nil)
	// Hill already has an active mapping; Achane is new
	uow.MappingRepo.On("GetActiveByName", mock.Anything, "Tyreek Hill").
		Return(&entities.PlayerTeamMapping{PlayerName: "Tyreek Hill", TeamName: "Miami Dolphins", Active: true}, nil)
	uow.MappingRepo.On("GetActiveByName", mock.Anything, "De'Von Achane").Return(nil, nil)
	uow.MappingRepo.On("DeactivateTeam", mock.Anything, "Miami Dolphins").Return(nil)
	uow.MappingRepo.On("Upsert", mock.Anything, mock.MatchedBy(func(m *entities.PlayerTeamMapping) bool {
		return m.TeamName == "Miami Dolphins" && m.Active
	})).Return(nil)
	uow.PlayerRepo.On("Upsert", mock.Anything, mock.Anything, mock.Anything, int64(1)).
		Return(&entities.Player{ID: 7, TeamID: 1}, nil)
	uow.PlayerRepo.On("DeactivateMissing", mock.Anything, int64(1),
		[]string{"Tyreek Hill", "De'Von Achane"}).Return(nil)

	report, err := svc.SyncAllRosters(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, report.TeamsProcessed)
	assert.Equal(t, 1, report.PlayersAdded)
	assert.Equal(t, 1, report.PlayersUpdated)
	assert.Empty(t, report.Errors)
	uow.MappingRepo.AssertExpectations(t)
	uow.PlayerRepo.AssertExpectations(t)
}

func TestRosterSyncService_TradedPlayerCountsAsAdded(t *testing.T) {
	factory := testhelpers.NewMockUnitOfWorkFactory()
	results := &testhelpers.MockResultsProvider{}
	svc := NewRosterSyncService(factory, results)
	svc.sleep = func(ctx context.Context, d time.Duration) error { return nil }

	uow := factory.UnitOfWork

	results.On("FetchAllTeams", mock.Anything).Return([]*entities.RosterTeam{
		{ID: "2", DisplayName: "Buffalo Bills", Abbreviation: "BUF"},
	}, nil)
	results.On("FetchTeamRoster", mock.Anything, "2").Return([]*entities.RosterAthlete{
		{FullName: "Tyreek Hill", Position: "WR", Jersey: "10"},
	}, nil)

	uow.TeamRepo.On("GetOrCreate", mock.Anything, "Buffalo Bills", "BUF").
		Return(&entities.Team{ID: 2, Name: "Buffalo Bills"}, nil)
	// Active mapping is on the old team, so the player is new to this one
	uow.MappingRepo.On("GetActiveByName", mock.Anything, "Tyreek Hill").
		Return(&entities.PlayerTeamMapping{PlayerName: "Tyreek Hill", TeamName: "Miami Dolphins", Active: true}, nil)
	uow.MappingRepo.On("DeactivateTeam", mock.Anything, "Buffalo Bills").Return(nil)
	uow.MappingRepo.On("Upsert", mock.Anything, mock.Anything).Return(nil)
	uow.PlayerRepo.On("Upsert", mock.Anything, "Tyreek Hill", "WR", int64(2)).
		Return(&entities.Player{ID: 7, TeamID: 2}, nil)
	uow.PlayerRepo.On("DeactivateMissing", mock.Anything, int64(2), []string{"Tyreek Hill"}).Return(nil)

	report, err := svc.SyncAllRosters(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, report.PlayersAdded)
	assert.Equal(t, 0, report.PlayersUpdated)
}

func TestRosterSyncService_OneTeamFailureDoesNotAbortRun(t *testing.T) {
	factory := testhelpers.NewMockUnitOfWorkFactory()
	results := &testhelpers.MockResultsProvider{}
	svc := NewRosterSyncService(factory, results)
	svc.sleep = func(ctx context.Context, d time.Duration) error { return nil }

	uow := factory.UnitOfWork

	results.On("FetchAllTeams", mock.Anything).Return([]*entities.RosterTeam{
		{ID: "15", DisplayName: "Miami Dolphins", Abbreviation: "MIA"},
		{ID: "2", DisplayName: "Buffalo Bills", Abbreviation: "BUF"},
	}, nil)
	results.On("FetchTeamRoster", mock.Anything, "15").
		Return(nil, &entities.UpstreamError{Provider: "espn", StatusCode: 503, Body: "unavailable"})
	results.On("FetchTeamRoster", mock.Anything, "2").Return([]*entities.RosterAthlete{
		{FullName: "Josh Allen", Position: "QB", Jersey: "17"},
	}, nil)

	uow.TeamRepo.On("GetOrCreate", mock.Anything, "Buffalo Bills", "BUF").
		Return(&entities.Team{ID: 2, Name: "Buffalo Bills"}, nil)
	uow.MappingRepo.On("GetActiveByName", mock.Anything, "Josh Allen").Return(nil, nil)
	uow.MappingRepo.On("DeactivateTeam", mock.Anything, "Buffalo Bills").Return(nil)
	uow.MappingRepo.On("Upsert", mock.Anything, mock.Anything).Return(nil)
	uow.PlayerRepo.On("Upsert", mock.Anything, "Josh Allen", "QB", int64(2)).
		Return(&entities.Player{ID: 8, TeamID: 2}, nil)
	uow.PlayerRepo.On("DeactivateMissing", mock.Anything, int64(2), []string{"Josh Allen"}).Return(nil)

	report, err := svc.SyncAllRosters(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, report.TeamsProcessed)
	require.Len(t, report.Errors, 1)
	assert.Contains(t, report.Errors[0], "Miami Dolphins")
}
