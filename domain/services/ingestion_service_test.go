package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"propbook/domain/entities"
	"propbook/domain/interfaces"
	"propbook/domain/testhelpers"
)

func ingestionFixture() *entities.NormalizedGame {
	line := 85.5
	over := -115
	under := -105
	return &entities.NormalizedGame{
		ExternalID:   "evt-001",
		HomeTeam:     "Miami Dolphins",
		AwayTeam:     "Buffalo Bills",
		CommenceTime: time.Date(2025, 11, 2, 18, 0, 0, 0, time.UTC),
		Props: []entities.NormalizedProp{
			{
				PlayerName: "Tyreek Hill",
				PropType:   entities.PropReceptionYds,
				Line:       &line,
				AllOdds: []entities.BookQuote{
					{Sportsbook: "DraftKings", OverOdds: &over, UnderOdds: &under},
				},
			},
		},
	}
}

func TestIngestionService_PersistsGameAndProps(t *testing.T) {
	factory := testhelpers.NewMockUnitOfWorkFactory()
	svc := NewIngestionService(factory)
	provider := &testhelpers.MockAggregatorProvider{}

	game := ingestionFixture()
	uow := factory.UnitOfWork

	provider.On("FetchAllUpcoming", mock.Anything, []string{entities.PropReceptionYds}).
		Return([]*entities.NormalizedGame{game}, nil)
	provider.On("Source").Return(entities.SourceOddsAPI)

	homeTeam := &entities.Team{ID: 1, Name: "Miami Dolphins"}
	awayTeam := &entities.Team{ID: 2, Name: "Buffalo Bills"}
	uow.TeamRepo.On("GetOrCreate", mock.Anything, "Miami Dolphins", "").Return(homeTeam, nil)
	uow.TeamRepo.On("GetOrCreate", mock.Anything, "Buffalo Bills", "").Return(awayTeam, nil)
	uow.GameRepo.On("Upsert", mock.Anything, mock.MatchedBy(func(p interfaces.UpsertGameParams) bool {
		return p.HomeTeamID == 1 && p.AwayTeamID == 2 && p.ExternalID == "evt-001" && p.Source == entities.SourceOddsAPI
	})).Return(&entities.Game{ID: 42, HomeTeamID: 1, AwayTeamID: 2}, nil)
	uow.MappingRepo.On("GetActiveByName", mock.Anything, "Tyreek Hill").
		Return(&entities.PlayerTeamMapping{PlayerName: "Tyreek Hill", TeamName: "Miami Dolphins", Position: "WR", Active: true}, nil)
	uow.PlayerRepo.On("Upsert", mock.Anything, "Tyreek Hill", "WR", int64(1)).
		Return(&entities.Player{ID: 7, Name: "Tyreek Hill", TeamID: 1}, nil)
	uow.PropRepo.On("Upsert", mock.Anything, int64(42), int64(7), entities.PropReceptionYds,
		mock.AnythingOfType("*float64"), entities.SourceOddsAPI).
		Return(&entities.PlayerProp{ID: 9, GameID: 42, PlayerID: 7}, nil)
	uow.SportsbookRepo.On("GetOrCreate", mock.Anything, "DraftKings").
		Return(&entities.Sportsbook{ID: 3, Name: "DraftKings"}, nil)
	uow.PropRepo.On("AppendOdds", mock.Anything, mock.MatchedBy(func(o *entities.PropOdds) bool {
		return o.PropID == 9 && o.SportsbookID == 3 && *o.OverOdds == -115 && *o.UnderOdds == -105
	})).Return(nil)

	report, err := svc.IngestFromAggregator(context.Background(), provider, []string{entities.PropReceptionYds})
	require.NoError(t, err)

	assert.Equal(t, 1, report.GamesIngested)
	assert.Equal(t, 1, report.PropsSaved)
	assert.Equal(t, 0, report.PropsSkipped)
	assert.Empty(t, report.Errors)
	assert.Equal(t, entities.SourceOddsAPI, report.Source)
	uow.PropRepo.AssertExpectations(t)
}

func TestIngestionService_SkipsUnresolvablePlayer(t *testing.T) {
	factory := testhelpers.NewMockUnitOfWorkFactory()
	svc := NewIngestionService(factory)
	provider := &testhelpers.MockAggregatorProvider{}

	game := ingestionFixture()
	uow := factory.UnitOfWork

	provider.On("FetchAllUpcoming", mock.Anything, mock.Anything).
		Return([]*entities.NormalizedGame{game}, nil)
	provider.On("Source").Return(entities.SourceOddsAPI)

	uow.TeamRepo.On("GetOrCreate", mock.Anything, mock.Anything, "").
		Return(&entities.Team{ID: 1, Name: "Miami Dolphins"}, nil)
	uow.GameRepo.On("Upsert", mock.Anything, mock.Anything).
		Return(&entities.Game{ID: 42}, nil)
	uow.MappingRepo.On("GetActiveByName", mock.Anything, "Tyreek Hill").Return(nil, nil)
	uow.MappingRepo.On("GetAllActive", mock.Anything).Return([]*entities.PlayerTeamMapping{}, nil)

	report, err := svc.IngestFromAggregator(context.Background(), provider, []string{entities.PropReceptionYds})
	require.NoError(t, err)

	assert.Equal(t, 1, report.GamesIngested)
	assert.Equal(t, 0, report.PropsSaved)
	assert.Equal(t, 1, report.PropsSkipped)
	uow.PropRepo.AssertNotCalled(t, "Upsert")
}

func TestIngestionService_MissingLineOnNumericPropSkipped(t *testing.T) {
	factory := testhelpers.NewMockUnitOfWorkFactory()
	svc := NewIngestionService(factory)
	provider := &testhelpers.MockBookProvider{}

	game := ingestionFixture()
	game.Props[0].Line = nil
	uow := factory.UnitOfWork

	provider.On("FetchProps", mock.Anything, "").Return([]*entities.NormalizedGame{game}, nil)
	provider.On("Source").Return(entities.SourceDraftKings)

	uow.TeamRepo.On("GetOrCreate", mock.Anything, mock.Anything, "").
		Return(&entities.Team{ID: 1}, nil)
	uow.GameRepo.On("Upsert", mock.Anything, mock.Anything).
		Return(&entities.Game{ID: 42}, nil)

	report, err := svc.IngestFromBook(context.Background(), provider, "")
	require.NoError(t, err)

	assert.Equal(t, 1, report.PropsSkipped)
	uow.MappingRepo.AssertNotCalled(t, "GetActiveByName")
}
