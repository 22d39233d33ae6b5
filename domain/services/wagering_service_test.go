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

func TestWageringService_PlaceWager(t *testing.T) {
	factory := testhelpers.NewMockUnitOfWorkFactory()
	svc := NewWageringService(factory)
	placedAt := time.Date(2025, 11, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return placedAt }

	uow := factory.UnitOfWork
	user := &entities.User{ID: 100, Balance: 500}
	prop := &entities.PlayerProp{ID: 9, GameID: 42}
	game := &entities.Game{ID: 42, CommenceTime: placedAt.Add(2 * time.Hour)}

	uow.UserRepo.On("GetByID", mock.Anything, int64(100)).Return(user, nil)
	uow.PropRepo.On("GetByID", mock.Anything, int64(9)).Return(prop, nil)
	uow.GameRepo.On("GetByID", mock.Anything, int64(42)).Return(game, nil)
	uow.WagerRepo.On("Create", mock.Anything, mock.MatchedBy(func(w *entities.Wager) bool {
		return w.UserID == 100 && w.PropID == 9 && w.Amount == 50 && w.Status == entities.WagerStatusPending
	})).Return(nil)
	uow.UserRepo.On("IncrementBalance", mock.Anything, int64(100), -50.0).Return(nil)

	wager, err := svc.PlaceWager(context.Background(), WagerInput{
		UserID:       100,
		PropID:       9,
		SportsbookID: 3,
		Side:         entities.SideOver,
		Amount:       50,
		Odds:         -110,
	})
	require.NoError(t, err)
	assert.Equal(t, entities.WagerStatusPending, wager.Status)
	assert.Equal(t, placedAt, wager.PlacedAt)
	assert.Equal(t, 1, uow.CommitCalls)
	uow.WagerRepo.AssertExpectations(t)
	uow.UserRepo.AssertExpectations(t)
}

func TestWageringService_PlaceWager_InsufficientBalance(t *testing.T) {
	factory := testhelpers.NewMockUnitOfWorkFactory()
	svc := NewWageringService(factory)

	uow := factory.UnitOfWork
	uow.UserRepo.On("GetByID", mock.Anything, int64(100)).
		Return(&entities.User{ID: 100, Balance: 10}, nil)

	_, err := svc.PlaceWager(context.Background(), WagerInput{
		UserID: 100, PropID: 9, Side: entities.SideOver, Amount: 50, Odds: -110,
	})
	assert.ErrorIs(t, err, entities.ErrInsufficientBalance)
	assert.Equal(t, 0, uow.CommitCalls)
	uow.WagerRepo.AssertNotCalled(t, "Create")
}

func TestWageringService_PlaceWager_GameAlreadyStarted(t *testing.T) {
	factory := testhelpers.NewMockUnitOfWorkFactory()
	svc := NewWageringService(factory)
	now := time.Date(2025, 11, 1, 19, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	uow := factory.UnitOfWork
	uow.UserRepo.On("GetByID", mock.Anything, int64(100)).
		Return(&entities.User{ID: 100, Balance: 500}, nil)
	uow.PropRepo.On("GetByID", mock.Anything, int64(9)).
		Return(&entities.PlayerProp{ID: 9, GameID: 42}, nil)
	uow.GameRepo.On("GetByID", mock.Anything, int64(42)).
		Return(&entities.Game{ID: 42, CommenceTime: now.Add(-time.Hour)}, nil)

	_, err := svc.PlaceWager(context.Background(), WagerInput{
		UserID: 100, PropID: 9, Side: entities.SideOver, Amount: 50, Odds: -110,
	})
	assert.ErrorIs(t, err, entities.ErrInvalidWagerInput)
	uow.WagerRepo.AssertNotCalled(t, "Create")
}

func TestWageringService_PlaceWager_RejectsBadInput(t *testing.T) {
	factory := testhelpers.NewMockUnitOfWorkFactory()
	svc := NewWageringService(factory)

	t.Run("non-positive stake", func(t *testing.T) {
		_, err := svc.PlaceWager(context.Background(), WagerInput{
			UserID: 100, PropID: 9, Side: entities.SideOver, Amount: 0, Odds: -110,
		})
		assert.ErrorIs(t, err, entities.ErrInvalidWagerInput)
	})

	t.Run("unknown side", func(t *testing.T) {
		_, err := svc.PlaceWager(context.Background(), WagerInput{
			UserID: 100, PropID: 9, Side: "middle", Amount: 50, Odds: -110,
		})
		assert.ErrorIs(t, err, entities.ErrInvalidWagerInput)
	})

	t.Run("zero odds", func(t *testing.T) {
		_, err := svc.PlaceWager(context.Background(), WagerInput{
			UserID: 100, PropID: 9, Side: entities.SideOver, Amount: 50, Odds: 0,
		})
		assert.ErrorIs(t, err, entities.ErrInvalidWagerInput)
		factory.UnitOfWork.WagerRepo.AssertNotCalled(t, "Create")
	})
}

func TestWageringService_PlaceParlay(t *testing.T) {
	factory := testhelpers.NewMockUnitOfWorkFactory()
	svc := NewWageringService(factory)

	uow := factory.UnitOfWork
	uow.UserRepo.On("GetByID", mock.Anything, int64(100)).
		Return(&entities.User{ID: 100, Balance: 500}, nil)
	uow.ParlayRepo.On("CreateWithLegs", mock.Anything, mock.MatchedBy(func(p *entities.Parlay) bool {
		// +100 and +100 combine to +300
		return p.CombinedOdds == 300 && p.TotalAmount == 20
	}), mock.Anything).Return(nil)
	uow.UserRepo.On("IncrementBalance", mock.Anything, int64(100), -20.0).Return(nil)

	parlay, err := svc.PlaceParlay(context.Background(), ParlayInput{
		UserID:      100,
		TotalAmount: 20,
		Legs: []entities.ParlayLegInput{
			{PropID: 1, GameID: 10, Side: entities.SideOver, Odds: 100},
			{PropID: 2, GameID: 11, Side: entities.SideUnder, Odds: 100},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 300, parlay.CombinedOdds)
	uow.ParlayRepo.AssertExpectations(t)
}

func TestWageringService_PlaceParlay_SameGameRejected(t *testing.T) {
	factory := testhelpers.NewMockUnitOfWorkFactory()
	svc := NewWageringService(factory)

	_, err := svc.PlaceParlay(context.Background(), ParlayInput{
		UserID:      100,
		TotalAmount: 20,
		Legs: []entities.ParlayLegInput{
			{PropID: 1, GameID: 10, Side: entities.SideOver, Odds: 100},
			{PropID: 2, GameID: 10, Side: entities.SideUnder, Odds: 100},
		},
	})
	assert.ErrorIs(t, err, entities.ErrInvalidWagerInput)
	factory.UnitOfWork.ParlayRepo.AssertNotCalled(t, "CreateWithLegs")
}
