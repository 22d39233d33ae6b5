package services

import (
	"context"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"propbook/domain/entities"
	"propbook/domain/interfaces"
)

// WagerInput is a single-prop wager as submitted at placement time
type WagerInput struct {
	UserID       int64
	PropID       int64
	SportsbookID int64
	Side         entities.WagerSide
	Amount       float64
	Odds         int
}

// ParlayInput is a multi-leg wager as submitted at placement time
type ParlayInput struct {
	UserID      int64
	TotalAmount float64
	Legs        []entities.ParlayLegInput
}

// WageringService places wagers and parlays. The balance debit and the wager
// row are written in one transaction so a balance is never decremented
// without a corresponding wager existing.
type WageringService struct {
	uowFactory interfaces.UnitOfWorkFactory
	parlays    *ParlayService
	now        func() time.Time
}

// NewWageringService creates a new WageringService
func NewWageringService(uowFactory interfaces.UnitOfWorkFactory) *WageringService {
	return &WageringService{
		uowFactory: uowFactory,
		parlays:    NewParlayService(),
		now:        time.Now,
	}
}

// PlaceWager validates the stake against the user's balance, debits it, and
// creates the pending wager — all atomically
func (s *WageringService) PlaceWager(ctx context.Context, input WagerInput) (*entities.Wager, error) {
	if input.Amount <= 0 {
		return nil, fmt.Errorf("%w: stake must be positive", entities.ErrInvalidWagerInput)
	}
	if input.Side != entities.SideOver && input.Side != entities.SideUnder {
		return nil, fmt.Errorf("%w: side must be over or under", entities.ErrInvalidWagerInput)
	}
	if input.Odds == 0 {
		return nil, fmt.Errorf("%w: odds must be nonzero", entities.ErrInvalidWagerInput)
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	user, err := uow.UserRepository().GetByID(ctx, input.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("%w: user %d not found", entities.ErrInvalidWagerInput, input.UserID)
	}
	if !user.CanAfford(input.Amount) {
		return nil, entities.ErrInsufficientBalance
	}

	prop, err := uow.PropRepository().GetByID(ctx, input.PropID)
	if err != nil {
		return nil, err
	}
	if prop == nil {
		return nil, fmt.Errorf("%w: prop %d not found", entities.ErrInvalidWagerInput, input.PropID)
	}

	game, err := uow.GameRepository().GetByID(ctx, prop.GameID)
	if err != nil {
		return nil, err
	}
	if game == nil || game.HasStarted(s.now()) {
		return nil, fmt.Errorf("%w: game has already started", entities.ErrInvalidWagerInput)
	}

	wager := &entities.Wager{
		UserID:       input.UserID,
		PropID:       input.PropID,
		SportsbookID: input.SportsbookID,
		Side:         input.Side,
		Amount:       input.Amount,
		Odds:         input.Odds,
		Status:       entities.WagerStatusPending,
		PlacedAt:     s.now(),
	}
	if err := uow.WagerRepository().Create(ctx, wager); err != nil {
		return nil, fmt.Errorf("failed to create wager: %w", err)
	}
	if err := uow.UserRepository().IncrementBalance(ctx, input.UserID, -input.Amount); err != nil {
		return nil, fmt.Errorf("failed to debit balance: %w", err)
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{
		"wagerId": wager.ID,
		"userId":  input.UserID,
		"propId":  input.PropID,
		"side":    input.Side,
		"amount":  input.Amount,
		"odds":    input.Odds,
	}).Info("Wager placed")
	return wager, nil
}

// PlaceParlay validates the legs, combines their odds, debits the stake and
// creates the parlay with its legs — all atomically
func (s *WageringService) PlaceParlay(ctx context.Context, input ParlayInput) (*entities.Parlay, error) {
	if input.TotalAmount <= 0 {
		return nil, fmt.Errorf("%w: stake must be positive", entities.ErrInvalidWagerInput)
	}
	if err := s.parlays.ValidateLegs(input.Legs); err != nil {
		return nil, fmt.Errorf("%w: %v", entities.ErrInvalidWagerInput, err)
	}

	legOdds := make([]int, len(input.Legs))
	for i, leg := range input.Legs {
		legOdds[i] = leg.Odds
	}
	combined, err := s.parlays.CombinedOdds(legOdds)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", entities.ErrInvalidWagerInput, err)
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	user, err := uow.UserRepository().GetByID(ctx, input.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("%w: user %d not found", entities.ErrInvalidWagerInput, input.UserID)
	}
	if !user.CanAfford(input.TotalAmount) {
		return nil, entities.ErrInsufficientBalance
	}

	parlay := &entities.Parlay{
		UserID:       input.UserID,
		TotalAmount:  input.TotalAmount,
		CombinedOdds: combined,
		Status:       entities.WagerStatusPending,
		PlacedAt:     s.now(),
	}
	legs := make([]*entities.ParlayLeg, len(input.Legs))
	for i, leg := range input.Legs {
		legs[i] = &entities.ParlayLeg{
			PropID:       leg.PropID,
			SportsbookID: leg.SportsbookID,
			Side:         leg.Side,
			Odds:         leg.Odds,
		}
	}
	if err := uow.ParlayRepository().CreateWithLegs(ctx, parlay, legs); err != nil {
		return nil, fmt.Errorf("failed to create parlay: %w", err)
	}
	if err := uow.UserRepository().IncrementBalance(ctx, input.UserID, -input.TotalAmount); err != nil {
		return nil, fmt.Errorf("failed to debit balance: %w", err)
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{
		"parlayId":     parlay.ID,
		"userId":       input.UserID,
		"legs":         len(legs),
		"combinedOdds": combined,
		"amount":       input.TotalAmount,
	}).Info("Parlay placed")
	return parlay, nil
}

// GetUserWagers returns a user's recent wagers
func (s *WageringService) GetUserWagers(ctx context.Context, userID int64, limit int) ([]*entities.Wager, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	wagers, err := uow.WagerRepository().GetByUser(ctx, userID, limit)
	if err != nil {
		return nil, err
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}
	return wagers, nil
}

// GetUserStats returns a user's aggregate betting statistics
func (s *WageringService) GetUserStats(ctx context.Context, userID int64) (*entities.BettingStats, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	stats, err := uow.WagerRepository().GetStats(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}
	return stats, nil
}
