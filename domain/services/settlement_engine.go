package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"propbook/domain/entities"
	"propbook/domain/interfaces"
)

// settlementCutoff is how long after kickoff a game becomes eligible for
// settlement. Games routinely run past three hours; four is safe.
const settlementCutoff = 4 * time.Hour

// SettlementEngine drives the per-game settlement pass: resolve each eligible
// game to the results feed, fetch its box score, grade every pending wager,
// and commit wager, balance and game state in one transaction per game.
type SettlementEngine struct {
	uowFactory interfaces.UnitOfWorkFactory
	results    interfaces.ResultsProvider
	grader     *SettlementService
	now        func() time.Time
}

// NewSettlementEngine creates a new SettlementEngine
func NewSettlementEngine(uowFactory interfaces.UnitOfWorkFactory, results interfaces.ResultsProvider) *SettlementEngine {
	return &SettlementEngine{
		uowFactory: uowFactory,
		results:    results,
		grader:     NewSettlementService(),
		now:        time.Now,
	}
}

// SettlePendingGames settles every incomplete game past the cutoff. A game
// that cannot be resolved or whose box score is not final yet is skipped and
// retried on the next pass; one game's failure never blocks its siblings.
func (e *SettlementEngine) SettlePendingGames(ctx context.Context) (*entities.SettlementReport, error) {
	report := &entities.SettlementReport{RunID: uuid.New().String()}

	games, err := e.pendingGames(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending games: %w", err)
	}

	log.WithFields(log.Fields{
		"runId": report.RunID,
		"games": len(games),
	}).Info("Starting settlement pass")

	for _, game := range games {
		settled, results, err := e.settleGame(ctx, game)
		if err != nil {
			if errors.Is(err, entities.ErrStatsUnavailable) {
				log.WithFields(log.Fields{
					"gameId":   game.ID,
					"homeTeam": game.HomeTeam.Name,
					"awayTeam": game.AwayTeam.Name,
				}).Info("Game not settleable yet, deferring to next pass")
				continue
			}
			report.Errors = append(report.Errors, fmt.Sprintf("game %d: %v", game.ID, err))
			log.WithError(err).WithField("gameId", game.ID).Error("Failed to settle game")
			continue
		}
		if settled {
			report.GamesSettled++
			report.WagersSettled += len(results)
			report.Results = append(report.Results, results...)
		}
	}

	log.WithFields(log.Fields{
		"runId":  report.RunID,
		"games":  report.GamesSettled,
		"wagers": report.WagersSettled,
		"errors": len(report.Errors),
	}).Info("Settlement pass complete")
	return report, nil
}

func (e *SettlementEngine) pendingGames(ctx context.Context) ([]*entities.GameDetail, error) {
	uow := e.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	cutoff := e.now().Add(-settlementCutoff)
	games, err := uow.GameRepository().GetPendingOlderThan(ctx, cutoff)
	if err != nil {
		return nil, err
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}
	return games, nil
}

// settleGame returns false when another settlement run claimed the game first
func (e *SettlementEngine) settleGame(ctx context.Context, game *entities.GameDetail) (bool, []*entities.SettlementResult, error) {
	eventID, err := e.resolveEventID(ctx, game)
	if err != nil {
		return false, nil, err
	}

	result, err := e.results.FetchGameStats(ctx, eventID)
	if err != nil {
		return false, nil, err
	}
	if !result.Completed {
		return false, nil, entities.ErrStatsUnavailable
	}

	statsByName := make(map[string]*entities.PlayerStats, len(result.PlayerStats))
	for _, ps := range result.PlayerStats {
		statsByName[ps.PlayerName] = ps
	}

	uow := e.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return false, nil, err
	}
	defer uow.Rollback()

	claimed, err := uow.GameRepository().ClaimCompleted(ctx, game.ID, result.HomeScore, result.AwayScore, eventID)
	if err != nil {
		return false, nil, fmt.Errorf("failed to claim game: %w", err)
	}
	if !claimed {
		log.WithField("gameId", game.ID).Info("Game already claimed by a concurrent settlement run")
		return false, nil, nil
	}

	wagers, err := uow.WagerRepository().GetPendingByGame(ctx, game.ID)
	if err != nil {
		return false, nil, fmt.Errorf("failed to load pending wagers: %w", err)
	}

	settledAt := e.now()
	var results []*entities.SettlementResult
	for _, wager := range wagers {
		res := e.settleWager(wager, statsByName)
		if res == nil {
			continue
		}

		if err := uow.WagerRepository().Settle(ctx, wager.ID, res.Status, res.Profit, res.Payout, settledAt); err != nil {
			return false, nil, fmt.Errorf("failed to settle wager %d: %w", wager.ID, err)
		}
		if res.Payout > 0 {
			if err := uow.UserRepository().IncrementBalance(ctx, wager.UserID, res.Payout); err != nil {
				return false, nil, fmt.Errorf("failed to credit user %d: %w", wager.UserID, err)
			}
		}
		results = append(results, res)
	}

	if err := uow.Commit(); err != nil {
		return false, nil, fmt.Errorf("failed to commit settlement: %w", err)
	}
	return true, results, nil
}

// settleWager grades a single wager, returning nil when the bettor's player
// or statistic cannot be matched; that wager stays pending without blocking
// its siblings on the same game.
func (e *SettlementEngine) settleWager(wager *entities.WagerDetail, stats map[string]*entities.PlayerStats) *entities.SettlementResult {
	ps := e.grader.MatchPlayerStats(wager.PlayerName, stats)
	if ps == nil {
		log.WithFields(log.Fields{
			"wagerId": wager.ID,
			"player":  wager.PlayerName,
		}).Warn("No box-score match for player, leaving wager pending")
		return nil
	}

	actual, ok := ps.StatForPropType(wager.Prop.PropType)
	if !ok {
		log.WithFields(log.Fields{
			"wagerId":  wager.ID,
			"propType": wager.Prop.PropType,
		}).Warn("Prop type has no box-score statistic, leaving wager pending")
		return nil
	}

	line := 0.5
	if wager.Prop.Line != nil {
		line = *wager.Prop.Line
	}

	status := e.grader.GradeWager(wager.Side, line, actual)
	profit := e.grader.ComputeProfit(status, wager.Amount, wager.Odds)
	payout := e.grader.ComputePayout(status, wager.Amount, wager.Odds)

	return &entities.SettlementResult{
		WagerID:     wager.ID,
		UserID:      wager.UserID,
		Status:      status,
		Profit:      profit,
		Payout:      payout,
		PlayerName:  wager.PlayerName,
		ActualValue: actual,
		Line:        line,
	}
}

// resolveEventID maps an internal game to the results feed's event id,
// reusing a previously stored id when the game was matched on an earlier pass
func (e *SettlementEngine) resolveEventID(ctx context.Context, game *entities.GameDetail) (string, error) {
	if game.ResultsExternalID != nil && *game.ResultsExternalID != "" {
		return *game.ResultsExternalID, nil
	}
	return e.results.FindGameID(ctx, game.HomeTeam.Name, game.AwayTeam.Name, game.CommenceTime)
}
