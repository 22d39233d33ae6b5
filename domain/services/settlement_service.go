package services

import (
	"strings"

	"propbook/domain/entities"
	"propbook/domain/utils"
)

// SettlementService contains pure business logic for grading wagers against
// final player statistics
type SettlementService struct{}

// NewSettlementService creates a new SettlementService
func NewSettlementService() *SettlementService {
	return &SettlementService{}
}

// MatchPlayerStats finds a bettor's player in a parsed box score by exact
// name, falling back to last-name containment either direction
func (s *SettlementService) MatchPlayerStats(playerName string, stats map[string]*entities.PlayerStats) *entities.PlayerStats {
	if ps, ok := stats[playerName]; ok {
		return ps
	}

	lowered := strings.ToLower(playerName)
	parts := strings.Fields(lowered)
	lastName := ""
	if len(parts) > 0 {
		lastName = parts[len(parts)-1]
	}

	for name, ps := range stats {
		candidate := strings.ToLower(name)
		if candidate == lowered {
			return ps
		}
		if strings.Contains(candidate, lowered) || strings.Contains(lowered, candidate) {
			return ps
		}
		if lastName != "" && len(lastName) > 3 && strings.HasSuffix(candidate, " "+lastName) {
			return ps
		}
	}
	return nil
}

// GradeWager determines the terminal status for a wager given the player's
// actual statistic. The actual value exactly on the line is a push.
func (s *SettlementService) GradeWager(side entities.WagerSide, line, actual float64) entities.WagerStatus {
	if actual == line {
		return entities.WagerStatusPush
	}
	if side == entities.SideOver {
		if actual > line {
			return entities.WagerStatusWon
		}
		return entities.WagerStatusLost
	}
	if actual < line {
		return entities.WagerStatusWon
	}
	return entities.WagerStatusLost
}

// ComputeProfit returns the net profit for a graded wager. A push returns
// zero, a loss the negated stake, a win the American-odds winnings.
func (s *SettlementService) ComputeProfit(status entities.WagerStatus, stake float64, odds int) float64 {
	switch status {
	case entities.WagerStatusPush:
		return 0
	case entities.WagerStatusLost:
		return -stake
	case entities.WagerStatusWon:
		return utils.WinProfit(stake, odds)
	default:
		return 0
	}
}

// ComputePayout returns the amount credited back to the bettor: stake plus
// profit on a win, the stake on a push, nothing on a loss
func (s *SettlementService) ComputePayout(status entities.WagerStatus, stake float64, odds int) float64 {
	switch status {
	case entities.WagerStatusPush:
		return stake
	case entities.WagerStatusWon:
		return stake + utils.WinProfit(stake, odds)
	default:
		return 0
	}
}
