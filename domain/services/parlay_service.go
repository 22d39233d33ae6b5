package services

import (
	"errors"
	"fmt"

	"propbook/domain/entities"
	"propbook/domain/utils"
)

const (
	minParlayLegs = 2
	maxParlayLegs = 10
)

// ParlayService contains pure business logic for combining parlay legs
type ParlayService struct{}

// NewParlayService creates a new ParlayService
func NewParlayService() *ParlayService {
	return &ParlayService{}
}

// ValidateLegs checks leg count bounds and that no two legs reference the
// same game
func (s *ParlayService) ValidateLegs(legs []entities.ParlayLegInput) error {
	if len(legs) < minParlayLegs {
		return fmt.Errorf("parlay requires at least %d legs, got %d", minParlayLegs, len(legs))
	}
	if len(legs) > maxParlayLegs {
		return fmt.Errorf("parlay allows at most %d legs, got %d", maxParlayLegs, len(legs))
	}

	seen := make(map[int64]bool, len(legs))
	for _, leg := range legs {
		if seen[leg.GameID] {
			return errors.New("parlay legs must come from distinct games")
		}
		seen[leg.GameID] = true
	}
	return nil
}

// CombinedOdds multiplies leg odds in decimal space and converts the product
// back to American odds
func (s *ParlayService) CombinedOdds(legOdds []int) (int, error) {
	if len(legOdds) == 0 {
		return 0, errors.New("no legs to combine")
	}

	decimal := 1.0
	for _, odds := range legOdds {
		multiplier, err := utils.AmericanToDecimal(odds)
		if err != nil {
			return 0, fmt.Errorf("leg odds %d: %w", odds, err)
		}
		decimal *= multiplier
	}

	combined, err := utils.DecimalToAmerican(decimal)
	if err != nil {
		return 0, fmt.Errorf("combined odds %f: %w", decimal, err)
	}
	return combined, nil
}

// PotentialPayout returns stake plus profit at the combined odds
func (s *ParlayService) PotentialPayout(stake float64, combinedOdds int) float64 {
	return utils.Payout(stake, combinedOdds)
}
