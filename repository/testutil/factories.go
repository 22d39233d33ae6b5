package testutil

import (
	"time"

	"propbook/domain/entities"
)

// CreateTestWager creates a pending test wager with default values
func CreateTestWager(userID, propID, sportsbookID int64) *entities.Wager {
	return &entities.Wager{
		UserID:       userID,
		PropID:       propID,
		SportsbookID: sportsbookID,
		Side:         entities.SideOver,
		Amount:       50,
		Odds:         -110,
	}
}

// CreateTestMapping creates an active roster mapping with default values
func CreateTestMapping(playerName, teamName string) *entities.PlayerTeamMapping {
	return &entities.PlayerTeamMapping{
		PlayerName: playerName,
		TeamName:   teamName,
		Position:   "RB",
		Active:     true,
	}
}

// CreateTestOdds creates an over/under odds snapshot for a prop
func CreateTestOdds(propID, sportsbookID int64, over, under int) *entities.PropOdds {
	return &entities.PropOdds{
		PropID:       propID,
		SportsbookID: sportsbookID,
		Source:       entities.SourceOddsAPI,
		OverOdds:     &over,
		UnderOdds:    &under,
	}
}

// Kickoff returns a deterministic future commence time for seeded games
func Kickoff() time.Time {
	return time.Date(2025, 11, 2, 18, 0, 0, 0, time.UTC)
}
