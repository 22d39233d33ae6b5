package entities

// PlayerStats accumulates one player's box-score statistics across all
// positional stat groups the player appears in.
type PlayerStats struct {
	PlayerID            string
	PlayerName          string
	PassingYards        int
	PassingTouchdowns   int
	RushingYards        int
	RushingTouchdowns   int
	ReceivingYards      int
	Receptions          int
	ReceivingTouchdowns int
}

// GameResult is a completed game's final score plus per-player statistics
type GameResult struct {
	ExternalID  string
	Completed   bool
	HomeScore   int
	AwayScore   int
	PlayerStats []*PlayerStats
}

// StatForPropType maps a prop type to the statistic it settles against.
// Returns false for prop types that cannot be settled from a box score.
func (p *PlayerStats) StatForPropType(propType string) (float64, bool) {
	switch propType {
	case PropPassYds:
		return float64(p.PassingYards), true
	case PropPassTds:
		return float64(p.PassingTouchdowns), true
	case PropRushYds:
		return float64(p.RushingYards), true
	case PropRushTds:
		return float64(p.RushingTouchdowns), true
	case PropReceptionYds:
		return float64(p.ReceivingYards), true
	case PropReceptions:
		return float64(p.Receptions), true
	case PropReceptionTds:
		return float64(p.ReceivingTouchdowns), true
	case PropAnytimeTd, PropAnytimeTdScorer:
		return float64(p.RushingTouchdowns + p.ReceivingTouchdowns), true
	}
	return 0, false
}
