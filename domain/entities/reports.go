package entities

import "time"

// IngestReport summarizes one ingestion batch. Per-item failures are recorded
// here rather than propagated; only a batch with zero successes is fatal.
type IngestReport struct {
	RunID         string
	Source        string
	GamesTotal    int
	GamesIngested int
	PropsSaved    int
	PropsSkipped  int
	Errors        []string
	StartedAt     time.Time
	FinishedAt    time.Time
}

// RosterSyncReport summarizes one full roster refresh
type RosterSyncReport struct {
	RunID          string
	TeamsProcessed int
	PlayersAdded   int
	PlayersUpdated int
	Errors         []string
}

// SettlementResult is the outcome of settling a single wager
type SettlementResult struct {
	WagerID     int64
	UserID      int64
	Status      WagerStatus
	Profit      float64
	Payout      float64
	PlayerName  string
	ActualValue float64
	Line        float64
}

// SettlementReport summarizes one settlement pass
type SettlementReport struct {
	RunID         string
	GamesSettled  int
	WagersSettled int
	Results       []*SettlementResult
	Errors        []string
}
