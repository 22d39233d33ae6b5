package entities

import "time"

// WagerSide is which side of the line the bettor took
type WagerSide string

const (
	SideOver  WagerSide = "over"
	SideUnder WagerSide = "under"
)

// WagerStatus transitions pending -> won | lost | push exactly once
type WagerStatus string

const (
	WagerStatusPending WagerStatus = "pending"
	WagerStatusWon     WagerStatus = "won"
	WagerStatusLost    WagerStatus = "lost"
	WagerStatusPush    WagerStatus = "push"
)

// Wager is a single bet against a prop at the odds quoted when it was placed
type Wager struct {
	ID           int64       `db:"id"`
	UserID       int64       `db:"user_id"`
	PropID       int64       `db:"prop_id"`
	SportsbookID int64       `db:"sportsbook_id"`
	Side         WagerSide   `db:"side"`
	Amount       float64     `db:"amount"`
	Odds         int         `db:"odds"`
	Status       WagerStatus `db:"status"`
	Profit       *float64    `db:"profit"`
	Payout       *float64    `db:"payout"`
	PlacedAt     time.Time   `db:"placed_at"`
	SettledAt    *time.Time  `db:"settled_at"`
}

// IsPending reports whether the wager still awaits settlement
func (w *Wager) IsPending() bool {
	return w.Status == WagerStatusPending
}

// WagerDetail is a wager joined with the prop it was placed against
type WagerDetail struct {
	Wager
	Prop       *PlayerProp
	PlayerName string
}

// BettingStats summarizes a user's wager history
type BettingStats struct {
	TotalWagers   int
	WonWagers     int
	LostWagers    int
	PushWagers    int
	PendingWagers int
	TotalProfit   float64
}

// WinRate returns wins over settled non-push wagers, 0 when none are settled
func (s *BettingStats) WinRate() float64 {
	settled := s.WonWagers + s.LostWagers
	if settled == 0 {
		return 0
	}
	return float64(s.WonWagers) / float64(settled)
}
