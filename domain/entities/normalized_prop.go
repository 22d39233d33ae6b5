package entities

import "time"

// BookQuote is one sportsbook's price(s) for a normalized prop. Yardage props
// carry an over/under pair; categorical props carry an outcome type and a
// single price.
type BookQuote struct {
	Sportsbook  string
	OverOdds    *int
	UnderOdds   *int
	OutcomeType *string
	SingleOdds  *int
}

// NormalizedProp is the canonical prop representation every provider adapter
// normalizes into. Line is nil only for categorical prop types.
type NormalizedProp struct {
	PlayerName string
	PropType   string
	Line       *float64
	AllOdds    []BookQuote
}

// NormalizedGame groups the props of one provider event together with the
// identity the repository needs to upsert the game.
type NormalizedGame struct {
	ExternalID   string
	HomeTeam     string
	AwayTeam     string
	CommenceTime time.Time
	Props        []NormalizedProp
}
