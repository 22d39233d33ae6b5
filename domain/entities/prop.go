package entities

import "time"

// Prop sources. The same (game, player, propType, line) tuple can legitimately
// exist once per source and must not collide across sources.
const (
	SourceOddsAPI    = "theoddsapi"
	SourceDraftKings = "draftkings"
)

// Canonical prop type vocabulary. Yardage/count types always carry a numeric
// line; touchdown-scorer types are categorical and carry none.
const (
	PropRushYds      = "player_rush_yds"
	PropReceptionYds = "player_reception_yds"
	PropPassYds      = "player_pass_yds"
	PropPassTds      = "player_pass_tds"
	PropReceptions   = "player_receptions"
	PropReceptionTds = "player_reception_tds"
	PropRushTds      = "player_rush_tds"
	PropAnytimeTd    = "player_anytime_td"

	PropAnytimeTdScorer = "anytime_td"
	PropFirstTdScorer   = "first_td"
	Prop2PlusTdScorer   = "2plus_td"
)

// CategoricalPropType reports whether a prop type is a yes/no-style prop with
// no numeric line (single price instead of an over/under pair).
func CategoricalPropType(propType string) bool {
	switch propType {
	case PropAnytimeTdScorer, PropFirstTdScorer, Prop2PlusTdScorer:
		return true
	}
	return false
}

// PlayerProp is a single proposition line. Immutable once created; a changed
// line for the same player/propType is a new row, never an edit, so historical
// line movement survives.
type PlayerProp struct {
	ID        int64     `db:"id"`
	GameID    int64     `db:"game_id"`
	PlayerID  int64     `db:"player_id"`
	PropType  string    `db:"prop_type"`
	Line      *float64  `db:"line"`
	Source    string    `db:"source"`
	CreatedAt time.Time `db:"created_at"`
}

// PropOdds is one append-only odds snapshot. Never updated or deleted by
// ingestion; the most recent row per (prop, sportsbook) is "current".
type PropOdds struct {
	ID           int64     `db:"id"`
	PropID       int64     `db:"prop_id"`
	SportsbookID int64     `db:"sportsbook_id"`
	Source       string    `db:"source"`
	OverOdds     *int      `db:"over_odds"`
	UnderOdds    *int      `db:"under_odds"`
	OutcomeType  *string   `db:"outcome_type"`
	SingleOdds   *int      `db:"single_odds"`
	FetchedAt    time.Time `db:"fetched_at"`
}

// Sportsbook is created lazily per distinct book name seen in any payload
type Sportsbook struct {
	ID        int64     `db:"id"`
	Name      string    `db:"name"`
	Key       string    `db:"key"`
	Active    bool      `db:"active"`
	CreatedAt time.Time `db:"created_at"`
}

// BestPrice is the best over/under price across a prop's latest snapshots.
// American odds: larger is always better for the bettor.
type BestPrice struct {
	OverOdds        int
	OverSportsbook  string
	UnderOdds       int
	UnderSportsbook string
}

// BestPriceFrom picks the best over and under price from one snapshot per
// sportsbook. Entries without a price on a side are ignored for that side.
func BestPriceFrom(odds []*PropOdds, bookNames map[int64]string) *BestPrice {
	var best *BestPrice
	for _, o := range odds {
		name := bookNames[o.SportsbookID]
		if o.OverOdds != nil {
			if best == nil {
				best = &BestPrice{OverOdds: *o.OverOdds, OverSportsbook: name, UnderOdds: 0}
			} else if best.OverSportsbook == "" || *o.OverOdds > best.OverOdds {
				best.OverOdds = *o.OverOdds
				best.OverSportsbook = name
			}
		}
		if o.UnderOdds != nil {
			if best == nil {
				best = &BestPrice{UnderOdds: *o.UnderOdds, UnderSportsbook: name}
			} else if best.UnderSportsbook == "" || *o.UnderOdds > best.UnderOdds {
				best.UnderOdds = *o.UnderOdds
				best.UnderSportsbook = name
			}
		}
	}
	return best
}
