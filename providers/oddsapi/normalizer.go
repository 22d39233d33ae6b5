package oddsapi

import (
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"propbook/domain/entities"
)

// NormalizeEventOdds converts one event's bookmaker/market/outcome payload
// into the canonical prop representation. Quotes for the same player and
// prop type are collected across every bookmaker carrying that market.
func NormalizeEventOdds(odds *EventOdds) *entities.NormalizedGame {
	game := &entities.NormalizedGame{
		ExternalID: odds.ID,
		HomeTeam:   odds.HomeTeam,
		AwayTeam:   odds.AwayTeam,
	}
	if t, err := time.Parse(time.RFC3339, odds.CommenceTime); err == nil {
		game.CommenceTime = t
	} else {
		log.WithField("commenceTime", odds.CommenceTime).Warn("Unparseable commence time")
	}

	props := make(map[propIdentity]*entities.NormalizedProp)
	var order []propIdentity

	for _, bookmaker := range odds.Bookmakers {
		for _, market := range bookmaker.Markets {
			if !strings.HasPrefix(market.Key, "player_") {
				continue
			}

			if market.Key == entities.PropAnytimeTd {
				normalizeScorerMarket(bookmaker, market, props, &order)
				continue
			}

			normalizeOverUnderMarket(bookmaker, market, props, &order)
		}
	}

	for _, key := range order {
		prop := props[key]
		if prop.Line == nil && prop.PropType != entities.PropAnytimeTd {
			log.WithFields(log.Fields{
				"player":   prop.PlayerName,
				"propType": prop.PropType,
			}).Warn("Dropping prop with no resolvable line")
			continue
		}
		game.Props = append(game.Props, *prop)
	}
	return game
}

// normalizeOverUnderMarket pairs each player's Over outcome with the matching
// Under outcome at the same bookmaker
func normalizeOverUnderMarket(bookmaker Bookmaker, market Market, props map[propIdentity]*entities.NormalizedProp, order *[]propIdentity) {
	unders := make(map[string]Outcome, len(market.Outcomes))
	for _, outcome := range market.Outcomes {
		if outcome.Name == "Under" {
			unders[outcome.Description] = outcome
		}
	}

	for _, outcome := range market.Outcomes {
		if outcome.Name != "Over" {
			continue
		}
		under, ok := unders[outcome.Description]
		if !ok {
			continue
		}

		key := propIdentity{player: outcome.Description, propType: market.Key}
		prop, exists := props[key]
		if !exists {
			prop = &entities.NormalizedProp{
				PlayerName: outcome.Description,
				PropType:   market.Key,
				Line:       outcome.Point,
			}
			props[key] = prop
			*order = append(*order, key)
		}

		overOdds := outcome.Price
		underOdds := under.Price
		prop.AllOdds = append(prop.AllOdds, entities.BookQuote{
			Sportsbook: bookmaker.Title,
			OverOdds:   &overOdds,
			UnderOdds:  &underOdds,
		})
	}
}

// normalizeScorerMarket handles the anytime-TD market, which quotes a single
// yes-price per player instead of an over/under pair
func normalizeScorerMarket(bookmaker Bookmaker, market Market, props map[propIdentity]*entities.NormalizedProp, order *[]propIdentity) {
	for _, outcome := range market.Outcomes {
		if outcome.Name == "No" {
			continue
		}

		key := propIdentity{player: outcome.Description, propType: market.Key}
		prop, exists := props[key]
		if !exists {
			prop = &entities.NormalizedProp{
				PlayerName: outcome.Description,
				PropType:   market.Key,
			}
			props[key] = prop
			*order = append(*order, key)
		}

		price := outcome.Price
		outcomeType := entities.PropAnytimeTdScorer
		prop.AllOdds = append(prop.AllOdds, entities.BookQuote{
			Sportsbook:  bookmaker.Title,
			OutcomeType: &outcomeType,
			SingleOdds:  &price,
		})
	}
}

type propIdentity struct {
	player   string
	propType string
}
