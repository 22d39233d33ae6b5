package draftkings

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"propbook/domain/entities"
	"propbook/domain/utils"
)

// subcategoryPlaceholderTd marks the TD subcategory, whose selections map to
// several prop types and must resolve via market name or outcome type instead
const subcategoryPlaceholderTd = "touchdown"

var subcategoryToPropType = map[string]string{
	SubcategoryRushingYards:   entities.PropRushYds,
	SubcategoryReceivingYards: entities.PropReceptionYds,
	SubcategoryPassingYards:   entities.PropPassYds,
	SubcategoryTdScorers:      subcategoryPlaceholderTd,
}

var marketNameToPropType = map[string]string{
	"Anytime TD Scorer":         entities.PropAnytimeTdScorer,
	"Anytime Touchdown Scorer":  entities.PropAnytimeTdScorer,
	"First TD Scorer":           entities.PropFirstTdScorer,
	"1st Touchdown Scorer":      entities.PropFirstTdScorer,
	"2+ TDs":                    entities.Prop2PlusTdScorer,
	"Score 2 or More":           entities.Prop2PlusTdScorer,
}

var outcomeTypeToPropType = map[string]string{
	"ToScoreAnytime": entities.PropAnytimeTdScorer,
	"ToScoreFirst":   entities.PropFirstTdScorer,
	"ToScore2Plus":   entities.Prop2PlusTdScorer,
}

var lineFromLabel = regexp.MustCompile(`(\d+\.?\d*)`)

// Parser converts a merged sportsbook payload into normalized props grouped
// by game
type Parser struct{}

// NewParser creates a new Parser
func NewParser() *Parser {
	return &Parser{}
}

// Parse walks every selection, resolves its market and event, and emits one
// NormalizedGame per event. Selections whose prop type, player or line cannot
// be determined are logged and dropped.
func (p *Parser) Parse(data *Response) []*entities.NormalizedGame {
	eventsByID := make(map[string]*Event, len(data.Events))
	for i := range data.Events {
		eventsByID[data.Events[i].ID] = &data.Events[i]
	}
	marketsByID := make(map[string]*Market, len(data.Markets))
	for i := range data.Markets {
		marketsByID[data.Markets[i].ID] = &data.Markets[i]
	}

	propsByEvent := make(map[string][]entities.NormalizedProp)
	var eventOrder []string

	for _, selection := range data.Selections {
		market, ok := marketsByID[selection.MarketID]
		if !ok {
			log.WithField("selectionId", selection.ID).Debug("Selection without market, skipping")
			continue
		}
		event, ok := eventsByID[market.EventID]
		if !ok {
			log.WithField("selectionId", selection.ID).Debug("Selection without event, skipping")
			continue
		}

		propType := p.determinePropType(market, &selection)
		if propType == "" {
			log.WithFields(log.Fields{
				"market":      market.Name,
				"outcomeType": selection.OutcomeType,
			}).Debug("Unknown prop type, skipping selection")
			continue
		}

		prop, ok := p.parseSelection(&selection, propType)
		if !ok {
			continue
		}

		if _, exists := propsByEvent[event.ID]; !exists {
			eventOrder = append(eventOrder, event.ID)
		}
		propsByEvent[event.ID] = append(propsByEvent[event.ID], prop)
	}

	var games []*entities.NormalizedGame
	for _, eventID := range eventOrder {
		event := eventsByID[eventID]
		game := p.buildGame(event, MergePropOdds(propsByEvent[eventID]))
		if game != nil {
			games = append(games, game)
		}
	}
	return games
}

// determinePropType tries market name, then selection outcome type, then
// subcategory id. First match wins.
func (p *Parser) determinePropType(market *Market, selection *Selection) string {
	if propType, ok := marketNameToPropType[market.Name]; ok {
		return propType
	}
	if propType, ok := outcomeTypeToPropType[selection.OutcomeType]; ok {
		return propType
	}
	if propType, ok := subcategoryToPropType[market.SubcategoryID]; ok && propType != subcategoryPlaceholderTd {
		return propType
	}
	return ""
}

func (p *Parser) parseSelection(selection *Selection, propType string) (entities.NormalizedProp, bool) {
	playerName := selection.Label
	if len(selection.Participants) > 0 {
		playerName = selection.Participants[0].Name
	}
	if playerName == "" || playerName == "No Touchdown Scorer" {
		return entities.NormalizedProp{}, false
	}

	odds, err := utils.ParseAmericanOdds(selection.DisplayOdds.American)
	if err != nil {
		log.WithError(err).WithFields(log.Fields{
			"player": playerName,
			"odds":   selection.DisplayOdds.American,
		}).Warn("Unparseable odds, skipping selection")
		return entities.NormalizedProp{}, false
	}

	if entities.CategoricalPropType(propType) {
		outcomeType := propType
		return entities.NormalizedProp{
			PlayerName: playerName,
			PropType:   propType,
			AllOdds: []entities.BookQuote{
				{Sportsbook: "DraftKings", OutcomeType: &outcomeType, SingleOdds: &odds},
			},
		}, true
	}

	line := p.extractLine(selection)
	if line == nil {
		log.WithFields(log.Fields{
			"player": playerName,
			"label":  selection.Label,
		}).Debug("No resolvable line, skipping selection")
		return entities.NormalizedProp{}, false
	}

	quote := entities.BookQuote{Sportsbook: "DraftKings"}
	if p.isOverSelection(selection) {
		quote.OverOdds = &odds
	} else {
		quote.UnderOdds = &odds
	}

	return entities.NormalizedProp{
		PlayerName: playerName,
		PropType:   propType,
		Line:       line,
		AllOdds:    []entities.BookQuote{quote},
	}, true
}

// extractLine prefers the structured milestone field, then the same field in
// metadata, then the first numeric token in the label
func (p *Parser) extractLine(selection *Selection) *float64 {
	if selection.MilestoneValue != nil {
		return selection.MilestoneValue
	}

	if raw, ok := selection.Metadata["milestoneValue"]; ok {
		if v, ok := raw.(float64); ok {
			return &v
		}
	}

	if match := lineFromLabel.FindStringSubmatch(selection.Label); match != nil {
		if v, err := strconv.ParseFloat(match[1], 64); err == nil {
			return &v
		}
	}
	return nil
}

// isOverSelection infers polarity from the label. Milestone markets are over
// by default; the heuristic errs that way on ambiguous labels.
func (p *Parser) isOverSelection(selection *Selection) bool {
	label := strings.ToLower(selection.Label)

	if strings.Contains(label, "over") || strings.Contains(label, "o ") || strings.HasPrefix(label, "o") {
		return true
	}
	if strings.Contains(label, "under") || strings.Contains(label, "u ") || strings.HasPrefix(label, "u") {
		return false
	}
	if strings.Contains(label, "+") {
		return true
	}

	log.WithField("label", selection.Label).Debug("Ambiguous polarity, defaulting to over")
	return true
}

func (p *Parser) buildGame(event *Event, props []entities.NormalizedProp) *entities.NormalizedGame {
	var home, away string
	for _, participant := range event.Participants {
		switch participant.VenueRole {
		case "Home":
			home = CanonicalTeamName(participant.Name)
		case "Away":
			away = CanonicalTeamName(participant.Name)
		}
	}
	if home == "" || away == "" {
		log.WithField("event", event.Name).Warn("Event without home/away participants, skipping")
		return nil
	}

	game := &entities.NormalizedGame{
		ExternalID: event.ID,
		HomeTeam:   home,
		AwayTeam:   away,
		Props:      props,
	}
	if t, err := time.Parse(time.RFC3339, event.StartEventDate); err == nil {
		game.CommenceTime = t
	} else {
		log.WithField("startEventDate", event.StartEventDate).Warn("Unparseable event start date")
	}
	return game
}

// MergePropOdds folds selections for the same (player, propType, line) into
// one prop, combining the over and under sides of a milestone market
func MergePropOdds(props []entities.NormalizedProp) []entities.NormalizedProp {
	type mergeKey struct {
		player   string
		propType string
		line     float64
		hasLine  bool
	}

	merged := make(map[mergeKey]*entities.NormalizedProp)
	var order []mergeKey

	for i := range props {
		prop := props[i]
		key := mergeKey{player: prop.PlayerName, propType: prop.PropType}
		if prop.Line != nil {
			key.line = *prop.Line
			key.hasLine = true
		}

		existing, ok := merged[key]
		if !ok {
			merged[key] = &prop
			order = append(order, key)
			continue
		}

		current := &existing.AllOdds[0]
		incoming := prop.AllOdds[0]
		if current.OverOdds == nil {
			current.OverOdds = incoming.OverOdds
		}
		if current.UnderOdds == nil {
			current.UnderOdds = incoming.UnderOdds
		}
		if current.OutcomeType == nil {
			current.OutcomeType = incoming.OutcomeType
		}
		if current.SingleOdds == nil {
			current.SingleOdds = incoming.SingleOdds
		}
	}

	out := make([]entities.NormalizedProp, 0, len(order))
	for _, key := range order {
		out = append(out, *merged[key])
	}
	return out
}
