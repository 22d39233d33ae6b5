package draftkings

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"propbook/domain/entities"
)

func milestonePtr(v float64) *float64 { return &v }

func yardageFixture() *Response {
	return &Response{
		Events: []Event{
			{
				ID:             "dk-evt-1",
				Name:           "BUF Bills @ MIA Dolphins",
				StartEventDate: "2025-11-02T18:00:00Z",
				Participants: []Participant{
					{Name: "MIA Dolphins", VenueRole: "Home", Type: "Team"},
					{Name: "BUF Bills", VenueRole: "Away", Type: "Team"},
				},
			},
		},
		Markets: []Market{
			{ID: "mkt-1", EventID: "dk-evt-1", Name: "Rushing Yards Milestones", SubcategoryID: SubcategoryRushingYards},
		},
		Selections: []Selection{
			{
				ID:             "sel-over",
				MarketID:       "mkt-1",
				Label:          "O 55.5",
				DisplayOdds:    DisplayOdds{American: "−115"},
				MilestoneValue: milestonePtr(55.5),
				Participants:   []SelectionParticipant{{Name: "Raheem Mostert", Type: "Player"}},
			},
			{
				ID:             "sel-under",
				MarketID:       "mkt-1",
				Label:          "U 55.5",
				DisplayOdds:    DisplayOdds{American: "-105"},
				MilestoneValue: milestonePtr(55.5),
				Participants:   []SelectionParticipant{{Name: "Raheem Mostert", Type: "Player"}},
			},
		},
	}
}

func TestParser_YardagePropMergesOverUnder(t *testing.T) {
	parser := NewParser()
	games := parser.Parse(yardageFixture())

	require.Len(t, games, 1)
	game := games[0]
	assert.Equal(t, "Miami Dolphins", game.HomeTeam)
	assert.Equal(t, "Buffalo Bills", game.AwayTeam)
	assert.Equal(t, time.Date(2025, 11, 2, 18, 0, 0, 0, time.UTC), game.CommenceTime)

	require.Len(t, game.Props, 1)
	prop := game.Props[0]
	assert.Equal(t, "Raheem Mostert", prop.PlayerName)
	assert.Equal(t, entities.PropRushYds, prop.PropType)
	require.NotNil(t, prop.Line)
	assert.Equal(t, 55.5, *prop.Line)

	require.Len(t, prop.AllOdds, 1)
	quote := prop.AllOdds[0]
	assert.Equal(t, "DraftKings", quote.Sportsbook)
	require.NotNil(t, quote.OverOdds)
	assert.Equal(t, -115, *quote.OverOdds)
	require.NotNil(t, quote.UnderOdds)
	assert.Equal(t, -105, *quote.UnderOdds)
}

func TestParser_TouchdownScorerProp(t *testing.T) {
	parser := NewParser()
	data := &Response{
		Events: []Event{
			{
				ID:             "dk-evt-2",
				StartEventDate: "2025-11-02T21:25:00Z",
				Participants: []Participant{
					{Name: "KC Chiefs", VenueRole: "Home"},
					{Name: "LV Raiders", VenueRole: "Away"},
				},
			},
		},
		Markets: []Market{
			{ID: "mkt-td", EventID: "dk-evt-2", Name: "Anytime TD Scorer", SubcategoryID: SubcategoryTdScorers},
		},
		Selections: []Selection{
			{
				ID:          "sel-td",
				MarketID:    "mkt-td",
				Label:       "Isiah Pacheco",
				DisplayOdds: DisplayOdds{American: "+145"},
				OutcomeType: "ToScoreAnytime",
			},
			{
				ID:          "sel-none",
				MarketID:    "mkt-td",
				Label:       "No Touchdown Scorer",
				DisplayOdds: DisplayOdds{American: "+1200"},
			},
		},
	}

	games := parser.Parse(data)
	require.Len(t, games, 1)
	assert.Equal(t, "Kansas City Chiefs", games[0].HomeTeam)

	require.Len(t, games[0].Props, 1)
	prop := games[0].Props[0]
	assert.Equal(t, "Isiah Pacheco", prop.PlayerName)
	assert.Equal(t, entities.PropAnytimeTdScorer, prop.PropType)
	assert.Nil(t, prop.Line)
	require.Len(t, prop.AllOdds, 1)
	assert.Equal(t, 145, *prop.AllOdds[0].SingleOdds)
	assert.Equal(t, entities.PropAnytimeTdScorer, *prop.AllOdds[0].OutcomeType)
}

func TestParser_PropTypeLookupOrder(t *testing.T) {
	parser := NewParser()

	t.Run("market name wins", func(t *testing.T) {
		propType := parser.determinePropType(
			&Market{Name: "First TD Scorer", SubcategoryID: SubcategoryTdScorers},
			&Selection{OutcomeType: "ToScoreAnytime"})
		assert.Equal(t, entities.PropFirstTdScorer, propType)
	})

	t.Run("outcome type next", func(t *testing.T) {
		propType := parser.determinePropType(
			&Market{Name: "Unrecognized Market", SubcategoryID: SubcategoryTdScorers},
			&Selection{OutcomeType: "ToScore2Plus"})
		assert.Equal(t, entities.Prop2PlusTdScorer, propType)
	})

	t.Run("subcategory fallback", func(t *testing.T) {
		propType := parser.determinePropType(
			&Market{Name: "Unrecognized Market", SubcategoryID: SubcategoryPassingYards},
			&Selection{})
		assert.Equal(t, entities.PropPassYds, propType)
	})

	t.Run("touchdown subcategory alone is not enough", func(t *testing.T) {
		propType := parser.determinePropType(
			&Market{Name: "Unrecognized Market", SubcategoryID: SubcategoryTdScorers},
			&Selection{})
		assert.Equal(t, "", propType)
	})
}

func TestParser_LineExtractionChain(t *testing.T) {
	parser := NewParser()

	t.Run("milestone field preferred", func(t *testing.T) {
		line := parser.extractLine(&Selection{
			Label:          "100+",
			MilestoneValue: milestonePtr(99.5),
		})
		require.NotNil(t, line)
		assert.Equal(t, 99.5, *line)
	})

	t.Run("metadata fallback", func(t *testing.T) {
		line := parser.extractLine(&Selection{
			Label:    "Milestone",
			Metadata: map[string]interface{}{"milestoneValue": 85.5},
		})
		require.NotNil(t, line)
		assert.Equal(t, 85.5, *line)
	})

	t.Run("label regex fallback", func(t *testing.T) {
		line := parser.extractLine(&Selection{Label: "Under 150.5"})
		require.NotNil(t, line)
		assert.Equal(t, 150.5, *line)
	})

	t.Run("no line anywhere", func(t *testing.T) {
		assert.Nil(t, parser.extractLine(&Selection{Label: "Milestone"}))
	})
}

func TestParser_PolarityHeuristic(t *testing.T) {
	parser := NewParser()

	tests := []struct {
		label  string
		isOver bool
	}{
		{"Over 55.5", true},
		{"O 55.5", true},
		{"Under 55.5", false},
		{"U 55.5", false},
		{"100+", true},
		{"Mostert Milestone", true},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.isOver, parser.isOverSelection(&Selection{Label: tt.label}), "label %q", tt.label)
	}
}

func TestMergeResponses_DeduplicatesEvents(t *testing.T) {
	a := &Response{
		Events:     []Event{{ID: "evt-1"}},
		Markets:    []Market{{ID: "mkt-1"}},
		Selections: []Selection{{ID: "sel-1"}},
	}
	b := &Response{
		Events:     []Event{{ID: "evt-1"}, {ID: "evt-2"}},
		Markets:    []Market{{ID: "mkt-2"}},
		Selections: []Selection{{ID: "sel-2"}},
	}

	merged := MergeResponses([]*Response{a, b})
	assert.Len(t, merged.Events, 2)
	assert.Len(t, merged.Markets, 2)
	assert.Len(t, merged.Selections, 2)
}

func TestCanonicalTeamName(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"MIA Dolphins", "Miami Dolphins"},
		{"BUF Bills", "Buffalo Bills"},
		{"LV Raiders", "Las Vegas Raiders"},
		{"KC Chiefs", "Kansas City Chiefs"},
		{"XYZ Unknowns", "XYZ Unknowns"},
		{"Dolphins", "Dolphins"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, CanonicalTeamName(tt.input), "input %q", tt.input)
	}
}
