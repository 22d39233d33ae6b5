package draftkings

// Response is the league-subcategory markets payload: flat event, market and
// selection lists joined by id
type Response struct {
	Events     []Event     `json:"events"`
	Markets    []Market    `json:"markets"`
	Selections []Selection `json:"selections"`
}

// Event is one game. Name reads like "BAL Ravens @ MIA Dolphins".
type Event struct {
	ID             string        `json:"id"`
	Name           string        `json:"name"`
	StartEventDate string        `json:"startEventDate"`
	Status         string        `json:"status"`
	Participants   []Participant `json:"participants"`
}

// Participant is a team within an event. Name carries the abbreviated city
// form ("MIA Dolphins").
type Participant struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	VenueRole string `json:"venueRole"`
	Type      string `json:"type"`
}

// Market is one offer within an event
type Market struct {
	ID            string `json:"id"`
	EventID       string `json:"eventId"`
	Name          string `json:"name"`
	SubcategoryID string `json:"subcategoryId"`
}

// Selection is one priced outcome. Odds arrive as strings, sometimes with a
// non-ASCII minus glyph. MilestoneValue, when present, is the line.
type Selection struct {
	ID             string                 `json:"id"`
	MarketID       string                 `json:"marketId"`
	Label          string                 `json:"label"`
	DisplayOdds    DisplayOdds            `json:"displayOdds"`
	OutcomeType    string                 `json:"outcomeType"`
	MilestoneValue *float64               `json:"milestoneValue"`
	Participants   []SelectionParticipant `json:"participants"`
	Metadata       map[string]interface{} `json:"metadata"`
}

// DisplayOdds carries the string-typed prices
type DisplayOdds struct {
	American   string `json:"american"`
	Decimal    string `json:"decimal"`
	Fractional string `json:"fractional"`
}

// SelectionParticipant is the player a selection references
type SelectionParticipant struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Type      string `json:"type"`
	VenueRole string `json:"venueRole"`
}
