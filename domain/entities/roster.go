package entities

// RosterTeam is a team as reported by the results/roster provider
type RosterTeam struct {
	ID           string
	DisplayName  string
	Abbreviation string
}

// RosterAthlete is a player as reported by the results/roster provider
type RosterAthlete struct {
	FullName string
	Position string
	Jersey   string
}
