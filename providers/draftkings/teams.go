package draftkings

import (
	"strings"

	log "github.com/sirupsen/logrus"
)

// cityByAbbreviation expands the abbreviated city prefix DraftKings uses in
// participant names. The rest of the system stores full city names.
var cityByAbbreviation = map[string]string{
	"ARI": "Arizona",
	"ATL": "Atlanta",
	"BAL": "Baltimore",
	"BUF": "Buffalo",
	"CAR": "Carolina",
	"CHI": "Chicago",
	"CIN": "Cincinnati",
	"CLE": "Cleveland",
	"DAL": "Dallas",
	"DEN": "Denver",
	"DET": "Detroit",
	"GB":  "Green Bay",
	"HOU": "Houston",
	"IND": "Indianapolis",
	"JAX": "Jacksonville",
	"KC":  "Kansas City",
	"LA":  "Los Angeles",
	"LAC": "Los Angeles",
	"LAR": "Los Angeles",
	"LV":  "Las Vegas",
	"MIA": "Miami",
	"MIN": "Minnesota",
	"NE":  "New England",
	"NO":  "New Orleans",
	"NYG": "New York",
	"NYJ": "New York",
	"PHI": "Philadelphia",
	"PIT": "Pittsburgh",
	"SEA": "Seattle",
	"SF":  "San Francisco",
	"TB":  "Tampa Bay",
	"TEN": "Tennessee",
	"WAS": "Washington",
	"WSH": "Washington",
}

// CanonicalTeamName rewrites "MIA Dolphins" to "Miami Dolphins". Names whose
// first token is not a known abbreviation pass through unchanged.
func CanonicalTeamName(name string) string {
	parts := strings.SplitN(strings.TrimSpace(name), " ", 2)
	if len(parts) != 2 {
		return name
	}

	city, ok := cityByAbbreviation[parts[0]]
	if !ok {
		log.WithField("team", name).Warn("Unmapped team abbreviation, passing through")
		return name
	}
	return city + " " + parts[1]
}
