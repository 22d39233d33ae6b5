package espn

// teamsResponse is the league teams list: sports -> leagues -> teams
type teamsResponse struct {
	Sports []struct {
		Leagues []struct {
			Teams []teamEntry `json:"teams"`
		} `json:"leagues"`
	} `json:"sports"`
}

type teamEntry struct {
	Team struct {
		ID           string `json:"id"`
		DisplayName  string `json:"displayName"`
		Abbreviation string `json:"abbreviation"`
	} `json:"team"`
}

// rosterResponse groups athletes by positional group (offense, defense, ...)
type rosterResponse struct {
	Athletes []struct {
		Position string          `json:"position"`
		Items    []rosterAthlete `json:"items"`
	} `json:"athletes"`
}

type rosterAthlete struct {
	ID       string `json:"id"`
	FullName string `json:"fullName"`
	Jersey   string `json:"jersey"`
	Position struct {
		Abbreviation string `json:"abbreviation"`
	} `json:"position"`
}

// scoreboardResponse is the current week's games
type scoreboardResponse struct {
	Events []scoreboardEvent `json:"events"`
}

type scoreboardEvent struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Date   string `json:"date"`
	Status struct {
		Type struct {
			Completed bool `json:"completed"`
		} `json:"type"`
	} `json:"status"`
	Competitions []competition `json:"competitions"`
}

type competition struct {
	Competitors []competitor `json:"competitors"`
	Status      *eventStatus `json:"status"`
}

type competitor struct {
	HomeAway string `json:"homeAway"`
	Score    string `json:"score"`
	Team     struct {
		DisplayName  string `json:"displayName"`
		Abbreviation string `json:"abbreviation"`
	} `json:"team"`
}

type eventStatus struct {
	Type struct {
		Completed   bool   `json:"completed"`
		Description string `json:"description"`
	} `json:"type"`
}

// summaryResponse is the per-game summary with the box score
type summaryResponse struct {
	Header struct {
		Competitions []competition `json:"competitions"`
	} `json:"header"`
	Boxscore *boxscore `json:"boxscore"`
}

type boxscore struct {
	Players []teamPlayers `json:"players"`
}

// teamPlayers is one team's positional stat groups
type teamPlayers struct {
	Statistics []statCategory `json:"statistics"`
}

// statCategory carries a fixed-format stats array per athlete. Passing is
// [C/ATT, YDS, TD, INT]; rushing [CAR, YDS, AVG, TD, LONG]; receiving
// [REC, YDS, AVG, TD, LONG, TGTS].
type statCategory struct {
	Name     string `json:"name"`
	Athletes []struct {
		Athlete struct {
			ID          string `json:"id"`
			DisplayName string `json:"displayName"`
		} `json:"athlete"`
		Stats []string `json:"stats"`
	} `json:"athletes"`
}
