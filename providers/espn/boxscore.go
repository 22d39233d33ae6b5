package espn

import (
	"strconv"
	"strings"

	"propbook/domain/entities"
)

// ParseBoxScore accumulates per-player statistics across both teams'
// positional stat groups. A player appearing in several groups (a running
// back who also catches passes) gets one combined entry.
func ParseBoxScore(box *boxscore) []*entities.PlayerStats {
	var all []*entities.PlayerStats
	byID := make(map[string]*entities.PlayerStats)

	for _, team := range box.Players {
		for _, category := range team.Statistics {
			for _, entry := range category.Athletes {
				ps, ok := byID[entry.Athlete.ID]
				if !ok {
					ps = &entities.PlayerStats{
						PlayerID:   entry.Athlete.ID,
						PlayerName: entry.Athlete.DisplayName,
					}
					byID[entry.Athlete.ID] = ps
					all = append(all, ps)
				}

				switch category.Name {
				case "passing":
					ps.PassingYards = statAt(entry.Stats, 1)
					ps.PassingTouchdowns = statAt(entry.Stats, 2)
				case "rushing":
					ps.RushingYards = statAt(entry.Stats, 1)
					ps.RushingTouchdowns = statAt(entry.Stats, 3)
				case "receiving":
					ps.Receptions = statAt(entry.Stats, 0)
					ps.ReceivingYards = statAt(entry.Stats, 1)
					ps.ReceivingTouchdowns = statAt(entry.Stats, 3)
				}
			}
		}
	}
	return all
}

func statAt(stats []string, index int) int {
	if index >= len(stats) {
		return 0
	}
	return parseIntOrZero(stats[index])
}

func parseIntOrZero(s string) int {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return v
}

// TeamsMatch compares team names leniently: exact, containment either
// direction, or shared last word when it is distinctive enough ("Chiefs" in
// "Kansas City Chiefs", but not "City")
func TeamsMatch(a, b string) bool {
	t1 := strings.ToLower(strings.TrimSpace(a))
	t2 := strings.ToLower(strings.TrimSpace(b))
	if t1 == "" || t2 == "" {
		return false
	}
	if t1 == t2 {
		return true
	}
	if strings.Contains(t1, t2) || strings.Contains(t2, t1) {
		return true
	}

	w1 := t1[strings.LastIndex(t1, " ")+1:]
	w2 := t2[strings.LastIndex(t2, " ")+1:]
	return w1 == w2 && len(w1) > 3
}
