package espn

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"propbook/domain/entities"
)

const scoreboardMatchWindow = 24 * time.Hour

// Client fetches rosters, the scoreboard and box scores from the results feed
type Client struct {
	baseURL string
	client  *http.Client
}

// NewClient creates a new results-feed client
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

// FetchAllTeams returns every team in the league
func (c *Client) FetchAllTeams(ctx context.Context) ([]*entities.RosterTeam, error) {
	var data teamsResponse
	if err := c.get(ctx, "/teams", &data); err != nil {
		return nil, err
	}

	if len(data.Sports) == 0 || len(data.Sports[0].Leagues) == 0 {
		return nil, fmt.Errorf("unexpected teams payload shape")
	}

	entries := data.Sports[0].Leagues[0].Teams
	teams := make([]*entities.RosterTeam, 0, len(entries))
	for _, entry := range entries {
		teams = append(teams, &entities.RosterTeam{
			ID:           entry.Team.ID,
			DisplayName:  entry.Team.DisplayName,
			Abbreviation: entry.Team.Abbreviation,
		})
	}

	log.WithField("teams", len(teams)).Info("Fetched league teams")
	return teams, nil
}

// FetchTeamRoster returns a team's current roster, flattened across the
// positional groups the feed splits it into
func (c *Client) FetchTeamRoster(ctx context.Context, teamID string) ([]*entities.RosterAthlete, error) {
	var data rosterResponse
	if err := c.get(ctx, "/teams/"+teamID+"/roster", &data); err != nil {
		return nil, err
	}

	var athletes []*entities.RosterAthlete
	for _, group := range data.Athletes {
		for _, item := range group.Items {
			athletes = append(athletes, &entities.RosterAthlete{
				FullName: item.FullName,
				Position: item.Position.Abbreviation,
				Jersey:   item.Jersey,
			})
		}
	}

	log.WithFields(log.Fields{
		"teamId":  teamID,
		"players": len(athletes),
	}).Debug("Fetched team roster")
	return athletes, nil
}

// FindGameID scans the current scoreboard for an event whose competitors
// match the given teams and whose kickoff is within 24 hours of the stored
// commence time. Returns ErrStatsUnavailable when nothing matches; the
// caller retries on a later pass once the game appears on the scoreboard.
func (c *Client) FindGameID(ctx context.Context, homeTeam, awayTeam string, commenceTime time.Time) (string, error) {
	var data scoreboardResponse
	if err := c.get(ctx, "/scoreboard", &data); err != nil {
		return "", err
	}

	for _, event := range data.Events {
		if len(event.Competitions) == 0 {
			continue
		}

		var home, away string
		for _, comp := range event.Competitions[0].Competitors {
			switch comp.HomeAway {
			case "home":
				home = comp.Team.DisplayName
			case "away":
				away = comp.Team.DisplayName
			}
		}
		if !TeamsMatch(homeTeam, home) || !TeamsMatch(awayTeam, away) {
			continue
		}

		eventTime, err := time.Parse("2006-01-02T15:04Z", event.Date)
		if err != nil {
			if eventTime, err = time.Parse(time.RFC3339, event.Date); err != nil {
				log.WithField("date", event.Date).Warn("Unparseable scoreboard date")
				continue
			}
		}

		diff := eventTime.Sub(commenceTime)
		if diff < 0 {
			diff = -diff
		}
		if diff < scoreboardMatchWindow {
			log.WithFields(log.Fields{
				"eventId":  event.ID,
				"homeTeam": homeTeam,
				"awayTeam": awayTeam,
			}).Debug("Matched game on scoreboard")
			return event.ID, nil
		}
	}

	return "", fmt.Errorf("no scoreboard match for %s vs %s: %w", awayTeam, homeTeam, entities.ErrStatsUnavailable)
}

// FetchGameStats returns the final score and per-player accumulated stats for
// a completed game. Returns ErrStatsUnavailable while the game is in progress.
func (c *Client) FetchGameStats(ctx context.Context, eventID string) (*entities.GameResult, error) {
	var data summaryResponse
	if err := c.get(ctx, "/summary?event="+eventID, &data); err != nil {
		return nil, err
	}

	if len(data.Header.Competitions) == 0 {
		return nil, fmt.Errorf("summary for event %s has no competition: %w", eventID, entities.ErrStatsUnavailable)
	}
	comp := data.Header.Competitions[0]
	if comp.Status == nil || !comp.Status.Type.Completed {
		return nil, fmt.Errorf("event %s not completed: %w", eventID, entities.ErrStatsUnavailable)
	}

	result := &entities.GameResult{
		ExternalID: eventID,
		Completed:  true,
	}
	for _, competitor := range comp.Competitors {
		score := parseIntOrZero(competitor.Score)
		switch competitor.HomeAway {
		case "home":
			result.HomeScore = score
		case "away":
			result.AwayScore = score
		}
	}

	if data.Boxscore != nil {
		result.PlayerStats = ParseBoxScore(data.Boxscore)
	}

	log.WithFields(log.Fields{
		"eventId": eventID,
		"players": len(result.PlayerStats),
	}).Debug("Fetched game stats")
	return result, nil
}

func (c *Client) get(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &entities.UpstreamError{
			Provider:   "espn",
			StatusCode: resp.StatusCode,
			Body:       string(body),
		}
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
