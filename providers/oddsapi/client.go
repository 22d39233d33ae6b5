package oddsapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"propbook/domain/entities"
)

const nflEventsPath = "/sports/americanfootball_nfl/events"

// DefaultMarkets is the full set of prop markets fetched when the caller
// does not narrow the request
var DefaultMarkets = []string{
	entities.PropRushYds,
	entities.PropReceptionYds,
	entities.PropPassYds,
	entities.PropPassTds,
	entities.PropReceptions,
	entities.PropReceptionTds,
	entities.PropRushTds,
	entities.PropAnytimeTd,
}

// Client fetches player props from the multi-book odds aggregator. Requests
// within a batch are paced 200ms apart to respect the provider's rate limits.
type Client struct {
	apiKey  string
	baseURL string
	client  *http.Client
	limiter *rate.Limiter
}

// NewClient creates a new aggregator client
func NewClient(apiKey, baseURL string, timeout time.Duration) *Client {
	return &Client{
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		client: &http.Client{
			Timeout: timeout,
		},
		limiter: rate.NewLimiter(rate.Every(200*time.Millisecond), 1),
	}
}

// Source returns the provider's source tag
func (c *Client) Source() string {
	return entities.SourceOddsAPI
}

// FetchUpcomingGames retrieves the list of upcoming events
func (c *Client) FetchUpcomingGames(ctx context.Context) ([]Event, error) {
	params := url.Values{}
	params.Set("apiKey", c.apiKey)

	var events []Event
	if err := c.get(ctx, nflEventsPath, params, &events); err != nil {
		return nil, err
	}

	log.WithField("games", len(events)).Info("Fetched upcoming games")
	return events, nil
}

// FetchEventOdds retrieves the odds payload for one event across the given
// prop markets
func (c *Client) FetchEventOdds(ctx context.Context, eventID string, markets []string) (*EventOdds, error) {
	params := url.Values{}
	params.Set("apiKey", c.apiKey)
	params.Set("regions", "us")
	params.Set("markets", strings.Join(markets, ","))
	params.Set("oddsFormat", "american")

	var odds EventOdds
	if err := c.get(ctx, nflEventsPath+"/"+eventID+"/odds", params, &odds); err != nil {
		return nil, err
	}
	return &odds, nil
}

// FetchAllUpcoming retrieves every upcoming event's props. A single event's
// failure is logged and skipped; the call fails only when no event at all
// could be fetched.
func (c *Client) FetchAllUpcoming(ctx context.Context, markets []string) ([]*entities.NormalizedGame, error) {
	if len(markets) == 0 {
		markets = DefaultMarkets
	}

	events, err := c.FetchUpcomingGames(ctx)
	if err != nil {
		return nil, err
	}
	if len(events) == 0 {
		return nil, nil
	}

	var games []*entities.NormalizedGame
	var failures int
	for _, event := range events {
		odds, err := c.FetchEventOdds(ctx, event.ID, markets)
		if err != nil {
			failures++
			log.WithError(err).WithField("eventId", event.ID).Warn("Failed to fetch event odds, skipping")
			continue
		}
		games = append(games, NormalizeEventOdds(odds))
	}

	if len(games) == 0 && failures > 0 {
		return nil, fmt.Errorf("all %d event odds requests failed", failures)
	}

	log.WithFields(log.Fields{
		"fetched": len(games),
		"failed":  failures,
	}).Info("Fetched props for upcoming games")
	return games, nil
}

func (c *Client) get(ctx context.Context, path string, params url.Values, out interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	reqURL := c.baseURL + path + "?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}

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
			Provider:   "oddsapi",
			StatusCode: resp.StatusCode,
			Body:       string(body),
		}
	}

	// Quota headers are the only visibility into remaining request budget
	log.WithFields(log.Fields{
		"remaining": resp.Header.Get("x-requests-remaining"),
		"used":      resp.Header.Get("x-requests-used"),
		"lastCost":  resp.Header.Get("x-requests-last"),
	}).Debug("Aggregator API usage")

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
