package draftkings

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

// Tracked subcategory ids, found by inspecting the sportsbook's own requests
const (
	SubcategoryRushingYards   = "16571"
	SubcategoryReceivingYards = "16570"
	SubcategoryPassingYards   = "16569"
	SubcategoryTdScorers      = "12438"
)

type subcategory struct {
	id   string
	name string
}

var trackedSubcategories = []subcategory{
	{SubcategoryRushingYards, "Rushing Yards"},
	{SubcategoryReceivingYards, "Receiving Yards"},
	{SubcategoryPassingYards, "Passing Yards"},
	{SubcategoryTdScorers, "TD Scorers"},
}

// Selector names accepted by FetchProps, matching the admin trigger vocabulary
var subcategoriesBySelector = map[string]subcategory{
	"rushing":   {SubcategoryRushingYards, "Rushing Yards"},
	"receiving": {SubcategoryReceivingYards, "Receiving Yards"},
	"passing":   {SubcategoryPassingYards, "Passing Yards"},
	"touchdown": {SubcategoryTdScorers, "TD Scorers"},
}

// Client fetches player props from the sportsbook's own markets endpoint,
// one request per tracked subcategory, paced 200ms apart
type Client struct {
	baseURL  string
	leagueID string
	client   *http.Client
	limiter  *rate.Limiter
	parser   *Parser
}

// NewClient creates a new single-book client
func NewClient(baseURL, leagueID string, timeout time.Duration) *Client {
	return &Client{
		baseURL:  strings.TrimRight(baseURL, "/"),
		leagueID: leagueID,
		client: &http.Client{
			Timeout: timeout,
		},
		limiter: rate.NewLimiter(rate.Every(200*time.Millisecond), 1),
		parser:  NewParser(),
	}
}

// Source returns the provider's source tag
func (c *Client) Source() string {
	return entities.SourceDraftKings
}

// FetchSubcategory retrieves one subcategory's events, markets and selections
func (c *Client) FetchSubcategory(ctx context.Context, subcategoryID string) (*Response, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.buildURL(subcategoryID), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &entities.UpstreamError{
			Provider:   "draftkings",
			StatusCode: resp.StatusCode,
			Body:       string(body),
		}
	}

	var data Response
	if err := json.Unmarshal(body, &data); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	log.WithFields(log.Fields{
		"subcategory": subcategoryID,
		"events":      len(data.Events),
		"markets":     len(data.Markets),
		"selections":  len(data.Selections),
	}).Debug("Fetched subcategory")
	return &data, nil
}

// FetchProps fetches the selected subcategory, or all four tracked ones when
// the selector is empty, merges the responses and normalizes the result. A
// failed subcategory is skipped; the call fails only when every subcategory
// failed.
func (c *Client) FetchProps(ctx context.Context, selector string) ([]*entities.NormalizedGame, error) {
	subcategories := trackedSubcategories
	if selector != "" {
		sub, ok := subcategoriesBySelector[selector]
		if !ok {
			return nil, fmt.Errorf("unknown prop category selector %q", selector)
		}
		subcategories = []subcategory{sub}
	}

	var responses []*Response
	var failures int

	for _, sub := range subcategories {
		data, err := c.FetchSubcategory(ctx, sub.id)
		if err != nil {
			failures++
			log.WithError(err).WithField("subcategory", sub.name).Warn("Skipping subcategory")
			continue
		}
		responses = append(responses, data)
	}

	if len(responses) == 0 {
		return nil, fmt.Errorf("all %d subcategory requests failed", failures)
	}

	merged := MergeResponses(responses)
	log.WithFields(log.Fields{
		"events":     len(merged.Events),
		"selections": len(merged.Selections),
		"failed":     failures,
	}).Info("Fetched sportsbook props")

	return c.parser.Parse(merged), nil
}

// buildURL reproduces the sportsbook's own OData-style filter strings
func (c *Client) buildURL(subcategoryID string) string {
	eventsQuery := fmt.Sprintf(
		"$filter=leagueId eq '%s' AND clientMetadata/Subcategories/any(s: s/Id eq '%s')",
		c.leagueID, subcategoryID)
	marketsQuery := fmt.Sprintf(
		"$filter=clientMetadata/subCategoryId eq '%s' AND tags/all(t: t ne 'SportcastBetBuilder')",
		subcategoryID)

	params := url.Values{}
	params.Set("isBatchable", "false")
	params.Set("templateVars", c.leagueID+","+subcategoryID)
	params.Set("eventsQuery", eventsQuery)
	params.Set("marketsQuery", marketsQuery)
	params.Set("include", "Events")
	params.Set("entity", "events")

	return c.baseURL + "?" + params.Encode()
}

// MergeResponses combines per-subcategory payloads into one. Events are
// deduplicated by id (the same game appears under every subcategory); markets
// and selections concatenate verbatim.
func MergeResponses(responses []*Response) *Response {
	merged := &Response{}
	seen := make(map[string]bool)

	for _, resp := range responses {
		for _, event := range resp.Events {
			if seen[event.ID] {
				continue
			}
			seen[event.ID] = true
			merged.Events = append(merged.Events, event)
		}
		merged.Markets = append(merged.Markets, resp.Markets...)
		merged.Selections = append(merged.Selections, resp.Selections...)
	}
	return merged
}
