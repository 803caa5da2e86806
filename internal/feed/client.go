// Package feed talks to the football-data.org v4 API and normalizes its
// records into domain match state.
package feed

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/bytedance/sonic"

	"github.com/KaavyaOfficial/momentum-fc/internal/models/domain"
	feedmodels "github.com/KaavyaOfficial/momentum-fc/internal/models/feed"
	"github.com/KaavyaOfficial/momentum-fc/internal/options"
)

// APIError is a non-2xx answer from the feed, as opposed to a transport
// failure. Callers distinguish the two when reporting feed health.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("feed returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("feed returned status %d: %s", e.StatusCode, e.Message)
}

// Client is the HTTP client for the live feed. Failures are terminal for
// the poll cycle that issued them; the next cycle retries independently.
type Client struct {
	baseURL    string
	apiToken   string
	httpClient *http.Client
}

func NewClient(opts *options.Options) *Client {
	return &Client{
		baseURL:  opts.APIBaseURL,
		apiToken: opts.APIToken,
		httpClient: &http.Client{
			Timeout: time.Duration(opts.FeedTimeoutSeconds) * time.Second,
		},
	}
}

// LiveMatches fetches the matches currently marked LIVE upstream,
// restricted to the given competitions.
func (c *Client) LiveMatches(ctx context.Context, competitions []int64) ([]*feedmodels.Match, error) {
	params := url.Values{}
	params.Set("status", "LIVE")
	params.Set("competitions", joinIDs(competitions))

	resp, err := c.getMatches(ctx, params)
	if err != nil {
		return nil, err
	}
	return resp.Matches, nil
}

// UpcomingMatches fetches the SCHEDULED matches of the next daysAhead days.
func (c *Client) UpcomingMatches(ctx context.Context, competitions []int64, daysAhead int) ([]*feedmodels.Match, error) {
	now := time.Now().UTC()
	params := url.Values{}
	params.Set("status", "SCHEDULED")
	params.Set("competitions", joinIDs(competitions))
	params.Set("dateFrom", now.Format("2006-01-02"))
	params.Set("dateTo", now.AddDate(0, 0, daysAhead).Format("2006-01-02"))

	resp, err := c.getMatches(ctx, params)
	if err != nil {
		return nil, err
	}
	return resp.Matches, nil
}

func (c *Client) getMatches(ctx context.Context, params url.Values) (*feedmodels.MatchesResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/matches", nil)
	if err != nil {
		return nil, fmt.Errorf("creating feed request: %w", err)
	}
	req.URL.RawQuery = params.Encode()
	req.Header.Set("X-Auth-Token", c.apiToken)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling feed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading feed response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var apiErr feedmodels.ErrorResponse
		if err := sonic.Unmarshal(body, &apiErr); err == nil && apiErr.Message != "" {
			return nil, &APIError{StatusCode: resp.StatusCode, Message: apiErr.Message}
		}
		return nil, &APIError{StatusCode: resp.StatusCode}
	}

	var result feedmodels.MatchesResponse
	if err := sonic.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("decoding feed response: %w", err)
	}
	return &result, nil
}

func joinIDs(ids []int64) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.FormatInt(id, 10)
	}
	return strings.Join(parts, ",")
}

// FilterByCompetition keeps only records from allow-listed competitions.
func FilterByCompetition(matches []*feedmodels.Match, allowed []int64) []*feedmodels.Match {
	allow := make(map[int64]bool, len(allowed))
	for _, id := range allowed {
		allow[id] = true
	}

	out := make([]*feedmodels.Match, 0, len(matches))
	for _, m := range matches {
		if m == nil || !allow[m.Competition.ID] {
			continue
		}
		out = append(out, m)
	}
	return out
}

// Normalize maps one feed record into canonical match state. Unknown
// statuses pass through as-is; missing scores count as zero.
func Normalize(m *feedmodels.Match) *domain.MatchState {
	scoreHome := 0
	if m.Score.FullTime.Home != nil {
		scoreHome = *m.Score.FullTime.Home
	}
	scoreAway := 0
	if m.Score.FullTime.Away != nil {
		scoreAway = *m.Score.FullTime.Away
	}

	return &domain.MatchState{
		ID:        m.ID,
		Name:      m.HomeTeam.Name + " vs " + m.AwayTeam.Name,
		HomeTeam:  m.HomeTeam.Name,
		AwayTeam:  m.AwayTeam.Name,
		Status:    m.Status,
		UTCDate:   m.UTCDate,
		ScoreHome: scoreHome,
		ScoreAway: scoreAway,
	}
}
