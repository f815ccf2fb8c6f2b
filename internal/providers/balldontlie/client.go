package balldontlie

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/preston-bernstein/nba-roster-service/internal/domain/players"
	"github.com/preston-bernstein/nba-roster-service/internal/providers"
)

// Config controls how the balldontlie client reaches the upstream API.
type Config struct {
	BaseURL    string
	APIKey     string
	HTTPClient *http.Client
}

// Client fetches player pages from the balldontlie API and maps them to domain models.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient httpDoer
	now        func() time.Time
}

var _ providers.PlayerProvider = (*Client)(nil)

// NewClient constructs a balldontlie client with the provided configuration.
func NewClient(cfg Config) *Client {
	return &Client{
		baseURL:    normalizeBaseURL(cfg.BaseURL),
		apiKey:     cfg.APIKey,
		httpClient: resolveHTTPClient(cfg.HTTPClient),
		now:        time.Now,
	}
}

// FetchPlayers retrieves a single cursor page of players.
func (c *Client) FetchPlayers(ctx context.Context, q players.Query) (players.Page, error) {
	req, err := c.buildRequest(ctx, q)
	if err != nil {
		return players.Page{}, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return players.Page{}, err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, errorBodyLimit))
		return players.Page{}, &providers.RateLimitError{
			Provider:   providerName,
			StatusCode: resp.StatusCode,
			RetryAfter: parseRetryAfter(resp.Header.Get("Retry-After"), c.now()),
		}
	case resp.StatusCode != http.StatusOK:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, errorBodyLimit))
		return players.Page{}, &providers.StatusError{
			Provider:   providerName,
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(body)),
		}
	}

	var payload playersResponse
	if decodeErr := json.NewDecoder(resp.Body).Decode(&payload); decodeErr != nil {
		return players.Page{}, fmt.Errorf("balldontlie: decode players: %w", decodeErr)
	}
	return mapPage(payload), nil
}

func (c *Client) buildRequest(ctx context.Context, q players.Query) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/players", nil)
	if err != nil {
		return nil, err
	}
	req.URL.RawQuery = encodeQuery(q).Encode()

	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}
	req.Header.Set("Content-Type", "application/json")

	return req, nil
}

func encodeQuery(q players.Query) url.Values {
	v := url.Values{}
	if q.Cursor != nil {
		v.Set("cursor", strconv.Itoa(*q.Cursor))
	}
	v.Set("per_page", strconv.Itoa(resolvePerPage(q.PerPage)))
	if q.Search != "" {
		v.Set("search", q.Search)
	}
	if q.FirstName != "" {
		v.Set("first_name", q.FirstName)
	}
	if q.LastName != "" {
		v.Set("last_name", q.LastName)
	}
	for _, id := range q.TeamIDs {
		v.Add("team_ids[]", strconv.Itoa(id))
	}
	for _, id := range q.PlayerIDs {
		v.Add("player_ids[]", strconv.Itoa(id))
	}
	return v
}
