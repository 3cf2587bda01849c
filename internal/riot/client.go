// Package riot provides a rate-limited client for the Riot match-v5 and
// account-v1 APIs plus the Data Dragon static-data CDN.
package riot

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"time"

	"golang.org/x/time/rate"
)

// Dev-key budget is 20 req/s and 100 req/2min; stay under both.
const (
	requestsPerSecond = 15
	requestsPer2Min   = 90
)

// Config holds everything the client needs. The composition root constructs
// it once and passes the client down; nothing here is ambient state.
type Config struct {
	APIKey string
	// Region is the regional routing value for match-v5/account-v1
	// (americas, asia, europe, sea). Defaults to europe.
	Region string
}

// Client talks to the Riot API and Data Dragon. Safe for concurrent use.
type Client struct {
	apiKey     string
	http       *http.Client
	baseURL    string // regional API root
	ddragonURL string // static-data CDN root

	shortLimit *rate.Limiter
	longLimit  *rate.Limiter
}

// NewClient returns a client authenticated with cfg.APIKey, routed to
// cfg.Region.
func NewClient(cfg Config) *Client {
	region := cfg.Region
	if region == "" {
		region = "europe"
	}
	return &Client{
		apiKey:     cfg.APIKey,
		http:       &http.Client{Timeout: 30 * time.Second},
		baseURL:    fmt.Sprintf("https://%s.api.riotgames.com", region),
		ddragonURL: "https://ddragon.leagueoflegends.com",
		shortLimit: rate.NewLimiter(rate.Limit(requestsPerSecond), requestsPerSecond),
		longLimit:  rate.NewLimiter(rate.Every(2*time.Minute/requestsPer2Min), requestsPer2Min),
	}
}

// StatusError is a non-2xx response from the upstream API.
type StatusError struct {
	Op   string
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("riot: %s: HTTP %d", e.Op, e.Code)
}

// Transient reports whether the failure is worth retrying (rate limit or
// server-side error). 4xx responses are permanent.
func (e *StatusError) Transient() bool {
	return e.Code == http.StatusTooManyRequests || e.Code >= 500
}

// transientError marks network and malformed-payload failures as retryable.
type transientError struct{ err error }

func (e *transientError) Error() string { return e.err.Error() }
func (e *transientError) Unwrap() error { return e.err }

// IsTransient reports whether err is a retryable upstream failure: a network
// error, a malformed payload, a 429 or a 5xx. Other API errors (bad key,
// unknown match) are permanent.
func IsTransient(err error) bool {
	var se *StatusError
	if errors.As(err, &se) {
		return se.Transient()
	}
	var te *transientError
	return errors.As(err, &te)
}

// get performs a rate-limited GET against the given absolute URL and decodes
// the JSON body into out. The API key header is only attached for API hosts,
// not for the public CDN.
func (c *Client) get(ctx context.Context, op, rawURL string, authed bool, out any) error {
	if err := c.shortLimit.Wait(ctx); err != nil {
		return err
	}
	if err := c.longLimit.Wait(ctx); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fmt.Errorf("riot: %s: %w", op, err)
	}
	if authed {
		req.Header.Set("X-Riot-Token", c.apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &transientError{fmt.Errorf("riot: %s: %w", op, err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &StatusError{Op: op, Code: resp.StatusCode}
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &transientError{fmt.Errorf("riot: %s: decode: %w", op, err)}
	}
	return nil
}

// Versions returns the ordered list of game versions known to Data Dragon;
// index 0 is the current version. An empty list is treated as a malformed
// payload.
func (c *Client) Versions(ctx context.Context) ([]string, error) {
	var versions []string
	if err := c.get(ctx, "versions", c.ddragonURL+"/api/versions.json", false, &versions); err != nil {
		return nil, err
	}
	if len(versions) == 0 {
		return nil, &transientError{errors.New("riot: versions: empty version list")}
	}
	return versions, nil
}

// CurrentVersion returns the newest game version string.
func (c *Client) CurrentVersion(ctx context.Context) (string, error) {
	versions, err := c.Versions(ctx)
	if err != nil {
		return "", err
	}
	return versions[0], nil
}

// Runes fetches runesReforged.json for a version and flattens the
// tree → slot → rune hierarchy into an id → name map.
func (c *Client) Runes(ctx context.Context, version string) (map[int]string, error) {
	var trees []struct {
		Slots []struct {
			Runes []struct {
				ID   int    `json:"id"`
				Name string `json:"name"`
			} `json:"runes"`
		} `json:"slots"`
	}
	u := fmt.Sprintf("%s/cdn/%s/data/en_US/runesReforged.json", c.ddragonURL, version)
	if err := c.get(ctx, "runes", u, false, &trees); err != nil {
		return nil, err
	}
	if len(trees) == 0 {
		return nil, &transientError{errors.New("riot: runes: empty rune data")}
	}

	names := make(map[int]string)
	for _, tree := range trees {
		for _, slot := range tree.Slots {
			for _, r := range slot.Runes {
				names[r.ID] = r.Name
			}
		}
	}
	return names, nil
}

// Items fetches item.json for a version and decodes the "data" object into
// typed ItemDef records. All dynamic-shape handling of the upstream catalog
// lives here; ids are sorted ascending for deterministic processing.
func (c *Client) Items(ctx context.Context, version string) ([]ItemDef, error) {
	var payload struct {
		Data map[string]struct {
			Name string   `json:"name"`
			Into []string `json:"into"`
		} `json:"data"`
	}
	u := fmt.Sprintf("%s/cdn/%s/data/en_US/item.json", c.ddragonURL, version)
	if err := c.get(ctx, "items", u, false, &payload); err != nil {
		return nil, err
	}
	if len(payload.Data) == 0 {
		return nil, &transientError{errors.New("riot: items: empty item data")}
	}

	defs := make([]ItemDef, 0, len(payload.Data))
	for key, entry := range payload.Data {
		id, err := strconv.Atoi(key)
		if err != nil {
			return nil, &transientError{fmt.Errorf("riot: items: non-numeric item id %q", key)}
		}
		defs = append(defs, ItemDef{ID: id, Name: entry.Name, Into: entry.Into})
	}
	sort.Slice(defs, func(i, j int) bool { return defs[i].ID < defs[j].ID })
	return defs, nil
}

// Account looks up an account by Riot ID (gameName#tagLine).
func (c *Client) Account(ctx context.Context, gameName, tagLine string) (*AccountResponse, error) {
	u := fmt.Sprintf("%s/riot/account/v1/accounts/by-riot-id/%s/%s",
		c.baseURL, url.PathEscape(gameName), url.PathEscape(tagLine))
	var account AccountResponse
	if err := c.get(ctx, "account", u, true, &account); err != nil {
		return nil, err
	}
	return &account, nil
}

// MatchIDs returns up to count recent match ids for a PUUID, newest first.
func (c *Client) MatchIDs(ctx context.Context, puuid string, count int) ([]string, error) {
	u := fmt.Sprintf("%s/lol/match/v5/matches/by-puuid/%s/ids?count=%d", c.baseURL, puuid, count)
	var ids []string
	if err := c.get(ctx, "match ids", u, true, &ids); err != nil {
		return nil, err
	}
	return ids, nil
}

// Match fetches the end-state summary for one match.
func (c *Client) Match(ctx context.Context, matchID string) (*MatchResponse, error) {
	u := fmt.Sprintf("%s/lol/match/v5/matches/%s", c.baseURL, matchID)
	var match MatchResponse
	if err := c.get(ctx, "match "+matchID, u, true, &match); err != nil {
		return nil, err
	}
	return &match, nil
}

// Timeline fetches the event timeline for one match.
func (c *Client) Timeline(ctx context.Context, matchID string) (*TimelineResponse, error) {
	u := fmt.Sprintf("%s/lol/match/v5/matches/%s/timeline", c.baseURL, matchID)
	var timeline TimelineResponse
	if err := c.get(ctx, "timeline "+matchID, u, true, &timeline); err != nil {
		return nil, err
	}
	return &timeline, nil
}

// DraftMatchIDs returns the recent match ids whose queue is one of the three
// supported match modes, preserving the upstream order. Each candidate costs
// one summary fetch; unsupported modes are discarded before any
// reconstruction is attempted.
func (c *Client) DraftMatchIDs(ctx context.Context, puuid string, count int) ([]string, error) {
	ids, err := c.MatchIDs(ctx, puuid, count)
	if err != nil {
		return nil, err
	}

	var kept []string
	for _, id := range ids {
		match, err := c.Match(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("queue check for %s: %w", id, err)
		}
		if IsSupportedQueue(match.Info.QueueID) {
			kept = append(kept, id)
		}
	}
	return kept, nil
}
