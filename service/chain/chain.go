package chain

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	jsoniter "github.com/json-iterator/go"

	"github.com/dorkfi/dorkfi-backend/config"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Client queries a network indexer for the current round and for UserHealth
// event logs emitted by the lending application.
type Client struct {
	cfg config.NetworkConfig
	hc  *http.Client
}

func NewClient(cfg config.NetworkConfig) *Client {
	return &Client{
		cfg: cfg,
		hc:  &http.Client{Timeout: cfg.RequestTimeout},
	}
}

type statusResponse struct {
	LastRound uint64 `json:"last-round"`
}

type eventsResponse struct {
	CurrentRound uint64          `json:"current-round"`
	Events       [][]interface{} `json:"events"`
}

// Status returns the indexer's latest round.
func (c *Client) Status(ctx context.Context) (uint64, error) {
	var resp statusResponse
	if err := c.get(ctx, "/v2/status", nil, &resp); err != nil {
		return 0, fmt.Errorf("get status: %w", err)
	}
	return resp.LastRound, nil
}

// UserHealthEvents returns raw UserHealth event tuples emitted by the
// lending application at or after minRound. Tuples are returned undecoded;
// numeric fields keep full precision via json.Number.
func (c *Client) UserHealthEvents(ctx context.Context, minRound uint64) ([][]interface{}, error) {
	q := url.Values{}
	q.Set("name", "UserHealth")
	q.Set("min-round", strconv.FormatUint(minRound, 10))
	var resp eventsResponse
	path := fmt.Sprintf("/v2/applications/%d/events", c.cfg.AppID)
	if err := c.get(ctx, path, q, &resp); err != nil {
		return nil, fmt.Errorf("get events: %w", err)
	}
	return resp.Events, nil
}

func (c *Client) get(ctx context.Context, path string, q url.Values, v interface{}) error {
	u, err := url.Parse(c.cfg.IndexerURL)
	if err != nil {
		return fmt.Errorf("parse indexer url: %w", err)
	}
	u.Path = path
	if q != nil {
		u.RawQuery = q.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return fmt.Errorf("new request: %w", err)
	}
	resp, err := c.hc.Do(req)
	if err != nil {
		return fmt.Errorf("request %s: %w", path, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("request %s: status %s", path, resp.Status)
	}
	d := json.NewDecoder(resp.Body)
	d.UseNumber()
	if err := d.Decode(v); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
