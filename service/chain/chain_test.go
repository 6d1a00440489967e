package chain

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dorkfi/dorkfi-backend/config"
	"github.com/dorkfi/dorkfi-backend/liquidation"
)

func testClient(t *testing.T, handler http.HandlerFunc) *Client {
	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)
	cfg := config.DefaultNetworkConfig
	cfg.IndexerURL = ts.URL
	cfg.AppID = 40053159
	return NewClient(cfg)
}

func TestClientStatus(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v2/status", r.URL.Path)
		fmt.Fprint(w, `{"last-round": 5000123}`)
	})
	round, err := c.Status(context.Background())
	require.NoError(t, err)
	require.Equal(t, uint64(5000123), round)
}

func TestClientUserHealthEvents(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v2/applications/40053159/events", r.URL.Path)
		require.Equal(t, "UserHealth", r.URL.Query().Get("name"))
		require.Equal(t, "3000123", r.URL.Query().Get("min-round"))
		fmt.Fprint(w, `{
			"current-round": 5000123,
			"events": [
				["UserHealth", 100, 1000, "userA", 0, 8000000000000, 4000000000000]
			]
		}`)
	})
	raws, err := c.UserHealthEvents(context.Background(), 3000123)
	require.NoError(t, err)
	require.Len(t, raws, 1)

	events, err := liquidation.DecodeEvents(raws)
	require.NoError(t, err)
	require.Equal(t, "userA", events[0].Address)
	require.Equal(t, uint64(100), events[0].Round)
	require.Equal(t, "8", events[0].Collateral.String())
	require.Equal(t, "4", events[0].Borrow.String())
}

func TestClientErrorStatus(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	})
	_, err := c.Status(context.Background())
	require.Error(t, err)
	_, err = c.UserHealthEvents(context.Background(), 0)
	require.Error(t, err)
}

func TestNetworkMinRound(t *testing.T) {
	cfg := config.DefaultNetworkConfig
	require.Equal(t, uint64(3_000_000), cfg.MinRound(5_000_000))
	require.Equal(t, uint64(0), cfg.MinRound(1_500_000))
	require.Equal(t, uint64(0), cfg.MinRound(0))
}
