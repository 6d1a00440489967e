package liquidation

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func testEvent(addr string, round uint64, timestamp int64, collateral, borrow string) Event {
	return Event{
		Round:      round,
		Timestamp:  timestamp,
		Address:    addr,
		Collateral: decimal.RequireFromString(collateral),
		Borrow:     decimal.RequireFromString(borrow),
	}
}

func TestReduceLatest(t *testing.T) {
	events := []Event{
		testEvent("userA", 100, 1000, "8", "4"),
		testEvent("userB", 101, 1001, "2", "1"),
		testEvent("userA", 102, 1005, "6", "4"),
		testEvent("userA", 103, 1002, "7", "4"),
	}
	latest := ReduceLatest(events)
	require.Len(t, latest, 2)
	require.Equal(t, int64(1005), latest["userA"].Timestamp)
	require.True(t, latest["userA"].Collateral.Equal(decimal.RequireFromString("6")))
	require.Equal(t, int64(1001), latest["userB"].Timestamp)
}

func TestReduceLatestTieKeepsFirstSeen(t *testing.T) {
	events := []Event{
		testEvent("userA", 100, 1000, "8", "4"),
		testEvent("userA", 101, 1000, "5", "4"),
	}
	latest := ReduceLatest(events)
	require.True(t, latest["userA"].Collateral.Equal(decimal.RequireFromString("8")))
	require.Equal(t, uint64(100), latest["userA"].Round)
}

func TestReduceLatestSelectsMaxTimestampPerAddress(t *testing.T) {
	events := []Event{
		testEvent("userA", 1, 5, "1", "1"),
		testEvent("userB", 2, 9, "1", "1"),
		testEvent("userA", 3, 12, "1", "1"),
		testEvent("userB", 4, 3, "1", "1"),
		testEvent("userC", 5, 1, "1", "1"),
	}
	latest := ReduceLatest(events)
	for addr, got := range latest {
		for _, ev := range events {
			if ev.Address == addr {
				require.GreaterOrEqual(t, got.Timestamp, ev.Timestamp)
			}
		}
	}
	require.Len(t, latest, 3)
}

func TestReduceLatestIdempotent(t *testing.T) {
	events := []Event{
		testEvent("userA", 100, 1000, "8", "4"),
		testEvent("userB", 101, 1001, "2", "1"),
		testEvent("userA", 102, 1005, "6", "4"),
	}
	once := ReduceLatest(events)
	var asEvents []Event
	for _, ev := range once {
		asEvents = append(asEvents, ev)
	}
	twice := ReduceLatest(asEvents)
	require.Equal(t, once, twice)
}

func TestReduceLatestEmpty(t *testing.T) {
	require.Empty(t, ReduceLatest(nil))
}
