package liquidation

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func rawEvent(round, timestamp interface{}, addr string, hf, collateral, borrow interface{}) []interface{} {
	return []interface{}{"UserHealth", round, timestamp, addr, hf, collateral, borrow}
}

func TestDecodeEvent(t *testing.T) {
	ev, err := DecodeEvent(rawEvent(
		json.Number("100"), json.Number("1000"), "userA",
		json.Number("0"), json.Number("8000000000000"), json.Number("4000000000000")))
	require.NoError(t, err)
	require.Equal(t, uint64(100), ev.Round)
	require.Equal(t, int64(1000), ev.Timestamp)
	require.Equal(t, "userA", ev.Address)
	require.True(t, ev.Collateral.Equal(decimal.RequireFromString("8")), "collateral = %s", ev.Collateral)
	require.True(t, ev.Borrow.Equal(decimal.RequireFromString("4")), "borrow = %s", ev.Borrow)
}

func TestDecodeEventNumericTypes(t *testing.T) {
	for _, tc := range []struct {
		name string
		raw  []interface{}
	}{
		{"float64", rawEvent(float64(100), float64(1000), "userA", float64(0), float64(2e12), float64(1e12))},
		{"string", rawEvent("100", "1000", "userA", "0", "2000000000000", "1000000000000")},
		{"int64", rawEvent(int64(100), int64(1000), "userA", int64(0), int64(2000000000000), int64(1000000000000))},
		{"uint64", rawEvent(uint64(100), uint64(1000), "userA", uint64(0), uint64(2000000000000), uint64(1000000000000))},
	} {
		t.Run(tc.name, func(t *testing.T) {
			ev, err := DecodeEvent(tc.raw)
			require.NoError(t, err)
			require.True(t, ev.Collateral.Equal(decimal.RequireFromString("2")))
			require.True(t, ev.Borrow.Equal(decimal.RequireFromString("1")))
		})
	}
}

func TestDecodeEventErrors(t *testing.T) {
	for _, tc := range []struct {
		name  string
		raw   []interface{}
		field string
	}{
		{"too short", []interface{}{"UserHealth", json.Number("1")}, "tuple"},
		{"nil round", rawEvent(nil, json.Number("1000"), "userA", json.Number("0"), json.Number("1"), json.Number("1")), "round"},
		{"non-numeric timestamp", rawEvent(json.Number("100"), "abc", "userA", json.Number("0"), json.Number("1"), json.Number("1")), "timestamp"},
		{"fractional round", rawEvent(json.Number("100.5"), json.Number("1000"), "userA", json.Number("0"), json.Number("1"), json.Number("1")), "round"},
		{"negative collateral", rawEvent(json.Number("100"), json.Number("1000"), "userA", json.Number("0"), json.Number("-1"), json.Number("1")), "collateral"},
		{"round out of range", rawEvent(json.Number("18446744073709551616"), json.Number("1000"), "userA", json.Number("0"), json.Number("1"), json.Number("1")), "round"},
		{"timestamp out of range", rawEvent(json.Number("100"), json.Number("9223372036854775808"), "userA", json.Number("0"), json.Number("1"), json.Number("1")), "timestamp"},
		{"empty address", rawEvent(json.Number("100"), json.Number("1000"), "", json.Number("0"), json.Number("1"), json.Number("1")), "address"},
		{"wrong address type", []interface{}{"UserHealth", json.Number("100"), json.Number("1000"), 42, json.Number("0"), json.Number("1"), json.Number("1")}, "address"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			_, err := DecodeEvent(tc.raw)
			require.Error(t, err)
			var de *DecodeError
			require.ErrorAs(t, err, &de)
			require.Equal(t, tc.field, de.Field)
		})
	}
}

func TestDecodeEventsFailsWholeBatch(t *testing.T) {
	raws := [][]interface{}{
		rawEvent(json.Number("100"), json.Number("1000"), "userA", json.Number("0"), json.Number("1"), json.Number("1")),
		rawEvent(json.Number("101"), nil, "userB", json.Number("0"), json.Number("1"), json.Number("1")),
	}
	_, err := DecodeEvents(raws)
	require.Error(t, err)

	evs, err := DecodeEvents(raws[:1])
	require.NoError(t, err)
	require.Len(t, evs, 1)
}
