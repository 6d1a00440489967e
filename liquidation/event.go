package liquidation

import (
	"encoding/json"
	"fmt"
	"math"
	"math/big"

	"github.com/shopspring/decimal"
)

// ValueScale is the fixed-point scale of collateral/borrow values in the
// UserHealth event log. On-chain values are USD amounts scaled by 10^12.
var ValueScale = decimal.New(1, 12)

// Positions of the fields inside a raw UserHealth event tuple.
const (
	eventTupleLen   = 7
	roundIndex      = 1
	timestampIndex  = 2
	addressIndex    = 3
	collateralIndex = 5
	borrowIndex     = 6
)

// Event is one decoded UserHealth observation. Collateral and Borrow are
// descaled USD values.
type Event struct {
	Round      uint64
	Timestamp  int64
	Address    string
	Collateral decimal.Decimal
	Borrow     decimal.Decimal
}

type DecodeError struct {
	Index  int
	Field  string
	Reason string
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode event field %q at index %d: %s", e.Field, e.Index, e.Reason)
}

// DecodeEvent decodes a raw UserHealth event tuple. The tuple layout is
// fixed by the contract's event ABI:
// [_, round, timestamp, address, healthFactor, collateral, borrow].
// The on-chain health factor at index 4 is ignored; it is recomputed
// locally from the descaled values.
func DecodeEvent(raw []interface{}) (Event, error) {
	if len(raw) < eventTupleLen {
		return Event{}, &DecodeError{Index: 0, Field: "tuple", Reason: fmt.Sprintf("want %d elements, got %d", eventTupleLen, len(raw))}
	}
	round, err := tupleUint(raw, roundIndex, "round")
	if err != nil {
		return Event{}, err
	}
	timestamp, err := tupleUint(raw, timestampIndex, "timestamp")
	if err != nil {
		return Event{}, err
	}
	if timestamp > math.MaxInt64 {
		return Event{}, &DecodeError{Index: timestampIndex, Field: "timestamp", Reason: "value out of range"}
	}
	addr, err := tupleString(raw, addressIndex, "address")
	if err != nil {
		return Event{}, err
	}
	collateral, err := tupleValue(raw, collateralIndex, "collateral")
	if err != nil {
		return Event{}, err
	}
	borrow, err := tupleValue(raw, borrowIndex, "borrow")
	if err != nil {
		return Event{}, err
	}
	return Event{
		Round:      round,
		Timestamp:  int64(timestamp),
		Address:    addr,
		Collateral: collateral,
		Borrow:     borrow,
	}, nil
}

// DecodeEvents decodes a batch of raw tuples. Any malformed tuple fails the
// whole batch.
func DecodeEvents(raws [][]interface{}) ([]Event, error) {
	evs := make([]Event, 0, len(raws))
	for i, raw := range raws {
		ev, err := DecodeEvent(raw)
		if err != nil {
			return nil, fmt.Errorf("event #%d: %w", i, err)
		}
		evs = append(evs, ev)
	}
	return evs, nil
}

var maxUint64 = decimal.NewFromBigInt(new(big.Int).SetUint64(math.MaxUint64), 0)

func tupleUint(raw []interface{}, i int, field string) (uint64, error) {
	d, err := tupleDecimal(raw, i, field)
	if err != nil {
		return 0, err
	}
	if d.IsNegative() {
		return 0, &DecodeError{Index: i, Field: field, Reason: "negative value"}
	}
	if !d.Equal(d.Truncate(0)) {
		return 0, &DecodeError{Index: i, Field: field, Reason: "not an integer"}
	}
	if d.GreaterThan(maxUint64) {
		return 0, &DecodeError{Index: i, Field: field, Reason: "value out of range"}
	}
	return d.BigInt().Uint64(), nil
}

func tupleValue(raw []interface{}, i int, field string) (decimal.Decimal, error) {
	d, err := tupleDecimal(raw, i, field)
	if err != nil {
		return decimal.Decimal{}, err
	}
	if d.IsNegative() {
		return decimal.Decimal{}, &DecodeError{Index: i, Field: field, Reason: "negative value"}
	}
	return d.Div(ValueScale), nil
}

func tupleDecimal(raw []interface{}, i int, field string) (decimal.Decimal, error) {
	switch v := raw[i].(type) {
	case json.Number:
		d, err := decimal.NewFromString(v.String())
		if err != nil {
			return decimal.Decimal{}, &DecodeError{Index: i, Field: field, Reason: err.Error()}
		}
		return d, nil
	case float64:
		return decimal.NewFromFloat(v), nil
	case int64:
		return decimal.NewFromInt(v), nil
	case uint64:
		return decimal.NewFromBigInt(new(big.Int).SetUint64(v), 0), nil
	case string:
		d, err := decimal.NewFromString(v)
		if err != nil {
			return decimal.Decimal{}, &DecodeError{Index: i, Field: field, Reason: err.Error()}
		}
		return d, nil
	case nil:
		return decimal.Decimal{}, &DecodeError{Index: i, Field: field, Reason: "missing value"}
	default:
		return decimal.Decimal{}, &DecodeError{Index: i, Field: field, Reason: fmt.Sprintf("unexpected type %T", v)}
	}
}

func tupleString(raw []interface{}, i int, field string) (string, error) {
	s, ok := raw[i].(string)
	if !ok {
		return "", &DecodeError{Index: i, Field: field, Reason: fmt.Sprintf("unexpected type %T", raw[i])}
	}
	if s == "" {
		return "", &DecodeError{Index: i, Field: field, Reason: "empty value"}
	}
	return s, nil
}
