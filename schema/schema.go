package schema

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/dorkfi/dorkfi-backend/liquidation"
)

const (
	CheckpointRoundKey     = "round"
	CheckpointTimestampKey = "timestamp"
)

// Checkpoint tracks the last indexer round the watcher has ingested.
type Checkpoint struct {
	Round     uint64    `bson:"round"`
	Timestamp time.Time `bson:"timestamp"`
}

const (
	SnapshotAddressKey    = "address"
	SnapshotRoundKey      = "round"
	SnapshotTimestampKey  = "timestamp"
	SnapshotCollateralKey = "collateral"
	SnapshotBorrowKey     = "borrow"
)

// Snapshot is the latest known position of a single account. Collateral and
// Borrow are descaled USD values stored as decimal strings.
type Snapshot struct {
	Address    string `bson:"address"`
	Round      uint64 `bson:"round"`
	Timestamp  int64  `bson:"timestamp"`
	Collateral string `bson:"collateral"`
	Borrow     string `bson:"borrow"`
}

func SnapshotFromEvent(ev liquidation.Event) Snapshot {
	return Snapshot{
		Address:    ev.Address,
		Round:      ev.Round,
		Timestamp:  ev.Timestamp,
		Collateral: ev.Collateral.String(),
		Borrow:     ev.Borrow.String(),
	}
}

func (s Snapshot) Event() (liquidation.Event, error) {
	collateral, err := parseValue(s.Collateral)
	if err != nil {
		return liquidation.Event{}, fmt.Errorf("parse collateral of %q: %w", s.Address, err)
	}
	borrow, err := parseValue(s.Borrow)
	if err != nil {
		return liquidation.Event{}, fmt.Errorf("parse borrow of %q: %w", s.Address, err)
	}
	return liquidation.Event{
		Round:      s.Round,
		Timestamp:  s.Timestamp,
		Address:    s.Address,
		Collateral: collateral,
		Borrow:     borrow,
	}, nil
}

func parseValue(s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(s)
}
