package watcher

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/dorkfi/dorkfi-backend/config"
	"github.com/dorkfi/dorkfi-backend/liquidation"
	"github.com/dorkfi/dorkfi-backend/schema"
	"github.com/dorkfi/dorkfi-backend/service/chain"
	"github.com/dorkfi/dorkfi-backend/service/store"
	"github.com/dorkfi/dorkfi-backend/util"
)

// Watcher tails UserHealth events from the indexer and maintains one
// position snapshot per account in the store.
type Watcher struct {
	cfg    config.WatcherConfig
	cc     *chain.Client
	ss     *store.Service
	logger *zap.Logger
}

func New(cfg config.WatcherConfig, cc *chain.Client, ss *store.Service, logger *zap.Logger) (*Watcher, error) {
	return &Watcher{cfg, cc, ss, logger}, nil
}

func (w *Watcher) Run(ctx context.Context) error {
	ticker := util.NewImmediateTicker(w.cfg.SyncInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := w.Sync(ctx); err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				w.logger.Error("failed to sync", zap.Error(err))
			}
		}
	}
}

// Sync performs one fetch-decode-reduce-store cycle. A failed fetch leaves
// the stored state untouched; the next tick starts over.
func (w *Watcher) Sync(ctx context.Context) error {
	round, err := w.cc.Status(ctx)
	if err != nil {
		fetchErrorsTotal.Inc()
		return fmt.Errorf("get current round: %w", err)
	}
	checkpoint, err := w.ss.LatestRound(ctx)
	if err != nil {
		return fmt.Errorf("get checkpoint round: %w", err)
	}
	minRound := w.cfg.Network.MinRound(round)
	if checkpoint+1 > minRound {
		minRound = checkpoint + 1
	}
	if minRound > round {
		w.logger.Debug("no new rounds", zap.Uint64("round", round))
		syncsTotal.Inc()
		return nil
	}
	raws, err := w.cc.UserHealthEvents(ctx, minRound)
	if err != nil {
		fetchErrorsTotal.Inc()
		return fmt.Errorf("get events: %w", err)
	}
	events, err := liquidation.DecodeEvents(raws)
	if err != nil {
		return fmt.Errorf("decode events: %w", err)
	}
	latest := liquidation.ReduceLatest(events)
	snapshots := make([]schema.Snapshot, 0, len(latest))
	for _, ev := range latest {
		snapshots = append(snapshots, schema.SnapshotFromEvent(ev))
	}
	if err := w.ss.UpsertSnapshots(ctx, snapshots); err != nil {
		return fmt.Errorf("upsert snapshots: %w", err)
	}
	if err := w.ss.UpdateLatestRound(ctx, round); err != nil {
		return fmt.Errorf("update checkpoint round: %w", err)
	}
	w.logger.Info("synced",
		zap.Uint64("from", minRound),
		zap.Uint64("to", round),
		zap.Int("events", len(events)),
		zap.Int("accounts", len(latest)))
	syncsTotal.Inc()
	return nil
}
