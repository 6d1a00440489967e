package server

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gomodule/redigo/redis"
	jsoniter "github.com/json-iterator/go"

	"github.com/dorkfi/dorkfi-backend/liquidation"
	"github.com/dorkfi/dorkfi-backend/schema"
	"github.com/dorkfi/dorkfi-backend/util"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// UpdateQueueCache rebuilds the liquidation queue from stored snapshots and
// writes it to the cache.
func (s *Server) UpdateQueueCache(ctx context.Context, generation int64) error {
	round, err := s.ss.LatestRound(ctx)
	if err != nil {
		return fmt.Errorf("get latest round: %w", err)
	}
	snapshots := make(map[string]liquidation.Event)
	if err := s.ss.IterateSnapshots(ctx, func(snap schema.Snapshot) (bool, error) {
		ev, err := snap.Event()
		if err != nil {
			return true, err
		}
		snapshots[snap.Address] = ev
		return false, nil
	}); err != nil {
		return fmt.Errorf("iterate snapshots: %w", err)
	}
	queue := liquidation.BuildQueue(snapshots, s.collateralFactor())
	cache := schema.QueueCache{
		Generation: generation,
		Round:      round,
		Accounts:   make([]schema.QueueCacheAccount, 0, len(queue)),
		UpdatedAt:  time.Now(),
	}
	for _, acc := range queue {
		cache.Accounts = append(cache.Accounts, schema.QueueCacheAccountFrom(acc))
	}
	if err := s.SaveQueueCache(ctx, cache); err != nil {
		return fmt.Errorf("save cache: %w", err)
	}
	queueSizeGauge.Set(float64(len(cache.Accounts)))
	latestRoundGauge.Set(float64(round))
	return nil
}

// SaveQueueCache stores the cache payload unless a payload with a higher
// generation is already cached, so a stale rebuild never replaces newer
// data.
func (s *Server) SaveQueueCache(ctx context.Context, cache schema.QueueCache) error {
	c, err := s.rp.GetContext(ctx)
	if err != nil {
		return fmt.Errorf("get redis conn: %w", err)
	}
	defer c.Close()
	cur, err := s.loadQueueCacheConn(c)
	if err != nil && !errors.Is(err, redis.ErrNil) {
		return err
	}
	if err == nil && cur.Generation > cache.Generation {
		return nil
	}
	b, err := json.Marshal(cache)
	if err != nil {
		return fmt.Errorf("marshal cache: %w", err)
	}
	_, err = c.Do("SET", s.cfg.Redis.QueueCacheKey, b)
	return err
}

func (s *Server) LoadQueueCache(ctx context.Context) (schema.QueueCache, error) {
	c, err := s.rp.GetContext(ctx)
	if err != nil {
		return schema.QueueCache{}, fmt.Errorf("get redis conn: %w", err)
	}
	defer c.Close()
	return s.loadQueueCacheConn(c)
}

func (s *Server) loadQueueCacheConn(c redis.Conn) (cache schema.QueueCache, err error) {
	b, err := redis.Bytes(c.Do("GET", s.cfg.Redis.QueueCacheKey))
	if err != nil {
		return cache, err
	}
	if err := json.Unmarshal(b, &cache); err != nil {
		return cache, fmt.Errorf("unmarshal cache: %w", err)
	}
	return cache, nil
}

// RetryLoadingCache polls fn until it succeeds, the cache key appears, or
// the timeout expires. Only a cache miss is retried.
func RetryLoadingCache(ctx context.Context, fn func(context.Context) error, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	ticker := util.NewImmediateTicker(time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := fn(ctx); err != nil {
				if !errors.Is(err, redis.ErrNil) {
					return err
				}
			} else {
				return nil
			}
		}
	}
}
