package server

import (
	"context"

	"go.uber.org/zap"

	"github.com/dorkfi/dorkfi-backend/util"
)

func (s *Server) RunBackgroundUpdater(ctx context.Context) error {
	ticker := util.NewImmediateTicker(s.cfg.CacheUpdateInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			s.logger.Debug("updating queue cache")
			cacheUpdatesTotal.Inc()
			if err := s.UpdateQueueCache(ctx, s.nextGeneration()); err != nil {
				cacheUpdateErrorsTotal.Inc()
				s.logger.Error("failed to update queue cache", zap.Error(err))
			}
		}
	}
}
