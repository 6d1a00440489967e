package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"github.com/dorkfi/dorkfi-backend/liquidation"
	"github.com/dorkfi/dorkfi-backend/schema"
	"github.com/dorkfi/dorkfi-backend/service/store"
)

func (s *Server) registerRoutes() {
	s.GET("/status", s.GetStatus)
	s.GET("/liquidations", s.GetLiquidations)
	s.GET("/liquidations/search", s.SearchAccount)
	s.GET("/positions/:address", s.GetPosition)
	s.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
}

func (s *Server) GetStatus(c echo.Context) error {
	var round uint64
	var count int64
	eg, ctx := errgroup.WithContext(c.Request().Context())
	eg.Go(func() error {
		var err error
		if round, err = s.ss.LatestRound(ctx); err != nil {
			return fmt.Errorf("get latest round: %w", err)
		}
		return nil
	})
	eg.Go(func() error {
		var err error
		if count, err = s.ss.CountSnapshots(ctx); err != nil {
			return fmt.Errorf("count snapshots: %w", err)
		}
		return nil
	})
	if err := eg.Wait(); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, schema.GetStatusResponse{
		LatestRound: round,
		Accounts:    count,
	})
}

func (s *Server) GetLiquidations(c echo.Context) error {
	var req schema.GetLiquidationsRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	var cache schema.QueueCache
	if err := RetryLoadingCache(c.Request().Context(), func(ctx context.Context) error {
		var err error
		cache, err = s.LoadQueueCache(ctx)
		return err
	}, s.cfg.CacheLoadTimeout); err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return echo.NewHTTPError(http.StatusInternalServerError, "no liquidation data found")
		}
		return fmt.Errorf("load queue cache: %w", err)
	}
	if req.Page < 1 {
		req.Page = 1
	}
	start, end, totalPages := liquidation.PageBounds(len(cache.Accounts), req.Page, s.cfg.PageSize)
	return c.JSON(http.StatusOK, schema.GetLiquidationsResponse{
		Round:       cache.Round,
		Accounts:    cache.Accounts[start:end],
		CurrentPage: req.Page,
		TotalPages:  totalPages,
		TotalItems:  len(cache.Accounts),
		UpdatedAt:   cache.UpdatedAt,
	})
}

func (s *Server) SearchAccount(c echo.Context) error {
	var req schema.SearchAccountRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	if req.Query == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "query must be provided")
	}
	var cache schema.QueueCache
	if err := RetryLoadingCache(c.Request().Context(), func(ctx context.Context) error {
		var err error
		cache, err = s.LoadQueueCache(ctx)
		return err
	}, s.cfg.CacheLoadTimeout); err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return echo.NewHTTPError(http.StatusInternalServerError, "no liquidation data found")
		}
		return fmt.Errorf("load queue cache: %w", err)
	}
	resp := schema.SearchAccountResponse{
		Round:     cache.Round,
		UpdatedAt: cache.UpdatedAt,
	}
	for _, acc := range cache.Accounts {
		if acc.Address == req.Query {
			acc := acc
			resp.Account = &acc
			break
		}
	}
	return c.JSON(http.StatusOK, resp)
}

func (s *Server) GetPosition(c echo.Context) error {
	address := c.Param("address")
	snap, err := s.ss.Snapshot(c.Request().Context(), address)
	if err != nil {
		if errors.Is(err, store.ErrSnapshotNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "no position found")
		}
		return fmt.Errorf("get snapshot: %w", err)
	}
	ev, err := snap.Event()
	if err != nil {
		return fmt.Errorf("decode snapshot: %w", err)
	}
	queue := liquidation.BuildQueue(map[string]liquidation.Event{address: ev}, s.collateralFactor())
	return c.JSON(http.StatusOK, schema.GetPositionResponse{
		Account: schema.QueueCacheAccountFrom(queue[0]),
	})
}
