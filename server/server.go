package server

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/gomodule/redigo/redis"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/dorkfi/dorkfi-backend/config"
	"github.com/dorkfi/dorkfi-backend/service/store"
)

type Server struct {
	*echo.Echo
	cfg        config.ServerConfig
	ss         *store.Service
	rp         *redis.Pool
	logger     *zap.Logger
	generation int64
}

func New(cfg config.ServerConfig, ss *store.Service, rp *redis.Pool, logger *zap.Logger) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Debug = cfg.Debug
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	s := &Server{Echo: e, cfg: cfg, ss: ss, rp: rp, logger: logger}
	s.registerRoutes()
	return s
}

func (s *Server) collateralFactor() decimal.Decimal {
	return decimal.NewFromFloat(s.cfg.CollateralFactor)
}

// nextGeneration tags one cache rebuild. Generations are compared on save
// so a slow rebuild can never overwrite a newer one.
func (s *Server) nextGeneration() int64 {
	return atomic.AddInt64(&s.generation, 1)
}

func (s *Server) ShutdownWithTimeout(timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return s.Shutdown(ctx)
}
