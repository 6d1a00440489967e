package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/gomodule/redigo/redis"
	"github.com/spf13/cobra"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/dorkfi/dorkfi-backend/config"
	"github.com/dorkfi/dorkfi-backend/server"
	"github.com/dorkfi/dorkfi-backend/service/store"
)

func ServerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "server",
		Short: "run web server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true

			cfg, err := config.Load("config.yml")
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			if err := cfg.Server.Validate(); err != nil {
				return fmt.Errorf("validate server config: %w", err)
			}

			logger, err := cfg.Server.Log.Build()
			if err != nil {
				return fmt.Errorf("build logger: %w", err)
			}
			defer logger.Sync()

			mc, err := mongo.Connect(context.Background(), options.Client().ApplyURI(cfg.Server.MongoDB.URI))
			if err != nil {
				return fmt.Errorf("connect mongodb: %w", err)
			}
			defer mc.Disconnect(context.Background())

			rp := &redis.Pool{
				MaxIdle:     3,
				IdleTimeout: 4 * time.Minute,
				Dial: func() (redis.Conn, error) {
					return redis.DialURL(cfg.Server.Redis.URI)
				},
			}
			defer rp.Close()

			ss := store.NewService(cfg.Server.MongoDB, mc)
			s := server.New(cfg.Server, ss, rp, logger)

			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			updaterDone := make(chan error)
			go func() {
				updaterDone <- s.RunBackgroundUpdater(ctx)
			}()

			go func() {
				logger.Info("starting server", zap.String("addr", cfg.Server.BindAddr))
				if err := s.Start(cfg.Server.BindAddr); err != nil && !errors.Is(err, http.ErrServerClosed) {
					logger.Fatal("failed to start server", zap.Error(err))
				}
			}()

			quit := make(chan os.Signal, 1)
			signal.Notify(quit, os.Interrupt)
			<-quit

			logger.Info("gracefully shutting down")
			cancel()
			if err := <-updaterDone; err != nil && !errors.Is(err, context.Canceled) {
				logger.Error("background updater exited", zap.Error(err))
			}
			if err := s.ShutdownWithTimeout(10 * time.Second); err != nil {
				logger.Fatal("failed to shutdown server", zap.Error(err))
			}

			return nil
		},
	}
	return cmd
}
