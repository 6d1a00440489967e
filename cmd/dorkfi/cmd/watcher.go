package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/dorkfi/dorkfi-backend/config"
	"github.com/dorkfi/dorkfi-backend/service/chain"
	"github.com/dorkfi/dorkfi-backend/service/store"
	"github.com/dorkfi/dorkfi-backend/watcher"
)

func WatcherCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watcher",
		Short: "run event watcher",
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true

			cfg, err := config.Load("config.yml")
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			if err := cfg.Watcher.Validate(); err != nil {
				return fmt.Errorf("validate watcher config: %w", err)
			}

			logger, err := cfg.Watcher.Log.Build()
			if err != nil {
				return fmt.Errorf("build logger: %w", err)
			}
			defer logger.Sync()

			mc, err := mongo.Connect(context.Background(), options.Client().ApplyURI(cfg.Watcher.MongoDB.URI))
			if err != nil {
				return fmt.Errorf("connect mongodb: %w", err)
			}
			defer mc.Disconnect(context.Background())

			ss := store.NewService(cfg.Watcher.MongoDB, mc)
			if _, err := ss.EnsureDBIndexes(context.Background()); err != nil {
				return fmt.Errorf("ensure db indexes: %w", err)
			}

			cc := chain.NewClient(cfg.Watcher.Network)
			w, err := watcher.New(cfg.Watcher, cc, ss, logger)
			if err != nil {
				return fmt.Errorf("new watcher: %w", err)
			}

			if cfg.Watcher.MetricsAddr != "" {
				mux := http.NewServeMux()
				mux.Handle("/metrics", promhttp.Handler())
				ms := &http.Server{Addr: cfg.Watcher.MetricsAddr, Handler: mux}
				defer ms.Close()
				go func() {
					logger.Info("starting metrics server", zap.String("addr", cfg.Watcher.MetricsAddr))
					if err := ms.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
						logger.Error("metrics server exited", zap.Error(err))
					}
				}()
			}

			logger.Info("started", zap.String("network", cfg.Watcher.Network.Name))

			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			done := make(chan error)
			go func() {
				done <- w.Run(ctx)
			}()

			quit := make(chan os.Signal, 1)
			signal.Notify(quit, os.Interrupt)
			<-quit

			logger.Info("gracefully shutting down")
			cancel()

			if err := <-done; err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		},
	}
	return cmd
}
