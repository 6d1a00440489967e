package config

import (
	"fmt"
	"time"

	"go.uber.org/zap"
)

var DefaultWatcherConfig = WatcherConfig{
	SyncInterval: 30 * time.Second,
	MetricsAddr:  "0.0.0.0:9091",
	Network:      DefaultNetworkConfig,
	MongoDB:      DefaultMongoDBConfig,
	Log:          zap.NewProductionConfig(),
}

type WatcherConfig struct {
	SyncInterval time.Duration `yaml:"sync_interval"`
	// MetricsAddr is where prometheus metrics are served; empty disables
	// the metrics listener.
	MetricsAddr string        `yaml:"metrics_addr"`
	Network     NetworkConfig `yaml:"network"`
	MongoDB     MongoDBConfig `yaml:"mongodb"`
	Log         zap.Config    `yaml:"log"`
}

func (cfg WatcherConfig) Validate() error {
	if cfg.SyncInterval <= 0 {
		return fmt.Errorf("'sync_interval' must be positive")
	}
	if err := cfg.Network.Validate(); err != nil {
		return fmt.Errorf("validate 'network' field: %w", err)
	}
	if err := cfg.MongoDB.Validate(); err != nil {
		return fmt.Errorf("validate 'mongodb' field: %w", err)
	}
	return nil
}
