package config

import (
	"fmt"
	"time"

	"go.uber.org/zap"
)

var DefaultServerConfig = ServerConfig{
	Debug:               false,
	BindAddr:            "0.0.0.0:8080",
	PageSize:            10,
	CollateralFactor:    0.8,
	CacheLoadTimeout:    10 * time.Second,
	CacheUpdateInterval: 5 * time.Second,
	MongoDB:             DefaultMongoDBConfig,
	Redis:               DefaultRedisConfig,
	Log:                 zap.NewProductionConfig(),
}

type ServerConfig struct {
	Debug               bool          `yaml:"debug"`
	BindAddr            string        `yaml:"bind_addr"`
	PageSize            int           `yaml:"page_size"`
	CollateralFactor    float64       `yaml:"collateral_factor"`
	CacheLoadTimeout    time.Duration `yaml:"cache_load_timeout"`
	CacheUpdateInterval time.Duration `yaml:"cache_update_interval"`
	MongoDB             MongoDBConfig `yaml:"mongodb"`
	Redis               RedisConfig   `yaml:"redis"`
	Log                 zap.Config    `yaml:"log"`
}

func (cfg ServerConfig) Validate() error {
	if cfg.PageSize <= 0 {
		return fmt.Errorf("'page_size' must be positive")
	}
	if cfg.CollateralFactor <= 0 || cfg.CollateralFactor > 1 {
		return fmt.Errorf("'collateral_factor' must be in (0, 1]")
	}
	if err := cfg.MongoDB.Validate(); err != nil {
		return fmt.Errorf("validate 'mongodb' field: %w", err)
	}
	if err := cfg.Redis.Validate(); err != nil {
		return fmt.Errorf("validate 'redis' field: %w", err)
	}
	return nil
}
