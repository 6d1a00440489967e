package config

import "fmt"

var DefaultMongoDBConfig = MongoDBConfig{
	URI:                  "mongodb://localhost:27017",
	DB:                   "dorkfi",
	CheckpointCollection: "checkpoint",
	SnapshotCollection:   "snapshots",
}

type MongoDBConfig struct {
	URI                  string `yaml:"uri"`
	DB                   string `yaml:"db"`
	CheckpointCollection string `yaml:"checkpoint_collection"`
	SnapshotCollection   string `yaml:"snapshot_collection"`
}

func (cfg MongoDBConfig) Validate() error {
	if cfg.URI == "" {
		return fmt.Errorf("'uri' is required")
	}
	if cfg.DB == "" {
		return fmt.Errorf("'db' is required")
	}
	return nil
}

var DefaultRedisConfig = RedisConfig{
	URI:           "redis://localhost:6379",
	QueueCacheKey: "dorkfi:liquidations",
}

type RedisConfig struct {
	URI           string `yaml:"uri"`
	QueueCacheKey string `yaml:"queue_cache_key"`
}

func (cfg RedisConfig) Validate() error {
	if cfg.URI == "" {
		return fmt.Errorf("'uri' is required")
	}
	if cfg.QueueCacheKey == "" {
		return fmt.Errorf("'queue_cache_key' is required")
	}
	return nil
}
