package config

import (
	"fmt"
	"time"
)

var DefaultNetworkConfig = NetworkConfig{
	Name:           "voi-mainnet",
	RoundWindow:    2_000_000,
	RequestTimeout: 15 * time.Second,
}

// NetworkConfig describes a single network's indexer endpoint. It is passed
// explicitly to everything that queries the chain; there is no process-wide
// current-network state.
type NetworkConfig struct {
	Name           string        `yaml:"name"`
	IndexerURL     string        `yaml:"indexer_url"`
	AppID          uint64        `yaml:"app_id"`
	RoundWindow    uint64        `yaml:"round_window"`
	RequestTimeout time.Duration `yaml:"request_timeout"`
}

func (cfg NetworkConfig) Validate() error {
	if cfg.IndexerURL == "" {
		return fmt.Errorf("'indexer_url' is required")
	}
	if cfg.AppID == 0 {
		return fmt.Errorf("'app_id' is required")
	}
	if cfg.RoundWindow == 0 {
		return fmt.Errorf("'round_window' must be positive")
	}
	return nil
}

// MinRound is the lower round bound for event queries, a rolling window
// below the current round so full history is never scanned.
func (cfg NetworkConfig) MinRound(currentRound uint64) uint64 {
	if currentRound <= cfg.RoundWindow {
		return 0
	}
	return currentRound - cfg.RoundWindow
}
