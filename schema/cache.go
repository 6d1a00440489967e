package schema

import (
	"time"

	"github.com/dorkfi/dorkfi-backend/liquidation"
)

// QueueCache is the full sorted liquidation queue as written to the cache
// by the background updater. Generation increases monotonically per update
// cycle; a save with a lower generation than the cached one is discarded.
type QueueCache struct {
	Generation int64               `json:"generation"`
	Round      uint64              `json:"round"`
	Accounts   []QueueCacheAccount `json:"accounts"`
	UpdatedAt  time.Time           `json:"updatedAt"`
}

type QueueCacheAccount struct {
	Address           string  `json:"address"`
	HealthFactor      float64 `json:"healthFactor"`
	LiquidationMargin float64 `json:"liquidationMargin"`
	TotalSupplied     float64 `json:"totalSupplied"`
	TotalBorrowed     float64 `json:"totalBorrowed"`
	LTV               float64 `json:"ltv"`
	RiskLevel         string  `json:"riskLevel"`
	Severity          string  `json:"severity,omitempty"`
	Liquidatable      bool    `json:"liquidatable"`
	Round             uint64  `json:"round"`
	LastUpdated       string  `json:"lastUpdated"`
}

func QueueCacheAccountFrom(acc liquidation.Account) QueueCacheAccount {
	healthFactor, _ := acc.HealthFactor.Float64()
	margin, _ := acc.LiquidationMargin.Float64()
	supplied, _ := acc.TotalSupplied.Float64()
	borrowed, _ := acc.TotalBorrowed.Float64()
	ltv, _ := acc.LTV.Float64()
	return QueueCacheAccount{
		Address:           acc.Address,
		HealthFactor:      healthFactor,
		LiquidationMargin: margin,
		TotalSupplied:     supplied,
		TotalBorrowed:     borrowed,
		LTV:               ltv,
		RiskLevel:         string(acc.RiskLevel),
		Severity:          string(acc.Severity),
		Liquidatable:      acc.Liquidatable,
		Round:             acc.Round,
		LastUpdated:       time.Unix(acc.LastUpdated, 0).UTC().Format(time.RFC3339),
	}
}
