package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	cacheUpdatesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "dorkfi_cache_updates_total",
		Help: "Number of liquidation queue cache update cycles.",
	})
	cacheUpdateErrorsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "dorkfi_cache_update_errors_total",
		Help: "Number of failed liquidation queue cache updates.",
	})
	queueSizeGauge = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "dorkfi_queue_accounts",
		Help: "Number of accounts in the liquidation queue.",
	})
	latestRoundGauge = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "dorkfi_latest_round",
		Help: "Latest round ingested into the snapshot store.",
	})
)
