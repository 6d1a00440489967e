package watcher

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	fetchErrorsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "dorkfi_fetch_errors_total",
		Help: "Number of failed indexer fetches.",
	})
	syncsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "dorkfi_syncs_total",
		Help: "Number of completed sync cycles.",
	})
)
