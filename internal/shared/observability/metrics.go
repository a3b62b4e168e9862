package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics definitions
var (
	ConversionDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "pyuml_conversion_seconds",
		Help:    "Time spent converting an input directory into a diagram.",
		Buckets: prometheus.DefBuckets,
	})

	ConversionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pyuml_conversions_total",
		Help: "Total number of conversion runs by result.",
	}, []string{"result"})

	UnitsProcessedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pyuml_units_processed_total",
		Help: "Total number of source files classified.",
	})

	DeclarationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pyuml_declarations_total",
		Help: "Total number of recognized declarations by kind.",
	}, []string{"kind"})

	RelationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pyuml_relations_total",
		Help: "Total number of emitted relations by kind.",
	}, []string{"kind"})

	LastRunRelations = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "pyuml_last_run_relations",
		Help: "Number of relations emitted by the most recent run.",
	})

	WatcherEventsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pyuml_watcher_events_total",
		Help: "Total number of file system events received by the watcher.",
	})

	WatchThrottledTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pyuml_watch_throttled_total",
		Help: "Total number of watch-mode regenerations delayed by the rate limiter.",
	})
)
