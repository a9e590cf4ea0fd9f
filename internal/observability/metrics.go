package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics definitions
var (
	PopulationDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "symbase_population_seconds",
		Help:    "Time spent populating the semantic model.",
		Buckets: prometheus.DefBuckets,
	}, []string{"mode"})

	FilesPopulatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "symbase_files_populated_total",
		Help: "Total number of files successfully populated.",
	})

	FilePopulationErrorsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "symbase_file_population_errors_total",
		Help: "Total number of per-file population failures.",
	})

	SymbolsTotal = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "symbase_symbols_total",
		Help: "Current number of symbols in the symbol table.",
	})

	RelationshipEdgesTotal = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "symbase_relationship_edges_total",
		Help: "Current number of edges in the relationship graph.",
	})

	WorkspaceFilesTotal = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "symbase_workspace_files_total",
		Help: "Current number of files tracked by the workspace.",
	})

	WatcherEventsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "symbase_watcher_events_total",
		Help: "Total number of file system events received by the watcher.",
	})
)
