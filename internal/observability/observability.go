// Package observability exposes run metrics to Prometheus. The collector
// implements the orchestrator's Observer, so file and run counters track the
// same lifecycle events external progress reporting sees.
package observability

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/gaugeworks/codegauge/internal/analyze"
)

// Collector records analysis lifecycle metrics. Each Collector owns an
// independent registry to avoid collector conflicts across instances.
type Collector struct {
	registry *prometheus.Registry

	filesAnalyzed prometheus.Counter
	fileErrors    prometheus.Counter
	issuesFound   *prometheus.CounterVec
	fileDuration  prometheus.Histogram
	runsCompleted prometheus.Counter
	runsFailed    prometheus.Counter
	runDuration   prometheus.Histogram
}

// NewCollector creates a Collector with all instruments registered.
func NewCollector() *Collector {
	registry := prometheus.NewRegistry()

	c := &Collector{
		registry: registry,
		filesAnalyzed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "codegauge_files_analyzed_total",
			Help: "Files analyzed successfully.",
		}),
		fileErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "codegauge_file_errors_total",
			Help: "Files whose analysis failed.",
		}),
		issuesFound: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "codegauge_issues_total",
			Help: "Issues found, labeled by severity.",
		}, []string{"severity"}),
		fileDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "codegauge_file_analysis_seconds",
			Help:    "Per-file analysis latency.",
			Buckets: prometheus.DefBuckets,
		}),
		runsCompleted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "codegauge_runs_completed_total",
			Help: "Analysis runs finished successfully.",
		}),
		runsFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "codegauge_runs_failed_total",
			Help: "Analysis runs aborted by an error.",
		}),
		runDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "codegauge_run_seconds",
			Help:    "Whole-run latency.",
			Buckets: []float64{0.1, 0.5, 1, 5, 15, 60, 300},
		}),
	}

	registry.MustRegister(
		c.filesAnalyzed, c.fileErrors, c.issuesFound,
		c.fileDuration, c.runsCompleted, c.runsFailed, c.runDuration,
	)

	return c
}

// FileStart implements the orchestrator Observer.
func (c *Collector) FileStart(string) {}

// FileComplete records a successful file analysis.
func (c *Collector) FileComplete(_ string, result analyze.FileResult) {
	c.filesAnalyzed.Inc()
	c.fileDuration.Observe(result.Duration.Seconds())

	for _, issue := range result.Issues {
		c.issuesFound.WithLabelValues(string(issue.Severity)).Inc()
	}
}

// FileError records a failed file analysis.
func (c *Collector) FileError(string, error) {
	c.fileErrors.Inc()
}

// RunComplete records a finished run.
func (c *Collector) RunComplete(result *analyze.AnalysisResult) {
	c.runsCompleted.Inc()
	c.runDuration.Observe(result.Duration.Seconds())
}

// RunError records an aborted run.
func (c *Collector) RunError(error) {
	c.runsFailed.Inc()
}

// Handler returns the /metrics scrape endpoint for this collector.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

// Serve starts a metrics server on addr in a background goroutine. It is
// best-effort: a listen failure only surfaces in the returned server's logs.
func (c *Collector) Serve(addr string) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", c.Handler())

	server := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() { _ = server.ListenAndServe() }()

	return server
}
