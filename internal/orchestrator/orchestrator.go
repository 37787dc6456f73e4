// Package orchestrator drives a whole analysis run: glob resolution,
// cache lookup, bounded-concurrency per-file analysis, aggregation,
// insight generation, and lifecycle events.
package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/gaugeworks/codegauge/internal/analyze"
	"github.com/gaugeworks/codegauge/internal/cache"
	"github.com/gaugeworks/codegauge/internal/config"
	"github.com/gaugeworks/codegauge/internal/engine"
	"github.com/gaugeworks/codegauge/internal/insights"
	"github.com/gaugeworks/codegauge/internal/metrics"
	"github.com/gaugeworks/codegauge/internal/parser"
)

// ErrNoFilesFound is returned when glob resolution yields zero files after
// include/exclude filtering. No cache entry is written for such runs.
var ErrNoFilesFound = errors.New("no files found matching the given patterns")

// Observer receives lifecycle events. FileStart for a path always precedes
// that path's FileComplete or FileError; RunComplete and RunError are each
// emitted at most once per run, after all file events.
type Observer interface {
	FileStart(path string)
	FileComplete(path string, result analyze.FileResult)
	FileError(path string, err error)
	RunComplete(result *analyze.AnalysisResult)
	RunError(err error)
}

// NopObserver ignores every event. Embed it to implement Observer partially.
type NopObserver struct{}

func (NopObserver) FileStart(string)                        {}
func (NopObserver) FileComplete(string, analyze.FileResult) {}
func (NopObserver) FileError(string, error)                 {}
func (NopObserver) RunComplete(*analyze.AnalysisResult)     {}
func (NopObserver) RunError(error)                          {}

// Orchestrator runs analyses end to end. Safe for sequential reuse; one run
// at a time.
type Orchestrator struct {
	cfg        *config.Config
	engine     *engine.Engine
	cache      *cache.Manager
	aggregator *metrics.Aggregator
	generator  *insights.Generator
	observers  []Observer
	logger     *slog.Logger
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithObserver subscribes an observer to lifecycle events.
func WithObserver(observer Observer) Option {
	return func(o *Orchestrator) { o.observers = append(o.observers, observer) }
}

// WithCache substitutes the result cache, e.g. one with disk persistence.
func WithCache(manager *cache.Manager) Option {
	return func(o *Orchestrator) { o.cache = manager }
}

// WithLogger substitutes the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(o *Orchestrator) { o.logger = logger }
}

// New creates an Orchestrator for the given configuration.
func New(cfg *config.Config, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		cfg:        cfg,
		cache:      cache.NewManager(),
		aggregator: metrics.NewAggregator(),
		generator:  insights.NewGenerator(gatesFrom(cfg)),
		logger:     slog.Default(),
	}

	for _, opt := range opts {
		opt(o)
	}

	if cfg.Cache.Dir != "" {
		o.cache = cache.NewManager(cache.WithDir(cfg.Cache.Dir))
	}

	o.engine = engine.New(cfg, parser.Default(), o.logger)

	return o
}

// gatesFrom maps configured thresholds onto the insight rule gates.
func gatesFrom(cfg *config.Config) insights.Thresholds {
	gates := insights.DefaultThresholds()
	gates.Cyclomatic = float64(cfg.Thresholds.Cyclomatic)
	gates.Maintainability = cfg.Thresholds.Maintainability
	gates.TestCoverage = cfg.Thresholds.TestCoverage
	gates.DocCoverage = cfg.Thresholds.DocumentationCoverage
	gates.SecurityScore = cfg.Thresholds.SecurityScore
	gates.PerformanceScore = cfg.Thresholds.PerformanceScore

	return gates
}

// Analyze resolves patterns to files and produces the run result. Any
// per-file failure is fatal for the whole run; there are no partial results.
func (o *Orchestrator) Analyze(ctx context.Context, patterns []string) (*analyze.AnalysisResult, error) {
	result, err := o.analyze(ctx, patterns)
	if err != nil {
		for _, observer := range o.observers {
			observer.RunError(err)
		}

		return nil, err
	}

	for _, observer := range o.observers {
		observer.RunComplete(result)
	}

	return result, nil
}

func (o *Orchestrator) analyze(ctx context.Context, patterns []string) (*analyze.AnalysisResult, error) {
	started := time.Now()

	files, err := ResolveFiles(patterns, o.cfg.Exclude)
	if err != nil {
		return nil, err
	}

	key := cache.Key(files)

	if o.cfg.Model.CacheResults {
		if cached, ok := o.cache.Get(key); ok {
			o.logger.Debug("serving cached result", "files", len(files))

			return cached, nil
		}
	}

	fileResults, err := o.analyzeFiles(ctx, files)
	if err != nil {
		return nil, err
	}

	result := o.assemble(fileResults, started)

	if o.cfg.Model.CacheResults {
		o.cache.Set(key, *result)
	}

	return result, nil
}

// analyzeFiles fans per-file analysis out under the configured concurrency
// limit. Results land in per-index slots; aggregation starts only after the
// whole group has joined.
func (o *Orchestrator) analyzeFiles(ctx context.Context, files []string) ([]analyze.FileResult, error) {
	results := make([]analyze.FileResult, len(files))

	var mu sync.Mutex

	group, ctx := errgroup.WithContext(ctx)
	group.SetLimit(o.cfg.Concurrency())

	for i, path := range files {
		group.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			o.notifyStart(&mu, path)

			result, err := o.engine.AnalyzeFile(ctx, path)
			if err != nil {
				o.notifyError(&mu, path, err)

				return fmt.Errorf("analyze file: %w", err)
			}

			results[i] = result
			o.notifyComplete(&mu, path, result)

			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}

// assemble builds the immutable run result from completed file results.
func (o *Orchestrator) assemble(fileResults []analyze.FileResult, started time.Time) *analyze.AnalysisResult {
	perFile := make([]metrics.FileMetrics, 0, len(fileResults))

	var issues []analyze.Issue

	for i := range fileResults {
		perFile = append(perFile, fileResults[i].Metrics)
		issues = append(issues, fileResults[i].Issues...)
	}

	sortIssues(issues)

	code := o.aggregator.Aggregate(perFile, issueCounts(issues))

	run := analyze.EmptyInsights()
	if o.cfg.EnableAI {
		run = o.generator.Generate(fileResults, code, issues)
	}

	return &analyze.AnalysisResult{
		Timestamp:       started,
		Duration:        time.Since(started),
		Files:           fileResults,
		Summary:         analyze.BuildSummary(fileResults),
		Metrics:         code,
		Issues:          issues,
		Recommendations: run.Recommendations,
		Insights:        run,
	}
}

// issueCounts projects issues into the aggregator's string-keyed counts.
func issueCounts(issues []analyze.Issue) metrics.IssueCounts {
	counts := metrics.IssueCounts{
		Total:      len(issues),
		BySeverity: make(map[string]int),
		ByCategory: make(map[string]int),
	}

	for _, issue := range issues {
		counts.BySeverity[string(issue.Severity)]++
		counts.ByCategory[string(issue.Category)]++
	}

	return counts
}

// Observer notifications share one mutex so event ordering per file is
// well-defined even under concurrent file tasks.
func (o *Orchestrator) notifyStart(mu *sync.Mutex, path string) {
	mu.Lock()
	defer mu.Unlock()

	for _, observer := range o.observers {
		observer.FileStart(path)
	}
}

func (o *Orchestrator) notifyComplete(mu *sync.Mutex, path string, result analyze.FileResult) {
	mu.Lock()
	defer mu.Unlock()

	for _, observer := range o.observers {
		observer.FileComplete(path, result)
	}
}

func (o *Orchestrator) notifyError(mu *sync.Mutex, path string, err error) {
	mu.Lock()
	defer mu.Unlock()

	for _, observer := range o.observers {
		observer.FileError(path, err)
	}
}

// sortIssues keeps reports deterministic across runs.
func sortIssues(issues []analyze.Issue) {
	sort.SliceStable(issues, func(i, j int) bool {
		if issues[i].File != issues[j].File {
			return issues[i].File < issues[j].File
		}

		return issues[i].StartLine < issues[j].StartLine
	})
}
