// Package engine runs the per-file analysis pipeline: read, detect
// language, parse, fan out the category analyzers, extract dependencies,
// and compute metrics. Each file's tree and issue lists are exclusively
// owned by the file's task; the engine shares no mutable state across
// concurrent calls.
package engine

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/gaugeworks/codegauge/internal/analyze"
	"github.com/gaugeworks/codegauge/internal/analyzers/complexity"
	"github.com/gaugeworks/codegauge/internal/analyzers/docs"
	"github.com/gaugeworks/codegauge/internal/analyzers/performance"
	"github.com/gaugeworks/codegauge/internal/analyzers/security"
	"github.com/gaugeworks/codegauge/internal/analyzers/smell"
	"github.com/gaugeworks/codegauge/internal/analyzers/testhealth"
	"github.com/gaugeworks/codegauge/internal/config"
	"github.com/gaugeworks/codegauge/internal/deps"
	"github.com/gaugeworks/codegauge/internal/insights"
	"github.com/gaugeworks/codegauge/internal/lang"
	"github.com/gaugeworks/codegauge/internal/metrics"
	"github.com/gaugeworks/codegauge/internal/parser"
	"github.com/gaugeworks/codegauge/internal/syntax"
)

// Engine analyzes single files. One Engine serves all concurrent file
// tasks; its collaborators are stateless or internally synchronized.
type Engine struct {
	cfg        *config.Config
	registry   *parser.Registry
	analyzers  []analyze.Analyzer
	extractor  *deps.Extractor
	calculator *metrics.Calculator
	logger     *slog.Logger
}

// New creates an Engine. The analyzer set is fixed at construction from the
// configuration toggles.
func New(cfg *config.Config, registry *parser.Registry, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}

	return &Engine{
		cfg:        cfg,
		registry:   registry,
		analyzers:  buildAnalyzers(cfg),
		extractor:  deps.NewExtractor(),
		calculator: metrics.NewCalculator(),
		logger:     logger,
	}
}

// buildAnalyzers selects the category analyzers enabled by configuration.
// Complexity and smell analysis are always on; the rest are togglable.
func buildAnalyzers(cfg *config.Config) []analyze.Analyzer {
	analyzers := []analyze.Analyzer{
		complexity.NewAnalyzer().WithThresholds(cfg.Thresholds.Cyclomatic, cfg.Thresholds.Cognitive),
		smell.NewAnalyzer(),
	}

	if cfg.EnableSecurityScan {
		analyzers = append(analyzers, security.NewAnalyzer())
	}

	if cfg.EnablePerformanceAnalysis {
		analyzers = append(analyzers, performance.NewAnalyzer())
	}

	if cfg.EnableDocumentationAnalysis {
		analyzers = append(analyzers, docs.NewAnalyzer())
	}

	if cfg.EnableTestAnalysis {
		analyzers = append(analyzers, testhealth.NewAnalyzer())
	}

	return analyzers
}

// AnalyzeFile runs the full per-file pipeline. Undetected languages and
// parse failures degrade gracefully to an empty-metrics result; only I/O
// errors are fatal.
func (e *Engine) AnalyzeFile(ctx context.Context, path string) (analyze.FileResult, error) {
	started := time.Now()

	content, err := os.ReadFile(path)
	if err != nil {
		return analyze.FileResult{}, fmt.Errorf("read %s: %w", path, err)
	}

	language := lang.Detect(path, content)
	if language == lang.Unknown || !e.registry.Supports(language) {
		return e.unknownResult(path, string(language), started), nil
	}

	result := analyze.FileResult{Path: path, Language: string(language)}

	tree, parseErrCount := e.parse(ctx, path, language, content)
	result.ParseErrorCount = parseErrCount

	issues, err := e.runAnalyzers(ctx, tree, content, path)
	if err != nil {
		return analyze.FileResult{}, err
	}

	result.Dependencies = e.extractor.Extract(tree)
	result.Metrics = e.calculator.Compute(tree, content, language, result.Dependencies)
	result.Issues = e.filterByConfidence(issues)
	result.Patterns = insights.DetectFilePatterns(&result)
	result.Duration = time.Since(started)

	return result, nil
}

// parse produces a best-effort tree. Parse errors are logged, never fatal;
// a nil tree means downstream passes work from raw text alone.
func (e *Engine) parse(ctx context.Context, path string, language lang.Language, content []byte) (*syntax.Node, int) {
	provider, err := e.registry.Lookup(language)
	if err != nil {
		e.logger.Warn("no parser for language", "path", path, "language", language)

		return nil, 0
	}

	parsed, err := provider.Parse(ctx, path, content)
	if err != nil {
		e.logger.Warn("parse failed", "path", path, "error", err)

		return nil, 0
	}

	for _, parseErr := range parsed.Errors {
		e.logger.Debug("syntax error", "path", path, "line", parseErr.Line, "detail", parseErr.Message)
	}

	return parsed.Tree, len(parsed.Errors)
}

// runAnalyzers fans the enabled analyzers out over the immutable tree. Each
// analyzer writes to its own issue slot; slots are concatenated after the
// group joins.
func (e *Engine) runAnalyzers(ctx context.Context, tree *syntax.Node, content []byte, path string) ([]analyze.Issue, error) {
	slots := make([][]analyze.Issue, len(e.analyzers))

	group, ctx := errgroup.WithContext(ctx)

	for i, a := range e.analyzers {
		group.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			slots[i] = a.Analyze(tree, content, path)

			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, fmt.Errorf("analyze %s: %w", path, err)
	}

	var issues []analyze.Issue
	for _, slot := range slots {
		issues = append(issues, slot...)
	}

	sort.SliceStable(issues, func(i, j int) bool {
		return issues[i].StartLine < issues[j].StartLine
	})

	return issues, nil
}

// filterByConfidence drops issues below the configured confidence when
// AI-assisted scoring is enabled. With AI off, every issue is kept.
func (e *Engine) filterByConfidence(issues []analyze.Issue) []analyze.Issue {
	if !e.cfg.EnableAI {
		return issues
	}

	kept := issues[:0]

	for _, issue := range issues {
		if issue.Confidence >= e.cfg.Model.ConfidenceThreshold {
			kept = append(kept, issue)
		}
	}

	return kept
}

// unknownResult is the graceful-degradation result for unsupported files:
// empty metrics, cohesion 1 by convention, no issues.
func (e *Engine) unknownResult(path, language string, started time.Time) analyze.FileResult {
	if language == "" {
		language = string(lang.Unknown)
	}

	return analyze.FileResult{
		Path:     path,
		Language: language,
		Metrics:  metrics.FileMetrics{Cohesion: 1},
		Duration: time.Since(started),
	}
}
