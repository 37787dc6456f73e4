package orchestrator_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gaugeworks/codegauge/internal/analyze"
	"github.com/gaugeworks/codegauge/internal/config"
	"github.com/gaugeworks/codegauge/internal/orchestrator"
)

// recordingObserver captures event ordering and in-flight concurrency.
type recordingObserver struct {
	orchestrator.NopObserver

	mu          sync.Mutex
	events      []string
	inFlight    int
	maxInFlight int
	runComplete int
	runErrors   []error
}

func (r *recordingObserver) FileStart(path string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.events = append(r.events, "start:"+filepath.Base(path))
	r.inFlight++

	if r.inFlight > r.maxInFlight {
		r.maxInFlight = r.inFlight
	}
}

func (r *recordingObserver) FileComplete(path string, _ analyze.FileResult) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.events = append(r.events, "complete:"+filepath.Base(path))
	r.inFlight--
}

func (r *recordingObserver) RunComplete(*analyze.AnalysisResult) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.runComplete++
}

func (r *recordingObserver) RunError(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.runErrors = append(r.runErrors, err)
}

func writeProject(t *testing.T, n int) string {
	t.Helper()

	dir := t.TempDir()

	for i := range n {
		src := fmt.Sprintf("// Package p%d.\npackage p%d\n\n// Run runs.\nfunc Run(a bool) bool {\n\tif a {\n\t\treturn true\n\t}\n\treturn false\n}\n", i, i)
		require.NoError(t, os.WriteFile(filepath.Join(dir, fmt.Sprintf("f%d.go", i)), []byte(src), 0o600))
	}

	return dir
}

func TestAnalyze_EndToEnd(t *testing.T) {
	t.Parallel()

	dir := writeProject(t, 3)
	observer := &recordingObserver{}

	o := orchestrator.New(config.Default(), orchestrator.WithObserver(observer))

	result, err := o.Analyze(context.Background(), []string{filepath.Join(dir, "*.go")})
	require.NoError(t, err)

	assert.Len(t, result.Files, 3)
	assert.Equal(t, 3, result.Summary.TotalFiles)
	assert.Equal(t, 3, result.Summary.TotalFunctions)
	assert.NotNil(t, result.Insights.Patterns)
	assert.Equal(t, 1, observer.runComplete)
}

func TestAnalyze_StartPrecedesCompletePerFile(t *testing.T) {
	t.Parallel()

	dir := writeProject(t, 4)
	observer := &recordingObserver{}

	o := orchestrator.New(config.Default(), orchestrator.WithObserver(observer))

	_, err := o.Analyze(context.Background(), []string{filepath.Join(dir, "*.go")})
	require.NoError(t, err)

	started := make(map[string]bool)

	for _, event := range observer.events {
		if name, ok := strings.CutPrefix(event, "start:"); ok {
			started[name] = true

			continue
		}

		name := strings.TrimPrefix(event, "complete:")
		assert.True(t, started[name], "complete before start for %s", name)
	}
}

func TestAnalyze_ConcurrencyBounded(t *testing.T) {
	t.Parallel()

	dir := writeProject(t, 12)
	observer := &recordingObserver{}

	cfg := config.Default()
	cfg.Model.UpdateFrequency = config.FrequencyRealtime

	o := orchestrator.New(cfg, orchestrator.WithObserver(observer))

	_, err := o.Analyze(context.Background(), []string{filepath.Join(dir, "*.go")})
	require.NoError(t, err)

	assert.LessOrEqual(t, observer.maxInFlight, 4)
}

func TestAnalyze_CachedRunIsIdentical(t *testing.T) {
	t.Parallel()

	dir := writeProject(t, 2)

	o := orchestrator.New(config.Default())

	first, err := o.Analyze(context.Background(), []string{filepath.Join(dir, "*.go")})
	require.NoError(t, err)

	second, err := o.Analyze(context.Background(), []string{filepath.Join(dir, "*.go")})
	require.NoError(t, err)

	assert.Equal(t, first.Timestamp, second.Timestamp)
	assert.Equal(t, first.Summary, second.Summary)
}

func TestAnalyze_NoFilesFound(t *testing.T) {
	t.Parallel()

	observer := &recordingObserver{}
	o := orchestrator.New(config.Default(), orchestrator.WithObserver(observer))

	_, err := o.Analyze(context.Background(), []string{filepath.Join(t.TempDir(), "*.go")})

	assert.ErrorIs(t, err, orchestrator.ErrNoFilesFound)
	require.Len(t, observer.runErrors, 1)
	assert.Zero(t, observer.runComplete)
}

func TestAnalyze_DisabledAIYieldsEmptyInsights(t *testing.T) {
	t.Parallel()

	dir := writeProject(t, 1)

	cfg := config.Default()
	cfg.EnableAI = false

	o := orchestrator.New(cfg)

	result, err := o.Analyze(context.Background(), []string{filepath.Join(dir, "*.go")})
	require.NoError(t, err)

	assert.NotNil(t, result.Insights.Patterns)
	assert.Empty(t, result.Insights.Patterns)
	assert.Empty(t, result.Insights.Predictions)
	assert.Empty(t, result.Insights.Recommendations)
	assert.Empty(t, result.Insights.Risks)
}

func TestResolveFiles_RecursiveAndExclude(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "pkg", "inner"), 0o755))

	for _, name := range []string{"a.go", "pkg/b.go", "pkg/inner/c.go", "pkg/inner/c_test.go"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("package x\n"), 0o600))
	}

	files, err := orchestrator.ResolveFiles(
		[]string{filepath.Join(dir, "**", "*.go")},
		[]string{"*_test.go"},
	)
	require.NoError(t, err)

	names := make([]string, 0, len(files))
	for _, f := range files {
		names = append(names, filepath.Base(f))
	}

	assert.ElementsMatch(t, names, []string{"a.go", "b.go", "c.go"})
}

func TestResolveFiles_MultiSegmentSuffix(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "a", "sub"), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "a", "deep", "sub"), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "b"), 0o755))

	for _, name := range []string{"a/sub/x.go", "a/deep/sub/y.go", "a/sub/skip.txt", "b/other.go"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, filepath.FromSlash(name)), []byte("package x\n"), 0o600))
	}

	// The suffix after ** spans path segments; matching must consider the
	// whole relative path, not just the basename.
	files, err := orchestrator.ResolveFiles(
		[]string{filepath.Join(dir, "**", "sub", "*.go")},
		nil,
	)
	require.NoError(t, err)

	names := make([]string, 0, len(files))
	for _, f := range files {
		names = append(names, filepath.Base(f))
	}

	assert.ElementsMatch(t, names, []string{"x.go", "y.go"})
}

func TestResolveFiles_DirectoryPattern(t *testing.T) {
	t.Parallel()

	dir := writeProject(t, 2)

	files, err := orchestrator.ResolveFiles([]string{dir}, nil)
	require.NoError(t, err)
	assert.Len(t, files, 2)
}

func TestResolveFiles_EmptyPatterns(t *testing.T) {
	t.Parallel()

	_, err := orchestrator.ResolveFiles(nil, nil)
	assert.ErrorIs(t, err, orchestrator.ErrNoFilesFound)
}
