package engine_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gaugeworks/codegauge/internal/config"
	"github.com/gaugeworks/codegauge/internal/engine"
	"github.com/gaugeworks/codegauge/internal/parser"
)

const goFixture = `// Package demo exercises the pipeline.
package demo

import "os"

// Check reports whether both inputs are set.
func Check(a bool, b bool) bool {
	if a && b {
		return true
	}
	return os.Getenv("FLAG") != ""
}
`

func writeFixture(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func newEngine(cfg *config.Config) *engine.Engine {
	return engine.New(cfg, parser.Default(), nil)
}

func TestAnalyzeFile_GoSource(t *testing.T) {
	t.Parallel()

	path := writeFixture(t, "demo.go", goFixture)

	result, err := newEngine(config.Default()).AnalyzeFile(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, "Go", result.Language)
	assert.Equal(t, path, result.Path)
	assert.Equal(t, []string{"os"}, result.Dependencies)
	assert.Equal(t, 1, result.Metrics.Functions)
	// Base 1, plus the if, plus the short-circuit branch.
	assert.Equal(t, 3, result.Metrics.Complexity.Cyclomatic)
	assert.Equal(t, 2, result.Metrics.Complexity.Cognitive)
	assert.Zero(t, result.ParseErrorCount)
	assert.Positive(t, result.Duration)
}

func TestAnalyzeFile_UnsupportedLanguageDegrades(t *testing.T) {
	t.Parallel()

	path := writeFixture(t, "script.rb", "puts 'hi'\n")

	result, err := newEngine(config.Default()).AnalyzeFile(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, "Ruby", result.Language)
	assert.Empty(t, result.Issues)
	assert.InDelta(t, 1.0, result.Metrics.Cohesion, 1e-9)
	assert.Zero(t, result.Metrics.Complexity.Cyclomatic)
}

func TestAnalyzeFile_ParseErrorsDoNotAbort(t *testing.T) {
	t.Parallel()

	path := writeFixture(t, "broken.go", "package demo\n\nfunc oops( {\n")

	result, err := newEngine(config.Default()).AnalyzeFile(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, "Go", result.Language)
	assert.Positive(t, result.ParseErrorCount)
}

func TestAnalyzeFile_ConfidenceFilterOnlyWithAI(t *testing.T) {
	t.Parallel()

	// The missing-file-header rule fires at confidence 0.6.
	src := "package demo\n\nfunc Undocumented() {}\n"

	strict := config.Default()
	strict.EnableAI = true
	strict.Model.ConfidenceThreshold = 0.99

	path := writeFixture(t, "bare.go", src)

	filtered, err := newEngine(strict).AnalyzeFile(context.Background(), path)
	require.NoError(t, err)
	assert.Empty(t, filtered.Issues)

	open := config.Default()
	open.EnableAI = false

	unfiltered, err := newEngine(open).AnalyzeFile(context.Background(), path)
	require.NoError(t, err)
	assert.NotEmpty(t, unfiltered.Issues)
}

func TestAnalyzeFile_MissingFile(t *testing.T) {
	t.Parallel()

	_, err := newEngine(config.Default()).AnalyzeFile(context.Background(), "/nonexistent/x.go")
	assert.Error(t, err)
}
