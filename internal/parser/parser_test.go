package parser_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gaugeworks/codegauge/internal/lang"
	"github.com/gaugeworks/codegauge/internal/metrics"
	"github.com/gaugeworks/codegauge/internal/parser"
	"github.com/gaugeworks/codegauge/internal/syntax"
)

const goSample = `package demo

import "fmt"

func add(a int, b int) int {
	if a > 0 && b > 0 {
		fmt.Println("positive")
	}
	return a + b
}
`

func parseGo(t *testing.T, source string) *parser.Result {
	t.Helper()

	provider, err := parser.Default().Lookup(lang.Go)
	require.NoError(t, err)

	result, err := provider.Parse(context.Background(), "demo.go", []byte(source))
	require.NoError(t, err)
	require.NotNil(t, result.Tree)

	return result
}

func TestParse_GoFunction(t *testing.T) {
	t.Parallel()

	result := parseGo(t, goSample)
	assert.Empty(t, result.Errors)

	fns := result.Tree.FindByKind(syntax.KindFunction)
	require.Len(t, fns, 1)
	assert.Equal(t, "add", fns[0].Name())
	assert.Equal(t, 5, fns[0].StartLine())
	assert.Equal(t, 2, fns[0].CountByKind(syntax.KindParameter))
}

func TestParse_GoImportPath(t *testing.T) {
	t.Parallel()

	result := parseGo(t, goSample)

	imports := result.Tree.FindByKind(syntax.KindImport)
	require.Len(t, imports, 1)
	assert.Equal(t, "fmt", imports[0].Prop(syntax.PropPath))
}

func TestParse_GoComplexityEndToEnd(t *testing.T) {
	t.Parallel()

	result := parseGo(t, goSample)

	fn := result.Tree.FindByKind(syntax.KindFunction)[0]

	// One if plus one && on top of the base path.
	assert.Equal(t, 3, metrics.Cyclomatic(fn))
	assert.Equal(t, 2, metrics.Cognitive(fn))
}

func TestParse_SyntaxErrorsCollected(t *testing.T) {
	t.Parallel()

	result := parseGo(t, "package demo\n\nfunc add( {\n")
	assert.NotEmpty(t, result.Errors)
	assert.NotNil(t, result.Tree)
}

func TestParse_PythonTryExcept(t *testing.T) {
	t.Parallel()

	provider, err := parser.Default().Lookup(lang.Python)
	require.NoError(t, err)

	source := "try:\n    risky()\nexcept ValueError:\n    pass\n"
	result, err := provider.Parse(context.Background(), "app.py", []byte(source))
	require.NoError(t, err)

	assert.Equal(t, 1, result.Tree.CountByKind(syntax.KindTry))
	assert.Equal(t, 1, result.Tree.CountByKind(syntax.KindCatch))
}

func TestParse_PythonMethodPromotion(t *testing.T) {
	t.Parallel()

	provider, err := parser.Default().Lookup(lang.Python)
	require.NoError(t, err)

	source := "class Box:\n    def open(self):\n        return 1\n"
	result, err := provider.Parse(context.Background(), "box.py", []byte(source))
	require.NoError(t, err)

	assert.Equal(t, 0, result.Tree.CountByKind(syntax.KindFunction))
	assert.Equal(t, 1, result.Tree.CountByKind(syntax.KindMethod))
}

func TestParse_CancelledContext(t *testing.T) {
	t.Parallel()

	provider, err := parser.Default().Lookup(lang.Go)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = provider.Parse(ctx, "demo.go", []byte(goSample))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestLookup_UnsupportedLanguage(t *testing.T) {
	t.Parallel()

	_, err := parser.Default().Lookup(lang.Unknown)
	assert.ErrorIs(t, err, parser.ErrUnsupportedLanguage)

	assert.True(t, parser.Default().Supports(lang.JavaScript))
}
