package testhealth_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gaugeworks/codegauge/internal/analyze"
	"github.com/gaugeworks/codegauge/internal/analyzers/testhealth"
	"github.com/gaugeworks/codegauge/internal/syntax"
)

func testFunc(name string, body ...*syntax.Node) *syntax.Node {
	fn := syntax.NewNode(syntax.KindFunction).WithProp(syntax.PropName, name)
	block := syntax.NewNode(syntax.KindBlock)

	for _, n := range body {
		block.AddChild(n)
	}

	fn.AddChild(block)

	return fn
}

func fileWith(fns ...*syntax.Node) *syntax.Node {
	root := syntax.NewNode(syntax.KindFile)
	for _, fn := range fns {
		root.AddChild(fn)
	}

	return root
}

func TestIsTestFile(t *testing.T) {
	t.Parallel()

	assert.True(t, testhealth.IsTestFile("pkg/store_test.go"))
	assert.True(t, testhealth.IsTestFile("tests/test_api.py"))
	assert.True(t, testhealth.IsTestFile("src/app.spec.ts"))
	assert.False(t, testhealth.IsTestFile("pkg/store.go"))
	assert.False(t, testhealth.IsTestFile("contest.py"))
}

func TestAnalyze_EmptyTest(t *testing.T) {
	t.Parallel()

	tree := fileWith(testFunc("TestNothing"))
	issues := testhealth.NewAnalyzer().Analyze(tree, nil, "a_test.go")

	require.Len(t, issues, 1)
	assert.Equal(t, testhealth.RuleEmptyTest, issues[0].Rule)
	assert.Equal(t, analyze.SeverityWarning, issues[0].Severity)
	assert.Equal(t, analyze.CategoryTesting, issues[0].Category)
}

func TestAnalyze_AssertionFreeTest(t *testing.T) {
	t.Parallel()

	call := syntax.NewNode(syntax.KindCall).WithProp(syntax.PropName, "compute")
	tree := fileWith(testFunc("TestCompute", call))

	issues := testhealth.NewAnalyzer().Analyze(tree, nil, "a_test.go")
	require.Len(t, issues, 1)
	assert.Equal(t, testhealth.RuleAssertionFreeTest, issues[0].Rule)
	assert.Contains(t, issues[0].Message, "TestCompute")
}

func TestAnalyze_AssertingTestClean(t *testing.T) {
	t.Parallel()

	call := syntax.NewNode(syntax.KindCall).WithProp(syntax.PropName, "assert.Equal")
	tree := fileWith(testFunc("TestCompute", call))

	assert.Empty(t, testhealth.NewAnalyzer().Analyze(tree, nil, "a_test.go"))
}

func TestAnalyze_HelperFunctionsIgnored(t *testing.T) {
	t.Parallel()

	call := syntax.NewNode(syntax.KindCall).WithProp(syntax.PropName, "compute")
	tree := fileWith(testFunc("buildFixture", call))

	assert.Empty(t, testhealth.NewAnalyzer().Analyze(tree, nil, "a_test.go"))
}

func TestAnalyze_NonTestFileIgnored(t *testing.T) {
	t.Parallel()

	tree := fileWith(testFunc("TestLooking"))
	assert.Nil(t, testhealth.NewAnalyzer().Analyze(tree, nil, "main.go"))
}

func TestAnalyze_NilTree(t *testing.T) {
	t.Parallel()

	assert.Nil(t, testhealth.NewAnalyzer().Analyze(nil, nil, "a_test.go"))
}
