package metrics_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gaugeworks/codegauge/internal/lang"
	"github.com/gaugeworks/codegauge/internal/metrics"
	"github.com/gaugeworks/codegauge/internal/syntax"
)

// buildFunction wraps the given body nodes in a File > Function tree.
func buildFunction(body ...*syntax.Node) *syntax.Node {
	fn := syntax.NewNode(syntax.KindFunction).WithProp(syntax.PropName, "f")
	for _, n := range body {
		fn.AddChild(n)
	}

	root := syntax.NewNode(syntax.KindFile)
	root.AddChild(fn)

	return root
}

func TestCyclomatic_NoDecisionPoints(t *testing.T) {
	t.Parallel()

	tree := buildFunction(
		syntax.NewNode(syntax.KindAssignment),
		syntax.NewNode(syntax.KindReturn),
	)

	assert.Equal(t, 1, metrics.Cyclomatic(tree))
}

func TestCyclomatic_IfWithLogicalAnd(t *testing.T) {
	t.Parallel()

	// if (a && b) {} => base 1 + if + && = 3.
	cond := syntax.NewNode(syntax.KindBinaryOp).WithProp(syntax.PropOperator, "&&")
	ifNode := syntax.NewNode(syntax.KindIf)
	ifNode.AddChild(cond)
	ifNode.AddChild(syntax.NewNode(syntax.KindBlock))

	tree := buildFunction(ifNode)

	assert.Equal(t, 3, metrics.Cyclomatic(tree))
}

func TestCyclomatic_CountsAllDecisionForms(t *testing.T) {
	t.Parallel()

	sw := syntax.NewNode(syntax.KindSwitch)
	sw.AddChild(syntax.NewNode(syntax.KindCase))
	sw.AddChild(syntax.NewNode(syntax.KindCase))

	try := syntax.NewNode(syntax.KindTry)
	try.AddChild(syntax.NewNode(syntax.KindCatch))

	tree := buildFunction(
		syntax.NewNode(syntax.KindLoop),
		syntax.NewNode(syntax.KindTernary),
		sw,
		try,
	)

	// base 1 + loop + ternary + 2 cases + catch = 6; switch and try
	// themselves are not decision points.
	assert.Equal(t, 6, metrics.Cyclomatic(tree))
}

func TestCognitive_FlatIfWithLogical(t *testing.T) {
	t.Parallel()

	// if (a && b) {} => 1 for the if at nesting 0, plus 1 for &&.
	cond := syntax.NewNode(syntax.KindBinaryOp).WithProp(syntax.PropOperator, "&&")
	ifNode := syntax.NewNode(syntax.KindIf)
	ifNode.AddChild(cond)

	tree := buildFunction(ifNode)

	assert.Equal(t, 2, metrics.Cognitive(tree))
}

func TestCognitive_MonotoneInNesting(t *testing.T) {
	t.Parallel()

	// Two sibling ifs: 1 + 1 = 2.
	flat := buildFunction(
		syntax.NewNode(syntax.KindIf),
		syntax.NewNode(syntax.KindIf),
	)

	// Same node count, nested: 1 + (1+1) = 3.
	inner := syntax.NewNode(syntax.KindIf)
	outer := syntax.NewNode(syntax.KindIf)
	outer.AddChild(inner)
	nested := buildFunction(outer)

	flatScore := metrics.Cognitive(flat)
	nestedScore := metrics.Cognitive(nested)

	assert.Equal(t, 2, flatScore)
	assert.Equal(t, 3, nestedScore)
	assert.Greater(t, nestedScore, flatScore)
}

func TestCognitive_SiblingDoesNotInheritNesting(t *testing.T) {
	t.Parallel()

	// if { if {} }  followed by sibling if => (1) + (2) + (1) = 4.
	inner := syntax.NewNode(syntax.KindIf)
	first := syntax.NewNode(syntax.KindIf)
	first.AddChild(inner)
	sibling := syntax.NewNode(syntax.KindIf)

	tree := buildFunction(first, sibling)

	assert.Equal(t, 4, metrics.Cognitive(tree))
}

func TestMaxNesting(t *testing.T) {
	t.Parallel()

	level3 := syntax.NewNode(syntax.KindLoop)
	level2 := syntax.NewNode(syntax.KindIf)
	level2.AddChild(level3)
	level1 := syntax.NewNode(syntax.KindIf)
	level1.AddChild(level2)

	tree := buildFunction(level1, syntax.NewNode(syntax.KindIf))

	assert.Equal(t, 3, metrics.MaxNesting(tree))
}

func TestCountLines_BlockCommentOnlyFileYieldsZero(t *testing.T) {
	t.Parallel()

	src := []byte("/*\n this file is\n entirely one comment\n*/\n")
	assert.Equal(t, 0, metrics.CountLines(src, lang.Comments(lang.Go)))
}

func TestCountLines_MixedSource(t *testing.T) {
	t.Parallel()

	src := []byte(`package main

// line comment
func main() {
	/* inline block */ x := 1
	/*
	   swallowed
	*/
	_ = x
}
`)

	// Countable: package main, func main() {, the inline-block line, _ = x, }.
	assert.Equal(t, 5, metrics.CountLines(src, lang.Comments(lang.Go)))
}

func TestCountLines_HashComments(t *testing.T) {
	t.Parallel()

	src := []byte("# comment\n\nx = 1\n# another\ny = 2\n")
	assert.Equal(t, 2, metrics.CountLines(src, lang.Comments(lang.Language("Ruby"))))
}

func TestCohesion_NoClassesIsOne(t *testing.T) {
	t.Parallel()

	tree := buildFunction(syntax.NewNode(syntax.KindReturn))
	assert.InDelta(t, 1.0, metrics.Cohesion(tree), 1e-9)
}

func TestCohesion_ZeroFieldsOrMethodsIsOne(t *testing.T) {
	t.Parallel()

	noFields := syntax.NewNode(syntax.KindClass)
	noFields.AddChild(syntax.NewNode(syntax.KindMethod))

	noMethods := syntax.NewNode(syntax.KindClass)
	noMethods.AddChild(syntax.NewNode(syntax.KindField))

	for _, class := range []*syntax.Node{noFields, noMethods} {
		root := syntax.NewNode(syntax.KindFile)
		root.AddChild(class)
		assert.InDelta(t, 1.0, metrics.Cohesion(root), 1e-9)
	}
}

func TestCohesion_FieldMethodRatio(t *testing.T) {
	t.Parallel()

	class := syntax.NewNode(syntax.KindClass)
	class.AddChild(syntax.NewNode(syntax.KindField))
	class.AddChild(syntax.NewNode(syntax.KindMethod))
	class.AddChild(syntax.NewNode(syntax.KindMethod))

	root := syntax.NewNode(syntax.KindFile)
	root.AddChild(class)

	assert.InDelta(t, 0.5, metrics.Cohesion(root), 1e-9)
}

func TestAbstractness(t *testing.T) {
	t.Parallel()

	abstract := syntax.NewNode(syntax.KindClass).WithProp(syntax.PropAbstract, "true")
	concrete := syntax.NewNode(syntax.KindClass)
	concrete.AddChild(syntax.NewNode(syntax.KindMethod))

	root := syntax.NewNode(syntax.KindFile)
	root.AddChild(abstract)
	root.AddChild(concrete)

	assert.InDelta(t, 0.5, metrics.Abstractness(root), 1e-9)
}

func TestCompute_NilTreeDegradesGracefully(t *testing.T) {
	t.Parallel()

	calc := metrics.NewCalculator()
	fm := calc.Compute(nil, []byte("line one\nline two\n"), lang.Unknown, nil)

	assert.Equal(t, 2, fm.Lines)
	assert.Equal(t, 0, fm.Functions)
	assert.Equal(t, 0, fm.Complexity.Cyclomatic)
	assert.InDelta(t, 1.0, fm.Cohesion, 1e-9)
}

func TestCompute_CouplingInstability(t *testing.T) {
	t.Parallel()

	calc := metrics.NewCalculator()

	fm := calc.Compute(buildFunction(), []byte("x\n"), lang.Go, []string{"fmt", "net/http"})
	assert.Equal(t, 2, fm.Coupling.Efferent)
	assert.Equal(t, 0, fm.Coupling.Afferent)
	assert.InDelta(t, 1.0, fm.Coupling.Instability, 1e-9)

	isolated := calc.Compute(buildFunction(), []byte("x\n"), lang.Go, nil)
	assert.InDelta(t, 0.0, isolated.Coupling.Instability, 1e-9)
}
