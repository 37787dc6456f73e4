package syntax_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gaugeworks/codegauge/internal/syntax"
)

func TestVisitPreOrder_Order(t *testing.T) {
	t.Parallel()

	root := syntax.NewNode(syntax.KindFile)
	fn := syntax.NewNode(syntax.KindFunction)
	ifNode := syntax.NewNode(syntax.KindIf)
	ret := syntax.NewNode(syntax.KindReturn)

	fn.AddChild(ifNode)
	fn.AddChild(ret)
	root.AddChild(fn)

	var visited []syntax.Kind

	root.VisitPreOrder(func(n *syntax.Node) {
		visited = append(visited, n.Kind)
	})

	assert.Equal(t, []syntax.Kind{
		syntax.KindFile, syntax.KindFunction, syntax.KindIf, syntax.KindReturn,
	}, visited)
}

func TestFindByKind(t *testing.T) {
	t.Parallel()

	root := syntax.NewNode(syntax.KindFile)
	root.AddChild(syntax.NewNode(syntax.KindClass))
	root.AddChild(syntax.NewNode(syntax.KindFunction))
	root.Children[0].AddChild(syntax.NewNode(syntax.KindMethod))

	funcs := root.FindByKind(syntax.KindFunction, syntax.KindMethod)
	require.Len(t, funcs, 2)

	assert.Equal(t, 1, root.CountByKind(syntax.KindClass))
	assert.Equal(t, 0, root.CountByKind(syntax.KindLoop))
}

func TestName_PropAndRoleFallback(t *testing.T) {
	t.Parallel()

	byProp := syntax.NewNode(syntax.KindFunction).WithProp(syntax.PropName, "handler")
	assert.Equal(t, "handler", byProp.Name())

	byRole := syntax.NewNode(syntax.KindFunction)
	nameChild := syntax.NewNode(syntax.KindIdentifier).WithToken("worker").WithRoles(syntax.RoleName)
	byRole.AddChild(nameChild)
	assert.Equal(t, "worker", byRole.Name())

	anon := syntax.NewNode(syntax.KindLambda)
	assert.Empty(t, anon.Name())
}

func TestIsDecisionPoint(t *testing.T) {
	t.Parallel()

	assert.True(t, syntax.NewNode(syntax.KindIf).IsDecisionPoint())
	assert.True(t, syntax.NewNode(syntax.KindLoop).IsDecisionPoint())
	assert.True(t, syntax.NewNode(syntax.KindCase).IsDecisionPoint())
	assert.True(t, syntax.NewNode(syntax.KindCatch).IsDecisionPoint())
	assert.True(t, syntax.NewNode(syntax.KindTernary).IsDecisionPoint())

	logical := syntax.NewNode(syntax.KindBinaryOp).WithProp(syntax.PropOperator, "&&")
	assert.True(t, logical.IsDecisionPoint())

	arithmetic := syntax.NewNode(syntax.KindBinaryOp).WithProp(syntax.PropOperator, "+")
	assert.False(t, arithmetic.IsDecisionPoint())

	assert.False(t, syntax.NewNode(syntax.KindBlock).IsDecisionPoint())
	assert.False(t, syntax.NewNode(syntax.KindSwitch).IsDecisionPoint())
}

func TestIsNesting(t *testing.T) {
	t.Parallel()

	for _, kind := range []syntax.Kind{
		syntax.KindIf, syntax.KindLoop, syntax.KindSwitch, syntax.KindTry, syntax.KindCatch,
	} {
		assert.True(t, syntax.NewNode(kind).IsNesting(), "kind %s", kind)
	}

	assert.False(t, syntax.NewNode(syntax.KindCase).IsNesting())
	assert.False(t, syntax.NewNode(syntax.KindFunction).IsNesting())
}

func TestSpanLines(t *testing.T) {
	t.Parallel()

	n := syntax.NewNode(syntax.KindFunction)
	n.Pos = &syntax.Position{StartLine: 3, EndLine: 10}
	assert.Equal(t, 8, n.SpanLines())

	assert.Equal(t, 0, syntax.NewNode(syntax.KindFunction).SpanLines())
}
