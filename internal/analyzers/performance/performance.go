// Package performance flags structural patterns with known runtime cost:
// nested loops, string accumulation inside loops, and repeated expensive
// construction (regex/compile-style calls) inside loop bodies.
package performance

import (
	"fmt"
	"strings"

	"github.com/gaugeworks/codegauge/internal/analyze"
	"github.com/gaugeworks/codegauge/internal/syntax"
)

// Rule names emitted by this analyzer.
const (
	RuleNestedLoops       = "nested-loops"
	RuleStringConcatLoop  = "string-concat-in-loop"
	RuleCompileInLoop     = "compile-in-loop"
	nestedLoopDepthFlag   = 2   // Loop-in-loop depth at which to flag.
	confidenceStructure   = 0.9 // Exact structural matches.
	confidenceConcatMatch = 0.7 // Concatenation target type is inferred.
)

// compileCallNames are callee names whose per-iteration invocation is a
// recognized hot-loop anti-pattern.
var compileCallNames = map[string]struct{}{
	"compile":          {},
	"mustcompile":      {},
	"regexp":           {},
	"preparestatement": {},
	"prepare":          {},
}

// Analyzer detects performance anti-patterns.
type Analyzer struct{}

// NewAnalyzer creates an Analyzer.
func NewAnalyzer() *Analyzer {
	return &Analyzer{}
}

// Kind returns the analyzer variant tag.
func (a *Analyzer) Kind() analyze.Kind {
	return analyze.KindPerformance
}

// Analyze walks the tree tracking loop depth and flags anti-patterns found
// inside loop bodies.
func (a *Analyzer) Analyze(tree *syntax.Node, _ []byte, path string) []analyze.Issue {
	if tree == nil {
		return nil
	}

	var issues []analyze.Issue

	var walk func(n *syntax.Node, loopDepth int)

	walk = func(n *syntax.Node, loopDepth int) {
		if n == nil {
			return
		}

		depth := loopDepth

		switch {
		case n.Kind == syntax.KindLoop:
			depth++
			if depth >= nestedLoopDepthFlag {
				issues = append(issues, analyze.NewIssue(
					path, analyze.CategoryPerformance, analyze.SeverityWarning,
					RuleNestedLoops,
					fmt.Sprintf("loop nested %d levels deep; consider restructuring or indexing", depth),
					n,
				).WithConfidence(confidenceStructure).
					WithRecommendation("Hoist invariant work, or replace the inner scan with a map lookup."))
			}
		case loopDepth > 0 && isStringAccumulation(n):
			issues = append(issues, analyze.NewIssue(
				path, analyze.CategoryPerformance, analyze.SeverityWarning,
				RuleStringConcatLoop,
				"string concatenation inside a loop reallocates on every iteration",
				n,
			).WithConfidence(confidenceConcatMatch).
				WithRecommendation("Accumulate into a builder/buffer and join once after the loop."))
		case loopDepth > 0 && isCompileCall(n):
			issues = append(issues, analyze.NewIssue(
				path, analyze.CategoryPerformance, analyze.SeverityWarning,
				RuleCompileInLoop,
				fmt.Sprintf("%s called inside a loop; compile once outside", calleeName(n)),
				n,
			).WithConfidence(confidenceStructure).
				WithRecommendation("Move the compilation out of the loop body."))
		}

		for _, child := range n.Children {
			walk(child, depth)
		}
	}

	walk(tree, 0)

	return issues
}

// isStringAccumulation matches `s += expr` and `s = s + expr` shapes on
// assignment nodes whose operator property records a concatenation.
func isStringAccumulation(n *syntax.Node) bool {
	if n.Kind != syntax.KindAssignment {
		return false
	}

	if n.Prop(syntax.PropOperator) == "+=" {
		return true
	}

	for _, child := range n.Children {
		if child.Kind == syntax.KindBinaryOp && child.Prop(syntax.PropOperator) == "+" {
			for _, operand := range child.Children {
				if operand.Kind == syntax.KindLiteral && strings.ContainsAny(operand.Token, `"'`) {
					return true
				}
			}
		}
	}

	return false
}

// isCompileCall reports whether a call node invokes a known compile-style
// callee.
func isCompileCall(n *syntax.Node) bool {
	if n.Kind != syntax.KindCall {
		return false
	}

	_, found := compileCallNames[strings.ToLower(calleeName(n))]

	return found
}

// calleeName resolves the called function's base name.
func calleeName(call *syntax.Node) string {
	name := call.Prop(syntax.PropName)
	if name == "" && len(call.Children) > 0 && call.Children[0].Kind == syntax.KindIdentifier {
		name = call.Children[0].Token
	}

	if idx := strings.LastIndex(name, "."); idx >= 0 {
		name = name[idx+1:]
	}

	return name
}
