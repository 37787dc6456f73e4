package metrics

import (
	"strings"

	"github.com/gaugeworks/codegauge/internal/lang"
	"github.com/gaugeworks/codegauge/internal/syntax"
)

// Calculator computes FileMetrics for one file. All methods are pure
// functions over the inputs; a single Calculator is safe for concurrent use.
type Calculator struct{}

// NewCalculator creates a Calculator.
func NewCalculator() *Calculator {
	return &Calculator{}
}

// Compute derives the full metric profile for one file. A nil tree yields
// line counts from the raw text and zeroes elsewhere, which is the graceful
// degradation path for unparseable or unknown-language files.
func (c *Calculator) Compute(tree *syntax.Node, src []byte, language lang.Language, dependencies []string) FileMetrics {
	fm := FileMetrics{
		Lines:    CountLines(src, lang.Comments(language)),
		Cohesion: 1.0,
	}

	fm.Coupling = c.coupling(tree, dependencies)

	if tree == nil {
		return fm
	}

	fm.Statements = countStatements(tree)
	fm.Functions = tree.CountByKind(syntax.KindFunction, syntax.KindMethod, syntax.KindLambda)
	fm.Classes = tree.CountByKind(syntax.KindClass)
	fm.Complexity = ComplexityMetrics{
		Cyclomatic:  Cyclomatic(tree),
		Cognitive:   Cognitive(tree),
		Nesting:     MaxNesting(tree),
		LinesOfCode: fm.Lines,
	}
	fm.Cohesion = Cohesion(tree)

	return fm
}

// CountLines counts non-blank, non-comment source lines. Block-comment
// state is tracked across lines so the interior of a multi-line comment is
// excluded entirely; lines that begin with a line-comment marker are also
// excluded.
func CountLines(src []byte, style lang.CommentStyle) int {
	count := 0
	inBlock := false

	for _, line := range strings.Split(string(src), "\n") {
		trimmed := strings.TrimSpace(line)

		if inBlock {
			if style.BlockEnd != "" && strings.Contains(trimmed, style.BlockEnd) {
				inBlock = false

				rest := trimmed[strings.Index(trimmed, style.BlockEnd)+len(style.BlockEnd):]
				if countableRemainder(rest, style) {
					count++
				}
			}

			continue
		}

		if trimmed == "" {
			continue
		}

		if isLineComment(trimmed, style) {
			continue
		}

		if style.BlockStart != "" && strings.HasPrefix(trimmed, style.BlockStart) {
			rest := trimmed[len(style.BlockStart):]
			if style.BlockEnd != "" && strings.Contains(rest, style.BlockEnd) {
				after := rest[strings.Index(rest, style.BlockEnd)+len(style.BlockEnd):]
				if countableRemainder(after, style) {
					count++
				}
			} else {
				inBlock = true
			}

			continue
		}

		count++

		// A block comment opened mid-line swallows subsequent lines until
		// its terminator.
		if style.BlockStart != "" && strings.Contains(trimmed, style.BlockStart) {
			tail := trimmed[strings.Index(trimmed, style.BlockStart)+len(style.BlockStart):]
			if style.BlockEnd == "" || !strings.Contains(tail, style.BlockEnd) {
				inBlock = true
			}
		}
	}

	return count
}

// countableRemainder reports whether the text following a closed block
// comment still contains code worth counting.
func countableRemainder(rest string, style lang.CommentStyle) bool {
	rest = strings.TrimSpace(rest)
	if rest == "" {
		return false
	}

	return !isLineComment(rest, style)
}

// isLineComment reports whether a trimmed line starts with one of the
// language's line-comment markers.
func isLineComment(trimmed string, style lang.CommentStyle) bool {
	for _, prefix := range style.LinePrefixes {
		if strings.HasPrefix(trimmed, prefix) {
			return true
		}
	}

	return false
}

// Cyclomatic computes cyclomatic complexity over a subtree: a base of 1
// plus 1 for every decision-point node, with short-circuit logical
// operators counting as decisions.
func Cyclomatic(tree *syntax.Node) int {
	complexity := 1

	tree.VisitPreOrder(func(n *syntax.Node) {
		if n.IsDecisionPoint() {
			complexity++
		}
	})

	return complexity
}

// Cognitive computes cognitive complexity: every control-flow node
// contributes 1 + its current nesting level, every logical expression
// contributes a flat 1, and nesting increments apply only within the
// subtree of the nesting node (siblings do not inherit each other's depth).
func Cognitive(tree *syntax.Node) int {
	complexity := 0

	var walk func(n *syntax.Node, nesting int)

	walk = func(n *syntax.Node, nesting int) {
		if n == nil {
			return
		}

		if isControlFlow(n) {
			complexity += 1 + nesting
		} else if n.IsLogicalOperator() {
			complexity++
		}

		childNesting := nesting
		if n.IsNesting() {
			childNesting++
		}

		for _, child := range n.Children {
			walk(child, childNesting)
		}
	}

	for _, child := range tree.Children {
		walk(child, 0)
	}

	if isControlFlow(tree) || tree.IsLogicalOperator() {
		complexity++
	}

	return complexity
}

// isControlFlow reports whether a node contributes a structural increment
// to cognitive complexity.
func isControlFlow(n *syntax.Node) bool {
	switch n.Kind {
	case syntax.KindIf, syntax.KindTernary, syntax.KindLoop, syntax.KindSwitch, syntax.KindCatch:
		return true
	default:
		return false
	}
}

// MaxNesting returns the deepest chain of nesting-inducing nodes in the
// tree.
func MaxNesting(tree *syntax.Node) int {
	maxDepth := 0

	var walk func(n *syntax.Node, depth int)

	walk = func(n *syntax.Node, depth int) {
		if n == nil {
			return
		}

		current := depth
		if n.IsNesting() {
			current++
			if current > maxDepth {
				maxDepth = current
			}
		}

		for _, child := range n.Children {
			walk(child, current)
		}
	}

	walk(tree, 0)

	return maxDepth
}

// countStatements counts statement-level nodes.
func countStatements(tree *syntax.Node) int {
	return tree.CountByKind(
		syntax.KindStatement,
		syntax.KindAssignment,
		syntax.KindReturn,
		syntax.KindCall,
		syntax.KindThrow,
		syntax.KindBreak,
		syntax.KindContinue,
		syntax.KindVariable,
		syntax.KindIf,
		syntax.KindLoop,
		syntax.KindSwitch,
		syntax.KindTry,
	)
}

// coupling derives coupling metrics from the extracted dependency list and
// the tree's class declarations. Afferent coupling stays 0 in single-file
// scope; instability is defined as 0 when there are no dependencies at all.
func (c *Calculator) coupling(tree *syntax.Node, dependencies []string) CouplingMetrics {
	cm := CouplingMetrics{
		Efferent: len(dependencies),
	}

	total := cm.Afferent + cm.Efferent
	if total > 0 {
		cm.Instability = float64(cm.Efferent) / float64(total)
	}

	if tree != nil {
		cm.Abstractness = Abstractness(tree)
	}

	return cm
}

// Abstractness returns the fraction of declared classes that are abstract:
// either explicitly marked, or declaring only abstract methods. Interfaces
// count as abstract declarations. Returns 0 for files without classes.
func Abstractness(tree *syntax.Node) float64 {
	classes := tree.FindByKind(syntax.KindClass, syntax.KindInterface)
	if len(classes) == 0 {
		return 0
	}

	abstract := 0

	for _, class := range classes {
		if isAbstract(class) {
			abstract++
		}
	}

	return float64(abstract) / float64(len(classes))
}

// isAbstract reports whether a class-like declaration is abstract.
func isAbstract(class *syntax.Node) bool {
	if class.Kind == syntax.KindInterface {
		return true
	}

	if class.Prop(syntax.PropAbstract) == "true" || class.HasRole(syntax.RoleAbstract) {
		return true
	}

	methods := class.FindByKind(syntax.KindMethod, syntax.KindFunction)
	if len(methods) == 0 {
		return false
	}

	for _, method := range methods {
		if method.Prop(syntax.PropAbstract) != "true" && !method.HasRole(syntax.RoleAbstract) {
			return false
		}
	}

	return true
}

// Cohesion returns the file's cohesion score in [0,1]: the unweighted mean
// of per-class cohesion, where each class scores min(1, fields/methods)
// with a divide-by-zero guard that treats zero fields or zero methods as
// fully cohesive. Files without classes score 1 by convention.
func Cohesion(tree *syntax.Node) float64 {
	classes := tree.FindByKind(syntax.KindClass)
	if len(classes) == 0 {
		return 1.0
	}

	total := 0.0
	for _, class := range classes {
		total += classCohesion(class)
	}

	return total / float64(len(classes))
}

// classCohesion scores one class.
func classCohesion(class *syntax.Node) float64 {
	fields := class.CountByKind(syntax.KindField)
	methods := class.CountByKind(syntax.KindMethod, syntax.KindFunction)

	if fields == 0 || methods == 0 {
		return 1.0
	}

	ratio := float64(fields) / float64(methods)
	if ratio > 1.0 {
		return 1.0
	}

	return ratio
}
