// Package smell flags maintainability problems: god classes, swallowed
// exceptions, magic numbers, and oversized state.
package smell

import (
	"fmt"
	"strconv"

	"github.com/gaugeworks/codegauge/internal/analyze"
	"github.com/gaugeworks/codegauge/internal/syntax"
)

// Rule names emitted by this analyzer.
const (
	RuleGodClass      = "god-class"
	RuleEmptyCatch    = "empty-catch"
	RuleMagicNumber   = "magic-number"
	RuleTooManyFields = "too-many-fields"
)

// Thresholds for structural smells.
const (
	DefaultMethodLimit = 20
	DefaultFieldLimit  = 15

	confidenceStructural = 0.9
	confidenceMagic      = 0.6 // Numeric context is not inferred.
)

// trivialNumbers are literal values conventional enough to skip.
var trivialNumbers = map[string]struct{}{
	"-1": {}, "0": {}, "1": {}, "2": {}, "10": {}, "100": {}, "1000": {},
	"0.0": {}, "1.0": {}, "0.5": {},
}

// Analyzer detects maintainability smells.
type Analyzer struct {
	methodLimit int
	fieldLimit  int
}

// NewAnalyzer creates an Analyzer with the default limits.
func NewAnalyzer() *Analyzer {
	return &Analyzer{
		methodLimit: DefaultMethodLimit,
		fieldLimit:  DefaultFieldLimit,
	}
}

// Kind returns the analyzer variant tag.
func (a *Analyzer) Kind() analyze.Kind {
	return analyze.KindSmell
}

// Analyze runs every smell rule over the tree.
func (a *Analyzer) Analyze(tree *syntax.Node, _ []byte, path string) []analyze.Issue {
	if tree == nil {
		return nil
	}

	var issues []analyze.Issue

	for _, class := range tree.FindByKind(syntax.KindClass) {
		issues = append(issues, a.checkClass(class, path)...)
	}

	for _, catch := range tree.FindByKind(syntax.KindCatch) {
		if issue, empty := a.checkCatch(catch, path); empty {
			issues = append(issues, issue)
		}
	}

	issues = append(issues, a.checkMagicNumbers(tree, path)...)

	return issues
}

// checkClass flags classes with too many methods or fields.
func (a *Analyzer) checkClass(class *syntax.Node, path string) []analyze.Issue {
	var issues []analyze.Issue

	name := className(class)

	if methods := class.CountByKind(syntax.KindMethod, syntax.KindFunction); methods > a.methodLimit {
		issues = append(issues, analyze.NewIssue(
			path, analyze.CategoryMaintainability, analyze.SeverityWarning,
			RuleGodClass,
			fmt.Sprintf("class %s declares %d methods (limit %d)", name, methods, a.methodLimit),
			class,
		).WithConfidence(confidenceStructural).
			WithRecommendation("Split the class along its distinct responsibilities."))
	}

	if fields := class.CountByKind(syntax.KindField); fields > a.fieldLimit {
		issues = append(issues, analyze.NewIssue(
			path, analyze.CategoryMaintainability, analyze.SeverityWarning,
			RuleTooManyFields,
			fmt.Sprintf("class %s declares %d fields (limit %d)", name, fields, a.fieldLimit),
			class,
		).WithConfidence(confidenceStructural).
			WithRecommendation("Group related fields into dedicated value types."))
	}

	return issues
}

// checkCatch flags handlers whose body contains no statements.
func (a *Analyzer) checkCatch(catch *syntax.Node, path string) (analyze.Issue, bool) {
	for _, child := range catch.Children {
		switch child.Kind {
		case syntax.KindParameter, syntax.KindIdentifier, syntax.KindComment:
			continue
		case syntax.KindBlock:
			if len(child.Children) > 0 {
				return analyze.Issue{}, false
			}
		default:
			return analyze.Issue{}, false
		}
	}

	issue := analyze.NewIssue(
		path, analyze.CategoryMaintainability, analyze.SeverityWarning,
		RuleEmptyCatch,
		"exception handler swallows the error without acting on it",
		catch,
	).WithConfidence(confidenceStructural).
		WithRecommendation("Log, wrap, or rethrow the error instead of discarding it.")

	return issue, true
}

// checkMagicNumbers flags non-trivial numeric literals used directly in
// conditions and expressions. Literals inside assignments are assumed to be
// named constants and skipped.
func (a *Analyzer) checkMagicNumbers(tree *syntax.Node, path string) []analyze.Issue {
	var issues []analyze.Issue

	var walk func(n *syntax.Node, inAssignment bool)

	walk = func(n *syntax.Node, inAssignment bool) {
		if n == nil {
			return
		}

		if n.Kind == syntax.KindLiteral && !inAssignment && isMagicNumber(n.Token) {
			issues = append(issues, analyze.NewIssue(
				path, analyze.CategoryMaintainability, analyze.SeverityInfo,
				RuleMagicNumber,
				fmt.Sprintf("magic number %s", n.Token),
				n,
			).WithConfidence(confidenceMagic).
				WithRecommendation("Name the value with a constant that states its meaning."))
		}

		inside := inAssignment || n.Kind == syntax.KindAssignment

		for _, child := range n.Children {
			walk(child, inside)
		}
	}

	walk(tree, false)

	return issues
}

// isMagicNumber reports whether a literal token is numeric and non-trivial.
func isMagicNumber(token string) bool {
	if _, trivial := trivialNumbers[token]; trivial {
		return false
	}

	_, err := strconv.ParseFloat(token, 64)

	return err == nil
}

// className returns a display name for a class node.
func className(class *syntax.Node) string {
	if name := class.Name(); name != "" {
		return name
	}

	return "<anonymous>"
}
