// Package complexity flags functions whose cyclomatic complexity, nesting
// depth, length, or parameter count exceed configured thresholds.
package complexity

import (
	"fmt"

	"github.com/gaugeworks/codegauge/internal/analyze"
	"github.com/gaugeworks/codegauge/internal/metrics"
	"github.com/gaugeworks/codegauge/internal/syntax"
)

// Default thresholds. Cyclomatic and cognitive follow the common SonarSource
// gates; the rest are conventional review limits.
const (
	DefaultCyclomaticThreshold = 10
	DefaultCognitiveThreshold  = 15
	DefaultNestingThreshold    = 4
	DefaultFunctionLines       = 60
	DefaultParameterCount      = 5

	criticalMultiplier = 2 // Threshold multiple at which severity escalates.

	confidenceStructural = 0.95 // Derived from exact tree counts.
	confidenceHeuristic  = 0.8  // Derived from span estimates.
)

// Rule names emitted by this analyzer.
const (
	RuleHighCyclomatic = "high-cyclomatic-complexity"
	RuleHighCognitive  = "high-cognitive-complexity"
	RuleDeepNesting    = "deep-nesting"
	RuleLongFunction   = "long-function"
	RuleTooManyParams  = "too-many-parameters"
)

// Analyzer detects complexity hotspots per function.
type Analyzer struct {
	cyclomaticThreshold int
	cognitiveThreshold  int
	nestingThreshold    int
	functionLines       int
	parameterCount      int
}

// NewAnalyzer creates an Analyzer with the default thresholds.
func NewAnalyzer() *Analyzer {
	return &Analyzer{
		cyclomaticThreshold: DefaultCyclomaticThreshold,
		cognitiveThreshold:  DefaultCognitiveThreshold,
		nestingThreshold:    DefaultNestingThreshold,
		functionLines:       DefaultFunctionLines,
		parameterCount:      DefaultParameterCount,
	}
}

// WithThresholds overrides the cyclomatic and cognitive gates. Non-positive
// values keep the defaults.
func (a *Analyzer) WithThresholds(cyclomatic, cognitive int) *Analyzer {
	if cyclomatic > 0 {
		a.cyclomaticThreshold = cyclomatic
	}

	if cognitive > 0 {
		a.cognitiveThreshold = cognitive
	}

	return a
}

// Kind returns the analyzer variant tag.
func (a *Analyzer) Kind() analyze.Kind {
	return analyze.KindComplexity
}

// Analyze scans every function in the tree and emits one issue per
// threshold violation.
func (a *Analyzer) Analyze(tree *syntax.Node, _ []byte, path string) []analyze.Issue {
	if tree == nil {
		return nil
	}

	var issues []analyze.Issue

	for _, fn := range tree.FindByKind(syntax.KindFunction, syntax.KindMethod) {
		issues = append(issues, a.checkFunction(fn, path)...)
	}

	return issues
}

// checkFunction evaluates all complexity rules against one function.
func (a *Analyzer) checkFunction(fn *syntax.Node, path string) []analyze.Issue {
	var issues []analyze.Issue

	name := functionName(fn)

	cyclomatic := metrics.Cyclomatic(fn)
	if cyclomatic > a.cyclomaticThreshold {
		issues = append(issues, analyze.NewIssue(
			path, analyze.CategoryComplexity, a.severityFor(cyclomatic, a.cyclomaticThreshold),
			RuleHighCyclomatic,
			fmt.Sprintf("function %s has cyclomatic complexity %d (threshold %d)", name, cyclomatic, a.cyclomaticThreshold),
			fn,
		).WithConfidence(confidenceStructural).
			WithRecommendation("Split the function into smaller units, one decision cluster each."))
	}

	cognitive := metrics.Cognitive(fn)
	if cognitive > a.cognitiveThreshold {
		issues = append(issues, analyze.NewIssue(
			path, analyze.CategoryComplexity, a.severityFor(cognitive, a.cognitiveThreshold),
			RuleHighCognitive,
			fmt.Sprintf("function %s has cognitive complexity %d (threshold %d)", name, cognitive, a.cognitiveThreshold),
			fn,
		).WithConfidence(confidenceStructural).
			WithRecommendation("Flatten nested control flow with early returns or extracted helpers."))
	}

	if nesting := metrics.MaxNesting(fn); nesting > a.nestingThreshold {
		issues = append(issues, analyze.NewIssue(
			path, analyze.CategoryComplexity, analyze.SeverityWarning,
			RuleDeepNesting,
			fmt.Sprintf("function %s nests %d levels deep (threshold %d)", name, nesting, a.nestingThreshold),
			fn,
		).WithConfidence(confidenceStructural).
			WithRecommendation("Invert conditions and return early to reduce nesting."))
	}

	if span := fn.SpanLines(); span > a.functionLines {
		issues = append(issues, analyze.NewIssue(
			path, analyze.CategoryComplexity, analyze.SeverityWarning,
			RuleLongFunction,
			fmt.Sprintf("function %s spans %d lines (threshold %d)", name, span, a.functionLines),
			fn,
		).WithConfidence(confidenceHeuristic).
			WithRecommendation("Extract cohesive blocks into named functions."))
	}

	if params := fn.CountByKind(syntax.KindParameter); params > a.parameterCount {
		issues = append(issues, analyze.NewIssue(
			path, analyze.CategoryComplexity, analyze.SeverityInfo,
			RuleTooManyParams,
			fmt.Sprintf("function %s takes %d parameters (threshold %d)", name, params, a.parameterCount),
			fn,
		).WithConfidence(confidenceStructural).
			WithRecommendation("Group related parameters into a struct or options value."))
	}

	return issues
}

// severityFor escalates to error when a value exceeds twice its threshold.
func (a *Analyzer) severityFor(value, threshold int) analyze.Severity {
	if value > threshold*criticalMultiplier {
		return analyze.SeverityError
	}

	return analyze.SeverityWarning
}

// functionName returns a display name for a function node.
func functionName(fn *syntax.Node) string {
	if name := fn.Name(); name != "" {
		return name
	}

	return "<anonymous>"
}
