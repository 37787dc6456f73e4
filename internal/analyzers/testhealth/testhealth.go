// Package testhealth inspects test files for functions that cannot fail:
// tests without assertions and tests with empty bodies.
package testhealth

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/gaugeworks/codegauge/internal/analyze"
	"github.com/gaugeworks/codegauge/internal/syntax"
)

// Rule names emitted by this analyzer.
const (
	RuleAssertionFreeTest = "assertion-free-test"
	RuleEmptyTest         = "empty-test"

	confidenceEmpty      = 0.95
	confidenceAssertFree = 0.7 // Assertion detection is name-based.
)

// assertionNames are callee fragments that indicate a test can fail.
var assertionNames = []string{
	"assert", "require", "expect", "fail", "fatal", "error", "should", "verify",
}

// testFileSuffixes mark a path as test code across the supported languages.
var testFileSuffixes = []string{
	"_test.go", "_test.py", ".test.ts", ".test.js", ".spec.ts", ".spec.js",
}

// Analyzer detects tests that provide no signal.
type Analyzer struct{}

// NewAnalyzer creates an Analyzer.
func NewAnalyzer() *Analyzer {
	return &Analyzer{}
}

// Kind returns the analyzer variant tag.
func (a *Analyzer) Kind() analyze.Kind {
	return analyze.KindTesting
}

// Analyze checks every test function in a test file. Non-test files produce
// no issues.
func (a *Analyzer) Analyze(tree *syntax.Node, _ []byte, path string) []analyze.Issue {
	if tree == nil || !IsTestFile(path) {
		return nil
	}

	var issues []analyze.Issue

	for _, fn := range tree.FindByKind(syntax.KindFunction, syntax.KindMethod) {
		if !isTestFunction(fn) {
			continue
		}

		name := fn.Name()

		switch {
		case isEmptyBody(fn):
			issues = append(issues, analyze.NewIssue(
				path, analyze.CategoryTesting, analyze.SeverityWarning,
				RuleEmptyTest,
				fmt.Sprintf("test %s has an empty body", name),
				fn,
			).WithConfidence(confidenceEmpty).
				WithRecommendation("Implement the test or delete the placeholder."))
		case !hasAssertion(fn):
			issues = append(issues, analyze.NewIssue(
				path, analyze.CategoryTesting, analyze.SeverityWarning,
				RuleAssertionFreeTest,
				fmt.Sprintf("test %s makes no assertions", name),
				fn,
			).WithConfidence(confidenceAssertFree).
				WithRecommendation("Assert on the result so the test can actually fail."))
		}
	}

	return issues
}

// IsTestFile reports whether a path names test code by suffix or by the
// tests/ directory convention.
func IsTestFile(path string) bool {
	base := strings.ToLower(filepath.Base(path))

	for _, suffix := range testFileSuffixes {
		if strings.HasSuffix(base, suffix) {
			return true
		}
	}

	return strings.HasPrefix(base, "test_") && strings.HasSuffix(base, ".py")
}

// isTestFunction matches the per-language test naming conventions.
func isTestFunction(fn *syntax.Node) bool {
	name := strings.ToLower(fn.Name())

	return strings.HasPrefix(name, "test") || strings.HasPrefix(name, "it_") ||
		strings.HasPrefix(name, "should")
}

// isEmptyBody reports whether a function contains no statements. Parameters
// and a bare block do not count as content.
func isEmptyBody(fn *syntax.Node) bool {
	for _, child := range fn.Children {
		switch child.Kind {
		case syntax.KindParameter, syntax.KindComment, syntax.KindIdentifier:
			continue
		case syntax.KindBlock:
			if len(child.Children) > 0 {
				return false
			}
		default:
			return false
		}
	}

	return true
}

// hasAssertion reports whether any call in the function resolves to a known
// assertion name.
func hasAssertion(fn *syntax.Node) bool {
	found := false

	fn.VisitPreOrder(func(n *syntax.Node) {
		if found || n.Kind != syntax.KindCall {
			return
		}

		callee := strings.ToLower(n.Prop(syntax.PropName))
		if callee == "" && len(n.Children) > 0 && n.Children[0].Kind == syntax.KindIdentifier {
			callee = strings.ToLower(n.Children[0].Token)
		}

		for _, fragment := range assertionNames {
			if strings.Contains(callee, fragment) {
				found = true

				return
			}
		}
	})

	return found
}
