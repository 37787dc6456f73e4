// Package security scans for common insecure patterns: hardcoded
// credentials, dynamic code evaluation, SQL built by string concatenation,
// weak hash primitives, and cleartext HTTP endpoints.
package security

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/gaugeworks/codegauge/internal/analyze"
	"github.com/gaugeworks/codegauge/internal/syntax"
)

// Rule names emitted by this analyzer.
const (
	RuleHardcodedSecret = "hardcoded-secret"
	RuleDynamicEval     = "dynamic-code-evaluation"
	RuleSQLConcat       = "sql-string-concatenation"
	RuleWeakHash        = "weak-hash-algorithm"
	RuleCleartextHTTP   = "cleartext-http-url"
)

// Confidence scores per rule. Text-pattern rules are less certain than
// structural ones.
const (
	confidenceSecret   = 0.85
	confidenceEval     = 0.9
	confidenceSQL      = 0.75
	confidenceWeakHash = 0.9
	confidenceHTTP     = 0.7
)

// secretAssignment matches assignments of string literals to names that
// suggest credentials.
var secretAssignment = regexp.MustCompile(
	`(?i)(password|passwd|secret|api[_-]?key|auth[_-]?token|private[_-]?key)\s*[:=]+\s*["'][^"']{4,}["']`,
)

// cleartextURL matches non-localhost http:// literals.
var cleartextURL = regexp.MustCompile(`["']http://(?:[^"']+)["']`)

// sqlKeyword detects SQL verbs at the start of a string literal.
var sqlKeyword = regexp.MustCompile(`(?i)^\s*(select|insert|update|delete)\b`)

// evalCallNames are callee names that execute dynamically-built code.
var evalCallNames = map[string]struct{}{
	"eval":       {},
	"exec":       {},
	"execscript": {},
	"system":     {},
	"popen":      {},
}

// weakHashNames are hash primitives unsuitable for security contexts.
var weakHashNames = map[string]struct{}{
	"md5":  {},
	"sha1": {},
}

// Analyzer detects insecure patterns.
type Analyzer struct{}

// NewAnalyzer creates an Analyzer.
func NewAnalyzer() *Analyzer {
	return &Analyzer{}
}

// Kind returns the analyzer variant tag.
func (a *Analyzer) Kind() analyze.Kind {
	return analyze.KindSecurity
}

// Analyze runs all security rules. Text rules work even without a tree so
// secrets are still caught in files that failed to parse.
func (a *Analyzer) Analyze(tree *syntax.Node, src []byte, path string) []analyze.Issue {
	issues := a.scanText(src, path)

	if tree != nil {
		issues = append(issues, a.scanTree(tree, path)...)
	}

	return issues
}

// scanText applies line-based pattern rules.
func (a *Analyzer) scanText(src []byte, path string) []analyze.Issue {
	var issues []analyze.Issue

	for lineNo, line := range strings.Split(string(src), "\n") {
		at := &syntax.Node{Pos: &syntax.Position{
			StartLine: uint32(lineNo + 1),
			EndLine:   uint32(lineNo + 1),
		}}

		if secretAssignment.MatchString(line) {
			issues = append(issues, analyze.NewIssue(
				path, analyze.CategorySecurity, analyze.SeverityCritical,
				RuleHardcodedSecret,
				"credential-like value assigned from a string literal",
				at,
			).WithConfidence(confidenceSecret).
				WithRecommendation("Load secrets from the environment or a secret manager."))
		}

		if match := cleartextURL.FindString(line); match != "" && !isLoopbackURL(match) {
			issues = append(issues, analyze.NewIssue(
				path, analyze.CategorySecurity, analyze.SeverityWarning,
				RuleCleartextHTTP,
				fmt.Sprintf("cleartext HTTP endpoint %s", strings.Trim(match, `"'`)),
				at,
			).WithConfidence(confidenceHTTP).
				WithRecommendation("Use HTTPS for non-local endpoints."))
		}
	}

	return issues
}

// scanTree applies structural rules over call and concatenation nodes.
func (a *Analyzer) scanTree(tree *syntax.Node, path string) []analyze.Issue {
	var issues []analyze.Issue

	tree.VisitPreOrder(func(n *syntax.Node) {
		switch n.Kind {
		case syntax.KindCall:
			issues = append(issues, a.checkCall(n, path)...)
		case syntax.KindBinaryOp:
			if issue, found := a.checkSQLConcat(n, path); found {
				issues = append(issues, issue)
			}
		}
	})

	return issues
}

// checkCall flags eval-style and weak-hash callees.
func (a *Analyzer) checkCall(call *syntax.Node, path string) []analyze.Issue {
	callee := strings.ToLower(calleeName(call))
	if callee == "" {
		return nil
	}

	var issues []analyze.Issue

	if _, risky := evalCallNames[callee]; risky {
		issues = append(issues, analyze.NewIssue(
			path, analyze.CategorySecurity, analyze.SeverityCritical,
			RuleDynamicEval,
			fmt.Sprintf("call to %s executes dynamically constructed code", callee),
			call,
		).WithConfidence(confidenceEval).
			WithRecommendation("Replace dynamic evaluation with an explicit dispatch table."))
	}

	if _, weak := weakHashNames[callee]; weak {
		issues = append(issues, analyze.NewIssue(
			path, analyze.CategorySecurity, analyze.SeverityError,
			RuleWeakHash,
			fmt.Sprintf("%s is not collision-resistant", callee),
			call,
		).WithConfidence(confidenceWeakHash).
			WithRecommendation("Use SHA-256 or stronger for security-sensitive hashing."))
	}

	return issues
}

// checkSQLConcat flags string concatenation where one operand is a SQL
// statement literal.
func (a *Analyzer) checkSQLConcat(op *syntax.Node, path string) (analyze.Issue, bool) {
	if op.Prop(syntax.PropOperator) != "+" {
		return analyze.Issue{}, false
	}

	for _, child := range op.Children {
		if child.Kind == syntax.KindLiteral && sqlKeyword.MatchString(strings.Trim(child.Token, `"'`)) {
			issue := analyze.NewIssue(
				path, analyze.CategorySecurity, analyze.SeverityCritical,
				RuleSQLConcat,
				"SQL statement built by string concatenation",
				op,
			).WithConfidence(confidenceSQL).
				WithRecommendation("Use parameterized queries instead of concatenation.")

			return issue, true
		}
	}

	return analyze.Issue{}, false
}

// calleeName resolves the called function's name from a call node.
func calleeName(call *syntax.Node) string {
	if name := call.Prop(syntax.PropName); name != "" {
		return afterLastDot(name)
	}

	if len(call.Children) > 0 && call.Children[0].Kind == syntax.KindIdentifier {
		return afterLastDot(call.Children[0].Token)
	}

	return ""
}

// afterLastDot strips a receiver/module qualifier from a dotted callee.
func afterLastDot(name string) string {
	if idx := strings.LastIndex(name, "."); idx >= 0 {
		return name[idx+1:]
	}

	return name
}

// isLoopbackURL reports whether a matched http:// literal points at a local
// development address.
func isLoopbackURL(match string) bool {
	return strings.Contains(match, "localhost") || strings.Contains(match, "127.0.0.1")
}
