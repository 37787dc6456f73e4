// Package docs checks that exported declarations carry doc
// comments and that files open with a header comment.
package docs

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/gaugeworks/codegauge/internal/analyze"
	"github.com/gaugeworks/codegauge/internal/lang"
	"github.com/gaugeworks/codegauge/internal/syntax"
)

// Rule names emitted by this analyzer.
const (
	RuleMissingFunctionDoc = "missing-function-doc"
	RuleMissingTypeDoc     = "missing-type-doc"
	RuleMissingFileHeader  = "missing-file-header"

	confidenceDeclaration = 0.85
	confidenceHeader      = 0.6

	// headerScanLines bounds how far into a file the header comment may sit.
	headerScanLines = 5
)

// Analyzer detects undocumented exported surface.
type Analyzer struct{}

// NewAnalyzer creates an Analyzer.
func NewAnalyzer() *Analyzer {
	return &Analyzer{}
}

// Kind returns the analyzer variant tag.
func (a *Analyzer) Kind() analyze.Kind {
	return analyze.KindDocumentation
}

// Analyze flags exported functions and types without an adjacent comment,
// plus files that never open with one.
func (a *Analyzer) Analyze(tree *syntax.Node, src []byte, path string) []analyze.Issue {
	var issues []analyze.Issue

	if issue, missing := a.checkFileHeader(src, path); missing {
		issues = append(issues, issue)
	}

	if tree == nil {
		return issues
	}

	commented := commentedLines(tree)

	tree.VisitPreOrder(func(n *syntax.Node) {
		if !isExported(n) || isDocumented(n, commented) {
			return
		}

		switch n.Kind {
		case syntax.KindFunction, syntax.KindMethod:
			issues = append(issues, analyze.NewIssue(
				path, analyze.CategoryDocumentation, analyze.SeverityInfo,
				RuleMissingFunctionDoc,
				fmt.Sprintf("exported function %s has no doc comment", displayName(n)),
				n,
			).WithConfidence(confidenceDeclaration).
				WithRecommendation("Add a comment stating what the function does and returns."))
		case syntax.KindClass, syntax.KindInterface:
			issues = append(issues, analyze.NewIssue(
				path, analyze.CategoryDocumentation, analyze.SeverityInfo,
				RuleMissingTypeDoc,
				fmt.Sprintf("exported type %s has no doc comment", displayName(n)),
				n,
			).WithConfidence(confidenceDeclaration).
				WithRecommendation("Add a comment describing the type's responsibility."))
		}
	})

	return issues
}

// checkFileHeader reports a missing header when none of the first lines is a
// comment.
func (a *Analyzer) checkFileHeader(src []byte, path string) (analyze.Issue, bool) {
	if len(src) == 0 {
		return analyze.Issue{}, false
	}

	style := lang.Comments(lang.Detect(path, src))

	lines := strings.Split(string(src), "\n")
	limit := min(len(lines), headerScanLines)

	for _, line := range lines[:limit] {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}

		if isCommentLine(trimmed, style) {
			return analyze.Issue{}, false
		}
	}

	issue := analyze.NewIssue(
		path, analyze.CategoryDocumentation, analyze.SeverityInfo,
		RuleMissingFileHeader,
		"file has no header comment",
		&syntax.Node{Pos: &syntax.Position{StartLine: 1, EndLine: 1}},
	).WithConfidence(confidenceHeader).
		WithRecommendation("Open the file with a comment naming its purpose.")

	return issue, true
}

// isCommentLine reports whether a trimmed line starts a comment in the
// file's style.
func isCommentLine(trimmed string, style lang.CommentStyle) bool {
	for _, prefix := range style.LinePrefixes {
		if strings.HasPrefix(trimmed, prefix) {
			return true
		}
	}

	return style.BlockStart != "" && strings.HasPrefix(trimmed, style.BlockStart)
}

// commentedLines collects the end line of every comment node, so that a
// declaration starting right below one counts as documented.
func commentedLines(tree *syntax.Node) map[int]struct{} {
	lines := make(map[int]struct{})

	for _, comment := range tree.FindByKind(syntax.KindComment) {
		if comment.Pos != nil {
			lines[int(comment.Pos.EndLine)] = struct{}{}
		}
	}

	return lines
}

// isDocumented reports whether a comment ends on the line directly above the
// declaration.
func isDocumented(n *syntax.Node, commented map[int]struct{}) bool {
	start := n.StartLine()
	if start <= 1 {
		return false
	}

	_, adjacent := commented[start-1]

	return adjacent
}

// isExported reports whether a declaration is public API. The exported role
// is authoritative when present; otherwise an initial-uppercase name is used
// as the cross-language convention, with underscore prefixes treated as
// private.
func isExported(n *syntax.Node) bool {
	if n.HasRole(syntax.RoleExported) {
		return true
	}

	name := n.Name()
	if name == "" || strings.HasPrefix(name, "_") {
		return false
	}

	return unicode.IsUpper(rune(name[0]))
}

// displayName returns a name for messages.
func displayName(n *syntax.Node) string {
	if name := n.Name(); name != "" {
		return name
	}

	return "<anonymous>"
}
