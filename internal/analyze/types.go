// Package analyze defines the core value types of the quality pipeline:
// issues, per-file results, the top-level analysis result, and the uniform
// analyzer capability implemented by each category analyzer.
package analyze

import (
	"github.com/google/uuid"

	"github.com/gaugeworks/codegauge/internal/syntax"
)

// Severity grades how urgent an issue is.
type Severity string

// Severity levels, ordered from least to most urgent.
const (
	SeverityInfo     Severity = "info"
	SeverityWarning  Severity = "warning"
	SeverityError    Severity = "error"
	SeverityCritical Severity = "critical"
)

// Category identifies which quality concern an issue belongs to.
type Category string

// Issue categories. One category per analyzer kind, plus maintainability
// for code smells.
const (
	CategoryComplexity      Category = "complexity"
	CategorySecurity        Category = "security"
	CategoryPerformance     Category = "performance"
	CategoryDocumentation   Category = "documentation"
	CategoryTesting         Category = "testing"
	CategoryMaintainability Category = "maintainability"
)

// Priority grades strategic recommendations.
type Priority string

// Recommendation priorities, ordered from most to least urgent.
const (
	PriorityCritical Priority = "critical"
	PriorityHigh     Priority = "high"
	PriorityMedium   Priority = "medium"
	PriorityLow      Priority = "low"
)

// PriorityRank maps priorities to a sortable rank; lower sorts first.
func PriorityRank(p Priority) int {
	switch p {
	case PriorityCritical:
		return 0
	case PriorityHigh:
		return 1
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 3
	default:
		return 4
	}
}

// Issue is a single detected problem. Created by exactly one category
// analyzer and immutable afterwards; its lifetime is one analysis run.
type Issue struct {
	ID             string   `json:"id"`
	File           string   `json:"file"`
	Severity       Severity `json:"severity"`
	Category       Category `json:"category"`
	Rule           string   `json:"rule"`
	Message        string   `json:"message"`
	StartLine      int      `json:"start_line"`
	StartColumn    int      `json:"start_column"`
	EndLine        int      `json:"end_line"`
	EndColumn      int      `json:"end_column"`
	Confidence     float64  `json:"confidence"`
	Recommendation string   `json:"recommendation,omitempty"`
}

// NewIssue constructs an issue with a fresh ID and position taken from the
// given node (zero position when the node carries none).
func NewIssue(file string, category Category, severity Severity, rule, message string, at *syntax.Node) Issue {
	issue := Issue{
		ID:       uuid.NewString(),
		File:     file,
		Severity: severity,
		Category: category,
		Rule:     rule,
		Message:  message,
	}

	if at != nil && at.Pos != nil {
		issue.StartLine = int(at.Pos.StartLine)
		issue.StartColumn = int(at.Pos.StartCol)
		issue.EndLine = int(at.Pos.EndLine)
		issue.EndColumn = int(at.Pos.EndCol)
	}

	return issue
}

// WithConfidence returns a copy of the issue with the given confidence score.
func (i Issue) WithConfidence(confidence float64) Issue {
	i.Confidence = confidence

	return i
}

// WithRecommendation returns a copy of the issue with an attached
// remediation hint.
func (i Issue) WithRecommendation(text string) Issue {
	i.Recommendation = text

	return i
}

// PatternMatch records one occurrence of a detected code pattern in a file.
// Matches are merged by name across the whole run by the insights generator.
type PatternMatch struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	File        string  `json:"file"`
	Occurrences int     `json:"occurrences"`
	Confidence  float64 `json:"confidence"`
	Impact      string  `json:"impact"`
}

// Kind names a category analyzer variant. The set is closed; configuration
// toggles select which variants run.
type Kind string

// Analyzer kinds.
const (
	KindComplexity    Kind = "complexity"
	KindSecurity      Kind = "security"
	KindPerformance   Kind = "performance"
	KindDocumentation Kind = "documentation"
	KindTesting       Kind = "testing"
	KindSmell         Kind = "smell"
)

// Analyzer is the uniform capability implemented by every category
// analyzer. Analyze must be a pure read-only pass over the tree and source:
// analyzers for one file run concurrently against the same immutable tree.
type Analyzer interface {
	// Kind returns the analyzer's closed variant tag.
	Kind() Kind

	// Analyze scans the tree and source text of one file and returns the
	// issues it found. A nil tree means parsing produced nothing usable;
	// analyzers return what they can from the raw text alone.
	Analyze(tree *syntax.Node, src []byte, path string) []Issue
}
