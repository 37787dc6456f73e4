// Package metrics derives structural metrics from syntax trees and source
// text. The calculator is a set of deterministic, pure functions over one
// file; the aggregator rolls per-file metrics into project-level metrics
// with quality and technical-debt scores.
package metrics

// ComplexityMetrics holds per-file complexity measurements.
type ComplexityMetrics struct {
	Cyclomatic  int `json:"cyclomatic"`
	Cognitive   int `json:"cognitive"`
	Nesting     int `json:"nesting"`
	LinesOfCode int `json:"lines_of_code"`
}

// CouplingMetrics holds dependency coupling measurements. Afferent coupling
// is fixed at 0: cross-file analysis is a known scope limitation, kept
// explicit rather than silently approximated.
type CouplingMetrics struct {
	Afferent     int     `json:"afferent"`
	Efferent     int     `json:"efferent"`
	Instability  float64 `json:"instability"`
	Abstractness float64 `json:"abstractness"`
}

// FileMetrics is the full structural profile of one file, derived
// deterministically from its tree, raw text, and extracted dependencies.
type FileMetrics struct {
	Lines      int               `json:"lines"`
	Statements int               `json:"statements"`
	Functions  int               `json:"functions"`
	Classes    int               `json:"classes"`
	Complexity ComplexityMetrics `json:"complexity"`
	Coupling   CouplingMetrics   `json:"coupling"`
	Cohesion   float64           `json:"cohesion"`
}

// QualityScores holds project-level quality sub-scores, each in [0,100].
type QualityScores struct {
	Security    float64 `json:"security"`
	Performance float64 `json:"performance"`
	Reliability float64 `json:"reliability"`
	Testability float64 `json:"testability"`
}

// DebtMetrics is the synthetic technical-debt model. Score is in [0,100];
// the time and cost estimates are non-negative.
type DebtMetrics struct {
	Score          float64 `json:"score"`
	EstimatedHours float64 `json:"estimated_hours"`
	EstimatedCost  float64 `json:"estimated_cost"`
}

// CodeMetrics is the project-level aggregate of all FileMetrics.
type CodeMetrics struct {
	TotalLines        int           `json:"total_lines"`
	TotalStatements   int           `json:"total_statements"`
	TotalFunctions    int           `json:"total_functions"`
	TotalClasses      int           `json:"total_classes"`
	AverageComplexity float64       `json:"average_complexity"`
	MaxComplexity     int           `json:"max_complexity"`
	AverageCognitive  float64       `json:"average_cognitive"`
	AverageNesting    float64       `json:"average_nesting"`
	AverageCohesion   float64       `json:"average_cohesion"`
	Maintainability   float64       `json:"maintainability"`
	TestCoverage      float64       `json:"test_coverage"`
	DocCoverage       float64       `json:"doc_coverage"`
	Quality           QualityScores `json:"quality"`
	Debt              DebtMetrics   `json:"debt"`
}
