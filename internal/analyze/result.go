package analyze

import (
	"time"

	"github.com/gaugeworks/codegauge/internal/metrics"
)

// FileResult is the outcome of analyzing one file. It is exclusively owned
// by the file's analysis task until the fan-in barrier, after which it is
// read-only.
type FileResult struct {
	Path            string              `json:"path"`
	Language        string              `json:"language"`
	Metrics         metrics.FileMetrics `json:"metrics"`
	Issues          []Issue             `json:"issues"`
	Dependencies    []string            `json:"dependencies"`
	Patterns        []PatternMatch      `json:"patterns"`
	ParseErrorCount int                 `json:"parse_error_count"`
	Duration        time.Duration       `json:"duration"`
}

// Summary condenses a whole run into headline numbers.
type Summary struct {
	TotalFiles        int              `json:"total_files"`
	TotalLines        int              `json:"total_lines"`
	TotalFunctions    int              `json:"total_functions"`
	TotalClasses      int              `json:"total_classes"`
	TotalIssues       int              `json:"total_issues"`
	IssuesBySeverity  map[Severity]int `json:"issues_by_severity"`
	IssuesByCategory  map[Category]int `json:"issues_by_category"`
	AverageComplexity float64          `json:"average_complexity"`
}

// DetectedPattern is a run-wide pattern: per-file matches merged by name
// with occurrence counts summed and confidence taken as the maximum seen.
type DetectedPattern struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Occurrences int     `json:"occurrences"`
	Confidence  float64 `json:"confidence"`
	Impact      string  `json:"impact"`
}

// QualityPrediction projects one quality metric forward. Factors are
// explanatory metadata only; they do not feed the numeric formula.
type QualityPrediction struct {
	Metric     string   `json:"metric"`
	Current    float64  `json:"current"`
	Predicted  float64  `json:"predicted"`
	Horizon    string   `json:"horizon"`
	Confidence float64  `json:"confidence"`
	Factors    []string `json:"factors"`
}

// StrategicRecommendation is a rule-based, threshold-triggered suggestion.
type StrategicRecommendation struct {
	Category    string   `json:"category"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Priority    Priority `json:"priority"`
	Effort      string   `json:"effort"`
}

// RiskAssessment is one thresholded risk with fixed mitigation guidance.
// Likelihood and Impact are in [0,1].
type RiskAssessment struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Likelihood  float64  `json:"likelihood"`
	Impact      float64  `json:"impact"`
	Mitigations []string `json:"mitigations"`
}

// Insights bundles the derived intelligence for a run. All four slices are
// always present (possibly empty), never nil in a serialized result.
type Insights struct {
	Patterns        []DetectedPattern         `json:"patterns"`
	Predictions     []QualityPrediction       `json:"predictions"`
	Recommendations []StrategicRecommendation `json:"recommendations"`
	Risks           []RiskAssessment          `json:"risks"`
}

// EmptyInsights returns an Insights value with all sections present and
// empty, used when AI-assisted generation is disabled.
func EmptyInsights() Insights {
	return Insights{
		Patterns:        []DetectedPattern{},
		Predictions:     []QualityPrediction{},
		Recommendations: []StrategicRecommendation{},
		Risks:           []RiskAssessment{},
	}
}

// AnalysisResult is the top-level, immutable value object produced once per
// orchestrator run. It serializes to JSON without loss; the HTML and
// Markdown renderers are pure projections of it.
type AnalysisResult struct {
	Timestamp       time.Time                 `json:"timestamp"`
	Duration        time.Duration             `json:"duration"`
	Files           []FileResult              `json:"files"`
	Summary         Summary                   `json:"summary"`
	Metrics         metrics.CodeMetrics       `json:"metrics"`
	Issues          []Issue                   `json:"issues"`
	Recommendations []StrategicRecommendation `json:"recommendations"`
	Insights        Insights                  `json:"insights"`
}

// BuildSummary derives the run summary from per-file results.
func BuildSummary(files []FileResult) Summary {
	summary := Summary{
		IssuesBySeverity: make(map[Severity]int),
		IssuesByCategory: make(map[Category]int),
	}

	totalComplexity := 0

	for i := range files {
		file := &files[i]
		summary.TotalFiles++
		summary.TotalLines += file.Metrics.Lines
		summary.TotalFunctions += file.Metrics.Functions
		summary.TotalClasses += file.Metrics.Classes
		totalComplexity += file.Metrics.Complexity.Cyclomatic

		for _, issue := range file.Issues {
			summary.TotalIssues++
			summary.IssuesBySeverity[issue.Severity]++
			summary.IssuesByCategory[issue.Category]++
		}
	}

	if summary.TotalFiles > 0 {
		summary.AverageComplexity = float64(totalComplexity) / float64(summary.TotalFiles)
	}

	return summary
}
