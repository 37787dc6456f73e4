// Package insights derives run-level intelligence from aggregated metrics
// and issues: merged pattern matches, fixed-horizon quality predictions,
// threshold-triggered strategic recommendations, and risk assessments. All
// rules and mitigation texts are fixed, not learned.
package insights

import (
	"fmt"
	"sort"

	"github.com/gaugeworks/codegauge/internal/analyze"
	"github.com/gaugeworks/codegauge/internal/metrics"
)

// Thresholds are the numeric gates used by the recommendation and risk
// rules.
type Thresholds struct {
	Cyclomatic       float64
	SecurityIssues   int
	PerformanceScore float64
	TestCoverage     float64
	DocCoverage      float64
	Maintainability  float64
	SecurityScore    float64
	DebtScore        float64
	CriticalIssues   int
}

// DefaultThresholds returns the standard gates.
func DefaultThresholds() Thresholds {
	return Thresholds{
		Cyclomatic:       15,
		SecurityIssues:   5,
		PerformanceScore: 70,
		TestCoverage:     70,
		DocCoverage:      70,
		Maintainability:  65,
		SecurityScore:    70,
		DebtScore:        50,
		CriticalIssues:   3,
	}
}

// Pattern and prediction tuning constants.
const (
	maxPatterns = 10

	predictionHorizon = "3 months"

	complexityGrowthPerIssue = 0.2
	debtReductionPerIssue    = 0.005
	debtReductionCap         = 0.5
	maintainabilityPenalty   = 1.5

	confidenceComplexityTrend = 0.75
	confidenceDebtTrend       = 0.7
	confidenceMaintainTrend   = 0.8
)

// Per-file pattern detection gates.
const (
	hotspotCyclomatic   = 15
	hotspotCognitive    = 20
	tightCouplingLimit  = 10
	lowCohesionLimit    = 0.33
	docGapIssueCount    = 3
	smellClusterCount   = 3
	patternConfidence   = 0.8
	structureConfidence = 0.9
)

// Generator produces the Insights section of an analysis result.
type Generator struct {
	thresholds Thresholds
}

// NewGenerator creates a Generator with the given gates.
func NewGenerator(thresholds Thresholds) *Generator {
	return &Generator{thresholds: thresholds}
}

// Generate builds all four insight sections. Every section is always
// present, possibly empty.
func (g *Generator) Generate(files []analyze.FileResult, code metrics.CodeMetrics, issues []analyze.Issue) analyze.Insights {
	byCategory := countByCategory(issues)

	return analyze.Insights{
		Patterns:        mergePatterns(files),
		Predictions:     g.predictions(code, byCategory, len(issues)),
		Recommendations: g.Recommendations(code, byCategory),
		Risks:           g.risks(code, issues),
	}
}

// DetectFilePatterns derives pattern matches for one file from its metrics
// and issues. Runs inside the per-file analysis task.
func DetectFilePatterns(file *analyze.FileResult) []analyze.PatternMatch {
	var patterns []analyze.PatternMatch

	byCategory := countByCategory(file.Issues)

	if file.Metrics.Complexity.Cyclomatic > hotspotCyclomatic || file.Metrics.Complexity.Cognitive > hotspotCognitive {
		patterns = append(patterns, analyze.PatternMatch{
			Name:        "complexity-hotspot",
			Description: "file concentrates an outsized share of decision logic",
			File:        file.Path,
			Occurrences: max(1, byCategory[analyze.CategoryComplexity]),
			Confidence:  structureConfidence,
			Impact:      "high",
		})
	}

	if n := byCategory[analyze.CategorySecurity]; n > 0 {
		patterns = append(patterns, analyze.PatternMatch{
			Name:        "security-sensitive-code",
			Description: "file contains patterns with direct security impact",
			File:        file.Path,
			Occurrences: n,
			Confidence:  maxConfidence(file.Issues, analyze.CategorySecurity),
			Impact:      "critical",
		})
	}

	if file.Metrics.Coupling.Efferent > tightCouplingLimit {
		patterns = append(patterns, analyze.PatternMatch{
			Name:        "tight-coupling",
			Description: "file depends on an unusually wide set of modules",
			File:        file.Path,
			Occurrences: file.Metrics.Coupling.Efferent,
			Confidence:  structureConfidence,
			Impact:      "medium",
		})
	}

	if file.Metrics.Classes > 0 && file.Metrics.Cohesion < lowCohesionLimit {
		patterns = append(patterns, analyze.PatternMatch{
			Name:        "low-cohesion",
			Description: "classes mix responsibilities that rarely interact",
			File:        file.Path,
			Occurrences: file.Metrics.Classes,
			Confidence:  patternConfidence,
			Impact:      "medium",
		})
	}

	if n := byCategory[analyze.CategoryDocumentation]; n >= docGapIssueCount {
		patterns = append(patterns, analyze.PatternMatch{
			Name:        "documentation-gap",
			Description: "exported surface is largely undocumented",
			File:        file.Path,
			Occurrences: n,
			Confidence:  patternConfidence,
			Impact:      "low",
		})
	}

	if n := byCategory[analyze.CategoryMaintainability]; n >= smellClusterCount {
		patterns = append(patterns, analyze.PatternMatch{
			Name:        "smell-cluster",
			Description: "multiple maintainability smells co-occur in one file",
			File:        file.Path,
			Occurrences: n,
			Confidence:  patternConfidence,
			Impact:      "medium",
		})
	}

	return patterns
}

// mergePatterns folds per-file matches by name: occurrences summed,
// confidence taken as the maximum observed, ranked by occurrence, top 10.
func mergePatterns(files []analyze.FileResult) []analyze.DetectedPattern {
	merged := make(map[string]*analyze.DetectedPattern)

	for i := range files {
		for _, match := range files[i].Patterns {
			existing, ok := merged[match.Name]
			if !ok {
				merged[match.Name] = &analyze.DetectedPattern{
					Name:        match.Name,
					Description: match.Description,
					Occurrences: match.Occurrences,
					Confidence:  match.Confidence,
					Impact:      match.Impact,
				}

				continue
			}

			existing.Occurrences += match.Occurrences
			existing.Confidence = max(existing.Confidence, match.Confidence)
		}
	}

	patterns := make([]analyze.DetectedPattern, 0, len(merged))
	for _, pattern := range merged {
		patterns = append(patterns, *pattern)
	}

	sort.Slice(patterns, func(i, j int) bool {
		if patterns[i].Occurrences != patterns[j].Occurrences {
			return patterns[i].Occurrences > patterns[j].Occurrences
		}

		return patterns[i].Name < patterns[j].Name
	})

	if len(patterns) > maxPatterns {
		patterns = patterns[:maxPatterns]
	}

	return patterns
}

// predictions projects the three fixed metrics forward. Factors are
// explanatory only.
func (g *Generator) predictions(code metrics.CodeMetrics, byCategory map[analyze.Category]int, totalIssues int) []analyze.QualityPrediction {
	complexityIssues := byCategory[analyze.CategoryComplexity]
	maintIssues := byCategory[analyze.CategoryMaintainability]

	predictedDebt := code.Debt.Score * (1 - min(debtReductionCap, float64(totalIssues)*debtReductionPerIssue))

	return []analyze.QualityPrediction{
		{
			Metric:     "cyclomatic_complexity",
			Current:    code.AverageComplexity,
			Predicted:  code.AverageComplexity + float64(complexityIssues)*complexityGrowthPerIssue,
			Horizon:    predictionHorizon,
			Confidence: confidenceComplexityTrend,
			Factors: []string{
				fmt.Sprintf("%d open complexity issues", complexityIssues),
				"complexity compounds where hotspots already exist",
			},
		},
		{
			Metric:     "technical_debt",
			Current:    code.Debt.Score,
			Predicted:  predictedDebt,
			Horizon:    predictionHorizon,
			Confidence: confidenceDebtTrend,
			Factors: []string{
				fmt.Sprintf("%d issues carry attached remediation guidance", totalIssues),
				"assumes steady remediation of flagged issues",
			},
		},
		{
			Metric:     "maintainability",
			Current:    code.Maintainability,
			Predicted:  max(0, code.Maintainability-float64(maintIssues)*maintainabilityPenalty),
			Horizon:    predictionHorizon,
			Confidence: confidenceMaintainTrend,
			Factors: []string{
				fmt.Sprintf("%d maintainability issues open", maintIssues),
				"unaddressed smells depress the index over time",
			},
		},
	}
}

// Recommendations applies the threshold-triggered rules and returns the
// result sorted by priority.
func (g *Generator) Recommendations(code metrics.CodeMetrics, byCategory map[analyze.Category]int) []analyze.StrategicRecommendation {
	recs := []analyze.StrategicRecommendation{}

	if code.AverageComplexity > g.thresholds.Cyclomatic {
		recs = append(recs, analyze.StrategicRecommendation{
			Category:    "Architecture",
			Title:       "Reduce Code Complexity",
			Description: fmt.Sprintf("average cyclomatic complexity %.1f exceeds the %.0f gate; extract decision-heavy functions", code.AverageComplexity, g.thresholds.Cyclomatic),
			Priority:    analyze.PriorityHigh,
			Effort:      "high",
		})
	}

	if byCategory[analyze.CategorySecurity] > g.thresholds.SecurityIssues {
		recs = append(recs, analyze.StrategicRecommendation{
			Category:    "Security",
			Title:       "Remediate Security Findings",
			Description: fmt.Sprintf("%d security issues open; schedule remediation before the next release", byCategory[analyze.CategorySecurity]),
			Priority:    analyze.PriorityCritical,
			Effort:      "medium",
		})
	}

	if code.Quality.Performance < g.thresholds.PerformanceScore {
		recs = append(recs, analyze.StrategicRecommendation{
			Category:    "Performance",
			Title:       "Optimize Hot Paths",
			Description: fmt.Sprintf("performance score %.0f is below the %.0f gate; review flagged loops and allocations", code.Quality.Performance, g.thresholds.PerformanceScore),
			Priority:    analyze.PriorityMedium,
			Effort:      "medium",
		})
	}

	if code.TestCoverage < g.thresholds.TestCoverage {
		recs = append(recs, analyze.StrategicRecommendation{
			Category:    "Testing",
			Title:       "Increase Test Coverage",
			Description: fmt.Sprintf("estimated test coverage %.0f%% is below the %.0f%% gate", code.TestCoverage, g.thresholds.TestCoverage),
			Priority:    analyze.PriorityMedium,
			Effort:      "high",
		})
	}

	if code.DocCoverage < g.thresholds.DocCoverage {
		recs = append(recs, analyze.StrategicRecommendation{
			Category:    "Documentation",
			Title:       "Document Public Surface",
			Description: fmt.Sprintf("estimated documentation coverage %.0f%% is below the %.0f%% gate", code.DocCoverage, g.thresholds.DocCoverage),
			Priority:    analyze.PriorityLow,
			Effort:      "low",
		})
	}

	sort.SliceStable(recs, func(i, j int) bool {
		return analyze.PriorityRank(recs[i].Priority) < analyze.PriorityRank(recs[j].Priority)
	})

	return recs
}

// risks runs the four independent thresholded checks.
func (g *Generator) risks(code metrics.CodeMetrics, issues []analyze.Issue) []analyze.RiskAssessment {
	risks := []analyze.RiskAssessment{}

	if code.Quality.Security < g.thresholds.SecurityScore {
		risks = append(risks, analyze.RiskAssessment{
			Name:        "security-exposure",
			Description: fmt.Sprintf("security score %.0f is below the %.0f gate", code.Quality.Security, g.thresholds.SecurityScore),
			Likelihood:  clamp01((g.thresholds.SecurityScore - code.Quality.Security) / g.thresholds.SecurityScore),
			Impact:      0.9,
			Mitigations: []string{
				"Fix critical security findings first.",
				"Add a security scan to the merge gate.",
			},
		})
	}

	if code.Maintainability < g.thresholds.Maintainability {
		risks = append(risks, analyze.RiskAssessment{
			Name:        "maintainability-erosion",
			Description: fmt.Sprintf("maintainability index %.0f is below the %.0f gate", code.Maintainability, g.thresholds.Maintainability),
			Likelihood:  0.6,
			Impact:      0.7,
			Mitigations: []string{
				"Budget refactoring time into each iteration.",
				"Target the highest-occurrence smell clusters first.",
			},
		})
	}

	if code.Debt.Score > g.thresholds.DebtScore {
		risks = append(risks, analyze.RiskAssessment{
			Name:        "debt-accumulation",
			Description: fmt.Sprintf("technical debt score %.0f exceeds the %.0f gate", code.Debt.Score, g.thresholds.DebtScore),
			Likelihood:  0.7,
			Impact:      0.6,
			Mitigations: []string{
				"Track remediation hours against the debt estimate.",
				"Stop-the-line rule for new critical issues.",
			},
		})
	}

	if critical := countBySeverity(issues, analyze.SeverityCritical); critical > g.thresholds.CriticalIssues {
		risks = append(risks, analyze.RiskAssessment{
			Name:        "critical-defect-density",
			Description: fmt.Sprintf("%d critical issues concentrated in this codebase", critical),
			Likelihood:  clamp01(float64(critical) / 10),
			Impact:      0.8,
			Mitigations: []string{
				"Treat critical findings as release blockers.",
				"Review the affected files with a second engineer.",
			},
		})
	}

	return risks
}

func countByCategory(issues []analyze.Issue) map[analyze.Category]int {
	counts := make(map[analyze.Category]int)
	for _, issue := range issues {
		counts[issue.Category]++
	}

	return counts
}

func countBySeverity(issues []analyze.Issue, severity analyze.Severity) int {
	n := 0

	for _, issue := range issues {
		if issue.Severity == severity {
			n++
		}
	}

	return n
}

func maxConfidence(issues []analyze.Issue, category analyze.Category) float64 {
	best := 0.0

	for _, issue := range issues {
		if issue.Category == category && issue.Confidence > best {
			best = issue.Confidence
		}
	}

	return best
}

func clamp01(v float64) float64 {
	return min(1, max(0, v))
}
