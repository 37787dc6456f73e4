package report_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gaugeworks/codegauge/internal/analyze"
	"github.com/gaugeworks/codegauge/internal/config"
	"github.com/gaugeworks/codegauge/internal/metrics"
	"github.com/gaugeworks/codegauge/internal/report"
)

func sampleResult() *analyze.AnalysisResult {
	return &analyze.AnalysisResult{
		Timestamp: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
		Duration:  1200 * time.Millisecond,
		Files: []analyze.FileResult{
			{Path: "/p/a.go", Language: "Go", Metrics: metrics.FileMetrics{Lines: 40, Functions: 2, Cohesion: 1}},
		},
		Summary: analyze.Summary{
			TotalFiles:       1,
			TotalLines:       40,
			TotalFunctions:   2,
			TotalIssues:      1,
			IssuesBySeverity: map[analyze.Severity]int{analyze.SeverityWarning: 1},
			IssuesByCategory: map[analyze.Category]int{analyze.CategoryComplexity: 1},
		},
		Metrics: metrics.CodeMetrics{
			AverageComplexity: 4,
			MaxComplexity:     7,
			Maintainability:   82,
			TestCoverage:      75,
			DocCoverage:       80,
			Quality:           metrics.QualityScores{Security: 95, Performance: 90, Reliability: 88, Testability: 75},
			Debt:              metrics.DebtMetrics{Score: 12, EstimatedHours: 2.5, EstimatedCost: 187.5},
		},
		Issues: []analyze.Issue{
			{
				ID: "i-1", File: "/p/a.go", Severity: analyze.SeverityWarning,
				Category: analyze.CategoryComplexity, Rule: "high-cyclomatic-complexity",
				Message: "function busy has cyclomatic complexity 12 (threshold 10)", StartLine: 3, Confidence: 0.95,
			},
		},
		Recommendations: []analyze.StrategicRecommendation{
			{Category: "Architecture", Title: "Reduce Code Complexity", Priority: analyze.PriorityHigh},
		},
		Insights: analyze.EmptyInsights(),
	}
}

func allOptions() report.Options {
	return report.Options{IncludeRecommendations: true, IncludeMetrics: true, Detailed: true}
}

func TestRenderJSON_RoundTripsAndValidates(t *testing.T) {
	t.Parallel()

	data, err := report.RenderJSON(sampleResult())
	require.NoError(t, err)

	var back analyze.AnalysisResult
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, *sampleResult(), back)

	violations, err := report.ValidateJSON(data)
	require.NoError(t, err)
	assert.Empty(t, violations)
}

func TestValidateJSON_RejectsBadDocument(t *testing.T) {
	t.Parallel()

	data := []byte(`{"summary": {"total_files": -1}}`)

	violations, err := report.ValidateJSON(data)
	require.NoError(t, err)
	assert.NotEmpty(t, violations)
}

func TestRenderYAML(t *testing.T) {
	t.Parallel()

	data, err := report.RenderYAML(sampleResult())
	require.NoError(t, err)

	text := string(data)
	assert.Contains(t, text, "total_files: 1")
	assert.Contains(t, text, "maintainability: 82")
}

func TestRenderMarkdown(t *testing.T) {
	t.Parallel()

	text := string(report.RenderMarkdown(sampleResult(), allOptions()))

	assert.Contains(t, text, "# Code Quality Report")
	assert.Contains(t, text, "Reduce Code Complexity")
	assert.Contains(t, text, "| warning | complexity |")
	assert.Contains(t, text, "function busy has cyclomatic complexity 12")
}

func TestRenderMarkdown_OptionsRespected(t *testing.T) {
	t.Parallel()

	text := string(report.RenderMarkdown(sampleResult(), report.Options{}))

	assert.NotContains(t, text, "## Metrics")
	assert.NotContains(t, text, "## Recommendations")
}

func TestRenderTerminal(t *testing.T) {
	t.Parallel()

	text := string(report.RenderTerminal(sampleResult(), allOptions()))

	assert.Contains(t, text, "Code Quality Report")
	assert.Contains(t, text, "Maintainability")
	assert.Contains(t, text, "Reduce Code Complexity")
}

func TestRenderHTML(t *testing.T) {
	t.Parallel()

	data, err := report.RenderHTML(sampleResult())
	require.NoError(t, err)

	text := string(data)
	assert.Contains(t, text, "Quality Scores")
	assert.Contains(t, text, "Issues by Severity")
}

func TestRender_Dispatch(t *testing.T) {
	t.Parallel()

	for _, format := range []string{
		config.FormatJSON, config.FormatYAML, config.FormatMarkdown, config.FormatHTML, config.FormatTerminal,
	} {
		data, err := report.Render(sampleResult(), format, allOptions())
		require.NoError(t, err, format)
		assert.NotEmpty(t, data, format)
	}

	_, err := report.Render(sampleResult(), "pdf", allOptions())
	assert.ErrorIs(t, err, report.ErrUnknownFormat)
}
