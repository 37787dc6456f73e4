package report

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/gaugeworks/codegauge/internal/analyze"
)

// maxIssuesInSummary bounds the issue list in non-detailed reports.
const maxIssuesInSummary = 25

// RenderMarkdown produces a markdown report suitable for CI artifacts and
// pull-request comments.
func RenderMarkdown(result *analyze.AnalysisResult, opts Options) []byte {
	var b strings.Builder

	b.WriteString("# Code Quality Report\n\n")
	fmt.Fprintf(&b, "Generated %s, analysis took %s.\n\n",
		result.Timestamp.Format("2006-01-02 15:04:05"), result.Duration.Round(1e6))

	b.WriteString("## Summary\n\n")
	fmt.Fprintf(&b, "| Files | Lines | Functions | Classes | Issues |\n")
	fmt.Fprintf(&b, "|------:|------:|----------:|--------:|-------:|\n")
	fmt.Fprintf(&b, "| %d | %s | %d | %d | %d |\n\n",
		result.Summary.TotalFiles,
		humanize.Comma(int64(result.Summary.TotalLines)),
		result.Summary.TotalFunctions,
		result.Summary.TotalClasses,
		result.Summary.TotalIssues)

	if opts.IncludeMetrics {
		writeMetricsMarkdown(&b, result)
	}

	writeIssuesMarkdown(&b, result, opts)

	if opts.IncludeRecommendations && len(result.Recommendations) > 0 {
		b.WriteString("## Recommendations\n\n")

		for _, rec := range result.Recommendations {
			fmt.Fprintf(&b, "- **[%s] %s** (%s): %s\n", rec.Priority, rec.Title, rec.Category, rec.Description)
		}

		b.WriteString("\n")
	}

	if opts.Detailed {
		writeInsightsMarkdown(&b, result)
	}

	return []byte(b.String())
}

func writeMetricsMarkdown(b *strings.Builder, result *analyze.AnalysisResult) {
	m := result.Metrics

	b.WriteString("## Metrics\n\n")
	fmt.Fprintf(b, "- Average cyclomatic complexity: %.1f (max %d)\n", m.AverageComplexity, m.MaxComplexity)
	fmt.Fprintf(b, "- Maintainability index: %.0f\n", m.Maintainability)
	fmt.Fprintf(b, "- Quality: security %.0f, performance %.0f, reliability %.0f, testability %.0f\n",
		m.Quality.Security, m.Quality.Performance, m.Quality.Reliability, m.Quality.Testability)
	fmt.Fprintf(b, "- Technical debt: score %.0f, about %s of remediation (est. $%s)\n\n",
		m.Debt.Score,
		humanizeHours(m.Debt.EstimatedHours),
		humanize.CommafWithDigits(m.Debt.EstimatedCost, 0))
}

func writeIssuesMarkdown(b *strings.Builder, result *analyze.AnalysisResult, opts Options) {
	if len(result.Issues) == 0 {
		b.WriteString("## Issues\n\nNo issues found.\n\n")

		return
	}

	b.WriteString("## Issues\n\n")
	b.WriteString("| Severity | Category | File | Line | Message |\n")
	b.WriteString("|----------|----------|------|-----:|---------|\n")

	limit := len(result.Issues)
	if !opts.Detailed && limit > maxIssuesInSummary {
		limit = maxIssuesInSummary
	}

	for _, issue := range result.Issues[:limit] {
		fmt.Fprintf(b, "| %s | %s | %s | %d | %s |\n",
			issue.Severity, issue.Category, issue.File, issue.StartLine, issue.Message)
	}

	if limit < len(result.Issues) {
		fmt.Fprintf(b, "\n%d more issues omitted; use detailed verbosity for the full list.\n", len(result.Issues)-limit)
	}

	b.WriteString("\n")
}

func writeInsightsMarkdown(b *strings.Builder, result *analyze.AnalysisResult) {
	in := result.Insights

	if len(in.Patterns) > 0 {
		b.WriteString("## Detected Patterns\n\n")

		for _, p := range in.Patterns {
			fmt.Fprintf(b, "- %s: %d occurrences (confidence %.2f, impact %s)\n",
				p.Name, p.Occurrences, p.Confidence, p.Impact)
		}

		b.WriteString("\n")
	}

	if len(in.Predictions) > 0 {
		b.WriteString("## Predictions\n\n")

		for _, p := range in.Predictions {
			fmt.Fprintf(b, "- %s: %.1f now, %.1f projected over %s\n", p.Metric, p.Current, p.Predicted, p.Horizon)
		}

		b.WriteString("\n")
	}

	if len(in.Risks) > 0 {
		b.WriteString("## Risks\n\n")

		for _, r := range in.Risks {
			fmt.Fprintf(b, "- %s (likelihood %.1f, impact %.1f): %s\n", r.Name, r.Likelihood, r.Impact, r.Description)
		}

		b.WriteString("\n")
	}
}

// humanizeHours renders fractional remediation hours as a friendly span.
func humanizeHours(hours float64) string {
	if hours < 1 {
		return fmt.Sprintf("%.0f minutes", hours*60)
	}

	return fmt.Sprintf("%.1f hours", hours)
}
