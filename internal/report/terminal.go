package report

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/gaugeworks/codegauge/internal/analyze"
)

// severityPainters colorize severities in terminal output.
var severityPainters = map[analyze.Severity]*color.Color{
	analyze.SeverityInfo:     color.New(color.FgCyan),
	analyze.SeverityWarning:  color.New(color.FgYellow),
	analyze.SeverityError:    color.New(color.FgRed),
	analyze.SeverityCritical: color.New(color.FgRed, color.Bold),
}

// RenderTerminal produces the interactive summary view.
func RenderTerminal(result *analyze.AnalysisResult, opts Options) []byte {
	var b strings.Builder

	header := color.New(color.Bold)
	header.Fprintln(&b, "Code Quality Report")
	fmt.Fprintf(&b, "%d files, %s lines, %d issues, analyzed in %s\n\n",
		result.Summary.TotalFiles,
		humanize.Comma(int64(result.Summary.TotalLines)),
		result.Summary.TotalIssues,
		result.Duration.Round(1e6))

	if opts.IncludeMetrics {
		writeScoreTable(&b, result)
	}

	writeIssueTable(&b, result, opts)

	if opts.IncludeRecommendations && len(result.Recommendations) > 0 {
		header.Fprintln(&b, "Recommendations")

		for _, rec := range result.Recommendations {
			painter := priorityPainter(rec.Priority)
			painter.Fprintf(&b, "  [%s] ", rec.Priority)
			fmt.Fprintf(&b, "%s: %s\n", rec.Title, rec.Description)
		}

		b.WriteString("\n")
	}

	return []byte(b.String())
}

func writeScoreTable(b *strings.Builder, result *analyze.AnalysisResult) {
	m := result.Metrics

	tbl := table.NewWriter()
	tbl.SetStyle(table.StyleLight)
	tbl.AppendHeader(table.Row{"Metric", "Value"})
	tbl.AppendRow(table.Row{"Avg cyclomatic complexity", fmt.Sprintf("%.1f (max %d)", m.AverageComplexity, m.MaxComplexity)})
	tbl.AppendRow(table.Row{"Maintainability", fmt.Sprintf("%.0f", m.Maintainability)})
	tbl.AppendRow(table.Row{"Security score", fmt.Sprintf("%.0f", m.Quality.Security)})
	tbl.AppendRow(table.Row{"Performance score", fmt.Sprintf("%.0f", m.Quality.Performance)})
	tbl.AppendRow(table.Row{"Reliability score", fmt.Sprintf("%.0f", m.Quality.Reliability)})
	tbl.AppendRow(table.Row{"Testability score", fmt.Sprintf("%.0f", m.Quality.Testability)})
	tbl.AppendRow(table.Row{"Debt", fmt.Sprintf("score %.0f, %s, $%s",
		m.Debt.Score, humanizeHours(m.Debt.EstimatedHours), humanize.CommafWithDigits(m.Debt.EstimatedCost, 0))})

	b.WriteString(tbl.Render())
	b.WriteString("\n\n")
}

func writeIssueTable(b *strings.Builder, result *analyze.AnalysisResult, opts Options) {
	if len(result.Issues) == 0 {
		color.New(color.FgGreen).Fprintln(b, "No issues found.")
		b.WriteString("\n")

		return
	}

	limit := len(result.Issues)
	if !opts.Detailed && limit > maxIssuesInSummary {
		limit = maxIssuesInSummary
	}

	tbl := table.NewWriter()
	tbl.SetStyle(table.StyleLight)
	tbl.AppendHeader(table.Row{"Severity", "Category", "File", "Line", "Message"})

	for _, issue := range result.Issues[:limit] {
		tbl.AppendRow(table.Row{
			paintSeverity(issue.Severity),
			issue.Category,
			issue.File,
			issue.StartLine,
			issue.Message,
		})
	}

	b.WriteString(tbl.Render())
	b.WriteString("\n")

	if limit < len(result.Issues) {
		fmt.Fprintf(b, "%d more issues omitted.\n", len(result.Issues)-limit)
	}

	b.WriteString("\n")
}

func paintSeverity(severity analyze.Severity) string {
	painter, ok := severityPainters[severity]
	if !ok {
		return string(severity)
	}

	return painter.Sprint(string(severity))
}

func priorityPainter(priority analyze.Priority) *color.Color {
	switch priority {
	case analyze.PriorityCritical:
		return color.New(color.FgRed, color.Bold)
	case analyze.PriorityHigh:
		return color.New(color.FgRed)
	case analyze.PriorityMedium:
		return color.New(color.FgYellow)
	default:
		return color.New(color.FgCyan)
	}
}
