package report

import (
	"bytes"
	"fmt"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/gaugeworks/codegauge/internal/analyze"
)

// RenderHTML produces a self-contained dashboard page with quality score and
// issue distribution charts.
func RenderHTML(result *analyze.AnalysisResult) ([]byte, error) {
	page := components.NewPage()
	page.PageTitle = "Code Quality Report"

	page.AddCharts(
		buildQualityChart(result),
		buildSeverityChart(result),
		buildCategoryChart(result),
	)

	var buf bytes.Buffer
	if err := page.Render(&buf); err != nil {
		return nil, fmt.Errorf("render html report: %w", err)
	}

	return buf.Bytes(), nil
}

func buildQualityChart(result *analyze.AnalysisResult) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(charts.WithTitleOpts(opts.Title{Title: "Quality Scores"}))

	q := result.Metrics.Quality

	bar.SetXAxis([]string{"Security", "Performance", "Reliability", "Testability", "Maintainability"}).
		AddSeries("score", []opts.BarData{
			{Value: q.Security},
			{Value: q.Performance},
			{Value: q.Reliability},
			{Value: q.Testability},
			{Value: result.Metrics.Maintainability},
		})

	return bar
}

func buildSeverityChart(result *analyze.AnalysisResult) *charts.Pie {
	pie := charts.NewPie()
	pie.SetGlobalOptions(charts.WithTitleOpts(opts.Title{Title: "Issues by Severity"}))

	items := make([]opts.PieData, 0, len(result.Summary.IssuesBySeverity))
	for severity, count := range result.Summary.IssuesBySeverity {
		items = append(items, opts.PieData{Name: string(severity), Value: count})
	}

	pie.AddSeries("severity", items)

	return pie
}

func buildCategoryChart(result *analyze.AnalysisResult) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(charts.WithTitleOpts(opts.Title{Title: "Issues by Category"}))

	categories := make([]string, 0, len(result.Summary.IssuesByCategory))
	values := make([]opts.BarData, 0, len(result.Summary.IssuesByCategory))

	for category, count := range result.Summary.IssuesByCategory {
		categories = append(categories, string(category))
		values = append(values, opts.BarData{Value: count})
	}

	bar.SetXAxis(categories).AddSeries("issues", values)

	return bar
}
