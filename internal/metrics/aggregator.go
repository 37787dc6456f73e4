package metrics

import "math"

// Issue tally keys mirror the analyze package's severity and category
// strings. The aggregator depends only on counts, never on issue values.
const (
	SeverityCritical = "critical"
	SeverityError    = "error"

	CategorySecurity        = "security"
	CategoryPerformance     = "performance"
	CategoryDocumentation   = "documentation"
	CategoryTesting         = "testing"
	CategoryMaintainability = "maintainability"
)

// Scoring model constants. Penalties are per issue unless noted.
const (
	maxScore = 100.0

	securityCriticalPenalty = 15.0
	securityIssuePenalty    = 6.0
	performancePenalty      = 8.0
	reliabilityErrPenalty   = 5.0
	reliabilityCritPenalty  = 12.0
	testabilityCxPenalty    = 4.0 // Per point of average cyclomatic complexity above 1.
	docIssuePenalty         = 5.0
	testIssuePenalty        = 10.0

	maintainabilityCxWeight      = 2.5
	maintainabilityNestWeight    = 1.5
	maintainabilityIssuePenalty  = 0.5
	maintainabilityCohesionBonus = 5.0

	debtHoursCritical = 4.0
	debtHoursError    = 2.0
	debtHoursWarning  = 1.0
	debtHoursInfo     = 0.25
	debtScorePerHour  = 2.0
	debtHourlyRate    = 75.0
)

// IssueCounts carries the issue tallies the aggregator needs. Keys are the
// serialized severity/category names.
type IssueCounts struct {
	Total      int
	BySeverity map[string]int
	ByCategory map[string]int
}

// Aggregator rolls per-file metrics into project-level CodeMetrics.
type Aggregator struct{}

// NewAggregator creates an Aggregator.
func NewAggregator() *Aggregator {
	return &Aggregator{}
}

// Aggregate computes the project metrics. All component scores are clamped
// to [0,100]; debt time and cost are non-negative.
func (a *Aggregator) Aggregate(files []FileMetrics, issues IssueCounts) CodeMetrics {
	cm := CodeMetrics{}

	if len(files) == 0 {
		return cm
	}

	totalCyclomatic := 0
	totalCognitive := 0
	totalNesting := 0
	totalCohesion := 0.0

	for i := range files {
		file := &files[i]
		cm.TotalLines += file.Lines
		cm.TotalStatements += file.Statements
		cm.TotalFunctions += file.Functions
		cm.TotalClasses += file.Classes

		totalCyclomatic += file.Complexity.Cyclomatic
		totalCognitive += file.Complexity.Cognitive
		totalNesting += file.Complexity.Nesting
		totalCohesion += file.Cohesion

		if file.Complexity.Cyclomatic > cm.MaxComplexity {
			cm.MaxComplexity = file.Complexity.Cyclomatic
		}
	}

	n := float64(len(files))
	cm.AverageComplexity = float64(totalCyclomatic) / n
	cm.AverageCognitive = float64(totalCognitive) / n
	cm.AverageNesting = float64(totalNesting) / n
	cm.AverageCohesion = totalCohesion / n

	cm.Quality = a.qualityScores(cm, issues)
	cm.Maintainability = a.maintainability(cm, issues)
	cm.TestCoverage = clampScore(maxScore - testIssuePenalty*float64(issues.ByCategory[CategoryTesting]))
	cm.DocCoverage = clampScore(maxScore - docIssuePenalty*float64(issues.ByCategory[CategoryDocumentation]))
	cm.Debt = a.debt(issues)

	return cm
}

// qualityScores derives the four quality sub-scores from issue volume and
// average complexity.
func (a *Aggregator) qualityScores(cm CodeMetrics, issues IssueCounts) QualityScores {
	securityIssues := float64(issues.ByCategory[CategorySecurity])
	criticalIssues := float64(issues.BySeverity[SeverityCritical])
	errorIssues := float64(issues.BySeverity[SeverityError])
	performanceIssues := float64(issues.ByCategory[CategoryPerformance])

	return QualityScores{
		Security:    clampScore(maxScore - securityCriticalPenalty*criticalIssues - securityIssuePenalty*securityIssues),
		Performance: clampScore(maxScore - performancePenalty*performanceIssues),
		Reliability: clampScore(maxScore - reliabilityCritPenalty*criticalIssues - reliabilityErrPenalty*errorIssues),
		Testability: clampScore(maxScore - testabilityCxPenalty*math.Max(0, cm.AverageComplexity-1)),
	}
}

// maintainability is a simplified maintainability index in [0,100]: high
// average complexity and deep nesting drive it down, strong cohesion earns
// a small bonus.
func (a *Aggregator) maintainability(cm CodeMetrics, issues IssueCounts) float64 {
	maintIssues := float64(issues.ByCategory[CategoryMaintainability])

	score := maxScore -
		maintainabilityCxWeight*cm.AverageComplexity -
		maintainabilityNestWeight*cm.AverageNesting -
		maintainabilityIssuePenalty*maintIssues +
		maintainabilityCohesionBonus*cm.AverageCohesion

	return clampScore(score)
}

// debt estimates remediation effort from issue volume: fixed hours per
// severity tier, a synthetic score proportional to hours, and a cost at a
// fixed hourly rate.
func (a *Aggregator) debt(issues IssueCounts) DebtMetrics {
	hours := debtHoursCritical*float64(issues.BySeverity[SeverityCritical]) +
		debtHoursError*float64(issues.BySeverity[SeverityError]) +
		debtHoursWarning*float64(issues.BySeverity["warning"]) +
		debtHoursInfo*float64(issues.BySeverity["info"])

	return DebtMetrics{
		Score:          clampScore(hours * debtScorePerHour),
		EstimatedHours: hours,
		EstimatedCost:  hours * debtHourlyRate,
	}
}

// clampScore clamps a score to [0,100].
func clampScore(v float64) float64 {
	return math.Max(0, math.Min(maxScore, v))
}
