// Package config defines the immutable analysis configuration: analyzer
// toggles, numeric thresholds, model settings, and output preferences. The
// value is constructed once at startup and passed by reference; changing
// settings means rebuilding the components with a new value.
package config

import "errors"

// Update frequency modes. Realtime trades throughput for lower per-file
// latency variance.
const (
	FrequencyRealtime = "realtime"
	FrequencyBatch    = "batch"
)

// Output formats.
const (
	FormatJSON     = "json"
	FormatYAML     = "yaml"
	FormatHTML     = "html"
	FormatMarkdown = "markdown"
	FormatTerminal = "terminal"
)

// Verbosity levels.
const (
	VerbosityNormal   = "normal"
	VerbosityDetailed = "detailed"
)

// Concurrency limits per update frequency.
const (
	realtimeConcurrency = 4
	batchConcurrency    = 8
)

// Config is the top-level configuration struct for codegauge.
// Field tags use mapstructure for viper unmarshalling.
type Config struct {
	EnableAI                    bool       `mapstructure:"enable_ai"`
	EnableSecurityScan          bool       `mapstructure:"enable_security_scan"`
	EnablePerformanceAnalysis   bool       `mapstructure:"enable_performance_analysis"`
	EnableDocumentationAnalysis bool       `mapstructure:"enable_documentation_analysis"`
	EnableTestAnalysis          bool       `mapstructure:"enable_test_analysis"`
	Exclude                     []string   `mapstructure:"exclude"`
	Thresholds                  Thresholds `mapstructure:"thresholds"`
	Model                       Model      `mapstructure:"model"`
	Output                      Output     `mapstructure:"output"`
	Cache                       Cache      `mapstructure:"cache"`
	Metrics                     Metrics    `mapstructure:"metrics"`
}

// Thresholds holds the numeric gates used by analyzers and the
// recommendation and risk rules.
type Thresholds struct {
	Cyclomatic            int     `mapstructure:"cyclomatic"`
	Cognitive             int     `mapstructure:"cognitive"`
	Maintainability       float64 `mapstructure:"maintainability"`
	TestCoverage          float64 `mapstructure:"test_coverage"`
	DocumentationCoverage float64 `mapstructure:"documentation_coverage"`
	SecurityScore         float64 `mapstructure:"security_score"`
	PerformanceScore      float64 `mapstructure:"performance_score"`
}

// Model holds AI-assisted scoring settings.
type Model struct {
	ConfidenceThreshold float64 `mapstructure:"confidence_threshold"`
	CacheResults        bool    `mapstructure:"cache_results"`
	UpdateFrequency     string  `mapstructure:"update_frequency"`
}

// Output holds report rendering preferences.
type Output struct {
	Format                 string `mapstructure:"format"`
	IncludeRecommendations bool   `mapstructure:"include_recommendations"`
	IncludeMetrics         bool   `mapstructure:"include_metrics"`
	Verbosity              string `mapstructure:"verbosity"`
}

// Cache holds result cache settings.
type Cache struct {
	Dir string `mapstructure:"dir"`
}

// Metrics holds the optional Prometheus exposition settings.
type Metrics struct {
	Enabled bool   `mapstructure:"enabled"`
	Listen  string `mapstructure:"listen"`
}

// Validation errors.
var (
	// ErrInvalidFrequency indicates an unknown update frequency mode.
	ErrInvalidFrequency = errors.New("model.update_frequency must be realtime or batch")
	// ErrInvalidConfidence indicates a confidence threshold outside [0,1].
	ErrInvalidConfidence = errors.New("model.confidence_threshold must be between 0 and 1")
	// ErrInvalidFormat indicates an unknown output format.
	ErrInvalidFormat = errors.New("output.format must be one of json, yaml, html, markdown, terminal")
	// ErrInvalidVerbosity indicates an unknown verbosity level.
	ErrInvalidVerbosity = errors.New("output.verbosity must be normal or detailed")
	// ErrInvalidThreshold indicates a non-positive complexity gate.
	ErrInvalidThreshold = errors.New("thresholds.cyclomatic and thresholds.cognitive must be positive")
	// ErrInvalidScoreGate indicates a score gate outside [0,100].
	ErrInvalidScoreGate = errors.New("score thresholds must be between 0 and 100")
)

// Validate checks Config invariants and returns the first error found.
func (c *Config) Validate() error {
	if c.Model.UpdateFrequency != FrequencyRealtime && c.Model.UpdateFrequency != FrequencyBatch {
		return ErrInvalidFrequency
	}

	if c.Model.ConfidenceThreshold < 0 || c.Model.ConfidenceThreshold > 1 {
		return ErrInvalidConfidence
	}

	switch c.Output.Format {
	case FormatJSON, FormatYAML, FormatHTML, FormatMarkdown, FormatTerminal:
	default:
		return ErrInvalidFormat
	}

	if c.Output.Verbosity != VerbosityNormal && c.Output.Verbosity != VerbosityDetailed {
		return ErrInvalidVerbosity
	}

	if c.Thresholds.Cyclomatic <= 0 || c.Thresholds.Cognitive <= 0 {
		return ErrInvalidThreshold
	}

	for _, gate := range []float64{
		c.Thresholds.Maintainability,
		c.Thresholds.TestCoverage,
		c.Thresholds.DocumentationCoverage,
		c.Thresholds.SecurityScore,
		c.Thresholds.PerformanceScore,
	} {
		if gate < 0 || gate > 100 {
			return ErrInvalidScoreGate
		}
	}

	return nil
}

// Concurrency returns the per-run file analysis limit for the configured
// update frequency.
func (c *Config) Concurrency() int {
	if c.Model.UpdateFrequency == FrequencyRealtime {
		return realtimeConcurrency
	}

	return batchConcurrency
}
