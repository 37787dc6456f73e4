// Package commands implements the codegauge CLI commands.
package commands

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/gaugeworks/codegauge/internal/analyze"
	"github.com/gaugeworks/codegauge/internal/config"
	"github.com/gaugeworks/codegauge/internal/observability"
	"github.com/gaugeworks/codegauge/internal/orchestrator"
	"github.com/gaugeworks/codegauge/internal/report"
)

// AnalyzeCommand holds the flags for the analyze command.
type AnalyzeCommand struct {
	configPath  string
	output      string
	format      string
	exclude     []string
	noCache     bool
	verbose     bool
	noColor     bool
	metricsAddr string
}

// NewAnalyzeCommand creates and configures the analyze command.
func NewAnalyzeCommand() *cobra.Command {
	cmd := &AnalyzeCommand{}

	cobraCmd := &cobra.Command{
		Use:   "analyze <pattern>...",
		Short: "Analyze source files and render a quality report",
		Long: `Analyze source files matched by glob patterns and render a quality report.

Examples:
  codegauge analyze 'src/**/*.go'
  codegauge analyze --format json --output report.json 'internal/**/*.go'
  codegauge analyze --exclude 'vendor/**' .`,
		Args: cobra.MinimumNArgs(1),
		RunE: cmd.Run,
	}

	// Add flags.
	cobraCmd.Flags().StringVarP(&cmd.configPath, "config", "c", "", "Config file (default: .codegauge.yaml in CWD or $HOME)")
	cobraCmd.Flags().StringVarP(&cmd.output, "output", "o", "", "Output file (default: stdout)")
	cobraCmd.Flags().StringVarP(&cmd.format, "format", "f", "", "Output format: terminal, json, yaml, html, or markdown")
	cobraCmd.Flags().StringSliceVarP(&cmd.exclude, "exclude", "e", nil, "Additional exclusion patterns (gitignore syntax)")
	cobraCmd.Flags().BoolVar(&cmd.noCache, "no-cache", false, "Bypass the result cache")
	cobraCmd.Flags().BoolVarP(&cmd.verbose, "verbose", "v", false, "Log per-file progress to stderr")
	cobraCmd.Flags().BoolVar(&cmd.noColor, "no-color", false, "Disable colored output")
	cobraCmd.Flags().StringVar(&cmd.metricsAddr, "metrics-addr", "", "Serve prometheus metrics on this address during the run")

	return cobraCmd
}

// Run executes the analyze command.
func (c *AnalyzeCommand) Run(cobraCmd *cobra.Command, args []string) error {
	if c.noColor {
		color.NoColor = true //nolint:reassign // intentional override of library global
	}

	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}

	logger := c.newLogger()

	opts := []orchestrator.Option{orchestrator.WithLogger(logger)}

	if c.verbose {
		opts = append(opts, orchestrator.WithObserver(&progressObserver{out: os.Stderr}))
	}

	if cfg.Metrics.Enabled {
		collector := observability.NewCollector()
		opts = append(opts, orchestrator.WithObserver(collector))

		server := collector.Serve(cfg.Metrics.Listen)
		defer func() { _ = server.Close() }()
	}

	result, err := orchestrator.New(cfg, opts...).Analyze(cobraCmd.Context(), args)
	if err != nil {
		return err
	}

	rendered, err := report.Render(result, cfg.Output.Format, report.OptionsFrom(cfg.Output))
	if err != nil {
		return err
	}

	return c.write(rendered)
}

// loadConfig loads the configuration and applies flag overrides on top.
func (c *AnalyzeCommand) loadConfig() (*config.Config, error) {
	cfg, err := config.LoadConfig(c.configPath)
	if err != nil {
		return nil, err
	}

	if c.format != "" {
		cfg.Output.Format = c.format
	}

	if c.verbose {
		cfg.Output.Verbosity = config.VerbosityDetailed
	}

	if c.noCache {
		cfg.Model.CacheResults = false
	}

	cfg.Exclude = append(cfg.Exclude, c.exclude...)

	if c.metricsAddr != "" {
		cfg.Metrics.Enabled = true
		cfg.Metrics.Listen = c.metricsAddr
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return cfg, nil
}

// newLogger builds the command logger; verbose mode enables debug records.
func (c *AnalyzeCommand) newLogger() *slog.Logger {
	level := slog.LevelWarn
	if c.verbose {
		level = slog.LevelDebug
	}

	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// write sends the rendered report to the output file or stdout.
func (c *AnalyzeCommand) write(rendered []byte) error {
	if c.output == "" {
		_, err := os.Stdout.Write(rendered)

		return err
	}

	const reportPerm = 0o644

	if err := os.WriteFile(c.output, rendered, reportPerm); err != nil {
		return fmt.Errorf("write report: %w", err)
	}

	return nil
}

// progressObserver streams per-file lifecycle events to a writer.
type progressObserver struct {
	orchestrator.NopObserver

	out *os.File
}

func (p *progressObserver) FileComplete(path string, result analyze.FileResult) {
	fmt.Fprintf(p.out, "analyzed %s (%d issues, %s)\n", path, len(result.Issues), result.Duration)
}

func (p *progressObserver) FileError(path string, err error) {
	fmt.Fprintf(p.out, "failed %s: %v\n", path, err)
}

func (p *progressObserver) RunComplete(result *analyze.AnalysisResult) {
	fmt.Fprintf(p.out, "analyzed %d files in %s\n", result.Summary.TotalFiles, result.Duration)
}
