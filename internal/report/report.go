// Package report renders an analysis result for people and machines. Every
// renderer is a pure projection of the result value: rendering never
// mutates or enriches it.
package report

import (
	"errors"
	"fmt"

	"github.com/gaugeworks/codegauge/internal/analyze"
	"github.com/gaugeworks/codegauge/internal/config"
)

// ErrUnknownFormat is returned for formats outside the supported set.
var ErrUnknownFormat = errors.New("unknown report format")

// Options tune what the human-readable renderers include.
type Options struct {
	IncludeRecommendations bool
	IncludeMetrics         bool
	Detailed               bool
}

// OptionsFrom derives renderer options from the output configuration.
func OptionsFrom(out config.Output) Options {
	return Options{
		IncludeRecommendations: out.IncludeRecommendations,
		IncludeMetrics:         out.IncludeMetrics,
		Detailed:               out.Verbosity == config.VerbosityDetailed,
	}
}

// Render dispatches to the renderer for the given format.
func Render(result *analyze.AnalysisResult, format string, opts Options) ([]byte, error) {
	switch format {
	case config.FormatJSON:
		return RenderJSON(result)
	case config.FormatYAML:
		return RenderYAML(result)
	case config.FormatMarkdown:
		return RenderMarkdown(result, opts), nil
	case config.FormatHTML:
		return RenderHTML(result)
	case config.FormatTerminal:
		return RenderTerminal(result, opts), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, format)
	}
}
