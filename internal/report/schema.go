package report

import (
	"embed"
	"fmt"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed schema/analysis-result.schema.json
var schemaFS embed.FS

// schemaFile is the embedded schema path.
const schemaFile = "schema/analysis-result.schema.json"

// ValidationIssue is one schema violation in a report document.
type ValidationIssue struct {
	Field       string
	Description string
}

// ValidateJSON checks a serialized report against the embedded result
// schema. It returns the violations found; an empty slice means the
// document is valid.
func ValidateJSON(data []byte) ([]ValidationIssue, error) {
	schemaBytes, err := schemaFS.ReadFile(schemaFile)
	if err != nil {
		return nil, fmt.Errorf("read embedded schema: %w", err)
	}

	result, err := gojsonschema.Validate(
		gojsonschema.NewBytesLoader(schemaBytes),
		gojsonschema.NewBytesLoader(data),
	)
	if err != nil {
		return nil, fmt.Errorf("validate report: %w", err)
	}

	if result.Valid() {
		return nil, nil
	}

	violations := make([]ValidationIssue, 0, len(result.Errors()))
	for _, verr := range result.Errors() {
		violations = append(violations, ValidationIssue{
			Field:       verr.Field(),
			Description: verr.Description(),
		})
	}

	return violations, nil
}
