package commands

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/gaugeworks/codegauge/internal/report"
)

// ErrReportInvalid is returned when a report document violates the schema.
var ErrReportInvalid = errors.New("report does not conform to the schema")

// NewValidateCommand creates the validate command. It checks a JSON report
// against the embedded result schema.
func NewValidateCommand() *cobra.Command {
	var noColor bool

	cmd := &cobra.Command{
		Use:   "validate <report.json|->",
		Short: "Validate a JSON report against the report schema",
		Long: `Validate a JSON report against the canonical report schema.

Examples:
  codegauge validate report.json
  codegauge validate - < report.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			if noColor {
				color.NoColor = true //nolint:reassign // intentional override of library global
			}

			return runValidate(args[0])
		},
	}

	cmd.Flags().BoolVar(&noColor, "no-color", false, "Disable colored output")

	return cmd
}

func runValidate(inputPath string) error {
	data, label, err := loadInput(inputPath)
	if err != nil {
		return err
	}

	violations, err := report.ValidateJSON(data)
	if err != nil {
		return err
	}

	if len(violations) == 0 {
		color.New(color.FgGreen).Fprintf(os.Stdout, "report is valid (%s)\n", label)

		return nil
	}

	color.New(color.FgRed).Fprintf(os.Stdout, "report validation failed (%s)\n", label)
	fmt.Fprintf(os.Stdout, "\nErrors:\n")

	for _, violation := range violations {
		color.New(color.FgRed).Fprintf(os.Stdout, "  - %s: %s\n", violation.Field, violation.Description)
	}

	return ErrReportInvalid
}

// loadInput reads the report document from a file or stdin ("-").
func loadInput(inputPath string) (data []byte, label string, err error) {
	if inputPath == "-" {
		data, err = io.ReadAll(os.Stdin)
		if err != nil {
			return nil, "", fmt.Errorf("read stdin: %w", err)
		}

		return data, "stdin", nil
	}

	data, err = os.ReadFile(inputPath)
	if err != nil {
		return nil, "", fmt.Errorf("read report: %w", err)
	}

	return data, inputPath, nil
}
