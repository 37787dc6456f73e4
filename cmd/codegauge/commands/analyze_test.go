package commands_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gaugeworks/codegauge/cmd/codegauge/commands"
	"github.com/gaugeworks/codegauge/internal/analyze"
	"github.com/gaugeworks/codegauge/internal/report"
)

const sampleSource = `package main

import "fmt"

func main() {
	if len(os.Args) > 1 {
		fmt.Println("args")
	}
}
`

func writeSample(t *testing.T) (dir, path string) {
	t.Helper()

	dir = t.TempDir()
	path = filepath.Join(dir, "main.go")

	require.NoError(t, os.WriteFile(path, []byte(sampleSource), 0o600))

	return dir, path
}

func TestAnalyzeCommand_WritesJSONReport(t *testing.T) {
	t.Parallel()

	dir, _ := writeSample(t)
	out := filepath.Join(dir, "report.json")

	cmd := commands.NewAnalyzeCommand()
	cmd.SetArgs([]string{"--format", "json", "--output", out, "--no-cache", filepath.Join(dir, "*.go")})

	require.NoError(t, cmd.Execute())

	data, err := os.ReadFile(out)
	require.NoError(t, err)

	var result analyze.AnalysisResult
	require.NoError(t, json.Unmarshal(data, &result))
	assert.Equal(t, 1, result.Summary.TotalFiles)

	violations, err := report.ValidateJSON(data)
	require.NoError(t, err)
	assert.Empty(t, violations)
}

func TestAnalyzeCommand_NoFilesFails(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	cmd := commands.NewAnalyzeCommand()
	cmd.SilenceUsage = true
	cmd.SetArgs([]string{"--no-cache", filepath.Join(dir, "*.go")})

	assert.Error(t, cmd.Execute())
}

func TestAnalyzeCommand_InvalidFormatFails(t *testing.T) {
	t.Parallel()

	dir, _ := writeSample(t)

	cmd := commands.NewAnalyzeCommand()
	cmd.SilenceUsage = true
	cmd.SetArgs([]string{"--format", "pdf", filepath.Join(dir, "*.go")})

	assert.Error(t, cmd.Execute())
}

func TestValidateCommand_AcceptsGeneratedReport(t *testing.T) {
	t.Parallel()

	dir, _ := writeSample(t)
	out := filepath.Join(dir, "report.json")

	analyzeCmd := commands.NewAnalyzeCommand()
	analyzeCmd.SetArgs([]string{"--format", "json", "--output", out, "--no-cache", filepath.Join(dir, "*.go")})
	require.NoError(t, analyzeCmd.Execute())

	validateCmd := commands.NewValidateCommand()
	validateCmd.SetArgs([]string{"--no-color", out})

	assert.NoError(t, validateCmd.Execute())
}

func TestValidateCommand_RejectsBadDocument(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "bad.json")

	require.NoError(t, os.WriteFile(path, []byte(`{"summary": {"total_files": -1}}`), 0o600))

	cmd := commands.NewValidateCommand()
	cmd.SilenceUsage = true
	cmd.SetArgs([]string{"--no-color", path})

	assert.ErrorIs(t, cmd.Execute(), commands.ErrReportInvalid)
}
