package reporter

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"

	"github.com/yaklabco/autofix/pkg/runner"
)

// jsonSchemaVersion is bumped whenever the output shape changes incompatibly.
const jsonSchemaVersion = 1

// JSONReporter writes results as a single JSON document.
type JSONReporter struct {
	opts Options
}

// NewJSONReporter creates a new JSON reporter.
func NewJSONReporter(opts Options) *JSONReporter {
	return &JSONReporter{opts: opts}
}

// JSONOutput is the top-level JSON document.
type JSONOutput struct {
	Version int         `json:"version"`
	Mode    string      `json:"mode"`
	Files   []JSONFile  `json:"files"`
	Summary JSONSummary `json:"summary"`
}

// JSONFile is the outcome for one document.
type JSONFile struct {
	Path          string   `json:"path"`
	Reports       []string `json:"reports,omitempty"`
	Language      string   `json:"language,omitempty"`
	Diagnostics   int      `json:"diagnostics"`
	Fixable       int      `json:"fixable"`
	Fixed         int      `json:"fixed"`
	Unfixed       int      `json:"unfixed"`
	EditsSkipped  int      `json:"edits_skipped"`
	Modified      bool     `json:"modified"`
	Written       bool     `json:"written"`
	BackupCreated bool     `json:"backup_created,omitempty"`
	Skipped       bool     `json:"skipped,omitempty"`
	SkipReason    string   `json:"skip_reason,omitempty"`
	Diff          string   `json:"diff,omitempty"`
	Error         string   `json:"error,omitempty"`
	DurationMS    int64    `json:"duration_ms"`
}

// JSONSummary mirrors runner.Stats.
type JSONSummary struct {
	ReportsLoaded      int            `json:"reports_loaded"`
	FilesDiscovered    int            `json:"files_discovered"`
	FilesProcessed     int            `json:"files_processed"`
	FilesChanged       int            `json:"files_changed"`
	FilesModified      int            `json:"files_modified"`
	FilesSkipped       int            `json:"files_skipped"`
	FilesErrored       int            `json:"files_errored"`
	DiagnosticsTotal   int            `json:"diagnostics_total"`
	DiagnosticsFixable int            `json:"diagnostics_fixable"`
	DiagnosticsFixed   int            `json:"diagnostics_fixed"`
	DiagnosticsUnfixed int            `json:"diagnostics_unfixed"`
	EditsSkipped       int            `json:"edits_skipped"`
	FilesByLanguage    map[string]int `json:"files_by_language,omitempty"`
}

// Report implements Reporter.
func (r *JSONReporter) Report(_ context.Context, result *runner.Result) (int, error) {
	if result == nil {
		return 0, nil
	}

	output := r.build(result)

	out := bufio.NewWriterSize(r.opts.Writer, bufWriterSize)
	encoder := json.NewEncoder(out)
	if !r.opts.Compact {
		encoder.SetIndent("", "  ")
	}
	if err := encoder.Encode(output); err != nil {
		return 0, fmt.Errorf("encode JSON: %w", err)
	}
	if err := out.Flush(); err != nil {
		return 0, fmt.Errorf("flush output: %w", err)
	}

	return result.Stats.DiagnosticsFixed, nil
}

func (r *JSONReporter) build(result *runner.Result) JSONOutput {
	stats := result.Stats
	output := JSONOutput{
		Version: jsonSchemaVersion,
		Mode:    result.Mode.String(),
		Files:   make([]JSONFile, 0, len(result.Files)),
		Summary: JSONSummary{
			ReportsLoaded:      stats.ReportsLoaded,
			FilesDiscovered:    stats.FilesDiscovered,
			FilesProcessed:     stats.FilesProcessed,
			FilesChanged:       stats.FilesChanged,
			FilesModified:      stats.FilesModified,
			FilesSkipped:       stats.FilesSkipped,
			FilesErrored:       stats.FilesErrored,
			DiagnosticsTotal:   stats.DiagnosticsTotal,
			DiagnosticsFixable: stats.DiagnosticsFixable,
			DiagnosticsFixed:   stats.DiagnosticsFixed,
			DiagnosticsUnfixed: stats.DiagnosticsUnfixed,
			EditsSkipped:       stats.EditsSkipped,
			FilesByLanguage:    stats.FilesByLanguage,
		},
	}

	for _, outcome := range result.Files {
		file := JSONFile{
			Path:       displayPath(r.opts.WorkingDir, outcome.Path),
			Reports:    outcome.Reports,
			DurationMS: outcome.Duration.Milliseconds(),
		}
		if outcome.Error != nil {
			file.Error = outcome.Error.Error()
		}
		if res := outcome.Result; res != nil {
			file.Language = res.Language
			file.Diagnostics = res.Diagnostics
			file.Fixable = res.Fixable
			file.Fixed = res.Fixed
			file.Unfixed = res.Unfixed()
			file.EditsSkipped = res.EditsSkipped
			file.Modified = res.Modified
			file.Written = res.Written
			file.BackupCreated = res.BackupCreated
			file.Skipped = res.Skipped
			file.SkipReason = res.SkipReason
			file.Diff = res.Diff.FullString()
		}
		output.Files = append(output.Files, file)
	}

	return output
}
