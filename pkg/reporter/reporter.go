// Package reporter writes the outcome of a fix run in one of several formats.
package reporter

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/yaklabco/autofix/pkg/runner"
)

// Reporter formats and writes run results.
type Reporter interface {
	// Report writes formatted output for the given result.
	// It returns the number of fixes reported and any write errors.
	Report(ctx context.Context, result *runner.Result) (int, error)
}

// New creates a Reporter for the specified options.
func New(opts Options) (Reporter, error) {
	defaults := DefaultOptions()
	if opts.Writer == nil {
		opts.Writer = defaults.Writer
	}
	if opts.ErrorWriter == nil {
		opts.ErrorWriter = defaults.ErrorWriter
	}

	format := opts.Format
	if format == "" {
		format = FormatText
	}

	switch format {
	case FormatJSON:
		return NewJSONReporter(opts), nil
	case FormatDiff:
		return NewDiffReporter(opts), nil
	case FormatText:
		return NewTextReporter(opts), nil
	case FormatSummary:
		return NewSummaryReporter(opts), nil
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}

// displayPath makes path relative to workDir when that stays inside it.
func displayPath(workDir, path string) string {
	if workDir == "" || !filepath.IsAbs(path) {
		return path
	}
	rel, err := filepath.Rel(workDir, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return path
	}
	return rel
}
