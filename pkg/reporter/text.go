package reporter

import (
	"bufio"
	"context"
	"fmt"

	"github.com/yaklabco/autofix/internal/ui/pretty"
	"github.com/yaklabco/autofix/pkg/runner"
)

// TextReporter writes one status line per document followed by a summary line.
type TextReporter struct {
	opts   Options
	styles *pretty.Styles
}

// NewTextReporter creates a new text reporter.
func NewTextReporter(opts Options) *TextReporter {
	return &TextReporter{
		opts:   opts,
		styles: pretty.NewStyles(pretty.IsColorEnabled(opts.Color, opts.Writer)),
	}
}

// Report implements Reporter.
func (r *TextReporter) Report(ctx context.Context, result *runner.Result) (int, error) {
	if result == nil {
		return 0, nil
	}

	out := bufio.NewWriterSize(r.opts.Writer, bufWriterSize)

	for _, outcome := range result.Files {
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		if !r.opts.Verbose && quiet(outcome) {
			continue
		}
		if _, err := out.WriteString(r.styles.FormatOutcome(displayPath(r.opts.WorkingDir, outcome.Path), outcome)); err != nil {
			return 0, fmt.Errorf("write outcome: %w", err)
		}
	}

	if r.opts.ShowSummary {
		if _, err := out.WriteString(r.styles.FormatSummaryOneLine(result.Stats, result.Mode)); err != nil {
			return 0, fmt.Errorf("write summary: %w", err)
		}
	}

	if err := out.Flush(); err != nil {
		return 0, fmt.Errorf("flush output: %w", err)
	}
	return result.Stats.DiagnosticsFixed, nil
}

// quiet reports whether a document has nothing worth a line of its own.
func quiet(outcome runner.FileOutcome) bool {
	if outcome.Error != nil || outcome.Result == nil {
		return false
	}
	res := outcome.Result
	return res.Diagnostics == 0 && !res.Skipped
}
