package reporter

import (
	"context"
	"fmt"
	"io"

	"github.com/yaklabco/autofix/internal/ui/pretty"
	"github.com/yaklabco/autofix/pkg/runner"
)

// SummaryReporter writes only the aggregate statistics block.
type SummaryReporter struct {
	styles *pretty.Styles
	out    io.Writer
}

// NewSummaryReporter creates a new summary reporter.
func NewSummaryReporter(opts Options) *SummaryReporter {
	return &SummaryReporter{
		styles: pretty.NewStyles(pretty.IsColorEnabled(opts.Color, opts.Writer)),
		out:    opts.Writer,
	}
}

// Report implements Reporter.
func (r *SummaryReporter) Report(_ context.Context, result *runner.Result) (int, error) {
	if result == nil {
		return 0, nil
	}
	if _, err := io.WriteString(r.out, r.styles.FormatSummary(result.Stats, result.Mode)); err != nil {
		return 0, fmt.Errorf("write summary: %w", err)
	}
	return result.Stats.DiagnosticsFixed, nil
}
