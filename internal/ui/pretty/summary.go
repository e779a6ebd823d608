package pretty

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/yaklabco/autofix/pkg/fix"
	"github.com/yaklabco/autofix/pkg/runner"
)

const (
	summaryDividerWidth = 40
	wordFile            = "file"
	wordFiles           = "files"
)

// FormatSummaryOneLine formats run statistics as a single line.
// Example: "7 diagnostics in 3 files, 5 fixable, 5 fixed in 2 files".
func (s *Styles) FormatSummaryOneLine(stats runner.Stats, mode fix.Mode) string {
	if stats.DiagnosticsTotal == 0 {
		msg := s.Success.Render("No diagnostics") +
			s.Dim.Render(fmt.Sprintf(" (%d %s checked)", stats.FilesProcessed, plural(stats.FilesProcessed, wordFile, wordFiles)))
		return msg + errorSuffix(s, stats) + "\n"
	}

	parts := []string{fmt.Sprintf("%d %s in %d %s",
		stats.DiagnosticsTotal, plural(stats.DiagnosticsTotal, "diagnostic", "diagnostics"),
		stats.FilesProcessed, plural(stats.FilesProcessed, wordFile, wordFiles))}

	if stats.DiagnosticsFixable > 0 {
		parts = append(parts, s.Success.Render(fmt.Sprintf("%d fixable", stats.DiagnosticsFixable)))
	}

	switch mode {
	case fix.ModeApply:
		if stats.DiagnosticsFixed > 0 {
			parts = append(parts, s.Success.Render(fmt.Sprintf("%d fixed in %d %s",
				stats.DiagnosticsFixed, stats.FilesModified, plural(stats.FilesModified, wordFile, wordFiles))))
		}
	case fix.ModeGenerate:
		if stats.FilesChanged > 0 {
			parts = append(parts, s.Warning.Render(fmt.Sprintf("%d would be fixed in %d %s",
				stats.DiagnosticsFixed, stats.FilesChanged, plural(stats.FilesChanged, wordFile, wordFiles))))
		}
	default:
		parts = append(parts, s.Dim.Render("fixing disabled"))
	}

	if stats.EditsSkipped > 0 {
		parts = append(parts, s.Dim.Render(fmt.Sprintf("%d overlapping %s dropped",
			stats.EditsSkipped, plural(stats.EditsSkipped, "edit", "edits"))))
	}
	if stats.FilesSkipped > 0 {
		parts = append(parts, s.Warning.Render(fmt.Sprintf("%d %s skipped",
			stats.FilesSkipped, plural(stats.FilesSkipped, wordFile, wordFiles))))
	}

	return strings.Join(parts, ", ") + errorSuffix(s, stats) + "\n"
}

func errorSuffix(s *Styles, stats runner.Stats) string {
	if stats.FilesErrored == 0 {
		return ""
	}
	return ", " + s.Error.Render(fmt.Sprintf("%d %s failed",
		stats.FilesErrored, plural(stats.FilesErrored, wordFile, wordFiles)))
}

// FormatSummary formats run statistics as a summary block.
func (s *Styles) FormatSummary(stats runner.Stats, mode fix.Mode) string {
	var builder strings.Builder

	row := func(label string, style func(...string) string, value int) {
		builder.WriteString(fmt.Sprintf("  %-19s", label+":") + style(strconv.Itoa(value)) + "\n")
	}

	builder.WriteString("\n")
	builder.WriteString(s.SummaryTitle.Render("Summary"))
	builder.WriteString(s.Dim.Render(" (mode: " + mode.String() + ")"))
	builder.WriteString("\n")
	builder.WriteString(strings.Repeat("-", summaryDividerWidth))
	builder.WriteString("\n")

	row("Reports loaded", s.SummaryValue.Render, stats.ReportsLoaded)
	row("Files checked", s.SummaryValue.Render, stats.FilesProcessed)
	if stats.FilesChanged > 0 {
		row("Files with fixes", s.SummaryValue.Render, stats.FilesChanged)
	}
	if stats.FilesModified > 0 {
		row("Files modified", s.Success.Render, stats.FilesModified)
	}
	if stats.FilesSkipped > 0 {
		row("Files skipped", s.Warning.Render, stats.FilesSkipped)
	}
	if stats.FilesErrored > 0 {
		row("Files failed", s.Failure.Render, stats.FilesErrored)
	}

	builder.WriteString("\n")

	row("Diagnostics", s.SummaryValue.Render, stats.DiagnosticsTotal)
	row("Fixable", s.SummaryValue.Render, stats.DiagnosticsFixable)
	if mode.ComputesFixes() {
		label := "Fixed"
		if !mode.WritesFixes() {
			label = "Would fix"
		}
		row(label, s.Success.Render, stats.DiagnosticsFixed)
	}
	if stats.EditsSkipped > 0 {
		row("Edits dropped", s.Warning.Render, stats.EditsSkipped)
	}
	row("Remaining", s.SummaryValue.Render, stats.DiagnosticsUnfixed)

	builder.WriteString("\n")

	switch {
	case stats.FilesErrored > 0:
		builder.WriteString(s.Failure.Render("Fixing failed for some files"))
	case stats.DiagnosticsUnfixed == 0:
		builder.WriteString(s.Success.Render("All diagnostics resolved"))
	case mode == fix.ModeGenerate && stats.FilesChanged > 0:
		builder.WriteString(s.Warning.Render("Fixes available, rerun with --mode apply"))
	default:
		builder.WriteString(s.Warning.Render("Diagnostics remain"))
	}
	builder.WriteString("\n")

	return builder.String()
}
