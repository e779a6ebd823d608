package pretty

import (
	"fmt"
	"strings"

	"github.com/yaklabco/autofix/pkg/runner"
)

// FormatOutcome formats one document's outcome as a single status line.
// The path is passed separately so callers can display it relative to a
// working directory.
func (s *Styles) FormatOutcome(path string, outcome runner.FileOutcome) string {
	if outcome.Error != nil {
		return fmt.Sprintf("%s: %s %s\n",
			s.FilePath.Render(path), s.Error.Render("error:"), outcome.Error)
	}

	res := outcome.Result
	if res == nil {
		return s.FilePath.Render(path) + "\n"
	}

	var builder strings.Builder
	builder.WriteString(s.FilePath.Render(path))
	if res.Language != "" {
		builder.WriteString(" " + s.Language.Render("["+res.Language+"]"))
	}
	builder.WriteString("  ")

	switch {
	case res.Skipped:
		builder.WriteString(s.Reason.Render("skipped: " + res.SkipReason))
	case res.Written:
		builder.WriteString(s.Success.Render(fmt.Sprintf("fixed %d", res.Fixed)))
		if res.BackupCreated {
			builder.WriteString(s.Dim.Render(" (backup created)"))
		}
	case res.Modified:
		builder.WriteString(s.Warning.Render(fmt.Sprintf("%d %s available", res.Fixed, plural(res.Fixed, "fix", "fixes"))))
	case res.Diagnostics > 0 && res.Fixable == 0:
		builder.WriteString(s.Dim.Render(fmt.Sprintf("%d %s, none fixable",
			res.Diagnostics, plural(res.Diagnostics, "diagnostic", "diagnostics"))))
	case res.Diagnostics > 0:
		builder.WriteString(s.Dim.Render(fmt.Sprintf("%d %s", res.Diagnostics,
			plural(res.Diagnostics, "diagnostic", "diagnostics"))))
	default:
		builder.WriteString(s.Dim.Render("ok"))
	}

	if res.EditsSkipped > 0 {
		builder.WriteString(s.Dim.Render(fmt.Sprintf(", %d overlapping %s dropped",
			res.EditsSkipped, plural(res.EditsSkipped, "edit", "edits"))))
	}
	if unfixed := res.Unfixed(); unfixed > 0 && res.Written {
		builder.WriteString(s.Dim.Render(fmt.Sprintf(", %d unfixed", unfixed)))
	}

	builder.WriteString("\n")
	return builder.String()
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
