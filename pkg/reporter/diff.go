package reporter

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/yaklabco/autofix/internal/ui/pretty"
	"github.com/yaklabco/autofix/pkg/fix"
	"github.com/yaklabco/autofix/pkg/runner"
)

// DiffReporter formats results as unified diffs in git style.
// The output can be fed to "git apply" when paths are relative.
type DiffReporter struct {
	opts   Options
	styles *pretty.Styles
}

// NewDiffReporter creates a new diff reporter.
func NewDiffReporter(opts Options) *DiffReporter {
	if opts.ErrorWriter == nil {
		opts.ErrorWriter = os.Stderr
	}
	return &DiffReporter{
		opts:   opts,
		styles: pretty.NewStyles(pretty.IsColorEnabled(opts.Color, opts.Writer)),
	}
}

// Report implements Reporter.
func (r *DiffReporter) Report(_ context.Context, result *runner.Result) (int, error) {
	if result == nil {
		return 0, nil
	}

	out := bufio.NewWriterSize(r.opts.Writer, bufWriterSize)

	var filesWithDiffs int
	var totalAdditions, totalDeletions int

	for _, file := range result.Files {
		if file.Error != nil {
			// Errors go to ErrorWriter so the diff stream stays applicable.
			fmt.Fprintf(r.opts.ErrorWriter, "%s: %s\n",
				r.styles.FilePath.Render(displayPath(r.opts.WorkingDir, file.Path)),
				r.styles.Error.Render(fmt.Sprintf("error: %v", file.Error)),
			)
			continue
		}

		if file.Result == nil || !file.Result.Diff.HasChanges() {
			continue
		}

		filesWithDiffs++
		totalAdditions += file.Result.Diff.Additions
		totalDeletions += file.Result.Diff.Deletions
		r.writeDiff(out, file.Result.Diff)
	}

	if filesWithDiffs > 0 && r.opts.ShowSummary {
		r.writeSummary(out, filesWithDiffs, totalAdditions, totalDeletions)
	}

	if err := out.Flush(); err != nil {
		return 0, fmt.Errorf("flush output: %w", err)
	}
	return filesWithDiffs, nil
}

// writeDiff outputs a single file's diff with formatting.
func (r *DiffReporter) writeDiff(out *bufio.Writer, diff *fix.Diff) {
	name := strings.TrimPrefix(displayPath(r.opts.WorkingDir, diff.Path), "/")

	fmt.Fprintln(out, r.styles.DiffHeader.Render(fmt.Sprintf("diff --git a/%s b/%s", name, name)))
	fmt.Fprintln(out, r.styles.DiffRemove.Render("--- a/"+name))
	fmt.Fprintln(out, r.styles.DiffAdd.Render("+++ b/"+name))

	// Skip the body's own ---/+++ header; it carries the undisplayed path.
	lines := strings.Split(strings.TrimSuffix(diff.String(), "\n"), "\n")
	for idx, line := range lines {
		if idx < 2 && (strings.HasPrefix(line, "---") || strings.HasPrefix(line, "+++")) {
			continue
		}
		r.writeDiffLine(out, line)
	}

	fmt.Fprintln(out)
}

// writeDiffLine formats a single diff line with color.
func (r *DiffReporter) writeDiffLine(out *bufio.Writer, line string) {
	var styled string

	switch {
	case strings.HasPrefix(line, "@@"):
		styled = r.styles.DiffHunk.Render(line)
	case strings.HasPrefix(line, "+"):
		styled = r.styles.DiffAdd.Render(line)
	case strings.HasPrefix(line, "-"):
		styled = r.styles.DiffRemove.Render(line)
	default:
		styled = r.styles.DiffContext.Render(line)
	}

	fmt.Fprintln(out, styled)
}

// writeSummary writes a summary line at the end.
func (r *DiffReporter) writeSummary(out *bufio.Writer, files, additions, deletions int) {
	var parts []string

	fileWord := "files"
	if files == 1 {
		fileWord = "file"
	}
	parts = append(parts, fmt.Sprintf("%d %s changed", files, fileWord))

	if additions > 0 {
		insertionWord := "insertions"
		if additions == 1 {
			insertionWord = "insertion"
		}
		parts = append(parts, r.styles.DiffAdd.Render(fmt.Sprintf("%d %s(+)", additions, insertionWord)))
	}

	if deletions > 0 {
		deletionWord := "deletions"
		if deletions == 1 {
			deletionWord = "deletion"
		}
		parts = append(parts, r.styles.DiffRemove.Render(fmt.Sprintf("%d %s(-)", deletions, deletionWord)))
	}

	fmt.Fprintln(out, strings.Join(parts, ", "))
}
