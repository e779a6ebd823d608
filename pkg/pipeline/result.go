package pipeline

import (
	"github.com/yaklabco/autofix/pkg/fix"
)

// Result describes what happened to one document.
type Result struct {
	Path     string
	Language string
	Mode     fix.Mode

	// Diagnostics is the number of diagnostics reported for the document.
	Diagnostics int

	// Fixable is the number of those that carry a fix.
	Fixable int

	// Fixed counts applied edits plus duplicates of applied edits.
	Fixed int

	// EditsSkipped counts edits dropped because they overlapped an earlier one.
	EditsSkipped int

	// Content is the document after fixing, or the original when nothing
	// was computed.
	Content string

	// Modified is true if fixing changed the content.
	Modified bool

	// Diff is set when the content changed.
	Diff *fix.Diff

	Written       bool
	BackupCreated bool

	// Skipped is true if the document was left alone; SkipReason says why.
	Skipped    bool
	SkipReason string
}

// Unfixed returns the number of diagnostics still present in the document
// on disk once the run ends.
func (r *Result) Unfixed() int {
	if r.Skipped || !r.Mode.WritesFixes() || (r.Modified && !r.Written) {
		return r.Diagnostics
	}
	return max(r.Diagnostics-r.Fixed, 0)
}

// Summary returns a short status for the document.
func (r *Result) Summary() string {
	switch {
	case r.Skipped:
		return "skipped: " + r.SkipReason
	case r.Written && r.BackupCreated:
		return "fixed (backup created)"
	case r.Written:
		return "fixed"
	case r.Modified:
		return "fixes pending"
	case r.Diagnostics > 0:
		return "issues found"
	default:
		return "ok"
	}
}
