package runner

import (
	"time"

	"github.com/yaklabco/autofix/pkg/fix"
	"github.com/yaklabco/autofix/pkg/pipeline"
)

// FileOutcome is the result of processing one document.
type FileOutcome struct {
	// Path is the resolved document path.
	Path string

	// Reports lists the reports that mentioned the document.
	Reports []string

	// Result is nil when Error is set.
	Result *pipeline.Result

	// Error is set if the document could not be processed.
	Error error

	Duration time.Duration
}

// Stats are totals over a run.
type Stats struct {
	ReportsLoaded int

	// FilesDiscovered is the number of distinct documents named by the reports.
	FilesDiscovered int

	FilesProcessed int
	FilesSkipped   int
	FilesErrored   int

	// FilesChanged counts documents whose content fixing would change;
	// FilesModified counts those actually written.
	FilesChanged  int
	FilesModified int

	DiagnosticsTotal   int
	DiagnosticsFixable int
	DiagnosticsFixed   int
	DiagnosticsUnfixed int

	// EditsSkipped counts edits dropped for overlapping an earlier edit.
	EditsSkipped int

	// FilesByLanguage counts processed documents per detected language.
	FilesByLanguage map[string]int
}

// Result is the overall outcome of a run.
type Result struct {
	// Mode is the fix mode the run used.
	Mode fix.Mode

	// Files are ordered by first appearance across the reports.
	Files []FileOutcome

	Stats Stats
}

// HasErrors reports whether any document failed.
func (r *Result) HasErrors() bool {
	return r != nil && r.Stats.FilesErrored > 0
}

// HasUnfixed reports whether diagnostics remain once the run ends.
func (r *Result) HasUnfixed() bool {
	return r != nil && r.Stats.DiagnosticsUnfixed > 0
}

func newStats() Stats {
	return Stats{FilesByLanguage: make(map[string]int)}
}

func (r *Result) accumulate(outcome FileOutcome) {
	r.Files = append(r.Files, outcome)

	if outcome.Error != nil {
		r.Stats.FilesErrored++
		return
	}
	res := outcome.Result
	if res == nil {
		return
	}

	r.Stats.FilesProcessed++
	r.Stats.FilesByLanguage[res.Language]++
	r.Stats.DiagnosticsTotal += res.Diagnostics
	r.Stats.DiagnosticsFixable += res.Fixable
	r.Stats.DiagnosticsFixed += res.Fixed
	r.Stats.DiagnosticsUnfixed += res.Unfixed()
	r.Stats.EditsSkipped += res.EditsSkipped

	if res.Skipped {
		r.Stats.FilesSkipped++
	}
	if res.Modified {
		r.Stats.FilesChanged++
	}
	if res.Written {
		r.Stats.FilesModified++
	}
}
