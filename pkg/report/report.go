// Package report reads the diagnostics files written by analysis passes.
// A report lists, per document, the diagnostics found and the fix each one
// proposes.
package report

import (
	"github.com/yaklabco/autofix/pkg/fix"
	"github.com/yaklabco/autofix/pkg/source"
)

// CurrentVersion is the report schema version this package reads.
const CurrentVersion = 1

// Report is the top-level structure of a diagnostics file.
type Report struct {
	// Version is the schema version. Zero is read as CurrentVersion.
	Version int `json:"version" yaml:"version" toml:"version"`

	// Files lists the documents the report covers.
	Files []File `json:"files" yaml:"files" toml:"files"`

	// Path is the file the report was loaded from, if any.
	Path string `json:"-" yaml:"-" toml:"-"`
}

// File holds the diagnostics for one document.
type File struct {
	// Path locates the document, relative to the report's directory unless absolute.
	Path string `json:"path" yaml:"path" toml:"path"`

	// Diagnostics found in the document.
	Diagnostics []Diagnostic `json:"diagnostics" yaml:"diagnostics" toml:"diagnostics"`
}

// Diagnostic is a single issue reported by an analysis pass.
type Diagnostic struct {
	Code        string          `json:"code" yaml:"code" toml:"code"`
	Message     string          `json:"message" yaml:"message" toml:"message"`
	Location    source.Position `json:"location" yaml:"location" toml:"location"`
	EndLocation source.Position `json:"end_location" yaml:"end_location" toml:"end_location"`
	Fix         *Fix            `json:"fix,omitempty" yaml:"fix,omitempty" toml:"fix,omitempty"`
}

// Fix is the wire form of a proposed edit.
type Fix struct {
	Content     string          `json:"content" yaml:"content" toml:"content"`
	Location    source.Position `json:"location" yaml:"location" toml:"location"`
	EndLocation source.Position `json:"end_location" yaml:"end_location" toml:"end_location"`
}

// Range returns the span the diagnostic refers to.
func (d Diagnostic) Range() source.Range {
	return source.Range{Start: d.Location, End: d.EndLocation}
}

// SuggestedFix returns the diagnostic's fix, if it has one.
func (d Diagnostic) SuggestedFix() (fix.Fix, bool) {
	if d.Fix == nil {
		return fix.Fix{}, false
	}
	return fix.NewFix(fix.Replacement(
		source.Range{Start: d.Fix.Location, End: d.Fix.EndLocation},
		d.Fix.Content,
	)), true
}

// HasFix returns true if the diagnostic carries a fix.
func (d Diagnostic) HasFix() bool {
	return d.Fix != nil
}

// Fixes returns the fixes carried by the file's diagnostics.
func (f File) Fixes() []fix.Fix {
	var fixes []fix.Fix
	for _, d := range f.Diagnostics {
		if fx, ok := d.SuggestedFix(); ok {
			fixes = append(fixes, fx)
		}
	}
	return fixes
}

// FixableCount returns the number of diagnostics that carry a fix.
func (f File) FixableCount() int {
	count := 0
	for _, d := range f.Diagnostics {
		if d.HasFix() {
			count++
		}
	}
	return count
}
