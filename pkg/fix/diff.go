package fix

import (
	"fmt"
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

// contextLines is the number of context lines to show around changes.
const contextLines = 3

// Diff is a unified diff between a document and its fixed version.
type Diff struct {
	// Path is the file path for the diff header.
	Path string

	// Unified is the diff body, starting with the ---/+++ header.
	Unified string

	// Additions is the number of lines added.
	Additions int

	// Deletions is the number of lines deleted.
	Deletions int
}

// GenerateDiff creates a unified diff between original and modified.
// Returns nil if the contents are identical.
func GenerateDiff(path, original, modified string) *Diff {
	if original == modified {
		return nil
	}

	origLines := splitLines(original)
	modLines := splitLines(modified)
	name := strings.TrimPrefix(path, "/")

	unified, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        origLines,
		B:        modLines,
		FromFile: "a/" + name,
		ToFile:   "b/" + name,
		Context:  contextLines,
	})
	if err != nil || unified == "" {
		// Only the writer can fail and a strings.Builder does not.
		return nil
	}

	d := &Diff{Path: path, Unified: unified}
	for _, op := range difflib.NewMatcher(origLines, modLines).GetOpCodes() {
		switch op.Tag {
		case 'r':
			d.Deletions += op.I2 - op.I1
			d.Additions += op.J2 - op.J1
		case 'd':
			d.Deletions += op.I2 - op.I1
		case 'i':
			d.Additions += op.J2 - op.J1
		}
	}

	return d
}

// splitLines splits s after each newline. Unlike difflib.SplitLines it adds
// no empty line for a trailing newline; a final unterminated line still gets
// one so every diff line ends in "\n".
func splitLines(s string) []string {
	lines := strings.SplitAfter(s, "\n")
	if last := len(lines) - 1; lines[last] == "" {
		lines = lines[:last]
	} else {
		lines[last] += "\n"
	}
	return lines
}

// GitHeader returns the "diff --git" header line.
func (d *Diff) GitHeader() string {
	if d == nil {
		return ""
	}
	name := strings.TrimPrefix(d.Path, "/")
	return fmt.Sprintf("diff --git a/%s b/%s", name, name)
}

// String returns the diff in unified format without the git header.
func (d *Diff) String() string {
	if d == nil {
		return ""
	}
	return d.Unified
}

// FullString returns the diff including the git header.
func (d *Diff) FullString() string {
	if !d.HasChanges() {
		return ""
	}
	return d.GitHeader() + "\n" + d.Unified
}

// HasChanges returns true if the diff contains any changes.
func (d *Diff) HasChanges() bool {
	return d != nil && d.Unified != ""
}
