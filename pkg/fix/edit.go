// Package fix merges independently proposed text edits into a corrected document.
//
// Edits are applied in the order of CompareEdits: start, then end, then
// content. The result does not depend on input order. When two edits replace
// the same non-empty range with different text, the one whose content sorts
// first lexicographically is applied and the other is dropped as an overlap,
// whichever was proposed first.
package fix

import (
	"fmt"
	"strings"

	"github.com/yaklabco/autofix/pkg/source"
)

// Edit replaces the text in Range with Content.
// Edit is comparable: two edits are equal when their range and content match.
type Edit struct {
	// Range is the half-open source range being replaced.
	Range source.Range

	// Content is the replacement text.
	Content string
}

// Replacement returns an edit replacing r with content.
func Replacement(r source.Range, content string) Edit {
	return Edit{Range: r, Content: content}
}

// Insertion returns an edit inserting content at pos.
func Insertion(pos source.Position, content string) Edit {
	return Edit{Range: source.Range{Start: pos, End: pos}, Content: content}
}

// Deletion returns an edit removing r.
func Deletion(r source.Range) Edit {
	return Edit{Range: r}
}

func (e Edit) String() string {
	switch {
	case e.Range.IsEmpty():
		return fmt.Sprintf("insert %q at %s", e.Content, e.Range.Start)
	case e.Content == "":
		return "delete " + e.Range.String()
	default:
		return fmt.Sprintf("replace %s with %q", e.Range, e.Content)
	}
}

// CompareEdits orders edits by start position, then end position, then content.
// Edits comparing equal are structurally identical.
func CompareEdits(a, b Edit) int {
	if c := a.Range.Start.Compare(b.Range.Start); c != 0 {
		return c
	}
	if c := a.Range.End.Compare(b.Range.End); c != 0 {
		return c
	}
	return strings.Compare(a.Content, b.Content)
}

// Fix is one logical correction proposed by an analysis pass.
// It carries a single edit today.
type Fix struct {
	Edit Edit
}

// NewFix wraps an edit.
func NewFix(edit Edit) Fix {
	return Fix{Edit: edit}
}

// Fixable is implemented by diagnostics that may carry a fix.
type Fixable interface {
	SuggestedFix() (Fix, bool)
}
