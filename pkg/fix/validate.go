package fix

import (
	"fmt"

	"github.com/yaklabco/autofix/pkg/source"
)

// ValidationError describes an edit that does not fit the document.
type ValidationError struct {
	Edit    Edit
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid edit %s: %s", e.Edit.Range, e.Message)
}

// Indexer converts positions to byte offsets. *source.TextLocator implements it.
type Indexer interface {
	Offset(pos source.Position) (int, bool)
}

// ValidateFixes checks that every edit is ordered and lies inside the document.
// Returns nil if all edits are valid, or the first validation error encountered.
//
// Resolution and assembly assume valid edits; callers that accept edits from
// outside the process should run this first.
func ValidateFixes(fixes []Fix, doc Indexer) error {
	for _, f := range fixes {
		edit := f.Edit
		if !edit.Range.Start.IsValid() || !edit.Range.End.IsValid() {
			return &ValidationError{Edit: edit, Message: "position has a non-positive line or negative column"}
		}
		if !edit.Range.IsOrdered() {
			return &ValidationError{Edit: edit, Message: "end is before start"}
		}
		if _, ok := doc.Offset(edit.Range.Start); !ok {
			return &ValidationError{Edit: edit, Message: fmt.Sprintf("start %s is outside the document", edit.Range.Start)}
		}
		if _, ok := doc.Offset(edit.Range.End); !ok {
			return &ValidationError{Edit: edit, Message: fmt.Sprintf("end %s is outside the document", edit.Range.End)}
		}
	}
	return nil
}
