package fix

import (
	"slices"

	"github.com/yaklabco/autofix/pkg/source"
)

// Plan is the outcome of conflict resolution over a set of fixes.
type Plan struct {
	// Admitted lists the edits to apply, in document order.
	Admitted []Edit

	// Skipped lists edits dropped because they start before the end of an
	// already admitted edit.
	Skipped []Edit

	// Duplicates counts edits identical to one already admitted.
	Duplicates int

	// Fixed counts admitted edits plus duplicates.
	Fixed int
}

// Resolve orders fixes by position and decides which edits are admitted.
//
// Edits are walked in CompareEdits order behind a cursor at the end of the
// last admitted edit:
//   - an edit identical to an admitted one is counted but not re-applied;
//   - an edit starting before the cursor is dropped;
//   - any other edit is admitted and moves the cursor to its end.
//
// The first edit in position order wins an overlap regardless of content.
func Resolve(fixes []Fix) Plan {
	if len(fixes) == 0 {
		return Plan{}
	}

	edits := make([]Edit, len(fixes))
	for idx, f := range fixes {
		edits[idx] = f.Edit
	}
	slices.SortStableFunc(edits, CompareEdits)

	plan := Plan{
		Admitted: make([]Edit, 0, len(edits)),
	}
	admitted := make(map[Edit]struct{}, len(edits))
	cursor := source.Start()

	for _, edit := range edits {
		if _, seen := admitted[edit]; seen {
			plan.Duplicates++
			plan.Fixed++
			continue
		}

		if edit.Range.Start.Before(cursor) {
			plan.Skipped = append(plan.Skipped, edit)
			continue
		}

		plan.Admitted = append(plan.Admitted, edit)
		admitted[edit] = struct{}{}
		cursor = edit.Range.End
		plan.Fixed++
	}

	return plan
}
