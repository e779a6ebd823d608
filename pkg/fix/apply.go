package fix

import "github.com/yaklabco/autofix/pkg/source"

// Result is the fixed document and what went into it.
type Result struct {
	// Content is the document after applying the admitted edits.
	Content string

	// Fixed counts applied edits plus duplicates of applied edits.
	Fixed int

	// Applied lists the admitted edits in document order.
	Applied []Edit

	// Skipped lists overlapping edits that were dropped.
	Skipped []Edit
}

// ApplyFixes resolves fixes against each other and assembles the result.
// With no fixes the result is the original document and a zero count.
func ApplyFixes(fixes []Fix, loc source.Locator) Result {
	plan := Resolve(fixes)
	return Result{
		Content: Assemble(loc, plan.Admitted),
		Fixed:   plan.Fixed,
		Applied: plan.Admitted,
		Skipped: plan.Skipped,
	}
}

// FixDocument applies the fixes carried by diagnostics.
// It returns false when no diagnostic carries a fix.
func FixDocument[D Fixable](diagnostics []D, loc source.Locator) (Result, bool) {
	fixes := collectFixes(diagnostics)
	if len(fixes) == 0 {
		return Result{}, false
	}
	return ApplyFixes(fixes, loc), true
}

// collectFixes returns nil without allocating when nothing is fixable.
func collectFixes[D Fixable](diagnostics []D) []Fix {
	var fixes []Fix
	for _, d := range diagnostics {
		if f, ok := d.SuggestedFix(); ok {
			if fixes == nil {
				fixes = make([]Fix, 0, len(diagnostics))
			}
			fixes = append(fixes, f)
		}
	}
	return fixes
}
