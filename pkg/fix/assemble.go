package fix

import (
	"strings"

	"github.com/yaklabco/autofix/pkg/source"
)

// assembler builds the fixed document by interleaving verbatim spans of the
// original text with replacement text. It is written once, then finished.
type assembler struct {
	loc    source.Locator
	out    strings.Builder
	cursor source.Position
}

func newAssembler(loc source.Locator, edits []Edit) *assembler {
	size := loc.Len()
	for _, e := range edits {
		size += len(e.Content)
	}

	a := &assembler{loc: loc, cursor: source.Start()}
	a.out.Grow(size)
	return a
}

// replace copies original text up to the edit, writes its content and moves
// past the replaced range. Edits must arrive in document order without overlap.
func (a *assembler) replace(e Edit) {
	a.out.WriteString(a.loc.Slice(source.Range{Start: a.cursor, End: e.Range.Start}))
	a.out.WriteString(e.Content)
	a.cursor = e.Range.End
}

// finish copies the remaining original text and returns the document.
func (a *assembler) finish() string {
	a.out.WriteString(a.loc.SliceFrom(a.cursor))
	return a.out.String()
}

// Assemble applies non-overlapping edits, sorted in document order, to the
// document behind loc.
func Assemble(loc source.Locator, edits []Edit) string {
	a := newAssembler(loc, edits)
	for _, e := range edits {
		a.replace(e)
	}
	return a.finish()
}
