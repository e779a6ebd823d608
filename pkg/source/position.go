// Package source models positions in a text document and provides the
// Locator used to slice original text when assembling fixed output.
package source

import (
	"cmp"
	"fmt"
)

// Position is a point in a document.
// Line is 1-based. Column is 0-based and counts Unicode code points.
type Position struct {
	Line   int `json:"line" yaml:"line" toml:"line"`
	Column int `json:"column" yaml:"column" toml:"column"`
}

// Start returns the first position of every document.
func Start() Position {
	return Position{Line: 1, Column: 0}
}

// Compare orders positions lexicographically on (Line, Column).
// It returns -1, 0 or +1.
func (p Position) Compare(other Position) int {
	if c := cmp.Compare(p.Line, other.Line); c != 0 {
		return c
	}
	return cmp.Compare(p.Column, other.Column)
}

// Before reports whether p sorts strictly before other.
func (p Position) Before(other Position) bool {
	return p.Compare(other) < 0
}

// IsValid returns true if the position has a positive line and a non-negative column.
func (p Position) IsValid() bool {
	return p.Line >= 1 && p.Column >= 0
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Range is a half-open interval [Start, End) between two positions.
type Range struct {
	Start Position `json:"location" yaml:"location" toml:"location"`
	End   Position `json:"end_location" yaml:"end_location" toml:"end_location"`
}

// NewRange builds a range from line/column pairs.
func NewRange(startLine, startCol, endLine, endCol int) Range {
	return Range{
		Start: Position{Line: startLine, Column: startCol},
		End:   Position{Line: endLine, Column: endCol},
	}
}

// IsEmpty returns true if the range has zero width.
func (r Range) IsEmpty() bool {
	return r.Start == r.End
}

// IsOrdered returns true if Start does not come after End.
func (r Range) IsOrdered() bool {
	return r.Start.Compare(r.End) <= 0
}

// Overlaps reports whether two ranges share at least one position.
// Touching ranges do not overlap. An empty range overlaps a non-empty one
// only when it falls strictly inside it.
func (r Range) Overlaps(other Range) bool {
	return r.Start.Before(other.End) && other.Start.Before(r.End)
}

func (r Range) String() string {
	return fmt.Sprintf("[%s-%s)", r.Start, r.End)
}
