package source

import (
	"fmt"
	"unicode/utf8"
)

// Locator returns verbatim text of the original document.
// Implementations are read-only and safe for concurrent use.
type Locator interface {
	// Slice returns the text covered by r.
	Slice(r Range) string

	// SliceFrom returns the text from pos to the end of the document.
	SliceFrom(pos Position) string

	// Len returns the document length in bytes.
	Len() int
}

// line describes one line of the document as byte offsets.
type line struct {
	// start is the offset of the first byte of the line.
	start int

	// contentEnd is the offset of the line terminator (or end of document).
	contentEnd int
}

// TextLocator indexes a document by line so that positions can be converted
// to byte offsets. It handles LF and CRLF line endings.
type TextLocator struct {
	text  string
	lines []line
}

// NewTextLocator builds a locator over text.
func NewTextLocator(text string) *TextLocator {
	return &TextLocator{
		text:  text,
		lines: buildLines(text),
	}
}

// buildLines returns the line table. A document always has at least one line,
// and a trailing newline opens an empty final line.
func buildLines(text string) []line {
	lines := make([]line, 0, 64)
	lineStart := 0

	for idx := 0; idx < len(text); idx++ {
		if text[idx] != '\n' {
			continue
		}
		contentEnd := idx
		if idx > lineStart && text[idx-1] == '\r' {
			contentEnd = idx - 1
		}
		lines = append(lines, line{start: lineStart, contentEnd: contentEnd})
		lineStart = idx + 1
	}

	return append(lines, line{start: lineStart, contentEnd: len(text)})
}

// Text returns the full document.
func (l *TextLocator) Text() string {
	return l.text
}

// Len returns the document length in bytes.
func (l *TextLocator) Len() int {
	return len(l.text)
}

// LineCount returns the number of lines, counting the empty line after a
// trailing newline.
func (l *TextLocator) LineCount() int {
	return len(l.lines)
}

// Offset converts a position to a byte offset.
// The column may point at the end of the line's content but not into its
// terminator. Returns (0, false) if the position is outside the document.
func (l *TextLocator) Offset(pos Position) (int, bool) {
	if pos.Line < 1 || pos.Line > len(l.lines) || pos.Column < 0 {
		return 0, false
	}

	ln := l.lines[pos.Line-1]
	offset := ln.start
	for range pos.Column {
		if offset >= ln.contentEnd {
			return 0, false
		}
		_, size := utf8.DecodeRuneInString(l.text[offset:ln.contentEnd])
		offset += size
	}

	return offset, true
}

// Contains reports whether both endpoints of r fall inside the document and
// r is ordered.
func (l *TextLocator) Contains(r Range) bool {
	start, ok := l.Offset(r.Start)
	if !ok {
		return false
	}
	end, ok := l.Offset(r.End)
	if !ok {
		return false
	}
	return start <= end
}

// Slice returns the text covered by r.
// It panics if r is not contained in the document.
func (l *TextLocator) Slice(r Range) string {
	start := l.mustOffset(r.Start)
	end := l.mustOffset(r.End)
	if end < start {
		panic(fmt.Sprintf("source: inverted range %s", r))
	}
	return l.text[start:end]
}

// SliceFrom returns the text from pos to the end of the document.
// It panics if pos is outside the document.
func (l *TextLocator) SliceFrom(pos Position) string {
	return l.text[l.mustOffset(pos):]
}

func (l *TextLocator) mustOffset(pos Position) int {
	offset, ok := l.Offset(pos)
	if !ok {
		panic(fmt.Sprintf("source: position %s outside document of %d lines", pos, len(l.lines)))
	}
	return offset
}
