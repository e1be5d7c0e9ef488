// Package buffer holds the editable document: one string plus a byte-offset
// cursor that always sits on a rune boundary.
//
// Rows are counted in line breaks, columns in runes.
package buffer

import (
	"strings"
	"unicode/utf8"
)

// Location is the 0-based row and rune column of the cursor.
type Location struct {
	Row int
	Col int
}

type Buffer struct {
	text   string
	cursor int
}

// New returns a buffer holding text with the cursor at the start. Invalid
// UTF-8 is replaced with U+FFFD.
func New(text string) *Buffer {
	return &Buffer{text: strings.ToValidUTF8(text, string(utf8.RuneError))}
}

func (b *Buffer) Text() string { return b.text }

func (b *Buffer) Len() int { return len(b.text) }

// Cursor returns the cursor as a byte offset into Text.
func (b *Buffer) Cursor() int { return b.cursor }

func (b *Buffer) SetCursor(offset int) {
	b.cursor = b.Clamp(offset)
}

// Clamp bounds offset into [0, Len()] and moves it back to the start of the
// rune it points into.
func (b *Buffer) Clamp(offset int) int {
	if offset <= 0 {
		return 0
	}
	if offset >= len(b.text) {
		return len(b.text)
	}
	for offset > 0 && !utf8.RuneStart(b.text[offset]) {
		offset--
	}
	return offset
}

// Location derives row and column from the text before the cursor. A cursor
// sitting right after a line break is at column 0 of the next row.
func (b *Buffer) Location() Location {
	prefix := b.text[:b.cursor]
	lineStart := strings.LastIndexByte(prefix, '\n') + 1
	return Location{
		Row: strings.Count(prefix, "\n"),
		Col: utf8.RuneCountInString(prefix[lineStart:]),
	}
}

func (b *Buffer) MoveLeft() {
	if b.cursor == 0 {
		return
	}
	_, size := utf8.DecodeLastRuneInString(b.text[:b.cursor])
	b.cursor = b.Clamp(b.cursor - size)
}

func (b *Buffer) MoveRight() {
	if b.cursor >= len(b.text) {
		return
	}
	_, size := utf8.DecodeRuneInString(b.text[b.cursor:])
	b.cursor = b.Clamp(b.cursor + size)
}

// MoveUp keeps the column when the previous line is long enough and lands
// on its end otherwise.
func (b *Buffer) MoveUp() {
	loc := b.Location()
	if loc.Row == 0 {
		return
	}
	b.cursor = b.offsetAt(loc.Row-1, loc.Col)
}

func (b *Buffer) MoveDown() {
	loc := b.Location()
	if loc.Row >= b.LineCount()-1 {
		return
	}
	b.cursor = b.offsetAt(loc.Row+1, loc.Col)
}

func (b *Buffer) MoveLineStart() {
	b.cursor = b.lineStart(b.Location().Row)
}

func (b *Buffer) MoveLineEnd() {
	row := b.Location().Row
	b.cursor = b.Clamp(b.lineStart(row) + len(b.Line(row)))
}

// Insert splices r in at the cursor and advances past it. A line break is
// inserted like any other rune.
func (b *Buffer) Insert(r rune) {
	if !utf8.ValidRune(r) {
		r = utf8.RuneError
	}
	s := string(r)
	b.text = b.text[:b.cursor] + s + b.text[b.cursor:]
	b.cursor = b.Clamp(b.cursor + len(s))
}

// InsertString splices s at the cursor and moves the cursor past it.
func (b *Buffer) InsertString(s string) {
	if s == "" {
		return
	}
	s = strings.ToValidUTF8(s, string(utf8.RuneError))
	b.text = b.text[:b.cursor] + s + b.text[b.cursor:]
	b.cursor = b.Clamp(b.cursor + len(s))
}

// Backspace removes the rune before the cursor.
func (b *Buffer) Backspace() {
	if b.cursor == 0 {
		return
	}
	_, size := utf8.DecodeLastRuneInString(b.text[:b.cursor])
	start := b.cursor - size
	b.text = b.text[:start] + b.text[b.cursor:]
	b.cursor = b.Clamp(start)
}

// LineCount is the number of break-separated lines; a trailing break starts
// an empty last line.
func (b *Buffer) LineCount() int {
	return strings.Count(b.text, "\n") + 1
}

// Line returns row without its line break, or "" when row is out of range.
func (b *Buffer) Line(row int) string {
	if row < 0 || row >= b.LineCount() {
		return ""
	}
	start := b.lineStart(row)
	end := strings.IndexByte(b.text[start:], '\n')
	if end < 0 {
		return b.text[start:]
	}
	return b.text[start : start+end]
}

func (b *Buffer) Lines() []string {
	return strings.Split(b.text, "\n")
}

func (b *Buffer) lineStart(row int) int {
	off := 0
	for i := 0; i < row; i++ {
		j := strings.IndexByte(b.text[off:], '\n')
		if j < 0 {
			return len(b.text)
		}
		off += j + 1
	}
	return off
}

// offsetAt maps a rune column on row to a byte offset, clamped to the end of
// that line.
func (b *Buffer) offsetAt(row, col int) int {
	line := b.Line(row)
	off := 0
	for i := 0; i < col && off < len(line); i++ {
		_, size := utf8.DecodeRuneInString(line[off:])
		off += size
	}
	return b.Clamp(b.lineStart(row) + off)
}
