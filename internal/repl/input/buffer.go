// Package input implements line reading for the console: a Bubble Tea line
// editor for interactive terminals and a plain reader for everything else.
package input

import "unicode"

// Buffer holds the line being edited as runes plus a cursor position.
// The cursor sits between runes, so valid positions run from 0 to Len().
type Buffer struct {
	text []rune
	pos  int
}

// NewBuffer returns an empty buffer.
func NewBuffer() *Buffer {
	return &Buffer{}
}

// NewBufferWithText returns a buffer holding text with the cursor at the end.
func NewBufferWithText(text string) *Buffer {
	b := &Buffer{}
	b.SetText(text)
	return b
}

func (b *Buffer) Text() string { return string(b.text) }
func (b *Buffer) Len() int     { return len(b.text) }
func (b *Buffer) Pos() int     { return b.pos }

// Runes returns a copy of the buffer contents.
func (b *Buffer) Runes() []rune {
	out := make([]rune, len(b.text))
	copy(out, b.text)
	return out
}

// SetText replaces the contents and moves the cursor to the end.
func (b *Buffer) SetText(text string) {
	b.text = []rune(text)
	b.pos = len(b.text)
}

func (b *Buffer) Clear() {
	b.text = b.text[:0]
	b.pos = 0
}

// SetPos moves the cursor, clamping to the valid range.
func (b *Buffer) SetPos(pos int) {
	b.pos = max(0, min(pos, len(b.text)))
}

func (b *Buffer) CursorStart() { b.pos = 0 }
func (b *Buffer) CursorEnd()   { b.pos = len(b.text) }

func (b *Buffer) CursorLeft() {
	if b.pos > 0 {
		b.pos--
	}
}

func (b *Buffer) CursorRight() {
	if b.pos < len(b.text) {
		b.pos++
	}
}

// Insert places runes at the cursor and advances past them.
func (b *Buffer) Insert(runes []rune) {
	if len(runes) == 0 {
		return
	}
	out := make([]rune, 0, len(b.text)+len(runes))
	out = append(out, b.text[:b.pos]...)
	out = append(out, runes...)
	out = append(out, b.text[b.pos:]...)
	b.text = out
	b.pos += len(runes)
}

// deleteRange removes text[from:to] and leaves the cursor at from.
func (b *Buffer) deleteRange(from, to int) {
	if from >= to {
		return
	}
	b.text = append(b.text[:from], b.text[to:]...)
	b.pos = from
}

func (b *Buffer) DeleteBackward() {
	if b.pos > 0 {
		b.deleteRange(b.pos-1, b.pos)
	}
}

func (b *Buffer) DeleteForward() {
	if b.pos < len(b.text) {
		b.deleteRange(b.pos, b.pos+1)
	}
}

// KillToStart deletes everything before the cursor (Ctrl+U).
func (b *Buffer) KillToStart() {
	b.deleteRange(0, b.pos)
}

// KillToEnd deletes everything after the cursor (Ctrl+K).
func (b *Buffer) KillToEnd() {
	b.text = b.text[:b.pos]
}

func (b *Buffer) DeleteWordBackward() {
	b.deleteRange(b.wordStart(), b.pos)
}

func (b *Buffer) DeleteWordForward() {
	end := b.wordEnd()
	b.deleteRange(b.pos, end)
}

func (b *Buffer) WordBackward() { b.pos = b.wordStart() }
func (b *Buffer) WordForward()  { b.pos = b.wordEnd() }

// Words are runs of identifier characters. Any other non-space rune, such as
// an operator or bracket, counts as a word of its own.
func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

func (b *Buffer) wordStart() int {
	i := b.pos
	for i > 0 && unicode.IsSpace(b.text[i-1]) {
		i--
	}
	if i > 0 && !isWordRune(b.text[i-1]) {
		return i - 1
	}
	for i > 0 && isWordRune(b.text[i-1]) {
		i--
	}
	return i
}

func (b *Buffer) wordEnd() int {
	i := b.pos
	n := len(b.text)
	for i < n && unicode.IsSpace(b.text[i]) {
		i++
	}
	if i < n && !isWordRune(b.text[i]) {
		return i + 1
	}
	for i < n && isWordRune(b.text[i]) {
		i++
	}
	return i
}
