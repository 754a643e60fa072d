package editor

import (
	"errors"
	"fmt"
	"strings"
)

// ErrReadOnly is returned by a TextBuffer that refuses edits.
var ErrReadOnly = errors.New("buffer is read-only")

// TextBuffer is an in-memory State. Columns are byte offsets.
type TextBuffer struct {
	lines    []string
	cursor   Position
	indent   string
	ReadOnly bool
}

// NewTextBuffer returns a buffer holding text, with the cursor at the start.
func NewTextBuffer(text, indentUnit string) *TextBuffer {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return &TextBuffer{lines: lines, indent: indentUnit}
}

func (b *TextBuffer) Lines() []string {
	return append([]string(nil), b.lines...)
}

func (b *TextBuffer) Cursor() Position {
	return b.cursor
}

func (b *TextBuffer) IndentUnit() string {
	return b.indent
}

// SetCursor moves the cursor, clamped to the buffer.
func (b *TextBuffer) SetCursor(p Position) {
	b.cursor = b.clamp(p)
}

// ReplaceRange swaps the text between from and to for text.
func (b *TextBuffer) ReplaceRange(from, to Position, text string) error {
	if b.ReadOnly {
		return ErrReadOnly
	}
	if !b.valid(from) || !b.valid(to) || to.Before(from) {
		return fmt.Errorf("invalid range %v-%v", from, to)
	}

	head := b.lines[from.Line][:from.Column]
	tail := b.lines[to.Line][to.Column:]
	replaced := strings.Split(head+text+tail, "\n")

	lines := make([]string, 0, len(b.lines)-(to.Line-from.Line)+len(replaced)-1)
	lines = append(lines, b.lines[:from.Line]...)
	lines = append(lines, replaced...)
	lines = append(lines, b.lines[to.Line+1:]...)
	b.lines = lines
	b.cursor = b.clamp(b.cursor)
	return nil
}

// String returns the buffer text.
func (b *TextBuffer) String() string {
	return strings.Join(b.lines, "\n")
}

func (b *TextBuffer) valid(p Position) bool {
	return p.Line >= 0 && p.Line < len(b.lines) && p.Column >= 0 && p.Column <= len(b.lines[p.Line])
}

func (b *TextBuffer) clamp(p Position) Position {
	p.Line = max(0, min(p.Line, len(b.lines)-1))
	p.Column = max(0, min(p.Column, len(b.lines[p.Line])))
	return p
}
