package scanner

import (
	"errors"
	"strconv"
	"strings"
)

var (
	ErrUnmatchedBracket = errors.New("unmatched bracket")
	ErrUnmatchedQuote   = errors.New("unmatched quote")
)

// ScanError reports where in the scanned text a scan failed.
type ScanError struct {
	Op  string
	Pos int
	Err error
}

func (e *ScanError) Error() string {
	if e.Err == nil {
		return e.Op + " at " + strconv.Itoa(e.Pos)
	}
	return e.Op + " at " + strconv.Itoa(e.Pos) + ": " + e.Err.Error()
}

func (e *ScanError) Unwrap() error {
	return e.Err
}

var closers = map[byte]byte{
	'(': ')',
	'[': ']',
	'{': '}',
}

// Quotes maps the index of every quote run opener to the index of the last
// character of its closer. Triple quotes count as one opener of length three.
// A backslash escapes the character that follows it inside a run.
func Quotes(text string) (map[int]int, error) {
	quotes := make(map[int]int)

	for i := 0; i < len(text); i++ {
		c := text[i]
		if c != '\'' && c != '"' {
			continue
		}

		start := i
		width := 1
		if i+2 < len(text) && text[i+1] == c && text[i+2] == c {
			width = 3
		}

		closed := false
		for i += width; i < len(text); i++ {
			if text[i] == '\\' {
				i++
				continue
			}
			if text[i] != c {
				continue
			}
			if width == 1 {
				closed = true
				break
			}
			if i+2 < len(text) && text[i+1] == c && text[i+2] == c {
				i += 2
				closed = true
				break
			}
		}

		if !closed {
			return nil, &ScanError{Op: "quotes", Pos: start, Err: ErrUnmatchedQuote}
		}
		quotes[start] = i
	}

	return quotes, nil
}

// Brackets maps every open bracket of one kind to its matching close,
// ignoring bracket characters that fall inside the given quote runs.
func Brackets(text string, open, closing byte, quotes map[int]int) (map[int]int, error) {
	pairs := make(map[int]int)
	var stack []int

	for i := 0; i < len(text); i++ {
		if end, ok := quotes[i]; ok {
			i = end
			continue
		}

		switch text[i] {
		case open:
			stack = append(stack, i)
		case closing:
			if len(stack) == 0 {
				return nil, &ScanError{Op: "brackets", Pos: i, Err: ErrUnmatchedBracket}
			}
			pairs[stack[len(stack)-1]] = i
			stack = stack[:len(stack)-1]
		}
	}

	if len(stack) > 0 {
		return nil, &ScanError{Op: "brackets", Pos: stack[len(stack)-1], Err: ErrUnmatchedBracket}
	}
	return pairs, nil
}

// AllBrackets matches (), [] and {} with a single stack, so that
// interleaved kinds such as "(]" are reported as unmatched.
func AllBrackets(text string, quotes map[int]int) (map[int]int, error) {
	pairs := make(map[int]int)
	var stack []int

	for i := 0; i < len(text); i++ {
		if end, ok := quotes[i]; ok {
			i = end
			continue
		}

		c := text[i]
		if _, ok := closers[c]; ok {
			stack = append(stack, i)
			continue
		}
		if c != ')' && c != ']' && c != '}' {
			continue
		}
		if len(stack) == 0 || closers[text[stack[len(stack)-1]]] != c {
			return nil, &ScanError{Op: "brackets", Pos: i, Err: ErrUnmatchedBracket}
		}
		pairs[stack[len(stack)-1]] = i
		stack = stack[:len(stack)-1]
	}

	if len(stack) > 0 {
		return nil, &ScanError{Op: "brackets", Pos: stack[len(stack)-1], Err: ErrUnmatchedBracket}
	}
	return pairs, nil
}

// Scan holds the quote runs and bracket pairs of a text.
type Scan struct {
	Text     string
	Quotes   map[int]int
	Brackets map[int]int
}

// New scans text and fails if any quote or bracket is left open.
func New(text string) (*Scan, error) {
	quotes, err := Quotes(text)
	if err != nil {
		return nil, err
	}
	brackets, err := AllBrackets(text, quotes)
	if err != nil {
		return nil, err
	}
	return &Scan{Text: text, Quotes: quotes, Brackets: brackets}, nil
}

// Balanced reports whether every quote run and bracket in text is closed.
func Balanced(text string) bool {
	_, err := New(text)
	return err == nil
}

// TopLevel marks the characters that are outside every quote run and
// bracket pair. Brackets and quotes themselves are never top level.
func (s *Scan) TopLevel() []bool {
	mask := make([]bool, len(s.Text))
	for i := 0; i < len(s.Text); i++ {
		if end, ok := s.Quotes[i]; ok {
			i = end
			continue
		}
		if end, ok := s.Brackets[i]; ok {
			i = end
			continue
		}
		mask[i] = true
	}
	return mask
}

// Index returns the first top-level index of sep, or -1.
func (s *Scan) Index(sep byte) int {
	mask := s.TopLevel()
	for i := 0; i < len(s.Text); i++ {
		if mask[i] && s.Text[i] == sep {
			return i
		}
	}
	return -1
}

// Count returns how many top-level occurrences of sep the text has.
func (s *Scan) Count(sep byte) int {
	mask := s.TopLevel()
	n := 0
	for i := 0; i < len(s.Text); i++ {
		if mask[i] && s.Text[i] == sep {
			n++
		}
	}
	return n
}

// Split cuts the text around every top-level sep. Items are not trimmed.
func (s *Scan) Split(sep byte) []string {
	mask := s.TopLevel()
	var items []string
	last := 0
	for i := 0; i < len(s.Text); i++ {
		if mask[i] && s.Text[i] == sep {
			items = append(items, s.Text[last:i])
			last = i + 1
		}
	}
	return append(items, s.Text[last:])
}

// Split is a shorthand for New followed by Scan.Split.
func Split(text string, sep byte) ([]string, error) {
	s, err := New(text)
	if err != nil {
		return nil, err
	}
	return s.Split(sep), nil
}

// StripComment removes a trailing "#" comment from a single line, leaving
// hashes inside string literals alone. Trailing whitespace is trimmed when a
// comment was removed.
func StripComment(line string) string {
	var quote byte
	for i := 0; i < len(line); i++ {
		c := line[i]
		switch {
		case quote != 0 && c == '\\':
			i++
		case quote != 0 && c == quote:
			quote = 0
		case quote != 0:
		case c == '\'' || c == '"':
			quote = c
		case c == '#':
			return strings.TrimRight(line[:i], " \t")
		}
	}
	return line
}
