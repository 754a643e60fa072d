// Package editor inserts generated docstrings into an editor buffer.
package editor

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ImGajeed76/pydocstring/pkg/pydocstring"
	"github.com/ImGajeed76/pydocstring/pkg/pydocstring/locator"
	"github.com/ImGajeed76/pydocstring/pkg/pydocstring/log"
)

// ErrInsertionFailed wraps the error of an editor that refused an edit.
var ErrInsertionFailed = errors.New("docstring insertion failed")

// Position is a 0-based line and column.
type Position struct {
	Line   int
	Column int
}

// Before reports whether p comes strictly before q.
func (p Position) Before(q Position) bool {
	return p.Line < q.Line || (p.Line == q.Line && p.Column < q.Column)
}

// State is the part of an editor the docstring writer talks to.
type State interface {
	Lines() []string
	Cursor() Position
	IndentUnit() string
	ReplaceRange(from, to Position, text string) error
	SetCursor(Position)
}

// Triggered reports whether the text before the cursor on its line is a
// bare triple-quote opener with nothing after the cursor.
func Triggered(s State) bool {
	_, ok := triggerQuote(s)
	return ok
}

func triggerQuote(s State) (byte, bool) {
	lines := s.Lines()
	cur := s.Cursor()
	if cur.Line < 0 || cur.Line >= len(lines) || cur.Column > len(lines[cur.Line]) {
		return 0, false
	}
	line := lines[cur.Line]
	if strings.TrimSpace(line[cur.Column:]) != "" {
		return 0, false
	}

	before := strings.TrimSpace(line[:cur.Column])
	for _, t := range pydocstring.Openers {
		if before == t {
			return t[len(t)-1], true
		}
	}
	return 0, false
}

// WriteDocstringAtCursor generates and inserts a docstring. If the user just
// typed a triple-quote opener as the first body line, the docstring is
// completed there. Otherwise the function is searched at or above the
// cursor, an existing docstring is regenerated in place keeping its summary,
// and a missing one is added below the signature. The caret ends on the
// summary line. It returns false when no function is found.
func WriteDocstringAtCursor(s State, opts pydocstring.Options) (bool, error) {
	opts.Logger = log.Nop(opts.Logger)
	if unit := s.IndentUnit(); unit != "" {
		opts.IndentUnit = unit
	}

	if quote, ok := triggerQuote(s); ok {
		opts.Quote = quote
		return writeAfterOpener(s, opts)
	}
	return writeForShortcut(s, opts)
}

func writeAfterOpener(s State, opts pydocstring.Options) (bool, error) {
	cur := s.Cursor()
	doc, ok, err := pydocstring.GenerateDocstring(strings.Join(s.Lines(), "\n"), cur.Line, opts)
	if err != nil || !ok {
		return false, err
	}

	if err := s.ReplaceRange(cur, cur, doc); err != nil {
		return false, fmt.Errorf("%w: %w", ErrInsertionFailed, err)
	}
	placeCaret(s, cur.Line+1)
	return true, nil
}

func writeForShortcut(s State, opts pydocstring.Options) (bool, error) {
	lines := s.Lines()
	sig, ok := locateForShortcut(lines, s.Cursor().Line)
	if !ok {
		opts.Logger.Debugw("no function for docstring shortcut", "line", s.Cursor().Line)
		return false, nil
	}

	fn, err := pydocstring.Analyze(lines, sig)
	if err != nil {
		opts.Logger.Debugw("unparseable signature", "line", sig.StartLine, "error", err)
		return false, nil
	}

	ds := fn.Info.Docstring
	if !ds.Found {
		if opts.Quote == 0 {
			opts.Quote = '"'
		}
		doc, err := pydocstring.Render(fn, opts)
		if err != nil {
			return false, err
		}
		quote3 := strings.Repeat(string(opts.Quote), 3)
		at := Position{Line: sig.EndLine, Column: len(lines[sig.EndLine])}
		text := "\n" + fn.Info.FuncIndent + opts.IndentUnit + quote3 + doc
		if err := s.ReplaceRange(at, at, text); err != nil {
			return false, fmt.Errorf("%w: %w", ErrInsertionFailed, err)
		}
		placeCaret(s, sig.EndLine+2)
		return true, nil
	}

	opts.Quote = ds.Quote[0]
	doc, err := pydocstring.Render(fn, opts)
	if err != nil {
		return false, err
	}

	startLine := fn.BodyStart + ds.Start
	opener := ds.Prefix + ds.Quote
	from := Position{Line: startLine, Column: strings.Index(lines[startLine], opener) + len(opener)}

	to := Position{Line: startLine, Column: len(lines[startLine])}
	if ds.Closed {
		to.Line = fn.BodyStart + ds.End
		searchFrom := 0
		if to.Line == from.Line {
			searchFrom = from.Column
		}
		to.Column = searchFrom + strings.Index(lines[to.Line][searchFrom:], ds.Quote) + len(ds.Quote)
	}

	if err := s.ReplaceRange(from, to, doc); err != nil {
		return false, fmt.Errorf("%w: %w", ErrInsertionFailed, err)
	}
	placeCaret(s, startLine+1)
	return true, nil
}

// locateForShortcut accepts a cursor on a def or decorator line, on the
// line right below a signature, or on the last line of a signature.
func locateForShortcut(lines []string, line int) (locator.Signature, bool) {
	if sig, ok := pydocstring.Locate(lines, line); ok {
		return sig, true
	}
	if sig, ok := locator.FromBelowLastLine(lines, line+1); ok {
		return sig, true
	}
	return locator.Signature{}, false
}

// placeCaret puts the cursor at the end of the summary line.
func placeCaret(s State, line int) {
	lines := s.Lines()
	if line >= len(lines) {
		return
	}
	s.SetCursor(Position{Line: line, Column: len(lines[line])})
}
