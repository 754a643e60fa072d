package locator

import (
	"regexp"
	"strings"

	"github.com/ImGajeed76/pydocstring/pkg/pydocstring/scanner"
)

// Scan limits for a single signature.
const (
	MaxLines = 1000
	MaxChars = 120000
)

var (
	defStart  = regexp.MustCompile(`^\s*(?:async\s+)?def\s`)
	defHeader = regexp.MustCompile(`^(?:async\s+)?def\s+[^\s(]+\s*\(`)
)

// Signature is the logically joined text of one function header.
// Comments are removed and backslash continuations are joined without
// a newline.
type Signature struct {
	Text      string
	Indent    string
	StartLine int
	EndLine   int
}

// Lines returns how many buffer lines the signature spans.
func (s Signature) Lines() int {
	return s.EndLine - s.StartLine + 1
}

// IsStartOfFunction reports whether line opens a def or async def.
func IsStartOfFunction(line string) bool {
	return defStart.MatchString(line)
}

// Indent returns the leading spaces and tabs of line.
func Indent(line string) string {
	return line[:len(line)-len(strings.TrimLeft(line, " \t"))]
}

// Complete reports whether text is a whole function header: it is balanced,
// and what follows the closing parenthesis of the argument list is either a
// bare colon or a non-empty return annotation followed by a colon.
func Complete(text string) bool {
	trimmed := strings.TrimSpace(text)
	if !strings.HasSuffix(trimmed, ":") {
		return false
	}

	loc := defHeader.FindStringIndex(trimmed)
	if loc == nil {
		return false
	}

	s, err := scanner.New(trimmed)
	if err != nil {
		return false
	}
	end, ok := s.Brackets[loc[1]-1]
	if !ok {
		return false
	}

	rest := strings.TrimSpace(trimmed[end+1:])
	if rest == ":" {
		return true
	}
	if !strings.HasPrefix(rest, "->") {
		return false
	}
	return strings.TrimSpace(strings.TrimSuffix(rest[2:], ":")) != ""
}

// FromFirstLine reads the signature that starts on line. A cursor on a
// decorator is moved forward to the def it decorates.
func FromFirstLine(lines []string, line int) (Signature, bool) {
	if line < 0 || line >= len(lines) {
		return Signature{}, false
	}

	start, ok := skipDecorators(lines, line)
	if !ok {
		return Signature{}, false
	}
	return forward(lines, start)
}

// FromBelowLastLine reads the signature whose last line is the one just
// above line.
func FromBelowLastLine(lines []string, line int) (Signature, bool) {
	if line <= 0 || line > len(lines) {
		return Signature{}, false
	}

	last := strings.TrimSpace(scanner.StripComment(lines[line-1]))
	if !strings.HasSuffix(last, ":") {
		return Signature{}, false
	}

	chars := 0
	for i := line - 1; i >= 0 && line-i <= MaxLines; i-- {
		chars += len(lines[i])
		if chars > MaxChars {
			return Signature{}, false
		}
		if !IsStartOfFunction(lines[i]) {
			continue
		}

		sig, ok := forward(lines, i)
		if !ok || sig.EndLine != line-1 {
			return Signature{}, false
		}
		return sig, true
	}

	return Signature{}, false
}

// Body returns the lines below the signature that belong to the function,
// stopping before the first non-blank line indented no deeper than the def.
// Trailing blank lines are not included.
func Body(lines []string, sig Signature) []string {
	if sig.EndLine+1 >= len(lines) {
		return nil
	}

	end := sig.EndLine + 1
	for i := sig.EndLine + 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == "" {
			continue
		}
		if len(Indent(lines[i])) <= len(sig.Indent) {
			break
		}
		end = i + 1
	}
	return lines[sig.EndLine+1 : end]
}

func skipDecorators(lines []string, line int) (int, bool) {
	seen := false
	for i := line; i < len(lines) && i-line < MaxLines; i++ {
		trimmed := strings.TrimSpace(scanner.StripComment(lines[i]))
		switch {
		case IsStartOfFunction(lines[i]):
			return i, true
		case trimmed == "" && seen:
			continue
		case !strings.HasPrefix(trimmed, "@"):
			return 0, false
		}

		seen = true
		text := trimmed
		for !scanner.Balanced(text) && i+1 < len(lines) && i-line < MaxLines {
			i++
			text += "\n" + scanner.StripComment(lines[i])
		}
	}
	return 0, false
}

func forward(lines []string, start int) (Signature, bool) {
	if !IsStartOfFunction(lines[start]) {
		return Signature{}, false
	}
	indent := Indent(lines[start])

	var text strings.Builder
	for i := start; i < len(lines) && i-start < MaxLines; i++ {
		cur := strings.TrimRight(scanner.StripComment(lines[i]), " \t\r")

		if i > start {
			curIndent := len(Indent(cur))
			switch {
			case strings.TrimSpace(cur) == "":
				if scanner.Balanced(text.String()) {
					return Signature{}, false
				}
				continue
			case curIndent < len(indent):
				return Signature{}, false
			case curIndent <= len(indent) && IsStartOfFunction(cur):
				return Signature{}, false
			}
		}

		joined := strings.HasSuffix(cur, "\\")
		if joined {
			cur = strings.TrimSuffix(cur, "\\")
		}
		text.WriteString(cur)
		if text.Len() > MaxChars {
			return Signature{}, false
		}

		if joined {
			continue
		}
		if strings.HasSuffix(cur, ":") && Complete(text.String()) {
			return Signature{
				Text:      text.String(),
				Indent:    indent,
				StartLine: start,
				EndLine:   i,
			}, true
		}
		text.WriteString("\n")
	}

	return Signature{}, false
}
