package funcinfo

import (
	"strings"
)

// Docstring locates a docstring found below a signature. Line numbers are
// indexes into the lines passed to ParseDocstring.
type Docstring struct {
	Found  bool
	Closed bool
	Start  int
	End    int
	Prefix string
	Quote  string
}

var openers = []string{`"""`, `'''`}

// ParseDocstring looks for a docstring opener on the first line below the
// signature that is neither blank nor a comment. When one is found, the first
// non-empty line of its content becomes DocstringSummary. An opener that is
// never closed only contributes the text that follows it on its own line.
func (f *FunctionInfo) ParseDocstring(lines []string) {
	f.Docstring = Docstring{}
	f.DocstringSummary = Absent

	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		if len(indentOf(line)) <= len(f.FuncIndent) {
			return
		}

		prefix, quote, ok := docstringOpener(trimmed)
		if !ok {
			return
		}
		f.Docstring = Docstring{Found: true, Start: i, End: i, Prefix: prefix, Quote: quote}
		f.scanDocstring(lines, i, trimmed[len(prefix)+len(quote):])
		return
	}
}

func (f *FunctionInfo) scanDocstring(lines []string, start int, rest string) {
	quote := f.Docstring.Quote

	if end := strings.Index(rest, quote); end >= 0 {
		f.Docstring.Closed = true
		f.setSummary(rest[:end])
		return
	}
	f.setSummary(rest)

	for j := start + 1; j < len(lines); j++ {
		line := lines[j]
		if strings.TrimSpace(line) != "" && len(indentOf(line)) <= len(f.FuncIndent) {
			break
		}

		if end := strings.Index(line, quote); end >= 0 {
			f.setSummary(line[:end])
			f.Docstring.Closed = true
			f.Docstring.End = j
			return
		}
		f.setSummary(line)
	}

	// Unclosed: keep only what followed the opener on its own line.
	f.DocstringSummary = Absent
	f.setSummary(rest)
}

func (f *FunctionInfo) setSummary(text string) {
	if f.DocstringSummary.IsPresent() {
		return
	}
	if s := strings.TrimSpace(text); s != "" {
		f.DocstringSummary = Present(s)
	}
}

func docstringOpener(trimmed string) (prefix, quote string, ok bool) {
	if strings.HasPrefix(trimmed, "r") || strings.HasPrefix(trimmed, "R") {
		prefix = trimmed[:1]
	}
	for _, q := range openers {
		if strings.HasPrefix(trimmed[len(prefix):], q) {
			return prefix, q, true
		}
	}
	return "", "", false
}

func indentOf(line string) string {
	return line[:len(line)-len(strings.TrimLeft(line, " \t"))]
}
