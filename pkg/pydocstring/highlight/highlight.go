// Package highlight colours generated docstrings for terminal output.
package highlight

import (
	"regexp"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/ImGajeed76/pydocstring/internal"
	"github.com/ImGajeed76/pydocstring/pkg/pydocstring/render"
)

var (
	headingStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(internal.Theme.PrimaryColor))

	ruleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(internal.Theme.SecondaryColor))

	fieldStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#7AA2F7"))

	nameStyle = lipgloss.NewStyle().
			Bold(true)

	placeholderStyle = lipgloss.NewStyle().
				Italic(true).
				Foreground(lipgloss.Color(internal.Theme.ErrorColor))

	quoteStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#7C7C7C"))
)

// LineType classifies one line of a docstring.
type LineType int

const (
	PlainLine LineType = iota
	QuoteLine
	HeadingLine
	RuleLine
	FieldLine
	EntryLine
)

var (
	numpyHeading  = regexp.MustCompile(`^(Parameters|Returns|Yields|Raises)$`)
	googleHeading = regexp.MustCompile(`^(Args|Returns|Yields|Raises):$`)
	ruleLine      = regexp.MustCompile(`^-+$`)
	sphinxField   = regexp.MustCompile(`^(:(?:param|type|return|yield|rtype|raises)(?:\s+[^:]+)?:)(.*)$`)
	entryLine     = regexp.MustCompile(`^([*\w.]+)(\s*(?:\(|:\s).*)$`)
	placeholders  = regexp.MustCompile(regexp.QuoteMeta(render.Summary) + "|" +
		regexp.QuoteMeta(render.Description) + "|" + `\b` + regexp.QuoteMeta(render.Type) + `\b`)
)

// Classify returns the type of each line.
func Classify(lines []string) []LineType {
	types := make([]LineType, len(lines))
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		switch {
		case trimmed == `"""` || trimmed == `'''`:
			types[i] = QuoteLine
		case numpyHeading.MatchString(trimmed) && i+1 < len(lines) && ruleLine.MatchString(strings.TrimSpace(lines[i+1])):
			types[i] = HeadingLine
		case googleHeading.MatchString(trimmed):
			types[i] = HeadingLine
		case ruleLine.MatchString(trimmed) && i > 0 && types[i-1] == HeadingLine:
			types[i] = RuleLine
		case sphinxField.MatchString(trimmed):
			types[i] = FieldLine
		case entryLine.MatchString(trimmed) && i > 0 && types[i-1] != PlainLine && types[i-1] != QuoteLine:
			types[i] = EntryLine
		default:
			types[i] = PlainLine
		}
	}
	return types
}

// Docstring colours text produced by the renderer. Stripped of escape
// sequences the result equals text.
func Docstring(text string) string {
	lines := strings.Split(text, "\n")
	types := Classify(lines)

	for i, line := range lines {
		indent := line[:len(line)-len(strings.TrimLeft(line, " \t"))]
		body := line[len(indent):]
		if body == "" {
			continue
		}

		switch types[i] {
		case QuoteLine:
			body = quoteStyle.Render(body)
		case HeadingLine:
			body = headingStyle.Render(body)
		case RuleLine:
			body = ruleStyle.Render(body)
		case FieldLine:
			m := sphinxField.FindStringSubmatch(body)
			body = fieldStyle.Render(m[1]) + placeholdersIn(m[2])
		case EntryLine:
			m := entryLine.FindStringSubmatch(body)
			body = nameStyle.Render(m[1]) + placeholdersIn(m[2])
		default:
			body = placeholdersIn(body)
		}
		lines[i] = indent + body
	}
	return strings.Join(lines, "\n")
}

func placeholdersIn(s string) string {
	return placeholders.ReplaceAllStringFunc(s, func(p string) string {
		return placeholderStyle.Render(p)
	})
}
