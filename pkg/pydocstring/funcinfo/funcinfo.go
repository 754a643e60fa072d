package funcinfo

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/ImGajeed76/pydocstring/pkg/pydocstring/scanner"
)

var (
	defHeader   = regexp.MustCompile(`^(?:async\s+)?def\s+([^\s(]+)\s*\(`)
	tupleHeader = regexp.MustCompile(`^(?:typing\.)?Tuple\s*\[`)
	newlineRun  = regexp.MustCompile(`[ \t]*\n[ \t\n]*`)
)

// FunctionInfo describes one function. It is filled in three steps:
// ParseDef with the signature, ParseDocstring and ParseBody with the lines
// below it.
type FunctionInfo struct {
	HasInfo    bool
	Name       string
	FuncIndent string
	ArgsText   string

	// Parallel slices, one entry per argument.
	ArgNames       []string
	ArgAnnotations []Optional
	ArgDefaults    []Optional

	// ReturnAnnotations is nil when the signature has no "->" clause.
	ReturnAnnotations []string

	ReturnValues []string
	Raises       []string
	HasYield     bool

	// Bindings holds simple literal assignments found in the body.
	Bindings map[string]string
	// Rebound holds the names changed in the body in a way that leaves their
	// literal unknown.
	Rebound map[string]bool

	Docstring        Docstring
	DocstringSummary Optional
}

// Arg is one positional slot of the argument list.
type Arg struct {
	Name       string
	Annotation Optional
	Default    Optional
}

// Args returns the arguments as triples.
func (f *FunctionInfo) Args() []Arg {
	args := make([]Arg, len(f.ArgNames))
	for i, name := range f.ArgNames {
		args[i] = Arg{Name: name, Annotation: f.ArgAnnotations[i], Default: f.ArgDefaults[i]}
	}
	return args
}

// HasReturnAnnotation reports whether the signature carried "-> T".
func (f *FunctionInfo) HasReturnAnnotation() bool {
	return f.ReturnAnnotations != nil
}

// ParseDef fills the signature fields from the joined header text. On a scan
// failure HasInfo stays false and the scan error is returned.
func ParseDef(text string) (*FunctionInfo, error) {
	info := &FunctionInfo{
		FuncIndent: text[:len(text)-len(strings.TrimLeft(text, " \t"))],
	}

	trimmed := strings.TrimSpace(text)
	m := defHeader.FindStringSubmatchIndex(trimmed)
	if m == nil {
		return info, fmt.Errorf("not a function header: %q", firstLine(trimmed))
	}
	info.Name = trimmed[m[2]:m[3]]

	s, err := scanner.New(trimmed)
	if err != nil {
		return info, fmt.Errorf("scan signature: %w", err)
	}

	open := m[1] - 1
	end, ok := s.Brackets[open]
	if !ok {
		return info, fmt.Errorf("scan signature: %w", scanner.ErrUnmatchedBracket)
	}
	info.ArgsText = trimmed[open+1 : end]

	rest := strings.TrimSpace(trimmed[end+1:])
	if strings.HasPrefix(rest, "->") {
		ann := strings.TrimSpace(strings.TrimSuffix(rest[2:], ":"))
		info.ReturnAnnotations = splitReturnAnnotation(strings.Join(strings.Fields(ann), " "))
	}

	if err := info.splitArgs(); err != nil {
		return info, err
	}
	info.HasInfo = true
	return info, nil
}

func (f *FunctionInfo) splitArgs() error {
	items, err := scanner.Split(f.ArgsText, ',')
	if err != nil {
		return fmt.Errorf("split arguments: %w", err)
	}

	for _, item := range items {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}

		arg, err := splitArg(item)
		if err != nil {
			return err
		}
		f.ArgNames = append(f.ArgNames, arg.Name)
		f.ArgAnnotations = append(f.ArgAnnotations, arg.Annotation)
		f.ArgDefaults = append(f.ArgDefaults, arg.Default)
	}
	return nil
}

// splitArg cuts one argument at its first top-level ":" and "=". A colon
// after the equals sign belongs to the default value.
func splitArg(item string) (Arg, error) {
	s, err := scanner.New(item)
	if err != nil {
		return Arg{}, fmt.Errorf("split argument %q: %w", item, err)
	}
	colon := s.Index(':')
	equal := s.Index('=')

	switch {
	case colon >= 0 && (equal < 0 || colon < equal):
		arg := Arg{Name: strings.TrimSpace(item[:colon])}
		if equal < 0 {
			arg.Annotation = Present(flatten(item[colon+1:]))
			return arg, nil
		}
		arg.Annotation = Present(flatten(item[colon+1 : equal]))
		arg.Default = Present(flatten(item[equal+1:]))
		return arg, nil
	case equal >= 0:
		return Arg{
			Name:    strings.TrimSpace(item[:equal]),
			Default: Present(flatten(item[equal+1:])),
		}, nil
	default:
		return Arg{Name: item}, nil
	}
}

// splitReturnAnnotation turns a collapsed annotation into its return types.
// Only Tuple[...] with at least two fixed items is split.
func splitReturnAnnotation(ann string) []string {
	loc := tupleHeader.FindStringIndex(ann)
	if loc == nil {
		return []string{ann}
	}

	s, err := scanner.New(ann)
	if err != nil {
		return []string{ann}
	}
	open := loc[1] - 1
	if end, ok := s.Brackets[open]; !ok || end != len(ann)-1 {
		return []string{ann}
	}

	items, err := scanner.Split(ann[open+1:len(ann)-1], ',')
	if err != nil {
		return []string{ann}
	}

	var types []string
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item == "..." {
			return []string{ann}
		}
		if item != "" {
			types = append(types, item)
		}
	}
	if len(types) < 2 {
		return []string{ann}
	}
	return types
}

// flatten joins a value that spans several lines into one line.
func flatten(s string) string {
	return strings.TrimSpace(newlineRun.ReplaceAllString(s, " "))
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
