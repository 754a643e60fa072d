package render

import (
	"strings"

	"github.com/ImGajeed76/pydocstring/pkg/pydocstring/classify"
	"github.com/ImGajeed76/pydocstring/pkg/pydocstring/funcinfo"
)

// Style selects the docstring layout.
type Style int

const (
	NumPy Style = iota
	Google
	Sphinx
)

func (s Style) String() string {
	switch s {
	case NumPy:
		return "numpy"
	case Google:
		return "google"
	case Sphinx:
		return "sphinx"
	default:
		return "unknown"
	}
}

// Placeholders left in the output for the user to fill in.
const (
	Summary     = "SUMMARY."
	Description = "DESCRIPTION."
	Type        = "TYPE"
)

// Renderer turns a FunctionInfo into docstring text. The quote kind decides
// both the closing delimiter and which triple quote gets swapped out of
// interpolated text.
type Renderer struct {
	quote3      string
	quote3Other string
	indentUnit  string
}

// New returns a Renderer for the given quote character and editor indent.
func New(quote byte, indentUnit string) *Renderer {
	r := &Renderer{
		quote3:      `"""`,
		quote3Other: `'''`,
		indentUnit:  indentUnit,
	}
	if quote == '\'' {
		r.quote3, r.quote3Other = r.quote3Other, r.quote3
	}
	return r
}

// Quote3 returns the closing delimiter the renderer emits.
func (r *Renderer) Quote3() string {
	return r.quote3
}

// Render produces what goes right after the opening triple quote: the
// summary line, the sections, and the closing quote on its own line.
func (r *Renderer) Render(style Style, info *funcinfo.FunctionInfo) string {
	d := doc{
		r:       r,
		info:    info,
		indent1: info.FuncIndent + r.indentUnit,
		args:    documentedArgs(info),
	}
	d.indent2 = d.indent1 + r.indentUnit

	var sections [][]string
	switch style {
	case Google:
		sections = d.google()
	case Sphinx:
		sections = d.sphinx()
	default:
		sections = d.numpy()
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(d.indent1)
	b.WriteString(r.safe(info.DocstringSummary.Or(Summary)))
	for _, lines := range sections {
		b.WriteString("\n\n")
		b.WriteString(strings.Join(lines, "\n"))
	}
	b.WriteString("\n\n")
	b.WriteString(d.indent1)
	b.WriteString(r.quote3)
	return b.String()
}

// safe swaps the delimiter's triple quote for the other kind.
func (r *Renderer) safe(s string) string {
	return strings.ReplaceAll(s, r.quote3, r.quote3Other)
}

type doc struct {
	r       *Renderer
	info    *funcinfo.FunctionInfo
	indent1 string
	indent2 string
	args    []funcinfo.Arg
}

// documentedArgs drops a leading self or cls and the bare "*" and "/"
// markers.
func documentedArgs(info *funcinfo.FunctionInfo) []funcinfo.Arg {
	var args []funcinfo.Arg
	for i, arg := range info.Args() {
		if i == 0 && (arg.Name == "self" || arg.Name == "cls") {
			continue
		}
		if arg.Name == "*" || arg.Name == "/" {
			continue
		}
		args = append(args, arg)
	}
	return args
}

// returnsNone reports whether the annotation is exactly None.
func (d *doc) returnsNone() bool {
	ann := d.info.ReturnAnnotations
	return len(ann) == 1 && ann[0] == "None"
}

func (d *doc) heading(numpy bool) string {
	switch {
	case d.info.HasYield && numpy:
		return "Yields"
	case d.info.HasYield:
		return "Yields:"
	case numpy:
		return "Returns"
	default:
		return "Returns:"
	}
}

func (d *doc) classify() classify.Result {
	return classify.Classify(d.info.ReturnValues, Bindings(d.info))
}

// Bindings merges literal parameter defaults with the literal assignments
// found in the body. A name bound to two different literals, or rebound in
// the body, is dropped.
func Bindings(info *funcinfo.FunctionInfo) map[string]string {
	merged := make(map[string]string)
	for i, name := range info.ArgNames {
		if info.Rebound[name] {
			continue
		}
		if value, ok := info.ArgDefaults[i].Value(); ok {
			merged[name] = value
		}
	}

	conflicts := make(map[string]bool)
	for name, value := range info.Bindings {
		if prev, ok := merged[name]; ok && prev != value {
			conflicts[name] = true
			continue
		}
		merged[name] = value
	}
	for name := range conflicts {
		delete(merged, name)
	}
	return merged
}

func rule(title string) string {
	return strings.Repeat("-", len(title))
}

func (d *doc) typeOf(arg funcinfo.Arg) string {
	return d.r.safe(arg.Annotation.Or(Type))
}
