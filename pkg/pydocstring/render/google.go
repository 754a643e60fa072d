package render

import (
	"strings"

	"github.com/ImGajeed76/pydocstring/pkg/pydocstring/classify"
)

func (d *doc) google() [][]string {
	var sections [][]string
	if len(d.args) > 0 {
		lines := []string{d.indent1 + "Args:"}
		for _, arg := range d.args {
			typ := d.typeOf(arg)
			line := d.indent2 + d.r.safe(arg.Name) + " ("
			if def, ok := arg.Default.Value(); ok {
				line += typ + ", optional): " + Description + " Defaults to " + d.r.safe(def) + "."
			} else {
				line += typ + "): " + Description
			}
			lines = append(lines, line)
		}
		sections = append(sections, lines)
	}

	sections = append(sections, append([]string{d.indent1 + d.heading(false)}, d.googleReturns()...))

	if len(d.info.Raises) > 0 {
		lines := []string{d.indent1 + "Raises:"}
		for _, cls := range d.info.Raises {
			lines = append(lines, d.indent2+d.r.safe(cls)+": "+Description)
		}
		sections = append(sections, lines)
	}
	return sections
}

func (d *doc) googleReturns() []string {
	if d.info.HasReturnAnnotation() {
		ann := d.info.ReturnAnnotations
		switch {
		case d.returnsNone():
			return []string{d.indent2 + "None"}
		case len(ann) == 1:
			return []string{d.indent2 + d.r.safe(ann[0]) + ": " + Description}
		default:
			return []string{d.indent2 + "tuple[" + d.r.safe(strings.Join(ann, ", ")) + "]: " + Description}
		}
	}

	result := d.classify()
	if result.None {
		return []string{d.indent2 + "None"}
	}
	var lines []string
	for _, col := range result.Columns {
		switch col.Kind {
		case classify.Typed:
			lines = append(lines, d.indent2+col.Value+": "+Description)
		case classify.Named:
			lines = append(lines, d.indent2+d.r.safe(col.Value)+" ("+Type+"): "+Description)
		default:
			lines = append(lines, d.indent2+Type+": "+Description)
		}
	}
	return lines
}
