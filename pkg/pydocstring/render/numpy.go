package render

import "github.com/ImGajeed76/pydocstring/pkg/pydocstring/classify"

func (d *doc) numpy() [][]string {
	var sections [][]string
	if len(d.args) > 0 {
		sections = append(sections, d.numpyParameters())
	}
	sections = append(sections, d.numpyReturns())
	if len(d.info.Raises) > 0 {
		sections = append(sections, d.numpyRaises())
	}
	return sections
}

func (d *doc) numpyHeader(title string) []string {
	return []string{d.indent1 + title, d.indent1 + rule(title)}
}

func (d *doc) numpyParameters() []string {
	lines := d.numpyHeader("Parameters")
	for _, arg := range d.args {
		head := d.indent1 + d.r.safe(arg.Name) + " : " + d.typeOf(arg)
		desc := d.indent2 + Description
		if def, ok := arg.Default.Value(); ok {
			head += ", optional"
			desc += " The default is " + d.r.safe(def) + "."
		}
		lines = append(lines, head, desc)
	}
	return lines
}

func (d *doc) numpyReturns() []string {
	lines := d.numpyHeader(d.heading(true))
	item := func(head string) {
		lines = append(lines, d.indent1+head, d.indent2+Description)
	}

	if d.info.HasReturnAnnotation() {
		if d.returnsNone() {
			return append(lines, d.indent1+"None")
		}
		for _, t := range d.info.ReturnAnnotations {
			item(d.r.safe(t))
		}
		return lines
	}

	result := d.classify()
	if result.None {
		return append(lines, d.indent1+"None")
	}
	for _, col := range result.Columns {
		switch {
		case col.Kind == classify.Typed:
			item(col.Value)
		case col.Kind == classify.Named && result.Tuple:
			item(d.r.safe(col.Value) + " : " + Type)
		default:
			item(Type)
		}
	}
	return lines
}

func (d *doc) numpyRaises() []string {
	lines := d.numpyHeader("Raises")
	for _, cls := range d.info.Raises {
		lines = append(lines, d.indent1+d.r.safe(cls), d.indent2+Description)
	}
	return lines
}
