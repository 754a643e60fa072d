package render

import (
	"strings"

	"github.com/ImGajeed76/pydocstring/pkg/pydocstring/classify"
)

// sphinx emits a single field list block.
func (d *doc) sphinx() [][]string {
	var lines []string
	for _, arg := range d.args {
		name := d.r.safe(arg.Name)
		param := d.indent1 + ":param " + name + ": DESCRIPTION"
		if def, ok := arg.Default.Value(); ok {
			param += ", defaults to " + d.r.safe(def)
		}
		lines = append(lines, param, d.indent1+":type "+name+": "+d.typeOf(arg))
	}

	field := ":return:"
	if d.info.HasYield {
		field = ":yield:"
	}
	lines = append(lines,
		d.indent1+field+" DESCRIPTION",
		d.indent1+":rtype: "+d.sphinxReturnType(),
	)

	for _, cls := range d.info.Raises {
		lines = append(lines, d.indent1+":raises "+d.r.safe(cls)+": DESCRIPTION")
	}
	return [][]string{lines}
}

func (d *doc) sphinxReturnType() string {
	if d.info.HasReturnAnnotation() {
		ann := d.info.ReturnAnnotations
		if len(ann) == 1 {
			return d.r.safe(ann[0])
		}
		return "tuple[" + d.r.safe(strings.Join(ann, ", ")) + "]"
	}

	result := d.classify()
	if result.None {
		return "None"
	}
	types := make([]string, len(result.Columns))
	for i, col := range result.Columns {
		types[i] = Type
		if col.Kind == classify.Typed {
			types[i] = col.Value
		}
	}
	if !result.Tuple {
		return types[0]
	}
	return "tuple[" + strings.Join(types, ", ") + "]"
}
