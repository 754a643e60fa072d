package classify

import (
	"regexp"
	"strings"

	"github.com/ImGajeed76/pydocstring/pkg/pydocstring/scanner"
)

// Kind says what is known about one returned position.
type Kind int

const (
	// Unknown renders as a placeholder.
	Unknown Kind = iota
	// Typed carries an inferred type name.
	Typed
	// Named carries the variable name shared by every return.
	Named
)

// Column is the classification of one position of the returned values.
type Column struct {
	Kind  Kind
	Value string
}

// Result is the outcome of classifying every return expression.
type Result struct {
	// None is set when nothing but None is ever returned.
	None bool
	// Tuple is set when the values were tuples, one column per element.
	Tuple   bool
	Columns []Column
}

var (
	containers = map[string]string{
		"[list]":  "list",
		"(tuple)": "tuple",
		"{dict}":  "dict",
		"{set}":   "set",
	}

	operatorChars = " +-*/%@<>&|^~=,:;#([{}])"

	intLiteral   = regexp.MustCompile(`^[+-]?\d+(?:_\d+)*$`)
	floatLiteral = regexp.MustCompile(`^[+-]?(?:\d+(?:_\d+)*(?:\.(?:\d+(?:_\d+)*)?)?|\.\d+(?:_\d+)*)(?:[eE][+-]?\d+(?:_\d+)*)?$`)
	identifier   = regexp.MustCompile(`^[A-Za-z_]\w*$`)
)

func placeholder(n int) Result {
	columns := make([]Column, n)
	return Result{Tuple: n > 1, Columns: columns}
}

// Classify infers what a function returns from the text of its return or
// yield expressions. Bindings maps local names to the literal text they were
// assigned; a column whose entries all name the same bound variable is
// classified by that literal.
func Classify(values []string, bindings map[string]string) Result {
	var nonNone []string
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v != "" && v != "None" {
			nonNone = append(nonNone, v)
		}
	}
	if len(nonNone) == 0 {
		return Result{None: true}
	}

	var clean []string
	for _, v := range nonNone {
		c, err := Canonicalize(v)
		if err != nil {
			continue
		}
		clean = append(clean, c)
	}
	if len(clean) == 0 {
		return placeholder(1)
	}

	var singles, tuples []string
	for _, c := range clean {
		if strings.Contains(c, ",") {
			tuples = append(tuples, c)
		} else {
			singles = append(singles, c)
		}
	}
	if len(singles) > 0 && len(tuples) > 0 {
		return placeholder(1)
	}

	width := 1
	if len(tuples) > 0 {
		width = strings.Count(tuples[0], ",") + 1
		for _, c := range tuples[1:] {
			if strings.Count(c, ",")+1 != width {
				return placeholder(1)
			}
		}
	}

	if len(clean) != len(nonNone) {
		return placeholder(width)
	}

	groups := make([][]string, width)
	for _, c := range clean {
		for i, element := range strings.Split(c, ",") {
			groups[i] = append(groups[i], strings.TrimSpace(element))
		}
	}

	result := Result{Tuple: width > 1, Columns: make([]Column, width)}
	for i, group := range groups {
		result.Columns[i] = classifyBound(group, bindings)
	}
	return result
}

// classifyBound substitutes a shared bound name by its literal before
// classifying. When the literal tells nothing the name itself is used.
func classifyBound(group []string, bindings map[string]string) Column {
	name := group[0]
	if !identifier.MatchString(name) || !allEqual(group) {
		return classifyColumn(group)
	}

	literal, ok := bindings[name]
	if !ok {
		return classifyColumn(group)
	}
	canonical, err := reduceLiteral(literal)
	if err != nil {
		return classifyColumn(group)
	}

	if col := classifyColumn([]string{canonical}); col.Kind == Typed {
		return col
	}
	return classifyColumn(group)
}

func classifyColumn(group []string) Column {
	same := allEqual(group)

	if t, ok := containers[group[0]]; ok && same {
		return Column{Kind: Typed, Value: t}
	}

	for _, v := range group {
		if strings.ContainsAny(v, operatorChars) {
			return Column{}
		}
	}

	if all(group, func(v string) bool { return strings.ContainsAny(v, `"'`) }) {
		return Column{Kind: Typed, Value: "str"}
	}

	if all(group, func(v string) bool { return v == "True" || v == "False" }) {
		return Column{Kind: Typed, Value: "bool"}
	}

	if all(group, floatLiteral.MatchString) {
		ints := 0
		for _, v := range group {
			if intLiteral.MatchString(v) {
				ints++
			}
		}
		switch ints {
		case len(group):
			return Column{Kind: Typed, Value: "int"}
		case 0:
			return Column{Kind: Typed, Value: "float"}
		default:
			return Column{Kind: Typed, Value: "numeric"}
		}
	}

	if same && !strings.Contains(group[0], ".") {
		switch group[0] {
		case "self", "cls", "None":
		default:
			return Column{Kind: Named, Value: group[0]}
		}
	}

	return Column{}
}

// Canonicalize reduces a return expression to the form the rules work on:
// outer parentheses and a trailing comma are dropped, string literals become
// "string" and every top-level bracketed region becomes a literal marker.
func Canonicalize(value string) (string, error) {
	v, err := stripParens(strings.TrimSpace(value))
	if err != nil {
		return "", err
	}
	v = strings.TrimSpace(strings.TrimSuffix(v, ","))
	if v == "" {
		return "(tuple)", nil
	}
	return reduceLiteral(v)
}

func reduceLiteral(v string) (string, error) {
	v, err := replaceStrings(strings.TrimSpace(v))
	if err != nil {
		return "", err
	}
	return reduceBrackets(v)
}

func stripParens(v string) (string, error) {
	for strings.HasPrefix(v, "(") {
		s, err := scanner.New(v)
		if err != nil {
			return "", err
		}
		if s.Brackets[0] != len(v)-1 {
			break
		}
		v = strings.TrimSpace(v[1 : len(v)-1])
	}
	return v, nil
}

func replaceStrings(v string) (string, error) {
	quotes, err := scanner.Quotes(v)
	if err != nil {
		return "", err
	}
	if len(quotes) == 0 {
		return v, nil
	}

	var b strings.Builder
	for i := 0; i < len(v); i++ {
		if end, ok := quotes[i]; ok {
			b.WriteString(`"string"`)
			i = end
			continue
		}
		b.WriteByte(v[i])
	}
	return b.String(), nil
}

func reduceBrackets(v string) (string, error) {
	s, err := scanner.New(v)
	if err != nil {
		return "", err
	}
	if len(s.Brackets) == 0 {
		return v, nil
	}

	var b strings.Builder
	for i := 0; i < len(v); i++ {
		end, ok := s.Brackets[i]
		if !ok {
			b.WriteByte(v[i])
			continue
		}
		marker, err := bracketMarker(v[i], v[i+1:end])
		if err != nil {
			return "", err
		}
		b.WriteString(marker)
		i = end
	}
	return b.String(), nil
}

func bracketMarker(open byte, inner string) (string, error) {
	s, err := scanner.New(inner)
	if err != nil {
		return "", err
	}

	switch open {
	case '(':
		switch {
		case s.Index(',') >= 0:
			return "(tuple)", nil
		case s.Index(':') >= 0:
			return "[slice]", nil
		default:
			return "(None)", nil
		}
	case '[':
		return "[list]", nil
	default:
		if strings.TrimSpace(inner) == "" || s.Index(':') >= 0 {
			return "{dict}", nil
		}
		return "{set}", nil
	}
}

func allEqual(group []string) bool {
	for _, v := range group[1:] {
		if v != group[0] {
			return false
		}
	}
	return true
}

func all(group []string, pred func(string) bool) bool {
	for _, v := range group {
		if !pred(v) {
			return false
		}
	}
	return true
}
