package funcinfo

import (
	"regexp"
	"strings"

	"github.com/ImGajeed76/pydocstring/pkg/pydocstring/scanner"
)

var (
	statementKeyword = regexp.MustCompile(`^(return|yield|raise)\b`)
	raisedClass      = regexp.MustCompile(`^raise\s+([A-Za-z_][\w.]*)`)
	literalBinding   = regexp.MustCompile(`^([A-Za-z_]\w*)\s*(?::[^=]+)?=\s*([^=].*)$`)
	chainedValue     = regexp.MustCompile(`^[A-Za-z_]\w*\s*=(?:[^=]|$)`)
	loopBinding      = regexp.MustCompile(`^(?:async\s+)?for\s+(.+?)\s+in\s+(.+):$`)
	augmentedAssign  = regexp.MustCompile(`^([A-Za-z_]\w*)\s*(?:\*\*|//|>>|<<|[-+*/%@&|^])=`)
	unpackTargets    = regexp.MustCompile(`^([\w\s,*()]+?)\s*=(?:[^=]|$)`)
	namedExpr        = regexp.MustCompile(`([A-Za-z_]\w*)\s*:=`)
	asTarget         = regexp.MustCompile(`\bas\s+([A-Za-z_]\w*)`)
	identifier       = regexp.MustCompile(`^[A-Za-z_]\w*$`)
	identifiers      = regexp.MustCompile(`[A-Za-z_]\w*`)

	compoundKeywords = map[string]bool{
		"if": true, "elif": true, "else": true, "try": true, "except": true,
		"finally": true, "while": true, "with": true, "lambda": true,
		"class": true, "def": true, "match": true, "case": true,
	}
)

// ParseBody records raised classes, yields, return expressions and simple
// literal bindings found at statement starts in the body lines. A name that
// is bound to two different literals, or changed in any other way, goes to
// Rebound instead. The span of an existing docstring is skipped.
func (f *FunctionInfo) ParseBody(lines []string) {
	f.Bindings = make(map[string]string)
	f.Rebound = make(map[string]bool)
	rebind := func(name string) {
		delete(f.Bindings, name)
		f.Rebound[name] = true
	}
	bind := func(name, value string) {
		if f.Rebound[name] {
			return
		}
		if prev, ok := f.Bindings[name]; ok && prev != value {
			rebind(name)
			return
		}
		f.Bindings[name] = value
	}

	seen := make(map[string]bool)
	for i := 0; i < len(lines); i++ {
		if f.Docstring.Found && i >= f.Docstring.Start && i <= f.Docstring.End {
			continue
		}

		stmt := strings.TrimSpace(scanner.StripComment(lines[i]))
		if stmt == "" {
			continue
		}

		for _, m := range namedExpr.FindAllStringSubmatch(stmt, -1) {
			rebind(m[1])
		}

		kw := statementKeyword.FindString(stmt)
		switch kw {
		case "raise":
			if m := raisedClass.FindStringSubmatch(stmt); m != nil && !seen[m[1]] {
				seen[m[1]] = true
				f.Raises = append(f.Raises, m[1])
			}
			continue
		case "return", "yield":
			if kw == "yield" {
				f.HasYield = true
			}
			expr, next, ok := collectExpression(lines, i, strings.TrimSpace(stmt[len(kw):]))
			i = next
			if ok {
				f.ReturnValues = append(f.ReturnValues, expr)
			}
			continue
		}

		for _, m := range asTarget.FindAllStringSubmatch(stmt, -1) {
			rebind(m[1])
		}

		if m := loopBinding.FindStringSubmatch(stmt); m != nil {
			target := strings.TrimSpace(m[1])
			if identifier.MatchString(target) && strings.HasPrefix(m[2], "range(") {
				bind(target, "0")
			} else {
				for _, name := range identifiers.FindAllString(target, -1) {
					rebind(name)
				}
			}
		} else if m := augmentedAssign.FindStringSubmatch(stmt); m != nil {
			rebind(m[1])
		} else if names := unpacking(stmt); names != nil {
			for _, name := range names {
				rebind(name)
			}
		} else if m := literalBinding.FindStringSubmatch(stmt); m != nil && !compoundKeywords[m[1]] {
			value := strings.TrimSpace(m[2])
			if chainedValue.MatchString(value) || !scanner.Balanced(value) {
				rebind(m[1])
			} else {
				bind(m[1], value)
			}
		}

		i = skipOpenString(lines, i, stmt)
	}
}

// unpacking returns the names assigned by a statement with several targets,
// such as "a, b = pair" or "(x, *rest) = items".
func unpacking(stmt string) []string {
	m := unpackTargets.FindStringSubmatch(stmt)
	if m == nil || !strings.Contains(m[1], ",") || !scanner.Balanced(m[1]) {
		return nil
	}
	return identifiers.FindAllString(m[1], -1)
}

// collectExpression joins continuation lines onto expr until it is balanced.
// It returns the index of the last line consumed. An expression that never
// balances is dropped.
func collectExpression(lines []string, i int, expr string) (string, int, bool) {
	for {
		joined := strings.HasSuffix(expr, "\\")
		if joined {
			expr = strings.TrimSpace(strings.TrimSuffix(expr, "\\"))
		}
		if !joined && scanner.Balanced(expr) {
			break
		}
		if i+1 >= len(lines) {
			return "", i, false
		}
		i++
		next := strings.TrimSpace(scanner.StripComment(lines[i]))
		if next == "" {
			continue
		}
		if expr == "" {
			expr = next
		} else {
			expr += " " + next
		}
	}

	if expr == "" {
		expr = "None"
	}
	return expr, i, true
}

// skipOpenString steps over the lines of a triple-quoted string that is
// opened but not closed on line i.
func skipOpenString(lines []string, i int, stmt string) int {
	if _, err := scanner.Quotes(stmt); err == nil {
		return i
	}

	for _, quote := range []string{`"""`, `'''`} {
		if strings.Count(stmt, quote)%2 == 0 {
			continue
		}
		for j := i + 1; j < len(lines); j++ {
			if strings.Contains(lines[j], quote) {
				return j
			}
		}
		return len(lines)
	}
	return i
}
