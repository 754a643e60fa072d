// Package annotate adds docstrings to every undocumented function of a
// Python file at once.
package annotate

import (
	"fmt"
	"strings"

	"github.com/ImGajeed76/pydocstring/pkg/pydocstring"
	"github.com/ImGajeed76/pydocstring/pkg/pydocstring/editor"
	"github.com/ImGajeed76/pydocstring/pkg/pydocstring/locator"
)

// Function describes one def found in a file.
type Function struct {
	Name string
	// Line is the 0-based line of the def keyword.
	Line       int
	Documented bool
	// Docstring is what GenerateDocstring would insert, including the
	// opening triple quote.
	Docstring string
	Signature locator.Signature
}

// Functions lists every parseable function of text in file order.
func Functions(text string, opts pydocstring.Options) ([]Function, error) {
	lines := pydocstring.SplitLines(text)

	var funcs []Function
	for i, line := range lines {
		if !locator.IsStartOfFunction(line) {
			continue
		}
		sig, ok := locator.FromFirstLine(lines, i)
		if !ok {
			continue
		}
		fn, err := pydocstring.Analyze(lines, sig)
		if err != nil {
			continue
		}

		fnOpts := opts
		if fn.Info.Docstring.Found {
			fnOpts.Quote = fn.Info.Docstring.Quote[0]
		}
		doc, err := pydocstring.Render(fn, fnOpts)
		if err != nil {
			return nil, err
		}
		quote := fnOpts.Quote
		if quote == 0 {
			quote = '"'
		}

		funcs = append(funcs, Function{
			Name:       fn.Info.Name,
			Line:       sig.StartLine,
			Documented: fn.Info.Docstring.Found,
			Docstring:  fn.Info.FuncIndent + indentUnit(opts) + strings.Repeat(string(quote), 3) + doc,
			Signature:  sig,
		})
	}
	return funcs, nil
}

// Result reports what File did.
type Result struct {
	Text string
	// Added holds the names of the functions that received a docstring.
	Added   []string
	Skipped int
}

// Options configure File.
type Options struct {
	pydocstring.Options
	// Progress, when set, is called after each function is handled.
	Progress func(done, total int, name string)
}

// File inserts a docstring below the signature of every function that has
// none. Functions are handled bottom to top so earlier line numbers stay
// valid while text is inserted.
func File(text string, opts Options) (Result, error) {
	funcs, err := Functions(text, opts.Options)
	if err != nil {
		return Result{}, err
	}

	buf := editor.NewTextBuffer(text, indentUnit(opts.Options))
	result := Result{}
	for i := len(funcs) - 1; i >= 0; i-- {
		fn := funcs[i]
		done := len(funcs) - i
		if fn.Documented {
			result.Skipped++
			opts.report(done, len(funcs), fn.Name)
			continue
		}

		buf.SetCursor(editor.Position{Line: fn.Line})
		ok, err := editor.WriteDocstringAtCursor(buf, opts.Options)
		if err != nil {
			return Result{}, fmt.Errorf("function %s on line %d: %w", fn.Name, fn.Line+1, err)
		}
		if ok {
			result.Added = append(result.Added, fn.Name)
		} else {
			result.Skipped++
		}
		opts.report(done, len(funcs), fn.Name)
	}

	for l, r := 0, len(result.Added)-1; l < r; l, r = l+1, r-1 {
		result.Added[l], result.Added[r] = result.Added[r], result.Added[l]
	}
	result.Text = buf.String()
	if strings.Contains(text, "\r\n") {
		result.Text = strings.ReplaceAll(result.Text, "\n", "\r\n")
	}
	return result, nil
}

func indentUnit(opts pydocstring.Options) string {
	if opts.IndentUnit == "" {
		return pydocstring.DefaultIndent
	}
	return opts.IndentUnit
}

func (o Options) report(done, total int, name string) {
	if o.Progress != nil {
		o.Progress(done, total, name)
	}
}
