package pydocstring

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/ImGajeed76/pydocstring/pkg/pydocstring/funcinfo"
	"github.com/ImGajeed76/pydocstring/pkg/pydocstring/locator"
	"github.com/ImGajeed76/pydocstring/pkg/pydocstring/log"
	"github.com/ImGajeed76/pydocstring/pkg/pydocstring/render"
)

// DefaultIndent is used when Options.IndentUnit is empty.
const DefaultIndent = "    "

// Options controls how a docstring is rendered.
type Options struct {
	Style Style
	// Quote is the character of the triple quote opening the docstring.
	// Zero means '"'.
	Quote byte
	// IndentUnit is one level of editor indentation.
	IndentUnit string
	Logger     *zap.SugaredLogger
}

// DefaultOptions returns NumPy style with double quotes and four spaces.
func DefaultOptions() Options {
	return Options{Style: NumPy, Quote: '"', IndentUnit: DefaultIndent}
}

func (o Options) validate() (Options, error) {
	if !validStyle(o.Style) {
		return o, fmt.Errorf("%w: %d", ErrUnknownStyle, o.Style)
	}
	switch o.Quote {
	case 0:
		o.Quote = '"'
	case '"', '\'':
	default:
		return o, fmt.Errorf("%w: %q", ErrInvalidQuote, o.Quote)
	}
	if o.IndentUnit == "" {
		o.IndentUnit = DefaultIndent
	}
	o.Logger = log.Nop(o.Logger)
	return o, nil
}

// Function is one located and analysed function.
type Function struct {
	Signature locator.Signature
	Info      *funcinfo.FunctionInfo
	// BodyStart is the line index of the first body line.
	BodyStart int
}

// Locate finds the signature for a cursor on line (0-based). A cursor on a
// def or decorator line reads forward from there; any other line is taken to
// be the first line below the signature.
func Locate(lines []string, line int) (locator.Signature, bool) {
	if line >= 0 && line < len(lines) {
		trimmed := strings.TrimSpace(lines[line])
		if locator.IsStartOfFunction(lines[line]) || strings.HasPrefix(trimmed, "@") {
			return locator.FromFirstLine(lines, line)
		}
	}
	return locator.FromBelowLastLine(lines, line)
}

// Openers are the bare triple quotes that start a docstring.
var Openers = []string{`"""`, `'''`, `r"""`, `r'''`, `R"""`, `R'''`}

// IsOpener reports whether line holds nothing but a triple-quote opener.
func IsOpener(line string) bool {
	trimmed := strings.TrimSpace(line)
	for _, o := range Openers {
		if trimmed == o {
			return true
		}
	}
	return false
}

// Analyze parses the signature and the body below it.
func Analyze(lines []string, sig locator.Signature) (*Function, error) {
	return analyze(lines, sig, false)
}

// analyze parses the function. With typedOpener the first body line is the
// opener the docstring is being written after: it is not probed for an
// existing docstring and the body scan starts below it.
func analyze(lines []string, sig locator.Signature, typedOpener bool) (*Function, error) {
	info, err := funcinfo.ParseDef(sig.Text)
	if err != nil {
		return nil, fmt.Errorf("parse %q: %w", firstLine(sig.Text), err)
	}

	body := locator.Body(lines, sig)
	if typedOpener && len(body) > 0 {
		info.ParseDocstring(nil)
		info.ParseBody(body[1:])
	} else {
		info.ParseDocstring(body)
		info.ParseBody(body)
	}
	return &Function{Signature: sig, Info: info, BodyStart: sig.EndLine + 1}, nil
}

// Render produces the docstring for an analysed function.
func Render(fn *Function, opts Options) (string, error) {
	opts, err := opts.validate()
	if err != nil {
		return "", err
	}
	return render.New(opts.Quote, opts.IndentUnit).Render(opts.Style, fn.Info), nil
}

// GenerateDocstring returns what to insert after an opening triple quote for
// the function at or just above cursorLine (0-based). The boolean is false
// when no parseable signature is found; that is not an error. An error is
// returned only for invalid options. A bare opener on cursorLine, directly
// below the signature, is the one being completed and is not read as an
// existing docstring.
func GenerateDocstring(text string, cursorLine int, opts Options) (string, bool, error) {
	opts, err := opts.validate()
	if err != nil {
		return "", false, err
	}

	lines := SplitLines(text)
	sig, ok := Locate(lines, cursorLine)
	if !ok {
		opts.Logger.Debugw("no function signature at cursor", "line", cursorLine)
		return "", false, nil
	}

	typed := cursorLine == sig.EndLine+1 && cursorLine < len(lines) && IsOpener(lines[cursorLine])
	fn, err := analyze(lines, sig, typed)
	if err != nil {
		opts.Logger.Debugw("unparseable signature", "line", sig.StartLine, "error", err)
		return "", false, nil
	}

	doc, err := Render(fn, opts)
	if err != nil {
		return "", false, err
	}
	opts.Logger.Debugw("generated docstring",
		"function", fn.Info.Name,
		"style", opts.Style.String(),
		"args", len(fn.Info.ArgNames),
		"returns", len(fn.Info.ReturnValues),
	)
	return doc, true, nil
}

// SplitLines splits text on "\n", dropping a "\r" before each break.
func SplitLines(text string) []string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
