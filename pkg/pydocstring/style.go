package pydocstring

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ImGajeed76/pydocstring/pkg/pydocstring/render"
)

// Style selects the docstring layout.
type Style = render.Style

const (
	NumPy  = render.NumPy
	Google = render.Google
	Sphinx = render.Sphinx
)

var (
	// ErrUnknownStyle is returned for a style name or value that is not one
	// of NumPy, Google or Sphinx.
	ErrUnknownStyle = errors.New("unknown docstring style")
	// ErrInvalidQuote is returned for a quote character other than " or '.
	ErrInvalidQuote = errors.New("invalid quote character")
)

var styleNames = map[string]Style{
	"numpy":     NumPy,
	"numpydoc":  NumPy,
	"google":    Google,
	"googledoc": Google,
	"sphinx":    Sphinx,
	"sphinxdoc": Sphinx,
}

// ParseStyle maps a style name to a Style. Names are case-insensitive and
// the Numpydoc, Googledoc and Sphinxdoc spellings are accepted.
func ParseStyle(name string) (Style, error) {
	style, ok := styleNames[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return NumPy, fmt.Errorf("%w: %q", ErrUnknownStyle, name)
	}
	return style, nil
}

// StyleNames lists the canonical style names.
func StyleNames() []string {
	return []string{NumPy.String(), Google.String(), Sphinx.String()}
}

func validStyle(s Style) bool {
	return s == NumPy || s == Google || s == Sphinx
}
