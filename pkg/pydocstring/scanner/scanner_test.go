package scanner

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuotes(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		want    map[int]int
		wantErr error
	}{
		{name: "no quotes", text: "a, b", want: map[int]int{}},
		{name: "single", text: `x='a'`, want: map[int]int{2: 4}},
		{name: "double", text: `x="a", y="b"`, want: map[int]int{2: 4, 9: 11}},
		{name: "empty string", text: `""`, want: map[int]int{0: 1}},
		{name: "triple", text: `"""a"b"""`, want: map[int]int{0: 8}},
		{name: "escaped quote", text: `"a\"b"`, want: map[int]int{0: 5}},
		{name: "escaped backslash", text: `"a\\" + 'c'`, want: map[int]int{0: 4, 8: 10}},
		{name: "kinds do not nest", text: `"it's"`, want: map[int]int{0: 5}},
		{name: "unclosed", text: `x="abc`, wantErr: ErrUnmatchedQuote},
		{name: "unclosed triple", text: `'''abc''`, wantErr: ErrUnmatchedQuote},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Quotes(tt.text)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.True(t, errors.Is(err, tt.wantErr))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBrackets(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		open    byte
		closing byte
		want    map[int]int
		wantErr bool
	}{
		{name: "nested", text: "f(a, (b))", open: '(', closing: ')', want: map[int]int{1: 8, 5: 7}},
		{name: "inside quotes ignored", text: `f(")", a)`, open: '(', closing: ')', want: map[int]int{1: 8}},
		{name: "other kinds ignored", text: "[a(]", open: '[', closing: ']', want: map[int]int{0: 3}},
		{name: "unclosed", text: "f(a", open: '(', closing: ')', wantErr: true},
		{name: "stray closer", text: "a)", open: '(', closing: ')', wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			quotes, err := Quotes(tt.text)
			require.NoError(t, err)

			got, err := Brackets(tt.text, tt.open, tt.closing, quotes)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnmatchedBracket)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAllBrackets(t *testing.T) {
	quotes, err := Quotes("{a: [1, (2)]}")
	require.NoError(t, err)
	got, err := AllBrackets("{a: [1, (2)]}", quotes)
	require.NoError(t, err)
	assert.Equal(t, map[int]int{0: 12, 4: 11, 8: 10}, got)

	_, err = AllBrackets("(]", map[int]int{})
	assert.ErrorIs(t, err, ErrUnmatchedBracket)

	var scanErr *ScanError
	require.ErrorAs(t, err, &scanErr)
	assert.Equal(t, 1, scanErr.Pos)
	assert.Equal(t, "brackets at 1: unmatched bracket", scanErr.Error())
}

func TestScanSplit(t *testing.T) {
	tests := []struct {
		name string
		text string
		sep  byte
		want []string
	}{
		{name: "plain", text: "a, b, c", sep: ',', want: []string{"a", " b", " c"}},
		{name: "nested commas", text: "a: Dict[str, int], b=(1, 2)", sep: ',', want: []string{"a: Dict[str, int]", " b=(1, 2)"}},
		{name: "quoted commas", text: `s=",", t`, sep: ',', want: []string{`s=","`, " t"}},
		{name: "trailing", text: "a,", sep: ',', want: []string{"a", ""}},
		{name: "none", text: "abc", sep: ',', want: []string{"abc"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Split(tt.text, tt.sep)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestScanIndexAndCount(t *testing.T) {
	s, err := New(`x: Callable[[a], b] = lambda y: {"k": y}`)
	require.NoError(t, err)

	assert.Equal(t, 1, s.Index(':'))
	assert.Equal(t, 20, s.Index('='))
	assert.Equal(t, 2, s.Count(':'))
	assert.Equal(t, -1, s.Index(','))
}

func TestBalanced(t *testing.T) {
	assert.True(t, Balanced(`def f(a="(", b=[1, 2]):`))
	assert.False(t, Balanced("def f(a,"))
	assert.False(t, Balanced(`x = "abc`))
}

func TestStripComment(t *testing.T) {
	tests := []struct {
		line string
		want string
	}{
		{line: "def f(a):  # comment", want: "def f(a):"},
		{line: `x = "#not a comment"`, want: `x = "#not a comment"`},
		{line: `x = '\'#' # yes`, want: `x = '\'#'`},
		{line: "# only", want: ""},
		{line: "plain", want: "plain"},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			assert.Equal(t, tt.want, StripComment(tt.line))
		})
	}
}
