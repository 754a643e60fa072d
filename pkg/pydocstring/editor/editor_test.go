package editor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ImGajeed76/pydocstring/pkg/pydocstring"
)

const numpyParamA = "    Parameters\n    ----------\n    a : TYPE\n        DESCRIPTION.\n\n"

func TestWriteDocstringAtCursor(t *testing.T) {
	tests := []struct {
		name       string
		text       string
		cursor     Position
		style      pydocstring.Style
		want       string
		wantCursor Position
	}{
		{
			name:   "completes a typed opener",
			text:   "def f(a, b=1):\n    \"\"\"\n    return a + b",
			cursor: Position{Line: 1, Column: 7},
			want: "def f(a, b=1):\n    \"\"\"\n    SUMMARY.\n\n" +
				"    Parameters\n    ----------\n    a : TYPE\n        DESCRIPTION.\n" +
				"    b : TYPE, optional\n        DESCRIPTION. The default is 1.\n\n" +
				"    Returns\n    -------\n    TYPE\n        DESCRIPTION.\n\n    \"\"\"\n    return a + b",
			wantCursor: Position{Line: 2, Column: 12},
		},
		{
			name:   "typed opener ignores later strings in the body",
			text:   "def f(a):\n    \"\"\"\n    if a:\n        raise ValueError\n    s = \"\"\"abc\"\"\"\n    return a",
			cursor: Position{Line: 1, Column: 7},
			want: "def f(a):\n    \"\"\"\n    SUMMARY.\n\n" + numpyParamA +
				"    Returns\n    -------\n    TYPE\n        DESCRIPTION.\n\n" +
				"    Raises\n    ------\n    ValueError\n        DESCRIPTION.\n\n    \"\"\"\n" +
				"    if a:\n        raise ValueError\n    s = \"\"\"abc\"\"\"\n    return a",
			wantCursor: Position{Line: 2, Column: 12},
		},
		{
			name:   "raw single quoted opener",
			text:   "def f():\n    r'''",
			cursor: Position{Line: 1, Column: 8},
			want: "def f():\n    r'''\n    SUMMARY.\n\n" +
				"    Returns\n    -------\n    None\n\n    '''",
			wantCursor: Position{Line: 2, Column: 12},
		},
		{
			name:   "shortcut adds a missing docstring",
			text:   "def f(a):\n    return a",
			cursor: Position{Line: 0, Column: 3},
			want: "def f(a):\n    \"\"\"\n    SUMMARY.\n\n" + numpyParamA +
				"    Returns\n    -------\n    TYPE\n        DESCRIPTION.\n\n    \"\"\"\n    return a",
			wantCursor: Position{Line: 2, Column: 12},
		},
		{
			name:   "shortcut regenerates a single line docstring",
			text:   "def f(a):\n    '''Keep this.'''\n    return 1",
			cursor: Position{Line: 1, Column: 0},
			want: "def f(a):\n    '''\n    Keep this.\n\n" + numpyParamA +
				"    Returns\n    -------\n    int\n        DESCRIPTION.\n\n    '''\n    return 1",
			wantCursor: Position{Line: 2, Column: 14},
		},
		{
			name:   "shortcut regenerates a multi line docstring",
			text:   "class A:\n    def f(self, a):\n        r\"\"\"Old.\n\n        Args:\n            x: gone\n        \"\"\"\n        yield a\n",
			cursor: Position{Line: 1, Column: 0},
			style:  pydocstring.Google,
			want: "class A:\n    def f(self, a):\n        r\"\"\"\n        Old.\n\n" +
				"        Args:\n            a (TYPE): DESCRIPTION.\n\n" +
				"        Yields:\n            a (TYPE): DESCRIPTION.\n\n" +
				"        \"\"\"\n        yield a\n",
			wantCursor: Position{Line: 3, Column: 12},
		},
		{
			name:   "shortcut on the last signature line",
			text:   "def f(\n    a,\n):\n    pass",
			cursor: Position{Line: 2, Column: 0},
			style:  pydocstring.Sphinx,
			want: "def f(\n    a,\n):\n    \"\"\"\n    SUMMARY.\n\n" +
				"    :param a: DESCRIPTION\n    :type a: TYPE\n    :return: DESCRIPTION\n    :rtype: None\n\n" +
				"    \"\"\"\n    pass",
			wantCursor: Position{Line: 4, Column: 12},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := NewTextBuffer(tt.text, "    ")
			buf.SetCursor(tt.cursor)

			opts := pydocstring.DefaultOptions()
			opts.Style = tt.style
			ok, err := WriteDocstringAtCursor(buf, opts)
			require.NoError(t, err)
			require.True(t, ok)
			assert.Equal(t, tt.want, buf.String())
			assert.Equal(t, tt.wantCursor, buf.Cursor())
		})
	}
}

func TestWriteDocstringAtCursorNoFunction(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		cursor Position
	}{
		{name: "plain code", text: "x = 1\ny = 2", cursor: Position{Line: 1}},
		{name: "opener outside a function", text: "x = 1\n\"\"\"", cursor: Position{Line: 1, Column: 3}},
		{name: "empty buffer", text: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := NewTextBuffer(tt.text, "    ")
			buf.SetCursor(tt.cursor)

			ok, err := WriteDocstringAtCursor(buf, pydocstring.DefaultOptions())
			require.NoError(t, err)
			assert.False(t, ok)
			assert.Equal(t, tt.text, buf.String())
		})
	}
}

func TestWriteDocstringAtCursorReadOnly(t *testing.T) {
	buf := NewTextBuffer("def f():\n    pass", "    ")
	buf.ReadOnly = true

	ok, err := WriteDocstringAtCursor(buf, pydocstring.DefaultOptions())
	assert.False(t, ok)
	assert.ErrorIs(t, err, ErrInsertionFailed)
	assert.ErrorIs(t, err, ErrReadOnly)
}

func TestWriteDocstringAtCursorUnknownStyle(t *testing.T) {
	buf := NewTextBuffer("def f():\n    pass", "    ")

	_, err := WriteDocstringAtCursor(buf, pydocstring.Options{Style: pydocstring.Style(9)})
	assert.ErrorIs(t, err, pydocstring.ErrUnknownStyle)
}

func TestTriggered(t *testing.T) {
	tests := []struct {
		line   string
		column int
		want   bool
	}{
		{line: `    """`, column: 7, want: true},
		{line: `    '''`, column: 7, want: true},
		{line: `    r"""`, column: 8, want: true},
		{line: `    """`, column: 6, want: false},
		{line: `    """x`, column: 7, want: false},
		{line: `    x = """`, column: 11, want: false},
		{line: `    ""`, column: 6, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			buf := NewTextBuffer(tt.line, "    ")
			buf.SetCursor(Position{Column: tt.column})
			assert.Equal(t, tt.want, Triggered(buf))
		})
	}
}

func TestTextBufferReplaceRange(t *testing.T) {
	buf := NewTextBuffer("one\ntwo\nthree", "\t")

	require.NoError(t, buf.ReplaceRange(Position{Line: 0, Column: 1}, Position{Line: 2, Column: 2}, "X\nY"))
	assert.Equal(t, "oX\nYree", buf.String())
	assert.Equal(t, []string{"oX", "Yree"}, buf.Lines())

	require.NoError(t, buf.ReplaceRange(Position{Line: 1, Column: 4}, Position{Line: 1, Column: 4}, "!"))
	assert.Equal(t, "oX\nYree!", buf.String())

	assert.Error(t, buf.ReplaceRange(Position{Line: 1}, Position{Line: 0}, ""))
	assert.Error(t, buf.ReplaceRange(Position{Line: 5}, Position{Line: 5}, ""))
	assert.Error(t, buf.ReplaceRange(Position{Column: 9}, Position{Column: 9}, ""))

	buf.SetCursor(Position{Line: 7, Column: 99})
	assert.Equal(t, Position{Line: 1, Column: 5}, buf.Cursor())
	assert.Equal(t, "\t", buf.IndentUnit())
}
