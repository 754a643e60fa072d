package funcinfo

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDef(t *testing.T) {
	tests := []struct {
		name        string
		text        string
		wantName    string
		wantIndent  string
		wantArgs    []Arg
		wantReturns []string
	}{
		{
			name:     "names and defaults",
			text:     "def f(a, b=1):",
			wantName: "f",
			wantArgs: []Arg{
				{Name: "a"},
				{Name: "b", Default: Present("1")},
			},
		},
		{
			name:       "annotations",
			text:       "    async def f(self, x: int, y: Dict[str, int] = {}, *args, **kwargs) -> bool:",
			wantName:   "f",
			wantIndent: "    ",
			wantArgs: []Arg{
				{Name: "self"},
				{Name: "x", Annotation: Present("int")},
				{Name: "y", Annotation: Present("Dict[str, int]"), Default: Present("{}")},
				{Name: "*args"},
				{Name: "**kwargs"},
			},
			wantReturns: []string{"bool"},
		},
		{
			name:     "colon inside default",
			text:     `def m(s=":"):`,
			wantName: "m",
			wantArgs: []Arg{{Name: "s", Default: Present(`":"`)}},
		},
		{
			name:     "lambda default",
			text:     "def f(key=lambda x: x, sep=','):",
			wantName: "f",
			wantArgs: []Arg{
				{Name: "key", Default: Present("lambda x: x")},
				{Name: "sep", Default: Present("','")},
			},
		},
		{
			name:     "empty string default is present",
			text:     `def f(x="", y):`,
			wantName: "f",
			wantArgs: []Arg{
				{Name: "x", Default: Present(`""`)},
				{Name: "y"},
			},
		},
		{
			name:     "trailing comma and bare markers",
			text:     "def f(a, /, b, *, c=None,):",
			wantName: "f",
			wantArgs: []Arg{
				{Name: "a"},
				{Name: "/"},
				{Name: "b"},
				{Name: "*"},
				{Name: "c", Default: Present("None")},
			},
		},
		{
			name:        "tuple return",
			text:        "def h(x: int, y: int) -> Tuple[int, str]:",
			wantName:    "h",
			wantArgs:    []Arg{{Name: "x", Annotation: Present("int")}, {Name: "y", Annotation: Present("int")}},
			wantReturns: []string{"int", "str"},
		},
		{
			name:        "multi line tuple return is collapsed",
			text:        "def h() -> typing.Tuple[\n        List[int],\n        Dict[str, str]]:",
			wantName:    "h",
			wantReturns: []string{"List[int]", "Dict[str, str]"},
		},
		{
			name:        "variadic tuple stays whole",
			text:        "def h() -> Tuple[int, ...]:",
			wantName:    "h",
			wantReturns: []string{"Tuple[int, ...]"},
		},
		{
			name:        "single item tuple stays whole",
			text:        "def h() -> Tuple[int]:",
			wantName:    "h",
			wantReturns: []string{"Tuple[int]"},
		},
		{
			name:        "lowercase tuple is a single type",
			text:        "def h() -> tuple[int, str]:",
			wantName:    "h",
			wantReturns: []string{"tuple[int, str]"},
		},
		{
			name:        "none annotation",
			text:        "def g() -> None:",
			wantName:    "g",
			wantReturns: []string{"None"},
		},
		{
			name:     "multi line default is flattened",
			text:     "def f(a=[1,\n        2]):",
			wantName: "f",
			wantArgs: []Arg{{Name: "a", Default: Present("[1, 2]")}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info, err := ParseDef(tt.text)
			require.NoError(t, err)
			assert.True(t, info.HasInfo)
			assert.Equal(t, tt.wantName, info.Name)
			assert.Equal(t, tt.wantIndent, info.FuncIndent)
			assert.Equal(t, len(info.ArgNames), len(info.ArgAnnotations))
			assert.Equal(t, len(info.ArgNames), len(info.ArgDefaults))
			if tt.wantArgs == nil {
				assert.Empty(t, info.Args())
			} else {
				assert.Equal(t, tt.wantArgs, info.Args())
			}
			assert.Equal(t, tt.wantReturns, info.ReturnAnnotations)
			assert.Equal(t, tt.wantReturns != nil, info.HasReturnAnnotation())
		})
	}
}

func TestParseDefFailures(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{name: "not a def", text: "class A:"},
		{name: "unmatched quote", text: `def f(a="):`},
		{name: "unmatched bracket", text: "def f(a=[1):"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info, err := ParseDef(tt.text)
			assert.Error(t, err)
			assert.False(t, info.HasInfo)
		})
	}
}

func TestParseBody(t *testing.T) {
	tests := []struct {
		name         string
		body         string
		wantValues   []string
		wantRaises   []string
		wantYield    bool
		wantBindings map[string]string
		wantRebound  []string
	}{
		{
			name:       "simple return",
			body:       "    return a + b",
			wantValues: []string{"a + b"},
		},
		{
			name:       "bare return",
			body:       "    if x:\n        return\n    return 1",
			wantValues: []string{"None", "1"},
		},
		{
			name:       "raises are deduplicated in order",
			body:       "    raise ValueError(\"bad\")\n    raise ValueError(\"again\")\n    raise TypeError()\n    raise\n    raise errors.Custom",
			wantRaises: []string{"ValueError", "TypeError", "errors.Custom"},
		},
		{
			name:         "yield from a range loop",
			body:         "    for i in range(3):\n        yield i",
			wantValues:   []string{"i"},
			wantYield:    true,
			wantBindings: map[string]string{"i": "0"},
		},
		{
			name:       "continuation lines are joined",
			body:       "    return (a,  # first\n            b)\n    return x + \\\n        y",
			wantValues: []string{"(a, b)", "x + y"},
		},
		{
			name:       "unbalanced at end is dropped",
			body:       "    return (a,",
			wantValues: nil,
		},
		{
			name:       "keyword boundary",
			body:       "    returned = 1\n    yieldx()\n    raisefoo()\n    return(x)",
			wantValues: []string{"(x)"},
			wantBindings: map[string]string{
				"returned": "1",
			},
		},
		{
			name:         "conflicting bindings are dropped",
			body:         "    s = 'a'\n    s = 1\n    t = 2\n    t = 2\n    n: int = 4\n    for u in items:\n        u = 1",
			wantBindings: map[string]string{"t": "2", "n": "4"},
		},
		{
			name:       "strings are skipped",
			body:       "    x = \"\"\"\n    return 1\n    \"\"\"\n    return x",
			wantValues: []string{"x"},
		},
		{
			name:       "comment is stripped",
			body:       "    return 'a'  # a string",
			wantValues: []string{"'a'"},
		},
		{
			name: "names changed in place lose their literal",
			body: "    x = 0\n    x += 0.5\n    a, b = 1, 2\n    (c, *d) = items\n" +
				"    with open(p) as fh:\n        pass\n" +
				"    try:\n        e = 1\n    except OSError as e:\n        pass\n" +
				"    if (w := 3):\n        pass\n" +
				"    for i, j in pairs:\n        pass\n" +
				"    y = z = 1\n    k = 2\n    k = 2",
			wantBindings: map[string]string{"k": "2"},
			wantRebound:  []string{"a", "b", "c", "d", "e", "fh", "i", "j", "w", "x", "y"},
		},
		{
			name:         "call with keyword arguments is not an assignment",
			body:         "    n = 1\n    print(n, end='')\n    f(a, b=n)",
			wantBindings: map[string]string{"n": "1"},
			wantRebound:  []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info := &FunctionInfo{}
			info.ParseBody(strings.Split(tt.body, "\n"))
			assert.Equal(t, tt.wantValues, info.ReturnValues)
			assert.Equal(t, tt.wantRaises, info.Raises)
			assert.Equal(t, tt.wantYield, info.HasYield)
			if tt.wantBindings != nil {
				assert.Equal(t, tt.wantBindings, info.Bindings)
			}
			if tt.wantRebound != nil {
				rebound := make([]string, 0, len(info.Rebound))
				for name := range info.Rebound {
					rebound = append(rebound, name)
				}
				assert.ElementsMatch(t, tt.wantRebound, rebound)
			}
		})
	}
}

func TestParseDocstring(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		want        Docstring
		wantSummary Optional
	}{
		{
			name:        "single line",
			body:        "    \"\"\"Add numbers.\"\"\"\n    return 1",
			want:        Docstring{Found: true, Closed: true, Start: 0, End: 0, Quote: `"""`},
			wantSummary: Present("Add numbers."),
		},
		{
			name:        "multi line after blank and comment",
			body:        "\n    # note\n    r'''\n\n    Summary here.\n\n    More.\n    '''\n    pass",
			want:        Docstring{Found: true, Closed: true, Start: 2, End: 7, Prefix: "r", Quote: `'''`},
			wantSummary: Present("Summary here."),
		},
		{
			name:        "summary on opener line",
			body:        "    \"\"\"First line.\n\n    Details.\n    \"\"\"",
			want:        Docstring{Found: true, Closed: true, Start: 0, End: 3, Quote: `"""`},
			wantSummary: Present("First line."),
		},
		{
			name:        "unclosed opener",
			body:        "    \"\"\"\n    x = 1\ndef g():\n    \"\"\"Other.\"\"\"",
			want:        Docstring{Found: true, Start: 0, End: 0, Quote: `"""`},
			wantSummary: Absent,
		},
		{
			name:        "unclosed opener with text",
			body:        "    \"\"\"Typed so far\n    return 1",
			want:        Docstring{Found: true, Start: 0, End: 0, Quote: `"""`},
			wantSummary: Present("Typed so far"),
		},
		{
			name:        "no docstring",
			body:        "    x = 1\n    \"\"\"Not a docstring.\"\"\"",
			want:        Docstring{},
			wantSummary: Absent,
		},
		{
			name:        "plain string is not a docstring",
			body:        "    \"text\"",
			want:        Docstring{},
			wantSummary: Absent,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info := &FunctionInfo{}
			info.ParseDocstring(strings.Split(tt.body, "\n"))
			assert.Equal(t, tt.want, info.Docstring)
			assert.Equal(t, tt.wantSummary, info.DocstringSummary)
		})
	}
}

func TestParseBodySkipsDocstring(t *testing.T) {
	lines := strings.Split("    \"\"\"Docs.\n\n    raise KeyError\n    return 'x'\n    \"\"\"\n    return 1", "\n")

	info := &FunctionInfo{}
	info.ParseDocstring(lines)
	info.ParseBody(lines)

	assert.Empty(t, info.Raises)
	assert.Equal(t, []string{"1"}, info.ReturnValues)
}

func TestOptional(t *testing.T) {
	v, ok := Present("").Value()
	assert.True(t, ok)
	assert.Equal(t, "", v)

	_, ok = Absent.Value()
	assert.False(t, ok)
	assert.Equal(t, "TYPE", Absent.Or("TYPE"))
	assert.Equal(t, "int", Present("int").Or("TYPE"))
	assert.NotEqual(t, Absent, Present(""))
}
