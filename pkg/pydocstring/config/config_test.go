package config

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zalando/go-keyring"

	"github.com/ImGajeed76/pydocstring/pkg/pydocstring"
)

func writeConfig(t *testing.T, fs afero.Fs, body string) string {
	t.Helper()
	path := "/home/user/.pydocstring.yaml"
	require.NoError(t, afero.WriteFile(fs, path, []byte(body), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		env     map[string]string
		want    Settings
		wantErr string
	}{
		{
			name: "defaults",
			file: "",
			want: Settings{
				Editor: EditorSettings{DocstringType: "numpy", Quote: `"`, IndentChars: "    "},
				Source: SourceSettings{Encoding: "utf-8"},
			},
		},
		{
			name: "file values",
			file: "editor:\n  docstring_type: Google\n  quote: \"'\"\n  indent_chars: \"\\t\"\nsource:\n  encoding: latin1\n",
			want: Settings{
				Editor: EditorSettings{DocstringType: "Google", Quote: "'", IndentChars: "\t"},
				Source: SourceSettings{Encoding: "latin1"},
			},
		},
		{
			name: "environment wins over file",
			file: "editor:\n  docstring_type: google\n",
			env:  map[string]string{"PYDOCSTRING_EDITOR_DOCSTRING_TYPE": "sphinxdoc"},
			want: Settings{
				Editor: EditorSettings{DocstringType: "sphinxdoc", Quote: `"`, IndentChars: "    "},
				Source: SourceSettings{Encoding: "utf-8"},
			},
		},
		{
			name:    "unknown style",
			file:    "editor:\n  docstring_type: epytext\n",
			wantErr: "docstyle",
		},
		{
			name:    "bad quote and indent",
			file:    "editor:\n  quote: \"`\"\n  indent_chars: \"ab\"\n",
			wantErr: "indent",
		},
		{
			name:    "unknown encoding",
			file:    "source:\n  encoding: klingon\n",
			wantErr: "encoding",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			fs := afero.NewMemMapFs()
			opts := LoadOptions{Viper: viper.New(), Fs: fs}
			if tt.file != "" {
				opts.ConfigFile = writeConfig(t, fs, tt.file)
			}

			got, err := Load(opts)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, *got)
		})
	}
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load(LoadOptions{Viper: viper.New(), Fs: afero.NewMemMapFs(), ConfigFile: "/nope.yaml"})
	assert.Error(t, err)
}

func TestLoadPrecedence(t *testing.T) {
	keyring.MockInit()
	store, err := NewStore(Service)
	require.NoError(t, err)
	_, err = store.SetStyle("google")
	require.NoError(t, err)

	bindings := map[string]string{KeyDocstringType: "style"}
	newFlags := func() *pflag.FlagSet {
		flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
		flags.String("style", "", "")
		return flags
	}

	fs := afero.NewMemMapFs()
	path := writeConfig(t, fs, "editor:\n  docstring_type: sphinx\n")

	t.Run("store beats file", func(t *testing.T) {
		got, err := Load(LoadOptions{Viper: viper.New(), Fs: fs, ConfigFile: path, Store: store, Flags: newFlags(), FlagBindings: bindings})
		require.NoError(t, err)
		assert.Equal(t, "google", got.Editor.DocstringType)
	})

	t.Run("flag beats store", func(t *testing.T) {
		flags := newFlags()
		require.NoError(t, flags.Parse([]string{"--style", "numpy"}))
		got, err := Load(LoadOptions{Viper: viper.New(), Fs: fs, ConfigFile: path, Store: store, Flags: flags, FlagBindings: bindings})
		require.NoError(t, err)
		assert.Equal(t, "numpy", got.Editor.DocstringType)
	})

	t.Run("environment beats store", func(t *testing.T) {
		t.Setenv("PYDOCSTRING_EDITOR_DOCSTRING_TYPE", "numpydoc")
		got, err := Load(LoadOptions{Viper: viper.New(), Fs: fs, ConfigFile: path, Store: store})
		require.NoError(t, err)
		assert.Equal(t, "numpydoc", got.Editor.DocstringType)
	})
}

func TestSettingsOptions(t *testing.T) {
	s := Settings{
		Editor: EditorSettings{DocstringType: "Sphinx", Quote: "'", IndentChars: "\t"},
		Source: SourceSettings{Encoding: "utf-8"},
	}
	assert.Equal(t, pydocstring.Options{Style: pydocstring.Sphinx, Quote: '\'', IndentUnit: "\t"}, s.Options())
}

func TestStore(t *testing.T) {
	keyring.MockInit()

	_, err := NewStore("")
	assert.Error(t, err)

	store, err := NewStore("pydocstring-test")
	require.NoError(t, err)

	assert.False(t, store.Exists("k"))
	assert.Equal(t, "", store.Get("k"))
	assert.Error(t, store.Set("", "v"))

	require.NoError(t, store.SetDefault("k", "first"))
	require.NoError(t, store.SetDefault("k", "second"))
	assert.Equal(t, "first", store.Get("k"))

	require.NoError(t, store.Delete("k"))
	require.NoError(t, store.Delete("k"))
	assert.False(t, store.Exists("k"))

	_, ok := store.Style()
	assert.False(t, ok)

	_, err = store.SetStyle("epytext")
	assert.ErrorIs(t, err, pydocstring.ErrUnknownStyle)

	style, err := store.SetStyle("GoogleDoc")
	require.NoError(t, err)
	assert.Equal(t, pydocstring.Google, style)
	assert.Equal(t, "google", store.Get(StyleKey))

	got, ok := store.Style()
	assert.True(t, ok)
	assert.Equal(t, pydocstring.Google, got)

	require.NoError(t, store.Set(StyleKey, "garbage"))
	_, ok = store.Style()
	assert.False(t, ok)
}

func TestCheckValue(t *testing.T) {
	tests := []struct {
		key     string
		value   string
		want    string
		wantErr error
	}{
		{key: KeyDocstringType, value: "Googledoc", want: "Googledoc"},
		{key: KeyIndentChars, value: "2", want: "  "},
		{key: KeyIndentChars, value: "tab", want: "\t"},
		{key: KeyIndentChars, value: `\t`, want: "\t"},
		{key: KeyQuote, value: "'", want: "'"},
		{key: KeyEncoding, value: "windows-1252", want: "windows-1252"},
		{key: KeyQuote, value: "x"},
		{key: KeyIndentChars, value: "0"},
		{key: "editor.colour", value: "red", wantErr: ErrUnknownKey},
	}

	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			got, err := CheckValue(tt.key, tt.value)
			if tt.want == "" {
				require.Error(t, err)
				if tt.wantErr != nil {
					assert.ErrorIs(t, err, tt.wantErr)
				}
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLoadNormalizesIndent(t *testing.T) {
	fs := afero.NewMemMapFs()
	path := writeConfig(t, fs, "editor:\n  indent_chars: 2\n")

	got, err := Load(LoadOptions{Viper: viper.New(), Fs: fs, ConfigFile: path})
	require.NoError(t, err)
	assert.Equal(t, "  ", got.Editor.IndentChars)

	for _, key := range Keys() {
		_, err := got.Value(key)
		assert.NoError(t, err)
	}
	_, err = got.Value("nope")
	assert.ErrorIs(t, err, ErrUnknownKey)
}
