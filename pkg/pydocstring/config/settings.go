package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/afero"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"golang.org/x/text/encoding/ianaindex"

	"github.com/ImGajeed76/pydocstring/pkg/pydocstring"
	"github.com/ImGajeed76/pydocstring/pkg/pydocstring/log"
)

const (
	configName = ".pydocstring"
	envPrefix  = "PYDOCSTRING"
)

// Keys of the settings, as used in the config file.
const (
	KeyDocstringType = "editor.docstring_type"
	KeyQuote         = "editor.quote"
	KeyIndentChars   = "editor.indent_chars"
	KeyEncoding      = "source.encoding"
)

// Settings is the validated configuration.
type Settings struct {
	Editor EditorSettings `mapstructure:"editor" validate:"required"`
	Source SourceSettings `mapstructure:"source" validate:"required"`
}

type EditorSettings struct {
	DocstringType string `mapstructure:"docstring_type" validate:"required,docstyle"`
	Quote         string `mapstructure:"quote" validate:"required,quotechar"`
	IndentChars   string `mapstructure:"indent_chars" validate:"required,indent"`
}

type SourceSettings struct {
	Encoding string `mapstructure:"encoding" validate:"required,encoding"`
}

// Default returns the settings used when nothing else is configured.
func Default() Settings {
	return Settings{
		Editor: EditorSettings{
			DocstringType: pydocstring.NumPy.String(),
			Quote:         `"`,
			IndentChars:   pydocstring.DefaultIndent,
		},
		Source: SourceSettings{Encoding: "utf-8"},
	}
}

// Keys lists every setting key in display order.
func Keys() []string {
	return []string{KeyDocstringType, KeyQuote, KeyIndentChars, KeyEncoding}
}

// field returns the setting stored under key.
func (s *Settings) field(key string) (*string, error) {
	switch key {
	case KeyDocstringType:
		return &s.Editor.DocstringType, nil
	case KeyQuote:
		return &s.Editor.Quote, nil
	case KeyIndentChars:
		return &s.Editor.IndentChars, nil
	case KeyEncoding:
		return &s.Source.Encoding, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownKey, key)
}

// Value returns the setting stored under key.
func (s *Settings) Value(key string) (string, error) {
	f, err := s.field(key)
	if err != nil {
		return "", err
	}
	return *f, nil
}

// CheckValue reports whether value is acceptable for key, returning the
// normalized value to store.
func CheckValue(key, value string) (string, error) {
	s := Default()
	f, err := s.field(key)
	if err != nil {
		return "", err
	}
	*f = value
	s.normalize()
	if err := s.Validate(); err != nil {
		return "", err
	}
	return *f, nil
}

// normalize expands the indent shorthands: a number of spaces or "tab".
func (s *Settings) normalize() {
	indent := strings.TrimSpace(s.Editor.IndentChars)
	if n, err := strconv.Atoi(indent); err == nil && n > 0 && n <= 16 {
		s.Editor.IndentChars = strings.Repeat(" ", n)
		return
	}
	if strings.EqualFold(indent, "tab") || indent == `\t` {
		s.Editor.IndentChars = "\t"
	}
}

// Options returns the generation options the settings describe.
func (s *Settings) Options() pydocstring.Options {
	style, _ := pydocstring.ParseStyle(s.Editor.DocstringType)
	return pydocstring.Options{
		Style:      style,
		Quote:      s.Editor.Quote[0],
		IndentUnit: s.Editor.IndentChars,
	}
}

// ErrUnknownKey is returned for a setting key that does not exist.
var ErrUnknownKey = errors.New("unknown setting")

var validate *validator.Validate

func init() {
	validate = validator.New()
	_ = validate.RegisterValidation("docstyle", func(fl validator.FieldLevel) bool {
		_, err := pydocstring.ParseStyle(fl.Field().String())
		return err == nil
	})
	_ = validate.RegisterValidation("quotechar", func(fl validator.FieldLevel) bool {
		q := fl.Field().String()
		return q == `"` || q == "'"
	})
	_ = validate.RegisterValidation("indent", func(fl validator.FieldLevel) bool {
		return strings.Trim(fl.Field().String(), " \t") == ""
	})
	_ = validate.RegisterValidation("encoding", func(fl validator.FieldLevel) bool {
		enc, err := ianaindex.IANA.Encoding(fl.Field().String())
		return err == nil && enc != nil
	})
}

// Validate checks every field and reports all failures at once.
func (s *Settings) Validate() error {
	err := validate.Struct(s)
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	messages := make([]string, 0, len(verrs))
	for _, e := range verrs {
		messages = append(messages, fmt.Sprintf("%s: rule %q rejects %q", e.Namespace(), e.Tag(), e.Value()))
	}
	return fmt.Errorf("invalid configuration: %s", strings.Join(messages, "; "))
}

// LoadOptions says where settings come from. Everything is optional.
type LoadOptions struct {
	// Viper defaults to a fresh instance.
	Viper *viper.Viper
	// Fs is where config and .env files are read, the OS by default.
	Fs afero.Fs
	// ConfigFile overrides the search for .pydocstring.yaml.
	ConfigFile string
	// Store supplies the saved style preference.
	Store *Store
	// DotEnv names a .env file loaded into the environment first. Empty
	// skips it; a missing file is ignored.
	DotEnv string
	// Flags are bound by FlagBindings, setting key to flag name.
	Flags        *pflag.FlagSet
	FlagBindings map[string]string
	Logger       *zap.SugaredLogger
}

// Load resolves settings from, lowest first: defaults, the config file, the
// keyring preference, the environment and changed flags.
func Load(opts LoadOptions) (*Settings, error) {
	logger := log.Nop(opts.Logger)
	v := opts.Viper
	if v == nil {
		v = viper.New()
	}
	if opts.Fs != nil {
		v.SetFs(opts.Fs)
	}

	if opts.DotEnv != "" {
		if err := godotenv.Load(opts.DotEnv); err != nil && !errors.Is(err, os.ErrNotExist) {
			logger.Warnw("ignoring unreadable env file", "path", opts.DotEnv, "error", err)
		}
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	defaults := Default()
	for _, key := range Keys() {
		value, _ := defaults.Value(key)
		v.SetDefault(key, value)
	}

	if opts.ConfigFile != "" {
		v.SetConfigFile(opts.ConfigFile)
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
		v.AddConfigPath(".")
		v.SetConfigName(configName)
		v.SetConfigType("yaml")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if opts.ConfigFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config %s: %w", opts.ConfigFile, err)
		}
		logger.Debugw("no config file found, using defaults and environment")
	} else {
		logger.Debugw("using config file", "path", v.ConfigFileUsed())
	}

	for key, flag := range opts.FlagBindings {
		if opts.Flags == nil {
			break
		}
		if f := opts.Flags.Lookup(flag); f != nil {
			if err := v.BindPFlag(key, f); err != nil {
				return nil, fmt.Errorf("bind flag %s: %w", flag, err)
			}
		}
	}

	if opts.Store != nil && !explicit(KeyDocstringType, opts) {
		if style, ok := opts.Store.Style(); ok {
			v.Set(KeyDocstringType, style.String())
		}
	}

	var settings Settings
	if err := v.Unmarshal(&settings); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	settings.normalize()
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	return &settings, nil
}

// explicit reports whether key was given by environment or a changed flag.
func explicit(key string, opts LoadOptions) bool {
	env := envPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
	if _, ok := os.LookupEnv(env); ok {
		return true
	}
	if opts.Flags == nil {
		return false
	}
	flag, ok := opts.FlagBindings[key]
	return ok && opts.Flags.Changed(flag)
}
