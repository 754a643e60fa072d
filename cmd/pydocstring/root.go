package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/ImGajeed76/pydocstring/internal"
	"github.com/ImGajeed76/pydocstring/pkg/pydocstring"
	"github.com/ImGajeed76/pydocstring/pkg/pydocstring/config"
	"github.com/ImGajeed76/pydocstring/pkg/pydocstring/console"
	"github.com/ImGajeed76/pydocstring/pkg/pydocstring/log"
	"github.com/ImGajeed76/pydocstring/pkg/pydocstring/sftp"
	"github.com/ImGajeed76/pydocstring/pkg/pydocstring/source"
)

var (
	errNoFunction     = errors.New("no function signature found")
	errNotInteractive = errors.New("this command needs an interactive terminal")
)

// flagBindings maps setting keys to the flags that override them.
var flagBindings = map[string]string{
	config.KeyDocstringType: "style",
	config.KeyQuote:         "quote",
	config.KeyIndentChars:   "indent",
	config.KeyEncoding:      "encoding",
}

// app carries what every command shares.
type app struct {
	fs          afero.Fs
	out         io.Writer
	errOut      io.Writer
	interactive bool
	dotEnv      string

	cfgFile string
	verbose bool

	store    *config.Store
	settings *config.Settings
	logger   *zap.SugaredLogger
}

func newApp() *app {
	return &app{
		fs:          afero.NewOsFs(),
		out:         os.Stdout,
		errOut:      os.Stderr,
		interactive: isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd()),
		dotEnv:      ".env",
	}
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "pydocstring",
		Short: "Generate Python docstrings from function signatures.",
		Long: `pydocstring writes NumPy, Google or Sphinx docstring skeletons for Python
functions. Parameters, defaults, annotations, raised exceptions and what
the body returns or yields are filled in; everything else is left as a
placeholder.`,
		Version:       internal.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(cmd, false)
		},
	}
	root.SetOut(a.out)
	root.SetErr(a.errOut)

	root.PersistentFlags().StringVarP(&a.cfgFile, "config", "c", "", "config file (default is $HOME/.pydocstring.yaml or ./.pydocstring.yaml)")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(
		newGenerateCmd(a),
		newAnnotateCmd(a),
		newEditCmd(a),
		newPickCmd(a),
		newConfigCmd(a),
	)
	return root
}

// init sets up logging, the keyring store and the settings for cmd. With
// allowMissing a --config file that does not exist yet is not an error.
func (a *app) init(cmd *cobra.Command, allowMissing bool) error {
	log.SetVerbose(a.verbose)
	a.logger = log.Logger()

	store, err := config.NewStore(config.Service)
	if err != nil {
		return err
	}
	a.store = store

	cfgFile := a.cfgFile
	if exists, _ := afero.Exists(a.fs, cfgFile); allowMissing && !exists {
		cfgFile = ""
	}

	settings, err := config.Load(config.LoadOptions{
		Viper:        viper.New(),
		Fs:           a.fs,
		ConfigFile:   cfgFile,
		DotEnv:       a.dotEnv,
		Store:        store,
		Flags:        cmd.Flags(),
		FlagBindings: flagBindings,
		Logger:       a.logger,
	})
	if err != nil {
		return err
	}
	a.settings = settings
	return nil
}

func (a *app) options() pydocstring.Options {
	opts := a.settings.Options()
	opts.Logger = a.logger
	return opts
}

func (a *app) source() (*source.Source, error) {
	return source.New(source.Options{
		Fs:       a.fs,
		Encoding: a.settings.Source.Encoding,
		Password: a.password,
		Logger:   a.logger,
	})
}

func passwordKey(details sftp.ConnectionDetails) string {
	return "sftp:" + details.String()
}

func passwordPrompt(details sftp.ConnectionDetails) console.InputOptions {
	return console.InputOptions{
		Prompt:    "Password for " + details.String() + ":",
		CharLimit: 256,
		Width:     40,
		Required:  true,
		Secret:    true,
	}
}

// password looks up a stored SFTP password, asking for one when none is
// stored and a terminal is available.
func (a *app) password(details sftp.ConnectionDetails) (string, error) {
	key := passwordKey(details)
	if password, ok := a.store.Lookup(key); ok {
		return password, nil
	}
	if !a.interactive {
		return "", fmt.Errorf("no stored password for %s, run: pydocstring config password %s", details, details)
	}
	return a.store.SetFromInput(key, passwordPrompt(details))
}

func printError(w io.Writer, err error) {
	if errors.Is(err, console.ErrCancelled) {
		fmt.Fprintln(w, "Cancelled.")
		return
	}
	fmt.Fprintf(w, "Error: %v\n", err)
}
