package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ImGajeed76/pydocstring/pkg/pydocstring"
	"github.com/ImGajeed76/pydocstring/pkg/pydocstring/config"
	"github.com/ImGajeed76/pydocstring/pkg/pydocstring/console"
	"github.com/ImGajeed76/pydocstring/pkg/pydocstring/source"
)

var styleDescriptions = map[string]string{
	"numpy":  "Parameters / Returns sections underlined with dashes",
	"google": "Args: / Returns: sections with name (type): lines",
	"sphinx": ":param: / :type: / :return: / :rtype: fields",
}

func newConfigCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show and change settings",
		Long: `Settings come from, lowest first: built-in defaults, the config file,
the style saved with "config style", PYDOCSTRING_* environment variables
and command line flags.

Keys: ` + strings.Join(config.Keys(), ", "),
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(cmd, true)
		},
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "get [KEY]",
			Short: "Print one setting, or all of them",
			Args:  cobra.MaximumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				keys := config.Keys()
				if len(args) == 1 {
					keys = args
				}
				for _, key := range keys {
					value, err := a.settings.Value(key)
					if err != nil {
						return err
					}
					if len(args) == 1 {
						fmt.Fprintln(a.out, value)
					} else {
						fmt.Fprintf(a.out, "%s = %q\n", key, value)
					}
				}
				return nil
			},
		},
		&cobra.Command{
			Use:   "set KEY VALUE",
			Short: "Save a setting to the config file",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.setConfigValue(args[0], args[1])
			},
		},
		&cobra.Command{
			Use:   "style [NAME]",
			Short: "Save the preferred docstring style in the system keyring",
			Args:  cobra.MaximumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.setStyle(args)
			},
		},
		&cobra.Command{
			Use:   "password USER@HOST[:PORT]",
			Short: "Save an SFTP password in the system keyring",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				if !a.interactive {
					return errNotInteractive
				}
				details, err := source.ParseServer(args[0])
				if err != nil {
					return err
				}
				if _, err := a.store.SetFromInput(passwordKey(details), passwordPrompt(details)); err != nil {
					return err
				}
				fmt.Fprintf(a.out, "Password saved for %s.\n", details)
				return nil
			},
		},
	)
	return cmd
}

// configPath is where "config set" writes.
func (a *app) configPath() (string, error) {
	if a.cfgFile != "" {
		return a.cfgFile, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("find home directory: %w", err)
	}
	return filepath.Join(home, ".pydocstring.yaml"), nil
}

func (a *app) setConfigValue(key, value string) error {
	value, err := config.CheckValue(key, value)
	if err != nil {
		return err
	}

	path, err := a.configPath()
	if err != nil {
		return err
	}

	v := viper.New()
	v.SetFs(a.fs)
	v.SetConfigFile(path)
	if exists, _ := afero.Exists(a.fs, path); exists {
		if err := v.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("read config %s: %w", path, err)
		}
	}
	v.Set(key, value)
	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write config %s: %w", path, err)
	}

	fmt.Fprintf(a.out, "%s = %q saved to %s\n", key, value, path)
	if key == config.KeyDocstringType {
		if style, ok := a.store.Style(); ok {
			fmt.Fprintf(a.out, "Note: the style saved in the keyring (%s) takes precedence.\n", style)
		}
	}
	return nil
}

func (a *app) setStyle(args []string) error {
	var name string
	if len(args) == 1 {
		name = args[0]
	} else {
		if !a.interactive {
			return fmt.Errorf("%w: pass the style name", errNotInteractive)
		}
		names := pydocstring.StyleNames()
		descriptions := make([]string, len(names))
		current := 0
		for i, n := range names {
			descriptions[i] = styleDescriptions[n]
			if style, err := pydocstring.ParseStyle(a.settings.Editor.DocstringType); err == nil && style.String() == n {
				current = i
			}
		}
		i, err := console.ListSelect(names, console.ListSelectOptions{
			Title:        "Docstring style:",
			Descriptions: descriptions,
			Default:      current,
		})
		if err != nil {
			return err
		}
		name = names[i]
	}

	style, err := a.store.SetStyle(name)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Docstring style set to %s.\n", style)
	return nil
}
