package main

import (
	"errors"
	"fmt"
	"io/fs"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/ImGajeed76/pydocstring/pkg/pydocstring/editor"
	"github.com/ImGajeed76/pydocstring/pkg/pydocstring/source"
)

func newEditCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "edit FILE",
		Short: "Edit a file with docstrings written as you type",
		Long: `Open FILE in a small terminal editor. Typing a triple quote as the first
line of a function body completes the docstring; ctrl+d writes or
regenerates the docstring of the function at the cursor; ctrl+s saves.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !a.interactive {
				return errNotInteractive
			}
			ctx := cmd.Context()

			p, err := source.Parse(args[0])
			if err != nil {
				return err
			}
			src, err := a.source()
			if err != nil {
				return err
			}
			text, err := src.Read(ctx, p)
			if err != nil && !errors.Is(err, fs.ErrNotExist) {
				return err
			}

			save := func(text string) error {
				return src.Write(ctx, p, text)
			}
			final, err := tea.NewProgram(editor.NewModel(p.String(), text, a.options(), save), tea.WithAltScreen()).Run()
			if err != nil {
				return err
			}
			if m, ok := final.(editor.Model); ok && m.Dirty() {
				fmt.Fprintln(a.errOut, "Unsaved changes were discarded.")
			}
			return nil
		},
	}
	addStyleFlags(cmd)
	return cmd
}
