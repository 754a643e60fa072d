package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ImGajeed76/pydocstring/pkg/pydocstring"
	"github.com/ImGajeed76/pydocstring/pkg/pydocstring/highlight"
	"github.com/ImGajeed76/pydocstring/pkg/pydocstring/source"
)

// addStyleFlags registers the flags overriding the editor settings.
func addStyleFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("style", "s", "", "docstring style: numpy, google or sphinx")
	cmd.Flags().StringP("quote", "q", "", `quote character of the docstring, " or '`)
	cmd.Flags().StringP("indent", "i", "", `indentation unit: spaces, a number of spaces, or "tab"`)
}

func newGenerateCmd(a *app) *cobra.Command {
	var (
		line  int
		color bool
	)

	cmd := &cobra.Command{
		Use:   "generate FILE",
		Short: "Print the docstring for the function at a line",
		Long: `Print what would be inserted after the opening triple quote of the
function whose def is on --line, or whose signature ends just above it.`,
		Example: `  pydocstring generate app.py --line 12
  pydocstring generate sftp://me@host/srv/app.py --line 3 --style google`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if line < 1 {
				return fmt.Errorf("--line must be 1 or more, got %d", line)
			}

			p, err := source.Parse(args[0])
			if err != nil {
				return err
			}
			src, err := a.source()
			if err != nil {
				return err
			}
			text, err := src.Read(cmd.Context(), p)
			if err != nil {
				return err
			}

			doc, ok, err := pydocstring.GenerateDocstring(text, line-1, a.options())
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("%w at %s:%d", errNoFunction, p, line)
			}
			if color {
				doc = highlight.Docstring(doc)
			}
			fmt.Fprintln(a.out, doc)
			return nil
		},
	}

	cmd.Flags().IntVarP(&line, "line", "l", 0, "1-based line of the def, or of the line below the signature")
	cmd.Flags().BoolVar(&color, "color", false, "colour the output")
	_ = cmd.MarkFlagRequired("line")
	addStyleFlags(cmd)
	return cmd
}
