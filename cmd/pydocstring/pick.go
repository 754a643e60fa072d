package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ImGajeed76/pydocstring/pkg/pydocstring/annotate"
	"github.com/ImGajeed76/pydocstring/pkg/pydocstring/console"
	"github.com/ImGajeed76/pydocstring/pkg/pydocstring/editor"
	"github.com/ImGajeed76/pydocstring/pkg/pydocstring/source"
)

// functionItems turns the functions of a file into selector entries whose
// preview shows the signature with the docstring that would be written.
func functionItems(funcs []annotate.Function) []console.FunctionItem {
	items := make([]console.FunctionItem, len(funcs))
	for i, fn := range funcs {
		items[i] = console.FunctionItem{
			Name:       fn.Name,
			Line:       fn.Line + 1,
			Documented: fn.Documented,
			Preview:    "```python\n" + fn.Signature.Text + "\n" + fn.Docstring + "\n```\n",
		}
	}
	return items
}

func newPickCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pick FILE",
		Short: "Choose a function and write its docstring",
		Args:  cobra.ExactArgs(1),
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
			if err != nil {
				return err
			}

			opts := a.options()
			funcs, err := annotate.Functions(text, opts)
			if err != nil {
				return err
			}
			if len(funcs) == 0 {
				return fmt.Errorf("%w in %s", errNoFunction, p)
			}

			i, err := console.SelectFunction(p.String(), functionItems(funcs))
			if err != nil {
				return err
			}
			fn := funcs[i]

			buf := editor.NewTextBuffer(text, opts.IndentUnit)
			buf.SetCursor(editor.Position{Line: fn.Line})
			ok, err := editor.WriteDocstringAtCursor(buf, opts)
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("%w for %s", errNoFunction, fn.Name)
			}
			if err := src.Write(ctx, p, buf.String()); err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Docstring written for %s on line %d.\n", fn.Name, fn.Line+1)
			return nil
		},
	}
	addStyleFlags(cmd)
	return cmd
}
