package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ImGajeed76/pydocstring/pkg/pydocstring/annotate"
	"github.com/ImGajeed76/pydocstring/pkg/pydocstring/console"
	"github.com/ImGajeed76/pydocstring/pkg/pydocstring/source"
)

type fileChange struct {
	path   *source.Path
	result annotate.Result
}

func newAnnotateCmd(a *app) *cobra.Command {
	var yes, dryRun bool

	cmd := &cobra.Command{
		Use:   "annotate PATH...",
		Short: "Add docstrings to every undocumented function",
		Long: `Add a docstring skeleton below the signature of every function that has
none. Directories are searched for .py and .pyi files. Paths may be local
or sftp://user@host[:port]/path URLs.`,
		Example: `  pydocstring annotate src/ --dry-run
  pydocstring annotate sftp://me@host/srv/app --yes --encoding latin1`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			src, err := a.source()
			if err != nil {
				return err
			}

			var files []*source.Path
			for _, arg := range args {
				p, err := source.Parse(arg)
				if err != nil {
					return err
				}
				found, err := src.List(ctx, p)
				if err != nil {
					return err
				}
				files = append(files, found...)
			}
			if len(files) == 0 {
				fmt.Fprintln(a.out, "No Python files found.")
				return nil
			}

			var bar *console.ProgressBar
			if a.interactive && len(files) > 1 {
				bar = console.NewProgressBar()
				defer func() { _ = bar.Close() }()
			}

			opts := annotate.Options{Options: a.options()}
			var changes []fileChange
			total := 0
			for i, p := range files {
				text, err := src.Read(ctx, p)
				if err != nil {
					return err
				}
				result, err := annotate.File(text, opts)
				if err != nil {
					return fmt.Errorf("%s: %w", p, err)
				}
				if bar != nil {
					bar.Update(int64(len(files)), int64(i+1), p.Name())
				}
				a.logger.Debugw("annotated", "path", p.String(), "added", len(result.Added), "skipped", result.Skipped)
				if len(result.Added) > 0 {
					changes = append(changes, fileChange{path: p, result: result})
					total += len(result.Added)
				}
			}
			if bar != nil {
				if err := bar.Finish(); err != nil {
					return err
				}
			}

			if len(changes) == 0 {
				fmt.Fprintln(a.out, "Every function already has a docstring.")
				return nil
			}
			for _, c := range changes {
				fmt.Fprintf(a.out, "%s: %s\n", c.path, strings.Join(c.result.Added, ", "))
			}
			if dryRun {
				return nil
			}

			if !yes {
				if !a.interactive {
					return fmt.Errorf("%w: pass --yes to write without confirmation", errNotInteractive)
				}
				confirm := console.DefaultYesNoOptions()
				confirm.Prompt = fmt.Sprintf("Write %d docstrings to %d files?", total, len(changes))
				confirm.DefaultYes = false
				ok, err := console.YesNo(confirm)
				if err != nil {
					return err
				}
				if !ok {
					fmt.Fprintln(a.out, "Nothing written.")
					return nil
				}
			}

			for _, c := range changes {
				if err := src.Write(ctx, c.path, c.result.Text); err != nil {
					return err
				}
			}
			fmt.Fprintf(a.out, "Wrote %d docstrings to %d files.\n", total, len(changes))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "write without asking")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "only list the functions that would be documented")
	cmd.Flags().StringP("encoding", "e", "", "text encoding of the files (IANA name)")
	addStyleFlags(cmd)
	return cmd
}
