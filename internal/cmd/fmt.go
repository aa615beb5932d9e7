package cmd

import (
	"bytes"
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/scribble-notes/scribble/internal/log"
	"github.com/scribble-notes/scribble/pkg/document/editor"
)

type formatResult struct {
	name      string
	source    []byte
	formatted []byte
}

func (r formatResult) changed() bool {
	return !bytes.Equal(r.source, r.formatted)
}

func formatNote(data []byte, opts editor.Options) []byte {
	return editor.Serialize(editor.Deserialize(data, opts), opts)
}

func fmtCmd() *cobra.Command {
	var (
		write bool
		check bool
		all   bool
	)

	cmd := cobra.Command{
		Use:   "fmt [file...]",
		Short: "Format notes into canonical Markdown.",
		Long: `Format notes into canonical Markdown.

Files are printed to the standard output unless --write is used.
Use "-" to read from the standard input and --all to format every note
in the notes directory.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if all && len(args) > 0 {
				return errors.New("--all cannot be combined with file arguments")
			}
			if !all && len(args) == 0 {
				return errors.New("no files to format")
			}

			var (
				read func(string) ([]byte, error)
				save func(string, []byte) error
			)

			if all {
				store, err := getStore()
				if err != nil {
					return err
				}
				files, err := store.ListNoteFiles()
				if err != nil {
					return err
				}
				for _, f := range files {
					args = append(args, f.Name)
				}
				read = store.ReadNoteFile
				save = store.SaveNoteToFile
			} else {
				read = func(name string) ([]byte, error) { return readInput(cmd, name) }
				save = func(name string, data []byte) error {
					if name == "-" {
						return errors.New("cannot write to stdin")
					}
					return errors.WithStack(os.WriteFile(name, data, 0o644))
				}
			}

			results := make([]formatResult, len(args))
			opts := editorOptions()

			g := new(errgroup.Group)
			g.SetLimit(max(1, cfg.Format.Concurrency))
			for i, name := range args {
				g.Go(func() error {
					data, err := read(name)
					if err != nil {
						return err
					}
					results[i] = formatResult{name: name, source: data, formatted: formatNote(data, opts)}
					return nil
				})
			}
			if err := g.Wait(); err != nil {
				return err
			}

			logger := log.Get().Named("fmt")
			out := cmd.OutOrStdout()

			switch {
			case check:
				var unformatted int
				for _, r := range results {
					if r.changed() {
						unformatted++
						_, _ = fmt.Fprintln(out, r.name)
					}
				}
				if unformatted > 0 {
					return errors.Errorf("%d of %d notes are not formatted", unformatted, len(results))
				}
			case write:
				for _, r := range results {
					if !r.changed() {
						continue
					}
					if err := save(r.name, r.formatted); err != nil {
						return err
					}
					logger.Info("formatted note", zap.String("name", r.name))
				}
			default:
				for _, r := range results {
					if err := writeOutput(cmd, r.formatted); err != nil {
						return err
					}
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&write, "write", "w", false, "Write the result back to the source files.")
	cmd.Flags().BoolVar(&check, "check", false, "List files that are not formatted and fail if there are any.")
	cmd.Flags().BoolVar(&all, "all", false, "Format all notes in the notes directory.")
	cmd.MarkFlagsMutuallyExclusive("write", "check")

	return &cmd
}
