package cmd

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/multierr"

	"github.com/scribble-notes/scribble/internal/notes"
	"github.com/scribble-notes/scribble/pkg/document/editor"
)

func noteFlags(n *editor.Note) string {
	var flags []string
	if n.Metadata.IsPinned() {
		flags = append(flags, "pinned")
	}
	if n.Metadata.IsFavorite() {
		flags = append(flags, "favorite")
	}
	return strings.Join(flags, ",")
}

func listCmd() *cobra.Command {
	var long bool

	cmd := cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List notes. Pinned notes come first.",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := getStore()
			if err != nil {
				return err
			}

			loaded, err := store.LoadAll(cmd.Context(), notes.LoadOptions{
				Editor:      editorOptions(),
				Concurrency: cfg.Format.Concurrency,
			})
			for _, e := range multierr.Errors(err) {
				_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "warning: %s\n", e)
			}
			if loaded == nil && err != nil {
				return err
			}

			sort.SliceStable(loaded, func(i, j int) bool {
				return loaded[i].Note.Metadata.IsPinned() && !loaded[j].Note.Metadata.IsPinned()
			})

			header := []string{"NAME", "TITLE", "FLAGS"}
			if long {
				header = append(header, "COLOR", "ID", "MODIFIED")
			}

			t := newTable(terminalWidth(cmd.OutOrStdout(), 0), header...)
			for _, n := range loaded {
				row := []string{n.File.Name, editor.Title(n.Note), noteFlags(n.Note)}
				if long {
					row = append(row, n.Note.Metadata.Color, n.Note.Metadata.ID, n.File.ModTime.Format("2006-01-02 15:04"))
				}
				t.AddRow(row...)
			}
			return t.Render(cmd.OutOrStdout())
		},
	}

	cmd.Flags().BoolVarP(&long, "long", "l", false, "Show metadata and modification times.")

	return &cmd
}
