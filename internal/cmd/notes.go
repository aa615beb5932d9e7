package cmd

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/scribble-notes/scribble/pkg/document"
	"github.com/scribble-notes/scribble/pkg/document/editor"
	"github.com/scribble-notes/scribble/pkg/document/metadata"
)

func newCmd() *cobra.Command {
	var (
		color    string
		pinned   bool
		favorite bool
		body     string
	)

	cmd := cobra.Command{
		Use:   "new <title...>",
		Short: "Create a note and print its file name.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := getStore()
			if err != nil {
				return err
			}

			title := strings.Join(args, " ")
			name := store.NewNoteName(title)

			blocks := document.Parse(body)
			if len(blocks) == 1 {
				if p, ok := blocks[0].(*document.Paragraph); ok && p.IsEmpty() {
					blocks = nil
				}
			}
			note := &editor.Note{
				Blocks: append(document.Blocks{document.NewHeading(1, document.Text(title))}, blocks...),
				Metadata: metadata.Metadata{
					Color: color,
				},
			}
			if cmd.Flags().Changed("pinned") {
				note.Metadata.Pinned = metadata.Bool(pinned)
			}
			if cmd.Flags().Changed("favorite") {
				note.Metadata.Favorite = metadata.Bool(favorite)
			}

			resolver, err := getIdentityResolver()
			if err != nil {
				return err
			}
			opts := editorOptions()
			opts.IdentityResolver = resolver
			opts.Key = name

			if err := store.SaveNoteToFile(name, editor.Serialize(note, opts)); err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), name)
			return errors.WithStack(err)
		},
	}

	cmd.Flags().StringVar(&body, "body", "", "Markdown content following the title.")
	cmd.Flags().StringVar(&color, "color", "", "Note color.")
	cmd.Flags().BoolVar(&pinned, "pinned", false, "Pin the note.")
	cmd.Flags().BoolVar(&favorite, "favorite", false, "Mark the note as favorite.")

	return &cmd
}

func rmCmd() *cobra.Command {
	cmd := cobra.Command{
		Use:   "rm <name...>",
		Short: "Delete notes by their file names.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := getStore()
			if err != nil {
				return err
			}
			for _, name := range args {
				if err := store.DeleteNoteFile(name); err != nil {
					return err
				}
			}
			return nil
		},
	}
	return &cmd
}

func watchCmd() *cobra.Command {
	cmd := cobra.Command{
		Use:   "watch",
		Short: "Print changes to note files until interrupted.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := getStore()
			if err != nil {
				return err
			}
			events, err := store.Watch(cmd.Context())
			if err != nil {
				return err
			}
			for ev := range events {
				if _, err := fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", ev.Type, ev.Name); err != nil {
					return errors.WithStack(err)
				}
			}
			return nil
		},
	}
	return &cmd
}

func exportCmd() *cobra.Command {
	cmd := cobra.Command{
		Use:   "export <dir>",
		Short: "Copy all note files into another directory.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := getStore()
			if err != nil {
				return err
			}
			return store.Export(args[0])
		},
	}
	return &cmd
}
