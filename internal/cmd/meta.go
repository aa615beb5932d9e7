package cmd

import (
	"encoding/json"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/scribble-notes/scribble/pkg/document/metadata"
)

func metaCmd() *cobra.Command {
	var (
		color    string
		pinned   bool
		favorite bool
		id       string
	)

	cmd := cobra.Command{
		Use:   "meta <file|->",
		Short: "Show or change the metadata of a note.",
		Long: `Show or change the metadata of a note.

Without flags, the metadata is printed as JSON. With flags, the note is
updated in place, or printed when reading from the standard input.
The note body is kept as it is.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readInput(cmd, args[0])
			if err != nil {
				return err
			}

			md, body := metadata.Extract(string(data))

			flags := cmd.Flags()
			changed := false
			if flags.Changed("id") {
				md.ID, changed = id, true
			}
			if flags.Changed("color") {
				md.Color, changed = color, true
			}
			if flags.Changed("pinned") {
				md.Pinned, changed = metadata.Bool(pinned), true
			}
			if flags.Changed("favorite") {
				md.Favorite, changed = metadata.Bool(favorite), true
			}

			if !changed {
				raw, err := json.MarshalIndent(md, "", "  ")
				if err != nil {
					return errors.WithStack(err)
				}
				return writeOutput(cmd, append(raw, '\n'))
			}

			result := withNewline(metadata.Embed(body, md))
			if args[0] == "-" {
				return writeOutput(cmd, result)
			}
			return errors.WithStack(os.WriteFile(args[0], result, 0o644))
		},
	}

	cmd.Flags().StringVar(&id, "id", "", "Set the note ID.")
	cmd.Flags().StringVar(&color, "color", "", "Set the note color. An empty value removes it.")
	cmd.Flags().BoolVar(&pinned, "pinned", false, "Pin or unpin the note.")
	cmd.Flags().BoolVar(&favorite, "favorite", false, "Mark or unmark the note as favorite.")

	return &cmd
}
