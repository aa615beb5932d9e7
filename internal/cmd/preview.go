package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/scribble-notes/scribble/internal/preview"
)

func previewCmd() *cobra.Command {
	var outline bool

	cmd := cobra.Command{
		Use:   "preview <file|->",
		Short: "Render a note with a CommonMark renderer.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readInput(cmd, args[0])
			if err != nil {
				return err
			}
			body := noteBody(data)

			if !outline {
				result, err := preview.Render(body)
				if err != nil {
					return err
				}
				return writeOutput(cmd, result)
			}

			headings, err := preview.Outline(body)
			if err != nil {
				return err
			}
			for _, h := range headings {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s%s\n", strings.Repeat("  ", h.Level-1), h.Text)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&outline, "outline", false, "Print the headings only.")

	return &cmd
}
