package cmd

import (
	"github.com/atotto/clipboard"
	"github.com/gabriel-vasile/mimetype"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/scribble-notes/scribble/internal/log"
	"github.com/scribble-notes/scribble/pkg/document"
	"github.com/scribble-notes/scribble/pkg/document/metadata"
)

const (
	formatMarkdown = "markdown"
	formatHTML     = "html"
)

// noteBody drops the metadata comment, which is not part of the content.
func noteBody(data []byte) string {
	_, body := metadata.Extract(string(data))
	return body
}

func toHTML(data []byte) string {
	return document.MarkdownToHTML(noteBody(data))
}

func toMarkdown(data []byte) (string, error) {
	result, err := document.HTMLToMarkdown(string(data))
	return result, errors.Wrap(err, "failed to convert html")
}

func copyToClipboard(s string) error {
	return errors.Wrap(clipboard.WriteAll(s), "failed to copy to clipboard")
}

func htmlCmd() *cobra.Command {
	var copyResult bool

	cmd := cobra.Command{
		Use:   "html <file|->",
		Short: "Convert a Markdown note into editor HTML.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readInput(cmd, args[0])
			if err != nil {
				return err
			}
			result := toHTML(data)
			if copyResult {
				return copyToClipboard(result)
			}
			return writeOutput(cmd, withNewline(result))
		},
	}

	cmd.Flags().BoolVar(&copyResult, "copy", false, "Copy the result to the clipboard instead of printing it.")

	return &cmd
}

func markdownCmd() *cobra.Command {
	var copyResult bool

	cmd := cobra.Command{
		Use:   "markdown <file|->",
		Short: "Convert editor HTML into canonical Markdown.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readInput(cmd, args[0])
			if err != nil {
				return err
			}
			result, err := toMarkdown(data)
			if err != nil {
				return err
			}
			if copyResult {
				return copyToClipboard(result)
			}
			return writeOutput(cmd, withNewline(result))
		},
	}

	cmd.Flags().BoolVar(&copyResult, "copy", false, "Copy the result to the clipboard instead of printing it.")

	return &cmd
}

// detectFormat tells HTML apart from Markdown. A leading metadata
// comment would look like HTML, so it is checked first.
func detectFormat(data []byte) string {
	if md, _ := metadata.Extract(string(data)); !md.IsEmpty() {
		return formatMarkdown
	}
	if mimetype.Detect(data).Is("text/html") {
		return formatHTML
	}
	return formatMarkdown
}

func convertCmd() *cobra.Command {
	var from string

	cmd := cobra.Command{
		Use:   "convert <file|->",
		Short: "Convert between Markdown and editor HTML, detecting the input format.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readInput(cmd, args[0])
			if err != nil {
				return err
			}

			format := from
			if format == "" {
				format = detectFormat(data)
				log.Get().Debug("detected input format", zap.String("format", format))
			}

			switch format {
			case formatHTML:
				result, err := toMarkdown(data)
				if err != nil {
					return err
				}
				return writeOutput(cmd, withNewline(result))
			case formatMarkdown:
				return writeOutput(cmd, withNewline(toHTML(data)))
			default:
				return errors.Errorf("unknown input format %q", format)
			}
		},
	}

	cmd.Flags().StringVar(&from, "from", "", `Input format, "markdown" or "html". Detected when empty.`)

	return &cmd
}
