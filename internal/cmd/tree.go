package cmd

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/scribble-notes/scribble/pkg/document"
)

var (
	kindStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	attrStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	valueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
)

func treeCmd() *cobra.Command {
	cmd := cobra.Command{
		Use:   "tree <file|->",
		Short: "Print the document tree of a note.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readInput(cmd, args[0])
			if err != nil {
				return err
			}
			writeTree(cmd.OutOrStdout(), document.Parse(noteBody(data)))
			return nil
		},
	}
	return &cmd
}

type treePrinter struct {
	w io.Writer
}

func (p treePrinter) line(depth int, kind string, attrs ...string) {
	var b strings.Builder
	b.WriteString(strings.Repeat("  ", depth))
	b.WriteString(kindStyle.Render(kind))
	for i := 0; i+1 < len(attrs); i += 2 {
		b.WriteString(" " + attrStyle.Render(attrs[i]+"=") + valueStyle.Render(attrs[i+1]))
	}
	_, _ = fmt.Fprintln(p.w, b.String())
}

func writeTree(w io.Writer, blocks []document.Block) {
	p := treePrinter{w: w}
	for _, block := range blocks {
		switch b := block.(type) {
		case *document.Heading:
			p.line(0, b.Kind().String(), "level", strconv.Itoa(b.Level))
			p.inline(1, b.Inline)
		case *document.Paragraph:
			p.line(0, b.Kind().String())
			p.inline(1, b.Inline)
		case *document.CodeBlock:
			p.line(0, b.Kind().String(), "language", strconv.Quote(b.Language), "text", strconv.Quote(b.Text))
		case *document.Blockquote:
			p.line(0, b.Kind().String())
			p.inline(1, b.Inline)
		case *document.List:
			p.list(0, b)
		}
	}
}

func (p treePrinter) list(depth int, list *document.List) {
	p.line(depth, "List", "type", list.Type.String())
	for _, item := range list.Items {
		if list.Type == document.TaskList {
			p.line(depth+1, "Item", "checked", strconv.FormatBool(item.IsChecked()))
		} else {
			p.line(depth+1, "Item")
		}
		p.inline(depth+2, item.Inline)
		if item.Children != nil {
			p.list(depth+2, item.Children)
		}
	}
}

func (p treePrinter) inline(depth int, spans []document.Inline) {
	for _, span := range spans {
		switch span.Kind {
		case document.TextInline, document.CodeInline:
			p.line(depth, span.Kind.String(), "text", strconv.Quote(span.Text))
		case document.LinkInline:
			p.line(depth, span.Kind.String(), "text", strconv.Quote(span.Text), "href", strconv.Quote(span.Href))
		default:
			p.line(depth, span.Kind.String())
			p.inline(depth+1, span.Children)
		}
	}
}
