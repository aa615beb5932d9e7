// Package preview renders note bodies with a CommonMark implementation.
// The output serves as a reference when checking what the document
// engine produces, and as a read-only view in the terminal.
package preview

import (
	"bytes"

	"github.com/pkg/errors"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"
)

var defaultRenderer = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
)

// Render converts a note body to HTML.
func Render(markdown string) ([]byte, error) {
	var buf bytes.Buffer
	if err := defaultRenderer.Convert([]byte(markdown), &buf); err != nil {
		return nil, errors.Wrap(err, "failed to render preview")
	}
	return buf.Bytes(), nil
}

// Heading is an entry of a note outline.
type Heading struct {
	Level int
	Text  string
}

// Outline lists the headings of a note body in document order.
func Outline(markdown string) ([]Heading, error) {
	source := []byte(markdown)
	doc := defaultRenderer.Parser().Parse(text.NewReader(source))

	var result []Heading
	err := ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		h, ok := n.(*ast.Heading)
		if !ok {
			return ast.WalkContinue, nil
		}
		result = append(result, Heading{Level: h.Level, Text: string(nodeText(h, source))})
		return ast.WalkSkipChildren, nil
	})
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return result, nil
}

func nodeText(n ast.Node, source []byte) []byte {
	var buf bytes.Buffer
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if t, ok := c.(*ast.Text); ok {
			buf.Write(t.Segment.Value(source))
			if t.SoftLineBreak() {
				buf.WriteByte(' ')
			}
			continue
		}
		buf.Write(nodeText(c, source))
	}
	return buf.Bytes()
}
