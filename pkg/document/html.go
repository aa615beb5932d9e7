package document

import (
	"html"
	"strconv"
	"strings"
)

// maxListLevel caps the nesting level exposed to the editor through
// list classes.
const maxListLevel = 6

// MarkdownToHTML converts Markdown into the HTML-shaped tree consumed
// by the rich-text editor.
func MarkdownToHTML(markdown string) string {
	return ToHTML(Parse(markdown))
}

// ToHTML renders blocks as editor HTML, one top-level element per line.
func ToHTML(blocks []Block) string {
	var b strings.Builder
	for _, block := range blocks {
		start := b.Len()
		writeBlockHTML(&b, block)
		if b.Len() > start {
			b.WriteByte('\n')
		}
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func writeBlockHTML(b *strings.Builder, block Block) {
	switch n := block.(type) {
	case *Heading:
		if n == nil {
			return
		}
		tag := "h" + strconv.Itoa(clampHeadingLevel(n.Level))
		b.WriteString("<" + tag + ">")
		writeInlineHTML(b, n.Inline)
		b.WriteString("</" + tag + ">")

	case *Paragraph:
		if n == nil {
			return
		}
		b.WriteString("<p>")
		writeInlineHTML(b, n.Inline)
		b.WriteString("</p>")

	case *CodeBlock:
		if n == nil {
			return
		}
		b.WriteString("<pre><code")
		if n.Language != "" {
			b.WriteString(` class="language-` + html.EscapeString(n.Language) + `"`)
		}
		b.WriteString(">")
		if n.Text != "" {
			b.WriteString(html.EscapeString(n.Text) + "\n")
		}
		b.WriteString("</code></pre>")

	case *Blockquote:
		if n == nil {
			return
		}
		b.WriteString("<blockquote><p>")
		writeInlineHTML(b, n.Inline)
		b.WriteString("</p></blockquote>")

	case *List:
		if n == nil || len(n.Items) == 0 {
			return
		}
		writeListHTML(b, n, 1)
	}
}

func writeListHTML(b *strings.Builder, list *List, level int) {
	tag := "ul"
	if list.Type == OrderedList {
		tag = "ol"
	}

	b.WriteString("<" + tag + ` class="level-` + strconv.Itoa(min(level, maxListLevel)) + `"`)
	if list.Type == TaskList {
		b.WriteString(` data-type="taskList"`)
	}
	b.WriteString(">")

	for _, item := range list.Items {
		if item == nil {
			continue
		}
		if list.Type == TaskList {
			state := strconv.FormatBool(item.IsChecked())
			b.WriteString(`<li data-type="taskItem" data-checked="` + state + `">`)
			b.WriteString(`<input type="checkbox" disabled`)
			if item.IsChecked() {
				b.WriteString(` checked`)
			}
			b.WriteString(">")
		} else {
			b.WriteString("<li>")
		}
		writeInlineHTML(b, item.Inline)
		if item.Children != nil && len(item.Children.Items) > 0 {
			writeListHTML(b, item.Children, level+1)
		}
		b.WriteString("</li>")
	}

	b.WriteString("</" + tag + ">")
}
