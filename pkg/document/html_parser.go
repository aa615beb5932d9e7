package document

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/andybalholm/cascadia"
	"github.com/pkg/errors"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

var (
	checkboxSelector = cascadia.MustCompile(`input[type="checkbox"]`)
	whitespaceRe     = regexp.MustCompile(`[ \t\r\n\f]+`)
)

// HTMLToMarkdown converts editor HTML into canonical Markdown.
func HTMLToMarkdown(src string) (string, error) {
	blocks, err := FromHTML(src)
	if err != nil {
		return "", err
	}
	return Render(blocks), nil
}

// FromHTML reads an editor HTML fragment into blocks. Unknown elements
// are unwrapped, so their text content is kept. Like [Parse], it returns
// a single empty paragraph when there is no content.
func FromHTML(src string) ([]Block, error) {
	context := &html.Node{
		Type:     html.ElementNode,
		Data:     "body",
		DataAtom: atom.Body,
	}
	nodes, err := html.ParseFragment(strings.NewReader(src), context)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse html")
	}

	blocks := htmlBlocks(nodes)
	if len(blocks) == 0 {
		return emptyDocument(), nil
	}
	return blocks, nil
}

func htmlChildren(n *html.Node) (result []*html.Node) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		result = append(result, c)
	}
	return
}

func htmlAttr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

func htmlText(n *html.Node) string {
	if n.Type == html.TextNode {
		return n.Data
	}
	var b strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		b.WriteString(htmlText(c))
	}
	return b.String()
}

func headingLevel(a atom.Atom) int {
	switch a {
	case atom.H1:
		return 1
	case atom.H2:
		return 2
	case atom.H3:
		return 3
	case atom.H4:
		return 4
	case atom.H5:
		return 5
	case atom.H6:
		return 6
	}
	return 0
}

func htmlBlocks(nodes []*html.Node) (result []Block) {
	var pending []*html.Node

	flush := func() {
		if inline := trimInline(htmlInline(pending)); len(inline) > 0 {
			result = append(result, &Paragraph{Inline: inline})
		}
		pending = nil
	}

	for _, n := range nodes {
		switch n.Type {
		case html.TextNode:
			pending = append(pending, n)
			continue
		case html.ElementNode:
		default:
			continue
		}

		if level := headingLevel(n.DataAtom); level > 0 {
			flush()
			result = append(result, NewHeading(level, lineInline(htmlInline(htmlChildren(n)))...))
			continue
		}

		switch n.DataAtom {
		case atom.P:
			flush()
			if inline := trimInline(htmlInline(htmlChildren(n))); len(inline) > 0 {
				result = append(result, &Paragraph{Inline: inline})
			}
		case atom.Pre:
			flush()
			result = append(result, htmlCodeBlock(n))
		case atom.Blockquote:
			flush()
			result = append(result, &Blockquote{Inline: htmlQuoteInline(n)})
		case atom.Ul, atom.Ol:
			flush()
			if list := htmlList(n); len(list.Items) > 0 {
				result = append(result, list)
			}
		case atom.Div, atom.Section, atom.Article, atom.Main, atom.Header, atom.Footer, atom.Body:
			flush()
			result = append(result, htmlBlocks(htmlChildren(n))...)
		case atom.Hr, atom.Img, atom.Script, atom.Style:
			flush()
		default:
			pending = append(pending, n)
		}
	}
	flush()
	return result
}

func htmlCodeBlock(pre *html.Node) *CodeBlock {
	block := &CodeBlock{}
	source := pre
	for c := pre.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && c.DataAtom == atom.Code {
			source = c
			break
		}
	}
	if class, ok := htmlAttr(source, "class"); ok {
		for _, name := range strings.Fields(class) {
			if lang, found := strings.CutPrefix(name, "language-"); found {
				block.Language = lang
				break
			}
		}
	}
	block.Text = strings.TrimSuffix(htmlText(source), "\n")
	return block
}

// htmlQuoteInline joins the paragraphs of a quote with a blank line.
func htmlQuoteInline(quote *html.Node) []Inline {
	var (
		result  []Inline
		pending []*html.Node
	)
	appendParagraph := func(inline []Inline) {
		inline = trimInline(inline)
		if len(inline) == 0 {
			return
		}
		if len(result) > 0 {
			result = append(result, Text("\n\n"))
		}
		result = append(result, inline...)
	}

	for c := quote.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && (c.DataAtom == atom.P || c.DataAtom == atom.Div) {
			appendParagraph(htmlInline(pending))
			pending = nil
			appendParagraph(htmlInline(htmlChildren(c)))
			continue
		}
		pending = append(pending, c)
	}
	appendParagraph(htmlInline(pending))
	return normalizeInline(result)
}

func htmlList(n *html.Node) *List {
	list := &List{Type: BulletList}
	if n.DataAtom == atom.Ol {
		list.Type = OrderedList
	} else if v, _ := htmlAttr(n, "data-type"); v == "taskList" {
		list.Type = TaskList
	}

	first := true
	for li := n.FirstChild; li != nil; li = li.NextSibling {
		if li.Type != html.ElementNode || li.DataAtom != atom.Li {
			continue
		}

		var (
			content []*html.Node
			nested  []*List
		)
		for c := li.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.ElementNode && (c.DataAtom == atom.Ul || c.DataAtom == atom.Ol) {
				nested = append(nested, htmlList(c))
				continue
			}
			content = append(content, c)
		}

		isTask, isChecked := htmlTaskState(li, content)
		if first && isTask && list.Type == BulletList {
			list.Type = TaskList
		}
		first = false

		item := &ListItem{Inline: lineInline(htmlInline(content))}
		if list.Type == TaskList {
			item.Checked = checked(isChecked)
		}
		for _, child := range nested {
			item.Children = mergeLists(item.Children, child)
		}
		list.Items = append(list.Items, item)
	}
	return list
}

// htmlTaskState looks for a checkbox among the own content of a list
// item, ignoring nested lists.
func htmlTaskState(li *html.Node, content []*html.Node) (isTask, isChecked bool) {
	if v, ok := htmlAttr(li, "data-checked"); ok {
		isTask = true
		isChecked, _ = strconv.ParseBool(v)
	}
	if v, _ := htmlAttr(li, "data-type"); v == "taskItem" {
		isTask = true
	}
	for _, c := range content {
		box := c
		if !checkboxSelector.Match(c) {
			box = checkboxSelector.MatchFirst(c)
		}
		if box == nil {
			continue
		}
		isTask = true
		if _, ok := htmlAttr(box, "checked"); ok {
			isChecked = true
		}
		break
	}
	return isTask, isChecked
}

// mergeLists keeps at most one nested list per item. Items of extra
// lists join the first one and take over its type.
func mergeLists(dst, src *List) *List {
	if len(src.Items) == 0 {
		return dst
	}
	if dst == nil {
		return src
	}
	for _, item := range src.Items {
		switch {
		case dst.Type == TaskList && item.Checked == nil:
			item.Checked = checked(false)
		case dst.Type != TaskList:
			item.Checked = nil
		}
		dst.Items = append(dst.Items, item)
	}
	return dst
}

func htmlInline(nodes []*html.Node) (result []Inline) {
	for _, n := range nodes {
		switch n.Type {
		case html.TextNode:
			result = append(result, Text(whitespaceRe.ReplaceAllString(n.Data, " ")))
			continue
		case html.ElementNode:
		default:
			continue
		}

		children := htmlChildren(n)
		switch n.DataAtom {
		case atom.Strong, atom.B:
			result = append(result, Bold(htmlInline(children)...))
		case atom.Em, atom.I:
			result = append(result, Italic(htmlInline(children)...))
		case atom.S, atom.Del, atom.Strike:
			result = append(result, Strikethrough(htmlInline(children)...))
		case atom.Code:
			result = append(result, Code(htmlText(n)))
		case atom.A:
			href, ok := htmlAttr(n, "href")
			if !ok || href == "" {
				result = append(result, htmlInline(children)...)
				continue
			}
			label := strings.TrimSpace(whitespaceRe.ReplaceAllString(htmlText(n), " "))
			result = append(result, Link(label, href))
		case atom.Br:
			result = append(result, Text("\n"))
		case atom.Input, atom.Img, atom.Script, atom.Style:
		default:
			result = append(result, htmlInline(children)...)
		}
	}
	return normalizeInline(result)
}

// trimInline removes spaces and line breaks around the content and
// spaces around inner line breaks.
func trimInline(spans []Inline) []Inline {
	spans = normalizeInline(spans)
	for i := range spans {
		if spans[i].Kind != TextInline {
			continue
		}
		text := spans[i].Text
		for strings.Contains(text, " \n") || strings.Contains(text, "\n ") {
			text = strings.ReplaceAll(text, " \n", "\n")
			text = strings.ReplaceAll(text, "\n ", "\n")
		}
		if i == 0 {
			text = strings.TrimLeft(text, " \n")
		}
		if i == len(spans)-1 {
			text = strings.TrimRight(text, " \n")
		}
		spans[i].Text = text
	}
	return normalizeInline(spans)
}

// lineInline is trimInline for content that must fit on one line.
func lineInline(spans []Inline) []Inline {
	for i := range spans {
		if spans[i].Kind == TextInline {
			spans[i].Text = strings.ReplaceAll(spans[i].Text, "\n", " ")
		}
	}
	return trimInline(spans)
}
