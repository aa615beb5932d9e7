package document

import (
	"regexp"
	"strconv"
	"strings"
)

var orderedMarkerRe = regexp.MustCompile(`^[0-9]+\.`)

// Render converts blocks back to Markdown. Blocks are separated by a
// blank line and the result has no trailing line break.
//
// The output is canonical rather than a copy of the original source:
// list markers become "-", ordered lists are numbered from 1 and nested
// lists are indented by two spaces per level. Parsing the output yields
// the tree that was rendered.
func Render(blocks []Block) string {
	var parts []string
	for _, block := range blocks {
		if s, ok := renderBlock(block); ok {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, "\n\n")
}

// DocumentToMarkdown is an alias of [Render].
func DocumentToMarkdown(blocks []Block) string {
	return Render(blocks)
}

func renderBlock(block Block) (string, bool) {
	switch b := block.(type) {
	case *Heading:
		if b == nil {
			return "", false
		}
		marker := strings.Repeat("#", clampHeadingLevel(b.Level))
		text := singleLine(RenderInline(b.Inline))
		if text == "" {
			return marker, true
		}
		return marker + " " + text, true

	case *Paragraph:
		if b == nil || b.IsEmpty() {
			return "", false
		}
		lines := strings.Split(RenderInline(b.Inline), "\n")
		for i, line := range lines {
			lines[i] = escapeBlockStart(line)
		}
		return strings.Join(lines, "\n"), true

	case *CodeBlock:
		if b == nil {
			return "", false
		}
		fence := strings.Repeat("`", max(3, longestFenceLine(b.Text)+1))
		if b.Text == "" {
			return fence + b.Language + "\n" + fence, true
		}
		return fence + b.Language + "\n" + b.Text + "\n" + fence, true

	case *Blockquote:
		if b == nil {
			return "", false
		}
		lines := strings.Split(RenderInline(b.Inline), "\n")
		for i, line := range lines {
			if line == "" {
				lines[i] = ">"
			} else {
				lines[i] = "> " + line
			}
		}
		return strings.Join(lines, "\n"), true

	case *List:
		if b == nil || len(b.Items) == 0 {
			return "", false
		}
		var lines []string
		renderList(&lines, b, 0)
		return strings.Join(lines, "\n"), true
	}
	return "", false
}

func renderList(lines *[]string, list *List, depth int) {
	indent := strings.Repeat("  ", depth)

	number := 0
	for _, item := range list.Items {
		if item == nil {
			continue
		}
		number++

		var marker string
		switch list.Type {
		case OrderedList:
			marker = strconv.Itoa(number) + "."
		case TaskList:
			if item.IsChecked() {
				marker = "- [x]"
			} else {
				marker = "- [ ]"
			}
		default:
			marker = "-"
		}

		line := indent + marker
		text := singleLine(RenderInline(item.Inline))
		if list.Type == BulletList && taskRe.MatchString(text) {
			text = `\` + text
		}
		if text != "" {
			line += " " + text
		}
		*lines = append(*lines, line)

		if item.Children != nil && len(item.Children.Items) > 0 {
			renderList(lines, item.Children, depth+1)
		}
	}
}

// escapeBlockStart keeps a paragraph line from being read as a heading,
// fence, quote or list item by escaping its marker.
func escapeBlockStart(line string) string {
	if !isSpecial(line) {
		return line
	}
	k := len(line) - len(strings.TrimLeft(line, " \t"))
	if m := orderedMarkerRe.FindStringIndex(line[k:]); m != nil {
		k += m[1] - 1
	}
	return line[:k] + `\` + line[k:]
}

// longestFenceLine returns the length of the longest line made only of
// backticks, which is what could close a fence early.
func longestFenceLine(text string) int {
	longest := 0
	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed != "" && strings.Trim(trimmed, "`") == "" {
			longest = max(longest, len(trimmed))
		}
	}
	return longest
}

func singleLine(s string) string {
	return strings.ReplaceAll(s, "\n", " ")
}
