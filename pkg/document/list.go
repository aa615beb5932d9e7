package document

import (
	"regexp"
	"strings"
)

var (
	listItemRe = regexp.MustCompile(`^([ \t]*)(?:([-*+])|[0-9]+\.)(?:[ \t]+(.*))?$`)
	taskRe     = regexp.MustCompile(`^\[([ xX])\](?:[ \t]+(.*))?$`)
)

// listLine is a single list item line as found in the source.
type listLine struct {
	indent  int
	typ     ListType
	checked bool
	text    string // content without the marker and the task box
	rest    string // content without the marker only
}

func isListItem(line string) bool {
	return listItemRe.MatchString(line)
}

func parseListLine(line string) (listLine, bool) {
	m := listItemRe.FindStringSubmatch(line)
	if m == nil {
		return listLine{}, false
	}

	item := listLine{
		indent: len(m[1]),
		typ:    OrderedList,
		rest:   strings.TrimSpace(m[3]),
	}
	item.text = item.rest

	if m[2] != "" {
		item.typ = BulletList
		if t := taskRe.FindStringSubmatch(item.rest); t != nil {
			item.typ = TaskList
			item.checked = t[1] != " "
			item.text = strings.TrimSpace(t[2])
		}
	}
	return item, true
}

type listFrame struct {
	indent int
	list   *List
}

// parseList consumes all contiguous list lines starting at start and
// returns the top-level list along with the index of the first line
// that does not belong to it. Blank lines between items are skipped.
//
// Nesting is resolved with a stack of open lists. An item indented
// deeper than the innermost open list opens exactly one new level under
// the previous item, however large the jump; a shallower item closes
// lists until it fits. The first item of a level decides its type.
func parseList(lines []string, start int) (*List, int) {
	var (
		root  *List
		stack []listFrame
		i     = start
	)

	for ; i < len(lines); i++ {
		if isBlank(lines[i]) {
			continue
		}
		item, ok := parseListLine(lines[i])
		if !ok {
			break
		}

		if root == nil {
			root = &List{Type: item.typ}
			stack = append(stack, listFrame{indent: item.indent, list: root})
			appendListItem(root, item)
			continue
		}

		for len(stack) > 1 && item.indent < stack[len(stack)-1].indent {
			stack = stack[:len(stack)-1]
		}

		top := &stack[len(stack)-1]
		switch {
		case item.indent > top.indent:
			parent := top.list.Items[len(top.list.Items)-1]
			if parent.Children == nil {
				parent.Children = &List{Type: item.typ}
			}
			stack = append(stack, listFrame{indent: item.indent, list: parent.Children})
		case item.indent < top.indent:
			// Only the outermost list can be reached here; it adopts
			// the shallower indentation.
			top.indent = item.indent
		}

		appendListItem(stack[len(stack)-1].list, item)
	}

	return root, i
}

func appendListItem(list *List, line listLine) {
	item := &ListItem{}
	text := line.text

	switch {
	case list.Type == TaskList:
		item.Checked = checked(line.typ == TaskList && line.checked)
	case line.typ == TaskList:
		// The box is kept as literal text outside of task lists.
		text = line.rest
	}

	item.Inline = ParseInline(text)
	list.Items = append(list.Items, item)
}
