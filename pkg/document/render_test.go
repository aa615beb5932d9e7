package document

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRender(t *testing.T) {
	testCases := []struct {
		name     string
		blocks   []Block
		expected string
	}{
		{
			name:     "Empty",
			blocks:   nil,
			expected: "",
		},
		{
			name:     "EmptyParagraphsAreSkipped",
			blocks:   []Block{&Paragraph{}, NewHeading(2, Text("Title")), &Paragraph{Inline: []Inline{Bold()}}},
			expected: "## Title",
		},
		{
			name:     "HeadingLevelClamped",
			blocks:   []Block{&Heading{Level: 9, Inline: []Inline{Text("deep")}}, &Heading{Level: 0}},
			expected: "###### deep\n\n#",
		},
		{
			name:     "HeadingOnOneLine",
			blocks:   []Block{NewHeading(1, Text("a\nb"))},
			expected: "# a b",
		},
		{
			name:     "CodeBlock",
			blocks:   []Block{&CodeBlock{Language: "go", Text: "x := 1\n\ny := 2"}},
			expected: "```go\nx := 1\n\ny := 2\n```",
		},
		{
			name:     "EmptyCodeBlock",
			blocks:   []Block{&CodeBlock{}},
			expected: "```\n```",
		},
		{
			name:     "FenceGrows",
			blocks:   []Block{&CodeBlock{Language: "md", Text: "```\ncode\n  ````"}},
			expected: "`````md\n```\ncode\n  ````\n`````",
		},
		{
			name:     "Blockquote",
			blocks:   []Block{&Blockquote{Inline: []Inline{Text("a "), Italic(Text("b")), Text("\n\nc")}}},
			expected: "> a *b*\n>\n> c",
		},
		{
			name: "Lists",
			blocks: []Block{
				&List{Type: OrderedList, Items: []*ListItem{
					{
						Inline: []Inline{Text("one")},
						Children: &List{Type: TaskList, Items: []*ListItem{
							{Inline: []Inline{Text("done")}, Checked: checked(true)},
							{Inline: []Inline{Text("todo")}, Checked: checked(false)},
						}},
					},
					{Inline: []Inline{Text("two\nlines")}},
					{},
				}},
				&List{Type: BulletList},
			},
			expected: "1. one\n  - [x] done\n  - [ ] todo\n2. two lines\n3.",
		},
		{
			name:     "ParagraphLinesAreNotBlocks",
			blocks:   []Block{&Paragraph{Inline: []Inline{Text("1. first\n- dash\n> quote\n# hash\n```js\nplain")}}},
			expected: "1\\. first\n\\- dash\n\\> quote\n\\# hash\n\\```js\nplain",
		},
		{
			name: "TaskBoxInBulletItem",
			blocks: []Block{
				&List{Type: BulletList, Items: []*ListItem{
					{Inline: []Inline{Text("[x] boxed")}},
					{Inline: []Inline{Text("[ ]")}},
				}},
			},
			expected: "- \\[x] boxed\n- \\[ ]",
		},
		{
			name: "NumberingSkipsNilItems",
			blocks: []Block{
				&List{Type: OrderedList, Items: []*ListItem{
					{Inline: []Inline{Text("a")}},
					nil,
					{Inline: []Inline{Text("c")}},
				}},
			},
			expected: "1. a\n2. c",
		},
		{
			name: "NilBlocksAreSkipped",
			blocks: []Block{
				(*Heading)(nil),
				(*Paragraph)(nil),
				(*CodeBlock)(nil),
				(*Blockquote)(nil),
				(*List)(nil),
				&Paragraph{Inline: []Inline{Text("kept")}},
			},
			expected: "kept",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, Render(tc.blocks))
			assert.Equal(t, tc.expected, DocumentToMarkdown(tc.blocks))
		})
	}
}

func TestRender_RoundTrip(t *testing.T) {
	testCases := []struct {
		name   string
		source string
	}{
		{name: "Paragraph", source: "**bold** text"},
		{name: "TaskList", source: "- [x] Done"},
		{name: "Nested", source: "- First level item 1\n  - Second level item 1\n    - Third level item 1\n    - Third level item 2\n  - Second level item 2\n- First level item 2"},
		{name: "Note", source: "# Shopping\n\nBuy *fresh* things:\n\n- [ ] milk\n- [x] bread\n\n> remember the `bag`\n>\n> and [coupons](https://example.com/c_1)\n\n```sh\necho done\n```"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.source, Render(Parse(tc.source)))
		})
	}

	assert.Equal(t, "1. Item A\n2. Item B", Render(Parse("5. Item A\n6. Item B")))
}

func TestRender_Idempotent(t *testing.T) {
	sources := []string{
		"",
		"####### Too Deep\n#\n#NoSpace",
		"* a\n+ b\n    * c\n  * d\n\n\n- e",
		"  - shallow\n- root\n      - deep\n  - back",
		"3. three\n- [ ] mixed\n   1. nested\n\ntext after",
		"- [X] upper\n- plain\n- [ ]",
		"para one\nstill one\n> quote\n\n>   spaced\n> > nested",
		"```\nunterminated\n\n# not heading",
		"````\n```\n````\n```js\n```",
		"*a _b* c_ and _a *b_ c* and *bold **and** italic*",
		"**unclosed and `code` with [link](u_1) and ~~strike~~",
		"a\r\nb\r\n\r\n- c\r\n",
		"1\\. not a list\n\\- nor this\n\\> nor a quote\n\\# nor a heading\n\\```",
		"- \\[x] not a task\n- [Go](https://en.wikipedia.org/wiki/Go_(language)) and [a\\]b](u\\(x)",
		"C:\\dir \\\\`code` \\# \uE0000\uE001",
	}

	for _, source := range sources {
		once := Parse(source)
		twice := Parse(Render(once))
		if !Equal(once, twice) {
			t.Fatalf("parse is not a fixed point for %q: %s", source, Diff(once, twice))
		}
		assert.Equal(t, Render(once), Render(twice))
	}
}

func TestRender_GeneratedTrees(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	for i := 0; i < 500; i++ {
		tree := genBlocks(r)
		markdown := Render(tree)
		if parsed := Parse(markdown); !Equal(tree, parsed) {
			t.Fatalf("tree did not survive markdown:\n%s\n%s", markdown, Diff(tree, parsed))
		}
	}
}

// The generators below produce documents that render to Markdown
// without ambiguity: emphasis holds words at both ends, lists are kept
// apart by paragraphs and line breaks only appear between top-level
// spans.

var genWords = []string{
	"apple", "note", "sticky", "Quick", "brown", "x", "todo", "Milk", "z",
	"-", "#", "1.", ">", "[x]", `C:\dir`, `v1\.2`, "\uE0000\uE001",
}

func genWord(r *rand.Rand) string {
	return genWords[r.Intn(len(genWords))]
}

func genPhrase(r *rand.Rand) string {
	words := make([]string, 1+r.Intn(3))
	for i := range words {
		words[i] = genWord(r)
	}
	return strings.Join(words, " ")
}

// genSpan returns a span of the given kind or a weaker one.
func genSpan(r *rand.Rand, kind InlineKind) Inline {
	wrapped := func(inner InlineKind) []Inline {
		children := []Inline{Text(genWord(r))}
		if r.Intn(2) == 0 {
			children = append(children, Text(" "), genSpan(r, inner), Text(" "))
		} else {
			children = append(children, Text(" "))
		}
		return normalizeInline(append(children, Text(genWord(r))))
	}

	switch kind {
	case BoldInline:
		return Bold(wrapped(ItalicInline)...)
	case ItalicInline:
		span := Italic(wrapped(StrikethroughInline)...)
		if r.Intn(2) == 0 {
			span = span.WithDelim("_")
		}
		return span
	case StrikethroughInline:
		return Strikethrough(wrapped(CodeInline)...)
	case CodeInline:
		if r.Intn(2) == 0 {
			label := genPhrase(r)
			if r.Intn(5) == 0 {
				label = ""
			}
			return Link(label, genHref(r))
		}
		return Code(genPhrase(r))
	}
	return Text(genPhrase(r))
}

func genHref(r *rand.Rand) string {
	href := "https://example.com/" + genWord(r) + "_" + genWord(r)
	switch r.Intn(4) {
	case 0:
		return href + "_(" + genWord(r) + ")"
	case 1:
		return href + "("
	case 2:
		return href + `\` + genWord(r)
	}
	return href
}

func genInline(r *rand.Rand, separators ...string) []Inline {
	kinds := []InlineKind{TextInline, BoldInline, ItalicInline, StrikethroughInline, CodeInline}
	var spans []Inline
	for i, n := 0, 1+r.Intn(4); i < n; i++ {
		if i > 0 {
			spans = append(spans, Text(separators[r.Intn(len(separators))]))
		}
		spans = append(spans, genSpan(r, kinds[r.Intn(len(kinds))]))
	}
	return normalizeInline(spans)
}

func genList(r *rand.Rand, depth int) *List {
	types := []ListType{BulletList, OrderedList, TaskList}
	list := &List{Type: types[r.Intn(len(types))]}
	for i, n := 0, 1+r.Intn(3); i < n; i++ {
		item := &ListItem{Inline: genInline(r, " ")}
		if list.Type == TaskList {
			item.Checked = checked(r.Intn(2) == 0)
		}
		if depth < 3 && r.Intn(3) == 0 {
			item.Children = genList(r, depth+1)
		}
		list.Items = append(list.Items, item)
	}
	return list
}

func genCode(r *rand.Rand) *CodeBlock {
	block := &CodeBlock{}
	if r.Intn(2) == 0 {
		block.Language = genWord(r)
	}
	var lines []string
	for i, n := 0, r.Intn(4); i < n; i++ {
		switch r.Intn(4) {
		case 0:
			lines = append(lines, "")
		case 1:
			lines = append(lines, strings.Repeat("`", 3+r.Intn(3)))
		case 2:
			lines = append(lines, "  "+genPhrase(r))
		default:
			lines = append(lines, "- "+genPhrase(r)+" **not bold**")
		}
	}
	block.Text = strings.Join(lines, "\n")
	return block
}

func genBlocks(r *rand.Rand) []Block {
	var (
		blocks   []Block
		lastList bool
	)
	for i, n := 0, 1+r.Intn(6); i < n; i++ {
		switch r.Intn(5) {
		case 0:
			var inline []Inline
			if r.Intn(4) > 0 {
				inline = genInline(r, " ")
			}
			blocks = append(blocks, NewHeading(1+r.Intn(6), inline...))
		case 1:
			blocks = append(blocks, genCode(r))
		case 2:
			blocks = append(blocks, &Blockquote{Inline: genInline(r, " ", "\n", "\n\n")})
		case 3:
			if lastList {
				blocks = append(blocks, &Paragraph{Inline: genInline(r, " ")})
			}
			blocks = append(blocks, genList(r, 0))
			lastList = true
			continue
		default:
			blocks = append(blocks, &Paragraph{Inline: genInline(r, " ", "\n")})
		}
		lastList = false
	}
	return blocks
}
