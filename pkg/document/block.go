package document

import (
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

const (
	minHeadingLevel = 1
	maxHeadingLevel = 6
)

type BlockKind int

const (
	HeadingKind BlockKind = iota + 1
	ParagraphKind
	CodeBlockKind
	BlockquoteKind
	ListKind
)

func (k BlockKind) String() string {
	switch k {
	case HeadingKind:
		return "Heading"
	case ParagraphKind:
		return "Paragraph"
	case CodeBlockKind:
		return "CodeBlock"
	case BlockquoteKind:
		return "Blockquote"
	case ListKind:
		return "List"
	default:
		return "Unknown"
	}
}

// Block is one structural unit of a document.
type Block interface {
	Kind() BlockKind
}

type Blocks []Block

type Heading struct {
	Level  int
	Inline []Inline
}

var _ Block = (*Heading)(nil)

func (*Heading) Kind() BlockKind { return HeadingKind }

// NewHeading returns a heading with the level clamped to 1..6.
func NewHeading(level int, inline ...Inline) *Heading {
	return &Heading{Level: clampHeadingLevel(level), Inline: inline}
}

func clampHeadingLevel(level int) int {
	return min(max(level, minHeadingLevel), maxHeadingLevel)
}

type Paragraph struct {
	Inline []Inline
}

var _ Block = (*Paragraph)(nil)

func (*Paragraph) Kind() BlockKind { return ParagraphKind }

func (p *Paragraph) IsEmpty() bool {
	return PlainText(p.Inline) == ""
}

type CodeBlock struct {
	Language string
	Text     string
}

var _ Block = (*CodeBlock)(nil)

func (*CodeBlock) Kind() BlockKind { return CodeBlockKind }

// Blockquote holds the quoted text as inline spans. Paragraph breaks
// inside the quote are kept as "\n\n" in its text spans.
type Blockquote struct {
	Inline []Inline
}

var _ Block = (*Blockquote)(nil)

func (*Blockquote) Kind() BlockKind { return BlockquoteKind }

type ListType int

const (
	BulletList ListType = iota + 1
	OrderedList
	TaskList
)

func (t ListType) String() string {
	switch t {
	case BulletList:
		return "bullet"
	case OrderedList:
		return "ordered"
	case TaskList:
		return "task"
	default:
		return "unknown"
	}
}

type List struct {
	Type  ListType
	Items []*ListItem
}

var _ Block = (*List)(nil)

func (*List) Kind() BlockKind { return ListKind }

// ListItem is a single entry of a list. Checked is set if and only if
// the owning list is a TaskList.
type ListItem struct {
	Inline   []Inline
	Children *List
	Checked  *bool
}

func (i *ListItem) IsChecked() bool {
	return i.Checked != nil && *i.Checked
}

func checked(v bool) *bool {
	return &v
}

// Equal reports whether two documents have the same structure.
// Nil and empty slices are considered equal.
func Equal(a, b []Block) bool {
	return cmp.Equal(a, b, cmpopts.EquateEmpty())
}

// Diff returns a human-readable difference between two documents.
func Diff(a, b []Block) string {
	return cmp.Diff(a, b, cmpopts.EquateEmpty())
}

// emptyDocument is the minimal document an editor can mount.
func emptyDocument() []Block {
	return []Block{&Paragraph{}}
}
