package document

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBlockKind_String(t *testing.T) {
	assert.Equal(t, "Heading", (&Heading{}).Kind().String())
	assert.Equal(t, "Paragraph", (&Paragraph{}).Kind().String())
	assert.Equal(t, "CodeBlock", (&CodeBlock{}).Kind().String())
	assert.Equal(t, "Blockquote", (&Blockquote{}).Kind().String())
	assert.Equal(t, "List", (&List{}).Kind().String())
	assert.Equal(t, "Unknown", BlockKind(0).String())
}

func TestNewHeading(t *testing.T) {
	testCases := []struct {
		level    int
		expected int
	}{
		{-1, 1},
		{0, 1},
		{1, 1},
		{6, 6},
		{7, 6},
		{100, 6},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.expected, NewHeading(tc.level).Level)
	}
}

func TestParagraph_IsEmpty(t *testing.T) {
	assert.True(t, (&Paragraph{}).IsEmpty())
	assert.True(t, (&Paragraph{Inline: []Inline{Bold()}}).IsEmpty())
	assert.False(t, (&Paragraph{Inline: []Inline{Text("a")}}).IsEmpty())
	assert.False(t, (&Paragraph{Inline: []Inline{Code(" ")}}).IsEmpty())
}

func TestListItem_IsChecked(t *testing.T) {
	assert.False(t, (&ListItem{}).IsChecked())
	assert.False(t, (&ListItem{Checked: checked(false)}).IsChecked())
	assert.True(t, (&ListItem{Checked: checked(true)}).IsChecked())
}

func TestEqual(t *testing.T) {
	a := []Block{&Heading{Level: 1}}
	b := []Block{&Heading{Level: 1, Inline: []Inline{}}}
	assert.True(t, Equal(a, b))
	assert.Empty(t, Diff(a, b))

	c := []Block{NewHeading(2)}
	assert.False(t, Equal(a, c))
	assert.NotEmpty(t, Diff(a, c))
}
