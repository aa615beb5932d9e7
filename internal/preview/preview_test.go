package preview

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scribble-notes/scribble/pkg/document"
)

func TestRender(t *testing.T) {
	result, err := Render("# Hello\n\n- [x] done\n- [ ] todo\n\n~~gone~~")
	require.NoError(t, err)

	html := string(result)
	assert.Contains(t, html, "<h1>Hello</h1>")
	assert.Contains(t, html, `<input checked="" disabled="" type="checkbox"`)
	assert.Contains(t, html, "<del>gone</del>")
}

func TestOutline(t *testing.T) {
	outline, err := Outline("# Title\n\nText\n\n## Section **bold**\n\n### `code`")
	require.NoError(t, err)
	assert.Equal(t, []Heading{
		{Level: 1, Text: "Title"},
		{Level: 2, Text: "Section bold"},
		{Level: 3, Text: "code"},
	}, outline)
}

// Canonical output of the engine is plain CommonMark for the constructs
// it supports, so both implementations agree on the outline.
func TestOutline_CanonicalMarkdown(t *testing.T) {
	blocks := document.Parse("# One\n\npara\n\n###### Six\n\n- a\n  - b")
	outline, err := Outline(document.Render(blocks))
	require.NoError(t, err)
	assert.Equal(t, []Heading{{Level: 1, Text: "One"}, {Level: 6, Text: "Six"}}, outline)
}
