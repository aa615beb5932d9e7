package metadata

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestEmbed(t *testing.T) {
	codec := NewCodec(nil)

	result := codec.Embed("Hello", Metadata{ID: "abc", Pinned: Bool(true)})
	assert.Equal(t, "Hello\n\n<!-- scribble-metadata: {\"id\":\"abc\",\"pinned\":true} -->", result)

	t.Run("EmptyMetadata", func(t *testing.T) {
		assert.Equal(t, "Hello", codec.Embed("Hello", Metadata{}))
		assert.Equal(t, "Hello\n\n", codec.Embed("Hello\n\n", Metadata{}))
	})

	t.Run("TrailingLineBreaks", func(t *testing.T) {
		result := codec.Embed("Hello\r\n\n\n", Metadata{Color: "#ffcc00"})
		assert.Equal(t, "Hello\n\n<!-- scribble-metadata: {\"color\":\"#ffcc00\"} -->", result)
	})

	t.Run("EmptyBody", func(t *testing.T) {
		assert.Equal(t, `<!-- scribble-metadata: {"id":"a"} -->`, codec.Embed("", Metadata{ID: "a"}))
	})

	t.Run("CommentTerminatorInPayload", func(t *testing.T) {
		result := codec.Embed("Hello", Metadata{Color: "x-->y"})
		assert.Equal(t, 1, strings.Count(result, "-->"))

		metadata, body := codec.Extract(result)
		assert.Equal(t, "x-->y", metadata.Color)
		assert.Equal(t, "Hello", body)
	})
}

func TestExtract(t *testing.T) {
	testCases := []struct {
		name     string
		text     string
		metadata Metadata
		body     string
	}{
		{
			name:     "RoundTrip",
			text:     "Hello\n\n<!-- scribble-metadata: {\"id\":\"abc\",\"pinned\":true} -->",
			metadata: Metadata{ID: "abc", Pinned: Bool(true)},
			body:     "Hello",
		},
		{
			name:     "AllFields",
			text:     "# T\n\n<!-- scribble-metadata: {\"id\":\"i\",\"color\":\"#000000\",\"pinned\":false,\"favorite\":true} -->\n\n",
			metadata: Metadata{ID: "i", Color: "#000000", Pinned: Bool(false), Favorite: Bool(true)},
			body:     "# T",
		},
		{
			name:     "CRLF",
			text:     "Hello\r\n\r\n<!-- scribble-metadata: {\"id\":\"a\"} -->\r\n",
			metadata: Metadata{ID: "a"},
			body:     "Hello",
		},
		{
			name:     "CommentOnly",
			text:     "<!-- scribble-metadata: {\"id\":\"a\"} -->\n",
			metadata: Metadata{ID: "a"},
			body:     "",
		},
		{
			name: "NoComment",
			text: "Hello\n",
			body: "Hello\n",
		},
		{
			name: "CommentNotLast",
			text: "<!-- scribble-metadata: {\"id\":\"a\"} -->\n\nmore text",
			body: "<!-- scribble-metadata: {\"id\":\"a\"} -->\n\nmore text",
		},
		{
			name: "CommentNotOnItsOwnLine",
			text: "see <!-- scribble-metadata: {\"id\":\"a\"} -->",
			body: "see <!-- scribble-metadata: {\"id\":\"a\"} -->",
		},
		{
			name:     "UnknownKeys",
			text:     "x\n<!-- scribble-metadata: {\"id\":\"a\",\"tags\":[\"t\"]} -->",
			metadata: Metadata{ID: "a"},
			body:     "x",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			metadata, body := NewCodec(nil).Extract(tc.text)
			assert.Equal(t, tc.metadata, metadata)
			assert.Equal(t, tc.body, body)
		})
	}
}

func TestExtract_Malformed(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	codec := NewCodec(zap.New(core))

	metadata, body := codec.Extract("Body\n\n<!-- scribble-metadata: {not valid json} -->")
	assert.True(t, metadata.IsEmpty())
	assert.Equal(t, "Body", body)

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "ignoring malformed note metadata", entry.Message)
	assert.Equal(t, "{not valid json}", entry.ContextMap()["payload"])
}

func TestMetadata_Flags(t *testing.T) {
	assert.True(t, Metadata{}.IsEmpty())
	assert.False(t, Metadata{Pinned: Bool(false)}.IsEmpty())

	assert.False(t, Metadata{}.IsPinned())
	assert.False(t, Metadata{Pinned: Bool(false)}.IsPinned())
	assert.True(t, Metadata{Pinned: Bool(true)}.IsPinned())
	assert.True(t, Metadata{Favorite: Bool(true)}.IsFavorite())
}

func TestPackageFunctions(t *testing.T) {
	text := Embed("Hello", Metadata{ID: "abc", Favorite: Bool(false)})
	metadata, body := Extract(text)
	assert.Equal(t, Metadata{ID: "abc", Favorite: Bool(false)}, metadata)
	assert.Equal(t, "Hello", body)
}
