// Package metadata embeds non-content note properties in a trailing
// HTML comment of a note file and extracts them back.
//
//	# Title
//
//	Body...
//
//	<!-- scribble-metadata: {"id":"…","color":"#ffcc00","pinned":true} -->
package metadata

import (
	"encoding/json"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"github.com/scribble-notes/scribble/internal/log"
)

const commentPrefix = "<!-- scribble-metadata:"

var commentRe = regexp.MustCompile(`^<!-- scribble-metadata: ?(.*?) ?-->[ \t\r\n]*$`)

// Metadata holds the note properties kept outside of the Markdown body.
// Booleans are pointers so that an explicit false survives a round trip.
type Metadata struct {
	ID       string `json:"id,omitempty"`
	Color    string `json:"color,omitempty"`
	Pinned   *bool  `json:"pinned,omitempty"`
	Favorite *bool  `json:"favorite,omitempty"`
}

func (m Metadata) IsEmpty() bool {
	return m.ID == "" && m.Color == "" && m.Pinned == nil && m.Favorite == nil
}

func (m Metadata) IsPinned() bool {
	return m.Pinned != nil && *m.Pinned
}

func (m Metadata) IsFavorite() bool {
	return m.Favorite != nil && *m.Favorite
}

func Bool(v bool) *bool {
	return &v
}

type Codec struct {
	logger *zap.Logger
}

func NewCodec(logger *zap.Logger) *Codec {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Codec{logger: logger}
}

// Extract splits a note file into its metadata and its body.
//
// Without a trailing metadata comment, the metadata is empty and the body
// is the whole text. A comment with a malformed payload is logged and
// dropped: the metadata is empty and the body has the comment removed.
func (c *Codec) Extract(text string) (Metadata, string) {
	idx := strings.LastIndex(text, commentPrefix)
	if idx < 0 || (idx > 0 && text[idx-1] != '\n') {
		return Metadata{}, text
	}

	m := commentRe.FindStringSubmatch(text[idx:])
	if m == nil {
		return Metadata{}, text
	}

	body := strings.TrimRight(text[:idx], "\r\n")

	var result Metadata
	if err := json.Unmarshal([]byte(m[1]), &result); err != nil {
		c.logger.Warn("ignoring malformed note metadata", zap.String("payload", m[1]), zap.Error(err))
		return Metadata{}, body
	}
	return result, body
}

// Embed appends the metadata comment to body. Empty metadata leaves
// body unchanged.
func (c *Codec) Embed(body string, metadata Metadata) string {
	if metadata.IsEmpty() {
		return body
	}

	// The default escaping of <, > and & keeps "-->" out of the payload.
	payload, err := json.Marshal(metadata)
	if err != nil {
		c.logger.Error("failed to encode note metadata", zap.Error(err))
		return body
	}

	comment := commentPrefix + " " + string(payload) + " -->"
	body = strings.TrimRight(body, "\r\n")
	if body == "" {
		return comment
	}
	return body + "\n\n" + comment
}

// Extract uses a codec logging to the process logger.
func Extract(text string) (Metadata, string) {
	return NewCodec(log.Get().Named("metadata")).Extract(text)
}

// Embed uses a codec logging to the process logger.
func Embed(body string, metadata Metadata) string {
	return NewCodec(log.Get().Named("metadata")).Embed(body, metadata)
}
