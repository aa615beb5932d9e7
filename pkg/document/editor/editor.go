package editor

import (
	"strings"

	"go.uber.org/zap"

	"github.com/scribble-notes/scribble/pkg/document"
	"github.com/scribble-notes/scribble/pkg/document/identity"
	"github.com/scribble-notes/scribble/pkg/document/metadata"
)

// Note is a note file split into its content tree and its sidecar
// metadata.
type Note struct {
	Blocks   document.Blocks
	Metadata metadata.Metadata
}

type Options struct {
	Logger           *zap.Logger
	IdentityResolver *identity.IdentityResolver
	// Key identifies the note for the identity cache, usually its path.
	Key any
}

func (o Options) logger() *zap.Logger {
	if o.Logger == nil {
		return zap.NewNop()
	}
	return o.Logger
}

// Deserialize reads a note file. It never fails: anything that is not
// understood is kept as text.
func Deserialize(data []byte, opts Options) *Note {
	logger := opts.logger()

	md, body := metadata.NewCodec(logger).Extract(string(data))
	note := &Note{
		Blocks:   document.Parse(body),
		Metadata: md,
	}
	resolveID(note, opts)

	logger.Debug("deserialized note", zap.Int("blocks", len(note.Blocks)), zap.String("id", note.Metadata.ID))
	return note
}

// Serialize writes a note file: the canonical Markdown of the blocks
// followed by the metadata comment and a final line break. When the
// resolver requires identities, a missing ID is assigned to note before
// writing.
func Serialize(note *Note, opts Options) []byte {
	if note == nil {
		panic("editor: Serialize called with a nil note")
	}
	resolveID(note, opts)

	text := metadata.NewCodec(opts.logger()).Embed(document.Render(note.Blocks), note.Metadata)
	if text == "" {
		return nil
	}
	return []byte(text + "\n")
}

func resolveID(note *Note, opts Options) {
	if !opts.IdentityResolver.NoteEnabled() {
		return
	}
	note.Metadata.ID, _ = opts.IdentityResolver.GetNoteID(opts.Key, note.Metadata.ID)
}

// Title returns the text of a leading level-1 heading, or an empty
// string when the note does not start with one.
func Title(note *Note) string {
	if note == nil || len(note.Blocks) == 0 {
		return ""
	}
	h, ok := note.Blocks[0].(*document.Heading)
	if !ok || h.Level != 1 {
		return ""
	}
	return strings.TrimSpace(document.PlainText(h.Inline))
}
