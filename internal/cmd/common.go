package cmd

import (
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/scribble-notes/scribble/internal/log"
	"github.com/scribble-notes/scribble/internal/notes"
	"github.com/scribble-notes/scribble/pkg/document/editor"
	"github.com/scribble-notes/scribble/pkg/document/identity"
)

func getIdentityResolver() (resolver *identity.IdentityResolver, err error) {
	err = builder.Invoke(func(r *identity.IdentityResolver) {
		resolver = r
	})
	return
}

func getStore() (store *notes.FileStore, err error) {
	err = builder.Invoke(func(s *notes.FileStore) {
		store = s
	})
	return
}

// editorOptions are used by commands that convert single files. They do
// not assign identities, so formatting never changes metadata.
func editorOptions() editor.Options {
	return editor.Options{Logger: log.Get().Named("editor")}
}

// readInput reads a file, or the standard input when name is "-".
func readInput(cmd *cobra.Command, name string) ([]byte, error) {
	if name == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		return data, errors.Wrap(err, "failed to read from stdin")
	}
	data, err := os.ReadFile(name)
	return data, errors.Wrapf(err, "failed to read file %q", name)
}

func writeOutput(cmd *cobra.Command, data []byte) error {
	_, err := cmd.OutOrStdout().Write(data)
	return errors.Wrap(err, "failed to write result")
}

// withNewline terminates non-empty output with a line break.
func withNewline(s string) []byte {
	if s == "" || s[len(s)-1] == '\n' {
		return []byte(s)
	}
	return []byte(s + "\n")
}
