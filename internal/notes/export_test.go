package notes

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStore_Export(t *testing.T) {
	store := newTestStore(t, WithExclude("archive/**"))
	writeFile(t, store.Root(), "a.md", "A\n")
	writeFile(t, store.Root(), "work/b.md", "B\n")
	writeFile(t, store.Root(), "archive/c.md", "C\n")
	writeFile(t, store.Root(), "image.png", "")

	dst := filepath.Join(t.TempDir(), "backup")
	require.NoError(t, store.Export(dst))

	data, err := os.ReadFile(filepath.Join(dst, "work", "b.md"))
	require.NoError(t, err)
	assert.Equal(t, "B\n", string(data))

	assert.FileExists(t, filepath.Join(dst, "a.md"))
	assert.NoFileExists(t, filepath.Join(dst, "archive", "c.md"))
	assert.NoFileExists(t, filepath.Join(dst, "image.png"))
}
