package notes

import (
	"os"
	"path/filepath"

	"github.com/otiai10/copy"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Export copies the note files into dst, keeping their relative paths.
// Files that are not notes are skipped.
func (s *FileStore) Export(dst string) error {
	var count int
	err := copy.Copy(s.root, dst, copy.Options{
		Skip: func(info os.FileInfo, src, _ string) (bool, error) {
			if info.IsDir() {
				return false, nil
			}
			rel, err := filepath.Rel(s.root, src)
			if err != nil {
				return false, err
			}
			if !s.Matches(filepath.ToSlash(rel)) {
				return true, nil
			}
			count++
			return false, nil
		},
		OnSymlink: func(string) copy.SymlinkAction {
			return copy.Skip
		},
	})
	if err != nil {
		return errors.Wrapf(err, "failed to export notes to %q", dst)
	}
	s.logger.Info("exported notes", zap.String("dst", dst), zap.Int("count", count))
	return nil
}
