// Package notes keeps notes as Markdown files in a directory.
package notes

import (
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/gosimple/slug"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

const (
	noteExt        = ".md"
	tempFilePrefix = ".scribble-tmp-"
	untitledName   = "untitled"
)

var (
	ErrNotFound    = errors.New("note not found")
	ErrOutsideRoot = errors.New("note path is outside of the notes directory")
)

// Store gives access to note files by their name relative to the notes
// directory.
type Store interface {
	ListNoteFiles() ([]NoteFile, error)
	ReadNoteFile(name string) ([]byte, error)
	SaveNoteToFile(name string, data []byte) error
	DeleteNoteFile(name string) error
}

type NoteFile struct {
	// Name is slash-separated and relative to the notes directory.
	Name    string
	Size    int64
	ModTime time.Time
}

type FileStore struct {
	root    string
	include []string
	exclude []string
	logger  *zap.Logger
}

var _ Store = (*FileStore)(nil)

type Option func(*FileStore)

func WithLogger(logger *zap.Logger) Option {
	return func(s *FileStore) {
		s.logger = logger
	}
}

// WithInclude sets the doublestar patterns a note file must match.
func WithInclude(patterns ...string) Option {
	return func(s *FileStore) {
		s.include = patterns
	}
}

// WithExclude sets the doublestar patterns of files to ignore.
func WithExclude(patterns ...string) Option {
	return func(s *FileStore) {
		s.exclude = patterns
	}
}

// NewFileStore returns a store over root, creating the directory if needed.
func NewFileStore(root string, opts ...Option) (*FileStore, error) {
	s := &FileStore{
		root:    filepath.Clean(root),
		include: []string{"**/*" + noteExt},
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = zap.NewNop()
	}

	for _, pattern := range append(append([]string(nil), s.include...), s.exclude...) {
		if !doublestar.ValidatePattern(pattern) {
			return nil, errors.Errorf("invalid pattern %q", pattern)
		}
	}

	if err := os.MkdirAll(s.root, 0o755); err != nil {
		return nil, errors.Wrap(err, "failed to create notes directory")
	}
	return s, nil
}

func (s *FileStore) Root() string {
	return s.root
}

// Matches reports whether a slash-separated name relative to the root
// is a note file.
func (s *FileStore) Matches(name string) bool {
	if strings.HasPrefix(path.Base(name), tempFilePrefix) {
		return false
	}
	for _, pattern := range s.exclude {
		if doublestar.MatchUnvalidated(pattern, name) {
			return false
		}
	}
	for _, pattern := range s.include {
		if doublestar.MatchUnvalidated(pattern, name) {
			return true
		}
	}
	return false
}

// ListNoteFiles returns the note files sorted by name.
func (s *FileStore) ListNoteFiles() ([]NoteFile, error) {
	var result []NoteFile

	err := fs.WalkDir(os.DirFS(s.root), ".", func(name string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !s.Matches(name) {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		result = append(result, NoteFile{
			Name:    name,
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list note files")
	}

	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })

	s.logger.Debug("listed note files", zap.Int("count", len(result)))
	return result, nil
}

func (s *FileStore) ReadNoteFile(name string) ([]byte, error) {
	filename, err := s.resolve(name)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(filename)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, errors.Wrapf(ErrNotFound, "read %q", name)
	}
	return data, errors.Wrapf(err, "failed to read note %q", name)
}

// SaveNoteToFile writes data atomically, creating parent directories.
func (s *FileStore) SaveNoteToFile(name string, data []byte) error {
	filename, err := s.resolve(name)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(filename), 0o755); err != nil {
		return errors.Wrap(err, "failed to create note directory")
	}
	if err := writeFileAtomic(filename, data, 0o644); err != nil {
		return errors.Wrapf(err, "failed to save note %q", name)
	}
	s.logger.Debug("saved note", zap.String("name", name), zap.Int("size", len(data)))
	return nil
}

func (s *FileStore) DeleteNoteFile(name string) error {
	filename, err := s.resolve(name)
	if err != nil {
		return err
	}
	err = os.Remove(filename)
	if errors.Is(err, fs.ErrNotExist) {
		return errors.Wrapf(ErrNotFound, "delete %q", name)
	}
	if err != nil {
		return errors.Wrapf(err, "failed to delete note %q", name)
	}
	s.logger.Debug("deleted note", zap.String("name", name))
	return nil
}

// NewNoteName returns an unused file name derived from title.
func (s *FileStore) NewNoteName(title string) string {
	base := slug.Make(title)
	if base == "" {
		base = untitledName
	}

	name := base + noteExt
	for i := 2; ; i++ {
		if _, err := os.Stat(filepath.Join(s.root, filepath.FromSlash(name))); errors.Is(err, fs.ErrNotExist) {
			return name
		}
		name = base + "-" + strconv.Itoa(i) + noteExt
	}
}

func (s *FileStore) resolve(name string) (string, error) {
	name = filepath.ToSlash(name)
	if name == "" || path.IsAbs(name) || !fs.ValidPath(path.Clean(name)) || path.Clean(name) == "." {
		return "", errors.Wrapf(ErrOutsideRoot, "%q", name)
	}
	return filepath.Join(s.root, filepath.FromSlash(path.Clean(name))), nil
}

// writeFileAtomic writes data to a temporary file in the target directory
// and renames it over filename.
func writeFileAtomic(filename string, data []byte, perm os.FileMode) error {
	tmpFile, err := os.CreateTemp(filepath.Dir(filename), tempFilePrefix+"*")
	if err != nil {
		return errors.Wrap(err, "failed to create temp file")
	}
	defer os.Remove(tmpFile.Name())

	if _, err := tmpFile.Write(data); err != nil {
		_ = tmpFile.Close()
		return errors.Wrap(err, "failed to write temp file")
	}
	if err := tmpFile.Sync(); err != nil {
		_ = tmpFile.Close()
		return errors.Wrap(err, "failed to sync temp file")
	}
	if err := tmpFile.Close(); err != nil {
		return errors.Wrap(err, "failed to close temp file")
	}
	if err := os.Chmod(tmpFile.Name(), perm); err != nil {
		return errors.Wrap(err, "failed to chmod temp file")
	}
	return errors.WithStack(os.Rename(tmpFile.Name(), filename))
}
