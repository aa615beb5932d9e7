package notes

import (
	"context"
	"sync"

	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/scribble-notes/scribble/pkg/document/editor"
)

const defaultConcurrency = 8

type LoadedNote struct {
	File NoteFile
	Note *editor.Note
}

type LoadOptions struct {
	Editor editor.Options
	// Concurrency limits the number of files read at once.
	Concurrency int
}

// LoadAll reads and converts every note file. Files that cannot be read
// are skipped and reported together in the returned error, next to the
// notes that loaded fine. The result keeps the order of [FileStore.ListNoteFiles].
func (s *FileStore) LoadAll(ctx context.Context, opts LoadOptions) ([]LoadedNote, error) {
	files, err := s.ListNoteFiles()
	if err != nil {
		return nil, err
	}

	concurrency := opts.Concurrency
	if concurrency <= 0 {
		concurrency = defaultConcurrency
	}

	var (
		mu      sync.Mutex
		loadErr error
		loaded  = make([]*LoadedNote, len(files))
	)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for i, file := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			data, err := s.ReadNoteFile(file.Name)
			if err != nil {
				mu.Lock()
				loadErr = multierr.Append(loadErr, err)
				mu.Unlock()
				return nil
			}

			edOpts := opts.Editor
			edOpts.Key = file.Name
			loaded[i] = &LoadedNote{File: file, Note: editor.Deserialize(data, edOpts)}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	result := make([]LoadedNote, 0, len(files))
	for _, n := range loaded {
		if n != nil {
			result = append(result, *n)
		}
	}

	s.logger.Debug("loaded notes", zap.Int("count", len(result)), zap.Int("failed", len(multierr.Errors(loadErr))))
	return result, loadErr
}
