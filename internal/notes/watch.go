package notes

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

type EventType int

const (
	EventWrite EventType = iota + 1
	EventRemove
)

func (t EventType) String() string {
	switch t {
	case EventWrite:
		return "write"
	case EventRemove:
		return "remove"
	default:
		return "unknown"
	}
}

type Event struct {
	Type EventType
	Name string
}

// Watch reports changes to note files until ctx is done. The watcher is
// registered when Watch returns, so changes made afterwards are seen.
// The channel is closed when watching stops.
func (s *FileStore) Watch(ctx context.Context) (<-chan Event, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "failed to create watcher")
	}
	if err := s.addDirs(watcher, s.root); err != nil {
		_ = watcher.Close()
		return nil, err
	}

	events := make(chan Event)
	go func() {
		defer close(events)
		defer watcher.Close()

		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				ev, ok := s.mapEvent(watcher, event)
				if !ok {
					continue
				}
				select {
				case events <- ev:
				case <-ctx.Done():
					return
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				s.logger.Warn("watcher error", zap.Error(err))
			}
		}
	}()

	return events, nil
}

func (s *FileStore) addDirs(watcher *fsnotify.Watcher, root string) error {
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		return watcher.Add(path)
	})
	return errors.Wrap(err, "failed to watch notes directory")
}

func (s *FileStore) mapEvent(watcher *fsnotify.Watcher, event fsnotify.Event) (Event, bool) {
	rel, err := filepath.Rel(s.root, event.Name)
	if err != nil {
		return Event{}, false
	}
	name := filepath.ToSlash(rel)

	if event.Has(fsnotify.Create) {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if err := s.addDirs(watcher, event.Name); err != nil {
				s.logger.Warn("failed to watch new directory", zap.String("path", event.Name), zap.Error(err))
			}
			return Event{}, false
		}
	}

	if !s.Matches(name) {
		return Event{}, false
	}

	s.logger.Debug("note changed", zap.String("name", name), zap.Stringer("op", event.Op))

	switch {
	case event.Has(fsnotify.Remove), event.Has(fsnotify.Rename):
		return Event{Type: EventRemove, Name: name}, true
	case event.Has(fsnotify.Create), event.Has(fsnotify.Write):
		return Event{Type: EventWrite, Name: name}, true
	}
	return Event{}, false
}
