package library

import (
	"path/filepath"

	"github.com/cockroachdb/errors"
	"github.com/fsnotify/fsnotify"
	zlog "github.com/rs/zerolog/log"

	"playdeck/internal/domain/track"
)

// Watcher observes a playlist file and delivers a freshly loaded tracklist
// whenever the file changes. Invalid intermediate states (partial writes,
// syntax errors) are logged and skipped; the previous tracklist stays in use.
type Watcher struct {
	path    string
	watcher *fsnotify.Watcher
	updates chan track.Tracklist
	done    chan struct{}
}

// Watch starts watching the given playlist file.
// The parent directory is watched rather than the file itself because most
// editors replace the file on save, which drops a direct watch.
func Watch(path string) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "failed to create watcher")
	}

	if err := fsw.Add(filepath.Dir(path)); err != nil {
		fsw.Close()
		return nil, errors.Wrap(err, "failed to watch playlist directory")
	}

	w := &Watcher{
		path:    path,
		watcher: fsw,
		updates: make(chan track.Tracklist, 1),
		done:    make(chan struct{}),
	}
	go w.run()

	return w, nil
}

// Updates returns the channel on which reloaded tracklists are delivered.
func (w *Watcher) Updates() <-chan track.Tracklist {
	return w.updates
}

// Close stops watching and releases the underlying watcher.
func (w *Watcher) Close() error {
	close(w.done)
	return w.watcher.Close()
}

func (w *Watcher) run() {
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !w.isPlaylistEvent(event) {
				continue
			}

			list, err := Load(w.path)
			if err != nil {
				zlog.Warn().Msgf("library: reload skipped: path=%s err=%v", w.path, err)
				continue
			}

			zlog.Info().Msgf("library: playlist reloaded: path=%s tracks=%d", w.path, list.Len())

			// Keep only the latest reload if the consumer is behind.
			select {
			case w.updates <- list:
			default:
				select {
				case <-w.updates:
				default:
				}
				w.updates <- list
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			zlog.Warn().Msgf("library: watcher error: %v", err)

		case <-w.done:
			return
		}
	}
}

func (w *Watcher) isPlaylistEvent(event fsnotify.Event) bool {
	if filepath.Clean(event.Name) != filepath.Clean(w.path) {
		return false
	}
	return event.Op.Has(fsnotify.Write) || event.Op.Has(fsnotify.Create)
}
