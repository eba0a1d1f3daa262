package pathindex

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// rebuildDelay coalesces bursts of events (a package manager touching
// hundreds of files) into a single rebuild.
const rebuildDelay = 500 * time.Millisecond

// Watch rebuilds the index whenever a search-path directory changes. The new
// table is published atomically; lookups that grabbed a Snapshot before the
// swap keep their consistent view. Without Watch the index is built once and
// callers accept a possibly stale view.
func (ix *Index) Watch(ctx context.Context) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	for _, dir := range filepath.SplitList(ix.pathEnv) {
		if err := w.Add(dir); err != nil {
			// directories can legitimately be absent from PATH
			ix.log.WithError(err).WithField("dir", dir).Debug("not watching")
		}
	}

	go func() {
		defer w.Close()
		var pending *time.Timer
		rebuilds := make(chan struct{}, 1)
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if ev.Op&(fsnotify.Create|fsnotify.Remove|fsnotify.Rename|fsnotify.Chmod) == 0 {
					continue
				}
				if pending == nil {
					pending = time.AfterFunc(rebuildDelay, func() {
						select {
						case rebuilds <- struct{}{}:
						default:
						}
					})
				} else {
					pending.Reset(rebuildDelay)
				}
			case <-rebuilds:
				pending = nil
				<-ix.ready
				ix.snap.Store(ix.build())
				ix.log.Debug("executable index rebuilt")
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				ix.log.WithError(err).Warn("watch error")
			}
		}
	}()
	return nil
}
