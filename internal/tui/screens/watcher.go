package screens

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"cursespp/internal/logger"
	"cursespp/internal/msgqueue"
)

// DirWatcher turns file system events in one directory into a debounced
// MsgRefresh for a target. Run it on its own goroutine; SetDir may be
// called from any goroutine.
type DirWatcher struct {
	watcher *fsnotify.Watcher
	queue   *msgqueue.Queue
	target  msgqueue.Target
	delay   time.Duration

	mu  sync.Mutex
	dir string
}

// NewDirWatcher returns a watcher that posts to target through q, delay
// after the last event of a burst.
func NewDirWatcher(q *msgqueue.Queue, target msgqueue.Target, delay time.Duration) (*DirWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating directory watcher: %w", err)
	}
	return &DirWatcher{watcher: w, queue: q, target: target, delay: delay}, nil
}

// SetDir switches the watched directory.
func (d *DirWatcher) SetDir(dir string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if dir == d.dir {
		return nil
	}
	if d.dir != "" {
		_ = d.watcher.Remove(d.dir)
	}
	d.dir = ""
	if err := d.watcher.Add(dir); err != nil {
		return fmt.Errorf("watching %s: %w", dir, err)
	}
	d.dir = dir
	return nil
}

// Dir returns the watched directory, or "" when none is watched.
func (d *DirWatcher) Dir() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.dir
}

// Run forwards events until ctx is done, then closes the watcher.
func (d *DirWatcher) Run(ctx context.Context) error {
	defer d.watcher.Close()
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-d.watcher.Events:
			if !ok {
				return nil
			}
			if ev.Has(fsnotify.Chmod) && !ev.Has(fsnotify.Write) {
				continue
			}
			logger.Trace(ctx, "Directory event: %s", ev)
			d.queue.Debounce(msgqueue.Message{Target: d.target, Type: MsgRefresh}, d.delay)
		case err, ok := <-d.watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn(ctx, "Directory watcher: %v", err)
		}
	}
}
