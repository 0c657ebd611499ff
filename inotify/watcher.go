//go:build linux

package inotify

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/AdguardTeam/golibs/container"
	"github.com/AdguardTeam/golibs/errors"
	"github.com/AdguardTeam/golibs/logutil/slogutil"
	"github.com/AdguardTeam/golibs/service"
	"github.com/AdguardTeam/sysunix/fdio"
	"github.com/AdguardTeam/sysunix/poller"
	"golang.org/x/sys/unix"
)

// WatchEvent is a convenient alias for an empty struct to signal that a
// watched file changed.
type WatchEvent = struct{}

// Watcher tracks write events on a set of files and notifies about those.
type Watcher interface {
	service.Interface

	// Events returns the channel to notify about the file changes.
	Events() (e <-chan WatchEvent)

	// Add starts tracking the file.  It returns an error if the file can't
	// be tracked.
	Add(name string) (err error)

	// Remove stops tracking the file.
	Remove(name string) (err error)
}

// watchMask selects the events that mean the contents at a path changed:
// finished writes plus files appearing under a new name.
const watchMask = unix.IN_CLOSE_WRITE | unix.IN_MOVED_TO | unix.IN_CREATE

// writesWatcher tracks files through a nonblocking [Inotify] instance driven
// by a poller, with a pipe used to interrupt the poller on shutdown.
type writesWatcher struct {
	// logger is used for logging the operations of the watcher.
	logger *slog.Logger

	// filesMu protects files, wdDirs, and dirWDs.
	filesMu *sync.RWMutex

	// ino is the underlying inotify instance.
	ino *Inotify

	// poll drives ino and the shutdown pipe.
	poll poller.Interface

	// events is the channel to notify.
	events chan WatchEvent

	// done is closed when the event loop has exited.
	done chan struct{}

	// files maps directories to the files tracked in them.  If the tracked
	// file is a directory, it is mapped to itself.
	files map[string]*container.MapSet[string]

	// wdDirs maps watch descriptors to the directories they watch.
	wdDirs map[int]string

	// dirWDs is the reverse of wdDirs.
	dirWDs map[string]int

	// wakeR and wakeW are the ends of the shutdown pipe.
	wakeR, wakeW int
}

// watcherPref is a prefix for logging and wrapping errors in the watcher's
// methods.
const watcherPref = "writes watcher"

// NewWritesWatcher creates a [Watcher] notifying about finished writes to
// the tracked files.  l must not be nil.
func NewWritesWatcher(l *slog.Logger) (w Watcher, err error) {
	defer func() { err = errors.Annotate(err, "%s: %w", watcherPref) }()

	ino, err := New(true)
	if err != nil {
		return nil, err
	}

	poll, err := poller.New()
	if err != nil {
		return nil, errors.WithDeferred(err, ino.Close())
	}

	wakeR, wakeW, err := fdio.Pipe(true)
	if err != nil {
		return nil, errors.WithDeferred(err, errors.Join(ino.Close(), poll.Close()))
	}

	err = errors.Join(
		poll.Register(ino.FD(), poller.Read),
		poll.Register(wakeR, poller.Read),
	)
	if err != nil {
		closeErr := errors.Join(ino.Close(), poll.Close(), fdio.Close(wakeR), fdio.Close(wakeW))

		return nil, errors.WithDeferred(fmt.Errorf("registering descriptors: %w", err), closeErr)
	}

	return &writesWatcher{
		logger:  l,
		filesMu: &sync.RWMutex{},
		ino:     ino,
		poll:    poll,
		events:  make(chan WatchEvent, 1),
		done:    make(chan struct{}),
		files:   map[string]*container.MapSet[string]{},
		wdDirs:  map[int]string{},
		dirWDs:  map[string]int{},
		wakeR:   wakeR,
		wakeW:   wakeW,
	}, nil
}

// type check
var _ Watcher = (*writesWatcher)(nil)

// Start implements the [Watcher] interface for *writesWatcher.
func (w *writesWatcher) Start(ctx context.Context) (err error) {
	go w.handleEvents(ctx)

	return nil
}

// Shutdown implements the [Watcher] interface for *writesWatcher.
func (w *writesWatcher) Shutdown(ctx context.Context) (err error) {
	_, err = unix.Write(w.wakeW, []byte{0})
	if err != nil {
		return fmt.Errorf("%s: waking event loop: %w", watcherPref, err)
	}

	select {
	case <-w.done:
		// Go on.
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", watcherPref, ctx.Err())
	}

	return errors.Annotate(errors.Join(
		w.ino.Close(),
		w.poll.Close(),
		fdio.Close(w.wakeR),
		fdio.Close(w.wakeW),
	), "%s: %w", watcherPref)
}

// Events implements the [Watcher] interface for *writesWatcher.
func (w *writesWatcher) Events() (e <-chan WatchEvent) {
	return w.events
}

// Add implements the [Watcher] interface for *writesWatcher.
func (w *writesWatcher) Add(name string) (err error) {
	defer func() { err = errors.Annotate(err, "%s: %w", watcherPref) }()

	fi, err := os.Stat(name)
	if err != nil {
		return fmt.Errorf("checking file %q: %w", name, err)
	}

	name, err = filepath.Abs(name)
	if err != nil {
		return fmt.Errorf("resolving %q: %w", name, err)
	}

	// Watch the directory and filter the events by the file name, since
	// watches on the file itself are lost when editors replace it.
	dirName := name
	if !fi.IsDir() {
		dirName = filepath.Dir(name)
	}

	w.filesMu.Lock()
	defer w.filesMu.Unlock()

	names := w.files[dirName]
	if names == nil {
		names = container.NewMapSet[string]()
		w.files[dirName] = names
	}
	names.Add(name)

	if _, ok := w.dirWDs[dirName]; !ok {
		wd, addErr := w.ino.AddWatch(dirName, watchMask)
		if addErr != nil {
			return addErr
		}

		w.wdDirs[wd] = dirName
		w.dirWDs[dirName] = wd
	}

	return nil
}

// Remove implements the [Watcher] interface for *writesWatcher.
func (w *writesWatcher) Remove(name string) (err error) {
	defer func() { err = errors.Annotate(err, "%s: %w", watcherPref) }()

	name, err = filepath.Abs(name)
	if err != nil {
		return fmt.Errorf("resolving %q: %w", name, err)
	}

	dirName := filepath.Dir(name)

	w.filesMu.Lock()
	defer w.filesMu.Unlock()

	names, ok := w.files[name]
	if ok {
		dirName = name
	} else {
		names = w.files[dirName]
	}

	if !names.Has(name) {
		// Name is not tracked.
		return nil
	}

	names.Delete(name)
	if names.Len() > 0 {
		// Some files are still tracked in the directory.
		return nil
	}

	// No more files tracked in the directory, unwatch it.
	delete(w.files, dirName)

	wd, ok := w.dirWDs[dirName]
	if !ok {
		return nil
	}

	delete(w.dirWDs, dirName)
	delete(w.wdDirs, wd)

	return w.ino.RmWatch(wd)
}

// handleEvents dispatches the filesystem events to the notification channel.
// It is intended to be used as a goroutine.
func (w *writesWatcher) handleEvents(ctx context.Context) {
	defer slogutil.RecoverAndLog(ctx, w.logger)

	defer close(w.done)
	defer close(w.events)

	for {
		fired, err := w.poll.Wait(-1)
		if err != nil {
			w.logger.ErrorContext(ctx, "waiting for events", slogutil.KeyError, err)

			return
		}

		for _, ev := range fired {
			if ev.FD == w.wakeR {
				return
			}
		}

		evs, err := w.ino.ReadNowait()
		if err != nil {
			w.logger.ErrorContext(ctx, "reading events", slogutil.KeyError, err)

			return
		}

		if w.anyTracked(evs) {
			select {
			case w.events <- WatchEvent{}:
				// Go on.
			default:
				w.logger.DebugContext(ctx, "events buffer is full")
			}
		}
	}
}

// anyTracked reports whether at least one of evs is about a tracked file.
// Duplicate events about the same write are coalesced by this check handling
// the whole batch at once.
func (w *writesWatcher) anyTracked(evs []Event) (ok bool) {
	w.filesMu.RLock()
	defer w.filesMu.RUnlock()

	for _, ev := range evs {
		dirName, found := w.wdDirs[ev.WD]
		if !found {
			continue
		}

		names := w.files[dirName]
		if names == nil {
			continue
		}

		if names.Has(dirName) || names.Has(filepath.Join(dirName, ev.Name)) {
			return true
		}
	}

	return false
}

// EmptyWatcher is a no-op implementation of the [Watcher] interface.  It may
// be used on systems not supporting filesystem events.
type EmptyWatcher struct{}

// type check
var _ Watcher = EmptyWatcher{}

// Start implements the [Watcher] interface for EmptyWatcher.  It always
// returns nil error.
func (EmptyWatcher) Start(_ context.Context) (err error) {
	return nil
}

// Shutdown implements the [Watcher] interface for EmptyWatcher.  It always
// returns nil error.
func (EmptyWatcher) Shutdown(_ context.Context) (err error) {
	return nil
}

// Events implements the [Watcher] interface for EmptyWatcher.  It always
// returns nil channel.
func (EmptyWatcher) Events() (e <-chan WatchEvent) {
	return nil
}

// Add implements the [Watcher] interface for EmptyWatcher.  It always
// returns nil error.
func (EmptyWatcher) Add(_ string) (err error) {
	return nil
}

// Remove implements the [Watcher] interface for EmptyWatcher.  It always
// returns nil error.
func (EmptyWatcher) Remove(_ string) (err error) {
	return nil
}
