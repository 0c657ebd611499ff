//go:build linux

// Package inotify provides access to the Linux inotify(7) filesystem event
// facility, plus a higher-level file watcher built on top of it.
package inotify

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/unix"
)

// Event is a single filesystem notification.
type Event struct {
	// Name is the name of the file the event is about, relative to the
	// watched directory.  Empty for events about the watched object itself.
	Name string

	// WD is the watch descriptor the event belongs to.
	WD int

	// Mask is the bitmask of [unix.IN_CREATE] and friends describing what
	// happened.
	Mask uint32

	// Cookie ties together the two halves of a rename.
	Cookie uint32
}

// Inotify is an open inotify instance.
type Inotify struct {
	fd       int
	nonblock bool
}

// New creates an inotify instance with the close-on-exec flag set.  With
// nonblock set, [Inotify.ReadWait] fails with [unix.EAGAIN] instead of
// blocking; use a poller to find out when the descriptor is readable.
func New(nonblock bool) (ino *Inotify, err error) {
	flags := unix.IN_CLOEXEC
	if nonblock {
		flags |= unix.IN_NONBLOCK
	}

	fd, err := unix.InotifyInit1(flags)
	if err != nil {
		return nil, fmt.Errorf("creating inotify: %w", err)
	}

	return &Inotify{fd: fd, nonblock: nonblock}, nil
}

// FD returns the underlying file descriptor, for registration with pollers.
func (ino *Inotify) FD() (fd int) {
	return ino.fd
}

// Close closes the inotify instance and releases all of its watches.
func (ino *Inotify) Close() (err error) {
	return unix.Close(ino.fd)
}

// AddWatch starts watching path for the events in mask and returns the watch
// descriptor.  If the path is already watched, its mask is replaced.
func (ino *Inotify) AddWatch(path string, mask uint32) (wd int, err error) {
	wd, err = unix.InotifyAddWatch(ino.fd, path, mask)
	if err != nil {
		return 0, fmt.Errorf("adding watch for %q: %w", path, err)
	}

	return wd, nil
}

// ExtendWatch is like [Inotify.AddWatch] but adds mask to the already
// watched events of the path instead of replacing them.
func (ino *Inotify) ExtendWatch(path string, mask uint32) (wd int, err error) {
	return ino.AddWatch(path, mask|unix.IN_MASK_ADD)
}

// CreateWatch is like [Inotify.AddWatch] but fails with [unix.EEXIST] if the
// path is already watched.
func (ino *Inotify) CreateWatch(path string, mask uint32) (wd int, err error) {
	return ino.AddWatch(path, mask|unix.IN_MASK_CREATE)
}

// RmWatch removes the watch with the given descriptor.  The kernel enqueues
// a final IN_IGNORED event for it.
func (ino *Inotify) RmWatch(wd int) (err error) {
	_, err = unix.InotifyRmWatch(ino.fd, uint32(wd))
	if err != nil {
		return fmt.Errorf("removing watch %d: %w", wd, err)
	}

	return nil
}

// readBufSize is the starting read buffer size of [Inotify.ReadWait].  It
// fits an event with a name of the maximum length.
const readBufSize = unix.SizeofInotifyEvent + unix.NAME_MAX + 1

// ReadWait reads at least one pending event, blocking if there are none yet.
// On a nonblocking instance with no events pending it fails with
// [unix.EAGAIN].
func (ino *Inotify) ReadWait() (events []Event, err error) {
	for bufSize := readBufSize; ; bufSize *= 2 {
		buf := make([]byte, bufSize)

		var n int
		for {
			n, err = unix.Read(ino.fd, buf)
			if err != unix.EINTR {
				break
			}
		}

		// A buffer with no room for the next event is reported as EINVAL.
		if err == unix.EINVAL {
			continue
		} else if err != nil {
			return nil, fmt.Errorf("reading inotify: %w", err)
		}

		return parseEvents(buf[:n])
	}
}

// ReadNowait reads all currently pending events without blocking, regardless
// of the instance mode.  It returns nil when nothing is pending.  TIOCINQ is
// the Linux name of the FIONREAD ioctl.
func (ino *Inotify) ReadNowait() (events []Event, err error) {
	pending, err := unix.IoctlGetInt(ino.fd, unix.TIOCINQ)
	if err != nil {
		return nil, fmt.Errorf("reading inotify: %w", err)
	} else if pending <= 0 {
		return nil, nil
	}

	buf := make([]byte, pending)

	var n int
	for {
		n, err = unix.Read(ino.fd, buf)
		if err != unix.EINTR {
			break
		}
	}
	if err != nil {
		return nil, fmt.Errorf("reading inotify: %w", err)
	}

	return parseEvents(buf[:n])
}

// parseEvents decodes the wire format of the inotify events: a fixed header
// followed by a NUL-padded name of Len bytes.
func parseEvents(buf []byte) (events []Event, err error) {
	for len(buf) > 0 {
		if len(buf) < unix.SizeofInotifyEvent {
			return nil, fmt.Errorf("parsing inotify events: %d trailing bytes", len(buf))
		}

		raw := (*unix.InotifyEvent)(unsafe.Pointer(&buf[0]))
		nameLen := int(raw.Len)
		if len(buf) < unix.SizeofInotifyEvent+nameLen {
			return nil, fmt.Errorf("parsing inotify events: truncated name")
		}

		name := buf[unix.SizeofInotifyEvent : unix.SizeofInotifyEvent+nameLen]
		events = append(events, Event{
			Name:   string(trimNuls(name)),
			WD:     int(raw.Wd),
			Mask:   raw.Mask,
			Cookie: raw.Cookie,
		})

		buf = buf[unix.SizeofInotifyEvent+nameLen:]
	}

	return events, nil
}

// trimNuls cuts the NUL padding off an event name.
func trimNuls(b []byte) (name []byte) {
	for i, c := range b {
		if c == 0 {
			return b[:i]
		}
	}

	return b
}
