//go:build linux

// Package openat2 wraps the Linux openat2(2) system call, which opens files
// with explicit control over how their paths are resolved.
package openat2

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// How describes how to open the file.  Flags and Mode take the usual open(2)
// values; Resolve constrains the path resolution.
type How struct {
	// Flags are the O_* flags.  [unix.O_CLOEXEC] is added unconditionally.
	Flags uint64

	// Mode are the permission bits for newly created files.  Must be zero
	// unless Flags contains O_CREAT or O_TMPFILE.
	Mode uint64

	// Resolve is a bitmask of RESOLVE_* flags.
	Resolve uint64
}

// Resolve flags.
const (
	// ResolveBeneath fails the open if the path escapes the directory the
	// lookup starts from.
	ResolveBeneath = unix.RESOLVE_BENEATH

	// ResolveInRoot makes the starting directory act as the filesystem root
	// for the lookup, the way chroot would.
	ResolveInRoot = unix.RESOLVE_IN_ROOT

	// ResolveNoMagiclinks fails the open on /proc-style magic links.
	ResolveNoMagiclinks = unix.RESOLVE_NO_MAGICLINKS

	// ResolveNoSymlinks fails the open on any symbolic link.
	ResolveNoSymlinks = unix.RESOLVE_NO_SYMLINKS

	// ResolveNoXdev fails the open if the lookup would cross a mount point.
	ResolveNoXdev = unix.RESOLVE_NO_XDEV

	// ResolveCached fails with [unix.EAGAIN] instead of blocking if the
	// lookup needs anything that is not already cached.  The value is the
	// kernel uapi RESOLVE_CACHED, which x/sys does not define for linux.
	ResolveCached = 0x20
)

// Open opens the file at path, resolved relative to the directory descriptor
// dirFD, according to how.  Pass [unix.AT_FDCWD] to resolve relative to the
// working directory.  Transient interruptions of the lookup are retried,
// except when [ResolveCached] makes EAGAIN meaningful to the caller.
func Open(dirFD int, path string, how How) (fd int, err error) {
	rawHow := &unix.OpenHow{
		Flags:   how.Flags | unix.O_CLOEXEC,
		Mode:    how.Mode,
		Resolve: how.Resolve,
	}

	for {
		fd, err = unix.Openat2(dirFD, path, rawHow)
		switch err {
		case unix.EINTR:
			continue
		case unix.EAGAIN:
			if how.Resolve&ResolveCached != 0 {
				return 0, fmt.Errorf("opening %q: %w", path, err)
			}

			continue
		case nil:
			return fd, nil
		default:
			return 0, fmt.Errorf("opening %q: %w", path, err)
		}
	}
}

// OpenBeneath opens the file at path with the given O_* flags, confining the
// lookup to the tree under the directory descriptor dirFD and rejecting magic
// links on the way.
func OpenBeneath(dirFD int, path string, flags uint64) (fd int, err error) {
	return Open(dirFD, path, How{
		Flags:   flags,
		Resolve: ResolveBeneath | ResolveNoMagiclinks,
	})
}
