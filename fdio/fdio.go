// Package fdio contains utilities for working with raw file descriptors:
// pipes, duplication, status and inheritance flags, advisory locking, and
// the directory-relative *at family of calls.
package fdio

import (
	"golang.org/x/sys/unix"
)

// Dup duplicates fd into the lowest-numbered free descriptor.  The duplicate
// is inheritable across exec.
func Dup(fd int) (newFD int, err error) {
	return unix.Dup(fd)
}

// DupFrom duplicates fd into the lowest free descriptor numbered at least
// minFD.
func DupFrom(fd, minFD int) (newFD int, err error) {
	return unix.FcntlInt(uintptr(fd), unix.F_DUPFD, minFD)
}

// DupCloexec duplicates fd into the lowest-numbered free descriptor with the
// close-on-exec flag set.
func DupCloexec(fd int) (newFD int, err error) {
	return unix.FcntlInt(uintptr(fd), unix.F_DUPFD_CLOEXEC, 0)
}

// Close closes the file descriptor.
func Close(fd int) (err error) {
	return unix.Close(fd)
}
