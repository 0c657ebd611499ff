package fdio

import (
	"golang.org/x/sys/unix"
)

// Flock takes an advisory whole-file lock on fd.  With exclusive set it
// takes a write lock, otherwise a shared read lock.  Without block, an
// already locked file makes the call fail with [unix.EWOULDBLOCK] instead of
// waiting.
func Flock(fd int, exclusive, block bool) (err error) {
	how := unix.LOCK_SH
	if exclusive {
		how = unix.LOCK_EX
	}

	if !block {
		how |= unix.LOCK_NB
	}

	return unix.Flock(fd, how)
}

// Funlock releases the advisory whole-file lock held on fd.
func Funlock(fd int) (err error) {
	return unix.Flock(fd, unix.LOCK_UN)
}
