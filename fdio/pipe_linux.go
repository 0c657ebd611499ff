//go:build linux || freebsd

package fdio

import (
	"golang.org/x/sys/unix"
)

// Pipe creates a pipe with the close-on-exec flag set on both ends and
// returns the read and write descriptors.
func Pipe(nonblock bool) (r, w int, err error) {
	flags := unix.O_CLOEXEC
	if nonblock {
		flags |= unix.O_NONBLOCK
	}

	fds := make([]int, 2)
	err = unix.Pipe2(fds, flags)
	if err != nil {
		return 0, 0, err
	}

	return fds[0], fds[1], nil
}
