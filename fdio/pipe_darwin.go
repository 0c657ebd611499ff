//go:build darwin

package fdio

import (
	"github.com/AdguardTeam/golibs/errors"
	"golang.org/x/sys/unix"
)

// Pipe creates a pipe with the close-on-exec flag set on both ends and
// returns the read and write descriptors.
//
// There is no pipe2(2) here, so the flags are set with separate fcntl calls.
// The window between them is benign, since the process does not exec
// concurrently with its own initialization.
func Pipe(nonblock bool) (r, w int, err error) {
	fds := make([]int, 2)
	err = unix.Pipe(fds)
	if err != nil {
		return 0, 0, err
	}

	for _, fd := range fds {
		err = SetInheritable(fd, false)
		if err == nil && nonblock {
			err = unix.SetNonblock(fd, true)
		}

		if err != nil {
			return 0, 0, errors.WithDeferred(err, errors.Join(
				unix.Close(fds[0]),
				unix.Close(fds[1]),
			))
		}
	}

	return fds[0], fds[1], nil
}
