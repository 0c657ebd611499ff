package fdio

import (
	"golang.org/x/sys/unix"
)

// Available returns the number of bytes that can be read from fd without
// blocking, as reported by the FIONREAD ioctl.  Negative kernel answers are
// clamped to zero.
func Available(fd int) (n int, err error) {
	n, err = unix.IoctlGetInt(fd, fionread)
	if err != nil {
		return 0, err
	}

	return max(n, 0), nil
}
