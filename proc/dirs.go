package proc

import (
	"golang.org/x/sys/unix"
)

// Chdir changes the working directory of the calling process.
func Chdir(path string) (err error) {
	return unix.Chdir(path)
}

// Fchdir changes the working directory of the calling process to the
// directory referred to by the open file descriptor fd.
func Fchdir(fd int) (err error) {
	return unix.Fchdir(fd)
}

// Chroot changes the root directory of the calling process.  The working
// directory is not changed, so callers normally follow this with a [Chdir]
// to a path inside the new root.
func Chroot(path string) (err error) {
	return unix.Chroot(path)
}
