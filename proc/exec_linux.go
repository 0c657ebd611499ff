//go:build linux

package proc

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// Fexecve replaces the current process image with the program referred to by
// the open file descriptor fd, passing argv and envv.  On success it does
// not return.
func Fexecve(fd int, argv, envv []string) (err error) {
	// The magic symlink keeps working even if the descriptor was opened with
	// O_CLOEXEC, since the exec itself resolves it before closing.
	return unix.Exec(fmt.Sprintf("/proc/self/fd/%d", fd), argv, envv)
}
