//go:build !linux

package priority

import (
	"golang.org/x/sys/unix"
)

// getpriority returns the nice value for the target.  The libc wrapper
// already reports the actual nice value.
func getpriority(which, who int) (nice int, err error) {
	return unix.Getpriority(which, who)
}
