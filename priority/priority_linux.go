//go:build linux

package priority

import (
	"golang.org/x/sys/unix"
)

// getpriority returns the nice value for the target.  The raw Linux syscall
// reports 20-nice to avoid negative return values, so the result is converted
// back here.
func getpriority(which, who int) (nice int, err error) {
	raw, err := unix.Getpriority(which, who)
	if err != nil {
		return 0, err
	}

	return 20 - raw, nil
}
