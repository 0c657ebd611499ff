//go:build linux

package rusage

import (
	"golang.org/x/sys/unix"
)

// WhoThread reports the usage of the calling thread only.
const WhoThread Who = unix.RUSAGE_THREAD
