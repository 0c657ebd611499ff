//go:build linux

package fdio

import (
	"golang.org/x/sys/unix"
)

// fionread is the ioctl reporting the number of readable bytes.  Linux
// spells the FIONREAD constant TIOCINQ.
const fionread = unix.TIOCINQ
