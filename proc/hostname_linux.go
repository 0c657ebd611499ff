//go:build linux

package proc

import (
	"golang.org/x/sys/unix"
)

// Sethostname sets the node name of the system.  Requires CAP_SYS_ADMIN.
func Sethostname(name string) (err error) {
	return unix.Sethostname([]byte(name))
}
