//go:build linux

package proc

import (
	"golang.org/x/sys/unix"
)

// Seteuid sets the effective user ID of the calling process, keeping the
// real and saved IDs.
func Seteuid(euid int) (err error) {
	return unix.Setresuid(-1, euid, -1)
}

// Setegid sets the effective group ID of the calling process, keeping the
// real and saved IDs.
func Setegid(egid int) (err error) {
	return unix.Setresgid(-1, egid, -1)
}
