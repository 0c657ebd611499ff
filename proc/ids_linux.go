//go:build linux

package proc

import (
	"golang.org/x/sys/unix"
)

// Getresuid returns the real, effective, and saved user IDs of the calling
// process.
func Getresuid() (ruid, euid, suid int) {
	return unix.Getresuid()
}

// Getresgid returns the real, effective, and saved group IDs of the calling
// process.
func Getresgid() (rgid, egid, sgid int) {
	return unix.Getresgid()
}

// Setresuid sets the real, effective, and saved user IDs of the calling
// process.  An ID of -1 leaves the corresponding value unchanged.
func Setresuid(ruid, euid, suid int) (err error) {
	return unix.Setresuid(ruid, euid, suid)
}

// Setresgid sets the real, effective, and saved group IDs of the calling
// process.  An ID of -1 leaves the corresponding value unchanged.
func Setresgid(rgid, egid, sgid int) (err error) {
	return unix.Setresgid(rgid, egid, sgid)
}
