package proc

import (
	"golang.org/x/sys/unix"
)

// Setuid sets the user IDs of the calling process.  When called by a
// privileged process, this drops the real and saved IDs as well.
func Setuid(uid int) (err error) {
	return unix.Setuid(uid)
}

// Setgid sets the group IDs of the calling process.
func Setgid(gid int) (err error) {
	return unix.Setgid(gid)
}

// Setreuid sets the real and effective user IDs of the calling process.  An
// ID of -1 leaves the corresponding value unchanged.
func Setreuid(ruid, euid int) (err error) {
	return unix.Setreuid(ruid, euid)
}

// Setregid sets the real and effective group IDs of the calling process.  An
// ID of -1 leaves the corresponding value unchanged.
func Setregid(rgid, egid int) (err error) {
	return unix.Setregid(rgid, egid)
}
