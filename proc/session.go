package proc

import (
	"golang.org/x/sys/unix"
)

// Setsid makes the calling process the leader of a new session and returns
// the new session ID.  It fails if the process is already a process group
// leader.
func Setsid() (sid int, err error) {
	return unix.Setsid()
}

// Getsid returns the session ID of the process with the given PID.  A pid of
// zero means the calling process.
func Getsid(pid int) (sid int, err error) {
	return unix.Getsid(pid)
}

// Setpgid moves the process with the given PID into the process group pgid.
// Zero values refer to the calling process and its PID respectively.
func Setpgid(pid, pgid int) (err error) {
	return unix.Setpgid(pid, pgid)
}

// Getpgid returns the process group ID of the process with the given PID.  A
// pid of zero means the calling process.
func Getpgid(pid int) (pgid int, err error) {
	return unix.Getpgid(pid)
}

// Getpgrp returns the process group ID of the calling process.
func Getpgrp() (pgid int) {
	return unix.Getpgrp()
}
