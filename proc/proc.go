// Package proc provides wrappers around process-scoped system calls:
// identity and group management, sessions and process groups, working and
// root directories, process images, signals, and child status collection.
package proc

import (
	"golang.org/x/sys/unix"
)

// Getuid returns the real user ID of the calling process.
func Getuid() (uid int) { return unix.Getuid() }

// Geteuid returns the effective user ID of the calling process.
func Geteuid() (uid int) { return unix.Geteuid() }

// Getgid returns the real group ID of the calling process.
func Getgid() (gid int) { return unix.Getgid() }

// Getegid returns the effective group ID of the calling process.
func Getegid() (gid int) { return unix.Getegid() }

// Getpid returns the process ID of the calling process.
func Getpid() (pid int) { return unix.Getpid() }

// Getppid returns the process ID of the parent of the calling process.
func Getppid() (pid int) { return unix.Getppid() }
