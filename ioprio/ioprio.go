//go:build linux

// Package ioprio provides access to the Linux I/O scheduling class and
// priority of processes, process groups, and users.
package ioprio

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// Class is an I/O scheduling class.
type Class int

// Class values.
const (
	// ClassNone means no class has been set; the kernel derives the
	// effective class from the CPU nice value.
	ClassNone Class = 0

	// ClassRT is the real-time class.  Requires privilege.
	ClassRT Class = 1

	// ClassBE is the best-effort class, the default for normal processes.
	ClassBE Class = 2

	// ClassIdle means I/O is only served when no one else needs the disk.
	// The priority level is ignored for this class.
	ClassIdle Class = 3
)

// Priority levels within the RT and BE classes.  Lower is better.
const (
	LevelMin = 0
	LevelMax = 7
)

// classShift is the number of bits the class occupies above the level in the
// packed ioprio value.
const classShift = 13

// Target selects whose I/O priority is read or changed.  Construct values
// with [Process], [ProcGroup], or [User].
type Target struct {
	which int
	who   int
}

// Process targets the process or thread with the given PID.  A pid of zero
// means the calling thread.
func Process(pid int) (t Target) {
	return Target{which: 1, who: pid}
}

// ProcGroup targets every process in the group with the given ID.  A pgid of
// zero means the group of the calling process.
func ProcGroup(pgid int) (t Target) {
	return Target{which: 2, who: pgid}
}

// User targets every process owned by the user with the given real UID.
func User(uid int) (t Target) {
	return Target{which: 3, who: uid}
}

// Get returns the I/O scheduling class and priority level of the target.
func Get(t Target) (class Class, level int, err error) {
	packed, _, errno := unix.Syscall(
		unix.SYS_IOPRIO_GET,
		uintptr(t.which),
		uintptr(t.who),
		0,
	)
	if errno != 0 {
		return 0, 0, fmt.Errorf("getting io priority: %w", errno)
	}

	class = Class(packed >> classShift)
	if class > ClassIdle {
		return 0, 0, fmt.Errorf("getting io priority: unknown class %d: %w", class, unix.EINVAL)
	}

	return class, int(packed & (1<<classShift - 1)), nil
}

// Set sets the I/O scheduling class and priority level of the target.
func Set(t Target, class Class, level int) (err error) {
	if level < LevelMin || level > LevelMax {
		return fmt.Errorf("setting io priority: level %d: %w", level, unix.EINVAL)
	}

	packed := uintptr(class)<<classShift | uintptr(level)
	_, _, errno := unix.Syscall(
		unix.SYS_IOPRIO_SET,
		uintptr(t.which),
		uintptr(t.who),
		packed,
	)
	if errno != 0 {
		return fmt.Errorf("setting io priority: %w", errno)
	}

	return nil
}
