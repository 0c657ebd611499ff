// Package priority provides access to the CPU scheduling priority, or nice
// value, of processes, process groups, and users.
package priority

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// Target selects whose priority is read or changed.  Construct values with
// [Process], [ProcGroup], or [User].
type Target struct {
	which int
	who   int
}

// Process targets the process with the given PID.  A pid of zero means the
// calling process.
func Process(pid int) (t Target) {
	return Target{which: unix.PRIO_PROCESS, who: pid}
}

// ProcGroup targets every process in the group with the given ID.  A pgid of
// zero means the group of the calling process.
func ProcGroup(pgid int) (t Target) {
	return Target{which: unix.PRIO_PGRP, who: pgid}
}

// User targets every process owned by the user with the given real UID.  A
// uid of zero means the real UID of the calling process.
func User(uid int) (t Target) {
	return Target{which: unix.PRIO_USER, who: uid}
}

// Get returns the nice value of the target, between -20 and 19.  When the
// target covers several processes, the lowest value, that is the highest
// priority, is returned.
func Get(t Target) (nice int, err error) {
	nice, err = getpriority(t.which, t.who)
	if err != nil {
		return 0, fmt.Errorf("getting priority: %w", err)
	}

	return nice, nil
}

// Set sets the nice value of the target.  Lowering the value below zero
// requires privilege.
func Set(t Target, nice int) (err error) {
	err = unix.Setpriority(t.which, t.who, nice)
	if err != nil {
		return fmt.Errorf("setting priority: %w", err)
	}

	return nil
}

// Nice adds incr to the nice value of the calling process and returns the
// new value.
func Nice(incr int) (nice int, err error) {
	cur, err := Get(Process(0))
	if err != nil {
		return 0, err
	}

	err = Set(Process(0), cur+incr)
	if err != nil {
		return 0, err
	}

	return Get(Process(0))
}
