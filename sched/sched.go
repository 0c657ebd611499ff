//go:build linux

// Package sched provides access to the CPU affinity of processes and
// threads.
package sched

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// CPUSet is a convenient alias for the kernel CPU mask type.
type CPUSet = unix.CPUSet

// Getaffinity returns the CPU affinity mask of the process or thread with
// the given PID.  A pid of zero means the calling thread.
func Getaffinity(pid int) (set CPUSet, err error) {
	err = unix.SchedGetaffinity(pid, &set)
	if err != nil {
		return CPUSet{}, fmt.Errorf("getting affinity of pid %d: %w", pid, err)
	}

	return set, nil
}

// Setaffinity sets the CPU affinity mask of the process or thread with the
// given PID.  A pid of zero means the calling thread.
func Setaffinity(pid int, set *CPUSet) (err error) {
	err = unix.SchedSetaffinity(pid, set)
	if err != nil {
		return fmt.Errorf("setting affinity of pid %d: %w", pid, err)
	}

	return nil
}

// Yield relinquishes the CPU of the calling thread.  It cannot fail on
// Linux.  Most Go code wants [runtime.Gosched] instead, this is for threads
// pinned with [runtime.LockOSThread].
func Yield() {
	_, _, _ = unix.Syscall(unix.SYS_SCHED_YIELD, 0, 0, 0)
}
