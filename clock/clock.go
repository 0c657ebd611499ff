//go:build linux

// Package clock reads the kernel clocks that the standard library does not
// expose directly, most usefully the one that keeps counting while the
// system is suspended.
package clock

import (
	"fmt"
	"time"

	"golang.org/x/sys/unix"
)

// ID identifies a kernel clock.  See clock_gettime(2) for the full list.
type ID int32

// Clocks of general interest.
const (
	// Monotonic counts from an unspecified point and is unaffected by
	// changes to the wall clock.  It stops while the system is suspended.
	Monotonic ID = unix.CLOCK_MONOTONIC

	// Boottime is like [Monotonic] but keeps counting through suspend.
	Boottime ID = unix.CLOCK_BOOTTIME

	// ProcessCPU measures the CPU time consumed by the calling process.
	ProcessCPU ID = unix.CLOCK_PROCESS_CPUTIME_ID

	// ThreadCPU measures the CPU time consumed by the calling thread.
	ThreadCPU ID = unix.CLOCK_THREAD_CPUTIME_ID
)

// Get reads the clock with the given ID.
func Get(id ID) (d time.Duration, err error) {
	ts := unix.Timespec{}
	err = unix.ClockGettime(int32(id), &ts)
	if err != nil {
		return 0, fmt.Errorf("reading clock %d: %w", id, err)
	}

	return time.Duration(ts.Nano()), nil
}

// SinceBoot returns the time since the system booted, including any time it
// spent suspended.
func SinceBoot() (d time.Duration, err error) {
	return Get(Boottime)
}
