//go:build linux

package rlimit

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// nativeResources maps resources to the kernel constants.
var nativeResources = map[Resource]int{
	ResAS:         unix.RLIMIT_AS,
	ResCore:       unix.RLIMIT_CORE,
	ResCPU:        unix.RLIMIT_CPU,
	ResData:       unix.RLIMIT_DATA,
	ResFsize:      unix.RLIMIT_FSIZE,
	ResLocks:      unix.RLIMIT_LOCKS,
	ResMemlock:    unix.RLIMIT_MEMLOCK,
	ResMsgqueue:   unix.RLIMIT_MSGQUEUE,
	ResNice:       unix.RLIMIT_NICE,
	ResNofile:     unix.RLIMIT_NOFILE,
	ResNproc:      unix.RLIMIT_NPROC,
	ResRSS:        unix.RLIMIT_RSS,
	ResRTPrio:     unix.RLIMIT_RTPRIO,
	ResRTTime:     unix.RLIMIT_RTTIME,
	ResSigpending: unix.RLIMIT_SIGPENDING,
	ResStack:      unix.RLIMIT_STACK,
}

// native converts the resource into the kernel constant.
func (r Resource) native() (res int, err error) {
	res, ok := nativeResources[r]
	if !ok {
		return 0, r.unsupported()
	}

	return res, nil
}

// native converts the limit into the kernel representation.
func (l Limit) native() (rlim *unix.Rlimit) {
	return &unix.Rlimit{Cur: l.Cur, Max: l.Max}
}

// limitFromNative converts the kernel representation into a [Limit].
func limitFromNative(rlim *unix.Rlimit) (l Limit) {
	return Limit{Cur: rlim.Cur, Max: rlim.Max}
}

// Prlimit atomically replaces and retrieves the limits for res of the
// process with the given PID.  A pid of zero means the calling process.  A
// nil newLimit only retrieves the current value.
func Prlimit(pid int, res Resource, newLimit *Limit) (old Limit, err error) {
	native, err := res.native()
	if err != nil {
		return Limit{}, err
	}

	var newRlim *unix.Rlimit
	if newLimit != nil {
		newRlim = newLimit.native()
	}

	oldRlim := &unix.Rlimit{}
	err = unix.Prlimit(pid, native, newRlim, oldRlim)
	if err != nil {
		return Limit{}, fmt.Errorf("prlimit %s for pid %d: %w", res, pid, err)
	}

	return limitFromNative(oldRlim), nil
}
