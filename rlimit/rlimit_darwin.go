//go:build darwin

package rlimit

import (
	"golang.org/x/sys/unix"
)

// nativeResources maps resources to the kernel constants.  Linux-specific
// resources are absent.
var nativeResources = map[Resource]int{
	ResAS:      unix.RLIMIT_AS,
	ResCore:    unix.RLIMIT_CORE,
	ResCPU:     unix.RLIMIT_CPU,
	ResData:    unix.RLIMIT_DATA,
	ResFsize:   unix.RLIMIT_FSIZE,
	ResMemlock: unix.RLIMIT_MEMLOCK,
	ResNofile:  unix.RLIMIT_NOFILE,
	ResNproc:   unix.RLIMIT_NPROC,
	ResRSS:     unix.RLIMIT_RSS,
	ResStack:   unix.RLIMIT_STACK,
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
