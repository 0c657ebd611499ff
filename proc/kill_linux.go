//go:build linux

package proc

import (
	"github.com/AdguardTeam/sysunix/signum"
	"golang.org/x/sys/unix"
)

// Tgkill sends sig to the thread with ID tid inside the thread group tgid.
func Tgkill(tgid, tid int, sig signum.Signal) (err error) {
	return unix.Tgkill(tgid, tid, unix.Signal(sig))
}

// Gettid returns the thread ID of the calling thread.  Callers that rely on
// the result staying valid must pin the goroutine with
// [runtime.LockOSThread] first.
func Gettid() (tid int) {
	return unix.Gettid()
}
