// Package signum contains utilities for working with POSIX signal numbers,
// names, and signal sets.  The mask-manipulation functions are only available
// on Linux, since that is the only platform on which the Go runtime tolerates
// them being called from library code.
package signum

import (
	"golang.org/x/sys/unix"
)

// Signal is a convenient alias for the raw signal number type.
type Signal = unix.Signal

// CanCatch reports whether a process can catch or ignore the given signal.
// It returns false only for SIGKILL and SIGSTOP.
func CanCatch(sig Signal) (ok bool) {
	return sig != unix.SIGKILL && sig != unix.SIGSTOP
}

// portableNames contains the signal names defined on every supported
// platform.  Platform-specific names are added in init functions in the
// corresponding files.
var portableNames = map[string]Signal{
	"SIGABRT":   unix.SIGABRT,
	"SIGALRM":   unix.SIGALRM,
	"SIGBUS":    unix.SIGBUS,
	"SIGCHLD":   unix.SIGCHLD,
	"SIGCONT":   unix.SIGCONT,
	"SIGFPE":    unix.SIGFPE,
	"SIGHUP":    unix.SIGHUP,
	"SIGILL":    unix.SIGILL,
	"SIGINT":    unix.SIGINT,
	"SIGKILL":   unix.SIGKILL,
	"SIGPIPE":   unix.SIGPIPE,
	"SIGPROF":   unix.SIGPROF,
	"SIGQUIT":   unix.SIGQUIT,
	"SIGSEGV":   unix.SIGSEGV,
	"SIGSTOP":   unix.SIGSTOP,
	"SIGSYS":    unix.SIGSYS,
	"SIGTERM":   unix.SIGTERM,
	"SIGTRAP":   unix.SIGTRAP,
	"SIGTSTP":   unix.SIGTSTP,
	"SIGTTIN":   unix.SIGTTIN,
	"SIGTTOU":   unix.SIGTTOU,
	"SIGURG":    unix.SIGURG,
	"SIGUSR1":   unix.SIGUSR1,
	"SIGUSR2":   unix.SIGUSR2,
	"SIGVTALRM": unix.SIGVTALRM,
	"SIGXCPU":   unix.SIGXCPU,
	"SIGXFSZ":   unix.SIGXFSZ,
}

// FromName returns the signal with the given name, if there is one.  On
// Linux, names of the form "SIGRTMIN+n" are resolved against the real-time
// signal range.
func FromName(name string) (sig Signal, ok bool) {
	if sig, ok = fromRTName(name); ok {
		return sig, true
	}

	sig, ok = portableNames[name]

	return sig, ok
}

// Name returns the conventional name of sig, or an empty string if the
// signal has no name on this platform.  Real-time signals are rendered as
// "SIGRTMIN+n" on Linux.
func Name(sig Signal) (name string) {
	if name, ok := rtName(sig); ok {
		return name
	}

	for name, s := range portableNames {
		if s == sig {
			return name
		}
	}

	return ""
}
