package proc

import (
	"fmt"

	"github.com/AdguardTeam/sysunix/rusage"
	"github.com/AdguardTeam/sysunix/signum"
	"golang.org/x/sys/unix"
)

// StatusKind describes what happened to a waited-for child.
type StatusKind int

// StatusKind values.
const (
	// StatusExited means the child terminated normally.
	StatusExited StatusKind = iota

	// StatusSignaled means the child was terminated by a signal.
	StatusSignaled

	// StatusStopped means the child was stopped by a signal.  Reported only
	// when waiting with [unix.WUNTRACED] or for traced children.
	StatusStopped

	// StatusContinued means the stopped child was resumed by SIGCONT.
	// Reported only when waiting with [unix.WCONTINUED].
	StatusContinued
)

// Status is the decoded exit status of a waited-for child.
type Status struct {
	// Kind says which of the remaining fields are meaningful.
	Kind StatusKind

	// ExitCode is the code passed to exit(2).  Only set for [StatusExited].
	ExitCode int

	// Signal is the signal that terminated, stopped, or resumed the child.
	// Not set for [StatusExited].
	Signal signum.Signal

	// CoreDumped reports whether the child produced a core dump.  Only set
	// for [StatusSignaled].
	CoreDumped bool
}

// statusFromWait decodes a raw wait status.
func statusFromWait(ws unix.WaitStatus) (s Status) {
	switch {
	case ws.Exited():
		return Status{Kind: StatusExited, ExitCode: ws.ExitStatus()}
	case ws.Signaled():
		return Status{
			Kind:       StatusSignaled,
			Signal:     ws.Signal(),
			CoreDumped: ws.CoreDump(),
		}
	case ws.Stopped():
		return Status{Kind: StatusStopped, Signal: ws.StopSignal()}
	case ws.Continued():
		return Status{Kind: StatusContinued, Signal: unix.SIGCONT}
	default:
		// Unknown status words decode as a plain exit.
		return Status{Kind: StatusExited, ExitCode: ws.ExitStatus()}
	}
}

// specKind discriminates [WaitSpec] variants.
type specKind int

const (
	specAny specKind = iota
	specPid
	specPgid
	specCurrentPgid
)

// WaitSpec selects which children a wait call collects.  Construct values
// with [WaitAny], [WaitPid], [WaitPgid], or [WaitCurrentPgid].
type WaitSpec struct {
	kind specKind
	id   int
}

// WaitAny selects any child of the calling process.
func WaitAny() (s WaitSpec) { return WaitSpec{kind: specAny} }

// WaitPid selects the single child with the given PID.
func WaitPid(pid int) (s WaitSpec) { return WaitSpec{kind: specPid, id: pid} }

// WaitPgid selects any child in the process group with the given ID.
func WaitPgid(pgid int) (s WaitSpec) { return WaitSpec{kind: specPgid, id: pgid} }

// WaitCurrentPgid selects any child in the process group of the caller.
func WaitCurrentPgid() (s WaitSpec) { return WaitSpec{kind: specCurrentPgid} }

// waitArg converts the spec into the pid argument of waitpid(2), validating
// IDs that would otherwise silently select a different set of children.
func (s WaitSpec) waitArg() (pid int, err error) {
	switch s.kind {
	case specAny:
		return -1, nil
	case specPid:
		if s.id <= 0 {
			return 0, fmt.Errorf("wait spec: pid %d: %w", s.id, unix.EINVAL)
		}

		return s.id, nil
	case specPgid:
		// Group IDs zero and one cannot be encoded, since their negations
		// mean the caller's group and any child.
		if s.id <= 1 {
			return 0, fmt.Errorf("wait spec: pgid %d: %w", s.id, unix.EINVAL)
		}

		return -s.id, nil
	default:
		return 0, nil
	}
}

// WaitResult is the outcome of a successful wait call.
type WaitResult struct {
	// Pid is the ID of the child the status belongs to.
	Pid int

	// Status is the decoded state change of the child.
	Status Status
}

// Wait blocks until any child of the calling process changes state and
// returns its decoded status.
func Wait() (res *WaitResult, err error) {
	return Waitpid(WaitAny(), 0)
}

// Waitpid waits for a state change in the children selected by spec.
// options is a bitmask of wait flags such as [unix.WNOHANG] and
// [unix.WUNTRACED].  When WNOHANG is set and no child has changed state yet,
// both return values are nil.
func Waitpid(spec WaitSpec, options int) (res *WaitResult, err error) {
	res, _, err = wait4(spec, options, false)

	return res, err
}

// Wait4 is like [Waitpid] but additionally returns the resource usage of the
// collected child.
func Wait4(spec WaitSpec, options int) (res *WaitResult, usage rusage.Usage, err error) {
	return wait4(spec, options, true)
}

// wait4 is the common implementation of the wait calls.
func wait4(spec WaitSpec, options int, wantUsage bool) (res *WaitResult, usage rusage.Usage, err error) {
	pidArg, err := spec.waitArg()
	if err != nil {
		return nil, rusage.Usage{}, err
	}

	var ru *unix.Rusage
	if wantUsage {
		ru = &unix.Rusage{}
	}

	var ws unix.WaitStatus
	var pid int
	for {
		pid, err = unix.Wait4(pidArg, &ws, options, ru)
		if err != unix.EINTR {
			break
		}
	}
	if err != nil {
		return nil, rusage.Usage{}, err
	}

	// With WNOHANG the kernel reports "nothing yet" as a zero PID.
	if pid == 0 {
		return nil, rusage.Usage{}, nil
	}

	if wantUsage {
		usage = rusage.FromNative(ru)
	}

	return &WaitResult{Pid: pid, Status: statusFromWait(ws)}, usage, nil
}
