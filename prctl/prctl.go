//go:build linux

// Package prctl wraps the Linux prctl(2) process control operations and the
// capability sets of threads.
package prctl

import (
	"fmt"
	"unsafe"

	"github.com/AdguardTeam/sysunix/signum"
	"golang.org/x/sys/unix"
)

// nameBufSize is the buffer size of the thread name operations, a kernel
// constant including the terminating NUL.
const nameBufSize = 16

// GetName returns the name of the calling thread.
func GetName() (name string, err error) {
	buf := [nameBufSize]byte{}
	err = unix.Prctl(unix.PR_GET_NAME, uintptr(unsafe.Pointer(&buf[0])), 0, 0, 0)
	if err != nil {
		return "", fmt.Errorf("getting thread name: %w", err)
	}

	return unix.ByteSliceToString(buf[:]), nil
}

// SetName sets the name of the calling thread.  Names longer than 15 bytes
// are rejected rather than silently truncated.
func SetName(name string) (err error) {
	if len(name) >= nameBufSize {
		return fmt.Errorf("setting thread name: %d bytes long, at most %d allowed: %w",
			len(name), nameBufSize-1, unix.EINVAL)
	}

	buf := [nameBufSize]byte{}
	copy(buf[:], name)

	err = unix.Prctl(unix.PR_SET_NAME, uintptr(unsafe.Pointer(&buf[0])), 0, 0, 0)
	if err != nil {
		return fmt.Errorf("setting thread name: %w", err)
	}

	return nil
}

// GetDumpable reports whether the process may be core dumped and attached to
// with ptrace.
func GetDumpable() (ok bool, err error) {
	v, err := unix.PrctlRetInt(unix.PR_GET_DUMPABLE, 0, 0, 0, 0)
	if err != nil {
		return false, fmt.Errorf("getting dumpable: %w", err)
	}

	return v == 1, nil
}

// SetDumpable sets whether the process may be core dumped.  Clearing it also
// restricts ptrace attachment and access to /proc/self.
func SetDumpable(ok bool) (err error) {
	v := uintptr(0)
	if ok {
		v = 1
	}

	err = unix.Prctl(unix.PR_SET_DUMPABLE, v, 0, 0, 0)
	if err != nil {
		return fmt.Errorf("setting dumpable: %w", err)
	}

	return nil
}

// GetPdeathsig returns the signal the calling process receives when its
// parent dies, or zero if none is set.
func GetPdeathsig() (sig signum.Signal, err error) {
	var raw int
	err = unix.Prctl(unix.PR_GET_PDEATHSIG, uintptr(unsafe.Pointer(&raw)), 0, 0, 0)
	if err != nil {
		return 0, fmt.Errorf("getting parent-death signal: %w", err)
	}

	return signum.Signal(raw), nil
}

// SetPdeathsig sets the signal the calling process receives when its parent
// dies.  A sig of zero clears it.  The setting is per-thread and survives
// neither fork nor a change of credentials.
func SetPdeathsig(sig signum.Signal) (err error) {
	err = unix.Prctl(unix.PR_SET_PDEATHSIG, uintptr(sig), 0, 0, 0)
	if err != nil {
		return fmt.Errorf("setting parent-death signal: %w", err)
	}

	return nil
}

// GetNoNewPrivs reports whether the no-new-privileges attribute is set.
func GetNoNewPrivs() (ok bool, err error) {
	v, err := unix.PrctlRetInt(unix.PR_GET_NO_NEW_PRIVS, 0, 0, 0, 0)
	if err != nil {
		return false, fmt.Errorf("getting no_new_privs: %w", err)
	}

	return v == 1, nil
}

// SetNoNewPrivs sets the no-new-privileges attribute, after which execve can
// never grant privileges the process does not already have.  The attribute
// cannot be unset.
func SetNoNewPrivs() (err error) {
	err = unix.Prctl(unix.PR_SET_NO_NEW_PRIVS, 1, 0, 0, 0)
	if err != nil {
		return fmt.Errorf("setting no_new_privs: %w", err)
	}

	return nil
}

// GetKeepCaps reports whether permitted capabilities are kept when all UIDs
// are changed away from zero.
func GetKeepCaps() (ok bool, err error) {
	v, err := unix.PrctlRetInt(unix.PR_GET_KEEPCAPS, 0, 0, 0, 0)
	if err != nil {
		return false, fmt.Errorf("getting keepcaps: %w", err)
	}

	return v == 1, nil
}

// SetKeepCaps sets whether permitted capabilities are kept across a change
// of all UIDs away from zero.  The flag is cleared on execve.
func SetKeepCaps(ok bool) (err error) {
	v := uintptr(0)
	if ok {
		v = 1
	}

	err = unix.Prctl(unix.PR_SET_KEEPCAPS, v, 0, 0, 0)
	if err != nil {
		return fmt.Errorf("setting keepcaps: %w", err)
	}

	return nil
}

// Securebits flags.  See capabilities(7).
const (
	SecbitNoRoot                  = 1 << 0
	SecbitNoRootLocked            = 1 << 1
	SecbitNoSetUIDFixup           = 1 << 2
	SecbitNoSetUIDFixupLocked     = 1 << 3
	SecbitKeepCaps                = 1 << 4
	SecbitKeepCapsLocked          = 1 << 5
	SecbitNoCapAmbientRaise       = 1 << 6
	SecbitNoCapAmbientRaiseLocked = 1 << 7
)

// GetSecurebits returns the securebits flags of the calling thread.
func GetSecurebits() (bits int, err error) {
	bits, err = unix.PrctlRetInt(unix.PR_GET_SECUREBITS, 0, 0, 0, 0)
	if err != nil {
		return 0, fmt.Errorf("getting securebits: %w", err)
	}

	return bits, nil
}

// SetSecurebits replaces the securebits flags of the calling thread.
// Requires CAP_SETPCAP.
func SetSecurebits(bits int) (err error) {
	err = unix.Prctl(unix.PR_SET_SECUREBITS, uintptr(bits), 0, 0, 0)
	if err != nil {
		return fmt.Errorf("setting securebits: %w", err)
	}

	return nil
}
