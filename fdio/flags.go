package fdio

import (
	"golang.org/x/sys/unix"
)

// GetFlags returns the file status flags of fd, such as [unix.O_NONBLOCK]
// and [unix.O_APPEND].
func GetFlags(fd int) (flags int, err error) {
	return unix.FcntlInt(uintptr(fd), unix.F_GETFL, 0)
}

// SetFlags replaces the file status flags of fd.  Access mode and creation
// flags are ignored by the kernel.
func SetFlags(fd int, flags int) (err error) {
	_, err = unix.FcntlInt(uintptr(fd), unix.F_SETFL, flags)

	return err
}

// SetNonblock sets or clears the O_NONBLOCK status flag of fd.
func SetNonblock(fd int, nonblock bool) (err error) {
	return unix.SetNonblock(fd, nonblock)
}

// IsInheritable reports whether fd stays open across exec, that is whether
// its close-on-exec flag is unset.
func IsInheritable(fd int) (ok bool, err error) {
	fdFlags, err := unix.FcntlInt(uintptr(fd), unix.F_GETFD, 0)
	if err != nil {
		return false, err
	}

	return fdFlags&unix.FD_CLOEXEC == 0, nil
}

// SetInheritable sets or clears the close-on-exec flag of fd.  It does not
// issue the second fcntl call when the flag already has the wanted value.
func SetInheritable(fd int, inheritable bool) (err error) {
	fdFlags, err := unix.FcntlInt(uintptr(fd), unix.F_GETFD, 0)
	if err != nil {
		return err
	}

	newFlags := fdFlags
	if inheritable {
		newFlags &^= unix.FD_CLOEXEC
	} else {
		newFlags |= unix.FD_CLOEXEC
	}

	if newFlags == fdFlags {
		return nil
	}

	_, err = unix.FcntlInt(uintptr(fd), unix.F_SETFD, newFlags)

	return err
}
