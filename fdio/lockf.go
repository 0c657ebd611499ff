package fdio

import (
	"golang.org/x/sys/unix"
)

// sectionFlock builds the flock record for a byte range of the file.  A
// length of zero extends the range to the end of the file.
func sectionFlock(lockType int16, start, length int64) (fl *unix.Flock_t) {
	return &unix.Flock_t{
		Type:   lockType,
		Whence: int16(unix.SEEK_SET),
		Start:  start,
		Len:    length,
	}
}

// LockRecord takes an advisory record lock on a byte range of the open file
// fd.  With exclusive set it takes a write lock, which requires the
// descriptor to be open for writing.  Without block, a conflicting lock
// makes the call fail with [unix.EAGAIN] or [unix.EACCES] instead of
// waiting.
func LockRecord(fd int, exclusive, block bool, start, length int64) (err error) {
	lockType := int16(unix.F_RDLCK)
	if exclusive {
		lockType = unix.F_WRLCK
	}

	cmd := unix.F_SETLK
	if block {
		cmd = unix.F_SETLKW
	}

	return unix.FcntlFlock(uintptr(fd), cmd, sectionFlock(lockType, start, length))
}

// UnlockRecord releases the advisory record lock on a byte range of fd.
func UnlockRecord(fd int, start, length int64) (err error) {
	return unix.FcntlFlock(uintptr(fd), unix.F_SETLK, sectionFlock(unix.F_UNLCK, start, length))
}

// IsLockedOther reports whether another process holds a lock conflicting
// with an exclusive lock on the given byte range of fd.  Locks held by the
// calling process itself are not reported.
func IsLockedOther(fd int, start, length int64) (locked bool, err error) {
	fl := sectionFlock(unix.F_WRLCK, start, length)
	err = unix.FcntlFlock(uintptr(fd), unix.F_GETLK, fl)
	if err != nil {
		return false, err
	}

	return fl.Type != unix.F_UNLCK, nil
}
