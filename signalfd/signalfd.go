//go:build linux

// Package signalfd provides the Linux signalfd(2) mechanism, which turns
// signal delivery into file descriptor reads.  The signals of interest must
// be blocked with [signum.Block] before they can be received this way,
// otherwise they keep being delivered asynchronously.
package signalfd

import (
	"fmt"
	"io"
	"unsafe"

	"github.com/AdguardTeam/sysunix/signum"
	"golang.org/x/sys/unix"
)

// Info describes one received signal.  See signalfd(2) for the meaning of
// the fields.
type Info = unix.SignalfdSiginfo

// sizeofInfo is the size of one signalfd record on the wire.
const sizeofInfo = int(unsafe.Sizeof(Info{}))

// FD is an open signal file descriptor.
type FD struct {
	fd       int
	nonblock bool
}

// New creates a signal descriptor receiving the signals in set.  The
// descriptor is close-on-exec.  With nonblock set, reads on an empty
// descriptor return no data instead of waiting.
func New(set signum.Set, nonblock bool) (f *FD, err error) {
	flags := unix.SFD_CLOEXEC
	if nonblock {
		flags |= unix.SFD_NONBLOCK
	}

	mask := set.Native()
	fd, err := unix.Signalfd(-1, &mask, flags)
	if err != nil {
		return nil, fmt.Errorf("creating signalfd: %w", err)
	}

	return &FD{fd: fd, nonblock: nonblock}, nil
}

// SetMask replaces the set of signals the descriptor receives.
func (f *FD) SetMask(set signum.Set) (err error) {
	mask := set.Native()
	_, err = unix.Signalfd(f.fd, &mask, 0)
	if err != nil {
		return fmt.Errorf("updating signalfd mask: %w", err)
	}

	return nil
}

// FD returns the underlying file descriptor, for registration with pollers.
func (f *FD) FD() (fd int) {
	return f.fd
}

// Close closes the descriptor.
func (f *FD) Close() (err error) {
	return unix.Close(f.fd)
}

// ReadOne reads a single pending signal.  On a nonblocking descriptor with
// no signals pending it returns nil without an error.
func (f *FD) ReadOne() (info *Info, err error) {
	infos, err := f.Read(1)
	if err != nil || len(infos) == 0 {
		return nil, err
	}

	return &infos[0], nil
}

// Read reads up to maxNum pending signals.  On a nonblocking descriptor with
// no signals pending it returns an empty slice without an error.
func (f *FD) Read(maxNum int) (infos []Info, err error) {
	if maxNum < 1 {
		return nil, fmt.Errorf("reading signalfd: maxNum %d: %w", maxNum, unix.EINVAL)
	}

	buf := make([]byte, maxNum*sizeofInfo)

	var n int
	for {
		n, err = unix.Read(f.fd, buf)
		if err != unix.EINTR {
			break
		}
	}
	if err != nil {
		if f.nonblock && err == unix.EAGAIN {
			return nil, nil
		}

		return nil, fmt.Errorf("reading signalfd: %w", err)
	}

	if n%sizeofInfo != 0 {
		return nil, fmt.Errorf("reading signalfd: %d trailing bytes: %w",
			n%sizeofInfo, io.ErrUnexpectedEOF)
	}

	infos = make([]Info, n/sizeofInfo)
	for i := range infos {
		infos[i] = *(*Info)(unsafe.Pointer(&buf[i*sizeofInfo]))
	}

	return infos, nil
}
