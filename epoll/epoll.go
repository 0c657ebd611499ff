//go:build linux

// Package epoll provides a typed wrapper around the Linux epoll(7) event
// notification facility.
package epoll

import (
	"fmt"
	"time"
	"unsafe"

	"github.com/AdguardTeam/sysunix/signum"
	"golang.org/x/sys/unix"
)

// Event is a single readiness notification.
type Event struct {
	// Data is the opaque value registered with the descriptor.  [Epoll.Add]
	// stores the descriptor itself here by default.
	Data uint64

	// Events is the bitmask of [unix.EPOLLIN] and friends that fired.
	Events uint32
}

// Epoll is an open epoll instance.
type Epoll struct {
	fd int
}

// New creates an epoll instance with the close-on-exec flag set.
func New() (e *Epoll, err error) {
	fd, err := unix.EpollCreate1(unix.EPOLL_CLOEXEC)
	if err != nil {
		return nil, fmt.Errorf("creating epoll: %w", err)
	}

	return &Epoll{fd: fd}, nil
}

// FD returns the underlying epoll file descriptor.
func (e *Epoll) FD() (fd int) {
	return e.fd
}

// Close closes the epoll instance.
func (e *Epoll) Close() (err error) {
	return unix.Close(e.fd)
}

// nativeEvent packs events and data into the kernel representation.  The
// 64-bit data field of the kernel struct is exposed as two 32-bit halves in
// the generated type.
func nativeEvent(events uint32, data uint64) (ev unix.EpollEvent) {
	return unix.EpollEvent{
		Events: events,
		Fd:     int32(uint32(data)),
		Pad:    int32(uint32(data >> 32)),
	}
}

// eventData reassembles the 64-bit data value of a kernel event.
func eventData(ev *unix.EpollEvent) (data uint64) {
	return uint64(uint32(ev.Fd)) | uint64(uint32(ev.Pad))<<32
}

// ctl performs an epoll_ctl operation.
func (e *Epoll) ctl(op, fd int, ev *unix.EpollEvent) (err error) {
	err = unix.EpollCtl(e.fd, op, fd, ev)
	if err != nil {
		return fmt.Errorf("epoll_ctl fd %d: %w", fd, err)
	}

	return nil
}

// Add registers fd for the given event mask, storing the descriptor itself
// as the event data.
func (e *Epoll) Add(fd int, events uint32) (err error) {
	return e.AddData(fd, events, uint64(fd))
}

// AddData registers fd for the given event mask with an explicit data value.
func (e *Epoll) AddData(fd int, events uint32, data uint64) (err error) {
	ev := nativeEvent(events, data)

	return e.ctl(unix.EPOLL_CTL_ADD, fd, &ev)
}

// Modify changes the event mask of a registered descriptor, storing the
// descriptor itself as the event data.
func (e *Epoll) Modify(fd int, events uint32) (err error) {
	return e.ModifyData(fd, events, uint64(fd))
}

// ModifyData changes the event mask and data of a registered descriptor.
func (e *Epoll) ModifyData(fd int, events uint32, data uint64) (err error) {
	ev := nativeEvent(events, data)

	return e.ctl(unix.EPOLL_CTL_MOD, fd, &ev)
}

// Delete removes fd from the interest list.
func (e *Epoll) Delete(fd int) (err error) {
	return e.ctl(unix.EPOLL_CTL_DEL, fd, nil)
}

// timeoutMsec converts a timeout into the millisecond argument of the wait
// calls.  A negative duration blocks until an event arrives.
func timeoutMsec(timeout time.Duration) (msec int) {
	if timeout < 0 {
		return -1
	}

	return int(timeout.Milliseconds())
}

// Wait blocks for up to timeout until at least one registered descriptor is
// ready and returns the fired events, at most maxEvents of them.  A negative
// timeout blocks indefinitely, a zero one polls.  Interruptions by signal
// handlers are retried.
func (e *Epoll) Wait(maxEvents int, timeout time.Duration) (events []Event, err error) {
	if maxEvents < 1 {
		return nil, fmt.Errorf("epoll wait: maxEvents %d: %w", maxEvents, unix.EINVAL)
	}

	buf := make([]unix.EpollEvent, maxEvents)

	var n int
	for {
		n, err = unix.EpollWait(e.fd, buf, timeoutMsec(timeout))
		if err != unix.EINTR {
			break
		}
	}
	if err != nil {
		return nil, fmt.Errorf("epoll wait: %w", err)
	}

	return convertEvents(buf[:n]), nil
}

// Pwait is like [Wait] but atomically replaces the signal mask of the
// calling thread with sigmask for the duration of the call.  It is not
// retried on EINTR, since receiving an unblocked signal is usually the point
// of using it.
func (e *Epoll) Pwait(maxEvents int, timeout time.Duration, sigmask signum.Set) (events []Event, err error) {
	if maxEvents < 1 {
		return nil, fmt.Errorf("epoll pwait: maxEvents %d: %w", maxEvents, unix.EINVAL)
	}

	buf := make([]unix.EpollEvent, maxEvents)
	mask := sigmask.Native()

	// The last argument is the size of the kernel sigset, which is 64 bits
	// and smaller than the libc-compatible type the mask is stored in.
	const kernelSigsetSize = 8
	r0, _, errno := unix.Syscall6(
		unix.SYS_EPOLL_PWAIT,
		uintptr(e.fd),
		uintptr(unsafe.Pointer(&buf[0])),
		uintptr(maxEvents),
		uintptr(timeoutMsec(timeout)),
		uintptr(unsafe.Pointer(&mask)),
		kernelSigsetSize,
	)
	if errno != 0 {
		return nil, fmt.Errorf("epoll pwait: %w", errno)
	}

	return convertEvents(buf[:int(r0)]), nil
}

// convertEvents converts fired kernel events into the owned representation.
func convertEvents(buf []unix.EpollEvent) (events []Event) {
	events = make([]Event, len(buf))
	for i := range buf {
		events[i] = Event{Data: eventData(&buf[i]), Events: buf[i].Events}
	}

	return events
}
