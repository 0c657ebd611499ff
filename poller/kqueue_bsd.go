//go:build darwin || freebsd

package poller

import (
	"fmt"
	"time"

	"golang.org/x/sys/unix"
)

// kqueuePoller is the kqueue backend.  Read and write interest map to
// separate kernel filters, so the registry is tracked in process memory to
// keep the [Interface] contract.
type kqueuePoller struct {
	interest map[int]Events
	kq       int
}

// type check
var _ Interface = (*kqueuePoller)(nil)

// NewKqueue returns a poller backed by kqueue.
func NewKqueue() (p Interface, err error) {
	kq, err := unix.Kqueue()
	if err != nil {
		return nil, fmt.Errorf("creating kqueue: %w", err)
	}

	return &kqueuePoller{interest: map[int]Events{}, kq: kq}, nil
}

// filterChanges builds the kevent changelist that moves fd from the old
// interest to the new one.
func filterChanges(fd int, old, next Events) (changes []unix.Kevent_t) {
	pairs := []struct {
		ev     Events
		filter int16
	}{
		{ev: Read, filter: unix.EVFILT_READ},
		{ev: Write, filter: unix.EVFILT_WRITE},
	}

	for _, pair := range pairs {
		had, want := old&pair.ev != 0, next&pair.ev != 0
		if had == want {
			continue
		}

		flags := uint16(unix.EV_ADD)
		if !want {
			flags = unix.EV_DELETE
		}

		changes = append(changes, unix.Kevent_t{
			Ident:  uint64(fd),
			Filter: pair.filter,
			Flags:  flags,
		})
	}

	return changes
}

// apply submits the changelist to the kernel.
func (p *kqueuePoller) apply(changes []unix.Kevent_t) (err error) {
	if len(changes) == 0 {
		return nil
	}

	_, err = unix.Kevent(p.kq, changes, nil, nil)

	return err
}

// Register implements the [Interface] interface for *kqueuePoller.
func (p *kqueuePoller) Register(fd int, events Events) (err error) {
	if _, ok := p.interest[fd]; ok {
		return fmt.Errorf("kqueue register fd %d: %w", fd, unix.EEXIST)
	}

	err = p.apply(filterChanges(fd, 0, events))
	if err != nil {
		return fmt.Errorf("kqueue register fd %d: %w", fd, err)
	}

	p.interest[fd] = events

	return nil
}

// Modify implements the [Interface] interface for *kqueuePoller.
func (p *kqueuePoller) Modify(fd int, events Events) (err error) {
	old, ok := p.interest[fd]
	if !ok {
		return fmt.Errorf("kqueue modify fd %d: %w", fd, unix.ENOENT)
	}

	err = p.apply(filterChanges(fd, old, events))
	if err != nil {
		return fmt.Errorf("kqueue modify fd %d: %w", fd, err)
	}

	p.interest[fd] = events

	return nil
}

// Unregister implements the [Interface] interface for *kqueuePoller.
func (p *kqueuePoller) Unregister(fd int) (err error) {
	old, ok := p.interest[fd]
	if !ok {
		return fmt.Errorf("kqueue unregister fd %d: %w", fd, unix.ENOENT)
	}

	err = p.apply(filterChanges(fd, old, 0))
	if err != nil {
		return fmt.Errorf("kqueue unregister fd %d: %w", fd, err)
	}

	delete(p.interest, fd)

	return nil
}

// kqueueWaitBufSize is the number of events retrieved by one wait call.
const kqueueWaitBufSize = 64

// Wait implements the [Interface] interface for *kqueuePoller.
func (p *kqueuePoller) Wait(timeout time.Duration) (events []Event, err error) {
	var ts *unix.Timespec
	if timeout >= 0 {
		t := unix.NsecToTimespec(timeout.Nanoseconds())
		ts = &t
	}

	buf := make([]unix.Kevent_t, kqueueWaitBufSize)

	var n int
	for {
		n, err = unix.Kevent(p.kq, nil, buf, ts)
		if err != unix.EINTR {
			break
		}
	}
	if err != nil {
		return nil, fmt.Errorf("kqueue wait: %w", err)
	}

	// Coalesce the per-filter kernel events into one event per descriptor.
	fired := map[int]Events{}
	order := make([]int, 0, n)
	for _, kev := range buf[:n] {
		fd := int(kev.Ident)

		ev := fired[fd]
		if ev == 0 {
			order = append(order, fd)
		}

		switch kev.Filter {
		case unix.EVFILT_READ:
			ev |= Read
		case unix.EVFILT_WRITE:
			ev |= Write
		}
		if kev.Flags&(unix.EV_ERROR|unix.EV_EOF) != 0 {
			ev |= Error
		}

		fired[fd] = ev
	}

	events = make([]Event, 0, len(order))
	for _, fd := range order {
		events = append(events, Event{FD: fd, Events: fired[fd]})
	}

	return events, nil
}

// Close implements the [Interface] interface for *kqueuePoller.
func (p *kqueuePoller) Close() (err error) {
	p.interest = nil

	return unix.Close(p.kq)
}
