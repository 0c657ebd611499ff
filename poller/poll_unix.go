//go:build linux || freebsd

package poller

import (
	"fmt"
	"time"

	"golang.org/x/sys/unix"
)

// pollPoller is the poll(2) backend.  It keeps the interest registry in
// process memory and rebuilds the kernel argument on every wait, so it suits
// small descriptor counts.
type pollPoller struct {
	interest map[int]Events
}

// type check
var _ Interface = (*pollPoller)(nil)

// NewPoll returns a poller backed by poll(2).
func NewPoll() (p Interface, err error) {
	return &pollPoller{interest: map[int]Events{}}, nil
}

// Register implements the [Interface] interface for *pollPoller.
func (p *pollPoller) Register(fd int, events Events) (err error) {
	if _, ok := p.interest[fd]; ok {
		return fmt.Errorf("poll register fd %d: %w", fd, unix.EEXIST)
	}

	p.interest[fd] = events

	return nil
}

// Modify implements the [Interface] interface for *pollPoller.
func (p *pollPoller) Modify(fd int, events Events) (err error) {
	if _, ok := p.interest[fd]; !ok {
		return fmt.Errorf("poll modify fd %d: %w", fd, unix.ENOENT)
	}

	p.interest[fd] = events

	return nil
}

// Unregister implements the [Interface] interface for *pollPoller.
func (p *pollPoller) Unregister(fd int) (err error) {
	if _, ok := p.interest[fd]; !ok {
		return fmt.Errorf("poll unregister fd %d: %w", fd, unix.ENOENT)
	}

	delete(p.interest, fd)

	return nil
}

// pollEvents converts an interest mask into poll(2) event bits.
func pollEvents(events Events) (bits int16) {
	if events&Read != 0 {
		bits |= unix.POLLIN
	}
	if events&Write != 0 {
		bits |= unix.POLLOUT
	}

	return bits
}

// fromPollEvents converts fired poll(2) bits into an [Events] mask.
func fromPollEvents(bits int16) (events Events) {
	if bits&unix.POLLIN != 0 {
		events |= Read
	}
	if bits&unix.POLLOUT != 0 {
		events |= Write
	}
	if bits&(unix.POLLERR|unix.POLLHUP|unix.POLLNVAL) != 0 {
		events |= Error
	}

	return events
}

// Wait implements the [Interface] interface for *pollPoller.
func (p *pollPoller) Wait(timeout time.Duration) (events []Event, err error) {
	fds := make([]unix.PollFd, 0, len(p.interest))
	for fd, ev := range p.interest {
		fds = append(fds, unix.PollFd{Fd: int32(fd), Events: pollEvents(ev)})
	}

	msec := -1
	if timeout >= 0 {
		msec = int(timeout.Milliseconds())
	}

	var n int
	for {
		n, err = unix.Poll(fds, msec)
		if err != unix.EINTR {
			break
		}
	}
	if err != nil {
		return nil, fmt.Errorf("poll wait: %w", err)
	}

	events = make([]Event, 0, n)
	for _, pfd := range fds {
		if ev := fromPollEvents(pfd.Revents); ev != 0 {
			events = append(events, Event{FD: int(pfd.Fd), Events: ev})
		}
	}

	return events, nil
}

// Close implements the [Interface] interface for *pollPoller.
func (p *pollPoller) Close() (err error) {
	p.interest = nil

	return nil
}
