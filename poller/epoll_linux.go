//go:build linux

package poller

import (
	"fmt"
	"time"

	"github.com/AdguardTeam/sysunix/epoll"
	"golang.org/x/sys/unix"
)

// New returns the default poller for the platform, which is epoll here.
func New() (p Interface, err error) {
	return NewEpoll()
}

// epollPoller is the epoll backend.
type epollPoller struct {
	ep *epoll.Epoll
}

// type check
var _ Interface = (*epollPoller)(nil)

// NewEpoll returns a poller backed by epoll.
func NewEpoll() (p Interface, err error) {
	ep, err := epoll.New()
	if err != nil {
		return nil, err
	}

	return &epollPoller{ep: ep}, nil
}

// epollEvents converts an interest mask into epoll event bits.
func epollEvents(events Events) (bits uint32) {
	if events&Read != 0 {
		bits |= unix.EPOLLIN
	}
	if events&Write != 0 {
		bits |= unix.EPOLLOUT
	}

	return bits
}

// fromEpollEvents converts fired epoll bits into an [Events] mask.
func fromEpollEvents(bits uint32) (events Events) {
	if bits&unix.EPOLLIN != 0 {
		events |= Read
	}
	if bits&unix.EPOLLOUT != 0 {
		events |= Write
	}
	if bits&(unix.EPOLLERR|unix.EPOLLHUP) != 0 {
		events |= Error
	}

	return events
}

// Register implements the [Interface] interface for *epollPoller.  The
// kernel itself reports duplicate registrations as EEXIST.
func (p *epollPoller) Register(fd int, events Events) (err error) {
	return p.ep.Add(fd, epollEvents(events))
}

// Modify implements the [Interface] interface for *epollPoller.
func (p *epollPoller) Modify(fd int, events Events) (err error) {
	return p.ep.Modify(fd, epollEvents(events))
}

// Unregister implements the [Interface] interface for *epollPoller.
func (p *epollPoller) Unregister(fd int) (err error) {
	return p.ep.Delete(fd)
}

// epollWaitBufSize is the number of events retrieved by one wait call.
const epollWaitBufSize = 64

// Wait implements the [Interface] interface for *epollPoller.
func (p *epollPoller) Wait(timeout time.Duration) (events []Event, err error) {
	fired, err := p.ep.Wait(epollWaitBufSize, timeout)
	if err != nil {
		return nil, fmt.Errorf("epoll poller: %w", err)
	}

	events = make([]Event, 0, len(fired))
	for _, ev := range fired {
		events = append(events, Event{
			FD:     int(ev.Data),
			Events: fromEpollEvents(ev.Events),
		})
	}

	return events, nil
}

// Close implements the [Interface] interface for *epollPoller.
func (p *epollPoller) Close() (err error) {
	return p.ep.Close()
}
