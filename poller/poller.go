// Package poller provides a uniform readiness-notification interface over
// the platform event facilities: epoll on Linux, kqueue on the BSDs, and
// plain poll(2) where nothing better is wanted.
package poller

import (
	"time"
)

// Events is a bitmask of interest and readiness kinds.
type Events uint8

// Events values.
const (
	// Read means the descriptor is readable without blocking.
	Read Events = 1 << iota

	// Write means the descriptor is writable without blocking.
	Write

	// Error means an error or hangup condition.  It is always reported,
	// regardless of the registered interest.
	Error
)

// Event is a single readiness notification.
type Event struct {
	// FD is the descriptor the notification is for.
	FD int

	// Events is the set of conditions that fired.
	Events Events
}

// Interface is the common contract of the poller backends.
//
// All backends agree on the registry semantics: registering an already
// registered descriptor fails with [unix.EEXIST], while modifying or
// unregistering an unknown one fails with [unix.ENOENT].
type Interface interface {
	// Register adds fd to the poller with the given interest.
	Register(fd int, events Events) (err error)

	// Modify replaces the interest of a registered descriptor.
	Modify(fd int, events Events) (err error)

	// Unregister removes fd from the poller.
	Unregister(fd int) (err error)

	// Wait blocks for up to timeout until at least one registered
	// descriptor is ready.  A negative timeout blocks indefinitely, a zero
	// one polls.  An expired timeout is reported as an empty slice with a
	// nil error.
	Wait(timeout time.Duration) (events []Event, err error)

	// Close releases the resources of the poller.
	Close() (err error)
}
