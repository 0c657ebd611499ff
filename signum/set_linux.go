//go:build linux

package signum

import (
	"golang.org/x/sys/unix"
)

// Native converts the set into the raw kernel sigset representation.
func (s Set) Native() (set unix.Sigset_t) {
	set.Val[0] = s.bits[0]
	set.Val[1] = s.bits[1]

	return set
}

// SetFromNative converts the raw kernel sigset representation into a [Set].
// Bits above the [Set] capacity are discarded.
func SetFromNative(set unix.Sigset_t) (s Set) {
	s.bits[0] = set.Val[0]
	s.bits[1] = set.Val[1]

	return s
}
