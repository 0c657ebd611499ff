package signum

import (
	"golang.org/x/sys/unix"
)

// maxSetSignal is the largest signal number a [Set] can hold.
const maxSetSignal = 128

// Set is a set of signals.  The zero value is the empty set.  It is an owned
// representation that converts to and from the platform sigset type, see
// [Set.Native].
type Set struct {
	bits [2]uint64
}

// FullSet returns a set containing every signal.
func FullSet() (s Set) {
	s.Fill()

	return s
}

// Fill adds every signal to the set.
func (s *Set) Fill() {
	for i := range s.bits {
		s.bits[i] = ^uint64(0)
	}
}

// Clear removes every signal from the set.
func (s *Set) Clear() {
	for i := range s.bits {
		s.bits[i] = 0
	}
}

// Add adds sig to the set.  It returns an error if sig cannot be a member of
// a signal set.
func (s *Set) Add(sig Signal) (err error) {
	idx, mask, err := setIdxMask(sig)
	if err != nil {
		return err
	}

	s.bits[idx] |= mask

	return nil
}

// Del removes sig from the set.  It returns an error if sig cannot be a
// member of a signal set.
func (s *Set) Del(sig Signal) (err error) {
	idx, mask, err := setIdxMask(sig)
	if err != nil {
		return err
	}

	s.bits[idx] &^= mask

	return nil
}

// Has reports whether sig is a member of the set.  Signals that cannot be
// members of a signal set are never reported as present.
func (s Set) Has(sig Signal) (ok bool) {
	idx, mask, err := setIdxMask(sig)
	if err != nil {
		return false
	}

	return s.bits[idx]&mask != 0
}

// setIdxMask converts a signal number into a word index and a bit mask,
// validating the number.
func setIdxMask(sig Signal) (idx int, mask uint64, err error) {
	if sig < 1 || sig > maxSetSignal {
		return 0, 0, unix.EINVAL
	}

	bit := uint64(sig - 1)

	return int(bit / 64), 1 << (bit % 64), nil
}
