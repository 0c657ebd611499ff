//go:build linux

package signum

import (
	"golang.org/x/sys/unix"
)

// sigmask is the common implementation of the mask-manipulation functions.
// set may be nil, in which case the mask is not changed and only the current
// one is retrieved.
func sigmask(how int, set *Set) (old Set, err error) {
	var rawSet *unix.Sigset_t
	if set != nil {
		native := set.Native()
		rawSet = &native
	}

	oldNative := &unix.Sigset_t{}
	err = unix.PthreadSigmask(how, rawSet, oldNative)
	if err != nil {
		return Set{}, err
	}

	return SetFromNative(*oldNative), nil
}

// Getmask returns the current signal mask of the calling thread.
func Getmask() (old Set, err error) {
	return sigmask(unix.SIG_BLOCK, nil)
}

// Setmask replaces the signal mask of the calling thread and returns the
// previous one.
func Setmask(set Set) (old Set, err error) {
	return sigmask(unix.SIG_SETMASK, &set)
}

// Block adds the signals in set to the mask of the calling thread and returns
// the previous mask.
func Block(set Set) (old Set, err error) {
	return sigmask(unix.SIG_BLOCK, &set)
}

// Unblock removes the signals in set from the mask of the calling thread and
// returns the previous mask.
func Unblock(set Set) (old Set, err error) {
	return sigmask(unix.SIG_UNBLOCK, &set)
}
