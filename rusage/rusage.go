// Package rusage provides an owned representation of the kernel resource
// usage counters and a way to query them for the current process, its waited
// children, or the calling thread.
package rusage

import (
	"fmt"
	"time"

	"golang.org/x/sys/unix"
)

// Who is the target whose resource usage is queried.
type Who int

// Who values.  [WhoThread] is only available on Linux.
const (
	// WhoSelf reports the usage of all threads of the calling process.
	WhoSelf Who = unix.RUSAGE_SELF

	// WhoChildren reports the accumulated usage of terminated and waited
	// children of the calling process.
	WhoChildren Who = unix.RUSAGE_CHILDREN
)

// Usage is an owned copy of the kernel resource usage counters with times
// converted to [time.Duration].
//
// See getrusage(2) for the meaning of the fields.  Several of them are
// unmaintained on Linux and are always zero there.
type Usage struct {
	UserTime   time.Duration
	SystemTime time.Duration

	MaxRSS         int64
	SharedRSS      int64
	UnsharedData   int64
	UnsharedStack  int64
	MinorFaults    int64
	MajorFaults    int64
	Swaps          int64
	BlockIn        int64
	BlockOut       int64
	MsgSent        int64
	MsgReceived    int64
	SignalsCaught  int64
	VolCtxSwitch   int64
	InvolCtxSwitch int64
}

// FromNative converts the raw getrusage result into an owned [Usage].
func FromNative(ru *unix.Rusage) (u Usage) {
	return Usage{
		UserTime:   timevalDuration(ru.Utime),
		SystemTime: timevalDuration(ru.Stime),

		MaxRSS:         int64(ru.Maxrss),
		SharedRSS:      int64(ru.Ixrss),
		UnsharedData:   int64(ru.Idrss),
		UnsharedStack:  int64(ru.Isrss),
		MinorFaults:    int64(ru.Minflt),
		MajorFaults:    int64(ru.Majflt),
		Swaps:          int64(ru.Nswap),
		BlockIn:        int64(ru.Inblock),
		BlockOut:       int64(ru.Oublock),
		MsgSent:        int64(ru.Msgsnd),
		MsgReceived:    int64(ru.Msgrcv),
		SignalsCaught:  int64(ru.Nsignals),
		VolCtxSwitch:   int64(ru.Nvcsw),
		InvolCtxSwitch: int64(ru.Nivcsw),
	}
}

// timevalDuration converts a kernel timeval into a [time.Duration].
func timevalDuration(tv unix.Timeval) (d time.Duration) {
	return time.Duration(tv.Sec)*time.Second + time.Duration(tv.Usec)*time.Microsecond
}

// Get returns the resource usage counters for who.  It panics on a syscall
// error, since getrusage(2) cannot fail when given a valid target.
func Get(who Who) (u Usage) {
	ru := &unix.Rusage{}
	err := unix.Getrusage(int(who), ru)
	if err != nil {
		panic(fmt.Errorf("getting resource usage for who %d: %w", who, err))
	}

	return FromNative(ru)
}

// Sub subtracts other from u counter by counter, clamping counters that
// would underflow to zero.
func (u Usage) Sub(other Usage) (diff Usage) {
	diff, ok := u.CheckedSub(other)
	if ok {
		return diff
	}

	clamped := other
	if clamped.UserTime > u.UserTime {
		clamped.UserTime = u.UserTime
	}
	if clamped.SystemTime > u.SystemTime {
		clamped.SystemTime = u.SystemTime
	}

	clamped.MaxRSS = min(clamped.MaxRSS, u.MaxRSS)
	clamped.SharedRSS = min(clamped.SharedRSS, u.SharedRSS)
	clamped.UnsharedData = min(clamped.UnsharedData, u.UnsharedData)
	clamped.UnsharedStack = min(clamped.UnsharedStack, u.UnsharedStack)
	clamped.MinorFaults = min(clamped.MinorFaults, u.MinorFaults)
	clamped.MajorFaults = min(clamped.MajorFaults, u.MajorFaults)
	clamped.Swaps = min(clamped.Swaps, u.Swaps)
	clamped.BlockIn = min(clamped.BlockIn, u.BlockIn)
	clamped.BlockOut = min(clamped.BlockOut, u.BlockOut)
	clamped.MsgSent = min(clamped.MsgSent, u.MsgSent)
	clamped.MsgReceived = min(clamped.MsgReceived, u.MsgReceived)
	clamped.SignalsCaught = min(clamped.SignalsCaught, u.SignalsCaught)
	clamped.VolCtxSwitch = min(clamped.VolCtxSwitch, u.VolCtxSwitch)
	clamped.InvolCtxSwitch = min(clamped.InvolCtxSwitch, u.InvolCtxSwitch)

	diff, _ = u.CheckedSub(clamped)

	return diff
}

// CheckedSub subtracts other from u counter by counter.  It returns false if
// any counter of other exceeds the corresponding counter of u, in which case
// diff is the zero value.
func (u Usage) CheckedSub(other Usage) (diff Usage, ok bool) {
	if u.UserTime < other.UserTime || u.SystemTime < other.SystemTime {
		return Usage{}, false
	}

	pairs := [][2]int64{
		{u.MaxRSS, other.MaxRSS},
		{u.SharedRSS, other.SharedRSS},
		{u.UnsharedData, other.UnsharedData},
		{u.UnsharedStack, other.UnsharedStack},
		{u.MinorFaults, other.MinorFaults},
		{u.MajorFaults, other.MajorFaults},
		{u.Swaps, other.Swaps},
		{u.BlockIn, other.BlockIn},
		{u.BlockOut, other.BlockOut},
		{u.MsgSent, other.MsgSent},
		{u.MsgReceived, other.MsgReceived},
		{u.SignalsCaught, other.SignalsCaught},
		{u.VolCtxSwitch, other.VolCtxSwitch},
		{u.InvolCtxSwitch, other.InvolCtxSwitch},
	}
	for _, p := range pairs {
		if p[0] < p[1] {
			return Usage{}, false
		}
	}

	return Usage{
		UserTime:   u.UserTime - other.UserTime,
		SystemTime: u.SystemTime - other.SystemTime,

		MaxRSS:         u.MaxRSS - other.MaxRSS,
		SharedRSS:      u.SharedRSS - other.SharedRSS,
		UnsharedData:   u.UnsharedData - other.UnsharedData,
		UnsharedStack:  u.UnsharedStack - other.UnsharedStack,
		MinorFaults:    u.MinorFaults - other.MinorFaults,
		MajorFaults:    u.MajorFaults - other.MajorFaults,
		Swaps:          u.Swaps - other.Swaps,
		BlockIn:        u.BlockIn - other.BlockIn,
		BlockOut:       u.BlockOut - other.BlockOut,
		MsgSent:        u.MsgSent - other.MsgSent,
		MsgReceived:    u.MsgReceived - other.MsgReceived,
		SignalsCaught:  u.SignalsCaught - other.SignalsCaught,
		VolCtxSwitch:   u.VolCtxSwitch - other.VolCtxSwitch,
		InvolCtxSwitch: u.InvolCtxSwitch - other.InvolCtxSwitch,
	}, true
}
