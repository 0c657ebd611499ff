// Package rlimit provides typed access to the kernel resource limits.  The
// [Resource] type round-trips through text, so limits can be named directly
// in YAML and JSON configuration files.
package rlimit

import (
	"fmt"

	"github.com/AdguardTeam/golibs/errors"
	"golang.org/x/sys/unix"
)

// Resource identifies a single limitable resource.
type Resource int

// Resource values.  Not every resource is available on every platform; using
// an unavailable one returns an error wrapping [errors.ErrUnsupported].
const (
	ResAS Resource = iota
	ResCore
	ResCPU
	ResData
	ResFsize
	ResLocks
	ResMemlock
	ResMsgqueue
	ResNice
	ResNofile
	ResNproc
	ResRSS
	ResRTPrio
	ResRTTime
	ResSigpending
	ResStack
)

// resourceNames maps resources to their configuration names and back.  The
// names follow the RLIMIT_* constants with the prefix dropped and lowered.
var resourceNames = map[Resource]string{
	ResAS:         "as",
	ResCore:       "core",
	ResCPU:        "cpu",
	ResData:       "data",
	ResFsize:      "fsize",
	ResLocks:      "locks",
	ResMemlock:    "memlock",
	ResMsgqueue:   "msgqueue",
	ResNice:       "nice",
	ResNofile:     "nofile",
	ResNproc:      "nproc",
	ResRSS:        "rss",
	ResRTPrio:     "rtprio",
	ResRTTime:     "rttime",
	ResSigpending: "sigpending",
	ResStack:      "stack",
}

// type check
var _ fmt.Stringer = ResAS

// String implements the [fmt.Stringer] interface for Resource.
func (r Resource) String() (s string) {
	s, ok := resourceNames[r]
	if !ok {
		return fmt.Sprintf("!bad_resource_%d", int(r))
	}

	return s
}

// MarshalText implements the [encoding.TextMarshaler] interface for Resource.
func (r Resource) MarshalText() (b []byte, err error) {
	s, ok := resourceNames[r]
	if !ok {
		return nil, fmt.Errorf("marshaling resource: bad value %d", int(r))
	}

	return []byte(s), nil
}

// UnmarshalText implements the [encoding.TextUnmarshaler] interface for
// *Resource.
func (r *Resource) UnmarshalText(b []byte) (err error) {
	for res, name := range resourceNames {
		if name == string(b) {
			*r = res

			return nil
		}
	}

	return fmt.Errorf("unmarshaling resource: unknown name %q", b)
}

// Infinity is the limit value that means no limit at all.
const Infinity uint64 = unix.RLIM_INFINITY

// Limit is a pair of soft and hard limits for one resource.
type Limit struct {
	// Cur is the soft limit enforced by the kernel.
	Cur uint64 `yaml:"cur" json:"cur"`

	// Max is the hard ceiling for the soft limit.  Only privileged processes
	// may raise it.
	Max uint64 `yaml:"max" json:"max"`
}

// LowerOf returns the field-wise minimum of l and other.  [Infinity]
// compares greater than any finite value.
func (l Limit) LowerOf(other Limit) (res Limit) {
	return Limit{Cur: min(l.Cur, other.Cur), Max: min(l.Max, other.Max)}
}

// UpperOf returns the field-wise maximum of l and other.
func (l Limit) UpperOf(other Limit) (res Limit) {
	return Limit{Cur: max(l.Cur, other.Cur), Max: max(l.Max, other.Max)}
}

// Get returns the current limits for res.
func Get(res Resource) (l Limit, err error) {
	native, err := res.native()
	if err != nil {
		return Limit{}, err
	}

	rlim := &unix.Rlimit{}
	err = unix.Getrlimit(native, rlim)
	if err != nil {
		return Limit{}, fmt.Errorf("getting %s limit: %w", res, err)
	}

	return limitFromNative(rlim), nil
}

// Set replaces the limits for res.
func Set(res Resource, l Limit) (err error) {
	native, err := res.native()
	if err != nil {
		return err
	}

	err = unix.Setrlimit(native, l.native())
	if err != nil {
		return fmt.Errorf("setting %s limit: %w", res, err)
	}

	return nil
}

// unsupported returns an error about res not being available on this
// platform.
func (r Resource) unsupported() (err error) {
	return fmt.Errorf("resource %s: %w", r, errors.ErrUnsupported)
}
