//go:build linux

package prctl

import (
	"encoding"
	"fmt"

	"golang.org/x/sys/unix"
)

// Cap is a single Linux capability.
type Cap int

// Cap values.  See capabilities(7).
const (
	CapChown Cap = iota
	CapDACOverride
	CapDACReadSearch
	CapFowner
	CapFsetid
	CapKill
	CapSetgid
	CapSetuid
	CapSetpcap
	CapLinuxImmutable
	CapNetBindService
	CapNetBroadcast
	CapNetAdmin
	CapNetRaw
	CapIPCLock
	CapIPCOwner
	CapSysModule
	CapSysRawIO
	CapSysChroot
	CapSysPtrace
	CapSysPacct
	CapSysAdmin
	CapSysBoot
	CapSysNice
	CapSysResource
	CapSysTime
	CapSysTTYConfig
	CapMknod
	CapLease
	CapAuditWrite
	CapAuditControl
	CapSetfcap
	CapMACOverride
	CapMACAdmin
	CapSyslog
	CapWakeAlarm
	CapBlockSuspend
	CapAuditRead

	// capMax is the last capability known to this package.
	capMax = CapAuditRead
)

// capNames maps capabilities to their conventional lowercase names.
var capNames = map[Cap]string{
	CapChown:          "cap_chown",
	CapDACOverride:    "cap_dac_override",
	CapDACReadSearch:  "cap_dac_read_search",
	CapFowner:         "cap_fowner",
	CapFsetid:         "cap_fsetid",
	CapKill:           "cap_kill",
	CapSetgid:         "cap_setgid",
	CapSetuid:         "cap_setuid",
	CapSetpcap:        "cap_setpcap",
	CapLinuxImmutable: "cap_linux_immutable",
	CapNetBindService: "cap_net_bind_service",
	CapNetBroadcast:   "cap_net_broadcast",
	CapNetAdmin:       "cap_net_admin",
	CapNetRaw:         "cap_net_raw",
	CapIPCLock:        "cap_ipc_lock",
	CapIPCOwner:       "cap_ipc_owner",
	CapSysModule:      "cap_sys_module",
	CapSysRawIO:       "cap_sys_rawio",
	CapSysChroot:      "cap_sys_chroot",
	CapSysPtrace:      "cap_sys_ptrace",
	CapSysPacct:       "cap_sys_pacct",
	CapSysAdmin:       "cap_sys_admin",
	CapSysBoot:        "cap_sys_boot",
	CapSysNice:        "cap_sys_nice",
	CapSysResource:    "cap_sys_resource",
	CapSysTime:        "cap_sys_time",
	CapSysTTYConfig:   "cap_sys_tty_config",
	CapMknod:          "cap_mknod",
	CapLease:          "cap_lease",
	CapAuditWrite:     "cap_audit_write",
	CapAuditControl:   "cap_audit_control",
	CapSetfcap:        "cap_setfcap",
	CapMACOverride:    "cap_mac_override",
	CapMACAdmin:       "cap_mac_admin",
	CapSyslog:         "cap_syslog",
	CapWakeAlarm:      "cap_wake_alarm",
	CapAuditRead:      "cap_audit_read",
}

// type check
var _ fmt.Stringer = CapChown

// String implements the [fmt.Stringer] interface for Cap.
func (c Cap) String() (s string) {
	s, ok := capNames[c]
	if !ok {
		return fmt.Sprintf("cap_%d", int(c))
	}

	return s
}

// type check
var _ encoding.TextMarshaler = CapChown

// MarshalText implements the [encoding.TextMarshaler] interface for Cap.
func (c Cap) MarshalText() (b []byte, err error) {
	return []byte(c.String()), nil
}

// type check
var _ encoding.TextUnmarshaler = (*Cap)(nil)

// UnmarshalText implements the [encoding.TextUnmarshaler] interface for
// *Cap.
func (c *Cap) UnmarshalText(b []byte) (err error) {
	s := string(b)
	for known, name := range capNames {
		if name == s {
			*c = known

			return nil
		}
	}

	return fmt.Errorf("unknown capability %q: %w", s, unix.EINVAL)
}

// CapSet is a set of capabilities.  The zero value is the empty set.
type CapSet uint64

// Has reports whether c is in the set.
func (s CapSet) Has(c Cap) (ok bool) {
	return c >= 0 && c < 64 && s&(1<<c) != 0
}

// With returns a copy of the set with c added.
func (s CapSet) With(c Cap) (res CapSet) {
	return s | 1<<c
}

// Without returns a copy of the set with c removed.
func (s CapSet) Without(c Cap) (res CapSet) {
	return s &^ (1 << c)
}

// CapState is the three capability sets of a thread.
type CapState struct {
	// Effective is the set the kernel checks permissions against.
	Effective CapSet

	// Permitted is the superset the thread may raise into the other sets.
	Permitted CapSet

	// Inheritable is the set preserved across execve for files with
	// matching inheritable bits.
	Inheritable CapSet
}

// capDataNum is the number of 32-bit kernel capability words.
const capDataNum = 2

// GetCaps returns the capability sets of the thread with the given ID.  A
// pid of zero means the calling thread.
func GetCaps(pid int) (state CapState, err error) {
	hdr := &unix.CapUserHeader{Version: unix.LINUX_CAPABILITY_VERSION_3, Pid: int32(pid)}
	data := [capDataNum]unix.CapUserData{}

	err = unix.Capget(hdr, &data[0])
	if err != nil {
		return CapState{}, fmt.Errorf("getting capabilities of pid %d: %w", pid, err)
	}

	return CapState{
		Effective:   CapSet(data[0].Effective) | CapSet(data[1].Effective)<<32,
		Permitted:   CapSet(data[0].Permitted) | CapSet(data[1].Permitted)<<32,
		Inheritable: CapSet(data[0].Inheritable) | CapSet(data[1].Inheritable)<<32,
	}, nil
}

// SetCaps replaces the capability sets of the calling thread.
func SetCaps(state CapState) (err error) {
	hdr := &unix.CapUserHeader{Version: unix.LINUX_CAPABILITY_VERSION_3}
	data := [capDataNum]unix.CapUserData{{
		Effective:   uint32(state.Effective),
		Permitted:   uint32(state.Permitted),
		Inheritable: uint32(state.Inheritable),
	}, {
		Effective:   uint32(state.Effective >> 32),
		Permitted:   uint32(state.Permitted >> 32),
		Inheritable: uint32(state.Inheritable >> 32),
	}}

	err = unix.Capset(hdr, &data[0])
	if err != nil {
		return fmt.Errorf("setting capabilities: %w", err)
	}

	return nil
}

// AmbientIsSet reports whether c is in the ambient set of the calling
// thread.
func AmbientIsSet(c Cap) (ok bool, err error) {
	v, err := unix.PrctlRetInt(unix.PR_CAP_AMBIENT, unix.PR_CAP_AMBIENT_IS_SET, uintptr(c), 0, 0)
	if err != nil {
		return false, fmt.Errorf("checking ambient %s: %w", c, err)
	}

	return v == 1, nil
}

// AmbientRaise adds c to the ambient set of the calling thread.  The
// capability must already be both permitted and inheritable.
func AmbientRaise(c Cap) (err error) {
	err = unix.Prctl(unix.PR_CAP_AMBIENT, unix.PR_CAP_AMBIENT_RAISE, uintptr(c), 0, 0)
	if err != nil {
		return fmt.Errorf("raising ambient %s: %w", c, err)
	}

	return nil
}

// AmbientLower removes c from the ambient set of the calling thread.
func AmbientLower(c Cap) (err error) {
	err = unix.Prctl(unix.PR_CAP_AMBIENT, unix.PR_CAP_AMBIENT_LOWER, uintptr(c), 0, 0)
	if err != nil {
		return fmt.Errorf("lowering ambient %s: %w", c, err)
	}

	return nil
}

// AmbientClearAll empties the ambient set of the calling thread.
func AmbientClearAll() (err error) {
	err = unix.Prctl(unix.PR_CAP_AMBIENT, unix.PR_CAP_AMBIENT_CLEAR_ALL, 0, 0, 0)
	if err != nil {
		return fmt.Errorf("clearing ambient capabilities: %w", err)
	}

	return nil
}

// BoundingIsSet reports whether c is in the bounding set of the calling
// thread.
func BoundingIsSet(c Cap) (ok bool, err error) {
	v, err := unix.PrctlRetInt(unix.PR_CAPBSET_READ, uintptr(c), 0, 0, 0)
	if err != nil {
		return false, fmt.Errorf("checking bounding %s: %w", c, err)
	}

	return v == 1, nil
}

// BoundingDrop removes c from the bounding set of the calling thread.  The
// removal is permanent and requires CAP_SETPCAP.
func BoundingDrop(c Cap) (err error) {
	err = unix.Prctl(unix.PR_CAPBSET_DROP, uintptr(c), 0, 0, 0)
	if err != nil {
		return fmt.Errorf("dropping bounding %s: %w", c, err)
	}

	return nil
}
