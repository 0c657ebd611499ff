//go:build linux

// Package power controls the machine power state through the Linux
// reboot(2) system call.
package power

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// Command is a power state transition.
type Command int

// Command values.
const (
	// Restart reboots the machine using the default boot loader.
	Restart Command = unix.LINUX_REBOOT_CMD_RESTART

	// Halt stops the machine without powering it off.
	Halt Command = unix.LINUX_REBOOT_CMD_HALT

	// PowerOff stops the machine and removes power if possible.
	PowerOff Command = unix.LINUX_REBOOT_CMD_POWER_OFF

	// Suspend suspends the machine to RAM.
	Suspend Command = unix.LINUX_REBOOT_CMD_SW_SUSPEND
)

// Flags for [Reboot].
const (
	// NoSync skips flushing dirty buffers to disk before the transition.
	NoSync = 1 << iota
)

// Sync flushes dirty buffers to disk.  It never fails.
func Sync() {
	unix.Sync()
}

// Reboot performs the power state transition.  Unless [NoSync] is given,
// dirty buffers are flushed to disk first.  Requires CAP_SYS_BOOT.  On
// success it only returns for [Suspend]; the other commands do not return at
// all.
func Reboot(cmd Command, flags int) (err error) {
	if flags&NoSync == 0 {
		Sync()
	}

	err = unix.Reboot(int(cmd))
	if err != nil {
		return fmt.Errorf("rebooting with command %#x: %w", int(cmd), err)
	}

	return nil
}

// SetCADEnabled sets how the kernel reacts to the Ctrl-Alt-Del key
// combination: sending SIGINT to init when disabled, or rebooting
// immediately when enabled.  Requires CAP_SYS_BOOT.
func SetCADEnabled(ok bool) (err error) {
	cmd := unix.LINUX_REBOOT_CMD_CAD_OFF
	if ok {
		cmd = unix.LINUX_REBOOT_CMD_CAD_ON
	}

	err = unix.Reboot(cmd)
	if err != nil {
		return fmt.Errorf("setting ctrl-alt-del handling: %w", err)
	}

	return nil
}
