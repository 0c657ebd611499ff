package proc

import (
	"golang.org/x/sys/unix"
)

// Hostname returns the node name of the system as reported by uname(2).
func Hostname() (name string, err error) {
	utsname := &unix.Utsname{}
	err = unix.Uname(utsname)
	if err != nil {
		return "", err
	}

	return unix.ByteSliceToString(utsname.Nodename[:]), nil
}
