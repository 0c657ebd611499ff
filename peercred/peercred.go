//go:build linux

// Package peercred identifies the process on the other end of a Unix-domain
// connection and provides helpers for the abstract socket namespace, where
// such identification is most often wanted.
package peercred

import (
	"fmt"
	"net"
	"strings"

	"golang.org/x/sys/unix"
)

// Creds describes the peer process of a connection: its PID and the
// effective user and group IDs it had when it connected.
type Creds = unix.Ucred

// Get returns the credentials of the peer of conn.
func Get(conn *net.UnixConn) (creds *Creds, err error) {
	raw, err := conn.SyscallConn()
	if err != nil {
		return nil, fmt.Errorf("getting peer credentials: %w", err)
	}

	var sockErr error
	ctlErr := raw.Control(func(fd uintptr) {
		creds, sockErr = unix.GetsockoptUcred(int(fd), unix.SOL_SOCKET, unix.SO_PEERCRED)
	})
	if ctlErr != nil {
		return nil, fmt.Errorf("getting peer credentials: %w", ctlErr)
	} else if sockErr != nil {
		return nil, fmt.Errorf("getting peer credentials: %w", sockErr)
	}

	return creds, nil
}

// GetFD returns the credentials of the peer of the connected Unix-domain
// socket fd.
func GetFD(fd int) (creds *Creds, err error) {
	creds, err = unix.GetsockoptUcred(fd, unix.SOL_SOCKET, unix.SO_PEERCRED)
	if err != nil {
		return nil, fmt.Errorf("getting peer credentials: %w", err)
	}

	return creds, nil
}

// maxAbstractNameLen is the longest abstract socket name.  The kernel buffer
// also holds the address family and the leading NUL.
const maxAbstractNameLen = 106

// AbstractAddr converts a name in the abstract socket namespace into a
// dialable address.  The name must be non-empty, contain no NUL bytes, and
// fit the kernel address buffer.
func AbstractAddr(name string) (addr *net.UnixAddr, err error) {
	if name == "" {
		return nil, fmt.Errorf("abstract name: empty: %w", unix.EINVAL)
	} else if strings.ContainsRune(name, 0) {
		return nil, fmt.Errorf("abstract name %q: contains NUL: %w", name, unix.EINVAL)
	} else if len(name) > maxAbstractNameLen {
		return nil, fmt.Errorf(
			"abstract name: %d bytes long, at most %d allowed: %w",
			len(name),
			maxAbstractNameLen,
			unix.EINVAL,
		)
	}

	// The leading at sign is the conventional rendering of the NUL byte that
	// puts the address into the abstract namespace.
	return &net.UnixAddr{Name: "@" + name, Net: "unix"}, nil
}

// ListenAbstract listens on the abstract socket with the given name.
// Abstract sockets need no filesystem cleanup, they disappear with their
// last descriptor.
func ListenAbstract(name string) (l *net.UnixListener, err error) {
	addr, err := AbstractAddr(name)
	if err != nil {
		return nil, err
	}

	l, err = net.ListenUnix("unix", addr)
	if err != nil {
		return nil, fmt.Errorf("listening on abstract socket %q: %w", name, err)
	}

	return l, nil
}

// DialAbstract connects to the abstract socket with the given name.
func DialAbstract(name string) (conn *net.UnixConn, err error) {
	addr, err := AbstractAddr(name)
	if err != nil {
		return nil, err
	}

	conn, err = net.DialUnix("unix", nil, addr)
	if err != nil {
		return nil, fmt.Errorf("dialing abstract socket %q: %w", name, err)
	}

	return conn, nil
}
