//go:build linux || darwin

// Package xattr provides access to the extended attributes of files, with
// variants that follow symbolic links, operate on the links themselves, or
// work through open file descriptors.
package xattr

import (
	"fmt"
	"strings"

	"golang.org/x/sys/unix"
)

// maxSizeAttempts bounds the retries when an attribute value grows between
// the size query and the read.
const maxSizeAttempts = 4

// sizedRead implements the common two-call protocol of the reading xattr
// calls: a probe with an empty buffer to learn the size, then the actual
// read, retried while the value keeps outgrowing the buffer.
func sizedRead(op string, read func(buf []byte) (n int, err error)) (data []byte, err error) {
	size, err := read(nil)
	if err != nil {
		return nil, fmt.Errorf("%s: sizing: %w", op, err)
	}

	for range maxSizeAttempts {
		if size == 0 {
			return nil, nil
		}

		buf := make([]byte, size)
		n, err := read(buf)
		if err == nil {
			return buf[:n], nil
		} else if err != unix.ERANGE {
			return nil, fmt.Errorf("%s: %w", op, err)
		}

		size *= 2
	}

	return nil, fmt.Errorf("%s: value keeps growing: %w", op, unix.ERANGE)
}

// Get returns the value of the attribute attr of the file at path, following
// symbolic links.
func Get(path, attr string) (data []byte, err error) {
	return sizedRead("getxattr", func(buf []byte) (n int, readErr error) {
		return unix.Getxattr(path, attr, buf)
	})
}

// LGet is like [Get] but reads the attribute of a symbolic link itself.
func LGet(path, attr string) (data []byte, err error) {
	return sizedRead("lgetxattr", func(buf []byte) (n int, readErr error) {
		return unix.Lgetxattr(path, attr, buf)
	})
}

// FGet is like [Get] but reads the attribute of the open file fd.
func FGet(fd int, attr string) (data []byte, err error) {
	return sizedRead("fgetxattr", func(buf []byte) (n int, readErr error) {
		return unix.Fgetxattr(fd, attr, buf)
	})
}

// Flags for the setting calls.  Zero means create or replace as needed.
const (
	// Create makes the call fail with [unix.EEXIST] if the attribute is
	// already present.
	Create = unix.XATTR_CREATE

	// Replace makes the call fail with [unix.ENODATA] if the attribute is
	// not present yet.
	Replace = unix.XATTR_REPLACE
)

// Set sets the attribute attr of the file at path to data, following
// symbolic links.
func Set(path, attr string, data []byte, flags int) (err error) {
	return unix.Setxattr(path, attr, data, flags)
}

// LSet is like [Set] but sets the attribute of a symbolic link itself.
func LSet(path, attr string, data []byte, flags int) (err error) {
	return unix.Lsetxattr(path, attr, data, flags)
}

// FSet is like [Set] but sets the attribute of the open file fd.
func FSet(fd int, attr string, data []byte, flags int) (err error) {
	return unix.Fsetxattr(fd, attr, data, flags)
}

// splitNames splits the NUL-separated attribute name list returned by the
// kernel.
func splitNames(buf []byte) (names []string) {
	for _, name := range strings.Split(string(buf), "\x00") {
		if name != "" {
			names = append(names, name)
		}
	}

	return names
}

// List returns the names of all attributes of the file at path, following
// symbolic links.
func List(path string) (names []string, err error) {
	buf, err := sizedRead("listxattr", func(buf []byte) (n int, readErr error) {
		return unix.Listxattr(path, buf)
	})
	if err != nil {
		return nil, err
	}

	return splitNames(buf), nil
}

// LList is like [List] but lists the attributes of a symbolic link itself.
func LList(path string) (names []string, err error) {
	buf, err := sizedRead("llistxattr", func(buf []byte) (n int, readErr error) {
		return unix.Llistxattr(path, buf)
	})
	if err != nil {
		return nil, err
	}

	return splitNames(buf), nil
}

// FList is like [List] but lists the attributes of the open file fd.
func FList(fd int) (names []string, err error) {
	buf, err := sizedRead("flistxattr", func(buf []byte) (n int, readErr error) {
		return unix.Flistxattr(fd, buf)
	})
	if err != nil {
		return nil, err
	}

	return splitNames(buf), nil
}

// Remove removes the attribute attr of the file at path, following symbolic
// links.
func Remove(path, attr string) (err error) {
	return unix.Removexattr(path, attr)
}

// LRemove is like [Remove] but removes the attribute of a symbolic link
// itself.
func LRemove(path, attr string) (err error) {
	return unix.Lremovexattr(path, attr)
}

// FRemove is like [Remove] but removes the attribute of the open file fd.
func FRemove(fd int, attr string) (err error) {
	return unix.Fremovexattr(fd, attr)
}
