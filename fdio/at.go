package fdio

import (
	"golang.org/x/sys/unix"
)

// readlinkatBufSize is the starting buffer size for [ReadlinkAt].  Most link
// targets fit on the first try.
const readlinkatBufSize = 256

// ReadlinkAt returns the target of the symbolic link at path, resolved
// relative to the directory descriptor dirFD.  Pass [unix.AT_FDCWD] to
// resolve relative to the working directory.
func ReadlinkAt(dirFD int, path string) (target string, err error) {
	for bufSize := readlinkatBufSize; ; bufSize *= 2 {
		buf := make([]byte, bufSize)
		n, err := unix.Readlinkat(dirFD, path, buf)
		if err != nil {
			return "", err
		}

		// The call truncates silently, so a full buffer may mean a longer
		// target.
		if n < bufSize {
			return string(buf[:n]), nil
		}
	}
}

// SymlinkAt creates a symbolic link at path, resolved relative to dirFD,
// pointing at target.
func SymlinkAt(target string, dirFD int, path string) (err error) {
	return unix.Symlinkat(target, dirFD, path)
}

// UnlinkAt removes the file at path, resolved relative to dirFD.
func UnlinkAt(dirFD int, path string) (err error) {
	return unix.Unlinkat(dirFD, path, 0)
}

// RmdirAt removes the empty directory at path, resolved relative to dirFD.
func RmdirAt(dirFD int, path string) (err error) {
	return unix.Unlinkat(dirFD, path, unix.AT_REMOVEDIR)
}

// MkdirAt creates a directory at path, resolved relative to dirFD, with the
// given permission bits as modified by the umask.
func MkdirAt(dirFD int, path string, mode uint32) (err error) {
	return unix.Mkdirat(dirFD, path, mode)
}

// FchmodAt changes the permission bits of the file at path, resolved
// relative to dirFD.
func FchmodAt(dirFD int, path string, mode uint32) (err error) {
	return unix.Fchmodat(dirFD, path, mode, 0)
}

// FchownAt changes the owner and group of the file at path, resolved
// relative to dirFD.  With followLinks unset, a symbolic link itself is
// changed rather than its target.
func FchownAt(dirFD int, path string, uid, gid int, followLinks bool) (err error) {
	flags := 0
	if !followLinks {
		flags = unix.AT_SYMLINK_NOFOLLOW
	}

	return unix.Fchownat(dirFD, path, uid, gid, flags)
}

// RenameAt moves the file at oldPath, resolved relative to oldDirFD, to
// newPath, resolved relative to newDirFD.
func RenameAt(oldDirFD int, oldPath string, newDirFD int, newPath string) (err error) {
	return unix.Renameat(oldDirFD, oldPath, newDirFD, newPath)
}

// LinkAt creates a hard link at newPath, resolved relative to newDirFD, to
// the file at oldPath, resolved relative to oldDirFD.
func LinkAt(oldDirFD int, oldPath string, newDirFD int, newPath string) (err error) {
	return unix.Linkat(oldDirFD, oldPath, newDirFD, newPath, 0)
}
