//go:build linux

package openat2_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/AdguardTeam/sysunix/openat2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"
)

// openTestDir builds a directory with a file, a subdirectory, and a symbolic
// link escaping the directory, then opens the directory itself.
func openTestDir(t *testing.T) (dirFD int) {
	t.Helper()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "inside.txt"), []byte("in"), 0o600))
	require.NoError(t, os.Symlink("/etc/hostname", filepath.Join(dir, "escape")))

	dirFD, err := unix.Open(dir, unix.O_DIRECTORY|unix.O_RDONLY|unix.O_CLOEXEC, 0)
	require.NoError(t, err)
	t.Cleanup(func() { _ = unix.Close(dirFD) })

	return dirFD
}

func TestOpen(t *testing.T) {
	dirFD := openTestDir(t)

	fd, err := openat2.Open(dirFD, "inside.txt", openat2.How{Flags: unix.O_RDONLY})
	require.NoError(t, err)

	buf := make([]byte, 8)
	n, err := unix.Read(fd, buf)
	require.NoError(t, err)
	require.NoError(t, unix.Close(fd))

	assert.Equal(t, "in", string(buf[:n]))
}

func TestOpen_resolveBeneath(t *testing.T) {
	dirFD := openTestDir(t)

	_, err := openat2.Open(dirFD, "../", openat2.How{
		Flags:   unix.O_DIRECTORY | unix.O_RDONLY,
		Resolve: openat2.ResolveBeneath,
	})
	assert.ErrorIs(t, err, unix.EXDEV)

	_, err = openat2.Open(dirFD, "escape", openat2.How{
		Flags:   unix.O_RDONLY,
		Resolve: openat2.ResolveBeneath,
	})
	assert.ErrorIs(t, err, unix.EXDEV)
}

func TestOpen_noSymlinks(t *testing.T) {
	dirFD := openTestDir(t)

	_, err := openat2.Open(dirFD, "escape", openat2.How{
		Flags:   unix.O_RDONLY,
		Resolve: openat2.ResolveNoSymlinks,
	})
	assert.ErrorIs(t, err, unix.ELOOP)
}

func TestOpenBeneath(t *testing.T) {
	dirFD := openTestDir(t)

	fd, err := openat2.OpenBeneath(dirFD, "inside.txt", unix.O_RDONLY)
	require.NoError(t, err)
	require.NoError(t, unix.Close(fd))

	_, err = openat2.OpenBeneath(dirFD, "escape", unix.O_RDONLY)
	assert.ErrorIs(t, err, unix.EXDEV)
}

func TestOpen_inRoot(t *testing.T) {
	dirFD := openTestDir(t)

	// With the directory acting as the root, the escaping link resolves to
	// a missing path inside it.
	_, err := openat2.Open(dirFD, "escape", openat2.How{
		Flags:   unix.O_RDONLY,
		Resolve: openat2.ResolveInRoot,
	})
	assert.ErrorIs(t, err, unix.ENOENT)
}
