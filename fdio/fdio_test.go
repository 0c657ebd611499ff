package fdio_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/AdguardTeam/sysunix/fdio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"
)

// newPipe creates a test pipe and closes it when the test finishes.
func newPipe(t *testing.T, nonblock bool) (r, w int) {
	t.Helper()

	r, w, err := fdio.Pipe(nonblock)
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = fdio.Close(r)
		_ = fdio.Close(w)
	})

	return r, w
}

func TestPipe(t *testing.T) {
	r, w := newPipe(t, false)

	n, err := unix.Write(w, []byte("hello"))
	require.NoError(t, err)
	require.Equal(t, 5, n)

	buf := make([]byte, 16)
	n, err = unix.Read(r, buf)
	require.NoError(t, err)

	assert.Equal(t, "hello", string(buf[:n]))

	// Both ends must be close-on-exec.
	for _, fd := range []int{r, w} {
		ok, err := fdio.IsInheritable(fd)
		require.NoError(t, err)

		assert.False(t, ok)
	}
}

func TestPipe_nonblock(t *testing.T) {
	r, _ := newPipe(t, true)

	buf := make([]byte, 16)
	_, err := unix.Read(r, buf)
	assert.ErrorIs(t, err, unix.EAGAIN)
}

func TestAvailable(t *testing.T) {
	r, w := newPipe(t, false)

	n, err := fdio.Available(r)
	require.NoError(t, err)
	require.Zero(t, n)

	_, err = unix.Write(w, []byte("data"))
	require.NoError(t, err)

	n, err = fdio.Available(r)
	require.NoError(t, err)

	assert.Equal(t, 4, n)
}

func TestDup(t *testing.T) {
	r, w := newPipe(t, false)

	dup, err := fdio.Dup(w)
	require.NoError(t, err)
	t.Cleanup(func() { _ = fdio.Close(dup) })

	ok, err := fdio.IsInheritable(dup)
	require.NoError(t, err)
	assert.True(t, ok)

	cloDup, err := fdio.DupCloexec(w)
	require.NoError(t, err)
	t.Cleanup(func() { _ = fdio.Close(cloDup) })

	ok, err = fdio.IsInheritable(cloDup)
	require.NoError(t, err)
	assert.False(t, ok)

	// Writing through the duplicate reaches the same pipe.
	_, err = unix.Write(dup, []byte("x"))
	require.NoError(t, err)

	n, err := fdio.Available(r)
	require.NoError(t, err)

	assert.Equal(t, 1, n)
}

func TestDupFrom(t *testing.T) {
	_, w := newPipe(t, false)

	const minFD = 100
	dup, err := fdio.DupFrom(w, minFD)
	require.NoError(t, err)
	t.Cleanup(func() { _ = fdio.Close(dup) })

	assert.GreaterOrEqual(t, dup, minFD)
}

func TestSetInheritable(t *testing.T) {
	r, _ := newPipe(t, false)

	require.NoError(t, fdio.SetInheritable(r, true))

	ok, err := fdio.IsInheritable(r)
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, fdio.SetInheritable(r, false))

	ok, err = fdio.IsInheritable(r)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestFlags(t *testing.T) {
	r, _ := newPipe(t, false)

	flags, err := fdio.GetFlags(r)
	require.NoError(t, err)
	require.Zero(t, flags&unix.O_NONBLOCK)

	require.NoError(t, fdio.SetNonblock(r, true))

	flags, err = fdio.GetFlags(r)
	require.NoError(t, err)

	assert.NotZero(t, flags&unix.O_NONBLOCK)
}

// openLockFile creates a temporary file and returns an open descriptor.
func openLockFile(t *testing.T) (fd int) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "lock")
	f, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, 0o600)
	require.NoError(t, err)
	t.Cleanup(func() { _ = f.Close() })

	require.NoError(t, f.Truncate(1024))

	return int(f.Fd())
}

func TestFlock(t *testing.T) {
	fd := openLockFile(t)

	require.NoError(t, fdio.Flock(fd, true, false))
	require.NoError(t, fdio.Funlock(fd))

	require.NoError(t, fdio.Flock(fd, false, true))
	require.NoError(t, fdio.Funlock(fd))
}

func TestLockRecord(t *testing.T) {
	fd := openLockFile(t)

	require.NoError(t, fdio.LockRecord(fd, true, false, 0, 512))

	// Record locks do not conflict within one process.
	locked, err := fdio.IsLockedOther(fd, 0, 512)
	require.NoError(t, err)
	assert.False(t, locked)

	require.NoError(t, fdio.UnlockRecord(fd, 0, 512))
}
