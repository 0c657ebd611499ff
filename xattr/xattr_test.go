//go:build linux || darwin

package xattr_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/AdguardTeam/sysunix/xattr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"
)

// testAttr is an attribute name writable by unprivileged processes.
const testAttr = "user.sysunix_test"

// newXattrFile creates a file and checks that the filesystem under the
// temporary directory supports user extended attributes, skipping the test
// if it does not.
func newXattrFile(t *testing.T) (path string) {
	t.Helper()

	path = filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(path, []byte("data"), 0o600))

	err := xattr.Set(path, testAttr, []byte("probe"), 0)
	if err != nil {
		t.Skipf("xattrs not supported here: %v", err)
	}

	require.NoError(t, xattr.Remove(path, testAttr))

	return path
}

func TestGetSetRemove(t *testing.T) {
	path := newXattrFile(t)

	require.NoError(t, xattr.Set(path, testAttr, []byte("value"), xattr.Create))

	got, err := xattr.Get(path, testAttr)
	require.NoError(t, err)
	assert.Equal(t, []byte("value"), got)

	// Creating over an existing attribute must fail.
	err = xattr.Set(path, testAttr, []byte("other"), xattr.Create)
	assert.ErrorIs(t, err, unix.EEXIST)

	require.NoError(t, xattr.Set(path, testAttr, []byte("other"), xattr.Replace))

	got, err = xattr.Get(path, testAttr)
	require.NoError(t, err)
	assert.Equal(t, []byte("other"), got)

	require.NoError(t, xattr.Remove(path, testAttr))

	_, err = xattr.Get(path, testAttr)
	assert.Error(t, err)
}

func TestList(t *testing.T) {
	path := newXattrFile(t)

	names, err := xattr.List(path)
	require.NoError(t, err)
	require.NotContains(t, names, testAttr)

	require.NoError(t, xattr.Set(path, testAttr, []byte("v"), 0))

	names, err = xattr.List(path)
	require.NoError(t, err)

	assert.Contains(t, names, testAttr)
}

func TestFdVariants(t *testing.T) {
	path := newXattrFile(t)

	f, err := os.OpenFile(path, os.O_RDWR, 0)
	require.NoError(t, err)
	t.Cleanup(func() { _ = f.Close() })

	fd := int(f.Fd())

	require.NoError(t, xattr.FSet(fd, testAttr, []byte("fd"), 0))

	got, err := xattr.FGet(fd, testAttr)
	require.NoError(t, err)
	assert.Equal(t, []byte("fd"), got)

	names, err := xattr.FList(fd)
	require.NoError(t, err)
	assert.Contains(t, names, testAttr)

	require.NoError(t, xattr.FRemove(fd, testAttr))
}
