//go:build linux

package signum_test

import (
	"runtime"
	"testing"

	"github.com/AdguardTeam/sysunix/signum"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"
)

func TestBlockUnblock(t *testing.T) {
	runtime.LockOSThread()
	t.Cleanup(runtime.UnlockOSThread)

	var set signum.Set
	require.NoError(t, set.Add(unix.SIGUSR2))

	orig, err := signum.Block(set)
	require.NoError(t, err)
	t.Cleanup(func() {
		_, err = signum.Setmask(orig)
		require.NoError(t, err)
	})

	cur, err := signum.Getmask()
	require.NoError(t, err)

	assert.True(t, cur.Has(unix.SIGUSR2))

	prev, err := signum.Unblock(set)
	require.NoError(t, err)

	assert.True(t, prev.Has(unix.SIGUSR2))

	cur, err = signum.Getmask()
	require.NoError(t, err)

	assert.False(t, cur.Has(unix.SIGUSR2))
}
