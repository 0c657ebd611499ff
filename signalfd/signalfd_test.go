//go:build linux

package signalfd_test

import (
	"runtime"
	"testing"

	"github.com/AdguardTeam/golibs/testutil"
	"github.com/AdguardTeam/sysunix/proc"
	"github.com/AdguardTeam/sysunix/signalfd"
	"github.com/AdguardTeam/sysunix/signum"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"
)

// newTestFD blocks sig on the calling thread and returns a signal descriptor
// receiving it.  The thread stays locked for the duration of the test so
// that tgkill targets the thread with the blocked signal.
func newTestFD(t *testing.T, sig signum.Signal, nonblock bool) (f *signalfd.FD) {
	t.Helper()

	runtime.LockOSThread()
	t.Cleanup(runtime.UnlockOSThread)

	var set signum.Set
	require.NoError(t, set.Add(sig))

	orig, err := signum.Block(set)
	require.NoError(t, err)
	t.Cleanup(func() {
		_, err = signum.Setmask(orig)
		require.NoError(t, err)
	})

	f, err = signalfd.New(set, nonblock)
	require.NoError(t, err)
	testutil.CleanupAndRequireSuccess(t, f.Close)

	return f
}

func TestFD_ReadOne(t *testing.T) {
	min, _ := signum.RTRange()
	f := newTestFD(t, min, false)

	require.NoError(t, proc.Tgkill(proc.Getpid(), proc.Gettid(), min))

	info, err := f.ReadOne()
	require.NoError(t, err)
	require.NotNil(t, info)

	assert.EqualValues(t, min, info.Signo)
	assert.EqualValues(t, proc.Getpid(), info.Pid)
}

func TestFD_ReadOne_nonblock(t *testing.T) {
	f := newTestFD(t, unix.SIGUSR1, true)

	info, err := f.ReadOne()
	require.NoError(t, err)

	assert.Nil(t, info)
}

func TestFD_Read_multiple(t *testing.T) {
	min, _ := signum.RTRange()
	f := newTestFD(t, min, true)

	// Real-time signals queue instead of coalescing.
	tid := proc.Gettid()
	require.NoError(t, proc.Tgkill(proc.Getpid(), tid, min))
	require.NoError(t, proc.Tgkill(proc.Getpid(), tid, min))

	infos, err := f.Read(8)
	require.NoError(t, err)
	require.Len(t, infos, 2)

	for _, info := range infos {
		assert.EqualValues(t, min, info.Signo)
	}
}
