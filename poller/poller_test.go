package poller_test

import (
	"testing"
	"time"

	"github.com/AdguardTeam/golibs/testutil"
	"github.com/AdguardTeam/sysunix/fdio"
	"github.com/AdguardTeam/sysunix/poller"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"
)

// backends returns every poller constructor available on the platform.
func backends() (ctors map[string]func() (p poller.Interface, err error)) {
	ctors = map[string]func() (p poller.Interface, err error){
		"default": poller.New,
	}

	addPlatformBackends(ctors)

	return ctors
}

// testPipe creates a pipe for poller tests.
func testPipe(t *testing.T) (r, w int) {
	t.Helper()

	r, w, err := fdio.Pipe(false)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = fdio.Close(r)
		_ = fdio.Close(w)
	})

	return r, w
}

func TestInterface_wait(t *testing.T) {
	for name, ctor := range backends() {
		t.Run(name, func(t *testing.T) {
			p, err := ctor()
			require.NoError(t, err)
			testutil.CleanupAndRequireSuccess(t, p.Close)

			r, w := testPipe(t)
			require.NoError(t, p.Register(r, poller.Read))

			events, err := p.Wait(0)
			require.NoError(t, err)
			require.Empty(t, events)

			_, err = unix.Write(w, []byte("x"))
			require.NoError(t, err)

			events, err = p.Wait(time.Second)
			require.NoError(t, err)
			require.Len(t, events, 1)

			assert.Equal(t, r, events[0].FD)
			assert.NotZero(t, events[0].Events&poller.Read)
		})
	}
}

func TestInterface_registry(t *testing.T) {
	for name, ctor := range backends() {
		t.Run(name, func(t *testing.T) {
			p, err := ctor()
			require.NoError(t, err)
			testutil.CleanupAndRequireSuccess(t, p.Close)

			r, _ := testPipe(t)

			require.NoError(t, p.Register(r, poller.Read))
			assert.ErrorIs(t, p.Register(r, poller.Read), unix.EEXIST)

			require.NoError(t, p.Modify(r, poller.Read|poller.Write))

			require.NoError(t, p.Unregister(r))
			assert.ErrorIs(t, p.Unregister(r), unix.ENOENT)
			assert.ErrorIs(t, p.Modify(r, poller.Read), unix.ENOENT)
		})
	}
}

func TestInterface_write(t *testing.T) {
	for name, ctor := range backends() {
		t.Run(name, func(t *testing.T) {
			p, err := ctor()
			require.NoError(t, err)
			testutil.CleanupAndRequireSuccess(t, p.Close)

			_, w := testPipe(t)

			// An empty pipe is immediately writable.
			require.NoError(t, p.Register(w, poller.Write))

			events, err := p.Wait(time.Second)
			require.NoError(t, err)
			require.Len(t, events, 1)

			assert.Equal(t, w, events[0].FD)
			assert.NotZero(t, events[0].Events&poller.Write)
		})
	}
}
