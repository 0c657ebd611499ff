package signum_test

import (
	"testing"

	"github.com/AdguardTeam/sysunix/signum"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"
)

func TestSet(t *testing.T) {
	var s signum.Set
	assert.False(t, s.Has(unix.SIGUSR1))

	require.NoError(t, s.Add(unix.SIGUSR1))
	assert.True(t, s.Has(unix.SIGUSR1))
	assert.False(t, s.Has(unix.SIGUSR2))

	require.NoError(t, s.Del(unix.SIGUSR1))
	assert.False(t, s.Has(unix.SIGUSR1))
}

func TestSet_bounds(t *testing.T) {
	var s signum.Set
	assert.Error(t, s.Add(0))
	assert.Error(t, s.Add(-1))
	assert.Error(t, s.Del(0))
	assert.False(t, s.Has(0))
}

func TestFullSet(t *testing.T) {
	s := signum.FullSet()
	assert.True(t, s.Has(unix.SIGHUP))
	assert.True(t, s.Has(unix.SIGTERM))
	assert.True(t, s.Has(64))

	s.Clear()
	assert.False(t, s.Has(unix.SIGHUP))
}
