//go:build linux

package clock_test

import (
	"testing"

	"github.com/AdguardTeam/sysunix/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSinceBoot(t *testing.T) {
	up, err := clock.SinceBoot()
	require.NoError(t, err)

	assert.Positive(t, up)
}

func TestGet(t *testing.T) {
	a, err := clock.Get(clock.Monotonic)
	require.NoError(t, err)

	b, err := clock.Get(clock.Monotonic)
	require.NoError(t, err)

	assert.GreaterOrEqual(t, b, a)

	// The boot clock includes suspend time, so it is never behind the
	// monotonic one.
	boot, err := clock.Get(clock.Boottime)
	require.NoError(t, err)

	assert.GreaterOrEqual(t, boot, a)
}

func TestGet_bad(t *testing.T) {
	_, err := clock.Get(clock.ID(-1))
	assert.Error(t, err)
}
