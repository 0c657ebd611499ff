//go:build linux

package prctl_test

import (
	"testing"

	"github.com/AdguardTeam/sysunix/prctl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"
)

func TestCapSet(t *testing.T) {
	var s prctl.CapSet
	assert.False(t, s.Has(prctl.CapChown))

	s = s.With(prctl.CapChown).With(prctl.CapSyslog)
	assert.True(t, s.Has(prctl.CapChown))
	assert.True(t, s.Has(prctl.CapSyslog))
	assert.False(t, s.Has(prctl.CapSetuid))

	s = s.Without(prctl.CapChown)
	assert.False(t, s.Has(prctl.CapChown))
	assert.True(t, s.Has(prctl.CapSyslog))
}

func TestCap_String(t *testing.T) {
	assert.Equal(t, "cap_chown", prctl.CapChown.String())
	assert.Equal(t, "cap_audit_read", prctl.CapAuditRead.String())
	assert.Equal(t, "cap_100", prctl.Cap(100).String())
}

func TestCap_UnmarshalText(t *testing.T) {
	var c prctl.Cap
	require.NoError(t, c.UnmarshalText([]byte("cap_sys_admin")))
	assert.Equal(t, prctl.CapSysAdmin, c)

	b, err := c.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "cap_sys_admin", string(b))

	err = c.UnmarshalText([]byte("cap_bogus"))
	assert.ErrorIs(t, err, unix.EINVAL)
}

func TestGetCaps(t *testing.T) {
	state, err := prctl.GetCaps(0)
	require.NoError(t, err)

	// The permitted set always contains the effective one.
	for c := prctl.CapChown; c <= prctl.CapAuditRead; c++ {
		if state.Effective.Has(c) {
			assert.Truef(t, state.Permitted.Has(c), "%s effective but not permitted", c)
		}
	}
}

func TestAmbient(t *testing.T) {
	// An unprivileged process has an empty ambient set; raising into it
	// requires the capability to be permitted and inheritable first, so only
	// exercise the queries and the clearing.
	_, err := prctl.AmbientIsSet(prctl.CapNetBindService)
	require.NoError(t, err)

	require.NoError(t, prctl.AmbientClearAll())

	ok, err := prctl.AmbientIsSet(prctl.CapNetBindService)
	require.NoError(t, err)

	assert.False(t, ok)
}

func TestBoundingIsSet(t *testing.T) {
	_, err := prctl.BoundingIsSet(prctl.CapChown)
	assert.NoError(t, err)
}
