package signum_test

import (
	"testing"

	"github.com/AdguardTeam/sysunix/signum"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"
)

func TestFromName(t *testing.T) {
	testCases := []struct {
		name    string
		signame string
		wantSig signum.Signal
		wantOK  bool
	}{{
		name:    "known",
		signame: "SIGTERM",
		wantSig: unix.SIGTERM,
		wantOK:  true,
	}, {
		name:    "known_other",
		signame: "SIGUSR1",
		wantSig: unix.SIGUSR1,
		wantOK:  true,
	}, {
		name:    "unknown",
		signame: "SIGNOPE",
		wantSig: 0,
		wantOK:  false,
	}, {
		name:    "lowercase",
		signame: "sigterm",
		wantSig: 0,
		wantOK:  false,
	}, {
		name:    "empty",
		signame: "",
		wantSig: 0,
		wantOK:  false,
	}}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			sig, ok := signum.FromName(tc.signame)
			assert.Equal(t, tc.wantOK, ok)
			assert.Equal(t, tc.wantSig, sig)
		})
	}
}

func TestName_roundTrip(t *testing.T) {
	for _, sig := range []signum.Signal{
		unix.SIGHUP,
		unix.SIGINT,
		unix.SIGKILL,
		unix.SIGCHLD,
		unix.SIGXFSZ,
	} {
		name := signum.Name(sig)
		require.NotEmpty(t, name)

		got, ok := signum.FromName(name)
		require.True(t, ok)

		assert.Equal(t, sig, got)
	}
}

func TestCanCatch(t *testing.T) {
	assert.True(t, signum.CanCatch(unix.SIGTERM))
	assert.True(t, signum.CanCatch(unix.SIGSEGV))
	assert.False(t, signum.CanCatch(unix.SIGKILL))
	assert.False(t, signum.CanCatch(unix.SIGSTOP))
}
