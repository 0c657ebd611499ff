//go:build linux

package signum_test

import (
	"fmt"
	"testing"

	"github.com/AdguardTeam/sysunix/signum"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromName_realTime(t *testing.T) {
	min, max := signum.RTRange()
	require.Less(t, min, max)

	testCases := []struct {
		name    string
		signame string
		wantSig signum.Signal
		wantOK  bool
	}{{
		name:    "min",
		signame: "SIGRTMIN+0",
		wantSig: min,
		wantOK:  true,
	}, {
		name:    "mid",
		signame: "SIGRTMIN+4",
		wantSig: min + 4,
		wantOK:  true,
	}, {
		name:    "max",
		signame: fmt.Sprintf("SIGRTMIN+%d", max-min),
		wantSig: max,
		wantOK:  true,
	}, {
		name:    "too_large",
		signame: fmt.Sprintf("SIGRTMIN+%d", max-min+1),
		wantSig: 0,
		wantOK:  false,
	}, {
		name:    "negative",
		signame: "SIGRTMIN+-1",
		wantSig: 0,
		wantOK:  false,
	}, {
		name:    "not_a_number",
		signame: "SIGRTMIN+x",
		wantSig: 0,
		wantOK:  false,
	}, {
		name:    "bare",
		signame: "SIGRTMIN",
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

func TestName_realTime(t *testing.T) {
	min, max := signum.RTRange()

	assert.Equal(t, "SIGRTMIN+0", signum.Name(min))
	assert.Equal(t, "SIGRTMIN+2", signum.Name(min+2))
	assert.Equal(t, fmt.Sprintf("SIGRTMIN+%d", max-min), signum.Name(max))
	assert.Empty(t, signum.Name(max+1))
}
