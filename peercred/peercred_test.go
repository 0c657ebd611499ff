//go:build linux

package peercred_test

import (
	"fmt"
	"net"
	"os"
	"strings"
	"testing"

	"github.com/AdguardTeam/golibs/testutil"
	"github.com/AdguardTeam/sysunix/peercred"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"
)

func TestGet(t *testing.T) {
	sockName := fmt.Sprintf("sysunix_test_%d", os.Getpid())

	l, err := peercred.ListenAbstract(sockName)
	require.NoError(t, err)
	testutil.CleanupAndRequireSuccess(t, l.Close)

	accepted := make(chan *net.UnixConn, 1)
	go func() {
		conn, acceptErr := l.AcceptUnix()
		if acceptErr != nil {
			return
		}

		accepted <- conn
	}()

	client, err := peercred.DialAbstract(sockName)
	require.NoError(t, err)
	testutil.CleanupAndRequireSuccess(t, client.Close)

	server := <-accepted
	testutil.CleanupAndRequireSuccess(t, server.Close)

	// Both ends of the connection belong to this process.
	for _, conn := range []*net.UnixConn{client, server} {
		creds, credErr := peercred.Get(conn)
		require.NoError(t, credErr)

		assert.EqualValues(t, os.Getpid(), creds.Pid)
		assert.EqualValues(t, os.Geteuid(), creds.Uid)
		assert.EqualValues(t, os.Getegid(), creds.Gid)
	}

	// The raw-descriptor variant agrees with the connection one.
	raw, err := client.SyscallConn()
	require.NoError(t, err)

	require.NoError(t, raw.Control(func(fd uintptr) {
		creds, credErr := peercred.GetFD(int(fd))
		require.NoError(t, credErr)

		assert.EqualValues(t, os.Getpid(), creds.Pid)
	}))
}

func TestAbstractAddr_bad(t *testing.T) {
	testCases := []struct {
		name     string
		sockName string
	}{{
		name:     "empty",
		sockName: "",
	}, {
		name:     "interior_nul",
		sockName: "a\x00b",
	}, {
		name:     "too_long",
		sockName: strings.Repeat("a", 107),
	}}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := peercred.AbstractAddr(tc.sockName)
			assert.ErrorIs(t, err, unix.EINVAL)
		})
	}
}

func TestAbstractAddr(t *testing.T) {
	addr, err := peercred.AbstractAddr("good")
	require.NoError(t, err)

	assert.Equal(t, "@good", addr.Name)
	assert.Equal(t, "unix", addr.Net)
}
