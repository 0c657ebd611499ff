//go:build linux

package poller_test

import (
	"github.com/AdguardTeam/sysunix/poller"
)

// addPlatformBackends adds the backends available on Linux.
func addPlatformBackends(ctors map[string]func() (p poller.Interface, err error)) {
	ctors["epoll"] = poller.NewEpoll
	ctors["poll"] = poller.NewPoll
}
