//go:build freebsd

package poller_test

import (
	"github.com/AdguardTeam/sysunix/poller"
)

// addPlatformBackends adds the backends available on FreeBSD.
func addPlatformBackends(ctors map[string]func() (p poller.Interface, err error)) {
	ctors["kqueue"] = poller.NewKqueue
	ctors["poll"] = poller.NewPoll
}
