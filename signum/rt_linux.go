//go:build linux

package signum

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/sys/unix"
)

func init() {
	portableNames["SIGPOLL"] = unix.SIGPOLL
}

// Real-time signal bounds.  The kernel range starts at 32, but the first two
// signals there are reserved by the C library and the Go runtime, so the
// usable range starts at 34, matching what sigrtmin(3) reports under glibc.
const (
	rtMin Signal = 34
	rtMax Signal = 64
)

// RTRange returns the first and the last usable real-time signals.
func RTRange() (min, max Signal) {
	return rtMin, rtMax
}

// rtName returns the "SIGRTMIN+n" name for sig, if it is a real-time signal.
func rtName(sig Signal) (name string, ok bool) {
	if sig < rtMin || sig > rtMax {
		return "", false
	}

	return fmt.Sprintf("SIGRTMIN+%d", sig-rtMin), true
}

// rtName prefix for parsing.
const rtNamePrefix = "SIGRTMIN+"

// fromRTName resolves a "SIGRTMIN+n" name, rejecting increments that fall
// outside of the real-time range.
func fromRTName(name string) (sig Signal, ok bool) {
	incrStr, hasPrefix := strings.CutPrefix(name, rtNamePrefix)
	if !hasPrefix {
		return 0, false
	}

	incr, err := strconv.ParseUint(incrStr, 10, 8)
	if err != nil {
		return 0, false
	}

	sig = rtMin + Signal(incr)
	if sig > rtMax {
		return 0, false
	}

	return sig, true
}
