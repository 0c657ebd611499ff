package proc

import (
	"github.com/AdguardTeam/sysunix/signum"
	"golang.org/x/sys/unix"
)

// Kill sends sig to the process or process group named by pid, following the
// kill(2) conventions for zero and negative values.  A sig of zero performs
// only the existence and permission checks.
func Kill(pid int, sig signum.Signal) (err error) {
	return unix.Kill(pid, unix.Signal(sig))
}
