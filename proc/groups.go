package proc

import (
	"fmt"
	"slices"

	"golang.org/x/sys/unix"
)

// getgroupsMaxTries bounds the retries of [Getgroups] when the group list
// keeps growing between the sizing call and the fill call.
const getgroupsMaxTries = 5

// Getgroups returns the supplementary group IDs of the calling process.  The
// kernel reports EINVAL when the list grows between the call sizing the
// buffer and the call filling it; such races are retried.
func Getgroups() (gids []int, err error) {
	for i := 0; i < getgroupsMaxTries; i++ {
		gids, err = unix.Getgroups()
		if err != unix.EINVAL {
			return gids, err
		}
	}

	return nil, fmt.Errorf("getting groups: %w", err)
}

// Setgroups sets the supplementary group IDs of the calling process.
func Setgroups(gids []int) (err error) {
	return unix.Setgroups(gids)
}

// AllGroups returns every group ID the calling process belongs to: the real
// and effective group IDs followed by the supplementary ones.  The result
// contains no duplicates.
func AllGroups() (gids []int, err error) {
	supp, err := Getgroups()
	if err != nil {
		return nil, err
	}

	gids = make([]int, 0, len(supp)+2)
	for _, gid := range append([]int{unix.Getgid(), unix.Getegid()}, supp...) {
		if !slices.Contains(gids, gid) {
			gids = append(gids, gid)
		}
	}

	return gids, nil
}
