package main

import (
	"fmt"
	"time"

	"github.com/AdguardTeam/sysunix/passwd"
	"github.com/AdguardTeam/sysunix/priority"
	"github.com/AdguardTeam/sysunix/proc"
	"github.com/AdguardTeam/sysunix/rlimit"
	"github.com/AdguardTeam/sysunix/rusage"
)

// processInfo is the report printed by the tool.
type processInfo struct {
	Limits   map[string]rlimit.Limit `yaml:"limits"`
	Hostname string                  `yaml:"hostname"`
	User     string                  `yaml:"user"`
	Groups   []int                   `yaml:"groups"`
	Usage    usageInfo               `yaml:"usage"`
	Extra    extraInfo               `yaml:"extra,omitempty"`
	PID      int                     `yaml:"pid"`
	PPID     int                     `yaml:"ppid"`
	UID      int                     `yaml:"uid"`
	EUID     int                     `yaml:"euid"`
	GID      int                     `yaml:"gid"`
	EGID     int                     `yaml:"egid"`
	Nice     int                     `yaml:"nice"`
}

// usageInfo is the resource usage part of the report.
type usageInfo struct {
	UserTime    time.Duration `yaml:"user_time"`
	SystemTime  time.Duration `yaml:"system_time"`
	MaxRSS      int64         `yaml:"max_rss_kb"`
	MajorFaults int64         `yaml:"major_faults"`
}

// reportedLimits are the resources included into the report.
var reportedLimits = []rlimit.Resource{
	rlimit.ResNofile,
	rlimit.ResNproc,
	rlimit.ResStack,
	rlimit.ResCore,
}

// collect gathers the report data.
func collect() (info *processInfo, err error) {
	hostname, err := proc.Hostname()
	if err != nil {
		return nil, fmt.Errorf("hostname: %w", err)
	}

	groups, err := proc.AllGroups()
	if err != nil {
		return nil, fmt.Errorf("groups: %w", err)
	}

	nice, err := priority.Get(priority.Process(0))
	if err != nil {
		return nil, fmt.Errorf("priority: %w", err)
	}

	limits := map[string]rlimit.Limit{}
	for _, res := range reportedLimits {
		l, limErr := rlimit.Get(res)
		if limErr != nil {
			return nil, fmt.Errorf("limits: %w", limErr)
		}

		limits[res.String()] = l
	}

	userName := fmt.Sprintf("uid %d", proc.Getuid())
	u, err := passwd.NewDB(nil).UserByUID(uint32(proc.Getuid()))
	if err == nil {
		userName = u.Name
	}

	usage := rusage.Get(rusage.WhoSelf)

	info = &processInfo{
		Limits:   limits,
		Hostname: hostname,
		User:     userName,
		Groups:   groups,
		Usage: usageInfo{
			UserTime:    usage.UserTime,
			SystemTime:  usage.SystemTime,
			MaxRSS:      usage.MaxRSS,
			MajorFaults: usage.MajorFaults,
		},
		PID:  proc.Getpid(),
		PPID: proc.Getppid(),
		UID:  proc.Getuid(),
		EUID: proc.Geteuid(),
		GID:  proc.Getgid(),
		EGID: proc.Getegid(),
		Nice: nice,
	}

	info.Extra, err = collectExtra()
	if err != nil {
		return nil, fmt.Errorf("extra: %w", err)
	}

	return info, nil
}
