//go:build linux

package main

import (
	"github.com/AdguardTeam/sysunix/prctl"
)

// extraInfo is the Linux-specific part of the report.
type extraInfo struct {
	ThreadName    string   `yaml:"thread_name"`
	EffectiveCaps []string `yaml:"effective_caps"`
	Dumpable      bool     `yaml:"dumpable"`
	NoNewPrivs    bool     `yaml:"no_new_privs"`
}

// collectExtra gathers the Linux-specific report data.
func collectExtra() (extra extraInfo, err error) {
	extra.ThreadName, err = prctl.GetName()
	if err != nil {
		return extraInfo{}, err
	}

	extra.Dumpable, err = prctl.GetDumpable()
	if err != nil {
		return extraInfo{}, err
	}

	extra.NoNewPrivs, err = prctl.GetNoNewPrivs()
	if err != nil {
		return extraInfo{}, err
	}

	state, err := prctl.GetCaps(0)
	if err != nil {
		return extraInfo{}, err
	}

	for c := prctl.CapChown; c <= prctl.CapAuditRead; c++ {
		if state.Effective.Has(c) {
			extra.EffectiveCaps = append(extra.EffectiveCaps, c.String())
		}
	}

	return extra, nil
}
