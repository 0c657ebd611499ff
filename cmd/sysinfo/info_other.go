//go:build !linux

package main

// extraInfo is empty on platforms without prctl.
type extraInfo struct{}

// collectExtra gathers nothing on platforms without prctl.
func collectExtra() (extra extraInfo, err error) {
	return extraInfo{}, nil
}
