//go:build !linux

package signum

// rtName is only meaningful on platforms with accessible real-time signals.
func rtName(_ Signal) (name string, ok bool) {
	return "", false
}

// fromRTName is only meaningful on platforms with accessible real-time
// signals.
func fromRTName(_ string) (sig Signal, ok bool) {
	return 0, false
}
