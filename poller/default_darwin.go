//go:build darwin

package poller

// New returns the default poller for the platform, which is kqueue here.
func New() (p Interface, err error) {
	return NewKqueue()
}
