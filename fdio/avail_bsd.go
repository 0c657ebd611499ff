//go:build darwin || freebsd

package fdio

// fionread is the FIONREAD ioctl reporting the number of readable bytes.
const fionread = 0x4004667f
