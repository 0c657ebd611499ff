package proc

import (
	"os"
	"os/exec"

	"golang.org/x/sys/unix"
)

// Execv replaces the current process image with the program at path, passing
// argv as the argument vector and keeping the current environment.  On
// success it does not return.
func Execv(path string, argv []string) (err error) {
	return unix.Exec(path, argv, os.Environ())
}

// Execve replaces the current process image with the program at path,
// passing argv as the argument vector and envv as the environment.  On
// success it does not return.
func Execve(path string, argv, envv []string) (err error) {
	return unix.Exec(path, argv, envv)
}

// Execvp is like [Execv] but resolves file against the PATH environment
// variable when it contains no slash.
func Execvp(file string, argv []string) (err error) {
	path, err := exec.LookPath(file)
	if err != nil {
		return err
	}

	return unix.Exec(path, argv, os.Environ())
}
