// Package passwd provides access to the user and group databases in the
// traditional passwd(5) and group(5) formats.  Lookups read the files
// directly instead of going through the platform NSS machinery, which keeps
// them safe to call from any goroutine.
package passwd

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/AdguardTeam/golibs/errors"
	"golang.org/x/sys/unix"
)

// ErrNoEntry is returned by lookups when the database has no matching entry.
const ErrNoEntry errors.Error = "no such entry"

// User is a single record of the user database.
type User struct {
	// Name is the login name.
	Name string

	// Password is the password field, normally "x" on systems with shadow
	// passwords.
	Password string

	// Gecos is the comment field, often the full name of the user.
	Gecos string

	// Home is the home directory.
	Home string

	// Shell is the login shell.
	Shell string

	// UID is the user ID.
	UID uint32

	// GID is the ID of the primary group.
	GID uint32
}

// Group is a single record of the group database.
type Group struct {
	// Name is the group name.
	Name string

	// Password is the password field, normally empty or "x".
	Password string

	// Members are the login names of the supplementary members.  The users
	// for which the group is primary are not listed here.
	Members []string

	// GID is the group ID.
	GID uint32
}

// Field counts of the database records.
const (
	userFieldNum  = 7
	groupFieldNum = 4
)

// parseID parses a user or group ID field.
func parseID(field, name string) (id uint32, err error) {
	v, err := strconv.ParseUint(field, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("bad %s %q: %w", name, field, unix.EINVAL)
	}

	return uint32(v), nil
}

// parseUserLine parses one record of the user database.
func parseUserLine(line string) (u *User, err error) {
	fields := strings.Split(line, ":")
	if len(fields) != userFieldNum {
		return nil, fmt.Errorf("want %d fields, got %d: %w", userFieldNum, len(fields), unix.EINVAL)
	}

	uid, err := parseID(fields[2], "uid")
	if err != nil {
		return nil, err
	}

	gid, err := parseID(fields[3], "gid")
	if err != nil {
		return nil, err
	}

	return &User{
		Name:     fields[0],
		Password: fields[1],
		UID:      uid,
		GID:      gid,
		Gecos:    fields[4],
		Home:     fields[5],
		Shell:    fields[6],
	}, nil
}

// parseGroupLine parses one record of the group database.
func parseGroupLine(line string) (g *Group, err error) {
	fields := strings.Split(line, ":")
	if len(fields) != groupFieldNum {
		return nil, fmt.Errorf("want %d fields, got %d: %w", groupFieldNum, len(fields), unix.EINVAL)
	}

	gid, err := parseID(fields[2], "gid")
	if err != nil {
		return nil, err
	}

	var members []string
	if fields[3] != "" {
		members = strings.Split(fields[3], ",")
	}

	return &Group{
		Name:     fields[0],
		Password: fields[1],
		GID:      gid,
		Members:  members,
	}, nil
}

// forEachRecord calls f for each non-empty non-comment line of r.
func forEachRecord(r io.Reader, f func(line string) (err error)) (err error) {
	s := bufio.NewScanner(r)
	for lineNum := 1; s.Scan(); lineNum++ {
		line := s.Text()
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		err = f(line)
		if err != nil {
			return fmt.Errorf("line %d: %w", lineNum, err)
		}
	}

	return s.Err()
}

// ParseUsers reads the whole user database from r.
func ParseUsers(r io.Reader) (users []*User, err error) {
	err = forEachRecord(r, func(line string) (lineErr error) {
		u, lineErr := parseUserLine(line)
		if lineErr != nil {
			return lineErr
		}

		users = append(users, u)

		return nil
	})
	if err != nil {
		return nil, err
	}

	return users, nil
}

// ParseGroups reads the whole group database from r.
func ParseGroups(r io.Reader) (groups []*Group, err error) {
	err = forEachRecord(r, func(line string) (lineErr error) {
		g, lineErr := parseGroupLine(line)
		if lineErr != nil {
			return lineErr
		}

		groups = append(groups, g)

		return nil
	})
	if err != nil {
		return nil, err
	}

	return groups, nil
}
