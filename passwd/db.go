package passwd

import (
	"fmt"
	"io/fs"
	"slices"

	"github.com/AdguardTeam/golibs/errors"
	"github.com/AdguardTeam/golibs/osutil"
)

// Database file paths within the filesystem root.
const (
	usersPath  = "etc/passwd"
	groupsPath = "etc/group"
)

// DB performs lookups in the user and group databases of a filesystem.
type DB struct {
	fsys fs.FS
}

// NewDB returns a database reading from fsys, which must contain etc/passwd
// and etc/group.  If fsys is nil, the filesystem of the host is used.
func NewDB(fsys fs.FS) (db *DB) {
	if fsys == nil {
		fsys = osutil.RootDirFS()
	}

	return &DB{fsys: fsys}
}

// users reads and parses the whole user database.
func (db *DB) users() (users []*User, err error) {
	f, err := db.fsys.Open(usersPath)
	if err != nil {
		return nil, fmt.Errorf("opening user database: %w", err)
	}
	defer func() { err = errors.WithDeferred(err, f.Close()) }()

	users, err = ParseUsers(f)
	if err != nil {
		return nil, fmt.Errorf("parsing user database: %w", err)
	}

	return users, nil
}

// groups reads and parses the whole group database.
func (db *DB) groups() (groups []*Group, err error) {
	f, err := db.fsys.Open(groupsPath)
	if err != nil {
		return nil, fmt.Errorf("opening group database: %w", err)
	}
	defer func() { err = errors.WithDeferred(err, f.Close()) }()

	groups, err = ParseGroups(f)
	if err != nil {
		return nil, fmt.Errorf("parsing group database: %w", err)
	}

	return groups, nil
}

// Users returns every record of the user database.
func (db *DB) Users() (users []*User, err error) {
	return db.users()
}

// Groups returns every record of the group database.
func (db *DB) Groups() (groups []*Group, err error) {
	return db.groups()
}

// UserByName returns the user with the given login name.  The error wraps
// [ErrNoEntry] if there is no such user.
func (db *DB) UserByName(name string) (u *User, err error) {
	users, err := db.users()
	if err != nil {
		return nil, err
	}

	for _, u = range users {
		if u.Name == name {
			return u, nil
		}
	}

	return nil, fmt.Errorf("user %q: %w", name, ErrNoEntry)
}

// UserByUID returns the user with the given ID.  The error wraps
// [ErrNoEntry] if there is no such user.
func (db *DB) UserByUID(uid uint32) (u *User, err error) {
	users, err := db.users()
	if err != nil {
		return nil, err
	}

	for _, u = range users {
		if u.UID == uid {
			return u, nil
		}
	}

	return nil, fmt.Errorf("uid %d: %w", uid, ErrNoEntry)
}

// GroupByName returns the group with the given name.  The error wraps
// [ErrNoEntry] if there is no such group.
func (db *DB) GroupByName(name string) (g *Group, err error) {
	groups, err := db.groups()
	if err != nil {
		return nil, err
	}

	for _, g = range groups {
		if g.Name == name {
			return g, nil
		}
	}

	return nil, fmt.Errorf("group %q: %w", name, ErrNoEntry)
}

// GroupByGID returns the group with the given ID.  The error wraps
// [ErrNoEntry] if there is no such group.
func (db *DB) GroupByGID(gid uint32) (g *Group, err error) {
	groups, err := db.groups()
	if err != nil {
		return nil, err
	}

	for _, g = range groups {
		if g.GID == gid {
			return g, nil
		}
	}

	return nil, fmt.Errorf("gid %d: %w", gid, ErrNoEntry)
}

// UserGroups returns the IDs of every group the user with the given login
// name belongs to.  primary is the primary group ID from the user record; it
// always comes first in the result.
func (db *DB) UserGroups(name string, primary uint32) (gids []uint32, err error) {
	groups, err := db.groups()
	if err != nil {
		return nil, err
	}

	gids = []uint32{primary}
	for _, g := range groups {
		if g.GID != primary && slices.Contains(g.Members, name) {
			gids = append(gids, g.GID)
		}
	}

	return gids, nil
}
