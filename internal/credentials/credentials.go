package credentials

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jdx/go-netrc"
)

var (
	ErrNoHomeDir    = errors.New("cannot determine home directory")
	ErrHostNotFound = errors.New("no credentials for host")
)

// Credentials is one machine entry of the store. The password slot holds
// the API key.
type Credentials struct {
	Login   string
	Account string
	APIKey  string
}

// HomeDir resolves the user's home directory from the environment without
// touching it: HOME, then USERPROFILE, then HOMEDRIVE+HOMEPATH.
func HomeDir(getenv func(string) string) (string, error) {
	if home := getenv("HOME"); home != "" {
		return home, nil
	}
	if profile := getenv("USERPROFILE"); profile != "" {
		return profile, nil
	}
	drive, path := getenv("HOMEDRIVE"), getenv("HOMEPATH")
	if drive != "" && path != "" {
		return drive + path, nil
	}
	return "", ErrNoHomeDir
}

// NetrcPath returns the netrc file inside home. On Windows "_netrc" is used
// when it exists and ".netrc" does not.
func NetrcPath(home, goos string) string {
	dotted := filepath.Join(home, ".netrc")
	if goos != "windows" {
		return dotted
	}
	if _, err := os.Stat(dotted); err == nil {
		return dotted
	}
	underscored := filepath.Join(home, "_netrc")
	if _, err := os.Stat(underscored); err == nil {
		return underscored
	}
	return dotted
}

// Store is a read-only view of a netrc file.
type Store struct {
	path string
	rc   *netrc.Netrc
}

// Load parses the netrc file at path.
func Load(path string) (*Store, error) {
	rc, err := netrc.Parse(path)
	if err != nil {
		return nil, fmt.Errorf("could not load credentials from %q: %w", path, err)
	}
	return &Store{path: path, rc: rc}, nil
}

// Lookup returns the entry for host. The "default" entry is not consulted.
func (s *Store) Lookup(host string) (Credentials, error) {
	m := s.rc.Machine(host)
	if m == nil || m.IsDefault {
		return Credentials{}, fmt.Errorf("%w %q in %s", ErrHostNotFound, host, s.path)
	}
	return Credentials{
		Login:   m.Get("login"),
		Account: m.Get("account"),
		APIKey:  m.Get("password"),
	}, nil
}

// APIKey returns the API key stored for host.
func (s *Store) APIKey(host string) (string, error) {
	c, err := s.Lookup(host)
	if err != nil {
		return "", err
	}
	return c.APIKey, nil
}
