package auth

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Errors returned by the auth gate. The API maps each one to a status code.
var (
	ErrInvalidCredentials = errors.New("incorrect username or password")
	ErrUnauthenticated    = errors.New("invalid authentication credentials")
	ErrInactiveUser       = errors.New("inactive user")
)

// User is an entry in the user directory.
type User struct {
	Username       string  `yaml:"username"`
	Email          *string `yaml:"email"`
	FullName       *string `yaml:"full_name"`
	Disabled       bool    `yaml:"disabled"`
	HashedPassword string  `yaml:"hashed_password"`
}

// Directory is the read-only set of known users. It is built once at
// startup and shared by reference; nothing mutates it afterwards.
type Directory struct {
	users map[string]User
}

// NewDirectory indexes users by username. Duplicate usernames are rejected.
func NewDirectory(users []User) (*Directory, error) {
	d := &Directory{users: make(map[string]User, len(users))}
	for _, u := range users {
		if u.Username == "" {
			return nil, errors.New("user entry without a username")
		}
		if _, dup := d.users[u.Username]; dup {
			return nil, fmt.Errorf("duplicate user %q", u.Username)
		}
		d.users[u.Username] = u
	}
	return d, nil
}

// DefaultUsers returns the built-in directory: one enabled and one disabled account.
func DefaultUsers() []User {
	return []User{
		{
			Username:       "johndoe",
			FullName:       strPtr("John Doe"),
			Email:          strPtr("johndoe@example.com"),
			HashedPassword: "fakehashedsecret",
			Disabled:       false,
		},
		{
			Username:       "alice",
			FullName:       strPtr("Alice Wonderson"),
			Email:          strPtr("alice@example.com"),
			HashedPassword: "fakehashedsecret2",
			Disabled:       true,
		},
	}
}

// usersFile is the on-disk layout accepted by LoadDirectory.
type usersFile struct {
	Users []User `yaml:"users"`
}

// LoadDirectory builds the directory from a YAML file, or from DefaultUsers
// when path is empty.
func LoadDirectory(path string) (*Directory, error) {
	if path == "" {
		return NewDirectory(DefaultUsers())
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading users file: %w", err)
	}

	var f usersFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parsing users file %s: %w", path, err)
	}
	return NewDirectory(f.Users)
}

// Lookup returns the user with the given username.
func (d *Directory) Lookup(username string) (User, bool) {
	u, ok := d.users[username]
	return u, ok
}

// Len reports how many users the directory holds.
func (d *Directory) Len() int {
	return len(d.users)
}

func strPtr(s string) *string { return &s }
