package auth

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaultGate(t *testing.T, tokens TokenIssuer) *Gate {
	t.Helper()
	dir, err := NewDirectory(DefaultUsers())
	require.NoError(t, err)
	return NewGate(dir, tokens)
}

func TestLoginSucceedsWithMatchingPassword(t *testing.T) {
	gate := defaultGate(t, nil)

	token, err := gate.Login("johndoe", "secret")
	require.NoError(t, err)
	assert.Equal(t, "johndoe", token)

	user, err := gate.Authenticate(token)
	require.NoError(t, err)
	assert.Equal(t, "johndoe", user.Username)
	require.NotNil(t, user.Email)
	assert.Equal(t, "johndoe@example.com", *user.Email)
}

func TestLoginFailures(t *testing.T) {
	gate := defaultGate(t, nil)

	tests := []struct {
		name     string
		username string
		password string
	}{
		{"wrong password", "alice", "wrongpw"},
		{"unknown user", "mallory", "secret"},
		{"stored hash used as password", "johndoe", "fakehashedsecret"},
		{"empty password", "johndoe", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := gate.Login(tt.username, tt.password)
			assert.ErrorIs(t, err, ErrInvalidCredentials)
		})
	}
}

func TestDisabledUserCanLoginButIsInactive(t *testing.T) {
	gate := defaultGate(t, nil)

	token, err := gate.Login("alice", "secret2")
	require.NoError(t, err)

	user, err := gate.Resolve(token)
	require.NoError(t, err)
	assert.True(t, user.Disabled)

	_, err = gate.Authenticate(token)
	assert.ErrorIs(t, err, ErrInactiveUser)
}

func TestResolveUnknownToken(t *testing.T) {
	gate := defaultGate(t, nil)

	_, err := gate.Resolve("")
	assert.ErrorIs(t, err, ErrUnauthenticated)

	_, err = gate.Resolve("nobody")
	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestJWTTokensRoundTrip(t *testing.T) {
	gate := defaultGate(t, NewJWTTokens("test-secret"))

	token, err := gate.Login("johndoe", "secret")
	require.NoError(t, err)
	assert.NotEqual(t, "johndoe", token)

	user, err := gate.Authenticate(token)
	require.NoError(t, err)
	assert.Equal(t, "johndoe", user.Username)

	// A bare username is no longer accepted once tokens are signed.
	_, err = gate.Resolve("johndoe")
	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestJWTTokensRejectForeignSignatures(t *testing.T) {
	other := NewJWTTokens("other-secret")
	forged, err := other.Issue("johndoe")
	require.NoError(t, err)

	gate := defaultGate(t, NewJWTTokens("test-secret"))
	_, err = gate.Resolve(forged)
	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestJWTTokensRejectNoneAlgorithm(t *testing.T) {
	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{Subject: "johndoe"})
	raw, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = NewJWTTokens("test-secret").Subject(raw)
	assert.Error(t, err)
}

func TestLoadDirectoryFromYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "users.yaml")
	content := `
users:
  - username: operator
    full_name: Night Operator
    hashed_password: fakehashedpw
  - username: retired
    hashed_password: fakehashedold
    disabled: true
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	dir, err := LoadDirectory(path)
	require.NoError(t, err)
	assert.Equal(t, 2, dir.Len())

	op, ok := dir.Lookup("operator")
	require.True(t, ok)
	assert.Nil(t, op.Email)
	require.NotNil(t, op.FullName)
	assert.Equal(t, "Night Operator", *op.FullName)

	gate := NewGate(dir, nil)
	_, err = gate.Login("operator", "pw")
	assert.NoError(t, err)
	_, err = gate.Login("johndoe", "secret")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoadDirectoryDefaultsAndErrors(t *testing.T) {
	dir, err := LoadDirectory("")
	require.NoError(t, err)
	assert.Equal(t, 2, dir.Len())

	_, err = LoadDirectory(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = NewDirectory([]User{{Username: "a"}, {Username: "a"}})
	assert.Error(t, err)

	_, err = NewDirectory([]User{{HashedPassword: "x"}})
	assert.Error(t, err)
}
