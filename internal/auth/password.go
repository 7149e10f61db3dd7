package auth

import "crypto/subtle"

// fakeHashPrefix is prepended to plain-text passwords to form the stored value.
// It is a placeholder, not a hash.
const fakeHashPrefix = "fakehashed"

// FakeHashPassword transforms a plain-text password into the directory's
// stored representation.
func FakeHashPassword(password string) string {
	return fakeHashPrefix + password
}

// CheckPasswordHash compares a plain-text password with a stored value.
// subtle.ConstantTimeCompare keeps the comparison time independent of
// where the first mismatching byte is.
func CheckPasswordHash(password, storedHash string) bool {
	return subtle.ConstantTimeCompare([]byte(FakeHashPassword(password)), []byte(storedHash)) == 1
}
