// Package passpkg provides one-way hashing of access secrets and passwords.
package passpkg

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// ErrEmptyPassword indicates that an empty plaintext was passed to Hash.
var ErrEmptyPassword = errors.New("password must not be empty")

// Hash returns the bcrypt hash of the given plaintext.
// The returned string encodes both the salt and the digest.
func Hash(password string) (string, error) {
	if password == "" {
		return "", ErrEmptyPassword
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}

	return string(hashed), nil
}

// Check compares the plaintext with the given bcrypt hash.
// It returns a non-nil error on mismatch or on a malformed hash.
func Check(password, hashedPassword string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}
