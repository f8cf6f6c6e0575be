// Package auth provides credential verification for the login endpoint.
package auth

import (
	"crypto/subtle"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials reports a failed login attempt.
var ErrInvalidCredentials = errors.New("invalid credentials")

// Credentials verifies submitted form credentials against a single
// configured username/password pair. The password is stored only as a
// bcrypt hash computed at construction time.
type Credentials struct {
	username     string
	passwordHash []byte
}

// NewCredentials creates a Credentials verifier for the given pair.
func NewCredentials(username, password string) (*Credentials, error) {
	if username == "" || password == "" {
		return nil, fmt.Errorf("credentials: username and password must not be empty")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("credentials: hashing password: %w", err)
	}

	return &Credentials{
		username:     username,
		passwordHash: hash,
	}, nil
}

// Verify checks a submitted username/password pair. The username comparison
// is constant-time and the password is checked against the bcrypt hash.
func (c *Credentials) Verify(username, password string) error {
	userOK := subtle.ConstantTimeCompare([]byte(c.username), []byte(username)) == 1

	if err := bcrypt.CompareHashAndPassword(c.passwordHash, []byte(password)); err != nil || !userOK {
		return ErrInvalidCredentials
	}

	return nil
}
