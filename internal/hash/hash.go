// Package hash performs one-way password hashing behind a small interface so
// the algorithm can be swapped without touching the auth flow.
package hash

import (
	"errors"
	"fmt"

	"github.com/alexedwards/argon2id"
	"golang.org/x/crypto/bcrypt"
)

// Hasher performs one-way password hashing and verification.
type Hasher interface {
	Hash(password string) (string, error)
	Check(password, hash string) (bool, error)
}

// BcryptHasher implements Hasher using the bcrypt algorithm.
type BcryptHasher struct{}

var _ Hasher = BcryptHasher{}

func NewBcryptHasher() BcryptHasher {
	return BcryptHasher{}
}

// Hash returns the bcrypt hash of the password using DefaultCost.
func (BcryptHasher) Hash(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("bcrypt hash: %v", err)
	}
	return string(bytes), nil
}

// Check compares a plaintext password against a bcrypt hash. A mismatch is
// reported as (false, nil), not as an error.
func (BcryptHasher) Check(password, hash string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	if err != nil {
		switch {
		case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
			return false, nil
		default:
			return false, fmt.Errorf("bcrypt compare password hash: %w", err)
		}
	}

	return true, nil
}

// Argon2IDHasher implements Hasher using the argon2id algorithm.
type Argon2IDHasher struct{}

var _ Hasher = Argon2IDHasher{}

func NewArgon2IDHasher() Argon2IDHasher {
	return Argon2IDHasher{}
}

// Hash returns the argon2id hash of the password using DefaultParams.
func (Argon2IDHasher) Hash(password string) (string, error) {
	s, err := argon2id.CreateHash(password, argon2id.DefaultParams)
	if err != nil {
		return "", fmt.Errorf("argon hash: %w", err)
	}
	return s, nil
}

// Check compares a plaintext password against an argon2id hash.
func (Argon2IDHasher) Check(password, hash string) (bool, error) {
	ok, err := argon2id.ComparePasswordAndHash(password, hash)
	if err != nil {
		return false, fmt.Errorf("argon compare password hash: %w", err)
	}
	return ok, nil
}
