// Package password hashes admin passwords with bcrypt.
package password

import (
	"errors"
	"fmt"
	"sync"

	"golang.org/x/crypto/bcrypt"
)

// MaxLength is bcrypt's input limit in bytes; longer passwords are rejected, not truncated.
const MaxLength = 72

var (
	ErrInvalidPassword = errors.New("invalid password")
	ErrEmptyPassword   = errors.New("password cannot be empty")
	ErrTooLong         = fmt.Errorf("password longer than %d bytes", MaxLength)
)

var (
	cost = bcrypt.DefaultCost

	dummyOnce sync.Once
	dummyHash []byte
)

func Hash(password string) (string, error) {
	switch {
	case password == "":
		return "", ErrEmptyPassword
	case len(password) > MaxLength:
		return "", ErrTooLong
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", fmt.Errorf("hashing password: %w", err)
	}

	return string(hash), nil
}

// Verify returns ErrInvalidPassword when password does not match hash.
func Verify(password, hash string) error {
	if password == "" || hash == "" {
		return ErrInvalidPassword
	}

	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	switch {
	case err == nil:
		return nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return ErrInvalidPassword
	default:
		return fmt.Errorf("verifying password: %w", err)
	}
}

// VerifyAbsent burns the same bcrypt work as Verify for an account that does not exist, so
// response time does not reveal which emails are registered. It always fails.
func VerifyAbsent(password string) error {
	dummyOnce.Do(func() {
		dummyHash, _ = bcrypt.GenerateFromPassword([]byte("folio-absent-account"), cost)
	})

	_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))

	return ErrInvalidPassword
}
