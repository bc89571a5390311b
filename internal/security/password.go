package security

import (
	"errors"
	"regexp"

	"golang.org/x/crypto/bcrypt"
)

// ErrWeakPassword is returned when a plaintext password fails the policy.
var ErrWeakPassword = errors.New("Minimum of 8 characters is required")

var wordChar = regexp.MustCompile(`\w`)

// ValidatePassword enforces the account password policy: at least 8
// characters and at least one word character.
func ValidatePassword(plain string) error {
	if len(plain) < 8 || !wordChar.MatchString(plain) {
		return ErrWeakPassword
	}
	return nil
}

// HashPassword hashes a plain text password with bcrypt.
func HashPassword(plain string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)

	if err != nil {
		return "", err
	}

	return string(hash), nil
}

// helper that compares a bcrypt hash with a plaintext password.

func CheckPassword(hash, plain string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain))
}
