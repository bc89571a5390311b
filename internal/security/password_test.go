package security

import (
	"errors"
	"testing"
)

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantErr  error
	}{
		{"accepts eight characters", "abcd1234", nil},
		{"accepts a long passphrase", "correct horse battery staple", nil},
		{"rejects seven characters", "abcd123", ErrWeakPassword},
		{"rejects empty", "", ErrWeakPassword},
		{"rejects whitespace padding", "       ", ErrWeakPassword},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidatePassword(tc.password)

			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("ValidatePassword(%q) = %v, want %v", tc.password, err, tc.wantErr)
			}
		})
	}
}

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("hunter2hunter2")

	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}

	if hash == "hunter2hunter2" {
		t.Fatal("hash equals the plaintext")
	}

	if err := CheckPassword(hash, "hunter2hunter2"); err != nil {
		t.Fatalf("CheckPassword rejected the right password: %v", err)
	}

	if err := CheckPassword(hash, "wrong-password"); err == nil {
		t.Fatal("CheckPassword accepted the wrong password")
	}
}
