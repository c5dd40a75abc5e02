package auth_test

import (
	"errors"
	"testing"

	"golang.org/x/crypto/bcrypt"

	authsvc "github.com/Rudio1/api-meals/internal/services/auth"
)

func TestHashPassword(t *testing.T) {
	hash, err := authsvc.HashPassword("correct horse")
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	if hash == "correct horse" {
		t.Fatalf("hash must not equal the plaintext")
	}

	cost, err := bcrypt.Cost([]byte(hash))
	if err != nil {
		t.Fatalf("read cost: %v", err)
	}
	if cost != authsvc.PasswordCost {
		t.Fatalf("expected cost %d, got %d", authsvc.PasswordCost, cost)
	}

	again, err := authsvc.HashPassword("correct horse")
	if err != nil {
		t.Fatalf("hash password again: %v", err)
	}
	if again == hash {
		t.Fatalf("hashes must be salted")
	}
}

func TestCheckPassword(t *testing.T) {
	hash, err := authsvc.HashPassword("secret1")
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}

	if err := authsvc.CheckPassword(hash, "secret1"); err != nil {
		t.Fatalf("expected match, got %v", err)
	}
	if err := authsvc.CheckPassword(hash, "secret2"); !errors.Is(err, authsvc.ErrPasswordMismatch) {
		t.Fatalf("expected ErrPasswordMismatch, got %v", err)
	}
	if err := authsvc.CheckPassword("not-a-hash", "secret1"); !errors.Is(err, authsvc.ErrPasswordMismatch) {
		t.Fatalf("expected ErrPasswordMismatch for corrupt hash, got %v", err)
	}
}
