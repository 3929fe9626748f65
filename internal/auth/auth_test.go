package auth

import (
	"testing"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("s3cret-pass")
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}
	if hash == "s3cret-pass" {
		t.Fatal("Hash should not equal the plaintext")
	}

	if !CheckPassword(hash, "s3cret-pass") {
		t.Error("Correct password should verify")
	}
	if CheckPassword(hash, "wrong-pass") {
		t.Error("Wrong password should not verify")
	}
}

func TestCheckPassword_InvalidHash(t *testing.T) {
	if CheckPassword("not-a-bcrypt-hash", "anything") {
		t.Error("Garbage hash should not verify")
	}
}
