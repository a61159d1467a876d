package security

import (
	"strings"
	"testing"
)

func TestHashAndVerify(t *testing.T) {
	a := New()

	hash, err := a.GenerateFromPassword("correct horse battery staple")
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	if !strings.HasPrefix(hash, "$argon2id$") {
		t.Fatalf("expected PHC-encoded argon2id hash, got %q", hash)
	}
	if strings.Contains(hash, "correct horse") {
		t.Fatal("plaintext leaked into the encoded hash")
	}

	ok, err := a.VerifyPasswd("correct horse battery staple", hash)
	if err != nil {
		t.Fatalf("verify failed: %v", err)
	}
	if !ok {
		t.Fatal("expected correct password to verify")
	}
}

func TestWrongPasswordDoesNotVerify(t *testing.T) {
	a := New()

	hash, err := a.GenerateFromPassword("hunter2")
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	ok, err := a.VerifyPasswd("hunter3", hash)
	if err != nil {
		t.Fatalf("verify failed: %v", err)
	}
	if ok {
		t.Fatal("expected wrong password to fail verification")
	}
}

func TestSaltsDiffer(t *testing.T) {
	a := New()

	h1, err := a.GenerateFromPassword("same password")
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	h2, err := a.GenerateFromPassword("same password")
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	if h1 == h2 {
		t.Fatal("expected distinct salts to produce distinct hashes")
	}
}

func TestMalformedHashErrors(t *testing.T) {
	a := New()

	if _, err := a.VerifyPasswd("whatever", "not-a-hash"); err == nil {
		t.Fatal("expected error for malformed hash")
	}
}
