package auth

import (
	"errors"
	"strings"
	"testing"

	"github.com/rentdesk/rentdesk/pkg/domain"
)

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("correct-horse-battery")
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}
	if !strings.HasPrefix(hash, "$argon2id$") {
		t.Errorf("hash should be argon2id encoded, got %q", hash)
	}

	if !VerifyPassword("correct-horse-battery", hash) {
		t.Error("correct password should verify")
	}
	if VerifyPassword("wrong-password", hash) {
		t.Error("wrong password should not verify")
	}
}

func TestHashPassword_UniqueSalts(t *testing.T) {
	h1, err := HashPassword("same-password")
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}
	h2, err := HashPassword("same-password")
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}
	if h1 == h2 {
		t.Error("two hashes of the same password should differ")
	}
}

func TestVerifyPassword_MalformedHash(t *testing.T) {
	tests := []struct {
		name string
		hash string
	}{
		{"empty", ""},
		{"not a hash", "plaintext"},
		{"wrong algorithm", "$bcrypt$v=19$m=65536,t=1,p=4$c2FsdA$aGFzaA"},
		{"missing sections", "$argon2id$v=19$m=65536,t=1,p=4"},
		{"bad salt encoding", "$argon2id$v=19$m=65536,t=1,p=4$!!!$aGFzaA"},
		{"bad hash encoding", "$argon2id$v=19$m=65536,t=1,p=4$c2FsdA$!!!"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if VerifyPassword("anything", tt.hash) {
				t.Error("malformed hash should never verify")
			}
		})
	}
}

func TestValidateUsername(t *testing.T) {
	tests := []struct {
		username string
		wantErr  bool
	}{
		{"alice", false},
		{"alice_smith", false},
		{"tenant-42", false},
		{"a1b", false},
		{strings.Repeat("a", 30), false},
		{"", true},
		{"ab", true},
		{strings.Repeat("a", 31), true},
		{"_leading", true},
		{"-leading", true},
		{"has space", true},
		{"Upper", true},
		{"dot.name", true},
	}

	for _, tt := range tests {
		t.Run(tt.username, func(t *testing.T) {
			err := ValidateUsername(tt.username)
			if tt.wantErr && !errors.Is(err, domain.ErrInvalidUsername) {
				t.Errorf("ValidateUsername(%q) = %v, want ErrInvalidUsername", tt.username, err)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("ValidateUsername(%q) = %v, want nil", tt.username, err)
			}
		})
	}
}
