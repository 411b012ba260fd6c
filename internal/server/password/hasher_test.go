package password

import (
	"fmt"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestHasher_HashAndVerify(t *testing.T) {
	t.Parallel()
	h := NewHasher(bcrypt.MinCost)

	hash, err := h.Hash("correct horse battery staple")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if hash == "" || hash == "correct horse battery staple" {
		t.Fatalf("expected non-empty hash distinct from the password, got %q", hash)
	}

	if !h.Verify("correct horse battery staple", hash) {
		t.Fatal("expected original password to verify")
	}
	if h.Verify("correct horse battery stapler", hash) {
		t.Fatal("expected different password to fail verification")
	}
}

func TestHasher_SaltedHashesDiffer(t *testing.T) {
	t.Parallel()
	h := NewHasher(bcrypt.MinCost)

	a, err := h.Hash("password1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := h.Hash("password1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a == b {
		t.Fatal("expected two hashes of the same password to differ")
	}
	if !h.Verify("password1", a) || !h.Verify("password1", b) {
		t.Fatal("expected both hashes to verify")
	}
}

func TestHasher_Verify_MalformedHash(t *testing.T) {
	t.Parallel()
	h := NewHasher(bcrypt.MinCost)

	hash, err := h.Hash("secretpass")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	tests := []struct {
		name string
		hash string
	}{
		{"empty", ""},
		{"not a hash", "plainly-not-bcrypt"},
		{"truncated", hash[:len(hash)/2]},
		{"wrong prefix", "$1$" + hash[4:]},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if h.Verify("secretpass", tc.hash) {
				t.Fatalf("expected verification to fail for %s", tc.name)
			}
		})
	}
}

func TestHasher_RoundTripMany(t *testing.T) {
	t.Parallel()
	h := NewHasher(bcrypt.MinCost)

	for i := 0; i < 8; i++ {
		pw := fmt.Sprintf("pw-%d-with-some-length", i)
		hash, err := h.Hash(pw)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !h.Verify(pw, hash) {
			t.Fatalf("expected %q to verify against its own hash", pw)
		}
		if h.Verify(pw+"x", hash) {
			t.Fatalf("expected %q to fail against hash of %q", pw+"x", pw)
		}
	}
}

func TestNewHasher_OutOfRangeCost(t *testing.T) {
	t.Parallel()
	h := NewHasher(99)

	if _, err := h.Hash("whatever-pass"); err != nil {
		t.Fatalf("expected out-of-range cost to fall back to default, got %v", err)
	}
}
