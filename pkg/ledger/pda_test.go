package ledger

import (
	"crypto/ed25519"
	"errors"
	"strings"
	"testing"
)

var testProgramID = MustParsePubkey("BPFLoaderUpgradeab1e11111111111111111111111")

func TestCreateProgramAddress_KnownVectors(t *testing.T) {
	tests := []struct {
		name  string
		seeds [][]byte
		want  string
	}{
		{
			name:  "empty seed with bump",
			seeds: [][]byte{[]byte(""), {1}},
			want:  "BwqrghZA2htAcqq8dzP1WDAhTXYTYWj7CHxF5j7TDBAe",
		},
		{
			name:  "two text seeds",
			seeds: [][]byte{[]byte("Talking"), []byte("Squirrels")},
			want:  "2fnQrngrQT4SeLcdToJAD96phoEjNL2man2kfRLCASVk",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CreateProgramAddress(tt.seeds, testProgramID)
			if err != nil {
				t.Fatalf("CreateProgramAddress() failed: %v", err)
			}
			if got.String() != tt.want {
				t.Fatalf("expected %s, got %s", tt.want, got)
			}
		})
	}
}

func TestCreateProgramAddress_SeedLimits(t *testing.T) {
	long := []byte(strings.Repeat("x", MaxSeedLength+1))
	if _, err := CreateProgramAddress([][]byte{long}, testProgramID); !errors.Is(err, ErrMaxSeedLengthExceeded) {
		t.Fatalf("expected ErrMaxSeedLengthExceeded for long seed, got %v", err)
	}

	exact := []byte(strings.Repeat("x", MaxSeedLength))
	if _, err := CreateProgramAddress([][]byte{exact}, testProgramID); err != nil && !errors.Is(err, ErrInvalidSeeds) {
		t.Fatalf("seed of exactly %d bytes must be accepted, got %v", MaxSeedLength, err)
	}

	tooMany := make([][]byte, MaxSeeds+1)
	for i := range tooMany {
		tooMany[i] = []byte{byte(i)}
	}
	if _, err := CreateProgramAddress(tooMany, testProgramID); !errors.Is(err, ErrMaxSeedLengthExceeded) {
		t.Fatalf("expected ErrMaxSeedLengthExceeded for %d seeds, got %v", len(tooMany), err)
	}

	if _, _, err := FindProgramAddress(tooMany[:MaxSeeds], testProgramID); !errors.Is(err, ErrMaxSeedLengthExceeded) {
		t.Fatalf("expected FindProgramAddress to reserve a slot for the bump, got %v", err)
	}
}

func TestFindProgramAddress_Deterministic(t *testing.T) {
	authority, _, err := ed25519.GenerateKey(nil)
	if err != nil {
		t.Fatalf("GenerateKey() failed: %v", err)
	}
	seeds := [][]byte{[]byte("user_kyc"), authority}

	addr1, bump1, err := FindProgramAddress(seeds, testProgramID)
	if err != nil {
		t.Fatalf("FindProgramAddress() failed: %v", err)
	}
	addr2, bump2, err := FindProgramAddress(seeds, testProgramID)
	if err != nil {
		t.Fatalf("FindProgramAddress() second call failed: %v", err)
	}

	if addr1 != addr2 || bump1 != bump2 {
		t.Fatalf("derivation not deterministic: (%s,%d) vs (%s,%d)", addr1, bump1, addr2, bump2)
	}

	again, err := CreateProgramAddress(append(seeds, []byte{bump1}), testProgramID)
	if err != nil {
		t.Fatalf("CreateProgramAddress() with found bump failed: %v", err)
	}
	if again != addr1 {
		t.Fatalf("CreateProgramAddress() = %s, want %s", again, addr1)
	}
}

func TestFindProgramAddress_OffCurve(t *testing.T) {
	for i := 0; i < 32; i++ {
		pub, _, err := ed25519.GenerateKey(nil)
		if err != nil {
			t.Fatalf("GenerateKey() failed: %v", err)
		}
		if !IsOnCurve(pub) {
			t.Fatalf("ed25519 public key %x must be on curve", []byte(pub))
		}

		addr, _, err := FindProgramAddress([][]byte{[]byte("user_kyc"), pub}, testProgramID)
		if err != nil {
			t.Fatalf("FindProgramAddress() failed: %v", err)
		}
		if IsOnCurve(addr[:]) {
			t.Fatalf("derived address %s is on curve", addr)
		}
	}
}

func TestFindProgramAddress_UniquePerAuthority(t *testing.T) {
	seen := make(map[Pubkey]struct{})
	for i := 0; i < 64; i++ {
		pub, _, err := ed25519.GenerateKey(nil)
		if err != nil {
			t.Fatalf("GenerateKey() failed: %v", err)
		}
		addr, _, err := FindProgramAddress([][]byte{[]byte("user_kyc"), pub}, testProgramID)
		if err != nil {
			t.Fatalf("FindProgramAddress() failed: %v", err)
		}
		if _, dup := seen[addr]; dup {
			t.Fatalf("address %s derived for two distinct authorities", addr)
		}
		seen[addr] = struct{}{}
	}
}

func TestFindProgramAddress_DependsOnProgramID(t *testing.T) {
	seeds := [][]byte{[]byte("user_kyc"), make([]byte, 32)}

	a, _, err := FindProgramAddress(seeds, testProgramID)
	if err != nil {
		t.Fatalf("FindProgramAddress() failed: %v", err)
	}
	b, _, err := FindProgramAddress(seeds, SystemProgramID)
	if err != nil {
		t.Fatalf("FindProgramAddress() failed: %v", err)
	}
	if a == b {
		t.Fatalf("expected different addresses for different program ids")
	}
}

func TestParsePubkey(t *testing.T) {
	if got := SystemProgramID.String(); got != "11111111111111111111111111111111" {
		t.Fatalf("system program id = %q", got)
	}

	pk, err := ParsePubkey("11111111111111111111111111111111")
	if err != nil {
		t.Fatalf("ParsePubkey() failed: %v", err)
	}
	if !pk.IsZero() {
		t.Fatalf("expected zero key, got %s", pk)
	}

	for _, bad := range []string{"", "0OIl", "1111"} {
		if _, err := ParsePubkey(bad); !errors.Is(err, ErrInvalidPubkey) {
			t.Errorf("ParsePubkey(%q) expected ErrInvalidPubkey, got %v", bad, err)
		}
	}

	text, err := testProgramID.MarshalText()
	if err != nil {
		t.Fatalf("MarshalText() failed: %v", err)
	}
	var back Pubkey
	if err := back.UnmarshalText(text); err != nil {
		t.Fatalf("UnmarshalText() failed: %v", err)
	}
	if back != testProgramID {
		t.Fatalf("text round trip: got %s want %s", back, testProgramID)
	}
}
