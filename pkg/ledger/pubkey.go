// Package ledger holds the primitive types shared by the ledger runtime and the programs
// it executes: 32-byte public keys, their base58 text form, and program derived addresses.
package ledger

import (
	"errors"
	"fmt"

	"github.com/mr-tron/base58"
)

// PubkeyLength is the size of an account address / ed25519 public key.
const PubkeyLength = 32

// ErrInvalidPubkey is returned when a string or byte slice is not a 32-byte public key.
var ErrInvalidPubkey = errors.New("invalid public key")

// Pubkey identifies an account on the ledger. It is either an ed25519 public key
// or a program derived address, which by construction has no private key.
type Pubkey [PubkeyLength]byte

// SystemProgramID owns every freshly funded account and performs allocations.
var SystemProgramID = Pubkey{}

// PubkeyFromBytes copies b into a Pubkey.
func PubkeyFromBytes(b []byte) (Pubkey, error) {
	var pk Pubkey
	if len(b) != PubkeyLength {
		return pk, fmt.Errorf("%w: expected %d bytes, got %d", ErrInvalidPubkey, PubkeyLength, len(b))
	}
	copy(pk[:], b)
	return pk, nil
}

// ParsePubkey decodes a base58 encoded public key.
func ParsePubkey(s string) (Pubkey, error) {
	if s == "" {
		return Pubkey{}, fmt.Errorf("%w: empty string", ErrInvalidPubkey)
	}
	raw, err := base58.Decode(s)
	if err != nil {
		return Pubkey{}, fmt.Errorf("%w: %v", ErrInvalidPubkey, err)
	}
	return PubkeyFromBytes(raw)
}

// MustParsePubkey is ParsePubkey for compile-time constants. It panics on bad input.
func MustParsePubkey(s string) Pubkey {
	pk, err := ParsePubkey(s)
	if err != nil {
		panic(err)
	}
	return pk
}

// String returns the base58 form.
func (p Pubkey) String() string {
	return base58.Encode(p[:])
}

// Bytes returns a copy of the key bytes.
func (p Pubkey) Bytes() []byte {
	out := make([]byte, PubkeyLength)
	copy(out, p[:])
	return out
}

// IsZero reports whether p is the all-zero key (the system program id).
func (p Pubkey) IsZero() bool {
	return p == Pubkey{}
}

// MarshalText implements encoding.TextMarshaler so keys render as base58 in JSON.
func (p Pubkey) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *Pubkey) UnmarshalText(text []byte) error {
	pk, err := ParsePubkey(string(text))
	if err != nil {
		return err
	}
	*p = pk
	return nil
}
