package ledger

import (
	"crypto/sha256"
	"errors"
	"fmt"

	"filippo.io/edwards25519"
)

const (
	// MaxSeeds is the maximum number of seeds (bump included) accepted for a derived address.
	MaxSeeds = 16
	// MaxSeedLength is the maximum length of a single seed.
	MaxSeedLength = 32

	pdaMarker = "ProgramDerivedAddress"
)

var (
	// ErrMaxSeedLengthExceeded is returned when too many or too long seeds are supplied.
	ErrMaxSeedLengthExceeded = errors.New("max seed length exceeded")
	// ErrInvalidSeeds is returned when the seeds hash onto the ed25519 curve.
	ErrInvalidSeeds = errors.New("provided seeds do not result in a valid address")
	// ErrNoViableBump is returned when every bump in [0, 255] produced an on-curve point.
	ErrNoViableBump = errors.New("unable to find a viable program address bump seed")
)

// CreateProgramAddress hashes seeds and programID into an address and rejects
// results that decode as an ed25519 point, since such an address could have a signer.
func CreateProgramAddress(seeds [][]byte, programID Pubkey) (Pubkey, error) {
	if len(seeds) > MaxSeeds {
		return Pubkey{}, fmt.Errorf("%w: %d seeds", ErrMaxSeedLengthExceeded, len(seeds))
	}

	h := sha256.New()
	for _, seed := range seeds {
		if len(seed) > MaxSeedLength {
			return Pubkey{}, fmt.Errorf("%w: seed of %d bytes", ErrMaxSeedLengthExceeded, len(seed))
		}
		h.Write(seed)
	}
	h.Write(programID[:])
	h.Write([]byte(pdaMarker))

	var addr Pubkey
	copy(addr[:], h.Sum(nil))

	if IsOnCurve(addr[:]) {
		return Pubkey{}, ErrInvalidSeeds
	}
	return addr, nil
}

// FindProgramAddress scans bump values from 255 downwards and returns the first
// off-curve address along with its bump. The result is a pure function of its inputs.
func FindProgramAddress(seeds [][]byte, programID Pubkey) (Pubkey, uint8, error) {
	if len(seeds) >= MaxSeeds {
		return Pubkey{}, 0, fmt.Errorf("%w: %d seeds leaves no room for bump", ErrMaxSeedLengthExceeded, len(seeds))
	}

	withBump := make([][]byte, len(seeds)+1)
	copy(withBump, seeds)

	for bump := 255; bump >= 0; bump-- {
		withBump[len(seeds)] = []byte{byte(bump)}
		addr, err := CreateProgramAddress(withBump, programID)
		if err == nil {
			return addr, uint8(bump), nil
		}
		if !errors.Is(err, ErrInvalidSeeds) {
			return Pubkey{}, 0, err
		}
	}
	return Pubkey{}, 0, ErrNoViableBump
}

// IsOnCurve reports whether b is the canonical encoding of a point on edwards25519.
func IsOnCurve(b []byte) bool {
	if len(b) != PubkeyLength {
		return false
	}
	_, err := new(edwards25519.Point).SetBytes(b)
	return err == nil
}
