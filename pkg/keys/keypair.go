// Package keys generates, derives and stores the ed25519 keypairs that act as
// ledger authorities.
package keys

import (
	"crypto/ed25519"
	"crypto/rand"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"golang.org/x/crypto/hkdf"

	"github.com/chainsafe/kyc-ledger/pkg/ledger"
)

// KeyPair is an ed25519 signing key and the ledger address it controls
type KeyPair struct {
	PublicKey  ledger.Pubkey
	PrivateKey ed25519.PrivateKey // 64 bytes: seed || public key
}

// GenerateKeyPair creates a random keypair
func GenerateKeyPair() (*KeyPair, error) {
	_, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("failed to generate ed25519 keypair: %w", err)
	}
	return KeyPairFromPrivateKey(priv)
}

// DeriveKeyPair deterministically derives a keypair for label from a secret seed
// using HKDF with SHA-256. The same label and seed always give the same key.
func DeriveKeyPair(label string, secret []byte) (*KeyPair, error) {
	if len(secret) < 32 {
		return nil, fmt.Errorf("secret must be at least 32 bytes")
	}

	r := hkdf.New(sha256.New, secret, nil, []byte("kyc-authority-"+label))
	seed := make([]byte, ed25519.SeedSize)
	if _, err := io.ReadFull(r, seed); err != nil {
		return nil, fmt.Errorf("failed to derive key seed: %w", err)
	}
	return KeyPairFromPrivateKey(ed25519.NewKeyFromSeed(seed))
}

// KeyPairFromPrivateKey accepts a 32-byte seed or a 64-byte private key.
// A 64-byte key whose public half does not match its seed is rejected.
func KeyPairFromPrivateKey(key []byte) (*KeyPair, error) {
	var priv ed25519.PrivateKey
	switch len(key) {
	case ed25519.SeedSize:
		priv = ed25519.NewKeyFromSeed(key)
	case ed25519.PrivateKeySize:
		priv = ed25519.NewKeyFromSeed(key[:ed25519.SeedSize])
		if !priv.Public().(ed25519.PublicKey).Equal(ed25519.PublicKey(key[ed25519.SeedSize:])) {
			return nil, fmt.Errorf("private key public half does not match its seed")
		}
	default:
		return nil, fmt.Errorf("private key must be %d or %d bytes, got %d",
			ed25519.SeedSize, ed25519.PrivateKeySize, len(key))
	}

	pub, err := ledger.PubkeyFromBytes(priv.Public().(ed25519.PublicKey))
	if err != nil {
		return nil, err
	}
	return &KeyPair{PublicKey: pub, PrivateKey: priv}, nil
}

// Sign signs message with the private key
func (kp *KeyPair) Sign(message []byte) []byte {
	return ed25519.Sign(kp.PrivateKey, message)
}

// Verify checks signature against the public key
func (kp *KeyPair) Verify(message, signature []byte) bool {
	return ed25519.Verify(kp.PublicKey.Bytes(), message, signature)
}

// LoadKeyPair reads a keypair file: a JSON array of the 64 private key bytes,
// the format ledger wallets and CLIs write.
func LoadKeyPair(path string) (*KeyPair, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read keypair file: %w", err)
	}

	var raw []int
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse keypair file %s: %w", path, err)
	}
	key := make([]byte, len(raw))
	for i, v := range raw {
		if v < 0 || v > 255 {
			return nil, fmt.Errorf("keypair file %s: byte %d out of range", path, i)
		}
		key[i] = byte(v)
	}
	if len(key) != ed25519.PrivateKeySize {
		return nil, fmt.Errorf("keypair file %s holds %d bytes, want %d", path, len(key), ed25519.PrivateKeySize)
	}
	return KeyPairFromPrivateKey(key)
}

// SaveKeyPair writes kp to path in the LoadKeyPair format, readable only by the owner.
func SaveKeyPair(path string, kp *KeyPair) error {
	raw := make([]int, len(kp.PrivateKey))
	for i, b := range kp.PrivateKey {
		raw[i] = int(b)
	}
	data, err := json.Marshal(raw)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("failed to create keypair directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write keypair file: %w", err)
	}
	return nil
}
