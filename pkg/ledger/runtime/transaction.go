package runtime

import (
	"crypto/ed25519"
	"fmt"

	"github.com/chainsafe/kyc-ledger/pkg/ledger"
)

// AccountMeta describes how an instruction touches an account.
type AccountMeta struct {
	Pubkey     ledger.Pubkey
	IsSigner   bool
	IsWritable bool
}

// Instruction routes data and accounts to one program.
type Instruction struct {
	ProgramID ledger.Pubkey
	Accounts  []AccountMeta
	Data      []byte
}

// Message returns the bytes every signer of the instruction signs:
// the program id followed by the instruction data.
func (ix *Instruction) Message() []byte {
	msg := make([]byte, 0, ledger.PubkeyLength+len(ix.Data))
	msg = append(msg, ix.ProgramID[:]...)
	return append(msg, ix.Data...)
}

// Transaction is a signed instruction submitted to the runtime.
type Transaction struct {
	Instruction Instruction
	Signatures  map[ledger.Pubkey][]byte
}

// NewTransaction creates an unsigned transaction for ix.
func NewTransaction(ix Instruction) *Transaction {
	return &Transaction{
		Instruction: ix,
		Signatures:  make(map[ledger.Pubkey][]byte),
	}
}

// Sign adds an ed25519 signature for the key's public half.
func (tx *Transaction) Sign(key ed25519.PrivateKey) error {
	pub, err := ledger.PubkeyFromBytes(key.Public().(ed25519.PublicKey))
	if err != nil {
		return err
	}
	tx.AddSignature(pub, ed25519.Sign(key, tx.Instruction.Message()))
	return nil
}

// AddSignature attaches a detached signature produced elsewhere (e.g. a wallet).
func (tx *Transaction) AddSignature(signer ledger.Pubkey, sig []byte) {
	if tx.Signatures == nil {
		tx.Signatures = make(map[ledger.Pubkey][]byte)
	}
	tx.Signatures[signer] = sig
}

// verifySignatures checks that every account flagged as signer carries a valid signature.
func (tx *Transaction) verifySignatures() error {
	msg := tx.Instruction.Message()
	for _, meta := range tx.Instruction.Accounts {
		if !meta.IsSigner {
			continue
		}
		sig, ok := tx.Signatures[meta.Pubkey]
		if !ok || len(sig) == 0 {
			return fmt.Errorf("%w: no signature for %s", ErrSignatureMissing, meta.Pubkey)
		}
		if len(sig) != ed25519.SignatureSize || !ed25519.Verify(meta.Pubkey[:], msg, sig) {
			return fmt.Errorf("%w: signature verification failed for %s", ErrSignatureMissing, meta.Pubkey)
		}
	}
	return nil
}
