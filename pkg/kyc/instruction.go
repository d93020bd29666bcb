package kyc

import (
	"bytes"
	"fmt"

	"github.com/chainsafe/kyc-ledger/pkg/ledger"
	"github.com/chainsafe/kyc-ledger/pkg/ledger/runtime"
)

// StoreUserKycDiscriminator selects the store_user_kyc instruction.
var StoreUserKycDiscriminator = discriminator("global", "store_user_kyc")

// EncodeStoreUserKyc builds the instruction data for store_user_kyc: the
// instruction discriminator followed by the borsh encoded profile.
func EncodeStoreUserKyc(p Profile) []byte {
	size := DiscriminatorLen + 4*4 + len(p.Name) + len(p.Email) + len(p.Mobile) + len(p.GovID) + 1
	w := &writer{buf: make([]byte, size)}
	// The buffer is sized for the exact payload, so writes cannot fail.
	_ = w.write(StoreUserKycDiscriminator[:])
	for _, s := range []string{p.Name, p.Email, p.Mobile, p.GovID} {
		_ = w.writeString(s)
	}
	_ = w.writeBool(p.FaceVerified)
	return w.buf
}

// DecodeStoreUserKyc parses store_user_kyc instruction data. Bytes after the last
// argument are ignored. Field capacities are not checked here; that happens when
// the record is built.
func DecodeStoreUserKyc(data []byte) (Profile, error) {
	if len(data) < DiscriminatorLen {
		return Profile{}, ErrInstructionMissing
	}
	if !bytes.Equal(data[:DiscriminatorLen], StoreUserKycDiscriminator[:]) {
		return Profile{}, ErrInstructionFallbackNotFound
	}

	r := &reader{data: data, off: DiscriminatorLen}
	var (
		p   Profile
		err error
	)
	for _, f := range []struct {
		name string
		dst  *string
	}{
		{"name", &p.Name},
		{"email", &p.Email},
		{"mobile", &p.Mobile},
		{"gov_id", &p.GovID},
	} {
		if *f.dst, err = r.readString(); err != nil {
			return Profile{}, fmt.Errorf("%w: %s: %v", ErrInstructionDidNotDeserialize, f.name, err)
		}
	}
	if p.FaceVerified, err = r.readBool(); err != nil {
		return Profile{}, fmt.Errorf("%w: face_verified: %v", ErrInstructionDidNotDeserialize, err)
	}
	return p, nil
}

// NewStoreUserKycInstruction builds an unsigned store_user_kyc instruction for
// authority, addressed at the record derived under programID. It also returns
// that address and its bump.
func NewStoreUserKycInstruction(
	programID, authority ledger.Pubkey,
	p Profile,
) (runtime.Instruction, ledger.Pubkey, uint8, error) {
	address, bump, err := DeriveAddress(authority, programID)
	if err != nil {
		return runtime.Instruction{}, ledger.Pubkey{}, 0, fmt.Errorf("derive record address: %w", err)
	}
	ix := runtime.Instruction{
		ProgramID: programID,
		Accounts: []runtime.AccountMeta{
			{Pubkey: address, IsWritable: true},
			{Pubkey: authority, IsSigner: true, IsWritable: true},
			{Pubkey: ledger.SystemProgramID},
		},
		Data: EncodeStoreUserKyc(p),
	}
	return ix, address, bump, nil
}
