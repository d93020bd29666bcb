// Package kyc defines the identity record kept for each authority and its on-ledger layout.
package kyc

import (
	"fmt"

	"github.com/chainsafe/kyc-ledger/pkg/ledger"
)

// ProgramID is the deployed address of the KYC program.
var ProgramID = ledger.MustParsePubkey("HA3v3eTLGokEfZU7acnJGn94Xv5TiRD8GBV4zr885JDj")

// Seed prefixes the authority key when deriving a record address.
const Seed = "user_kyc"

// Reserved capacity, in bytes, for each string field.
const (
	MaxNameLen   = 100
	MaxEmailLen  = 100
	MaxMobileLen = 20
	MaxGovIDLen  = 50
)

// Profile is the personal data an authority submits for its record.
type Profile struct {
	Name         string
	Email        string
	Mobile       string
	GovID        string
	FaceVerified bool
}

// Validate checks every string against its reserved capacity. The first field
// that does not fit is named in the returned ErrSerializationOverflow.
func (p Profile) Validate() error {
	fields := []struct {
		name  string
		value string
		limit int
	}{
		{"name", p.Name, MaxNameLen},
		{"email", p.Email, MaxEmailLen},
		{"mobile", p.Mobile, MaxMobileLen},
		{"gov_id", p.GovID, MaxGovIDLen},
	}
	for _, f := range fields {
		if len(f.value) > f.limit {
			return fmt.Errorf("%w: %s is %d bytes, capacity is %d",
				ErrSerializationOverflow, f.name, len(f.value), f.limit)
		}
	}
	return nil
}

// UserKycData is a stored identity record. It is created once and never changed,
// so it only exposes readers.
type UserKycData struct {
	authority ledger.Pubkey
	profile   Profile
}

// NewUserKycData binds a profile to the authority that signed for it.
func NewUserKycData(authority ledger.Pubkey, p Profile) *UserKycData {
	return &UserKycData{authority: authority, profile: p}
}

func (d *UserKycData) Authority() ledger.Pubkey { return d.authority }
func (d *UserKycData) Name() string             { return d.profile.Name }
func (d *UserKycData) Email() string            { return d.profile.Email }
func (d *UserKycData) Mobile() string           { return d.profile.Mobile }
func (d *UserKycData) GovID() string            { return d.profile.GovID }
func (d *UserKycData) FaceVerified() bool       { return d.profile.FaceVerified }

// Profile returns a copy of the record's personal data.
func (d *UserKycData) Profile() Profile { return d.profile }

// Seeds returns the derivation seeds of the record owned by authority.
func Seeds(authority ledger.Pubkey) [][]byte {
	return [][]byte{[]byte(Seed), authority.Bytes()}
}

// DeriveAddress returns the record address and bump for authority under programID.
// The result depends only on its inputs.
func DeriveAddress(authority, programID ledger.Pubkey) (ledger.Pubkey, uint8, error) {
	return ledger.FindProgramAddress(Seeds(authority), programID)
}
