package kyc

import (
	"bytes"
	"crypto/sha256"
	"fmt"
)

// DataLen is the serialized size of a record body.
const DataLen = 32 + // authority
	4 + MaxNameLen +
	4 + MaxEmailLen +
	4 + MaxMobileLen +
	4 + MaxGovIDLen +
	1 // face_verified

// DiscriminatorLen is the size of the type tag in front of every record.
const DiscriminatorLen = 8

// AccountSpace is the fixed allocation for a record, whatever its contents.
const AccountSpace = DiscriminatorLen + DataLen

// AccountDiscriminator tags account data holding a UserKycData.
var AccountDiscriminator = discriminator("account", "UserKycData")

func discriminator(namespace, name string) [DiscriminatorLen]byte {
	sum := sha256.Sum256([]byte(namespace + ":" + name))
	var d [DiscriminatorLen]byte
	copy(d[:], sum[:DiscriminatorLen])
	return d
}

// Encode serializes d into exactly AccountSpace bytes. Capacity the strings do
// not use is left as zero padding at the end.
func Encode(d *UserKycData) ([]byte, error) {
	if err := d.profile.Validate(); err != nil {
		return nil, err
	}

	w := &writer{buf: make([]byte, AccountSpace)}
	if err := w.write(AccountDiscriminator[:]); err != nil {
		return nil, err
	}
	if err := w.write(d.authority[:]); err != nil {
		return nil, err
	}
	for _, s := range []string{d.profile.Name, d.profile.Email, d.profile.Mobile, d.profile.GovID} {
		if err := w.writeString(s); err != nil {
			return nil, err
		}
	}
	if err := w.writeBool(d.profile.FaceVerified); err != nil {
		return nil, err
	}
	return w.buf, nil
}

// Decode parses account data written by Encode. Trailing padding is ignored.
func Decode(data []byte) (*UserKycData, error) {
	if len(data) < DiscriminatorLen {
		return nil, fmt.Errorf("%w: %d bytes of account data", ErrAccountDiscriminatorNotFound, len(data))
	}
	if !bytes.Equal(data[:DiscriminatorLen], AccountDiscriminator[:]) {
		return nil, ErrAccountDiscriminatorMismatch
	}

	r := &reader{data: data, off: DiscriminatorLen}
	authority, err := r.readPubkey()
	if err != nil {
		return nil, fmt.Errorf("%w: authority: %v", ErrAccountDidNotDeserialize, err)
	}

	var p Profile
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
			return nil, fmt.Errorf("%w: %s: %v", ErrAccountDidNotDeserialize, f.name, err)
		}
	}
	if p.FaceVerified, err = r.readBool(); err != nil {
		return nil, fmt.Errorf("%w: face_verified: %v", ErrAccountDidNotDeserialize, err)
	}

	return NewUserKycData(authority, p), nil
}
