// Package program implements the on-ledger KYC program and its single
// instruction, store_user_kyc.
package program

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/chainsafe/kyc-ledger/pkg/kyc"
	"github.com/chainsafe/kyc-ledger/pkg/ledger"
	"github.com/chainsafe/kyc-ledger/pkg/ledger/runtime"
)

// Errors raised while checking the instruction's accounts.
var (
	ErrConstraintSeeds   = runtime.NewError(2006, "ConstraintSeeds", "a seeds constraint was violated")
	ErrInvalidProgramID  = runtime.NewError(3008, "InvalidProgramId", "program id was not as expected")
	ErrNotEnoughAccounts = runtime.NewError(3005, "AccountNotEnoughKeys", "not enough account keys given to the instruction")
)

// Account positions in a store_user_kyc instruction.
const (
	AccountUserData = iota
	AccountAuthority
	AccountSystemProgram
	accountCount
)

// RecordHandle identifies a stored record.
type RecordHandle struct {
	Address   ledger.Pubkey
	Bump      uint8
	Authority ledger.Pubkey
}

// Program is the KYC program. It keeps no state of its own.
type Program struct {
	id     ledger.Pubkey
	logger *zap.Logger
}

// New creates the program. Without WithProgramID it runs under kyc.ProgramID.
func New(opts ...Option) *Program {
	s := applyOptions(opts)
	return &Program{id: s.programID, logger: s.logger}
}

func (p *Program) ID() ledger.Pubkey { return p.id }
func (p *Program) Name() string      { return "bnpl_kyc" }

// Process dispatches instruction data to store_user_kyc.
func (p *Program) Process(ic *runtime.InvokeContext, data []byte) error {
	profile, err := kyc.DecodeStoreUserKyc(data)
	if err != nil {
		return err
	}
	_, err = p.StoreUserKyc(ic, profile)
	return err
}

// StoreUserKyc creates the record of the signing authority. It fails without
// side effects when a record already exists, when the authority cannot pay for
// the allocation or when a field is longer than its reserved capacity.
func (p *Program) StoreUserKyc(ic *runtime.InvokeContext, profile kyc.Profile) (*RecordHandle, error) {
	accounts := ic.Accounts()
	if len(accounts) < accountCount {
		return nil, fmt.Errorf("%w: got %d, need %d", ErrNotEnoughAccounts, len(accounts), accountCount)
	}
	userData := accounts[AccountUserData]
	authority := accounts[AccountAuthority]
	systemProgram := accounts[AccountSystemProgram]

	if !authority.IsSigner {
		return nil, fmt.Errorf("%w: authority %s", runtime.ErrSignatureMissing, authority.Pubkey)
	}
	if systemProgram.Pubkey != ledger.SystemProgramID {
		return nil, fmt.Errorf("%w: system_program is %s", ErrInvalidProgramID, systemProgram.Pubkey)
	}

	address, bump, err := kyc.DeriveAddress(authority.Pubkey, p.id)
	if err != nil {
		return nil, fmt.Errorf("derive record address: %w", err)
	}
	if userData.Pubkey != address {
		return nil, fmt.Errorf("%w: user_data is %s, expected %s", ErrConstraintSeeds, userData.Pubkey, address)
	}

	if err := profile.Validate(); err != nil {
		return nil, err
	}
	record, err := kyc.Encode(kyc.NewUserKycData(authority.Pubkey, profile))
	if err != nil {
		return nil, err
	}

	rent := ic.Rent().MinimumBalance(kyc.AccountSpace)
	seeds := append(kyc.Seeds(authority.Pubkey), []byte{bump})
	if err := ic.CreateAccount(authority.Pubkey, address, rent, kyc.AccountSpace, p.id, seeds); err != nil {
		return nil, err
	}
	if err := ic.WriteData(address, record); err != nil {
		return nil, err
	}

	p.logger.Debug("KYC record allocated",
		zap.String("authority", authority.Pubkey.String()),
		zap.String("address", address.String()),
		zap.Uint8("bump", bump),
	)

	return &RecordHandle{Address: address, Bump: bump, Authority: authority.Pubkey}, nil
}
