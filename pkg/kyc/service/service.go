package service

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"strconv"

	"github.com/mr-tron/base58"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/chainsafe/kyc-ledger/internal/metrics"
	apperrors "github.com/chainsafe/kyc-ledger/pkg/app/errors"
	"github.com/chainsafe/kyc-ledger/pkg/kyc"
	"github.com/chainsafe/kyc-ledger/pkg/kyc/program"
	"github.com/chainsafe/kyc-ledger/pkg/ledger"
	"github.com/chainsafe/kyc-ledger/pkg/ledger/runtime"
)

// lamportsPerSOL scales lamport amounts for display.
const lamportsPerSOL = 9

var (
	ErrFaucetDisabled     = errors.New("faucet is disabled")
	ErrFaucetLimitReached = errors.New("airdrop exceeds faucet limit")
)

// Ledger is the narrow runtime interface the KYC service needs.
//
//go:generate mockery --name Ledger --output mocks --outpkg mocks --filename mock_ledger.go --with-expecter
type Ledger interface {
	Execute(ctx context.Context, tx *runtime.Transaction) (*runtime.Receipt, error)
	GetAccount(ctx context.Context, address ledger.Pubkey) (*runtime.Account, error)
	Airdrop(ctx context.Context, address ledger.Pubkey, lamports uint64) error
}

// Service defines the KYC record operations exposed to clients
//
//go:generate mockery --name Service --output mocks --outpkg mocks --filename mock_service.go --with-expecter
type Service interface {
	StoreUserKyc(ctx context.Context, req *StoreRequest) (*StoreResponse, error)
	DeriveAddress(ctx context.Context, authority string) (*AddressResponse, error)
	GetAccount(ctx context.Context, address string) (*AccountResponse, error)
	Airdrop(ctx context.Context, req *AirdropRequest) (*AirdropResponse, error)
}

type kycService struct {
	ledger      Ledger
	programID   ledger.Pubkey
	faucetLimit uint64
	logger      *zap.Logger
}

// NewService creates a new KYC service on top of a ledger runtime
func NewService(l Ledger, opts ...Option) Service {
	s := applyOptions(opts)
	return &kycService{
		ledger:      l,
		programID:   s.programID,
		faucetLimit: s.faucetLimit,
		logger:      s.logger,
	}
}

// StoreUserKyc submits a store_user_kyc transaction signed by the authority.
//
// The service never holds the authority's key: it rebuilds the exact instruction
// the authority signed and attaches the supplied signature, so a request whose
// fields differ from what was signed fails signature verification.
func (s *kycService) StoreUserKyc(ctx context.Context, req *StoreRequest) (*StoreResponse, error) {
	authority, err := ledger.ParsePubkey(req.Authority)
	if err != nil {
		return nil, apperrors.BadRequestError(err, "invalid authority")
	}
	if req.Signature == "" {
		return nil, apperrors.UnAuthorizedError(runtime.ErrSignatureMissing, "signature required")
	}
	sig, err := base58.Decode(req.Signature)
	if err != nil {
		return nil, apperrors.BadRequestError(err, "invalid signature encoding")
	}

	profile := kyc.Profile{
		Name:         req.Name,
		Email:        req.Email,
		Mobile:       req.Mobile,
		GovID:        req.GovID,
		FaceVerified: req.FaceVerified,
	}
	ix, address, bump, err := kyc.NewStoreUserKycInstruction(s.programID, authority, profile)
	if err != nil {
		return nil, apperrors.GeneralError(err)
	}
	tx := runtime.NewTransaction(ix)
	tx.AddSignature(authority, sig)

	receipt, err := s.ledger.Execute(ctx, tx)
	if err != nil {
		return nil, toServiceError(err)
	}

	rent := lamportsPaid(receipt.Changes, authority)
	s.logger.Debug("KYC record committed",
		zap.String("tx_id", receipt.TxID.String()),
		zap.String("address", address.String()),
		zap.Int("changes", len(receipt.Changes)),
		zap.Duration("duration", receipt.Duration),
	)
	metrics.KYCRecordsStored.WithLabelValues(strconv.FormatBool(profile.FaceVerified)).Inc()
	metrics.KYCRentPaid.Observe(float64(rent))

	return &StoreResponse{
		Address:      address.String(),
		Bump:         bump,
		Authority:    authority.String(),
		TxID:         receipt.TxID.String(),
		RentLamports: rent,
		RentSOL:      lamportsToSOL(rent),
	}, nil
}

// DeriveAddress returns where the authority's record lives, whether or not it exists yet.
func (s *kycService) DeriveAddress(_ context.Context, authority string) (*AddressResponse, error) {
	key, err := ledger.ParsePubkey(authority)
	if err != nil {
		return nil, apperrors.BadRequestError(err, "invalid authority")
	}
	address, bump, err := kyc.DeriveAddress(key, s.programID)
	if err != nil {
		return nil, apperrors.GeneralError(err)
	}
	return &AddressResponse{Authority: key.String(), Address: address.String(), Bump: bump}, nil
}

// GetAccount returns the raw account stored at address.
func (s *kycService) GetAccount(ctx context.Context, address string) (*AccountResponse, error) {
	key, err := ledger.ParsePubkey(address)
	if err != nil {
		return nil, apperrors.BadRequestError(err, "invalid address")
	}
	acc, err := s.ledger.GetAccount(ctx, key)
	if err != nil {
		if errors.Is(err, runtime.ErrAccountNotFound) {
			return nil, apperrors.ResourceNotFoundError(err, "account not found")
		}
		return nil, apperrors.GeneralError(err)
	}
	return toAccountResponse(acc), nil
}

// Airdrop funds an address from the development faucet.
func (s *kycService) Airdrop(ctx context.Context, req *AirdropRequest) (*AirdropResponse, error) {
	if s.faucetLimit == 0 {
		return nil, apperrors.NotSupportedError(ErrFaucetDisabled, "faucet is disabled")
	}
	key, err := ledger.ParsePubkey(req.Address)
	if err != nil {
		return nil, apperrors.BadRequestError(err, "invalid address")
	}
	if req.Lamports == 0 {
		return nil, apperrors.BadRequestError(nil, "lamports must be positive")
	}
	if req.Lamports > s.faucetLimit {
		return nil, apperrors.BadRequestError(ErrFaucetLimitReached,
			fmt.Sprintf("at most %d lamports per airdrop", s.faucetLimit))
	}

	if err := s.ledger.Airdrop(ctx, key, req.Lamports); err != nil {
		return nil, toServiceError(err)
	}
	acc, err := s.ledger.GetAccount(ctx, key)
	if err != nil {
		return nil, apperrors.GeneralError(err)
	}
	return &AirdropResponse{Address: key.String(), Lamports: acc.Lamports}, nil
}

// toServiceError maps ledger errors onto service categories. The ledger error text
// is returned to the caller because it names the failed check.
func toServiceError(err error) error {
	switch {
	case errors.Is(err, runtime.ErrAddressAlreadyInUse):
		return apperrors.ConflictError(err, "KYC record already exists for this authority")
	case errors.Is(err, runtime.ErrConcurrentUpdate):
		return apperrors.ConflictError(err, "ledger state changed during the transaction, retry")
	case errors.Is(err, runtime.ErrSignatureMissing):
		return apperrors.UnAuthorizedError(err, "authority signature missing or invalid")
	case errors.Is(err, runtime.ErrInsufficientFunds):
		return apperrors.PaymentRequiredError(err, "authority cannot pay for the record allocation")
	case errors.Is(err, kyc.ErrSerializationOverflow),
		errors.Is(err, kyc.ErrInstructionMissing),
		errors.Is(err, kyc.ErrInstructionDidNotDeserialize),
		errors.Is(err, kyc.ErrInstructionFallbackNotFound),
		errors.Is(err, program.ErrConstraintSeeds),
		errors.Is(err, program.ErrInvalidProgramID),
		errors.Is(err, program.ErrNotEnoughAccounts):
		return apperrors.BadRequestError(err, err.Error())
	default:
		return apperrors.GeneralError(err)
	}
}

// lamportsPaid is how much payer's balance dropped in a committed transaction.
// A pre-funded record address only costs the payer the shortfall.
func lamportsPaid(changes []runtime.AccountChange, payer ledger.Pubkey) uint64 {
	for _, c := range changes {
		if c.Account == nil || c.Account.Address != payer {
			continue
		}
		if c.PrevLamports > c.Account.Lamports {
			return c.PrevLamports - c.Account.Lamports
		}
		return 0
	}
	return 0
}

func toAccountResponse(acc *runtime.Account) *AccountResponse {
	data := acc.Data
	if data == nil {
		data = []byte{}
	}
	return &AccountResponse{
		Address:  acc.Address.String(),
		Owner:    acc.Owner.String(),
		Lamports: acc.Lamports,
		Data:     data,
	}
}

func lamportsToSOL(lamports uint64) string {
	return decimal.NewFromBigInt(new(big.Int).SetUint64(lamports), -lamportsPerSOL).String()
}
