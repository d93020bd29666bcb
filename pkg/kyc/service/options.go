package service

import (
	"go.uber.org/zap"

	"github.com/chainsafe/kyc-ledger/pkg/kyc"
	"github.com/chainsafe/kyc-ledger/pkg/ledger"
)

type settings struct {
	logger      *zap.Logger
	programID   ledger.Pubkey
	faucetLimit uint64
}

// Option configures the KYC service.
type Option func(*settings)

// WithLogger sets a custom logger for the service.
func WithLogger(l *zap.Logger) Option {
	return func(s *settings) { s.logger = l }
}

// WithProgramID targets a KYC program deployed under a non-default id.
func WithProgramID(id ledger.Pubkey) Option {
	return func(s *settings) { s.programID = id }
}

// WithFaucet enables airdrops of up to maxLamports per request.
func WithFaucet(maxLamports uint64) Option {
	return func(s *settings) { s.faucetLimit = maxLamports }
}

func applyOptions(opts []Option) settings {
	s := settings{logger: zap.NewNop(), programID: kyc.ProgramID}
	for _, opt := range opts {
		if opt != nil {
			opt(&s)
		}
	}
	if s.logger == nil {
		s.logger = zap.NewNop()
	}
	return s
}
