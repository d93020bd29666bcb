package program

import (
	"go.uber.org/zap"

	"github.com/chainsafe/kyc-ledger/pkg/kyc"
	"github.com/chainsafe/kyc-ledger/pkg/ledger"
)

type settings struct {
	logger    *zap.Logger
	programID ledger.Pubkey
}

// Option configures the program.
type Option func(*settings)

// WithLogger sets a custom logger for the program.
func WithLogger(l *zap.Logger) Option {
	return func(s *settings) { s.logger = l }
}

// WithProgramID deploys the program under a different id, e.g. on a private ledger.
func WithProgramID(id ledger.Pubkey) Option {
	return func(s *settings) { s.programID = id }
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
