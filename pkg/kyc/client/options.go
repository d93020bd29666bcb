package client

import (
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/chainsafe/kyc-ledger/pkg/kyc"
	"github.com/chainsafe/kyc-ledger/pkg/ledger"
)

const (
	defaultTimeout = 30 * time.Second
	defaultRetries = 3
)

type settings struct {
	httpClient *http.Client
	programID  ledger.Pubkey
	logger     *zap.Logger
	retries    uint64
}

// Option configures the client.
type Option func(*settings)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(c *http.Client) Option {
	return func(s *settings) { s.httpClient = c }
}

// WithProgramID targets a KYC program deployed under a non-default id.
// It must match the id the server runs, or signatures will not verify.
func WithProgramID(id ledger.Pubkey) Option {
	return func(s *settings) { s.programID = id }
}

// WithLogger sets a custom logger for the client.
func WithLogger(l *zap.Logger) Option {
	return func(s *settings) { s.logger = l }
}

// WithRetries sets how many times reads are retried after a transport error
// or a 5xx response. Writes are never retried.
func WithRetries(n uint64) Option {
	return func(s *settings) { s.retries = n }
}

func applyOptions(opts []Option) settings {
	s := settings{
		httpClient: &http.Client{Timeout: defaultTimeout},
		programID:  kyc.ProgramID,
		logger:     zap.NewNop(),
		retries:    defaultRetries,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&s)
		}
	}
	if s.logger == nil {
		s.logger = zap.NewNop()
	}
	if s.httpClient == nil {
		s.httpClient = &http.Client{Timeout: defaultTimeout}
	}
	return s
}
