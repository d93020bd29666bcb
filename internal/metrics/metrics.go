package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// TransactionsTotal counts executed transactions by program and outcome
	TransactionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ledger_transactions_total",
			Help: "Total number of transactions executed by the runtime",
		},
		[]string{"program", "status"},
	)

	// TransactionDuration tracks the time a transaction holds the sequencer
	TransactionDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "ledger_transaction_duration_seconds",
			Help:    "Transaction execution duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"program"},
	)

	// ProgramErrors counts failed transactions by ledger error name
	ProgramErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ledger_program_errors_total",
			Help: "Total number of transactions aborted with a ledger error",
		},
		[]string{"program", "error"},
	)

	// AccountsCreated counts allocations by owning program
	AccountsCreated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ledger_accounts_created_total",
			Help: "Total number of accounts allocated",
		},
		[]string{"owner"},
	)

	// LamportsAirdropped counts lamports credited by the faucet
	LamportsAirdropped = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "ledger_faucet_lamports_total",
			Help: "Total lamports credited through the faucet",
		},
	)

	// KYCRecordsStored counts successfully stored identity records
	KYCRecordsStored = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kyc_records_stored_total",
			Help: "Total number of KYC records stored",
		},
		[]string{"face_verified"},
	)

	// KYCRentPaid tracks the lamports charged per stored record
	KYCRentPaid = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "kyc_rent_paid_lamports",
			Help:    "Lamports paid by the authority to allocate a KYC record",
			Buckets: []float64{1e6, 2e6, 3e6, 4e6, 5e6, 1e7},
		},
	)
)
