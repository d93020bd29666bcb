// Package runtime executes signed instructions against an account store.
//
// It plays the part of the ledger for the programs in this repository: it verifies
// signatures, orders transactions, funds and allocates accounts through its built-in
// system program, and commits each transaction's writes atomically or not at all.
package runtime

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/chainsafe/kyc-ledger/internal/metrics"
	"github.com/chainsafe/kyc-ledger/pkg/ledger"
)

// Program is on-ledger logic addressed by a fixed id.
type Program interface {
	ID() ledger.Pubkey
	Name() string
	Process(ic *InvokeContext, data []byte) error
}

// Receipt describes a committed transaction.
type Receipt struct {
	TxID      uuid.UUID
	ProgramID ledger.Pubkey
	Changes   []AccountChange
	Duration  time.Duration
}

// Runtime executes transactions one at a time.
type Runtime struct {
	store    AccountStore
	logger   *zap.Logger
	rent     Rent
	programs map[ledger.Pubkey]Program

	// seq gives transactions a total order inside this process. Stores add their
	// own guards for writers in other processes.
	seq sync.Mutex
}

// New creates a runtime over store.
func New(store AccountStore, opts ...Option) *Runtime {
	s := applyOptions(opts)
	r := &Runtime{
		store:    store,
		logger:   s.logger,
		rent:     s.rent,
		programs: make(map[ledger.Pubkey]Program),
	}
	for _, p := range s.programs {
		r.programs[p.ID()] = p
	}
	return r
}

// Rent returns the rent parameters used for allocations.
func (r *Runtime) Rent() Rent {
	return r.rent
}

// Execute verifies tx, runs its instruction and commits the resulting writes.
// On any error nothing is written.
func (r *Runtime) Execute(ctx context.Context, tx *Transaction) (*Receipt, error) {
	if tx == nil {
		return nil, fmt.Errorf("nil transaction")
	}
	ix := &tx.Instruction

	program, ok := r.programs[ix.ProgramID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownProgram, ix.ProgramID)
	}
	name := program.Name()

	if err := tx.verifySignatures(); err != nil {
		r.recordFailure(name, err)
		return nil, err
	}

	r.seq.Lock()
	defer r.seq.Unlock()

	start := time.Now()
	ic := newInvokeContext(ctx, r.store, ix, r.rent)
	if err := program.Process(ic, ix.Data); err != nil {
		r.recordFailure(name, err)
		return nil, err
	}

	changes := ic.changes()
	if len(changes) > 0 {
		if err := r.store.Apply(ctx, changes); err != nil {
			r.recordFailure(name, err)
			return nil, fmt.Errorf("commit transaction: %w", err)
		}
	}

	receipt := &Receipt{
		TxID:      uuid.New(),
		ProgramID: ix.ProgramID,
		Changes:   changes,
		Duration:  time.Since(start),
	}

	for _, c := range changes {
		if c.Kind == ChangeCreate || c.PrevOwner != c.Account.Owner {
			metrics.AccountsCreated.WithLabelValues(c.Account.Owner.String()).Inc()
		}
	}
	metrics.TransactionsTotal.WithLabelValues(name, "success").Inc()
	metrics.TransactionDuration.WithLabelValues(name).Observe(receipt.Duration.Seconds())

	r.logger.Debug("Transaction committed",
		zap.String("tx_id", receipt.TxID.String()),
		zap.String("program", name),
		zap.Int("changes", len(changes)),
		zap.Duration("duration", receipt.Duration),
	)
	return receipt, nil
}

// GetAccount returns the committed state of an account.
func (r *Runtime) GetAccount(ctx context.Context, address ledger.Pubkey) (*Account, error) {
	return r.store.GetAccount(ctx, address)
}

// Airdrop credits lamports to address, creating a system account if none exists.
func (r *Runtime) Airdrop(ctx context.Context, address ledger.Pubkey, lamports uint64) error {
	if lamports == 0 {
		return fmt.Errorf("airdrop amount must be positive")
	}

	r.seq.Lock()
	defer r.seq.Unlock()

	acc, err := r.store.GetAccount(ctx, address)
	var change AccountChange
	switch {
	case errors.Is(err, ErrAccountNotFound):
		change = AccountChange{
			Kind:    ChangeCreate,
			Account: &Account{Address: address, Lamports: lamports, Owner: ledger.SystemProgramID},
		}
	case err != nil:
		return fmt.Errorf("load account %s: %w", address, err)
	default:
		if acc.Lamports > ^uint64(0)-lamports {
			return fmt.Errorf("airdrop to %s overflows balance", address)
		}
		updated := acc.Clone()
		updated.Lamports += lamports
		change = AccountChange{
			Kind:         ChangeUpdate,
			Account:      updated,
			PrevLamports: acc.Lamports,
			PrevOwner:    acc.Owner,
		}
	}

	if err := r.store.Apply(ctx, []AccountChange{change}); err != nil {
		return fmt.Errorf("commit airdrop: %w", err)
	}

	metrics.LamportsAirdropped.Add(float64(lamports))
	r.logger.Info("Airdrop committed",
		zap.String("address", address.String()),
		zap.Uint64("lamports", lamports),
	)
	return nil
}

func (r *Runtime) recordFailure(program string, err error) {
	metrics.TransactionsTotal.WithLabelValues(program, "failed").Inc()
	var le *Error
	if errors.As(err, &le) {
		metrics.ProgramErrors.WithLabelValues(program, le.Name).Inc()
	} else {
		metrics.ProgramErrors.WithLabelValues(program, "internal").Inc()
	}
}
