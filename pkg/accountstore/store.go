// Package accountstore persists ledger accounts for the runtime.
//
// Two backends are provided: an in-memory map for tests and single-process
// development ledgers, and a Postgres store for anything that must survive a restart.
package accountstore

import (
	"fmt"

	"github.com/uptrace/bun"

	"github.com/chainsafe/kyc-ledger/pkg/ledger/runtime"
)

// Backend names accepted by New.
const (
	BackendMemory   = "memory"
	BackendPostgres = "postgres"
)

var (
	_ runtime.AccountStore = (*memoryStore)(nil)
	_ runtime.AccountStore = (*pgStore)(nil)
)

// New returns the store for backend. db is only used by the postgres backend.
func New(backend string, db *bun.DB) (runtime.AccountStore, error) {
	switch backend {
	case BackendMemory:
		return NewMemoryStore(), nil
	case BackendPostgres:
		if db == nil {
			return nil, fmt.Errorf("postgres account store requires a database connection")
		}
		return NewStore(db), nil
	default:
		return nil, fmt.Errorf("unknown account store backend %q", backend)
	}
}
