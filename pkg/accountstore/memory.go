package accountstore

import (
	"context"
	"fmt"
	"sync"

	"github.com/chainsafe/kyc-ledger/pkg/ledger"
	"github.com/chainsafe/kyc-ledger/pkg/ledger/runtime"
)

type memoryStore struct {
	mu       sync.RWMutex
	accounts map[ledger.Pubkey]*runtime.Account
}

// NewMemoryStore creates an empty in-memory account store.
func NewMemoryStore() *memoryStore {
	return &memoryStore{accounts: make(map[ledger.Pubkey]*runtime.Account)}
}

func (s *memoryStore) GetAccount(_ context.Context, address ledger.Pubkey) (*runtime.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	acc, ok := s.accounts[address]
	if !ok {
		return nil, runtime.ErrAccountNotFound
	}
	return acc.Clone(), nil
}

// Apply checks every change against the current state before writing any of them.
func (s *memoryStore) Apply(_ context.Context, changes []runtime.AccountChange) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, c := range changes {
		if c.Account == nil {
			return fmt.Errorf("nil account in %s change", c.Kind)
		}
		current, exists := s.accounts[c.Account.Address]
		switch c.Kind {
		case runtime.ChangeCreate:
			if exists {
				return fmt.Errorf("%w: %s", runtime.ErrAddressAlreadyInUse, c.Account.Address)
			}
		case runtime.ChangeUpdate:
			if !exists || current.Lamports != c.PrevLamports || current.Owner != c.PrevOwner {
				if exists && c.Allocates() && current.InUse() {
					return fmt.Errorf("%w: %s", runtime.ErrAddressAlreadyInUse, c.Account.Address)
				}
				return fmt.Errorf("%w: %s", runtime.ErrConcurrentUpdate, c.Account.Address)
			}
		default:
			return fmt.Errorf("unsupported change kind %d", c.Kind)
		}
	}

	for _, c := range changes {
		s.accounts[c.Account.Address] = c.Account.Clone()
	}
	return nil
}

// Len returns the number of stored accounts.
func (s *memoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.accounts)
}
