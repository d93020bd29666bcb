package runtime

import (
	"context"
	"errors"

	"github.com/chainsafe/kyc-ledger/pkg/ledger"
)

// ErrAccountNotFound is returned by an AccountStore when no account lives at an address.
var ErrAccountNotFound = errors.New("account not found")

// Account is the persisted state behind an address.
type Account struct {
	Address  ledger.Pubkey
	Lamports uint64
	Owner    ledger.Pubkey
	Data     []byte
}

// InUse reports whether the address already holds an allocation that a create
// must not overwrite.
func (a *Account) InUse() bool {
	return len(a.Data) > 0 || !a.Owner.IsZero()
}

// Clone returns a deep copy so overlay writes never alias store state.
func (a *Account) Clone() *Account {
	if a == nil {
		return nil
	}
	out := *a
	if a.Data != nil {
		out.Data = make([]byte, len(a.Data))
		copy(out.Data, a.Data)
	}
	return &out
}

// ChangeKind tells the store how to apply an AccountChange.
type ChangeKind int

const (
	// ChangeCreate inserts a new account and must fail with ErrAddressAlreadyInUse
	// if the address is already taken.
	ChangeCreate ChangeKind = iota
	// ChangeUpdate overwrites an existing account, guarded by PrevLamports.
	ChangeUpdate
)

func (k ChangeKind) String() string {
	switch k {
	case ChangeCreate:
		return "create"
	case ChangeUpdate:
		return "update"
	default:
		return "unknown"
	}
}

// AccountChange is a single write produced by a successful transaction.
type AccountChange struct {
	Kind    ChangeKind
	Account *Account
	// PrevLamports and PrevOwner are what the transaction observed when it read the
	// account. Stores reject an update when either has changed since.
	PrevLamports uint64
	PrevOwner    ledger.Pubkey
}

// Allocates reports whether the change turns an address the transaction saw as
// unallocated into an allocated account. When such a change loses a race to
// another allocation, stores report ErrAddressAlreadyInUse rather than
// ErrConcurrentUpdate.
func (c AccountChange) Allocates() bool {
	return c.PrevOwner.IsZero() && c.Account != nil && c.Account.InUse()
}

// AccountStore is the durable account database behind the runtime.
// Apply must be all-or-nothing.
//
//go:generate mockery --name AccountStore --output mocks --outpkg mocks --filename mock_account_store.go --with-expecter
type AccountStore interface {
	GetAccount(ctx context.Context, address ledger.Pubkey) (*Account, error)
	Apply(ctx context.Context, changes []AccountChange) error
}
