package runtime

import (
	"context"
	"errors"
	"fmt"

	"github.com/chainsafe/kyc-ledger/pkg/ledger"
)

// InvokeContext is the view a program gets of the ledger while it executes.
// Reads see the program's own earlier writes; nothing reaches the store until
// the program returns successfully.
type InvokeContext struct {
	ctx       context.Context
	store     AccountStore
	programID ledger.Pubkey
	accounts  []AccountMeta
	rent      Rent

	overlay map[ledger.Pubkey]*overlayEntry
	order   []ledger.Pubkey
}

type overlayEntry struct {
	account      *Account
	existed      bool
	prevLamports uint64
	prevOwner    ledger.Pubkey
	dirty        bool
}

func newInvokeContext(ctx context.Context, store AccountStore, ix *Instruction, rent Rent) *InvokeContext {
	return &InvokeContext{
		ctx:       ctx,
		store:     store,
		programID: ix.ProgramID,
		accounts:  ix.Accounts,
		rent:      rent,
		overlay:   make(map[ledger.Pubkey]*overlayEntry),
	}
}

// ProgramID is the id of the executing program.
func (ic *InvokeContext) ProgramID() ledger.Pubkey { return ic.programID }

// Accounts returns the instruction's account metas in order.
func (ic *InvokeContext) Accounts() []AccountMeta { return ic.accounts }

// Rent returns the rent parameters in force.
func (ic *InvokeContext) Rent() Rent { return ic.rent }

// load reads an account into the overlay. Addresses with no stored account read
// as empty system-owned accounts.
func (ic *InvokeContext) load(address ledger.Pubkey) (*overlayEntry, error) {
	if entry, ok := ic.overlay[address]; ok {
		return entry, nil
	}

	acc, err := ic.store.GetAccount(ic.ctx, address)
	existed := true
	if errors.Is(err, ErrAccountNotFound) {
		acc = &Account{Address: address, Owner: ledger.SystemProgramID}
		existed = false
	} else if err != nil {
		return nil, fmt.Errorf("load account %s: %w", address, err)
	}

	entry := &overlayEntry{
		account:      acc.Clone(),
		existed:      existed,
		prevLamports: acc.Lamports,
		prevOwner:    acc.Owner,
	}
	ic.overlay[address] = entry
	ic.order = append(ic.order, address)
	return entry, nil
}

func (ic *InvokeContext) meta(address ledger.Pubkey) (AccountMeta, bool) {
	for _, m := range ic.accounts {
		if m.Pubkey == address {
			return m, true
		}
	}
	return AccountMeta{}, false
}

// CreateAccount is the system program's create instruction, invoked by the executing
// program. payer funds the new account with lamports and must have signed the
// transaction. address must either have signed as well or be the program derived
// address of signerSeeds under the executing program.
func (ic *InvokeContext) CreateAccount(
	payer, address ledger.Pubkey,
	lamports, space uint64,
	owner ledger.Pubkey,
	signerSeeds [][]byte,
) error {
	payerMeta, ok := ic.meta(payer)
	if !ok || !payerMeta.IsSigner {
		return fmt.Errorf("%w: payer %s", ErrSignatureMissing, payer)
	}
	if !payerMeta.IsWritable {
		return fmt.Errorf("%w: payer %s", ErrAccountNotWritable, payer)
	}

	targetMeta, ok := ic.meta(address)
	if !ok || !targetMeta.IsWritable {
		return fmt.Errorf("%w: new account %s", ErrAccountNotWritable, address)
	}
	if !targetMeta.IsSigner {
		derived, err := ledger.CreateProgramAddress(signerSeeds, ic.programID)
		if err != nil || derived != address {
			return fmt.Errorf("%w: new account %s is not derived from the signer seeds", ErrSignatureMissing, address)
		}
	}

	if space > MaxPermittedDataLength {
		return fmt.Errorf("%w: %d bytes", ErrInvalidDataLength, space)
	}

	target, err := ic.load(address)
	if err != nil {
		return err
	}
	if target.account.InUse() {
		return fmt.Errorf("%w: %s", ErrAddressAlreadyInUse, address)
	}

	from, err := ic.load(payer)
	if err != nil {
		return err
	}

	// A pre-funded address only needs the shortfall.
	required := lamports
	if target.account.Lamports >= required {
		required = 0
	} else {
		required -= target.account.Lamports
	}
	if from.account.Lamports < required {
		return fmt.Errorf("%w: payer %s has %d lamports, needs %d",
			ErrInsufficientFunds, payer, from.account.Lamports, required)
	}

	if required > 0 {
		from.account.Lamports -= required
		from.dirty = true
	}

	target.account.Lamports += required
	target.account.Owner = owner
	target.account.Data = make([]byte, space)
	target.dirty = true

	return nil
}

// WriteData copies data into the start of an account owned by the executing program.
// The account keeps its allocated size; data longer than the allocation fails.
func (ic *InvokeContext) WriteData(address ledger.Pubkey, data []byte) error {
	meta, ok := ic.meta(address)
	if !ok || !meta.IsWritable {
		return fmt.Errorf("%w: %s", ErrAccountNotWritable, address)
	}

	entry, err := ic.load(address)
	if err != nil {
		return err
	}
	if entry.account.Owner != ic.programID {
		return fmt.Errorf("%w: %s is owned by %s", ErrIllegalOwner, address, entry.account.Owner)
	}
	if len(data) > len(entry.account.Data) {
		return fmt.Errorf("%w: %d bytes into %d", ErrDataTooSmall, len(data), len(entry.account.Data))
	}

	copy(entry.account.Data, data)
	entry.dirty = true
	return nil
}

// changes lists the writes to commit: allocations first, then the rest, each in
// first-touch order. Stores check changes in order, so a lost allocation race
// surfaces as ErrAddressAlreadyInUse ahead of any stale payer balance.
func (ic *InvokeContext) changes() []AccountChange {
	var allocs, rest []AccountChange
	for _, addr := range ic.order {
		entry := ic.overlay[addr]
		if !entry.dirty {
			continue
		}
		kind := ChangeUpdate
		if !entry.existed {
			kind = ChangeCreate
		}
		c := AccountChange{
			Kind:         kind,
			Account:      entry.account.Clone(),
			PrevLamports: entry.prevLamports,
			PrevOwner:    entry.prevOwner,
		}
		if c.Allocates() {
			allocs = append(allocs, c)
		} else {
			rest = append(rest, c)
		}
	}
	return append(allocs, rest...)
}
