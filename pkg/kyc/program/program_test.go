package program_test

import (
	"context"
	"crypto/ed25519"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/chainsafe/kyc-ledger/pkg/accountstore"
	"github.com/chainsafe/kyc-ledger/pkg/kyc"
	"github.com/chainsafe/kyc-ledger/pkg/kyc/program"
	"github.com/chainsafe/kyc-ledger/pkg/ledger"
	"github.com/chainsafe/kyc-ledger/pkg/ledger/runtime"
)

const funded = 10_000_000

var recordRent = runtime.DefaultRent.MinimumBalance(kyc.AccountSpace)

type harness struct {
	ctx context.Context
	rt  *runtime.Runtime
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	rt := runtime.New(accountstore.NewMemoryStore(), runtime.WithProgram(program.New()))
	return &harness{ctx: context.Background(), rt: rt}
}

func (h *harness) newAuthority(t *testing.T, seed byte, lamports uint64) (ed25519.PrivateKey, ledger.Pubkey) {
	t.Helper()
	s := make([]byte, ed25519.SeedSize)
	s[0] = seed
	priv := ed25519.NewKeyFromSeed(s)
	pub, err := ledger.PubkeyFromBytes(priv.Public().(ed25519.PublicKey))
	if err != nil {
		t.Fatalf("pubkey: %v", err)
	}
	if lamports > 0 {
		if err := h.rt.Airdrop(h.ctx, pub, lamports); err != nil {
			t.Fatalf("Airdrop() failed: %v", err)
		}
	}
	return priv, pub
}

func (h *harness) storeTx(t *testing.T, priv ed25519.PrivateKey, authority ledger.Pubkey, p kyc.Profile) (*runtime.Transaction, ledger.Pubkey) {
	t.Helper()
	ix, address, _, err := kyc.NewStoreUserKycInstruction(kyc.ProgramID, authority, p)
	if err != nil {
		t.Fatalf("NewStoreUserKycInstruction() failed: %v", err)
	}
	tx := runtime.NewTransaction(ix)
	if priv != nil {
		if err := tx.Sign(priv); err != nil {
			t.Fatalf("Sign() failed: %v", err)
		}
	}
	return tx, address
}

func (h *harness) balance(t *testing.T, addr ledger.Pubkey) uint64 {
	t.Helper()
	acc, err := h.rt.GetAccount(h.ctx, addr)
	if errors.Is(err, runtime.ErrAccountNotFound) {
		return 0
	}
	if err != nil {
		t.Fatalf("GetAccount() failed: %v", err)
	}
	return acc.Lamports
}

func (h *harness) requireAbsent(t *testing.T, addr ledger.Pubkey) {
	t.Helper()
	if _, err := h.rt.GetAccount(h.ctx, addr); !errors.Is(err, runtime.ErrAccountNotFound) {
		t.Fatalf("expected record %s to be absent, got %v", addr, err)
	}
}

func aliceProfile() kyc.Profile {
	return kyc.Profile{
		Name:         "Alice",
		Email:        "alice@example.com",
		Mobile:       "+15550100",
		GovID:        "P1234567",
		FaceVerified: true,
	}
}

func TestStoreUserKyc_Alice(t *testing.T) {
	h := newHarness(t)
	priv, authority := h.newAuthority(t, 1, funded)

	tx, address := h.storeTx(t, priv, authority, aliceProfile())
	if _, err := h.rt.Execute(h.ctx, tx); err != nil {
		t.Fatalf("Execute() failed: %v", err)
	}

	acc, err := h.rt.GetAccount(h.ctx, address)
	if err != nil {
		t.Fatalf("GetAccount() failed: %v", err)
	}
	if acc.Owner != kyc.ProgramID {
		t.Fatalf("record owner: got %s want %s", acc.Owner, kyc.ProgramID)
	}
	if len(acc.Data) != kyc.AccountSpace {
		t.Fatalf("record size: got %d want %d", len(acc.Data), kyc.AccountSpace)
	}
	if acc.Lamports != recordRent {
		t.Fatalf("record lamports: got %d want %d", acc.Lamports, recordRent)
	}

	record, err := kyc.Decode(acc.Data)
	if err != nil {
		t.Fatalf("Decode() failed: %v", err)
	}
	if record.Authority() != authority {
		t.Fatalf("authority: got %s want %s", record.Authority(), authority)
	}
	if record.Profile() != aliceProfile() {
		t.Fatalf("profile: got %+v", record.Profile())
	}

	if got := h.balance(t, authority); got != funded-recordRent {
		t.Fatalf("authority balance: got %d want %d", got, funded-recordRent)
	}
}

func TestStoreUserKyc_RepeatedCallFails(t *testing.T) {
	h := newHarness(t)
	priv, authority := h.newAuthority(t, 2, funded)

	tx, address := h.storeTx(t, priv, authority, aliceProfile())
	if _, err := h.rt.Execute(h.ctx, tx); err != nil {
		t.Fatalf("first Execute() failed: %v", err)
	}
	balance := h.balance(t, authority)

	second := aliceProfile()
	second.Name = "Mallory"
	second.FaceVerified = false
	tx, _ = h.storeTx(t, priv, authority, second)
	_, err := h.rt.Execute(h.ctx, tx)
	if !errors.Is(err, runtime.ErrAddressAlreadyInUse) {
		t.Fatalf("expected ErrAddressAlreadyInUse, got %v", err)
	}

	acc, _ := h.rt.GetAccount(h.ctx, address)
	record, err := kyc.Decode(acc.Data)
	if err != nil {
		t.Fatalf("Decode() failed: %v", err)
	}
	if record.Name() != "Alice" || !record.FaceVerified() {
		t.Fatalf("record was modified: %+v", record.Profile())
	}
	if got := h.balance(t, authority); got != balance {
		t.Fatalf("failed call charged the authority: %d -> %d", balance, got)
	}
}

func TestStoreUserKyc_CapacityRejection(t *testing.T) {
	h := newHarness(t)
	priv, authority := h.newAuthority(t, 3, funded)

	p := aliceProfile()
	p.GovID = strings.Repeat("9", 51)
	tx, address := h.storeTx(t, priv, authority, p)
	_, err := h.rt.Execute(h.ctx, tx)
	if !errors.Is(err, kyc.ErrSerializationOverflow) {
		t.Fatalf("expected ErrSerializationOverflow, got %v", err)
	}
	if !strings.Contains(err.Error(), "gov_id") {
		t.Fatalf("error should name gov_id: %v", err)
	}
	h.requireAbsent(t, address)
	if got := h.balance(t, authority); got != funded {
		t.Fatalf("rejected call charged the authority: %d", got)
	}

	// The authority can still store a valid record afterwards.
	tx, _ = h.storeTx(t, priv, authority, aliceProfile())
	if _, err := h.rt.Execute(h.ctx, tx); err != nil {
		t.Fatalf("Execute() after rejection failed: %v", err)
	}
}

func TestStoreUserKyc_MaxCapacityAccepted(t *testing.T) {
	h := newHarness(t)
	priv, authority := h.newAuthority(t, 4, funded)

	p := kyc.Profile{
		Name:   strings.Repeat("n", kyc.MaxNameLen),
		Email:  strings.Repeat("e", kyc.MaxEmailLen),
		Mobile: strings.Repeat("1", kyc.MaxMobileLen),
		GovID:  strings.Repeat("g", kyc.MaxGovIDLen),
	}
	tx, address := h.storeTx(t, priv, authority, p)
	if _, err := h.rt.Execute(h.ctx, tx); err != nil {
		t.Fatalf("Execute() failed: %v", err)
	}
	acc, _ := h.rt.GetAccount(h.ctx, address)
	if len(acc.Data) != kyc.AccountSpace {
		t.Fatalf("record size: got %d", len(acc.Data))
	}
}

func TestStoreUserKyc_InsufficientFunds(t *testing.T) {
	h := newHarness(t)
	priv, authority := h.newAuthority(t, 5, recordRent-1)

	tx, address := h.storeTx(t, priv, authority, aliceProfile())
	_, err := h.rt.Execute(h.ctx, tx)
	if !errors.Is(err, runtime.ErrInsufficientFunds) {
		t.Fatalf("expected ErrInsufficientFunds, got %v", err)
	}
	h.requireAbsent(t, address)
}

func TestStoreUserKyc_SignatureMissing(t *testing.T) {
	h := newHarness(t)
	_, authority := h.newAuthority(t, 6, funded)

	unsigned, address := h.storeTx(t, nil, authority, aliceProfile())
	if _, err := h.rt.Execute(h.ctx, unsigned); !errors.Is(err, runtime.ErrSignatureMissing) {
		t.Fatalf("expected ErrSignatureMissing, got %v", err)
	}

	// Authority not flagged as signer at all.
	notSigner, _ := h.storeTx(t, nil, authority, aliceProfile())
	notSigner.Instruction.Accounts[1].IsSigner = false
	_, err := h.rt.Execute(h.ctx, notSigner)
	if !errors.Is(err, runtime.ErrSignatureMissing) {
		t.Fatalf("expected ErrSignatureMissing, got %v", err)
	}
	if code, _ := runtime.Code(err); code != 3010 {
		t.Fatalf("expected code 3010, got %d", code)
	}
	h.requireAbsent(t, address)
}

func TestStoreUserKyc_AuthorityIntegrity(t *testing.T) {
	h := newHarness(t)
	alicePriv, alice := h.newAuthority(t, 7, funded)
	_, bob := h.newAuthority(t, 8, funded)

	// Alice signs, but targets the record address derived from Bob's key.
	tx, _ := h.storeTx(t, alicePriv, alice, aliceProfile())
	bobAddr, _, _ := kyc.DeriveAddress(bob, kyc.ProgramID)
	tx.Instruction.Accounts[0].Pubkey = bobAddr
	if err := tx.Sign(alicePriv); err != nil {
		t.Fatalf("Sign() failed: %v", err)
	}
	_, err := h.rt.Execute(h.ctx, tx)
	if !errors.Is(err, program.ErrConstraintSeeds) {
		t.Fatalf("expected ErrConstraintSeeds, got %v", err)
	}
	h.requireAbsent(t, bobAddr)
}

func TestStoreUserKyc_WrongSystemProgram(t *testing.T) {
	h := newHarness(t)
	priv, authority := h.newAuthority(t, 9, funded)

	tx, _ := h.storeTx(t, priv, authority, aliceProfile())
	tx.Instruction.Accounts[2].Pubkey = kyc.ProgramID
	if _, err := h.rt.Execute(h.ctx, tx); !errors.Is(err, program.ErrInvalidProgramID) {
		t.Fatalf("expected ErrInvalidProgramID, got %v", err)
	}
}

func TestStoreUserKyc_BadInstructionData(t *testing.T) {
	h := newHarness(t)
	priv, authority := h.newAuthority(t, 10, funded)

	tx, _ := h.storeTx(t, nil, authority, aliceProfile())
	tx.Instruction.Data[0] ^= 0xff
	if err := tx.Sign(priv); err != nil {
		t.Fatalf("Sign() failed: %v", err)
	}
	if _, err := h.rt.Execute(h.ctx, tx); !errors.Is(err, kyc.ErrInstructionFallbackNotFound) {
		t.Fatalf("expected ErrInstructionFallbackNotFound, got %v", err)
	}

	tx, _ = h.storeTx(t, nil, authority, aliceProfile())
	tx.Instruction.Data = tx.Instruction.Data[:12]
	if err := tx.Sign(priv); err != nil {
		t.Fatalf("Sign() failed: %v", err)
	}
	if _, err := h.rt.Execute(h.ctx, tx); !errors.Is(err, kyc.ErrInstructionDidNotDeserialize) {
		t.Fatalf("expected ErrInstructionDidNotDeserialize, got %v", err)
	}
}

func TestStoreUserKyc_NotEnoughAccounts(t *testing.T) {
	h := newHarness(t)
	priv, authority := h.newAuthority(t, 11, funded)

	tx, _ := h.storeTx(t, nil, authority, aliceProfile())
	tx.Instruction.Accounts = tx.Instruction.Accounts[:2]
	if err := tx.Sign(priv); err != nil {
		t.Fatalf("Sign() failed: %v", err)
	}
	if _, err := h.rt.Execute(h.ctx, tx); !errors.Is(err, program.ErrNotEnoughAccounts) {
		t.Fatalf("expected ErrNotEnoughAccounts, got %v", err)
	}
}

func TestStoreUserKyc_DistinctAuthoritiesDistinctRecords(t *testing.T) {
	h := newHarness(t)
	seen := make(map[ledger.Pubkey]bool)
	for i := byte(20); i < 25; i++ {
		priv, authority := h.newAuthority(t, i, funded)
		tx, address := h.storeTx(t, priv, authority, aliceProfile())
		if _, err := h.rt.Execute(h.ctx, tx); err != nil {
			t.Fatalf("Execute() for authority %d failed: %v", i, err)
		}
		if seen[address] {
			t.Fatalf("address %s reused", address)
		}
		seen[address] = true
	}
}

func TestStoreUserKyc_ConcurrentCreatorsOneWins(t *testing.T) {
	h := newHarness(t)
	priv, authority := h.newAuthority(t, 30, funded)

	const workers = 10
	var wg sync.WaitGroup
	errs := make(chan error, workers)
	for i := 0; i < workers; i++ {
		p := aliceProfile()
		p.Name = strings.Repeat("x", i+1)
		tx, _ := h.storeTx(t, priv, authority, p)
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := h.rt.Execute(h.ctx, tx)
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	var ok int
	for err := range errs {
		switch {
		case err == nil:
			ok++
		case errors.Is(err, runtime.ErrAddressAlreadyInUse):
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if ok != 1 {
		t.Fatalf("expected exactly one success, got %d", ok)
	}
	if got := h.balance(t, authority); got != funded-recordRent {
		t.Fatalf("authority balance: got %d want %d", got, funded-recordRent)
	}
}

// raceStore runs before just ahead of the first Apply it forwards, standing in for
// another process committing between this runtime's reads and its write.
type raceStore struct {
	runtime.AccountStore
	once   sync.Once
	before func()
}

func (s *raceStore) Apply(ctx context.Context, changes []runtime.AccountChange) error {
	s.once.Do(s.before)
	return s.AccountStore.Apply(ctx, changes)
}

func TestStoreUserKyc_PrefundedAddressRaceAcrossRuntimes(t *testing.T) {
	shared := accountstore.NewMemoryStore()
	other := runtime.New(shared, runtime.WithProgram(program.New()))
	h := &harness{ctx: context.Background(), rt: other}
	priv, authority := h.newAuthority(t, 50, funded)

	address, _, err := kyc.DeriveAddress(authority, kyc.ProgramID)
	if err != nil {
		t.Fatalf("DeriveAddress() failed: %v", err)
	}
	const prefund = 1_000_000
	if err := other.Airdrop(h.ctx, address, prefund); err != nil {
		t.Fatalf("Airdrop() failed: %v", err)
	}

	first := aliceProfile()
	first.Name = "First"
	otherTx, _ := h.storeTx(t, priv, authority, first)
	tx, _ := h.storeTx(t, priv, authority, aliceProfile())

	var otherErr error
	rt := runtime.New(&raceStore{
		AccountStore: shared,
		before:       func() { _, otherErr = other.Execute(h.ctx, otherTx) },
	}, runtime.WithProgram(program.New()))

	_, err = rt.Execute(h.ctx, tx)
	if otherErr != nil {
		t.Fatalf("first writer failed: %v", otherErr)
	}
	if !errors.Is(err, runtime.ErrAddressAlreadyInUse) {
		t.Fatalf("expected ErrAddressAlreadyInUse, got %v", err)
	}

	acc, err := other.GetAccount(h.ctx, address)
	if err != nil {
		t.Fatalf("GetAccount() failed: %v", err)
	}
	record, err := kyc.Decode(acc.Data)
	if err != nil {
		t.Fatalf("Decode() failed: %v", err)
	}
	if record.Profile().Name != "First" {
		t.Fatalf("record overwritten by losing writer: %q", record.Profile().Name)
	}
	if got := h.balance(t, authority); got != funded-(recordRent-prefund) {
		t.Fatalf("authority balance: got %d want %d", got, funded-(recordRent-prefund))
	}
}

func TestStoreUserKyc_CustomProgramID(t *testing.T) {
	id := ledger.MustParsePubkey("Stake11111111111111111111111111111111111111")
	rt := runtime.New(accountstore.NewMemoryStore(), runtime.WithProgram(program.New(program.WithProgramID(id))))
	h := &harness{ctx: context.Background(), rt: rt}
	priv, authority := h.newAuthority(t, 40, funded)

	ix, address, _, err := kyc.NewStoreUserKycInstruction(id, authority, aliceProfile())
	if err != nil {
		t.Fatalf("NewStoreUserKycInstruction() failed: %v", err)
	}
	tx := runtime.NewTransaction(ix)
	if err := tx.Sign(priv); err != nil {
		t.Fatalf("Sign() failed: %v", err)
	}
	if _, err := rt.Execute(h.ctx, tx); err != nil {
		t.Fatalf("Execute() failed: %v", err)
	}
	acc, err := rt.GetAccount(h.ctx, address)
	if err != nil {
		t.Fatalf("GetAccount() failed: %v", err)
	}
	if acc.Owner != id {
		t.Fatalf("owner: got %s want %s", acc.Owner, id)
	}
}
