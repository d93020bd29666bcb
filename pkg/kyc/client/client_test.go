package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/chainsafe/kyc-ledger/pkg/accountstore"
	"github.com/chainsafe/kyc-ledger/pkg/keys"
	"github.com/chainsafe/kyc-ledger/pkg/kyc"
	"github.com/chainsafe/kyc-ledger/pkg/kyc/program"
	"github.com/chainsafe/kyc-ledger/pkg/kyc/service"
	"github.com/chainsafe/kyc-ledger/pkg/ledger"
	"github.com/chainsafe/kyc-ledger/pkg/ledger/runtime"
)

var alice = kyc.Profile{
	Name:         "Alice",
	Email:        "alice@example.com",
	Mobile:       "+15550100",
	GovID:        "P1234567",
	FaceVerified: true,
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	rt := runtime.New(accountstore.NewMemoryStore(), runtime.WithProgram(program.New()))
	svc := service.NewService(rt, service.WithFaucet(100_000_000))

	r := chi.NewRouter()
	service.RegisterRoutes(r, svc, zap.NewNop())
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func newKeyPair(t *testing.T, label string) *keys.KeyPair {
	t.Helper()
	kp, err := keys.DeriveKeyPair(label, make([]byte, 32))
	require.NoError(t, err)
	return kp
}

func TestClient_StoreAndGetRecord(t *testing.T) {
	ctx := context.Background()
	c := New(newTestServer(t).URL)
	kp := newKeyPair(t, "alice")

	_, err := c.Airdrop(ctx, kp.PublicKey, 10_000_000)
	require.NoError(t, err)

	stored, err := c.StoreUserKyc(ctx, kp, alice)
	require.NoError(t, err)
	require.Equal(t, kp.PublicKey.String(), stored.Authority)
	require.Equal(t, uint64(3_166_800), stored.RentLamports)

	derived, err := c.DeriveAddress(ctx, kp.PublicKey)
	require.NoError(t, err)
	require.Equal(t, stored.Address, derived.Address)
	require.Equal(t, stored.Bump, derived.Bump)

	rec, err := c.GetRecord(ctx, kp.PublicKey)
	require.NoError(t, err)
	require.Equal(t, stored.Address, rec.Address.String())
	require.Equal(t, uint64(3_166_800), rec.Lamports)
	require.Equal(t, kp.PublicKey, rec.Data.Authority())
	require.Equal(t, alice, rec.Data.Profile())
}

func TestClient_StoreTwiceConflicts(t *testing.T) {
	ctx := context.Background()
	c := New(newTestServer(t).URL)
	kp := newKeyPair(t, "alice")

	_, err := c.Airdrop(ctx, kp.PublicKey, 10_000_000)
	require.NoError(t, err)
	_, err = c.StoreUserKyc(ctx, kp, alice)
	require.NoError(t, err)

	_, err = c.StoreUserKyc(ctx, kp, kyc.Profile{Name: "Mallory"})
	require.Error(t, err)
	require.True(t, IsStatus(err, http.StatusConflict), "got %v", err)

	rec, err := c.GetRecord(ctx, kp.PublicKey)
	require.NoError(t, err)
	require.Equal(t, "Alice", rec.Data.Name())
}

func TestClient_StoreErrors(t *testing.T) {
	ctx := context.Background()
	c := New(newTestServer(t).URL)
	kp := newKeyPair(t, "bob")

	_, err := c.StoreUserKyc(ctx, kp, alice)
	require.True(t, IsStatus(err, http.StatusPaymentRequired), "got %v", err)

	_, err = c.Airdrop(ctx, kp.PublicKey, 10_000_000)
	require.NoError(t, err)

	long := alice
	long.Mobile = "+1555010000000000000000"
	_, err = c.StoreUserKyc(ctx, kp, long)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	require.Contains(t, apiErr.Message, "mobile")
}

func TestClient_SignatureForOtherProgramRejected(t *testing.T) {
	ctx := context.Background()
	srvURL := newTestServer(t).URL
	kp := newKeyPair(t, "carol")

	_, err := New(srvURL).Airdrop(ctx, kp.PublicKey, 10_000_000)
	require.NoError(t, err)

	other := New(srvURL, WithProgramID(ledger.MustParsePubkey("Stake11111111111111111111111111111111111111")))
	_, err = other.StoreUserKyc(ctx, kp, alice)
	require.True(t, IsStatus(err, http.StatusUnauthorized), "got %v", err)
}

func TestClient_GetRecordNotFound(t *testing.T) {
	c := New(newTestServer(t).URL, WithRetries(0))

	_, err := c.GetRecord(context.Background(), newKeyPair(t, "nobody").PublicKey)
	require.True(t, IsStatus(err, http.StatusNotFound), "got %v", err)
}

func TestClient_GetRecordRejectsForeignOwner(t *testing.T) {
	ctx := context.Background()
	c := New(newTestServer(t).URL)
	kp := newKeyPair(t, "dave")

	// Fund the derived address directly so it exists but belongs to the system program.
	address, _, err := kyc.DeriveAddress(kp.PublicKey, kyc.ProgramID)
	require.NoError(t, err)
	_, err = c.Airdrop(ctx, address, 1_000)
	require.NoError(t, err)

	_, err = c.GetRecord(ctx, kp.PublicKey)
	require.ErrorIs(t, err, ErrNotOwned)
}

func TestClient_RetriesServerErrorsOnReads(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"authority":"a","address":"b","bump":7}`))
	}))
	defer srv.Close()

	resp, err := New(srv.URL).DeriveAddress(context.Background(), ledger.Pubkey{1})
	require.NoError(t, err)
	require.Equal(t, uint8(7), resp.Bump)
	require.Equal(t, int32(3), calls.Load())
}

func TestClient_DoesNotRetryClientErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":"invalid authority","code":400}`))
	}))
	defer srv.Close()

	_, err := New(srv.URL).DeriveAddress(context.Background(), ledger.Pubkey{1})
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	require.Equal(t, "invalid authority", apiErr.Message)
	require.Equal(t, int32(1), calls.Load())
}

func TestClient_AirdropDisabled(t *testing.T) {
	rt := runtime.New(accountstore.NewMemoryStore(), runtime.WithProgram(program.New()))
	r := chi.NewRouter()
	service.RegisterRoutes(r, service.NewService(rt), zap.NewNop())
	srv := httptest.NewServer(r)
	defer srv.Close()

	_, err := New(srv.URL).Airdrop(context.Background(), ledger.Pubkey{1}, 1)
	require.True(t, IsStatus(err, http.StatusMethodNotAllowed), "got %v", err)
}
