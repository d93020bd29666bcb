// Package client talks to a KYC server over HTTP. It signs store requests
// locally so private keys never leave the caller, and decodes stored records
// from raw account data.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/mr-tron/base58"
	"go.uber.org/zap"

	apphttp "github.com/chainsafe/kyc-ledger/pkg/app/http"
	"github.com/chainsafe/kyc-ledger/pkg/keys"
	"github.com/chainsafe/kyc-ledger/pkg/kyc"
	"github.com/chainsafe/kyc-ledger/pkg/kyc/service"
	"github.com/chainsafe/kyc-ledger/pkg/ledger"
)

const maxResponseBytes = 1 << 20

// ErrNotOwned is returned by GetRecord when the account at the derived address
// is not owned by the KYC program.
var ErrNotOwned = errors.New("account is not owned by the kyc program")

// APIError is a non-2xx response from the server
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("kyc server returned %d: %s", e.StatusCode, e.Message)
}

// IsStatus reports whether err is an APIError with the given HTTP status
func IsStatus(err error, status int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == status
}

// Record is a decoded KYC record with the account it lives in
type Record struct {
	Address  ledger.Pubkey
	Lamports uint64
	Data     *kyc.UserKycData
}

// Client is a KYC server client
type Client struct {
	baseURL   string
	http      *http.Client
	programID ledger.Pubkey
	logger    *zap.Logger
	retries   uint64
}

// New creates a client for the server at baseURL, e.g. http://localhost:8080.
func New(baseURL string, opts ...Option) *Client {
	s := applyOptions(opts)
	return &Client{
		baseURL:   strings.TrimRight(baseURL, "/"),
		http:      s.httpClient,
		programID: s.programID,
		logger:    s.logger,
		retries:   s.retries,
	}
}

// StoreUserKyc signs a store_user_kyc instruction with kp and submits it.
func (c *Client) StoreUserKyc(ctx context.Context, kp *keys.KeyPair, p kyc.Profile) (*service.StoreResponse, error) {
	ix, _, _, err := kyc.NewStoreUserKycInstruction(c.programID, kp.PublicKey, p)
	if err != nil {
		return nil, err
	}

	req := &service.StoreRequest{
		Authority:    kp.PublicKey.String(),
		Signature:    base58.Encode(kp.Sign(ix.Message())),
		Name:         p.Name,
		Email:        p.Email,
		Mobile:       p.Mobile,
		GovID:        p.GovID,
		FaceVerified: p.FaceVerified,
	}

	var resp service.StoreResponse
	if err := c.do(ctx, http.MethodPost, "/kyc", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// DeriveAddress asks the server for the record address of authority.
func (c *Client) DeriveAddress(ctx context.Context, authority ledger.Pubkey) (*service.AddressResponse, error) {
	var resp service.AddressResponse
	path := "/kyc/" + url.PathEscape(authority.String()) + "/address"
	if err := c.get(ctx, path, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetAccount fetches the raw state of the account at address.
func (c *Client) GetAccount(ctx context.Context, address ledger.Pubkey) (*service.AccountResponse, error) {
	var resp service.AccountResponse
	if err := c.get(ctx, "/accounts/"+url.PathEscape(address.String()), &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetRecord loads and decodes the KYC record of authority. The address is
// derived locally so a misbehaving server cannot redirect the lookup.
func (c *Client) GetRecord(ctx context.Context, authority ledger.Pubkey) (*Record, error) {
	address, _, err := kyc.DeriveAddress(authority, c.programID)
	if err != nil {
		return nil, err
	}

	acc, err := c.GetAccount(ctx, address)
	if err != nil {
		return nil, err
	}
	if acc.Owner != c.programID.String() {
		return nil, fmt.Errorf("%w: %s is owned by %s", ErrNotOwned, address, acc.Owner)
	}

	data, err := kyc.Decode(acc.Data)
	if err != nil {
		return nil, fmt.Errorf("decode record %s: %w", address, err)
	}
	if data.Authority() != authority {
		return nil, fmt.Errorf("record %s belongs to %s", address, data.Authority())
	}
	return &Record{Address: address, Lamports: acc.Lamports, Data: data}, nil
}

// Airdrop requests lamports for address from the server faucet.
func (c *Client) Airdrop(ctx context.Context, address ledger.Pubkey, lamports uint64) (*service.AirdropResponse, error) {
	req := &service.AirdropRequest{Address: address.String(), Lamports: lamports}
	var resp service.AirdropResponse
	if err := c.do(ctx, http.MethodPost, "/airdrop", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	b := backoff.WithContext(
		backoff.WithMaxRetries(newBackOff(), c.retries),
		ctx,
	)
	return backoff.RetryNotify(func() error {
		err := c.do(ctx, http.MethodGet, path, nil, out)
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode < http.StatusInternalServerError {
			return backoff.Permanent(err)
		}
		return err
	}, b, func(err error, wait time.Duration) {
		c.logger.Debug("retrying request",
			zap.String("path", path),
			zap.Duration("wait", wait),
			zap.Error(err),
		)
	})
}

func newBackOff() *backoff.ExponentialBackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 100 * time.Millisecond
	b.MaxInterval = 2 * time.Second
	return b
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{StatusCode: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
		var errResp apphttp.ErrorResponse
		if json.Unmarshal(data, &errResp) == nil && errResp.Error != "" {
			apiErr.Message = errResp.Error
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
