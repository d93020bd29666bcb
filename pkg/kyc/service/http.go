package service

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	apperrors "github.com/chainsafe/kyc-ledger/pkg/app/errors"
	apphttp "github.com/chainsafe/kyc-ledger/pkg/app/http"
)

const maxBodyBytes = 64 << 10

// HTTP wraps the Service to provide HTTP endpoints
type HTTP struct {
	service Service
	logger  *zap.Logger
}

// RegisterRoutes registers the KYC endpoints on the given chi router
func RegisterRoutes(r chi.Router, service Service, logger *zap.Logger) {
	h := &HTTP{
		service: service,
		logger:  logger,
	}

	errs := apphttp.NewErrorHandler(logger)
	r.Post("/kyc", errs.Wrap(h.store))
	r.Get("/kyc/{authority}/address", errs.Wrap(h.deriveAddress))
	r.Get("/accounts/{address}", errs.Wrap(h.getAccount))
	r.Post("/airdrop", errs.Wrap(h.airdrop))
}

func (h *HTTP) store(w http.ResponseWriter, r *http.Request) error {
	var req StoreRequest
	if err := decodeJSON(r, &req); err != nil {
		return err
	}
	if req.Signature == "" {
		req.Signature = r.Header.Get("X-Signature")
	}

	resp, err := h.service.StoreUserKyc(r.Context(), &req)
	if err != nil {
		return err
	}
	h.writeJSON(w, http.StatusCreated, resp)
	return nil
}

func (h *HTTP) deriveAddress(w http.ResponseWriter, r *http.Request) error {
	resp, err := h.service.DeriveAddress(r.Context(), chi.URLParam(r, "authority"))
	if err != nil {
		return err
	}
	h.writeJSON(w, http.StatusOK, resp)
	return nil
}

func (h *HTTP) getAccount(w http.ResponseWriter, r *http.Request) error {
	resp, err := h.service.GetAccount(r.Context(), chi.URLParam(r, "address"))
	if err != nil {
		return err
	}
	h.writeJSON(w, http.StatusOK, resp)
	return nil
}

func (h *HTTP) airdrop(w http.ResponseWriter, r *http.Request) error {
	var req AirdropRequest
	if err := decodeJSON(r, &req); err != nil {
		return err
	}
	resp, err := h.service.Airdrop(r.Context(), &req)
	if err != nil {
		return err
	}
	h.writeJSON(w, http.StatusOK, resp)
	return nil
}

func decodeJSON(r *http.Request, dst any) error {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		return apperrors.BadRequestError(err, "failed to read request")
	}
	if err := json.Unmarshal(body, dst); err != nil {
		return apperrors.BadRequestError(err, "invalid JSON")
	}
	return nil
}

func (h *HTTP) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Warn("failed to write response", zap.Error(err))
	}
}
