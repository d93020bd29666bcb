package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
)

const serviceName = "KYCService"

const signatureDisplaySize = 16

// logService wraps Service with automatic logging of all method calls
type logService struct {
	svc    Service
	logger *zap.Logger
}

// NewLog creates a logging decorator for the KYC Service.
// Personal data from the request is never logged; only keys, addresses and outcomes.
func NewLog(svc Service, logger *zap.Logger) Service {
	return &logService{
		svc:    svc,
		logger: logger,
	}
}

// StoreUserKyc wraps the service method with logging
func (ls *logService) StoreUserKyc(ctx context.Context, req *StoreRequest) (resp *StoreResponse, err error) {
	start := time.Now()

	ls.logger.Info("StoreUserKyc started",
		zap.String("service", serviceName),
		zap.String("method", "StoreUserKyc"),
		zap.String("authority", req.Authority),
		zap.String("signature", redactSignature(req.Signature)),
		zap.Bool("face_verified", req.FaceVerified),
	)

	defer func() {
		duration := time.Since(start)
		if err != nil {
			ls.logger.Error("StoreUserKyc failed",
				zap.String("service", serviceName),
				zap.String("method", "StoreUserKyc"),
				zap.String("authority", req.Authority),
				zap.Duration("duration", duration),
				zap.Error(err),
			)
			return
		}
		ls.logger.Info("StoreUserKyc completed",
			zap.String("service", serviceName),
			zap.String("method", "StoreUserKyc"),
			zap.String("authority", resp.Authority),
			zap.String("address", resp.Address),
			zap.String("tx_id", resp.TxID),
			zap.Uint64("rent_lamports", resp.RentLamports),
			zap.Duration("duration", duration),
		)
	}()

	return ls.svc.StoreUserKyc(ctx, req)
}

// DeriveAddress wraps the service method with logging
func (ls *logService) DeriveAddress(ctx context.Context, authority string) (resp *AddressResponse, err error) {
	defer func() {
		if err != nil {
			ls.logger.Warn("DeriveAddress failed",
				zap.String("service", serviceName),
				zap.String("authority", authority),
				zap.Error(err),
			)
		}
	}()
	return ls.svc.DeriveAddress(ctx, authority)
}

// GetAccount wraps the service method with logging
func (ls *logService) GetAccount(ctx context.Context, address string) (resp *AccountResponse, err error) {
	start := time.Now()
	defer func() {
		if err != nil {
			ls.logger.Warn("GetAccount failed",
				zap.String("service", serviceName),
				zap.String("address", address),
				zap.Duration("duration", time.Since(start)),
				zap.Error(err),
			)
			return
		}
		ls.logger.Debug("GetAccount completed",
			zap.String("service", serviceName),
			zap.String("address", address),
			zap.String("owner", resp.Owner),
			zap.Duration("duration", time.Since(start)),
		)
	}()
	return ls.svc.GetAccount(ctx, address)
}

// Airdrop wraps the service method with logging
func (ls *logService) Airdrop(ctx context.Context, req *AirdropRequest) (resp *AirdropResponse, err error) {
	start := time.Now()

	ls.logger.Info("Airdrop started",
		zap.String("service", serviceName),
		zap.String("method", "Airdrop"),
		zap.String("address", req.Address),
		zap.Uint64("lamports", req.Lamports),
	)

	defer func() {
		duration := time.Since(start)
		if err != nil {
			ls.logger.Error("Airdrop failed",
				zap.String("service", serviceName),
				zap.String("method", "Airdrop"),
				zap.String("address", req.Address),
				zap.Duration("duration", duration),
				zap.Error(err),
			)
			return
		}
		ls.logger.Info("Airdrop completed",
			zap.String("service", serviceName),
			zap.String("method", "Airdrop"),
			zap.String("address", resp.Address),
			zap.Uint64("balance", resp.Lamports),
			zap.Duration("duration", duration),
		)
	}()

	return ls.svc.Airdrop(ctx, req)
}

// redactSignature shows only the ends and length of a signature
func redactSignature(sig string) string {
	if sig == "" {
		return "<empty>"
	}
	sigLen := len(sig)
	if sigLen > signatureDisplaySize {
		return fmt.Sprintf("%s...%s (%d chars)", sig[:8], sig[sigLen-4:], sigLen)
	}
	return fmt.Sprintf("<%d chars>", sigLen)
}
