// Package http provides the chi-compatible error handling and server lifecycle
// shared by the HTTP entrypoints.
package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	apperrors "github.com/chainsafe/kyc-ledger/pkg/app/errors"
)

// HandlerFunc defines a function that returns an error for clean error handling
type HandlerFunc func(http.ResponseWriter, *http.Request) error

// ErrorResponse is the body written for every failed request
type ErrorResponse struct {
	Error string `json:"error"`
	Code  int    `json:"code"`
}

// ErrorHandler converts errors returned by a HandlerFunc into JSON responses.
// Failures that are the server's fault are logged with the request id; client
// errors are not.
type ErrorHandler struct {
	logger *zap.Logger
}

// NewErrorHandler creates an ErrorHandler. A nil logger disables logging.
func NewErrorHandler(logger *zap.Logger) *ErrorHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ErrorHandler{logger: logger}
}

// Wrap adapts h into a standard http.HandlerFunc.
//
// Usage with chi:
//
//	r.Post("/kyc", errs.Wrap(handler.store))
func (e *ErrorHandler) Wrap(h HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := h(w, r)
		if err == nil {
			return
		}
		if apperrors.IsInternalError(err) {
			e.logger.Error("request failed",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.String("request_id", middleware.GetReqID(r.Context())),
				zap.Error(cause(err)),
			)
		}
		DefaultErrorHandler(w, err)
	}
}

// DefaultErrorHandler writes err as an ErrorResponse. Errors that are not a
// ServiceError never leak their text to the client.
func DefaultErrorHandler(w http.ResponseWriter, err error) {
	resp := ErrorResponse{
		Error: "Unexpected Service Error",
		Code:  http.StatusInternalServerError,
	}

	var svcErr *apperrors.ServiceError
	if errors.As(err, &svcErr) {
		resp.Error = svcErr.Message
		resp.Code = svcErr.StatusCode()
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(resp.Code)
	_ = json.NewEncoder(w).Encode(&resp)
}

func cause(err error) error {
	var svcErr *apperrors.ServiceError
	if errors.As(err, &svcErr) && svcErr.Err != nil {
		return svcErr.Err
	}
	return err
}
