package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	apperrors "github.com/chainsafe/kyc-ledger/pkg/app/errors"
	"github.com/chainsafe/kyc-ledger/pkg/config"
)

func decode(t *testing.T, rec *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	var got ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("failed to decode response JSON: %v", err)
	}
	return got
}

func TestDefaultErrorHandler_ServiceError(t *testing.T) {
	rec := httptest.NewRecorder()
	DefaultErrorHandler(rec, apperrors.ConflictError(nil, "record exists"))

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected status %d, got %d", http.StatusConflict, rec.Code)
	}
	got := decode(t, rec)
	if got.Error != "record exists" || got.Code != http.StatusConflict {
		t.Fatalf("unexpected body %+v", got)
	}
}

func TestDefaultErrorHandler_HidesPlainErrors(t *testing.T) {
	rec := httptest.NewRecorder()
	DefaultErrorHandler(rec, errors.New("pq: password authentication failed"))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected status %d, got %d", http.StatusInternalServerError, rec.Code)
	}
	if got := decode(t, rec); got.Error != "Unexpected Service Error" {
		t.Fatalf("unexpected body %+v", got)
	}
}

func TestErrorHandler_LogsOnlyInternalErrors(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	errs := NewErrorHandler(zap.New(core))

	cause := errors.New("store unavailable")
	internal := errs.Wrap(func(http.ResponseWriter, *http.Request) error {
		return apperrors.GeneralError(fmt.Errorf("load account: %w", cause))
	})
	client := errs.Wrap(func(http.ResponseWriter, *http.Request) error {
		return apperrors.BadRequestError(nil, "bad input")
	})
	ok := errs.Wrap(func(w http.ResponseWriter, _ *http.Request) error {
		w.WriteHeader(http.StatusNoContent)
		return nil
	})

	client(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/c", nil))
	rec := httptest.NewRecorder()
	ok(rec, httptest.NewRequest(http.MethodGet, "/ok", nil))
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected status %d, got %d", http.StatusNoContent, rec.Code)
	}
	if logs.Len() != 0 {
		t.Fatalf("expected no logs, got %d", logs.Len())
	}

	rec = httptest.NewRecorder()
	internal(rec, httptest.NewRequest(http.MethodPost, "/i", nil))
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected status %d, got %d", http.StatusInternalServerError, rec.Code)
	}
	entries := logs.FilterMessage("request failed").All()
	if len(entries) != 1 {
		t.Fatalf("expected one log entry, got %d", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["path"] != "/i" || fields["error"] != "load account: store unavailable" {
		t.Fatalf("unexpected log fields %v", fields)
	}
}

func TestServe_ShutsDownOnCancel(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}

	handler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("OK"))
	})
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- Serve(ctx, ln, handler, zap.NewNop(), &config.ServerConfig{ShutdownTimeout: time.Second})
	}()

	resp, err := http.Get("http://" + ln.Addr().String() + "/")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	if string(body) != "OK" {
		t.Fatalf("unexpected body %q", body)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("expected clean shutdown, got %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("server did not stop")
	}
}

func TestServe_RejectsMissingArguments(t *testing.T) {
	if err := Serve(context.Background(), nil, nil, nil, &config.ServerConfig{}); err == nil {
		t.Fatalf("expected error for nil handler")
	}
	if err := ServeAndWait(context.Background(), http.NotFoundHandler(), nil, nil); err == nil {
		t.Fatalf("expected error for nil config")
	}
}
