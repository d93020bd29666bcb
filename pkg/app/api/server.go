// Package api implements app.Runner for the KYC server process.
package api

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/uptrace/bun"
	"go.uber.org/zap"

	"github.com/chainsafe/kyc-ledger/pkg/accountstore"
	apphttp "github.com/chainsafe/kyc-ledger/pkg/app/http"
	"github.com/chainsafe/kyc-ledger/pkg/config"
	"github.com/chainsafe/kyc-ledger/pkg/kyc"
	"github.com/chainsafe/kyc-ledger/pkg/kyc/program"
	"github.com/chainsafe/kyc-ledger/pkg/kyc/service"
	"github.com/chainsafe/kyc-ledger/pkg/ledger/runtime"
	"github.com/chainsafe/kyc-ledger/pkg/pgutil"
)

// Server holds cfg to init the KYC server.
type Server struct {
	cfg *config.Config
}

// NewServer initializes a new KYC server.
func NewServer(cfg *config.Config) *Server {
	return &Server{cfg: cfg}
}

// Run serves the API until SIGINT or SIGTERM.
func (s *Server) Run() error {
	if s.cfg == nil {
		return fmt.Errorf("kyc server config is nil")
	}
	cfg := s.cfg

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger, err := config.NewLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("setup logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting KYC server",
		zap.String("host", cfg.Server.Host),
		zap.Int("port", cfg.Server.Port),
		zap.String("store", cfg.Ledger.Store),
	)

	db, err := s.openDB(ctx, logger)
	if err != nil {
		return err
	}
	if db != nil {
		defer func() { _ = db.Close() }()
	}

	store, err := accountstore.New(cfg.Ledger.Store, db)
	if err != nil {
		return err
	}

	rt, kycService := s.newKYCService(store, logger)
	logger.Info("KYC program loaded",
		zap.String("program_id", kyc.ProgramID.String()),
		zap.Uint64("record_rent_lamports", rt.Rent().MinimumBalance(kyc.AccountSpace)),
	)

	router := s.setupRouter(kycService, logger)
	return apphttp.ServeAndWait(ctx, router, logger, &cfg.Server)
}

// newKYCService builds the runtime with the KYC program loaded at its fixed id
// and the logged service on top of it.
func (s *Server) newKYCService(store runtime.AccountStore, logger *zap.Logger) (*runtime.Runtime, service.Service) {
	cfg := s.cfg
	rt := runtime.New(store,
		runtime.WithLogger(logger),
		runtime.WithRent(runtime.Rent{
			LamportsPerByteYear: cfg.Ledger.Rent.LamportsPerByteYear,
			ExemptionThreshold:  cfg.Ledger.Rent.ExemptionThreshold,
		}),
		runtime.WithProgram(program.New(
			program.WithProgramID(kyc.ProgramID),
			program.WithLogger(logger),
		)),
	)

	opts := []service.Option{
		service.WithLogger(logger),
		service.WithProgramID(kyc.ProgramID),
	}
	if cfg.Faucet.Enabled {
		opts = append(opts, service.WithFaucet(cfg.Faucet.MaxLamports))
		logger.Warn("Faucet enabled", zap.Uint64("max_lamports", cfg.Faucet.MaxLamports))
	}
	return rt, service.NewLog(service.NewService(rt, opts...), logger)
}

// openDB connects to postgres when the ledger needs it and returns nil otherwise.
func (s *Server) openDB(ctx context.Context, logger *zap.Logger) (*bun.DB, error) {
	if s.cfg.Ledger.Store != config.StorePostgres {
		logger.Warn("Using in-memory account store; state is lost on restart")
		return nil, nil
	}
	db, err := pgutil.ConnectDB(ctx, &s.cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}
	logger.Info("Connected to database",
		zap.String("host", s.cfg.Database.Host),
		zap.String("database", s.cfg.Database.Database),
	)
	return db, nil
}

func (s *Server) setupRouter(kycService service.Service, logger *zap.Logger) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(s.cfg.Server.RequestTimeout))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	if s.cfg.Monitoring.Enabled {
		r.Handle(s.cfg.Monitoring.MetricsPath, promhttp.Handler())
	}

	service.RegisterRoutes(r, kycService, logger)

	return r
}
