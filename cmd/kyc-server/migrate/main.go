package main

import (
	"context"
	"flag"
	"log"

	"github.com/uptrace/bun/migrate"
	"go.uber.org/zap"

	"github.com/chainsafe/kyc-ledger/pkg/config"
	"github.com/chainsafe/kyc-ledger/pkg/migrations/ledgerdb"
	"github.com/chainsafe/kyc-ledger/pkg/pgutil"
	mghelper "github.com/chainsafe/kyc-ledger/pkg/pgutil/migrations"
)

func main() {
	cfgPath := flag.String("config", "config.example.yaml", "Path to configuration file")
	flag.Usage = mghelper.Usage
	flag.Parse()

	if flag.NArg() == 0 {
		mghelper.Exitf("no command provided")
	}

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		log.Fatalf("error reading configuration file: %s", err.Error())
	}

	logger, err := config.NewLogger(cfg.Logging)
	if err != nil {
		log.Fatalf("error creating logger: %s", err.Error())
	}
	defer func() { _ = logger.Sync() }()

	ctx := context.Background()
	db, err := pgutil.ConnectDB(ctx, &cfg.Database)
	if err != nil {
		logger.Fatal("error connecting to database", zap.Error(err))
	}
	defer func() { _ = db.Close() }()

	logger.Info("Running ledger database migrations", zap.String("database", cfg.Database.Database))

	migrator := migrate.NewMigrator(db, ledgerdb.Migrations)
	if err := mghelper.RunMigrations(ctx, migrator, logger, flag.Args()...); err != nil {
		mghelper.Exitf("%s", err)
	}
}
