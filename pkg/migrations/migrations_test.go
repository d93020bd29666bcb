package migrations

import (
	"context"
	"testing"

	"github.com/uptrace/bun/migrate"
	"go.uber.org/zap"

	"github.com/chainsafe/kyc-ledger/pkg/accountstore"
	"github.com/chainsafe/kyc-ledger/pkg/ledger"
	"github.com/chainsafe/kyc-ledger/pkg/ledger/runtime"
	"github.com/chainsafe/kyc-ledger/pkg/migrations/ledgerdb"
	"github.com/chainsafe/kyc-ledger/pkg/pgutil"
	mghelper "github.com/chainsafe/kyc-ledger/pkg/pgutil/migrations"
)

func TestLedgerDBMigrations_Apply(t *testing.T) {
	db, cleanup := pgutil.SetupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	migrator := migrate.NewMigrator(db, ledgerdb.Migrations)
	if err := migrator.Init(ctx); err != nil {
		t.Fatalf("Init() failed: %v", err)
	}

	group, err := migrator.Migrate(ctx)
	if err != nil {
		t.Fatalf("Migrate() failed: %v", err)
	}
	if group.IsZero() {
		t.Fatal("Expected migrations to run, but none were applied")
	}

	pgutil.AssertTableExists(t, db, "accounts")
	pgutil.AssertTableExists(t, db, "bun_migrations")
	pgutil.AssertIndexExists(t, db, "idx_accounts_owner")

	// The migrated table must serve the store.
	store := accountstore.NewStore(db)
	addr := ledger.Pubkey{1}
	err = store.Apply(ctx, []runtime.AccountChange{{
		Kind:    runtime.ChangeCreate,
		Account: &runtime.Account{Address: addr, Lamports: 42, Owner: ledger.SystemProgramID},
	}})
	if err != nil {
		t.Fatalf("Apply() on migrated table failed: %v", err)
	}
	pgutil.AssertRowCount(t, db, "accounts", 1)
}

func TestLedgerDBMigrations_Idempotency(t *testing.T) {
	db, cleanup := pgutil.SetupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	migrator := migrate.NewMigrator(db, ledgerdb.Migrations)
	if err := migrator.Init(ctx); err != nil {
		t.Fatalf("Init() failed: %v", err)
	}
	if _, err := migrator.Migrate(ctx); err != nil {
		t.Fatalf("First Migrate() failed: %v", err)
	}

	group, err := migrator.Migrate(ctx)
	if err != nil {
		t.Fatalf("Second Migrate() failed: %v", err)
	}
	if !group.IsZero() {
		t.Error("Expected no new migrations on second run")
	}
	pgutil.AssertTableExists(t, db, "accounts")
}

func TestLedgerDBMigrations_RunCommands(t *testing.T) {
	db, cleanup := pgutil.SetupTestDB(t)
	defer cleanup()
	ctx := context.Background()
	logger := zap.NewNop()

	migrator := migrate.NewMigrator(db, ledgerdb.Migrations)

	if err := mghelper.RunMigrations(ctx, migrator, logger); err == nil {
		t.Fatal("expected error without a command")
	}
	if err := mghelper.RunMigrations(ctx, migrator, logger, "sideways"); err == nil {
		t.Fatal("expected error for unknown command")
	}

	for _, cmd := range []string{"init", "up", "status"} {
		if err := mghelper.RunMigrations(ctx, migrator, logger, cmd); err != nil {
			t.Fatalf("%s failed: %v", cmd, err)
		}
	}
	pgutil.AssertTableExists(t, db, "accounts")

	if err := mghelper.RunMigrations(ctx, migrator, logger, "down"); err != nil {
		t.Fatalf("down failed: %v", err)
	}
	pgutil.AssertTableNotExists(t, db, "accounts")

	if err := mghelper.RunMigrations(ctx, migrator, logger, "down"); err != nil {
		t.Fatalf("second down failed: %v", err)
	}
}
