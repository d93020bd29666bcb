// Package ledgerdb holds the migrations for the ledger account database
package ledgerdb

import (
	"github.com/uptrace/bun/migrate"
)

// Migrations is the collection of all migrations for the ledger database
var Migrations = migrate.NewMigrations()
