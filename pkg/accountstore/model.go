package accountstore

import (
	"fmt"
	"math"
	"time"

	"github.com/uptrace/bun"

	"github.com/chainsafe/kyc-ledger/pkg/ledger"
	"github.com/chainsafe/kyc-ledger/pkg/ledger/runtime"
)

// AccountDao maps to the 'accounts' table in PostgreSQL.
type AccountDao struct {
	bun.BaseModel `bun:"table:accounts,alias:a"`
	Address       string    `bun:"address,pk,type:varchar(44)"`
	Lamports      int64     `bun:"lamports,notnull"`
	Owner         string    `bun:"owner,notnull,type:varchar(44)"`
	Data          []byte    `bun:"data,type:bytea"`
	CreatedAt     time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp"`
	UpdatedAt     time.Time `bun:"updated_at,nullzero,notnull,default:current_timestamp"`
}

func toAccountDao(acc *runtime.Account) (*AccountDao, error) {
	if acc.Lamports > math.MaxInt64 {
		return nil, fmt.Errorf("lamports %d for %s exceed column range", acc.Lamports, acc.Address)
	}
	return &AccountDao{
		Address:  acc.Address.String(),
		Lamports: int64(acc.Lamports),
		Owner:    acc.Owner.String(),
		Data:     acc.Data,
	}, nil
}

func fromAccountDao(dao *AccountDao) (*runtime.Account, error) {
	addr, err := ledger.ParsePubkey(dao.Address)
	if err != nil {
		return nil, fmt.Errorf("stored address %q: %w", dao.Address, err)
	}
	owner, err := ledger.ParsePubkey(dao.Owner)
	if err != nil {
		return nil, fmt.Errorf("stored owner %q: %w", dao.Owner, err)
	}
	if dao.Lamports < 0 {
		return nil, fmt.Errorf("stored lamports for %s are negative", dao.Address)
	}
	return &runtime.Account{
		Address:  addr,
		Lamports: uint64(dao.Lamports),
		Owner:    owner,
		Data:     dao.Data,
	}, nil
}
