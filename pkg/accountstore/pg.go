package accountstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/driver/pgdriver"

	"github.com/chainsafe/kyc-ledger/pkg/ledger"
	"github.com/chainsafe/kyc-ledger/pkg/ledger/runtime"
)

const uniqueViolation = "23505"

type pgStore struct {
	db *bun.DB
}

// NewStore creates a new postgres implementation of the account store
func NewStore(db *bun.DB) *pgStore {
	return &pgStore{db: db}
}

func (s *pgStore) GetAccount(ctx context.Context, address ledger.Pubkey) (*runtime.Account, error) {
	dao := new(AccountDao)
	err := s.db.NewSelect().
		Model(dao).
		Where("address = ?", address.String()).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, runtime.ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	return fromAccountDao(dao)
}

// Apply writes all changes in one database transaction. Creates rely on the primary
// key so that concurrent creators in other processes lose with ErrAddressAlreadyInUse.
// Updates only match the row the caller read; an allocation over a pre-funded
// address that another writer allocated first also loses with ErrAddressAlreadyInUse.
func (s *pgStore) Apply(ctx context.Context, changes []runtime.AccountChange) error {
	return s.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		for _, c := range changes {
			if c.Account == nil {
				return fmt.Errorf("nil account in %s change", c.Kind)
			}
			dao, err := toAccountDao(c.Account)
			if err != nil {
				return err
			}

			switch c.Kind {
			case runtime.ChangeCreate:
				if err := insertAccount(ctx, tx, dao); err != nil {
					return err
				}
			case runtime.ChangeUpdate:
				if err := updateAccount(ctx, tx, dao, c); err != nil {
					return err
				}
			default:
				return fmt.Errorf("unsupported change kind %d", c.Kind)
			}
		}
		return nil
	})
}

func insertAccount(ctx context.Context, tx bun.Tx, dao *AccountDao) error {
	_, err := tx.NewInsert().
		Model(dao).
		Exec(ctx)
	if err != nil {
		var pgErr pgdriver.Error
		if errors.As(err, &pgErr) && pgErr.Field('C') == uniqueViolation {
			return fmt.Errorf("%w: %s", runtime.ErrAddressAlreadyInUse, dao.Address)
		}
		return fmt.Errorf("failed to create account: %w", err)
	}
	return nil
}

func updateAccount(ctx context.Context, tx bun.Tx, dao *AccountDao, c runtime.AccountChange) error {
	res, err := tx.NewUpdate().
		Model((*AccountDao)(nil)).
		Set("lamports = ?", dao.Lamports).
		Set("owner = ?", dao.Owner).
		Set("data = ?", dao.Data).
		Set("updated_at = NOW()").
		Where("address = ?", dao.Address).
		Where("lamports = ?", int64(c.PrevLamports)).
		Where("owner = ?", c.PrevOwner.String()).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to update account: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read update result: %w", err)
	}
	if n == 0 {
		if c.Allocates() {
			taken, err := allocated(ctx, tx, dao.Address)
			if err != nil {
				return err
			}
			if taken {
				return fmt.Errorf("%w: %s", runtime.ErrAddressAlreadyInUse, dao.Address)
			}
		}
		return fmt.Errorf("%w: %s", runtime.ErrConcurrentUpdate, dao.Address)
	}
	return nil
}

// allocated reports whether the row at address now holds an allocation.
func allocated(ctx context.Context, tx bun.Tx, address string) (bool, error) {
	current := new(AccountDao)
	err := tx.NewSelect().
		Model(current).
		Where("address = ?", address).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("failed to reload account: %w", err)
	}
	acc, err := fromAccountDao(current)
	if err != nil {
		return false, err
	}
	return acc.InUse(), nil
}
