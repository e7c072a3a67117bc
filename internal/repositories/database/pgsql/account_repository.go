package pgsql

import (
	"context"

	"github.com/SscSPs/wallet_ledger/internal/apperrors"
	"github.com/SscSPs/wallet_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/wallet_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/wallet_ledger/internal/models"
	"github.com/SscSPs/wallet_ledger/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const accountColumns = `account_id::text, owner_ref, currency_code, balance, status, locked_until, entry_count, created_at, updated_at`

type PgxAccountRepository struct {
	BaseRepository
}

// newPgxAccountRepository creates a new repository for account data.
func newPgxAccountRepository(pool *pgxpool.Pool) *PgxAccountRepository {
	return &PgxAccountRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxAccountRepository implements portsrepo.AccountRepositoryFacade
var _ portsrepo.AccountRepositoryFacade = (*PgxAccountRepository)(nil)

func scanAccount(row pgx.Row) (*domain.Account, error) {
	var m models.Account
	err := row.Scan(
		&m.AccountID,
		&m.OwnerRef,
		&m.CurrencyCode,
		&m.Balance,
		&m.Status,
		&m.LockedUntil,
		&m.EntryCount,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	acc := mapping.ToDomainAccount(m)
	return &acc, nil
}

// FindAccountByID retrieves an account by its ID.
func (r *PgxAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_id = $1;`
	acc, err := scanAccount(r.Pool.QueryRow(ctx, query, accountID))
	if err != nil {
		return nil, notFoundAs(translateError(err, "failed to find account "+accountID), apperrors.ErrAccountNotFound)
	}
	return acc, nil
}

// FindAccountByOwner retrieves the owner's account in a currency.
func (r *PgxAccountRepository) FindAccountByOwner(ctx context.Context, ownerRef string, currencyCode string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE owner_ref = $1 AND currency_code = $2;`
	acc, err := scanAccount(r.Pool.QueryRow(ctx, query, ownerRef, currencyCode))
	if err != nil {
		return nil, notFoundAs(translateError(err, "failed to find account of "+ownerRef), apperrors.ErrAccountNotFound)
	}
	return acc, nil
}

// EnsureAccount inserts the account unless the owner already has one in
// that currency, and returns whichever row exists afterwards.
func (r *PgxAccountRepository) EnsureAccount(ctx context.Context, account domain.Account) (*domain.Account, error) {
	m := mapping.ToModelAccount(account)
	query := `
		INSERT INTO accounts (account_id, owner_ref, currency_code, balance, status, locked_until, entry_count, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (owner_ref, currency_code) DO NOTHING;
	`
	_, err := r.Pool.Exec(ctx, query,
		m.AccountID,
		m.OwnerRef,
		m.CurrencyCode,
		m.Balance,
		m.Status,
		m.LockedUntil,
		m.EntryCount,
		m.CreatedAt,
		m.UpdatedAt,
	)
	if err != nil {
		return nil, translateError(err, "failed to create account for "+m.OwnerRef)
	}
	return r.FindAccountByOwner(ctx, m.OwnerRef, m.CurrencyCode)
}
