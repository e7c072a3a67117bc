package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/SscSPs/wallet_ledger/internal/apperrors"
	"github.com/SscSPs/wallet_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/wallet_ledger/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// PgxAccountLocker serialises writers of an account with SELECT ... FOR UPDATE
// on its row. Waiting is bounded by the transaction-local lock_timeout.
type PgxAccountLocker struct {
	BaseRepository
	lockTimeout time.Duration
}

func newPgxAccountLocker(pool *pgxpool.Pool, lockTimeout time.Duration) *PgxAccountLocker {
	return &PgxAccountLocker{BaseRepository: BaseRepository{Pool: pool}, lockTimeout: lockTimeout}
}

var (
	_ portsrepo.AccountLocker   = (*PgxAccountLocker)(nil)
	_ portsrepo.LockedAccountTx = (*pgxLedgerTx)(nil)
)

// WithAccountLock runs fn inside one database transaction holding the
// account row lock. The transaction commits only when fn returns nil.
func (l *PgxAccountLocker) WithAccountLock(ctx context.Context, accountID string, fn portsrepo.LockedFunc) error {
	tx, err := l.Begin(ctx)
	if err != nil {
		return err
	}
	defer l.Rollback(ctx, tx)

	timeout := fmt.Sprintf("%dms", l.lockTimeout.Milliseconds())
	if _, err := tx.Exec(ctx, `SELECT set_config('lock_timeout', $1, true);`, timeout); err != nil {
		return translateError(err, "failed to set lock timeout")
	}

	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_id = $1 FOR UPDATE;`
	acc, err := scanAccount(tx.QueryRow(ctx, query, accountID))
	if err != nil {
		return notFoundAs(translateError(err, "failed to lock account "+accountID), apperrors.ErrAccountNotFound)
	}

	if err := fn(ctx, &pgxLedgerTx{tx: tx, account: *acc}); err != nil {
		return err
	}
	return l.Commit(ctx, tx)
}

type pgxLedgerTx struct {
	tx      pgx.Tx
	account domain.Account
}

func (t *pgxLedgerTx) Account() domain.Account {
	return t.account
}

func (t *pgxLedgerTx) FindEntryByID(ctx context.Context, entryID string) (*domain.Entry, error) {
	query := `SELECT ` + entryColumns + ` FROM ledger_entries WHERE entry_id = $1 AND account_id = $2;`
	e, err := scanEntry(t.tx.QueryRow(ctx, query, entryID, t.account.AccountID))
	if err != nil {
		return nil, translateError(err, "failed to find entry "+entryID)
	}
	return e, nil
}

// PostEntry completes a pending entry as the account's next sequence and
// moves the cached balance with it.
func (t *pgxLedgerTx) PostEntry(ctx context.Context, entryID string, balanceAfter decimal.Decimal, now time.Time) (*domain.Entry, error) {
	seq := t.account.EntryCount + 1
	query := `
		UPDATE ledger_entries
		SET status = 'completed', balance_after = $3, sequence = $4, updated_at = $5
		WHERE entry_id = $1 AND account_id = $2 AND status = 'pending'
		RETURNING ` + entryColumns + `;`
	posted, err := scanEntry(t.tx.QueryRow(ctx, query, entryID, t.account.AccountID, balanceAfter, seq, now))
	if err != nil {
		err = translateError(err, "failed to post entry "+entryID)
		if errors.Is(err, apperrors.ErrNotFound) {
			// The reservation expired or failed since it was made.
			return nil, fmt.Errorf("%w: entry %s is no longer pending", apperrors.ErrOperationInProgress, entryID)
		}
		return nil, err
	}

	update := `
		UPDATE accounts
		SET balance = $2, entry_count = $3, updated_at = $4
		WHERE account_id = $1;
	`
	if _, err := t.tx.Exec(ctx, update, t.account.AccountID, balanceAfter, seq, now); err != nil {
		return nil, translateError(err, "failed to update balance of account "+t.account.AccountID)
	}

	t.account.Balance = balanceAfter
	t.account.EntryCount = seq
	t.account.UpdatedAt = now
	return posted, nil
}

func (t *pgxLedgerTx) MarkEntryReversed(ctx context.Context, entryID string, now time.Time) error {
	query := `
		UPDATE ledger_entries
		SET status = 'reversed', updated_at = $3
		WHERE entry_id = $1 AND account_id = $2 AND status = 'completed';
	`
	tag, err := t.tx.Exec(ctx, query, entryID, t.account.AccountID, now)
	if err != nil {
		return translateError(err, "failed to mark entry "+entryID+" as reversed")
	}
	if tag.RowsAffected() != 1 {
		return fmt.Errorf("%w: entry %s is not completed", apperrors.ErrEntryNotReversible, entryID)
	}
	return nil
}

func (t *pgxLedgerTx) UpdateAccountStatus(ctx context.Context, status domain.AccountStatus, lockedUntil *time.Time, now time.Time) (*domain.Account, error) {
	if status != domain.AccountStatusLocked {
		lockedUntil = nil
	}
	query := `
		UPDATE accounts
		SET status = $2, locked_until = $3, updated_at = $4
		WHERE account_id = $1
		RETURNING ` + accountColumns + `;`
	acc, err := scanAccount(t.tx.QueryRow(ctx, query, t.account.AccountID, string(status), lockedUntil, now))
	if err != nil {
		return nil, translateError(err, "failed to update status of account "+t.account.AccountID)
	}
	t.account = *acc
	return acc, nil
}
