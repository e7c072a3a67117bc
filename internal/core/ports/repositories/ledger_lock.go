package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/wallet_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// LockedAccountTx is the view of one account while its lock is held. All writes
// made through it commit or roll back together when the critical section ends.
type LockedAccountTx interface {
	// Account returns the locked account, including changes made in this transaction.
	Account() domain.Account

	// FindEntryByID reads an entry inside the transaction.
	FindEntryByID(ctx context.Context, entryID string) (*domain.Entry, error)

	// PostEntry completes a pending entry of the locked account: it assigns the
	// next sequence, records balanceAfter and moves the account balance to it.
	// Returns apperrors.ErrOperationInProgress if the entry is no longer pending.
	PostEntry(ctx context.Context, entryID string, balanceAfter decimal.Decimal, now time.Time) (*domain.Entry, error)

	// MarkEntryReversed moves a completed entry of the locked account to reversed.
	// Returns apperrors.ErrEntryNotReversible if it is not completed.
	MarkEntryReversed(ctx context.Context, entryID string, now time.Time) error

	// UpdateAccountStatus changes the account status and lock expiry.
	UpdateAccountStatus(ctx context.Context, status domain.AccountStatus, lockedUntil *time.Time, now time.Time) (*domain.Account, error)
}

// LockedFunc runs while the account lock is held. It must not perform external I/O.
type LockedFunc func(ctx context.Context, tx LockedAccountTx) error

// AccountLocker serialises mutations of one account. Different accounts never
// block each other.
type AccountLocker interface {
	// WithAccountLock locks the account, runs fn and commits, or rolls back when
	// fn fails. Returns apperrors.ErrLockTimeout when the lock wait exceeds the
	// configured timeout or ctx expires first, and apperrors.ErrAccountNotFound
	// when the account does not exist.
	WithAccountLock(ctx context.Context, accountID string, fn LockedFunc) error
}
