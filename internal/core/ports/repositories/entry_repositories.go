package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/wallet_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// EntryReader defines read operations for ledger entries.
type EntryReader interface {
	// FindEntryByID retrieves an entry by its ID.
	FindEntryByID(ctx context.Context, entryID string) (*domain.Entry, error)

	// FindActiveEntryByKey retrieves the non-failed entry holding an idempotency key.
	FindActiveEntryByKey(ctx context.Context, accountID string, idempotencyKey string) (*domain.Entry, error)

	// ListEntriesByAccountID retrieves entries newest first with token based pagination.
	// Returns the entries and the token for the next page (nil when there are no more).
	ListEntriesByAccountID(ctx context.Context, accountID string, filter domain.EntryFilter) ([]domain.Entry, *string, error)

	// SumPostedEntries returns the sum of completed and reversed entry amounts and their count.
	SumPostedEntries(ctx context.Context, accountID string) (decimal.Decimal, int64, error)
}

// EntryReservationWriter manages the idempotency reservations. Each call runs
// in its own short transaction, outside any account lock.
type EntryReservationWriter interface {
	// ReserveEntry inserts a pending entry. If a non-failed entry already holds
	// the (account, key) pair, it returns that entry and reserved=false.
	// Returns apperrors.ErrAccountNotFound when the account does not exist.
	ReserveEntry(ctx context.Context, entry domain.Entry) (stored *domain.Entry, reserved bool, err error)

	// MarkEntryFailed moves a pending entry to failed with a reason.
	// It is a no-op when the entry is no longer pending.
	MarkEntryFailed(ctx context.Context, entryID string, reason string, now time.Time) error

	// ExpirePendingEntry fails a pending entry created before staleBefore.
	// Returns true only if this call performed the transition.
	ExpirePendingEntry(ctx context.Context, entryID string, staleBefore time.Time, now time.Time) (bool, error)
}

// EntryRepositoryFacade combines all entry-related repository interfaces
type EntryRepositoryFacade interface {
	EntryReader
	EntryReservationWriter
}
