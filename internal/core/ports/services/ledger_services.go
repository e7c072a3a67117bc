package services

import (
	"context"
	"time"

	"github.com/SscSPs/wallet_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// LedgerPostingSvc defines the balance-changing ledger operations. Every
// operation is idempotent on (account, idempotency key).
type LedgerPostingSvc interface {
	// Credit increases the balance. Suspended accounts still accept credits.
	Credit(ctx context.Context, req domain.OperationRequest) (*domain.Entry, error)

	// Debit decreases the balance; it never takes the balance below zero.
	Debit(ctx context.Context, req domain.OperationRequest) (*domain.Entry, error)

	// Reverse appends a compensating adjustment for a completed entry and marks it reversed.
	Reverse(ctx context.Context, entryID string, reason string) (*domain.Entry, error)
}

// LedgerReaderSvc defines unlocked read operations.
type LedgerReaderSvc interface {
	// GetBalance returns the cached balance of an account.
	GetBalance(ctx context.Context, accountID string) (decimal.Decimal, error)

	// GetAccount returns an account snapshot.
	GetAccount(ctx context.Context, accountID string) (*domain.Account, error)

	// GetEntries lists entries of an account, newest first.
	GetEntries(ctx context.Context, accountID string, filter domain.EntryFilter) (*domain.EntryPage, error)

	// ReplayBalance recomputes the balance from posted entries and compares it with the cached one.
	ReplayBalance(ctx context.Context, accountID string) (*domain.ReplayResult, error)
}

// LedgerAccountSvc defines account lifecycle operations.
type LedgerAccountSvc interface {
	// EnsureAccount returns the owner's account in the currency, creating it if needed.
	EnsureAccount(ctx context.Context, ownerRef string, currencyCode string) (*domain.Account, error)

	// SetAccountStatus changes the status under the account lock.
	SetAccountStatus(ctx context.Context, accountID string, status domain.AccountStatus, lockedUntil *time.Time) (*domain.Account, error)
}

// LedgerSvcFacade combines all ledger service interfaces
type LedgerSvcFacade interface {
	LedgerPostingSvc
	LedgerReaderSvc
	LedgerAccountSvc
}
