package repositories

import (
	"context"

	"github.com/SscSPs/wallet_ledger/internal/core/domain"
)

// AccountReader defines read operations for account data.
// Reads are unlocked snapshots and may be stale by the time they return.
type AccountReader interface {
	// FindAccountByID retrieves a specific account by its unique identifier.
	FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// FindAccountByOwner retrieves the account of an owner in a currency.
	FindAccountByOwner(ctx context.Context, ownerRef string, currencyCode string) (*domain.Account, error)
}

// AccountWriter defines write operations for account data
type AccountWriter interface {
	// EnsureAccount inserts the account unless one already exists for the same
	// owner and currency, and returns the stored account either way.
	EnsureAccount(ctx context.Context, account domain.Account) (*domain.Account, error)
}

// AccountRepositoryFacade combines all account-related repository interfaces
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
}
