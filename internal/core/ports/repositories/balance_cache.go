package repositories

import (
	"context"

	"github.com/SscSPs/wallet_ledger/internal/core/domain"
)

// BalanceCache holds display snapshots of wallet accounts, keyed by owner and
// currency. It is never consulted on the posting path; writers invalidate it
// after their transaction commits.
type BalanceCache interface {
	// GetAccount returns the cached account and whether it was present.
	GetAccount(ctx context.Context, ownerRef string, currencyCode string) (*domain.Account, bool, error)

	// SetAccount stores an account snapshot read from the ledger.
	SetAccount(ctx context.Context, account domain.Account) error

	// Invalidate drops the cached snapshots of the given accounts.
	Invalidate(ctx context.Context, accounts ...domain.Account) error
}
