package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/wallet_ledger/internal/core/domain"
)

// PinRepositoryFacade persists transaction PINs and their failure counters.
type PinRepositoryFacade interface {
	// FindPinByAccountID returns apperrors.ErrNotFound when no PIN is set.
	FindPinByAccountID(ctx context.Context, accountID string) (*domain.AccountPin, error)

	// SavePin creates or replaces the PIN hash and resets the failure counter.
	SavePin(ctx context.Context, pin domain.AccountPin) error

	// RecordFailedAttempt atomically increments the failure counter and returns the new value.
	RecordFailedAttempt(ctx context.Context, accountID string, now time.Time) (int, error)

	// ResetFailedAttempts clears the failure counter.
	ResetFailedAttempts(ctx context.Context, accountID string, now time.Time) error
}
