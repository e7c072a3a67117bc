package apperrors

import (
	"errors"
	"fmt"
	"time"
)

// Ledger failures. Callers match them with errors.Is; messages carry details.
var (
	// ErrInvalidAmount is returned for zero, negative or over-precise amounts.
	ErrInvalidAmount = errors.New("invalid amount")

	// ErrInsufficientBalance is returned when a debit would take the balance below zero.
	ErrInsufficientBalance = errors.New("insufficient balance")

	// ErrAccountLocked is returned when the account is locked and the lock has not expired.
	ErrAccountLocked = errors.New("account locked")

	// ErrAccountSuspended is returned when a debit targets a suspended account.
	ErrAccountSuspended = errors.New("account suspended")

	// ErrAccountNotFound is returned when the account does not exist.
	ErrAccountNotFound = errors.New("account not found")

	// ErrOperationInProgress is returned when another attempt holds a pending
	// reservation for the same idempotency key.
	ErrOperationInProgress = errors.New("operation in progress")

	// ErrEntryNotReversible is returned when an entry is not in the completed state.
	ErrEntryNotReversible = errors.New("entry not reversible")

	// ErrLockTimeout is returned when the account lock could not be acquired in time.
	ErrLockTimeout = errors.New("account lock timeout")

	// ErrStorageFailure wraps unexpected storage errors.
	ErrStorageFailure = errors.New("storage failure")

	// ErrIdempotencyConflict is returned when a key is reused with a different amount or kind.
	ErrIdempotencyConflict = errors.New("idempotency key reused with different parameters")

	// ErrInvalidPIN is returned when the transaction PIN does not match or is not set.
	ErrInvalidPIN = errors.New("invalid transaction pin")
)

// IsRetryable reports whether repeating the same request, with the same
// idempotency key, may succeed.
func IsRetryable(err error) bool {
	return errors.Is(err, ErrLockTimeout) ||
		errors.Is(err, ErrStorageFailure) ||
		errors.Is(err, ErrOperationInProgress)
}

// PINError reports a rejected transaction PIN together with what the caller
// can still do about it.
// AttemptsRemaining is only set when a PIN was checked and did not match.
type PINError struct {
	Message           string
	AttemptsRemaining *int
	LockedUntil       *time.Time
}

func (e *PINError) Error() string {
	switch {
	case e.LockedUntil != nil:
		return fmt.Sprintf("%s: account locked until %s", e.Message, e.LockedUntil.UTC().Format(time.RFC3339))
	case e.AttemptsRemaining != nil:
		return fmt.Sprintf("%s: %d attempts remaining", e.Message, *e.AttemptsRemaining)
	default:
		return e.Message
	}
}

// Unwrap lets errors.Is match ErrInvalidPIN, and ErrAccountLocked once the
// failure locked the account.
func (e *PINError) Unwrap() []error {
	if e.LockedUntil != nil {
		return []error{ErrInvalidPIN, ErrAccountLocked}
	}
	return []error{ErrInvalidPIN}
}
