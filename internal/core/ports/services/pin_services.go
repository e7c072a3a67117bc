package services

import "context"

// PinSvc manages transaction PINs.
type PinSvc interface {
	// SetPIN stores a new PIN for the account and clears previous failures.
	SetPIN(ctx context.Context, accountID string, pin string) error

	// VerifyPIN checks the PIN. Repeated failures lock the account for a while.
	VerifyPIN(ctx context.Context, accountID string, pin string) error
}
