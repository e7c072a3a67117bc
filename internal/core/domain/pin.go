package domain

// AccountPin is the hashed transaction PIN guarding withdrawals.
type AccountPin struct {
	AccountID      string
	PinHash        string
	FailedAttempts int
	Timestamps
}
