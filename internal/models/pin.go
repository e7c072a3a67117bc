package models

// AccountPin is the persisted row of the account_pins table.
type AccountPin struct {
	AccountID      string `db:"account_id"`
	PinHash        string `db:"pin_hash"`
	FailedAttempts int    `db:"failed_attempts"`
	Timestamps
}
