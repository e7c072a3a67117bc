package models

import (
	"github.com/shopspring/decimal"
)

// Entry is the persisted row of the ledger_entries table.
type Entry struct {
	EntryID         string           `db:"entry_id"`
	AccountID       string           `db:"account_id"`
	Amount          decimal.Decimal  `db:"amount"`
	BalanceAfter    *decimal.Decimal `db:"balance_after"` // Nullable until posted
	Kind            string           `db:"kind"`
	IdempotencyKey  string           `db:"idempotency_key"`
	Status          string           `db:"status"`
	Sequence        *int64           `db:"sequence"`          // Nullable until posted
	ReversesEntryID *string          `db:"reverses_entry_id"` // Nullable
	FailureReason   *string          `db:"failure_reason"`    // Nullable
	Metadata        map[string]any   `db:"metadata"`          // JSONB
	Timestamps
}
