package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Account is the persisted row of the accounts table.
type Account struct {
	AccountID    string          `db:"account_id"`
	OwnerRef     string          `db:"owner_ref"`
	CurrencyCode string          `db:"currency_code"`
	Balance      decimal.Decimal `db:"balance"`
	Status       string          `db:"status"`
	LockedUntil  *time.Time      `db:"locked_until"` // Nullable
	EntryCount   int64           `db:"entry_count"`
	Timestamps
}
