package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountStatus controls which operations an account accepts.
type AccountStatus string

const (
	AccountStatusActive    AccountStatus = "active"
	AccountStatusSuspended AccountStatus = "suspended" // credits allowed, debits rejected
	AccountStatusLocked    AccountStatus = "locked"    // everything rejected until LockedUntil
)

// IsValid reports whether s is a known status.
func (s AccountStatus) IsValid() bool {
	switch s {
	case AccountStatusActive, AccountStatusSuspended, AccountStatusLocked:
		return true
	}
	return false
}

// Account is a balance-bearing wallet owned by an opaque owner reference.
// Balance is a cache of the sum of its posted entries.
type Account struct {
	AccountID    string          `json:"accountID"`
	OwnerRef     string          `json:"ownerRef"`
	CurrencyCode string          `json:"currencyCode"`
	Balance      decimal.Decimal `json:"balance"`
	Status       AccountStatus   `json:"status"`
	LockedUntil  *time.Time      `json:"lockedUntil,omitempty"` // nil means locked indefinitely
	EntryCount   int64           `json:"entryCount"`
	Timestamps
}

// IsLocked reports whether the account is locked at now. A lock whose
// LockedUntil has passed no longer counts.
func (a Account) IsLocked(now time.Time) bool {
	if a.Status != AccountStatusLocked {
		return false
	}
	return a.LockedUntil == nil || now.Before(*a.LockedUntil)
}

// IsSuspended reports whether the account is suspended.
func (a Account) IsSuspended() bool {
	return a.Status == AccountStatusSuspended
}

// EffectiveStatus resolves expired locks back to active.
func (a Account) EffectiveStatus(now time.Time) AccountStatus {
	if a.Status == AccountStatusLocked && !a.IsLocked(now) {
		return AccountStatusActive
	}
	return a.Status
}

// ReplayResult compares the cached balance against the sum of posted entries.
type ReplayResult struct {
	AccountID       string          `json:"accountID"`
	CachedBalance   decimal.Decimal `json:"cachedBalance"`
	ReplayedBalance decimal.Decimal `json:"replayedBalance"`
	PostedEntries   int64           `json:"postedEntries"`
	EntryCount      int64           `json:"entryCount"`
	Consistent      bool            `json:"consistent"`
}
