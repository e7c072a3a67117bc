package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryKind classifies the business reason of a ledger entry.
type EntryKind string

const (
	EntryKindDeposit          EntryKind = "deposit"
	EntryKindWithdrawal       EntryKind = "withdrawal"
	EntryKindInvestmentDebit  EntryKind = "investment_debit"
	EntryKindInvestmentCredit EntryKind = "investment_credit"
	EntryKindDividendCredit   EntryKind = "dividend_credit"
	EntryKindRefund           EntryKind = "refund"
	EntryKindAdjustment       EntryKind = "adjustment"
)

// IsValid reports whether k is a known kind.
func (k EntryKind) IsValid() bool {
	switch k {
	case EntryKindDeposit, EntryKindWithdrawal, EntryKindInvestmentDebit, EntryKindInvestmentCredit,
		EntryKindDividendCredit, EntryKindRefund, EntryKindAdjustment:
		return true
	}
	return false
}

// EntryStatus is the lifecycle state of an entry.
// pending -> completed | failed, completed -> reversed.
type EntryStatus string

const (
	EntryStatusPending   EntryStatus = "pending"
	EntryStatusCompleted EntryStatus = "completed"
	EntryStatusFailed    EntryStatus = "failed"
	EntryStatusReversed  EntryStatus = "reversed"
)

// IsValid reports whether s is a known status.
func (s EntryStatus) IsValid() bool {
	switch s {
	case EntryStatusPending, EntryStatusCompleted, EntryStatusFailed, EntryStatusReversed:
		return true
	}
	return false
}

// IsPosted reports whether the entry has been applied to the balance.
// A reversed entry still counts; its compensating entry cancels it.
func (s EntryStatus) IsPosted() bool {
	return s == EntryStatusCompleted || s == EntryStatusReversed
}

// Entry is one append-only row of an account's history. Amount is signed:
// positive for credits, negative for debits.
type Entry struct {
	EntryID         string           `json:"entryID"`
	AccountID       string           `json:"accountID"`
	Amount          decimal.Decimal  `json:"amount"`
	BalanceAfter    *decimal.Decimal `json:"balanceAfter,omitempty"`
	Kind            EntryKind        `json:"kind"`
	IdempotencyKey  string           `json:"idempotencyKey"`
	Status          EntryStatus      `json:"status"`
	Sequence        *int64           `json:"sequence,omitempty"`
	ReversesEntryID *string          `json:"reversesEntryID,omitempty"`
	FailureReason   string           `json:"failureReason,omitempty"`
	Metadata        map[string]any   `json:"metadata,omitempty"`
	Timestamps
}

// SameOperation reports whether other describes the same movement, used to
// detect an idempotency key reused for a different request.
func (e Entry) SameOperation(other Entry) bool {
	return e.AccountID == other.AccountID &&
		e.Kind == other.Kind &&
		e.Amount.Equal(other.Amount)
}

// OperationRequest asks the ledger to move Amount (always positive) on an account.
type OperationRequest struct {
	AccountID      string
	Amount         decimal.Decimal
	Kind           EntryKind
	IdempotencyKey string
	Metadata       map[string]any
}

// EntryFilter narrows an entry listing. Results are newest first.
type EntryFilter struct {
	Kinds     []EntryKind
	Statuses  []EntryStatus
	From      *time.Time
	To        *time.Time
	Limit     int
	NextToken *string
}

// EntryPage is one page of entries plus the token for the next page, if any.
type EntryPage struct {
	Entries   []Entry `json:"entries"`
	NextToken *string `json:"nextToken,omitempty"`
}
