package mapping

import (
	"testing"
	"time"

	"github.com/SscSPs/wallet_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestToModelEntry_NilMetadataAndReason(t *testing.T) {
	m := ToModelEntry(domain.Entry{
		EntryID: "e-1",
		Amount:  decimal.NewFromInt(5),
		Kind:    domain.EntryKindDeposit,
		Status:  domain.EntryStatusPending,
	})

	assert.NotNil(t, m.Metadata)
	assert.Empty(t, m.Metadata)
	assert.Nil(t, m.FailureReason)
	assert.Equal(t, "deposit", m.Kind)
}

func TestEntryMapping_PreservesPostedFields(t *testing.T) {
	now := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	balance := decimal.RequireFromString("150.00")
	seq := int64(3)
	reverses := "e-0"

	d := domain.Entry{
		EntryID:         "e-1",
		AccountID:       "acc-1",
		Amount:          decimal.RequireFromString("-50.00"),
		BalanceAfter:    &balance,
		Kind:            domain.EntryKindAdjustment,
		IdempotencyKey:  "reversal:e-0",
		Status:          domain.EntryStatusCompleted,
		Sequence:        &seq,
		ReversesEntryID: &reverses,
		FailureReason:   "ignored for completed",
		Metadata:        map[string]any{"reason": "chargeback"},
		Timestamps:      domain.Timestamps{CreatedAt: now, UpdatedAt: now},
	}

	back := ToDomainEntry(ToModelEntry(d))
	assert.Equal(t, d, back)
}
