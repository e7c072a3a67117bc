package accounting

import (
	"testing"

	"github.com/SscSPs/wallet_ledger/internal/apperrors"
	"github.com/SscSPs/wallet_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestValidateAmount(t *testing.T) {
	tests := []struct {
		name    string
		amount  string
		wantErr bool
	}{
		{"positive whole", "100", false},
		{"two decimals", "10.25", false},
		{"trailing zeros beyond scale", "10.2500", false},
		{"zero", "0", true},
		{"negative", "-1", true},
		{"too precise", "0.001", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateAmount(decimal.RequireFromString(tt.amount), 2)
			if tt.wantErr {
				assert.ErrorIs(t, err, apperrors.ErrInvalidAmount)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestApplyToBalance(t *testing.T) {
	balance := decimal.NewFromInt(200)

	next, err := ApplyToBalance(balance, SignedAmount(decimal.NewFromInt(200), Debit))
	assert.NoError(t, err)
	assert.True(t, next.IsZero())

	_, err = ApplyToBalance(decimal.Zero, SignedAmount(decimal.NewFromInt(1), Debit))
	assert.ErrorIs(t, err, apperrors.ErrInsufficientBalance)

	next, err = ApplyToBalance(decimal.Zero, SignedAmount(decimal.NewFromInt(50), Credit))
	assert.NoError(t, err)
	assert.True(t, next.Equal(decimal.NewFromInt(50)))
}

func TestSumPosted(t *testing.T) {
	entries := []domain.Entry{
		{Amount: decimal.NewFromInt(500), Status: domain.EntryStatusReversed},
		{Amount: decimal.NewFromInt(-500), Status: domain.EntryStatusCompleted},
		{Amount: decimal.NewFromInt(50), Status: domain.EntryStatusCompleted},
		{Amount: decimal.NewFromInt(999), Status: domain.EntryStatusFailed},
		{Amount: decimal.NewFromInt(7), Status: domain.EntryStatusPending},
	}

	sum, count := SumPosted(entries)
	assert.True(t, sum.Equal(decimal.NewFromInt(50)), "got %s", sum)
	assert.Equal(t, int64(3), count)
}
